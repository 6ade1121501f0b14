package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"

	"github.com/fhuszti/cms-uploads-go/internal/logger"
	"github.com/fhuszti/cms-uploads-go/internal/port"
	"github.com/fhuszti/cms-uploads-go/internal/usecase/upload"
	"github.com/spf13/afero"
)

// DiskStorage keeps uploads on a filesystem rooted at the upload directory.
type DiskStorage struct {
	fs      afero.Fs
	newName func(ext string) string
}

// compile-time check: *DiskStorage must satisfy port.Storage
var _ port.Storage = (*DiskStorage)(nil)

// NewDiskStorage stores uploads below baseDir, which is created if missing.
func NewDiskStorage(baseDir string) (*DiskStorage, error) {
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("resolve upload dir %q: %w", baseDir, err)
	}
	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %q: %w", abs, err)
	}
	return NewDiskStorageFs(afero.NewBasePathFs(osFs, abs)), nil
}

// NewDiskStorageFs uses fsys as the storage root.
func NewDiskStorageFs(fsys afero.Fs) *DiskStorage {
	return &DiskStorage{fs: fsys, newName: newObjectName}
}

func (s *DiskStorage) SaveFile(ctx context.Context, dir, ext string, reader io.Reader, fileSize int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dirPath, err := localPath(dir)
	if err != nil {
		return "", err
	}
	// concurrent uploads race on the same date partition, MkdirAll tolerates it
	if err := s.fs.MkdirAll(dirPath, 0o755); err != nil {
		return "", mapFsErr(err)
	}

	name := s.newName(ext)
	key := objectKey(dir, name)
	fullPath := filepath.Join(dirPath, name)
	logger.Debugf(ctx, "saving file %q (%d bytes) on disk...", key, fileSize)

	f, err := s.fs.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("%w: file %q already exists", upload.ErrInternal, key)
		}
		return "", mapFsErr(err)
	}

	_, copyErr := io.Copy(f, reader)
	closeErr := f.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		if rmErr := s.fs.Remove(fullPath); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			logger.Errorf(ctx, "❌  failed to remove partial file %q: %v", key, rmErr)
		}
		return "", fmt.Errorf("write %q: %w", key, err)
	}

	return key, nil
}

func (s *DiskStorage) GetFile(ctx context.Context, key string) (io.ReadCloser, error) {
	p, err := localPath(key)
	if err != nil {
		return nil, err
	}
	f, err := s.fs.Open(p)
	if err != nil {
		return nil, mapFsErr(err)
	}
	return f, nil
}

func (s *DiskStorage) StatFile(ctx context.Context, key string) (port.FileInfo, error) {
	p, err := localPath(key)
	if err != nil {
		return port.FileInfo{}, err
	}
	info, err := s.fs.Stat(p)
	if err != nil {
		return port.FileInfo{}, mapFsErr(err)
	}
	if info.IsDir() {
		return port.FileInfo{}, upload.ErrObjectNotFound
	}
	return port.FileInfo{
		SizeBytes:   info.Size(),
		ContentType: mime.TypeByExtension(path.Ext(key)),
	}, nil
}

func (s *DiskStorage) RemoveFile(ctx context.Context, key string) error {
	p, err := localPath(key)
	if err != nil {
		return err
	}
	logger.Debugf(ctx, "removing file %q from disk...", key)
	return mapFsErr(s.fs.Remove(p))
}

// localPath rejects keys that are absolute or climb out of the root; the
// base path filesystem confines everything else.
func localPath(key string) (string, error) {
	if key == "." || !fs.ValidPath(key) {
		return "", fmt.Errorf("%w: %q", upload.ErrInvalidObjectKey, key)
	}
	return filepath.FromSlash(key), nil
}
