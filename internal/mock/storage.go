package mock

import (
	"bytes"
	"context"
	"io"

	"github.com/fhuszti/cms-uploads-go/internal/port"
)

// Storage implements port.Storage for tests.
type Storage struct {
	// stored values
	StatInfoOut port.FileInfo
	GetOut      []byte
	SaveKeyOut  string

	// captured inputs
	SavedDir   string
	SavedExt   string
	SavedData  []byte
	RemovedKey string

	// errors
	StatErr   error
	RemoveErr error
	GetErr    error
	SaveErr   error

	// call flags
	StatCalled   bool
	RemoveCalled bool
	GetCalled    bool
	SaveCalled   bool
}

func (m *Storage) SaveFile(ctx context.Context, dir, ext string, reader io.Reader, fileSize int64) (string, error) {
	m.SaveCalled = true
	m.SavedDir, m.SavedExt = dir, ext
	if m.SaveErr != nil {
		return "", m.SaveErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	m.SavedData = data
	if m.SaveKeyOut != "" {
		return m.SaveKeyOut, nil
	}
	return dir + "/stored" + ext, nil
}

func (m *Storage) GetFile(ctx context.Context, key string) (io.ReadCloser, error) {
	m.GetCalled = true
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if m.GetOut != nil {
		return io.NopCloser(bytes.NewReader(m.GetOut)), nil
	}
	return io.NopCloser(bytes.NewReader([]byte("dummy"))), nil
}

func (m *Storage) StatFile(ctx context.Context, key string) (port.FileInfo, error) {
	m.StatCalled = true
	if m.StatErr != nil {
		return port.FileInfo{}, m.StatErr
	}
	return m.StatInfoOut, nil
}

func (m *Storage) RemoveFile(ctx context.Context, key string) error {
	m.RemoveCalled = true
	m.RemovedKey = key
	return m.RemoveErr
}
