package upload

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"github.com/fhuszti/cms-uploads-go/internal/logger"
	"github.com/fhuszti/cms-uploads-go/internal/model"
	"github.com/fhuszti/cms-uploads-go/internal/port"
	"github.com/fhuszti/cms-uploads-go/internal/uuid"
	"github.com/ledongthuc/pdf"
	_ "golang.org/x/image/webp"
)

type uploadInspectorSrv struct {
	repo  port.UploadRepository
	strg  port.Storage
	det   port.SignatureDetector
	cache port.Cache
}

// compile-time check: *uploadInspectorSrv must satisfy port.UploadInspector
var _ port.UploadInspector = (*uploadInspectorSrv)(nil)

func NewUploadInspector(repo port.UploadRepository, strg port.Storage, det port.SignatureDetector, cache port.Cache) port.UploadInspector {
	return &uploadInspectorSrv{repo: repo, strg: strg, det: det, cache: cache}
}

// InspectUpload records the detected MIME type of an accepted upload along
// with whatever metadata its format exposes. Unsupported formats are marked
// inspected with empty metadata.
func (s *uploadInspectorSrv) InspectUpload(ctx context.Context, id uuid.UUID) error {
	upload, err := findUpload(ctx, s.repo, id)
	if err != nil {
		return err
	}
	if upload.Inspected {
		return nil
	}

	mimeType, err := s.detectMime(ctx, upload.ObjectKey)
	if err != nil {
		return err
	}

	metadata, err := s.readMetadata(ctx, upload.ObjectKey, mimeType)
	if err != nil {
		// metadata is best effort, the MIME type alone is still worth keeping
		logger.Warnf(ctx, "failed to read metadata of upload #%s: %v", upload.ID, err)
		metadata = model.Metadata{}
	}

	upload.MimeType = &mimeType
	upload.Metadata = metadata
	upload.Inspected = true
	if err := s.repo.Update(ctx, upload); err != nil {
		return fmt.Errorf("failed updating upload #%s: %w", upload.ID, err)
	}

	dropCachedDetails(ctx, s.cache, upload.ID)
	logger.Infof(ctx, "🔎  inspected upload #%s (%s)", upload.ID, mimeType)
	return nil
}

func (s *uploadInspectorSrv) detectMime(ctx context.Context, key string) (string, error) {
	f, err := s.strg.GetFile(ctx, key)
	if err != nil {
		return "", fmt.Errorf("failed to open file %q: %w", key, err)
	}
	defer closeQuietly(ctx, key, f)

	mimeType, err := s.det.MimeType(f)
	if err != nil {
		return "", fmt.Errorf("failed to detect mime type of %q: %w", key, err)
	}
	return mimeType, nil
}

func (s *uploadInspectorSrv) readMetadata(ctx context.Context, key, mimeType string) (model.Metadata, error) {
	var fill func(io.Reader) (model.Metadata, error)
	switch {
	case IsMeasurableImage(mimeType):
		fill = fillImageMetadata
	case IsPdf(mimeType):
		fill = fillPdfMetadata
	case IsText(mimeType):
		fill = fillTextMetadata
	default:
		return model.Metadata{}, nil
	}

	f, err := s.strg.GetFile(ctx, key)
	if err != nil {
		return model.Metadata{}, fmt.Errorf("failed to open file %q: %w", key, err)
	}
	defer closeQuietly(ctx, key, f)

	return fill(f)
}

func IsMeasurableImage(mimeType string) bool {
	switch normaliseMime(mimeType) {
	case "image/png", "image/jpeg", "image/gif", "image/webp":
		return true
	}
	return false
}

func IsPdf(mimeType string) bool {
	return normaliseMime(mimeType) == "application/pdf"
}

func IsText(mimeType string) bool {
	m := normaliseMime(mimeType)
	return strings.HasPrefix(m, "text/") || m == "application/json" || m == "application/xml"
}

func fillImageMetadata(file io.Reader) (model.Metadata, error) {
	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return model.Metadata{}, fmt.Errorf("error decoding image config: %w", err)
	}
	return model.Metadata{Width: cfg.Width, Height: cfg.Height}, nil
}

func fillPdfMetadata(file io.Reader) (model.Metadata, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return model.Metadata{}, fmt.Errorf("error reading PDF data: %w", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return model.Metadata{}, fmt.Errorf("error opening pdf reader: %w", err)
	}
	return model.Metadata{PageCount: reader.NumPage()}, nil
}

func fillTextMetadata(file io.Reader) (model.Metadata, error) {
	var md model.Metadata

	sc := bufio.NewScanner(file)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		md.LineCount++
		md.WordCount += int64(len(strings.Fields(sc.Text())))
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return model.Metadata{}, fmt.Errorf("text line longer than 1 MiB: %w", err)
		}
		return model.Metadata{}, fmt.Errorf("error reading text data: %w", err)
	}
	return md, nil
}

func closeQuietly(ctx context.Context, key string, c io.Closer) {
	if err := c.Close(); err != nil {
		logger.Warnf(ctx, "failed to close %q: %v", key, err)
	}
}
