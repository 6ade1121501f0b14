package mock

import (
	"bytes"
	"context"
	"io"

	"github.com/fhuszti/cms-uploads-go/internal/model"
	"github.com/fhuszti/cms-uploads-go/internal/port"
	"github.com/fhuszti/cms-uploads-go/internal/uuid"
)

// Uploader implements port.Uploader for tests.
type Uploader struct {
	Out    *model.Upload
	Err    error
	Called bool
	In     port.UploadFileInput
	Body   []byte
}

func (m *Uploader) UploadFile(ctx context.Context, in port.UploadFileInput) (*model.Upload, error) {
	m.Called = true
	m.In = in
	if in.Content != nil {
		m.Body, _ = io.ReadAll(in.Content)
	}
	return m.Out, m.Err
}

// UploadGetter implements port.UploadGetter for tests.
type UploadGetter struct {
	Out    *model.Upload
	Err    error
	Called bool
}

func (m *UploadGetter) GetUpload(ctx context.Context, id uuid.UUID) (*model.Upload, error) {
	m.Called = true
	return m.Out, m.Err
}

// UploadLister implements port.UploadLister for tests.
type UploadLister struct {
	Out    []*model.Upload
	Err    error
	Called bool
	In     port.ListUploadsInput
}

func (m *UploadLister) ListUploads(ctx context.Context, in port.ListUploadsInput) ([]*model.Upload, error) {
	m.Called = true
	m.In = in
	return m.Out, m.Err
}

// UploadOpener implements port.UploadOpener for tests.
type UploadOpener struct {
	Out     *model.Upload
	Content []byte
	Err     error
	Called  bool
}

func (m *UploadOpener) OpenUpload(ctx context.Context, id uuid.UUID) (*model.Upload, io.ReadCloser, error) {
	m.Called = true
	if m.Err != nil {
		return nil, nil, m.Err
	}
	return m.Out, io.NopCloser(bytes.NewReader(m.Content)), nil
}

// UploadDeleter implements port.UploadDeleter for tests.
type UploadDeleter struct {
	Err    error
	Called bool
	ID     uuid.UUID
}

func (m *UploadDeleter) DeleteUpload(ctx context.Context, id uuid.UUID) error {
	m.Called = true
	m.ID = id
	return m.Err
}

// UploadInspector implements port.UploadInspector for tests.
type UploadInspector struct {
	Err    error
	Called bool
	ID     uuid.UUID
}

func (m *UploadInspector) InspectUpload(ctx context.Context, id uuid.UUID) error {
	m.Called = true
	m.ID = id
	return m.Err
}

// Recorder implements port.UploadRecorder for tests.
type Recorder struct {
	Outcomes []string
	Category model.Category
}

func (m *Recorder) RecordUpload(category model.Category, outcome string) {
	m.Category = category
	m.Outcomes = append(m.Outcomes, outcome)
}
