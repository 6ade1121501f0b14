package upload

import (
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	"github.com/fhuszti/cms-uploads-go/internal/model"
	"github.com/fhuszti/cms-uploads-go/internal/port"
	"github.com/fhuszti/cms-uploads-go/internal/uuid"
)

type mockRepo struct {
	record *model.Upload
	list   []*model.Upload

	getErr    error
	createErr error
	updateErr error
	deleteErr error
	listErr   error

	created      *model.Upload
	updated      *model.Upload
	deleteCalled bool
	deletedID    uuid.UUID

	listCategory model.Category
	listLimit    int
	listOffset   int
}

func (m *mockRepo) Create(ctx context.Context, u *model.Upload) error {
	m.created = u
	return m.createErr
}
func (m *mockRepo) Update(ctx context.Context, u *model.Upload) error {
	m.updated = u
	return m.updateErr
}
func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Upload, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.record, nil
}
func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.deleteCalled = true
	m.deletedID = id
	return m.deleteErr
}
func (m *mockRepo) List(ctx context.Context, category model.Category, limit, offset int) ([]*model.Upload, error) {
	m.listCategory, m.listLimit, m.listOffset = category, limit, offset
	return m.list, m.listErr
}

type mockStorage struct {
	content  []byte
	statInfo port.FileInfo

	saveErr   error
	getErr    error
	statErr   error
	removeErr error

	saveCalled   bool
	savedDir     string
	savedExt     string
	getCalls     int
	removeCalled bool
	removedKey   string
}

func (m *mockStorage) SaveFile(ctx context.Context, dir, ext string, reader io.Reader, fileSize int64) (string, error) {
	m.saveCalled = true
	m.savedDir, m.savedExt = dir, ext
	if m.saveErr != nil {
		return "", m.saveErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	m.content = data
	return dir + "/generated" + ext, nil
}
func (m *mockStorage) GetFile(ctx context.Context, key string) (io.ReadCloser, error) {
	m.getCalls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	return io.NopCloser(bytes.NewReader(m.content)), nil
}
func (m *mockStorage) StatFile(ctx context.Context, key string) (port.FileInfo, error) {
	if m.statErr != nil {
		return port.FileInfo{}, m.statErr
	}
	return m.statInfo, nil
}
func (m *mockStorage) RemoveFile(ctx context.Context, key string) error {
	m.removeCalled = true
	m.removedKey = key
	return m.removeErr
}

type mockDetector struct {
	sig      port.Signature
	found    bool
	mimeType string
	err      error
	panicMsg string
}

func (d *mockDetector) Detect(r io.Reader) (port.Signature, bool, error) {
	if d.panicMsg != "" {
		panic(d.panicMsg)
	}
	return d.sig, d.found, d.err
}
func (d *mockDetector) MimeType(r io.Reader) (string, error) {
	return d.mimeType, d.err
}

type mockValidator struct {
	ok     bool
	called bool
	key    string
}

func (v *mockValidator) ValidateContent(ctx context.Context, key string, category model.Category) bool {
	v.called = true
	v.key = key
	return v.ok
}

type mockDispatcher struct {
	err    error
	called bool
	id     uuid.UUID
}

func (d *mockDispatcher) EnqueueInspectUpload(ctx context.Context, id uuid.UUID) error {
	d.called = true
	d.id = id
	return d.err
}

type mockCache struct {
	delErr        error
	delCalled     bool
	delEtagCalled bool
}

func (c *mockCache) GetUploadDetails(ctx context.Context, id uuid.UUID) ([]byte, error) {
	return nil, errors.New("not used")
}
func (c *mockCache) GetEtagUploadDetails(ctx context.Context, id uuid.UUID) (string, error) {
	return "", errors.New("not used")
}
func (c *mockCache) SetUploadDetails(ctx context.Context, id uuid.UUID, data []byte, validUntil time.Time) {
}
func (c *mockCache) SetEtagUploadDetails(ctx context.Context, id uuid.UUID, etag string, validUntil time.Time) {
}
func (c *mockCache) DeleteUploadDetails(ctx context.Context, id uuid.UUID) error {
	c.delCalled = true
	return c.delErr
}
func (c *mockCache) DeleteEtagUploadDetails(ctx context.Context, id uuid.UUID) error {
	c.delEtagCalled = true
	return c.delErr
}
