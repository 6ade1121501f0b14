package upload

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/fhuszti/cms-uploads-go/internal/model"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestInspectUpload(t *testing.T) {
	tests := []struct {
		name     string
		content  []byte
		mimeType string
		want     model.Metadata
	}{
		{
			name:     "image dimensions",
			content:  pngBytes(t, 12, 7),
			mimeType: "image/png",
			want:     model.Metadata{Width: 12, Height: 7},
		},
		{
			name:     "text counts",
			content:  []byte("one two three\nfour five\n\nsix"),
			mimeType: "text/plain; charset=utf-8",
			want:     model.Metadata{WordCount: 6, LineCount: 4},
		},
		{
			name:     "json counts as text",
			content:  []byte(`{"a": 1}`),
			mimeType: "application/json",
			want:     model.Metadata{WordCount: 2, LineCount: 1},
		},
		{
			name:     "unsupported format",
			content:  []byte("PK\x03\x04"),
			mimeType: "application/zip",
			want:     model.Metadata{},
		},
		{
			name:     "broken pdf keeps mime only",
			content:  []byte("%PDF-1.7 truncated"),
			mimeType: "application/pdf",
			want:     model.Metadata{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := &model.Upload{ID: fixedID, ObjectKey: "k"}
			repo := &mockRepo{record: rec}
			cache := &mockCache{}
			svc := NewUploadInspector(repo, &mockStorage{content: tc.content}, &mockDetector{mimeType: tc.mimeType}, cache)

			if err := svc.InspectUpload(context.Background(), fixedID); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if repo.updated == nil {
				t.Fatal("expected record to be updated")
			}
			if !repo.updated.Inspected {
				t.Error("expected upload to be marked inspected")
			}
			if repo.updated.MimeType == nil || *repo.updated.MimeType != tc.mimeType {
				t.Errorf("MimeType = %v; want %q", repo.updated.MimeType, tc.mimeType)
			}
			if repo.updated.Metadata != tc.want {
				t.Errorf("Metadata = %+v; want %+v", repo.updated.Metadata, tc.want)
			}
			if !cache.delCalled || !cache.delEtagCalled {
				t.Error("expected cached details to be dropped")
			}
		})
	}
}

func TestInspectUpload_AlreadyInspected(t *testing.T) {
	repo := &mockRepo{record: &model.Upload{ID: fixedID, ObjectKey: "k", Inspected: true}}
	strg := &mockStorage{}
	svc := NewUploadInspector(repo, strg, &mockDetector{}, &mockCache{})

	if err := svc.InspectUpload(context.Background(), fixedID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.updated != nil || strg.getCalls != 0 {
		t.Error("inspected upload must be left alone")
	}
}

func TestInspectUpload_Errors(t *testing.T) {
	rec := func() *model.Upload { return &model.Upload{ID: fixedID, ObjectKey: "k"} }

	tests := []struct {
		name    string
		repo    *mockRepo
		strg    *mockStorage
		det     *mockDetector
		wantErr error
	}{
		{"not found", &mockRepo{getErr: sql.ErrNoRows}, &mockStorage{}, &mockDetector{}, ErrObjectNotFound},
		{"file gone", &mockRepo{record: rec()}, &mockStorage{getErr: ErrObjectNotFound}, &mockDetector{}, ErrObjectNotFound},
		{"detector fails", &mockRepo{record: rec()}, &mockStorage{}, &mockDetector{err: errors.New("boom")}, nil},
		{"update fails", &mockRepo{record: rec(), updateErr: errors.New("db fail")}, &mockStorage{}, &mockDetector{mimeType: "application/zip"}, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := NewUploadInspector(tc.repo, tc.strg, tc.det, &mockCache{}).InspectUpload(context.Background(), fixedID)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("error = %v; want %v", err, tc.wantErr)
			}
		})
	}
}
