package upload

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"testing"

	"github.com/fhuszti/cms-uploads-go/internal/model"
	"github.com/fhuszti/cms-uploads-go/internal/port"
)

func TestGetUpload(t *testing.T) {
	rec := &model.Upload{ID: fixedID, ObjectKey: "k"}

	got, err := NewUploadGetter(&mockRepo{record: rec}).GetUpload(context.Background(), fixedID)
	if err != nil || got != rec {
		t.Fatalf("GetUpload = %v, %v; want record", got, err)
	}

	_, err = NewUploadGetter(&mockRepo{getErr: sql.ErrNoRows}).GetUpload(context.Background(), fixedID)
	if !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("error = %v; want ErrObjectNotFound", err)
	}

	_, err = NewUploadGetter(&mockRepo{getErr: errors.New("db fail")}).GetUpload(context.Background(), fixedID)
	if err == nil || err.Error() != "db fail" {
		t.Errorf("error = %v; want db fail", err)
	}
}

func TestListUploads_Bounds(t *testing.T) {
	tests := []struct {
		name       string
		in         port.ListUploadsInput
		wantLimit  int
		wantOffset int
	}{
		{"defaults", port.ListUploadsInput{}, DefaultListLimit, 0},
		{"explicit", port.ListUploadsInput{Category: model.CategoryMedia, Limit: 5, Offset: 10}, 5, 10},
		{"capped", port.ListUploadsInput{Limit: 1000}, MaxListLimit, 0},
		{"negative offset", port.ListUploadsInput{Limit: 3, Offset: -4}, 3, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockRepo{}
			got, err := NewUploadLister(repo).ListUploads(context.Background(), tc.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got == nil || len(got) != 0 {
				t.Errorf("got %v; want empty non-nil slice", got)
			}
			if repo.listCategory != tc.in.Category || repo.listLimit != tc.wantLimit || repo.listOffset != tc.wantOffset {
				t.Errorf("List(%q, %d, %d); want (%q, %d, %d)", repo.listCategory, repo.listLimit, repo.listOffset,
					tc.in.Category, tc.wantLimit, tc.wantOffset)
			}
		})
	}
}

func TestListUploads_Error(t *testing.T) {
	_, err := NewUploadLister(&mockRepo{listErr: errors.New("db fail")}).ListUploads(context.Background(), port.ListUploadsInput{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestDeleteUpload_NotFound(t *testing.T) {
	svc := NewUploadDeleter(&mockRepo{getErr: sql.ErrNoRows}, &mockCache{}, &mockStorage{})
	if err := svc.DeleteUpload(context.Background(), fixedID); !errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
}

func TestDeleteUpload_RemoveError(t *testing.T) {
	repo := &mockRepo{record: &model.Upload{ID: fixedID, ObjectKey: "k"}}
	strg := &mockStorage{removeErr: errors.New("remove fail")}
	svc := NewUploadDeleter(repo, &mockCache{}, strg)

	if err := svc.DeleteUpload(context.Background(), fixedID); err == nil || err.Error() != "remove fail" {
		t.Fatalf("expected remove fail, got %v", err)
	}
	if repo.deleteCalled {
		t.Error("record must survive a failed file removal")
	}
}

func TestDeleteUpload_MissingFileStillDeletesRecord(t *testing.T) {
	repo := &mockRepo{record: &model.Upload{ID: fixedID, ObjectKey: "k"}}
	strg := &mockStorage{removeErr: ErrObjectNotFound}
	svc := NewUploadDeleter(repo, &mockCache{}, strg)

	if err := svc.DeleteUpload(context.Background(), fixedID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.deleteCalled {
		t.Error("expected repo.Delete to be called")
	}
}

func TestDeleteUpload_DeleteError(t *testing.T) {
	repo := &mockRepo{record: &model.Upload{ID: fixedID, ObjectKey: "k"}, deleteErr: errors.New("delete fail")}
	svc := NewUploadDeleter(repo, &mockCache{}, &mockStorage{})

	if err := svc.DeleteUpload(context.Background(), fixedID); err == nil || err.Error() != "delete fail" {
		t.Fatalf("expected delete fail, got %v", err)
	}
}

func TestDeleteUpload_Success(t *testing.T) {
	repo := &mockRepo{record: &model.Upload{ID: fixedID, ObjectKey: "media/2024/01/01/x.png"}}
	strg := &mockStorage{}
	cache := &mockCache{delErr: errors.New("cache down")}
	svc := NewUploadDeleter(repo, cache, strg)

	if err := svc.DeleteUpload(context.Background(), fixedID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strg.removedKey != "media/2024/01/01/x.png" {
		t.Errorf("removed %q; want the object key", strg.removedKey)
	}
	if !repo.deleteCalled || repo.deletedID != fixedID {
		t.Error("expected repo.Delete to be called with ID")
	}
	if !cache.delCalled || !cache.delEtagCalled {
		t.Error("expected cache entries to be dropped")
	}
}

func TestOpenUpload(t *testing.T) {
	rec := &model.Upload{ID: fixedID, ObjectKey: "k"}
	strg := &mockStorage{content: []byte("payload")}

	got, rc, err := NewUploadOpener(&mockRepo{record: rec}, strg).OpenUpload(context.Background(), fixedID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if got != rec || string(data) != "payload" {
		t.Errorf("OpenUpload = %+v, %q", got, data)
	}
}

func TestOpenUpload_Errors(t *testing.T) {
	_, _, err := NewUploadOpener(&mockRepo{getErr: sql.ErrNoRows}, &mockStorage{}).OpenUpload(context.Background(), fixedID)
	if !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("error = %v; want ErrObjectNotFound", err)
	}

	rec := &model.Upload{ID: fixedID, ObjectKey: "k"}
	_, _, err = NewUploadOpener(&mockRepo{record: rec}, &mockStorage{getErr: ErrObjectNotFound}).OpenUpload(context.Background(), fixedID)
	if !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("error = %v; want wrapped ErrObjectNotFound", err)
	}
}
