package mariadb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fhuszti/cms-uploads-go/internal/model"
	"github.com/fhuszti/cms-uploads-go/internal/uuid"
	guuid "github.com/google/uuid"
)

var mockID = uuid.UUID(guuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))

func newMock(t *testing.T) (*UploadRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return NewUploadRepository(sqlDB), mock
}

func uploadRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "category", "object_key", "original_filename", "mime_type",
		"size_bytes", "inspected", "metadata", "created_at", "updated_at",
	})
}

func TestUploadRepository_Create_Success(t *testing.T) {
	repo, mock := newMock(t)

	u := &model.Upload{
		ID:               mockID,
		Category:         model.CategoryMedia,
		ObjectKey:        "media/2024/03/09/x.png",
		OriginalFilename: "photo.png",
		SizeBytes:        12345,
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO uploads`)).
		WithArgs(
			u.ID,
			"media",
			u.ObjectKey,
			u.OriginalFilename,
			nil,
			u.SizeBytes,
			false,
			sqlmock.AnyArg(), // metadata
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), u); err != nil {
		t.Errorf("Create() returned unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestUploadRepository_Create_ExecError(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("INSERT INTO uploads").WillReturnError(errors.New("db.Exec failed"))

	err := repo.Create(context.Background(), &model.Upload{ID: mockID, Category: model.CategoryDocument})
	if err == nil || err.Error() != "db.Exec failed" {
		t.Fatalf("expected 'db.Exec failed', got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestUploadRepository_Update(t *testing.T) {
	repo, mock := newMock(t)

	mt := "image/png"
	u := &model.Upload{ID: mockID, MimeType: &mt, SizeBytes: 10, Inspected: true, Metadata: model.Metadata{Width: 2, Height: 3}}

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE uploads`)).
		WithArgs(mt, int64(10), true, []byte(`{"width":2,"height":3}`), u.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Update(context.Background(), u); err != nil {
		t.Errorf("Update() returned unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestUploadRepository_GetByID(t *testing.T) {
	repo, mock := newMock(t)

	created := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
	idBytes, _ := mockID.Value()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM uploads WHERE id = ?`)).
		WithArgs(mockID).
		WillReturnRows(uploadRows().AddRow(
			idBytes, "document", "documents/2024/03/09/x.pdf", "report.pdf", "application/pdf",
			int64(2048), true, []byte(`{"page_count":4}`), created, created,
		))

	got, err := repo.GetByID(context.Background(), mockID)
	if err != nil {
		t.Fatalf("GetByID() returned unexpected error: %v", err)
	}
	if got.ID != mockID || got.Category != model.CategoryDocument || got.ObjectKey != "documents/2024/03/09/x.pdf" {
		t.Errorf("unexpected upload: %+v", got)
	}
	if got.MimeType == nil || *got.MimeType != "application/pdf" {
		t.Errorf("MimeType = %v; want application/pdf", got.MimeType)
	}
	if got.Metadata.PageCount != 4 || !got.Inspected || got.SizeBytes != 2048 {
		t.Errorf("unexpected upload details: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestUploadRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("FROM uploads WHERE id").WillReturnRows(uploadRows())

	if _, err := repo.GetByID(context.Background(), mockID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("error = %v; want sql.ErrNoRows", err)
	}
}

func TestUploadRepository_Delete(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM uploads WHERE id = ?`)).
		WithArgs(mockID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	if err := repo.Delete(context.Background(), mockID); err != nil {
		t.Errorf("Delete() returned unexpected error: %v", err)
	}

	mock.ExpectExec("DELETE FROM uploads").WillReturnResult(sqlmock.NewResult(0, 0))
	if err := repo.Delete(context.Background(), mockID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("error = %v; want sql.ErrNoRows", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestUploadRepository_List(t *testing.T) {
	tests := []struct {
		name     string
		category model.Category
		query    string
		args     []any
	}{
		{
			name:  "all categories",
			query: `FROM uploads ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
			args:  []any{10, 20},
		},
		{
			name:     "one category",
			category: model.CategoryMedia,
			query:    `FROM uploads WHERE category = ? ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
			args:     []any{"media", 10, 20},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock := newMock(t)

			idBytes, _ := mockID.Value()
			now := time.Now()
			args := make([]driver.Value, len(tc.args))
			for i, a := range tc.args {
				args[i] = a
			}
			mock.ExpectQuery(regexp.QuoteMeta(tc.query)).
				WithArgs(args...).
				WillReturnRows(uploadRows().
					AddRow(idBytes, "media", "media/a.png", "a.png", nil, int64(1), false, nil, now, now))

			got, err := repo.List(context.Background(), tc.category, 10, 20)
			if err != nil {
				t.Fatalf("List() returned unexpected error: %v", err)
			}
			if len(got) != 1 || got[0].ObjectKey != "media/a.png" || got[0].MimeType != nil {
				t.Errorf("unexpected uploads: %+v", got)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("there were unfulfilled expectations: %s", err)
			}
		})
	}
}

func TestUploadRepository_List_QueryError(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("FROM uploads").WillReturnError(errors.New("boom"))

	if _, err := repo.List(context.Background(), "", 5, 0); err == nil {
		t.Fatal("expected error, got nil")
	}
}
