package mariadb

import (
	"context"
	"database/sql"
	"strings"

	"github.com/fhuszti/cms-uploads-go/internal/logger"
	"github.com/fhuszti/cms-uploads-go/internal/model"
	"github.com/fhuszti/cms-uploads-go/internal/port"
	"github.com/fhuszti/cms-uploads-go/internal/uuid"
)

type UploadRepository struct {
	db *sql.DB
}

// compile-time check: *UploadRepository must satisfy port.UploadRepository
var _ port.UploadRepository = (*UploadRepository)(nil)

func NewUploadRepository(db *sql.DB) *UploadRepository {
	return &UploadRepository{db: db}
}

const uploadColumns = `id, category, object_key, original_filename, mime_type, size_bytes, inspected, metadata, created_at, updated_at`

func (r *UploadRepository) Create(ctx context.Context, upload *model.Upload) error {
	logger.Infof(ctx, "creating database record for %s upload #%s...", upload.Category, upload.ID)

	const query = `
      INSERT INTO uploads
        (id, category, object_key, original_filename, mime_type, size_bytes, inspected, metadata)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		upload.ID, upload.Category, upload.ObjectKey,
		upload.OriginalFilename, upload.MimeType,
		upload.SizeBytes, upload.Inspected, upload.Metadata,
	)
	return err
}

func (r *UploadRepository) Update(ctx context.Context, upload *model.Upload) error {
	logger.Infof(ctx, "updating database record for upload #%s...", upload.ID)

	const query = `
      UPDATE uploads
      SET
        mime_type  = ?,
        size_bytes = ?,
        inspected  = ?,
        metadata   = ?
      WHERE id = ?
    `
	_, err := r.db.ExecContext(ctx, query,
		upload.MimeType,
		upload.SizeBytes,
		upload.Inspected,
		upload.Metadata,
		upload.ID, // WHERE clause
	)
	return err
}

func (r *UploadRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Upload, error) {
	logger.Debugf(ctx, "fetching upload #%s from the database...", id)

	query := `SELECT ` + uploadColumns + ` FROM uploads WHERE id = ?`
	upload, err := scanUpload(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return upload, nil
}

func (r *UploadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	logger.Infof(ctx, "deleting database record for upload #%s...", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM uploads WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// List returns uploads newest first. An empty category matches all.
func (r *UploadRepository) List(ctx context.Context, category model.Category, limit, offset int) ([]*model.Upload, error) {
	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString(`SELECT ` + uploadColumns + ` FROM uploads`)
	if category != "" {
		sb.WriteString(` WHERE category = ?`)
		args = append(args, category)
	}
	sb.WriteString(` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Warnf(ctx, "failed to close rows: %v", err)
		}
	}()

	uploads := make([]*model.Upload, 0, limit)
	for rows.Next() {
		u, err := scanUpload(rows)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return uploads, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUpload(row rowScanner) (*model.Upload, error) {
	var u model.Upload
	if err := row.Scan(
		&u.ID, &u.Category, &u.ObjectKey,
		&u.OriginalFilename, &u.MimeType,
		&u.SizeBytes, &u.Inspected, &u.Metadata,
		&u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}
