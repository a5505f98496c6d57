package files

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// CreateUpload inserts a new upload record.
func (r *PGRepo) CreateUpload(ctx context.Context, rec UploadRecord) error {
	const query = `
INSERT INTO file_uploads (file_id, filename, size_bytes, description, upload_date, deletion_date)
VALUES ($1, $2, $3, $4, $5, NULL)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		rec.FileID,
		rec.Filename,
		rec.Size,
		rec.Description,
		rec.UploadDate,
	)
	return err
}

// FindByFilename returns the first record with the given filename, deleted
// records included. Ordering by upload date keeps first-match-wins
// deterministic, since SQL scan order is otherwise unspecified.
func (r *PGRepo) FindByFilename(ctx context.Context, filename string) (UploadRecord, error) {
	const query = `
SELECT file_id, filename, size_bytes, description, upload_date, deletion_date
FROM file_uploads
WHERE filename = $1
ORDER BY upload_date, file_id
LIMIT 1`

	var rec UploadRecord
	var deletionDate sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, filename).Scan(
		&rec.FileID,
		&rec.Filename,
		&rec.Size,
		&rec.Description,
		&rec.UploadDate,
		&deletionDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return UploadRecord{}, ErrNotFound
		}
		return UploadRecord{}, err
	}
	if deletionDate.Valid {
		rec.DeletionDate = &deletionDate.Time
	}
	return rec, nil
}

// MarkDeleted sets the deletion date on the record with the given file ID.
func (r *PGRepo) MarkDeleted(ctx context.Context, fileID string, deletedAt time.Time) error {
	const query = `
UPDATE file_uploads
SET deletion_date = $2
WHERE file_id = $1`

	res, err := r.DB.ExecContext(ctx, query, fileID, deletedAt)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListLive returns all records without a deletion date.
func (r *PGRepo) ListLive(ctx context.Context) ([]UploadRecord, error) {
	const query = `
SELECT file_id, filename, size_bytes, description, upload_date, deletion_date
FROM file_uploads
WHERE deletion_date IS NULL`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []UploadRecord
	for rows.Next() {
		var rec UploadRecord
		var deletionDate sql.NullTime
		if err := rows.Scan(
			&rec.FileID,
			&rec.Filename,
			&rec.Size,
			&rec.Description,
			&rec.UploadDate,
			&deletionDate,
		); err != nil {
			return nil, err
		}
		if deletionDate.Valid {
			rec.DeletionDate = &deletionDate.Time
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateDownload inserts a new download record.
func (r *PGRepo) CreateDownload(ctx context.Context, rec DownloadRecord) error {
	const query = `
INSERT INTO file_downloads (id, filename, download_date, downloader_ip)
VALUES ($1, $2, $3, $4)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		rec.ID,
		rec.Filename,
		rec.DownloadDate,
		rec.DownloaderIP,
	)
	return err
}

var _ Repo = (*PGRepo)(nil)
