package files

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateUpload(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	rec := UploadRecord{
		FileID:      "file-1",
		Filename:    "report.pdf",
		Size:        2048,
		Description: "quarterly report",
		UploadDate:  time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO file_uploads").
		WithArgs(rec.FileID, rec.Filename, rec.Size, rec.Description, rec.UploadDate).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.CreateUpload(context.Background(), rec); err != nil {
		t.Fatalf("CreateUpload: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoFindByFilenameNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("SELECT file_id, filename, size_bytes, description, upload_date, deletion_date").
		WithArgs("missing.txt").
		WillReturnRows(sqlmock.NewRows([]string{"file_id", "filename", "size_bytes", "description", "upload_date", "deletion_date"}))

	_, err = repo.FindByFilename(context.Background(), "missing.txt")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoFindByFilenameMatchesDeletedRecords(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	uploaded := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	deleted := uploaded.Add(time.Hour)

	rows := sqlmock.NewRows([]string{"file_id", "filename", "size_bytes", "description", "upload_date", "deletion_date"}).
		AddRow("file-1", "gone.txt", int64(10), "", uploaded, deleted)
	mock.ExpectQuery("SELECT file_id, filename, size_bytes, description, upload_date, deletion_date").
		WithArgs("gone.txt").
		WillReturnRows(rows)

	rec, err := repo.FindByFilename(context.Background(), "gone.txt")
	if err != nil {
		t.Fatalf("FindByFilename: %v", err)
	}
	if rec.DeletionDate == nil || !rec.DeletionDate.Equal(deleted) {
		t.Fatalf("expected deleted record to be returned, got %+v", rec)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoMarkDeletedMissingRecord(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	deletedAt := time.Now().UTC()

	mock.ExpectExec("UPDATE file_uploads").
		WithArgs("missing-id", deletedAt).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.MarkDeleted(context.Background(), "missing-id", deletedAt)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListLiveSkipsDeleted(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	uploaded := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"file_id", "filename", "size_bytes", "description", "upload_date", "deletion_date"}).
		AddRow("file-1", "a.txt", int64(5), "test", uploaded, nil)
	mock.ExpectQuery("SELECT file_id, filename, size_bytes, description, upload_date, deletion_date").
		WillReturnRows(rows)

	records, err := repo.ListLive(context.Background())
	if err != nil {
		t.Fatalf("ListLive: %v", err)
	}
	if len(records) != 1 || records[0].FileID != "file-1" {
		t.Fatalf("unexpected records: %+v", records)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
