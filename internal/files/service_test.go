package files

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	localstore "filebox-backend/internal/shared/storage/object/local"
)

func TestUploadSanitizesFilenameAndComputesSize(t *testing.T) {
	store := localstore.New(t.TempDir())
	repo := NewMemoryRepo()
	svc := &Service{Store: store, Repo: repo}

	rec, err := svc.Upload(context.Background(), "some/dir\\file.txt", "desc", strings.NewReader("payload"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if rec.Filename != "some_dir_file.txt" {
		t.Fatalf("expected sanitized filename, got %s", rec.Filename)
	}
	if rec.Size != int64(len("payload")) {
		t.Fatalf("expected size %d, got %d", len("payload"), rec.Size)
	}
	if rec.DeletionDate != nil {
		t.Fatalf("expected new record to be live")
	}

	rc, err := store.Get(context.Background(), rec.Filename)
	if err != nil {
		t.Fatalf("Get stored object: %v", err)
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Fatalf("read stored object: %v", err)
	}
	if string(data) != "payload" {
		t.Fatalf("stored object mismatch: %q", data)
	}
}

func TestUploadRejectsTraversalFilename(t *testing.T) {
	svc := &Service{Store: localstore.New(t.TempDir()), Repo: NewMemoryRepo()}

	_, err := svc.Upload(context.Background(), "../../etc/passwd", "", strings.NewReader("x"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

// A record-store failure after the object write leaves the object behind:
// the two calls are sequential with no compensation.
func TestUploadRecordFailureLeavesObjectBehind(t *testing.T) {
	store := localstore.New(t.TempDir())
	repo := &failingRepo{createUploadErr: errors.New("record store down")}
	svc := &Service{Store: store, Repo: repo}

	_, err := svc.Upload(context.Background(), "orphan.txt", "", strings.NewReader("content"))
	if err == nil {
		t.Fatalf("expected error from record store")
	}

	rc, err := store.Get(context.Background(), "orphan.txt")
	if err != nil {
		t.Fatalf("expected object to remain after record failure, got %v", err)
	}
	rc.Close()
}

func TestDeleteTargetsFirstMatchInScanOrder(t *testing.T) {
	store := localstore.New(t.TempDir())
	repo := NewMemoryRepo()
	svc := &Service{Store: store, Repo: repo}

	first, err := svc.Upload(context.Background(), "dup.txt", "", strings.NewReader("one"))
	if err != nil {
		t.Fatalf("Upload first: %v", err)
	}
	second, err := svc.Upload(context.Background(), "dup.txt", "", strings.NewReader("two"))
	if err != nil {
		t.Fatalf("Upload second: %v", err)
	}

	if _, err := svc.Delete(context.Background(), "dup.txt"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	for _, rec := range repo.Uploads() {
		switch rec.FileID {
		case first.FileID:
			if rec.DeletionDate == nil {
				t.Fatalf("expected first record to be marked deleted")
			}
		case second.FileID:
			if rec.DeletionDate != nil {
				t.Fatalf("expected second record to stay live")
			}
		}
	}
}

func TestDownloadEventWriteFailureSurfacesError(t *testing.T) {
	store := localstore.New(t.TempDir())
	if _, err := store.Put(context.Background(), "a.txt", strings.NewReader("hello")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	repo := &failingRepo{createDownloadErr: errors.New("record store down")}
	svc := &Service{Store: store, Repo: repo}

	_, err := svc.Download(context.Background(), "a.txt", "10.0.0.1")
	if err == nil {
		t.Fatalf("expected error when download event cannot be recorded")
	}
}

type failingRepo struct {
	createUploadErr   error
	createDownloadErr error
}

func (f *failingRepo) CreateUpload(ctx context.Context, rec UploadRecord) error {
	return f.createUploadErr
}

func (f *failingRepo) FindByFilename(ctx context.Context, filename string) (UploadRecord, error) {
	return UploadRecord{}, ErrNotFound
}

func (f *failingRepo) MarkDeleted(ctx context.Context, fileID string, deletedAt time.Time) error {
	return ErrNotFound
}

func (f *failingRepo) ListLive(ctx context.Context) ([]UploadRecord, error) {
	return nil, nil
}

func (f *failingRepo) CreateDownload(ctx context.Context, rec DownloadRecord) error {
	return f.createDownloadErr
}

var _ Repo = (*failingRepo)(nil)
