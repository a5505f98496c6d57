package files

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryRepoFindByFilenameScanOrder(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	older := UploadRecord{FileID: "id-1", Filename: "dup.txt", UploadDate: time.Now().UTC()}
	newer := UploadRecord{FileID: "id-2", Filename: "dup.txt", UploadDate: time.Now().UTC().Add(time.Second)}
	if err := repo.CreateUpload(ctx, older); err != nil {
		t.Fatalf("CreateUpload: %v", err)
	}
	if err := repo.CreateUpload(ctx, newer); err != nil {
		t.Fatalf("CreateUpload: %v", err)
	}

	rec, err := repo.FindByFilename(ctx, "dup.txt")
	if err != nil {
		t.Fatalf("FindByFilename: %v", err)
	}
	if rec.FileID != "id-1" {
		t.Fatalf("expected first inserted record, got %s", rec.FileID)
	}
}

func TestMemoryRepoFindByFilenameIncludesDeleted(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	rec := UploadRecord{FileID: "id-1", Filename: "gone.txt", UploadDate: time.Now().UTC()}
	if err := repo.CreateUpload(ctx, rec); err != nil {
		t.Fatalf("CreateUpload: %v", err)
	}
	if err := repo.MarkDeleted(ctx, "id-1", time.Now().UTC()); err != nil {
		t.Fatalf("MarkDeleted: %v", err)
	}

	// The filename scan does not filter on deletion_date.
	found, err := repo.FindByFilename(ctx, "gone.txt")
	if err != nil {
		t.Fatalf("FindByFilename: %v", err)
	}
	if found.DeletionDate == nil {
		t.Fatalf("expected deleted record to still be matched")
	}

	live, err := repo.ListLive(ctx)
	if err != nil {
		t.Fatalf("ListLive: %v", err)
	}
	if len(live) != 0 {
		t.Fatalf("expected deleted record to be absent from listing, got %d", len(live))
	}
}

func TestMemoryRepoMarkDeletedUnknownID(t *testing.T) {
	repo := NewMemoryRepo()

	err := repo.MarkDeleted(context.Background(), "nope", time.Now().UTC())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
