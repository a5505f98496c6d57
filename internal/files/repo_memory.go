package files

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo. It scans records in
// insertion order, which makes the first-match-wins behavior of
// FindByFilename deterministic in tests.
type MemoryRepo struct {
	mu        sync.RWMutex
	uploads   []UploadRecord
	downloads []DownloadRecord
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// CreateUpload appends a new upload record.
func (r *MemoryRepo) CreateUpload(ctx context.Context, rec UploadRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.uploads = append(r.uploads, rec)
	return nil
}

// FindByFilename returns the first record with the given filename in
// insertion order, deleted records included.
func (r *MemoryRepo) FindByFilename(ctx context.Context, filename string) (UploadRecord, error) {
	if err := ctx.Err(); err != nil {
		return UploadRecord{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.uploads {
		if r.uploads[i].Filename == filename {
			return r.uploads[i], nil
		}
	}
	return UploadRecord{}, ErrNotFound
}

// MarkDeleted sets the deletion date on the record with the given file ID.
func (r *MemoryRepo) MarkDeleted(ctx context.Context, fileID string, deletedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.uploads {
		if r.uploads[i].FileID == fileID {
			when := deletedAt
			r.uploads[i].DeletionDate = &when
			return nil
		}
	}
	return ErrNotFound
}

// ListLive returns all records without a deletion date, in insertion order.
func (r *MemoryRepo) ListLive(ctx context.Context) ([]UploadRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]UploadRecord, 0, len(r.uploads))
	for _, rec := range r.uploads {
		if rec.Live() {
			out = append(out, rec)
		}
	}
	return out, nil
}

// CreateDownload appends a new download record.
func (r *MemoryRepo) CreateDownload(ctx context.Context, rec DownloadRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.downloads = append(r.downloads, rec)
	return nil
}

// Uploads returns a snapshot of all upload records, deleted ones included.
func (r *MemoryRepo) Uploads() []UploadRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]UploadRecord, len(r.uploads))
	copy(out, r.uploads)
	return out
}

// Downloads returns a snapshot of all download records.
func (r *MemoryRepo) Downloads() []DownloadRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]DownloadRecord, len(r.downloads))
	copy(out, r.downloads)
	return out
}

var _ Repo = (*MemoryRepo)(nil)
