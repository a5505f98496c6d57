package files

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"filebox-backend/internal/shared/storage/object"
	"filebox-backend/internal/shared/util"
)

// Service contains the gateway logic. Every operation is a short sequential
// saga over the object store and the record store with no compensation: a
// failure between the two calls leaves the documented partial state behind.
type Service struct {
	Store object.ObjectStore
	Repo  Repo
}

// Upload stores the payload under its original filename and records the
// upload metadata. The object key is the filename, not the file ID, so
// re-uploading the same name overwrites the previous object while the
// previous record stays in place.
func (s *Service) Upload(ctx context.Context, fileName, description string, r io.Reader) (UploadRecord, error) {
	sanitized, err := util.SanitizeFileName(fileName)
	if err != nil {
		return UploadRecord{}, ErrInvalidInput
	}

	size, err := s.Store.Put(ctx, sanitized, r)
	if err != nil {
		return UploadRecord{}, err
	}

	rec := UploadRecord{
		FileID:      uuid.NewString(),
		Filename:    sanitized,
		Size:        size,
		Description: description,
		UploadDate:  time.Now().UTC(),
	}

	if err := s.Repo.CreateUpload(ctx, rec); err != nil {
		return UploadRecord{}, err
	}

	return rec, nil
}

// Download fetches the object into memory, records the download event, and
// returns the content. The event is written only after a successful fetch,
// so failed fetches leave no audit trail.
func (s *Service) Download(ctx context.Context, filename, downloaderIP string) ([]byte, error) {
	rc, err := s.Store.Get(ctx, filename)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(rc)
	closeErr := rc.Close()
	if err != nil {
		return nil, err
	}
	if closeErr != nil {
		return nil, closeErr
	}

	rec := DownloadRecord{
		ID:           uuid.NewString(),
		Filename:     filename,
		DownloadDate: time.Now().UTC(),
		DownloaderIP: downloaderIP,
	}
	if err := s.Repo.CreateDownload(ctx, rec); err != nil {
		return nil, err
	}

	return data, nil
}

// Delete looks up the record by filename, removes the object, then stamps
// the record's deletion date. The record itself is retained for audit
// history. The lookup-delete-update sequence is not atomic; the update
// targets the file ID captured by the lookup.
func (s *Service) Delete(ctx context.Context, filename string) (time.Time, error) {
	rec, err := s.Repo.FindByFilename(ctx, filename)
	if err != nil {
		return time.Time{}, err
	}

	if err := s.Store.Delete(ctx, filename); err != nil {
		return time.Time{}, err
	}

	deletedAt := time.Now().UTC()
	if err := s.Repo.MarkDeleted(ctx, rec.FileID, deletedAt); err != nil {
		return time.Time{}, err
	}

	return deletedAt, nil
}

// List returns all live upload records in the record store's scan order.
func (s *Service) List(ctx context.Context) ([]UploadRecord, error) {
	return s.Repo.ListLive(ctx)
}
