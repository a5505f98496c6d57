package files

import (
	"context"
	"time"
)

// Repo defines persistence operations over the two record collections:
// upload records keyed by file_id and download records keyed by id.
//
// FindByFilename and ListLive are full scans by contract; no backend keeps a
// secondary index on filename. Duplicate filenames are possible and
// FindByFilename returns the first match in the backend's scan order.
type Repo interface {
	CreateUpload(ctx context.Context, rec UploadRecord) error
	FindByFilename(ctx context.Context, filename string) (UploadRecord, error)
	MarkDeleted(ctx context.Context, fileID string, deletedAt time.Time) error
	ListLive(ctx context.Context) ([]UploadRecord, error)
	CreateDownload(ctx context.Context, rec DownloadRecord) error
}
