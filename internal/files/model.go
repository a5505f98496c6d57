package files

import "time"

// UploadRecord is the metadata kept for one uploaded file. A record with a
// non-nil DeletionDate describes a file whose object-store entry has been
// removed; it is excluded from listings but retained for audit history.
type UploadRecord struct {
	FileID       string
	Filename     string
	Size         int64
	Description  string
	UploadDate   time.Time
	DeletionDate *time.Time
}

// Live reports whether the record still has a stored object.
func (r UploadRecord) Live() bool {
	return r.DeletionDate == nil
}

// DownloadRecord is the audit entry written for every successful download.
// It is never mutated or removed.
type DownloadRecord struct {
	ID           string
	Filename     string
	DownloadDate time.Time
	DownloaderIP string
}
