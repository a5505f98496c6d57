package files

import "time"

// UploadResponse is returned by the upload endpoint.
type UploadResponse struct {
	FileID   string `json:"file_id"`
	Filename string `json:"filename"`
}

// FileResponse is the reduced projection returned by the listing endpoint.
type FileResponse struct {
	FileID     string    `json:"file_id"`
	Filename   string    `json:"filename"`
	Size       int64     `json:"size"`
	UploadDate time.Time `json:"upload_date"`
}

// DeleteResponse is returned by the delete endpoint.
type DeleteResponse struct {
	Filename   string    `json:"filename"`
	Status     string    `json:"status"`
	DeleteDate time.Time `json:"delete_date"`
}

func toUploadResponse(rec UploadRecord) UploadResponse {
	return UploadResponse{
		FileID:   rec.FileID,
		Filename: rec.Filename,
	}
}

func toFileResponse(rec UploadRecord) FileResponse {
	return FileResponse{
		FileID:     rec.FileID,
		Filename:   rec.Filename,
		Size:       rec.Size,
		UploadDate: rec.UploadDate,
	}
}
