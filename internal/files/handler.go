package files

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"filebox-backend/internal/shared/server/respond"
	"filebox-backend/internal/shared/storage/object"
)

const maxUploadSize = 100 << 20 // 100MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches file routes at the engine root.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/upload", h.upload)
	r.GET("/download/:filename", h.download)
	r.DELETE("/delete/:filename", h.delete)
	r.GET("/files", h.list)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	description := c.PostForm("description")

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	rec, err := h.Svc.Upload(c.Request.Context(), fileHeader.Filename, description, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file name", nil)
		case errors.Is(err, object.ErrNoCredentials):
			respond.Error(c, http.StatusBadRequest, "credentials_unavailable", "Credentials not available", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", err.Error(), nil)
		}
		return
	}

	c.Set("filename", rec.Filename)
	c.Set("fileId", rec.FileID)
	respond.JSON(c, http.StatusCreated, toUploadResponse(rec))
}

func (h *Handler) download(c *gin.Context) {
	filename := c.Param("filename")
	c.Set("filename", filename)

	data, err := h.Svc.Download(c.Request.Context(), filename, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, object.ErrNoCredentials):
			respond.Error(c, http.StatusBadRequest, "credentials_unavailable", "Credentials not available", nil)
		case errors.Is(err, object.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "File not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", err.Error(), nil)
		}
		return
	}

	c.Data(http.StatusOK, "application/octet-stream", data)
}

func (h *Handler) delete(c *gin.Context) {
	filename := c.Param("filename")
	c.Set("filename", filename)

	deletedAt, err := h.Svc.Delete(c.Request.Context(), filename)
	if err != nil {
		switch {
		case errors.Is(err, object.ErrNoCredentials):
			respond.Error(c, http.StatusBadRequest, "credentials_unavailable", "Credentials not available", nil)
		case errors.Is(err, ErrNotFound), errors.Is(err, object.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "File not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", err.Error(), nil)
		}
		return
	}

	respond.OK(c, DeleteResponse{
		Filename:   filename,
		Status:     "deleted",
		DeleteDate: deletedAt,
	})
}

// list maps every failure to a server error: unlike the other operations,
// the listing endpoint has no distinct credentials failure mode.
func (h *Handler) list(c *gin.Context) {
	records, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", err.Error(), nil)
		return
	}

	resp := make([]FileResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, toFileResponse(rec))
	}

	respond.OK(c, resp)
}
