package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/leavedesk/leavedesk-backend-go/internal/handler/http/response"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/storage"
)

const maxUploadSize = 10 << 20 // 10 MiB

var allowedUploadExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

type FileHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
}

type FileHandlerImpl struct {
	fileStorage storage.FileStorage
}

func NewFileHandler(fileStorage storage.FileStorage) FileHandler {
	return &FileHandlerImpl{fileStorage: fileStorage}
}

// Upload stores a supporting document (or logo/avatar) and returns its
// public URL. The caller references the URL from the owning record.
func (f *FileHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	claims, err := accessClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Field 'file' is required", nil)
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		response.BadRequest(w, "File exceeds the 10MB size limit", nil)
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedUploadExtensions[ext] {
		response.BadRequest(w, "File type is not allowed", nil)
		return
	}

	path := fmt.Sprintf("%s/%s%s", claims.TenantID, uuid.NewString(), ext)
	key, err := f.fileStorage.Upload(r.Context(), file, path, header.Header.Get("Content-Type"))
	if err != nil {
		slog.Error("file upload failed", "error", err)
		response.InternalServerError(w, "Failed to store file")
		return
	}

	response.Created(w, "File uploaded successfully", map[string]string{
		"path": key,
		"url":  f.fileStorage.URL(key),
	})
}
