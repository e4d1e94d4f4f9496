package handlers

import (
	"net/http"

	"github.com/AnshRaj112/goexplore-backend/internal/logging"
)

const maxUploadBytes = 10 << 20

type UploadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	URL     string `json:"url,omitempty"`
}

// UploadFile stores a multipart "file" in Cloudinary and returns its URL. The client
// uses it for profile, cover and package images.
func (h *Handler) UploadFile(w http.ResponseWriter, r *http.Request) {
	if h.Uploader == nil {
		writeMessage(w, http.StatusServiceUnavailable, "Image uploads are not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeMessage(w, http.StatusBadRequest, "Failed to parse form")
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	if fileHeader.Size > maxUploadBytes {
		writeMessage(w, http.StatusBadRequest, "File is larger than 10MB")
		return
	}

	url, err := h.Uploader.UploadImage(r.Context(), fileHeader, r.URL.Query().Get("folder"))
	if err != nil {
		logging.FromContext(r.Context()).Error("image upload failed", "file", fileHeader.Filename, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to upload file")
		return
	}

	writeJSON(w, http.StatusOK, UploadResponse{
		Success: true,
		Message: "File uploaded successfully",
		URL:     url,
	})
}
