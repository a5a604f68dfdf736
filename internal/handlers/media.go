package handlers

import (
	"errors"
	"net/http"

	"github.com/triplog/triplog-backend/internal/services"
)

const maxUploadSize = 10 << 20 // 10MB

type MediaHandler struct {
	media *services.MediaStore
}

func NewMediaHandler(media *services.MediaStore) *MediaHandler {
	return &MediaHandler{media: media}
}

// Upload handles POST /image-upload: stores a single multipart image
// and returns its public URL.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "No image uploaded")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No image uploaded")
		return
	}
	defer file.Close()

	imageURL, err := h.media.Save(file, header)
	if err != nil {
		if errors.Is(err, services.ErrNotAnImage) {
			writeError(w, http.StatusBadRequest, "Only image files are allowed")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"imageUrl": imageURL})
}

// Delete handles DELETE /delete-image?imageUrl=. A file that is
// already gone is a soft error reported with status 200.
func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	imageURL := r.URL.Query().Get("imageUrl")
	if imageURL == "" {
		writeError(w, http.StatusBadRequest, "imageUrl parameter is required")
		return
	}

	if err := h.media.DeleteByURL(imageURL); err != nil {
		if errors.Is(err, services.ErrFileNotFound) {
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"error":   true,
				"message": "Image not found",
			})
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Image deleted successfully"})
}
