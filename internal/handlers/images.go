package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/feel-write/feelwrite-backend/internal/services"
	"github.com/go-chi/chi/v5"
)

const maxImageUploadBytes = 10 << 20 // 10 MB

type UploadImageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	URL     string `json:"url,omitempty"`
}

// UploadImage accepts a multipart "file" part and returns a photo URL.
// Cloudinary is used when configured; otherwise the image goes into the
// in-memory store and is served back from GET /api/images/{id}.
func UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		writeError(w, http.StatusBadRequest, "Only image uploads are allowed")
		return
	}

	if cloudinaryService != nil {
		url, err := cloudinaryService.UploadFileFromHeader(r.Context(), header, "feelwrite/journal")
		if err == nil {
			writeJSON(w, http.StatusOK, UploadImageResponse{Success: true, URL: url})
			return
		}
		log.Printf("⚠️ Cloudinary upload failed, falling back to local store: %v", err)
	}

	data, err := io.ReadAll(io.LimitReader(file, maxImageUploadBytes))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read file")
		return
	}

	id, err := imageStore.Put(data, contentType)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to store image")
		return
	}

	writeJSON(w, http.StatusOK, UploadImageResponse{Success: true, URL: "/api/images/" + id})
}

// GetImage serves an image from the in-memory store.
func GetImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	img, err := imageStore.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrImageNotFound) {
			writeError(w, http.StatusNotFound, "Image not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load image")
		return
	}

	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(img.Data)
}
