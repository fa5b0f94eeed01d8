package http

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"ev-rental-backend/internal/logger"
	"ev-rental-backend/internal/service"
	"ev-rental-backend/internal/storage"
)

// PhotoHandler issues presigned upload URLs for inspection photos and, when
// the mock storage backend is active, also serves the upload/download
// endpoints those URLs point at.
type PhotoHandler struct {
	photos service.PhotoService
	mock   *storage.MockStorage // nil when a real backend is configured
}

func NewPhotoHandler(photos service.PhotoService, mock *storage.MockStorage) *PhotoHandler {
	return &PhotoHandler{photos: photos, mock: mock}
}

type uploadRequest struct {
	RentalID    string `json:"rental_id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

type uploadResponse struct {
	UploadURL string `json:"upload_url"`
	PhotoURL  string `json:"photo_url"`
}

func (h *PhotoHandler) RequestUpload(w http.ResponseWriter, r *http.Request) {
	ac, _ := AuthFromContext(r.Context())

	var req uploadRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.RentalID == "" || req.Filename == "" {
		respondError(w, http.StatusBadRequest, "bad_request", "rental_id and filename are required")
		return
	}

	uploadURL, photoURL, err := h.photos.RequestUpload(r.Context(), ac.UserID, req.RentalID, req.Filename, req.ContentType)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, uploadResponse{UploadURL: uploadURL, PhotoURL: photoURL})
}

// MockUpload accepts PUTs to mock presigned URLs and writes the body to the
// local uploads directory.
func (h *PhotoHandler) MockUpload(w http.ResponseWriter, r *http.Request) {
	if h.mock == nil {
		http.NotFound(w, r)
		return
	}
	key, err := storage.DecodeKey(mux.Vars(r)["key"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "invalid storage key")
		return
	}
	if err := h.mock.SaveFile(key, r.Body); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to store file")
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *PhotoHandler) MockDownload(w http.ResponseWriter, r *http.Request) {
	if h.mock == nil {
		http.NotFound(w, r)
		return
	}
	key, err := storage.DecodeKey(mux.Vars(r)["key"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "invalid storage key")
		return
	}
	f, err := h.mock.ReadFile(key)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()
	w.Header().Set("Cache-Control", "private, max-age=3600")
	if _, err := io.Copy(w, f); err != nil {
		logger.Warn("stream photo failed", "key", key, "error", err)
	}
}
