package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"prima-photo-backend/internal/middleware"
	"prima-photo-backend/internal/services"
)

// maxUploadBytes caps inbound image uploads at 16MB.
const maxUploadBytes = 16 << 20

// PhotoHandler handles photo-related HTTP requests
type PhotoHandler struct {
	photoService *services.PhotoService
}

// NewPhotoHandler creates a new photo handler
func NewPhotoHandler(photoService *services.PhotoService) *PhotoHandler {
	return &PhotoHandler{
		photoService: photoService,
	}
}

// ListPhotos handles GET /api/photos
func (h *PhotoHandler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	photos, err := h.photoService.ListPhotos(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list photos")
		respondServiceError(w, err)
		return
	}
	respondJSON(w, photos, http.StatusOK)
}

// AddPhoto handles POST /admin/photos. The dashboard posts a multipart form
// with title, description, category and either an image file or an
// image_url field.
func (h *PhotoHandler) AddPhoto(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	in := services.AddPhotoInput{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		Category:    r.PostFormValue("category"),
		ImageURL:    r.PostFormValue("image_url"),
	}

	if file, _, err := r.FormFile("image"); err == nil {
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			respondError(w, "failed to read image", http.StatusBadRequest)
			return
		}
		in.ImageBytes = data
	}

	sess := middleware.GetSession(r.Context())
	photo, err := h.photoService.AddPhoto(r.Context(), sess, in)
	if err != nil {
		log.Error().Err(err).Str("title", in.Title).Msg("Failed to add photo")
		respondServiceError(w, err)
		return
	}

	log.Info().Int("photo_id", photo.ID).Str("title", photo.Title).Msg("Photo added")
	respondJSON(w, photo, http.StatusCreated)
}

// DeletePhoto handles DELETE /admin/photos/{id}
func (h *PhotoHandler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "invalid photo id", http.StatusBadRequest)
		return
	}

	sess := middleware.GetSession(r.Context())
	removed, err := h.photoService.DeletePhoto(r.Context(), sess, id)
	if err != nil {
		log.Error().Err(err).Int("photo_id", id).Msg("Failed to delete photo")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, map[string]bool{"success": removed}, http.StatusOK)
}
