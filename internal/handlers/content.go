package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"prima-photo-backend/internal/middleware"
	"prima-photo-backend/internal/services"
)

// ContentHandler handles page section HTTP requests
type ContentHandler struct {
	contentService *services.ContentService
}

// NewContentHandler creates a new content handler
func NewContentHandler(contentService *services.ContentService) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
	}
}

// GetSection handles GET /api/content/{section}. A section that was never
// saved comes back as an empty object, not an error.
func (h *ContentHandler) GetSection(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")

	content, found, err := h.contentService.GetSection(r.Context(), section)
	if err != nil {
		log.Error().Err(err).Str("section", section).Msg("Failed to get content")
		respondServiceError(w, err)
		return
	}
	if !found {
		respondJSON(w, map[string]interface{}{}, http.StatusOK)
		return
	}
	respondJSON(w, content.Data, http.StatusOK)
}

// SaveSection handles POST /admin/content/{section}. The body is the raw
// JSON payload for the section.
func (h *ContentHandler) SaveSection(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		respondError(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	sess := middleware.GetSession(r.Context())
	if _, err := h.contentService.SaveSection(r.Context(), sess, section, json.RawMessage(body)); err != nil {
		log.Error().Err(err).Str("section", section).Msg("Failed to save content")
		respondServiceError(w, err)
		return
	}

	log.Info().Str("section", section).Msg("Content saved")
	respondJSON(w, map[string]bool{"success": true}, http.StatusOK)
}

// Health handles GET /api/health
func Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"status": "OK"}, http.StatusOK)
}
