package services

import (
	"context"
	"encoding/json"
	"time"

	"prima-photo-backend/internal/apperr"
	"prima-photo-backend/internal/models"
	"prima-photo-backend/internal/session"
	"prima-photo-backend/internal/storage"
)

// Sections edited by the admin dashboard. The store accepts arbitrary keys;
// these are the ones the public page renders.
const (
	SectionHero     = "hero"
	SectionAbout    = "about"
	SectionServices = "services"
	SectionContact  = "contact"
)

// ContentService handles page section reads and writes.
type ContentService struct {
	content storage.ContentStore
}

// NewContentService creates a new content service.
func NewContentService(content storage.ContentStore) *ContentService {
	return &ContentService{content: content}
}

// GetSection returns the stored section and whether one exists. Absence is
// not an error; callers fall back to an empty payload.
func (s *ContentService) GetSection(ctx context.Context, section string) (models.Content, bool, error) {
	return s.content.GetContent(ctx, section)
}

// SaveSection upserts the section payload, refreshing updated_at. The session
// gate is checked before anything else; malformed payloads are rejected
// without a partial write.
func (s *ContentService) SaveSection(ctx context.Context, sess session.Session, section string, data json.RawMessage) (models.Content, error) {
	if !sess.Authenticated {
		return models.Content{}, apperr.ErrUnauthorized
	}

	if section == "" {
		return models.Content{}, apperr.Validationf("section is required")
	}
	if len(data) == 0 || !json.Valid(data) {
		return models.Content{}, apperr.Validationf("section data must be valid JSON")
	}

	content := models.Content{
		Section:   section,
		Data:      data,
		UpdatedAt: time.Now().UTC(),
	}
	return s.content.UpsertContent(ctx, content)
}
