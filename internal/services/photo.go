package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"prima-photo-backend/internal/apperr"
	"prima-photo-backend/internal/models"
	"prima-photo-backend/internal/session"
	"prima-photo-backend/internal/storage"
)

// ImageUploader stores raw image bytes externally and returns a public URL.
// When nil, images are embedded as data URIs instead.
type ImageUploader interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
}

// PhotoService handles photo-related business logic.
type PhotoService struct {
	photos   storage.PhotoStore
	uploader ImageUploader
}

// NewPhotoService creates a new photo service. uploader may be nil.
func NewPhotoService(photos storage.PhotoStore, uploader ImageUploader) *PhotoService {
	return &PhotoService{
		photos:   photos,
		uploader: uploader,
	}
}

// AddPhotoInput carries the fields for a new photo. Exactly one of ImageBytes
// or ImageURL must be set.
type AddPhotoInput struct {
	Title       string
	Description string
	Category    string
	ImageBytes  []byte
	ImageURL    string
}

// ListPhotos returns all photos newest-first. Public, no session required.
func (s *PhotoService) ListPhotos(ctx context.Context) ([]models.Photo, error) {
	return s.photos.ListPhotos(ctx)
}

// AddPhoto validates the input, encodes the image and persists the record.
// The session gate is checked before anything else.
func (s *PhotoService) AddPhoto(ctx context.Context, sess session.Session, in AddPhotoInput) (models.Photo, error) {
	if !sess.Authenticated {
		return models.Photo{}, apperr.ErrUnauthorized
	}

	if in.Title == "" {
		return models.Photo{}, apperr.Validationf("title is required")
	}
	if in.Category == "" {
		return models.Photo{}, apperr.Validationf("category is required")
	}
	if len(in.ImageBytes) == 0 && in.ImageURL == "" {
		return models.Photo{}, apperr.Validationf("an image file or image URL is required")
	}

	imageData := in.ImageURL
	if len(in.ImageBytes) > 0 {
		encoded, err := s.encodeImage(ctx, in.ImageBytes)
		if err != nil {
			return models.Photo{}, err
		}
		imageData = encoded
	}

	photo := models.Photo{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		ImageData:   imageData,
		CreatedAt:   time.Now().UTC(),
	}
	return s.photos.InsertPhoto(ctx, photo)
}

// DeletePhoto removes the photo with the given id. It reports whether a
// record was removed; a missing id is not an error.
func (s *PhotoService) DeletePhoto(ctx context.Context, sess session.Session, id int) (bool, error) {
	if !sess.Authenticated {
		return false, apperr.ErrUnauthorized
	}
	return s.photos.DeletePhoto(ctx, id)
}

// encodeImage turns raw bytes into either an external URL (S3 offload
// configured) or an inline data URI. The media type is sniffed from the
// bytes rather than assumed to be JPEG.
func (s *PhotoService) encodeImage(ctx context.Context, data []byte) (string, error) {
	contentType := http.DetectContentType(data)

	if s.uploader != nil {
		url, err := s.uploader.Upload(ctx, data, contentType)
		if err != nil {
			return "", fmt.Errorf("failed to upload image: %w", err)
		}
		return url, nil
	}

	return fmt.Sprintf("data:%s;base64,%s",
		contentType, base64.StdEncoding.EncodeToString(data)), nil
}
