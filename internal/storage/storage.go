// Package storage defines the persistence contracts shared by the SQL and
// JSON-snapshot backends.
package storage

import (
	"context"

	"prima-photo-backend/internal/models"
)

// PhotoStore persists portfolio photos.
type PhotoStore interface {
	// ListPhotos returns all photos ordered newest-first by created_at,
	// ties broken by reverse insertion order.
	ListPhotos(ctx context.Context) ([]models.Photo, error)
	// InsertPhoto assigns the next free id, stores the photo and returns
	// the stored record.
	InsertPhoto(ctx context.Context, photo models.Photo) (models.Photo, error)
	// DeletePhoto removes the photo with the given id. It reports whether
	// a record was removed; deleting a missing id is not an error.
	DeletePhoto(ctx context.Context, id int) (bool, error)
}

// ContentStore persists page sections keyed by section name.
type ContentStore interface {
	// GetContent returns the stored section and whether it exists.
	// Absence is not an error.
	GetContent(ctx context.Context, section string) (models.Content, bool, error)
	// UpsertContent creates or replaces the record for content.Section.
	UpsertContent(ctx context.Context, content models.Content) (models.Content, error)
}

// AdminStore exposes the single admin credential.
type AdminStore interface {
	GetAdmin(ctx context.Context) (models.Admin, error)
}

// Store is the full persistence surface a backend must provide.
type Store interface {
	PhotoStore
	ContentStore
	AdminStore
	Close() error
}
