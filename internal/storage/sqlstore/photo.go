package sqlstore

import (
	"context"
	"time"

	"prima-photo-backend/internal/apperr"
	"prima-photo-backend/internal/models"
)

type photoRow struct {
	ID          int    `db:"id"`
	Title       string `db:"title"`
	Description string `db:"description"`
	Category    string `db:"category"`
	ImageData   string `db:"image_data"`
	CreatedAt   string `db:"created_at"`
}

func (r photoRow) toModel() (models.Photo, error) {
	createdAt, err := time.Parse(timeFormat, r.CreatedAt)
	if err != nil {
		return models.Photo{}, apperr.Persistencef("parse created_at: %v", err)
	}
	return models.Photo{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		ImageData:   r.ImageData,
		CreatedAt:   createdAt,
	}, nil
}

// ListPhotos returns all photos newest-first; ties on created_at fall back to
// descending id, which matches reverse insertion order.
func (s *Store) ListPhotos(ctx context.Context) ([]models.Photo, error) {
	var rows []photoRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, title, description, category, image_data, created_at
		FROM photos
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, apperr.Persistencef("list photos: %v", err)
	}

	photos := make([]models.Photo, 0, len(rows))
	for _, row := range rows {
		photo, err := row.toModel()
		if err != nil {
			return nil, err
		}
		photos = append(photos, photo)
	}
	return photos, nil
}

// InsertPhoto stores the photo, letting the database assign the next id.
func (s *Store) InsertPhoto(ctx context.Context, photo models.Photo) (models.Photo, error) {
	query := s.db.Rebind(`
		INSERT INTO photos (title, description, category, image_data, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`)
	err := s.db.QueryRowContext(ctx, query,
		photo.Title, photo.Description, photo.Category, photo.ImageData,
		photo.CreatedAt.UTC().Format(timeFormat),
	).Scan(&photo.ID)
	if err != nil {
		return models.Photo{}, apperr.Persistencef("insert photo: %v", err)
	}
	return photo, nil
}

// DeletePhoto removes the photo with the given id if present.
func (s *Store) DeletePhoto(ctx context.Context, id int) (bool, error) {
	result, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM photos WHERE id = ?"), id)
	if err != nil {
		return false, apperr.Persistencef("delete photo: %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, apperr.Persistencef("rows affected: %v", err)
	}
	return affected > 0, nil
}
