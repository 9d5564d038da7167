package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"prima-photo-backend/internal/apperr"
	"prima-photo-backend/internal/models"
)

type contentRow struct {
	Section   string `db:"section"`
	Data      string `db:"data"`
	UpdatedAt string `db:"updated_at"`
}

// GetContent returns the stored section, if any.
func (s *Store) GetContent(ctx context.Context, section string) (models.Content, bool, error) {
	var row contentRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(`
		SELECT section, data, updated_at FROM content WHERE section = ?
	`), section)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Content{}, false, nil
	}
	if err != nil {
		return models.Content{}, false, apperr.Persistencef("get content: %v", err)
	}

	updatedAt, err := time.Parse(timeFormat, row.UpdatedAt)
	if err != nil {
		return models.Content{}, false, apperr.Persistencef("parse updated_at: %v", err)
	}
	return models.Content{
		Section:   row.Section,
		Data:      json.RawMessage(row.Data),
		UpdatedAt: updatedAt,
	}, true, nil
}

// UpsertContent creates or replaces the record for content.Section.
func (s *Store) UpsertContent(ctx context.Context, content models.Content) (models.Content, error) {
	query := s.db.Rebind(`
		INSERT INTO content (section, data, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (section) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at
	`)
	_, err := s.db.ExecContext(ctx, query,
		content.Section, string(content.Data), content.UpdatedAt.UTC().Format(timeFormat))
	if err != nil {
		return models.Content{}, apperr.Persistencef("upsert content: %v", err)
	}
	return content, nil
}
