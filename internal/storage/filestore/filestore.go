// Package filestore implements storage.Store over two JSON snapshot files,
// photos.json and content.json, kept in a data directory.
//
// Every operation loads the whole collection, mutates it in memory and writes
// the whole collection back. A mutex serializes writers within this process,
// but two processes sharing the same data directory can still race on
// load-modify-save and silently lose an update. That is a known limitation of
// the snapshot backing, not something this package tries to mask.
package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"prima-photo-backend/internal/apperr"
	"prima-photo-backend/internal/models"
	"prima-photo-backend/internal/storage"
)

const (
	photosFile  = "photos.json"
	contentFile = "content.json"
)

// Store is a JSON-snapshot-backed persistence store.
type Store struct {
	mu          sync.Mutex
	photosPath  string
	contentPath string
	admin       models.Admin
}

var _ storage.Store = (*Store)(nil)

// New creates a store rooted at dataDir. The admin credential is served from
// the supplied record; the file backend keeps no admin table.
func New(dataDir string, admin models.Admin) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return &Store{
		photosPath:  filepath.Join(dataDir, photosFile),
		contentPath: filepath.Join(dataDir, contentFile),
		admin:       admin,
	}, nil
}

// Close implements storage.Store; the file backend holds no resources.
func (s *Store) Close() error { return nil }

// ListPhotos returns all photos newest-first.
func (s *Store) ListPhotos(ctx context.Context) ([]models.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedNewestFirst(s.loadPhotos()), nil
}

// InsertPhoto assigns max existing id + 1 and appends the photo.
func (s *Store) InsertPhoto(ctx context.Context, photo models.Photo) (models.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	photos := s.loadPhotos()
	maxID := 0
	for _, p := range photos {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	photo.ID = maxID + 1

	photos = append(photos, photo)
	if err := s.savePhotos(photos); err != nil {
		return models.Photo{}, err
	}
	return photo, nil
}

// DeletePhoto removes the photo with the given id if present.
func (s *Store) DeletePhoto(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	photos := s.loadPhotos()
	kept := photos[:0]
	removed := false
	for _, p := range photos {
		if p.ID == id {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	if !removed {
		return false, nil
	}
	if err := s.savePhotos(kept); err != nil {
		return false, err
	}
	return true, nil
}

// GetContent returns the stored section, if any.
func (s *Store) GetContent(ctx context.Context, section string) (models.Content, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sections := s.loadContent()
	rec, ok := sections[section]
	if !ok {
		return models.Content{}, false, nil
	}
	return models.Content{Section: section, Data: rec.Data, UpdatedAt: rec.UpdatedAt}, true, nil
}

// UpsertContent creates or replaces the record for content.Section.
func (s *Store) UpsertContent(ctx context.Context, content models.Content) (models.Content, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sections := s.loadContent()
	sections[content.Section] = sectionRecord{Data: content.Data, UpdatedAt: content.UpdatedAt}
	if err := s.saveContent(sections); err != nil {
		return models.Content{}, err
	}
	return content, nil
}

// GetAdmin returns the configuration-supplied credential.
func (s *Store) GetAdmin(ctx context.Context) (models.Admin, error) {
	return s.admin, nil
}

type sectionRecord struct {
	Data      json.RawMessage `json:"data"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// loadPhotos reads the photo snapshot. An unreadable or missing file is
// treated as an empty collection.
func (s *Store) loadPhotos() []models.Photo {
	data, err := os.ReadFile(s.photosPath)
	if err != nil {
		return nil
	}
	var photos []models.Photo
	if err := json.Unmarshal(data, &photos); err != nil {
		return nil
	}
	return photos
}

func (s *Store) savePhotos(photos []models.Photo) error {
	data, err := json.Marshal(photos)
	if err != nil {
		return apperr.Persistencef("encode photos: %v", err)
	}
	if err := os.WriteFile(s.photosPath, data, 0o644); err != nil {
		return apperr.Persistencef("write %s: %v", photosFile, err)
	}
	return nil
}

// loadContent reads the section snapshot; unreadable means empty.
func (s *Store) loadContent() map[string]sectionRecord {
	data, err := os.ReadFile(s.contentPath)
	if err != nil {
		return map[string]sectionRecord{}
	}
	var sections map[string]sectionRecord
	if err := json.Unmarshal(data, &sections); err != nil || sections == nil {
		return map[string]sectionRecord{}
	}
	return sections
}

func (s *Store) saveContent(sections map[string]sectionRecord) error {
	data, err := json.Marshal(sections)
	if err != nil {
		return apperr.Persistencef("encode content: %v", err)
	}
	if err := os.WriteFile(s.contentPath, data, 0o644); err != nil {
		return apperr.Persistencef("write %s: %v", contentFile, err)
	}
	return nil
}

// sortedNewestFirst orders photos by created_at descending, ties in reverse
// insertion order.
func sortedNewestFirst(photos []models.Photo) []models.Photo {
	out := make([]models.Photo, len(photos))
	for i, p := range photos {
		out[len(photos)-1-i] = p
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
