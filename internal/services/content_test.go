package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"prima-photo-backend/internal/apperr"
	"prima-photo-backend/internal/models"
	"prima-photo-backend/internal/session"
	"prima-photo-backend/internal/storage/filestore"
)

func newContentService(t *testing.T) *ContentService {
	t.Helper()
	store, err := filestore.New(t.TempDir(), models.Admin{Username: "admin", PasswordHash: "hash"})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return NewContentService(store)
}

func TestGetSectionAbsent(t *testing.T) {
	svc := newContentService(t)

	_, found, err := svc.GetSection(context.Background(), "nonexistent")
	if err != nil {
		t.Fatalf("expected no error for absent section, got %v", err)
	}
	if found {
		t.Fatal("expected section to be absent")
	}
}

func TestSaveSectionRequiresAuth(t *testing.T) {
	svc := newContentService(t)
	ctx := context.Background()

	_, err := svc.SaveSection(ctx, session.Session{}, SectionHero, json.RawMessage(`{"headline":"x"}`))
	if !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	if _, found, _ := svc.GetSection(ctx, SectionHero); found {
		t.Fatal("expected no write on unauthorized call")
	}
}

func TestSaveSectionRejectsMalformedJSON(t *testing.T) {
	svc := newContentService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		data json.RawMessage
	}{
		{"empty", nil},
		{"truncated", json.RawMessage(`{"headline":`)},
		{"plain garbage", json.RawMessage(`not json at all`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SaveSection(ctx, authedSession(), SectionHero, tt.data)
			if !errors.Is(err, apperr.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}

	if _, found, _ := svc.GetSection(ctx, SectionHero); found {
		t.Fatal("expected no partial write after rejected payloads")
	}
}

func TestSaveSectionUpserts(t *testing.T) {
	svc := newContentService(t)
	ctx := context.Background()

	first, err := svc.SaveSection(ctx, authedSession(), SectionHero, json.RawMessage(`{"headline":"X"}`))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	got, found, err := svc.GetSection(ctx, SectionHero)
	if err != nil || !found {
		t.Fatalf("expected saved section, found=%v err=%v", found, err)
	}
	if string(got.Data) != `{"headline":"X"}` {
		t.Fatalf("unexpected data: %s", got.Data)
	}

	second, err := svc.SaveSection(ctx, authedSession(), SectionHero, json.RawMessage(`{"headline":"Y"}`))
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if !second.UpdatedAt.After(first.UpdatedAt) && !second.UpdatedAt.Equal(first.UpdatedAt) {
		t.Fatalf("expected updated_at to move forward, got %v then %v", first.UpdatedAt, second.UpdatedAt)
	}

	got, _, _ = svc.GetSection(ctx, SectionHero)
	if string(got.Data) != `{"headline":"Y"}` {
		t.Fatalf("expected overwrite to Y, got %s", got.Data)
	}
}

func TestSaveSectionArbitraryKey(t *testing.T) {
	svc := newContentService(t)
	ctx := context.Background()

	if _, err := svc.SaveSection(ctx, authedSession(), "footer", json.RawMessage(`{"text":"(c) prima"}`)); err != nil {
		t.Fatalf("save arbitrary section: %v", err)
	}
	if _, found, _ := svc.GetSection(ctx, "footer"); !found {
		t.Fatal("expected arbitrary section key to round-trip")
	}
}
