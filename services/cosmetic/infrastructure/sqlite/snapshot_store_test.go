package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	cosmeticdomain "github.com/ghuser/fnbrowser/services/cosmetic/domain"
	"github.com/ghuser/fnbrowser/services/cosmetic/domain/models"
)

func TestSnapshotStore_Empty(t *testing.T) {
	s := newTestDB(t).Snapshots()

	_, err := s.Latest(context.Background())
	if !errors.Is(err, cosmeticdomain.ErrCatalogNotLoaded) {
		t.Fatalf("expected ErrCatalogNotLoaded, got %v", err)
	}
}

func TestSnapshotStore_SaveReplacesPrevious(t *testing.T) {
	ctx := context.Background()
	s := newTestDB(t).Snapshots()
	fetched := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	first, err := s.Save(ctx, []models.Cosmetic{{ID: "c1", Name: "Peely"}}, fetched)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	second, err := s.Save(ctx, []models.Cosmetic{{ID: "c2", Name: "Jonesy"}, {ID: "c3"}}, fetched.Add(time.Hour))
	if err != nil {
		t.Fatalf("save again: %v", err)
	}

	latest, err := s.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.ID != second.ID {
		t.Fatalf("expected snapshot %s, got %s", second.ID, latest.ID)
	}
	if len(latest.Items) != 2 || latest.Items[0].Name != "Jonesy" {
		t.Fatalf("unexpected items: %+v", latest.Items)
	}
	if !latest.FetchedAt.Equal(fetched.Add(time.Hour)) {
		t.Fatalf("fetched_at: got %v", latest.FetchedAt)
	}

	if _, err := s.Get(ctx, first.ID); !errors.Is(err, cosmeticdomain.ErrCatalogNotLoaded) {
		t.Fatalf("expected old snapshot to be gone, got %v", err)
	}
	got, err := s.Get(ctx, second.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != second.ID {
		t.Fatalf("get returned %s", got.ID)
	}
}

func TestSnapshotStore_GetUnknown(t *testing.T) {
	_, err := newTestDB(t).Snapshots().Get(context.Background(), uuid.New())
	if !errors.Is(err, cosmeticdomain.ErrCatalogNotLoaded) {
		t.Fatalf("expected ErrCatalogNotLoaded, got %v", err)
	}
}
