package sqlite

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestHistoryStore_SaveAndRecent(t *testing.T) {
	ctx := context.Background()
	s := newTestDB(t).Store(RecentSearchesKey)

	got, err := s.Recent(ctx, "local")
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty list, got %v", got)
	}

	if err := s.Save(ctx, "local", []string{"peely", "raider"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(ctx, "local", []string{"floss", "peely", "raider"}); err != nil {
		t.Fatalf("save again: %v", err)
	}

	got, err = s.Recent(ctx, "local")
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	want := []string{"floss", "peely", "raider"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestHistoryStore_KeysAndOwnersAreIsolated(t *testing.T) {
	ctx := context.Background()
	d := newTestDB(t)
	searches := d.Store(RecentSearchesKey)
	viewed := d.Store(RecentlyViewedKey)

	if err := searches.Save(ctx, "a", []string{"q"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got, _ := viewed.Recent(ctx, "a"); len(got) != 0 {
		t.Errorf("viewed should be empty, got %v", got)
	}
	if got, _ := searches.Recent(ctx, "b"); len(got) != 0 {
		t.Errorf("other owner should be empty, got %v", got)
	}
}

func TestHistoryStore_Clear(t *testing.T) {
	ctx := context.Background()
	s := newTestDB(t).Store(RecentSearchesKey)

	if err := s.Save(ctx, "local", []string{"q"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Clear(ctx, "local"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, err := s.Recent(ctx, "local")
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty list after clear, got %v, %v", got, err)
	}
}

func TestHistoryStore_CorruptValueReadsEmpty(t *testing.T) {
	ctx := context.Background()
	d := newTestDB(t)
	if _, err := d.db.Exec(`INSERT INTO history (owner, key, value, updated_at) VALUES ('local', ?, 'not json', '')`, RecentSearchesKey); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := d.Store(RecentSearchesKey).Recent(ctx, "local")
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty list, got %v, %v", got, err)
	}
}

func TestHistoryStore_Update(t *testing.T) {
	ctx := context.Background()
	s := newTestDB(t).Store(RecentSearchesKey)

	push := func(q string) func([]string) []string {
		return func(list []string) []string { return append([]string{q}, list...) }
	}
	if _, err := s.Update(ctx, "local", push("peely")); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := s.Update(ctx, "local", push("raider"))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(got) != 2 || got[0] != "raider" || got[1] != "peely" {
		t.Fatalf("expected [raider peely], got %v", got)
	}

	stored, err := s.Recent(ctx, "local")
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(stored) != 2 || stored[0] != "raider" {
		t.Fatalf("expected stored [raider peely], got %v", stored)
	}

	got, err = s.Update(ctx, "local", func([]string) []string { return nil })
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list, got %v, %v", got, err)
	}
}
