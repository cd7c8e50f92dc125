package fortniteapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ghuser/fnbrowser/services/cosmetic/domain"
)

const catalogBody = `{
  "status": 200,
  "data": [
    {
      "id": "CID_029_Athena_Commando_F_Halloween",
      "name": "Ghoul Trooper",
      "description": "Epic ghoul trooper outfit.",
      "type": {"value": "outfit", "displayValue": "Outfit"},
      "rarity": {"value": "epic", "displayValue": "Epic"},
      "introduction": {"chapter": "1", "season": "1", "text": "Introduced in Chapter 1, Season 1."},
      "images": {"icon": "https://img/icon.png", "featured": "https://img/featured.png"}
    },
    {
      "id": "Pickaxe_ID_015_HolidayCandyCane",
      "name": "Candy Axe",
      "description": "Tastes like victory.",
      "type": {"value": "pickaxe"},
      "rarity": {"value": "epic"},
      "set": {"value": "Holiday"},
      "images": {"icon": "https://img/axe.png"}
    }
  ]
}`

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL, RequestTimeout: 5 * time.Second})
}

func TestFetchAll_DecodesCatalog(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/cosmetics/br" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("language"); got != "en" {
			t.Errorf("language: got %q, want en", got)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept: got %q", got)
		}
		if got := r.Header.Get("Cache-Control"); got != "no-cache" {
			t.Errorf("Cache-Control: got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(catalogBody))
	})

	items, err := c.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Name != "Ghoul Trooper" || items[0].IntroductionText() != "Introduced in Chapter 1, Season 1." {
		t.Errorf("unexpected first item: %+v", items[0])
	}
	if items[0].ImageURL() != "https://img/featured.png" {
		t.Errorf("expected featured image, got %s", items[0].ImageURL())
	}
	if items[1].SetName() != "Holiday" || items[1].Introduction != nil {
		t.Errorf("unexpected second item: %+v", items[1])
	}
}

func TestFetchSet_EncodesName(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/cosmetics/br/search/all" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("set"); got != "Peely & Friends" {
			t.Errorf("set: got %q", got)
		}
		_, _ = w.Write([]byte(`{"status":200,"data":[]}`))
	})

	items, err := c.FetchSet(context.Background(), "Peely & Friends")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty set, got %d", len(items))
	}
}

func TestFetchAll_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"status":500,"error":"boom"}`},
		{"not found", http.StatusNotFound, `{"status":404,"error":"no matches"}`},
		{"missing data", http.StatusOK, `{"status":200}`},
		{"null data", http.StatusOK, `{"status":200,"data":null}`},
		{"malformed body", http.StatusOK, `{"status":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.FetchAll(context.Background())
			if !errors.Is(err, domain.ErrUpstream) {
				t.Fatalf("expected ErrUpstream, got %v", err)
			}
		})
	}
}

func TestFetchAll_ContextCancelled(t *testing.T) {
	started := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := c.FetchAll(ctx)
		errCh <- err
	}()

	<-started
	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("fetch did not abort")
	}
}
