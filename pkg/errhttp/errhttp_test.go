package errhttp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	cosmeticdomain "github.com/ghuser/fnbrowser/services/cosmetic/domain"
)

func TestWriteError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"ErrCosmeticNotFound", cosmeticdomain.ErrCosmeticNotFound, http.StatusNotFound},
		{"ErrInvalidFacet", cosmeticdomain.ErrInvalidFacet, http.StatusUnprocessableEntity},
		{"ErrCatalogNotLoaded", cosmeticdomain.ErrCatalogNotLoaded, http.StatusServiceUnavailable},
		{"ErrUpstream", cosmeticdomain.ErrUpstream, http.StatusBadGateway},
		{"wrapped ErrCosmeticNotFound", fmt.Errorf("%w: CID_001", cosmeticdomain.ErrCosmeticNotFound), http.StatusNotFound},
		{"wrapped ErrInvalidFacet", fmt.Errorf("%w: rarity \"shiny\"", cosmeticdomain.ErrInvalidFacet), http.StatusUnprocessableEntity},
		{"deadline", fmt.Errorf("fetch: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"unknown error", errors.New("something unexpected"), http.StatusInternalServerError},
		{"generic wrapped error", fmt.Errorf("context: %w", errors.New("db down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if Status(tt.err) != tt.wantStatus {
				t.Fatalf("Status: expected %d, got %d", tt.wantStatus, Status(tt.err))
			}
		})
	}
}

func TestWriteError_JSONBody(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, cosmeticdomain.ErrCosmeticNotFound)

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if body["error"] != cosmeticdomain.ErrCosmeticNotFound.Error() {
		t.Fatalf("unexpected error message %q", body["error"])
	}
}

func TestWriteError_ContentType(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, cosmeticdomain.ErrCatalogNotLoaded)

	ct := w.Header().Get("Content-Type")
	if ct == "" {
		t.Fatal("Content-Type header not set")
	}
}
