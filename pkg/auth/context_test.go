package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/oklog/ulid/v2"
)

func TestWithVisitorID_VisitorIDFromCtx(t *testing.T) {
	id := ulid.Make()
	ctx := WithVisitorID(context.Background(), id)

	got, err := VisitorIDFromCtx(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != id.String() {
		t.Fatalf("expected %v, got %v", id, got)
	}
}

func TestVisitorIDFromCtx_EmptyContext(t *testing.T) {
	_, err := VisitorIDFromCtx(context.Background())
	if !errors.Is(err, ErrVisitorNotFound) {
		t.Fatalf("expected ErrVisitorNotFound, got %v", err)
	}
}

func TestVisitorIDFromCtx_ZeroULID(t *testing.T) {
	ctx := WithVisitorID(context.Background(), ulid.ULID{})
	_, err := VisitorIDFromCtx(ctx)
	if !errors.Is(err, ErrVisitorNotFound) {
		t.Fatalf("expected ErrVisitorNotFound for zero ULID, got %v", err)
	}
}
