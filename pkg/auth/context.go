package auth

import (
	"context"
	"errors"

	"github.com/oklog/ulid/v2"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const visitorIDKey contextKey = "visitor_id"

// ErrVisitorNotFound is returned when no visitor ID exists in the request context.
// It means the Visitor middleware did not run for this route.
var ErrVisitorNotFound = errors.New("visitor_id not found in context")

// VisitorIDFromCtx returns the anonymous visitor ID assigned by the Visitor middleware.
func VisitorIDFromCtx(ctx context.Context) (string, error) {
	id, ok := ctx.Value(visitorIDKey).(ulid.ULID)
	if !ok || id == (ulid.ULID{}) {
		return "", ErrVisitorNotFound
	}
	return id.String(), nil
}

// WithVisitorID returns a new context carrying the visitor ID.
func WithVisitorID(ctx context.Context, id ulid.ULID) context.Context {
	return context.WithValue(ctx, visitorIDKey, id)
}
