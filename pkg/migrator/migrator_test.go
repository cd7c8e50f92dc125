package migrator

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/pressly/goose/v3"

	"github.com/ghuser/fnbrowser/pkg/logger"
)

func TestUp_NoMigrations(t *testing.T) {
	err := Up(context.Background(), "postgres://fnbrowser@localhost:1/none", fstest.MapFS{}, logger.Discard())
	if !errors.Is(err, goose.ErrNoMigrations) {
		t.Fatalf("expected ErrNoMigrations, got %v", err)
	}
}
