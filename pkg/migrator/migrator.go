// Package migrator applies the embedded goose migrations of a service.
package migrator

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/ghuser/fnbrowser/pkg/logger"
)

// Up applies every pending migration in files to the database at
// databaseURL and logs each applied version.
func Up(ctx context.Context, databaseURL string, files fs.FS, log logger.Logger) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close() //nolint:errcheck

	provider, err := goose.NewProvider(goose.DialectPostgres, db, files)
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	results, err := provider.Up(ctx)
	for _, r := range results {
		log.InfoContext(ctx, "migration applied",
			"version", r.Source.Version,
			"file", r.Source.Path,
			"duration_ms", r.Duration.Milliseconds(),
		)
	}
	if err != nil {
		return fmt.Errorf("failed to up migrations: %w", err)
	}
	if len(results) == 0 {
		log.InfoContext(ctx, "schema up to date")
	}
	return nil
}
