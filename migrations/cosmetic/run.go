package main

import (
	"context"
	"embed"
	"os"

	"github.com/ghuser/fnbrowser/pkg/config"
	"github.com/ghuser/fnbrowser/pkg/logger"
	"github.com/ghuser/fnbrowser/pkg/migrator"
)

//go:embed *.sql
var MigrationsFS embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg).With("service", "cosmetic")
	if err := migrator.Up(context.Background(), cfg.DatabaseURL, MigrationsFS, log); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
}
