package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ghuser/fnbrowser/pkg/logger"
	appsvcs "github.com/ghuser/fnbrowser/services/cosmetic/application/services"
	"github.com/ghuser/fnbrowser/services/cosmetic/domain/models"
	"github.com/ghuser/fnbrowser/services/cosmetic/infrastructure/fortniteapi"
	"github.com/ghuser/fnbrowser/services/cosmetic/infrastructure/sqlite"
)

const (
	// localOwner is the history owner for the single local user.
	localOwner = "local"

	fetchAdvisory = 15 * time.Second
)

// cli holds the flags and lazily opened resources shared by every command.
type cli struct {
	dbPath   string
	format   string
	apiURL   string
	language string
	logLevel string
	maxAge   time.Duration
	refresh  bool

	out    io.Writer
	errOut io.Writer
	now    func() time.Time

	log     logger.Logger
	db      *sqlite.DB
	facets  *models.FacetCatalog
	closers []func()
}

// execute runs the command line in args and releases everything it opened.
func execute(ctx context.Context, args []string, out, errOut io.Writer) error {
	c := &cli{out: out, errOut: errOut, now: time.Now}
	defer c.close()

	root := c.rootCmd()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "fnbrowse",
		Short:         "Browse the Fortnite cosmetics catalog",
		Long:          "Search, inspect and randomly pick Fortnite cosmetics from the terminal. History is kept in a local SQLite file.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return c.open()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&c.dbPath, "db", "d", "", "Database path (default: $FNBROWSE_DB or ~/.fnbrowser/history.db)")
	flags.StringVarP(&c.format, "format", "f", "text", "Output format: json or text")
	flags.StringVar(&c.apiURL, "api-url", fortniteapi.DefaultBaseURL, "Cosmetics API base URL")
	flags.StringVar(&c.language, "language", fortniteapi.DefaultLanguage, "Catalog language")
	flags.StringVar(&c.logLevel, "log-level", "error", "Log level for diagnostics on stderr")
	flags.DurationVar(&c.maxAge, "max-age", time.Hour, "Reuse the local catalog snapshot while it is younger than this")
	flags.BoolVar(&c.refresh, "refresh", false, "Always download a fresh catalog")

	root.AddCommand(
		c.searchCmd(),
		c.showCmd(),
		c.relatedCmd(),
		c.setCmd(),
		c.randomCmd(),
		c.historyCmd(),
	)
	root.SetOut(c.out)
	root.SetErr(c.errOut)
	return root
}

func (c *cli) open() error {
	if c.format != "json" && c.format != "text" {
		return fmt.Errorf("unknown format %q (want json or text)", c.format)
	}
	c.log = logger.NewWithWriter(c.errOut, c.logLevel)

	facets, err := models.DefaultFacetCatalog()
	if err != nil {
		return err
	}
	c.facets = facets

	db, err := sqlite.Open(c.resolveDBPath())
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	c.db = db
	return nil
}

func (c *cli) close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
	if c.db != nil {
		c.db.Close() //nolint:errcheck
		c.db = nil
	}
}

func (c *cli) resolveDBPath() string {
	if c.dbPath != "" {
		return c.dbPath
	}
	if env := os.Getenv("FNBROWSE_DB"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".fnbrowser", "history.db")
}

func (c *cli) source() *fortniteapi.Client {
	return fortniteapi.New(fortniteapi.Config{BaseURL: c.apiURL, Language: c.language})
}

// catalog serves the local snapshot while it is fresh, otherwise downloads
// the catalog. A failed download falls back to a stale snapshot when there is one.
func (c *cli) catalog(ctx context.Context) (*appsvcs.QueryService, error) {
	catalog := appsvcs.NewCatalogService(c.source(), c.db.Snapshots(), c.log, appsvcs.CatalogOptions{
		AdvisoryAfter: fetchAdvisory,
	})
	c.closers = append(c.closers, catalog.Close)
	query := appsvcs.NewQueryService(catalog, c.facets)

	if err := catalog.Restore(ctx); err != nil {
		c.log.WarnContext(ctx, "local snapshot unreadable", "error", err)
	}
	st := catalog.Status()
	if !c.refresh && st.Count > 0 && c.now().Sub(st.FetchedAt) < c.maxAge {
		return query, nil
	}

	done := catalog.Refresh()
	advisory := time.NewTimer(fetchAdvisory)
	defer advisory.Stop()
wait:
	for {
		select {
		case <-done:
			break wait
		case <-advisory.C:
			fmt.Fprintln(c.errOut, "Still loading the catalog, this is taking longer than usual...")
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	st = catalog.Status()
	if st.State == appsvcs.CatalogFailed {
		if st.Count == 0 {
			return nil, fmt.Errorf("load catalog: %s", st.Error)
		}
		fmt.Fprintf(c.errOut, "Catalog download failed (%s); using the copy from %s.\n",
			st.Error, humanize.Time(st.FetchedAt))
	}
	return query, nil
}

func (c *cli) searches() *appsvcs.SearchService {
	s := appsvcs.NewSearchService(c.db.Store(sqlite.RecentSearchesKey), nil, nil, c.log, 0)
	c.closers = append(c.closers, s.Close)
	return s
}

func (c *cli) viewed(query *appsvcs.QueryService) *appsvcs.ViewedService {
	return appsvcs.NewViewedService(c.db.Store(sqlite.RecentlyViewedKey), query)
}

func addFacetFlags(cmd *cobra.Command) {
	cmd.Flags().String("type", models.AllFacet, "Cosmetic type, e.g. outfit, pickaxe")
	cmd.Flags().String("rarity", models.AllFacet, "Rarity, e.g. epic, legendary")
	cmd.Flags().String("season", models.AllFacet, "Introduction chapter, e.g. \"chapter 2\"")
}

func facetsFromFlags(cmd *cobra.Command) models.Facets {
	typ, _ := cmd.Flags().GetString("type")
	rarity, _ := cmd.Flags().GetString("rarity")
	season, _ := cmd.Flags().GetString("season")
	return models.Facets{Type: typ, Rarity: rarity, Season: season}.Normalize()
}
