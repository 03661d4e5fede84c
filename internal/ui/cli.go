package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/duc19092005/cinesched/internal/catalog"
	"github.com/duc19092005/cinesched/internal/config"
	"github.com/duc19092005/cinesched/internal/db"
	"github.com/duc19092005/cinesched/internal/drag"
	"github.com/duc19092005/cinesched/internal/schedule"
	"github.com/duc19092005/cinesched/internal/store"
	"github.com/duc19092005/cinesched/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo    schedule.Repository
	config  *config.Config
	catalog *catalog.Catalog
	root    *cobra.Command
	out     io.Writer
	debug   bool // Enable debug logging
}

// NewApp creates a new CLI application with the given repository and config.
// A nil repository is opened lazily from the configured database path.
func NewApp(repo schedule.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg, out: os.Stdout}

	a.root = &cobra.Command{
		Use:   "cinesched",
		Short: "A showtime scheduling timeline for cinemas",
		Long: `Cinesched plans the showtimes of a cinema on a timeline grid.

Drag movies from the sidebar into an auditorium column, move or resize
existing showtimes, and drop them on the trash to delete them. Placements
that overlap another showtime or need a format the auditorium cannot
project are rejected.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			cat, err := a.loadCatalog()
			if err != nil {
				return err
			}
			return tui.RunWithDebug(cmd.Context(), a.repo, cat, a.config, a.debug)
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging to stderr")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.catalogCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.placeCmd())
	a.root.AddCommand(a.moveCmd())
	a.root.AddCommand(a.resizeCmd())
	a.root.AddCommand(a.deleteCmd())
	a.root.AddCommand(a.weekCmd())
	a.root.AddCommand(a.importCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(a.out, "cinesched %s (commit: %s)\n", Version, Commit)
		},
	}
}

// SetOutput redirects command output, e.g. in tests.
func (a *App) SetOutput(w io.Writer) {
	a.out = w
	a.root.SetOut(w)
	a.root.SetErr(w)
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.ExecuteContext(context.Background())
}

// ExecuteContext runs the CLI application with ctx as the command context.
func (a *App) ExecuteContext(ctx context.Context) error {
	return a.root.ExecuteContext(ctx)
}

// ExecuteArgs runs the CLI with explicit arguments.
func (a *App) ExecuteArgs(args ...string) error {
	a.root.SetArgs(args)
	return a.Execute()
}

// Close releases the repository.
func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}

// ensureRepo opens the SQLite database if no repository was injected.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	path := a.config.Storage.DBPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.repo = repo
	return nil
}

// loadCatalog returns the configured catalog, falling back to the built-in one.
func (a *App) loadCatalog() (*catalog.Catalog, error) {
	if a.catalog != nil {
		return a.catalog, nil
	}
	cat := catalog.Seed()
	if path := a.config.Cinema.CatalogPath; path != "" {
		loaded, err := catalog.LoadFile(path)
		if err != nil {
			return nil, err
		}
		cat = loaded
	}
	a.catalog = cat
	return cat, nil
}

// logger returns the command logger: debug output on stderr with --debug.
func (a *App) logger() hclog.Logger {
	if !a.debug {
		return hclog.NewNullLogger()
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "cinesched",
		Level:  hclog.Debug,
		Output: os.Stderr,
	})
}

// session is one load-gesture-save cycle of a mutating command.
type session struct {
	store      *store.Store
	controller *drag.Controller
	catalog    *catalog.Catalog
}

func (a *App) openSession(ctx context.Context, date time.Time) (*session, error) {
	if err := a.ensureRepo(); err != nil {
		return nil, err
	}
	cat, err := a.loadCatalog()
	if err != nil {
		return nil, err
	}
	st, err := store.Load(ctx, a.repo, a.config.Cinema.ID, cat.Auditoriums)
	if err != nil {
		return nil, err
	}
	c := drag.New(st, cat, tui.ControllerOptions(a.config, a.logger()))
	c.SetDate(date)
	return &session{store: st, controller: c, catalog: cat}, nil
}

func (a *App) commit(ctx context.Context, s *session) error {
	if !s.store.HasChanges() {
		return nil
	}
	return s.store.Save(ctx, a.repo)
}
