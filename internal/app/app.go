// Package app wires together all adapters and domain logic: the cache
// store, the source API client, the keyword dictionary and analyzer, and
// the enrichment provider.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/corey/folio/dictionary"
	"github.com/corey/folio/internal/adapters/bolt"
	"github.com/corey/folio/internal/adapters/github"
	"github.com/corey/folio/internal/adapters/memory"
	"github.com/corey/folio/internal/cache"
	"github.com/corey/folio/internal/config"
	"github.com/corey/folio/internal/domain/analyzer"
	"github.com/corey/folio/internal/domain/keywords"
	"github.com/corey/folio/internal/ports"
)

// Options tweaks wiring beyond what config carries.
type Options struct {
	// NoCache swaps the persistent store for an in-memory one; all
	// cached state is discarded on exit.
	NoCache bool
}

// App is the top-level container wiring all components together.
type App struct {
	Config   *config.Config
	Store    ports.Storage
	Dict     *keywords.Dictionary
	Analyzer *analyzer.Analyzer
	Results  *cache.Results
	Provider *Provider

	closer io.Closer
}

// New creates a fully wired app from config.
func New(cfg *config.Config, opts Options) (*App, error) {
	if cfg.Username == "" {
		return nil, fmt.Errorf("no username configured (set username in config or FOLIO_USERNAME)")
	}

	dict, err := keywords.Load(dictionary.FS, "v1")
	if err != nil {
		return nil, fmt.Errorf("load dictionary: %w", err)
	}

	var store ports.Storage
	var closer io.Closer
	if opts.NoCache {
		store = memory.NewStore()
	} else {
		if err := os.MkdirAll(filepath.Dir(cfg.Cache.Path), 0755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
		bs, err := bolt.NewStore(cfg.Cache.Path)
		if err != nil {
			return nil, fmt.Errorf("open cache store: %w", err)
		}
		store = bs
		closer = bs
	}

	an := analyzer.New(dict)
	results := cache.NewResults(store, time.Duration(cfg.Cache.AnalysisWindow))
	source := github.NewClient(cfg.API.BaseURL, cfg.API.Token)
	provider := NewProvider(source, store, an, results, cfg.Username,
		time.Duration(cfg.Cache.NetworkWindow), cfg.Enrich.Concurrency)

	return &App{
		Config:   cfg,
		Store:    store,
		Dict:     dict,
		Analyzer: an,
		Results:  results,
		Provider: provider,
		closer:   closer,
	}, nil
}

// Close releases the persistent store, if any.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// SetupLogging configures the process-wide slog default from config.
func SetupLogging(cfg *config.Config) {
	level := slog.LevelInfo
	switch cfg.Log.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
