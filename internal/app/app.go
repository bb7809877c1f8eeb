package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/todoey/internal/config"
	"github.com/thenoetrevino/todoey/internal/database"
	"github.com/thenoetrevino/todoey/internal/events"
	"github.com/thenoetrevino/todoey/internal/search"
	categoryservice "github.com/thenoetrevino/todoey/internal/services/category"
	itemservice "github.com/thenoetrevino/todoey/internal/services/item"
	"github.com/thenoetrevino/todoey/internal/snapshot"
)

// App holds all application services and provides dependency injection.
// It is built once at process start and handed to the UI layer; nothing in
// the store is reachable through package-level state.
type App struct {
	db   *sql.DB
	repo database.DataStore

	// Events is set when the app owns its bus; nil if a publisher was injected
	Events *events.Bus

	CategoryService categoryservice.Service
	ItemService     itemservice.Service
	SnapshotService snapshot.Service
}

// Open opens the store described by cfg and wires every service
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	db, err := database.Open(ctx, cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	a, err := New(db, cfg, opts...)
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing db", "error", closeErr)
		}
		return nil, err
	}
	return a, nil
}

// New wires services over an already opened database
func New(db *sql.DB, cfg *config.Config, opts ...Option) (*App, error) {
	options := &appConfig{}
	for _, opt := range opts {
		opt(options)
	}

	locale, err := search.ParseLocale(cfg.Search.Locale)
	if err != nil {
		return nil, fmt.Errorf("invalid search locale %q: %w", cfg.Search.Locale, err)
	}

	a := &App{
		db:   db,
		repo: database.NewRepository(db),
	}

	publisher := options.eventClient
	if publisher == nil {
		a.Events = events.NewBus()
		publisher = a.Events
	}

	a.CategoryService = categoryservice.NewService(a.repo, publisher)
	a.ItemService = itemservice.NewService(a.repo, publisher, itemservice.WithLocale(locale))

	a.SnapshotService, err = snapshot.NewService(a.repo, publisher)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize snapshots: %w", err)
	}

	if options.logger != nil {
		options.logger.Debug("app initialized", "database", cfg.Database.Path, "locale", locale.String())
	}

	return a, nil
}

// Close releases the database
func (a *App) Close() error {
	return a.db.Close()
}
