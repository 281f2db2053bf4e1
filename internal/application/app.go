// Package application wires configuration into a running generator: the
// table source, the store, the generation service, and the optional file
// watcher. Both binaries build on it.
package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/JonMunkholm/lotto/internal/config"
	"github.com/JonMunkholm/lotto/internal/core"
	"github.com/JonMunkholm/lotto/internal/source"
	"github.com/jackc/pgx/v5/pgxpool"
)

// App holds the wired components.
type App struct {
	Config    *config.Config
	Selection *config.Selection
	Pool      *pgxpool.Pool // nil unless the source is postgres
	Source    core.TextSource
	Store     *core.TableStore
	Service   *core.Service

	watcher *source.Watcher
}

// New builds an App. It connects to the database only for the postgres
// source and does not load the table; call Load for that.
func New(ctx context.Context, cfg *config.Config, sel *config.Selection) (*App, error) {
	if sel == nil {
		sel = config.DefaultSelection()
	}
	app := &App{Config: cfg, Selection: sel}

	var db source.Querier
	if strings.EqualFold(cfg.Source.Kind, source.KindPostgres) {
		pool, err := OpenPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		app.Pool = pool
		db = pool
	}

	src, err := source.New(source.Options{
		Kind:      cfg.Source.Kind,
		Path:      cfg.Source.Path,
		URL:       cfg.Source.URL,
		Timeout:   cfg.Source.Timeout,
		TableName: cfg.Source.TableName,
	}, db)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Source = src

	svcOpts, err := ServiceOptions(cfg, sel)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.Store = core.NewTableStore(core.ParseOptions{
		Indicator: cfg.Table.Indicator,
		Sentinels: cfg.Table.Sentinels,
	})
	app.Service, err = core.NewService(app.Store, src, svcOpts)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("create service: %w", err)
	}
	return app, nil
}

// ServiceOptions translates configuration into core.ServiceOptions.
func ServiceOptions(cfg *config.Config, sel *config.Selection) (core.ServiceOptions, error) {
	order, err := core.ParseOrder(cfg.Generate.Order)
	if err != nil {
		return core.ServiceOptions{}, err
	}
	rng, err := core.NewRand(cfg.Generate.RandomSource, cfg.Generate.Seed)
	if err != nil {
		return core.ServiceOptions{}, err
	}
	presets, err := sel.SlotPresets()
	if err != nil {
		return core.ServiceOptions{}, err
	}
	return core.ServiceOptions{
		Band: sel.BandConfig(),
		Assembler: core.AssemblerOptions{
			Size:     core.ComboSize,
			PoolSize: cfg.Table.PoolSize,
			Order:    order,
		},
		Rand:          rng,
		Presets:       presets,
		DefaultPreset: sel.DefaultPreset,
	}, nil
}

// OpenPool connects to PostgreSQL with the configured pool limits.
func OpenPool(ctx context.Context, db config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(db.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	poolConfig.MaxConns = int32(db.MaxConns)
	poolConfig.MinConns = int32(db.MinConns)
	poolConfig.MaxConnLifetime = db.MaxConnLifetime
	poolConfig.MaxConnIdleTime = db.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if u, err := url.Parse(db.URL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	} else {
		slog.Info("connected to database")
	}
	return pool, nil
}

// Load reads the source into the store.
func (a *App) Load(ctx context.Context) error {
	return a.Store.Load(ctx, a.Source)
}

// Watch starts the file watcher when the source is a file and watching is
// enabled. It is a no-op otherwise.
func (a *App) Watch(ctx context.Context) error {
	f, ok := a.Source.(*source.File)
	if !ok || !a.Config.Source.Watch {
		return nil
	}
	w, err := source.NewWatcher(f.Path(), a.Config.Source.WatchDebounce, a.Service.Reload)
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return err
	}
	a.watcher = w
	return nil
}

// Close stops the watcher and releases the database pool.
func (a *App) Close() {
	if a.watcher != nil {
		a.watcher.Stop()
		a.watcher = nil
	}
	if a.Pool != nil {
		a.Pool.Close()
		a.Pool = nil
	}
}
