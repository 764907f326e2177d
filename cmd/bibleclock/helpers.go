package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/bibleclock/internal/bible"
	"github.com/at-ishikawa/bibleclock/internal/config"
	"github.com/at-ishikawa/bibleclock/internal/resolver"
	"github.com/at-ishikawa/bibleclock/internal/selector"
	"github.com/at-ishikawa/bibleclock/internal/state"
	"github.com/at-ishikawa/bibleclock/internal/verse"
)

// loadConfig reads the config file. overrides win over the file and the
// environment, e.g. values from command line flags.
func loadConfig(overrides map[string]any) (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	for key, value := range overrides {
		loader.Set(key, value)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func openStore(cfg *config.Config) (*verse.Store, error) {
	store, reports, err := verse.Open(cfg.Data.KJVPath, cfg.Data.AmplifiedPath)
	if err != nil {
		return nil, fmt.Errorf("verse.Open() > %w", err)
	}
	for _, report := range reports {
		slog.Info("loaded verses",
			"source", report.Source,
			"translation", report.Translation,
			"loaded", report.Loaded,
			"skipped", len(report.Skipped),
		)
	}
	return store, nil
}

// resolverIndex picks the index the resolver probes. auto uses the canon
// only when the dataset has every canonical verse, so each resolved
// reference can be looked up.
func resolverIndex(cfg *config.Config, store *verse.Store) resolver.Index {
	canon := bible.KJV()
	switch cfg.Data.Index {
	case "canon":
		return canon
	case "dataset":
		return store.Index()
	}
	if store.Len(verse.KJV) >= canon.TotalVerses() {
		return canon
	}
	return store.Index()
}

func newResolver(cfg *config.Config, store *verse.Store) (*resolver.Resolver, error) {
	opts := []resolver.Option{
		resolver.WithFallbackOrder(resolver.FallbackOrder(cfg.Clock.FallbackOrder)),
	}
	if cfg.Data.EventsPath != "" {
		table, err := resolver.LoadDayTableFile(cfg.Data.EventsPath)
		if err != nil {
			return nil, fmt.Errorf("resolver.LoadDayTableFile(%s) > %w", cfg.Data.EventsPath, err)
		}
		opts = append(opts, resolver.WithDayTable(table))
	}
	return resolver.New(resolverIndex(cfg, store), opts...), nil
}

func newSelector(cfg *config.Config, res selector.Resolver, store verse.Lookup) *selector.Selector {
	seed := cfg.Clock.Seed
	return selector.New(res, store, selector.NewRand(seed),
		selector.WithMode(selector.Mode(cfg.Clock.Mode)),
		selector.WithVersion(selector.Version(cfg.Clock.Version)),
	)
}

// openRepository opens and migrates the state database.
func openRepository(ctx context.Context, cfg *config.Config) (*state.DBRepository, *sqlx.DB, error) {
	db, err := state.Open(cfg.State)
	if err != nil {
		return nil, nil, fmt.Errorf("state.Open() > %w", err)
	}
	if err := state.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("state.Migrate() > %w", err)
	}
	return state.NewDBRepository(db), db, nil
}
