package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"go.uber.org/zap"

	"jobscout-engine/internal/config"
	"jobscout-engine/internal/logger"
	"jobscout-engine/internal/store"
)

// app holds the wiring every subcommand needs: validated config, logger,
// store handle, and the data-dir lock that enforces the single-writer model.
type app struct {
	cfg  config.Config
	log  *zap.Logger
	db   *store.DB
	lock *flock.Flock
}

func openApp(withStore bool) (*app, error) {
	dir := dataDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	cfgPath, err := config.EnsureUserConfig(dir)
	if err != nil {
		return nil, fmt.Errorf("config bootstrap: %w", err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config load (%s): %w", cfgPath, err)
	}
	cfg.App.DataDir = dir
	if flagDebug {
		cfg.App.Debug = true
	}

	cfg, v := config.NormalizeAndValidate(cfg)
	if !v.OK() {
		for _, e := range v.Errors {
			fmt.Fprintln(os.Stderr, "config:", e)
		}
		return nil, fmt.Errorf("invalid config at %s", cfgPath)
	}

	log, err := logger.New(cfg.App.LogJSON, cfg.App.Debug)
	if err != nil {
		return nil, err
	}
	for _, w := range v.Warnings {
		log.Warn("config", zap.String("warning", w))
	}

	a := &app{cfg: cfg, log: log}
	if !withStore {
		return a, nil
	}

	// One process owns the data dir at a time.
	a.lock = flock.New(filepath.Join(dir, "jobscout.lock"))
	locked, err := a.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("data dir lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another jobscout instance holds %s", a.lock.Path())
	}

	db, err := store.Open(filepath.Join(dir, "jobscout.db"))
	if err != nil {
		a.lock.Unlock()
		return nil, fmt.Errorf("open store: %w", err)
	}
	a.db = db
	return a, nil
}

func (a *app) close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.lock != nil {
		a.lock.Unlock()
	}
	a.log.Sync()
}
