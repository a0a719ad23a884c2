package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mathdrill/internal/clock"
	"github.com/abhisek/mathdrill/internal/config"
	"github.com/abhisek/mathdrill/internal/grading"
	"github.com/abhisek/mathdrill/internal/logging"
	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/screen"
	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/store"
)

// runtime holds everything a command needs once config is resolved.
type runtime struct {
	cfg    *config.Config
	deps   screen.Deps
	closer func() error
}

// Close releases the store and flushes the log.
func (rt *runtime) Close() error {
	var errs []error
	if rt.closer != nil {
		errs = append(errs, rt.closer())
	}
	_ = rt.deps.Log().Sync()
	return errors.Join(errs...)
}

// loadConfig reads config and applies command-line overrides on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	for _, name := range []string{"db-path", "db"} {
		if flags.Changed(name) {
			cfg.DBPath, _ = flags.GetString(name)
		}
	}
	for _, name := range []string{"test", "memory"} {
		if flags.Changed(name) {
			cfg.Memory, _ = flags.GetBool(name)
		}
	}
	if flags.Changed("override-date") {
		cfg.OverrideDate, _ = flags.GetString("override-date")
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Lookup("kind") != nil && flags.Changed("kind") {
		cfg.Kind, _ = flags.GetString("kind")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveDBPath returns the configured database path, falling back to the
// default XDG location.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// setup loads config and builds the logger, store, grading source and
// orchestrator.
func setup(cmd *cobra.Command) (*runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	clk, err := cfg.Clock()
	if err != nil {
		return nil, fmt.Errorf("override date: %w", err)
	}

	rt := &runtime{cfg: cfg}
	var (
		repo      store.Repo
		analytics store.Analytics
	)
	if cfg.Memory {
		m := store.NewMemory(store.WithClock(clk))
		repo, analytics = m, m
		logger.Info("using in-memory store")
	} else {
		dbPath, err := resolveDBPath(cfg)
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath, store.WithClock(clk))
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		repo, analytics = st, st
		rt.closer = st.Close
		logger.Info("opened store", zap.String("path", dbPath))
	}

	src, err := grading.NewSource(cfg.Grading.Mode, cfg.GradingThresholds(), analytics)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("grading: %w", err)
	}

	orch := session.New(repo, problemgen.New(nil), src,
		session.WithClock(clk),
		session.WithLogger(logger),
	)
	rt.deps = screen.Deps{
		Orchestrator: orch,
		Repo:         repo,
		Analytics:    analytics,
		Clock:        clk,
		Logger:       logger,
	}
	return rt, nil
}

// commandClock returns the clock the command should use without opening
// the store.
func commandClock(cmd *cobra.Command) (clock.Clock, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return cfg.Clock()
}
