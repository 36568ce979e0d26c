package main

import (
	"context"
	"fmt"
	"os"

	"gce/internal/app"
	"gce/internal/config"
	"gce/internal/logging"
	"gce/internal/session"

	"go.uber.org/zap"
)

// portalEnv bundles what every command needs: resolved workspace, config,
// and a controller over the configured session store.
type portalEnv struct {
	ws    string
	cfg   *config.Config
	ctrl  *app.Controller
	close func() error
}

func resolveWorkspace() (string, error) {
	if workspace != "" {
		return workspace, nil
	}
	return os.Getwd()
}

func loadConfig(ws string) (*config.Config, error) {
	cfg, err := config.Load(config.DefaultPath(ws))
	if err != nil {
		return nil, err
	}
	if backend != "" {
		cfg.Session.Backend = backend
	}
	if ephemeral {
		cfg.Session.Backend = config.BackendMemory
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openEnv builds the controller. clock is nil for the interactive portal,
// which holds the splash for the configured delay.
func openEnv(clock app.Clock) (*portalEnv, error) {
	ws, err := resolveWorkspace()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace: %w", err)
	}
	cfg, err := loadConfig(ws)
	if err != nil {
		return nil, err
	}
	if err := logging.Initialize(ws, cfg.Logging.Settings()); err != nil {
		logger.Warn("file logging disabled", zap.Error(err))
	}
	cfg.LogEffective(ws)

	store, closeStore, err := session.Open(cfg, ws)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	opts := []app.Option{app.WithSplashDelay(cfg.GetSplashDelay())}
	if clock != nil {
		opts = append(opts, app.WithClock(clock))
	}

	logger.Debug("portal environment ready",
		zap.String("workspace", ws),
		zap.String("backend", cfg.Session.Backend),
		zap.String("session_path", cfg.SessionPath(ws)))

	return &portalEnv{
		ws:   ws,
		cfg:  cfg,
		ctrl: app.New(store, opts...),
		close: func() error {
			logging.CloseAll()
			return closeStore()
		},
	}, nil
}

// bootedEnv opens the environment and restores the session without a splash.
func bootedEnv(ctx context.Context) (*portalEnv, error) {
	env, err := openEnv(app.NoDelay{})
	if err != nil {
		return nil, err
	}
	env.ctrl.Bootstrap(ctx)
	return env, nil
}
