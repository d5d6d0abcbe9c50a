package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/jsr4564/WepaAPP/internal/adapters/dashboard"
	statusadapter "github.com/jsr4564/WepaAPP/internal/adapters/render/status"
	"github.com/jsr4564/WepaAPP/internal/adapters/statefile"
	"github.com/jsr4564/WepaAPP/internal/application"
	"github.com/jsr4564/WepaAPP/internal/config"
	"github.com/jsr4564/WepaAPP/internal/ports"
)

type app struct {
	cfg            config.Config
	store          ports.StateStore
	source         ports.StatusSource
	clock          ports.Clock
	statusRenderer func([]application.ComponentStatus, statusadapter.RenderOptions) (string, error)
	now            func() time.Time
}

func wireApp() (*app, error) {
	cfgPath, err := config.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	store, err := statefile.NewStore(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire state store: %w", err)
	}

	httpClient := &http.Client{Timeout: time.Duration(cfg.Monitor.TimeoutSeconds) * time.Second}
	source := dashboard.NewClient(
		httpClient,
		envOrDefault("PRINTMON_DASHBOARD_URL", cfg.Monitor.URL),
		envOrDefault("PRINTMON_PRINTER_ID", cfg.Monitor.PrinterID),
		cfg.Components.Trays,
	)

	return &app{
		cfg:            cfg,
		store:          store,
		source:         source,
		clock:          ports.SystemClock{},
		statusRenderer: statusadapter.Render,
		now:            time.Now,
	}, nil
}

// monitor loads the persisted ledger and returns a ready Monitor. Commands
// construct it per invocation so each run sees the state on disk.
func (a *app) monitor(ctx context.Context) (*application.Monitor, error) {
	return application.NewMonitor(ctx, a.store, a.source, a.clock, a.cfg.Registry(), a.cfg.LowThresholds())
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
