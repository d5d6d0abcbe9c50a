// Package config handles loading, defaulting, and validation of the printmon
// TOML configuration file. Every section maps to a typed struct so the rest
// of the codebase gets strong typing without manual key lookups.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/jsr4564/WepaAPP/internal/domain"
)

// Config is the top-level configuration, mirroring the TOML sections.
type Config struct {
	Monitor    MonitorConfig    `toml:"monitor"`
	Thresholds ThresholdsConfig `toml:"thresholds"`
	Components ComponentsConfig `toml:"components"`
}

type MonitorConfig struct {
	URL             string `toml:"url"`
	PrinterID       string `toml:"printer_id"`
	IntervalMinutes int    `toml:"interval_minutes"`
	TimeoutSeconds  int    `toml:"timeout_seconds"`
}

type ThresholdsConfig struct {
	TonerLowPercent int `toml:"toner_low_percent"`
	FuserLowPercent int `toml:"fuser_low_percent"`
}

type ComponentsConfig struct {
	Trays []string `toml:"trays"`
}

// Default returns a Config populated with sane defaults. Values here are
// used whenever the TOML file omits a field.
func Default() Config {
	return Config{
		Monitor: MonitorConfig{
			URL:             "",
			PrinterID:       "",
			IntervalMinutes: 5,
			TimeoutSeconds:  25,
		},
		Thresholds: ThresholdsConfig{
			TonerLowPercent: 15,
			FuserLowPercent: 20,
		},
		Components: ComponentsConfig{
			Trays: []string{"tray_1", "tray_2", "tray_3", "tray_4"},
		},
	}
}

// Load reads the TOML file at path, layers it on top of the defaults, and
// validates the result. A missing file is not an error: the defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// DefaultPath returns the conventional config location under the user's
// home directory.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(homeDir, ".printmon", "config.toml"), nil
}

func validate(cfg Config) error {
	if cfg.Monitor.IntervalMinutes < 1 {
		return fmt.Errorf("monitor.interval_minutes must be >= 1, got %d", cfg.Monitor.IntervalMinutes)
	}
	if cfg.Monitor.TimeoutSeconds < 1 {
		return fmt.Errorf("monitor.timeout_seconds must be >= 1, got %d", cfg.Monitor.TimeoutSeconds)
	}
	if p := cfg.Thresholds.TonerLowPercent; p < 1 || p > 100 {
		return fmt.Errorf("thresholds.toner_low_percent must be in 1..100, got %d", p)
	}
	if p := cfg.Thresholds.FuserLowPercent; p < 1 || p > 100 {
		return fmt.Errorf("thresholds.fuser_low_percent must be in 1..100, got %d", p)
	}
	if len(cfg.Components.Trays) == 0 {
		return errors.New("components.trays must name at least one tray")
	}
	return nil
}

// Registry builds the watched-component registry: the fixed consumable set
// reported by the monitor page plus the configured trays.
func (c Config) Registry() domain.Registry {
	components := []domain.Component{
		{ID: "toner_black", Kind: domain.KindConsumable, Supply: domain.SupplyToner, Label: "Black Toner"},
		{ID: "toner_cyan", Kind: domain.KindConsumable, Supply: domain.SupplyToner, Label: "Cyan Toner"},
		{ID: "toner_magenta", Kind: domain.KindConsumable, Supply: domain.SupplyToner, Label: "Magenta Toner"},
		{ID: "toner_yellow", Kind: domain.KindConsumable, Supply: domain.SupplyToner, Label: "Yellow Toner"},
		{ID: "drum_black", Kind: domain.KindConsumable, Supply: domain.SupplyDrum, Label: "Black Drum"},
		{ID: "drum_cyan", Kind: domain.KindConsumable, Supply: domain.SupplyDrum, Label: "Cyan Drum"},
		{ID: "drum_magenta", Kind: domain.KindConsumable, Supply: domain.SupplyDrum, Label: "Magenta Drum"},
		{ID: "drum_yellow", Kind: domain.KindConsumable, Supply: domain.SupplyDrum, Label: "Yellow Drum"},
		{ID: "belt", Kind: domain.KindConsumable, Supply: domain.SupplyBelt, Label: "Transfer Belt"},
		{ID: "fuser", Kind: domain.KindConsumable, Supply: domain.SupplyFuser, Label: "Fuser"},
	}

	for _, tray := range c.Components.Trays {
		components = append(components, domain.Component{
			ID:    domain.ComponentID(tray),
			Kind:  domain.KindTray,
			Label: trayLabel(tray),
		})
	}

	return domain.NewRegistry(components...)
}

// LowThresholds returns the configured low-supply cutoffs.
func (c Config) LowThresholds() domain.Thresholds {
	return domain.Thresholds{
		TonerLowPercent: c.Thresholds.TonerLowPercent,
		FuserLowPercent: c.Thresholds.FuserLowPercent,
	}
}

func trayLabel(id string) string {
	const prefix = "tray_"
	if len(id) > len(prefix) && id[:len(prefix)] == prefix {
		return "Tray " + id[len(prefix):]
	}
	return id
}
