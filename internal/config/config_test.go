package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jsr4564/WepaAPP/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `[monitor]
url = "https://wepa.example/monitor"
printer_id = "12345"

[thresholds]
toner_low_percent = 10

[components]
trays = ["tray_1", "tray_2"]
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://wepa.example/monitor", cfg.Monitor.URL)
	assert.Equal(t, "12345", cfg.Monitor.PrinterID)
	assert.Equal(t, 5, cfg.Monitor.IntervalMinutes)
	assert.Equal(t, 10, cfg.Thresholds.TonerLowPercent)
	assert.Equal(t, 20, cfg.Thresholds.FuserLowPercent)
	assert.Equal(t, []string{"tray_1", "tray_2"}, cfg.Components.Trays)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "zero interval", body: "[monitor]\ninterval_minutes = 0\n", want: "interval_minutes"},
		{name: "threshold too high", body: "[thresholds]\ntoner_low_percent = 250\n", want: "toner_low_percent"},
		{name: "no trays", body: "[components]\ntrays = []\n", want: "trays"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRegistryContainsConsumablesAndConfiguredTrays(t *testing.T) {
	cfg := Default()
	cfg.Components.Trays = []string{"tray_1", "tray_7"}

	reg := cfg.Registry()
	assert.Equal(t, 12, reg.Len())

	tray, ok := reg.Lookup("tray_7")
	require.True(t, ok)
	assert.Equal(t, domain.KindTray, tray.Kind)
	assert.Equal(t, "Tray 7", tray.Label)

	toner, ok := reg.Lookup("toner_black")
	require.True(t, ok)
	assert.Equal(t, domain.SupplyToner, toner.Supply)
}

func TestLowThresholds(t *testing.T) {
	cfg := Default()
	assert.Equal(t, domain.Thresholds{TonerLowPercent: 15, FuserLowPercent: 20}, cfg.LowThresholds())
}
