package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry() Registry {
	return NewRegistry(
		Component{ID: "toner_black", Kind: KindConsumable, Supply: SupplyToner, Label: "Black Toner"},
		Component{ID: "fuser", Kind: KindConsumable, Supply: SupplyFuser, Label: "Fuser"},
		Component{ID: "tray_1", Kind: KindTray, Label: "Tray 1"},
		Component{ID: "tray_2", Kind: KindTray, Label: "Tray 2"},
	)
}

func TestNormalizeCoversEveryRegistryComponent(t *testing.T) {
	at := time.Date(2026, 8, 12, 9, 30, 0, 0, time.UTC)
	raw := map[string]any{
		"toner_black": 45,
		"tray_1":      "filled",
	}

	snap, err := Normalize(raw, testRegistry(), at)
	require.NoError(t, err)

	require.Len(t, snap.Readings, 4)
	assert.Equal(t, LevelReading(45), snap.Readings["toner_black"])
	assert.Equal(t, TrayReading(TrayFilled), snap.Readings["tray_1"])
	assert.Equal(t, TrayReading(TrayUnknown), snap.Readings["tray_2"])
	assert.Equal(t, UnknownLevelReading(), snap.Readings["fuser"])
	assert.Equal(t, at, snap.At)
}

func TestNormalizeValueShapes(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
		want  Reading
	}{
		{name: "float level", key: "toner_black", value: float64(12), want: LevelReading(12)},
		{name: "string level", key: "toner_black", value: "33", want: LevelReading(33)},
		{name: "percent-suffixed level", key: "fuser", value: "80%", want: LevelReading(80)},
		{name: "out-of-range level", key: "toner_black", value: 180, want: UnknownLevelReading()},
		{name: "negative level", key: "toner_black", value: -3, want: UnknownLevelReading()},
		{name: "garbage level", key: "toner_black", value: "n/a", want: UnknownLevelReading()},
		{name: "reported low level", key: "toner_black", value: "Low", want: LowReportedReading()},
		{name: "tray empty", key: "tray_1", value: "empty", want: TrayReading(TrayEmpty)},
		{name: "tray out of paper", key: "tray_1", value: "no paper", want: TrayReading(TrayEmpty)},
		{name: "tray filled mixed case", key: "tray_1", value: " Filled ", want: TrayReading(TrayFilled)},
		{name: "tray unexpected value", key: "tray_1", value: 7, want: TrayReading(TrayUnknown)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := Normalize(map[string]any{tt.key: tt.value}, testRegistry(), time.Now())
			require.NoError(t, err)
			assert.Equal(t, tt.want, snap.Readings[ComponentID(tt.key)])
		})
	}
}

func TestNormalizeRejectsNonMapping(t *testing.T) {
	_, err := Normalize("not a mapping", testRegistry(), time.Now())
	require.ErrorIs(t, err, ErrRawUnreadable)

	_, err = Normalize(nil, testRegistry(), time.Now())
	require.ErrorIs(t, err, ErrRawUnreadable)
}

func TestNormalizeIgnoresUnregisteredKeys(t *testing.T) {
	raw := map[string]any{"mystery_widget": 50}

	snap, err := Normalize(raw, testRegistry(), time.Now())
	require.NoError(t, err)

	_, ok := snap.Readings["mystery_widget"]
	assert.False(t, ok)
	assert.Len(t, snap.Readings, 4)
}
