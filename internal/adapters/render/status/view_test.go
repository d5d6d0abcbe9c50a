package status

import (
	"testing"
	"time"

	"github.com/jsr4564/WepaAPP/internal/application"
	"github.com/jsr4564/WepaAPP/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func levelReading(percent int) *domain.Reading {
	r := domain.LevelReading(percent)
	return &r
}

func trayReading(state domain.TrayState) *domain.Reading {
	r := domain.TrayReading(state)
	return &r
}

func TestRenderSupplyAndTrayStatus(t *testing.T) {
	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)

	output, err := Render([]application.ComponentStatus{
		{
			Component: domain.Component{ID: "toner_black", Kind: domain.KindConsumable, Supply: domain.SupplyToner, Label: "Black Toner"},
			Condition: domain.ConditionNormal,
			Reading:   levelReading(45),
			Since:     now.Add(-2 * time.Hour),
		},
		{
			Component: domain.Component{ID: "tray_1", Kind: domain.KindTray, Label: "Tray 1"},
			Condition: domain.ConditionEmpty,
			Reading:   trayReading(domain.TrayEmpty),
			Since:     now.Add(-10 * time.Minute),
		},
	}, RenderOptions{Now: now, LastChecked: now.Add(-5 * time.Minute), StaleAfter: time.Hour})

	require.NoError(t, err)
	assert.Contains(t, output, "Printer Supply Status")
	assert.Contains(t, output, "components: 2")
	assert.Contains(t, output, "last checked: 10:55")
	assert.Contains(t, output, "Black Toner")
	assert.Contains(t, output, "45%")
	assert.Contains(t, output, "normal")
	assert.Contains(t, output, "2h ago")
	assert.Contains(t, output, "Tray 1")
	assert.Contains(t, output, "EMPTY")
	assert.Contains(t, output, "10m ago")
	assert.Contains(t, output, "[")
	assert.Contains(t, output, "]")
	assert.NotContains(t, output, "stale")
}

func TestRenderMarksStaleStatus(t *testing.T) {
	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)

	output, err := Render([]application.ComponentStatus{
		{
			Component: domain.Component{ID: "fuser", Kind: domain.KindConsumable, Supply: domain.SupplyFuser, Label: "Fuser Kit"},
			Condition: domain.ConditionLow,
			Reading:   levelReading(12),
			Since:     now.Add(-3 * 24 * time.Hour),
		},
	}, RenderOptions{Now: now, LastChecked: now.Add(-26 * time.Hour), StaleAfter: time.Hour})

	require.NoError(t, err)
	assert.Contains(t, output, "[stale]")
	assert.Contains(t, output, "low")
	assert.Contains(t, output, "3d ago")
}

func TestRenderUnknownComponentWithoutReading(t *testing.T) {
	output, err := Render([]application.ComponentStatus{
		{
			Component: domain.Component{ID: "drum_black", Kind: domain.KindConsumable, Supply: domain.SupplyDrum, Label: "Black Drum"},
			Condition: domain.ConditionUnknown,
		},
	}, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "Black Drum")
	assert.Contains(t, output, "unknown")
	assert.Contains(t, output, "last checked: never")
	assert.NotContains(t, output, "%")
}

func TestRenderEmptyComponentList(t *testing.T) {
	output, err := Render(nil, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "components: 0")
	assert.Contains(t, output, "No components configured.")
}
