package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jsr4564/WepaAPP/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	ledger   *domain.Ledger
	loadErr  error
	saveErr  error
	saved    int
	lastSave *domain.Ledger
}

func (f *fakeStore) Load(_ context.Context) (*domain.Ledger, error) {
	if f.ledger == nil {
		f.ledger = domain.NewLedger()
	}
	return f.ledger, f.loadErr
}

func (f *fakeStore) Save(_ context.Context, ledger *domain.Ledger) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved++
	f.lastSave = ledger
	return nil
}

type fakeSource struct {
	raw map[string]any
	err error
}

func (f *fakeSource) Fetch(_ context.Context) (map[string]any, error) {
	return f.raw, f.err
}

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

func (f *fakeClock) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func testRegistry() domain.Registry {
	return domain.NewRegistry(
		domain.Component{ID: "toner_black", Kind: domain.KindConsumable, Supply: domain.SupplyToner, Label: "Black Toner"},
		domain.Component{ID: "tray_1", Kind: domain.KindTray, Label: "Tray 1"},
		domain.Component{ID: "tray_2", Kind: domain.KindTray, Label: "Tray 2"},
	)
}

func newTestMonitor(t *testing.T, store *fakeStore, source *fakeSource) (*Monitor, *fakeClock) {
	t.Helper()

	clock := &fakeClock{now: time.Date(2026, 8, 12, 9, 0, 0, 0, time.UTC)}
	monitor, err := NewMonitor(context.Background(), store, source, clock, testRegistry(), domain.DefaultThresholds())
	require.NoError(t, err)
	return monitor, clock
}

func TestRefreshPipelineRecordsAndSaves(t *testing.T) {
	store := &fakeStore{}
	source := &fakeSource{raw: map[string]any{"tray_1": "filled", "toner_black": 45}}
	monitor, _ := newTestMonitor(t, store, source)

	result, err := monitor.Refresh(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Events, 2)
	assert.Empty(t, result.Warning)
	assert.Equal(t, 1, store.saved)
	require.NotNil(t, store.lastSave.LastSnapshot)
	assert.Equal(t, result.At, store.lastSave.LastSnapshot.At)

	// tray_2 was missing from the page: explicit unknown, baselined as such.
	assert.Equal(t, domain.ConditionUnknown, store.lastSave.Condition("tray_2"))
}

func TestRefreshIdenticalPollIsIdempotent(t *testing.T) {
	store := &fakeStore{}
	source := &fakeSource{raw: map[string]any{"tray_1": "filled", "toner_black": 45}}
	monitor, clock := newTestMonitor(t, store, source)

	_, err := monitor.Refresh(context.Background())
	require.NoError(t, err)

	clock.advance(5 * time.Minute)
	result, err := monitor.Refresh(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Events)
}

func TestRefreshFetchErrorKeepsState(t *testing.T) {
	store := &fakeStore{}
	source := &fakeSource{raw: map[string]any{"tray_1": "empty"}}
	monitor, clock := newTestMonitor(t, store, source)

	_, err := monitor.Refresh(context.Background())
	require.NoError(t, err)
	savedBefore := store.saved

	source.raw = nil
	source.err = errors.New("connection refused")
	clock.advance(5 * time.Minute)

	_, err = monitor.Refresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch printer status")
	assert.Equal(t, savedBefore, store.saved)
	assert.Equal(t, domain.ConditionEmpty, monitor.CurrentStatus()[1].Condition)
}

func TestRefreshSaveFailureWarnsAndRetries(t *testing.T) {
	store := &fakeStore{saveErr: errors.New("disk full")}
	source := &fakeSource{raw: map[string]any{"tray_1": "empty"}}
	monitor, clock := newTestMonitor(t, store, source)

	result, err := monitor.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Events, 1)
	assert.Contains(t, result.Warning, "disk full")

	// In-memory state stayed authoritative: the next identical poll diffs
	// against it and the retried save carries the full history.
	store.saveErr = nil
	clock.advance(5 * time.Minute)
	result, err = monitor.Refresh(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Events)
	assert.Empty(t, result.Warning)
	assert.Equal(t, 1, store.saved)
	assert.Len(t, store.lastSave.Events, 1)
}

func TestNewMonitorRecoversFromCorruptState(t *testing.T) {
	store := &fakeStore{loadErr: fmt.Errorf("%w: decode state file", domain.ErrStateCorrupt)}
	source := &fakeSource{raw: map[string]any{}}
	monitor, _ := newTestMonitor(t, store, source)

	assert.Contains(t, monitor.RecoveryWarning(), "prior history may be lost")
	assert.Empty(t, monitor.Events())
}

func TestRefreshFromAlternateSource(t *testing.T) {
	store := &fakeStore{}
	monitor, _ := newTestMonitor(t, store, &fakeSource{err: errors.New("unused")})

	result, err := monitor.RefreshFrom(context.Background(), &fakeSource{raw: map[string]any{"tray_1": "empty"}})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Events)
}

func TestMarkFilled(t *testing.T) {
	store := &fakeStore{}
	source := &fakeSource{raw: map[string]any{"tray_1": "empty", "tray_2": "filled", "toner_black": 50}}
	monitor, clock := newTestMonitor(t, store, source)

	_, err := monitor.Refresh(context.Background())
	require.NoError(t, err)

	clock.advance(time.Hour)
	event, err := monitor.MarkFilled(context.Background(), "tray_1")
	require.NoError(t, err)
	assert.Equal(t, domain.ConditionEmpty, event.Previous)
	assert.Equal(t, domain.ConditionNormal, event.New)
	assert.Equal(t, clock.now, event.Timestamp)

	// Only empty trays can be marked filled; consumables never can.
	_, err = monitor.MarkFilled(context.Background(), "tray_2")
	require.ErrorIs(t, err, domain.ErrNotEmpty)
	_, err = monitor.MarkFilled(context.Background(), "toner_black")
	require.Error(t, err)
	_, err = monitor.MarkFilled(context.Background(), "tray_9")
	require.ErrorIs(t, err, domain.ErrComponentNotFound)
}

func TestCurrentStatusAndHistory(t *testing.T) {
	store := &fakeStore{}
	source := &fakeSource{raw: map[string]any{"tray_1": "empty", "toner_black": 9}}
	monitor, clock := newTestMonitor(t, store, source)
	start := clock.now

	_, err := monitor.Refresh(context.Background())
	require.NoError(t, err)

	statuses := monitor.CurrentStatus()
	require.Len(t, statuses, 3)
	assert.Equal(t, domain.ComponentID("toner_black"), statuses[0].Component.ID)
	assert.Equal(t, domain.ConditionLow, statuses[0].Condition)
	assert.Equal(t, start, statuses[0].Since)
	assert.True(t, statuses[0].NeedsAttention())
	require.NotNil(t, statuses[0].Reading)
	assert.Equal(t, 9, statuses[0].Reading.Percent)

	clock.advance(5 * time.Minute)
	source.raw = map[string]any{"tray_1": "filled", "toner_black": 9}
	_, err = monitor.Refresh(context.Background())
	require.NoError(t, err)

	history := monitor.History(2)
	require.Len(t, history, 2)
	assert.True(t, !history[0].Timestamp.Before(history[1].Timestamp), "history is newest first")
	assert.Equal(t, domain.ComponentID("tray_1"), history[0].Component)
	assert.Equal(t, domain.ConditionNormal, history[0].New)

	events := monitor.Events()
	for i := 1; i < len(events); i++ {
		assert.False(t, events[i].Timestamp.Before(events[i-1].Timestamp))
	}
	assert.Equal(t, clock.now, monitor.LastChecked())
}
