// Package application orchestrates poll cycles: fetch raw state, normalize,
// evaluate conditions, diff into the ledger, persist. The Monitor is the
// ledger's single writer; a mutex collapses overlapping triggers so cycles
// never run concurrently.
package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jsr4564/WepaAPP/internal/domain"
	"github.com/jsr4564/WepaAPP/internal/ports"
)

type Monitor struct {
	store      ports.StateStore
	source     ports.StatusSource
	clock      ports.Clock
	registry   domain.Registry
	thresholds domain.Thresholds

	mu              sync.Mutex
	ledger          *domain.Ledger
	recoveryWarning string
}

// RefreshResult reports one completed poll cycle. Warning carries non-fatal
// trouble (a failed save) that the presentation layer should surface.
type RefreshResult struct {
	At      time.Time
	Events  []domain.Event
	Warning string
}

// NewMonitor loads the persisted ledger and returns a ready Monitor. A
// corrupt state file is not fatal: the monitor starts from an empty ledger
// and keeps the recovery warning for the caller to display.
func NewMonitor(ctx context.Context, store ports.StateStore, source ports.StatusSource, clock ports.Clock, registry domain.Registry, thresholds domain.Thresholds) (*Monitor, error) {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	ledger, err := store.Load(ctx)
	warning := ""
	if err != nil {
		if !errors.Is(err, domain.ErrStateCorrupt) {
			return nil, fmt.Errorf("load state: %w", err)
		}
		warning = fmt.Sprintf("prior history may be lost: %v", err)
	}
	if ledger == nil {
		ledger = domain.NewLedger()
	}

	return &Monitor{
		store:           store,
		source:          source,
		clock:           clock,
		registry:        registry,
		thresholds:      thresholds,
		ledger:          ledger,
		recoveryWarning: warning,
	}, nil
}

// RecoveryWarning returns the corrupt-state warning captured at load time,
// empty when the state file loaded cleanly.
func (m *Monitor) RecoveryWarning() string {
	return m.recoveryWarning
}

// Refresh runs one poll cycle against the wired status source.
func (m *Monitor) Refresh(ctx context.Context) (RefreshResult, error) {
	return m.refreshFrom(ctx, m.source)
}

// RefreshFrom runs one poll cycle against an alternate source, e.g. a saved
// snapshot file.
func (m *Monitor) RefreshFrom(ctx context.Context, source ports.StatusSource) (RefreshResult, error) {
	return m.refreshFrom(ctx, source)
}

func (m *Monitor) refreshFrom(ctx context.Context, source ports.StatusSource) (RefreshResult, error) {
	if source == nil {
		return RefreshResult{}, errors.New("no status source configured")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	raw, err := source.Fetch(ctx)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("fetch printer status: %w", err)
	}

	at := m.clock.Now()
	snap, err := domain.Normalize(raw, m.registry, at)
	if err != nil {
		// Cycle skipped; prior state stays authoritative for the next diff.
		return RefreshResult{}, fmt.Errorf("normalize snapshot: %w", err)
	}

	conditions := domain.Evaluate(snap, m.registry, m.thresholds)
	events := m.ledger.Record(conditions, at)
	m.ledger.NoteSnapshot(snap)

	result := RefreshResult{At: at, Events: events}
	if err := m.store.Save(ctx, m.ledger); err != nil {
		result.Warning = fmt.Sprintf("state not saved, retrying next cycle: %v", err)
	}

	return result, nil
}

// MarkFilled manually resolves an empty tray, recording an explicit
// empty-to-normal transition. The transition is kept in memory even when the
// save fails; the returned error then reports the failed save.
func (m *Monitor) MarkFilled(ctx context.Context, id domain.ComponentID) (domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	component, ok := m.registry.Lookup(id)
	if !ok {
		return domain.Event{}, fmt.Errorf("%w: %s", domain.ErrComponentNotFound, id)
	}
	if component.Kind != domain.KindTray {
		return domain.Event{}, fmt.Errorf("component %s is not a tray", id)
	}
	if m.ledger.Condition(id) != domain.ConditionEmpty {
		return domain.Event{}, fmt.Errorf("%w: %s", domain.ErrNotEmpty, id)
	}

	events := m.ledger.Record(domain.ConditionSet{id: domain.ConditionNormal}, m.clock.Now())
	event := events[0]

	if err := m.store.Save(ctx, m.ledger); err != nil {
		return event, fmt.Errorf("save state: %w", err)
	}

	return event, nil
}
