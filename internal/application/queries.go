package application

import (
	"time"

	"github.com/jsr4564/WepaAPP/internal/domain"
)

// ComponentStatus is the presentation view of one watched component: its
// current condition, the reading behind it (nil before the first poll), and
// when it last changed condition.
type ComponentStatus struct {
	Component domain.Component
	Condition domain.Condition
	Reading   *domain.Reading
	Since     time.Time
}

// NeedsAttention reports whether the component is in a condition worth a
// worknote.
func (s ComponentStatus) NeedsAttention() bool {
	return s.Condition == domain.ConditionLow || s.Condition == domain.ConditionEmpty
}

// CurrentStatus returns one entry per registry component, sorted by ID.
func (m *Monitor) CurrentStatus() []ComponentStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	statuses := make([]ComponentStatus, 0, m.registry.Len())
	for _, component := range m.registry.Components() {
		status := ComponentStatus{
			Component: component,
			Condition: m.ledger.Condition(component.ID),
		}
		if event, ok := m.ledger.LastTransition(component.ID); ok {
			status.Since = event.Timestamp
		}
		if m.ledger.LastSnapshot != nil {
			if reading, ok := m.ledger.LastSnapshot.Readings[component.ID]; ok {
				r := reading
				status.Reading = &r
			}
		}
		statuses = append(statuses, status)
	}

	return statuses
}

// History returns the most recent events, newest first. limit <= 0 means
// everything.
func (m *Monitor) History(limit int) []domain.Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	events := m.ledger.Events
	if limit > 0 && len(events) > limit {
		events = events[len(events)-limit:]
	}

	out := make([]domain.Event, len(events))
	for i, event := range events {
		out[len(events)-1-i] = event
	}
	return out
}

// Events returns the full history in ledger (chronological) order.
func (m *Monitor) Events() []domain.Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Event, len(m.ledger.Events))
	copy(out, m.ledger.Events)
	return out
}

// LastChecked returns the time of the last processed snapshot, zero before
// the first successful cycle.
func (m *Monitor) LastChecked() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ledger.LastSnapshot == nil {
		return time.Time{}
	}
	return m.ledger.LastSnapshot.At
}
