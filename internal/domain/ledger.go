package domain

import (
	"sort"
	"time"
)

// Ledger is the durable, append-only history of condition transitions plus
// the last-known state used to diff the next poll. It has a single writer;
// callers serialize access themselves.
type Ledger struct {
	Events         []Event
	LastConditions ConditionSet
	LastSnapshot   *Snapshot
}

func NewLedger() *Ledger {
	return &Ledger{LastConditions: ConditionSet{}}
}

// Record diffs the new conditions against the stored last-known set and
// appends one Event per changed component, sorted by ComponentID so the log
// order never depends on map iteration. A component absent from the prior
// set is treated as previously Unknown. Components absent from the call keep
// their last condition and produce no event: a transient read failure must
// not churn the history, only an explicit Unknown reading does.
//
// Calling Record twice with identical conditions appends nothing.
func (l *Ledger) Record(conditions ConditionSet, at time.Time) []Event {
	if l.LastConditions == nil {
		l.LastConditions = ConditionSet{}
	}

	// Keep ledger order non-decreasing even if the caller's clock stepped back.
	if n := len(l.Events); n > 0 && at.Before(l.Events[n-1].Timestamp) {
		at = l.Events[n-1].Timestamp
	}

	ids := make([]ComponentID, 0, len(conditions))
	for id := range conditions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	merged := make(ConditionSet, len(l.LastConditions)+len(conditions))
	for id, c := range l.LastConditions {
		merged[id] = c
	}

	var emitted []Event
	for _, id := range ids {
		previous, ok := l.LastConditions[id]
		if !ok {
			previous = ConditionUnknown
		}
		merged[id] = conditions[id]
		if previous == conditions[id] {
			continue
		}
		emitted = append(emitted, Event{
			Timestamp: at,
			Component: id,
			Previous:  previous,
			New:       conditions[id],
		})
	}

	l.Events = append(l.Events, emitted...)
	l.LastConditions = merged
	return emitted
}

// NoteSnapshot stores a copy of the most recently processed snapshot for
// display and export.
func (l *Ledger) NoteSnapshot(s Snapshot) {
	copied := Snapshot{At: s.At, Readings: make(map[ComponentID]Reading, len(s.Readings))}
	for id, r := range s.Readings {
		copied.Readings[id] = r
	}
	l.LastSnapshot = &copied
}

// Condition returns the last-known condition of a component, Unknown when
// the component has never been observed.
func (l *Ledger) Condition(id ComponentID) Condition {
	if c, ok := l.LastConditions[id]; ok {
		return c
	}
	return ConditionUnknown
}

// LastTransition returns the most recent event for a component.
func (l *Ledger) LastTransition(id ComponentID) (Event, bool) {
	for i := len(l.Events) - 1; i >= 0; i-- {
		if l.Events[i].Component == id {
			return l.Events[i], true
		}
	}
	return Event{}, false
}
