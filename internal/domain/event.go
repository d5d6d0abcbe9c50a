package domain

import "time"

// Event records one condition transition. Events are immutable once
// appended to a Ledger.
type Event struct {
	Timestamp time.Time
	Component ComponentID
	Previous  Condition
	New       Condition
}
