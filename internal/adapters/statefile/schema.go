package statefile

import (
	"fmt"
	"time"

	"github.com/jsr4564/WepaAPP/internal/domain"
)

const currentSchemaVersion = 1

// documentSchema is the on-disk shape of the monitor state. It is kept
// separate from the domain types so the file format can evolve without
// touching them. Unknown fields in older or newer documents are ignored by
// the JSON decoder; missing optional fields default below.
type documentSchema struct {
	SchemaVersion  int               `json:"schema_version"`
	LastSnapshot   *snapshotSchema   `json:"last_snapshot,omitempty"`
	LastConditions map[string]string `json:"last_conditions,omitempty"`
	Events         []eventSchema     `json:"events"`
}

type snapshotSchema struct {
	At       string                   `json:"at"`
	Readings map[string]readingSchema `json:"readings"`
}

type readingSchema struct {
	Kind        string `json:"kind"`
	Percent     *int   `json:"percent,omitempty"`
	ReportedLow bool   `json:"reported_low,omitempty"`
	Tray        string `json:"tray,omitempty"`
}

type eventSchema struct {
	Timestamp string `json:"timestamp"`
	Component string `json:"component_id"`
	Previous  string `json:"previous_condition"`
	New       string `json:"new_condition"`
}

func (d *documentSchema) applyDefaults() {
	if d.SchemaVersion == 0 {
		d.SchemaVersion = currentSchemaVersion
	}
	if d.LastConditions == nil {
		d.LastConditions = map[string]string{}
	}
	if d.Events == nil {
		d.Events = []eventSchema{}
	}
}

func (d documentSchema) validateVersion() error {
	if d.SchemaVersion > currentSchemaVersion {
		return fmt.Errorf("unsupported state schema version %d (current %d)", d.SchemaVersion, currentSchemaVersion)
	}

	return nil
}

func toSchema(ledger *domain.Ledger) documentSchema {
	doc := documentSchema{
		SchemaVersion:  currentSchemaVersion,
		LastConditions: make(map[string]string, len(ledger.LastConditions)),
		Events:         make([]eventSchema, 0, len(ledger.Events)),
	}

	for id, condition := range ledger.LastConditions {
		doc.LastConditions[string(id)] = string(condition)
	}

	for _, event := range ledger.Events {
		doc.Events = append(doc.Events, eventSchema{
			Timestamp: formatTime(event.Timestamp),
			Component: string(event.Component),
			Previous:  string(event.Previous),
			New:       string(event.New),
		})
	}

	if ledger.LastSnapshot != nil {
		doc.LastSnapshot = toSnapshotSchema(*ledger.LastSnapshot)
	}

	return doc
}

func fromSchema(doc documentSchema) *domain.Ledger {
	ledger := domain.NewLedger()

	for id, condition := range doc.LastConditions {
		ledger.LastConditions[domain.ComponentID(id)] = domain.Condition(condition)
	}

	for _, event := range doc.Events {
		ledger.Events = append(ledger.Events, domain.Event{
			Timestamp: parseTime(event.Timestamp),
			Component: domain.ComponentID(event.Component),
			Previous:  domain.Condition(event.Previous),
			New:       domain.Condition(event.New),
		})
	}

	if doc.LastSnapshot != nil {
		ledger.LastSnapshot = fromSnapshotSchema(*doc.LastSnapshot)
	}

	return ledger
}

func toSnapshotSchema(snap domain.Snapshot) *snapshotSchema {
	out := &snapshotSchema{
		At:       formatTime(snap.At),
		Readings: make(map[string]readingSchema, len(snap.Readings)),
	}

	for id, reading := range snap.Readings {
		entry := readingSchema{Kind: string(reading.Kind)}
		switch reading.Kind {
		case domain.ReadingLevel:
			if reading.Known {
				percent := reading.Percent
				entry.Percent = &percent
			}
			entry.ReportedLow = reading.ReportedLow
		case domain.ReadingTray:
			entry.Tray = string(reading.Tray)
		}
		out.Readings[string(id)] = entry
	}

	return out
}

func fromSnapshotSchema(schema snapshotSchema) *domain.Snapshot {
	snap := &domain.Snapshot{
		At:       parseTime(schema.At),
		Readings: make(map[domain.ComponentID]domain.Reading, len(schema.Readings)),
	}

	for id, entry := range schema.Readings {
		var reading domain.Reading
		switch domain.ReadingKind(entry.Kind) {
		case domain.ReadingLevel:
			switch {
			case entry.Percent != nil:
				reading = domain.LevelReading(*entry.Percent)
			case entry.ReportedLow:
				reading = domain.LowReportedReading()
			default:
				reading = domain.UnknownLevelReading()
			}
		case domain.ReadingTray:
			reading = domain.TrayReading(domain.TrayState(entry.Tray))
		default:
			reading = domain.UnknownLevelReading()
		}
		snap.Readings[domain.ComponentID(id)] = reading
	}

	return snap
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

// formatTime keeps full nanosecond precision so a reloaded ledger compares
// equal to the one that was saved.
func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339Nano)
}
