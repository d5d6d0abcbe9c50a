package domain

import "time"

// ReadingKind discriminates the Reading variant.
type ReadingKind string

const (
	ReadingLevel ReadingKind = "level"
	ReadingTray  ReadingKind = "tray"
)

type TrayState string

const (
	TrayEmpty   TrayState = "empty"
	TrayFilled  TrayState = "filled"
	TrayUnknown TrayState = "unknown"
)

// Reading is the tagged variant handed out by the Normalizer: either a
// supply level percentage (possibly unknown) or a tray occupancy state.
// ReportedLow marks a supply the source flagged as low in status text
// without giving a numeric level.
type Reading struct {
	Kind        ReadingKind
	Percent     int
	Known       bool
	ReportedLow bool
	Tray        TrayState
}

func LevelReading(percent int) Reading {
	return Reading{Kind: ReadingLevel, Percent: percent, Known: true}
}

func UnknownLevelReading() Reading {
	return Reading{Kind: ReadingLevel}
}

// LowReportedReading is a supply level with no usable percentage but a
// textual low-supply report backing it.
func LowReportedReading() Reading {
	return Reading{Kind: ReadingLevel, ReportedLow: true}
}

func TrayReading(state TrayState) Reading {
	return Reading{Kind: ReadingTray, Tray: state}
}

// IsUnknown reports whether the reading carries no usable value.
func (r Reading) IsUnknown() bool {
	switch r.Kind {
	case ReadingLevel:
		return !r.Known && !r.ReportedLow
	case ReadingTray:
		return r.Tray == TrayUnknown || r.Tray == ""
	default:
		return true
	}
}

// Snapshot is one validated poll of printer state. Every registry component
// appears exactly once in Readings; missing source data is represented as an
// explicit unknown reading rather than an absent key.
type Snapshot struct {
	At       time.Time
	Readings map[ComponentID]Reading
}
