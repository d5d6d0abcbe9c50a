package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/jsr4564/WepaAPP/internal/domain"
)

// WorknoteMode selects the ticket template for a single tray.
type WorknoteMode string

const (
	ModeDetected WorknoteMode = "detected"
	ModeRefilled WorknoteMode = "refilled"
)

func (m WorknoteMode) Valid() bool {
	return m == ModeDetected || m == ModeRefilled
}

// Attention is one component currently in a reportable condition, with the
// timestamps a technician cares about.
type Attention struct {
	Component domain.Component
	Condition domain.Condition
	Since     time.Time
	LastSeen  time.Time
}

const allNormalMessage = "All supplies and trays are normal."

// Worknote produces a copy-paste safe plain-text summary of every component
// currently low or empty, each with the time of its most recent transition
// into that condition.
func Worknote(items []Attention, now time.Time) string {
	if len(items) == 0 {
		return allNormalMessage
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] Printer supply/tray conditions requiring attention:\n", displayTime(now))
	for _, item := range items {
		fmt.Fprintf(&b, "- %s: %s since %s\n",
			componentLabel(item.Component),
			conditionLabel(item.Condition),
			displayTime(item.Since),
		)
	}
	b.WriteString("Generated by Printer Supply & Tray Monitor.")

	return sanitize(b.String())
}

// TrayWorknote renders a ServiceNow-style worknote for one tray, either the
// detection template or the refilled-and-tested template.
func TrayWorknote(item Attention, mode WorknoteMode, now time.Time) string {
	label := componentLabel(item.Component)
	since := displayTime(item.Since)
	lastSeen := displayTime(item.LastSeen)

	if mode == ModeRefilled {
		return sanitize(fmt.Sprintf(
			"[%s] Refill completed for %s.\n"+
				"Issue addressed: %s empty.\n"+
				"First detected empty: %s.\n"+
				"Most recent empty detection: %s.\n"+
				"Actions performed:\n"+
				"- Arrived on site and verified %s was empty.\n"+
				"- Refilled %s with paper.\n"+
				"- Ran a test print and confirmed successful output.\n"+
				"- No additional supply/tray faults observed after refill.\n"+
				"Printer returned to service.",
			displayTime(now), label, label, since, lastSeen, label, label,
		))
	}

	return sanitize(fmt.Sprintf(
		"[%s] Monitoring alert: %s empty.\n"+
			"First detected empty: %s.\n"+
			"Most recent detection: %s.\n"+
			"Planned action:\n"+
			"- Refill %s.\n"+
			"- Run test print.\n"+
			"- Update ticket with verification results.",
		displayTime(now), label, since, lastSeen, label,
	))
}

func componentLabel(c domain.Component) string {
	if c.Label != "" {
		return c.Label
	}
	return string(c.ID)
}

func conditionLabel(c domain.Condition) string {
	switch c {
	case domain.ConditionLow:
		return "low"
	case domain.ConditionEmpty:
		return "empty"
	default:
		return string(c)
	}
}

func displayTime(at time.Time) string {
	if at.IsZero() {
		return "-"
	}
	return at.Format("2006-01-02 15:04:05")
}

// sanitize strips control characters other than newline so the text pastes
// cleanly into ticketing systems.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
