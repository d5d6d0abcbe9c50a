package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Normalize converts a loosely typed raw mapping from the fetch collaborator
// into a validated Snapshot. Every registry component yields exactly one
// reading; a missing or malformed value becomes an explicit unknown reading
// instead of failing the snapshot.
//
// It fails only when raw is not a mapping at all, wrapping ErrRawUnreadable.
func Normalize(raw any, reg Registry, at time.Time) (Snapshot, error) {
	values, ok := raw.(map[string]any)
	if !ok || values == nil {
		return Snapshot{}, fmt.Errorf("%w: expected a mapping, got %T", ErrRawUnreadable, raw)
	}

	readings := make(map[ComponentID]Reading, reg.Len())
	for _, component := range reg.Components() {
		value, present := values[string(component.ID)]
		if !present {
			readings[component.ID] = unknownFor(component)
			continue
		}
		readings[component.ID] = parseReading(component, value)
	}

	return Snapshot{At: at, Readings: readings}, nil
}

func unknownFor(c Component) Reading {
	if c.Kind == KindTray {
		return TrayReading(TrayUnknown)
	}
	return UnknownLevelReading()
}

func parseReading(c Component, value any) Reading {
	if c.Kind == KindTray {
		return parseTrayValue(value)
	}
	return parseLevelValue(value)
}

func parseTrayValue(value any) Reading {
	s, ok := value.(string)
	if !ok {
		return TrayReading(TrayUnknown)
	}

	switch strings.ToLower(strings.TrimSpace(s)) {
	case "empty", "out", "no paper":
		return TrayReading(TrayEmpty)
	case "filled", "ok", "ready":
		return TrayReading(TrayFilled)
	default:
		return TrayReading(TrayUnknown)
	}
}

func parseLevelValue(value any) Reading {
	if s, ok := value.(string); ok && strings.EqualFold(strings.TrimSpace(s), "low") {
		return LowReportedReading()
	}

	percent, ok := toPercent(value)
	if !ok || percent < 0 || percent > 100 {
		return UnknownLevelReading()
	}
	return LevelReading(percent)
}

func toPercent(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		trimmed := strings.TrimSuffix(strings.TrimSpace(v), "%")
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
