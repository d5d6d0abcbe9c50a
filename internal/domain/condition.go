package domain

// Condition is the derived classification of one component at a point in
// time. Consumables degrade to Low, trays to Empty; the split is a fixed
// policy keyed on ComponentKind, never inferred from readings.
type Condition string

const (
	ConditionNormal  Condition = "normal"
	ConditionLow     Condition = "low"
	ConditionEmpty   Condition = "empty"
	ConditionUnknown Condition = "unknown"
)

// ConditionSet maps every evaluated component to its condition.
type ConditionSet map[ComponentID]Condition

// Thresholds holds the inclusive low-supply cutoffs in percent.
type Thresholds struct {
	TonerLowPercent int
	FuserLowPercent int
}

func DefaultThresholds() Thresholds {
	return Thresholds{TonerLowPercent: 15, FuserLowPercent: 20}
}

func (t Thresholds) lowAt(class SupplyClass) int {
	switch class {
	case SupplyToner:
		return t.TonerLowPercent
	case SupplyFuser:
		return t.FuserLowPercent
	default:
		// Drums and the belt are reported but never alerted on.
		return 0
	}
}

// Evaluate derives a ConditionSet from a snapshot. It is a pure function of
// its inputs: every component present in the snapshot yields exactly one
// condition.
//
// Mono-like printers report cyan, magenta and yellow toner pinned at zero.
// When all three sit at exactly 0% they are treated as not installed rather
// than depleted, so only black toner can go low on such devices.
func Evaluate(snap Snapshot, reg Registry, th Thresholds) ConditionSet {
	monoLike := monoLikeColorToner(snap)

	set := make(ConditionSet, len(snap.Readings))
	for id, reading := range snap.Readings {
		component, ok := reg.Lookup(id)
		if !ok {
			component = Component{ID: id, Kind: KindConsumable}
		}
		set[id] = evaluateOne(component, reading, th, monoLike)
	}

	return set
}

func evaluateOne(c Component, r Reading, th Thresholds, monoLike bool) Condition {
	if r.IsUnknown() {
		return ConditionUnknown
	}

	switch r.Kind {
	case ReadingTray:
		if r.Tray == TrayEmpty {
			return ConditionEmpty
		}
		return ConditionNormal
	case ReadingLevel:
		if c.Kind == KindTray {
			if r.Percent == 0 {
				return ConditionEmpty
			}
			return ConditionNormal
		}
		if !r.Known {
			// No percentage, so the reading survived IsUnknown only on the
			// strength of a textual low-supply report.
			return ConditionLow
		}
		if monoLike && c.Supply == SupplyToner && isColorToner(c.ID) {
			return ConditionNormal
		}
		if limit := th.lowAt(c.Supply); limit > 0 && r.Percent <= limit {
			return ConditionLow
		}
		return ConditionNormal
	default:
		return ConditionUnknown
	}
}

var colorTonerIDs = []ComponentID{"toner_cyan", "toner_magenta", "toner_yellow"}

func isColorToner(id ComponentID) bool {
	for _, c := range colorTonerIDs {
		if id == c {
			return true
		}
	}
	return false
}

func monoLikeColorToner(snap Snapshot) bool {
	for _, id := range colorTonerIDs {
		r, ok := snap.Readings[id]
		if !ok || r.Kind != ReadingLevel || !r.Known || r.Percent != 0 {
			return false
		}
	}
	return true
}
