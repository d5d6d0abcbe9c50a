package domain

import "sort"

// ComponentID identifies a tracked tray or consumable, e.g. "tray_2" or
// "toner_black".
type ComponentID string

type ComponentKind string

const (
	KindTray       ComponentKind = "tray"
	KindConsumable ComponentKind = "consumable"
)

// SupplyClass selects which low threshold applies to a consumable. Drums and
// the transfer belt are tracked for display but never flagged low, matching
// how the monitor page reports them.
type SupplyClass string

const (
	SupplyToner SupplyClass = "toner"
	SupplyFuser SupplyClass = "fuser"
	SupplyDrum  SupplyClass = "drum"
	SupplyBelt  SupplyClass = "belt"
	SupplyNone  SupplyClass = ""
)

// Component describes one resource the monitor watches.
type Component struct {
	ID     ComponentID
	Kind   ComponentKind
	Supply SupplyClass
	Label  string
}

// Registry is the configured set of components. A Snapshot always carries
// exactly one Reading per registry component.
type Registry struct {
	components map[ComponentID]Component
}

func NewRegistry(components ...Component) Registry {
	m := make(map[ComponentID]Component, len(components))
	for _, c := range components {
		m[c.ID] = c
	}
	return Registry{components: m}
}

func (r Registry) Lookup(id ComponentID) (Component, bool) {
	c, ok := r.components[id]
	return c, ok
}

func (r Registry) Len() int {
	return len(r.components)
}

// Components returns every registered component sorted by ID.
func (r Registry) Components() []Component {
	out := make([]Component, 0, len(r.components))
	for _, c := range r.components {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
