package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// OverlayID names a toggleable panel.
type OverlayID string

const (
	OverlayImmunities OverlayID = "immunities"
	OverlayPerf       OverlayID = "perf"
	OverlayHelp       OverlayID = "help"
)

// OverlayDescriptor binds a panel to a key. Panels sharing a non-empty
// Slot replace each other on screen.
type OverlayDescriptor struct {
	ID       OverlayID
	Name     string
	Key      int32
	KeyLabel string
	Slot     string
}

// OverlayRegistry tracks which panels are shown over the dish.
type OverlayRegistry struct {
	descs []OverlayDescriptor
	on    []bool
}

// NewOverlayRegistry registers the play-screen panels. Immunities start
// shown; perf and help share the lower-left corner.
func NewOverlayRegistry() *OverlayRegistry {
	r := &OverlayRegistry{}
	r.Register(OverlayDescriptor{ID: OverlayImmunities, Name: "Immunities", Key: rl.KeyI, KeyLabel: "I"})
	r.Register(OverlayDescriptor{ID: OverlayPerf, Name: "Performance", Key: rl.KeyP, KeyLabel: "P", Slot: "lower-left"})
	r.Register(OverlayDescriptor{ID: OverlayHelp, Name: "Keys", Key: rl.KeyH, KeyLabel: "H", Slot: "lower-left"})
	r.SetEnabled(OverlayImmunities, true)
	return r
}

// Register adds a hidden panel. A repeated ID replaces the old binding.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	if i := r.index(desc.ID); i >= 0 {
		r.descs[i] = desc
		return
	}
	r.descs = append(r.descs, desc)
	r.on = append(r.on, false)
}

func (r *OverlayRegistry) index(id OverlayID) int {
	for i, d := range r.descs {
		if d.ID == id {
			return i
		}
	}
	return -1
}

// SetEnabled shows or hides a panel. Showing one hides its slot mates.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	i := r.index(id)
	if i < 0 {
		return
	}
	if enabled && r.descs[i].Slot != "" {
		for j, d := range r.descs {
			if d.Slot == r.descs[i].Slot {
				r.on[j] = false
			}
		}
	}
	r.on[i] = enabled
}

// Toggle flips a panel and returns its new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	r.SetEnabled(id, !r.IsEnabled(id))
	return r.IsEnabled(id)
}

// IsEnabled reports whether a panel is shown.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	i := r.index(id)
	return i >= 0 && r.on[i]
}

// All returns the panels in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descs
}

// HandleKeyPress toggles the panel bound to key, if any.
func (r *OverlayRegistry) HandleKeyPress(key int32) (id OverlayID, enabled, handled bool) {
	for _, d := range r.descs {
		if d.Key == key {
			return d.ID, r.Toggle(d.ID), true
		}
	}
	return "", false, false
}
