// Package hotspot keeps the named points of interest in the environment and
// shows the info panel for the one the viewer is standing near.
package hotspot

import (
	"log/slog"

	"free-walk/internal/spatial"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// Radius is the influence distance of a hotspot.
	Radius = float32(3.0)
	// PanelOffset lifts the panel above the hotspot anchor.
	PanelOffset = float32(1.3)
)

// Locator resolves a hotspot anchor's current world position by name.
type Locator interface {
	WorldPosition(name string) (mgl32.Vec3, bool)
}

// Trigger drives the panel from viewer proximity. At most one hotspot is shown.
type Trigger struct {
	registry *Registry
	panel    *Panel
	shown    string
}

// NewTrigger returns a trigger in the hidden state.
func NewTrigger(registry *Registry, panel *Panel) *Trigger {
	return &Trigger{registry: registry, panel: panel}
}

// Shown returns the key of the hotspot on display, or "" when hidden.
func (t *Trigger) Shown() string {
	return t.shown
}

// Evaluate tests rigPos against every hotspot. When several are within Radius
// the last in registry order wins. Anchors missing from the scene are skipped.
// Showing the hotspot already on display is a no-op; finding none hides the panel.
func (t *Trigger) Evaluate(rigPos, viewer mgl32.Vec3, scene Locator) {
	if t.registry == nil {
		return
	}

	var (
		found    *Entry
		foundPos mgl32.Vec3
	)
	for i := range t.registry.entries {
		e := &t.registry.entries[i]
		pos, ok := scene.WorldPosition(e.Key)
		if !ok {
			continue
		}
		if rigPos.Sub(pos).Len() < Radius {
			found, foundPos = e, pos
		}
	}

	if found == nil {
		if t.shown != "" {
			slog.Debug("hotspot hidden", "hotspot", t.shown)
		}
		t.shown = ""
		t.panel.Hide()
		return
	}
	if found.Key == t.shown {
		return
	}
	t.panel.Show(found.Content, foundPos.Add(spatial.Up.Mul(PanelOffset)), viewer)
	t.shown = found.Key
	slog.Debug("hotspot shown", "hotspot", found.Key)
}
