package hotspot

import (
	"free-walk/internal/spatial"

	"github.com/go-gl/mathgl/mgl32"
)

// Panel is the single floating info board. The renderer draws it as-is.
type Panel struct {
	Title       string
	Body        string
	Position    mgl32.Vec3
	Orientation mgl32.Quat
	Visible     bool
	// Updates counts content changes, for the HUD and for idempotency checks.
	Updates int
}

// NewPanel returns a hidden panel.
func NewPanel() *Panel {
	return &Panel{Orientation: mgl32.QuatIdent()}
}

// Show replaces the panel content, places it at pos facing viewer and makes it visible.
func (p *Panel) Show(c Content, pos, viewer mgl32.Vec3) {
	p.Title = c.Name
	p.Body = c.Info
	p.Position = pos
	p.Orientation = spatial.Facing(pos, viewer)
	p.Visible = true
	p.Updates++
}

// Hide makes the panel invisible; content is left in place.
func (p *Panel) Hide() {
	p.Visible = false
}
