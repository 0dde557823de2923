// Package gaze is the hands-free fallback for movement: holding the gaze on
// the move region for a dwell period switches to Move until the gaze leaves.
package gaze

import (
	"free-walk/internal/spatial"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DwellTime is how long, in seconds, the gaze must rest on the move region.
	DwellTime = float32(2.0)
	// LevelTolerance is the half-angle, in radians, around the horizon that counts as the move region.
	LevelTolerance = float32(20 * math32.Pi / 180)
)

// Mode is the dwell state.
type Mode int

const (
	ModeHidden Mode = iota
	ModeGazing
	ModeMove
)

func (m Mode) String() string {
	switch m {
	case ModeGazing:
		return "gazing"
	case ModeMove:
		return "move"
	default:
		return "hidden"
	}
}

// Controller is the dwell state machine: Hidden -> Gazing -> Move, and back to
// Hidden whenever the gaze leaves the move region.
type Controller struct {
	mode    Mode
	elapsed float32
}

// New returns a controller in ModeHidden.
func New() *Controller {
	return &Controller{}
}

// Mode returns the current dwell state.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Progress is the fraction of the dwell completed, in [0,1].
func (c *Controller) Progress() float32 {
	if c.mode == ModeMove {
		return 1
	}
	return mgl32.Clamp(c.elapsed/DwellTime, 0, 1)
}

// InMoveState reports whether the controller is requesting movement.
func (c *Controller) InMoveState() bool {
	return c.mode == ModeMove
}

// Update advances the dwell timer. head is the head's world transform.
func (c *Controller) Update(dt float32, head spatial.Transform) {
	look := spatial.Direction(head.Orientation).Mul(-1)
	if !OnTarget(look) {
		c.mode = ModeHidden
		c.elapsed = 0
		return
	}
	switch c.mode {
	case ModeHidden:
		c.mode = ModeGazing
		c.elapsed = 0
	case ModeGazing:
		c.elapsed += dt
		if c.elapsed >= DwellTime {
			c.mode = ModeMove
		}
	}
}

// OnTarget reports whether look lies in the move region: roughly level with the horizon.
func OnTarget(look mgl32.Vec3) bool {
	p := spatial.Pitch(look)
	return p >= -LevelTolerance && p <= LevelTolerance
}
