// Package locomotion advances the rig forward in the look direction, gated by
// a collision probe against the proxy geometry.
package locomotion

import (
	"free-walk/internal/physics"
	"free-walk/internal/rig"
	"free-walk/internal/spatial"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// Speed is the walking speed in units per second. No acceleration curve.
	Speed = float32(2.0)
	// EyeOffset raises the probe origin above the rig's floor position.
	EyeOffset = float32(1.0)
)

// Prober reports whether motion from origin along dir is clear of proxy.
type Prober interface {
	CanAdvance(origin, dir mgl32.Vec3, proxy physics.Collider) bool
}

// Integrator steps the rig once per frame while movement is requested.
type Integrator struct {
	probe Prober
}

// New returns an integrator that uses probe for collision tests.
func New(probe Prober) *Integrator {
	return &Integrator{probe: probe}
}

// Advance moves r forward by dt*Speed along the head's look direction when
// moveRequested is true and the probe reports clear. It no-ops when no proxy
// has been registered. The rig's resting orientation is always restored, and
// the return value reports whether the rig moved.
func (in *Integrator) Advance(dt float32, moveRequested bool, r *rig.Rig, head mgl32.Quat, proxy physics.Collider) bool {
	if !moveRequested || proxy == nil || dt <= 0 {
		return false
	}

	resting := r.Orientation
	defer func() { r.Orientation = resting }()

	if head.Len() == 0 {
		head = resting
	}
	r.Orientation = head
	dir := spatial.Direction(r.Orientation).Mul(-1)
	origin := r.Position.Add(spatial.Up.Mul(EyeOffset))
	if !in.probe.CanAdvance(origin, dir, proxy) {
		return false
	}
	r.TranslateLocal(spatial.LocalZ, -dt*Speed)
	return true
}
