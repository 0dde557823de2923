// Package rig models the movable viewer anchor: the rig itself plus the head
// transform parented to it.
package rig

import (
	"free-walk/internal/spatial"

	"github.com/go-gl/mathgl/mgl32"
)

// Default start pose: rig stands 10 units back from the origin, head at standing eye height.
var (
	DefaultPosition = mgl32.Vec3{0, 0, 10}
	DefaultHead     = mgl32.Vec3{0, 1.6, 0}
)

// Rig is the viewer anchor. Orientation is the resting orientation; the head
// transform is local to the rig and only ever used for look direction.
type Rig struct {
	Position    mgl32.Vec3
	Orientation mgl32.Quat
	Head        spatial.Transform
}

// New returns a rig at the default start pose.
func New() *Rig {
	return &Rig{
		Position:    DefaultPosition,
		Orientation: mgl32.QuatIdent(),
		Head:        spatial.Transform{Position: DefaultHead, Orientation: mgl32.QuatIdent()},
	}
}

// Transform returns the rig's own world transform.
func (r *Rig) Transform() spatial.Transform {
	return spatial.Transform{Position: r.Position, Orientation: r.Orientation}
}

// HeadWorld returns the head transform in world space.
func (r *Rig) HeadWorld() spatial.Transform {
	return r.Transform().Compose(r.Head)
}

// TranslateLocal moves the rig by dist along a local axis, using the current orientation.
func (r *Rig) TranslateLocal(axis mgl32.Vec3, dist float32) {
	r.Position = r.Position.Add(r.Orientation.Rotate(axis).Mul(dist))
}
