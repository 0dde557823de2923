// Package spatial holds the small set of 3D types shared by the locomotion,
// collision and hotspot code: rays, hits and rigid transforms over mgl32.
package spatial

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Up is the world up axis (Y-up, same as the renderer).
var Up = mgl32.Vec3{0, 1, 0}

// LocalZ is the local +Z axis. Objects "look" down -Z, so forward motion is along -LocalZ.
var LocalZ = mgl32.Vec3{0, 0, 1}

// Ray is a half-line starting at Origin. Direction is expected to be unit length.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Hit is one ray intersection. Distance is measured from the ray origin.
type Hit struct {
	Distance float32
	Point    mgl32.Vec3
}

// Transform is a position plus orientation. Scale is not modeled; nothing in
// the walkable environment is scaled at runtime.
type Transform struct {
	Position    mgl32.Vec3
	Orientation mgl32.Quat
}

// Identity returns a transform at the origin with no rotation.
func Identity() Transform {
	return Transform{Orientation: mgl32.QuatIdent()}
}

// Compose returns child expressed in the space of t (parent * child).
func (t Transform) Compose(child Transform) Transform {
	return Transform{
		Position:    t.Position.Add(t.Orientation.Rotate(child.Position)),
		Orientation: t.Orientation.Mul(child.Orientation).Normalize(),
	}
}

// Direction returns the world direction of the local +Z axis for orientation q.
func Direction(q mgl32.Quat) mgl32.Vec3 {
	return q.Rotate(LocalZ).Normalize()
}

// Facing returns an orientation whose local +Z axis points from `from` toward `to`.
// Coincident points give the identity rotation.
func Facing(from, to mgl32.Vec3) mgl32.Quat {
	d := to.Sub(from)
	if d.Len() < 1e-6 {
		return mgl32.QuatIdent()
	}
	return mgl32.QuatBetweenVectors(LocalZ, d.Normalize())
}

// Pitch returns the elevation angle of dir above the horizon, in radians.
func Pitch(dir mgl32.Vec3) float32 {
	l := dir.Len()
	if l == 0 {
		return 0
	}
	return math32.Asin(mgl32.Clamp(dir.Y()/l, -1, 1))
}

// FromYawPitch builds an orientation from yaw (about +Y) then pitch (about local +X), radians.
func FromYawPitch(yaw, pitch float32) mgl32.Quat {
	y := mgl32.QuatRotate(yaw, Up)
	p := mgl32.QuatRotate(pitch, mgl32.Vec3{1, 0, 0})
	return y.Mul(p).Normalize()
}

// Near reports whether a and b are within tol of each other on every axis.
func Near(a, b mgl32.Vec3, tol float32) bool {
	for i := range a {
		if math32.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}
