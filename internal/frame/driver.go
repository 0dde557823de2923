// Package frame runs the walkthrough core once per rendered frame, in a fixed
// order: input mode, locomotion, proximity, then hand-off to rendering.
package frame

import (
	"log/slog"
	"time"

	"free-walk/internal/hotspot"
	"free-walk/internal/input"
	"free-walk/internal/locomotion"
	"free-walk/internal/physics"
	"free-walk/internal/rig"
	"free-walk/internal/spatial"

	"github.com/google/uuid"
)

// Device is the XR side the driver reads each frame.
type Device interface {
	Presenting() bool
	Head() spatial.Transform
}

// Driver owns the per-frame ordering. It is single-threaded; call Frame from
// the host's frame callback only.
type Driver struct {
	Device     Device
	Resolver   *input.Resolver
	Integrator *locomotion.Integrator
	Trigger    *hotspot.Trigger
	Rig        *rig.Rig
	World      *physics.World
	Scene      hotspot.Locator
	// Render is called last, every frame, whether or not the session is presenting.
	Render func()

	presenting bool
	sessionID  uuid.UUID
}

// Presenting reports the presenting flag observed on the last frame.
func (d *Driver) Presenting() bool {
	return d.presenting
}

// SessionID identifies the current (or last) immersive session.
func (d *Driver) SessionID() uuid.UUID {
	return d.sessionID
}

// Frame advances the core by dt seconds. now drives the input-mode grace timer,
// which is armed when the first immersive session starts. While not
// presenting, locomotion and proximity are frozen; nothing is carried over
// from an interrupted session.
func (d *Driver) Frame(now time.Time, dt float32) {
	d.trackSession(now)

	d.Rig.Head = d.Device.Head()
	d.Resolver.Update(now)
	if g := d.Resolver.Gaze(); g != nil {
		g.Update(dt, d.Rig.HeadWorld())
	}

	if d.presenting && d.Resolver.MoveRequested() {
		head := d.Rig.HeadWorld()
		d.Integrator.Advance(dt, true, d.Rig, head.Orientation, d.World.Proxy())
		if d.Trigger != nil && d.Scene != nil {
			d.Trigger.Evaluate(d.Rig.Position, d.Rig.HeadWorld().Position, d.Scene)
		}
	}

	if d.Render != nil {
		d.Render()
	}
}

func (d *Driver) trackSession(now time.Time) {
	p := d.Device.Presenting()
	if p == d.presenting {
		return
	}
	d.presenting = p
	if p {
		d.Resolver.Arm(now)
		d.sessionID = uuid.New()
		slog.Info("immersive session started", "session", d.sessionID, "position", d.Rig.Position)
		return
	}
	slog.Info("immersive session ended", "session", d.sessionID, "position", d.Rig.Position)
}
