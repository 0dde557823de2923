// Package desktop emulates the XR device with keyboard and mouse so the
// walkthrough can be driven without a headset.
package desktop

import (
	"free-walk/internal/spatial"
	"free-walk/internal/xr"

	"github.com/go-gl/mathgl/mgl32"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// maxPitch keeps the emulated head from flipping over.
const maxPitch = 1.4

// Desktop drives an xr.Session from raylib input:
// Enter toggles the immersive session, the mouse turns the head,
// and the left/right buttons are the triggers of controllers 0 and 1, held
// at rest below the head.
// A controller reports connected the first time its button is pressed.
type Desktop struct {
	Session     *xr.Session
	Sensitivity float32
	yaw, pitch  float32
}

// New returns an emulator driving s.
func New(s *xr.Session, sensitivity float32) *Desktop {
	return &Desktop{Session: s, Sensitivity: sensitivity}
}

// Poll reads raylib input and applies it to the session. Call once per frame, before the core runs.
func (d *Desktop) Poll() {
	if rl.IsKeyPressed(rl.KeyEnter) {
		if d.Session.Presenting() {
			d.Session.Exit()
			rl.EnableCursor()
		} else {
			d.Session.Enter()
			rl.DisableCursor()
		}
	}
	if !d.Session.Presenting() {
		return
	}

	md := rl.GetMouseDelta()
	d.yaw -= md.X * d.Sensitivity
	d.pitch = mgl32.Clamp(d.pitch-md.Y*d.Sensitivity, -maxPitch, maxPitch)
	head := d.Session.Head()
	head.Orientation = spatial.FromYawPitch(d.yaw, d.pitch)
	d.Session.SetHead(head)
	for i := range xr.NumControllers {
		d.Session.SetControllerPose(i, xr.HeldPose(head, i))
	}

	for i, b := range [xr.NumControllers]rl.MouseButton{rl.MouseButtonLeft, rl.MouseButtonRight} {
		if rl.IsMouseButtonPressed(b) {
			d.Session.Connect(i)
			d.Session.SelectStart(i)
		}
		if rl.IsMouseButtonReleased(b) {
			d.Session.SelectEnd(i)
		}
	}
}
