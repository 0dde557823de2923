// Package xr is the device side of the walkthrough: the immersive session
// flag, the two hand controllers and the head pose.
package xr

import (
	"free-walk/internal/spatial"

	"github.com/go-gl/mathgl/mgl32"
)

// NumControllers is the number of hand controllers a session exposes.
const NumControllers = 2

// heldOffsets place controllers 0 (left) and 1 (right) relative to the head
// when they are held at rest.
var heldOffsets = [NumControllers]mgl32.Vec3{{-0.2, -0.4, -0.3}, {0.2, -0.4, -0.3}}

// ControllerState is one hand controller.
type ControllerState struct {
	Index     int
	Pressed   bool
	Connected bool
	Pose      spatial.Transform
}

// Session holds device state. It is mutated by device events on the frame
// thread and read by the frame driver; it is not safe for concurrent use.
type Session struct {
	presenting  bool
	controllers [NumControllers]ControllerState
	head        spatial.Transform
}

// NewSession returns a session that is not presenting, with the head at
// standing eye height relative to the rig.
func NewSession() *Session {
	s := &Session{
		head: spatial.Transform{Position: mgl32.Vec3{0, 1.6, 0}, Orientation: mgl32.QuatIdent()},
	}
	s.resetControllers()
	return s
}

func (s *Session) resetControllers() {
	for i := range s.controllers {
		s.controllers[i] = ControllerState{Index: i, Pose: spatial.Identity()}
	}
}

// Enter starts presenting.
func (s *Session) Enter() {
	s.presenting = true
}

// Exit stops presenting. Controller state does not outlive the session.
func (s *Session) Exit() {
	s.presenting = false
	s.resetControllers()
}

// Presenting reports whether an immersive session is active.
func (s *Session) Presenting() bool {
	return s.presenting
}

// Controller returns the state of controller i. Out-of-range indices return
// a disconnected, unpressed state.
func (s *Session) Controller(i int) ControllerState {
	if i < 0 || i >= NumControllers {
		return ControllerState{Index: i}
	}
	return s.controllers[i]
}

// Connect marks controller i as paired.
func (s *Session) Connect(i int) {
	if c := s.controller(i); c != nil {
		c.Connected = true
	}
}

// SelectStart marks controller i's trigger as pressed.
func (s *Session) SelectStart(i int) {
	if c := s.controller(i); c != nil {
		c.Pressed = true
	}
}

// SelectEnd marks controller i's trigger as released.
func (s *Session) SelectEnd(i int) {
	if c := s.controller(i); c != nil {
		c.Pressed = false
	}
}

// SetControllerPose updates controller i's transform, local to the rig.
func (s *Session) SetControllerPose(i int, pose spatial.Transform) {
	if c := s.controller(i); c != nil {
		c.Pose = pose
	}
}

// HeldPose returns controller i's pose when held at rest below and in front of
// head, pointing where the head looks. Both transforms are local to the rig.
func HeldPose(head spatial.Transform, i int) spatial.Transform {
	if i < 0 || i >= NumControllers {
		return head
	}
	return head.Compose(spatial.Transform{Position: heldOffsets[i], Orientation: mgl32.QuatIdent()})
}

// Head returns the head transform, local to the rig.
func (s *Session) Head() spatial.Transform {
	return s.head
}

// SetHead updates the head transform, local to the rig.
func (s *Session) SetHead(t spatial.Transform) {
	s.head = t
}

func (s *Session) controller(i int) *ControllerState {
	if i < 0 || i >= NumControllers {
		return nil
	}
	return &s.controllers[i]
}
