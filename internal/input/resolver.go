// Package input decides where movement intent comes from: hand-controller
// triggers, or a gaze-dwell fallback when no controller pairs in time.
package input

import (
	"log/slog"
	"time"

	"free-walk/internal/spatial"
	"free-walk/internal/xr"
)

// GracePeriod is how long after setup a controller has to report connected
// before the resolver falls back to gaze.
const GracePeriod = 2 * time.Second

// Mode is the resolved input mode.
type Mode int

const (
	ModeUndetermined Mode = iota
	ModeController
	ModeGaze
)

func (m Mode) String() string {
	switch m {
	case ModeController:
		return "controller"
	case ModeGaze:
		return "gaze"
	default:
		return "undetermined"
	}
}

// Controllers exposes hand-controller state by index.
type Controllers interface {
	Controller(i int) xr.ControllerState
}

// Gaze is a gaze-dwell controller. It is only created once gaze mode is entered.
type Gaze interface {
	Update(dt float32, head spatial.Transform)
	InMoveState() bool
}

// Resolver latches the input mode once and exposes a single move-requested signal.
type Resolver struct {
	controllers Controllers
	newGaze     func() Gaze
	gaze        Gaze
	mode        Mode
	armed       bool
	deadline    time.Time
}

// NewResolver returns an undetermined resolver. newGaze is called at most once,
// when gaze mode is entered.
func NewResolver(controllers Controllers, newGaze func() Gaze) *Resolver {
	return &Resolver{controllers: controllers, newGaze: newGaze}
}

// Arm starts the grace period. Only the first call has any effect.
func (r *Resolver) Arm(now time.Time) {
	if r.armed {
		return
	}
	r.armed = true
	r.deadline = now.Add(GracePeriod)
}

// Update fires the one-shot mode decision once the grace period has elapsed.
// After that the mode never changes.
func (r *Resolver) Update(now time.Time) {
	if r.mode != ModeUndetermined || !r.armed || now.Before(r.deadline) {
		return
	}
	if r.anyConnected() {
		r.mode = ModeController
		slog.Info("input mode latched", "mode", r.mode)
		return
	}
	r.mode = ModeGaze
	if r.newGaze != nil {
		r.gaze = r.newGaze()
	}
	slog.Info("input mode latched", "mode", r.mode, "reason", "no controller connected")
}

// Mode returns the current input mode.
func (r *Resolver) Mode() Mode {
	return r.mode
}

// Gaze returns the installed gaze controller, or nil outside gaze mode.
func (r *Resolver) Gaze() Gaze {
	return r.gaze
}

// MoveRequested is true while either trigger is held, or while the gaze
// controller is in its move state.
func (r *Resolver) MoveRequested() bool {
	for i := 0; i < xr.NumControllers; i++ {
		if r.controllers.Controller(i).Pressed {
			return true
		}
	}
	return r.mode == ModeGaze && r.gaze != nil && r.gaze.InMoveState()
}

func (r *Resolver) anyConnected() bool {
	for i := 0; i < xr.NumControllers; i++ {
		if r.controllers.Controller(i).Connected {
			return true
		}
	}
	return false
}
