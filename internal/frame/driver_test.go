package frame

import (
	"testing"
	"time"

	"free-walk/internal/hotspot"
	"free-walk/internal/input"
	"free-walk/internal/locomotion"
	"free-walk/internal/physics"
	"free-walk/internal/rig"
	"free-walk/internal/spatial"
	"free-walk/internal/xr"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/pixil98/go-testutil"
)

type staticScene map[string]mgl32.Vec3

func (s staticScene) WorldPosition(name string) (mgl32.Vec3, bool) {
	p, ok := s[name]
	return p, ok
}

type fixture struct {
	session *xr.Session
	driver  *Driver
	panel   *hotspot.Panel
	renders int
	now     time.Time
}

// newFixture builds a driver with the rig at the origin facing -Z and a proxy wall behind it.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{session: xr.NewSession(), panel: hotspot.NewPanel(), now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}

	world := physics.NewWorld()
	world.SetProxy(physics.QuadMesh("wall_PROXY", mgl32.Vec3{0, 0, 50}, mgl32.Vec3{1000, 0, 0}, mgl32.Vec3{0, 1000, 0}))

	r := rig.New()
	r.Position = mgl32.Vec3{}

	registry := hotspot.NewRegistry(hotspot.Entry{Key: "Library", Content: hotspot.Content{Name: "Library", Info: "Study space."}})
	resolver := input.NewResolver(f.session, nil)
	resolver.Arm(f.now)

	f.driver = &Driver{
		Device:     f.session,
		Resolver:   resolver,
		Integrator: locomotion.New(physics.NewProbe()),
		Trigger:    hotspot.NewTrigger(registry, f.panel),
		Rig:        r,
		World:      world,
		Scene:      staticScene{"Library": {0, 0, -3.5}},
		Render:     func() { f.renders++ },
	}
	return f
}

func (f *fixture) frame(dt float32) {
	f.now = f.now.Add(time.Duration(dt * float32(time.Second)))
	f.driver.Frame(f.now, dt)
}

func TestDriver_WalksAndShowsHotspot(t *testing.T) {
	f := newFixture(t)
	f.session.Enter()
	f.session.Connect(0)
	f.session.SelectStart(0)

	for i := 0; i < 5; i++ {
		f.frame(0.1)
	}

	if !spatial.Near(f.driver.Rig.Position, mgl32.Vec3{0, 0, -1}, 1e-5) {
		t.Errorf("rig position = %v", f.driver.Rig.Position)
	}
	testutil.AssertEqual(t, "shown", f.driver.Trigger.Shown(), "Library")
	testutil.AssertEqual(t, "panel updates", f.panel.Updates, 1)
	testutil.AssertEqual(t, "renders", f.renders, 5)
}

func TestDriver_NotPresentingFreezesCore(t *testing.T) {
	f := newFixture(t)
	f.session.Connect(0)
	f.session.SelectStart(0)

	f.frame(0.1)
	f.frame(0.1)

	testutil.AssertEqual(t, "position", f.driver.Rig.Position, mgl32.Vec3{})
	testutil.AssertEqual(t, "shown", f.driver.Trigger.Shown(), "")
	testutil.AssertEqual(t, "renders", f.renders, 2)
}

func TestDriver_StationaryFramesSkipProximity(t *testing.T) {
	f := newFixture(t)
	f.driver.Rig.Position = mgl32.Vec3{0, 0, -4}
	f.session.Enter()

	f.frame(0.1)
	testutil.AssertEqual(t, "shown while stationary", f.driver.Trigger.Shown(), "")

	f.session.SelectStart(1)
	f.frame(0.1)
	testutil.AssertEqual(t, "shown once moving", f.driver.Trigger.Shown(), "Library")
}

func TestDriver_ExitMidWalkAndResume(t *testing.T) {
	f := newFixture(t)
	f.session.Enter()
	f.session.Connect(0)
	f.session.SelectStart(0)
	f.frame(0.5)
	first := f.driver.SessionID()
	testutil.AssertEqual(t, "presenting", f.driver.Presenting(), true)

	// Exiting drops controller state; the rig stays where it was.
	f.session.Exit()
	f.frame(0.5)
	testutil.AssertEqual(t, "presenting", f.driver.Presenting(), false)
	at := f.driver.Rig.Position
	if !spatial.Near(at, mgl32.Vec3{0, 0, -1}, 1e-5) {
		t.Errorf("rig position = %v", at)
	}

	f.session.Enter()
	f.frame(0.5)
	testutil.AssertEqual(t, "no carried-over trigger", f.driver.Rig.Position, at)

	f.session.SelectStart(0)
	f.frame(0.5)
	if !spatial.Near(f.driver.Rig.Position, mgl32.Vec3{0, 0, -2}, 1e-5) {
		t.Errorf("rig position after resume = %v", f.driver.Rig.Position)
	}
	if f.driver.SessionID() == first || f.driver.SessionID() == uuid.Nil {
		t.Errorf("expected a fresh session id, got %v", f.driver.SessionID())
	}
}

func TestDriver_HeadDrivesDirection(t *testing.T) {
	f := newFixture(t)
	f.session.Enter()
	f.session.SelectStart(0)
	head := f.session.Head()
	head.Orientation = spatial.FromYawPitch(mgl32.DegToRad(-90), 0)
	f.session.SetHead(head)

	f.frame(0.5)

	if !spatial.Near(f.driver.Rig.Position, mgl32.Vec3{1, 0, 0}, 1e-5) {
		t.Errorf("rig position = %v", f.driver.Rig.Position)
	}
	testutil.AssertEqual(t, "resting orientation", f.driver.Rig.Orientation, mgl32.QuatIdent())
}

func TestDriver_GazeFallbackWalks(t *testing.T) {
	f := newFixture(t)
	g := &alwaysMove{}
	f.driver.Resolver = input.NewResolver(f.session, func() input.Gaze { return g })
	f.driver.Resolver.Arm(f.now)
	f.session.Enter()

	f.frame(1)
	testutil.AssertEqual(t, "mode before grace", f.driver.Resolver.Mode(), input.ModeUndetermined)
	testutil.AssertEqual(t, "position", f.driver.Rig.Position, mgl32.Vec3{})

	f.frame(1)
	testutil.AssertEqual(t, "mode", f.driver.Resolver.Mode(), input.ModeGaze)
	testutil.AssertEqual(t, "gaze updates", g.updates, 1)
	if !spatial.Near(f.driver.Rig.Position, mgl32.Vec3{0, 0, -2}, 1e-5) {
		t.Errorf("rig position = %v", f.driver.Rig.Position)
	}
}

func TestDriver_GraceStartsWithFirstSession(t *testing.T) {
	f := newFixture(t)
	f.driver.Resolver = input.NewResolver(f.session, nil)

	// Idle on the desktop well past the grace period: nothing latches.
	for i := 0; i < 10; i++ {
		f.frame(1)
	}
	testutil.AssertEqual(t, "mode while idle", f.driver.Resolver.Mode(), input.ModeUndetermined)

	f.session.Enter()
	f.frame(1)
	f.session.Connect(1)
	f.frame(0.5)
	testutil.AssertEqual(t, "mode within grace", f.driver.Resolver.Mode(), input.ModeUndetermined)

	f.frame(1.5)
	testutil.AssertEqual(t, "mode", f.driver.Resolver.Mode(), input.ModeController)

	// Later sessions do not re-arm the latch.
	f.session.Exit()
	f.frame(1)
	f.session.Enter()
	f.frame(3)
	testutil.AssertEqual(t, "mode after re-entry", f.driver.Resolver.Mode(), input.ModeController)
}

type alwaysMove struct{ updates int }

func (a *alwaysMove) Update(float32, spatial.Transform) { a.updates++ }
func (a *alwaysMove) InMoveState() bool                 { return true }
