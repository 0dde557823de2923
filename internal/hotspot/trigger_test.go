package hotspot

import (
	"testing"

	"free-walk/internal/spatial"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pixil98/go-testutil"
)

// fakeScene is a name -> position lookup that counts queries.
type fakeScene struct {
	positions map[string]mgl32.Vec3
	lookups   int
}

func (f *fakeScene) WorldPosition(name string) (mgl32.Vec3, bool) {
	f.lookups++
	p, ok := f.positions[name]
	return p, ok
}

var (
	library   = Entry{Key: "Library", Content: Content{Name: "Library", Info: "Three floors of study space."}}
	lobbyShop = Entry{Key: "LobbyShop", Content: Content{Name: "Lobby Shop", Info: "Books and stationery."}}
	reception = Entry{Key: "Reception", Content: Content{Name: "Reception", Info: "Visitor passes."}}
)

func TestTrigger_ShowAndHide(t *testing.T) {
	scn := &fakeScene{positions: map[string]mgl32.Vec3{"Library": {10, 0, 0}}}
	panel := NewPanel()
	trig := NewTrigger(NewRegistry(library), panel)

	trig.Evaluate(mgl32.Vec3{9, 0, 0}, mgl32.Vec3{9, 1.6, 0}, scn)

	testutil.AssertEqual(t, "shown", trig.Shown(), "Library")
	testutil.AssertEqual(t, "visible", panel.Visible, true)
	testutil.AssertEqual(t, "title", panel.Title, "Library")
	testutil.AssertEqual(t, "body", panel.Body, "Three floors of study space.")
	if !spatial.Near(panel.Position, mgl32.Vec3{10, 1.3, 0}, 1e-6) {
		t.Errorf("panel position = %v", panel.Position)
	}
	// The panel turns toward the viewer's head, which is on its -X side.
	if d := spatial.Direction(panel.Orientation); d.X() >= 0 {
		t.Errorf("panel faces %v, want toward -X", d)
	}

	trig.Evaluate(mgl32.Vec3{20, 0, 0}, mgl32.Vec3{20, 1.6, 0}, scn)

	testutil.AssertEqual(t, "shown", trig.Shown(), "")
	testutil.AssertEqual(t, "visible", panel.Visible, false)
}

func TestTrigger_Radius(t *testing.T) {
	tests := map[string]struct {
		rig      mgl32.Vec3
		expShown string
	}{
		"inside":           {rig: mgl32.Vec3{8, 0, 0}, expShown: "Library"},
		"on the boundary":  {rig: mgl32.Vec3{7, 0, 0}, expShown: ""},
		"just outside":     {rig: mgl32.Vec3{6.9, 0, 0}, expShown: ""},
		"vertical counts":  {rig: mgl32.Vec3{10, 2.5, 0}, expShown: "Library"},
		"diagonal outside": {rig: mgl32.Vec3{12.2, 0, 2.2}, expShown: ""},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			scn := &fakeScene{positions: map[string]mgl32.Vec3{"Library": {10, 0, 0}}}
			trig := NewTrigger(NewRegistry(library), NewPanel())
			trig.Evaluate(tt.rig, tt.rig, scn)
			testutil.AssertEqual(t, "shown", trig.Shown(), tt.expShown)
		})
	}
}

func TestTrigger_LastInRegistryOrderWins(t *testing.T) {
	scn := &fakeScene{positions: map[string]mgl32.Vec3{
		"Library":   {1, 0, 0},
		"LobbyShop": {-2, 0, 0},
		"Reception": {0, 0, 50},
	}}

	tests := map[string]struct {
		order    []Entry
		expShown string
	}{
		"library first":        {order: []Entry{library, lobbyShop, reception}, expShown: "LobbyShop"},
		"library second":       {order: []Entry{lobbyShop, library, reception}, expShown: "Library"},
		"out of range between": {order: []Entry{library, reception, lobbyShop}, expShown: "LobbyShop"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			panel := NewPanel()
			trig := NewTrigger(NewRegistry(tt.order...), panel)
			for i := 0; i < 3; i++ {
				trig.Evaluate(mgl32.Vec3{}, mgl32.Vec3{0, 1.6, 0}, scn)
			}
			testutil.AssertEqual(t, "shown", trig.Shown(), tt.expShown)
			testutil.AssertEqual(t, "panel updates", panel.Updates, 1)
		})
	}
}

func TestTrigger_IdempotentWhileInRange(t *testing.T) {
	scn := &fakeScene{positions: map[string]mgl32.Vec3{"Library": {10, 0, 0}}}
	panel := NewPanel()
	trig := NewTrigger(NewRegistry(library), panel)

	for x := float32(8); x < 12; x += 0.5 {
		trig.Evaluate(mgl32.Vec3{x, 0, 0}, mgl32.Vec3{x, 1.6, 0}, scn)
	}

	testutil.AssertEqual(t, "panel updates", panel.Updates, 1)
	testutil.AssertEqual(t, "shown", trig.Shown(), "Library")
}

func TestTrigger_SwitchesBetweenHotspots(t *testing.T) {
	scn := &fakeScene{positions: map[string]mgl32.Vec3{
		"Library":   {10, 0, 0},
		"Reception": {0, 0, 4},
	}}
	panel := NewPanel()
	trig := NewTrigger(NewRegistry(library, reception), panel)

	trig.Evaluate(mgl32.Vec3{9, 0, 0}, mgl32.Vec3{9, 1.6, 0}, scn)
	trig.Evaluate(mgl32.Vec3{0, 0, 3}, mgl32.Vec3{0, 1.6, 3}, scn)

	testutil.AssertEqual(t, "shown", trig.Shown(), "Reception")
	testutil.AssertEqual(t, "title", panel.Title, "Reception")
	testutil.AssertEqual(t, "panel updates", panel.Updates, 2)
	if !spatial.Near(panel.Position, mgl32.Vec3{0, 1.3, 4}, 1e-6) {
		t.Errorf("panel position = %v", panel.Position)
	}
}

func TestTrigger_MissingAnchorsAreSkipped(t *testing.T) {
	scn := &fakeScene{positions: map[string]mgl32.Vec3{"Library": {1, 0, 0}}}
	trig := NewTrigger(NewRegistry(library, lobbyShop), NewPanel())

	trig.Evaluate(mgl32.Vec3{}, mgl32.Vec3{}, scn)

	testutil.AssertEqual(t, "shown", trig.Shown(), "Library")
	testutil.AssertEqual(t, "lookups", scn.lookups, 2)
}

func TestTrigger_NilRegistry(t *testing.T) {
	panel := NewPanel()
	trig := NewTrigger(nil, panel)
	scn := &fakeScene{}

	trig.Evaluate(mgl32.Vec3{}, mgl32.Vec3{}, scn)

	testutil.AssertEqual(t, "lookups", scn.lookups, 0)
	testutil.AssertEqual(t, "shown", trig.Shown(), "")
}
