// Package render draws the walkthrough with raylib: the environment graph,
// the floor grid, the hand controllers and the hotspot info panel, seen from
// the rig's head.
package render

import (
	"free-walk/internal/hotspot"
	"free-walk/internal/rig"
	"free-walk/internal/scene"
	"free-walk/internal/spatial"
	"free-walk/internal/xr"

	"github.com/go-gl/mathgl/mgl32"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	gridExtent     = 50
	gridMinorStep  = 1
	gridMajorStep  = 10
	gridMinorAlpha = 50
	gridMajorAlpha = 120

	panelWidth    = 1.0
	panelHeight   = 0.5
	titleFontSize = 24
	bodyFontSize  = 18
	panelPadding  = 8
)

var (
	panelTitleBg = rl.NewColor(40, 40, 40, 230)
	panelBodyBg  = rl.NewColor(204, 204, 204, 230)
	wireColor    = rl.NewColor(0, 0, 0, 80)
	handIdle     = rl.NewColor(90, 140, 220, 255)
	handPressed  = rl.NewColor(240, 180, 60, 255)
)

// Renderer draws one frame. Its camera follows the rig's head every frame.
type Renderer struct {
	Camera      rl.Camera3D
	GridVisible bool
}

// New returns a renderer with a 60° perspective camera and the floor grid on.
func New() *Renderer {
	r := &Renderer{GridVisible: true}
	r.Camera.Up = rl.NewVector3(0, 1, 0)
	r.Camera.Fovy = 60
	r.Camera.Projection = rl.CameraPerspective
	return r
}

// Draw renders graph, the connected controllers of session and panel from the
// head of rg. Call between BeginDrawing and EndDrawing.
func (r *Renderer) Draw(graph *scene.Graph, rg *rig.Rig, session *xr.Session, panel *hotspot.Panel) {
	head := rg.HeadWorld()
	look := spatial.Direction(head.Orientation).Mul(-1)
	r.Camera.Position = vec(head.Position)
	r.Camera.Target = vec(head.Position.Add(look))
	r.Camera.Up = vec(head.Orientation.Rotate(spatial.Up))

	rl.BeginMode3D(r.Camera)
	if r.GridVisible {
		drawFloorGrid()
	}
	if graph != nil {
		drawGraph(graph)
	}
	if session != nil && session.Presenting() {
		drawControllers(rg, session)
	}
	if panel != nil && panel.Visible {
		drawPanelBoard(panel)
	}
	rl.EndMode3D()

	if panel != nil && panel.Visible {
		r.drawPanelText(panel)
	}
}

// drawGraph draws every visible mesh. Proxy meshes are hidden at load time.
func drawGraph(g *scene.Graph) {
	rl.DisableBackfaceCulling()
	g.Traverse(func(n *scene.Node) {
		if !n.Visible || n.Mesh == nil {
			return
		}
		c := rl.NewColor(n.Color[0], n.Color[1], n.Color[2], n.Color[3])
		for _, t := range n.Mesh.Triangles {
			rl.DrawTriangle3D(vec(t[0]), vec(t[1]), vec(t[2]), c)
			rl.DrawLine3D(vec(t[0]), vec(t[1]), wireColor)
		}
	})
	rl.EnableBackfaceCulling()
}

// drawControllers draws each connected controller as a sphere with a pointer,
// highlighted while its trigger is held.
func drawControllers(rg *rig.Rig, session *xr.Session) {
	for i := range xr.NumControllers {
		c := session.Controller(i)
		if !c.Connected {
			continue
		}
		col := handIdle
		if c.Pressed {
			col = handPressed
		}
		pose := rg.Transform().Compose(c.Pose)
		rl.DrawSphere(vec(pose.Position), 0.04, col)
		tip := pose.Position.Sub(spatial.Direction(pose.Orientation).Mul(0.15))
		rl.DrawLine3D(vec(pose.Position), vec(tip), col)
	}
}

// drawPanelBoard draws the panel as a double-sided quad turned toward the viewer.
func drawPanelBoard(p *hotspot.Panel) {
	u := p.Orientation.Rotate(mgl32.Vec3{panelWidth / 2, 0, 0})
	v := p.Orientation.Rotate(mgl32.Vec3{0, panelHeight / 2, 0})
	a := p.Position.Sub(u).Sub(v)
	b := p.Position.Add(u).Sub(v)
	c := p.Position.Add(u).Add(v)
	d := p.Position.Sub(u).Add(v)
	rl.DisableBackfaceCulling()
	rl.DrawTriangle3D(vec(a), vec(b), vec(c), panelBodyBg)
	rl.DrawTriangle3D(vec(a), vec(c), vec(d), panelBodyBg)
	rl.EnableBackfaceCulling()
}

// drawPanelText overlays the panel's title and body at its projected screen position.
func (r *Renderer) drawPanelText(p *hotspot.Panel) {
	top := p.Position.Add(mgl32.Vec3{0, panelHeight / 2, 0})
	pt := rl.GetWorldToScreen(vec(top), r.Camera)
	x, y := int32(pt.X), int32(pt.Y)

	titleW := rl.MeasureText(p.Title, titleFontSize)
	bodyW := rl.MeasureText(p.Body, bodyFontSize)
	w := max(titleW, bodyW) + 2*panelPadding
	x -= w / 2

	rl.DrawRectangle(x, y, w, titleFontSize+2*panelPadding, panelTitleBg)
	rl.DrawText(p.Title, x+panelPadding, y+panelPadding, titleFontSize, rl.White)
	y += titleFontSize + 2*panelPadding
	rl.DrawRectangle(x, y, w, bodyFontSize+2*panelPadding, panelBodyBg)
	rl.DrawText(p.Body, x+panelPadding, y+panelPadding, bodyFontSize, rl.Black)
}

// drawFloorGrid draws the XZ grid at Y=0 with major lines every gridMajorStep.
// Reuses start/end vectors to avoid per-frame allocations in the hot loop.
func drawFloorGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)

	var start, end rl.Vector3
	for i := -gridExtent; i <= gridExtent; i += gridMinorStep {
		c := major
		if i%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(i), 0, float32(-gridExtent)
		end.X, end.Y, end.Z = float32(i), 0, float32(gridExtent)
		rl.DrawLine3D(start, end, c)
		start.X, start.Y, start.Z = float32(-gridExtent), 0, float32(i)
		end.X, end.Y, end.Z = float32(gridExtent), 0, float32(i)
		rl.DrawLine3D(start, end, c)
	}
}

func vec(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v[0], v[1], v[2])
}
