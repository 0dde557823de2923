package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize    = 20
	padding     = 12
	lineHeight  = fontSize + 4
	logFontSize = 14
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30
)

// Status is the walkthrough state shown in the top-left corner, with the log
// tail along the bottom.
type Status struct {
	Presenting bool
	Mode       string
	// Dwell is the gaze dwell progress in [0, 1]; negative when not in gaze mode.
	Dwell        float32
	Hotspot      string
	PanelUpdates int
	Position     [3]float32
	Log          []string
}

// Debug draws the HUD: walkthrough status on the left, FPS and memory on the right.
// FPS and memory are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
}

// New returns a Debug with overlays hidden.
func New() *Debug {
	return &Debug{}
}

// Lines formats s for display, one entry per line.
func (s Status) Lines() []string {
	session := "desktop (press Enter to start walking session)"
	if s.Presenting {
		session = "immersive"
	}
	input := s.Mode
	switch {
	case s.Dwell >= 0:
		input = fmt.Sprintf("%s (dwell %.0f%%)", s.Mode, s.Dwell*100)
	case s.Mode == "undetermined" && s.Presenting:
		input += " (click within 2s of entering to use controllers)"
	}
	hotspot := s.Hotspot
	if hotspot == "" {
		hotspot = "-"
	}
	return []string{
		"session: " + session,
		"input: " + input,
		fmt.Sprintf("hotspot: %s (%d panel updates)", hotspot, s.PanelUpdates),
		fmt.Sprintf("rig: %.2f %.2f %.2f", s.Position[0], s.Position[1], s.Position[2]),
	}
}

// Draw renders the HUD. Call after the 3D pass.
func (d *Debug) Draw(s Status) {
	y := int32(padding)
	for _, line := range s.Lines() {
		rl.DrawText(line, padding, y, fontSize, rl.RayWhite)
		y += lineHeight
	}
	d.drawLog(s.Log)

	d.frameCount++
	update := d.frameCount%updateInterval == 0
	if d.ShowFPS && d.lastFpsText == "" || d.ShowMemAlloc && d.lastMemText == "" {
		update = true
	}

	screenW := int32(rl.GetScreenWidth())
	y = padding
	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		rl.DrawText(d.lastFpsText, screenW-rl.MeasureText(d.lastFpsText, fontSize)-padding, y, fontSize, rl.Green)
		y += lineHeight
	}
	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", float64(d.lastMemStats.Alloc)/(1024*1024))
		}
		rl.DrawText(d.lastMemText, screenW-rl.MeasureText(d.lastMemText, fontSize)-padding, y, fontSize, rl.Green)
	}
}

// drawLog draws lines bottom-up from the lower-left corner, newest last.
func (d *Debug) drawLog(lines []string) {
	y := int32(rl.GetScreenHeight()) - padding - int32(len(lines))*(logFontSize+2)
	for _, line := range lines {
		rl.DrawText(line, padding, y, logFontSize, rl.LightGray)
		y += logFontSize + 2
	}
}
