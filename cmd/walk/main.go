package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"free-walk/internal/config"
	"free-walk/internal/debug"
	"free-walk/internal/frame"
	"free-walk/internal/gaze"
	"free-walk/internal/graphics"
	"free-walk/internal/hotspot"
	"free-walk/internal/input"
	"free-walk/internal/locomotion"
	"free-walk/internal/logger"
	"free-walk/internal/physics"
	"free-walk/internal/render"
	"free-walk/internal/rig"
	"free-walk/internal/scene"
	"free-walk/internal/xr"
	"free-walk/internal/xr/desktop"
)

// logTail is how many recent log lines the HUD shows.
const logTail = 5

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", config.ConfigPath, "path to the preferences file")
	flag.Parse()

	prefs, err := config.LoadOrCreate(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	if prefs, err = config.ApplyEnv(prefs); err != nil {
		return err
	}
	if err := prefs.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	level, _ := config.ParseLevel(prefs.LogLevel)
	log := logger.New(logger.LogFilePath, level)
	slog.SetDefault(log.Slog())

	graph, err := scene.LoadEnvironment(prefs.EnvironmentPath)
	if err != nil {
		return err
	}
	world := physics.NewWorld()
	if graph.RegisterProxies(world) == 0 {
		slog.Warn("environment has no proxy geometry, movement disabled", "environment", prefs.EnvironmentPath)
	}

	// Missing content only disables the info panels.
	registry, err := hotspot.Load(prefs.ContentPath)
	if err != nil {
		slog.Error("loading hotspot content", "error", err)
	}
	panel := hotspot.NewPanel()
	var trigger *hotspot.Trigger
	if registry != nil {
		trigger = hotspot.NewTrigger(registry, panel)
		slog.Info("hotspots loaded", "count", registry.Len())
	}

	session := xr.NewSession()
	emu := desktop.New(session, prefs.MouseSensitivity)
	resolver := input.NewResolver(session, func() input.Gaze { return gaze.New() })
	rg := rig.New()
	renderer := render.New()
	hud := debug.New()
	hud.ShowFPS = prefs.ShowFPS
	hud.ShowMemAlloc = prefs.ShowMemAlloc

	driver := &frame.Driver{
		Device:     session,
		Resolver:   resolver,
		Integrator: locomotion.New(physics.NewProbe()),
		Trigger:    trigger,
		Rig:        rg,
		World:      world,
		Scene:      graph,
	}
	driver.Render = func() {
		renderer.Draw(graph, rg, session, panel)
		hud.Draw(debug.Status{
			Presenting:   driver.Presenting(),
			Mode:         resolver.Mode().String(),
			Dwell:        dwell(resolver),
			Hotspot:      shown(trigger),
			PanelUpdates: panel.Updates,
			Position:     rg.Position,
			Log:          log.Tail(logTail),
		})
	}

	graphics.Run("free-walk", func(dt float32) {
		emu.Poll()
		driver.Frame(time.Now(), dt)
	})
	return nil
}

// dwell reports gaze dwell progress for the HUD, or -1 outside gaze mode.
func dwell(r *input.Resolver) float32 {
	if g, ok := r.Gaze().(*gaze.Controller); ok {
		return g.Progress()
	}
	return -1
}

func shown(t *hotspot.Trigger) string {
	if t == nil {
		return ""
	}
	return t.Shown()
}
