package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Run opens the window and drives the main loop, calling frame between
// BeginDrawing and EndDrawing with the last frame's duration in seconds.
// ESC is left to the input layer; close via the window button.
func Run(title string, frame func(dt float32)) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(1280, 720, title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		dt := rl.GetFrameTime()
		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		frame(dt)
		rl.EndDrawing()
	}
}
