package app

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/nebula/config"
	"github.com/pthm-cable/nebula/renderer"
	"github.com/pthm-cable/nebula/telemetry"
	"github.com/pthm-cable/nebula/ui"
)

// Run opens the window and drives the render loop until the window closes
// or the frame budget runs out.
func (a *App) Run() {
	cfg := a.cfg

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "nebula")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	points := renderer.NewPointRenderer(cfg.Derived.ScreenW32, cfg.Derived.ScreenH32)
	panel := ui.NewPanel(10, 10, 260, cfg.Sampling)

	var thumb rl.Texture2D
	defer func() {
		if thumb.ID != 0 {
			rl.UnloadTexture(thumb)
		}
	}()

	for !rl.WindowShouldClose() && !a.done() {
		frameStart := time.Now()
		dt := float64(rl.GetFrameTime())

		if a.imgDirty && a.img != nil {
			if thumb.ID != 0 {
				rl.UnloadTexture(thumb)
			}
			ri := rl.NewImageFromImage(a.img)
			thumb = rl.LoadTextureFromImage(ri)
			rl.UnloadImage(ri)
			a.imgDirty = false
		}

		a.handleInput(panel, points)
		a.step(dt)
		a.draw(points, panel, thumb)

		a.recordTelemetry(float64(time.Since(frameStart)) / float64(time.Millisecond))
	}
}

// draw renders the field, the HUD, and the controls panel.
func (a *App) draw(points *renderer.PointRenderer, panel *ui.Panel, thumb rl.Texture2D) {
	a.perf.StartPhase(telemetry.PhaseDraw)

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	points.Draw(a.field.Frame(), a.cam, a.cfg.Visual)

	if thumb.ID != 0 {
		scale := 80 / float32(thumb.Height)
		pos := rl.Vector2{
			X: float32(a.cfg.Screen.Width) - float32(thumb.Width)*scale - 10,
			Y: float32(a.cfg.Screen.Height) - 90,
		}
		rl.DrawTextureEx(thumb, pos, 0, scale, rl.White)
	}

	a.drawHUD(panel)

	if panel.Draw(a.cfg) {
		a.cfg.Sampling = panel.Staged()
		a.resample()
	}

	rl.EndDrawing()
	a.perf.EndFrame()
}

// drawHUD renders the status line.
func (a *App) drawHUD(panel *ui.Panel) {
	y := int32(10)
	x := int32(a.cfg.Screen.Width - 310)

	explosion, blackHole := a.field.Blend()
	sig := a.classifier.Signal()

	rl.DrawText(fmt.Sprintf("particles: %d  fps: %d", a.field.Count(), rl.GetFPS()), x, y, 18, rl.White)
	y += 24
	rl.DrawText(fmt.Sprintf("nebula: %.2f  quasar: %.2f", explosion, blackHole), x, y, 18, rl.SkyBlue)
	y += 24

	state := "hand: none"
	switch {
	case sig.Active && sig.Closed:
		state = "hand: fist"
	case sig.Active && sig.Pinching:
		state = "hand: pinch"
	case sig.Active:
		state = "hand: open"
	}
	rl.DrawText(state, x, y, 18, rl.Green)
	y += 24

	if a.paused {
		rl.DrawText("PAUSED", x, y, 18, rl.Yellow)
		y += 24
	}
	if panel.Pending(a.cfg.Sampling) {
		rl.DrawText("sampling changed - resample to apply", x, y, 14, rl.Orange)
		y += 20
	}
	if a.field.Count() == 0 {
		rl.DrawText("drop an image to begin", x, y, 18, rl.Gray)
	}
}

// handleInput processes keyboard, mouse, and file-drop input.
func (a *App) handleInput(panel *ui.Panel, points *renderer.PointRenderer) {
	if rl.IsWindowResized() {
		w := float32(rl.GetScreenWidth())
		h := float32(rl.GetScreenHeight())
		a.cfg.Screen.Width = int(w)
		a.cfg.Screen.Height = int(h)
		points.Resize(w, h)
	}

	if rl.IsFileDropped() {
		dropped := rl.LoadDroppedFiles()
		if len(dropped) > 0 {
			a.LoadImageFile(dropped[0])
		}
		rl.UnloadDroppedFiles()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		a.paused = !a.paused
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		panel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.resample()
	}
	if rl.IsKeyPressed(rl.KeyG) {
		a.StopTracking()
	}
	if rl.IsKeyPressed(rl.KeyC) {
		a.cfg.Visual.Shape = config.ParseShape(a.cfg.Visual.Shape).Next().String()
	}
	if rl.IsKeyPressed(rl.KeyF12) {
		rl.TakeScreenshot(fmt.Sprintf("nebula-%d.png", a.frames))
	}

	// Orbit controls; the panel owns the mouse while visible.
	if !panel.IsVisible() || rl.GetMousePosition().X > 280 {
		if rl.IsMouseButtonDown(rl.MouseLeftButton) {
			delta := rl.GetMouseDelta()
			a.cam.Drag(delta.X, delta.Y)
		}
		a.cam.Zoom(rl.GetMouseWheelMove())
	}
}
