package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"
)

// handleInput processes keyboard and mouse input and returns the tick input.
func (g *Game) handleInput() Input {
	// Window resize propagation
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	g.handleCapture()

	// Camera controls only while the pointer is free
	if !g.captured {
		g.handleCameraInput()
	}

	in := Input{Captured: g.captured, Frame: true}
	if g.captured {
		d := rl.GetMouseDelta()
		if d.X != 0 || d.Y != 0 {
			in.Deltas = append(in.Deltas, r2.Vec{X: float64(d.X), Y: float64(d.Y)})
		}
	}
	return in
}

// handleCapture toggles pointer capture. A click or Tab captures, Tab or
// Escape releases.
func (g *Game) handleCapture() {
	switch {
	case !g.captured && (rl.IsMouseButtonPressed(rl.MouseButtonLeft) || rl.IsKeyPressed(rl.KeyTab)):
		g.captured = true
		rl.DisableCursor()
	case g.captured && (rl.IsKeyPressed(rl.KeyEscape) || rl.IsKeyPressed(rl.KeyTab)):
		g.captured = false
		rl.EnableCursor()
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	g.camera.Resize(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	// Pan speed scales inversely with zoom for natural feel
	panSpeed := float32(8.0) / g.camera.Zoom

	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
	}

	wheelMove := rl.GetMouseWheelMove()
	if wheelMove != 0 {
		g.camera.ZoomBy(1.0 + wheelMove*0.1)
	}

	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	if rl.IsKeyPressed(rl.KeyF) {
		g.follow = !g.follow
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.follow = false
		g.camera.Reset()
	}
}
