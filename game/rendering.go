package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swingyships/renderer"
	"github.com/pthm-cable/swingyships/ui"
)

// Update handles input and runs one tick unless paused.
func (g *Game) Update() {
	in := g.handleInput()
	if !g.paused {
		g.Step(in)
	}
	if g.follow {
		if pos, ok := g.playerPosition(); ok {
			g.camera.Follow(float32(pos.X), float32(pos.Y), 0.1)
		}
	}
}

// Draw renders the game.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 18, G: 20, B: 28, A: 255})

	renderer.DrawArena(g.cfg.Arena, g.camera)
	g.sprites.Draw(g.scene, g.camera)

	g.hud.Draw(ui.HUDData{
		Title:    "Swingy Ships",
		Tick:     g.tick,
		FPS:      rl.GetFPS(),
		Objects:  g.reg.Len(),
		Effects:  g.effects.Live(),
		Joints:   g.world.JointCount(),
		Paused:   g.paused,
		Captured: g.captured,
	})
	g.hud.DrawControls(int32(g.camera.ViewportH), g.captured)

	g.perfPanel.SetPosition(int32(g.camera.ViewportW)-perfPanelWidth-10, 10)
	g.perfPanel.Draw(g.perfCollector.Stats(), g.phases)

	rl.EndDrawing()
}
