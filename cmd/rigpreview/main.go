// Rig preview tool - swing a single weapon around and tune it with sliders.
//
// Usage: go run ./cmd/rigpreview
package main

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/swingyships/camera"
	"github.com/pthm-cable/swingyships/config"
	"github.com/pthm-cable/swingyships/logging"
	"github.com/pthm-cable/swingyships/physics"
	"github.com/pthm-cable/swingyships/registry"
	"github.com/pthm-cable/swingyships/renderer"
	"github.com/pthm-cable/swingyships/rig"
	"github.com/pthm-cable/swingyships/scene"
	"github.com/pthm-cable/swingyships/systems"
)

const (
	windowWidth  = 1100
	windowHeight = 720
	previewSize  = 700
	panelWidth   = windowWidth - previewSize - 30
)

// RigParams holds the tunable weapon parameters
type RigParams struct {
	Links         int
	LinkMaxLength float32
	HeadScale     float32
	HeadDensity   float32
	Restitution   float32
	Gravity       float32
}

func defaultParams() RigParams {
	return RigParams{
		Links:         10,
		LinkMaxLength: 1.0,
		HeadScale:     0.25,
		HeadDensity:   0.4,
		Restitution:   0.8,
		Gravity:       -10,
	}
}

// preview is one assembled rig.
type preview struct {
	world  *physics.World
	reg    *registry.Registry
	scene  *scene.Scene
	sync   *systems.SyncSystem
	queue  *systems.ImpactQueue
	player registry.Key
	impact float64
}

func build(cfg config.Config, params RigParams, logger *zap.Logger) (*preview, error) {
	cfg.Chain.LinkMaxLength = float64(params.LinkMaxLength)
	cfg.Physics.GravityY = float64(params.Gravity)

	p := &preview{
		world: physics.NewWorld(r2.Vec{Y: cfg.Physics.GravityY}),
		reg:   registry.New(),
		scene: scene.New(),
		queue: &systems.ImpactQueue{},
	}
	p.world.SetContactListener(systems.NewContactListener(p.queue, cfg.Contact.ImpulseThreshold))

	asm := rig.NewAssembler(p.world, p.reg, p.scene, &cfg, logger)
	if _, err := asm.MakeArena(); err != nil {
		return nil, err
	}
	player, err := asm.MakePlayer()
	if err != nil {
		return nil, err
	}
	p.player = player

	weapon := rig.WeaponDef{
		Name:      "preview",
		Colliders: []rig.ColliderDef{{Name: "head", Y: -float64(params.Links) - 2, Props: "head"}},
		Chains:    []rig.ChainDef{{Object1: rig.RootName, Object2: "head", Y: -float64(params.Links)/2 - 1, Length: params.Links}},
	}
	lib := rig.Library{
		Weapons: map[string]rig.WeaponDef{weapon.Name: weapon},
		Colliders: map[string]rig.ColliderProps{"head": {
			LinearDamping:  0.5,
			AngularDamping: 0.9,
			Scale:          float64(params.HeadScale),
			Density:        float64(params.HeadDensity),
			Restitution:    float64(params.Restitution),
		}},
	}
	asm.LoadLevel(player, rig.LevelDef{Weapons: []rig.WeaponInstance{{Class: weapon.Name, Root: rig.PlayerName}}}, lib)

	p.sync = systems.NewSyncSystem(p.reg, p.world, p.scene)
	p.sync.Update(0)
	return p, nil
}

// step pulls the player toward target and advances the world one tick.
func (p *preview) step(cfg *config.Config, target r2.Vec, pulling bool) {
	if h, ok := p.reg.Body(p.player); ok && pulling {
		if pos, ok := p.world.Position(h); ok {
			p.world.ApplyForceToCenter(h, systems.ChaserForce(pos, target, cfg.Player.ForceCeiling))
		}
	}
	p.world.Step(cfg.Physics.DT, cfg.Derived.Iterations)
	for _, ev := range p.queue.Drain() {
		if ev.Impulse > p.impact {
			p.impact = ev.Impulse
		}
	}
	p.sync.Update(cfg.Physics.DT)
}

func main() {
	logger, err := logging.New("warn")
	if err != nil {
		panic(err)
	}
	cfg, err := config.Load("")
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	rl.InitWindow(windowWidth, windowHeight, "Rig Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	params := defaultParams()
	p, err := build(*cfg, params, logger)
	if err != nil {
		logger.Fatal("failed to build rig", zap.Error(err))
	}

	cam := camera.New(previewSize, previewSize, float32(previewSize)/110,
		float32(cfg.Derived.ArenaCenterX), float32(cfg.Derived.ArenaCenterY))
	sprites := renderer.NewSpriteRenderer()
	defer sprites.Unload()

	needsRebuild := false

	for !rl.WindowShouldClose() {
		if needsRebuild {
			if next, err := build(*cfg, params, logger); err != nil {
				logger.Error("rebuild failed", zap.Error(err))
			} else {
				p = next
			}
			needsRebuild = false
		}

		mouse := rl.GetMousePosition()
		inPreview := mouse.X < previewSize && mouse.Y < previewSize
		wx, wy := cam.ScreenToWorld(mouse.X, mouse.Y)
		p.step(cfg, r2.Vec{X: float64(wx), Y: float64(wy)}, inPreview && rl.IsMouseButtonDown(rl.MouseButtonLeft))

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.BeginScissorMode(0, 0, previewSize, previewSize)
		rl.DrawRectangle(0, 0, previewSize, previewSize, rl.Color{R: 18, G: 20, B: 28, A: 255})
		renderer.DrawArena(cfg.Arena, cam)
		sprites.Draw(p.scene, cam)
		rl.EndScissorMode()

		statsY := int32(previewSize + 5)
		rl.DrawText(fmt.Sprintf("Bodies: %d  Joints: %d  Peak impulse: %.0f",
			p.world.BodyCount(), p.world.JointCount(), p.impact), 15, statsY, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Weapon Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		slider := func(label, lo, hi string, value, min, max float32, format string) float32 {
			rl.DrawText(label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			next := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				lo, hi, value, min, max,
			)
			rl.DrawText(fmt.Sprintf(format, value), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			panelY += 35
			return next
		}

		if v := int(slider("Chain links", "0", "30", float32(params.Links), 0, 30, "%.0f")); v != params.Links {
			params.Links = v
			needsRebuild = true
		}
		if v := slider("Link max length", "0.2", "3.0", params.LinkMaxLength, 0.2, 3, "%.2f"); v != params.LinkMaxLength {
			params.LinkMaxLength = v
			needsRebuild = true
		}
		if v := slider("Head scale", "0.05", "1.0", params.HeadScale, 0.05, 1, "%.2f"); v != params.HeadScale {
			params.HeadScale = v
			needsRebuild = true
		}
		if v := slider("Head density", "0.01", "2.0", params.HeadDensity, 0.01, 2, "%.2f"); v != params.HeadDensity {
			params.HeadDensity = v
			needsRebuild = true
		}
		if v := slider("Head restitution", "0", "1", params.Restitution, 0, 1, "%.2f"); v != params.Restitution {
			params.Restitution = v
			needsRebuild = true
		}
		if v := slider("Gravity", "-30", "0", params.Gravity, -30, 0, "%.1f"); v != params.Gravity {
			params.Gravity = v
			needsRebuild = true
		}
		panelY += 10

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Rebuild") {
			needsRebuild = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams()
			needsRebuild = true
		}
		panelY += 55

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		yamlLines := []string{
			"collider_props:",
			"  head:",
			fmt.Sprintf("    scale: %.2f", params.HeadScale),
			fmt.Sprintf("    density: %.2f", params.HeadDensity),
			fmt.Sprintf("    restitution: %.2f", params.Restitution),
			"chain:",
			fmt.Sprintf("  link_max_length: %.2f", params.LinkMaxLength),
		}
		for _, line := range yamlLines {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Hold the left button in the preview to pull the ship", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)

		rl.EndDrawing()
	}
}
