// Package game drives the simulation: it owns the registry, the physics
// world and the scene, and runs the systems in a fixed order every tick.
package game

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/swingyships/audio"
	"github.com/pthm-cable/swingyships/camera"
	"github.com/pthm-cable/swingyships/config"
	"github.com/pthm-cable/swingyships/physics"
	"github.com/pthm-cable/swingyships/registry"
	"github.com/pthm-cable/swingyships/renderer"
	"github.com/pthm-cable/swingyships/rig"
	"github.com/pthm-cable/swingyships/scene"
	"github.com/pthm-cable/swingyships/systems"
	"github.com/pthm-cable/swingyships/telemetry"
	"github.com/pthm-cable/swingyships/ui"
)

const perfPanelWidth = 240

// Game holds the complete game state.
type Game struct {
	cfg    *config.Config
	logger *zap.Logger

	reg    *registry.Registry
	world  *physics.World
	scene  *scene.Scene
	queue  *systems.ImpactQueue
	phases *systems.SystemRegistry

	assembler *rig.Assembler
	level     *rig.Level
	player    registry.Key

	// Systems, in tick order
	behavior *systems.BehaviorSystem
	effects  *systems.EffectSystem
	sync     *systems.SyncSystem

	// Presentation (nil when headless)
	camera    *camera.Camera
	sprites   *renderer.SpriteRenderer
	sound     *audio.Player
	hud       *ui.HUD
	perfPanel *ui.PerfPanel

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	impactLog     []telemetry.ImpactRecord
	logStats      bool

	// State
	tick     int64
	paused   bool
	captured bool
	follow   bool
	headless bool
	last     TickReport
}

// NewGame builds the arena, the player and the level, and wires every system.
func NewGame(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		var err error
		if cfg, err = config.Load(""); err != nil {
			return nil, err
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	levelFile := opts.Level
	if levelFile == nil {
		lf, err := rig.DefaultLevel()
		if err != nil {
			return nil, errors.Wrap(err, "loading default level")
		}
		levelFile = &lf
	}

	g := &Game{
		cfg:           cfg,
		logger:        logger,
		reg:           registry.New(),
		world:         physics.NewWorld(r2.Vec{X: cfg.Physics.GravityX, Y: cfg.Physics.GravityY}),
		scene:         scene.New(),
		queue:         &systems.ImpactQueue{},
		phases:        systems.NewSystemRegistry(),
		collector:     telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Physics.DT),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		logStats:      opts.LogStats,
		headless:      opts.Headless,
	}
	g.world.SetContactListener(systems.NewContactListener(g.queue, cfg.Contact.ImpulseThreshold))

	g.assembler = rig.NewAssembler(g.world, g.reg, g.scene, cfg, logger.Named("rig"))
	if _, err := g.assembler.MakeArena(); err != nil {
		return nil, errors.Wrap(err, "building arena")
	}
	player, err := g.assembler.MakePlayer()
	if err != nil {
		return nil, errors.Wrap(err, "building player")
	}
	g.player = player
	g.level = g.assembler.LoadLevel(player, levelFile.Level, levelFile.Library())

	g.behavior = systems.NewBehaviorSystem(g.reg, g.world, systems.BehaviorParams{
		ForceGain:    cfg.Player.ForceGain,
		ForceCeiling: cfg.Player.ForceCeiling,
		PursuitForce: cfg.Chaser.PursuitForce,
	}, player)
	g.effects = systems.NewEffectSystem(g.reg, g.scene, g.world, cfg.Effect, cfg.Textures.Effect, logger.Named("effects"))
	g.sync = systems.NewSyncSystem(g.reg, g.world, g.scene)
	g.sync.Update(0)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		logger.Error("failed to write config", zap.Error(err))
	}

	if !opts.Headless {
		g.camera = camera.New(cfg.Derived.ScreenW32, cfg.Derived.ScreenH32,
			float32(cfg.Screen.PixelsPerUnit),
			float32(cfg.Derived.ArenaCenterX), float32(cfg.Derived.ArenaCenterY))
		g.sprites = renderer.NewSpriteRenderer()
		g.hud = ui.NewHUD()
		g.perfPanel = ui.NewPerfPanel(0, 10, perfPanelWidth)
		g.sound = audio.NewPlayer(cfg.Audio, cfg.Contact.ImpulseThreshold)
		if err := g.sound.Init(); err != nil {
			logger.Warn("audio disabled", zap.Error(err))
			g.sound = nil
		}
	}

	logger.Info("game ready",
		zap.Stringer("player", player),
		zap.Int("objects", g.reg.Len()),
		zap.Int("bodies", g.world.BodyCount()),
		zap.Int("joints", g.world.JointCount()),
		zap.Int("skipped", len(g.level.Skipped)),
		zap.String("output_dir", om.Dir()),
	)
	return g, nil
}

// Unload flushes pending output and frees resources.
func (g *Game) Unload() {
	if err := g.outputManager.WriteImpacts(g.impactLog); err != nil {
		g.logger.Error("failed to write impacts", zap.Error(err))
	}
	g.impactLog = nil
	if err := g.outputManager.Close(); err != nil {
		g.logger.Error("failed to close output", zap.Error(err))
	}
	g.sound.Close()
	if g.sprites != nil {
		g.sprites.Unload()
	}
}

// Tick returns the number of completed ticks.
func (g *Game) Tick() int64 { return g.tick }

// Registry returns the object registry.
func (g *Game) Registry() *registry.Registry { return g.reg }

// World returns the physics world.
func (g *Game) World() *physics.World { return g.world }

// Scene returns the sprite scene.
func (g *Game) Scene() *scene.Scene { return g.scene }

// Level returns the assembled level.
func (g *Game) Level() *rig.Level { return g.level }

// Player returns the player's registry key.
func (g *Game) Player() registry.Key { return g.player }

func (g *Game) playerPosition() (r2.Vec, bool) {
	h, ok := g.reg.Body(g.player)
	if !ok {
		return r2.Vec{}, false
	}
	return g.world.Position(h)
}

// LastReport returns the report of the most recent tick.
func (g *Game) LastReport() TickReport { return g.last }
