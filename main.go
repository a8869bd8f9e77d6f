package main

import (
	"flag"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"github.com/pthm-cable/swingyships/config"
	"github.com/pthm-cable/swingyships/game"
	"github.com/pthm-cable/swingyships/logging"
	"github.com/pthm-cable/swingyships/rig"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	levelPath := flag.String("level", "", "Path to level.yaml (empty = built-in level)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Log window and perf stats")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	maxTicks := flag.Int64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")

	flag.Parse()

	logger, err := logging.New(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	cfg := config.Cfg()

	level, err := rig.LoadLevelFile(*levelPath)
	if err != nil {
		logger.Fatal("failed to load level", zap.Error(err))
	}

	opts := game.Options{
		Config:    cfg,
		Level:     &level,
		OutputDir: *outputDir,
		Headless:  *headless,
		LogStats:  *logStats,
		Logger:    logger,
	}

	if *headless {
		// Headless mode - pure CPU simulation, no raylib needed
		g, err := game.NewGame(opts)
		if err != nil {
			logger.Fatal("failed to start game", zap.Error(err))
		}
		defer g.Unload()

		logger.Info("starting headless simulation", zap.Int64("max_ticks", *maxTicks))

		for {
			g.UpdateHeadless(game.Input{Frame: true})

			if *maxTicks > 0 && g.Tick() >= *maxTicks {
				logger.Info("max ticks reached", zap.Int64("tick", g.Tick()))
				return
			}
		}
	}

	// Graphical mode
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Swingy Ships")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	// Escape releases the pointer instead of quitting
	rl.SetExitKey(rl.KeyNull)

	g, err := game.NewGame(opts)
	if err != nil {
		logger.Fatal("failed to start game", zap.Error(err))
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxTicks > 0 && g.Tick() >= *maxTicks {
			break
		}
	}
}
