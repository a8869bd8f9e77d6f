// Rig check tool - assembles a level without graphics and prints the object
// and joint topology, optionally after running some ticks.
//
// Usage: go run ./cmd/rigcheck -level rig/level.yaml -ticks 120
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/pthm-cable/swingyships/config"
	"github.com/pthm-cable/swingyships/game"
	"github.com/pthm-cable/swingyships/logging"
	"github.com/pthm-cable/swingyships/rig"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	levelPath := flag.String("level", "", "Path to level.yaml (empty = built-in level)")
	ticks := flag.Int("ticks", 0, "Ticks to simulate before printing")
	logLevel := flag.String("log-level", "warn", "Log level (debug, info, warn, error)")
	flag.Parse()

	logger, err := logging.New(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	level, err := rig.LoadLevelFile(*levelPath)
	if err != nil {
		logger.Fatal("failed to load level", zap.Error(err))
	}

	g, err := game.NewGame(game.Options{Config: cfg, Level: &level, Headless: true, Logger: logger})
	if err != nil {
		logger.Fatal("failed to assemble level", zap.Error(err))
	}
	defer g.Unload()

	impacts := 0
	for i := 0; i < *ticks; i++ {
		impacts += g.UpdateHeadless(game.Input{Frame: true}).Impacts
	}

	reg, world := g.Registry(), g.World()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tKIND\tBODY\tX\tY\tJOINTS")
	for _, key := range reg.Keys() {
		obj, _ := reg.Get(key)
		x, y := "-", "-"
		if pos, ok := world.Position(obj.Body); ok {
			x, y = fmt.Sprintf("%.2f", pos.X), fmt.Sprintf("%.2f", pos.Y)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%d\n", key, obj.Kind, obj.Body, x, y, len(world.JointsOf(obj.Body)))
	}
	w.Flush()

	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "JOINT\tBODY A\tBODY B\tMAX LENGTH")
	for _, h := range world.Joints() {
		def, _ := world.Joint(h)
		fmt.Fprintf(w, "%d\t%d\t%d\t%.2f\n", h, def.BodyA, def.BodyB, def.MaxLength)
	}
	w.Flush()

	lvl := g.Level()
	fmt.Printf("\nobjects=%d bodies=%d joints=%d chasers=%d weapons=%d skipped=%d ticks=%d impacts=%d\n",
		reg.Len(), world.BodyCount(), world.JointCount(), len(lvl.Chasers), lvl.Weapons, len(lvl.Skipped), g.Tick(), impacts)
	for _, err := range lvl.Skipped {
		fmt.Printf("  skipped: %v\n", err)
	}
}
