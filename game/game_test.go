package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/swingyships/config"
	"github.com/pthm-cable/swingyships/systems"
)

// quietConfig raises the impulse threshold so only injected impacts count.
func quietConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Contact.ImpulseThreshold = 1e12
	return cfg
}

func newHeadless(t *testing.T, cfg *config.Config, outputDir string) *Game {
	t.Helper()
	g, err := NewGame(Options{Config: cfg, Headless: true, OutputDir: outputDir, Logger: zaptest.NewLogger(t)})
	require.NoError(t, err)
	t.Cleanup(g.Unload)
	return g
}

func TestNewGameAssemblesDefaultLevel(t *testing.T) {
	g := newHeadless(t, quietConfig(t), "")

	assert.False(t, g.Player().IsZero())
	lvl := g.Level()
	assert.Len(t, lvl.Chasers, 4)
	assert.Equal(t, 2, lvl.Weapons)
	assert.Empty(t, lvl.Skipped)
	assert.Contains(t, lvl.Roots, "brute")

	// Every body but the arena walls is a registered object.
	assert.Equal(t, g.World().BodyCount()-1, g.Registry().Len())
	assert.Equal(t, g.Registry().Len(), g.Scene().Len())
	assert.Equal(t, int64(0), g.Tick())
}

func TestChasersPursueOnRenderedFrames(t *testing.T) {
	g := newHeadless(t, quietConfig(t), "")
	chaser, _ := g.Registry().Body(g.Level().Chasers[0])
	player, _ := g.playerPosition()

	start, _ := g.World().Position(chaser)

	report := g.Step(Input{})
	assert.Zero(t, report.Forces)
	v, _ := g.World().Velocity(chaser)
	assert.Equal(t, r2.Vec{}, v, "no frame, no pursuit")

	for i := 0; i < 5; i++ {
		report = g.Step(Input{Frame: true})
	}
	assert.Equal(t, len(g.Level().Chasers), report.Forces)

	now, _ := g.World().Position(chaser)
	assert.Less(t, r2.Norm(r2.Sub(player, now)), r2.Norm(r2.Sub(player, start)))
	assert.Equal(t, int64(6), g.Tick())
}

func TestCapturedPointerPushesPlayer(t *testing.T) {
	g := newHeadless(t, quietConfig(t), "")

	report := g.Step(Input{Captured: false, Deltas: []r2.Vec{{X: 1}}})
	assert.Zero(t, report.Forces, "ignored while not captured")

	report = g.Step(Input{Captured: true, Deltas: []r2.Vec{{X: 1}, {Y: 1}}})
	assert.Equal(t, 2, report.Forces)

	h, _ := g.Registry().Body(g.Player())
	v, _ := g.World().Velocity(h)
	assert.Greater(t, v.X, 0.0)
	assert.Less(t, v.Y, 0.0, "screen down is world down")
}

func TestInjectedImpactLivesForCountdown(t *testing.T) {
	cfg := quietConfig(t)
	g := newHeadless(t, cfg, "")
	objects := g.Registry().Len()

	g.queue.Push(systems.ImpactEvent{Point: r2.Vec{X: 50, Y: -50}, Impulse: 900})
	report := g.Step(Input{})
	assert.Equal(t, 1, report.Impacts)
	assert.Equal(t, 1, report.Spawned)
	assert.Equal(t, objects+1, g.Registry().Len())

	for tick := 2; tick <= int(cfg.Effect.Countdown); tick++ {
		report = g.Step(Input{})
		require.Equal(t, 1, report.Live, "tick %d", tick)
	}

	report = g.Step(Input{})
	assert.Equal(t, 0, report.Live)
	assert.Equal(t, 1, report.Reaped)
	assert.Equal(t, objects, g.Registry().Len())
	assert.Equal(t, objects, g.Scene().Len())
}

func TestTelemetryWrittenEachWindow(t *testing.T) {
	cfg := quietConfig(t)
	cfg.Telemetry.StatsWindow = 0.1
	dir := filepath.Join(t.TempDir(), "out")
	g, err := NewGame(Options{Config: cfg, Headless: true, OutputDir: dir, Logger: zaptest.NewLogger(t)})
	require.NoError(t, err)

	g.queue.Push(systems.ImpactEvent{Point: r2.Vec{X: 1, Y: 2}, Impulse: 700})
	window := int(g.collector.WindowDurationTicks())
	for i := 0; i < 2*window; i++ {
		g.Step(Input{})
	}
	g.Unload()

	lines := func(name string) []string {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		return strings.Split(strings.TrimSpace(string(data)), "\n")
	}
	assert.Len(t, lines("telemetry.csv"), 3)
	assert.Len(t, lines("perf.csv"), 3)
	impacts := lines("impacts.csv")
	require.Len(t, impacts, 2)
	assert.Equal(t, "tick,x,y,impulse", impacts[0])
	assert.FileExists(t, filepath.Join(dir, "config.yaml"))
}
