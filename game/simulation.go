package game

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/swingyships/systems"
	"github.com/pthm-cable/swingyships/telemetry"
)

// Input is the player input seen by one tick.
type Input struct {
	Captured bool     // pointer is captured by the window
	Deltas   []r2.Vec // pointer movement samples, screen pixels
	Frame    bool     // a frame is rendered this tick
}

// TickReport summarizes one tick.
type TickReport struct {
	Forces  int
	Impacts int
	Spawned int
	Reaped  int
	Live    int
	Synced  int
}

// Step runs one fixed tick: behavior, physics step, impact drain, effects,
// then sprite sync.
func (g *Game) Step(in Input) TickReport {
	cfg := g.cfg
	var report TickReport

	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseBehavior)
	report.Forces = g.behavior.Update(systems.BehaviorInput(in))

	g.perfCollector.StartPhase(telemetry.PhaseStep)
	g.world.Step(cfg.Physics.DT, cfg.Derived.Iterations)

	g.perfCollector.StartPhase(telemetry.PhaseImpacts)
	events := g.queue.Drain()
	report.Impacts = len(events)
	g.recordImpacts(events)

	g.perfCollector.StartPhase(telemetry.PhaseEffects)
	fx := g.effects.Apply(events)
	report.Spawned, report.Reaped, report.Live = fx.Spawned, fx.Reaped, fx.Live
	g.collector.RecordEffects(fx.Spawned, fx.Reaped)

	g.perfCollector.StartPhase(telemetry.PhaseSync)
	report.Synced = g.sync.Update(cfg.Physics.DT)

	g.perfCollector.EndTick()

	g.tick++
	g.last = report
	g.flushTelemetry()
	return report
}

// UpdateHeadless runs a single tick without graphics.
func (g *Game) UpdateHeadless(in Input) TickReport {
	return g.Step(in)
}

// recordImpacts feeds drained impacts to telemetry and audio.
func (g *Game) recordImpacts(events []systems.ImpactEvent) {
	for _, ev := range events {
		g.collector.RecordImpact(ev.Impulse)
		if g.outputManager != nil {
			g.impactLog = append(g.impactLog, telemetry.NewImpactRecord(g.tick, ev.Point.X, ev.Point.Y, ev.Impulse))
		}
		g.sound.PlayImpact(ev.Impulse)
	}
}
