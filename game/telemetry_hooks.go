package game

import (
	"go.uber.org/zap"

	"github.com/pthm-cable/swingyships/telemetry"
)

// flushTelemetry closes the stats window when it is due and writes the
// window, perf and impact records.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, telemetry.WorldCounts{
		Entities:    g.reg.Len(),
		LiveEffects: g.effects.Live(),
		Bodies:      g.world.BodyCount(),
		Joints:      g.world.JointCount(),
	})
	perfStats := g.perfCollector.Stats()

	if g.logStats {
		stats.LogStats(g.logger)
		perfStats.LogStats(g.logger)
	}

	if g.outputManager == nil {
		return
	}
	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		g.logger.Error("failed to write telemetry", zap.Error(err))
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		g.logger.Error("failed to write perf", zap.Error(err))
	}
	if err := g.outputManager.WriteImpacts(g.impactLog); err != nil {
		g.logger.Error("failed to write impacts", zap.Error(err))
	}
	g.impactLog = g.impactLog[:0]
}
