package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Percentile(tt.sorted, tt.p), 0.001)
		})
	}
}

func TestComputeImpulseStats(t *testing.T) {
	mean, p50, p90, max := ComputeImpulseStats([]float64{900, 600, 700, 800, 1000})
	assert.InDelta(t, 800, mean, 1e-9)
	assert.InDelta(t, 800, p50, 1e-9)
	assert.InDelta(t, 960, p90, 1e-9)
	assert.Equal(t, 1000.0, max)

	mean, p50, p90, max = ComputeImpulseStats(nil)
	assert.Zero(t, mean+p50+p90+max)
}

func TestCollectorWindows(t *testing.T) {
	c := NewCollector(1.0, 0.1)
	assert.Equal(t, int64(10), c.WindowDurationTicks())
	assert.False(t, c.ShouldFlush(9))
	assert.True(t, c.ShouldFlush(10))

	c.RecordImpact(600)
	c.RecordImpact(800)
	c.RecordEffects(2, 1)

	stats := c.Flush(10, WorldCounts{Entities: 12, LiveEffects: 1, Bodies: 11, Joints: 9})
	assert.Equal(t, 2, stats.Impacts)
	assert.InDelta(t, 700, stats.ImpulseMean, 1e-9)
	assert.Equal(t, 2, stats.EffectsSpawned)
	assert.Equal(t, 1, stats.EffectsReaped)
	assert.Equal(t, 12, stats.Entities)
	assert.InDelta(t, 1.0, stats.SimTimeSec, 1e-9)

	next := c.Flush(20, WorldCounts{})
	assert.Equal(t, int64(10), next.WindowStartTick)
	assert.Zero(t, next.Impacts, "counters reset between windows")
}

func TestWindowStatsLog(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	WindowStats{WindowEndTick: 600, Impacts: 3}.LogStats(zap.New(core))

	entries := logs.FilterMessage("stats").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.EqualValues(t, 600, fields["window_end"])
	assert.EqualValues(t, 3, fields["impacts"])
}
