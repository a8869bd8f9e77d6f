package telemetry

import (
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Impacts during window
	Impacts     int     `csv:"impacts"`
	ImpulseMean float64 `csv:"impulse_mean"`
	ImpulseP50  float64 `csv:"impulse_p50"`
	ImpulseP90  float64 `csv:"impulse_p90"`
	ImpulseMax  float64 `csv:"impulse_max"`

	// Effect lifecycle during window
	EffectsSpawned int `csv:"effects_spawned"`
	EffectsReaped  int `csv:"effects_reaped"`

	// Counts at window end
	Entities    int `csv:"entities"`
	LiveEffects int `csv:"live_effects"`
	Bodies      int `csv:"bodies"`
	Joints      int `csv:"joints"`
}

// Percentile calculates the p-th percentile of a sorted slice with linear
// interpolation. p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeImpulseStats calculates mean, median, p90 and max of impulse values.
func ComputeImpulseStats(values []float64) (mean, p50, p90, max float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)
	max = floats.Max(sorted)

	return mean, p50, p90, max
}

// MarshalLogObject implements zapcore.ObjectMarshaler for structured logging.
func (s WindowStats) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt64("window_start", s.WindowStartTick)
	enc.AddInt64("window_end", s.WindowEndTick)
	enc.AddFloat64("sim_time", s.SimTimeSec)
	enc.AddInt("impacts", s.Impacts)
	enc.AddFloat64("impulse_mean", s.ImpulseMean)
	enc.AddFloat64("impulse_p50", s.ImpulseP50)
	enc.AddFloat64("impulse_p90", s.ImpulseP90)
	enc.AddFloat64("impulse_max", s.ImpulseMax)
	enc.AddInt("effects_spawned", s.EffectsSpawned)
	enc.AddInt("effects_reaped", s.EffectsReaped)
	enc.AddInt("entities", s.Entities)
	enc.AddInt("live_effects", s.LiveEffects)
	enc.AddInt("bodies", s.Bodies)
	enc.AddInt("joints", s.Joints)
	return nil
}

// LogStats logs the window stats.
func (s WindowStats) LogStats(logger *zap.Logger) {
	logger.Info("stats", zap.Inline(s))
}
