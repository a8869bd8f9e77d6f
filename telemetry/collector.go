package telemetry

// Collector accumulates impact and effect events within time windows and
// produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int64
	dt                  float64

	// Current window tracking
	windowStartTick int64

	// Event counters for current window
	impulses       []float64
	effectsSpawned int
	effectsReaped  int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int64(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordImpact records one impact event.
func (c *Collector) RecordImpact(impulse float64) {
	c.impulses = append(c.impulses, impulse)
}

// RecordEffects records effects spawned and reaped in one tick.
func (c *Collector) RecordEffects(spawned, reaped int) {
	c.effectsSpawned += spawned
	c.effectsReaped += reaped
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// WorldCounts is a snapshot of object counts taken at flush time.
type WorldCounts struct {
	Entities    int
	LiveEffects int
	Bodies      int
	Joints      int
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int64, counts WorldCounts) WindowStats {
	mean, p50, p90, max := ComputeImpulseStats(c.impulses)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Impacts:     len(c.impulses),
		ImpulseMean: mean,
		ImpulseP50:  p50,
		ImpulseP90:  p90,
		ImpulseMax:  max,

		EffectsSpawned: c.effectsSpawned,
		EffectsReaped:  c.effectsReaped,

		Entities:    counts.Entities,
		LiveEffects: counts.LiveEffects,
		Bodies:      counts.Bodies,
		Joints:      counts.Joints,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.impulses = c.impulses[:0]
	c.effectsSpawned = 0
	c.effectsReaped = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int64 {
	return c.windowDurationTicks
}
