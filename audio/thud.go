// Package audio plays impact sounds through the beep speaker.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// thud is a sine burst with exponential decay.
type thud struct {
	freq     float64
	phase    float64
	decay    float64 // per-sample amplitude multiplier
	amp      float64
	position int
	duration int
	rate     beep.SampleRate
}

// NewThud creates a decaying sine burst lasting duration.
func NewThud(freq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	samples := rate.N(duration)
	if samples < 1 {
		samples = 1
	}
	// Fall to about -60dB by the end of the burst
	decay := math.Pow(0.001, 1/float64(samples))
	return &thud{freq: freq, decay: decay, amp: 1, duration: samples, rate: rate}
}

func (t *thud) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.duration {
			return i, i > 0
		}
		val := t.amp * math.Sin(2*math.Pi*t.phase)
		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.amp *= t.decay
		t.position++
	}
	return len(samples), true
}

func (t *thud) Err() error { return nil }

// newVolume wraps s in a linear volume. Zero or negative volume is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// ImpactVolume maps an impulse to a linear volume in [0.1, 1]. Each doubling
// of the impulse over the threshold adds a quarter of full volume.
func ImpactVolume(impulse, threshold float64) float64 {
	if threshold <= 0 || impulse <= threshold {
		return 0.1
	}
	v := 0.25 + math.Log2(impulse/threshold)/4
	return math.Max(0.1, math.Min(1, v))
}

// ImpactPitch lowers the thud frequency as impacts get harder.
func ImpactPitch(impulse, threshold float64) float64 {
	const base, floor = 180.0, 60.0
	if threshold <= 0 || impulse <= threshold {
		return base
	}
	return math.Max(floor, base/math.Sqrt(impulse/threshold))
}
