package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"

	"github.com/pthm-cable/swingyships/config"
)

const thudDuration = 180 * time.Millisecond

// Player mixes impact thuds into the speaker. A nil Player is silent.
type Player struct {
	mu        sync.Mutex
	mixer     *beep.Mixer
	rate      beep.SampleRate
	volume    float64
	threshold float64
	enabled   bool
	speakerOn bool
}

// NewPlayer creates a player. It stays silent until Init is called.
func NewPlayer(cfg config.AudioConfig, threshold float64) *Player {
	rate := beep.SampleRate(cfg.SampleRate)
	if rate <= 0 {
		rate = beep.SampleRate(48000)
	}
	return &Player{
		mixer:     &beep.Mixer{},
		rate:      rate,
		volume:    cfg.Volume,
		threshold: threshold,
		enabled:   cfg.Enabled,
	}
}

// Init opens the speaker and starts the mixer.
func (p *Player) Init() error {
	if p == nil || !p.enabled {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.speakerOn {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return errors.Wrap(err, "initializing speaker")
	}
	speaker.Play(p.mixer)
	p.speakerOn = true
	return nil
}

// PlayImpact queues a thud scaled by the impact's impulse.
func (p *Player) PlayImpact(impulse float64) {
	if p == nil || !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	s := NewThud(ImpactPitch(impulse, p.threshold), thudDuration, p.rate)
	s = newVolume(s, ImpactVolume(impulse, p.threshold)*p.volume)

	if p.speakerOn {
		speaker.Lock()
		defer speaker.Unlock()
	}
	p.mixer.Add(s)
}

// Queued returns the number of sounds still playing.
func (p *Player) Queued() int {
	if p == nil {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.speakerOn {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return p.mixer.Len()
}

// Close stops every sound.
func (p *Player) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.speakerOn {
		speaker.Lock()
		defer speaker.Unlock()
	}
	p.mixer.Clear()
}
