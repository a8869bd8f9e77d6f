package systems

import (
	"github.com/mlange-42/ark/ecs"
	"go.uber.org/zap"

	"github.com/pthm-cable/swingyships/components"
	"github.com/pthm-cable/swingyships/config"
	"github.com/pthm-cable/swingyships/physics"
	"github.com/pthm-cable/swingyships/registry"
	"github.com/pthm-cable/swingyships/scene"
)

// EffectReport summarizes one effects update.
type EffectReport struct {
	Impacts []ImpactEvent // events drained this tick
	Spawned int
	Reaped  int
	Live    int
}

// EffectSystem turns impact events into short-lived registry entries and
// removes them once their countdown runs out.
type EffectSystem struct {
	reg     *registry.Registry
	scene   *scene.Scene
	world   *physics.World
	filter  *ecs.Filter1[components.Effect]
	cfg     config.EffectConfig
	texture string
	logger  *zap.Logger

	live int
}

// NewEffectSystem creates an effect system.
func NewEffectSystem(reg *registry.Registry, sc *scene.Scene, world *physics.World, cfg config.EffectConfig, texture string, logger *zap.Logger) *EffectSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EffectSystem{
		reg:     reg,
		scene:   sc,
		world:   world,
		filter:  ecs.NewFilter1[components.Effect](reg.World()),
		cfg:     cfg,
		texture: texture,
		logger:  logger,
	}
}

// Update runs one tick: existing effects count down and expired ones are
// removed, then one effect is spawned per drained impact. An effect is present
// for Countdown ticks, counting the tick it spawns in.
func (s *EffectSystem) Update(queue *ImpactQueue) EffectReport {
	return s.Apply(queue.Drain())
}

// Apply is Update for events already drained from the queue.
func (s *EffectSystem) Apply(events []ImpactEvent) EffectReport {
	report := EffectReport{Reaped: s.advance(), Impacts: events}

	for _, ev := range events {
		s.Spawn(ev)
		report.Spawned++
	}

	report.Live = s.live
	return report
}

// Spawn creates one effect at the impact point.
func (s *EffectSystem) Spawn(ev ImpactEvent) registry.Key {
	id := s.scene.AddSprite(s.texture)
	s.scene.SetPosition(id, ev.Point)
	s.scene.SetScale(id, s.cfg.Scale)
	if s.cfg.Scale > 0 {
		half := s.cfg.FadeDuration / 2
		s.scene.Run(id, scene.Sequence{
			scene.ScaleBy{Factor: (s.cfg.Scale + s.cfg.Growth) / s.cfg.Scale, Duration: half},
			scene.FadeOut(half),
		})
	}

	key := s.reg.InsertEffect(registry.GameObject{Sprite: id, Kind: components.KindDefault}, s.cfg.Countdown)
	s.live++
	s.logger.Debug("effect spawned",
		zap.Stringer("key", key),
		zap.Float64("impulse", ev.Impulse),
		zap.Float64("x", ev.Point.X),
		zap.Float64("y", ev.Point.Y),
	)
	return key
}

// advance decrements every countdown, then removes expired effects once the
// query is closed. Returns the number removed.
func (s *EffectSystem) advance() int {
	var expired []registry.Key

	query := s.filter.Query()
	for query.Next() {
		fx := query.Get()
		fx.Countdown--
		if fx.Countdown <= 0 {
			expired = append(expired, registry.KeyOf(query.Entity()))
		}
	}

	for _, key := range expired {
		s.release(key)
	}
	return len(expired)
}

// release removes an effect from the registry along with its sprite and body.
func (s *EffectSystem) release(key registry.Key) {
	obj, ok := s.reg.Remove(key)
	if !ok {
		return
	}
	s.scene.Remove(obj.Sprite)
	if obj.Body.Valid() {
		s.world.RemoveBody(obj.Body)
	}
	s.live--
}

// Live returns the number of effects currently alive.
func (s *EffectSystem) Live() int {
	return s.live
}
