package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/swingyships/components"
	"github.com/pthm-cable/swingyships/physics"
	"github.com/pthm-cable/swingyships/registry"
)

// BehaviorInput is what the behavior pass sees of one tick.
type BehaviorInput struct {
	Captured bool     // pointer is captured by the window
	Deltas   []r2.Vec // pointer movement samples, screen space
	Frame    bool     // a frame is rendered this tick
}

// BehaviorParams are the tuning constants of the behavior pass.
type BehaviorParams struct {
	ForceGain    float64
	ForceCeiling float64
	PursuitForce float64
}

// PlayerForce converts a screen-space pointer delta to a world-space force,
// capped at ceiling.
func PlayerForce(delta r2.Vec, gain, ceiling float64) r2.Vec {
	f := r2.Vec{X: delta.X * gain, Y: -delta.Y * gain}
	return clampMagnitude(f, ceiling)
}

// ChaserForce pushes a chaser toward target with constant magnitude.
func ChaserForce(chaser, target r2.Vec, pursuit float64) r2.Vec {
	return r2.Scale(pursuit, unitOrZero(r2.Sub(target, chaser)))
}

// BehaviorSystem applies per-kind forces before the physics step.
type BehaviorSystem struct {
	reg    *registry.Registry
	world  *physics.World
	filter *ecs.Filter2[components.Body, components.Behavior]
	params BehaviorParams
	player registry.Key
}

// NewBehaviorSystem creates a behavior system. player is the object chasers pursue.
func NewBehaviorSystem(reg *registry.Registry, world *physics.World, params BehaviorParams, player registry.Key) *BehaviorSystem {
	return &BehaviorSystem{
		reg:    reg,
		world:  world,
		filter: ecs.NewFilter2[components.Body, components.Behavior](reg.World()),
		params: params,
		player: player,
	}
}

// Update applies forces for every object. Returns how many forces were applied.
func (s *BehaviorSystem) Update(in BehaviorInput) int {
	target, hasTarget := s.playerPosition()
	applied := 0

	query := s.filter.Query()
	for query.Next() {
		body, behavior := query.Get()
		if !body.Handle.Valid() {
			continue
		}
		switch behavior.Kind {
		case components.KindPlayer:
			if !in.Captured {
				continue
			}
			for _, d := range in.Deltas {
				if s.world.ApplyForceToCenter(body.Handle, PlayerForce(d, s.params.ForceGain, s.params.ForceCeiling)) {
					applied++
				}
			}
		case components.KindChaser:
			if !in.Frame || !hasTarget {
				continue
			}
			pos, ok := s.world.Position(body.Handle)
			if !ok {
				continue
			}
			if s.world.ApplyForceToCenter(body.Handle, ChaserForce(pos, target, s.params.PursuitForce)) {
				applied++
			}
		case components.KindDefault:
		}
	}
	return applied
}

func (s *BehaviorSystem) playerPosition() (r2.Vec, bool) {
	h, ok := s.reg.Body(s.player)
	if !ok {
		return r2.Vec{}, false
	}
	return s.world.Position(h)
}
