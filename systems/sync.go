package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/swingyships/components"
	"github.com/pthm-cable/swingyships/physics"
	"github.com/pthm-cable/swingyships/registry"
	"github.com/pthm-cable/swingyships/scene"
)

// SyncSystem copies body transforms onto sprites and advances sprite animations.
type SyncSystem struct {
	world  *physics.World
	scene  *scene.Scene
	filter *ecs.Filter2[components.Body, components.Sprite]
}

// NewSyncSystem creates a sync system.
func NewSyncSystem(reg *registry.Registry, world *physics.World, sc *scene.Scene) *SyncSystem {
	return &SyncSystem{
		world:  world,
		scene:  sc,
		filter: ecs.NewFilter2[components.Body, components.Sprite](reg.World()),
	}
}

// Update syncs every object with a live body and sprite, then advances the
// scene by dt. Objects whose body or sprite has gone are skipped.
// Returns the number synced.
func (s *SyncSystem) Update(dt float64) int {
	synced := 0
	query := s.filter.Query()
	for query.Next() {
		body, sprite := query.Get()
		if !body.Handle.Valid() {
			continue
		}
		pos, ok := s.world.Position(body.Handle)
		if !ok {
			continue
		}
		angle, _ := s.world.Angle(body.Handle)
		if s.scene.SetPosition(sprite.ID, pos) {
			s.scene.SetRotation(sprite.ID, angle)
			synced++
		}
	}
	s.scene.Advance(dt)
	return synced
}
