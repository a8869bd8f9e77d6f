package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/swingyships/components"
	"github.com/pthm-cable/swingyships/physics"
	"github.com/pthm-cable/swingyships/registry"
	"github.com/pthm-cable/swingyships/scene"
)

func TestSyncCopiesTransforms(t *testing.T) {
	world := physics.NewWorld(r2.Vec{})
	reg := registry.New()
	sc := scene.New()

	h := world.CreateBody(physics.NewBodyDef(r2.Vec{X: 3, Y: -4}))
	require.NoError(t, world.CreateFixture(h, physics.CircleFixture(1, 1, 0)))
	id := sc.AddSprite("ship")
	reg.Insert(registry.GameObject{Body: h, Sprite: id, Kind: components.KindPlayer})

	gone := world.CreateBody(physics.NewBodyDef(r2.Vec{}))
	goneSprite := sc.AddSprite("default")
	reg.Insert(registry.GameObject{Body: gone, Sprite: goneSprite})
	require.True(t, world.RemoveBody(gone))

	sys := NewSyncSystem(reg, world, sc)
	assert.Equal(t, 1, sys.Update(1.0/60.0), "stale bodies are skipped")

	sp, _ := sc.Get(id)
	assert.Equal(t, r2.Vec{X: 3, Y: -4}, sp.Position)
}
