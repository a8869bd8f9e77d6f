package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/swingyships/components"
	"github.com/pthm-cable/swingyships/physics"
	"github.com/pthm-cable/swingyships/registry"
)

func TestPlayerForceNeverExceedsCeiling(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		d := r2.Vec{X: rng.NormFloat64() * math.Pow(10, float64(rng.Intn(6)-3)), Y: rng.NormFloat64()}
		f := PlayerForce(d, 10000, 2000)
		assert.LessOrEqual(t, r2.Norm(f), 2000.0+1e-9)
	}
}

func TestPlayerForce(t *testing.T) {
	tests := []struct {
		name  string
		delta r2.Vec
		want  r2.Vec
	}{
		{"small delta passes through, y inverted", r2.Vec{X: 0.01, Y: 0.02}, r2.Vec{X: 100, Y: -200}},
		{"large delta keeps direction", r2.Vec{X: 3, Y: -4}, r2.Vec{X: 1200, Y: 1600}},
		{"zero", r2.Vec{}, r2.Vec{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlayerForce(tt.delta, 10000, 2000)
			assert.InDelta(t, tt.want.X, got.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
		})
	}
}

func TestChaserForce(t *testing.T) {
	f := ChaserForce(r2.Vec{X: 1, Y: 1}, r2.Vec{X: 4, Y: 5}, 1000)
	assert.InDelta(t, 1000, r2.Norm(f), 1e-9)
	assert.InDelta(t, 600, f.X, 1e-9)
	assert.InDelta(t, 800, f.Y, 1e-9)

	assert.Equal(t, r2.Vec{}, ChaserForce(r2.Vec{X: 2}, r2.Vec{X: 2}, 1000), "no force on top of the target")
}

func TestBehaviorDispatch(t *testing.T) {
	world := physics.NewWorld(r2.Vec{})
	reg := registry.New()

	spawn := func(pos r2.Vec, kind components.ObjectKind) (registry.Key, physics.BodyHandle) {
		def := physics.NewBodyDef(pos)
		def.GravityScale = 0
		h := world.CreateBody(def)
		require.NoError(t, world.CreateFixture(h, physics.CircleFixture(1, 1, 0)))
		return reg.Insert(registry.GameObject{Body: h, Kind: kind}), h
	}
	player, playerBody := spawn(r2.Vec{}, components.KindPlayer)
	_, chaserBody := spawn(r2.Vec{X: 10}, components.KindChaser)
	_, passiveBody := spawn(r2.Vec{Y: 10}, components.KindDefault)

	sys := NewBehaviorSystem(reg, world, BehaviorParams{ForceGain: 10000, ForceCeiling: 2000, PursuitForce: 1000}, player)

	assert.Equal(t, 0, sys.Update(BehaviorInput{Deltas: []r2.Vec{{X: 1}}}), "uncaptured pointer and no frame")
	assert.Equal(t, 1, sys.Update(BehaviorInput{Frame: true}), "chaser only")
	assert.Equal(t, 3, sys.Update(BehaviorInput{Captured: true, Frame: true, Deltas: []r2.Vec{{X: 1}, {Y: 1}}}))

	world.Step(1.0/60.0, 20)

	v, _ := world.Velocity(chaserBody)
	assert.Less(t, v.X, 0.0, "chaser moves toward the player")
	v, _ = world.Velocity(passiveBody)
	assert.Equal(t, r2.Vec{}, v)
	v, _ = world.Velocity(playerBody)
	assert.NotEqual(t, r2.Vec{}, v)
}
