package physics

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

type recordingListener struct {
	begins     int
	postSolves int
	restitutes [][2]float64
	combined   []float64
	manifolds  []Manifold
}

func (l *recordingListener) BeginContact(c Contact) {
	l.begins++
	a, b := c.Restitutions()
	l.restitutes = append(l.restitutes, [2]float64{a, b})
	l.combined = append(l.combined, c.Restitution())
}

func (l *recordingListener) PreSolve(Contact) {}

func (l *recordingListener) PostSolve(c Contact, _ ContactImpulse) {
	l.postSolves++
	l.manifolds = append(l.manifolds, c.WorldManifold())
}

func (l *recordingListener) EndContact(Contact) {}

func newBall(t *testing.T, w *World, pos r2.Vec, radius, restitution float64) BodyHandle {
	t.Helper()
	h := w.CreateBody(NewBodyDef(pos))
	require.NoError(t, w.CreateFixture(h, CircleFixture(radius, 1, restitution)))
	return h
}

func TestCreateBodyHandlesAreUnique(t *testing.T) {
	w := NewWorld(r2.Vec{})
	seen := make(map[BodyHandle]bool)
	for i := 0; i < 10; i++ {
		h := w.CreateBody(NewBodyDef(r2.Vec{X: float64(i)}))
		assert.True(t, h.Valid())
		assert.False(t, seen[h])
		seen[h] = true
	}
	assert.Equal(t, 10, w.BodyCount())
	assert.False(t, w.HasBody(0))
}

func TestFixtureMass(t *testing.T) {
	w := NewWorld(r2.Vec{})
	h := w.CreateBody(NewBodyDef(r2.Vec{}))
	require.NoError(t, w.CreateFixture(h, BoxFixture(0.36, 0.36, 0.01, 0)))

	mass, ok := w.Mass(h)
	require.True(t, ok)
	assert.InDelta(t, 0.01*0.36*0.36, mass, 1e-12)
	assert.Equal(t, 1, w.FixtureCount(h))
}

func TestCreateFixtureRejectsBadInput(t *testing.T) {
	w := NewWorld(r2.Vec{})
	err := w.CreateFixture(BodyHandle(99), CircleFixture(1, 1, 0))
	assert.True(t, errors.Is(err, ErrUnknownBody))

	h := w.CreateBody(NewBodyDef(r2.Vec{}))
	assert.Error(t, w.CreateFixture(h, CircleFixture(0, 1, 0)))
	assert.Error(t, w.CreateFixture(h, BoxFixture(1, -1, 1, 0)))
	assert.Equal(t, 0, w.FixtureCount(h))
}

func TestGravityScale(t *testing.T) {
	w := NewWorld(r2.Vec{Y: -10})
	falling := newBall(t, w, r2.Vec{X: 0}, 0.5, 0)

	def := NewBodyDef(r2.Vec{X: 10})
	def.GravityScale = 0
	floating := w.CreateBody(def)
	require.NoError(t, w.CreateFixture(floating, CircleFixture(0.5, 1, 0)))

	for i := 0; i < 30; i++ {
		w.Step(1.0/60.0, 8)
	}

	p, _ := w.Position(falling)
	assert.Less(t, p.Y, -0.5)
	q, _ := w.Position(floating)
	assert.InDelta(t, 0, q.Y, 1e-9)
	assert.Equal(t, int64(30), w.Steps())
}

func TestApplyForceToCenter(t *testing.T) {
	w := NewWorld(r2.Vec{})
	h := newBall(t, w, r2.Vec{}, 1, 0)

	w.ApplyForceToCenter(h, r2.Vec{X: 100})
	w.Step(1.0/60.0, 8)

	v, ok := w.Velocity(h)
	require.True(t, ok)
	assert.Greater(t, v.X, 0.0)
	assert.InDelta(t, 0, v.Y, 1e-9)
}

func TestLinearDampingSlowsBody(t *testing.T) {
	w := NewWorld(r2.Vec{})
	def := NewBodyDef(r2.Vec{})
	def.LinearDamping = 2
	h := w.CreateBody(def)
	require.NoError(t, w.CreateFixture(h, CircleFixture(1, 1, 0)))
	w.SetVelocity(h, r2.Vec{X: 10})

	w.Step(1.0/60.0, 8)

	v, _ := w.Velocity(h)
	assert.Less(t, v.X, 10.0)
	assert.Greater(t, v.X, 9.0)
}

func TestRopeJointLifecycle(t *testing.T) {
	w := NewWorld(r2.Vec{})
	a := newBall(t, w, r2.Vec{}, 0.5, 0)
	b := newBall(t, w, r2.Vec{X: 2}, 0.5, 0)

	j, err := w.CreateRopeJoint(RopeJointDef{BodyA: a, BodyB: b, MaxLength: 3})
	require.NoError(t, err)
	assert.True(t, j.Valid())

	def, ok := w.Joint(j)
	require.True(t, ok)
	assert.Equal(t, 3.0, def.MaxLength)
	assert.Equal(t, []JointHandle{j}, w.JointsOf(a))

	_, err = w.CreateRopeJoint(RopeJointDef{BodyA: a, BodyB: BodyHandle(42), MaxLength: 1})
	assert.True(t, errors.Is(err, ErrUnknownBody))
	assert.Equal(t, 1, w.JointCount())

	require.True(t, w.RemoveBody(b))
	assert.Equal(t, 0, w.JointCount(), "removing a body drops its joints")
	assert.False(t, w.RemoveBody(b))
}

func TestRopeJointHoldsMaxDistance(t *testing.T) {
	w := NewWorld(r2.Vec{})
	anchorDef := NewBodyDef(r2.Vec{})
	anchorDef.Type = Static
	anchor := w.CreateBody(anchorDef)
	ball := newBall(t, w, r2.Vec{X: 1}, 0.2, 0)

	_, err := w.CreateRopeJoint(RopeJointDef{BodyA: anchor, BodyB: ball, MaxLength: 1})
	require.NoError(t, err)

	w.SetVelocity(ball, r2.Vec{X: 20})
	for i := 0; i < 60; i++ {
		w.Step(1.0/60.0, 20)
	}
	p, _ := w.Position(ball)
	assert.Less(t, r2.Norm(p), 1.1)
}

func TestContactListenerSeesRestitutionsAndManifold(t *testing.T) {
	w := NewWorld(r2.Vec{Y: -10})
	listener := &recordingListener{}
	w.SetContactListener(listener)

	floorDef := NewBodyDef(r2.Vec{})
	floorDef.Type = Static
	floor := w.CreateBody(floorDef)
	require.NoError(t, w.CreateFixture(floor, SegmentFixture(r2.Vec{X: -10}, r2.Vec{X: 10}, 0.8)))
	newBall(t, w, r2.Vec{Y: 1}, 0.5, 0.5)

	for i := 0; i < 120; i++ {
		w.Step(1.0/60.0, 20)
	}

	require.Greater(t, listener.begins, 0)
	got := listener.restitutes[0]
	assert.ElementsMatch(t, []float64{0.8, 0.5}, got[:])
	assert.InDelta(t, 0.4, listener.combined[0], 1e-9)

	require.Greater(t, listener.postSolves, 0)
	m := listener.manifolds[0]
	assert.GreaterOrEqual(t, m.Count, 1)
	assert.InDelta(t, 0, m.Points[0].Y, 0.1)
}

func TestStepIterations(t *testing.T) {
	w := NewWorld(r2.Vec{})
	w.Step(1.0/60.0, 20)
	assert.Equal(t, uint(20), w.space.Iterations)
	w.Step(1.0/60.0, 0)
	assert.Equal(t, uint(DefaultIterations), w.space.Iterations)
	assert.Equal(t, int64(2), w.Steps())
}

func TestRemoveBodyRefusedWhileStepping(t *testing.T) {
	w := NewWorld(r2.Vec{})
	h := newBall(t, w, r2.Vec{}, 1, 0)
	w.stepping = true
	assert.False(t, w.RemoveBody(h))
	w.stepping = false
	assert.True(t, w.RemoveBody(h))
	assert.Empty(t, w.Bodies())
}
