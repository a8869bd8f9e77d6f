package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"gonum.org/v1/gonum/spatial/r2"
)

// Manifold holds the world-space contact points of a touching pair.
// Count is 0, 1 or 2; entries past Count are zero.
type Manifold struct {
	Count  int
	Points [2]r2.Vec
	Normal r2.Vec
}

// ContactImpulse is the impulse the solver applied to a contact during a step.
type ContactImpulse struct {
	Normal  float64
	Tangent float64
}

// Contact is the view of a touching fixture pair handed to a ContactListener.
type Contact interface {
	// Restitutions returns the restitution of the two fixtures.
	Restitutions() (a, b float64)
	// Restitution returns the value the solver bounces the pair with. The
	// engine recomputes it every step as the product of both fixtures'.
	Restitution() float64
	WorldManifold() Manifold
	Bodies() (a, b BodyHandle)
}

// ContactListener receives contact callbacks from inside Step.
// Implementations must not create or remove bodies or joints.
type ContactListener interface {
	BeginContact(c Contact)
	PreSolve(c Contact)
	PostSolve(c Contact, impulse ContactImpulse)
	EndContact(c Contact)
}

// SetContactListener installs the listener; nil disables callbacks.
func (w *World) SetContactListener(l ContactListener) {
	w.listener = l
}

func (w *World) installContactHandler() {
	handler := w.space.NewCollisionHandler(collisionType, collisionType)
	handler.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
		if w.listener != nil {
			w.listener.BeginContact(arbiterContact{arb})
		}
		return true
	}
	handler.PreSolveFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
		if w.listener != nil {
			w.listener.PreSolve(arbiterContact{arb})
		}
		return true
	}
	handler.PostSolveFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) {
		if w.listener == nil {
			return
		}
		total := arb.TotalImpulse()
		n := arb.Normal()
		w.listener.PostSolve(arbiterContact{arb}, ContactImpulse{
			Normal:  math.Abs(total.Dot(n)),
			Tangent: math.Abs(total.Cross(n)),
		})
	}
	handler.SeparateFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) {
		if w.listener != nil {
			w.listener.EndContact(arbiterContact{arb})
		}
	}
}

// arbiterContact adapts a Chipmunk arbiter to Contact.
type arbiterContact struct {
	arb *cp.Arbiter
}

func (c arbiterContact) Restitutions() (float64, float64) {
	a, b := c.arb.Shapes()
	return a.Elasticity(), b.Elasticity()
}

func (c arbiterContact) Restitution() float64 {
	a, b := c.Restitutions()
	return a * b
}

func (c arbiterContact) WorldManifold() Manifold {
	set := c.arb.ContactPointSet()
	m := Manifold{Normal: fromCP(set.Normal)}
	for i := 0; i < set.Count && i < len(m.Points); i++ {
		p := set.Points[i]
		// Midpoint between the two surfaces
		m.Points[i] = fromCP(p.PointA.Add(p.PointB).Mult(0.5))
		m.Count++
	}
	return m
}

func (c arbiterContact) Bodies() (BodyHandle, BodyHandle) {
	a, b := c.arb.Bodies()
	return handleOf(a), handleOf(b)
}

func handleOf(b *cp.Body) BodyHandle {
	if h, ok := b.UserData.(BodyHandle); ok {
		return h
	}
	return 0
}
