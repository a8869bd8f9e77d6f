package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r2"
)

// ShapeKind selects the collider geometry of a fixture.
type ShapeKind uint8

const (
	ShapeCircle ShapeKind = iota
	ShapeBox
	ShapeSegment
)

// defaultFriction matches the usual engine default for contacts.
const defaultFriction = 0.2

// FixtureDef describes a collider attached to a body.
type FixtureDef struct {
	Kind        ShapeKind
	Radius      float64 // circle radius, or segment thickness
	Width       float64 // box
	Height      float64 // box
	A, B        r2.Vec  // segment endpoints in body space
	Density     float64
	Restitution float64
	Friction    float64
}

// CircleFixture returns a circle collider definition centered on the body.
func CircleFixture(radius, density, restitution float64) FixtureDef {
	return FixtureDef{Kind: ShapeCircle, Radius: radius, Density: density, Restitution: restitution, Friction: defaultFriction}
}

// BoxFixture returns an axis-aligned box collider definition centered on the body.
func BoxFixture(width, height, density, restitution float64) FixtureDef {
	return FixtureDef{Kind: ShapeBox, Width: width, Height: height, Density: density, Restitution: restitution, Friction: defaultFriction}
}

// SegmentFixture returns a line collider definition, used for static walls.
func SegmentFixture(a, b r2.Vec, restitution float64) FixtureDef {
	return FixtureDef{Kind: ShapeSegment, A: a, B: b, Restitution: restitution, Friction: defaultFriction}
}

// CreateFixture attaches a collider to a body and refreshes the body's mass.
func (w *World) CreateFixture(h BodyHandle, def FixtureDef) error {
	entry, ok := w.bodies[h]
	if !ok {
		return errors.Wrapf(ErrUnknownBody, "fixture on body %d", h)
	}

	var shape *cp.Shape
	var mass, moment float64
	switch def.Kind {
	case ShapeCircle:
		if def.Radius <= 0 {
			return errors.Errorf("circle fixture needs a positive radius, got %v", def.Radius)
		}
		shape = cp.NewCircle(entry.body, def.Radius, cp.Vector{})
		mass = def.Density * math.Pi * def.Radius * def.Radius
		moment = cp.MomentForCircle(mass, 0, def.Radius, cp.Vector{})
	case ShapeBox:
		if def.Width <= 0 || def.Height <= 0 {
			return errors.Errorf("box fixture needs positive extents, got %vx%v", def.Width, def.Height)
		}
		shape = cp.NewBox(entry.body, def.Width, def.Height, 0)
		mass = def.Density * def.Width * def.Height
		moment = cp.MomentForBox(mass, def.Width, def.Height)
	case ShapeSegment:
		shape = cp.NewSegment(entry.body, toCP(def.A), toCP(def.B), def.Radius)
	default:
		return errors.Errorf("unknown shape kind %d", def.Kind)
	}

	shape.SetElasticity(def.Restitution)
	shape.SetFriction(def.Friction)
	shape.SetCollisionType(collisionType)
	w.space.AddShape(shape)
	entry.shapes = append(entry.shapes, shape)

	if entry.def.Type == Dynamic {
		entry.mass += mass
		entry.moment += moment
		w.refreshMass(entry)
	}
	return nil
}

// refreshMass pushes the accumulated fixture mass into the engine body.
// A body whose fixtures carry no density falls back to unit mass.
func (w *World) refreshMass(entry *bodyEntry) {
	mass, moment := entry.mass, entry.moment
	if mass <= 0 {
		mass, moment = 1, 1
	}
	if moment <= 0 {
		moment = 1
	}
	entry.body.SetMass(mass)
	if entry.def.FixedRotation {
		entry.body.SetMoment(math.Inf(1))
	} else {
		entry.body.SetMoment(moment)
	}
}

// FixtureCount returns the number of fixtures on a body.
func (w *World) FixtureCount(h BodyHandle) int {
	entry, ok := w.bodies[h]
	if !ok {
		return 0
	}
	return len(entry.shapes)
}

// Restitutions returns the restitution of every fixture on a body.
func (w *World) Restitutions(h BodyHandle) []float64 {
	entry, ok := w.bodies[h]
	if !ok {
		return nil
	}
	out := make([]float64, len(entry.shapes))
	for i, s := range entry.shapes {
		out[i] = s.Elasticity()
	}
	return out
}
