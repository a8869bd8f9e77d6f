// Package physics wraps the Chipmunk rigid-body engine behind stable integer handles.
//
// The rest of the game never sees engine pointers: bodies and joints are
// addressed by BodyHandle and JointHandle, and a handle whose body has been
// removed simply stops resolving.
package physics

import (
	"math"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r2"
)

// ErrUnknownBody is returned when a handle does not resolve to a live body.
var ErrUnknownBody = errors.New("unknown body handle")

// BodyHandle identifies a body in a World. The zero handle never resolves.
type BodyHandle uint32

// Valid reports whether h could refer to a body.
func (h BodyHandle) Valid() bool { return h != 0 }

// JointHandle identifies a joint in a World. The zero handle never resolves.
type JointHandle uint32

// Valid reports whether h could refer to a joint.
func (h JointHandle) Valid() bool { return h != 0 }

// BodyType selects how the solver treats a body.
type BodyType uint8

const (
	Dynamic BodyType = iota
	Static
)

// BodyDef describes a body to create.
type BodyDef struct {
	Type           BodyType
	Position       r2.Vec
	LinearDamping  float64
	AngularDamping float64
	GravityScale   float64
	FixedRotation  bool
}

// NewBodyDef returns a dynamic body definition at pos with full gravity.
func NewBodyDef(pos r2.Vec) BodyDef {
	return BodyDef{Type: Dynamic, Position: pos, GravityScale: 1}
}

// collisionType tags every shape so a single handler sees all contacts.
const collisionType cp.CollisionType = 1

type bodyEntry struct {
	body   *cp.Body
	def    BodyDef
	shapes []*cp.Shape
	mass   float64
	moment float64
}

// World owns a Chipmunk space and the handle tables into it.
type World struct {
	space     *cp.Space
	gravity   r2.Vec
	bodies    map[BodyHandle]*bodyEntry
	joints    map[JointHandle]*jointEntry
	nextBody  uint32
	nextJoint uint32
	listener  ContactListener
	stepping  bool
	stepCount int64
}

// NewWorld creates an empty world with the given gravity.
func NewWorld(gravity r2.Vec) *World {
	w := &World{
		space:   cp.NewSpace(),
		gravity: gravity,
		bodies:  make(map[BodyHandle]*bodyEntry),
		joints:  make(map[JointHandle]*jointEntry),
	}
	// Gravity is applied per body so each body can scale it
	w.space.SetGravity(cp.Vector{})
	w.installContactHandler()
	return w
}

// CreateBody adds a body to the world. Mass comes from fixtures added later.
func (w *World) CreateBody(def BodyDef) BodyHandle {
	var body *cp.Body
	switch def.Type {
	case Static:
		body = cp.NewStaticBody()
	default:
		body = cp.NewBody(1, 1)
	}
	body.SetPosition(toCP(def.Position))
	w.space.AddBody(body)

	entry := &bodyEntry{body: body, def: def}
	if def.Type == Dynamic {
		gravity := w.gravity
		body.SetVelocityUpdateFunc(func(b *cp.Body, _ cp.Vector, damping, dt float64) {
			g := toCP(r2.Scale(entry.def.GravityScale, gravity))
			cp.BodyUpdateVelocity(b, g, damping, dt)
			applyDamping(b, entry.def.LinearDamping, entry.def.AngularDamping, dt)
		})
		if def.FixedRotation {
			body.SetMoment(math.Inf(1))
		}
	}

	w.nextBody++
	h := BodyHandle(w.nextBody)
	body.UserData = h
	w.bodies[h] = entry
	return h
}

// applyDamping reproduces per-body linear and angular damping: v *= 1/(1+dt*c).
func applyDamping(b *cp.Body, linear, angular, dt float64) {
	if linear > 0 {
		v := b.Velocity().Mult(1 / (1 + dt*linear))
		b.SetVelocity(v.X, v.Y)
	}
	if angular > 0 {
		b.SetAngularVelocity(b.AngularVelocity() * (1 / (1 + dt*angular)))
	}
}

// RemoveBody removes a body, its fixtures and every joint attached to it.
func (w *World) RemoveBody(h BodyHandle) bool {
	entry, ok := w.bodies[h]
	if !ok || w.stepping {
		return false
	}

	var attached []JointHandle
	for jh, j := range w.joints {
		if j.def.BodyA == h || j.def.BodyB == h {
			attached = append(attached, jh)
		}
	}
	for _, jh := range attached {
		w.RemoveJoint(jh)
	}

	for _, s := range entry.shapes {
		w.space.RemoveShape(s)
	}
	w.space.RemoveBody(entry.body)
	delete(w.bodies, h)
	return true
}

// HasBody reports whether h resolves to a live body.
func (w *World) HasBody(h BodyHandle) bool {
	_, ok := w.bodies[h]
	return ok
}

// BodyCount returns the number of live bodies.
func (w *World) BodyCount() int {
	return len(w.bodies)
}

// Bodies returns every live body handle in creation order.
func (w *World) Bodies() []BodyHandle {
	out := make([]BodyHandle, 0, len(w.bodies))
	for h := range w.bodies {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Position returns the world position of a body.
func (w *World) Position(h BodyHandle) (r2.Vec, bool) {
	entry, ok := w.bodies[h]
	if !ok {
		return r2.Vec{}, false
	}
	return fromCP(entry.body.Position()), true
}

// Angle returns the rotation of a body in radians.
func (w *World) Angle(h BodyHandle) (float64, bool) {
	entry, ok := w.bodies[h]
	if !ok {
		return 0, false
	}
	return entry.body.Angle(), true
}

// LocalCenter returns the body-local center of mass.
func (w *World) LocalCenter(h BodyHandle) (r2.Vec, bool) {
	entry, ok := w.bodies[h]
	if !ok {
		return r2.Vec{}, false
	}
	return fromCP(entry.body.CenterOfGravity()), true
}

// Velocity returns the linear velocity of a body.
func (w *World) Velocity(h BodyHandle) (r2.Vec, bool) {
	entry, ok := w.bodies[h]
	if !ok {
		return r2.Vec{}, false
	}
	return fromCP(entry.body.Velocity()), true
}

// SetVelocity sets the linear velocity of a body.
func (w *World) SetVelocity(h BodyHandle, v r2.Vec) bool {
	entry, ok := w.bodies[h]
	if !ok {
		return false
	}
	entry.body.SetVelocity(v.X, v.Y)
	return true
}

// Mass returns the mass accumulated from the body's fixtures.
func (w *World) Mass(h BodyHandle) (float64, bool) {
	entry, ok := w.bodies[h]
	if !ok {
		return 0, false
	}
	return entry.mass, true
}

// Def returns the definition the body was created with.
func (w *World) Def(h BodyHandle) (BodyDef, bool) {
	entry, ok := w.bodies[h]
	if !ok {
		return BodyDef{}, false
	}
	return entry.def, true
}

// ApplyForceToCenter queues a force on the body's center of mass for the next step.
func (w *World) ApplyForceToCenter(h BodyHandle, force r2.Vec) bool {
	entry, ok := w.bodies[h]
	if !ok {
		return false
	}
	if entry.def.Type != Dynamic {
		return true
	}
	b := entry.body
	b.ApplyForceAtWorldPoint(toCP(force), b.LocalToWorld(b.CenterOfGravity()))
	return true
}

// DefaultIterations is the engine's own solver iteration count.
const DefaultIterations = 10

// Step advances the simulation by dt with the given solver iteration count.
// A count below one falls back to DefaultIterations. Contact callbacks fire
// during the call.
func (w *World) Step(dt float64, iterations int) {
	if iterations < 1 {
		iterations = DefaultIterations
	}
	w.space.Iterations = uint(iterations)

	w.stepping = true
	w.space.Step(dt)
	w.stepping = false
	w.stepCount++
}

// Steps returns how many times Step has run.
func (w *World) Steps() int64 {
	return w.stepCount
}

func toCP(v r2.Vec) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func fromCP(v cp.Vector) r2.Vec {
	return r2.Vec{X: v.X, Y: v.Y}
}
