package physics

import (
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r2"
)

// RopeJointDef limits the distance between two body-local anchors to MaxLength
// while allowing any slack below it.
type RopeJointDef struct {
	BodyA, BodyB     BodyHandle
	LocalAnchorA     r2.Vec
	LocalAnchorB     r2.Vec
	MaxLength        float64
	CollideConnected bool
}

type jointEntry struct {
	constraint *cp.Constraint
	def        RopeJointDef
}

// CreateRopeJoint connects two bodies with a rope (max-distance) joint.
func (w *World) CreateRopeJoint(def RopeJointDef) (JointHandle, error) {
	a, ok := w.bodies[def.BodyA]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownBody, "rope joint body A %d", def.BodyA)
	}
	b, ok := w.bodies[def.BodyB]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownBody, "rope joint body B %d", def.BodyB)
	}
	if def.MaxLength < 0 {
		return 0, errors.Errorf("rope joint max length must not be negative, got %v", def.MaxLength)
	}

	c := cp.NewSlideJoint(a.body, b.body, toCP(def.LocalAnchorA), toCP(def.LocalAnchorB), 0, def.MaxLength)
	c.SetCollideBodies(def.CollideConnected)
	w.space.AddConstraint(c)

	w.nextJoint++
	h := JointHandle(w.nextJoint)
	w.joints[h] = &jointEntry{constraint: c, def: def}
	return h, nil
}

// RemoveJoint removes a joint from the world.
func (w *World) RemoveJoint(h JointHandle) bool {
	entry, ok := w.joints[h]
	if !ok || w.stepping {
		return false
	}
	w.space.RemoveConstraint(entry.constraint)
	delete(w.joints, h)
	return true
}

// Joint returns the definition of a live joint.
func (w *World) Joint(h JointHandle) (RopeJointDef, bool) {
	entry, ok := w.joints[h]
	if !ok {
		return RopeJointDef{}, false
	}
	return entry.def, true
}

// JointCount returns the number of live joints.
func (w *World) JointCount() int {
	return len(w.joints)
}

// Joints returns every live joint handle in creation order.
func (w *World) Joints() []JointHandle {
	out := make([]JointHandle, 0, len(w.joints))
	for h := range w.joints {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// JointsOf returns the joints attached to a body in creation order.
func (w *World) JointsOf(body BodyHandle) []JointHandle {
	var out []JointHandle
	for _, h := range w.Joints() {
		def := w.joints[h].def
		if def.BodyA == body || def.BodyB == body {
			out = append(out, h)
		}
	}
	return out
}
