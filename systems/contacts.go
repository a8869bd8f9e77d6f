package systems

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/swingyships/physics"
)

// ImpactEvent records a collision whose normal impulse crossed the threshold.
type ImpactEvent struct {
	Point   r2.Vec  // world-space contact point
	Impulse float64 // normal impulse magnitude
}

// ImpactQueue collects impact events between ticks. The contact listener
// appends; the tick driver drains once per tick.
type ImpactQueue struct {
	events []ImpactEvent
}

// Push appends an event.
func (q *ImpactQueue) Push(e ImpactEvent) {
	q.events = append(q.events, e)
}

// Drain returns the queued events and empties the queue.
func (q *ImpactQueue) Drain() []ImpactEvent {
	out := q.events
	q.events = nil
	return out
}

// Len returns the number of queued events.
func (q *ImpactQueue) Len() int {
	return len(q.events)
}

// ContactListener reports hard impacts. Restitution needs no override: the
// engine already bounces every pair with the product of both fixtures' values.
type ContactListener struct {
	queue     *ImpactQueue
	threshold float64
}

// NewContactListener creates a listener that pushes impacts above threshold to queue.
func NewContactListener(queue *ImpactQueue, threshold float64) *ContactListener {
	return &ContactListener{queue: queue, threshold: threshold}
}

func (l *ContactListener) BeginContact(physics.Contact) {}

func (l *ContactListener) PreSolve(physics.Contact) {}

// PostSolve emits one impact when the normal impulse exceeds the threshold.
// A contact without manifold points has nowhere to put an effect and is dropped.
func (l *ContactListener) PostSolve(c physics.Contact, impulse physics.ContactImpulse) {
	if impulse.Normal <= l.threshold {
		return
	}
	point, ok := contactPoint(c.WorldManifold())
	if !ok {
		return
	}
	l.queue.Push(ImpactEvent{Point: point, Impulse: impulse.Normal})
}

func (l *ContactListener) EndContact(physics.Contact) {}

// contactPoint averages the manifold points that are present.
func contactPoint(m physics.Manifold) (r2.Vec, bool) {
	switch {
	case m.Count >= 2:
		return midpoint(m.Points[0], m.Points[1]), true
	case m.Count == 1:
		return m.Points[0], true
	}
	return r2.Vec{}, false
}
