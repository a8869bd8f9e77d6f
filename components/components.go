// Package components defines the ECS components stored in the entity registry.
package components

import (
	"github.com/pthm-cable/swingyships/physics"
	"github.com/pthm-cable/swingyships/scene"
)

// Body points at the physics body backing an entity.
// A zero handle means the entity has no body (effects).
type Body struct {
	Handle physics.BodyHandle
}

// Sprite points at the presentation sprite of an entity.
type Sprite struct {
	ID scene.SpriteID
}

// Behavior tags an entity with the per-tick behavior it runs.
type Behavior struct {
	Kind ObjectKind
}

// Effect marks a transient entity that reaps itself once Countdown hits zero.
type Effect struct {
	Countdown int32 // ticks remaining, including the current one
}
