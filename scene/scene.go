// Package scene is the presentation store: a flat set of 2D sprites addressed by
// SpriteID, each with a position, rotation, scale and opacity, plus the
// animations currently running on it.
//
// Positions are world units. The renderer maps them to pixels through the camera.
package scene

import (
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"
)

// SpriteID identifies a sprite. The zero ID never resolves.
type SpriteID uuid.UUID

// NilSprite is the zero SpriteID.
var NilSprite SpriteID

// IsZero reports whether id is the zero ID.
func (id SpriteID) IsZero() bool { return id == NilSprite }

func (id SpriteID) String() string { return uuid.UUID(id).String() }

// Sprite is the drawable state of one presentation handle.
type Sprite struct {
	Texture  string
	Position r2.Vec
	Rotation float64 // radians, counter-clockwise
	ScaleX   float64
	ScaleY   float64
	Opacity  float64 // 0..1
}

type entry struct {
	sprite Sprite
	anim   *runner
}

// Scene owns every sprite. It is not safe for concurrent use.
type Scene struct {
	sprites map[SpriteID]*entry
	order   []SpriteID
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{sprites: make(map[SpriteID]*entry)}
}

// AddSprite creates a sprite at the origin with unit scale and full opacity.
func (s *Scene) AddSprite(texture string) SpriteID {
	id := SpriteID(uuid.New())
	s.sprites[id] = &entry{sprite: Sprite{Texture: texture, ScaleX: 1, ScaleY: 1, Opacity: 1}}
	s.order = append(s.order, id)
	return id
}

// Remove releases a sprite and any animation running on it.
func (s *Scene) Remove(id SpriteID) bool {
	if _, ok := s.sprites[id]; !ok {
		return false
	}
	delete(s.sprites, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Get returns a copy of a sprite.
func (s *Scene) Get(id SpriteID) (Sprite, bool) {
	e, ok := s.sprites[id]
	if !ok {
		return Sprite{}, false
	}
	return e.sprite, true
}

// Len returns the number of live sprites.
func (s *Scene) Len() int {
	return len(s.sprites)
}

// SetPosition moves a sprite.
func (s *Scene) SetPosition(id SpriteID, pos r2.Vec) bool {
	e, ok := s.sprites[id]
	if !ok {
		return false
	}
	e.sprite.Position = pos
	return true
}

// SetRotation sets a sprite's rotation in radians.
func (s *Scene) SetRotation(id SpriteID, rad float64) bool {
	e, ok := s.sprites[id]
	if !ok {
		return false
	}
	e.sprite.Rotation = rad
	return true
}

// SetScale sets both scale factors of a sprite.
func (s *Scene) SetScale(id SpriteID, scale float64) bool {
	e, ok := s.sprites[id]
	if !ok {
		return false
	}
	e.sprite.ScaleX, e.sprite.ScaleY = scale, scale
	return true
}

// Run starts an animation on a sprite, replacing any running one.
// Zero-length steps at the front take effect immediately.
func (s *Scene) Run(id SpriteID, anim Animation) bool {
	e, ok := s.sprites[id]
	if !ok {
		return false
	}
	e.anim = newRunner(anim, e.sprite)
	if e.anim.advance(&e.sprite, 0) {
		e.anim = nil
	}
	return true
}

// Animating reports whether a sprite has an animation in progress.
func (s *Scene) Animating(id SpriteID) bool {
	e, ok := s.sprites[id]
	return ok && e.anim != nil
}

// Advance moves every running animation forward by dt seconds.
func (s *Scene) Advance(dt float64) {
	for _, id := range s.order {
		e := s.sprites[id]
		if e.anim == nil {
			continue
		}
		if e.anim.advance(&e.sprite, dt) {
			e.anim = nil
		}
	}
}

// Each calls fn for every sprite in creation order.
func (s *Scene) Each(fn func(id SpriteID, sp Sprite)) {
	for _, id := range s.order {
		fn(id, s.sprites[id].sprite)
	}
}
