// Package rig builds game objects and chain rigs into the registry, the
// physics world and the scene from declarative definitions.
//
// Every object the assembler creates exists in all three places at once. A
// definition that names something unknown is logged and skipped; the rest of
// the level still loads.
package rig

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/swingyships/components"
	"github.com/pthm-cable/swingyships/config"
	"github.com/pthm-cable/swingyships/physics"
	"github.com/pthm-cable/swingyships/registry"
	"github.com/pthm-cable/swingyships/scene"
)

// PlayerName is the reserved root name for the player object.
const PlayerName = "player"

// RootName refers to a weapon's root object inside its definition.
const RootName = "root"

// Assembler turns definitions into registry entries, bodies, joints and sprites.
type Assembler struct {
	world  *physics.World
	reg    *registry.Registry
	scene  *scene.Scene
	cfg    *config.Config
	logger *zap.Logger
}

// NewAssembler creates an assembler writing into the given world, registry and scene.
func NewAssembler(world *physics.World, reg *registry.Registry, sc *scene.Scene, cfg *config.Config, logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{world: world, reg: reg, scene: sc, cfg: cfg, logger: logger}
}

// register creates the sprite for a body and stores the pair in the registry.
func (a *Assembler) register(body physics.BodyHandle, tex string, scale float64, kind components.ObjectKind) registry.Key {
	id := a.scene.AddSprite(tex)
	if pos, ok := a.world.Position(body); ok {
		a.scene.SetPosition(id, pos)
	}
	a.scene.Run(id, scene.ScaleBy{Factor: scale})
	return a.reg.Insert(registry.GameObject{Body: body, Sprite: id, Kind: kind})
}

// MakePlayer builds the player ship from configuration.
func (a *Assembler) MakePlayer() (registry.Key, error) {
	pc := a.cfg.Player
	if a.cfg.Textures.Player == "" {
		return registry.Key{}, errors.Wrap(ErrMissingTexture, "player")
	}

	def := physics.NewBodyDef(r2.Vec{X: pc.X, Y: pc.Y})
	def.LinearDamping = pc.LinearDamping
	def.GravityScale = 0
	def.FixedRotation = true
	body := a.world.CreateBody(def)
	if err := a.world.CreateFixture(body, physics.CircleFixture(pc.Radius, pc.Density, pc.Restitution)); err != nil {
		a.world.RemoveBody(body)
		return registry.Key{}, errors.Wrap(err, "player fixture")
	}
	return a.register(body, a.cfg.Textures.Player, pc.Scale, components.KindPlayer), nil
}

// MakeArena builds the static walls around the play field.
func (a *Assembler) MakeArena() (physics.BodyHandle, error) {
	ac := a.cfg.Arena
	def := physics.NewBodyDef(r2.Vec{})
	def.Type = physics.Static
	body := a.world.CreateBody(def)

	corners := []r2.Vec{
		{X: ac.MinX, Y: ac.MinY},
		{X: ac.MaxX, Y: ac.MinY},
		{X: ac.MaxX, Y: ac.MaxY},
		{X: ac.MinX, Y: ac.MaxY},
	}
	for i := range corners {
		from, to := corners[i], corners[(i+1)%len(corners)]
		if err := a.world.CreateFixture(body, physics.SegmentFixture(from, to, ac.Restitution)); err != nil {
			a.world.RemoveBody(body)
			return 0, errors.Wrap(err, "arena wall")
		}
	}
	return body, nil
}

// MakeChaser builds one chaser at the position in def.
func (a *Assembler) MakeChaser(def ChaserDef, props ChaserProps) (registry.Key, error) {
	tex := a.cfg.Textures.Chaser
	if tex == "" {
		return registry.Key{}, errors.Wrap(ErrMissingTexture, "chaser")
	}

	bd := physics.NewBodyDef(r2.Vec{X: def.X, Y: def.Y})
	bd.LinearDamping = props.LinearDamping
	bd.GravityScale = 0
	bd.FixedRotation = true
	body := a.world.CreateBody(bd)

	radius := a.cfg.Chaser.BaseRadius * props.Scale
	if err := a.world.CreateFixture(body, physics.CircleFixture(radius, props.Density, props.Restitution)); err != nil {
		a.world.RemoveBody(body)
		return registry.Key{}, errors.Wrap(err, "chaser fixture")
	}
	return a.register(body, tex, props.Scale, components.KindChaser), nil
}

// MakeSingle builds one collider body at anchor + (col.X, col.Y).
func (a *Assembler) MakeSingle(col ColliderDef, props ColliderProps, tex string, anchor r2.Vec) (registry.Key, error) {
	if tex == "" {
		return registry.Key{}, errors.Wrapf(ErrMissingTexture, "collider %q", col.Name)
	}

	var fixture physics.FixtureDef
	switch props.Shape {
	case "", "circle":
		fixture = physics.CircleFixture(a.cfg.Collider.BaseRadius*props.Scale, props.Density, props.Restitution)
	case "box":
		fixture = physics.BoxFixture(props.Width, props.Height, props.Density, props.Restitution)
	default:
		return registry.Key{}, errors.Wrapf(ErrUnresolvedReference, "collider %q shape %q", col.Name, props.Shape)
	}

	def := physics.NewBodyDef(r2.Add(anchor, r2.Vec{X: col.X, Y: col.Y}))
	def.LinearDamping = props.LinearDamping
	def.AngularDamping = props.AngularDamping
	body := a.world.CreateBody(def)
	if err := a.world.CreateFixture(body, fixture); err != nil {
		a.world.RemoveBody(body)
		return registry.Key{}, errors.Wrapf(err, "collider %q", col.Name)
	}
	return a.register(body, tex, props.Scale, components.KindDefault), nil
}

// MakeRopeJoint ties two objects together by their origins with the given
// maximum length.
func (a *Assembler) MakeRopeJoint(key1, key2 registry.Key, length float64) (physics.JointHandle, error) {
	b1, b2, err := a.bodies(key1, key2)
	if err != nil {
		return 0, err
	}
	return a.world.CreateRopeJoint(physics.RopeJointDef{BodyA: b1, BodyB: b2, MaxLength: length})
}

// bodies resolves both keys to live bodies.
func (a *Assembler) bodies(key1, key2 registry.Key) (physics.BodyHandle, physics.BodyHandle, error) {
	b1, ok := a.reg.Body(key1)
	if !ok || !a.world.HasBody(b1) {
		return 0, 0, errors.Wrapf(ErrMissingHandle, "key %s", key1)
	}
	b2, ok := a.reg.Body(key2)
	if !ok || !a.world.HasBody(b2) {
		return 0, 0, errors.Wrapf(ErrMissingHandle, "key %s", key2)
	}
	return b1, b2, nil
}
