package rig

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/swingyships/components"
	"github.com/pthm-cable/swingyships/physics"
	"github.com/pthm-cable/swingyships/registry"
)

// MakeChain connects key1 to key2 with def.Length links placed at
// anchor + (def.X, def.Y).
//
// The first joint hangs off key1's local center, links join each other at a
// fixed local offset, and the last link reaches key2's local center with a
// short tail. A separate rope joint between key1 and key2 caps the whole rig
// at def.Length. It is returned as the chain's handle.
//
// Both endpoints are resolved before anything is built, and a failure partway
// through removes the links already made, so an error leaves the world untouched.
func (a *Assembler) MakeChain(key1, key2 registry.Key, def ChainDef, anchor r2.Vec) (_ physics.JointHandle, err error) {
	if def.Length < 0 {
		return 0, errors.Errorf("chain %s-%s has negative length %d", def.Object1, def.Object2, def.Length)
	}
	body1, body2, err := a.bodies(key1, key2)
	if err != nil {
		return 0, errors.Wrapf(err, "chain %s-%s", def.Object1, def.Object2)
	}
	tex := a.cfg.Textures.Default
	if tex == "" {
		return 0, errors.Wrap(ErrMissingTexture, "chain link")
	}

	cc := a.cfg.Chain
	linkAnchor := r2.Vec{X: cc.LinkAnchor, Y: cc.LinkAnchor}
	center1, _ := a.world.LocalCenter(body1)
	center2, _ := a.world.LocalCenter(body2)
	pos := r2.Add(anchor, r2.Vec{X: def.X, Y: def.Y})

	var links []registry.Key
	defer func() {
		if err != nil {
			a.discard(links)
		}
	}()

	prev, prevAnchor := body1, center1
	for i := 0; i < def.Length; i++ {
		key, link, err := a.makeLink(pos, tex)
		if err != nil {
			return 0, err
		}
		links = append(links, key)
		if _, err := a.world.CreateRopeJoint(physics.RopeJointDef{
			BodyA:        prev,
			BodyB:        link,
			LocalAnchorA: prevAnchor,
			LocalAnchorB: linkAnchor,
			MaxLength:    cc.LinkMaxLength,
		}); err != nil {
			return 0, errors.Wrap(err, "chain link joint")
		}
		prev, prevAnchor = link, linkAnchor
	}

	if _, err := a.world.CreateRopeJoint(physics.RopeJointDef{
		BodyA:        prev,
		BodyB:        body2,
		LocalAnchorA: prevAnchor,
		LocalAnchorB: center2,
		MaxLength:    cc.TailMaxLength,
	}); err != nil {
		return 0, errors.Wrap(err, "chain tail joint")
	}

	failsafe, err := a.world.CreateRopeJoint(physics.RopeJointDef{
		BodyA:        body1,
		BodyB:        body2,
		LocalAnchorA: center1,
		LocalAnchorB: center2,
		MaxLength:    float64(def.Length),
	})
	if err != nil {
		return 0, errors.Wrap(err, "chain failsafe joint")
	}
	return failsafe, nil
}

// makeLink builds one free-rotating chain link box.
func (a *Assembler) makeLink(pos r2.Vec, tex string) (registry.Key, physics.BodyHandle, error) {
	cc := a.cfg.Chain
	body := a.world.CreateBody(physics.NewBodyDef(pos))
	if err := a.world.CreateFixture(body, physics.BoxFixture(cc.LinkSize, cc.LinkSize, cc.LinkDensity, 0)); err != nil {
		a.world.RemoveBody(body)
		return registry.Key{}, 0, errors.Wrap(err, "chain link fixture")
	}
	return a.register(body, tex, cc.LinkScale, components.KindDefault), body, nil
}

// discard removes objects from the registry, the world and the scene.
// Removing a body also drops its joints.
func (a *Assembler) discard(keys []registry.Key) {
	for _, k := range keys {
		obj, ok := a.reg.Remove(k)
		if !ok {
			continue
		}
		a.world.RemoveBody(obj.Body)
		a.scene.Remove(obj.Sprite)
	}
}
