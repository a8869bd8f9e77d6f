package rig

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/pthm-cable/swingyships/registry"
)

// Level is the result of assembling a level definition.
type Level struct {
	Roots   map[string]registry.Key // named objects weapons can hang off
	Chasers []registry.Key
	Weapons int     // weapon instances built, fully or partially
	Skipped []error // one entry per skipped item
}

// LoadLevel builds a level around an existing player object.
//
// Chasers are built and named first so that every root is known before any
// weapon is resolved. An unknown weapon class or root skips that weapon only.
func (a *Assembler) LoadLevel(player registry.Key, def LevelDef, lib Library) *Level {
	lvl := &Level{Roots: map[string]registry.Key{PlayerName: player}}

	for _, cd := range def.Chasers.Defs {
		key, err := a.MakeChaser(cd, def.Chasers.Props)
		if err != nil {
			lvl.skip(a.logger, "chaser", "", err)
			continue
		}
		lvl.Chasers = append(lvl.Chasers, key)
	}
	for _, nd := range def.Chasers.NamedDefs {
		key, err := a.MakeChaser(nd.Def, def.Chasers.Props)
		if err != nil {
			lvl.skip(a.logger, "chaser", nd.Name, err)
			continue
		}
		lvl.Chasers = append(lvl.Chasers, key)
		lvl.Roots[nd.Name] = key
	}

	for _, wi := range def.Weapons {
		wd, ok := lib.Weapons[wi.Class]
		if !ok {
			lvl.skip(a.logger, "weapon", wi.Class, errors.Wrapf(ErrUnresolvedReference, "weapon class %q", wi.Class))
			continue
		}
		root, ok := lvl.Roots[wi.Root]
		if !ok {
			lvl.skip(a.logger, "weapon", wi.Class, errors.Wrapf(ErrUnresolvedReference, "root object %q", wi.Root))
			continue
		}
		skipped, err := a.LoadWeapon(wd, root, lib)
		lvl.Skipped = append(lvl.Skipped, skipped...)
		if err != nil {
			lvl.skip(a.logger, "weapon", wi.Class, err)
			continue
		}
		lvl.Weapons++
	}

	a.logger.Info("level assembled",
		zap.Int("chasers", len(lvl.Chasers)),
		zap.Int("weapons", lvl.Weapons),
		zap.Int("skipped", len(lvl.Skipped)),
		zap.Int("bodies", a.world.BodyCount()),
		zap.Int("joints", a.world.JointCount()),
	)
	return lvl
}

// LoadWeapon builds one weapon hanging off root. Colliders are placed relative
// to the root's current position and registered by name before any chain is
// resolved. Items that fail are logged, skipped and returned.
func (a *Assembler) LoadWeapon(def WeaponDef, root registry.Key, lib Library) ([]error, error) {
	rootBody, ok := a.reg.Body(root)
	if !ok {
		return nil, errors.Wrapf(ErrMissingHandle, "weapon %q root %s", def.Name, root)
	}
	rootPos, ok := a.world.Position(rootBody)
	if !ok {
		return nil, errors.Wrapf(ErrMissingHandle, "weapon %q root body %d", def.Name, rootBody)
	}

	var skipped []error
	record := func(kind, name string, err error) {
		a.logger.Warn("skipping "+kind,
			zap.String("weapon", def.Name),
			zap.String("name", name),
			zap.Error(err),
		)
		skipped = append(skipped, err)
	}

	objects := map[string]registry.Key{RootName: root}
	for _, cd := range def.Colliders {
		props, ok := lib.Colliders[cd.Props]
		if !ok {
			record("collider", cd.Name, errors.Wrapf(ErrUnresolvedReference, "collider property set %q", cd.Props))
			continue
		}
		key, err := a.MakeSingle(cd, props, a.cfg.Textures.Default, rootPos)
		if err != nil {
			record("collider", cd.Name, err)
			continue
		}
		objects[cd.Name] = key
	}

	for _, ch := range def.Chains {
		k1, ok := objects[ch.Object1]
		if !ok {
			record("chain", ch.Object1, errors.Wrapf(ErrUnresolvedReference, "object %q", ch.Object1))
			continue
		}
		k2, ok := objects[ch.Object2]
		if !ok {
			record("chain", ch.Object2, errors.Wrapf(ErrUnresolvedReference, "object %q", ch.Object2))
			continue
		}
		if _, err := a.MakeChain(k1, k2, ch, rootPos); err != nil {
			record("chain", ch.Object1+"-"+ch.Object2, err)
		}
	}
	return skipped, nil
}

func (l *Level) skip(logger *zap.Logger, kind, name string, err error) {
	logger.Warn("skipping "+kind, zap.String("name", name), zap.Error(err))
	l.Skipped = append(l.Skipped, err)
}
