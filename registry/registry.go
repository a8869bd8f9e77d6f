// Package registry is the arena of logical game objects.
//
// Each object is an ark entity carrying a physics handle, a sprite handle and a
// behavior kind. Keys wrap the entity (slot id plus generation), so a removed
// key never resolves again even after its slot is recycled. The registry never
// touches the physics world or the scene; callers keep the three in step.
package registry

import (
	"fmt"
	"sort"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/swingyships/components"
	"github.com/pthm-cable/swingyships/physics"
	"github.com/pthm-cable/swingyships/scene"
)

// Key identifies an object for the lifetime of the registry.
type Key struct {
	e ecs.Entity
}

// KeyOf wraps an entity obtained from a query over the registry's world.
func KeyOf(e ecs.Entity) Key { return Key{e: e} }

// Entity returns the underlying ark entity.
func (k Key) Entity() ecs.Entity { return k.e }

// IsZero reports whether k was never issued.
func (k Key) IsZero() bool { return k.e.IsZero() }

func (k Key) String() string {
	return fmt.Sprintf("%d:%d", k.e.ID(), k.e.Gen())
}

// GameObject is the registry's view of one object.
type GameObject struct {
	Body   physics.BodyHandle
	Sprite scene.SpriteID
	Kind   components.ObjectKind
}

// Registry maps keys to game objects.
type Registry struct {
	world *ecs.World

	objectMapper *ecs.Map3[components.Body, components.Sprite, components.Behavior]
	effectMapper *ecs.Map4[components.Body, components.Sprite, components.Behavior, components.Effect]
	objectFilter *ecs.Filter3[components.Body, components.Sprite, components.Behavior]

	bodyMap     *ecs.Map1[components.Body]
	spriteMap   *ecs.Map1[components.Sprite]
	behaviorMap *ecs.Map1[components.Behavior]
	effectMap   *ecs.Map1[components.Effect]

	count int
}

// New creates an empty registry backed by a fresh ark world.
func New() *Registry {
	world := ecs.NewWorld()
	return &Registry{
		world:        world,
		objectMapper: ecs.NewMap3[components.Body, components.Sprite, components.Behavior](world),
		effectMapper: ecs.NewMap4[components.Body, components.Sprite, components.Behavior, components.Effect](world),
		objectFilter: ecs.NewFilter3[components.Body, components.Sprite, components.Behavior](world),
		bodyMap:      ecs.NewMap1[components.Body](world),
		spriteMap:    ecs.NewMap1[components.Sprite](world),
		behaviorMap:  ecs.NewMap1[components.Behavior](world),
		effectMap:    ecs.NewMap1[components.Effect](world),
	}
}

// World exposes the ark world so systems can build their own filters.
// Entities must not be created or removed through it directly.
func (r *Registry) World() *ecs.World {
	return r.world
}

// Insert stores an object and returns its fresh key.
func (r *Registry) Insert(obj GameObject) Key {
	body := components.Body{Handle: obj.Body}
	sprite := components.Sprite{ID: obj.Sprite}
	behavior := components.Behavior{Kind: obj.Kind}
	e := r.objectMapper.NewEntity(&body, &sprite, &behavior)
	r.count++
	return Key{e: e}
}

// InsertEffect stores a transient object that lives for countdown ticks.
func (r *Registry) InsertEffect(obj GameObject, countdown int32) Key {
	body := components.Body{Handle: obj.Body}
	sprite := components.Sprite{ID: obj.Sprite}
	behavior := components.Behavior{Kind: obj.Kind}
	effect := components.Effect{Countdown: countdown}
	e := r.effectMapper.NewEntity(&body, &sprite, &behavior, &effect)
	r.count++
	return Key{e: e}
}

// Contains reports whether k resolves to a live object.
func (r *Registry) Contains(k Key) bool {
	return !k.e.IsZero() && r.world.Alive(k.e)
}

// Get returns the object stored under k.
func (r *Registry) Get(k Key) (GameObject, bool) {
	if !r.Contains(k) {
		return GameObject{}, false
	}
	return GameObject{
		Body:   r.bodyMap.Get(k.e).Handle,
		Sprite: r.spriteMap.Get(k.e).ID,
		Kind:   r.behaviorMap.Get(k.e).Kind,
	}, true
}

// Remove deletes the object under k and returns it. It must not be called
// while a query over the registry's world is open.
func (r *Registry) Remove(k Key) (GameObject, bool) {
	obj, ok := r.Get(k)
	if !ok {
		return GameObject{}, false
	}
	r.world.RemoveEntity(k.e)
	r.count--
	return obj, true
}

// Body returns the physics handle of k.
func (r *Registry) Body(k Key) (physics.BodyHandle, bool) {
	if !r.Contains(k) {
		return 0, false
	}
	return r.bodyMap.Get(k.e).Handle, true
}

// Sprite returns the sprite handle of k.
func (r *Registry) Sprite(k Key) (scene.SpriteID, bool) {
	if !r.Contains(k) {
		return scene.NilSprite, false
	}
	return r.spriteMap.Get(k.e).ID, true
}

// Kind returns the behavior kind of k.
func (r *Registry) Kind(k Key) (components.ObjectKind, bool) {
	if !r.Contains(k) {
		return components.KindDefault, false
	}
	return r.behaviorMap.Get(k.e).Kind, true
}

// Countdown returns the remaining ticks of an effect. Non-effects report false.
func (r *Registry) Countdown(k Key) (int32, bool) {
	if !r.Contains(k) || !r.effectMap.HasAll(k.e) {
		return 0, false
	}
	return r.effectMap.Get(k.e).Countdown, true
}

// Len returns the number of live objects.
func (r *Registry) Len() int {
	return r.count
}

// Keys returns every live key ordered by slot id.
func (r *Registry) Keys() []Key {
	keys := make([]Key, 0, r.count)
	query := r.objectFilter.Query()
	for query.Next() {
		keys = append(keys, Key{e: query.Entity()})
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].e.ID() < keys[j].e.ID() })
	return keys
}
