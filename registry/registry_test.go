package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/swingyships/components"
	"github.com/pthm-cable/swingyships/physics"
	"github.com/pthm-cable/swingyships/scene"
)

func object(i int) GameObject {
	return GameObject{
		Body:   physics.BodyHandle(i + 1),
		Sprite: scene.SpriteID{byte(i + 1)},
		Kind:   components.ObjectKind(i % 3),
	}
}

func TestInsertKeysAreUniqueAndResolve(t *testing.T) {
	r := New()
	keys := make(map[Key]GameObject)
	for i := 0; i < 50; i++ {
		obj := object(i)
		k := r.Insert(obj)
		_, dup := keys[k]
		require.False(t, dup, "key %s issued twice", k)
		keys[k] = obj
	}
	assert.Equal(t, 50, r.Len())

	for k, want := range keys {
		got, ok := r.Get(k)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestRemovedKeyStaysAbsent(t *testing.T) {
	r := New()
	victim := r.Insert(object(0))
	keep := r.Insert(object(1))

	removed, ok := r.Remove(victim)
	require.True(t, ok)
	assert.Equal(t, object(0), removed)

	// Recycled slots must not revive the old key.
	for i := 2; i < 20; i++ {
		r.Insert(object(i))
	}

	_, ok = r.Get(victim)
	assert.False(t, ok)
	_, ok = r.Remove(victim)
	assert.False(t, ok)
	_, ok = r.Body(victim)
	assert.False(t, ok)
	_, ok = r.Sprite(victim)
	assert.False(t, ok)
	_, ok = r.Kind(victim)
	assert.False(t, ok)

	got, ok := r.Get(keep)
	require.True(t, ok)
	assert.Equal(t, object(1), got)
	assert.Equal(t, 19, r.Len())
}

func TestZeroKeyNeverResolves(t *testing.T) {
	r := New()
	r.Insert(object(0))
	var k Key
	assert.True(t, k.IsZero())
	_, ok := r.Get(k)
	assert.False(t, ok)
}

func TestAccessors(t *testing.T) {
	r := New()
	obj := GameObject{Body: 7, Sprite: scene.SpriteID{9}, Kind: components.KindChaser}
	k := r.Insert(obj)

	body, ok := r.Body(k)
	require.True(t, ok)
	assert.Equal(t, physics.BodyHandle(7), body)

	sprite, ok := r.Sprite(k)
	require.True(t, ok)
	assert.Equal(t, obj.Sprite, sprite)

	kind, ok := r.Kind(k)
	require.True(t, ok)
	assert.Equal(t, components.KindChaser, kind)

	_, ok = r.Countdown(k)
	assert.False(t, ok, "plain objects have no countdown")
}

func TestEffectsAreRegistryResident(t *testing.T) {
	r := New()
	plain := r.Insert(object(0))
	fx := r.InsertEffect(GameObject{Sprite: scene.SpriteID{3}}, 60)

	n, ok := r.Countdown(fx)
	require.True(t, ok)
	assert.Equal(t, int32(60), n)

	body, ok := r.Body(fx)
	require.True(t, ok)
	assert.False(t, body.Valid())

	assert.ElementsMatch(t, []Key{plain, fx}, r.Keys())
}

func TestCountdownOnlyForEffects(t *testing.T) {
	r := New()
	plain := r.Insert(object(1))
	fx := r.InsertEffect(GameObject{Sprite: scene.SpriteID{4}}, 12)

	_, ok := r.Countdown(plain)
	assert.False(t, ok, "plain object has no countdown")

	n, ok := r.Countdown(fx)
	require.True(t, ok)
	assert.Equal(t, int32(12), n)

	_, ok = r.Remove(fx)
	require.True(t, ok)
	_, ok = r.Countdown(fx)
	assert.False(t, ok, "removed effect")
}
