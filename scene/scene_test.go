package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestAddAndRemoveSprite(t *testing.T) {
	s := New()
	a := s.AddSprite("ship")
	b := s.AddSprite("chaser")
	assert.NotEqual(t, a, b)
	assert.False(t, a.IsZero())
	assert.Equal(t, 2, s.Len())

	sp, ok := s.Get(a)
	require.True(t, ok)
	assert.Equal(t, "ship", sp.Texture)
	assert.Equal(t, 1.0, sp.Opacity)

	assert.True(t, s.Remove(a))
	assert.False(t, s.Remove(a))
	_, ok = s.Get(a)
	assert.False(t, ok)
	assert.False(t, s.SetPosition(a, r2.Vec{X: 1}))

	var seen []SpriteID
	s.Each(func(id SpriteID, _ Sprite) { seen = append(seen, id) })
	assert.Equal(t, []SpriteID{b}, seen)
}

func TestEachKeepsCreationOrder(t *testing.T) {
	s := New()
	var want []SpriteID
	for i := 0; i < 5; i++ {
		want = append(want, s.AddSprite("default"))
	}
	s.Remove(want[2])
	want = append(want[:2], want[3:]...)

	var got []SpriteID
	s.Each(func(id SpriteID, _ Sprite) { got = append(got, id) })
	assert.Equal(t, want, got)
}

func TestAnimations(t *testing.T) {
	tests := []struct {
		name  string
		anim  Animation
		after float64
		check func(t *testing.T, sp Sprite)
	}{
		{
			name:  "scale halfway",
			anim:  ScaleBy{Factor: 3, Duration: 1},
			after: 0.5,
			check: func(t *testing.T, sp Sprite) { assert.InDelta(t, 2.0, sp.ScaleX, 1e-9) },
		},
		{
			name:  "fade complete",
			anim:  FadeOut(1),
			after: 2,
			check: func(t *testing.T, sp Sprite) { assert.InDelta(t, 0.0, sp.Opacity, 1e-9) },
		},
		{
			name:  "rotate",
			anim:  RotateTo{Angle: 1, Duration: 2},
			after: 1,
			check: func(t *testing.T, sp Sprite) { assert.InDelta(t, 0.5, sp.Rotation, 1e-9) },
		},
		{
			name:  "sequence carries leftover time",
			anim:  Sequence{ScaleBy{Factor: 2, Duration: 0.5}, FadeOut(1)},
			after: 1,
			check: func(t *testing.T, sp Sprite) {
				assert.InDelta(t, 2.0, sp.ScaleX, 1e-9)
				assert.InDelta(t, 0.5, sp.Opacity, 1e-9)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			id := s.AddSprite("spark")
			require.True(t, s.Run(id, tt.anim))
			s.Advance(tt.after)
			sp, _ := s.Get(id)
			tt.check(t, sp)
		})
	}
}

func TestZeroDurationAppliesImmediately(t *testing.T) {
	s := New()
	id := s.AddSprite("spark")
	s.Run(id, Sequence{ScaleBy{Factor: 0.2}, FadeOut(1)})

	sp, _ := s.Get(id)
	assert.InDelta(t, 0.2, sp.ScaleX, 1e-9)
	assert.True(t, s.Animating(id))

	s.Advance(1)
	assert.False(t, s.Animating(id))
}
