package renderer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/swingyships/camera"
	"github.com/pthm-cable/swingyships/scene"
)

func TestStyleFor(t *testing.T) {
	for _, name := range []string{"ship", "chaser", "default", "spark"} {
		_, ok := StyleFor(name)
		assert.True(t, ok, name)
	}
	s, ok := StyleFor("nope")
	assert.False(t, ok)
	assert.Equal(t, fallbackStyle, s)
}

func TestPlacement(t *testing.T) {
	cam := camera.New(1000, 1000, 10, 50, -50)
	sp := scene.Sprite{
		Position: r2.Vec{X: 51, Y: -49},
		Rotation: math.Pi / 2,
		ScaleX:   0.5,
		ScaleY:   0.5,
		Opacity:  1,
	}

	dest, origin, rot := Placement(sp, TextureSize, TextureSize, cam)
	assert.InDelta(t, 510, dest.X, 1e-3)
	assert.InDelta(t, 490, dest.Y, 1e-3)
	assert.InDelta(t, 72, dest.Width, 1e-3)
	assert.InDelta(t, 36, origin.X, 1e-3)
	assert.InDelta(t, -90, rot, 1e-3)

	cam.SetZoom(2)
	dest, _, _ = Placement(sp, TextureSize, TextureSize, cam)
	assert.InDelta(t, 144, dest.Width, 1e-3)
}
