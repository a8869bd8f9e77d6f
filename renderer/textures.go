package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// TextureSize is the pixel size of every generated texture. At scale 1 a
// circle texture covers a 7.2 unit radius at 10 pixels per unit.
const TextureSize = 144

// Shape selects how a texture is generated.
type Shape uint8

const (
	ShapeCircle Shape = iota
	ShapeSquare
	ShapeRing
)

// Style describes a generated texture.
type Style struct {
	Shape   Shape
	Fill    rl.Color
	Outline rl.Color
}

// styles maps texture names to their look. Unknown names use fallbackStyle.
var styles = map[string]Style{
	"ship":    {Shape: ShapeCircle, Fill: rl.Color{R: 80, G: 170, B: 255, A: 255}, Outline: rl.White},
	"chaser":  {Shape: ShapeCircle, Fill: rl.Color{R: 230, G: 70, B: 60, A: 255}, Outline: rl.Color{R: 120, G: 20, B: 20, A: 255}},
	"default": {Shape: ShapeCircle, Fill: rl.Color{R: 190, G: 190, B: 200, A: 255}, Outline: rl.Color{R: 90, G: 90, B: 100, A: 255}},
	"spark":   {Shape: ShapeRing, Fill: rl.Color{R: 255, G: 220, B: 120, A: 255}, Outline: rl.Color{R: 255, G: 150, B: 50, A: 255}},
}

var fallbackStyle = Style{Shape: ShapeSquare, Fill: rl.Magenta, Outline: rl.Black}

// StyleFor returns the style for a texture name and whether it is known.
func StyleFor(name string) (Style, bool) {
	s, ok := styles[name]
	if !ok {
		return fallbackStyle, false
	}
	return s, true
}

// TextureCache generates textures on first use. Must be used after the
// raylib window is created.
type TextureCache struct {
	textures map[string]rl.Texture2D
}

// NewTextureCache creates an empty cache.
func NewTextureCache() *TextureCache {
	return &TextureCache{textures: make(map[string]rl.Texture2D)}
}

// Get returns the texture for name, generating it if needed.
func (c *TextureCache) Get(name string) rl.Texture2D {
	if tex, ok := c.textures[name]; ok {
		return tex
	}
	style, _ := StyleFor(name)
	img := generate(style)
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	c.textures[name] = tex
	return tex
}

// Unload frees every generated texture.
func (c *TextureCache) Unload() {
	for name, tex := range c.textures {
		rl.UnloadTexture(tex)
		delete(c.textures, name)
	}
}

func generate(s Style) *rl.Image {
	img := rl.GenImageColor(TextureSize, TextureSize, rl.Blank)
	const half = TextureSize / 2
	const border = 8

	switch s.Shape {
	case ShapeCircle:
		rl.ImageDrawCircle(img, half, half, half-1, s.Outline)
		rl.ImageDrawCircle(img, half, half, half-border, s.Fill)
	case ShapeRing:
		rl.ImageDrawCircle(img, half, half, half-1, s.Outline)
		rl.ImageDrawCircle(img, half, half, half-border, s.Fill)
		rl.ImageDrawCircle(img, half, half, half-3*border, rl.Blank)
	default:
		rl.ImageDrawRectangle(img, 0, 0, TextureSize, TextureSize, s.Outline)
		rl.ImageDrawRectangle(img, border, border, TextureSize-2*border, TextureSize-2*border, s.Fill)
	}
	return img
}
