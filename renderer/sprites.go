// Package renderer draws the scene with raylib.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swingyships/camera"
	"github.com/pthm-cable/swingyships/config"
	"github.com/pthm-cable/swingyships/scene"
)

// SpriteRenderer draws every scene sprite through the camera.
type SpriteRenderer struct {
	textures *TextureCache
	drawn    int
}

// NewSpriteRenderer creates a sprite renderer.
func NewSpriteRenderer() *SpriteRenderer {
	return &SpriteRenderer{textures: NewTextureCache()}
}

// Draw renders all visible sprites in creation order.
func (r *SpriteRenderer) Draw(sc *scene.Scene, cam *camera.Camera) {
	r.drawn = 0
	sc.Each(func(_ scene.SpriteID, sp scene.Sprite) {
		if sp.Opacity <= 0 {
			return
		}
		radius := float32(TextureSize/2) * float32(math.Max(sp.ScaleX, sp.ScaleY)) / cam.PixelsPerUnit
		if !cam.IsVisible(float32(sp.Position.X), float32(sp.Position.Y), radius) {
			return
		}

		tex := r.textures.Get(sp.Texture)
		dest, origin, rotation := Placement(sp, float32(tex.Width), float32(tex.Height), cam)
		src := rl.NewRectangle(0, 0, float32(tex.Width), float32(tex.Height))
		rl.DrawTexturePro(tex, src, dest, origin, rotation, rl.Fade(rl.White, float32(sp.Opacity)))
		r.drawn++
	})
}

// Drawn returns how many sprites the last Draw rendered.
func (r *SpriteRenderer) Drawn() int {
	return r.drawn
}

// Unload frees textures.
func (r *SpriteRenderer) Unload() {
	r.textures.Unload()
}

// Placement computes the destination rectangle, origin and rotation in
// degrees for a sprite. Rotation is negated because screen Y points down.
func Placement(sp scene.Sprite, texW, texH float32, cam *camera.Camera) (dest rl.Rectangle, origin rl.Vector2, rotation float32) {
	sx, sy := cam.WorldToScreen(float32(sp.Position.X), float32(sp.Position.Y))
	w := texW * float32(sp.ScaleX) * cam.ZoomScale()
	h := texH * float32(sp.ScaleY) * cam.ZoomScale()
	dest = rl.NewRectangle(sx, sy, w, h)
	origin = rl.NewVector2(w/2, h/2)
	rotation = -float32(sp.Rotation * 180 / math.Pi)
	return dest, origin, rotation
}

// DrawArena outlines the arena walls.
func DrawArena(arena config.ArenaConfig, cam *camera.Camera) {
	x0, y0 := cam.WorldToScreen(float32(arena.MinX), float32(arena.MaxY))
	x1, y1 := cam.WorldToScreen(float32(arena.MaxX), float32(arena.MinY))
	rec := rl.NewRectangle(x0, y0, x1-x0, y1-y0)
	rl.DrawRectangleLinesEx(rec, 2, rl.Color{R: 120, G: 140, B: 170, A: 255})
}
