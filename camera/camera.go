// Package camera provides a 2D camera system for viewport control.
package camera

// Camera maps world units (Y up) to screen pixels (Y down).
// Supports pan, zoom and following a target.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// Zoom level (1.0 = PixelsPerUnit pixels per world unit)
	Zoom float32

	// PixelsPerUnit is the base world-to-pixel scale
	PixelsPerUnit float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Home position used by Reset
	HomeX, HomeY float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera centered on (homeX, homeY) with 1:1 zoom.
func New(viewportW, viewportH, ppu, homeX, homeY float32) *Camera {
	if ppu <= 0 {
		ppu = 1
	}
	return &Camera{
		X:             homeX,
		Y:             homeY,
		Zoom:          1.0,
		PixelsPerUnit: ppu,
		ViewportW:     viewportW,
		ViewportH:     viewportH,
		HomeX:         homeX,
		HomeY:         homeY,
		MinZoom:       0.25,
		MaxZoom:       4.0,
	}
}

// scale returns pixels per world unit at the current zoom.
func (c *Camera) scale() float32 {
	return c.PixelsPerUnit * c.Zoom
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	s := c.scale()
	sx = c.ViewportW/2 + (wx-c.X)*s
	sy = c.ViewportH/2 - (wy-c.Y)*s
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	s := c.scale()
	wx = c.X + (sx-c.ViewportW/2)/s
	wy = c.Y - (sy-c.ViewportH/2)/s
	return wx, wy
}

// WorldLength converts a world distance to pixels.
func (c *Camera) WorldLength(d float32) float32 {
	return d * c.scale()
}

// ZoomScale returns the factor applied to texture-sized sprites.
func (c *Camera) ZoomScale() float32 {
	return c.Zoom
}

// IsVisible returns true if a circle at (wx, wy) with given world radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	return wx+radius >= minX && wx-radius <= maxX &&
		wy+radius >= minY && wy-radius <= maxY
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	s := c.scale()
	c.X += dx / s
	c.Y -= dy / s
}

// Follow moves the camera a fraction of the way toward a world point.
// A rate of 1 snaps to the target.
func (c *Camera) Follow(wx, wy, rate float32) {
	rate = clamp(rate, 0, 1)
	c.X += (wx - c.X) * rate
	c.Y += (wy - c.Y) * rate
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the home position and zoom.
func (c *Camera) Reset() {
	c.X = c.HomeX
	c.Y = c.HomeY
	c.Zoom = 1.0
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	s := c.scale()
	halfW := c.ViewportW / (2 * s)
	halfH := c.ViewportH / (2 * s)
	return c.X - halfW, c.Y - halfH, c.X + halfW, c.Y + halfH
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
