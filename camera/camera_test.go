package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNew(t *testing.T) {
	cam := New(1000, 1000, 10, 50, -50)

	if cam.X != 50 || cam.Y != -50 {
		t.Errorf("expected camera at (50, -50), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1000, 1000, 10, 50, -50)

	sx, sy := cam.WorldToScreen(50, -50)
	if !near(sx, 500) || !near(sy, 500) {
		t.Errorf("expected screen center (500, 500), got (%f, %f)", sx, sy)
	}
}

func TestWorldToScreenFlipsY(t *testing.T) {
	cam := New(1000, 1000, 10, 0, 0)

	// One unit up in the world is ten pixels up on screen
	_, sy := cam.WorldToScreen(0, 1)
	if !near(sy, 490) {
		t.Errorf("expected y=490, got %f", sy)
	}
	sx, _ := cam.WorldToScreen(1, 0)
	if !near(sx, 510) {
		t.Errorf("expected x=510, got %f", sx)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, 10, 50, -50)
	cam.SetZoom(1.7)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},  // center
		{100, 100},  // top-left
		{1200, 600}, // near bottom-right
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestZoomClamped(t *testing.T) {
	cam := New(1000, 1000, 10, 0, 0)

	cam.ZoomBy(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MaxZoom, cam.Zoom)
	}
	cam.ZoomBy(0.0001)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MinZoom, cam.Zoom)
	}
}

func TestPanMovesOppositeToScreenY(t *testing.T) {
	cam := New(1000, 1000, 10, 0, 0)

	cam.Pan(100, 100)
	if !near(cam.X, 10) || !near(cam.Y, -10) {
		t.Errorf("expected (10, -10), got (%f, %f)", cam.X, cam.Y)
	}

	cam.Reset()
	if cam.X != 0 || cam.Y != 0 || cam.Zoom != 1 {
		t.Errorf("reset failed: (%f, %f) zoom %f", cam.X, cam.Y, cam.Zoom)
	}
}

func TestFollow(t *testing.T) {
	cam := New(1000, 1000, 10, 0, 0)

	cam.Follow(10, 20, 0.5)
	if !near(cam.X, 5) || !near(cam.Y, 10) {
		t.Errorf("expected (5, 10), got (%f, %f)", cam.X, cam.Y)
	}
	cam.Follow(10, 20, 2)
	if !near(cam.X, 10) || !near(cam.Y, 20) {
		t.Errorf("expected snap to (10, 20), got (%f, %f)", cam.X, cam.Y)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1000, 1000, 10, 0, 0)

	// Visible area is 100 units wide
	if !cam.IsVisible(0, 0, 1) {
		t.Error("center should be visible")
	}
	if !cam.IsVisible(50.5, 0, 1) {
		t.Error("circle overlapping the edge should be visible")
	}
	if cam.IsVisible(60, 0, 1) {
		t.Error("circle past the edge should not be visible")
	}
}
