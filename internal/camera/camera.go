package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// ZoomStep is the per-scroll-tick zoom factor. Scrolling down multiplies
	// by it, scrolling up divides by it.
	ZoomStep float32 = 0.9

	DefaultMinZoom float32 = 1e-6
	DefaultMaxZoom float32 = 1e6
)

// Camera is the 2D view: the world-space point at the viewport center and the
// world-to-clip scale.
type Camera struct {
	Position mgl32.Vec2
	Zoom     float32

	minZoom, maxZoom float32
}

// New returns a camera with explicit initial values. Zoom is clamped into the
// default limits.
func New(position mgl32.Vec2, zoom float32) *Camera {
	c := &Camera{Position: position, minZoom: DefaultMinZoom, maxZoom: DefaultMaxZoom}
	c.Zoom = c.clampZoom(zoom)
	return c
}

// SetZoomLimits changes the zoom clamp. Invalid limits leave the current ones
// in place.
func (c *Camera) SetZoomLimits(lo, hi float32) bool {
	if !positiveFinite(lo) || !positiveFinite(hi) || lo > hi {
		return false
	}
	c.minZoom, c.maxZoom = lo, hi
	c.Zoom = c.clampZoom(c.Zoom)
	return true
}

func (c *Camera) ZoomLimits() (float32, float32) { return c.minZoom, c.maxZoom }

// SetZoom sets the zoom, clamped into the current limits. NaN becomes the
// minimum.
func (c *Camera) SetZoom(z float32) {
	c.Zoom = c.clampZoom(z)
}

// Pan moves the camera by a screen-space drag delta so the world follows the
// pointer: dragging right moves the view left, dragging down moves it up.
// It is a no-op for a degenerate viewport.
func (c *Camera) Pan(delta, viewport mgl32.Vec2) bool {
	if !positiveFinite(viewport.X()) || !positiveFinite(viewport.Y()) {
		return false
	}
	aspect := viewport.X() / viewport.Y()
	c.Position[0] -= delta.X() / c.Zoom / viewport.X() * 2 * aspect
	c.Position[1] += delta.Y() / c.Zoom / viewport.Y() * 2
	return true
}

// ZoomBy applies scroll steps: positive zooms in, negative zooms out.
func (c *Camera) ZoomBy(steps int) {
	if steps == 0 {
		return
	}
	factor := float32(math.Pow(float64(ZoomStep), float64(-steps)))
	c.Zoom = c.clampZoom(c.Zoom * factor)
}

// Scroll applies one zoom step in the direction of dy. Scroll up (dy > 0)
// divides by ZoomStep, scroll down multiplies by it.
func (c *Camera) Scroll(dy float32) {
	switch {
	case dy > 0:
		c.ZoomBy(1)
	case dy < 0:
		c.ZoomBy(-1)
	}
}

// ScreenToWorld resolves a screen point against the viewport. A degenerate
// viewport maps every point to the camera position.
func (c *Camera) ScreenToWorld(p mgl32.Vec2, viewport Rect) mgl32.Vec2 {
	if !viewport.Valid() {
		return c.Position
	}
	return ClipToWorld(ScreenToClip(p, viewport), c.Position, c.Zoom, viewport.Aspect())
}

// WorldToScreen is the inverse of ScreenToWorld for a fixed camera.
func (c *Camera) WorldToScreen(w mgl32.Vec2, viewport Rect) mgl32.Vec2 {
	if !viewport.Valid() {
		return viewport.Min
	}
	return ClipToScreen(WorldToClip(w, c.Position, c.Zoom, viewport.Aspect()), viewport)
}

// VisibleWorld returns the world-space bounds of the viewport as min and max
// corners.
func (c *Camera) VisibleWorld(viewport Rect) (mgl32.Vec2, mgl32.Vec2) {
	if !viewport.Valid() {
		return c.Position, c.Position
	}
	aspect := viewport.Aspect()
	lo := ClipToWorld(mgl32.Vec2{-1, -1}, c.Position, c.Zoom, aspect)
	hi := ClipToWorld(mgl32.Vec2{1, 1}, c.Position, c.Zoom, aspect)
	return lo, hi
}

func (c *Camera) clampZoom(z float32) float32 {
	if math.IsNaN(float64(z)) {
		return c.minZoom
	}
	return mgl32.Clamp(z, c.minZoom, c.maxZoom)
}
