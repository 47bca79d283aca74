package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Rect is a screen-space rectangle. Min is the top-left corner; screen Y grows
// downward.
type Rect struct {
	Min  mgl32.Vec2
	Size mgl32.Vec2
}

func NewRect(x, y, w, h float32) Rect {
	return Rect{Min: mgl32.Vec2{x, y}, Size: mgl32.Vec2{w, h}}
}

// Valid reports whether the rectangle has positive, finite width and height.
func (r Rect) Valid() bool {
	return positiveFinite(r.Size.X()) && positiveFinite(r.Size.Y())
}

// Aspect is width / height. Callers check Valid first.
func (r Rect) Aspect() float32 {
	return r.Size.X() / r.Size.Y()
}

func (r Rect) Center() mgl32.Vec2 {
	return r.Min.Add(r.Size.Mul(0.5))
}

func (r Rect) Contains(p mgl32.Vec2) bool {
	return p.X() >= r.Min.X() && p.X() < r.Min.X()+r.Size.X() &&
		p.Y() >= r.Min.Y() && p.Y() < r.Min.Y()+r.Size.Y()
}

func positiveFinite(v float32) bool {
	f := float64(v)
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}
