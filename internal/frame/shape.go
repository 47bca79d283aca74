package frame

import (
	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
)

type Kind uint8

const (
	KindCircle Kind = iota
	KindRect
)

func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindRect:
		return "rect"
	}
	return "unknown"
}

// Shape is one primitive in world space. Circles use Radius, rectangles use
// HalfExtents around Position.
type Shape struct {
	Kind        Kind
	Position    mgl32.Vec2
	Radius      float32
	HalfExtents mgl32.Vec2
	Color       colorful.Color
}

func Circle(pos mgl32.Vec2, radius float32, c colorful.Color) Shape {
	return Shape{Kind: KindCircle, Position: pos, Radius: radius, Color: c}
}

func Rect(pos, halfExtents mgl32.Vec2, c colorful.Color) Shape {
	return Shape{Kind: KindRect, Position: pos, HalfExtents: halfExtents, Color: c}
}

// Bounds returns the world-space min and max corners.
func (s Shape) Bounds() (mgl32.Vec2, mgl32.Vec2) {
	ext := s.HalfExtents
	if s.Kind == KindCircle {
		ext = mgl32.Vec2{s.Radius, s.Radius}
	}
	return s.Position.Sub(ext), s.Position.Add(ext)
}

// Contains reports whether a world point lies inside the shape.
func (s Shape) Contains(p mgl32.Vec2) bool {
	d := p.Sub(s.Position)
	if s.Kind == KindCircle {
		return d.Dot(d) <= s.Radius*s.Radius
	}
	return abs(d.X()) <= s.HalfExtents.X() && abs(d.Y()) <= s.HalfExtents.Y()
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
