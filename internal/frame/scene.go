package frame

import (
	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Scene produces the shape list for a frame. Implementations rebuild it on
// every call; nothing is diffed against the previous frame.
type Scene interface {
	Shapes() []Shape
}

// StaticScene replays a fixed list.
type StaticScene struct {
	shapes []Shape
}

func NewStaticScene(shapes []Shape) *StaticScene {
	s := make([]Shape, len(shapes))
	copy(s, shapes)
	return &StaticScene{shapes: s}
}

func (s *StaticScene) Shapes() []Shape {
	out := make([]Shape, len(s.shapes))
	copy(out, s.shapes)
	return out
}

// Placeholder is the default scene: a red unit circle at the origin.
func Placeholder() *StaticScene {
	return NewStaticScene([]Shape{
		Circle(mgl32.Vec2{0, 0}, 1.0, colorful.Color{R: 1, G: 0, B: 0}),
	})
}

// HitTest returns the index of the topmost shape containing p, or -1.
func HitTest(shapes []Shape, p mgl32.Vec2) int {
	for i := len(shapes) - 1; i >= 0; i-- {
		if shapes[i].Contains(p) {
			return i
		}
	}
	return -1
}
