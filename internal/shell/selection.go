package shell

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/shapeview/internal/frame"
	"github.com/san-kum/shapeview/internal/input"
)

// Selection is the default pick and hover consumer. It hit-tests the scene
// and remembers the last world positions for display.
type Selection struct {
	scene frame.Scene

	Picked   int
	Hovered  int
	PickPos  input.Pos
	HoverPos input.Pos
}

func NewSelection(scene frame.Scene) *Selection {
	return &Selection{scene: scene, Picked: -1, Hovered: -1}
}

func (s *Selection) Pick(w mgl32.Vec2) {
	s.PickPos = input.Some(w)
	s.Picked = frame.HitTest(s.scene.Shapes(), w)
}

func (s *Selection) Release() { s.PickPos = input.Pos{} }

func (s *Selection) Hover(w mgl32.Vec2) {
	s.HoverPos = input.Some(w)
	s.Hovered = frame.HitTest(s.scene.Shapes(), w)
}
