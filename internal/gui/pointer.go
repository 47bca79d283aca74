package gui

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/shapeview/internal/camera"
	"github.com/san-kum/shapeview/internal/input"
)

// pointerSample is the raw mouse state raylib reports for one frame.
type pointerSample struct {
	Viewport camera.Rect
	Pos      mgl32.Vec2
	Delta    mgl32.Vec2
	Down     [input.NumButtons]bool
	OnScreen bool
	Wheel    float32
}

// samplePointer converts a raw sample. Held buttons only drag when origins
// saw their press land inside the viewport.
func samplePointer(s pointerSample, origins *input.PressOrigins) input.PointerState {
	ps := input.PointerState{Viewport: s.Viewport, ScrollY: s.Wheel}
	if s.OnScreen {
		ps.Hover = input.Some(s.Pos)
	}
	for b, down := range s.Down {
		if origins.Track(input.Button(b), down, s.Pos, s.Viewport) {
			ps.SetDrag(input.Button(b), s.Delta)
			ps.Interact = input.Some(s.Pos)
		}
	}
	return ps
}
