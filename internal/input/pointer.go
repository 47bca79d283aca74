package input

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/shapeview/internal/camera"
)

type Button int

const (
	Primary Button = iota
	Secondary
	Middle
	NumButtons
)

func (b Button) String() string {
	switch b {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	case Middle:
		return "middle"
	}
	return "unknown"
}

// Pos is an optional position. The zero value is "no position".
type Pos struct {
	mgl32.Vec2
	Valid bool
}

func At(x, y float32) Pos { return Pos{Vec2: mgl32.Vec2{x, y}, Valid: true} }

func Some(v mgl32.Vec2) Pos { return Pos{Vec2: v, Valid: true} }

// Drag is one button's drag state for a frame.
type Drag struct {
	Active bool
	Delta  mgl32.Vec2
}

// PointerState is everything the host knows about the pointer for one frame.
type PointerState struct {
	Viewport camera.Rect
	Drags    [NumButtons]Drag
	// Interact is where the active drag is happening.
	Interact Pos
	Hover    Pos
	// ScrollY is the accumulated wheel delta for the frame; positive is up.
	ScrollY float32
}

// Dragging reports whether b is being dragged this frame.
func (p PointerState) Dragging(b Button) bool {
	return b >= 0 && b < NumButtons && p.Drags[b].Active
}

// SetDrag records a drag for b.
func (p *PointerState) SetDrag(b Button, delta mgl32.Vec2) {
	if b < 0 || b >= NumButtons {
		return
	}
	p.Drags[b] = Drag{Active: true, Delta: delta}
}

// Hovered reports whether the pointer is over the viewport.
func (p PointerState) Hovered() bool {
	return p.Hover.Valid && p.Viewport.Contains(p.Hover.Vec2)
}

func (p PointerState) anyDrag() bool {
	for _, d := range p.Drags {
		if d.Active {
			return true
		}
	}
	return false
}

// PressOrigins remembers, per button, whether the current press began inside
// the viewport. Only those presses count as viewport drags, and they stay
// drags after the pointer leaves the viewport until the button is released.
type PressOrigins struct {
	held   [NumButtons]bool
	inside [NumButtons]bool
}

// Track updates b's press state for one frame and reports whether it is a
// viewport drag. at is the press position; it is only read on the first
// frame the button is seen down.
func (o *PressOrigins) Track(b Button, down bool, at mgl32.Vec2, viewport camera.Rect) bool {
	if b < 0 || b >= NumButtons {
		return false
	}
	if !down {
		o.Release(b)
		return false
	}
	if !o.held[b] {
		o.held[b] = true
		o.inside[b] = viewport.Contains(at)
	}
	return o.inside[b]
}

// Release forgets b's press, so the next press is judged afresh. Hosts that
// see release events between frames call it directly.
func (o *PressOrigins) Release(b Button) {
	if b < 0 || b >= NumButtons {
		return
	}
	o.held[b], o.inside[b] = false, false
}
