package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/shapeview/internal/camera"
	"github.com/san-kum/shapeview/internal/input"
)

// pointerTracker folds the mouse events that arrive between two frames into
// one input.PointerState. Positions are canvas sub-pixels.
type pointerTracker struct {
	originRow int
	down      [input.NumButtons]bool
	pressedAt [input.NumButtons]mgl32.Vec2
	origins   input.PressOrigins
	moved     [input.NumButtons]mgl32.Vec2
	last      input.Pos
	hover     input.Pos
	scroll    float32
}

func buttonOf(b tea.MouseButton) (input.Button, bool) {
	switch b {
	case tea.MouseButtonLeft:
		return input.Primary, true
	case tea.MouseButtonRight:
		return input.Secondary, true
	case tea.MouseButtonMiddle:
		return input.Middle, true
	}
	return 0, false
}

// toSub maps a terminal cell to the center of its sub-pixel block.
func (t *pointerTracker) toSub(x, y int) mgl32.Vec2 {
	return mgl32.Vec2{float32(x*2 + 1), float32((y-t.originRow)*4 + 2)}
}

func (t *pointerTracker) handle(msg tea.MouseMsg) {
	p := t.toSub(msg.X, msg.Y)

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		t.scroll++
		t.hover = input.Some(p)
		return
	case msg.Button == tea.MouseButtonWheelDown:
		t.scroll--
		t.hover = input.Some(p)
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if b, ok := buttonOf(msg.Button); ok {
			t.down[b] = true
			t.pressedAt[b] = p
		}
	case tea.MouseActionRelease:
		// Terminals often report releases without the button.
		if b, ok := buttonOf(msg.Button); ok {
			t.down[b] = false
			t.origins.Release(b)
		} else {
			t.down = [input.NumButtons]bool{}
			for btn := range input.NumButtons {
				t.origins.Release(btn)
			}
		}
	case tea.MouseActionMotion:
		if t.last.Valid {
			d := p.Sub(t.last.Vec2)
			for b := range t.down {
				if t.down[b] {
					t.moved[b] = t.moved[b].Add(d)
				}
			}
		}
	}

	t.last = input.Some(p)
	t.hover = input.Some(p)
}

// frame returns the pointer state for this frame and resets per-frame deltas.
// Presses that began outside vp never become drags.
func (t *pointerTracker) frame(vp camera.Rect) input.PointerState {
	ps := input.PointerState{
		Viewport: vp,
		Hover:    t.hover,
		ScrollY:  t.scroll,
	}
	for b := range t.down {
		if t.origins.Track(input.Button(b), t.down[b], t.pressedAt[b], vp) {
			ps.SetDrag(input.Button(b), t.moved[b])
			ps.Interact = t.last
		}
	}
	t.moved = [input.NumButtons]mgl32.Vec2{}
	t.scroll = 0
	return ps
}
