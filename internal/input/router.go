package input

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/shapeview/internal/camera"
)

// Hooks receives resolved world positions. Every method may be a no-op.
type Hooks interface {
	// Pick fires every frame the primary button is dragged.
	Pick(world mgl32.Vec2)
	// Release fires once, on the first frame after a primary drag ends.
	Release()
	// Hover fires while the pointer rests over the viewport without a drag.
	Hover(world mgl32.Vec2)
}

type NopHooks struct{}

func (NopHooks) Pick(mgl32.Vec2)  {}
func (NopHooks) Release()         {}
func (NopHooks) Hover(mgl32.Vec2) {}

// Result is what one frame of routing did.
type Result struct {
	Pick  Pos
	Hover Pos
	// Released is true on the frame a primary drag ends.
	Released bool
	// Dragging mirrors the primary drag state after this frame.
	Dragging bool
	Panned   bool
	Zoomed   bool
	// Skipped is true when the viewport was degenerate and nothing ran.
	Skipped bool
}

// Router turns per-frame pointer state into camera changes and hook calls.
type Router struct {
	hooks    Hooks
	dragging bool
}

func NewRouter(hooks Hooks) *Router {
	if hooks == nil {
		hooks = NopHooks{}
	}
	return &Router{hooks: hooks}
}

// Route applies one frame of pointer state to cam.
func (r *Router) Route(cam *camera.Camera, p PointerState) Result {
	if !p.Viewport.Valid() {
		return Result{Skipped: true, Dragging: r.dragging}
	}

	var res Result
	vp := p.Viewport

	if p.Dragging(Secondary) {
		res.Panned = cam.Pan(p.Drags[Secondary].Delta, vp.Size)
	}

	if p.Dragging(Primary) {
		if p.Interact.Valid {
			world := cam.ScreenToWorld(p.Interact.Vec2, vp)
			res.Pick = Some(world)
			r.hooks.Pick(world)
		}
		r.dragging = true
	} else {
		if r.dragging {
			res.Released = true
			r.hooks.Release()
		}
		r.dragging = false
	}
	res.Dragging = r.dragging

	if p.Hovered() {
		if !p.anyDrag() {
			world := cam.ScreenToWorld(p.Hover.Vec2, vp)
			res.Hover = Some(world)
			r.hooks.Hover(world)
		}
		if p.ScrollY != 0 {
			cam.Scroll(p.ScrollY)
			res.Zoomed = true
		}
	}

	return res
}
