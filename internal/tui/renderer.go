package tui

import (
	"github.com/san-kum/shapeview/internal/camera"
	"github.com/san-kum/shapeview/internal/frame"
)

// CanvasRenderer rasterizes render descriptors onto a braille canvas. The
// viewport it reports is in canvas sub-pixels.
type CanvasRenderer struct {
	canvas *Canvas
	out    string
	plain  bool
}

func NewCanvasRenderer(w, h int) *CanvasRenderer {
	return &CanvasRenderer{canvas: NewCanvas(w, h)}
}

// Resize sets the canvas size in terminal cells.
func (r *CanvasRenderer) Resize(w, h int) {
	if w == r.canvas.Width && h == r.canvas.Height {
		return
	}
	r.canvas = NewCanvas(w, h)
}

func (r *CanvasRenderer) Canvas() *Canvas { return r.canvas }

// Viewport is the canvas rectangle in sub-pixel coordinates.
func (r *CanvasRenderer) Viewport() camera.Rect {
	return camera.NewRect(0, 0, float32(r.canvas.SubWidth()), float32(r.canvas.SubHeight()))
}

func (r *CanvasRenderer) Render(d frame.Descriptor) {
	r.canvas.Clear()
	vp := r.Viewport()

	for _, s := range d.Visible(vp) {
		center := d.Camera.ToScreen(s.Position, vp)
		switch s.Kind {
		case frame.KindCircle:
			r.canvas.FillCircle(center.X(), center.Y(), d.Camera.Scale(s.Radius, vp), s.Color)
		case frame.KindRect:
			hw := d.Camera.Scale(s.HalfExtents.X(), vp)
			hh := d.Camera.Scale(s.HalfExtents.Y(), vp)
			r.canvas.FillRect(center.X()-hw, center.Y()-hh, center.X()+hw, center.Y()+hh, s.Color)
		}
	}

	if r.plain {
		r.out = r.canvas.String()
		return
	}
	r.out = r.canvas.Styled(d.Background)
}

// View returns the last rendered frame.
func (r *CanvasRenderer) View() string { return r.out }
