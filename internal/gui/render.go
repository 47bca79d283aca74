package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/shapeview/internal/camera"
	"github.com/san-kum/shapeview/internal/frame"
)

// Renderer draws descriptors with raylib. It must be called between
// BeginDrawing and EndDrawing.
type Renderer struct {
	viewport camera.Rect
}

func (r *Renderer) Render(d frame.Descriptor) {
	rl.ClearBackground(toColor(d.Background))
	if !r.viewport.Valid() {
		return
	}

	vp := r.viewport
	rl.BeginScissorMode(int32(vp.Min.X()), int32(vp.Min.Y()), int32(vp.Size.X()), int32(vp.Size.Y()))
	defer rl.EndScissorMode()

	for _, s := range d.Visible(vp) {
		center := d.Camera.ToScreen(s.Position, vp)
		col := toColor(s.Color)
		switch s.Kind {
		case frame.KindCircle:
			rl.DrawCircleV(rl.NewVector2(center.X(), center.Y()), d.Camera.Scale(s.Radius, vp), col)
		case frame.KindRect:
			hw := d.Camera.Scale(s.HalfExtents.X(), vp)
			hh := d.Camera.Scale(s.HalfExtents.Y(), vp)
			rl.DrawRectangleV(rl.NewVector2(center.X()-hw, center.Y()-hh), rl.NewVector2(2*hw, 2*hh), col)
		}
	}
}

func toColor(c colorful.Color) rl.Color {
	r, g, b := c.Clamped().RGB255()
	return rl.NewColor(r, g, b, 255)
}
