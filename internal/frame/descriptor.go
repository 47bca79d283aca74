package frame

import (
	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/shapeview/internal/camera"
)

// CameraDesc is the camera as the renderer sees it.
type CameraDesc struct {
	Position mgl32.Vec2
	Aspect   float32
	Zoom     float32
}

// ToClip maps a world point to clip space.
func (c CameraDesc) ToClip(w mgl32.Vec2) mgl32.Vec2 {
	return camera.WorldToClip(w, c.Position, c.Zoom, c.Aspect)
}

// ToScreen maps a world point into the rectangle the descriptor is drawn in.
func (c CameraDesc) ToScreen(w mgl32.Vec2, rect camera.Rect) mgl32.Vec2 {
	return camera.ClipToScreen(c.ToClip(w), rect)
}

// Scale converts a world length to screen pixels for rect.
func (c CameraDesc) Scale(length float32, rect camera.Rect) float32 {
	return length * camera.PixelsPerUnit(c.Zoom, rect)
}

// Descriptor is everything a renderer needs for one frame.
type Descriptor struct {
	Camera     CameraDesc
	Background colorful.Color
	Shapes     []Shape
}

// Visible returns the shapes whose bounds overlap the part of the world
// shown in rect, in draw order.
func (d Descriptor) Visible(rect camera.Rect) []Shape {
	lo, hi := camera.New(d.Camera.Position, d.Camera.Zoom).VisibleWorld(rect)
	out := make([]Shape, 0, len(d.Shapes))
	for _, s := range d.Shapes {
		slo, shi := s.Bounds()
		if shi.X() < lo.X() || slo.X() > hi.X() || shi.Y() < lo.Y() || slo.Y() > hi.Y() {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Renderer draws a descriptor. It is called once per frame and must not keep
// the descriptor past the call.
type Renderer interface {
	Render(d Descriptor)
}

type RendererFunc func(d Descriptor)

func (f RendererFunc) Render(d Descriptor) { f(d) }

// Assemble packages camera state and the frame's shapes. The shape slice is
// copied so the renderer owns its value.
func Assemble(cam camera.Camera, aspect float32, background colorful.Color, shapes []Shape) Descriptor {
	out := make([]Shape, len(shapes))
	copy(out, shapes)
	return Descriptor{
		Camera: CameraDesc{
			Position: cam.Position,
			Aspect:   aspect,
			Zoom:     cam.Zoom,
		},
		Background: background,
		Shapes:     out,
	}
}
