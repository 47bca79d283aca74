package camera

import "github.com/go-gl/mathgl/mgl32"

// Clip space spans [-1,1] on both axes with Y up. The conversions below are
// the single definition of the screen/clip/world mapping; Camera and the
// render descriptor both go through them.

// ScreenToClip maps a screen point inside rect to clip coordinates.
func ScreenToClip(p mgl32.Vec2, rect Rect) mgl32.Vec2 {
	rel := p.Sub(rect.Min)
	return mgl32.Vec2{
		rel.X()/rect.Size.X()*2 - 1,
		-(rel.Y()/rect.Size.Y()*2 - 1),
	}
}

// ClipToScreen is the inverse of ScreenToClip.
func ClipToScreen(c mgl32.Vec2, rect Rect) mgl32.Vec2 {
	return mgl32.Vec2{
		rect.Min.X() + (c.X()+1)/2*rect.Size.X(),
		rect.Min.Y() + (1-c.Y())/2*rect.Size.Y(),
	}
}

// ClipToWorld applies the camera: x is widened by the aspect ratio, both axes
// are divided by zoom and offset by the camera position.
func ClipToWorld(c, position mgl32.Vec2, zoom, aspect float32) mgl32.Vec2 {
	return mgl32.Vec2{
		c.X()*aspect/zoom + position.X(),
		c.Y()/zoom + position.Y(),
	}
}

// WorldToClip is the inverse of ClipToWorld.
func WorldToClip(w, position mgl32.Vec2, zoom, aspect float32) mgl32.Vec2 {
	d := w.Sub(position)
	return mgl32.Vec2{
		d.X() * zoom / aspect,
		d.Y() * zoom,
	}
}

// PixelsPerUnit is the screen length of one world unit along either axis. The
// aspect correction makes it isotropic, so circles stay round.
func PixelsPerUnit(zoom float32, rect Rect) float32 {
	return zoom * rect.Size.Y() / 2
}
