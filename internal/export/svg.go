package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/shapeview/internal/camera"
	"github.com/san-kum/shapeview/internal/frame"
	"github.com/san-kum/shapeview/internal/tui"
)

// DescriptorToSVG draws one frame descriptor into a width x height image.
// Shapes outside the image are kept; the viewBox clips them.
func DescriptorToSVG(d frame.Descriptor, width, height int) string {
	vp := camera.NewRect(0, 0, float32(width), float32(height))

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, d.Background.Clamped().Hex())

	if !vp.Valid() {
		sb.WriteString("</svg>")
		return sb.String()
	}

	for _, s := range d.Shapes {
		c := d.Camera.ToScreen(s.Position, vp)
		fill := s.Color.Clamped().Hex()
		switch s.Kind {
		case frame.KindCircle:
			fmt.Fprintf(&sb, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>
`, c.X(), c.Y(), d.Camera.Scale(s.Radius, vp), fill)
		case frame.KindRect:
			hw := d.Camera.Scale(s.HalfExtents.X(), vp)
			hh := d.Camera.Scale(s.HalfExtents.Y(), vp)
			fmt.Fprintf(&sb, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>
`, c.X()-hw, c.Y()-hh, 2*hw, 2*hh, fill)
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// CanvasToSVG converts a braille canvas to SVG, one dot per lit sub-pixel.
func CanvasToSVG(canvas *tui.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.SubWidth()) * scale
	height := float64(canvas.SubHeight()) * scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	dotRadius := scale * 0.4
	for y := 0; y < canvas.SubHeight(); y++ {
		for x := 0; x < canvas.SubWidth(); x++ {
			if !canvas.Lit(x, y) {
				continue
			}
			fill := canvas.Colors[y/4][x/2].Clamped().Hex()
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, float64(x)*scale+scale/2, float64(y)*scale+scale/2, dotRadius, fill)
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG plots values against their index as a polyline, e.g. frame
// times from a bench run.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	lo -= span * 0.1
	hi += span * 0.1
	span = hi - lo

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor)

	last := float64(len(values) - 1)
	for i, v := range values {
		x := float64(i) / last * float64(width)
		y := float64(height) - (v-lo)/span*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
