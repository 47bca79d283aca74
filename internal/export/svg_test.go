package export

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/shapeview/internal/camera"
	"github.com/san-kum/shapeview/internal/frame"
	"github.com/san-kum/shapeview/internal/tui"
)

func TestDescriptorToSVG(t *testing.T) {
	cam := camera.New(mgl32.Vec2{}, 0.25)
	shapes := []frame.Shape{
		frame.Circle(mgl32.Vec2{}, 1, colorful.Color{R: 1}),
		frame.Rect(mgl32.Vec2{2, 0}, mgl32.Vec2{1, 1}, colorful.Color{B: 1}),
	}
	d := frame.Assemble(*cam, 2, colorful.Color{}, shapes)

	svg := DescriptorToSVG(d, 800, 400)

	for _, want := range []string{
		`width="800" height="400"`,
		`fill="#000000"`,
		// unit circle at zoom 0.25 on a 400px tall view: 50px radius at the center
		`<circle cx="400.00" cy="200.00" r="50.00" fill="#ff0000"/>`,
		`<rect x="450.00" y="150.00" width="100.00" height="100.00" fill="#0000ff"/>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("missing %q in\n%s", want, svg)
		}
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Error("unterminated svg")
	}
}

func TestDescriptorToSVGEmptyImage(t *testing.T) {
	d := frame.Assemble(*camera.New(mgl32.Vec2{}, 1), 1, colorful.Color{}, frame.Placeholder().Shapes())
	svg := DescriptorToSVG(d, 0, 0)
	if strings.Contains(svg, "<circle") {
		t.Error("expected no shapes for an empty image")
	}
}

func TestCanvasToSVG(t *testing.T) {
	if CanvasToSVG(nil, 1) != "" {
		t.Error("expected empty output for nil canvas")
	}

	c := tui.NewCanvas(2, 1)
	c.Set(0, 0, colorful.Color{G: 1})
	c.Set(3, 3, colorful.Color{G: 1})

	svg := CanvasToSVG(c, 10)
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected 2 dots, got %d", n)
	}
	if !strings.Contains(svg, `cx="5.0" cy="5.0"`) || !strings.Contains(svg, `cx="35.0" cy="35.0"`) {
		t.Errorf("unexpected dot positions:\n%s", svg)
	}
}

func TestSeriesToSVG(t *testing.T) {
	if SeriesToSVG([]float64{1}, 100, 50, "#fff") != "" {
		t.Error("expected empty output for a single point")
	}

	svg := SeriesToSVG([]float64{16, 17, 16, 33}, 300, 100, "#00ff88")
	if !strings.Contains(svg, `stroke="#00ff88"`) {
		t.Error("missing stroke color")
	}
	if n := strings.Count(svg, " L"); n != 3 {
		t.Errorf("expected 3 line segments, got %d", n)
	}
	if !strings.Contains(svg, "M0.0,") {
		t.Error("path should start at x=0")
	}
}
