package shell

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/shapeview/internal/camera"
	"github.com/san-kum/shapeview/internal/clock"
	"github.com/san-kum/shapeview/internal/config"
	"github.com/san-kum/shapeview/internal/frame"
	"github.com/san-kum/shapeview/internal/input"
)

type captureRenderer struct {
	frames []frame.Descriptor
}

func (c *captureRenderer) Render(d frame.Descriptor) { c.frames = append(c.frames, d) }

func newApp(t *testing.T, opts ...Option) (*App, *captureRenderer) {
	t.Helper()
	rec := &captureRenderer{}
	a, err := New(config.DefaultConfig(), append([]Option{WithRenderer(rec)}, opts...)...)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return a, rec
}

func pointer() input.PointerState {
	return input.PointerState{Viewport: camera.NewRect(0, 0, 800, 400)}
}

func TestFirstFrameHasZeroDelta(t *testing.T) {
	a, _ := newApp(t)

	rep := a.Frame(FrameInput{Now: time.Unix(100, 0), Pointer: pointer()})
	if rep.Delta != 0 || rep.Ticks != 0 {
		t.Errorf("expected zero delta and ticks, got %v %d", rep.Delta, rep.Ticks)
	}
	if a.FPS() != 0 {
		t.Errorf("expected FPS 0 before second frame, got %f", a.FPS())
	}
}

func TestFrameRunsStepsAndRenders(t *testing.T) {
	var steps []clock.Tick
	a, rec := newApp(t, WithStep(func(tick clock.Tick) { steps = append(steps, tick) }))

	start := time.Unix(0, 0)
	now := start
	for i := 0; i < 4; i++ {
		a.Frame(FrameInput{Now: now, Pointer: pointer()})
		now = now.Add(15 * time.Millisecond)
	}

	if len(steps) != 4 {
		t.Errorf("expected 4 steps for 45ms at 100Hz, got %d", len(steps))
	}
	if len(rec.frames) != 4 {
		t.Errorf("expected one render per frame, got %d", len(rec.frames))
	}
	if a.Frames() != 4 {
		t.Errorf("expected 4 frames, got %d", a.Frames())
	}
	if fps := a.FPS(); fps < 66 || fps > 67 {
		t.Errorf("expected ~66.7 fps, got %f", fps)
	}
}

func TestFrameDescriptor(t *testing.T) {
	a, rec := newApp(t)

	rep := a.Frame(FrameInput{Now: time.Unix(0, 0), Pointer: pointer()})

	if rep.Frame.Camera.Aspect != 2 {
		t.Errorf("expected aspect 2, got %f", rep.Frame.Camera.Aspect)
	}
	if rep.Frame.Camera.Zoom != 0.25 {
		t.Errorf("expected zoom 0.25, got %f", rep.Frame.Camera.Zoom)
	}
	if len(rep.Frame.Shapes) != 1 || rep.Frame.Shapes[0].Kind != frame.KindCircle {
		t.Errorf("expected placeholder circle, got %+v", rep.Frame.Shapes)
	}
	if len(rec.frames) != 1 {
		t.Errorf("expected renderer call, got %d", len(rec.frames))
	}
}

func TestFramePanAndZoom(t *testing.T) {
	a, _ := newApp(t)

	p := pointer()
	p.SetDrag(input.Secondary, mgl32.Vec2{40, 0})
	a.Frame(FrameInput{Now: time.Unix(0, 0), Pointer: p})
	if a.Camera().Position.X() >= 0 {
		t.Errorf("expected pan left, got %v", a.Camera().Position)
	}

	p = pointer()
	p.Hover = input.At(400, 200)
	p.ScrollY = 1
	rep := a.Frame(FrameInput{Now: time.Unix(0, 0), Pointer: p})
	if !rep.Routing.Zoomed || a.Camera().Zoom <= 0.25 {
		t.Errorf("expected zoom in, got %f", a.Camera().Zoom)
	}
	if !rep.Routing.Hover.Valid {
		t.Error("expected hover position")
	}

	a.ResetCamera()
	if a.Camera().Position != (mgl32.Vec2{}) || a.Camera().Zoom != 0.25 {
		t.Errorf("reset failed: %v %f", a.Camera().Position, a.Camera().Zoom)
	}
}

func TestResetCameraClampsZoom(t *testing.T) {
	for _, zoom := range []float32{0, -1, 5e6} {
		cfg := config.DefaultConfig()
		cfg.Camera.Zoom = zoom
		a, err := New(cfg)
		if err != nil {
			t.Fatalf("new app: %v", err)
		}

		a.Camera().Zoom = 1
		a.ResetCamera()

		lo, hi := a.Camera().ZoomLimits()
		if z := a.Camera().Zoom; z < lo || z > hi || z <= 0 {
			t.Errorf("reset to config zoom %g left zoom %g outside [%g, %g]", zoom, z, lo, hi)
		}
	}
}

func TestDegenerateViewportKeepsLastAspect(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	a, rec := newApp(t, WithLogger(logger))

	a.Frame(FrameInput{Now: time.Unix(0, 0), Pointer: pointer()})
	rep := a.Frame(FrameInput{Now: time.Unix(0, 0), Pointer: input.PointerState{Viewport: camera.NewRect(0, 0, 800, 0)}})

	if !rep.Routing.Skipped {
		t.Error("expected skipped routing")
	}
	if rep.Frame.Camera.Aspect != 2 {
		t.Errorf("expected last valid aspect 2, got %f", rep.Frame.Camera.Aspect)
	}
	if len(rec.frames) != 2 {
		t.Errorf("renderer must still be called, got %d", len(rec.frames))
	}
	if !strings.Contains(buf.String(), "degenerate viewport") {
		t.Errorf("expected debug log, got %q", buf.String())
	}
}

func TestSettings(t *testing.T) {
	a, _ := newApp(t)

	a.SetTickRate(5000)
	a.SetTimeScale(-50)
	a.SetBackground(colorful.Color{R: 2, G: 0.5, B: -1})
	a.ToggleInfo()

	s := a.Settings()
	if s.TickRate != 1000 {
		t.Errorf("expected tick rate clamp 1000, got %d", s.TickRate)
	}
	if s.TimeScale != -20 {
		t.Errorf("expected time scale clamp -20, got %f", s.TimeScale)
	}
	if s.Background != (colorful.Color{R: 1, G: 0.5, B: 0}) {
		t.Errorf("expected clamped background, got %v", s.Background)
	}
	if s.InfoOpen {
		t.Error("expected info closed after toggle")
	}
}

func TestLargeDeltaClampedAndLogged(t *testing.T) {
	var buf bytes.Buffer
	a, _ := newApp(t, WithLogger(log.New(&buf)))

	a.Frame(FrameInput{Now: time.Unix(0, 0), Pointer: pointer()})
	rep := a.Frame(FrameInput{Now: time.Unix(3600, 0), Pointer: pointer()})

	if rep.Ticks != 25 {
		t.Errorf("expected 25 ticks after clamp, got %d", rep.Ticks)
	}
	if !strings.Contains(buf.String(), "frame delta clamped") {
		t.Errorf("expected warning, got %q", buf.String())
	}
}

func TestFrameTimesHistory(t *testing.T) {
	a, _ := newApp(t)
	now := time.Unix(0, 0)
	for i := 0; i < historyCapacity+10; i++ {
		a.Frame(FrameInput{Now: now, Pointer: pointer()})
		now = now.Add(10 * time.Millisecond)
	}

	hist := a.FrameTimes()
	if len(hist) != historyCapacity {
		t.Fatalf("expected %d samples, got %d", historyCapacity, len(hist))
	}
	if hist[len(hist)-1] != 10 {
		t.Errorf("expected last sample 10ms, got %f", hist[len(hist)-1])
	}
}

type pickHooks struct {
	input.NopHooks
	picked []mgl32.Vec2
}

func (p *pickHooks) Pick(w mgl32.Vec2) { p.picked = append(p.picked, w) }

func TestHooksReceivePicks(t *testing.T) {
	hooks := &pickHooks{}
	a, _ := newApp(t, WithHooks(hooks))

	p := pointer()
	p.SetDrag(input.Primary, mgl32.Vec2{})
	p.Interact = input.At(400, 200)
	a.Frame(FrameInput{Now: time.Unix(0, 0), Pointer: p})

	if len(hooks.picked) != 1 || hooks.picked[0] != (mgl32.Vec2{}) {
		t.Errorf("expected pick at origin, got %v", hooks.picked)
	}
}

func TestTogglePause(t *testing.T) {
	a, _ := newApp(t)
	a.SetTimeScale(-2)

	if !a.TogglePause() || a.Settings().TimeScale != 0 {
		t.Fatalf("expected paused at scale 0, got %f", a.Settings().TimeScale)
	}
	a.Frame(FrameInput{Now: time.Unix(0, 0), Pointer: pointer()})
	if rep := a.Frame(FrameInput{Now: time.Unix(0, int64(100*time.Millisecond)), Pointer: pointer()}); rep.Ticks != 0 {
		t.Errorf("expected no ticks while paused, got %d", rep.Ticks)
	}

	if a.TogglePause() || a.Settings().TimeScale != -2 {
		t.Errorf("expected resume at -2, got %f", a.Settings().TimeScale)
	}

	a.TogglePause()
	a.SetTimeScale(3)
	if a.Paused() {
		t.Error("explicit time scale should end the pause")
	}
}

func TestSelectionHitTestsScene(t *testing.T) {
	sel := NewSelection(frame.Placeholder())
	a, _ := newApp(t, WithHooks(sel))

	p := pointer()
	p.Hover = input.At(400, 200)
	a.Frame(FrameInput{Now: time.Unix(0, 0), Pointer: p})
	if sel.Hovered != 0 || !sel.HoverPos.Valid {
		t.Errorf("expected placeholder hovered, got %d", sel.Hovered)
	}

	p = pointer()
	p.SetDrag(input.Primary, mgl32.Vec2{})
	p.Interact = input.At(0, 0)
	a.Frame(FrameInput{Now: time.Unix(0, 0), Pointer: p})
	if sel.Picked != -1 {
		t.Errorf("expected empty pick in the corner, got %d", sel.Picked)
	}

	a.Frame(FrameInput{Now: time.Unix(0, 0), Pointer: pointer()})
	if sel.PickPos.Valid {
		t.Error("release should clear the pick position")
	}
}
