package shell

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/shapeview/internal/camera"
	"github.com/san-kum/shapeview/internal/clock"
	"github.com/san-kum/shapeview/internal/config"
	"github.com/san-kum/shapeview/internal/frame"
	"github.com/san-kum/shapeview/internal/input"
)

const historyCapacity = 120

// StepFunc runs one simulation step. It is the physics hook; the default does
// nothing.
type StepFunc func(tick clock.Tick)

// FrameInput is what the host hands over each repaint.
type FrameInput struct {
	Now     time.Time
	Pointer input.PointerState
}

// Report summarizes one frame for the info panel and for tests.
type Report struct {
	Delta   time.Duration
	Ticks   int
	Routing input.Result
	Frame   frame.Descriptor
}

// Settings is the user-editable configuration surface.
type Settings struct {
	TickRate   int
	TimeScale  float32
	Background colorful.Color
	InfoOpen   bool
}

// App owns the camera and clock and runs one frame at a time.
type App struct {
	cam      *camera.Camera
	clk      *clock.Clock
	router   *input.Router
	scene    frame.Scene
	renderer frame.Renderer
	step     StepFunc
	logger   *log.Logger

	background  colorful.Color
	infoOpen    bool
	aspect      float32
	paused      bool
	resumeScale float32

	last    time.Time
	hasLast bool
	delta   time.Duration
	frames  uint64
	history []float64

	initial config.CameraConfig
}

type Option func(*App)

func WithRenderer(r frame.Renderer) Option { return func(a *App) { a.renderer = r } }
func WithScene(s frame.Scene) Option       { return func(a *App) { a.scene = s } }
func WithStep(fn StepFunc) Option          { return func(a *App) { a.step = fn } }
func WithHooks(h input.Hooks) Option       { return func(a *App) { a.router = input.NewRouter(h) } }
func WithLogger(l *log.Logger) Option      { return func(a *App) { a.logger = l } }

// New builds an app from cfg. The config must already be valid.
func New(cfg *config.Config, opts ...Option) (*App, error) {
	scene, err := cfg.BuildScene()
	if err != nil {
		return nil, err
	}
	a := &App{
		cam:        cfg.NewCamera(),
		clk:        cfg.NewClock(),
		router:     input.NewRouter(nil),
		scene:      scene,
		renderer:   frame.RendererFunc(func(frame.Descriptor) {}),
		step:       func(clock.Tick) {},
		logger:     log.New(io.Discard),
		background: cfg.BackgroundColor(),
		infoOpen:   cfg.InfoOpen,
		aspect:     1,
		history:    make([]float64, 0, historyCapacity),
		initial:    cfg.Camera,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Frame runs one repaint: advance the clock, route input, assemble and hand
// the descriptor to the renderer.
func (a *App) Frame(in FrameInput) Report {
	dt := time.Duration(0)
	if a.hasLast {
		dt = in.Now.Sub(a.last)
	}
	a.last, a.hasLast = in.Now, true
	if limit := a.clk.MaxFrameDelta(); limit > 0 && dt > limit {
		a.logger.Warn("frame delta clamped", "delta", dt, "max", limit)
	}
	a.delta = dt
	a.frames++
	a.record(dt)

	ticks := 0
	for tick := range a.clk.Advance(dt) {
		a.step(tick)
		ticks++
	}

	routed := a.router.Route(a.cam, in.Pointer)
	if routed.Skipped {
		a.logger.Debug("degenerate viewport, input skipped", "size", in.Pointer.Viewport.Size)
	} else {
		a.aspect = in.Pointer.Viewport.Aspect()
	}

	desc := frame.Assemble(*a.cam, a.aspect, a.background, a.scene.Shapes())
	a.renderer.Render(desc)

	return Report{Delta: dt, Ticks: ticks, Routing: routed, Frame: desc}
}

func (a *App) record(dt time.Duration) {
	ms := float64(dt) / float64(time.Millisecond)
	if len(a.history) == historyCapacity {
		copy(a.history, a.history[1:])
		a.history = a.history[:historyCapacity-1]
	}
	a.history = append(a.history, ms)
}

func (a *App) Camera() *camera.Camera { return a.cam }
func (a *App) Clock() *clock.Clock    { return a.clk }
func (a *App) Frames() uint64         { return a.frames }
func (a *App) Scene() frame.Scene     { return a.scene }

// FrameTimes returns recent frame deltas in milliseconds, oldest first.
func (a *App) FrameTimes() []float64 {
	out := make([]float64, len(a.history))
	copy(out, a.history)
	return out
}

// FPS derived from the last frame delta; zero before the second frame.
func (a *App) FPS() float64 {
	if a.delta <= 0 {
		return 0
	}
	return 1 / a.delta.Seconds()
}

func (a *App) FrameTime() time.Duration { return a.delta }

func (a *App) Settings() Settings {
	return Settings{
		TickRate:   a.clk.TickRate(),
		TimeScale:  a.clk.TimeScale(),
		Background: a.background,
		InfoOpen:   a.infoOpen,
	}
}

func (a *App) SetTickRate(rate int) {
	a.clk.SetTickRate(rate)
	a.logger.Info("tick rate changed", "rate", a.clk.TickRate())
}

// SetTimeScale changes the time scale. An explicit scale ends a pause.
func (a *App) SetTimeScale(scale float32) {
	a.paused = false
	a.clk.SetTimeScale(scale)
	a.logger.Info("time scale changed", "scale", a.clk.TimeScale())
}

// TogglePause freezes the clock at scale 0, or restores the scale it had
// before. It reports whether the app is now paused.
func (a *App) TogglePause() bool {
	if a.paused {
		a.SetTimeScale(a.resumeScale)
		return false
	}
	a.resumeScale = a.clk.TimeScale()
	a.SetTimeScale(0)
	a.paused = true
	return true
}

func (a *App) Paused() bool { return a.paused }

func (a *App) SetBackground(c colorful.Color) {
	a.background = c.Clamped()
	a.logger.Info("background changed", "color", a.background.Hex())
}

func (a *App) ToggleInfo() { a.infoOpen = !a.infoOpen }

// ResetCamera restores the configured camera position and zoom.
func (a *App) ResetCamera() {
	a.cam.Position[0], a.cam.Position[1] = a.initial.X, a.initial.Y
	a.cam.SetZoom(a.initial.Zoom)
	a.logger.Debug("camera reset")
}
