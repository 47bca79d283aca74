package gui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/shapeview/internal/camera"
	"github.com/san-kum/shapeview/internal/config"
	"github.com/san-kum/shapeview/internal/input"
	"github.com/san-kum/shapeview/internal/shell"
)

const (
	windowWidth  = 1280
	windowHeight = 720
	panelWidth   = 280
	targetFPS    = 144
)

var (
	ColPanel   = rl.NewColor(18, 18, 18, 235)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(70, 70, 70, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColPaused  = rl.NewColor(255, 170, 0, 255)
)

// Window drives one shell.App from the raylib frame loop.
type Window struct {
	app      *shell.App
	sel      *shell.Selection
	renderer *Renderer
	logger   *log.Logger
	origins  input.PressOrigins
	last     shell.Report
}

func initWindow() {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(windowWidth, windowHeight, "shapeview")
	rl.SetTargetFPS(targetFPS)
	rl.SetExitKey(0)
}

// NewWindow builds the shell for cfg. The raylib window must already be open.
func NewWindow(cfg *config.Config, logger *log.Logger) (*Window, error) {
	scene, err := cfg.BuildScene()
	if err != nil {
		return nil, err
	}
	w := &Window{
		sel:      shell.NewSelection(scene),
		renderer: &Renderer{},
		logger:   logger,
	}
	w.app, err = shell.New(cfg,
		shell.WithScene(scene),
		shell.WithRenderer(w.renderer),
		shell.WithHooks(w.sel),
		shell.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config, logger *log.Logger) error {
	initWindow()
	defer rl.CloseWindow()

	w, err := NewWindow(cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("window viewer started", "tick_rate", cfg.TickRate, "time_scale", cfg.TimeScale)
	w.RunLoop()
	logger.Info("window viewer stopped", "frames", w.app.Frames())
	return nil
}

func (w *Window) RunLoop() {
	for !rl.WindowShouldClose() {
		if !w.Update() {
			return
		}
		w.Draw()
	}
}

// Update handles keys. It returns false when the user asked to quit.
func (w *Window) Update() bool {
	s := w.app.Settings()
	switch {
	case rl.IsKeyPressed(rl.KeyQ):
		return false
	case rl.IsKeyPressed(rl.KeyI):
		w.app.ToggleInfo()
	case rl.IsKeyPressed(rl.KeyRightBracket):
		w.app.SetTickRate(s.TickRate + 10)
	case rl.IsKeyPressed(rl.KeyLeftBracket):
		w.app.SetTickRate(s.TickRate - 10)
	case rl.IsKeyPressed(rl.KeyPeriod):
		w.app.SetTimeScale(s.TimeScale + 0.5)
	case rl.IsKeyPressed(rl.KeyComma):
		w.app.SetTimeScale(s.TimeScale - 0.5)
	case rl.IsKeyPressed(rl.KeyZero):
		w.app.SetTimeScale(1)
	case rl.IsKeyPressed(rl.KeySpace):
		w.app.TogglePause()
	case rl.IsKeyPressed(rl.KeyB):
		w.app.CycleBackground()
	case rl.IsKeyPressed(rl.KeyC):
		w.app.ResetCamera()
	}
	return true
}

// viewport is the window area left of the info panel.
func (w *Window) viewport() camera.Rect {
	width := float32(rl.GetScreenWidth())
	if w.app.Settings().InfoOpen {
		width -= panelWidth
	}
	return camera.NewRect(0, 0, width, float32(rl.GetScreenHeight()))
}

func (w *Window) pointer(vp camera.Rect) input.PointerState {
	mouse := rl.GetMousePosition()
	delta := rl.GetMouseDelta()
	return samplePointer(pointerSample{
		Viewport: vp,
		Pos:      mgl32.Vec2{mouse.X, mouse.Y},
		Delta:    mgl32.Vec2{delta.X, delta.Y},
		Down: [input.NumButtons]bool{
			input.Primary:   rl.IsMouseButtonDown(rl.MouseButtonLeft),
			input.Secondary: rl.IsMouseButtonDown(rl.MouseButtonRight),
			input.Middle:    rl.IsMouseButtonDown(rl.MouseButtonMiddle),
		},
		OnScreen: rl.IsCursorOnScreen(),
		Wheel:    rl.GetMouseWheelMove(),
	}, &w.origins)
}

func (w *Window) Draw() {
	vp := w.viewport()
	w.renderer.viewport = vp

	rl.BeginDrawing()
	w.last = w.app.Frame(shell.FrameInput{Now: time.Now(), Pointer: w.pointer(vp)})
	if w.app.Settings().InfoOpen {
		w.drawInfo(vp)
	}
	w.drawHUD()
	rl.EndDrawing()
}

func (w *Window) drawHUD() {
	h := int32(rl.GetScreenHeight())
	rl.DrawText("shapeview", 20, 16, 20, ColSelect)
	if w.app.Paused() {
		rl.DrawText("PAUSED", 140, 19, 16, ColPaused)
	}
	rl.DrawText("[I] INFO  [SPACE] PAUSE  [B] BG  [C] CAMERA  [Q] QUIT", 20, h-24, 14, ColTextDim)
}

func (w *Window) drawInfo(vp camera.Rect) {
	x := int32(vp.Size.X())
	h := int32(rl.GetScreenHeight())
	rl.DrawRectangle(x, 0, panelWidth, h, ColPanel)

	s := w.app.Settings()
	cam := w.app.Camera()
	clk := w.app.Clock()

	y := int32(20)
	rl.DrawText("Info", x+16, y, 20, ColSelect)
	y += 36
	row := func(label, value string) {
		rl.DrawText(label, x+16, y, 14, ColText)
		rl.DrawText(value, x+140, y, 14, ColAccent)
		y += 22
	}
	row("FPS", fmt.Sprintf("%.3f", w.app.FPS()))
	row("Frame Time", fmt.Sprintf("%.3fms", float64(w.app.FrameTime())/float64(time.Millisecond)))
	row("Physics Ticks", fmt.Sprintf("%d", s.TickRate))
	row("Time Scale", fmt.Sprintf("%+.2f", s.TimeScale))
	row("Background", s.Background.Hex())
	row("Ticks/frame", fmt.Sprintf("%d", w.last.Ticks))
	row("Total ticks", fmt.Sprintf("%d", clk.TotalTicks()))
	row("Alpha", fmt.Sprintf("%.3f", clk.Alpha()))
	row("Sim time", fmt.Sprintf("%.3fs", clk.SimTime()))
	row("Zoom", fmt.Sprintf("%.4f", cam.Zoom))
	row("Camera", fmt.Sprintf("%.2f, %.2f", cam.Position.X(), cam.Position.Y()))
	if w.sel.HoverPos.Valid {
		row("Hover", fmt.Sprintf("%.2f, %.2f", w.sel.HoverPos.X(), w.sel.HoverPos.Y()))
	}
	if w.sel.PickPos.Valid {
		row("Pick", fmt.Sprintf("%.2f, %.2f", w.sel.PickPos.X(), w.sel.PickPos.Y()))
	}

	w.drawFrameTimes(x+16, y+16, panelWidth-32, 60)
}

// drawFrameTimes plots recent frame times as a line strip.
func (w *Window) drawFrameTimes(x, y, width, height int32) {
	hist := w.app.FrameTimes()
	if len(hist) < 2 {
		return
	}

	lo, hi := hist[0], hist[0]
	for _, v := range hist {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}

	points := make([]rl.Vector2, len(hist))
	for i, v := range hist {
		px := float32(x) + float32(i)/float32(len(hist)-1)*float32(width)
		norm := (v - lo) / (hi - lo)
		py := float32(y+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}
	rl.DrawLineStrip(points, ColAccent)
	rl.DrawText(fmt.Sprintf("frame ms  %.1f..%.1f", lo, hi), x, y+height+6, 12, ColTextDim)
}
