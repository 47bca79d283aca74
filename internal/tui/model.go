package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/shapeview/internal/config"
	"github.com/san-kum/shapeview/internal/shell"
)

const (
	panelWidth  = 40
	menuRows    = 1
	footerRows  = 1
	defaultCols = 80
	defaultRows = 24
	frameRate   = 60
)

type frameMsg time.Time

func nextFrame() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// Model is the Bubble Tea model wrapping one shell.App.
type Model struct {
	app      *shell.App
	renderer *CanvasRenderer
	pointer  *pointerTracker
	sel      *shell.Selection
	logger   *log.Logger

	width, height int
	last          shell.Report

	// hex is the background color being typed after '#'.
	hex      string
	hexEntry bool
}

// NewModel builds the shell for cfg with a canvas renderer and the default
// selection hooks.
func NewModel(cfg *config.Config, logger *log.Logger) (Model, error) {
	scene, err := cfg.BuildScene()
	if err != nil {
		return Model{}, err
	}
	sel := shell.NewSelection(scene)
	r := NewCanvasRenderer(defaultCols, defaultRows-menuRows-footerRows)
	app, err := shell.New(cfg,
		shell.WithScene(scene),
		shell.WithRenderer(r),
		shell.WithHooks(sel),
		shell.WithLogger(logger),
	)
	if err != nil {
		return Model{}, err
	}
	m := Model{
		app:      app,
		renderer: r,
		pointer:  &pointerTracker{originRow: menuRows},
		sel:      sel,
		logger:   logger,
		width:    defaultCols,
		height:   defaultRows,
	}
	m.layout()
	return m, nil
}

func (m Model) App() *shell.App { return m.app }

func (m Model) Init() tea.Cmd { return nextFrame() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.pointer.handle(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
	case frameMsg:
		m.last = m.app.Frame(shell.FrameInput{
			Now:     time.Time(msg),
			Pointer: m.pointer.frame(m.renderer.Viewport()),
		})
		return m, nextFrame()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.hexEntry {
		return m.handleHexKey(msg)
	}

	s := m.app.Settings()
	switch msg.String() {
	case "q", "ctrl+c":
		m.logger.Info("terminal viewer stopped", "frames", m.app.Frames())
		return m, tea.Quit
	case "i":
		m.app.ToggleInfo()
		m.layout()
	case "]":
		m.app.SetTickRate(s.TickRate + 10)
	case "[":
		m.app.SetTickRate(s.TickRate - 10)
	case ".":
		m.app.SetTimeScale(s.TimeScale + 0.5)
	case ",":
		m.app.SetTimeScale(s.TimeScale - 0.5)
	case "0":
		m.app.SetTimeScale(1)
	case " ":
		m.app.TogglePause()
	case "b":
		m.app.CycleBackground()
	case "#":
		m.hexEntry, m.hex = true, ""
	case "c":
		m.app.ResetCamera()
	}
	return m, nil
}

func (m Model) handleHexKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.hexEntry = false
		c, err := config.ParseColor("#" + m.hex)
		if err != nil {
			m.logger.Warn("invalid background color", "input", m.hex, "err", err)
			return m, nil
		}
		m.app.SetBackground(c)
	case tea.KeyEsc:
		m.hexEntry = false
	case tea.KeyBackspace:
		if len(m.hex) > 0 {
			m.hex = m.hex[:len(m.hex)-1]
		}
	case tea.KeyRunes:
		if len(m.hex) < 6 {
			m.hex += string(msg.Runes)
		}
	}
	return m, nil
}

// layout sizes the canvas to the space left by the menu, footer and panel.
func (m *Model) layout() {
	cols := m.width
	if m.app.Settings().InfoOpen {
		cols -= panelWidth + 1
	}
	rows := m.height - menuRows - footerRows
	m.renderer.Resize(max(cols, 1), max(rows, 1))
}

func (m Model) View() string {
	menu := menuStyle.Render("[i] Info")
	if m.app.Paused() {
		menu += " " + pausedStyle.Render("PAUSED")
	}
	if m.hexEntry {
		menu += " " + valueStyle.Render("background #"+m.hex+"_")
	}

	body := m.renderer.View()
	if m.app.Settings().InfoOpen {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.infoPanel())
	}

	help := helpStyle.Render("right-drag pan · left-drag pick · wheel zoom · [ ] ticks · , . scale · space pause · b bg · # hex · c camera · q quit")
	return lipgloss.JoinVertical(lipgloss.Left, menu, body, help)
}

func (m Model) infoPanel() string {
	s := m.app.Settings()
	cam := m.app.Camera()
	clk := m.app.Clock()

	var b strings.Builder
	b.WriteString(headerStyle.Render("Info") + "\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("FPS", fmt.Sprintf("%.3f", m.app.FPS()))
	row("Frame Time", fmt.Sprintf("%.3fms", float64(m.app.FrameTime())/float64(time.Millisecond)))
	row("Physics Ticks", fmt.Sprintf("%d", s.TickRate))
	row("Time Scale", fmt.Sprintf("%+.2f", s.TimeScale))
	row("Background", s.Background.Hex())
	row("Ticks/frame", fmt.Sprintf("%d", m.last.Ticks))
	row("Total ticks", fmt.Sprintf("%d", clk.TotalTicks()))
	row("Alpha", fmt.Sprintf("%.3f", clk.Alpha()))
	row("Sim time", fmt.Sprintf("%.3fs", clk.SimTime()))
	row("Zoom", fmt.Sprintf("%.4f", cam.Zoom))
	row("Camera", fmt.Sprintf("%.2f, %.2f", cam.Position.X(), cam.Position.Y()))
	if m.sel.HoverPos.Valid {
		row("Hover", fmt.Sprintf("%.2f, %.2f (shape %d)", m.sel.HoverPos.X(), m.sel.HoverPos.Y(), m.sel.Hovered))
	}
	if m.sel.PickPos.Valid {
		row("Pick", fmt.Sprintf("%.2f, %.2f (shape %d)", m.sel.PickPos.X(), m.sel.PickPos.Y(), m.sel.Picked))
	}

	if hist := m.app.FrameTimes(); len(hist) > 1 {
		chart := asciigraph.Plot(hist, asciigraph.Height(4), asciigraph.Width(panelWidth-12), asciigraph.Caption("frame ms"))
		b.WriteString(graphStyle.Render(chart))
	}

	return statsStyle.Render(b.String())
}

// Run starts the terminal viewer and blocks until it quits.
func Run(cfg *config.Config, logger *log.Logger) error {
	m, err := NewModel(cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("terminal viewer started", "tick_rate", cfg.TickRate, "time_scale", cfg.TimeScale)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	return err
}
