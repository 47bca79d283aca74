package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/shapeview/internal/bench"
	"github.com/san-kum/shapeview/internal/camera"
	"github.com/san-kum/shapeview/internal/config"
	"github.com/san-kum/shapeview/internal/export"
	"github.com/san-kum/shapeview/internal/frame"
	"github.com/san-kum/shapeview/internal/gui"
	"github.com/san-kum/shapeview/internal/input"
	"github.com/san-kum/shapeview/internal/shell"
	"github.com/san-kum/shapeview/internal/trace"
	"github.com/san-kum/shapeview/internal/tui"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	logFile    string
	// Viewer settings
	tickRate   int
	timeScale  float32
	background string
	zoom       float32
	// Bench
	frames     int
	fps        float64
	jitter     float64
	seed       int64
	stallEvery int
	stall      time.Duration
	zoomEvery  int
	sweep      string
	save       bool
	svgOut     string
	withFrames bool
	// Snapshot
	width   int
	height  int
	braille bool
)

// main registers the commands and runs the terminal viewer when no
// subcommand is given. It exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:          "shapeview",
		Short:        "2D shape viewer with a fixed-timestep clock",
		SilenceUsage: true,
		RunE:         runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".shapeview", "data directory for bench traces")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file")
	pf.IntVar(&tickRate, "tick-rate", config.DefaultTickRate, "simulation ticks per second [1, 1000]")
	pf.Float32Var(&timeScale, "time-scale", config.DefaultTimeScale, "time scale [-20, 20]")
	pf.StringVar(&background, "background", config.DefaultBackground, "background color (#rrggbb)")
	pf.Float32Var(&zoom, "zoom", config.DefaultZoom, "initial camera zoom")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "terminal viewer",
		RunE:  runTUI,
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "window viewer",
		RunE:  runGUI,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "drive the clock with synthetic frames",
		RunE:  runBench,
	}
	defaults := bench.DefaultOptions()
	benchCmd.Flags().IntVar(&frames, "frames", defaults.Frames, "number of frames")
	benchCmd.Flags().Float64Var(&fps, "fps", defaults.FrameRate, "nominal frame rate")
	benchCmd.Flags().Float64Var(&jitter, "jitter", defaults.Jitter, "frame delta jitter fraction [0, 1)")
	benchCmd.Flags().Int64Var(&seed, "seed", defaults.Seed, "random seed")
	benchCmd.Flags().IntVar(&stallEvery, "stall-every", 0, "insert a stall every n frames")
	benchCmd.Flags().DurationVar(&stall, "stall", defaults.StallDuration, "stall duration")
	benchCmd.Flags().IntVar(&zoomEvery, "zoom-every", 0, "scroll one zoom step every n frames")
	benchCmd.Flags().StringVar(&sweep, "sweep", "", "comma separated tick rates to compare")
	benchCmd.Flags().BoolVar(&save, "save", false, "save traces to the data directory")
	benchCmd.Flags().StringVar(&svgOut, "svg", "", "write the frame time plot to an SVG file")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved bench traces",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved trace",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print a saved trace as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&svgOut, "svg", "", "also write the frame time plot to an SVG file")
	exportCmd.Flags().BoolVar(&withFrames, "frames", false, "include every frame row")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [out.svg]",
		Short: "render one frame to SVG, or to the terminal without a file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().IntVar(&width, "width", 800, "image width in pixels")
	snapshotCmd.Flags().IntVar(&height, "height", 600, "image height in pixels")
	snapshotCmd.Flags().BoolVar(&braille, "braille", false, "rasterize through the terminal canvas")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a config file with the current settings",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(tuiCmd, guiCmd, benchCmd, runsCmd, plotCmd, exportCmd, snapshotCmd, presetsCmd, configCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// loadConfig layers preset, config file and flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		var err error
		cfg, err = config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("tick-rate") {
		cfg.TickRate = tickRate
	}
	if flags.Changed("time-scale") {
		cfg.TimeScale = timeScale
	}
	if flags.Changed("background") {
		cfg.Background = background
	}
	if flags.Changed("zoom") {
		cfg.Camera.Zoom = zoom
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the command logger. Full-screen hosts own the terminal, so
// their logs go to --log-file or nowhere.
func newLogger(fullscreen bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return nil, nil, err
	}

	var out io.Writer = os.Stderr
	closer := func() {}
	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, err
		}
		out, closer = f, func() { f.Close() }
	case fullscreen:
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		Prefix:          "shapeview",
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
	return logger, closer, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, done, err := newLogger(true)
	if err != nil {
		return err
	}
	defer done()
	return tui.Run(cfg, logger)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, done, err := newLogger(false)
	if err != nil {
		return err
	}
	defer done()
	return gui.Run(cfg, logger)
}

func parseRates(s string) ([]int, error) {
	var rates []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		r, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid tick rate %q: %w", part, err)
		}
		rates = append(rates, r)
	}
	return rates, nil
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, done, err := newLogger(false)
	if err != nil {
		return err
	}
	defer done()

	opts := bench.Options{
		Frames:        frames,
		FrameRate:     fps,
		Jitter:        jitter,
		Seed:          seed,
		StallEvery:    stallEvery,
		StallDuration: stall,
		ZoomEvery:     zoomEvery,
	}

	rates := []int{cfg.TickRate}
	if sweep != "" {
		if rates, err = parseRates(sweep); err != nil {
			return err
		}
	}

	start := time.Now()
	results, err := bench.Sweep(cmd.Context(), cfg, logger, opts, rates)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("benchmarking %d frames at %.0f fps (jitter %.2f, seed %d)\n\n", opts.Frames, opts.FrameRate, opts.Jitter, opts.Seed)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TICK RATE\tSCALE\tTICKS\tSIM TIME\tWALL\tMEAN\tMAX\tJITTER\tCLAMPED")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%+.2f\t%d\t%.3fs\t%v\t%.2f\t%.0f\t%.3f\t%.0f\n",
			r.TickRate, r.TimeScale, r.TotalTicks, r.SimTime, r.Wall.Round(time.Millisecond),
			r.Metrics["mean_ticks"], r.Metrics["max_ticks"], r.Metrics["tick_jitter"], r.Metrics["clamped_frames"])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nelapsed %v\n\n", elapsed.Round(time.Microsecond))

	first := results[0]
	if len(first.Frames) > 1 {
		fmt.Println(asciigraph.Plot(trace.TicksPerFrame(first.Frames),
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("ticks per frame @ %d Hz", first.TickRate)),
		))
	}

	if svgOut != "" {
		svg := export.SeriesToSVG(trace.Deltas(first.Frames), 800, 200, "#00ff88")
		if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", svgOut)
	}

	if save {
		st := trace.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		for _, r := range results {
			runID, err := st.Save(trace.RunMetadata{
				Name:       fmt.Sprintf("bench_%dhz", r.TickRate),
				Seed:       opts.Seed,
				TickRate:   r.TickRate,
				TimeScale:  r.TimeScale,
				FrameRate:  opts.FrameRate,
				Jitter:     opts.Jitter,
				TotalTicks: r.TotalTicks,
				Metrics:    r.Metrics,
			}, r.Frames)
			if err != nil {
				return err
			}
			logger.Info("trace saved", "run", runID)
			fmt.Printf("saved: %s\n", runID)
		}
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := trace.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tTICK RATE\tSCALE\tFPS\tFRAMES\tTICKS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%+.2f\t%.0f\t%d\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.TickRate,
			run.TimeScale,
			run.FrameRate,
			run.Frames,
			run.TotalTicks,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := trace.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	records, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(records) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("frames: %d\n\n", len(records))

	fmt.Println(asciigraph.Plot(trace.Deltas(records),
		asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("frame delta (ms)")))
	fmt.Println()
	fmt.Println(asciigraph.Plot(trace.TicksPerFrame(records),
		asciigraph.Height(6), asciigraph.Width(80), asciigraph.Caption("ticks per frame")))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := trace.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	var records []trace.FrameRecord
	if withFrames || svgOut != "" {
		if records, err = st.LoadFrames(args[0]); err != nil {
			return err
		}
	}

	if svgOut != "" {
		svg := export.SeriesToSVG(trace.Deltas(records), 800, 200, "#00ff88")
		if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
			return err
		}
	}

	if !withFrames {
		records = nil
	}
	return trace.ExportJSON(os.Stdout, *meta, records)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, done, err := newLogger(false)
	if err != nil {
		return err
	}
	defer done()

	if len(args) == 0 || braille {
		return snapshotBraille(cfg, logger, args)
	}

	var desc frame.Descriptor
	app, err := shell.New(cfg,
		shell.WithLogger(logger),
		shell.WithRenderer(frame.RendererFunc(func(d frame.Descriptor) { desc = d })),
	)
	if err != nil {
		return err
	}
	app.Frame(shell.FrameInput{
		Now:     time.Now(),
		Pointer: input.PointerState{Viewport: camera.NewRect(0, 0, float32(width), float32(height))},
	})

	svg := export.DescriptorToSVG(desc, width, height)
	if err := os.WriteFile(args[0], []byte(svg), 0644); err != nil {
		return err
	}
	logger.Info("snapshot written", "path", args[0], "shapes", len(desc.Shapes))
	return nil
}

// snapshotBraille renders through the terminal canvas. Without a path the
// canvas is printed; with one it is written as an SVG of dots.
func snapshotBraille(cfg *config.Config, logger *log.Logger, args []string) error {
	r := tui.NewCanvasRenderer(max(width/8, 1), max(height/16, 1))
	app, err := shell.New(cfg, shell.WithLogger(logger), shell.WithRenderer(r))
	if err != nil {
		return err
	}
	app.Frame(shell.FrameInput{
		Now:     time.Now(),
		Pointer: input.PointerState{Viewport: r.Viewport()},
	})

	if len(args) == 0 {
		fmt.Println(r.View())
		return nil
	}
	svg := export.CanvasToSVG(r.Canvas(), 4)
	if err := os.WriteFile(args[0], []byte(svg), 0644); err != nil {
		return err
	}
	logger.Info("snapshot written", "path", args[0])
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTICK RATE\tSCALE\tBACKGROUND\tSHAPES")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%+.2f\t%s\t%d\n", name, p.TickRate, p.TimeScale, p.Background, len(p.Scene))
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "shapeview.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
