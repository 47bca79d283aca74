package bench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/shapeview/internal/camera"
	"github.com/san-kum/shapeview/internal/config"
	"github.com/san-kum/shapeview/internal/input"
	"github.com/san-kum/shapeview/internal/shell"
	"github.com/san-kum/shapeview/internal/trace"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNoFrames     = errors.New("bench: frame count must be positive")
	ErrBadFrameRate = errors.New("bench: frame rate must be positive")
	ErrBadJitter    = errors.New("bench: jitter must be in [0, 1)")
)

// Options controls the synthetic frame source.
type Options struct {
	Frames    int
	FrameRate float64
	// Jitter spreads each delta uniformly by +-Jitter of the nominal delta.
	Jitter float64
	Seed   int64
	// StallEvery inserts a StallDuration frame every n frames. Zero disables.
	StallEvery    int
	StallDuration time.Duration
	// ZoomEvery scrolls one step in every n frames. Zero disables.
	ZoomEvery int
}

func DefaultOptions() Options {
	return Options{
		Frames:        600,
		FrameRate:     60,
		Jitter:        0.1,
		Seed:          42,
		StallDuration: time.Second,
	}
}

func (o Options) Validate() error {
	switch {
	case o.Frames <= 0:
		return ErrNoFrames
	case o.FrameRate <= 0:
		return ErrBadFrameRate
	case o.Jitter < 0 || o.Jitter >= 1:
		return ErrBadJitter
	}
	return nil
}

// Result is one finished run.
type Result struct {
	TickRate   int
	TimeScale  float32
	Frames     []trace.FrameRecord
	TotalTicks uint64
	SimTime    float64
	Wall       time.Duration
	Metrics    map[string]float64
}

type Runner struct {
	cfg     *config.Config
	logger  *log.Logger
	metrics []Metric
}

func New(cfg *config.Config, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{cfg: cfg, logger: logger}
}

func (r *Runner) AddMetric(m Metric) { r.metrics = append(r.metrics, m) }

// Run feeds opts.Frames synthetic frames to a fresh app. It stops early with
// the partial result when ctx is done.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	app, err := shell.New(r.cfg, shell.WithLogger(r.logger))
	if err != nil {
		return nil, fmt.Errorf("bench: %w", err)
	}
	metrics := r.metrics
	if len(metrics) == 0 {
		metrics = DefaultMetrics(app.Clock().MaxFrameDelta())
	}
	for _, m := range metrics {
		m.Reset()
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	nominal := time.Duration(float64(time.Second) / opts.FrameRate)
	vp := camera.NewRect(0, 0, 800, 600)
	center := vp.Center()

	res := &Result{
		TickRate:  app.Clock().TickRate(),
		TimeScale: app.Clock().TimeScale(),
		Frames:    make([]trace.FrameRecord, 0, opts.Frames),
		Metrics:   make(map[string]float64),
	}

	now := time.Unix(0, 0)
	for i := 0; i < opts.Frames; i++ {
		select {
		case <-ctx.Done():
			r.finish(res, app, metrics)
			return res, ctx.Err()
		default:
		}

		if i > 0 {
			now = now.Add(frameDelta(rng, opts, nominal, i))
		}

		p := input.PointerState{Viewport: vp, Hover: input.Some(center)}
		if opts.ZoomEvery > 0 && i > 0 && i%opts.ZoomEvery == 0 {
			p.ScrollY = 1
		}

		rep := app.Frame(shell.FrameInput{Now: now, Pointer: p})
		rec := trace.FrameRecord{
			Index:       i,
			Delta:       rep.Delta,
			Ticks:       rep.Ticks,
			Accumulated: app.Clock().Accumulated(),
			Zoom:        app.Camera().Zoom,
		}
		for _, m := range metrics {
			m.Observe(rec)
		}
		res.Frames = append(res.Frames, rec)
		res.Wall += rep.Delta
	}

	r.finish(res, app, metrics)
	r.logger.Debug("bench run finished", "tick_rate", res.TickRate, "frames", len(res.Frames), "ticks", res.TotalTicks)
	return res, nil
}

func (r *Runner) finish(res *Result, app *shell.App, metrics []Metric) {
	res.TotalTicks = app.Clock().TotalTicks()
	res.SimTime = app.Clock().SimTime()
	for _, m := range metrics {
		res.Metrics[m.Name()] = m.Value()
	}
}

func frameDelta(rng *rand.Rand, opts Options, nominal time.Duration, i int) time.Duration {
	if opts.StallEvery > 0 && i%opts.StallEvery == 0 {
		return opts.StallDuration
	}
	if opts.Jitter == 0 {
		return nominal
	}
	f := 1 + opts.Jitter*(2*rng.Float64()-1)
	return time.Duration(float64(nominal) * f)
}

// Sweep runs opts once per tick rate, each on its own copy of the config, and
// returns the results in rates order.
func Sweep(ctx context.Context, cfg *config.Config, logger *log.Logger, opts Options, rates []int) ([]*Result, error) {
	results := make([]*Result, len(rates))

	g, ctx := errgroup.WithContext(ctx)
	for i, rate := range rates {
		g.Go(func() error {
			c := *cfg
			c.TickRate = rate
			res, err := New(&c, logger).Run(ctx, opts)
			if err != nil {
				return fmt.Errorf("tick rate %d: %w", rate, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
