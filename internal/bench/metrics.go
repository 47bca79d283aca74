package bench

import (
	"math"
	"time"

	"github.com/san-kum/shapeview/internal/trace"
)

// Metric observes every recorded frame of a run.
type Metric interface {
	Name() string
	Observe(rec trace.FrameRecord)
	Value() float64
	Reset()
}

// MeanTicks is the average number of ticks per frame.
type MeanTicks struct {
	ticks, frames int
}

func (m *MeanTicks) Name() string { return "mean_ticks" }

func (m *MeanTicks) Observe(rec trace.FrameRecord) {
	m.ticks += rec.Ticks
	m.frames++
}

func (m *MeanTicks) Value() float64 {
	if m.frames == 0 {
		return 0
	}
	return float64(m.ticks) / float64(m.frames)
}

func (m *MeanTicks) Reset() { *m = MeanTicks{} }

// MaxTicks is the largest burst of ticks released in one frame.
type MaxTicks struct {
	peak int
}

func (m *MaxTicks) Name() string                  { return "max_ticks" }
func (m *MaxTicks) Observe(rec trace.FrameRecord) { m.peak = max(m.peak, rec.Ticks) }
func (m *MaxTicks) Value() float64                { return float64(m.peak) }
func (m *MaxTicks) Reset()                        { m.peak = 0 }

// Clamped counts frames whose delta exceeded the clock's frame delta limit.
type Clamped struct {
	limit time.Duration
	count int
}

func NewClamped(limit time.Duration) *Clamped {
	return &Clamped{limit: limit}
}

func (m *Clamped) Name() string { return "clamped_frames" }

func (m *Clamped) Observe(rec trace.FrameRecord) {
	if m.limit > 0 && rec.Delta > m.limit {
		m.count++
	}
}

func (m *Clamped) Value() float64 { return float64(m.count) }
func (m *Clamped) Reset()         { m.count = 0 }

// Jitter is the standard deviation of ticks per frame.
type Jitter struct {
	n        int
	mean, m2 float64
}

func (m *Jitter) Name() string { return "tick_jitter" }

func (m *Jitter) Observe(rec trace.FrameRecord) {
	m.n++
	x := float64(rec.Ticks)
	d := x - m.mean
	m.mean += d / float64(m.n)
	m.m2 += d * (x - m.mean)
}

func (m *Jitter) Value() float64 {
	if m.n < 2 {
		return 0
	}
	return math.Sqrt(m.m2 / float64(m.n-1))
}

func (m *Jitter) Reset() { *m = Jitter{} }

// DefaultMetrics returns fresh instances of every built-in metric.
func DefaultMetrics(clampLimit time.Duration) []Metric {
	return []Metric{&MeanTicks{}, &MaxTicks{}, NewClamped(clampLimit), &Jitter{}}
}
