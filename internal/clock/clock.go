package clock

import (
	"iter"
	"math"
	"time"
)

const (
	MinTickRate = 1
	MaxTickRate = 1000

	MinTimeScale = -20.0
	MaxTimeScale = 20.0

	// DefaultMaxFrameDelta bounds a single frame's contribution so a resume
	// after suspend does not trigger a catch-up storm.
	DefaultMaxFrameDelta = 250 * time.Millisecond
)

// Tick is one fixed simulation step.
type Tick struct {
	// Index counts ticks since the clock was created, starting at 0.
	Index uint64
	// Step is the tick duration in seconds, signed by the time scale.
	Step float32
}

type Clock struct {
	accumulated   time.Duration
	tickRate      uint32
	timeScale     float32
	maxFrameDelta time.Duration
	totalTicks    uint64
	simTime       float64
}

// New returns a clock with explicit initial tick rate and time scale. Both are
// clamped to their supported ranges.
func New(tickRate int, timeScale float32) *Clock {
	c := &Clock{maxFrameDelta: DefaultMaxFrameDelta}
	c.SetTickRate(tickRate)
	c.SetTimeScale(timeScale)
	return c
}

func (c *Clock) TickRate() int      { return int(c.tickRate) }
func (c *Clock) TimeScale() float32 { return c.timeScale }
func (c *Clock) TotalTicks() uint64 { return c.totalTicks }
func (c *Clock) SimTime() float64   { return c.simTime }

// Accumulated is the carried-over time not yet consumed by a full tick.
func (c *Clock) Accumulated() time.Duration { return c.accumulated }

// TickDuration is 1s / tick rate.
func (c *Clock) TickDuration() time.Duration {
	return time.Second / time.Duration(c.tickRate)
}

// Alpha is the fraction of a tick left in the accumulator, for interpolating
// render state between the last two ticks.
func (c *Clock) Alpha() float64 {
	return float64(c.accumulated) / float64(c.TickDuration())
}

func (c *Clock) SetTickRate(rate int) {
	if rate < MinTickRate {
		rate = MinTickRate
	}
	if rate > MaxTickRate {
		rate = MaxTickRate
	}
	c.tickRate = uint32(rate)
	// A slower rate leaves the remainder below the new tick duration, a faster
	// one may not; whole ticks are dropped rather than burst.
	c.accumulated %= c.TickDuration()
}

func (c *Clock) SetTimeScale(scale float32) {
	switch {
	case math.IsNaN(float64(scale)):
		scale = 0
	case scale < MinTimeScale:
		scale = MinTimeScale
	case scale > MaxTimeScale:
		scale = MaxTimeScale
	}
	c.timeScale = scale
}

// SetMaxFrameDelta changes the per-frame clamp. Zero or negative disables it.
func (c *Clock) SetMaxFrameDelta(d time.Duration) {
	c.maxFrameDelta = d
}

func (c *Clock) MaxFrameDelta() time.Duration { return c.maxFrameDelta }

// Advance accumulates one frame's wall-clock delta and returns the ticks it
// releases. The accumulation happens immediately; the ticks drain as the
// sequence is ranged over. Ticks a caller stops short of stay in the
// accumulator for the next frame. The sequence is single-use: ranging over it a
// second time yields nothing.
func (c *Clock) Advance(frameDelta time.Duration) iter.Seq[Tick] {
	c.accumulate(c.clampDelta(frameDelta))

	step := float32(c.TickDuration().Seconds()) * sign(c.timeScale)
	used := false

	return func(yield func(Tick) bool) {
		if used {
			return
		}
		used = true

		tickDuration := c.TickDuration()
		for c.accumulated >= tickDuration {
			c.accumulated -= tickDuration
			tick := Tick{Index: c.totalTicks, Step: step}
			c.totalTicks++
			c.simTime += float64(step)
			if !yield(tick) {
				return
			}
		}
	}
}

// Drain advances by frameDelta and calls fn once per released tick. It returns
// the number of ticks.
func (c *Clock) Drain(frameDelta time.Duration, fn func(Tick)) int {
	n := 0
	for tick := range c.Advance(frameDelta) {
		if fn != nil {
			fn(tick)
		}
		n++
	}
	return n
}

func (c *Clock) clampDelta(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	if c.maxFrameDelta > 0 && d > c.maxFrameDelta {
		return c.maxFrameDelta
	}
	return d
}

func (c *Clock) accumulate(d time.Duration) {
	scale := math.Abs(float64(c.timeScale))
	if scale == 0 || d == 0 {
		return
	}
	scaled := float64(d) * scale
	if math.IsInf(scaled, 0) || scaled > math.MaxInt64/2 {
		return
	}
	c.accumulated += time.Duration(scaled)
}

func sign(v float32) float32 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
