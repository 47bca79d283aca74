// Package clock provides the fixed-timestep simulation clock.
//
// A [Clock] converts variable wall-clock frame deltas into a deterministic
// sequence of fixed-size [Tick] values:
//
//   - each frame adds frame_delta * |time_scale| to the accumulator
//   - while the accumulator holds at least one tick duration, one tick fires
//   - the remainder carries over to the next frame
//
// The sign of the time scale never changes how many ticks fire. It only flips
// the sign of [Tick.Step] so a consumer can integrate backwards.
//
// # Example
//
//	clk := clock.New(100, 1.0)
//	for tick := range clk.Advance(frameDelta) {
//		world.Step(tick.Step)
//	}
//
// # Thread Safety
//
// Clock is NOT thread-safe. It is owned by a single frame loop.
package clock
