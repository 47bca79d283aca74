// Package bench drives a shell.App with synthetic frames and no display.
//
// A run feeds a fixed number of frames at a nominal frame rate with seeded
// jitter and optional stalls, records one trace.FrameRecord per frame and
// evaluates a set of metrics over the records. Sweep runs one independent
// app per tick rate in parallel.
package bench
