// Package tui is the terminal host for the viewer.
//
// It drives the shell from a Bubble Tea program:
//
//   - a frame command re-arms every repaint, so drawing is continuous
//   - mouse events are folded into one pointer state per frame
//   - [CanvasRenderer] rasterizes the render descriptor onto a braille canvas
//
// # Key Bindings
//
//	i     - Toggle info panel
//	[ ]   - Tick rate down/up
//	, .   - Time scale down/up
//	0     - Time scale back to 1
//	Space - Pause/Resume (time scale 0)
//	b     - Cycle background color
//	#     - Type a background color (hex, Enter to apply)
//	c     - Reset camera
//	q     - Quit
//
// Right-drag pans, left-drag picks, the wheel zooms.
package tui
