// Package gui hosts the viewer in a raylib window.
//
// The window is split into the viewport, where the scene is drawn, and an
// optional info panel on the right. The viewport rectangle is recomputed every
// frame from the window size so resizing just works.
//
// # Key Bindings
//
//	I          toggle the info panel
//	] / [      tick rate +10 / -10
//	. / ,      time scale +0.5 / -0.5
//	0          time scale back to 1
//	SPACE      pause / resume
//	B          next background
//	C          reset camera
//	Q          quit
//
// Right-drag pans, left-drag picks, the wheel zooms.
package gui
