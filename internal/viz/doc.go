// Package viz is the interactive terminal front end, built on Bubble Tea.
//
// Frames reach the [Model] through a [Bridge], which the engine uses as its
// renderer and which forwards each frame to the running program. Frames from
// a run that has since been reset are dropped.
//
// # Key Bindings
//
//	Enter/S     - Start, or resume when paused
//	Space/P     - Pause/Resume
//	R           - Reset with fresh input
//	Tab/S-Tab   - Next/previous algorithm
//	+/-         - Speed up/slow down
//	T           - Cycle color themes
//	?           - Show help overlay
//	Q           - Quit
package viz
