// Package viz projects engine state onto the terminal.
//
// Projections are thin: [Draw] maps a physics model onto a braille
// [Canvas], [TraceFrame] renders one trace step as styled text rows, and
// [SamplingView] renders a sampled field as a still frame. Scaling
// constants live in this package, never in the models.
//
// [Player] hosts a playback controller in a Bubble Tea program. The
// controller runs on a manual scheduler that the frame loop advances, and a
// [Marker] eases pointer carets between discrete steps.
//
// # Key Bindings
//
//	Space - Play/Pause
//	←/→   - Step back/forward
//	R     - Reset to the first step
//	Tab   - Select a model parameter, ↑/↓ to tune it
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
package viz
