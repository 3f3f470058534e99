// Package viz plays a strain-field animation back in the terminal.
//
// [Preview] is a Bubble Tea model that advances a [sim.Composer] once per
// tick and draws each frame onto a braille [Canvas]: two dots across and
// four down per character cell. Grid lines, trails and traces are drawn
// on a muted layer under the probes.
//
// The side panel shows the frame counter, the wave parameters, the
// displacement history of the first probe's reference point and any
// registered metrics.
//
// # Key Bindings
//
//	Q / Ctrl+C - Quit
package viz
