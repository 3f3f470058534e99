// Package analysis extracts time series from a rendered pass and
// characterizes them.
//
//   - [Track]: displacement of one particle over every frame
//   - [PowerSpectrum]: magnitude spectrum of a series
//   - [DominantPeriod]: strongest oscillation period, in frames
//   - [NewPortrait]: the path traced by a particle's displacement
//
// # Reading the Portrait
//
// Under a linearly polarized wave a particle moves back and forth along a
// straight segment; its direction reveals the polarization axis:
//
//	track := analysis.Track(res.Frames, "ring", 2)
//	fmt.Print(analysis.PortraitToASCII(analysis.NewPortrait(track), 40, 20))
package analysis
