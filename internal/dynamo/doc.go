// Package dynamo provides the core geometric primitives shared by the
// strain field, the probe motions and the frame composer.
//
// The package defines the fundamental value types:
//
//   - [Point]: a 2D coordinate (gonum r2.Vec)
//   - [Batch]: an ordered set of points deformed in one call
//   - [Polarization]: amplitude, ellipticity and axis angle of the wave
//   - [PhaseTable]: memoized cos(wt) per frame index
//   - [ConfigError]: setup-time validation failure
//
// # Example
//
//	pol := dynamo.Polarization{Amplitude: 0.2, Ellipticity: 1}
//	wt := dynamo.Phase(frame, 100)
//	out := physics.Deform(ring, wt, pol)
//
// # Thread Safety
//
// All values are immutable once built. A [PhaseTable] is read-only after
// construction and may be shared between goroutines.
package dynamo
