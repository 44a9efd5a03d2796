// Package analysis extracts periodicity from sampled signals.
//
//   - [PowerSpectrum] and [DominantFrequency] use an FFT of any length
//   - [Crossings] and [Period] find positive-going threshold crossings
//     with linear interpolation between samples
//
// Both are used on probe series from headless runs, for example the
// midpoint of a vibrating string or a wave sampled at a fixed point:
//
//	f := analysis.DominantFrequency(series, 1/dt)
package analysis
