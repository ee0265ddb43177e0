// Package viz renders matching results for the terminal.
//
// Two kinds of output are produced:
//
//   - [SmithChart]: a Braille-canvas Smith chart with the reflection
//     locus of a tuned network, from load to chart center
//   - [S11Panel], [ReturnLossPanel], [VSWRPanel]: asciigraph line
//     charts of a frequency sweep
//
// Everything returns plain strings; callers decide where they go.
package viz
