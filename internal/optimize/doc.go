// Package optimize searches the geometry for better matching setups.
//
// [SpacingSearch] grid-searches candidate stub spacings, solving each
// and scoring by achieved reflection and, optionally, swept bandwidth.
// It backs the remedy the forbidden-region diagnostic can only name:
// pick a d2 that actually works.
package optimize
