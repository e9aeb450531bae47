// Package tps implements transition path sampling: Monte Carlo in the
// space of whole trajectories, proposing new paths by shooting from a
// uniformly chosen point of the current path.
//
// Two acceptance rules are supported. Fixed-length sampling accepts any
// reactive proposal; flexible-length sampling additionally applies the
// min(1, N_old/N_new) length correction required for detailed balance
// when path lengths vary.
//
// A rejected trial repeats the current path in the output ensemble, which
// keeps the ensemble a valid sample of the path distribution.
package tps
