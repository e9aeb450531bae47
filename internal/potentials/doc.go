// Package potentials implements the model energy surfaces used by the
// sampling algorithms: a bistable double well, a harmonic well, a
// λ-interpolated pair for alchemical estimators, and a harmonic-bias
// wrapper for umbrella sampling.
package potentials
