// Package dynamo provides the core primitives for stochastic sampling
// of low-dimensional model potentials.
//
// The package defines the fundamental types shared by every sampling
// algorithm in this repository:
//
//   - [Position]: configuration vector of a single walker
//   - [Potential]: energy surface with force = -gradient
//   - [CollectiveVariable]: scalar reaction coordinate over configurations
//   - [StatePredicate]: open-interval membership test for a stable state
//   - [Stepper]: single overdamped Langevin integration step
//
// # Randomness
//
// Every Stepper carries its own seeded source. Algorithms that run
// several walkers (replica exchange, umbrella windows) give each walker
// a distinct seed, so parallel runs stay bit-reproducible.
package dynamo
