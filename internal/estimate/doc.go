// Package estimate provides the free-energy estimators: thermodynamic
// integration over a λ grid, free-energy perturbation (Zwanzig
// averaging, optionally staged), and Boltzmann inversion of sampled
// densities into free-energy profiles.
package estimate
