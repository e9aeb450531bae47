// Package umbrella implements umbrella sampling: one harmonically biased
// walker per window along a collective variable, with per-window
// bias-corrected free-energy profiles recovered by Boltzmann inversion.
package umbrella
