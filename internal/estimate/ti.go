package estimate

import (
	"fmt"

	"gonum.org/v1/gonum/integrate"
)

// ThermodynamicIntegration computes ΔF by trapezoidal quadrature of
// sampled ⟨dU/dλ⟩ values over an ascending λ grid covering [0,1]. The
// λ=0 and λ=1 endpoints must correspond exactly to the source and target
// systems for the result to be a free-energy difference between them.
func ThermodynamicIntegration(lambdas, dudl []float64) (float64, error) {
	if len(lambdas) != len(dudl) {
		return 0, fmt.Errorf("estimate: %d lambda values but %d dU/dλ averages", len(lambdas), len(dudl))
	}
	if len(lambdas) < 2 {
		return 0, fmt.Errorf("estimate: need at least 2 lambda points, got %d", len(lambdas))
	}
	for i := 1; i < len(lambdas); i++ {
		if lambdas[i] <= lambdas[i-1] {
			return 0, fmt.Errorf("estimate: lambda grid not strictly ascending at index %d", i)
		}
	}
	return integrate.Trapezoidal(lambdas, dudl), nil
}
