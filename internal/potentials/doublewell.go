package potentials

import (
	"math"

	"github.com/san-kum/raresim/internal/dynamo"
)

// DoubleWell is a bistable surface: quartic along the first coordinate,
// harmonic in the remaining ones.
//
//	U(x) = A·(x₀² − B)² + (Kappa/2)·Σᵢ₌₁ xᵢ²
//
// Minima sit at x₀ = ±sqrt(B); the barrier at x₀ = 0 has height A·B².
type DoubleWell struct {
	A, B, Kappa float64
}

func NewDoubleWell() *DoubleWell {
	return &DoubleWell{A: 1.0, B: 1.0, Kappa: 1.0}
}

func (d *DoubleWell) Energy(x dynamo.Position) float64 {
	if len(x) == 0 {
		return 0
	}
	e := d.A * math.Pow(x[0]*x[0]-d.B, 2)
	for _, v := range x[1:] {
		e += 0.5 * d.Kappa * v * v
	}
	return e
}

func (d *DoubleWell) Force(x dynamo.Position) dynamo.Position {
	f := make(dynamo.Position, len(x))
	if len(x) == 0 {
		return f
	}
	f[0] = -4 * d.A * x[0] * (x[0]*x[0] - d.B)
	for i, v := range x[1:] {
		f[i+1] = -d.Kappa * v
	}
	return f
}

// BarrierHeight returns the energy difference between the saddle and a minimum.
func (d *DoubleWell) BarrierHeight() float64 { return d.A * d.B * d.B }

// Minimum returns the left (negative) or right (positive) well bottom.
func (d *DoubleWell) Minimum(dim int, right bool) dynamo.Position {
	x := make(dynamo.Position, dim)
	x[0] = math.Sqrt(d.B)
	if !right {
		x[0] = -x[0]
	}
	return x
}
