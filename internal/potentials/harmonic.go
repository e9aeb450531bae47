package potentials

import "github.com/san-kum/raresim/internal/dynamo"

// Harmonic is an isotropic quadratic well centered at Center:
// U(x) = (K/2)·|x − Center|².
type Harmonic struct {
	K      float64
	Center dynamo.Position
}

func NewHarmonic(k float64, center dynamo.Position) *Harmonic {
	return &Harmonic{K: k, Center: center.Clone()}
}

func (h *Harmonic) Energy(x dynamo.Position) float64 {
	e := 0.0
	for i, v := range x {
		d := v - h.center(i)
		e += 0.5 * h.K * d * d
	}
	return e
}

func (h *Harmonic) Force(x dynamo.Position) dynamo.Position {
	f := make(dynamo.Position, len(x))
	for i, v := range x {
		f[i] = -h.K * (v - h.center(i))
	}
	return f
}

func (h *Harmonic) center(i int) float64 {
	if i < len(h.Center) {
		return h.Center[i]
	}
	return 0
}
