package dynamo

import "math"

type Position []float64

func (p Position) Clone() Position {
	c := make(Position, len(p))
	copy(c, p)
	return c
}

func (p Position) IsValid() bool {
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (p Position) Norm() float64 {
	sum := 0.0
	for _, v := range p {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Potential exposes the energy surface a walker moves on. Force must equal
// the negative gradient of Energy; this is not checked at runtime but is
// verified against finite differences in tests.
type Potential interface {
	Energy(x Position) float64
	Force(x Position) Position
}

// CollectiveVariable maps a configuration to a scalar reaction coordinate.
// Gradient is required only when the variable drives a bias potential.
type CollectiveVariable interface {
	Value(x Position) float64
	Gradient(x Position) Position
}

// Coordinate is the simplest collective variable: projection onto one
// coordinate axis.
type Coordinate struct {
	Index int
}

func (c Coordinate) Value(x Position) float64 { return x[c.Index] }

func (c Coordinate) Gradient(x Position) Position {
	g := make(Position, len(x))
	g[c.Index] = 1
	return g
}

// StatePredicate classifies a configuration as inside a named stable state
// when its collective variable lies strictly inside (Lower, Upper).
type StatePredicate struct {
	Name  string
	CV    CollectiveVariable
	Lower float64
	Upper float64
}

func (s StatePredicate) Contains(x Position) bool {
	v := s.CV.Value(x)
	return v > s.Lower && v < s.Upper
}

// Params holds the physical constants of an overdamped Langevin run.
// All three must be positive; Validate is called by every constructor
// that accepts a Params.
type Params struct {
	Beta      float64
	Timestep  float64
	Diffusion float64
}

func (p Params) Validate() error {
	if p.Beta <= 0 {
		return paramError("beta", p.Beta)
	}
	if p.Timestep <= 0 {
		return paramError("timestep", p.Timestep)
	}
	if p.Diffusion <= 0 {
		return paramError("diffusion", p.Diffusion)
	}
	return nil
}
