package dynamo

import (
	"fmt"
	"math"
	"math/rand"
)

// Stepper advances a configuration by one overdamped Langevin step:
//
//	x' = x + D·β·F(x)·dt + sqrt(2·D·dt)·ξ
//
// with ξ an independent standard normal per coordinate. The stepper owns
// its own seeded random source so that independent walkers stay
// reproducible when run in parallel.
type Stepper struct {
	rng *rand.Rand
}

func NewStepper(seed int64) *Stepper {
	return &Stepper{rng: rand.New(rand.NewSource(seed))}
}

// Step applies one update. The physical constants are passed per call so
// that a walker whose temperature changes (replica label swaps) keeps the
// same noise stream.
func (s *Stepper) Step(x, force Position, p Params) (Position, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(force) != len(x) {
		return nil, fmt.Errorf("force dim %d, position dim %d: %w", len(force), len(x), ErrShapeMismatch)
	}

	drift := p.Diffusion * p.Beta * p.Timestep
	noise := math.Sqrt(2 * p.Diffusion * p.Timestep)

	out := make(Position, len(x))
	for i := range x {
		out[i] = x[i] + drift*force[i] + noise*s.rng.NormFloat64()
	}
	return out, nil
}
