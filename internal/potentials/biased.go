package potentials

import "github.com/san-kum/raresim/internal/dynamo"

// Biased adds a harmonic restraint on a collective variable to a base
// potential:
//
//	U(x) = U_base(x) + (K/2)·(ζ(x) − Center)²
//
// The force picks up the chain-rule term −K·(ζ(x)−Center)·∇ζ(x), so the
// collective variable must provide a gradient.
type Biased struct {
	Base   dynamo.Potential
	CV     dynamo.CollectiveVariable
	Center float64
	K      float64
}

func NewBiased(base dynamo.Potential, cv dynamo.CollectiveVariable, center, k float64) *Biased {
	return &Biased{Base: base, CV: cv, Center: center, K: k}
}

func (b *Biased) Energy(x dynamo.Position) float64 {
	d := b.CV.Value(x) - b.Center
	return b.Base.Energy(x) + 0.5*b.K*d*d
}

func (b *Biased) Force(x dynamo.Position) dynamo.Position {
	f := b.Base.Force(x)
	d := b.CV.Value(x) - b.Center
	g := b.CV.Gradient(x)
	out := make(dynamo.Position, len(x))
	for i := range out {
		out[i] = f[i] - b.K*d*g[i]
	}
	return out
}

// BiasEnergy is the restraint energy alone, evaluated at a CV value.
// Umbrella analysis subtracts it from windowed free-energy profiles.
func (b *Biased) BiasEnergy(cv float64) float64 {
	d := cv - b.Center
	return 0.5 * b.K * d * d
}
