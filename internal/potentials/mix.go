package potentials

import "github.com/san-kum/raresim/internal/dynamo"

// Mix interpolates linearly between a source and a target potential:
//
//	U(x; λ) = (1−λ)·U_A(x) + λ·U_B(x)
//
// At λ=0 it reproduces A exactly and at λ=1 it reproduces B, which is the
// boundary contract thermodynamic integration relies on.
type Mix struct {
	A, B   dynamo.Potential
	Lambda float64
}

func NewMix(a, b dynamo.Potential, lambda float64) *Mix {
	return &Mix{A: a, B: b, Lambda: lambda}
}

func (m *Mix) Energy(x dynamo.Position) float64 {
	return (1-m.Lambda)*m.A.Energy(x) + m.Lambda*m.B.Energy(x)
}

func (m *Mix) Force(x dynamo.Position) dynamo.Position {
	fa := m.A.Force(x)
	fb := m.B.Force(x)
	f := make(dynamo.Position, len(x))
	for i := range f {
		f[i] = (1-m.Lambda)*fa[i] + m.Lambda*fb[i]
	}
	return f
}

// DUDLambda is the thermodynamic-integration observable dU/dλ = U_B − U_A.
func (m *Mix) DUDLambda(x dynamo.Position) float64 {
	return m.B.Energy(x) - m.A.Energy(x)
}
