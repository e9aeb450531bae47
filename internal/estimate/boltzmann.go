package estimate

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Profile is a free-energy curve over collective-variable bins. Bins with
// no density have F = NaN and Defined = false; they must be filtered out
// before any integral or comparison, never coerced to zero.
type Profile struct {
	Centers []float64
	F       []float64
	Defined []bool
}

// DefinedPoints returns only the bins with a finite free energy.
func (p *Profile) DefinedPoints() (centers, f []float64) {
	for i := range p.F {
		if p.Defined[i] {
			centers = append(centers, p.Centers[i])
			f = append(f, p.F[i])
		}
	}
	return centers, f
}

// Density builds a normalized histogram density of samples over [lo, hi)
// with the given number of bins. Samples outside the range are dropped.
func Density(samples []float64, lo, hi float64, bins int) (centers, density []float64) {
	dividers := make([]float64, bins+1)
	floats.Span(dividers, lo, hi)

	sorted := make([]float64, 0, len(samples))
	for _, s := range samples {
		if s >= lo && s < hi {
			sorted = append(sorted, s)
		}
	}
	sort.Float64s(sorted)

	counts := stat.Histogram(nil, dividers, sorted, nil)

	centers = make([]float64, bins)
	density = make([]float64, bins)
	width := (hi - lo) / float64(bins)
	total := floats.Sum(counts)
	for i := range counts {
		centers[i] = lo + (float64(i)+0.5)*width
		if total > 0 {
			density[i] = counts[i] / (total * width)
		}
	}
	return centers, density
}

// BoltzmannInvert converts a density into a free-energy profile,
// F = -(1/β)·ln p. Zero-density bins yield NaN and are marked undefined.
func BoltzmannInvert(beta float64, centers, density []float64) *Profile {
	p := &Profile{
		Centers: append([]float64(nil), centers...),
		F:       make([]float64, len(density)),
		Defined: make([]bool, len(density)),
	}
	for i, d := range density {
		if d > 0 {
			p.F[i] = -math.Log(d) / beta
			p.Defined[i] = true
		} else {
			p.F[i] = math.NaN()
		}
	}
	return p
}
