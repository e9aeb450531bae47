package estimate

import (
	"fmt"
	"math"
)

// Zwanzig accumulates the free-energy-perturbation observable
// exp(-β·ΔU) as a running average over samples drawn in the source
// system. The estimate is
//
//	ΔF = -(1/β) · ln ⟨exp(-β·(U_target - U_source))⟩_source
//
// For large energy gaps the variance explodes; chain several stages with
// [StagedFEP] instead of trusting a single wide perturbation.
type Zwanzig struct {
	beta float64
	avg  RunningMean
}

func NewZwanzig(beta float64) *Zwanzig {
	return &Zwanzig{beta: beta}
}

// Add records one energy difference U_target(x) - U_source(x).
func (z *Zwanzig) Add(deltaU float64) {
	z.avg.Add(math.Exp(-z.beta * deltaU))
}

func (z *Zwanzig) Count() int { return z.avg.Count() }

// FreeEnergy returns the current ΔF estimate. With no samples, or a
// degenerate non-positive average, the result is NaN; callers must filter
// it rather than treat it as zero.
func (z *Zwanzig) FreeEnergy() float64 {
	a := z.avg.Mean()
	if math.IsNaN(a) || a <= 0 {
		return math.NaN()
	}
	return -math.Log(a) / z.beta
}

// StagedFEP chains free-energy perturbation over intermediate stages and
// sums the per-stage estimates. stages[k] holds the ΔU samples of stage k.
// Every stage must have converged on its own before the sum means much;
// a stage with no samples or a degenerate average fails the whole chain.
func StagedFEP(beta float64, stages [][]float64) (float64, error) {
	if len(stages) == 0 {
		return 0, fmt.Errorf("estimate: no FEP stages")
	}
	total := 0.0
	for k, samples := range stages {
		z := NewZwanzig(beta)
		for _, dU := range samples {
			z.Add(dU)
		}
		dF := z.FreeEnergy()
		if math.IsNaN(dF) {
			return 0, fmt.Errorf("estimate: FEP stage %d has undefined free energy", k)
		}
		total += dF
	}
	return total, nil
}
