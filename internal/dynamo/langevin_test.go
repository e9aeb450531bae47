package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestStepPreservesShape(t *testing.T) {
	s := NewStepper(1)
	p := Params{Beta: 1, Timestep: 0.001, Diffusion: 1}

	for _, dim := range []int{1, 2, 5} {
		x := make(Position, dim)
		f := make(Position, dim)
		next, err := s.Step(x, f, p)
		if err != nil {
			t.Fatalf("dim %d: step failed: %v", dim, err)
		}
		if len(next) != dim {
			t.Errorf("dim %d: got %d coordinates", dim, len(next))
		}
	}
}

func TestStepZeroForceUnbiased(t *testing.T) {
	s := NewStepper(42)
	p := Params{Beta: 1, Timestep: 0.001, Diffusion: 1}

	x0 := Position{0.5, -0.5}
	force := Position{0, 0}

	const n = 1000
	mean := make([]float64, len(x0))
	for i := 0; i < n; i++ {
		next, err := s.Step(x0, force, p)
		if err != nil {
			t.Fatalf("step failed: %v", err)
		}
		for j, v := range next {
			mean[j] += v / n
		}
	}

	// Per-step noise std is sqrt(2*D*dt) ~ 0.045, so the mean of 1000
	// draws sits within ~0.0014 of the start; 0.01 is a safe bound.
	for j := range mean {
		if math.Abs(mean[j]-x0[j]) > 0.01 {
			t.Errorf("coordinate %d: mean %.5f drifted from %.5f with zero force", j, mean[j], x0[j])
		}
	}
}

func TestStepInvalidParams(t *testing.T) {
	s := NewStepper(1)
	x := Position{0}
	f := Position{0}

	tests := []struct {
		name string
		p    Params
	}{
		{"zero beta", Params{Beta: 0, Timestep: 0.001, Diffusion: 1}},
		{"negative beta", Params{Beta: -1, Timestep: 0.001, Diffusion: 1}},
		{"zero timestep", Params{Beta: 1, Timestep: 0, Diffusion: 1}},
		{"negative diffusion", Params{Beta: 1, Timestep: 0.001, Diffusion: -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Step(x, f, tt.p); !errors.Is(err, ErrNonPositiveParam) {
				t.Errorf("expected ErrNonPositiveParam, got %v", err)
			}
		})
	}
}

func TestStepShapeMismatch(t *testing.T) {
	s := NewStepper(1)
	p := Params{Beta: 1, Timestep: 0.001, Diffusion: 1}

	_, err := s.Step(Position{0, 0}, Position{0}, p)
	if !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}
}

func TestStepDriftTerm(t *testing.T) {
	// With a huge force and tiny noise relative to drift, the update is
	// dominated by D*beta*F*dt; verify the deterministic part directly by
	// averaging out the noise.
	s := NewStepper(7)
	p := Params{Beta: 2, Timestep: 0.001, Diffusion: 1}

	x := Position{0}
	f := Position{1000}

	const n = 2000
	mean := 0.0
	for i := 0; i < n; i++ {
		next, err := s.Step(x, f, p)
		if err != nil {
			t.Fatalf("step failed: %v", err)
		}
		mean += next[0] / n
	}

	want := p.Diffusion * p.Beta * f[0] * p.Timestep // 2.0
	if math.Abs(mean-want) > 0.01 {
		t.Errorf("mean drift %.4f, want %.4f", mean, want)
	}
}
