package dynamo

import (
	"math"
	"testing"
)

func TestStatePredicateOpenInterval(t *testing.T) {
	s := StatePredicate{Name: "A", CV: Coordinate{Index: 0}, Lower: -1, Upper: 1}

	tests := []struct {
		x    float64
		want bool
	}{
		{0, true},
		{0.999, true},
		{-0.999, true},
		{1, false}, // bounds are exclusive
		{-1, false},
		{1.5, false},
	}

	for _, tt := range tests {
		if got := s.Contains(Position{tt.x}); got != tt.want {
			t.Errorf("Contains(%g) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestCoordinateGradient(t *testing.T) {
	cv := Coordinate{Index: 1}
	x := Position{3, 4, 5}

	if v := cv.Value(x); v != 4 {
		t.Errorf("Value = %g, want 4", v)
	}

	g := cv.Gradient(x)
	want := Position{0, 1, 0}
	for i := range g {
		if g[i] != want[i] {
			t.Errorf("Gradient[%d] = %g, want %g", i, g[i], want[i])
		}
	}
}

func TestPositionHelpers(t *testing.T) {
	p := Position{3, 4}
	if p.Norm() != 5 {
		t.Errorf("Norm = %g, want 5", p.Norm())
	}

	c := p.Clone()
	c[0] = 99
	if p[0] != 3 {
		t.Error("Clone shares backing array with original")
	}

	if !p.IsValid() {
		t.Error("finite position reported invalid")
	}
	if (Position{math.NaN()}).IsValid() {
		t.Error("NaN position reported valid")
	}
	if (Position{math.Inf(1)}).IsValid() {
		t.Error("Inf position reported valid")
	}
}

func TestParamsValidate(t *testing.T) {
	good := Params{Beta: 1, Timestep: 0.01, Diffusion: 1}
	if err := good.Validate(); err != nil {
		t.Errorf("valid params rejected: %v", err)
	}
}
