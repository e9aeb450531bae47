package replica

import (
	"math"
	"sort"
	"testing"

	"github.com/san-kum/raresim/internal/dynamo"
	"github.com/san-kum/raresim/internal/potentials"
)

func TestSwapProbability(t *testing.T) {
	tests := []struct {
		name             string
		dU, betaI, betaJ float64
		want             float64
	}{
		{"zero energy gap", 0, 1, 2, 1.0},
		{"equal betas", 5, 2, 2, 1.0},
		{"favorable swap clips to one", -1, 1, 2, 1.0},
		{"unfavorable swap", 1, 1, 2, math.Exp(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := swapProbability(tt.dU, tt.betaI, tt.betaJ)
			if math.Abs(got-tt.want) > 1e-15 {
				t.Errorf("swapProbability(%g, %g, %g) = %g, want %g", tt.dU, tt.betaI, tt.betaJ, got, tt.want)
			}
		})
	}
}

func TestExchangeMatrixSymmetry(t *testing.T) {
	m := NewExchangeMatrix(3)
	m.RecordAttempt(0, 2)
	m.RecordAttempt(0, 2)
	m.RecordAccept(0, 2)

	if m.Attempted(0, 2) != 2 || m.Attempted(2, 0) != 2 {
		t.Errorf("attempted counters not symmetric: %d vs %d", m.Attempted(0, 2), m.Attempted(2, 0))
	}
	if m.Accepted(2, 0) != 1 {
		t.Errorf("accepted counter = %d, want 1", m.Accepted(2, 0))
	}
	if got := m.AcceptanceRate(0, 2); math.Abs(got-0.5) > 1e-15 {
		t.Errorf("acceptance rate = %g, want 0.5", got)
	}
	if m.TotalAttempts() != 2 {
		t.Errorf("total attempts = %d, want 2", m.TotalAttempts())
	}
}

func newController(t *testing.T, cfg Config) *Controller {
	t.Helper()
	pot := potentials.NewHarmonic(1, dynamo.Position{0, 0})
	x0 := make([]dynamo.Position, len(cfg.Betas))
	for i := range x0 {
		x0[i] = dynamo.Position{0, 0}
	}
	c, err := NewController(pot, x0, cfg)
	if err != nil {
		t.Fatalf("controller: %v", err)
	}
	return c
}

func TestAttemptCountInvariant(t *testing.T) {
	// One attempt per exchange interval, regardless of acceptance.
	cfg := Config{
		Betas:             []float64{1, 2, 3},
		Timestep:          0.001,
		Diffusion:         1,
		Steps:             1000,
		ExchangeFrequency: 50,
		Seed:              1,
	}
	c := newController(t, cfg)
	res, err := c.Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := cfg.Steps / cfg.ExchangeFrequency
	if got := res.Matrix.TotalAttempts(); got != want {
		t.Errorf("total attempts = %d, want %d", got, want)
	}
}

func TestSingleReplicaNoExchange(t *testing.T) {
	cfg := Config{
		Betas:             []float64{1},
		Timestep:          0.001,
		Diffusion:         1,
		Steps:             200,
		ExchangeFrequency: 10,
		Seed:              2,
	}
	c := newController(t, cfg)
	res, err := c.Run()
	if err != nil {
		t.Fatalf("single replica must not error: %v", err)
	}
	if res.Matrix.TotalAttempts() != 0 {
		t.Errorf("attempts = %d, want 0 for a single replica", res.Matrix.TotalAttempts())
	}
	if len(res.Trajectories) != 1 || len(res.Trajectories[0]) != 201 {
		t.Errorf("trajectory length %d, want 201", len(res.Trajectories[0]))
	}
}

func TestConfigurationSwapKeepsBetasFixed(t *testing.T) {
	cfg := Config{
		Betas:             []float64{1, 2},
		Timestep:          0.001,
		Diffusion:         1,
		Steps:             500,
		ExchangeFrequency: 5,
		Swap:              SwapConfigurations,
		Seed:              3,
	}
	c := newController(t, cfg)
	if _, err := c.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}

	betas := c.Betas()
	for i, want := range cfg.Betas {
		if betas[i] != want {
			t.Errorf("slot %d beta = %g, want fixed %g", i, betas[i], want)
		}
	}
}

func TestLabelSwapPreservesLadder(t *testing.T) {
	cfg := Config{
		Betas:             []float64{1, 2, 4},
		Timestep:          0.001,
		Diffusion:         1,
		Steps:             500,
		ExchangeFrequency: 5,
		Swap:              SwapLabels,
		Seed:              4,
	}
	c := newController(t, cfg)
	if _, err := c.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}

	// Labels migrate between slots but the ladder as a set is invariant.
	betas := c.Betas()
	sort.Float64s(betas)
	for i, want := range []float64{1, 2, 4} {
		if betas[i] != want {
			t.Errorf("ladder entry %d = %g, want %g", i, betas[i], want)
		}
	}
}

func TestAdjacentPairSweep(t *testing.T) {
	cfg := Config{
		Betas:             []float64{1, 2, 3},
		Timestep:          0.001,
		Diffusion:         1,
		Steps:             300,
		ExchangeFrequency: 100,
		Pair:              PairAdjacent,
		Seed:              5,
	}
	c := newController(t, cfg)
	res, err := c.Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	// Three attempts sweep (0,1), (1,2), (0,1); no attempt touches (0,2).
	if res.Matrix.Attempted(0, 2) != 0 {
		t.Errorf("non-adjacent pair attempted %d times", res.Matrix.Attempted(0, 2))
	}
	if res.Matrix.Attempted(0, 1)+res.Matrix.Attempted(1, 2) != 3 {
		t.Errorf("adjacent attempts = %d, want 3", res.Matrix.Attempted(0, 1)+res.Matrix.Attempted(1, 2))
	}
}

func TestControllerValidation(t *testing.T) {
	pot := potentials.NewHarmonic(1, dynamo.Position{0})
	x0 := []dynamo.Position{{0}, {0}}

	tests := []struct {
		name string
		cfg  Config
		x0   []dynamo.Position
	}{
		{"empty ladder", Config{Timestep: 0.001, Diffusion: 1, ExchangeFrequency: 1}, nil},
		{"duplicate beta", Config{Betas: []float64{1, 1}, Timestep: 0.001, Diffusion: 1, ExchangeFrequency: 1}, x0},
		{"position count mismatch", Config{Betas: []float64{1, 2}, Timestep: 0.001, Diffusion: 1, ExchangeFrequency: 1}, x0[:1]},
		{"zero exchange frequency", Config{Betas: []float64{1, 2}, Timestep: 0.001, Diffusion: 1}, x0},
		{"negative beta", Config{Betas: []float64{-1, 2}, Timestep: 0.001, Diffusion: 1, ExchangeFrequency: 1}, x0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewController(pot, tt.x0, tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
