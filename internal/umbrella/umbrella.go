package umbrella

import (
	"fmt"
	"sync"

	"github.com/san-kum/raresim/internal/dynamo"
	"github.com/san-kum/raresim/internal/estimate"
	"github.com/san-kum/raresim/internal/potentials"
	"github.com/san-kum/raresim/internal/traj"
)

// Config describes a set of umbrella windows along one collective
// variable: a list of bias centers sharing a force constant.
type Config struct {
	Centers       []float64
	ForceConstant float64

	Steps         int
	Equilibration int
	OutputStride  int

	// Histogram range and resolution over the collective variable.
	Bins   int
	Lo, Hi float64

	Seed int64
}

func (c Config) validate() error {
	if len(c.Centers) == 0 {
		return fmt.Errorf("umbrella: no window centers")
	}
	if c.ForceConstant <= 0 {
		return fmt.Errorf("umbrella: force constant must be positive, got %g", c.ForceConstant)
	}
	if c.Steps <= 0 {
		return fmt.Errorf("umbrella: steps must be positive, got %d", c.Steps)
	}
	if c.Equilibration < 0 || c.Equilibration >= c.Steps {
		return fmt.Errorf("umbrella: equilibration %d must lie in [0, steps)", c.Equilibration)
	}
	if c.Bins <= 0 || c.Hi <= c.Lo {
		return fmt.Errorf("umbrella: bad histogram range [%g, %g) with %d bins", c.Lo, c.Hi, c.Bins)
	}
	return nil
}

// Window is the result of one biased run. Corrected is the windowed
// free-energy profile with the harmonic bias subtracted at each bin
// center; profiles from different windows still differ by an additive
// per-window offset, whose reconciliation (WHAM or manual) is out of
// scope here. Overlapping defined bins across windows carry the data
// needed for that step.
type Window struct {
	Center  float64
	K       float64
	Samples []float64

	Biased    *estimate.Profile
	Corrected *estimate.Profile
}

// Run executes one biased walker per window. Windows are independent, so
// they run concurrently, each with its own seed; results are joined
// before returning.
func Run(pot dynamo.Potential, cv dynamo.CollectiveVariable, params dynamo.Params, x0 dynamo.Position, cfg Config) ([]*Window, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	windows := make([]*Window, len(cfg.Centers))
	errs := make([]error, len(cfg.Centers))

	var wg sync.WaitGroup
	for i, center := range cfg.Centers {
		wg.Add(1)
		go func(idx int, center float64) {
			defer wg.Done()
			windows[idx], errs[idx] = runWindow(pot, cv, params, x0, center, cfg, cfg.Seed+int64(idx)+1)
		}(i, center)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return windows, nil
}

func runWindow(pot dynamo.Potential, cv dynamo.CollectiveVariable, params dynamo.Params, x0 dynamo.Position, center float64, cfg Config, seed int64) (*Window, error) {
	biased := potentials.NewBiased(pot, cv, center, cfg.ForceConstant)

	gen, err := traj.NewGenerator(biased, params, seed)
	if err != nil {
		return nil, err
	}
	if cfg.OutputStride > 1 {
		gen.OutputStride = cfg.OutputStride
	}

	t, err := gen.Run(x0, cfg.Steps)
	if err != nil {
		return nil, err
	}

	stride := cfg.OutputStride
	if stride < 1 {
		stride = 1
	}
	skip := cfg.Equilibration / stride
	if skip >= len(t) {
		skip = len(t) - 1
	}
	samples := t[skip:].Values(cv)

	centers, density := estimate.Density(samples, cfg.Lo, cfg.Hi, cfg.Bins)
	raw := estimate.BoltzmannInvert(params.Beta, centers, density)

	corrected := &estimate.Profile{
		Centers: raw.Centers,
		F:       make([]float64, len(raw.F)),
		Defined: append([]bool(nil), raw.Defined...),
	}
	for i := range raw.F {
		corrected.F[i] = raw.F[i] - biased.BiasEnergy(raw.Centers[i])
	}

	return &Window{
		Center:    center,
		K:         cfg.ForceConstant,
		Samples:   samples,
		Biased:    raw,
		Corrected: corrected,
	}, nil
}

// Overlap returns, per bin index, the windows (by position in ws) whose
// corrected profile is defined there. Bins covered by two or more windows
// are the anchor points for external offset reconciliation.
func Overlap(ws []*Window) map[int][]int {
	out := make(map[int][]int)
	for wi, w := range ws {
		for bi, ok := range w.Corrected.Defined {
			if ok {
				out[bi] = append(out[bi], wi)
			}
		}
	}
	for bi, wins := range out {
		if len(wins) < 2 {
			delete(out, bi)
		}
	}
	return out
}
