package replica

import (
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/san-kum/raresim/internal/dynamo"
	"github.com/san-kum/raresim/internal/traj"
)

// SwapPolicy decides what an accepted exchange actually swaps.
type SwapPolicy int

const (
	// SwapConfigurations keeps a fixed temperature per replica slot and
	// exchanges the physical configurations. Downstream analysis then
	// reads each slot's trajectory as sampled at a single temperature.
	// This is the default.
	SwapConfigurations SwapPolicy = iota
	// SwapLabels exchanges the temperatures instead, producing continuous
	// configuration trajectories whose temperature fluctuates.
	SwapLabels
)

// PairPolicy decides which pair a swap attempt targets.
type PairPolicy int

const (
	// PairRandom draws two distinct slots uniformly, resampling until the
	// indices differ.
	PairRandom PairPolicy = iota
	// PairAdjacent sweeps over neighboring ladder pairs (0,1), (1,2), ...
	PairAdjacent
)

// Config describes one replica-exchange run.
type Config struct {
	// Betas is the inverse-temperature ladder, one entry per replica.
	// Entries must be positive and pairwise distinct.
	Betas []float64

	Timestep  float64
	Diffusion float64

	Steps             int
	ExchangeFrequency int
	OutputStride      int

	Swap SwapPolicy
	Pair PairPolicy

	Seed int64
}

type walker struct {
	id      int
	params  dynamo.Params
	x       dynamo.Position
	stepper *dynamo.Stepper
	traj    traj.Trajectory
	err     error
}

// Result of a replica-exchange run. Trajectories are indexed by replica
// slot; under SwapConfigurations slot i stays at Betas[i] throughout.
type Result struct {
	Trajectories []traj.Trajectory
	Final        []dynamo.Position
	Matrix       *ExchangeMatrix
}

// Controller advances N replicas of the same potential at different
// temperatures and periodically attempts Metropolis swaps between them.
//
// Within each exchange interval all replicas finish propagating before
// any swap attempt reads their configurations; the propagation goroutines
// are joined first, so the Metropolis test always sees same-step
// snapshots.
type Controller struct {
	pot     dynamo.Potential
	cfg     Config
	walkers []*walker
	matrix  *ExchangeMatrix
	rng     *rand.Rand
	sweep   int
}

func NewController(pot dynamo.Potential, x0 []dynamo.Position, cfg Config) (*Controller, error) {
	n := len(cfg.Betas)
	if n == 0 {
		return nil, fmt.Errorf("empty beta ladder")
	}
	if len(x0) != n {
		return nil, fmt.Errorf("%d initial positions for %d replicas", len(x0), n)
	}
	if cfg.ExchangeFrequency <= 0 {
		return nil, fmt.Errorf("exchange frequency must be positive, got %d", cfg.ExchangeFrequency)
	}
	seen := make(map[float64]bool, n)
	for _, b := range cfg.Betas {
		if seen[b] {
			return nil, fmt.Errorf("duplicate beta %g in ladder", b)
		}
		seen[b] = true
	}

	c := &Controller{
		pot:    pot,
		cfg:    cfg,
		matrix: NewExchangeMatrix(n),
		rng:    rand.New(rand.NewSource(cfg.Seed)),
	}
	for i := 0; i < n; i++ {
		p := dynamo.Params{Beta: cfg.Betas[i], Timestep: cfg.Timestep, Diffusion: cfg.Diffusion}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		c.walkers = append(c.walkers, &walker{
			id:      i,
			params:  p,
			x:       x0[i].Clone(),
			stepper: dynamo.NewStepper(cfg.Seed + int64(i) + 1),
			traj:    traj.Trajectory{x0[i].Clone()},
		})
	}
	return c, nil
}

// Betas returns the current inverse temperature of each replica slot.
// Under SwapConfigurations this never changes; under SwapLabels it
// tracks the accepted label swaps.
func (c *Controller) Betas() []float64 {
	out := make([]float64, len(c.walkers))
	for i, w := range c.walkers {
		out[i] = w.params.Beta
	}
	return out
}

// Run executes cfg.Steps integration steps with an exchange attempt every
// cfg.ExchangeFrequency steps. A single-replica ladder propagates normally
// and simply never attempts an exchange.
func (c *Controller) Run() (*Result, error) {
	stride := c.cfg.OutputStride
	if stride < 1 {
		stride = 1
	}

	for step := 1; step <= c.cfg.Steps; step++ {
		if err := c.propagate(step, stride); err != nil {
			return nil, err
		}
		if step%c.cfg.ExchangeFrequency == 0 && len(c.walkers) > 1 {
			c.attemptExchange()
		}
	}

	res := &Result{Matrix: c.matrix}
	for _, w := range c.walkers {
		res.Trajectories = append(res.Trajectories, w.traj)
		res.Final = append(res.Final, w.x.Clone())
	}
	return res, nil
}

// propagate advances every walker one step concurrently and joins them
// all before returning, which is the barrier the exchange step relies on.
func (c *Controller) propagate(step, stride int) error {
	var wg sync.WaitGroup
	for _, w := range c.walkers {
		wg.Add(1)
		go func(w *walker) {
			defer wg.Done()
			next, err := w.stepper.Step(w.x, c.pot.Force(w.x), w.params)
			if err != nil {
				w.err = err
				return
			}
			w.x = next
			if step%stride == 0 {
				w.traj = append(w.traj, next.Clone())
			}
		}(w)
	}
	wg.Wait()

	for _, w := range c.walkers {
		if w.err != nil {
			return w.err
		}
	}
	return nil
}

func (c *Controller) attemptExchange() {
	i, j := c.pickPair()
	c.matrix.RecordAttempt(i, j)

	wi, wj := c.walkers[i], c.walkers[j]
	dU := c.pot.Energy(wi.x) - c.pot.Energy(wj.x)

	if c.rng.Float64() < swapProbability(dU, wi.params.Beta, wj.params.Beta) {
		c.matrix.RecordAccept(i, j)
		switch c.cfg.Swap {
		case SwapConfigurations:
			wi.x, wj.x = wj.x, wi.x
		case SwapLabels:
			wi.params.Beta, wj.params.Beta = wj.params.Beta, wi.params.Beta
		}
	}
}

func (c *Controller) pickPair() (int, int) {
	n := len(c.walkers)
	switch c.cfg.Pair {
	case PairAdjacent:
		i := c.sweep % (n - 1)
		c.sweep++
		return i, i + 1
	default:
		i := c.rng.Intn(n)
		j := c.rng.Intn(n)
		for j == i {
			j = c.rng.Intn(n)
		}
		return i, j
	}
}

// swapProbability is the Metropolis factor min(1, exp(-ΔU·(βi-βj))).
func swapProbability(dU, betaI, betaJ float64) float64 {
	p := math.Exp(-dU * (betaI - betaJ))
	if p > 1 {
		return 1
	}
	return p
}
