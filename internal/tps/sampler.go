package tps

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/raresim/internal/dynamo"
	"github.com/san-kum/raresim/internal/traj"
)

// LengthMode selects the acceptance rule of the path sampler.
type LengthMode int

const (
	// FixedLength accepts every reactive proposal unconditionally.
	FixedLength LengthMode = iota
	// FlexibleLength accepts reactive proposals with probability
	// min(1, N_old/N_new), the detailed-balance correction for paths of
	// varying length.
	FlexibleLength
)

// Config controls one path-sampling run.
type Config struct {
	Mode LengthMode

	// PathLength is the step count of a full fixed-length path; shooting
	// segments use PathLength/2+1 forward and PathLength/2 backward steps.
	PathLength int

	// MaxSteps caps each flexible-length segment.
	MaxSteps int

	Trials        int
	Equilibration int
	OutputStride  int
}

func (c Config) validate() error {
	if c.Trials <= 0 {
		return fmt.Errorf("trials must be positive, got %d", c.Trials)
	}
	if c.Mode == FixedLength && c.PathLength <= 0 {
		return fmt.Errorf("path length must be positive, got %d", c.PathLength)
	}
	if c.Mode == FlexibleLength && c.MaxSteps <= 0 {
		return fmt.Errorf("max steps must be positive, got %d", c.MaxSteps)
	}
	if c.Equilibration < 0 || c.Equilibration >= c.Trials {
		return fmt.Errorf("equilibration %d must lie in [0, trials)", c.Equilibration)
	}
	return nil
}

// Result is the sampled path ensemble plus acceptance statistics. The
// ensemble contains the current path at every sampled trial, repeats
// included; omitting repeats would bias it toward fast-moving regions.
type Result struct {
	Ensemble       []traj.Trajectory
	ShootingPoints []dynamo.Position
	Trials         int
	Accepted       int
}

func (r *Result) AcceptanceRate() float64 {
	if r.Trials == 0 {
		return 0
	}
	return float64(r.Accepted) / float64(r.Trials)
}

// Sampler performs Monte Carlo over whole trajectories by shooting moves.
type Sampler struct {
	gen     *traj.Generator
	stateA  dynamo.StatePredicate
	stateB  dynamo.StatePredicate
	cfg     Config
	rng     *rand.Rand
	current traj.Trajectory
}

// New creates a sampler starting from an initial accepted path, normally a
// reactive trajectory obtained by a steered or high-temperature run.
func New(gen *traj.Generator, a, b dynamo.StatePredicate, initial traj.Trajectory, cfg Config, seed int64) (*Sampler, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if len(initial) == 0 {
		return nil, dynamo.ErrEmptyTrajectory
	}
	return &Sampler{
		gen:     gen,
		stateA:  a,
		stateB:  b,
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(seed)),
		current: initial.Clone(),
	}, nil
}

// Current returns the currently accepted path.
func (s *Sampler) Current() traj.Trajectory { return s.current }

// Run executes cfg.Trials shooting moves and returns the path ensemble.
func (s *Sampler) Run() (*Result, error) {
	stride := s.cfg.OutputStride
	if stride < 1 {
		stride = 1
	}

	res := &Result{}
	for trial := 0; trial < s.cfg.Trials; trial++ {
		accepted, shoot, err := s.trial()
		if err != nil {
			return nil, err
		}
		res.Trials++
		if accepted {
			res.Accepted++
			res.ShootingPoints = append(res.ShootingPoints, shoot)
		}

		// Record the current path, freshly accepted or carried over.
		if trial >= s.cfg.Equilibration && (trial-s.cfg.Equilibration)%stride == 0 {
			res.Ensemble = append(res.Ensemble, s.current.Clone())
		}
	}
	return res, nil
}

func (s *Sampler) trial() (bool, dynamo.Position, error) {
	shoot := s.current[s.rng.Intn(len(s.current))].Clone()

	forward, backward, err := s.shoot(shoot)
	if err != nil {
		return false, nil, err
	}

	if !s.reactive(forward, backward) {
		return false, nil, nil
	}

	if s.cfg.Mode == FlexibleLength {
		nOld := len(s.current) - 1
		nNew := len(forward) + len(backward) - 1
		if s.rng.Float64() >= lengthAcceptance(nOld, nNew) {
			return false, nil, nil
		}
	}

	// Overdamped dynamics is time-reversible, so the backward segment is
	// just a forward run played in reverse.
	s.current = backward.Reverse().Concat(forward)
	return true, shoot, nil
}

func (s *Sampler) shoot(x dynamo.Position) (forward, backward traj.Trajectory, err error) {
	states := []dynamo.StatePredicate{s.stateA, s.stateB}

	switch s.cfg.Mode {
	case FixedLength:
		forward, err = s.gen.Run(x, s.cfg.PathLength/2+1)
		if err != nil {
			return nil, nil, err
		}
		backward, err = s.gen.Run(x, s.cfg.PathLength/2)
		if err != nil {
			return nil, nil, err
		}
	case FlexibleLength:
		fr, ferr := s.gen.RunUntil(x, s.cfg.MaxSteps, states)
		if ferr != nil {
			return nil, nil, ferr
		}
		br, berr := s.gen.RunUntil(x, s.cfg.MaxSteps, states)
		if berr != nil {
			return nil, nil, berr
		}
		forward, backward = fr.Traj, br.Traj
	}
	return forward, backward, nil
}

// reactive reports whether the concatenated proposal connects the two
// stable states, in either traversal direction.
func (s *Sampler) reactive(forward, backward traj.Trajectory) bool {
	return isReactive(
		s.stateA.Contains(forward.End()), s.stateB.Contains(forward.End()),
		s.stateA.Contains(backward.End()), s.stateB.Contains(backward.End()),
	)
}

func isReactive(fwdInA, fwdInB, bwdInA, bwdInB bool) bool {
	return (fwdInB && bwdInA) || (fwdInA && bwdInB)
}

// lengthAcceptance is the flexible-length Metropolis factor min(1, old/new).
func lengthAcceptance(nOld, nNew int) float64 {
	if nNew <= 0 {
		return 0
	}
	ratio := float64(nOld) / float64(nNew)
	if ratio > 1 {
		return 1
	}
	return ratio
}
