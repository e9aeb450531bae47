package traj

import (
	"fmt"

	"github.com/san-kum/raresim/internal/dynamo"
)

// Status is the terminal condition of a bounded generation run.
type Status int

const (
	// StatusMaxSteps means the step budget ran out before any state was hit.
	StatusMaxSteps Status = iota
	// StatusHitState means a stable-state predicate fired and stopped the run.
	StatusHitState
)

// Result is the outcome of a bounded-with-early-stop generation.
type Result struct {
	Traj   Trajectory
	Status Status
	State  string // name of the predicate that fired, empty otherwise
	Steps  int    // integrator steps actually taken
}

// Generator drives a Langevin stepper over a potential, recording every
// OutputStride-th configuration.
type Generator struct {
	pot     dynamo.Potential
	stepper *dynamo.Stepper
	params  dynamo.Params

	// OutputStride controls recording density; 1 records every step.
	OutputStride int
}

func NewGenerator(pot dynamo.Potential, params dynamo.Params, seed int64) (*Generator, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Generator{
		pot:          pot,
		stepper:      dynamo.NewStepper(seed),
		params:       params,
		OutputStride: 1,
	}, nil
}

func (g *Generator) stride() int {
	if g.OutputStride > 1 {
		return g.OutputStride
	}
	return 1
}

// Run generates a fixed-length trajectory of steps integrator steps. The
// returned trajectory has ceil(steps/stride)+1 configurations, the start
// point included.
func (g *Generator) Run(x0 dynamo.Position, steps int) (Trajectory, error) {
	if steps < 0 {
		return nil, fmt.Errorf("negative step count %d", steps)
	}
	stride := g.stride()
	out := make(Trajectory, 0, steps/stride+2)
	out = append(out, x0.Clone())

	x := x0.Clone()
	for i := 1; i <= steps; i++ {
		next, err := g.stepper.Step(x, g.pot.Force(x), g.params)
		if err != nil {
			return nil, err
		}
		x = next
		if i%stride == 0 || i == steps {
			out = append(out, x.Clone())
		}
	}
	return out, nil
}

// RunUntil generates at most maxSteps steps, stopping as soon as any state
// predicate contains the current configuration. A start point already
// inside a state yields a length-1 trajectory; that is a valid outcome,
// not an error.
func (g *Generator) RunUntil(x0 dynamo.Position, maxSteps int, states []dynamo.StatePredicate) (*Result, error) {
	if maxSteps < 0 {
		return nil, fmt.Errorf("negative step budget %d", maxSteps)
	}
	stride := g.stride()
	res := &Result{Traj: Trajectory{x0.Clone()}}

	if name, hit := inState(x0, states); hit {
		res.Status = StatusHitState
		res.State = name
		return res, nil
	}

	x := x0.Clone()
	for i := 1; i <= maxSteps; i++ {
		next, err := g.stepper.Step(x, g.pot.Force(x), g.params)
		if err != nil {
			return nil, err
		}
		x = next
		res.Steps = i

		recorded := false
		if i%stride == 0 {
			res.Traj = append(res.Traj, x.Clone())
			recorded = true
		}

		if name, hit := inState(x, states); hit {
			if !recorded {
				res.Traj = append(res.Traj, x.Clone())
			}
			res.Status = StatusHitState
			res.State = name
			return res, nil
		}
	}

	if maxSteps%stride != 0 {
		res.Traj = append(res.Traj, x.Clone())
	}
	res.Status = StatusMaxSteps
	return res, nil
}

func inState(x dynamo.Position, states []dynamo.StatePredicate) (string, bool) {
	for _, s := range states {
		if s.Contains(x) {
			return s.Name, true
		}
	}
	return "", false
}
