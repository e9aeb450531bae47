package traj

import "github.com/san-kum/raresim/internal/dynamo"

// Trajectory is an ordered sequence of configurations, insertion order
// equal to time order.
type Trajectory []dynamo.Position

func (t Trajectory) Clone() Trajectory {
	c := make(Trajectory, len(t))
	for i, p := range t {
		c[i] = p.Clone()
	}
	return c
}

func (t Trajectory) Start() dynamo.Position { return t[0] }
func (t Trajectory) End() dynamo.Position   { return t[len(t)-1] }

// Reverse returns a new trajectory with time order inverted.
func (t Trajectory) Reverse() Trajectory {
	r := make(Trajectory, len(t))
	for i, p := range t {
		r[len(t)-1-i] = p
	}
	return r
}

// Concat joins other onto t, dropping other's first configuration. The
// junction point (a TPS shooting point) therefore appears exactly once.
func (t Trajectory) Concat(other Trajectory) Trajectory {
	out := make(Trajectory, 0, len(t)+len(other)-1)
	out = append(out, t...)
	if len(other) > 1 {
		out = append(out, other[1:]...)
	}
	return out
}

// Values projects the trajectory onto a collective variable.
func (t Trajectory) Values(cv dynamo.CollectiveVariable) []float64 {
	vs := make([]float64, len(t))
	for i, p := range t {
		vs[i] = cv.Value(p)
	}
	return vs
}
