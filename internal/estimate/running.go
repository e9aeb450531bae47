package estimate

import "math"

// RunningMean is an online mean over a stream of samples. The first
// sample initializes the accumulator; afterwards
//
//	avg_n = avg_{n-1} + (x_n - avg_{n-1}) / (n+1)
//
// so no sample history is kept.
type RunningMean struct {
	mean float64
	n    int
}

func (r *RunningMean) Add(x float64) {
	if r.n == 0 {
		r.mean = x
	} else {
		r.mean += (x - r.mean) / float64(r.n+1)
	}
	r.n++
}

func (r *RunningMean) Count() int { return r.n }

// Mean returns the current average, NaN before any sample arrives.
func (r *RunningMean) Mean() float64 {
	if r.n == 0 {
		return math.NaN()
	}
	return r.mean
}
