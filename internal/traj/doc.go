// Package traj generates and manipulates Langevin trajectories.
//
// A [Generator] runs in two modes: [Generator.Run] produces a trajectory
// of fixed, predictable length, while [Generator.RunUntil] stops early the
// moment a stable-state predicate fires, which is the mechanism behind
// flexible-length path sampling.
package traj
