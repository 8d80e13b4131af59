package strategy

import (
	"fmt"

	"github.com/aneeshdurg/toposim/sim"
)

// ExhaustiveOptimum picks the cheapest configuration at every timestep with
// full foreknowledge and no reconfiguration constraint. It is the lower bound
// for every other strategy.
type ExhaustiveOptimum struct{}

// Name implements Strategy.
func (*ExhaustiveOptimum) Name() string { return Exhaustive }

// Plan implements Strategy.
func (e *ExhaustiveOptimum) Plan(in *Inputs) (*Schedule, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	s := newSchedule(e.Name(), in.Costs.NumTimesteps())
	for ts := 0; ts < in.Costs.NumTimesteps(); ts++ {
		best, _ := in.Costs.ArgMin(ts)
		s.choose(in.Costs, ts, best)
	}
	return s, nil
}

// SingleChangeOracle starts at timestep 0's optimum and afterwards only
// considers configurations within one switch toggle of the previous choice,
// greedily taking the cheapest (lowest index on ties).
type SingleChangeOracle struct{}

// Name implements Strategy.
func (*SingleChangeOracle) Name() string { return SingleChange }

// Plan implements Strategy.
func (o *SingleChangeOracle) Plan(in *Inputs) (*Schedule, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	n := in.Shape.NumSwitches()
	s := newSchedule(o.Name(), in.Costs.NumTimesteps())
	curr, _ := in.Costs.ArgMin(0)
	s.choose(in.Costs, 0, curr)
	for ts := 1; ts < in.Costs.NumTimesteps(); ts++ {
		pick := -1
		for cand := range sim.Neighbors(curr, n) {
			if pick < 0 || in.Costs.Cost(ts, cand) < in.Costs.Cost(ts, pick) {
				pick = cand
			}
		}
		if pick < 0 {
			return nil, fmt.Errorf("timestep %d from config %d: %w", ts, curr, ErrNoCandidate)
		}
		s.choose(in.Costs, ts, pick)
		curr = pick
	}
	return s, nil
}

// SingleChangeDP finds the cheapest schedule in which consecutive timesteps
// differ by at most one switch toggle, with a free starting configuration.
// Holding one configuration throughout is such a schedule, so the result is
// never worse than any static baseline or than SingleChangeOracle.
type SingleChangeDP struct{}

// Name implements Strategy.
func (*SingleChangeDP) Name() string { return SingleChangeOptimal }

// Plan implements Strategy.
func (d *SingleChangeDP) Plan(in *Inputs) (*Schedule, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	n := in.Shape.NumSwitches()
	steps := in.Costs.NumTimesteps()
	numCfg := in.Costs.NumConfigurations()

	// acc[ts][c]: cheapest total over 0..ts ending in c; from[ts][c]: its predecessor.
	acc := make([][]int64, steps)
	from := make([][]int, steps)
	acc[0] = append([]int64(nil), in.Costs.Costs[0]...)
	for ts := 1; ts < steps; ts++ {
		acc[ts] = make([]int64, numCfg)
		from[ts] = make([]int, numCfg)
		for c := 0; c < numCfg; c++ {
			prev := -1
			for cand := range sim.Neighbors(c, n) {
				if prev < 0 || acc[ts-1][cand] < acc[ts-1][prev] {
					prev = cand
				}
			}
			if prev < 0 {
				return nil, fmt.Errorf("timestep %d config %d: %w", ts, c, ErrNoCandidate)
			}
			from[ts][c] = prev
			acc[ts][c] = acc[ts-1][prev] + in.Costs.Cost(ts, c)
		}
	}

	last := 0
	for c := 1; c < numCfg; c++ {
		if acc[steps-1][c] < acc[steps-1][last] {
			last = c
		}
	}
	path := make([]int, steps)
	path[steps-1] = last
	for ts := steps - 1; ts > 0; ts-- {
		path[ts-1] = from[ts][path[ts]]
	}

	s := newSchedule(d.Name(), steps)
	for ts, c := range path {
		s.choose(in.Costs, ts, c)
	}
	return s, nil
}
