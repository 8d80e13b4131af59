package strategy

import (
	"fmt"

	"github.com/aneeshdurg/toposim/sim"
)

// DelayedReconfig reacts one step late: timestep i runs under the optimum of
// timestep i-1. Timestep 0 runs under DefaultConfig.
type DelayedReconfig struct{}

// Name implements Strategy.
func (*DelayedReconfig) Name() string { return Delayed }

// Plan implements Strategy.
func (d *DelayedReconfig) Plan(in *Inputs) (*Schedule, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	s := newSchedule(d.Name(), in.Costs.NumTimesteps())
	curr := DefaultConfig
	for ts := 0; ts < in.Costs.NumTimesteps(); ts++ {
		s.choose(in.Costs, ts, curr)
		curr, _ = in.Costs.ArgMin(ts)
	}
	return s, nil
}

// StaticBaseline never reconfigures.
type StaticBaseline struct {
	Config int
}

// Name implements Strategy.
func (*StaticBaseline) Name() string { return Static }

// Plan implements Strategy.
func (b *StaticBaseline) Plan(in *Inputs) (*Schedule, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if b.Config < 0 || b.Config >= in.Costs.NumConfigurations() {
		return nil, fmt.Errorf("static configuration %d out of range [0, %d)", b.Config, in.Costs.NumConfigurations())
	}
	s := newSchedule(b.Name(), in.Costs.NumTimesteps())
	for ts := 0; ts < in.Costs.NumTimesteps(); ts++ {
		s.choose(in.Costs, ts, b.Config)
	}
	return s, nil
}

// RandomBaseline picks a uniformly random configuration each timestep,
// ignoring traffic. Every Plan replays the same stream for the same Seed.
type RandomBaseline struct {
	Seed int64
}

// Name implements Strategy.
func (*RandomBaseline) Name() string { return Random }

// Plan implements Strategy.
func (r *RandomBaseline) Plan(in *Inputs) (*Schedule, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	rng := sim.RunKey(r.Seed).Rand(sim.SubsystemRandomBaseline)
	s := newSchedule(r.Name(), in.Costs.NumTimesteps())
	for ts := 0; ts < in.Costs.NumTimesteps(); ts++ {
		s.choose(in.Costs, ts, rng.Intn(in.Costs.NumConfigurations()))
	}
	return s, nil
}
