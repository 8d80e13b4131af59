package strategy

import (
	"github.com/aneeshdurg/toposim/sim"
)

// IntergroupHeuristic decides each switch independently from the traffic
// between the two racks it joins, in O(#switches) instead of searching all
// 2^#switches configurations.
//
// Proactive mode applies each timestep's decision to that same timestep.
// Reactive mode applies the decision from timestep i-1 to timestep i, starting
// from DefaultConfig, which isolates the cost of reconfiguration lag.
type IntergroupHeuristic struct {
	Reactive bool
}

// Name implements Strategy.
func (h *IntergroupHeuristic) Name() string {
	if h.Reactive {
		return ProactiveReactive
	}
	return Proactive
}

// Plan implements Strategy.
func (h *IntergroupHeuristic) Plan(in *Inputs) (*Schedule, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	s := newSchedule(h.Name(), in.Costs.NumTimesteps())
	next := DefaultConfig
	for ts, m := range in.Matrices {
		decided := DecideIntergroup(in.Shape, m).Index()
		if h.Reactive {
			s.choose(in.Costs, ts, next)
			next = decided
		} else {
			s.choose(in.Costs, ts, decided)
		}
	}
	return s, nil
}

// RackPairTraffic returns the symmetrized 2×2 traffic between the racks of
// switch sw: entry [i][j] is the bytes exchanged, in both directions, between
// position i of rack A and position j of rack B.
func RackPairTraffic(shape *sim.Shape, sw int, m *sim.TrafficMatrix) [2][2]int64 {
	s := shape.Switch(sw)
	var sub [2][2]int64
	for i, a := range s.A {
		for j, b := range s.B {
			sub[i][j] = m.Bytes[a][b] + m.Bytes[b][a]
		}
	}
	return sub
}

// DecideIntergroup sets a switch to bar when matched-position traffic
// ([0][0]+[1][1]) exceeds crossed traffic ([0][1]+[1][0]); otherwise cross.
func DecideIntergroup(shape *sim.Shape, m *sim.TrafficMatrix) sim.Configuration {
	cfg := make(sim.Configuration, shape.NumSwitches())
	for i := range cfg {
		sub := RackPairTraffic(shape, i, m)
		if sub[0][0]+sub[1][1] > sub[0][1]+sub[1][0] {
			cfg[i] = sim.Bar
		} else {
			cfg[i] = sim.Cross
		}
	}
	return cfg
}
