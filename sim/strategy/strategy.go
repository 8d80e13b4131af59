// Package strategy implements reconfiguration policies. Every policy reads a
// precomputed cost table (and, for the heuristics, the traffic matrices) in
// increasing timestep order and returns the configuration chosen at each step
// together with the cost it incurs.
package strategy

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aneeshdurg/toposim/sim"
)

// Strategy names.
const (
	Exhaustive          = "exhaustive"
	SingleChange        = "single-change"
	SingleChangeOptimal = "single-change-optimal"
	Delayed             = "delayed"
	Random              = "random"
	Static              = "static"
	Proactive           = "proactive"
	ProactiveReactive   = "proactive-reactive"
)

// DefaultConfig is the configuration index every lagging strategy starts
// from: all switches cross.
const DefaultConfig = 0

// ErrNoCandidate signals that a constrained search found nothing to choose
// from, which means configuration enumeration is broken.
var ErrNoCandidate = errors.New("no candidate configuration")

// ValidStrategies is the set of recognized strategy names.
var ValidStrategies = map[string]bool{
	Exhaustive:          true,
	SingleChange:        true,
	SingleChangeOptimal: true,
	Delayed:             true,
	Random:              true,
	Static:              true,
	Proactive:           true,
	ProactiveReactive:   true,
}

// DefaultOrder lists every strategy in report order.
var DefaultOrder = []string{
	Exhaustive, SingleChange, SingleChangeOptimal, Delayed,
	Random, Static, Proactive, ProactiveReactive,
}

// IsValidStrategy reports whether name is a recognized strategy.
func IsValidStrategy(name string) bool {
	return ValidStrategies[name]
}

// ValidStrategyNames returns the recognized names, sorted.
func ValidStrategyNames() []string {
	names := make([]string, 0, len(ValidStrategies))
	for n := range ValidStrategies {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ParseStrategies splits a comma-separated list. Empty input selects
// DefaultOrder. Duplicates are dropped, order is preserved.
func ParseStrategies(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return append([]string(nil), DefaultOrder...), nil
	}
	var names []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		name := strings.TrimSpace(part)
		if !IsValidStrategy(name) {
			return nil, fmt.Errorf("unknown strategy %q (valid: %s)", name, strings.Join(ValidStrategyNames(), ", "))
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names, nil
}

// Inputs is everything a strategy may consult.
type Inputs struct {
	Shape    *sim.Shape
	Matrices []*sim.TrafficMatrix
	Costs    *sim.CostTable
}

func (in *Inputs) validate() error {
	if in.Costs == nil || in.Costs.NumTimesteps() == 0 {
		return errors.New("empty cost table")
	}
	if len(in.Matrices) != in.Costs.NumTimesteps() {
		return fmt.Errorf("%d matrices for %d cost-table rows", len(in.Matrices), in.Costs.NumTimesteps())
	}
	if in.Costs.NumConfigurations() != in.Shape.NumConfigurations() {
		return fmt.Errorf("cost table has %d configurations, shape has %d",
			in.Costs.NumConfigurations(), in.Shape.NumConfigurations())
	}
	return nil
}

// Schedule is a strategy's choice per timestep and the cost it paid.
type Schedule struct {
	Strategy string  `yaml:"strategy"`
	Configs  []int   `yaml:"configs"`
	Costs    []int64 `yaml:"costs"`
	Total    int64   `yaml:"total"`
}

func newSchedule(name string, n int) *Schedule {
	return &Schedule{
		Strategy: name,
		Configs:  make([]int, 0, n),
		Costs:    make([]int64, 0, n),
	}
}

// choose records configuration cfg at timestep ts, charged from the table.
func (s *Schedule) choose(table *sim.CostTable, ts, cfg int) {
	c := table.Cost(ts, cfg)
	s.Configs = append(s.Configs, cfg)
	s.Costs = append(s.Costs, c)
	s.Total += c
}

// Changes counts timesteps whose configuration differs from the previous one.
func (s *Schedule) Changes() int {
	n := 0
	for i := 1; i < len(s.Configs); i++ {
		if s.Configs[i] != s.Configs[i-1] {
			n++
		}
	}
	return n
}

// SwitchToggles counts individual switch state changes across the schedule.
func (s *Schedule) SwitchToggles() int {
	n := 0
	for i := 1; i < len(s.Configs); i++ {
		n += sim.HammingDistance(s.Configs[i], s.Configs[i-1])
	}
	return n
}

// Strategy chooses one configuration per timestep.
type Strategy interface {
	Name() string
	Plan(in *Inputs) (*Schedule, error)
}

// Options parameterizes the strategies that need it.
type Options struct {
	StaticConfig int   // configuration held by the static baseline
	Seed         int64 // random baseline seed
}

// NewStrategy creates a strategy by name. Panics on unrecognized names;
// validate user input with ParseStrategies first.
func NewStrategy(name string, opts Options) Strategy {
	if !IsValidStrategy(name) {
		panic(fmt.Sprintf("unknown strategy %q", name))
	}
	switch name {
	case Exhaustive:
		return &ExhaustiveOptimum{}
	case SingleChange:
		return &SingleChangeOracle{}
	case SingleChangeOptimal:
		return &SingleChangeDP{}
	case Delayed:
		return &DelayedReconfig{}
	case Random:
		return &RandomBaseline{Seed: opts.Seed}
	case Static:
		return &StaticBaseline{Config: opts.StaticConfig}
	case Proactive:
		return &IntergroupHeuristic{}
	case ProactiveReactive:
		return &IntergroupHeuristic{Reactive: true}
	default:
		panic(fmt.Sprintf("unhandled strategy %q", name))
	}
}

// RunAll plans every named strategy in order.
func RunAll(names []string, opts Options, in *Inputs) ([]*Schedule, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	out := make([]*Schedule, 0, len(names))
	for _, name := range names {
		s, err := NewStrategy(name, opts).Plan(in)
		if err != nil {
			return nil, fmt.Errorf("strategy %s: %w", name, err)
		}
		out = append(out, s)
	}
	return out, nil
}
