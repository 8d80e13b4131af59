package sweep

import (
	"errors"
	"fmt"
	"iter"

	"github.com/sirupsen/logrus"

	"github.com/aneeshdurg/toposim/sim"
	"github.com/aneeshdurg/toposim/sim/internal/workerpool"
)

// MaxExhaustiveRelabelNodes bounds exhaustive relabeling (K! permutations).
const MaxExhaustiveRelabelNodes = 8

// ErrTooManyPermutations is returned for exhaustive searches above MaxExhaustiveRelabelNodes.
var ErrTooManyPermutations = errors.New("too many permutations for exhaustive relabeling")

// RelabelOptions configures SearchRelabelings.
type RelabelOptions struct {
	Workers      int
	StaticConfig int   // configuration held by the static cost
	Samples      int   // 0 = every permutation; otherwise identity plus Samples random ones
	Seed         int64 // used when Samples > 0
}

// RelabelResult is the cost of one node relabeling.
type RelabelResult struct {
	Permutation []sim.Node `yaml:"permutation"`
	// StaticCost holds the static configuration for every timestep.
	StaticCost int64 `yaml:"static_cost"`
	// OptimalCost picks the cheapest configuration per timestep.
	OptimalCost int64 `yaml:"optimal_cost"`
}

// RelabelReport summarizes a relabeling search. Best* entries are the first
// permutation, in evaluation order, reaching the minimum.
type RelabelReport struct {
	Evaluated   int           `yaml:"evaluated"`
	Identity    RelabelResult `yaml:"identity"`
	BestStatic  RelabelResult `yaml:"best_static"`
	BestOptimal RelabelResult `yaml:"best_optimal"`
}

// Permutations yields every permutation of 0..k-1 in lexicographic order,
// starting with the identity. Each yielded slice is a fresh copy.
func Permutations(k int) iter.Seq[[]sim.Node] {
	return func(yield func([]sim.Node) bool) {
		p := make([]sim.Node, k)
		for i := range p {
			p[i] = sim.Node(i)
		}
		for {
			if !yield(append([]sim.Node(nil), p...)) {
				return
			}
			// next permutation
			i := k - 2
			for i >= 0 && p[i] >= p[i+1] {
				i--
			}
			if i < 0 {
				return
			}
			j := k - 1
			for p[j] <= p[i] {
				j--
			}
			p[i], p[j] = p[j], p[i]
			for l, r := i+1, k-1; l < r; l, r = l+1, r-1 {
				p[l], p[r] = p[r], p[l]
			}
		}
	}
}

func candidatePermutations(k int, opts RelabelOptions) ([][]sim.Node, error) {
	var perms [][]sim.Node
	if opts.Samples <= 0 {
		if k > MaxExhaustiveRelabelNodes {
			return nil, fmt.Errorf("%d nodes: %w (use sampling)", k, ErrTooManyPermutations)
		}
		for p := range Permutations(k) {
			perms = append(perms, p)
		}
		return perms, nil
	}

	identity := make([]sim.Node, k)
	for i := range identity {
		identity[i] = sim.Node(i)
	}
	perms = append(perms, identity)
	rng := sim.RunKey(opts.Seed).Rand(sim.SubsystemRelabel)
	for s := 0; s < opts.Samples; s++ {
		p := make([]sim.Node, k)
		for i, v := range rng.Perm(k) {
			p[i] = sim.Node(v)
		}
		perms = append(perms, p)
	}
	return perms, nil
}

// SearchRelabelings evaluates node relabelings of the traffic: under
// permutation p, topology node i carries the traffic of group p[i]. Networks
// for every configuration are built once and shared read-only by the workers.
func SearchRelabelings(shape *sim.Shape, matrices []*sim.TrafficMatrix, opts RelabelOptions) (*RelabelReport, error) {
	if len(matrices) == 0 {
		return nil, errors.New("no timesteps to relabel")
	}
	if opts.StaticConfig < 0 || opts.StaticConfig >= shape.NumConfigurations() {
		return nil, fmt.Errorf("static configuration %d out of range [0, %d)", opts.StaticConfig, shape.NumConfigurations())
	}
	nets, err := sim.BuildAll(shape)
	if err != nil {
		return nil, err
	}
	perms, err := candidatePermutations(shape.NumNodes(), opts)
	if err != nil {
		return nil, err
	}
	logrus.Infof("relabeling: evaluating %d permutations", len(perms))

	results := make([]RelabelResult, len(perms))
	err = workerpool.Run(workerpool.Config{MaxWorkers: opts.Workers}, len(perms), func(i int) error {
		res := RelabelResult{Permutation: perms[i]}
		for _, m := range matrices {
			pm := m.Permute(perms[i])
			var best int64 = -1
			for idx, net := range nets {
				c, err := sim.ComputeCost(pm, net)
				if err != nil {
					return fmt.Errorf("permutation %v: %w", perms[i], err)
				}
				if idx == opts.StaticConfig {
					res.StaticCost += c
				}
				if best < 0 || c < best {
					best = c
				}
			}
			res.OptimalCost += best
		}
		results[i] = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	report := &RelabelReport{
		Evaluated:   len(results),
		Identity:    results[0],
		BestStatic:  results[0],
		BestOptimal: results[0],
	}
	for _, r := range results[1:] {
		if r.StaticCost < report.BestStatic.StaticCost {
			report.BestStatic = r
		}
		if r.OptimalCost < report.BestOptimal.OptimalCost {
			report.BestOptimal = r
		}
	}
	return report, nil
}
