// Package report compares reconfiguration strategies against the exhaustive
// optimum, the static baseline and the proactive heuristic.
package report

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"github.com/aneeshdurg/toposim/sim"
	"github.com/aneeshdurg/toposim/sim/strategy"
)

// Improvement is how much cheaper a strategy is than a reference:
// Abs = reference - cost and Rel = 100 * Abs / reference. Rel is undefined
// when the reference is zero.
type Improvement struct {
	Abs     int64   `yaml:"abs"`
	Rel     float64 `yaml:"rel_percent"`
	Defined bool    `yaml:"rel_defined"`
}

// NewImprovement compares cost against reference.
func NewImprovement(reference, cost int64) Improvement {
	imp := Improvement{Abs: reference - cost}
	if reference != 0 {
		imp.Rel = 100 * float64(imp.Abs) / float64(reference)
		imp.Defined = true
	}
	return imp
}

// newMeanImprovement compares cost against a fractional reference. Abs is
// rounded to the nearest byte; Rel uses the exact reference.
func newMeanImprovement(reference float64, cost int64) Improvement {
	abs := reference - float64(cost)
	imp := Improvement{Abs: int64(math.Round(abs))}
	if reference != 0 {
		imp.Rel = 100 * abs / reference
		imp.Defined = true
	}
	return imp
}

// RelString formats the relative improvement, or "undefined".
func (i Improvement) RelString() string {
	if !i.Defined {
		return "undefined"
	}
	return fmt.Sprintf("%.2f%%", i.Rel)
}

// String formats both parts.
func (i Improvement) String() string {
	return fmt.Sprintf("%d (%s)", i.Abs, i.RelString())
}

// StrategyResult is one strategy's line in the report.
type StrategyResult struct {
	Name        string       `yaml:"name"`
	Total       int64        `yaml:"total"`
	VsBest      Improvement  `yaml:"vs_best"`
	VsStatic    Improvement  `yaml:"vs_static"`
	VsProactive *Improvement `yaml:"vs_proactive,omitempty"`
	// Against the cheapest, costliest and average fixed configuration.
	VsStaticMin  Improvement `yaml:"vs_static_min"`
	VsStaticMax  Improvement `yaml:"vs_static_max"`
	VsStaticMean Improvement `yaml:"vs_static_mean"`
	Changes     int          `yaml:"changes"`
	Toggles     int          `yaml:"toggles"`
	Configs     []int        `yaml:"configs"`
}

// StaticSweep summarizes holding each configuration fixed for the whole run.
type StaticSweep struct {
	Totals      []int64     `yaml:"totals"`
	MinConfig   int         `yaml:"min_config"`
	MaxConfig   int         `yaml:"max_config"`
	Min         int64       `yaml:"min"`
	Max         int64       `yaml:"max"`
	Mean        float64     `yaml:"mean"`
	WorstVsBest Improvement `yaml:"worst_vs_best"`
}

// Report is the full comparison.
type Report struct {
	Timesteps    int              `yaml:"timesteps"`
	Interval     float64          `yaml:"interval_seconds"`
	NumSwitches  int              `yaml:"num_switches"`
	StaticConfig int              `yaml:"static_config"`
	BestCase     int64            `yaml:"best_case"`
	StaticCase   int64            `yaml:"static_case"`
	Proactive    *int64           `yaml:"proactive_case,omitempty"`
	Strategies   []StrategyResult `yaml:"strategies"`
	Static       StaticSweep      `yaml:"static_sweep"`
}

// Options holds report parameters that do not come from the schedules.
type Options struct {
	Interval     float64
	NumSwitches  int
	StaticConfig int
}

// New builds a report from the cost table and the strategies' schedules.
// The best case is the sum of per-timestep minima and the static case holds
// opts.StaticConfig throughout; both come straight from the table, so they
// are available whichever strategies were run. The proactive comparison is
// filled in only when the proactive schedule is present.
func New(table *sim.CostTable, schedules []*strategy.Schedule, opts Options) (*Report, error) {
	if table == nil || table.NumTimesteps() == 0 {
		return nil, errors.New("empty cost table")
	}
	if opts.StaticConfig < 0 || opts.StaticConfig >= table.NumConfigurations() {
		return nil, fmt.Errorf("static configuration %d out of range [0, %d)", opts.StaticConfig, table.NumConfigurations())
	}

	r := &Report{
		Timesteps:    table.NumTimesteps(),
		Interval:     opts.Interval,
		NumSwitches:  opts.NumSwitches,
		StaticConfig: opts.StaticConfig,
	}
	for ts := 0; ts < table.NumTimesteps(); ts++ {
		_, c := table.ArgMin(ts)
		r.BestCase += c
	}
	r.Static = newStaticSweep(table.StaticTotals())
	r.StaticCase = r.Static.Totals[opts.StaticConfig]

	for _, s := range schedules {
		if s.Strategy == strategy.Proactive {
			total := s.Total
			r.Proactive = &total
		}
	}

	for _, s := range schedules {
		res := StrategyResult{
			Name:     s.Strategy,
			Total:    s.Total,
			VsBest:   NewImprovement(r.BestCase, s.Total),
			VsStatic: NewImprovement(r.StaticCase, s.Total),

			VsStaticMin:  NewImprovement(r.Static.Min, s.Total),
			VsStaticMax:  NewImprovement(r.Static.Max, s.Total),
			VsStaticMean: newMeanImprovement(r.Static.Mean, s.Total),

			Changes: s.Changes(),
			Toggles: s.SwitchToggles(),
			Configs: append([]int(nil), s.Configs...),
		}
		if r.Proactive != nil && s.Strategy != strategy.Proactive {
			imp := NewImprovement(*r.Proactive, s.Total)
			res.VsProactive = &imp
		}
		if s.Total < r.BestCase {
			logrus.Warnf("strategy %s total %d is below the per-timestep optimum %d", s.Strategy, s.Total, r.BestCase)
		}
		r.Strategies = append(r.Strategies, res)
	}
	return r, nil
}

func newStaticSweep(totals []int64) StaticSweep {
	xs := make([]float64, len(totals))
	for i, t := range totals {
		xs[i] = float64(t)
	}
	minIdx, maxIdx := floats.MinIdx(xs), floats.MaxIdx(xs)
	return StaticSweep{
		Totals:      totals,
		MinConfig:   minIdx,
		MaxConfig:   maxIdx,
		Min:         totals[minIdx],
		Max:         totals[maxIdx],
		Mean:        stat.Mean(xs, nil),
		WorstVsBest: NewImprovement(totals[maxIdx], totals[minIdx]),
	}
}

// Print writes the human-readable report. With showTransformations the
// chosen configuration sequence of each strategy is listed as bit strings.
func (r *Report) Print(w io.Writer, showTransformations bool) {
	fmt.Fprintln(w, "=== Static Configurations ===")
	for idx, t := range r.Static.Totals {
		fmt.Fprintf(w, "  %s : %d\n", r.configString(idx), t)
	}
	fmt.Fprintf(w, "min cost    : %d (config %s)\n", r.Static.Min, r.configString(r.Static.MinConfig))
	fmt.Fprintf(w, "max cost    : %d (config %s)\n", r.Static.Max, r.configString(r.Static.MaxConfig))
	fmt.Fprintf(w, "mean cost   : %.2f\n", r.Static.Mean)
	fmt.Fprintf(w, "worst vs best: %s\n", r.Static.WorstVsBest.RelString())
	fmt.Fprintln(w)

	fmt.Fprintf(w, "=== Reconfiguration Strategies (%d timesteps, every %gs) ===\n", r.Timesteps, r.Interval)
	fmt.Fprintf(w, "best case   : %d\n", r.BestCase)
	fmt.Fprintf(w, "static case : %d (config %s)\n", r.StaticCase, r.configString(r.StaticConfig))
	if r.Proactive != nil {
		fmt.Fprintf(w, "proactive   : %d\n", *r.Proactive)
	}
	fmt.Fprintln(w)

	header := fmt.Sprintf("%-22s %14s %24s %24s %24s %8s", "strategy", "total", "vs best", "vs static", "vs proactive", "changes")
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, strings.Repeat("-", len(header)))
	for _, s := range r.Strategies {
		vsProactive := "-"
		if s.VsProactive != nil {
			vsProactive = s.VsProactive.String()
		}
		fmt.Fprintf(w, "%-22s %14d %24s %24s %24s %8d\n",
			s.Name, s.Total, s.VsBest.String(), s.VsStatic.String(), vsProactive, s.Changes)
	}

	fmt.Fprintln(w)
	header = fmt.Sprintf("%-22s %24s %24s %24s", "strategy", "vs static min", "vs static max", "vs static mean")
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, strings.Repeat("-", len(header)))
	for _, s := range r.Strategies {
		fmt.Fprintf(w, "%-22s %24s %24s %24s\n",
			s.Name, s.VsStaticMin.String(), s.VsStaticMax.String(), s.VsStaticMean.String())
	}

	if showTransformations {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "=== Transformations ===")
		for _, s := range r.Strategies {
			seq := make([]string, len(s.Configs))
			for i, c := range s.Configs {
				seq[i] = r.configString(c)
			}
			fmt.Fprintf(w, "%s (%d switch toggles): %s\n", s.Name, s.Toggles, strings.Join(seq, " "))
		}
	}
}

func (r *Report) configString(idx int) string {
	if r.NumSwitches == 0 {
		return fmt.Sprint(idx)
	}
	return sim.ConfigurationFromIndex(idx, r.NumSwitches).String()
}

// SaveYAML writes the report to path.
func (r *Report) SaveYAML(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	logrus.Infof("report written to %s", path)
	return nil
}
