package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/aneeshdurg/toposim/sim"
	"github.com/aneeshdurg/toposim/sim/strategy"
)

func fixture(t *testing.T, costs [][]int64, names ...string) (*sim.CostTable, []*strategy.Schedule) {
	t.Helper()
	table := &sim.CostTable{Costs: costs}
	matrices := make([]*sim.TrafficMatrix, len(costs))
	for ts := range costs {
		matrices[ts] = sim.ZeroMatrix(ts, 6)
	}
	in := &strategy.Inputs{Shape: sim.SlimFly3(), Matrices: matrices, Costs: table}
	schedules, err := strategy.RunAll(names, strategy.Options{}, in)
	require.NoError(t, err)
	return table, schedules
}

func TestNewImprovement(t *testing.T) {
	imp := NewImprovement(200, 150)
	assert.Equal(t, int64(50), imp.Abs)
	assert.True(t, imp.Defined)
	assert.InDelta(t, 25.0, imp.Rel, 1e-9)
	assert.Equal(t, "25.00%", imp.RelString())
	assert.Equal(t, "50 (25.00%)", imp.String())

	worse := NewImprovement(100, 130)
	assert.Equal(t, int64(-30), worse.Abs)
	assert.InDelta(t, -30.0, worse.Rel, 1e-9)
}

func TestNewImprovement_ZeroReferenceIsUndefined(t *testing.T) {
	imp := NewImprovement(0, 0)
	assert.False(t, imp.Defined)
	assert.Equal(t, "undefined", imp.RelString())
	assert.Equal(t, "0 (undefined)", imp.String())
}

func TestNew_Comparisons(t *testing.T) {
	// GIVEN two timesteps whose optima are 111 and 000
	table, schedules := fixture(t, [][]int64{
		{10, 10, 10, 10, 10, 10, 10, 0},
		{0, 100, 100, 100, 100, 100, 100, 100},
	}, strategy.Exhaustive, strategy.Delayed, strategy.Static, strategy.Proactive)

	rep, err := New(table, schedules, Options{Interval: 10, NumSwitches: 3})
	require.NoError(t, err)

	assert.Equal(t, 2, rep.Timesteps)
	assert.Equal(t, int64(0), rep.BestCase)
	assert.Equal(t, int64(10), rep.StaticCase)
	require.NotNil(t, rep.Proactive)
	// zero matrices: the heuristic holds all-cross
	assert.Equal(t, int64(10), *rep.Proactive)

	byName := map[string]StrategyResult{}
	for _, s := range rep.Strategies {
		byName[s.Name] = s
	}
	delayed := byName[strategy.Delayed]
	assert.Equal(t, int64(110), delayed.Total)
	assert.Equal(t, int64(-110), delayed.VsBest.Abs)
	assert.False(t, delayed.VsBest.Defined)
	assert.Equal(t, int64(-100), delayed.VsStatic.Abs)
	assert.InDelta(t, -1000.0, delayed.VsStatic.Rel, 1e-9)
	require.NotNil(t, delayed.VsProactive)
	assert.Equal(t, int64(-100), delayed.VsProactive.Abs)
	assert.Equal(t, 1, delayed.Changes)
	assert.Equal(t, 3, delayed.Toggles)

	assert.Nil(t, byName[strategy.Proactive].VsProactive)
	assert.Equal(t, int64(10), byName[strategy.Exhaustive].VsStatic.Abs)
}

func TestNew_NoProactive(t *testing.T) {
	table, schedules := fixture(t, [][]int64{{1, 2, 3, 4, 5, 6, 7, 8}}, strategy.Static)
	rep, err := New(table, schedules, Options{NumSwitches: 3, StaticConfig: 2})
	require.NoError(t, err)
	assert.Nil(t, rep.Proactive)
	assert.Equal(t, int64(3), rep.StaticCase)
	assert.Nil(t, rep.Strategies[0].VsProactive)
}

func TestNew_Errors(t *testing.T) {
	_, err := New(sim.NewCostTable(0, 8), nil, Options{})
	assert.Error(t, err)

	_, err = New(&sim.CostTable{Costs: [][]int64{{1, 2}}}, nil, Options{StaticConfig: 2})
	assert.Error(t, err)
}

func TestStaticSweep(t *testing.T) {
	table := &sim.CostTable{Costs: [][]int64{
		{4, 2, 6, 2},
		{4, 2, 2, 2},
	}}
	rep, err := New(table, nil, Options{NumSwitches: 2})
	require.NoError(t, err)

	assert.Equal(t, []int64{8, 4, 8, 4}, rep.Static.Totals)
	assert.Equal(t, 1, rep.Static.MinConfig)
	assert.Equal(t, 0, rep.Static.MaxConfig)
	assert.Equal(t, int64(4), rep.Static.Min)
	assert.Equal(t, int64(8), rep.Static.Max)
	assert.InDelta(t, 6.0, rep.Static.Mean, 1e-9)
	assert.InDelta(t, 50.0, rep.Static.WorstVsBest.Rel, 1e-9)
}

func TestPrint(t *testing.T) {
	table, schedules := fixture(t, [][]int64{
		{0, 0, 0, 0, 0, 0, 0, 0},
		{3, 1, 3, 3, 3, 3, 3, 3},
	}, strategy.Exhaustive, strategy.Static)
	rep, err := New(table, schedules, Options{Interval: 10, NumSwitches: 3})
	require.NoError(t, err)

	var buf bytes.Buffer
	rep.Print(&buf, true)
	out := buf.String()

	assert.Contains(t, out, "=== Static Configurations ===")
	assert.Contains(t, out, "=== Reconfiguration Strategies (2 timesteps, every 10s) ===")
	assert.Contains(t, out, "best case   : 1")
	assert.Contains(t, out, "static case : 3 (config 000)")
	assert.Contains(t, out, "=== Transformations ===")
	assert.Contains(t, out, "exhaustive (1 switch toggles): 000 001")
	assert.NotContains(t, out, "proactive   :")

	var quiet bytes.Buffer
	rep.Print(&quiet, false)
	assert.NotContains(t, quiet.String(), "Transformations")
}

func TestPrint_UndefinedRelative(t *testing.T) {
	table, schedules := fixture(t, [][]int64{{0, 0, 0, 0, 0, 0, 0, 0}}, strategy.Exhaustive)
	rep, err := New(table, schedules, Options{NumSwitches: 3})
	require.NoError(t, err)

	var buf bytes.Buffer
	rep.Print(&buf, false)
	assert.Contains(t, buf.String(), "undefined")
}

func TestSaveYAML(t *testing.T) {
	table, schedules := fixture(t, [][]int64{
		{5, 1, 5, 5, 5, 5, 5, 5},
		{2, 2, 2, 2, 2, 2, 2, 2},
	}, strategy.Exhaustive, strategy.Proactive)
	rep, err := New(table, schedules, Options{Interval: 5, NumSwitches: 3})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "results.yaml")
	require.NoError(t, rep.SaveYAML(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var back Report
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, rep.BestCase, back.BestCase)
	assert.Equal(t, rep.StaticCase, back.StaticCase)
	require.NotNil(t, back.Proactive)
	assert.Equal(t, *rep.Proactive, *back.Proactive)
	require.Len(t, back.Strategies, 2)
	assert.Equal(t, []int{1, 0}, back.Strategies[0].Configs)
}

func TestSaveYAML_BadPath(t *testing.T) {
	table, schedules := fixture(t, [][]int64{{1, 1, 1, 1, 1, 1, 1, 1}}, strategy.Static)
	rep, err := New(table, schedules, Options{NumSwitches: 3})
	require.NoError(t, err)
	assert.Error(t, rep.SaveYAML(filepath.Join(t.TempDir(), "missing", "r.yaml")))
}

func TestNew_VsStaticMinMaxMean(t *testing.T) {
	// GIVEN static totals 10 (000), 110 (001..110) and 100 (111); mean 96.25
	table, schedules := fixture(t, [][]int64{
		{10, 10, 10, 10, 10, 10, 10, 0},
		{0, 100, 100, 100, 100, 100, 100, 100},
	}, strategy.Exhaustive, strategy.Delayed)

	rep, err := New(table, schedules, Options{NumSwitches: 3})
	require.NoError(t, err)

	// THEN every strategy is compared against all three
	best, delayed := rep.Strategies[0], rep.Strategies[1]
	assert.Equal(t, int64(10), best.VsStaticMin.Abs)
	assert.InDelta(t, 100.0, best.VsStaticMin.Rel, 1e-9)
	assert.Equal(t, int64(110), best.VsStaticMax.Abs)
	assert.InDelta(t, 100.0, best.VsStaticMean.Rel, 1e-9)

	assert.Equal(t, int64(-100), delayed.VsStaticMin.Abs)
	assert.Equal(t, int64(0), delayed.VsStaticMax.Abs)
	assert.Equal(t, int64(-14), delayed.VsStaticMean.Abs)
	assert.InDelta(t, -13.75/96.25*100, delayed.VsStaticMean.Rel, 1e-9)

	var buf bytes.Buffer
	rep.Print(&buf, false)
	assert.Contains(t, buf.String(), "vs static mean")
}

func TestNewMeanImprovement_ZeroReference(t *testing.T) {
	imp := newMeanImprovement(0, 5)
	assert.False(t, imp.Defined)
	assert.Equal(t, int64(-5), imp.Abs)
}
