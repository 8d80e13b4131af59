package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aneeshdurg/toposim/sim"
	"github.com/aneeshdurg/toposim/sim/internal/testutil"
)

// tableInputs wraps a hand-written cost table over the 3-switch SlimFly.
// Matrices are zero placeholders; only the intergroup heuristic reads them.
func tableInputs(t *testing.T, costs [][]int64) *Inputs {
	t.Helper()
	matrices := make([]*sim.TrafficMatrix, len(costs))
	for ts := range costs {
		matrices[ts] = sim.ZeroMatrix(ts, 6)
	}
	return &Inputs{Shape: sim.SlimFly3(), Matrices: matrices, Costs: &sim.CostTable{Costs: costs}}
}

// trafficInputs builds real inputs from random matrices.
func trafficInputs(t *testing.T, seed int64, n int) *Inputs {
	t.Helper()
	shape := sim.SlimFly3()
	raw := testutil.RandomMatrices(seed, n, 6, 1000)
	matrices := make([]*sim.TrafficMatrix, n)
	table := sim.NewCostTable(n, shape.NumConfigurations())
	for ts, rows := range raw {
		m, err := sim.NewTrafficMatrix(ts, rows)
		require.NoError(t, err)
		matrices[ts] = m
		table.Costs[ts], err = sim.EvaluateTimestep(shape, m)
		require.NoError(t, err)
	}
	return &Inputs{Shape: shape, Matrices: matrices, Costs: table}
}

// greedyTrap: timestep 0 favors 111, timestep 1 strongly favors 000, which is
// three toggles away.
var greedyTrap = [][]int64{
	{10, 10, 10, 10, 10, 10, 10, 0},
	{0, 100, 100, 100, 100, 100, 100, 100},
}

func TestParseStrategies(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []string
		wantErr bool
	}{
		{"empty selects all", "", DefaultOrder, false},
		{"blank selects all", "  ", DefaultOrder, false},
		{"single", "static", []string{Static}, false},
		{"order kept", "random, exhaustive", []string{Random, Exhaustive}, false},
		{"duplicates dropped", "delayed,delayed,static", []string{Delayed, Static}, false},
		{"unknown", "exhaustive,bogus", nil, true},
		{"empty element", "exhaustive,,static", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStrategies(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidStrategyNames_CoversDefaultOrder(t *testing.T) {
	names := ValidStrategyNames()
	assert.Len(t, names, len(DefaultOrder))
	for _, n := range DefaultOrder {
		assert.Contains(t, names, n)
		assert.Equal(t, n, NewStrategy(n, Options{}).Name())
	}
}

func TestNewStrategy_UnknownPanics(t *testing.T) {
	assert.Panics(t, func() { NewStrategy("bogus", Options{}) })
}

func TestSchedule_ChangesAndToggles(t *testing.T) {
	s := &Schedule{Configs: []int{0, 0, 7, 6, 6, 0}}
	assert.Equal(t, 3, s.Changes())
	// 0->7: 3, 7->6: 1, 6->0: 2
	assert.Equal(t, 6, s.SwitchToggles())
}

func TestRunAll_ValidatesInputs(t *testing.T) {
	in := tableInputs(t, greedyTrap)
	in.Matrices = in.Matrices[:1]
	_, err := RunAll(DefaultOrder, Options{}, in)
	assert.Error(t, err)

	_, err = RunAll(DefaultOrder, Options{}, &Inputs{Shape: sim.SlimFly3(), Costs: sim.NewCostTable(0, 8)})
	assert.Error(t, err)
}

func TestRunAll_OneSchedulePerStrategyInOrder(t *testing.T) {
	in := trafficInputs(t, 4, 10)
	schedules, err := RunAll(DefaultOrder, Options{StaticConfig: 3, Seed: 42}, in)
	require.NoError(t, err)
	require.Len(t, schedules, len(DefaultOrder))
	for i, s := range schedules {
		assert.Equal(t, DefaultOrder[i], s.Strategy)
		require.Len(t, s.Configs, 10)
		require.Len(t, s.Costs, 10)
		var total int64
		for ts, c := range s.Configs {
			assert.Equal(t, in.Costs.Cost(ts, c), s.Costs[ts])
			total += s.Costs[ts]
		}
		assert.Equal(t, total, s.Total)
	}
}
