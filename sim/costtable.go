package sim

import "fmt"

// CostTable holds the cost of every configuration at every timestep:
// Costs[t][idx] is the cost of timestep t's traffic under configuration idx.
type CostTable struct {
	Costs [][]int64
}

// NewCostTable allocates a zeroed table.
func NewCostTable(numTimesteps, numConfigs int) *CostTable {
	c := make([][]int64, numTimesteps)
	for t := range c {
		c[t] = make([]int64, numConfigs)
	}
	return &CostTable{Costs: c}
}

// NumTimesteps returns the number of rows.
func (t *CostTable) NumTimesteps() int { return len(t.Costs) }

// NumConfigurations returns the number of columns (0 for an empty table).
func (t *CostTable) NumConfigurations() int {
	if len(t.Costs) == 0 {
		return 0
	}
	return len(t.Costs[0])
}

// Cost returns Costs[ts][cfg].
func (t *CostTable) Cost(ts, cfg int) int64 { return t.Costs[ts][cfg] }

// ArgMin returns the cheapest configuration at ts and its cost. The lowest
// index wins ties.
func (t *CostTable) ArgMin(ts int) (int, int64) {
	row := t.Costs[ts]
	best := 0
	for idx := 1; idx < len(row); idx++ {
		if row[idx] < row[best] {
			best = idx
		}
	}
	return best, row[best]
}

// StaticTotals returns, per configuration, the total cost of holding that
// configuration for every timestep.
func (t *CostTable) StaticTotals() []int64 {
	totals := make([]int64, t.NumConfigurations())
	for _, row := range t.Costs {
		for idx, c := range row {
			totals[idx] += c
		}
	}
	return totals
}

// EvaluateTimestep builds a private Network for every configuration of shape
// and returns the cost of m under each, indexed by configuration.
func EvaluateTimestep(shape *Shape, m *TrafficMatrix) ([]int64, error) {
	costs := make([]int64, shape.NumConfigurations())
	for idx, cfg := range AllConfigurations(shape.NumSwitches()) {
		net, err := Build(shape, cfg)
		if err != nil {
			return nil, err
		}
		c, err := ComputeCost(m, net)
		if err != nil {
			return nil, fmt.Errorf("config %s: %w", cfg, err)
		}
		costs[idx] = c
	}
	return costs, nil
}

// BuildAll returns the Network of every configuration of shape, by index.
func BuildAll(shape *Shape) ([]*Network, error) {
	nets := make([]*Network, 0, shape.NumConfigurations())
	for _, cfg := range AllConfigurations(shape.NumSwitches()) {
		net, err := Build(shape, cfg)
		if err != nil {
			return nil, err
		}
		nets = append(nets, net)
	}
	return nets, nil
}
