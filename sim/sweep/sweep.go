// Package sweep evaluates configurations across all timesteps on a bounded
// worker pool. Timesteps are independent: each task builds its own networks
// and writes only its own row of the result.
package sweep

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/aneeshdurg/toposim/sim"
	"github.com/aneeshdurg/toposim/sim/internal/workerpool"
)

// BuildCostTable evaluates every configuration of shape against every
// timestep's matrix, one pool task per timestep. Rows are keyed by timestep
// index, not completion order. Any task error aborts the batch.
func BuildCostTable(shape *sim.Shape, matrices []*sim.TrafficMatrix, workers int) (*sim.CostTable, error) {
	for i, m := range matrices {
		if m.Size() != shape.NumNodes() {
			return nil, fmt.Errorf("timestep %d: %d×%d matrix for %d-node shape: %w",
				i, m.Size(), m.Size(), shape.NumNodes(), sim.ErrDimension)
		}
	}

	start := time.Now()
	table := &sim.CostTable{Costs: make([][]int64, len(matrices))}
	err := workerpool.Run(workerpool.Config{MaxWorkers: workers}, len(matrices), func(ts int) error {
		row, err := sim.EvaluateTimestep(shape, matrices[ts])
		if err != nil {
			return fmt.Errorf("timestep %d: %w", ts, err)
		}
		table.Costs[ts] = row
		logrus.Debugf("timestep %d: evaluated %d configurations", ts, len(row))
		return nil
	})
	if err != nil {
		return nil, err
	}
	logrus.Infof("cost table: %d timesteps x %d configurations in %v",
		len(matrices), shape.NumConfigurations(), time.Since(start))
	return table, nil
}
