package sim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fourNodeShape is the smallest shape: racks (0,1) and (2,3) joined by one switch.
//
//	cross: 0-1, 2-3, 0-3, 1-2 (ring 0-1-2-3-0)
//	bar:   0-1, 2-3, 0-2, 1-3 (ring 0-1-3-2-0)
func fourNodeShape(t *testing.T) *Shape {
	t.Helper()
	s, err := NewShape([]Rack{{0, 1}, {2, 3}}, []SwitchSpec{{0, 1}})
	require.NoError(t, err)
	return s
}

func mustMatrix(t *testing.T, ts int, rows [][]int64) *TrafficMatrix {
	t.Helper()
	m, err := NewTrafficMatrix(ts, rows)
	require.NoError(t, err)
	return m
}

func mustBuild(t *testing.T, shape *Shape, idx int) *Network {
	t.Helper()
	net, err := Build(shape, ConfigurationFromIndex(idx, shape.NumSwitches()))
	require.NoError(t, err)
	return net
}
