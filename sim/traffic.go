package sim

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrDimension is returned for matrices whose shape does not match expectations.
var ErrDimension = errors.New("matrix dimension mismatch")

// TrafficMatrix holds the bytes sent between every ordered pair of nodes in
// one timestep. Bytes[i][j] is traffic from node i to node j.
type TrafficMatrix struct {
	Timestep int
	Bytes    [][]int64
}

// NewTrafficMatrix validates that bytes is square and non-negative.
func NewTrafficMatrix(timestep int, bytes [][]int64) (*TrafficMatrix, error) {
	k := len(bytes)
	for i, row := range bytes {
		if len(row) != k {
			return nil, fmt.Errorf("timestep %d: row %d has %d columns, want %d: %w", timestep, i, len(row), k, ErrDimension)
		}
		for j, v := range row {
			if v < 0 {
				return nil, fmt.Errorf("timestep %d: negative traffic %d at [%d][%d]", timestep, v, i, j)
			}
		}
	}
	return &TrafficMatrix{Timestep: timestep, Bytes: bytes}, nil
}

// ZeroMatrix returns a k×k matrix with no traffic.
func ZeroMatrix(timestep, k int) *TrafficMatrix {
	b := make([][]int64, k)
	for i := range b {
		b[i] = make([]int64, k)
	}
	return &TrafficMatrix{Timestep: timestep, Bytes: b}
}

// ParseTrafficMatrix reads exactly k rows of k whitespace-separated
// non-negative integers. Blank lines are ignored.
func ParseTrafficMatrix(r io.Reader, timestep, k int) (*TrafficMatrix, error) {
	sc := bufio.NewScanner(r)
	var rows [][]int64
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(rows) == k {
			return nil, fmt.Errorf("timestep %d: line %d: more than %d rows: %w", timestep, line, k, ErrDimension)
		}
		if len(fields) != k {
			return nil, fmt.Errorf("timestep %d: line %d: %d values, want %d: %w", timestep, line, len(fields), k, ErrDimension)
		}
		row := make([]int64, k)
		for j, f := range fields {
			v, err := strconv.ParseInt(f, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("timestep %d: line %d: %w", timestep, line, err)
			}
			row[j] = v
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("timestep %d: %w", timestep, err)
	}
	if len(rows) != k {
		return nil, fmt.Errorf("timestep %d: %d rows, want %d: %w", timestep, len(rows), k, ErrDimension)
	}
	return NewTrafficMatrix(timestep, rows)
}

// Size returns K.
func (m *TrafficMatrix) Size() int { return len(m.Bytes) }

// Total returns the sum of all entries.
func (m *TrafficMatrix) Total() int64 {
	var t int64
	for _, row := range m.Bytes {
		for _, v := range row {
			t += v
		}
	}
	return t
}

// Permute relabels nodes: the result carries, between topology nodes i and j,
// the traffic that m records between perm[i] and perm[j].
func (m *TrafficMatrix) Permute(perm []Node) *TrafficMatrix {
	k := m.Size()
	out := ZeroMatrix(m.Timestep, k)
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			out.Bytes[i][j] = m.Bytes[perm[i]][perm[j]]
		}
	}
	return out
}
