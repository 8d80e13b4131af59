package sim

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTrafficMatrix_Valid(t *testing.T) {
	in := "0 1 2\n\n3 4 5\n  6 7 8  \n\n"
	m, err := ParseTrafficMatrix(strings.NewReader(in), 4, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, m.Timestep)
	assert.Equal(t, [][]int64{{0, 1, 2}, {3, 4, 5}, {6, 7, 8}}, m.Bytes)
	assert.Equal(t, int64(36), m.Total())
	assert.Equal(t, 3, m.Size())
}

func TestParseTrafficMatrix_Errors(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		dimension bool
	}{
		{"too few rows", "0 1\n", true},
		{"too many rows", "0 1\n2 3\n4 5\n", true},
		{"short row", "0 1\n2\n", true},
		{"long row", "0 1 2\n3 4\n", true},
		{"not a number", "0 x\n1 2\n", false},
		{"negative", "0 -1\n1 2\n", false},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTrafficMatrix(strings.NewReader(tt.in), 0, 2)
			require.Error(t, err)
			if tt.dimension {
				assert.ErrorIs(t, err, ErrDimension)
			}
		})
	}
}

func TestNewTrafficMatrix_NotSquare(t *testing.T) {
	_, err := NewTrafficMatrix(0, [][]int64{{1, 2}, {3}})
	assert.ErrorIs(t, err, ErrDimension)
}

func TestTrafficMatrix_Permute(t *testing.T) {
	m := mustMatrix(t, 2, [][]int64{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
	})

	// identity
	assert.Equal(t, m.Bytes, m.Permute([]Node{0, 1, 2}).Bytes)

	// topology node 0 carries what logical node 2 sent
	p := m.Permute([]Node{2, 0, 1})
	assert.Equal(t, [][]int64{
		{8, 6, 7},
		{2, 0, 1},
		{5, 3, 4},
	}, p.Bytes)
	assert.Equal(t, 2, p.Timestep)
	assert.Equal(t, m.Total(), p.Total())
}
