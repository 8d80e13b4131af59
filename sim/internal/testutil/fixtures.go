// Package testutil provides shared test fixtures: traffic matrices and
// on-disk matrix directories. It does not import sim so that package sim's
// own tests can use it.
package testutil

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// SingleFlow returns a k×k matrix with bytes from src to dst and nothing else.
func SingleFlow(k, src, dst int, bytes int64) [][]int64 {
	m := Zeros(k)
	m[src][dst] = bytes
	return m
}

// Zeros returns a k×k zero matrix.
func Zeros(k int) [][]int64 {
	m := make([][]int64, k)
	for i := range m {
		m[i] = make([]int64, k)
	}
	return m
}

// RandomMatrices returns n k×k matrices with entries in [0, max), seeded for
// reproducibility. Roughly a third of the entries are zero.
func RandomMatrices(seed int64, n, k int, max int64) [][][]int64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([][][]int64, n)
	for t := range out {
		out[t] = Zeros(k)
		for i := 0; i < k; i++ {
			for j := 0; j < k; j++ {
				if rng.Intn(3) == 0 {
					continue
				}
				out[t][i][j] = rng.Int63n(max)
			}
		}
	}
	return out
}

// FormatMatrix renders rows the way the capture pipeline writes them.
func FormatMatrix(rows [][]int64) string {
	var b strings.Builder
	for _, row := range rows {
		vals := make([]string, len(row))
		for j, v := range row {
			vals[j] = fmt.Sprint(v)
		}
		b.WriteString(strings.Join(vals, " "))
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteFile writes content to dir/name.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// WriteMatrixDir writes matrices as matrix-ts<N>.txt files in a fresh
// temporary directory and returns its path.
func WriteMatrixDir(t *testing.T, matrices [][][]int64) string {
	t.Helper()
	dir := t.TempDir()
	for ts, m := range matrices {
		WriteFile(t, dir, fmt.Sprintf("matrix-ts%d.txt", ts), FormatMatrix(m))
	}
	return dir
}
