// Package workload loads the per-timestep traffic matrices produced by the
// capture pipeline.
package workload

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/aneeshdurg/toposim/sim"
	"github.com/aneeshdurg/toposim/sim/internal/workerpool"
)

// matrixFileRE matches "matrix-ts<N>.txt" and captures N.
var matrixFileRE = regexp.MustCompile(`^matrix-ts(\d+)\.txt$`)

// MatrixFileName returns the file name used for timestep ts.
func MatrixFileName(ts int) string {
	return fmt.Sprintf("matrix-ts%d.txt", ts)
}

// TimestepFromFileName parses the timestep index from a matrix file name.
func TimestepFromFileName(name string) (int, bool) {
	m := matrixFileRE.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	ts, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return ts, true
}

// ScanMatrixDir returns the number of timesteps in dir: one more than the
// largest index of any matrix-ts<N>.txt file. Every index below it must exist
// exactly once. Other .txt files are ignored with a warning.
func ScanMatrixDir(dir string) (int, error) {
	names, err := scanMatrixFiles(dir)
	if err != nil {
		return 0, err
	}
	return len(names), nil
}

// scanMatrixFiles returns the matrix file names in dir indexed by timestep.
func scanMatrixFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading matrix directory: %w", err)
	}
	byTS := make(map[int]string)
	maxTS := -1
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ts, ok := TimestepFromFileName(e.Name())
		if !ok {
			if filepath.Ext(e.Name()) == ".txt" {
				logrus.Warnf("ignoring %s: not a matrix-ts<N>.txt file", e.Name())
			}
			continue
		}
		if prev, dup := byTS[ts]; dup {
			return nil, fmt.Errorf("duplicate timestep %d in %s: %s and %s", ts, dir, prev, e.Name())
		}
		byTS[ts] = e.Name()
		maxTS = max(maxTS, ts)
	}
	if len(byTS) == 0 {
		return nil, fmt.Errorf("no matrix-ts<N>.txt files in %s", dir)
	}
	names := make([]string, maxTS+1)
	for ts := range names {
		name, ok := byTS[ts]
		if !ok {
			return nil, fmt.Errorf("missing %s in %s", MatrixFileName(ts), dir)
		}
		names[ts] = name
	}
	return names, nil
}

// LoadMatrixFile reads one K×K matrix file.
func LoadMatrixFile(path string, ts, k int) (*sim.TrafficMatrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening matrix: %w", err)
	}
	defer f.Close()
	m, err := sim.ParseTrafficMatrix(f, ts, k)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// LoadMatrixDir reads every timestep's matrix from dir in parallel and
// returns them in timestep order. Any malformed file fails the whole load.
func LoadMatrixDir(dir string, k, workers int) ([]*sim.TrafficMatrix, error) {
	names, err := scanMatrixFiles(dir)
	if err != nil {
		return nil, err
	}
	n := len(names)
	matrices := make([]*sim.TrafficMatrix, n)
	err = workerpool.Run(workerpool.Config{MaxWorkers: workers}, n, func(ts int) error {
		m, err := LoadMatrixFile(filepath.Join(dir, names[ts]), ts, k)
		if err != nil {
			return err
		}
		matrices[ts] = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	logrus.Infof("loaded %d %dx%d traffic matrices from %s", n, k, k, dir)
	return matrices, nil
}
