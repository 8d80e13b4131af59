package sim

import (
	"hash/fnv"
	"math/rand"
)

// Names of the consumers that draw random numbers. Each gets its own stream
// so that draws made by one never shift another.
const (
	SubsystemRandomBaseline = "random-baseline"
	SubsystemRelabel        = "relabel"
)

// RunKey is the --seed of a run. The same key over the same matrices gives
// the same report.
type RunKey int64

// Seed returns the seed of the named stream. The random baseline uses the
// run seed unchanged; any other stream mixes in a hash of its name.
func (k RunKey) Seed(subsystem string) int64 {
	if subsystem == SubsystemRandomBaseline {
		return int64(k)
	}
	h := fnv.New64a()
	h.Write([]byte(subsystem))
	return int64(k) ^ int64(h.Sum64())
}

// Rand returns a new generator positioned at the start of the named stream.
// Callers that need a repeatable sequence ask for a fresh one each time.
func (k RunKey) Rand(subsystem string) *rand.Rand {
	return rand.New(rand.NewSource(k.Seed(subsystem)))
}
