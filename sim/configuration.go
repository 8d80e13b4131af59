package sim

import (
	"fmt"
	"iter"
	"math/bits"
	"sort"
	"strings"
)

// Configuration is the vector of switch states, one per switch in Shape order.
//
// Each configuration also has an integer index in 0..2^n-1: switch i is bit
// n-1-i of the index, so switch 0 is the most significant bit and index 0 is
// all-cross. Enumeration, tie-breaking and reports all use this index.
type Configuration []SwitchState

// ConfigurationFromIndex decodes idx for a shape with n switches.
func ConfigurationFromIndex(idx, n int) Configuration {
	if idx < 0 || idx >= 1<<n {
		panic(fmt.Sprintf("configuration index %d out of range for %d switches", idx, n))
	}
	c := make(Configuration, n)
	for i := 0; i < n; i++ {
		c[i] = SwitchState(idx&(1<<(n-1-i)) != 0)
	}
	return c
}

// Index encodes c back into its enumeration index.
func (c Configuration) Index() int {
	idx := 0
	for _, s := range c {
		idx <<= 1
		if s == Bar {
			idx |= 1
		}
	}
	return idx
}

// String renders c as a bit string, e.g. "010" (1 = bar).
func (c Configuration) String() string {
	var b strings.Builder
	for _, s := range c {
		if s == Bar {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// FromBools converts a plain state vector (true = bar).
func FromBools(states []bool) Configuration {
	c := make(Configuration, len(states))
	for i, s := range states {
		c[i] = SwitchState(s)
	}
	return c
}

// HammingDistance counts switches that differ between configuration indices a and b.
func HammingDistance(a, b int) int {
	return bits.OnesCount(uint(a ^ b))
}

// AllConfigurations lazily yields every configuration of n switches in
// ascending index order. The sequence is finite and can be ranged over again.
func AllConfigurations(n int) iter.Seq2[int, Configuration] {
	return func(yield func(int, Configuration) bool) {
		for idx := 0; idx < 1<<n; idx++ {
			if !yield(idx, ConfigurationFromIndex(idx, n)) {
				return
			}
		}
	}
}

// Neighbors yields, in ascending index order, every configuration index
// within Hamming distance 1 of from (including from itself). The sequence is
// the same as filtering AllConfigurations by distance but costs O(n).
func Neighbors(from, n int) iter.Seq[int] {
	return func(yield func(int) bool) {
		idxs := make([]int, 0, n+1)
		idxs = append(idxs, from)
		for b := 0; b < n; b++ {
			idxs = append(idxs, from^(1<<b))
		}
		sort.Ints(idxs)
		for _, idx := range idxs {
			if !yield(idx) {
				return
			}
		}
	}
}
