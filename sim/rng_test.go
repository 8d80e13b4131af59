package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunKey_RandomBaselineSeedIsRunSeed(t *testing.T) {
	for _, seed := range []int64{0, 42, -1, math.MaxInt64, math.MinInt64} {
		assert.Equal(t, seed, RunKey(seed).Seed(SubsystemRandomBaseline))
	}
}

func TestRunKey_RelabelSeedIsDerived(t *testing.T) {
	k := RunKey(123)
	assert.NotEqual(t, int64(123), k.Seed(SubsystemRelabel))
	assert.Equal(t, k.Seed(SubsystemRelabel), RunKey(123).Seed(SubsystemRelabel))
	assert.NotEqual(t, k.Seed(SubsystemRelabel), RunKey(124).Seed(SubsystemRelabel))
}

func TestRunKey_Rand_FreshStreamEachCall(t *testing.T) {
	k := RunKey(7)
	a := k.Rand(SubsystemRelabel)
	for i := 0; i < 10; i++ {
		a.Int63()
	}
	// a fresh generator starts over regardless of earlier draws
	assert.Equal(t, k.Rand(SubsystemRelabel).Int63(), RunKey(7).Rand(SubsystemRelabel).Int63())
	assert.Equal(t, rand.New(rand.NewSource(7)).Int63(), k.Rand(SubsystemRandomBaseline).Int63())
}

func TestRunKey_StreamsAreIndependent(t *testing.T) {
	k := RunKey(99)
	base := k.Rand(SubsystemRandomBaseline)
	relabel := k.Rand(SubsystemRelabel)
	want := RunKey(99).Rand(SubsystemRandomBaseline).Int63()

	for i := 0; i < 5; i++ {
		relabel.Int63()
	}
	assert.Equal(t, want, base.Int63())
}
