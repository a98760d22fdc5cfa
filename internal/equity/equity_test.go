package equity

import (
	"math/rand"
	"testing"

	"github.com/holdemcore/simcore/internal/deck"
	"github.com/stretchr/testify/assert"
)

func TestZeroSamplesReturnsZeroWithoutSampling(t *testing.T) {
	hole := [2]deck.Card{deck.MustParseCard("As"), deck.MustParseCard("Ks")}
	result := Estimate(hole, nil, 1, 0, rand.New(rand.NewSource(1)))
	assert.Equal(t, Result{}, result)
}

func TestPocketAcesBeatsRandomHandMostOfTheTime(t *testing.T) {
	hole := [2]deck.Card{deck.MustParseCard("As"), deck.MustParseCard("Ac")}
	rng := rand.New(rand.NewSource(42))
	result := Estimate(hole, nil, 1, DemoSamples, rng)
	assert.Greater(t, result.Win+result.Tie, 0.5)
}

func TestDeriveRNGIsDeterministicPerInputs(t *testing.T) {
	a := DeriveRNG(42, 0, 1)
	b := DeriveRNG(42, 0, 1)
	assert.Equal(t, a.Int63(), b.Int63())

	c := DeriveRNG(42, 1, 1)
	assert.NotEqual(t, DeriveRNG(42, 0, 1).Int63(), c.Int63())
}
