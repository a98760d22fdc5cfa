package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeadsUpMatchesClassicalElo(t *testing.T) {
	old := []float64{1500, 1500}
	scores := []float64{100, -100}
	cfg := DefaultConfig()

	got := UpdateEloPairwise(old, scores, cfg)

	expectedDelta := cfg.K * (1 - 0.5)
	assert.InDelta(t, old[0]+expectedDelta, got[0], 1e-9)
	assert.InDelta(t, old[1]-expectedDelta, got[1], 1e-9)
}

func TestSumOfDeltasIsZeroBeforeClamping(t *testing.T) {
	old := []float64{1400, 1500, 1600, 1700}
	scores := []float64{10, -5, 0, 20}
	cfg := Config{K: 32, MinRating: 0, MaxRating: 10000}

	got := UpdateEloPairwise(old, scores, cfg)

	sumOld, sumNew := 0.0, 0.0
	for i := range old {
		sumOld += old[i]
		sumNew += got[i]
	}
	assert.InDelta(t, sumOld, sumNew, 1e-6)
}

func TestTieSplitsExpectedEvenly(t *testing.T) {
	old := []float64{1500, 1500}
	scores := []float64{50, 50}
	got := UpdateEloPairwise(old, scores, DefaultConfig())
	assert.InDelta(t, 1500, got[0], 1e-9)
	assert.InDelta(t, 1500, got[1], 1e-9)
}

func TestRatingsClampToConfiguredBounds(t *testing.T) {
	old := []float64{105, 3995}
	scores := []float64{-1000, 1000}
	cfg := Config{K: 32, MinRating: 100, MaxRating: 4000}

	got := UpdateEloPairwise(old, scores, cfg)

	assert.GreaterOrEqual(t, got[0], cfg.MinRating)
	assert.LessOrEqual(t, got[1], cfg.MaxRating)
}

func TestMultiSeatKWeightIsDividedAcrossOpponents(t *testing.T) {
	old3 := []float64{1500, 1500, 1500}
	scores3 := []float64{100, -50, -50}
	cfg := DefaultConfig()

	got := UpdateEloPairwise(old3, scores3, cfg)
	assert.Greater(t, got[0], old3[0])
	// Two wins at even expectation, each weighted K/(3-1): +K/2 in total.
	assert.InDelta(t, old3[0]+cfg.K/2, got[0], 1e-9)
}
