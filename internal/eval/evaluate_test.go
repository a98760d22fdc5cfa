package eval

import (
	"math/rand"
	"testing"

	"github.com/holdemcore/simcore/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRank5(t *testing.T, wire string) HandStrength {
	t.Helper()
	cards, err := deck.ParseCards(wire)
	require.NoError(t, err)
	hs, err := Rank5(cards)
	require.NoError(t, err)
	return hs
}

func TestWheelVsSixHighStraight(t *testing.T) {
	wheel := mustRank5(t, "Ah2c3d4s5h")
	assert.Equal(t, Straight, wheel.Category)
	assert.Equal(t, 5, wheel.Tiebreak[0])

	sixHigh := mustRank5(t, "2c3d4s5h6d")
	assert.Equal(t, Straight, sixHigh.Category)
	assert.Equal(t, 6, sixHigh.Tiebreak[0])

	assert.Equal(t, -1, Compare(wheel, sixHigh))
}

func TestFlushBeatsStraight(t *testing.T) {
	flush := mustRank5(t, "KdQdJd9d2d")
	straight := mustRank5(t, "Td9s8h7c6d")
	assert.True(t, Stronger(flush, straight))
}

func TestFullHouseTiebreak(t *testing.T) {
	kingsFull := mustRank5(t, "KsKhKd2c2h")
	queensFull := mustRank5(t, "QsQhQdAsAh")
	assert.True(t, Stronger(kingsFull, queensFull))
}

func TestBestOf7AtLeastAsStrongAsAnyFive(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		all := deck.AllCards()
		perm := rng.Perm(52)
		seven := make([]deck.Card, 7)
		for j := 0; j < 7; j++ {
			seven[j] = all[perm[j]]
		}
		best, err := BestOf7(seven)
		require.NoError(t, err)

		five, err := Rank5(seven[:5])
		require.NoError(t, err)
		assert.GreaterOrEqual(t, Compare(best, five), 0)
	}
}

func TestSuitRelabelingDoesNotChangeNonFlushStrength(t *testing.T) {
	a := mustRank5(t, "AsKdQhJc9d")
	b := mustRank5(t, "AdKhQcJs9h")
	assert.Equal(t, 0, Compare(a, b))
}

func TestCategoryIsAlwaysOneOfNine(t *testing.T) {
	hs := mustRank5(t, "2c3d4s5h6d")
	assert.GreaterOrEqual(t, int(hs.Category), int(HighCard))
	assert.LessOrEqual(t, int(hs.Category), int(StraightFlush))
}
