package engine

import (
	"testing"

	"github.com/holdemcore/simcore/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegalActionsOffersCheckWhenNothingToCall(t *testing.T) {
	seat := SeatState{Stack: 980, CommittedStreet: 20, Status: SeatActive}
	legal := legalActions(seat, 20, 20, 20, true)
	_, ok := findLegal(legal, Check)
	assert.True(t, ok)
	_, ok = findLegal(legal, Call)
	assert.False(t, ok)
}

func TestLegalActionsOmitsRaiseWhenShortStack(t *testing.T) {
	seat := SeatState{Stack: 5, CommittedStreet: 0, Status: SeatActive}
	legal := legalActions(seat, 20, 20, 20, true)
	_, ok := findLegal(legal, Raise)
	assert.False(t, ok)
	_, ok = findLegal(legal, AllIn)
	assert.True(t, ok)
}

func TestNormalizeFallsBackToCheckOnMalformedProposal(t *testing.T) {
	legal := []LegalAction{{Type: Fold}, {Type: Check}}
	got := Normalize(nil, legal)
	assert.Equal(t, Action{Type: Check}, got)
}

func TestNormalizeFallsBackToCallWhenCheckIllegal(t *testing.T) {
	legal := []LegalAction{{Type: Fold}, {Type: Call, Min: 40, Max: 40}}
	got := Normalize(&Action{Type: Bet, Amount: 10}, legal)
	assert.Equal(t, Action{Type: Call, Amount: 40}, got)
}

func TestNormalizeClampsOutOfRangeRaise(t *testing.T) {
	legal := []LegalAction{{Type: Fold}, {Type: Raise, Min: 40, Max: 200}}
	got := Normalize(&Action{Type: Raise, Amount: 1000}, legal)
	assert.Equal(t, Action{Type: Raise, Amount: 200}, got)

	got = Normalize(&Action{Type: Raise, Amount: 1}, legal)
	assert.Equal(t, Action{Type: Raise, Amount: 40}, got)
}

func sevenCard(t *testing.T, hole string, board string) (deck.Card, deck.Card, []deck.Card) {
	t.Helper()
	holeCards, err := deck.ParseCards(hole)
	require.NoError(t, err)
	boardCards, err := deck.ParseCards(board)
	require.NoError(t, err)
	return holeCards[0], holeCards[1], boardCards
}

func TestResolvePotsSplitsSidePotByCommitmentLevel(t *testing.T) {
	h0, h1, board := sevenCard(t, "AsAc", "2d3d4d5d6d")
	h2, h3, _ := sevenCard(t, "KsKc", "")
	h4, h5, _ := sevenCard(t, "2c7h", "")

	seats := []SeatState{
		{Hole: [2]deck.Card{h0, h1}, Status: SeatAllIn, CommittedTotal: 100},
		{Hole: [2]deck.Card{h2, h3}, Status: SeatAllIn, CommittedTotal: 300},
		{Hole: [2]deck.Card{h4, h5}, Status: SeatActive, CommittedTotal: 300},
	}

	pots, winnings, err := resolvePots(seats, board, 0)
	require.NoError(t, err)
	require.Len(t, pots, 2)

	assert.Equal(t, 300, pots[0].Amount) // 100 from each of the 3 seats
	assert.Equal(t, 400, pots[1].Amount) // 200 from each of the remaining 2 seats

	total := 0
	for _, v := range winnings {
		total += v
	}
	assert.Equal(t, 700, total)
}

func TestResolvePotsFoldedSeatStillContributesToPot(t *testing.T) {
	h0, h1, board := sevenCard(t, "AsAc", "2d3d4d5d6d")
	h2, h3, _ := sevenCard(t, "2c7h", "")

	seats := []SeatState{
		{Hole: [2]deck.Card{h0, h1}, Status: SeatActive, CommittedTotal: 50},
		{Hole: [2]deck.Card{h2, h3}, Status: SeatFolded, CommittedTotal: 50},
	}

	pots, winnings, err := resolvePots(seats, board, 0)
	require.NoError(t, err)
	require.Len(t, pots, 1)
	assert.Equal(t, 100, pots[0].Amount)
	assert.Equal(t, 100, winnings[0])
}
