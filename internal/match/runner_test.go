package match

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holdemcore/simcore/internal/bots"
	"github.com/holdemcore/simcore/internal/engine"
)

func headsUpTable() engine.TableConfig {
	return engine.TableConfig{Seats: 2, StartingStack: 1000, SmallBlind: 10, BigBlind: 20}
}

func TestRunMatchConservesChipsAcrossHands(t *testing.T) {
	cfg := Config{Table: headsUpTable(), Hands: 6, EquitySamples: 0}
	result, err := RunMatch(context.Background(), []string{"a", "b"}, 1, cfg, bots.CheckCall)
	require.NoError(t, err)

	assert.Len(t, result.Hands, 6)

	sum := 0
	for _, s := range result.FinalStacks {
		sum += s
	}
	assert.Equal(t, cfg.Table.Seats*cfg.Table.StartingStack, sum)

	for i, won := range result.ChipsWon {
		assert.Equal(t, result.FinalStacks[i]-cfg.Table.StartingStack, won)
	}
}

func TestRunMatchRotatesDealerAndStridesHandSeeds(t *testing.T) {
	cfg := Config{Table: engine.TableConfig{Seats: 3, StartingStack: 1000, SmallBlind: 10, BigBlind: 20}, Hands: 4}
	result, err := RunMatch(context.Background(), []string{"a", "b", "c"}, 500, cfg, bots.CheckCall)
	require.NoError(t, err)

	seen := map[int64]bool{}
	for h, hand := range result.Hands {
		assert.Equal(t, h%cfg.Table.Seats, hand.Dealer)
		assert.False(t, seen[hand.Seed], "hand seed %d reused across hands", hand.Seed)
		seen[hand.Seed] = true
	}
}

func TestRunMatchCarriesStacksForwardBetweenHands(t *testing.T) {
	cfg := Config{Table: headsUpTable(), Hands: 3}
	result, err := RunMatch(context.Background(), []string{"a", "b"}, 7, cfg, bots.CheckCall)
	require.NoError(t, err)

	stacks := []int{cfg.Table.StartingStack, cfg.Table.StartingStack}
	for _, hand := range result.Hands {
		for seat, delta := range hand.ChipDeltas {
			stacks[seat] += delta
		}
		assert.Equal(t, stacks, hand.FinalStacks)
	}
	assert.Equal(t, stacks, result.FinalStacks)
}

func TestRunMatchRunsAreDeterministic(t *testing.T) {
	cfg := Config{Table: headsUpTable(), Hands: 5}
	a, err := RunMatch(context.Background(), []string{"a", "b"}, 99, cfg, bots.CheckCall)
	require.NoError(t, err)
	b, err := RunMatch(context.Background(), []string{"a", "b"}, 99, cfg, bots.CheckCall)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRunMatchRejectsMismatchedSeatCount(t *testing.T) {
	cfg := Config{Table: headsUpTable(), Hands: 1}
	_, err := RunMatch(context.Background(), []string{"only-one"}, 1, cfg, bots.CheckCall)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRunMatchRejectsNonPositiveHands(t *testing.T) {
	cfg := Config{Table: headsUpTable(), Hands: 0}
	_, err := RunMatch(context.Background(), []string{"a", "b"}, 1, cfg, bots.CheckCall)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRunMatchWrapsMakeStateHook(t *testing.T) {
	var seenStreets []string
	cfg := Config{
		Table: headsUpTable(),
		Hands: 1,
		MakeState: func(vs engine.VisibleState) engine.VisibleState {
			seenStreets = append(seenStreets, vs.Street)
			return vs
		},
	}
	_, err := RunMatch(context.Background(), []string{"a", "b"}, 1, cfg, bots.CheckCall)
	require.NoError(t, err)
	assert.NotEmpty(t, seenStreets)
}

func TestSeatCaptureAppendLogTruncatesFromFront(t *testing.T) {
	var c SeatCapture
	c.appendLog(strings.Repeat("x", logBufferCap-10))
	c.appendLog(strings.Repeat("y", 50))

	assert.LessOrEqual(t, len(c.Log), logBufferCap)
	assert.True(t, strings.HasSuffix(c.Log, strings.Repeat("y", 50)))
}

func TestSeatCaptureAppendErrTruncatesFromFront(t *testing.T) {
	var c SeatCapture
	c.appendErr(strings.Repeat("e", errBufferCap-5))
	c.appendErr("tail-marker")

	assert.LessOrEqual(t, len(c.ErrLog), errBufferCap)
	assert.True(t, strings.HasSuffix(c.ErrLog, "tail-marker"))
}

func TestRunMatchRecordsBotFailuresIntoErrLog(t *testing.T) {
	alwaysFails := func(ctx context.Context, botCode string, vs engine.VisibleState) (*engine.Action, error) {
		return nil, assertFailErr{}
	}
	cfg := Config{Table: headsUpTable(), Hands: 1}
	result, err := RunMatch(context.Background(), []string{"a", "b"}, 1, cfg, alwaysFails)
	require.NoError(t, err)

	foundFailure := false
	for _, seat := range result.Seats {
		if seat.ErrLog != "" {
			foundFailure = true
		}
	}
	assert.True(t, foundFailure, "expected at least one seat to record a decide failure")
}

type assertFailErr struct{}

func (assertFailErr) Error() string { return "bot decide intentionally failed" }
