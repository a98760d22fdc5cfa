// Package match implements the match runner: it iterates hands, rotates
// the dealer, carries stacks forward, and accumulates bounded per-seat
// log/error buffers across the whole match.
package match

import (
	"context"
	"errors"
	"fmt"

	"github.com/holdemcore/simcore/internal/engine"
)

// handSeedStride is the large prime stride added to the match seed for
// each successive hand, so hands within one match produce distinct,
// non-overlapping deal sequences.
const handSeedStride = 10_007

// logBufferCap and errBufferCap bound the per-seat capture buffers.
const (
	logBufferCap = 20_000
	errBufferCap = 30_000
)

// ErrInvalidInput is returned for malformed match inputs.
var ErrInvalidInput = errors.New("match: invalid input")

// Config is the match-level configuration layered on top of TableConfig:
// how many hands to play and the equity sample count each hand's
// visible-state decisions use.
type Config struct {
	Table         engine.TableConfig
	Hands         int
	EquitySamples int
	MakeState     MakeState
}

// MakeState is the seam a host can use to wrap or post-process a hand's
// visible state before it reaches decide (e.g. adding host-specific
// context). The default (nil) passes the engine's VisibleState through
// unchanged.
type MakeState func(vs engine.VisibleState) engine.VisibleState

// SeatCapture accumulates one seat's tail-bounded log and error output
// across an entire match.
type SeatCapture struct {
	Log    string
	ErrLog string
}

func (c *SeatCapture) appendLog(s string) {
	c.Log = appendBounded(c.Log, s, logBufferCap)
}

func (c *SeatCapture) appendErr(s string) {
	c.ErrLog = appendBounded(c.ErrLog, s, errBufferCap)
}

// appendBounded appends s to buf; if the result would exceed limit, the
// oldest content is dropped and only the trailing window is kept.
func appendBounded(buf, s string, limit int) string {
	if buf != "" {
		buf += "\n"
	}
	buf += s
	if len(buf) > limit {
		buf = buf[len(buf)-limit:]
	}
	return buf
}

// Result is the full record of one completed match.
type Result struct {
	Seed        int64
	Hands       []engine.HandResult
	FinalStacks []int
	ChipsWon    []int
	Seats       []SeatCapture
}

// wrapMakeState applies the host's MakeState hook (if any) to every
// VisibleState the engine produces before it reaches decide.
func wrapMakeState(decide engine.Decide, makeState MakeState) engine.Decide {
	if makeState == nil {
		return decide
	}
	return func(ctx context.Context, botCode string, vs engine.VisibleState) (*engine.Action, error) {
		return decide(ctx, botCode, makeState(vs))
	}
}

// RunMatch drives Config.Hands successive calls to engine.SimulateHand,
// rotating the dealer seat and carrying stacks forward between hands.
// decide is shared by every seat and hand; botCodes identifies which
// opaque bot program occupies each seat throughout the match.
func RunMatch(ctx context.Context, botCodes []string, seed int64, cfg Config, decide engine.Decide) (Result, error) {
	if len(botCodes) != cfg.Table.Seats {
		return Result{}, fmt.Errorf("%w: len(bot_codes)=%d must equal seats=%d", ErrInvalidInput, len(botCodes), cfg.Table.Seats)
	}
	if cfg.Hands <= 0 {
		return Result{}, fmt.Errorf("%w: hands must be positive, got %d", ErrInvalidInput, cfg.Hands)
	}
	if err := cfg.Table.Validate(); err != nil {
		return Result{}, err
	}

	stacks := make([]int, cfg.Table.Seats)
	for i := range stacks {
		stacks[i] = cfg.Table.StartingStack
	}

	captures := make([]SeatCapture, cfg.Table.Seats)
	hands := make([]engine.HandResult, 0, cfg.Hands)

	decide = wrapMakeState(decide, cfg.MakeState)

	for h := 0; h < cfg.Hands; h++ {
		handSeed := seed + int64(h)*handSeedStride
		dealer := h % cfg.Table.Seats

		onFailure := func(seat int, reason string) {
			captures[seat].appendErr(fmt.Sprintf("hand %d: %s", h, reason))
		}

		result, err := engine.SimulateHand(ctx, botCodes, handSeed, cfg.Table, dealer, stacks, decide, cfg.EquitySamples, onFailure)
		if err != nil {
			return Result{}, fmt.Errorf("match: hand %d: %w", h, err)
		}

		for seat, delta := range result.ChipDeltas {
			captures[seat].appendLog(fmt.Sprintf("hand %d: chips %+d, final stack %d", h, delta, result.FinalStacks[seat]))
		}

		stacks = result.FinalStacks
		hands = append(hands, result)
	}

	chipsWon := make([]int, cfg.Table.Seats)
	for i := range chipsWon {
		chipsWon[i] = stacks[i] - cfg.Table.StartingStack
	}

	return Result{
		Seed:        seed,
		Hands:       hands,
		FinalStacks: stacks,
		ChipsWon:    chipsWon,
		Seats:       captures,
	}, nil
}
