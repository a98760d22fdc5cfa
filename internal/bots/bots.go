// Package bots implements a small set of in-process decide callables
// (engine.Decide) used as the CLI's demonstration opponents, plus a
// timeout-wrapping decorator that races a decide call against a
// quartz.Clock so deadline behavior is exercisable with a fake clock
// instead of a real sleep.
package bots

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/coder/quartz"

	"github.com/holdemcore/simcore/internal/engine"
)

// ErrDecideTimeout is returned by WithTimeout's wrapped Decide when the
// clock fires before the inner decide call returns.
var ErrDecideTimeout = errors.New("bots: decide timed out")

// CheckCall always checks when free, otherwise calls; it never bets,
// raises, or folds voluntarily. A deterministic baseline opponent.
func CheckCall(_ context.Context, _ string, vs engine.VisibleState) (*engine.Action, error) {
	if a, ok := find(vs.LegalActions, "check"); ok {
		return &engine.Action{Type: engine.Check, Amount: a.Min}, nil
	}
	if a, ok := find(vs.LegalActions, "call"); ok {
		return &engine.Action{Type: engine.Call, Amount: a.Max}, nil
	}
	return &engine.Action{Type: engine.Fold}, nil
}

// CallingStation calls or checks any bet up to its whole stack and folds
// only when neither is legal (e.g. facing a bet it can only call via
// all-in, which it still takes). It never raises.
func CallingStation(_ context.Context, _ string, vs engine.VisibleState) (*engine.Action, error) {
	if a, ok := find(vs.LegalActions, "check"); ok {
		return &engine.Action{Type: engine.Check, Amount: a.Min}, nil
	}
	if a, ok := find(vs.LegalActions, "call"); ok {
		return &engine.Action{Type: engine.Call, Amount: a.Max}, nil
	}
	if a, ok := find(vs.LegalActions, "all_in"); ok {
		return &engine.Action{Type: engine.AllIn, Amount: a.Max}, nil
	}
	return &engine.Action{Type: engine.Fold}, nil
}

// Random builds a decide callable that picks uniformly among its legal
// actions, sizing any bet/raise/call uniformly within [min, max]. It is
// seeded once at construction so a match built from it is reproducible
// for a given seed, consistent with the engine's own no-wall-clock
// randomness rule.
func Random(seed int64) engine.Decide {
	rng := rand.New(rand.NewSource(seed))
	return func(_ context.Context, _ string, vs engine.VisibleState) (*engine.Action, error) {
		if len(vs.LegalActions) == 0 {
			return &engine.Action{Type: engine.Fold}, nil
		}
		choice := vs.LegalActions[rng.Intn(len(vs.LegalActions))]
		amount := choice.Min
		if choice.Max > choice.Min {
			amount = choice.Min + rng.Intn(choice.Max-choice.Min+1)
		}
		return &engine.Action{Type: actionTypeOf(choice.Type), Amount: amount}, nil
	}
}

func find(legal []engine.LegalActionView, typ string) (engine.LegalActionView, bool) {
	for _, a := range legal {
		if a.Type == typ {
			return a, true
		}
	}
	return engine.LegalActionView{}, false
}

func actionTypeOf(s string) engine.ActionType {
	switch s {
	case "fold":
		return engine.Fold
	case "check":
		return engine.Check
	case "call":
		return engine.Call
	case "bet":
		return engine.Bet
	case "raise":
		return engine.Raise
	case "all_in":
		return engine.AllIn
	default:
		return engine.Fold
	}
}

// WithTimeout wraps decide so that it is raced against timeout ticks of
// clock: if clock fires first, the wrapped call returns ErrDecideTimeout
// (which the engine's fallback chain treats exactly like any other decide
// failure) instead of blocking forever on a misbehaving decide.
// Passing quartz.NewReal() gives an ordinary wall-clock timeout; tests
// pass a quartz.Mock and advance it explicitly instead of sleeping.
func WithTimeout(decide engine.Decide, timeout time.Duration, clock quartz.Clock) engine.Decide {
	return func(ctx context.Context, botCode string, vs engine.VisibleState) (*engine.Action, error) {
		type outcome struct {
			action *engine.Action
			err    error
		}
		done := make(chan outcome, 1)
		go func() {
			a, err := decide(ctx, botCode, vs)
			done <- outcome{a, err}
		}()

		select {
		case o := <-done:
			return o.action, o.err
		case <-clock.After(timeout):
			return nil, ErrDecideTimeout
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
