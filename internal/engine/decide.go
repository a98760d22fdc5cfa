package engine

import "context"

// Decide is the engine's sole collaborator for bot decision-making. The
// engine treats botCode as an opaque blob and defers its execution to this
// injected callable; it is invoked exactly once per decision point and the
// engine waits for its return. Decide's contract is total: it must return
// an action or an error, and the engine tolerates either — an error (or a
// deadline past ctx) is caught and substituted with the fallback chain,
// never aborting the hand.
type Decide func(ctx context.Context, botCode string, visible VisibleState) (*Action, error)

// callDecide invokes decide and normalizes its result against legal,
// substituting the fallback chain on any error, panic, malformed proposal,
// or context expiry. It never panics and never returns an error: a decide
// failure is reported to the caller via the failed flag, not surfaced as a
// Go error, since bot failures never abort a hand.
func callDecide(ctx context.Context, decide Decide, botCode string, visible VisibleState, legal []LegalAction) (action Action, failed bool) {
	defer func() {
		if r := recover(); r != nil {
			action, failed = Normalize(nil, legal), true
		}
	}()
	proposed, err := decide(ctx, botCode, visible)
	if err != nil || ctx.Err() != nil {
		return Normalize(nil, legal), true
	}
	return Normalize(proposed, legal), false
}
