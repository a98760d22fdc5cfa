package engine

// Normalize maps a bot's proposed action into the legal-action set. It is
// the engine's last line of defense: combined with the decide-layer
// failure fallback, the engine never accepts an illegal action.
//
//   - If proposed is nil (missing/malformed) or its type is not legal,
//     fall back: check if legal, else call if legal, else fold.
//   - If proposed is bet/raise with an amount outside [min, max], clamp.
//   - Fractional amounts are not representable here (Action.Amount is
//     already an int). Fractional amounts are not truncated: the wire
//     package's schema rejects a non-integer amount, so such a proposal
//     arrives as a decide error and takes the fallback chain.
func Normalize(proposed *Action, legal []LegalAction) Action {
	if proposed == nil {
		return fallback(legal)
	}

	match, ok := findLegal(legal, proposed.Type)
	if !ok {
		return fallback(legal)
	}

	switch proposed.Type {
	case Bet, Raise:
		amount := proposed.Amount
		if amount < match.Min {
			amount = match.Min
		}
		if amount > match.Max {
			amount = match.Max
		}
		return Action{Type: proposed.Type, Amount: amount}
	case Call, AllIn:
		return Action{Type: proposed.Type, Amount: match.Min}
	default:
		return Action{Type: proposed.Type}
	}
}

// fallback prefers check, then call, then fold.
func fallback(legal []LegalAction) Action {
	if a, ok := findLegal(legal, Check); ok {
		return Action{Type: a.Type}
	}
	if a, ok := findLegal(legal, Call); ok {
		return Action{Type: a.Type, Amount: a.Min}
	}
	return Action{Type: Fold}
}
