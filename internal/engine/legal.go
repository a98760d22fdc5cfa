package engine

// LegalAction is one entry of the enumerated legal-action set presented to
// a bot: a type plus, where applicable, the [min, max] "to" amount range.
// For call and all_in, min == max (the amount is forced).
type LegalAction struct {
	Type ActionType
	Min  int
	Max  int
}

// legalActions enumerates the legal actions for a seat, given the current
// bet-to-match and min-raise for the street and the big blind (used as
// bet's floor). Only called for seats with SeatActive status; folded and
// all-in seats never act.
//
// raiseOpen is false when the only raise this seat currently faces was a
// short all-in below min-raise: the action did not reopen, so a seat that
// already acted at this bet-to-match level may only call or fold (it may
// still shove the rest of its stack via all_in, which is unconditional).
// A seat on its first action of the street can always raise regardless of
// raiseOpen, since it hasn't had a turn to forfeit yet.
func legalActions(seat SeatState, betToMatch, minRaise, bigBlind int, raiseOpen bool) []LegalAction {
	var actions []LegalAction

	actions = append(actions, LegalAction{Type: Fold})

	toCall := betToMatch - seat.CommittedStreet
	if toCall == 0 {
		actions = append(actions, LegalAction{Type: Check})
	} else {
		callAmount := seat.Stack
		if toCall < callAmount {
			callAmount = toCall
		}
		actions = append(actions, LegalAction{Type: Call, Min: callAmount, Max: callAmount})
	}

	maxTo := seat.CommittedStreet + seat.Stack
	canRaise := raiseOpen || !seat.ActedThisStreet

	if canRaise {
		if betToMatch == 0 {
			if seat.Stack >= bigBlind {
				actions = append(actions, LegalAction{Type: Bet, Min: bigBlind, Max: maxTo})
			}
		} else {
			minTo := betToMatch + minRaise
			if maxTo >= minTo {
				actions = append(actions, LegalAction{Type: Raise, Min: minTo, Max: maxTo})
			}
		}
	}

	if seat.Stack > 0 {
		actions = append(actions, LegalAction{Type: AllIn, Min: maxTo, Max: maxTo})
	}

	return actions
}

// findLegal returns the LegalAction entry of the given type, if present.
func findLegal(legal []LegalAction, t ActionType) (LegalAction, bool) {
	for _, a := range legal {
		if a.Type == t {
			return a, true
		}
	}
	return LegalAction{}, false
}
