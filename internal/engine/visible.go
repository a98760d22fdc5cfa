package engine

import "github.com/holdemcore/simcore/internal/deck"

// SeatView is the publicly-visible slice of one seat's state. It never
// carries hole cards, not even the actor's; those are in
// VisibleState.HoleCards.
type SeatView struct {
	Seat            int    `json:"seat"`
	Stack           int    `json:"stack"`
	Status          string `json:"status"`
	CommittedStreet int    `json:"committed_street"`
	CommittedTotal  int    `json:"committed_total"`
}

// LegalActionView is the wire shape of one LegalAction entry: type plus,
// where applicable, the [min, max] "to" amount range.
type LegalActionView struct {
	Type string `json:"type"`
	Min  int    `json:"min,omitempty"`
	Max  int    `json:"max,omitempty"`
}

// EquityView is the Monte Carlo win/tie estimate attached to a decision
// point.
type EquityView struct {
	Win float64 `json:"win"`
	Tie float64 `json:"tie"`
}

// LogEntryView is the wire shape of one ActionLogEntry; the full action
// log so far is public information.
type LogEntryView struct {
	Seat   int    `json:"seat"`
	Street string `json:"street"`
	Action string `json:"action"`
	Amount int    `json:"amount,omitempty"`
}

// VisibleState is the constrained, per-actor projection of HandState
// handed to a bot's Decide call. Its field shape already matches the wire
// shape an out-of-process bot would receive, so it marshals to JSON via
// ordinary struct tags with no custom marshaler.
type VisibleState struct {
	HandID       int64             `json:"hand_id"`
	Street       string            `json:"street"`
	ActorSeat    int               `json:"actor_seat"`
	DealerSeat   int               `json:"dealer_seat"`
	Board        []string          `json:"board"`
	HoleCards    []string          `json:"hole_cards"`
	Seats        []SeatView        `json:"seats"`
	BetToMatch   int               `json:"bet_to_match"`
	MinRaise     int               `json:"min_raise"`
	Pot          int               `json:"pot"`
	Log          []LogEntryView    `json:"action_log"`
	LegalActions []LegalActionView `json:"legal_actions"`
	Equity       EquityView        `json:"equity"`
}

// EquityFunc computes the (win, tie) estimate to attach to a visible
// state, abstracting over the equity package so this file doesn't import
// it directly (keeps the estimator pluggable for tests that want a fixed
// equity value instead of running Monte Carlo samples).
type EquityFunc func(hole [2]deck.Card, board []deck.Card, liveOpponents int) (win, tie float64)

// MakeVisibleState projects hs into actor's constrained view. raiseOpen is
// forwarded to legalActions to decide whether a short all-in has closed
// off re-raising for actor this betting round.
func MakeVisibleState(hs *HandState, actorSeat int, raiseOpen bool, equity EquityFunc) VisibleState {
	seat := hs.Seats[actorSeat]

	seatViews := make([]SeatView, len(hs.Seats))
	for i, s := range hs.Seats {
		seatViews[i] = SeatView{
			Seat:            i,
			Stack:           s.Stack,
			Status:          s.Status.String(),
			CommittedStreet: s.CommittedStreet,
			CommittedTotal:  s.CommittedTotal,
		}
	}

	board := make([]string, len(hs.Board))
	for i, c := range hs.Board {
		board[i] = c.WireString()
	}

	logViews := make([]LogEntryView, len(hs.Log))
	for i, e := range hs.Log {
		logViews[i] = LogEntryView{
			Seat:   e.Seat,
			Street: e.Street.String(),
			Action: e.Action.String(),
			Amount: e.Amount,
		}
	}

	legal := legalActions(seat, hs.BetToMatch, hs.MinRaise, hs.Config.BigBlind, raiseOpen)
	legalViews := make([]LegalActionView, len(legal))
	for i, a := range legal {
		legalViews[i] = LegalActionView{Type: a.Type.String(), Min: a.Min, Max: a.Max}
	}

	liveOpponents := 0
	for i, s := range hs.Seats {
		if i != actorSeat && s.Status != SeatFolded {
			liveOpponents++
		}
	}
	var eq EquityView
	if equity != nil {
		win, tie := equity(seat.Hole, hs.Board, liveOpponents)
		eq = EquityView{Win: win, Tie: tie}
	}

	pot := 0
	for _, s := range hs.Seats {
		pot += s.CommittedTotal
	}

	return VisibleState{
		HandID:       hs.HandID,
		Street:       hs.Street.String(),
		ActorSeat:    actorSeat,
		DealerSeat:   hs.Dealer,
		Board:        board,
		HoleCards:    []string{seat.Hole[0].WireString(), seat.Hole[1].WireString()},
		Seats:        seatViews,
		BetToMatch:   hs.BetToMatch,
		MinRaise:     hs.MinRaise,
		Pot:          pot,
		Log:          logViews,
		LegalActions: legalViews,
		Equity:       eq,
	}
}
