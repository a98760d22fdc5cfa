package engine

import (
	"context"
	"math/rand"

	"github.com/holdemcore/simcore/internal/deck"
	"github.com/holdemcore/simcore/internal/equity"
)

// FailureRecorder is called whenever a seat's Decide call fails (an error,
// a panic, or an expired context) and a fallback action was substituted. A
// nil or illegal proposal is normalized without being reported. It is the
// hook the match runner uses to fill a seat's bounded per-match error
// buffer; it may be nil.
type FailureRecorder func(seat int, reason string)

// SimulateHand runs one complete hand of poker as a deterministic state
// machine: deal, post blinds, run four betting streets, and resolve pots
// at showdown (or at an early fold-out). Given the same seed, config,
// dealer, initialStacks and a deterministic decide, it returns an
// identical HandResult on every call.
func SimulateHand(ctx context.Context, botCodes []string, seed int64, config TableConfig, dealer int, initialStacks []int, decide Decide, equitySamples int, onFailure FailureRecorder) (HandResult, error) {
	if err := config.Validate(); err != nil {
		return HandResult{}, err
	}
	if len(botCodes) != config.Seats {
		return HandResult{}, errInvalidInputf("len(bot_codes)=%d must equal seats=%d", len(botCodes), config.Seats)
	}
	if len(initialStacks) != config.Seats {
		return HandResult{}, errInvalidInputf("len(initial_stacks)=%d must equal seats=%d", len(initialStacks), config.Seats)
	}
	if dealer < 0 || dealer >= config.Seats {
		return HandResult{}, errInvalidInputf("dealer seat %d out of range [0,%d)", dealer, config.Seats)
	}
	for i, s := range initialStacks {
		if s < 0 {
			return HandResult{}, errInvalidInputf("seat %d has negative stack %d", i, s)
		}
	}

	rng := rand.New(rand.NewSource(seed))
	d := deck.NewDeck(rng)
	d.Shuffle()

	seats := make([]SeatState, config.Seats)
	for i := range seats {
		seats[i] = SeatState{Stack: initialStacks[i], Status: SeatActive}
	}

	hs := &HandState{
		HandID: seed,
		Config: config,
		Dealer: dealer,
		Street: Preflop,
		Seats:  seats,
	}

	hs.dealHoleCards(d)
	_, bbSeat := hs.postBlinds()

	ended := hs.playStreet(ctx, botCodes, decide, equitySamples, onFailure, hs.firstActiveFrom((bbSeat+1)%config.Seats))

	board := []struct {
		street Street
		cards  int
	}{{Flop, 3}, {Turn, 1}, {River, 1}}

	for _, b := range board {
		if ended || hs.nonFoldedCount() <= 1 {
			break
		}
		hs.Street = b.street
		hs.dealBoard(d, b.cards)
		hs.startNewStreet()
		first := hs.firstActiveFrom((hs.Dealer + 1) % config.Seats)
		ended = hs.playStreet(ctx, botCodes, decide, equitySamples, onFailure, first)
	}

	hs.Street = Showdown
	pots, winnings, err := resolvePots(hs.Seats, hs.Board, hs.Dealer)
	if err != nil {
		return HandResult{}, err
	}
	if err := hs.checkConservation(initialStacks, winnings); err != nil {
		return HandResult{}, err
	}

	finalStacks := make([]int, config.Seats)
	chipDeltas := make([]int, config.Seats)
	holeCards := make([][2]deck.Card, config.Seats)
	for i := range hs.Seats {
		finalStacks[i] = hs.Seats[i].Stack + winnings[i]
		chipDeltas[i] = finalStacks[i] - initialStacks[i]
		holeCards[i] = hs.Seats[i].Hole
	}

	return HandResult{
		Seed:        seed,
		Dealer:      dealer,
		Board:       hs.Board,
		Log:         hs.Log,
		Winners:     winnings,
		ChipDeltas:  chipDeltas,
		Pots:        pots,
		FinalStacks: finalStacks,
		HoleCards:   holeCards,
	}, nil
}

// dealHoleCards deals 2 cards to every seat, starting at (dealer+1) mod
// seats, one card at a time over two passes.
func (hs *HandState) dealHoleCards(d *deck.Deck) {
	n := len(hs.Seats)
	start := (hs.Dealer + 1) % n
	for pass := 0; pass < 2; pass++ {
		for i := 0; i < n; i++ {
			seat := (start + i) % n
			c, _ := d.Deal()
			hs.Seats[seat].Hole[pass] = c
		}
	}
}

// dealBoard deals n community cards, appending to Board. No burn cards are
// modeled.
func (hs *HandState) dealBoard(d *deck.Deck, n int) {
	for i := 0; i < n; i++ {
		c, _ := d.Deal()
		hs.Board = append(hs.Board, c)
	}
}

// postBlinds posts the small and big blind, applying the heads-up
// exception (dealer posts small blind), and seeds BetToMatch/MinRaise at
// the big blind.
func (hs *HandState) postBlinds() (sbSeat, bbSeat int) {
	n := len(hs.Seats)
	if n == 2 {
		sbSeat = hs.Dealer
		bbSeat = (hs.Dealer + 1) % n
	} else {
		sbSeat = (hs.Dealer + 1) % n
		bbSeat = (hs.Dealer + 2) % n
	}
	hs.postBlind(sbSeat, hs.Config.SmallBlind)
	hs.postBlind(bbSeat, hs.Config.BigBlind)
	hs.BetToMatch = hs.Config.BigBlind
	hs.MinRaise = hs.Config.BigBlind
	return sbSeat, bbSeat
}

// postBlind forces seatIdx to commit amount, or its whole stack if
// smaller: a short blind goes all-in.
func (hs *HandState) postBlind(seatIdx, amount int) {
	seat := &hs.Seats[seatIdx]
	commit := min(amount, seat.Stack)
	seat.Stack -= commit
	seat.CommittedStreet += commit
	seat.CommittedTotal += commit
	if seat.Stack == 0 {
		seat.Status = SeatAllIn
	}
}

// startNewStreet resets per-street betting state between streets:
// committed-this-street and acted-this-street reset, BetToMatch zeroes,
// MinRaise returns to the big blind.
func (hs *HandState) startNewStreet() {
	for i := range hs.Seats {
		hs.Seats[i].CommittedStreet = 0
		hs.Seats[i].ActedThisStreet = false
	}
	hs.BetToMatch = 0
	hs.MinRaise = hs.Config.BigBlind
}

// playStreet runs one betting round starting at firstToAct, or skips
// betting entirely (an all-in run-out) when no seat has a decision left to
// make. It returns true if the hand ended early (at most one non-folded
// seat remains).
func (hs *HandState) playStreet(ctx context.Context, botCodes []string, decide Decide, equitySamples int, onFailure FailureRecorder, firstToAct int) bool {
	if hs.nonFoldedCount() <= 1 {
		return true
	}
	if firstToAct == -1 {
		return false
	}
	// A lone active seat gets no betting round of its own, unless it still
	// owes chips to an all-in it hasn't matched: then it must call or fold.
	if hs.activeCount() < 2 && hs.Seats[firstToAct].CommittedStreet >= hs.BetToMatch {
		return false
	}

	hs.raiseOpen = true
	n := len(hs.Seats)
	current := firstToAct
	skipped := 0

	for {
		if hs.nonFoldedCount() <= 1 {
			return true
		}
		if hs.bettingRoundComplete() {
			return false
		}
		if hs.Seats[current].Status != SeatActive {
			current = (current + 1) % n
			skipped++
			if skipped > n {
				// No seat can act yet the round isn't flagged complete:
				// an engine invariant has been violated.
				panic(wrapf(ErrInconsistency, "no actionable seat but betting round incomplete"))
			}
			continue
		}
		skipped = 0

		legal := legalActions(hs.Seats[current], hs.BetToMatch, hs.MinRaise, hs.Config.BigBlind, hs.raiseOpen)
		vs := MakeVisibleState(hs, current, hs.raiseOpen, hs.equityFuncFor(current, equitySamples))
		action, failed := callDecide(ctx, decide, botCodes[current], vs, legal)
		if failed && onFailure != nil {
			onFailure(current, "decide failed; fallback action substituted")
		}

		hs.applyAction(current, action)
		hs.Log = append(hs.Log, ActionLogEntry{Seat: current, Street: hs.Street, Action: action.Type, Amount: action.Amount})
		current = (current + 1) % n
	}
}

// equityFuncFor builds the EquityFunc used while actorSeat is deciding.
// The stream is derived from (hand seed, street, actor seat), never from
// the hand's own deck PRNG.
func (hs *HandState) equityFuncFor(actorSeat, samples int) EquityFunc {
	return func(hole [2]deck.Card, board []deck.Card, liveOpponents int) (float64, float64) {
		rng := equity.DeriveRNG(hs.HandID, int(hs.Street), actorSeat)
		r := equity.Estimate(hole, board, liveOpponents, samples, rng)
		return r.Win, r.Tie
	}
}

// applyAction mutates seat and hand-level betting state for one executed
// action. Amounts for bet/raise are "to" values: the seat's total street
// commitment afterward.
func (hs *HandState) applyAction(seatIdx int, action Action) {
	seat := &hs.Seats[seatIdx]
	switch action.Type {
	case Fold:
		seat.Status = SeatFolded
		seat.ActedThisStreet = true

	case Check:
		seat.ActedThisStreet = true

	case Call:
		amt := min(seat.Stack, hs.BetToMatch-seat.CommittedStreet)
		hs.commit(seat, amt)
		seat.ActedThisStreet = true
		if seat.Stack == 0 {
			seat.Status = SeatAllIn
		}

	case Bet:
		amt := action.Amount - seat.CommittedStreet
		hs.commit(seat, amt)
		hs.BetToMatch = action.Amount
		hs.MinRaise = action.Amount
		seat.ActedThisStreet = true
		if seat.Stack == 0 {
			seat.Status = SeatAllIn
		}
		hs.resetOthersActed(seatIdx)

	case Raise:
		increment := action.Amount - hs.BetToMatch
		amt := action.Amount - seat.CommittedStreet
		hs.commit(seat, amt)
		hs.MinRaise = increment
		hs.BetToMatch = action.Amount
		seat.ActedThisStreet = true
		if seat.Stack == 0 {
			seat.Status = SeatAllIn
		}
		hs.resetOthersActed(seatIdx)

	case AllIn:
		amt := seat.Stack
		hs.commit(seat, amt)
		seat.Status = SeatAllIn
		seat.ActedThisStreet = true
		if seat.CommittedStreet > hs.BetToMatch {
			increment := seat.CommittedStreet - hs.BetToMatch
			reopens := increment >= hs.MinRaise
			hs.BetToMatch = seat.CommittedStreet
			if reopens {
				hs.MinRaise = increment
				hs.resetOthersActed(seatIdx)
			} else {
				// Short all-in: does not reopen action for seats that
				// already acted at this BetToMatch level.
				hs.raiseOpen = false
			}
		}
	}
}

// commit moves amt chips from seat's stack into its street/hand
// commitments.
func (hs *HandState) commit(seat *SeatState, amt int) {
	seat.Stack -= amt
	seat.CommittedStreet += amt
	seat.CommittedTotal += amt
}

// resetOthersActed clears ActedThisStreet for every other active seat, as
// a legitimate bet/raise reopens the action for them, and marks the
// round's action as open again.
func (hs *HandState) resetOthersActed(exclude int) {
	for i := range hs.Seats {
		if i != exclude && hs.Seats[i].Status == SeatActive {
			hs.Seats[i].ActedThisStreet = false
		}
	}
	hs.raiseOpen = true
}

// bettingRoundComplete reports whether every active seat has acted this
// street and matched the current bet.
func (hs *HandState) bettingRoundComplete() bool {
	for _, s := range hs.Seats {
		if s.Status == SeatActive {
			if !s.ActedThisStreet || s.CommittedStreet != hs.BetToMatch {
				return false
			}
		}
	}
	return true
}

// firstActiveFrom returns the first SeatActive seat at or after seat,
// wrapping around the table, or -1 if none remain.
func (hs *HandState) firstActiveFrom(seat int) int {
	n := len(hs.Seats)
	for i := 0; i < n; i++ {
		idx := (seat + i) % n
		if hs.Seats[idx].Status == SeatActive {
			return idx
		}
	}
	return -1
}

// activeCount returns the number of seats still able to act voluntarily.
func (hs *HandState) activeCount() int {
	n := 0
	for _, s := range hs.Seats {
		if s.Status == SeatActive {
			n++
		}
	}
	return n
}

// nonFoldedCount returns the number of seats still eligible to win a pot.
func (hs *HandState) nonFoldedCount() int {
	n := 0
	for _, s := range hs.Seats {
		if s.Status != SeatFolded {
			n++
		}
	}
	return n
}

// checkConservation enforces chip conservation: every chip that started
// the hand is either still stacked or has been distributed as winnings.
func (hs *HandState) checkConservation(initialStacks []int, winnings map[int]int) error {
	sumInitial, sumFinal := 0, 0
	for i, s := range hs.Seats {
		sumInitial += initialStacks[i]
		sumFinal += s.Stack + winnings[i]
	}
	if sumInitial != sumFinal {
		return wrapf(ErrInconsistency, "chip conservation violated: initial=%d final=%d", sumInitial, sumFinal)
	}
	return nil
}
