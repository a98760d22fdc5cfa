package engine

import (
	"sort"

	"github.com/holdemcore/simcore/internal/deck"
	"github.com/holdemcore/simcore/internal/eval"
)

// resolvePots builds and awards side pots at hand end. Pots are derived
// here from each seat's total hand commitment rather than tracked
// incrementally during betting. board is the final community board
// (possibly fewer than 5 cards if the hand ended early by a single
// non-folded seat remaining).
func resolvePots(seats []SeatState, board []deck.Card, dealer int) ([]SidePot, map[int]int, error) {
	n := len(seats)

	nonFolded := make([]int, 0, n)
	for i, s := range seats {
		if s.Status != SeatFolded {
			nonFolded = append(nonFolded, i)
		}
	}

	// Single non-folded seat: wins the entire pot outright, no showdown.
	if len(nonFolded) == 1 {
		winner := nonFolded[0]
		total := 0
		for _, s := range seats {
			total += s.CommittedTotal
		}
		pots := []SidePot{{Amount: total, Eligible: []int{winner}, Winners: []int{winner}}}
		return pots, map[int]int{winner: total}, nil
	}

	levelSet := map[int]bool{}
	for _, i := range nonFolded {
		if seats[i].CommittedTotal > 0 {
			levelSet[seats[i].CommittedTotal] = true
		}
	}
	levels := make([]int, 0, len(levelSet))
	for l := range levelSet {
		levels = append(levels, l)
	}
	sort.Ints(levels)

	var pots []SidePot
	winnings := map[int]int{}
	prevLevel := 0

	for _, level := range levels {
		amount := 0
		for _, s := range seats {
			contribAtLevel := min(s.CommittedTotal, level) - min(s.CommittedTotal, prevLevel)
			if contribAtLevel > 0 {
				amount += contribAtLevel
			}
		}

		var eligible []int
		for _, i := range nonFolded {
			if seats[i].CommittedTotal >= level {
				eligible = append(eligible, i)
			}
		}

		if amount > 0 && len(eligible) > 0 {
			winners, err := showdownWinners(seats, eligible, board)
			if err != nil {
				return nil, nil, err
			}
			awardPot(amount, winners, dealer, len(seats), winnings)
			pots = append(pots, SidePot{Amount: amount, Eligible: eligible, Winners: winners})
		}

		prevLevel = level
	}

	return pots, winnings, nil
}

// showdownWinners evaluates the best 7-card hand for every eligible seat
// and returns the seats whose HandStrength is a genuine tie for the best:
// a Compare of 0 is a real tie and means a chop, not an arbitrary break.
func showdownWinners(seats []SeatState, eligible []int, board []deck.Card) ([]int, error) {
	if len(eligible) == 1 {
		return eligible, nil
	}

	strengths := make(map[int]eval.HandStrength, len(eligible))
	var best eval.HandStrength
	first := true
	for _, i := range eligible {
		seven := append(append([]deck.Card{}, seats[i].Hole[0], seats[i].Hole[1]), board...)
		hs, err := eval.BestOf7(seven)
		if err != nil {
			return nil, err
		}
		strengths[i] = hs
		if first || eval.Stronger(hs, best) {
			best = hs
			first = false
		}
	}

	var winners []int
	for _, i := range eligible {
		if eval.Compare(strengths[i], best) == 0 {
			winners = append(winners, i)
		}
	}
	return winners, nil
}

// awardPot splits amount equally among winners, giving any integer-division
// remainder to the earliest winner clockwise from the dealer.
func awardPot(amount int, winners []int, dealer, seatCount int, winnings map[int]int) {
	share := amount / len(winners)
	remainder := amount % len(winners)

	sort.Slice(winners, func(a, b int) bool {
		return clockwiseDistance(winners[a], dealer, seatCount) < clockwiseDistance(winners[b], dealer, seatCount)
	})

	for idx, seat := range winners {
		take := share
		if idx == 0 {
			take += remainder
		}
		winnings[seat] += take
	}
}

// clockwiseDistance is how many seats clockwise from dealer you must travel
// to reach seat, in [1, seatCount].
func clockwiseDistance(seat, dealer, seatCount int) int {
	d := seat - dealer
	if d <= 0 {
		d += seatCount
	}
	return d
}
