package eval

import (
	"fmt"
	"sort"

	"github.com/holdemcore/simcore/internal/deck"
)

// ErrWrongCardCount is returned by Rank5/BestOf7 when given the wrong
// number of cards.
var ErrWrongCardCount = fmt.Errorf("eval: wrong card count")

// rankGroup is one distinct rank together with how many of the 5 cards
// share it, used to build tiebreak tuples once multiplicities are sorted.
type rankGroup struct {
	rank  int
	count int
}

// Rank5 ranks a single 5-card hand.
func Rank5(cards []deck.Card) (HandStrength, error) {
	if len(cards) != 5 {
		return HandStrength{}, fmt.Errorf("%w: got %d, want 5", ErrWrongCardCount, len(cards))
	}

	counts := map[int]int{}
	suitCounts := map[deck.Suit]int{}
	for _, c := range cards {
		counts[int(c.Rank)]++
		suitCounts[c.Suit]++
	}

	isFlush := false
	for _, n := range suitCounts {
		if n == 5 {
			isFlush = true
		}
	}

	straightTop, isStraight := detectStraight(counts)

	groups := make([]rankGroup, 0, len(counts))
	for rank, n := range counts {
		groups = append(groups, rankGroup{rank: rank, count: n})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})

	switch {
	case isFlush && isStraight:
		return HandStrength{Category: StraightFlush, Tiebreak: [5]int{straightTop}}, nil
	case groups[0].count == 4:
		return HandStrength{Category: FourOfAKind, Tiebreak: [5]int{groups[0].rank, groups[1].rank}}, nil
	case groups[0].count == 3 && groups[1].count == 2:
		return HandStrength{Category: FullHouse, Tiebreak: [5]int{groups[0].rank, groups[1].rank}}, nil
	case isFlush:
		ranks := descendingRanks(cards)
		return HandStrength{Category: Flush, Tiebreak: [5]int{ranks[0], ranks[1], ranks[2], ranks[3], ranks[4]}}, nil
	case isStraight:
		return HandStrength{Category: Straight, Tiebreak: [5]int{straightTop}}, nil
	case groups[0].count == 3:
		return HandStrength{Category: ThreeOfAKind, Tiebreak: [5]int{groups[0].rank, groups[1].rank, groups[2].rank}}, nil
	case groups[0].count == 2 && groups[1].count == 2:
		hi, lo := groups[0].rank, groups[1].rank
		if lo > hi {
			hi, lo = lo, hi
		}
		return HandStrength{Category: TwoPair, Tiebreak: [5]int{hi, lo, groups[2].rank}}, nil
	case groups[0].count == 2:
		return HandStrength{Category: Pair, Tiebreak: [5]int{groups[0].rank, groups[1].rank, groups[2].rank, groups[3].rank}}, nil
	default:
		ranks := descendingRanks(cards)
		return HandStrength{Category: HighCard, Tiebreak: [5]int{ranks[0], ranks[1], ranks[2], ranks[3], ranks[4]}}, nil
	}
}

// descendingRanks returns the 5 card ranks sorted high to low.
func descendingRanks(cards []deck.Card) []int {
	ranks := make([]int, len(cards))
	for i, c := range cards {
		ranks[i] = int(c.Rank)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))
	return ranks
}

// wheelRanks is the rank set of the ace-to-five "wheel" straight, which
// ranks as a 5-high straight rather than an ace-high one.
var wheelRanks = map[int]bool{14: true, 5: true, 4: true, 3: true, 2: true}

// detectStraight checks whether the 5 distinct ranks in counts form a
// straight, returning the straight's top rank. Only called meaningfully
// when all 5 cards have distinct ranks (a straight cannot coexist with any
// pair in a 5-card hand).
func detectStraight(counts map[int]int) (top int, ok bool) {
	if len(counts) != 5 {
		return 0, false
	}
	ranks := make([]int, 0, 5)
	for r := range counts {
		ranks = append(ranks, r)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))

	isWheel := true
	for _, r := range ranks {
		if !wheelRanks[r] {
			isWheel = false
			break
		}
	}
	if isWheel {
		return 5, true
	}

	if ranks[0]-ranks[4] == 4 {
		return ranks[0], true
	}
	return 0, false
}

// sevenChooseFive lists the C(7,5) = 21 index combinations enumerated by
// BestOf7, precomputed since the 7-card input size is fixed.
var sevenChooseFive = computeSevenChooseFive()

func computeSevenChooseFive() [][5]int {
	var combos [][5]int
	for a := 0; a < 7; a++ {
		for b := a + 1; b < 7; b++ {
			for c := b + 1; c < 7; c++ {
				for d := c + 1; d < 7; d++ {
					for e := d + 1; e < 7; e++ {
						combos = append(combos, [5]int{a, b, c, d, e})
					}
				}
			}
		}
	}
	return combos
}

// BestOf7 enumerates all 21 5-card subsets of a 7-card hand and returns the
// strongest by Compare. Genuine ties between two subsets' ranking
// are irrelevant here; BestOf7 only needs the best HandStrength achievable,
// which is unique regardless of how many subsets achieve it.
func BestOf7(cards []deck.Card) (HandStrength, error) {
	if len(cards) != 7 {
		return HandStrength{}, fmt.Errorf("%w: got %d, want 7", ErrWrongCardCount, len(cards))
	}

	var best HandStrength
	first := true
	five := make([]deck.Card, 5)
	for _, combo := range sevenChooseFive {
		for i, idx := range combo {
			five[i] = cards[idx]
		}
		hs, err := Rank5(five)
		if err != nil {
			return HandStrength{}, err
		}
		if first || Stronger(hs, best) {
			best = hs
			first = false
		}
	}
	return best, nil
}
