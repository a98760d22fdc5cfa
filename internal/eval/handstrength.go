// Package eval implements the canonical 5-card hand ranking and the
// best-of-7 selection used at showdown.
package eval

import "fmt"

// Category is one of the 9 hand categories, ordered weakest to strongest.
// A higher Category always beats a lower one regardless of tiebreak.
type Category int

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

func (c Category) String() string {
	switch c {
	case HighCard:
		return "high_card"
	case Pair:
		return "pair"
	case TwoPair:
		return "two_pair"
	case ThreeOfAKind:
		return "three_of_a_kind"
	case Straight:
		return "straight"
	case Flush:
		return "flush"
	case FullHouse:
		return "full_house"
	case FourOfAKind:
		return "four_of_a_kind"
	case StraightFlush:
		return "straight_flush"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// HandStrength is a tagged (category, tiebreak tuple) value. Tiebreak
// holds up to 5 rank integers (2..14), always padded to a fixed width with
// zeros so two HandStrengths of the same category compare correctly by
// lexicographic tuple order.
type HandStrength struct {
	Category Category
	Tiebreak [5]int
}

// packed encodes the HandStrength as a single comparable integer: Category
// is the most significant field, followed by the five tiebreak ranks in
// order. There is no separate royal-flush category; it is just the
// highest straight flush, and higher always beats lower.
func (h HandStrength) packed() uint32 {
	v := uint32(h.Category) << 24
	v |= uint32(h.Tiebreak[0]&0xF) << 16
	v |= uint32(h.Tiebreak[1]&0xF) << 12
	v |= uint32(h.Tiebreak[2]&0xF) << 8
	v |= uint32(h.Tiebreak[3]&0xF) << 4
	v |= uint32(h.Tiebreak[4] & 0xF)
	return v
}

// Compare returns -1, 0, or 1 as a is weaker than, equal to, or stronger
// than b. A genuine tie (0) is a real poker tie and must be treated as a
// chop at showdown, not broken arbitrarily.
func Compare(a, b HandStrength) int {
	pa, pb := a.packed(), b.packed()
	switch {
	case pa < pb:
		return -1
	case pa > pb:
		return 1
	default:
		return 0
	}
}

// Stronger reports whether a beats b outright (Compare(a,b) > 0).
func Stronger(a, b HandStrength) bool {
	return Compare(a, b) > 0
}
