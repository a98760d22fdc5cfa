// Package cardindex builds a minimal perfect hash over the 52 canonical
// card wire strings, used for allocation-free card lookup instead of a
// map[string]int. The table is built once at package init from the
// 52-card key set rather than by a go:generate step, since the key set is
// small and fixed.
package cardindex

import (
	"fmt"

	"github.com/holdemcore/simcore/internal/deck"
	chd "github.com/opencoff/go-chd"
)

// Index is a perfect-hash lookup from a card's two-character wire string to
// its canonical 0..51 position.
type Index struct {
	h *chd.Chd

	// The hash assigns each key a distinct slot in [0, 52), but slot order
	// is the hash's own, not insertion order. These tables map a slot back
	// to the canonical card index and to the key that owns the slot, the
	// latter so unknown strings that happen to hash in range are rejected.
	cardAt [52]int
	keyAt  [52]string
}

// Build constructs the perfect hash table from the 52 canonical card
// strings. It is called once, from the package-level init below; callers
// use the shared Lookup value rather than rebuilding their own.
func Build() (*Index, error) {
	cards := deck.AllCards()

	b, err := chd.New()
	if err != nil {
		return nil, fmt.Errorf("cardindex: new builder: %w", err)
	}
	for _, c := range cards {
		if err := b.Add([]byte(c.WireString())); err != nil {
			return nil, fmt.Errorf("cardindex: add %s: %w", c.WireString(), err)
		}
	}
	h, err := b.Freeze(0.9)
	if err != nil {
		return nil, fmt.Errorf("cardindex: freeze: %w", err)
	}

	idx := &Index{h: h}
	for i, c := range cards {
		s := c.WireString()
		slot := h.Find([]byte(s))
		if slot >= uint64(len(cards)) {
			return nil, fmt.Errorf("cardindex: slot %d for %s out of range", slot, s)
		}
		idx.cardAt[slot] = i
		idx.keyAt[slot] = s
	}
	return idx, nil
}

// Find returns the canonical index (0..51) of the card whose wire string is
// s, or -1 if s is not a valid card string. The perfect hash itself does
// not reject unknown keys, so Find double-checks against the key that owns
// the hashed slot.
func (idx *Index) Find(s string) int {
	slot := idx.h.Find([]byte(s))
	if slot >= uint64(len(idx.keyAt)) || idx.keyAt[slot] != s {
		return -1
	}
	return idx.cardAt[slot]
}

// Lookup is the shared, package-level perfect hash table over all 52 cards.
// Built eagerly at init since the key set is fixed and tiny.
var Lookup *Index

func init() {
	idx, err := Build()
	if err != nil {
		panic(err)
	}
	Lookup = idx
}
