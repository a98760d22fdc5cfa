package cardindex

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/holdemcore/simcore/internal/deck"
)

func TestLookupFindsEveryCanonicalCard(t *testing.T) {
	cards := deck.AllCards()
	for i, c := range cards {
		slot := Lookup.Find(c.WireString())
		assert.Equal(t, i, slot, "card %s should resolve to its canonical index", c.WireString())
	}
}

func TestLookupRejectsUnknownString(t *testing.T) {
	assert.Equal(t, -1, Lookup.Find("Zz"))
	assert.Equal(t, -1, Lookup.Find(""))
	assert.Equal(t, -1, Lookup.Find("Ahh"))
}
