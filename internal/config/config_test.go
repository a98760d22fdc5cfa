package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMatchConfigFallsBackToDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := LoadMatchConfig(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultMatchConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMatchConfigParsesHCLAndAppliesDefaults(t *testing.T) {
	hcl := `
match {
  seed  = 99
  hands = 10
}

table {
  seats          = 3
  starting_stack = 500
  small_blind    = 5
  big_blind      = 10
}

seat "alice" {
  strategy = "check_call"
}
seat "bob" {
  strategy = "calling_station"
}
seat "carol" {
  strategy = "random"
}
`
	path := filepath.Join(t.TempDir(), "match.hcl")
	require.NoError(t, os.WriteFile(path, []byte(hcl), 0o644))

	cfg, err := LoadMatchConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, int64(99), cfg.Match.Seed)
	assert.Equal(t, 10, cfg.Match.Hands)
	assert.Equal(t, 200, cfg.Match.EquitySamples) // defaulted
	assert.Equal(t, []string{"alice", "bob", "carol"}, cfg.BotCodes())
	assert.Equal(t, float64(32), cfg.Rating.K) // defaulted
}

func TestValidateRejectsSeatCountMismatch(t *testing.T) {
	cfg := DefaultMatchConfig()
	cfg.Seats = cfg.Seats[:1]
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsUnknownStrategy(t *testing.T) {
	cfg := DefaultMatchConfig()
	cfg.Seats[0].Strategy = "nonexistent"
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsInvertedRatingBounds(t *testing.T) {
	cfg := DefaultMatchConfig()
	cfg.Rating.MinRating = 5000
	cfg.Rating.MaxRating = 100
	assert.Error(t, cfg.Validate())
}
