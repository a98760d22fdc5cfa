// Package config loads the HCL match configuration that drives the CLI:
// a labeled-block HCL schema decoded with gohcl, with DefaultMatchConfig
// supplying the out-of-the-box values and Validate enforcing the same
// bounds engine.TableConfig.Validate checks, plus the match- and
// rating-level bounds engine.TableConfig can't see.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/holdemcore/simcore/internal/engine"
	"github.com/holdemcore/simcore/internal/rating"
)

// MatchConfig is the complete, on-disk description of one simulated
// match: the table shape, which bot strategy occupies each seat, how many
// hands to play, and the rating update constants.
// The singleton blocks are pointers so gohcl treats them as optional: a
// config file may name only the blocks it overrides, with applyDefaults
// filling in the rest.
type MatchConfig struct {
	Match  *MatchSettings `hcl:"match,block"`
	Table  *TableSettings `hcl:"table,block"`
	Seats  []SeatConfig   `hcl:"seat,block"`
	Rating *RatingConfig  `hcl:"rating,block"`
}

// MatchSettings is the match-level knobs outside any single table or
// seat.
type MatchSettings struct {
	Seed          int64 `hcl:"seed,optional"`
	Hands         int   `hcl:"hands,optional"`
	EquitySamples int   `hcl:"equity_samples,optional"`
}

// TableSettings mirrors engine.TableConfig's fields as an HCL block.
type TableSettings struct {
	Seats         int `hcl:"seats,optional"`
	StartingStack int `hcl:"starting_stack,optional"`
	SmallBlind    int `hcl:"small_blind,optional"`
	BigBlind      int `hcl:"big_blind,optional"`
}

// SeatConfig names the opaque bot code and built-in strategy for one
// seat: strategy selects which in-process decide callable backs that
// opaque code when no external bot process is wired in.
type SeatConfig struct {
	BotCode  string `hcl:"bot_code,label"`
	Strategy string `hcl:"strategy,optional"`
}

// RatingConfig is the HCL form of rating.Config.
type RatingConfig struct {
	K         float64 `hcl:"k,optional"`
	MinRating float64 `hcl:"min_rating,optional"`
	MaxRating float64 `hcl:"max_rating,optional"`
}

// DefaultMatchConfig returns a small heads-up match with sane defaults,
// used whenever no config file is given.
func DefaultMatchConfig() *MatchConfig {
	return &MatchConfig{
		Match: &MatchSettings{
			Seed:          1,
			Hands:         100,
			EquitySamples: 200,
		},
		Table: &TableSettings{
			Seats:         2,
			StartingStack: 1000,
			SmallBlind:    5,
			BigBlind:      10,
		},
		Seats: []SeatConfig{
			{BotCode: "seat0", Strategy: "check_call"},
			{BotCode: "seat1", Strategy: "calling_station"},
		},
		Rating: &RatingConfig{K: 32, MinRating: 100, MaxRating: 4000},
	}
}

// LoadMatchConfig loads a MatchConfig from an HCL file, falling back to
// DefaultMatchConfig when filename does not exist.
func LoadMatchConfig(filename string) (*MatchConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultMatchConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: parse %s: %s", filename, diags.Error())
	}

	var cfg MatchConfig
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: decode %s: %s", filename, diags.Error())
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *MatchConfig) {
	defaults := DefaultMatchConfig()
	if cfg.Match == nil {
		cfg.Match = defaults.Match
	}
	if cfg.Table == nil {
		cfg.Table = defaults.Table
	}
	if cfg.Rating == nil {
		cfg.Rating = defaults.Rating
	}
	if cfg.Match.Hands == 0 {
		cfg.Match.Hands = defaults.Match.Hands
	}
	if cfg.Match.EquitySamples == 0 {
		cfg.Match.EquitySamples = defaults.Match.EquitySamples
	}
	if cfg.Table.Seats == 0 {
		cfg.Table.Seats = defaults.Table.Seats
	}
	if cfg.Table.StartingStack == 0 {
		cfg.Table.StartingStack = defaults.Table.StartingStack
	}
	if cfg.Table.SmallBlind == 0 {
		cfg.Table.SmallBlind = defaults.Table.SmallBlind
	}
	if cfg.Table.BigBlind == 0 {
		cfg.Table.BigBlind = defaults.Table.BigBlind
	}
	for i := range cfg.Seats {
		if cfg.Seats[i].Strategy == "" {
			cfg.Seats[i].Strategy = "check_call"
		}
	}
	if cfg.Rating.K == 0 {
		cfg.Rating.K = defaults.Rating.K
	}
	if cfg.Rating.MinRating == 0 {
		cfg.Rating.MinRating = defaults.Rating.MinRating
	}
	if cfg.Rating.MaxRating == 0 {
		cfg.Rating.MaxRating = defaults.Rating.MaxRating
	}
}

// knownStrategies is the set of seat strategy names the CLI's built-in
// bots package recognizes; an external bot process could extend this, but
// the demonstration CLI only wires the in-process ones.
var knownStrategies = map[string]bool{
	"check_call":      true,
	"calling_station": true,
	"random":          true,
	"json_check_call": true,
}

// Validate checks MatchConfig bounds before a match starts, and surfaces
// engine.TableConfig's own validation so seat/blind mistakes are reported
// uniformly.
func (c *MatchConfig) Validate() error {
	if c.Match.Hands <= 0 {
		return fmt.Errorf("config: hands must be positive, got %d", c.Match.Hands)
	}
	if c.Match.EquitySamples < 0 {
		return fmt.Errorf("config: equity_samples must not be negative, got %d", c.Match.EquitySamples)
	}
	if len(c.Seats) != c.Table.Seats {
		return fmt.Errorf("config: %d seat blocks configured but table.seats=%d", len(c.Seats), c.Table.Seats)
	}
	for _, s := range c.Seats {
		if !knownStrategies[s.Strategy] {
			return fmt.Errorf("config: seat %q: unknown strategy %q", s.BotCode, s.Strategy)
		}
	}
	if c.Rating.MinRating >= c.Rating.MaxRating {
		return fmt.Errorf("config: rating.min_rating must be less than rating.max_rating")
	}
	return c.TableConfig().Validate()
}

// TableConfig projects TableSettings into an engine.TableConfig.
func (c *MatchConfig) TableConfig() engine.TableConfig {
	return engine.TableConfig{
		Seats:         c.Table.Seats,
		StartingStack: c.Table.StartingStack,
		SmallBlind:    c.Table.SmallBlind,
		BigBlind:      c.Table.BigBlind,
	}
}

// RatingConfigValue projects RatingConfig into a rating.Config.
func (c *MatchConfig) RatingConfigValue() rating.Config {
	return rating.Config{K: c.Rating.K, MinRating: c.Rating.MinRating, MaxRating: c.Rating.MaxRating}
}

// BotCodes returns the seat bot codes in seat order.
func (c *MatchConfig) BotCodes() []string {
	codes := make([]string, len(c.Seats))
	for i, s := range c.Seats {
		codes[i] = s.BotCode
	}
	return codes
}
