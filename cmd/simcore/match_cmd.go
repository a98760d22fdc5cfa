package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/holdemcore/simcore/cmd/simcore/shared"
	"github.com/holdemcore/simcore/internal/bots"
	"github.com/holdemcore/simcore/internal/config"
	"github.com/holdemcore/simcore/internal/engine"
	"github.com/holdemcore/simcore/internal/history"
	"github.com/holdemcore/simcore/internal/match"
	"github.com/holdemcore/simcore/internal/rating"
	"github.com/holdemcore/simcore/internal/wire"
)

// startingRating is the Elo seed every seat begins a match at, absent any
// prior rating row; persisted rating rows are an external concern.
const startingRating = 1500

// MatchCmd runs one match end to end using the CLI's small set of
// in-process bots as decide, then prints a summary of final stacks, chip
// deltas, and updated Elo ratings.
type MatchCmd struct {
	Config  string `short:"c" help:"Path to an HCL match configuration file (simcore.hcl in the working directory if omitted); defaults are used if the file is missing."`
	Debug   bool   `help:"Enable debug-level logging."`
	JSON    bool   `help:"Emit structured JSON logs instead of the pretty console writer."`
	OutFile string `short:"o" help:"If set, write the full match record (hands, action logs, pots) as JSON to this path."`
}

func (c *MatchCmd) Run() error {
	logger := newLogger(c.JSON, c.Debug)

	cfgPath := c.Config
	if cfgPath == "" {
		cfgPath = "simcore.hcl"
	}
	cfg, err := config.LoadMatchConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("simcore: load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("simcore: invalid config: %w", err)
	}

	logger.Info().
		Int("seats", cfg.Table.Seats).
		Int("hands", cfg.Match.Hands).
		Int64("seed", cfg.Match.Seed).
		Msg("starting match")

	decide, err := wireDecide(cfg, logger)
	if err != nil {
		return err
	}

	matchCfg := match.Config{
		Table:         cfg.TableConfig(),
		Hands:         cfg.Match.Hands,
		EquitySamples: cfg.Match.EquitySamples,
	}

	result, err := match.RunMatch(context.Background(), cfg.BotCodes(), cfg.Match.Seed, matchCfg, decide)
	if err != nil {
		return fmt.Errorf("simcore: run match: %w", err)
	}

	ratings := make([]float64, cfg.Table.Seats)
	for i := range ratings {
		ratings[i] = startingRating
	}
	scores := make([]float64, cfg.Table.Seats)
	for i, won := range result.ChipsWon {
		scores[i] = float64(won)
	}
	newRatings := rating.UpdateEloPairwise(ratings, scores, cfg.RatingConfigValue())

	renderSummary(cfg.BotCodes(), result, newRatings)

	logger.Info().
		Ints("final_stacks", result.FinalStacks).
		Ints("chips_won", result.ChipsWon).
		Msg("match complete")

	if c.OutFile != "" {
		rec := history.FromMatchResult(result, cfg.BotCodes())
		if err := history.WriteJSON(c.OutFile, rec); err != nil {
			return fmt.Errorf("simcore: persist match record: %w", err)
		}
		logger.Info().Str("path", c.OutFile).Msg("wrote match record")
	}

	return nil
}

// wireDecide builds one engine.Decide per seat strategy named in cfg and
// dispatches to the right one by seat index, since engine.Decide has no
// seat parameter of its own — only the opaque bot code, which here doubles
// as the seat's configured strategy lookup key.
func wireDecide(cfg *config.MatchConfig, logger zerolog.Logger) (engine.Decide, error) {
	validator, err := wire.NewActionValidator()
	if err != nil {
		return nil, fmt.Errorf("simcore: build action validator: %w", err)
	}

	perSeat := make([]engine.Decide, len(cfg.Seats))
	for i, seat := range cfg.Seats {
		switch seat.Strategy {
		case "check_call":
			perSeat[i] = bots.CheckCall
		case "calling_station":
			perSeat[i] = bots.CallingStation
		case "random":
			perSeat[i] = bots.Random(cfg.Match.Seed + int64(i) + 1)
		case "json_check_call":
			perSeat[i] = validator.Decide(jsonSourceFrom(bots.CheckCall))
		default:
			return nil, fmt.Errorf("simcore: seat %q: unknown strategy %q", seat.BotCode, seat.Strategy)
		}
	}

	codeToSeat := make(map[string]int, len(cfg.Seats))
	for i, seat := range cfg.Seats {
		codeToSeat[seat.BotCode] = i
	}

	return func(ctx context.Context, botCode string, vs engine.VisibleState) (*engine.Action, error) {
		seat, ok := codeToSeat[botCode]
		if !ok {
			logger.Warn().Str("bot_code", botCode).Msg("decide called for unknown bot code; folding")
			return &engine.Action{Type: engine.Fold}, nil
		}
		action, err := perSeat[seat](ctx, botCode, vs)
		logger.Debug().
			Int("seat", seat).
			Str("street", vs.Street).
			Interface("action", action).
			Err(err).
			Msg("decide")
		return action, err
	}, nil
}

// jsonSourceFrom adapts an in-process engine.Decide into a wire.JSONSource
// by marshaling its proposed action to the action wire format, so the
// "json_check_call" strategy exercises the internal/wire validation round
// trip the way an external bot process would, instead of handing
// engine.Action values to the engine directly.
func jsonSourceFrom(decide engine.Decide) wire.JSONSource {
	return func(ctx context.Context, botCode string, vs engine.VisibleState) ([]byte, error) {
		action, err := decide(ctx, botCode, vs)
		if err != nil {
			return nil, err
		}
		return json.Marshal(action)
	}
}

func newLogger(jsonOutput, debug bool) zerolog.Logger {
	if jsonOutput {
		return shared.SetupStructuredLogger(debug)
	}
	return shared.SetupLogger(debug)
}
