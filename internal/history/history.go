// Package history projects a completed match and its hands into a
// structural record a host can serialize however it likes. This package
// only shapes that projection and offers an atomic-write helper for hosts
// that choose to persist it as JSON files; the actual database or
// object-store schema remains the host's concern.
package history

import (
	"encoding/json"
	"fmt"

	"github.com/holdemcore/simcore/internal/cardindex"
	"github.com/holdemcore/simcore/internal/deck"
	"github.com/holdemcore/simcore/internal/engine"
	"github.com/holdemcore/simcore/internal/fileutil"
	"github.com/holdemcore/simcore/internal/match"
)

// SidePotRecord is the wire shape of one resolved side pot.
type SidePotRecord struct {
	Amount   int   `json:"amount"`
	Eligible []int `json:"eligible"`
	Winners  []int `json:"winners"`
}

// HandRecord is one hand's persistence entry: hand index, seed, dealer
// seat, board, action log, winners with amounts, per-seat chip deltas,
// and the side-pot breakdown.
type HandRecord struct {
	Index       int                    `json:"index"`
	Seed        int64                  `json:"seed"`
	Dealer      int                    `json:"dealer"`
	Board       []string               `json:"board"`
	ActionLog   []engine.ActionLogEntry `json:"action_log"`
	Winners     map[int]int            `json:"winners"`
	ChipDeltas  []int                  `json:"chip_deltas"`
	Pots        []SidePotRecord        `json:"pots"`
	FinalStacks []int                  `json:"final_stacks"`
}

// SeatRecord is one seat's persistence entry: bot id and final chips-won,
// plus the bounded captured log/error output.
type SeatRecord struct {
	BotID    string `json:"bot_id"`
	ChipsWon int    `json:"chips_won"`
	Log      string `json:"log,omitempty"`
	ErrLog   string `json:"err_log,omitempty"`
}

// MatchRecord is the full persistence entry for one finished match: seed,
// hand count, seat count, status, plus its hands and seats.
type MatchRecord struct {
	Seed      int64        `json:"seed"`
	Hands     int          `json:"hands"`
	Seats     int          `json:"seats"`
	Status    string       `json:"status"`
	Rounds    []HandRecord `json:"rounds"`
	SeatsInfo []SeatRecord `json:"seats_info"`
}

// FromMatchResult projects a completed match.Result (plus the bot codes
// that occupied each seat) into the persistence shape.
func FromMatchResult(result match.Result, botCodes []string) MatchRecord {
	rounds := make([]HandRecord, len(result.Hands))
	for i, h := range result.Hands {
		rounds[i] = handRecordFrom(i, h)
	}

	seats := make([]SeatRecord, len(botCodes))
	for i, code := range botCodes {
		seats[i] = SeatRecord{BotID: code, ChipsWon: result.ChipsWon[i]}
		if i < len(result.Seats) {
			seats[i].Log = result.Seats[i].Log
			seats[i].ErrLog = result.Seats[i].ErrLog
		}
	}

	return MatchRecord{
		Seed:      result.Seed,
		Hands:     len(result.Hands),
		Seats:     len(botCodes),
		Status:    "complete",
		Rounds:    rounds,
		SeatsInfo: seats,
	}
}

func handRecordFrom(index int, h engine.HandResult) HandRecord {
	board := make([]string, len(h.Board))
	for i, c := range h.Board {
		board[i] = c.WireString()
	}

	pots := make([]SidePotRecord, len(h.Pots))
	for i, p := range h.Pots {
		pots[i] = SidePotRecord{Amount: p.Amount, Eligible: p.Eligible, Winners: p.Winners}
	}

	return HandRecord{
		Index:       index,
		Seed:        h.Seed,
		Dealer:      h.Dealer,
		Board:       board,
		ActionLog:   h.Log,
		Winners:     h.Winners,
		ChipDeltas:  h.ChipDeltas,
		Pots:        pots,
		FinalStacks: h.FinalStacks,
	}
}

// ParseBoard parses a slice of wire card strings back into deck.Card,
// validating each against cardindex's canonical 52-card perfect hash;
// used when replaying a persisted board.
func ParseBoard(cards []string) ([]deck.Card, error) {
	all := deck.AllCards()
	out := make([]deck.Card, len(cards))
	for i, s := range cards {
		slot := cardindex.Lookup.Find(s)
		if slot < 0 {
			return nil, fmt.Errorf("%w: %q", deck.ErrInvalidCard, s)
		}
		out[i] = all[slot]
	}
	return out, nil
}

// WriteJSON marshals rec as indented JSON and writes it atomically to
// filename, so a reader never observes a partially-written match record.
func WriteJSON(filename string, rec MatchRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("history: marshal match record: %w", err)
	}
	if err := fileutil.WriteFileAtomic(filename, data, 0o644); err != nil {
		return fmt.Errorf("history: write %s: %w", filename, err)
	}
	return nil
}
