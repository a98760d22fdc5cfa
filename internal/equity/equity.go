// Package equity implements the Monte Carlo win/tie probability estimator
// a bot sees alongside its visible state.
package equity

import (
	"math/rand"
	"runtime"

	"github.com/holdemcore/simcore/internal/deck"
	"github.com/holdemcore/simcore/internal/eval"
	"golang.org/x/sync/errgroup"
)

// DemoSamples and BackgroundSamples are the sample-count presets for
// interactive demo matches and background matches respectively.
const (
	DemoSamples       = 20
	BackgroundSamples = 100
)

// parallelThreshold is the sample count at or above which estimation fans out
// across errgroup workers instead of running sequentially in the calling
// goroutine.
const parallelThreshold = 500

// maxWorkers bounds parallel fan-out regardless of machine size.
const maxWorkers = 8

// Result is the estimator's (win, tie) output.
type Result struct {
	Win float64
	Tie float64
}

// Estimate runs the Monte Carlo equity estimator: deal the missing board
// cards and two cards per live opponent uniformly from the undetermined
// portion of the deck, evaluate all final 7-card hands, and tally strict
// wins and ties over `samples` iterations.
//
// rng must not be the hand's own deck PRNG — callers derive a fresh
// stream per decision point, see DeriveRNG.
func Estimate(hole [2]deck.Card, board []deck.Card, liveOpponents, samples int, rng *rand.Rand) Result {
	if samples <= 0 {
		return Result{}
	}
	if liveOpponents <= 0 {
		return Result{Win: 1, Tie: 0}
	}

	undetermined := remainingDeck(hole, board)

	if samples < parallelThreshold {
		return estimateSequential(hole, board, liveOpponents, samples, undetermined, rng)
	}
	return estimateParallel(hole, board, liveOpponents, samples, undetermined, rng)
}

// remainingDeck returns the 52 cards minus the hero's hole cards and the
// known board, in a fixed order; sampling draws a random subset of this
// slice per iteration rather than mutating a shared Deck.
func remainingDeck(hole [2]deck.Card, board []deck.Card) []deck.Card {
	used := make(map[deck.Card]bool, 2+len(board))
	used[hole[0]] = true
	used[hole[1]] = true
	for _, c := range board {
		used[c] = true
	}
	all := deck.AllCards()
	out := make([]deck.Card, 0, 52-len(used))
	for _, c := range all {
		if !used[c] {
			out = append(out, c)
		}
	}
	return out
}

func estimateSequential(hole [2]deck.Card, board []deck.Card, liveOpponents, samples int, undetermined []deck.Card, rng *rand.Rand) Result {
	wins, ties := runSamples(hole, board, liveOpponents, samples, undetermined, rng)
	return Result{Win: float64(wins) / float64(samples), Tie: float64(ties) / float64(samples)}
}

func estimateParallel(hole [2]deck.Card, board []deck.Card, liveOpponents, samples int, undetermined []deck.Card, rng *rand.Rand) Result {
	workers := runtime.NumCPU()
	if workers > maxWorkers {
		workers = maxWorkers
	}
	if workers < 1 {
		workers = 1
	}

	base := samples / workers
	extra := samples % workers

	type partial struct {
		wins, ties, samples int
	}
	results := make([]partial, workers)

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		n := base
		if w < extra {
			n++
		}
		if n == 0 {
			continue
		}
		workerRNG := rand.New(rand.NewSource(rng.Int63()))
		g.Go(func() error {
			wins, ties := runSamples(hole, board, liveOpponents, n, undetermined, workerRNG)
			results[w] = partial{wins: wins, ties: ties, samples: n}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return estimateSequential(hole, board, liveOpponents, samples, undetermined, rng)
	}

	totalWins, totalTies, totalSamples := 0, 0, 0
	for _, r := range results {
		totalWins += r.wins
		totalTies += r.ties
		totalSamples += r.samples
	}
	if totalSamples == 0 {
		return Result{}
	}
	return Result{
		Win: float64(totalWins) / float64(totalSamples),
		Tie: float64(totalTies) / float64(totalSamples),
	}
}

// runSamples performs n Monte Carlo trials and returns raw win/tie counts.
func runSamples(hole [2]deck.Card, board []deck.Card, liveOpponents, n int, undetermined []deck.Card, rng *rand.Rand) (wins, ties int) {
	boardNeeded := 5 - len(board)
	cardsPerTrial := boardNeeded + liveOpponents*2

	for i := 0; i < n; i++ {
		pool := make([]deck.Card, len(undetermined))
		copy(pool, undetermined)
		drawn := sampleWithoutReplacement(pool, cardsPerTrial, rng)

		finalBoard := make([]deck.Card, 0, 5)
		finalBoard = append(finalBoard, board...)
		finalBoard = append(finalBoard, drawn[:boardNeeded]...)

		heroSeven := append(append([]deck.Card{}, hole[0], hole[1]), finalBoard...)
		heroHS, err := eval.BestOf7(heroSeven)
		if err != nil {
			continue
		}

		heroWins, heroTies := true, false
		idx := boardNeeded
		for o := 0; o < liveOpponents; o++ {
			oppHole := [2]deck.Card{drawn[idx], drawn[idx+1]}
			idx += 2
			oppSeven := append(append([]deck.Card{}, oppHole[0], oppHole[1]), finalBoard...)
			oppHS, err := eval.BestOf7(oppSeven)
			if err != nil {
				continue
			}
			switch eval.Compare(heroHS, oppHS) {
			case -1:
				heroWins = false
				heroTies = false
			case 0:
				if heroWins {
					heroTies = true
				}
			}
		}

		switch {
		case heroWins && heroTies:
			ties++
		case heroWins:
			wins++
		}
	}
	return wins, ties
}

// sampleWithoutReplacement draws n cards uniformly at random from pool
// (which it mutates) without replacement, via partial Fisher-Yates.
func sampleWithoutReplacement(pool []deck.Card, n int, rng *rand.Rand) []deck.Card {
	if n > len(pool) {
		n = len(pool)
	}
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

// DeriveRNG builds the estimator's PRNG stream from (hand seed, street,
// actor seat). The stream is independent of the hand's own deck PRNG, so
// sampling equity never perturbs the deal sequence.
func DeriveRNG(handSeed int64, street int, actorSeat int) *rand.Rand {
	mixed := mix64(uint64(handSeed))
	mixed = mix64(mixed ^ uint64(street)*0x9E3779B97F4A7C15)
	mixed = mix64(mixed ^ uint64(actorSeat)*0xBF58476D1CE4E5B9)
	return rand.New(rand.NewSource(int64(mixed)))
}

// mix64 is a splitmix64-style finalizer used only to decorrelate the three
// derivation inputs above; it is not used anywhere else as a general PRNG.
func mix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	x = x ^ (x >> 31)
	return x
}
