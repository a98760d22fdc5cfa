package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/holdemcore/simcore/internal/deck"
	"github.com/holdemcore/simcore/internal/match"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	botStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	gainStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	neutralStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7"))

	ratingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	redCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	blackCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))
)

// renderBoard renders a community board with red/black suit coloring,
// the one place this CLI cares whether a card is a heart/diamond or a
// spade/club rather than just its rank.
func renderBoard(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		style := blackCardStyle
		if c.IsRed() {
			style = redCardStyle
		}
		parts[i] = style.Render(c.String())
	}
	return strings.Join(parts, " ")
}

// renderSummary prints a lipgloss-colored final-stack / chip-delta / Elo
// table for one finished match, the thin CLI driver's stand-in for
// whatever a host's own UI does with a match result.
func renderSummary(botCodes []string, result match.Result, newRatings []float64) {
	fmt.Println(headerStyle.Render(fmt.Sprintf("match complete — %d hands, seed %d", len(result.Hands), result.Seed)))
	if n := len(result.Hands); n > 0 {
		if last := result.Hands[n-1].Board; len(last) > 0 {
			fmt.Printf("%s %s\n", headerStyle.Render("last board:"), renderBoard(last))
		}
	}
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		headerStyle.Render("seat"),
		headerStyle.Render("final stack"),
		headerStyle.Render("chips won"),
		headerStyle.Render("new rating"))

	for i, code := range botCodes {
		delta := result.ChipsWon[i]
		var deltaStyle lipgloss.Style
		switch {
		case delta > 0:
			deltaStyle = gainStyle
		case delta < 0:
			deltaStyle = lossStyle
		default:
			deltaStyle = neutralStyle
		}

		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
			botStyle.Render(code),
			result.FinalStacks[i],
			deltaStyle.Render(fmt.Sprintf("%+d", delta)),
			ratingStyle.Render(fmt.Sprintf("%.1f", newRatings[i])))
	}

	w.Flush()
}
