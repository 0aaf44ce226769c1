package sim

import (
	"fmt"
	"strings"
	"time"

	"github.com/lox/mahjong-cli/internal/game"
)

// Report aggregates simulated game outcomes
type Report struct {
	Games         int
	Wins          [game.NumSeats]int
	SelfDrawWins  int
	DiscardWins   int
	Stalemates    int
	TotalTurns    int
	TotalMelds    int
	TotalWallLeft int
	MinTurns      int
	MaxTurns      int
	Elapsed       time.Duration
}

func NewReport() *Report {
	return &Report{MinTurns: -1}
}

// Add folds one game result into the report
func (r *Report) Add(result GameResult) {
	r.Games++
	r.TotalTurns += result.Turns
	r.TotalMelds += result.Melds
	r.TotalWallLeft += result.WallLeft

	if r.MinTurns < 0 || result.Turns < r.MinTurns {
		r.MinTurns = result.Turns
	}
	if result.Turns > r.MaxTurns {
		r.MaxTurns = result.Turns
	}

	if result.Winner == game.NoWinner {
		r.Stalemates++
		return
	}
	r.Wins[result.Winner]++
	switch result.WinType {
	case game.SelfDraw:
		r.SelfDrawWins++
	case game.WinByDiscard:
		r.DiscardWins++
	}
}

// WinRate reports the fraction of games won by seat
func (r *Report) WinRate(seat int) float64 {
	if r.Games == 0 || seat < 0 || seat >= game.NumSeats {
		return 0
	}
	return float64(r.Wins[seat]) / float64(r.Games)
}

// StalemateRate reports the fraction of games that exhausted the wall
func (r *Report) StalemateRate() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.Stalemates) / float64(r.Games)
}

func (r *Report) MeanTurns() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.TotalTurns) / float64(r.Games)
}

func (r *Report) MeanWallLeft() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.TotalWallLeft) / float64(r.Games)
}

// Summary renders the report in a fixed multi-section layout
func (r *Report) Summary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== SIMULATION RESULTS ===\n")
	fmt.Fprintf(&b, "Games played: %d\n", r.Games)
	if r.Elapsed > 0 {
		gamesPerSec := float64(r.Games) / r.Elapsed.Seconds()
		fmt.Fprintf(&b, "Total time: %v (%.0f games/sec)\n", r.Elapsed.Round(time.Millisecond), gamesPerSec)
	}

	fmt.Fprintf(&b, "\n=== OUTCOMES ===\n")
	wins := 0
	for _, w := range r.Wins {
		wins += w
	}
	fmt.Fprintf(&b, "Decided: %d (%.1f%%), drawn: %d (%.1f%%)\n",
		wins, pct(wins, r.Games), r.Stalemates, pct(r.Stalemates, r.Games))
	if wins > 0 {
		fmt.Fprintf(&b, "Self-draw: %d (%.1f%%), on discard: %d (%.1f%%)\n",
			r.SelfDrawWins, pct(r.SelfDrawWins, wins), r.DiscardWins, pct(r.DiscardWins, wins))
	}
	fmt.Fprintf(&b, "Turns per game: %.1f mean, %d min, %d max\n", r.MeanTurns(), r.MinTurns, r.MaxTurns)
	fmt.Fprintf(&b, "Melds per game: %.2f mean\n", meanOf(r.TotalMelds, r.Games))
	fmt.Fprintf(&b, "Wall remaining: %.1f tiles mean\n", r.MeanWallLeft())

	// seat 0 deals every game, so its edge over the others is the dealer edge
	fmt.Fprintf(&b, "\n=== SEAT ANALYSIS ===\n")
	for seat := 0; seat < game.NumSeats; seat++ {
		label := ""
		if seat == 0 {
			label = " (dealer)"
		}
		fmt.Fprintf(&b, "Seat %d%s: %d wins (%.1f%%)\n", seat, label, r.Wins[seat], 100*r.WinRate(seat))
	}

	return b.String()
}

func pct(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

func meanOf(total, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(total) / float64(n)
}
