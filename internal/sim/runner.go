// Package sim plays full games between four AI seats as fast as the rules
// engine allows, with no pacing and no timers, and aggregates the outcomes.
// Useful for sanity-checking the engine (every game must terminate with all
// 136 tiles accounted for) and for eyeballing seat advantage.
package sim

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lox/mahjong-cli/internal/game"
	"github.com/lox/mahjong-cli/internal/randutil"
)

// Options controls a simulation batch
type Options struct {
	Games   int   // number of games to play
	Workers int   // concurrent workers, defaults to GOMAXPROCS
	Seed    int64 // base seed; game n always plays the same regardless of workers
}

// GameResult records the outcome of one simulated game
type GameResult struct {
	Seed     int64
	Winner   int
	WinType  game.WinType
	Turns    int // discards played
	Melds    int // claims and kongs laid down
	WallLeft int
}

// safety valve; no legal game comes anywhere near this many transitions
const maxTransitions = 100000

// Run plays opts.Games full games across a worker pool and aggregates the
// results. Game seeds derive from the base seed by game index, so a batch
// is reproducible no matter how many workers share it.
func Run(opts Options) (*Report, error) {
	if opts.Games <= 0 {
		return nil, fmt.Errorf("games must be positive, got %d", opts.Games)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > opts.Games {
		workers = opts.Games
	}

	start := time.Now()

	gamesPerWorker := opts.Games / workers
	remainder := opts.Games % workers

	eg, ctx := errgroup.WithContext(context.Background())
	results := make(chan GameResult, workers)

	next := 0
	for w := 0; w < workers; w++ {
		count := gamesPerWorker
		if w < remainder {
			count++
		}
		first := next
		next += count

		eg.Go(func() error {
			for i := first; i < first+count; i++ {
				result, _ := playGame(randutil.Derive(opts.Seed, i))
				select {
				case results <- result:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}

	go func() {
		defer close(results)
		_ = eg.Wait()
	}()

	report := NewReport()
	for result := range results {
		report.Add(result)
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	report.Elapsed = time.Since(start)
	return report, nil
}

// playGame runs one four-bot game to completion and returns its summary
// along with the final state. Action windows resolve immediately: every AI
// response is collected, arbitrated and executed in the same step, which is
// exactly what the paced session converges to.
func playGame(seed int64) (GameResult, game.GameState) {
	ai := game.NewAIEngine()
	names := [game.NumSeats]string{"Bot 0", "Bot 1", "Bot 2", "Bot 3"}
	g := game.NewGame(names, -1, randutil.New(seed))

	turns := 0
	melds := 0
	for i := 0; i < maxTransitions && !g.Over(); i++ {
		var (
			next game.GameState
			err  error
		)
		switch g.Phase {
		case game.Playing:
			seat := g.CurrentTurn
			d := ai.DecideTurn(g.Players[seat])
			switch d.Action {
			case game.ActionSelfDrawWin:
				next, err = g.DeclareSelfDrawWin(seat)
			case game.ActionConcealedKong:
				next, err = g.DeclareConcealedKong(seat, d.KongKind)
				if err == nil {
					melds++
				}
			default:
				next, err = g.Discard(seat, d.TileID)
				if err == nil {
					turns++
				}
			}
		case game.ActionWindow:
			requests := claimRequests(ai, g)
			if req, ok := game.Arbitrate(g.LastDiscard.Seat, requests); ok {
				next, err = g.ResolveClaim(req.Seat, req.Kind)
				if err == nil && req.Kind != game.ClaimWin {
					melds++
				}
			} else {
				next, err = g.Advance()
			}
		default:
			return summarize(g, seed, turns, melds), g
		}
		if err != nil {
			break
		}
		g = next
	}
	return summarize(g, seed, turns, melds), g
}

func summarize(g game.GameState, seed int64, turns, melds int) GameResult {
	return GameResult{
		Seed:     seed,
		Winner:   g.Winner,
		WinType:  g.WinType,
		Turns:    turns,
		Melds:    melds,
		WallLeft: g.WallCount(),
	}
}

// claimRequests gathers every seat's greedy response to the open window
func claimRequests(ai *game.AIEngine, g game.GameState) []game.ClaimRequest {
	var requests []game.ClaimRequest
	for seat := 0; seat < game.NumSeats; seat++ {
		if kind, ok := ai.RespondToClaim(g.ClaimsFor(seat)); ok {
			requests = append(requests, game.ClaimRequest{Seat: seat, Kind: kind})
		}
	}
	return requests
}
