// Package game implements the core rules engine for four-player mahjong.
//
// The main type is GameState, an immutable snapshot of an entire game.
// Transitions are methods on GameState that validate a command and return a
// complete replacement state, so exactly one committed state is live at a
// time and older snapshots never change underneath their holders:
//
//	g := game.NewGame(names, 0, rng)
//	g, err := g.Discard(0, tileID)
//	// g is a brand new state; the previous one is untouched
//
// # Deterministic Play
//
// The only nondeterminism in a game is the initial shuffle. NewGame takes a
// *rand.Rand, so a fixed seed replays the identical game as long as the
// same commands arrive in the same order:
//
//	rng := randutil.New(42)
//	g := game.NewGame(names, 0, rng)
//
// # Architecture
//
// GameState delegates responsibilities to specialized pieces:
//   - tiles.Deck: builds and shuffles the 136-tile wall
//   - CanWin: backtracking decomposition of a hand into pair plus groups
//   - claimsForDiscard: computes which seats may act on a discard
//   - AIEngine: deterministic move selection for bot seats
//   - EventBus / EventFormatter: publishes and renders game events
//
// Timing lives elsewhere: the engine never sleeps or schedules. The session
// layer decides when windows close and feeds resolved commands back in.
package game
