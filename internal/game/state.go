package game

import (
	"github.com/lox/mahjong-cli/internal/tiles"
)

// Phase represents the state machine phase
type Phase int

const (
	Dealing Phase = iota
	Playing
	ActionWindow
	GameOver
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case Dealing:
		return "dealing"
	case Playing:
		return "playing"
	case ActionWindow:
		return "action_window"
	case GameOver:
		return "game_over"
	default:
		return "?"
	}
}

// WinType records how a game was won
type WinType int

const (
	WinTypeNone WinType = iota
	SelfDraw
	WinByDiscard
)

// String returns the string representation of a win type
func (w WinType) String() string {
	switch w {
	case WinTypeNone:
		return "none"
	case SelfDraw:
		return "self-draw"
	case WinByDiscard:
		return "discard"
	default:
		return "?"
	}
}

// ClaimKind is an action a seat may take on a just-discarded tile.
// Declaration order is priority order: a lower value always beats a higher
// one when claims compete.
type ClaimKind int

const (
	ClaimWin ClaimKind = iota
	ClaimKong
	ClaimPung
	ClaimChow
)

// String returns the string representation of a claim kind
func (c ClaimKind) String() string {
	switch c {
	case ClaimWin:
		return "win"
	case ClaimKong:
		return "kong"
	case ClaimPung:
		return "pung"
	case ClaimChow:
		return "chow"
	default:
		return "?"
	}
}

// TileDiscard is a discarded tile together with its originating seat
type TileDiscard struct {
	Tile tiles.Tile
	Seat int
}

// NoWinner marks the Winner field of a state without one
const NoWinner = -1

// MaxEvents bounds the event log carried inside GameState
const MaxEvents = 50

// GameState is the whole-session snapshot. Exactly one committed state is
// live at a time; every transition computes a complete replacement rather
// than mutating in place, so any state a caller holds stays consistent
// forever. Slices follow copy-on-write: a transition that changes a hand,
// pile, or claim list builds a fresh slice and leaves the old one alone.
type GameState struct {
	Seq         uint64
	Wall        []tiles.Tile
	Players     [NumSeats]PlayerState
	CurrentTurn int
	LastDiscard *TileDiscard
	Phase       Phase
	Winner      int
	WinType     WinType

	// Claims holds the pending claim set for the live discard, indexed by
	// seat. A nil entry means the seat has nothing to claim (or already
	// passed). Entries are ordered strongest first.
	Claims [NumSeats][]ClaimKind

	// Events is the bounded log of recent events, oldest first. EventCount
	// tracks the total ever appended so consumers can tell how many entries
	// are new since a state they saw earlier, even across evictions.
	Events     []GameEvent
	EventCount uint64
}

// WallCount returns the number of tiles left to draw
func (g GameState) WallCount() int {
	return len(g.Wall)
}

// Player returns the state for a seat; callers must pass 0..3
func (g GameState) Player(seat int) PlayerState {
	return g.Players[seat]
}

// CurrentPlayer returns the seat whose turn it is
func (g GameState) CurrentPlayer() PlayerState {
	return g.Players[g.CurrentTurn]
}

// HumanSeat returns the human's seat, or -1 if every seat is AI
func (g GameState) HumanSeat() int {
	for _, p := range g.Players {
		if p.Human {
			return p.Seat
		}
	}
	return -1
}

// ClaimsFor returns the pending claim kinds for a seat, strongest first.
// Nil means the seat is not in the claim set.
func (g GameState) ClaimsFor(seat int) []ClaimKind {
	if seat < 0 || seat >= NumSeats {
		return nil
	}
	return g.Claims[seat]
}

// HasClaim reports whether (seat, kind) is in the pending claim set
func (g GameState) HasClaim(seat int, kind ClaimKind) bool {
	for _, k := range g.ClaimsFor(seat) {
		if k == kind {
			return true
		}
	}
	return false
}

// ClaimsEmpty reports whether no seat has a pending claim
func (g GameState) ClaimsEmpty() bool {
	for _, ks := range g.Claims {
		if len(ks) > 0 {
			return false
		}
	}
	return true
}

// Over reports whether the game has reached its terminal phase
func (g GameState) Over() bool {
	return g.Phase == GameOver
}

// nextSeat returns the seat clockwise of the given one
func nextSeat(seat int) int {
	return (seat + 1) % NumSeats
}

// clockwiseDistance returns how many clockwise steps lead from one seat to
// another; used to break ties between competing claims
func clockwiseDistance(from, to int) int {
	return (to - from + NumSeats) % NumSeats
}

// withEvent returns a copy of the state with the event appended, evicting
// the oldest entries beyond MaxEvents
func (g GameState) withEvent(e GameEvent) GameState {
	events := make([]GameEvent, 0, len(g.Events)+1)
	events = append(events, g.Events...)
	events = append(events, e)
	if len(events) > MaxEvents {
		events = events[len(events)-MaxEvents:]
	}
	g.Events = events
	g.EventCount++
	return g
}

// FreshEvents returns the log entries appended after the given total count,
// oldest first. Entries already evicted from the bounded log are gone and
// cannot be returned.
func (g GameState) FreshEvents(since uint64) []GameEvent {
	if g.EventCount <= since {
		return nil
	}
	fresh := g.EventCount - since
	if fresh > uint64(len(g.Events)) {
		fresh = uint64(len(g.Events))
	}
	return g.Events[len(g.Events)-int(fresh):]
}

// bump returns a copy of the state with the next sequence number
func (g GameState) bump() GameState {
	g.Seq++
	return g
}
