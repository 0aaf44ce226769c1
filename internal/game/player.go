package game

import (
	"github.com/lox/mahjong-cli/internal/tiles"
)

// NumSeats is the fixed number of players
const NumSeats = 4

// InitialScore is every seat's starting score. Score movement is not part of
// this engine; the field exists so consumers can render it.
const InitialScore = 25000

// PlayerState holds everything the engine tracks for one seat. It is a value
// inside GameState and follows the same copy-on-write discipline: transitions
// never modify the slices of a committed state, they build replacements.
type PlayerState struct {
	Seat     int
	Name     string
	Human    bool
	Hand     []tiles.Tile
	Melds    []Meld
	Discards []tiles.Tile
	Score    int
	Dealer   bool
}

// HoldsTile reports whether the hand contains the physical tile id
func (p PlayerState) HoldsTile(tileID int) bool {
	for _, t := range p.Hand {
		if t.ID == tileID {
			return true
		}
	}
	return false
}

// CountKind returns the number of hand tiles matching the kind
func (p PlayerState) CountKind(kind tiles.Kind) int {
	n := 0
	for _, t := range p.Hand {
		if t.Kind == kind {
			n++
		}
	}
	return n
}

// MustDiscard reports whether the seat is holding a post-draw hand, i.e. one
// tile over a multiple of three. A seat at the turn always holds such a hand
// (after the deal, a draw, or a claim).
func (p PlayerState) MustDiscard() bool {
	return len(p.Hand)%3 == 2
}

// cloneHandWithout copies the hand minus the physical tile id. The removed
// tile and ok are returned; the original slice is never touched.
func cloneHandWithout(hand []tiles.Tile, tileID int) ([]tiles.Tile, tiles.Tile, bool) {
	for i, t := range hand {
		if t.ID == tileID {
			out := make([]tiles.Tile, 0, len(hand)-1)
			out = append(out, hand[:i]...)
			out = append(out, hand[i+1:]...)
			return out, t, true
		}
	}
	return nil, tiles.Tile{}, false
}

// cloneHandWith copies the hand plus one tile, re-sorted
func cloneHandWith(hand []tiles.Tile, t tiles.Tile) []tiles.Tile {
	out := make([]tiles.Tile, 0, len(hand)+1)
	out = append(out, hand...)
	out = append(out, t)
	tiles.Sort(out)
	return out
}

// takeKind copies the hand minus up to n tiles of the kind, returning the
// tiles taken. Callers check they received as many as they asked for.
func takeKind(hand []tiles.Tile, kind tiles.Kind, n int) (rest []tiles.Tile, taken []tiles.Tile) {
	rest = make([]tiles.Tile, 0, len(hand))
	for _, t := range hand {
		if t.Kind == kind && len(taken) < n {
			taken = append(taken, t)
			continue
		}
		rest = append(rest, t)
	}
	return rest, taken
}

// takeOneOfKind copies the hand minus a single tile of the kind
func takeOneOfKind(hand []tiles.Tile, kind tiles.Kind) (rest []tiles.Tile, taken tiles.Tile, ok bool) {
	for i, t := range hand {
		if t.Kind == kind {
			out := make([]tiles.Tile, 0, len(hand)-1)
			out = append(out, hand[:i]...)
			out = append(out, hand[i+1:]...)
			return out, t, true
		}
	}
	return nil, tiles.Tile{}, false
}

// appendMeld copies the meld list plus one new meld
func appendMeld(melds []Meld, m Meld) []Meld {
	out := make([]Meld, 0, len(melds)+1)
	out = append(out, melds...)
	out = append(out, m)
	return out
}

// appendDiscard copies the discard pile plus one tile
func appendDiscard(discards []tiles.Tile, t tiles.Tile) []tiles.Tile {
	out := make([]tiles.Tile, 0, len(discards)+1)
	out = append(out, discards...)
	out = append(out, t)
	return out
}

// dropLastDiscard copies the discard pile minus its final tile, which must
// match the given id. A claimed tile is no longer a loose discard.
func dropLastDiscard(discards []tiles.Tile, tileID int) ([]tiles.Tile, bool) {
	if len(discards) == 0 || discards[len(discards)-1].ID != tileID {
		return nil, false
	}
	out := make([]tiles.Tile, len(discards)-1)
	copy(out, discards[:len(discards)-1])
	return out, true
}
