package game

import (
	"github.com/lox/mahjong-cli/internal/tiles"
)

// Kind shorthands keep test hands readable
func wan(v int) tiles.Kind    { return tiles.Kind{Suit: tiles.Wan, Value: v} }
func tong(v int) tiles.Kind   { return tiles.Kind{Suit: tiles.Tong, Value: v} }
func tiao(v int) tiles.Kind   { return tiles.Kind{Suit: tiles.Tiao, Value: v} }
func wind(v int) tiles.Kind   { return tiles.Kind{Suit: tiles.Wind, Value: v} }
func dragon(v int) tiles.Kind { return tiles.Kind{Suit: tiles.Dragon, Value: v} }

// tileSeq builds a sorted hand of the given kinds with ids 1..n. Fine for
// standalone hands; use a tileset when a test needs several containers with
// ids that must not collide.
func tileSeq(kinds ...tiles.Kind) []tiles.Tile {
	out := make([]tiles.Tile, len(kinds))
	for i, k := range kinds {
		out[i] = tiles.Tile{ID: i + 1, Kind: k}
	}
	tiles.Sort(out)
	return out
}

// tileset hands out tiles with unique ascending ids across calls
type tileset struct{ next int }

func (ts *tileset) tiles(kinds ...tiles.Kind) []tiles.Tile {
	out := make([]tiles.Tile, len(kinds))
	for i, k := range kinds {
		ts.next++
		out[i] = tiles.Tile{ID: ts.next, Kind: k}
	}
	tiles.Sort(out)
	return out
}

// playingState builds a mid-game state in the playing phase with the given
// hands and wall, seat names after the winds
func playingState(turn int, hands [NumSeats][]tiles.Tile, wall []tiles.Tile) GameState {
	g := GameState{
		Seq:         1,
		Wall:        wall,
		CurrentTurn: turn,
		Phase:       Playing,
		Winner:      NoWinner,
	}
	names := [NumSeats]string{"East", "South", "West", "North"}
	for seat := 0; seat < NumSeats; seat++ {
		g.Players[seat] = PlayerState{
			Seat:   seat,
			Name:   names[seat],
			Hand:   hands[seat],
			Score:  InitialScore,
			Dealer: seat == 0,
		}
	}
	return g
}

// junkHand is a hand that cannot claim or win against anything a test
// discards, as long as the test avoids Tong 1/4/7
func junkHand(ts *tileset) []tiles.Tile {
	return ts.tiles(tong(1), tong(4), tong(7))
}
