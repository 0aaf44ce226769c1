package tiles

import (
	rand "math/rand/v2"
)

const (
	// KindCount is the number of distinct (suit, value) kinds
	KindCount = 34
	// CopiesPerKind is the number of physical copies of each kind
	CopiesPerKind = 4
	// DeckSize is the total number of tiles in a full deck
	DeckSize = KindCount * CopiesPerKind
)

// Deck is the full 136-tile set in a definite order. Construction and the
// shuffle are the only places randomness enters the engine; the RNG is
// injected so sessions are reproducible from a seed.
type Deck struct {
	tiles []Tile
	rng   *rand.Rand
}

// NewDeck creates a full deck, assigns unique IDs in build order, and
// shuffles it with the provided RNG
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{
		tiles: make([]Tile, 0, DeckSize),
		rng:   rng,
	}

	id := 1
	for _, kind := range AllKinds() {
		for c := 0; c < CopiesPerKind; c++ {
			d.tiles = append(d.tiles, Tile{ID: id, Kind: kind})
			id++
		}
	}

	d.Shuffle()
	return d
}

// Shuffle reorders the full deck using Fisher-Yates
func (d *Deck) Shuffle() {
	for i := len(d.tiles) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.tiles[i], d.tiles[j] = d.tiles[j], d.tiles[i]
	}
}

// Tiles returns a copy of the deck in its current order. The copy becomes
// the wall of a new session; callers draw from the end of the slice.
func (d *Deck) Tiles() []Tile {
	out := make([]Tile, len(d.tiles))
	copy(out, d.tiles)
	return out
}

// Remaining returns the number of tiles in the deck
func (d *Deck) Remaining() int {
	return len(d.tiles)
}
