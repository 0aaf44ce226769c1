package tiles

import (
	"fmt"
	"sort"
)

// Suit represents a tile suit. The declaration order is the canonical sort
// priority: Wan < Tong < Tiao < Wind < Dragon.
type Suit int

const (
	Wan Suit = iota
	Tong
	Tiao
	Wind
	Dragon
)

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Wan:
		return "Wan"
	case Tong:
		return "Tong"
	case Tiao:
		return "Tiao"
	case Wind:
		return "Wind"
	case Dragon:
		return "Dragon"
	default:
		return "?"
	}
}

// IsNumeric returns true for the three suits whose tiles can form sequences
func (s Suit) IsNumeric() bool {
	return s == Wan || s == Tong || s == Tiao
}

// IsHonor returns true for Wind and Dragon tiles
func (s Suit) IsHonor() bool {
	return s == Wind || s == Dragon
}

// MaxValue returns the highest legal value for the suit
func (s Suit) MaxValue() int {
	switch s {
	case Wind:
		return 4
	case Dragon:
		return 3
	default:
		return 9
	}
}

var windNames = [...]string{"East", "South", "West", "North"}
var dragonNames = [...]string{"Red", "Green", "White"}

// Kind identifies tiles that are interchangeable for rule purposes: a
// (suit, value) pair ignoring the physical instance id. Kind is comparable
// and is the map key used by the win search and claim eligibility.
type Kind struct {
	Suit  Suit
	Value int
}

// Less reports whether k sorts before other (suit priority, then value)
func (k Kind) Less(other Kind) bool {
	if k.Suit != other.Suit {
		return k.Suit < other.Suit
	}
	return k.Value < other.Value
}

// String returns the display label for the kind (e.g. "Wan-5", "East", "Red")
func (k Kind) String() string {
	switch k.Suit {
	case Wind:
		if k.Value >= 1 && k.Value <= 4 {
			return windNames[k.Value-1]
		}
	case Dragon:
		if k.Value >= 1 && k.Value <= 3 {
			return dragonNames[k.Value-1]
		}
	default:
		return fmt.Sprintf("%s-%d", k.Suit, k.Value)
	}
	return fmt.Sprintf("%s-%d", k.Suit, k.Value)
}

// Tile represents one physical tile. ID is unique across the deck and stable
// for the life of a session; two tiles of the same Kind are interchangeable
// for every rule, but their IDs distinguish the physical copies.
type Tile struct {
	ID int
	Kind
}

// String returns the display label for the tile
func (t Tile) String() string {
	return t.Kind.String()
}

// SameKind reports whether two tiles match on suit and value
func SameKind(a, b Tile) bool {
	return a.Kind == b.Kind
}

// AllKinds returns the 34 distinct kinds in canonical sort order
func AllKinds() []Kind {
	kinds := make([]Kind, 0, KindCount)
	for _, s := range []Suit{Wan, Tong, Tiao, Wind, Dragon} {
		for v := 1; v <= s.MaxValue(); v++ {
			kinds = append(kinds, Kind{Suit: s, Value: v})
		}
	}
	return kinds
}

// Sort orders tiles in place by suit priority, then value, then ID. The ID
// tie-break makes the order canonical for equal kinds; no rule outcome
// depends on hand order.
func Sort(ts []Tile) {
	sort.Slice(ts, func(i, j int) bool {
		if ts[i].Kind != ts[j].Kind {
			return ts[i].Kind.Less(ts[j].Kind)
		}
		return ts[i].ID < ts[j].ID
	})
}

// CountKinds builds the multiplicity map for a set of tiles
func CountKinds(ts []Tile) map[Kind]int {
	counts := make(map[Kind]int, len(ts))
	for _, t := range ts {
		counts[t.Kind]++
	}
	return counts
}
