package game

import (
	"fmt"
	"strings"

	"github.com/lox/mahjong-cli/internal/tiles"
)

// MeldType represents the shape of a committed meld
type MeldType int

const (
	Chow MeldType = iota
	Pung
	Kong
	ConcealedKong
)

// String returns the string representation of a meld type
func (m MeldType) String() string {
	switch m {
	case Chow:
		return "Chow"
	case Pung:
		return "Pung"
	case Kong:
		return "Kong"
	case ConcealedKong:
		return "Concealed Kong"
	default:
		return "?"
	}
}

// Meld is a committed group of 3-4 tiles taken out of a hand. Once formed it
// never changes; its tiles are permanently out of hand scope. FromSeat is the
// seat that supplied the claimed tile, or the owner's own seat for a
// concealed kong.
type Meld struct {
	Type     MeldType
	Tiles    []tiles.Tile
	FromSeat int
}

// String renders the meld for logs and summaries
func (m Meld) String() string {
	labels := make([]string, len(m.Tiles))
	for i, t := range m.Tiles {
		labels[i] = t.String()
	}
	return fmt.Sprintf("%s[%s]", m.Type, strings.Join(labels, " "))
}
