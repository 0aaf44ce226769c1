package game

import "github.com/lox/mahjong-cli/internal/tiles"

// AIEngine handles AI decision making. Every choice is a pure function of
// the hand it sees, so games replay identically from the same shuffle.
type AIEngine struct{}

// NewAIEngine creates a new AI engine
func NewAIEngine() *AIEngine {
	return &AIEngine{}
}

// TurnAction is the kind of move an AI seat makes on its turn
type TurnAction int

const (
	ActionDiscard TurnAction = iota
	ActionSelfDrawWin
	ActionConcealedKong
)

// TurnDecision is an AI seat's chosen move for its turn
type TurnDecision struct {
	Action   TurnAction
	TileID   int        // tile to discard when Action is ActionDiscard
	KongKind tiles.Kind // kind to lay down when Action is ActionConcealedKong
}

// DecideTurn picks the move for an AI seat that holds the turn: declare the
// win if the hand is already complete, lay down a concealed kong if one is
// sitting in the hand, otherwise pick a discard.
func (ai *AIEngine) DecideTurn(p PlayerState) TurnDecision {
	if CanWin(p.Hand) {
		return TurnDecision{Action: ActionSelfDrawWin}
	}
	if kongs := ConcealedKongKinds(p.Hand); len(kongs) > 0 {
		return TurnDecision{Action: ActionConcealedKong, KongKind: kongs[0]}
	}
	t := ai.ChooseDiscard(p.Hand)
	return TurnDecision{Action: ActionDiscard, TileID: t.ID}
}

// ChooseDiscard picks the least useful tile in the hand:
//
//  1. a lone honor tile, which can only ever pair with its own copies
//  2. an isolated numeric tile, with no same-suit tile within one value
//     of it to build a sequence around
//  3. failing both, the first tile in sort order
//
// Within each tier the first match in sort order wins, so the choice is
// stable for a given hand.
func (ai *AIEngine) ChooseDiscard(hand []tiles.Tile) tiles.Tile {
	counts := tiles.CountKinds(hand)

	for _, t := range hand {
		if t.Suit.IsHonor() && counts[t.Kind] == 1 {
			return t
		}
	}
	for _, t := range hand {
		if t.Suit.IsNumeric() && isolated(counts, t.Kind) {
			return t
		}
	}
	return hand[0]
}

// isolated reports whether a numeric kind has no neighbour in the hand. A
// duplicate of the kind itself counts as a neighbour, since the pair is
// worth keeping.
func isolated(counts map[tiles.Kind]int, k tiles.Kind) bool {
	if counts[k] != 1 {
		return false
	}
	left := tiles.Kind{Suit: k.Suit, Value: k.Value - 1}
	right := tiles.Kind{Suit: k.Suit, Value: k.Value + 1}
	return counts[left] == 0 && counts[right] == 0
}

// RespondToClaim picks the AI's answer to a pending claim set: the
// strongest available action. ok is false when there is nothing to claim,
// which means the seat passes.
func (ai *AIEngine) RespondToClaim(claims []ClaimKind) (ClaimKind, bool) {
	if len(claims) == 0 {
		return 0, false
	}
	best := claims[0]
	for _, k := range claims[1:] {
		if k < best {
			best = k
		}
	}
	return best, true
}
