package game

import "github.com/lox/mahjong-cli/internal/tiles"

// CanWin reports whether a concealed hand forms a complete winning shape:
// exactly one pair plus (n-2)/3 groups, where a group is three identical
// tiles or a run of three consecutive values in one numeric suit. Tiles
// already laid down as melds are committed groups and are never re-checked,
// so callers pass only the concealed portion of the hand.
//
// Hands whose size is not 2 mod 3 cannot have the pair-plus-groups shape
// and are rejected immediately.
func CanWin(hand []tiles.Tile) bool {
	if len(hand)%3 != 2 {
		return false
	}
	counts := tiles.CountKinds(hand)

	// Try every kind that can supply the pair, smallest first, and
	// backtrack the rest of the hand into groups.
	for _, kind := range tiles.AllKinds() {
		if counts[kind] < 2 {
			continue
		}
		counts[kind] -= 2
		ok := decompose(counts)
		counts[kind] += 2
		if ok {
			return true
		}
	}
	return false
}

// decompose reports whether the remaining multiset splits cleanly into
// triplets and sequences. It always works on the smallest kind still
// present, trying a triplet before a sequence, which keeps the search from
// revisiting the same partition twice.
func decompose(counts map[tiles.Kind]int) bool {
	kind, ok := smallestKind(counts)
	if !ok {
		return true
	}

	if counts[kind] >= 3 {
		counts[kind] -= 3
		ok := decompose(counts)
		counts[kind] += 3
		if ok {
			return true
		}
	}

	// Sequences only exist in numeric suits and can only start at values
	// that leave room for two more.
	if kind.Suit.IsNumeric() && kind.Value <= 7 {
		k2 := tiles.Kind{Suit: kind.Suit, Value: kind.Value + 1}
		k3 := tiles.Kind{Suit: kind.Suit, Value: kind.Value + 2}
		if counts[k2] > 0 && counts[k3] > 0 {
			counts[kind]--
			counts[k2]--
			counts[k3]--
			ok := decompose(counts)
			counts[kind]++
			counts[k2]++
			counts[k3]++
			if ok {
				return true
			}
		}
	}
	return false
}

// smallestKind returns the lowest-sorting kind with tiles remaining
func smallestKind(counts map[tiles.Kind]int) (tiles.Kind, bool) {
	for _, kind := range tiles.AllKinds() {
		if counts[kind] > 0 {
			return kind, true
		}
	}
	return tiles.Kind{}, false
}
