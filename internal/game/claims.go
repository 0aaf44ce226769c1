package game

import "github.com/lox/mahjong-cli/internal/tiles"

// chowPair is the two held kinds that complete a sequence around a discard
type chowPair struct {
	low, high tiles.Kind
}

// chowOptions lists the sequence completions a hand can form around a
// numeric discard, ordered by the value of each resulting sequence's lowest
// tile. Patterns that would run outside values 1..9 are skipped. Honor
// discards never form sequences.
func chowOptions(hand []tiles.Tile, t tiles.Tile) []chowPair {
	if !t.Suit.IsNumeric() {
		return nil
	}
	counts := tiles.CountKinds(hand)
	var out []chowPair
	for _, d := range [][2]int{{-2, -1}, {-1, 1}, {1, 2}} {
		v1, v2 := t.Value+d[0], t.Value+d[1]
		if v1 < 1 || v2 > 9 {
			continue
		}
		k1 := tiles.Kind{Suit: t.Suit, Value: v1}
		k2 := tiles.Kind{Suit: t.Suit, Value: v2}
		if counts[k1] > 0 && counts[k2] > 0 {
			out = append(out, chowPair{low: k1, high: k2})
		}
	}
	return out
}

// claimsForDiscard computes the full claim set a discard opens: for every
// seat other than the discarder, which actions its hand supports against
// the tile. Per-seat lists come back strongest first. A seat with no legal
// action stays nil and plays no part in the action window.
//
// Eligibility per action:
//   - win: the hand plus the discard forms a complete hand
//   - kong: the hand holds exactly three matching tiles
//   - pung: the hand holds at least two matching tiles
//   - chow: next seat clockwise only, and only when a numeric sequence
//     completion exists
func claimsForDiscard(players [NumSeats]PlayerState, discarder int, t tiles.Tile) [NumSeats][]ClaimKind {
	var claims [NumSeats][]ClaimKind
	for seat := 0; seat < NumSeats; seat++ {
		if seat == discarder {
			continue
		}
		p := players[seat]
		var ks []ClaimKind
		if CanWin(cloneHandWith(p.Hand, t)) {
			ks = append(ks, ClaimWin)
		}
		held := p.CountKind(t.Kind)
		if held == 3 {
			ks = append(ks, ClaimKong)
		}
		if held >= 2 {
			ks = append(ks, ClaimPung)
		}
		if seat == nextSeat(discarder) && len(chowOptions(p.Hand, t)) > 0 {
			ks = append(ks, ClaimChow)
		}
		claims[seat] = ks
	}
	return claims
}

// ClaimRequest pairs a seat with the claim it wants to make
type ClaimRequest struct {
	Seat int
	Kind ClaimKind
}

// Arbitrate picks the winning request out of those actually made against a
// discard: the strongest kind first, and between equal kinds the seat
// fewest clockwise steps from the discarder. ok is false when no requests
// were made at all.
func Arbitrate(discarder int, requests []ClaimRequest) (ClaimRequest, bool) {
	if len(requests) == 0 {
		return ClaimRequest{}, false
	}
	best := requests[0]
	for _, r := range requests[1:] {
		if r.Kind < best.Kind {
			best = r
			continue
		}
		if r.Kind == best.Kind &&
			clockwiseDistance(discarder, r.Seat) < clockwiseDistance(discarder, best.Seat) {
			best = r
		}
	}
	return best, true
}

// ConcealedKongKinds lists the kinds a hand holds all four copies of
func ConcealedKongKinds(hand []tiles.Tile) []tiles.Kind {
	counts := tiles.CountKinds(hand)
	var out []tiles.Kind
	for _, kind := range tiles.AllKinds() {
		if counts[kind] == 4 {
			out = append(out, kind)
		}
	}
	return out
}
