package game

import (
	"math/rand/v2"

	"github.com/lox/mahjong-cli/internal/tiles"
)

// HandSize is the concealed tile count each seat starts with. The dealer
// draws one extra and opens the game with a discard.
const HandSize = 13

// NewGame shuffles a fresh wall, deals every seat its starting hand and
// returns the first committed state, already in the playing phase with the
// dealer to act. Seat 0 is always the dealer. humanSeat marks which seat a
// person controls; pass -1 for an all-bot game.
func NewGame(names [NumSeats]string, humanSeat int, rng *rand.Rand) GameState {
	deck := tiles.NewDeck(rng)
	wall := deck.Tiles()

	var hands [NumSeats][]tiles.Tile
	for round := 0; round < HandSize; round++ {
		for seat := 0; seat < NumSeats; seat++ {
			var t tiles.Tile
			wall, t, _ = drawTile(wall)
			hands[seat] = append(hands[seat], t)
		}
	}
	var extra tiles.Tile
	wall, extra, _ = drawTile(wall)
	hands[0] = append(hands[0], extra)

	g := GameState{
		Seq:         1,
		Wall:        wall,
		CurrentTurn: 0,
		Phase:       Playing,
		Winner:      NoWinner,
		WinType:     WinTypeNone,
	}
	for seat := 0; seat < NumSeats; seat++ {
		tiles.Sort(hands[seat])
		g.Players[seat] = PlayerState{
			Seat:   seat,
			Name:   names[seat],
			Human:  seat == humanSeat,
			Hand:   hands[seat],
			Score:  InitialScore,
			Dealer: seat == 0,
		}
	}
	return g.withEvent(NewGameStartedEvent(0, names, len(wall)))
}

// drawTile takes the next tile off the back of the wall. ok is false when
// the wall is exhausted, which ends the game in a draw wherever it happens.
func drawTile(wall []tiles.Tile) ([]tiles.Tile, tiles.Tile, bool) {
	if len(wall) == 0 {
		return wall, tiles.Tile{}, false
	}
	t := wall[len(wall)-1]
	return wall[:len(wall)-1], t, true
}

// exhaust ends the game with no winner after a failed draw
func (g GameState) exhaust() GameState {
	g.Phase = GameOver
	g.Winner = NoWinner
	g.WinType = WinTypeNone
	g.LastDiscard = nil
	g.Claims = [NumSeats][]ClaimKind{}
	return g.withEvent(NewWallExhaustedEvent()).bump()
}

// Discard plays a tile from the current player's hand face up into their
// discard pile and opens the action window over it. Every other seat whose
// hand supports an action against the tile lands in the claim set; the
// window stays open until the set empties or a claim resolves.
func (g GameState) Discard(seat, tileID int) (GameState, error) {
	if seat < 0 || seat >= NumSeats {
		return g, ErrNoSuchSeat
	}
	if g.Phase == GameOver {
		return g, ErrGameOver
	}
	if g.Phase != Playing {
		return g, ErrWrongPhase
	}
	if seat != g.CurrentTurn {
		return g, ErrNotYourTurn
	}

	p := g.Players[seat]
	hand, t, ok := cloneHandWithout(p.Hand, tileID)
	if !ok {
		return g, ErrTileNotInHand
	}

	p.Hand = hand
	p.Discards = appendDiscard(p.Discards, t)
	g.Players[seat] = p
	g.LastDiscard = &TileDiscard{Tile: t, Seat: seat}
	g.Phase = ActionWindow
	g.Claims = claimsForDiscard(g.Players, seat, t)

	g = g.withEvent(NewTileDiscardedEvent(seat, t))
	if seats := g.claimSeats(); len(seats) > 0 {
		g = g.withEvent(NewClaimsOpenedEvent(seat, t, seats))
	}
	return g.bump(), nil
}

// claimSeats returns the seats still holding pending claims, in seat order
func (g GameState) claimSeats() []int {
	var seats []int
	for seat := 0; seat < NumSeats; seat++ {
		if len(g.Claims[seat]) > 0 {
			seats = append(seats, seat)
		}
	}
	return seats
}

// Advance closes an action window nobody claimed and moves play to the next
// seat clockwise of the discarder, drawing them a tile. An exhausted wall
// ends the game in a draw instead.
func (g GameState) Advance() (GameState, error) {
	if g.Phase == GameOver {
		return g, ErrGameOver
	}
	if g.Phase != ActionWindow || g.LastDiscard == nil {
		return g, ErrWrongPhase
	}
	if !g.ClaimsEmpty() {
		return g, ErrClaimNotAvailable
	}

	next := nextSeat(g.LastDiscard.Seat)
	wall, t, ok := drawTile(g.Wall)
	if !ok {
		return g.exhaust(), nil
	}

	p := g.Players[next]
	p.Hand = cloneHandWith(p.Hand, t)
	g.Players[next] = p
	g.Wall = wall
	g.CurrentTurn = next
	g.LastDiscard = nil
	g.Phase = Playing
	return g.withEvent(NewTileDrawnEvent(next, t, len(wall))).bump(), nil
}

// Pass withdraws a seat from the current claim set. Once the last claimant
// passes the window behaves exactly as if nobody could act on the discard.
func (g GameState) Pass(seat int) (GameState, error) {
	if seat < 0 || seat >= NumSeats {
		return g, ErrNoSuchSeat
	}
	if g.Phase == GameOver {
		return g, ErrGameOver
	}
	if g.Phase != ActionWindow {
		return g, ErrWrongPhase
	}
	if len(g.Claims[seat]) == 0 {
		return g, ErrNotInClaimSet
	}

	g.Claims[seat] = nil
	return g.withEvent(NewSeatPassedEvent(seat)).bump(), nil
}

// ResolveClaim executes one claim from the pending set. Arbitration between
// competing seats happens upstream; by the time this runs the caller has
// already picked the winning (seat, kind) pair. The claimed tile leaves the
// discarder's pile, and depending on the kind the game either ends or play
// passes to the claimant:
//
//   - win ends the game immediately, crediting the claimant
//   - kong melds four tiles, draws a replacement and leaves the claimant
//     to discard
//   - pung melds three tiles and leaves the claimant to discard
//   - chow melds the lowest-valued completing sequence and leaves the
//     claimant to discard
func (g GameState) ResolveClaim(seat int, kind ClaimKind) (GameState, error) {
	if seat < 0 || seat >= NumSeats {
		return g, ErrNoSuchSeat
	}
	if g.Phase == GameOver {
		return g, ErrGameOver
	}
	if g.Phase != ActionWindow || g.LastDiscard == nil {
		return g, ErrWrongPhase
	}
	if !g.HasClaim(seat, kind) {
		return g, ErrClaimNotAvailable
	}

	claimed := g.LastDiscard.Tile
	discarder := g.LastDiscard.Seat

	dp := g.Players[discarder]
	if pile, ok := dropLastDiscard(dp.Discards, claimed.ID); ok {
		dp.Discards = pile
		g.Players[discarder] = dp
	}

	p := g.Players[seat]
	switch kind {
	case ClaimWin:
		p.Hand = cloneHandWith(p.Hand, claimed)
		g.Players[seat] = p
		g.Phase = GameOver
		g.Winner = seat
		g.WinType = WinByDiscard
		g.LastDiscard = nil
		g.Claims = [NumSeats][]ClaimKind{}
		t := claimed
		return g.withEvent(NewGameWonEvent(seat, WinByDiscard, &t)).bump(), nil

	case ClaimKong:
		rest, taken := takeKind(p.Hand, claimed.Kind, 3)
		meldTiles := append(taken, claimed)
		tiles.Sort(meldTiles)
		m := Meld{Type: Kong, Tiles: meldTiles, FromSeat: discarder}
		p.Melds = appendMeld(p.Melds, m)

		wall, t, ok := drawTile(g.Wall)
		if !ok {
			p.Hand = rest
			g.Players[seat] = p
			g = g.withEvent(NewMeldFormedEvent(seat, m))
			return g.exhaust(), nil
		}
		p.Hand = cloneHandWith(rest, t)
		g.Players[seat] = p
		g.Wall = wall
		g = g.withEvent(NewMeldFormedEvent(seat, m))
		g = g.withEvent(NewTileDrawnEvent(seat, t, len(wall)))

	case ClaimPung:
		rest, taken := takeKind(p.Hand, claimed.Kind, 2)
		meldTiles := append(taken, claimed)
		tiles.Sort(meldTiles)
		m := Meld{Type: Pung, Tiles: meldTiles, FromSeat: discarder}
		p.Hand = rest
		p.Melds = appendMeld(p.Melds, m)
		g.Players[seat] = p
		g = g.withEvent(NewMeldFormedEvent(seat, m))

	case ClaimChow:
		opts := chowOptions(p.Hand, claimed)
		if len(opts) == 0 {
			return g, ErrClaimNotAvailable
		}
		best := opts[0]
		rest, low, _ := takeOneOfKind(p.Hand, best.low)
		rest, high, _ := takeOneOfKind(rest, best.high)
		meldTiles := []tiles.Tile{low, high, claimed}
		tiles.Sort(meldTiles)
		m := Meld{Type: Chow, Tiles: meldTiles, FromSeat: discarder}
		p.Hand = rest
		p.Melds = appendMeld(p.Melds, m)
		g.Players[seat] = p
		g = g.withEvent(NewMeldFormedEvent(seat, m))
	}

	g.CurrentTurn = seat
	g.LastDiscard = nil
	g.Claims = [NumSeats][]ClaimKind{}
	g.Phase = Playing
	return g.bump(), nil
}

// DeclareSelfDrawWin ends the game when the current player's concealed hand
// is already complete. Anything short of a complete hand is rejected and
// the state stands.
func (g GameState) DeclareSelfDrawWin(seat int) (GameState, error) {
	if seat < 0 || seat >= NumSeats {
		return g, ErrNoSuchSeat
	}
	if g.Phase == GameOver {
		return g, ErrGameOver
	}
	if g.Phase != Playing {
		return g, ErrWrongPhase
	}
	if seat != g.CurrentTurn {
		return g, ErrNotYourTurn
	}
	if !CanWin(g.Players[seat].Hand) {
		return g, ErrNotWinningHand
	}

	g.Phase = GameOver
	g.Winner = seat
	g.WinType = SelfDraw
	g.LastDiscard = nil
	g.Claims = [NumSeats][]ClaimKind{}
	return g.withEvent(NewGameWonEvent(seat, SelfDraw, nil)).bump(), nil
}

// DeclareConcealedKong lays all four copies of a kind face down from the
// current player's hand and draws them a replacement tile. The turn does
// not move; the player still owes a discard unless the replacement
// completes their hand.
func (g GameState) DeclareConcealedKong(seat int, kind tiles.Kind) (GameState, error) {
	if seat < 0 || seat >= NumSeats {
		return g, ErrNoSuchSeat
	}
	if g.Phase == GameOver {
		return g, ErrGameOver
	}
	if g.Phase != Playing {
		return g, ErrWrongPhase
	}
	if seat != g.CurrentTurn {
		return g, ErrNotYourTurn
	}

	p := g.Players[seat]
	if p.CountKind(kind) != 4 {
		return g, ErrNoConcealedKong
	}

	rest, taken := takeKind(p.Hand, kind, 4)
	m := Meld{Type: ConcealedKong, Tiles: taken, FromSeat: seat}
	p.Melds = appendMeld(p.Melds, m)

	wall, t, ok := drawTile(g.Wall)
	if !ok {
		p.Hand = rest
		g.Players[seat] = p
		g = g.withEvent(NewMeldFormedEvent(seat, m))
		return g.exhaust(), nil
	}
	p.Hand = cloneHandWith(rest, t)
	g.Players[seat] = p
	g.Wall = wall
	g = g.withEvent(NewMeldFormedEvent(seat, m))
	g = g.withEvent(NewTileDrawnEvent(seat, t, len(wall)))
	return g.bump(), nil
}
