package game

import (
	"errors"
	"testing"

	"github.com/lox/mahjong-cli/internal/randutil"
	"github.com/lox/mahjong-cli/internal/tiles"
)

func TestNewGameDealShape(t *testing.T) {
	t.Parallel()

	names := [NumSeats]string{"You", "Ando", "Botan", "Chie"}
	g := NewGame(names, 0, randutil.New(42))

	if g.Phase != Playing {
		t.Fatalf("phase = %v, want playing", g.Phase)
	}
	if g.CurrentTurn != 0 {
		t.Errorf("current turn = %d, want dealer", g.CurrentTurn)
	}
	if !g.Players[0].Dealer {
		t.Errorf("seat 0 should be the dealer")
	}
	if !g.Players[0].Human || g.Players[1].Human {
		t.Errorf("human flag should sit on seat 0 only")
	}
	if g.Winner != NoWinner {
		t.Errorf("winner = %d, want none", g.Winner)
	}

	wantHands := [NumSeats]int{14, 13, 13, 13}
	for seat, want := range wantHands {
		if got := len(g.Players[seat].Hand); got != want {
			t.Errorf("seat %d hand size = %d, want %d", seat, got, want)
		}
	}
	if g.WallCount() != tiles.DeckSize-(NumSeats*HandSize+1) {
		t.Errorf("wall = %d, want %d", g.WallCount(), tiles.DeckSize-(NumSeats*HandSize+1))
	}

	// Every physical tile is in exactly one place.
	seen := make(map[int]bool, tiles.DeckSize)
	total := 0
	count := func(ts []tiles.Tile) {
		for _, tl := range ts {
			if seen[tl.ID] {
				t.Fatalf("tile id %d appears twice", tl.ID)
			}
			seen[tl.ID] = true
			total++
		}
	}
	count(g.Wall)
	for seat := 0; seat < NumSeats; seat++ {
		count(g.Players[seat].Hand)
	}
	if total != tiles.DeckSize {
		t.Errorf("tiles accounted for = %d, want %d", total, tiles.DeckSize)
	}

	// Hands come out sorted.
	for seat := 0; seat < NumSeats; seat++ {
		hand := g.Players[seat].Hand
		for i := 1; i < len(hand); i++ {
			if hand[i].Kind.Less(hand[i-1].Kind) {
				t.Errorf("seat %d hand not sorted at %d: %v before %v", seat, i, hand[i-1], hand[i])
			}
		}
	}
}

func TestNewGameSameSeedSameDeal(t *testing.T) {
	t.Parallel()

	names := [NumSeats]string{"a", "b", "c", "d"}
	g1 := NewGame(names, 0, randutil.New(7))
	g2 := NewGame(names, 0, randutil.New(7))

	for seat := 0; seat < NumSeats; seat++ {
		h1, h2 := g1.Players[seat].Hand, g2.Players[seat].Hand
		for i := range h1 {
			if h1[i] != h2[i] {
				t.Fatalf("seat %d tile %d differs across identical seeds", seat, i)
			}
		}
	}
}

func TestDiscardOpensWindowAndAdvanceDraws(t *testing.T) {
	t.Parallel()

	ts := &tileset{}
	hand0 := ts.tiles(wind(1), tiao(2), tiao(5))
	wall := ts.tiles(dragon(3), dragon(3))
	g := playingState(0, [NumSeats][]tiles.Tile{
		hand0, junkHand(ts), junkHand(ts), junkHand(ts),
	}, wall)

	discardID := hand0[0].ID // wind 1 sorts behind the tiaos
	for _, tl := range hand0 {
		if tl.Kind == wind(1) {
			discardID = tl.ID
		}
	}

	g2, err := g.Discard(0, discardID)
	if err != nil {
		t.Fatalf("discard: %v", err)
	}
	if g2.Phase != ActionWindow {
		t.Fatalf("phase = %v, want action window", g2.Phase)
	}
	if g2.LastDiscard == nil || g2.LastDiscard.Seat != 0 || g2.LastDiscard.Tile.ID != discardID {
		t.Fatalf("last discard = %+v, want the wind from seat 0", g2.LastDiscard)
	}
	if len(g2.Players[0].Hand) != 2 {
		t.Errorf("hand after discard = %d tiles, want 2", len(g2.Players[0].Hand))
	}
	if len(g2.Players[0].Discards) != 1 {
		t.Errorf("discard pile = %d tiles, want 1", len(g2.Players[0].Discards))
	}
	if !g2.ClaimsEmpty() {
		t.Fatalf("claims = %v, want none", g2.Claims)
	}

	g3, err := g2.Advance()
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if g3.Phase != Playing {
		t.Fatalf("phase = %v, want playing", g3.Phase)
	}
	if g3.CurrentTurn != 1 {
		t.Errorf("turn = %d, want next seat clockwise", g3.CurrentTurn)
	}
	if g3.WallCount() != 1 {
		t.Errorf("wall = %d, want 1 after the draw", g3.WallCount())
	}
	if len(g3.Players[1].Hand) != 4 {
		t.Errorf("drawing seat hand = %d, want 4", len(g3.Players[1].Hand))
	}
	if g3.LastDiscard != nil {
		t.Errorf("last discard should clear once play advances")
	}

	// The discarded tile stays in the pile when nobody claims it.
	if len(g3.Players[0].Discards) != 1 {
		t.Errorf("unclaimed discard should stay in the pile")
	}
}

func TestDiscardValidation(t *testing.T) {
	t.Parallel()

	ts := &tileset{}
	hand0 := ts.tiles(wan(1), wan(2), wan(3))
	g := playingState(0, [NumSeats][]tiles.Tile{
		hand0, junkHand(ts), junkHand(ts), junkHand(ts),
	}, ts.tiles(dragon(1)))

	if _, err := g.Discard(1, g.Players[1].Hand[0].ID); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("out of turn discard: err = %v, want ErrNotYourTurn", err)
	}
	if _, err := g.Discard(0, 9999); !errors.Is(err, ErrTileNotInHand) {
		t.Errorf("unknown tile: err = %v, want ErrTileNotInHand", err)
	}
	if _, err := g.Discard(-1, 1); !errors.Is(err, ErrNoSuchSeat) {
		t.Errorf("bad seat: err = %v, want ErrNoSuchSeat", err)
	}
	if _, err := g.Discard(NumSeats, 1); !errors.Is(err, ErrNoSuchSeat) {
		t.Errorf("bad seat: err = %v, want ErrNoSuchSeat", err)
	}

	g2, _ := g.Discard(0, hand0[0].ID)
	if _, err := g2.Discard(1, g2.Players[1].Hand[0].ID); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("discard into action window: err = %v, want ErrWrongPhase", err)
	}
}

func TestTransitionsLeaveOldStateAlone(t *testing.T) {
	t.Parallel()

	ts := &tileset{}
	hand0 := ts.tiles(wind(1), tiao(2), tiao(5))
	g := playingState(0, [NumSeats][]tiles.Tile{
		hand0, junkHand(ts), junkHand(ts), junkHand(ts),
	}, ts.tiles(dragon(1), dragon(2)))

	before := g

	g2, err := g.Discard(0, hand0[len(hand0)-1].ID)
	if err != nil {
		t.Fatalf("discard: %v", err)
	}
	if _, err := g2.Advance(); err != nil {
		t.Fatalf("advance: %v", err)
	}

	if g.Phase != before.Phase || g.Seq != before.Seq {
		t.Errorf("old state header changed")
	}
	if len(g.Players[0].Hand) != 3 {
		t.Errorf("old hand length = %d, want 3", len(g.Players[0].Hand))
	}
	if len(g.Players[0].Discards) != 0 {
		t.Errorf("old discard pile grew")
	}
	if len(g.Players[1].Hand) != 3 {
		t.Errorf("old seat 1 hand length = %d, want 3", len(g.Players[1].Hand))
	}
	if g.WallCount() != 2 {
		t.Errorf("old wall shrank to %d", g.WallCount())
	}
}

func TestResolvePung(t *testing.T) {
	t.Parallel()

	ts := &tileset{}
	hand0 := ts.tiles(tong(5), wan(1), wan(2))
	hand2 := ts.tiles(tong(5), tong(5), wind(4))
	g := playingState(0, [NumSeats][]tiles.Tile{
		hand0, junkHand(ts), hand2, junkHand(ts),
	}, ts.tiles(dragon(1)))

	var discardID int
	for _, tl := range hand0 {
		if tl.Kind == tong(5) {
			discardID = tl.ID
		}
	}

	g2, err := g.Discard(0, discardID)
	if err != nil {
		t.Fatalf("discard: %v", err)
	}
	if !g2.HasClaim(2, ClaimPung) {
		t.Fatalf("claims = %v, want pung for seat 2", g2.Claims)
	}

	g3, err := g2.ResolveClaim(2, ClaimPung)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if g3.Phase != Playing || g3.CurrentTurn != 2 {
		t.Fatalf("phase %v turn %d, want playing with claimant to act", g3.Phase, g3.CurrentTurn)
	}

	p := g3.Players[2]
	if len(p.Melds) != 1 {
		t.Fatalf("melds = %v, want one pung", p.Melds)
	}
	m := p.Melds[0]
	if m.Type != Pung || len(m.Tiles) != 3 || m.FromSeat != 0 {
		t.Errorf("meld = %+v, want pung of three from seat 0", m)
	}
	for _, tl := range m.Tiles {
		if tl.Kind != tong(5) {
			t.Errorf("meld tile %v, want Tong-5", tl)
		}
	}
	if len(p.Hand) != 1 {
		t.Errorf("claimant hand = %d tiles, want 1", len(p.Hand))
	}

	// The claimed tile left the discarder's pile.
	if len(g3.Players[0].Discards) != 0 {
		t.Errorf("claimed tile still in discard pile: %v", g3.Players[0].Discards)
	}
	if g3.LastDiscard != nil || !g3.ClaimsEmpty() {
		t.Errorf("window should be fully closed after a claim resolves")
	}
	if g3.WallCount() != 1 {
		t.Errorf("pung must not draw from the wall")
	}
}

func TestResolveKongDrawsReplacement(t *testing.T) {
	t.Parallel()

	ts := &tileset{}
	hand0 := ts.tiles(dragon(2), wan(1), wan(2))
	hand3 := ts.tiles(dragon(2), dragon(2), dragon(2), wind(1))
	wall := ts.tiles(tiao(9), tiao(8))
	g := playingState(0, [NumSeats][]tiles.Tile{
		hand0, junkHand(ts), junkHand(ts), hand3,
	}, wall)

	var discardID int
	for _, tl := range hand0 {
		if tl.Kind == dragon(2) {
			discardID = tl.ID
		}
	}

	g2, err := g.Discard(0, discardID)
	if err != nil {
		t.Fatalf("discard: %v", err)
	}
	if !g2.HasClaim(3, ClaimKong) {
		t.Fatalf("claims = %v, want kong for seat 3", g2.Claims)
	}

	g3, err := g2.ResolveClaim(3, ClaimKong)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	p := g3.Players[3]
	if len(p.Melds) != 1 || p.Melds[0].Type != Kong || len(p.Melds[0].Tiles) != 4 {
		t.Fatalf("melds = %v, want one four-tile kong", p.Melds)
	}
	if p.Melds[0].FromSeat != 0 {
		t.Errorf("kong from seat = %d, want 0", p.Melds[0].FromSeat)
	}
	// 4 hand tiles - 3 melded + 1 replacement draw.
	if len(p.Hand) != 2 {
		t.Errorf("claimant hand = %d tiles, want 2 after replacement draw", len(p.Hand))
	}
	if g3.WallCount() != 1 {
		t.Errorf("wall = %d, want 1 after the replacement draw", g3.WallCount())
	}
	if g3.CurrentTurn != 3 || g3.Phase != Playing {
		t.Errorf("phase %v turn %d, want claimant discarding next", g3.Phase, g3.CurrentTurn)
	}
}

func TestResolveChowTakesLowestSequence(t *testing.T) {
	t.Parallel()

	ts := &tileset{}
	hand0 := ts.tiles(wan(5), wind(2), wind(3))
	hand1 := ts.tiles(wan(3), wan(4), wan(6), wan(7))
	g := playingState(0, [NumSeats][]tiles.Tile{
		hand0, hand1, junkHand(ts), junkHand(ts),
	}, ts.tiles(dragon(1)))

	var discardID int
	for _, tl := range hand0 {
		if tl.Kind == wan(5) {
			discardID = tl.ID
		}
	}

	g2, err := g.Discard(0, discardID)
	if err != nil {
		t.Fatalf("discard: %v", err)
	}
	g3, err := g2.ResolveClaim(1, ClaimChow)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	p := g3.Players[1]
	if len(p.Melds) != 1 || p.Melds[0].Type != Chow {
		t.Fatalf("melds = %v, want one chow", p.Melds)
	}
	wantKinds := []tiles.Kind{wan(3), wan(4), wan(5)}
	for i, tl := range p.Melds[0].Tiles {
		if tl.Kind != wantKinds[i] {
			t.Errorf("meld tile %d = %v, want %v", i, tl, wantKinds[i])
		}
	}
	// The 6 and 7 stay in hand for a later sequence.
	if len(p.Hand) != 2 {
		t.Fatalf("hand = %v, want the 6 and 7 left", p.Hand)
	}
	for _, tl := range p.Hand {
		if tl.Kind != wan(6) && tl.Kind != wan(7) {
			t.Errorf("unexpected hand tile %v", tl)
		}
	}
}

func TestResolveWinEndsGame(t *testing.T) {
	t.Parallel()

	ts := &tileset{}
	hand0 := ts.tiles(wan(5), wind(2), wind(3))
	hand2 := ts.tiles(wan(5), wan(5), dragon(1), dragon(1))
	g := playingState(0, [NumSeats][]tiles.Tile{
		hand0, junkHand(ts), hand2, junkHand(ts),
	}, ts.tiles(tiao(1)))

	var discardID int
	for _, tl := range hand0 {
		if tl.Kind == wan(5) {
			discardID = tl.ID
		}
	}

	g2, err := g.Discard(0, discardID)
	if err != nil {
		t.Fatalf("discard: %v", err)
	}
	if !g2.HasClaim(2, ClaimWin) {
		t.Fatalf("claims = %v, want win for seat 2", g2.Claims)
	}

	g3, err := g2.ResolveClaim(2, ClaimWin)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if g3.Phase != GameOver {
		t.Fatalf("phase = %v, want game over", g3.Phase)
	}
	if g3.Winner != 2 || g3.WinType != WinByDiscard {
		t.Errorf("winner %d by %v, want seat 2 by discard", g3.Winner, g3.WinType)
	}
	if len(g3.Players[2].Hand) != 5 {
		t.Errorf("winning hand = %d tiles, want 5 with the claimed tile folded in", len(g3.Players[2].Hand))
	}
	if len(g3.Players[0].Discards) != 0 {
		t.Errorf("claimed tile should leave the discard pile")
	}

	// Terminal states accept nothing further.
	if _, err := g3.Discard(2, g3.Players[2].Hand[0].ID); !errors.Is(err, ErrGameOver) {
		t.Errorf("discard after game over: err = %v, want ErrGameOver", err)
	}
}

func TestPassEmptiesClaimSet(t *testing.T) {
	t.Parallel()

	ts := &tileset{}
	hand0 := ts.tiles(tong(5), wind(2), wind(3))
	hand2 := ts.tiles(tong(5), tong(5), wind(4))
	g := playingState(0, [NumSeats][]tiles.Tile{
		hand0, junkHand(ts), hand2, junkHand(ts),
	}, ts.tiles(dragon(1)))

	var discardID int
	for _, tl := range hand0 {
		if tl.Kind == tong(5) {
			discardID = tl.ID
		}
	}

	g2, _ := g.Discard(0, discardID)
	if g2.ClaimsEmpty() {
		t.Fatalf("expected a pending pung claim")
	}

	if _, err := g2.Pass(1); !errors.Is(err, ErrNotInClaimSet) {
		t.Errorf("pass without a claim: err = %v, want ErrNotInClaimSet", err)
	}

	g3, err := g2.Pass(2)
	if err != nil {
		t.Fatalf("pass: %v", err)
	}
	if !g3.ClaimsEmpty() {
		t.Errorf("claims = %v, want empty after the only claimant passed", g3.Claims)
	}
	if g3.Phase != ActionWindow {
		t.Errorf("phase = %v, passing alone must not advance play", g3.Phase)
	}

	// A passed claim cannot be resurrected.
	if _, err := g3.ResolveClaim(2, ClaimPung); !errors.Is(err, ErrClaimNotAvailable) {
		t.Errorf("resolve after pass: err = %v, want ErrClaimNotAvailable", err)
	}

	g4, err := g3.Advance()
	if err != nil {
		t.Fatalf("advance after sweep: %v", err)
	}
	if g4.CurrentTurn != 1 || g4.Phase != Playing {
		t.Errorf("phase %v turn %d, want play moving to seat 1", g4.Phase, g4.CurrentTurn)
	}
}

func TestAdvanceRefusesPendingClaims(t *testing.T) {
	t.Parallel()

	ts := &tileset{}
	hand0 := ts.tiles(tong(5), wind(2), wind(3))
	hand2 := ts.tiles(tong(5), tong(5), wind(4))
	g := playingState(0, [NumSeats][]tiles.Tile{
		hand0, junkHand(ts), hand2, junkHand(ts),
	}, ts.tiles(dragon(1)))

	var discardID int
	for _, tl := range hand0 {
		if tl.Kind == tong(5) {
			discardID = tl.ID
		}
	}
	g2, _ := g.Discard(0, discardID)

	if _, err := g2.Advance(); !errors.Is(err, ErrClaimNotAvailable) {
		t.Errorf("advance with pending claims: err = %v, want ErrClaimNotAvailable", err)
	}
}

func TestSelfDrawWin(t *testing.T) {
	t.Parallel()

	ts := &tileset{}
	winning := ts.tiles(wan(1), wan(1), dragon(2), dragon(2), dragon(2))
	g := playingState(1, [NumSeats][]tiles.Tile{
		junkHand(ts), winning, junkHand(ts), junkHand(ts),
	}, ts.tiles(tiao(1)))

	if _, err := g.DeclareSelfDrawWin(0); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("off-turn declaration: err = %v, want ErrNotYourTurn", err)
	}

	g2, err := g.DeclareSelfDrawWin(1)
	if err != nil {
		t.Fatalf("declare: %v", err)
	}
	if g2.Phase != GameOver || g2.Winner != 1 || g2.WinType != SelfDraw {
		t.Errorf("got phase %v winner %d by %v, want game over, seat 1, self-draw", g2.Phase, g2.Winner, g2.WinType)
	}
}

func TestSelfDrawWinRejectsIncompleteHand(t *testing.T) {
	t.Parallel()

	ts := &tileset{}
	g := playingState(0, [NumSeats][]tiles.Tile{
		ts.tiles(wan(1), wan(5), wan(9), wind(1), dragon(3)),
		junkHand(ts), junkHand(ts), junkHand(ts),
	}, ts.tiles(tiao(1)))

	g2, err := g.DeclareSelfDrawWin(0)
	if !errors.Is(err, ErrNotWinningHand) {
		t.Fatalf("err = %v, want ErrNotWinningHand", err)
	}
	if g2.Phase != Playing || g2.Seq != g.Seq {
		t.Errorf("rejected declaration must leave the state untouched")
	}
}

func TestDeclareConcealedKong(t *testing.T) {
	t.Parallel()

	ts := &tileset{}
	hand0 := ts.tiles(dragon(1), dragon(1), dragon(1), dragon(1), wan(3), wan(4))
	wall := ts.tiles(tong(9), tong(8))
	g := playingState(0, [NumSeats][]tiles.Tile{
		hand0, junkHand(ts), junkHand(ts), junkHand(ts),
	}, wall)

	g2, err := g.DeclareConcealedKong(0, dragon(1))
	if err != nil {
		t.Fatalf("declare: %v", err)
	}

	p := g2.Players[0]
	if len(p.Melds) != 1 || p.Melds[0].Type != ConcealedKong {
		t.Fatalf("melds = %v, want one concealed kong", p.Melds)
	}
	if p.Melds[0].FromSeat != 0 {
		t.Errorf("concealed kong from seat = %d, want the owner", p.Melds[0].FromSeat)
	}
	// 6 - 4 melded + 1 replacement.
	if len(p.Hand) != 3 {
		t.Errorf("hand = %d tiles, want 3 after the replacement draw", len(p.Hand))
	}
	if g2.WallCount() != 1 {
		t.Errorf("wall = %d, want 1", g2.WallCount())
	}
	if g2.CurrentTurn != 0 || g2.Phase != Playing {
		t.Errorf("the declarer keeps the turn and still owes a discard")
	}

	if _, err := g2.DeclareConcealedKong(0, wan(3)); !errors.Is(err, ErrNoConcealedKong) {
		t.Errorf("kong without four copies: err = %v, want ErrNoConcealedKong", err)
	}
}

func TestWallExhaustionEndsGameInDraw(t *testing.T) {
	t.Parallel()

	ts := &tileset{}
	hand0 := ts.tiles(wind(1), tiao(2), tiao(5))
	g := playingState(0, [NumSeats][]tiles.Tile{
		hand0, junkHand(ts), junkHand(ts), junkHand(ts),
	}, nil)

	var discardID int
	for _, tl := range hand0 {
		if tl.Kind == wind(1) {
			discardID = tl.ID
		}
	}

	g2, err := g.Discard(0, discardID)
	if err != nil {
		t.Fatalf("discard: %v", err)
	}
	g3, err := g2.Advance()
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if g3.Phase != GameOver {
		t.Fatalf("phase = %v, want game over on the empty wall", g3.Phase)
	}
	if g3.Winner != NoWinner || g3.WinType != WinTypeNone {
		t.Errorf("drawn game must have no winner, got %d/%v", g3.Winner, g3.WinType)
	}
	last := g3.Events[len(g3.Events)-1]
	if last.EventType() != EventTypeWallExhausted {
		t.Errorf("last event = %v, want wall exhausted", last.EventType())
	}
}

func TestKongReplacementExhaustsWall(t *testing.T) {
	t.Parallel()

	ts := &tileset{}
	hand0 := ts.tiles(dragon(1), dragon(1), dragon(1), dragon(1), wan(3))
	g := playingState(0, [NumSeats][]tiles.Tile{
		hand0, junkHand(ts), junkHand(ts), junkHand(ts),
	}, nil)

	g2, err := g.DeclareConcealedKong(0, dragon(1))
	if err != nil {
		t.Fatalf("declare: %v", err)
	}
	if g2.Phase != GameOver || g2.Winner != NoWinner {
		t.Errorf("kong with no replacement tile should end in a draw, got %v/%d", g2.Phase, g2.Winner)
	}
	// The meld still stands in the final state.
	if len(g2.Players[0].Melds) != 1 {
		t.Errorf("melds = %v, want the declared kong", g2.Players[0].Melds)
	}
}

func TestSeqAdvancesPerTransition(t *testing.T) {
	t.Parallel()

	ts := &tileset{}
	hand0 := ts.tiles(wind(1), tiao(2), tiao(5))
	g := playingState(0, [NumSeats][]tiles.Tile{
		hand0, junkHand(ts), junkHand(ts), junkHand(ts),
	}, ts.tiles(dragon(1)))

	var discardID int
	for _, tl := range hand0 {
		if tl.Kind == wind(1) {
			discardID = tl.ID
		}
	}

	g2, _ := g.Discard(0, discardID)
	if g2.Seq != g.Seq+1 {
		t.Errorf("seq = %d, want %d", g2.Seq, g.Seq+1)
	}
	g3, _ := g2.Advance()
	if g3.Seq != g2.Seq+1 {
		t.Errorf("seq = %d, want %d", g3.Seq, g2.Seq+1)
	}

	// Rejected commands do not burn sequence numbers.
	if bad, err := g3.Discard(0, 12345); err == nil || bad.Seq != g3.Seq {
		t.Errorf("rejected command changed seq: %d -> %d", g3.Seq, bad.Seq)
	}
}
