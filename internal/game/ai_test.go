package game

import (
	"testing"
)

func TestChooseDiscardPrefersLoneHonor(t *testing.T) {
	t.Parallel()

	ai := NewAIEngine()

	// The lone wind goes before anything numeric; the dragon pair is safe
	// because it is not a singleton.
	hand := tileSeq(wan(1), wan(2), wind(3), dragon(1), dragon(1))
	got := ai.ChooseDiscard(hand)
	if got.Kind != wind(3) {
		t.Errorf("ChooseDiscard = %v, want the lone West wind", got)
	}
}

func TestChooseDiscardPrefersIsolatedNumeric(t *testing.T) {
	t.Parallel()

	ai := NewAIEngine()

	// No lone honors. Wan 1 and 2 protect each other, the Tiao pair
	// protects itself, so the Tong 5 is the dead tile.
	hand := tileSeq(wan(1), wan(2), tong(5), tiao(9), tiao(9), wind(1), wind(1))
	got := ai.ChooseDiscard(hand)
	if got.Kind != tong(5) {
		t.Errorf("ChooseDiscard = %v, want the isolated Tong-5", got)
	}
}

func TestChooseDiscardDuplicatesAreNotIsolated(t *testing.T) {
	t.Parallel()

	ai := NewAIEngine()

	// The doubled Tong 5 counts as its own neighbour and the wans back
	// each other up, so nothing is isolated and the first tile in sort
	// order goes.
	hand := tileSeq(wan(1), wan(2), tong(5), tong(5), wind(1), wind(1))
	got := ai.ChooseDiscard(hand)
	if got.Kind != wan(1) {
		t.Errorf("ChooseDiscard = %v, want the first tile in sort order", got)
	}
}

func TestChooseDiscardFirstInTierWins(t *testing.T) {
	t.Parallel()

	ai := NewAIEngine()

	// Two lone honors: the wind sorts before the dragon and goes first.
	hand := tileSeq(wan(1), wan(2), wan(3), dragon(3), wind(2))
	got := ai.ChooseDiscard(hand)
	if got.Kind != wind(2) {
		t.Errorf("ChooseDiscard = %v, want the wind ahead of the dragon", got)
	}
}

func TestDecideTurnDeclaresWin(t *testing.T) {
	t.Parallel()

	ai := NewAIEngine()
	p := PlayerState{Hand: tileSeq(wan(1), wan(1), dragon(2), dragon(2), dragon(2))}

	d := ai.DecideTurn(p)
	if d.Action != ActionSelfDrawWin {
		t.Errorf("decision = %+v, want self-draw win", d)
	}
}

func TestDecideTurnDeclaresConcealedKong(t *testing.T) {
	t.Parallel()

	ai := NewAIEngine()
	p := PlayerState{Hand: tileSeq(
		tong(2), tong(2), tong(2), tong(2),
		wan(1), wan(5), wan(9), wind(1),
	)}

	d := ai.DecideTurn(p)
	if d.Action != ActionConcealedKong || d.KongKind != tong(2) {
		t.Errorf("decision = %+v, want concealed kong of Tong-2", d)
	}
}

func TestDecideTurnFallsBackToDiscard(t *testing.T) {
	t.Parallel()

	ai := NewAIEngine()
	hand := tileSeq(wan(1), wan(2), wan(6), wind(4), wind(4))
	p := PlayerState{Hand: hand}

	d := ai.DecideTurn(p)
	if d.Action != ActionDiscard {
		t.Fatalf("decision = %+v, want a discard", d)
	}
	held := false
	for _, tl := range hand {
		if tl.ID == d.TileID {
			held = true
		}
	}
	if !held {
		t.Errorf("chosen tile id %d is not in the hand", d.TileID)
	}
}

func TestRespondToClaim(t *testing.T) {
	t.Parallel()

	ai := NewAIEngine()

	tests := []struct {
		name   string
		claims []ClaimKind
		want   ClaimKind
		wantOK bool
	}{
		{"win over kong", []ClaimKind{ClaimWin, ClaimKong}, ClaimWin, true},
		{"kong over pung", []ClaimKind{ClaimKong, ClaimPung}, ClaimKong, true},
		{"pung over chow", []ClaimKind{ClaimPung, ClaimChow}, ClaimPung, true},
		{"lone chow taken", []ClaimKind{ClaimChow}, ClaimChow, true},
		{"nothing to claim", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ai.RespondToClaim(tt.claims)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("RespondToClaim(%v) = %v, want %v", tt.claims, got, tt.want)
			}
		})
	}
}
