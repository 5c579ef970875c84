package engine

import "testing"

// TestIsTrump covers the three trump sources: jokers, the trump rank in any
// suit, and the declared trump suit.
func TestIsTrump(t *testing.T) {
	trump := TrumpInfo{Rank: RankTwo, Suit: SuitHearts}
	cases := []struct {
		card Card
		want bool
	}{
		{NewJoker(JokerBig, 0), true},
		{NewJoker(JokerSmall, 1), true},
		{NewCard(SuitSpades, RankTwo, 0), true},  // trump rank, off suit
		{NewCard(SuitHearts, RankTwo, 0), true},  // trump rank, trump suit
		{NewCard(SuitHearts, RankNine, 0), true}, // trump suit
		{NewCard(SuitSpades, RankAce, 0), false},
		{NewCard(SuitDiamonds, RankKing, 1), false},
	}
	for _, tc := range cases {
		if got := trump.IsTrump(tc.card); got != tc.want {
			t.Errorf("IsTrump(%v) = %v, want %v", tc.card, got, tc.want)
		}
	}
}

// TestIsTrumpRankOnly verifies the no-trump-suit declaration: only jokers and
// trump-rank cards are trump.
func TestIsTrumpRankOnly(t *testing.T) {
	trump := TrumpInfo{Rank: RankSeven, Suit: SuitNone}
	if !trump.IsTrump(NewCard(SuitClubs, RankSeven, 0)) {
		t.Error("trump rank must be trump without a declared suit")
	}
	if trump.IsTrump(NewCard(SuitClubs, RankEight, 0)) {
		t.Error("no suit is trump in a rank-only declaration")
	}
	if !trump.IsTrump(NewJoker(JokerSmall, 0)) {
		t.Error("jokers are always trump")
	}
}

// TestTotalTrumpCards verifies the shoe-wide trump count for both declaration
// shapes: 36 with a trump suit, 12 rank-only.
func TestTotalTrumpCards(t *testing.T) {
	withSuit := TrumpInfo{Rank: RankTwo, Suit: SuitHearts}
	if got := withSuit.TotalTrumpCards(); got != 36 {
		t.Errorf("TotalTrumpCards with suit = %d, want 36", got)
	}
	rankOnly := TrumpInfo{Rank: RankTwo, Suit: SuitNone}
	if got := rankOnly.TotalTrumpCards(); got != 12 {
		t.Errorf("TotalTrumpCards rank-only = %d, want 12", got)
	}

	// Cross-check against a full scan of the shoe.
	count := 0
	for i := 0; i < NumCards; i++ {
		if withSuit.IsTrump(CardFromIndex(i)) {
			count++
		}
	}
	if count != withSuit.TotalTrumpCards() {
		t.Errorf("shoe scan found %d trump, TotalTrumpCards says %d",
			count, withSuit.TotalTrumpCards())
	}
}

// TestTrumpStrengthOrdering verifies big joker > small joker > trump rank in
// suit > trump rank off suit > trump suit by rank.
func TestTrumpStrengthOrdering(t *testing.T) {
	trump := TrumpInfo{Rank: RankTwo, Suit: SuitHearts}
	ordered := []Card{
		NewCard(SuitHearts, RankThree, 0), // lowest trump-suit card
		NewCard(SuitHearts, RankAce, 0),
		NewCard(SuitSpades, RankTwo, 0), // off-suit trump rank
		NewCard(SuitHearts, RankTwo, 0), // trump rank in trump suit
		NewJoker(JokerSmall, 0),
		NewJoker(JokerBig, 0),
	}
	for i := 1; i < len(ordered); i++ {
		lo := trump.TrumpStrength(ordered[i-1])
		hi := trump.TrumpStrength(ordered[i])
		if lo >= hi {
			t.Errorf("strength(%v)=%d should be below strength(%v)=%d",
				ordered[i-1], lo, ordered[i], hi)
		}
	}
	if trump.TrumpStrength(NewCard(SuitClubs, RankAce, 0)) != -1 {
		t.Error("non-trump card must report strength -1")
	}
	// Off-suit trump-rank cards of different suits tie.
	s := trump.TrumpStrength(NewCard(SuitSpades, RankTwo, 0))
	d := trump.TrumpStrength(NewCard(SuitDiamonds, RankTwo, 1))
	if s != d {
		t.Errorf("off-suit trump ranks should tie: %d vs %d", s, d)
	}
}
