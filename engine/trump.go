package engine

// TrumpInfo holds the declared trump for the round. Suit may be SuitNone
// ("rank-only" trump), in which case only jokers and trump-rank cards are
// trump.
type TrumpInfo struct {
	Rank Rank
	Suit Suit
}

// HasTrumpSuit reports whether a trump suit was declared.
func (t TrumpInfo) HasTrumpSuit() bool { return t.Suit != SuitNone }

// IsTrump reports whether c is trump under this declaration: any joker,
// any card of the trump rank, or any card of the declared trump suit.
func (t TrumpInfo) IsTrump(c Card) bool {
	if c.IsJoker() {
		return true
	}
	if c.Rank() == t.Rank {
		return true
	}
	return t.HasTrumpSuit() && c.Suit() == t.Suit
}

// TotalTrumpCards returns how many cards of the shoe are trump: per deck,
// 2 jokers + 4 trump-rank cards, plus the 12 remaining trump-suit cards when
// a suit was declared. Doubled for the two-deck shoe.
func (t TrumpInfo) TotalTrumpCards() int {
	perDeck := 2 + NumSuits
	if t.HasTrumpSuit() {
		perDeck += 12
	}
	return perDeck * NumDecks
}

// Trump strength tiers, above any plain trump-suit rank (0-12).
const (
	strengthTrumpSuitRank = 20 // trump rank in the declared trump suit
	strengthTrumpOffRank  = 19 // trump rank in an off suit
	strengthSmallJoker    = 21
	strengthBigJoker      = 22
)

// TrumpStrength returns the relative strength of a trump card within the
// trump group. Calling it with a non-trump card returns -1.
//
// Ordering: big joker > small joker > trump rank in the trump suit > trump
// rank off-suit > trump-suit cards by rank. Off-suit trump-rank cards of
// different suits tie; ties are broken in favor of the earlier play by the
// trick comparison (a later play must be strictly stronger to take over).
func (t TrumpInfo) TrumpStrength(c Card) int {
	switch c.Joker() {
	case JokerBig:
		return strengthBigJoker
	case JokerSmall:
		return strengthSmallJoker
	}
	if c.Rank() == t.Rank {
		if t.HasTrumpSuit() && c.Suit() == t.Suit {
			return strengthTrumpSuitRank
		}
		return strengthTrumpOffRank
	}
	if t.HasTrumpSuit() && c.Suit() == t.Suit {
		return int(c.Rank())
	}
	return -1
}

// comparePower returns the power of c when played into a trick whose led
// suit-group is ledSuit (ledTrump true when the lead itself was trump).
// Trump always outranks the led suit; off-suit non-trump cards can never win.
func (t TrumpInfo) comparePower(c Card, ledSuit Suit, ledTrump bool) int {
	if t.IsTrump(c) {
		return 100 + t.TrumpStrength(c)
	}
	if !ledTrump && c.Suit() == ledSuit {
		return int(c.Rank())
	}
	return -1
}
