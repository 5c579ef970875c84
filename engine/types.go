// Package engine implements the Tractor (Shengji) card game core: the
// two-deck shoe, trump rules, trick resolution, and combination handling.
//
// The package is dependency-free and allocation-light so that the AI layer
// (engine/ai) can rebuild its view of the game from scratch on every turn.
package engine

// Suit identifies one of the four physical suits. Jokers carry SuitNone.
type Suit uint8

const (
	SuitSpades Suit = iota
	SuitHearts
	SuitClubs
	SuitDiamonds
	SuitNone // jokers
)

// NumSuits counts the physical suits (jokers excluded).
const NumSuits = 4

func (s Suit) String() string {
	switch s {
	case SuitSpades:
		return "S"
	case SuitHearts:
		return "H"
	case SuitClubs:
		return "C"
	case SuitDiamonds:
		return "D"
	default:
		return "-"
	}
}

// Rank identifies a card rank, Two low through Ace high. Jokers carry RankNone.
type Rank uint8

const (
	RankTwo Rank = iota
	RankThree
	RankFour
	RankFive
	RankSix
	RankSeven
	RankEight
	RankNine
	RankTen
	RankJack
	RankQueen
	RankKing
	RankAce
	RankNone // jokers
)

func (r Rank) String() string {
	switch r {
	case RankTen:
		return "10"
	case RankJack:
		return "J"
	case RankQueen:
		return "Q"
	case RankKing:
		return "K"
	case RankAce:
		return "A"
	case RankNone:
		return "-"
	default:
		return string(rune('2' + uint8(r)))
	}
}

// JokerKind distinguishes the two joker cards.
type JokerKind uint8

const (
	JokerNone JokerKind = iota
	JokerSmall
	JokerBig
)

// Card is a packed canonical deck index in [0, NumCards).
//
// Per physical deck of CardsPerDeck slots: suit*13+rank covers 0-51, the
// small joker is slot 52 and the big joker slot 53. The second deck copy
// occupies the same layout offset by CardsPerDeck. The index doubles as the
// key into the AI layer's dense probability table.
type Card uint8

const (
	CardsPerDeck = 54
	NumDecks     = 2
	// NumCards is the full two-deck shoe size.
	NumCards = CardsPerDeck * NumDecks

	smallJokerSlot = 52
	bigJokerSlot   = 53
)

// NewCard constructs a suited card for the given deck copy (0 or 1).
func NewCard(suit Suit, rank Rank, deck uint8) Card {
	return Card(deck*CardsPerDeck + uint8(suit)*13 + uint8(rank))
}

// NewJoker constructs a joker card for the given deck copy (0 or 1).
func NewJoker(kind JokerKind, deck uint8) Card {
	slot := uint8(smallJokerSlot)
	if kind == JokerBig {
		slot = bigJokerSlot
	}
	return Card(deck*CardsPerDeck + slot)
}

// Index returns the canonical shoe index of the card.
func (c Card) Index() int { return int(c) }

// CardFromIndex is the inverse of Index.
func CardFromIndex(i int) Card { return Card(i) }

// Deck returns the deck copy (0 or 1) the card belongs to.
func (c Card) Deck() uint8 { return uint8(c) / CardsPerDeck }

func (c Card) slot() uint8 { return uint8(c) % CardsPerDeck }

// IsJoker reports whether the card is either joker.
func (c Card) IsJoker() bool { return c.slot() >= smallJokerSlot }

// Joker returns the joker kind, or JokerNone for suited cards.
func (c Card) Joker() JokerKind {
	switch c.slot() {
	case smallJokerSlot:
		return JokerSmall
	case bigJokerSlot:
		return JokerBig
	default:
		return JokerNone
	}
}

// Suit returns the physical suit, or SuitNone for jokers.
func (c Card) Suit() Suit {
	if c.IsJoker() {
		return SuitNone
	}
	return Suit(c.slot() / 13)
}

// Rank returns the rank, or RankNone for jokers.
func (c Card) Rank() Rank {
	if c.IsJoker() {
		return RankNone
	}
	return Rank(c.slot() % 13)
}

// Points returns the scoring value of the card: Fives are worth 5,
// Tens and Kings 10, everything else 0.
func (c Card) Points() int {
	switch c.Rank() {
	case RankFive:
		return 5
	case RankTen, RankKing:
		return 10
	default:
		return 0
	}
}

// SameIdentity reports whether two cards are the same rank and suit,
// regardless of which deck copy they came from. Pairs in Tractor are built
// from identical cards across the two decks.
func (c Card) SameIdentity(o Card) bool { return c.slot() == o.slot() }

func (c Card) String() string {
	switch c.Joker() {
	case JokerSmall:
		return "SJ"
	case JokerBig:
		return "BJ"
	}
	return c.Rank().String() + c.Suit().String()
}

// TotalPoints is the point total of the full shoe (100 per deck).
const TotalPoints = 200

// ---------------------------------------------------------------------------
// Seats and teams
// ---------------------------------------------------------------------------

// Seat is one of the four fixed player positions. Using a closed enum and
// fixed-size arrays keyed by Seat makes "seat not found" unrepresentable.
type Seat uint8

const (
	SeatSouth Seat = iota
	SeatWest
	SeatNorth
	SeatEast
)

// NumSeats is always 4 in Tractor.
const NumSeats = 4

// Valid reports whether the seat is one of the four positions.
func (s Seat) Valid() bool { return s < NumSeats }

// Next returns the seat that plays after s in trick order.
func (s Seat) Next() Seat { return (s + 1) % NumSeats }

// Partner returns the seat sitting across from s.
func (s Seat) Partner() Seat { return (s + 2) % NumSeats }

// SameTeam reports whether two seats are partners (South+North vs West+East).
func SameTeam(a, b Seat) bool { return a%2 == b%2 }

func (s Seat) String() string {
	switch s {
	case SeatSouth:
		return "South"
	case SeatWest:
		return "West"
	case SeatNorth:
		return "North"
	case SeatEast:
		return "East"
	default:
		return "?"
	}
}
