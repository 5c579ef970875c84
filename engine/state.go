package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidState marks a caller contract violation: a structurally malformed
// snapshot that the AI layer refuses to interpret. It is never coerced into
// a default.
var ErrInvalidState = errors.New("invalid game state")

// RoundRules holds the fixed deal shape of a round.
type RoundRules struct {
	CardsPerSeat int
	KittySize    int
}

// DefaultRoundRules returns the standard four-player, two-deck deal:
// 25 cards per seat with an 8-card kitty.
func DefaultRoundRules() RoundRules {
	return RoundRules{CardsPerSeat: 25, KittySize: 8}
}

// GameState is the authoritative snapshot handed to the AI layer each turn.
// It is treated as read-only everywhere: every component derives its outputs
// fresh from this value and never mutates it.
type GameState struct {
	Trump     TrumpInfo
	Rules     RoundRules
	Declarer  Seat // seat whose team declared trump (the defending team)
	Completed []Trick
	Current   *Trick // in-progress trick, nil between tricks
	Acting    Seat   // seat making the current decision
	Hand      []Card // acting seat's own hand
}

// Validate checks the structural contract the AI layer depends on. It walks
// every observed play exactly once; a duplicate physical card anywhere in the
// visible record is a violation.
func (g *GameState) Validate() error {
	if !g.Acting.Valid() {
		return fmt.Errorf("%w: acting seat %d", ErrInvalidState, g.Acting)
	}
	if !g.Declarer.Valid() {
		return fmt.Errorf("%w: declarer seat %d", ErrInvalidState, g.Declarer)
	}
	if g.Trump.Rank > RankAce {
		return fmt.Errorf("%w: trump rank %d", ErrInvalidState, g.Trump.Rank)
	}
	if g.Trump.Suit > SuitNone {
		return fmt.Errorf("%w: trump suit %d", ErrInvalidState, g.Trump.Suit)
	}
	if g.Rules.CardsPerSeat <= 0 {
		return fmt.Errorf("%w: cards per seat %d", ErrInvalidState, g.Rules.CardsPerSeat)
	}
	if len(g.Hand) > g.Rules.CardsPerSeat {
		return fmt.Errorf("%w: hand of %d exceeds deal of %d",
			ErrInvalidState, len(g.Hand), g.Rules.CardsPerSeat)
	}

	var seen [NumCards]bool
	mark := func(c Card) error {
		if int(c) >= NumCards {
			return fmt.Errorf("%w: card index %d out of range", ErrInvalidState, c)
		}
		if seen[c] {
			return fmt.Errorf("%w: card %v observed twice", ErrInvalidState, c)
		}
		seen[c] = true
		return nil
	}

	checkTrick := func(tr Trick, inProgress bool) error {
		if len(tr.Plays) == 0 || len(tr.Plays) > NumSeats {
			return fmt.Errorf("%w: trick with %d plays", ErrInvalidState, len(tr.Plays))
		}
		if !inProgress && !tr.Complete() {
			return fmt.Errorf("%w: completed trick with %d plays", ErrInvalidState, len(tr.Plays))
		}
		leadLen := len(tr.Plays[0].Cards)
		if leadLen == 0 {
			return fmt.Errorf("%w: empty leading combo", ErrInvalidState)
		}
		for _, p := range tr.Plays {
			if !p.Seat.Valid() {
				return fmt.Errorf("%w: play by seat %d", ErrInvalidState, p.Seat)
			}
			if len(p.Cards) != leadLen {
				return fmt.Errorf("%w: play of %d cards against lead of %d",
					ErrInvalidState, len(p.Cards), leadLen)
			}
			for _, c := range p.Cards {
				if err := mark(c); err != nil {
					return err
				}
			}
		}
		return nil
	}

	for _, tr := range g.Completed {
		if err := checkTrick(tr, false); err != nil {
			return err
		}
	}
	if g.Current != nil {
		if err := checkTrick(*g.Current, true); err != nil {
			return err
		}
	}
	for _, c := range g.Hand {
		if err := mark(c); err != nil {
			return err
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Dealing (simulator support; the decision core never deals)
// ---------------------------------------------------------------------------

// xorshift64 keeps the deal self-contained and reproducible from a seed.
type xorshift64 uint64

func (x *xorshift64) next() uint64 {
	v := uint64(*x)
	v ^= v << 13
	v ^= v >> 7
	v ^= v << 17
	*x = xorshift64(v)
	return v
}

// Deal shuffles the full shoe with the given seed and returns the four hands
// plus the kitty, per rules.
func Deal(seed uint64, rules RoundRules) (hands [NumSeats][]Card, kitty []Card) {
	rng := xorshift64(seed)
	if rng == 0 {
		rng = 1 // xorshift can't start at 0
	}

	shoe := make([]Card, NumCards)
	for i := range shoe {
		shoe[i] = CardFromIndex(i)
	}
	for i := len(shoe) - 1; i > 0; i-- {
		j := int(rng.next() % uint64(i+1))
		shoe[i], shoe[j] = shoe[j], shoe[i]
	}

	off := 0
	for s := 0; s < NumSeats; s++ {
		hands[s] = append([]Card(nil), shoe[off:off+rules.CardsPerSeat]...)
		off += rules.CardsPerSeat
	}
	kitty = append([]Card(nil), shoe[off:]...)
	return hands, kitty
}
