package engine

import (
	"fmt"
	"sort"
)

// Play is one seat's contribution to a trick.
type Play struct {
	Seat  Seat
	Cards []Card
}

// Trick is one round of play: a leading combination plus up to three follows,
// in play order.
type Trick struct {
	Plays []Play
}

// Leader returns the seat that led the trick.
func (tr Trick) Leader() Seat { return tr.Plays[0].Seat }

// LedCards returns the leading combination.
func (tr Trick) LedCards() []Card { return tr.Plays[0].Cards }

// Points sums the card points committed to the trick so far.
func (tr Trick) Points() int {
	total := 0
	for _, p := range tr.Plays {
		for _, c := range p.Cards {
			total += c.Points()
		}
	}
	return total
}

// Complete reports whether all four seats have played.
func (tr Trick) Complete() bool { return len(tr.Plays) == NumSeats }

// Winner returns the seat currently winning the trick. A later play takes
// over only when it strictly outranks the incumbent: matching combo shape,
// single suit group, higher top unit (trump beating any non-trump).
func (tr Trick) Winner(t TrumpInfo) (Seat, error) {
	if len(tr.Plays) == 0 {
		return 0, fmt.Errorf("%w: trick has no plays", ErrInvalidState)
	}
	lead := tr.Plays[0]
	if len(lead.Cards) == 0 {
		return 0, fmt.Errorf("%w: empty leading combo", ErrInvalidState)
	}
	leadType := ClassifyCombo(lead.Cards, t)
	ledTrump := t.IsTrump(lead.Cards[0])
	ledSuit := lead.Cards[0].Suit()

	best := lead.Seat
	bestPower := playPower(lead.Cards, leadType, ledSuit, ledTrump, t)
	for _, p := range tr.Plays[1:] {
		if len(p.Cards) != len(lead.Cards) {
			return 0, fmt.Errorf("%w: play size %d does not match lead size %d",
				ErrInvalidState, len(p.Cards), len(lead.Cards))
		}
		power := playPower(p.Cards, leadType, ledSuit, ledTrump, t)
		if power > bestPower {
			best = p.Seat
			bestPower = power
		}
	}
	return best, nil
}

// playPower scores a play's ability to win the trick, or -1 when it cannot
// (wrong shape, mixed groups, or off-suit non-trump).
func playPower(cards []Card, leadType ComboType, ledSuit Suit, ledTrump bool, t TrumpInfo) int {
	if ClassifyCombo(cards, t) != leadType {
		return -1
	}
	top := topUnit(cards, t)
	return t.comparePower(top, ledSuit, ledTrump)
}

// topUnit returns the defining card of a well-formed combo: the highest card
// for a single, the pair card for a pair, the highest pair for a tractor.
func topUnit(cards []Card, t TrumpInfo) Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if unitStrength(c, t) > unitStrength(best, t) {
			best = c
		}
	}
	return best
}

// SortByStrength orders cards ascending within their suit groups, trump last.
// Used by callers that want a stable "weakest first" view of a hand.
func SortByStrength(cards []Card, t TrumpInfo) {
	sort.Slice(cards, func(i, j int) bool {
		pi, pj := handOrder(cards[i], t), handOrder(cards[j], t)
		if pi != pj {
			return pi < pj
		}
		return cards[i] < cards[j]
	})
}

func handOrder(c Card, t TrumpInfo) int {
	if t.IsTrump(c) {
		return 100 + t.TrumpStrength(c)
	}
	return int(c.Suit())*13 + int(c.Rank())
}
