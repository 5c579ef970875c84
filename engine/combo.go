package engine

import "sort"

// ComboType classifies a group of cards played as one trick contribution.
type ComboType uint8

const (
	ComboInvalid ComboType = iota
	ComboSingle
	ComboPair
	ComboTractor // consecutive pairs in one suit group
)

func (ct ComboType) String() string {
	switch ct {
	case ComboSingle:
		return "single"
	case ComboPair:
		return "pair"
	case ComboTractor:
		return "tractor"
	default:
		return "invalid"
	}
}

// ClassifyCombo determines the combo type of cards under the given trump.
// The cards must all belong to one suit group (one physical suit, or all
// trump) to form anything other than ComboInvalid.
func ClassifyCombo(cards []Card, t TrumpInfo) ComboType {
	switch {
	case len(cards) == 0:
		return ComboInvalid
	case len(cards) == 1:
		return ComboSingle
	}
	if !sameGroup(cards, t) {
		return ComboInvalid
	}
	if len(cards) == 2 {
		if cards[0].SameIdentity(cards[1]) {
			return ComboPair
		}
		return ComboInvalid
	}
	if len(cards)%2 != 0 {
		return ComboInvalid
	}
	if isTractor(cards, t) {
		return ComboTractor
	}
	return ComboInvalid
}

// sameGroup reports whether all cards share one suit group: all trump, or
// all the same physical non-trump suit.
func sameGroup(cards []Card, t TrumpInfo) bool {
	if t.IsTrump(cards[0]) {
		for _, c := range cards[1:] {
			if !t.IsTrump(c) {
				return false
			}
		}
		return true
	}
	suit := cards[0].Suit()
	for _, c := range cards[1:] {
		if t.IsTrump(c) || c.Suit() != suit {
			return false
		}
	}
	return true
}

// isTractor checks for consecutive identical pairs. Caller has verified the
// cards share a suit group and the count is even and >= 4.
func isTractor(cards []Card, t TrumpInfo) bool {
	sorted := append([]Card(nil), cards...)
	sort.Slice(sorted, func(i, j int) bool {
		return unitStrength(sorted[i], t) < unitStrength(sorted[j], t)
	})
	prev := -2
	for i := 0; i < len(sorted); i += 2 {
		if !sorted[i].SameIdentity(sorted[i+1]) {
			return false
		}
		s := unitStrength(sorted[i], t)
		if prev >= 0 && s != prev+1 {
			return false
		}
		prev = s
	}
	return true
}

// unitStrength orders cards within their own suit group: trump cards by
// TrumpStrength, non-trump cards by rank.
func unitStrength(c Card, t TrumpInfo) int {
	if t.IsTrump(c) {
		return t.TrumpStrength(c)
	}
	return int(c.Rank())
}

// InGroup reports whether c belongs to the led suit group: the trump group
// when the lead was trump, otherwise the led physical suit (trump cards are
// never part of a non-trump led group).
func InGroup(c Card, ledSuit Suit, ledTrump bool, t TrumpInfo) bool {
	if ledTrump {
		return t.IsTrump(c)
	}
	return !t.IsTrump(c) && c.Suit() == ledSuit
}

// GroupCards returns the cards of hand that belong to the led suit group.
func GroupCards(hand []Card, ledSuit Suit, ledTrump bool, t TrumpInfo) []Card {
	var out []Card
	for _, c := range hand {
		if InGroup(c, ledSuit, ledTrump, t) {
			out = append(out, c)
		}
	}
	return out
}

// LegalFollows enumerates legal responses to a lead for the simulator.
// A follower holding cards of the led group must play from it; with too few
// group cards the remainder is filled with the lowest off-group cards. The
// enumeration is deliberately modest (singles and pairs); it is a playing
// aid, not an exhaustive move generator.
func LegalFollows(hand []Card, lead []Card, t TrumpInfo) [][]Card {
	if len(lead) == 0 || len(hand) < len(lead) {
		return nil
	}
	ledTrump := t.IsTrump(lead[0])
	ledSuit := lead[0].Suit()
	group := GroupCards(hand, ledSuit, ledTrump, t)

	switch ClassifyCombo(lead, t) {
	case ComboSingle:
		if len(group) > 0 {
			return singletons(group)
		}
		return singletons(hand)

	case ComboPair:
		if pairs := identicalPairs(group); len(pairs) > 0 {
			return pairs
		}
		return [][]Card{fillLowest(hand, group, 2, t)}

	default:
		// Tractors and anything else: follow with the lowest legal filler.
		return [][]Card{fillLowest(hand, group, len(lead), t)}
	}
}

func singletons(cards []Card) [][]Card {
	out := make([][]Card, 0, len(cards))
	for _, c := range cards {
		out = append(out, []Card{c})
	}
	return out
}

func identicalPairs(cards []Card) [][]Card {
	var out [][]Card
	for i := 0; i < len(cards); i++ {
		for j := i + 1; j < len(cards); j++ {
			if cards[i].SameIdentity(cards[j]) {
				out = append(out, []Card{cards[i], cards[j]})
			}
		}
	}
	return out
}

// fillLowest plays every held group card (up to n) and pads with the lowest
// off-group cards from hand.
func fillLowest(hand, group []Card, n int, t TrumpInfo) []Card {
	out := append([]Card(nil), group...)
	if len(out) > n {
		sort.Slice(out, func(i, j int) bool {
			return unitStrength(out[i], t) < unitStrength(out[j], t)
		})
		out = out[:n]
	}
	if len(out) < n {
		rest := make([]Card, 0, len(hand))
		for _, c := range hand {
			if !containsCard(out, c) && !containsCard(group, c) {
				rest = append(rest, c)
			}
		}
		sort.Slice(rest, func(i, j int) bool {
			return fillerOrder(rest[i], t) < fillerOrder(rest[j], t)
		})
		out = append(out, rest[:n-len(out)]...)
	}
	return out
}

// fillerOrder prefers discarding plain low cards before points before trump.
func fillerOrder(c Card, t TrumpInfo) int {
	v := int(c.Rank())
	if c.IsJoker() {
		v = 40
	}
	if c.Points() > 0 {
		v += 20
	}
	if t.IsTrump(c) {
		v += 60
	}
	return v
}

func containsCard(cards []Card, c Card) bool {
	for _, x := range cards {
		if x == c {
			return true
		}
	}
	return false
}
