package ai

import (
	"fmt"

	engine "github.com/ejfn/tractor-go/engine"
)

// PlayerMemory is everything the engine has learned about one seat from its
// observed plays.
type PlayerMemory struct {
	Seat engine.Seat

	// KnownCards holds the seat's publicly observed cards, in play order.
	// Only ProvenancePlayed entries are ever recorded here; hand-holding
	// inference is the probability table's job.
	KnownCards []KnownCard

	// SuitVoids is monotone: once a suit is proven void it stays void for
	// the rest of the round.
	SuitVoids [engine.NumSuits]bool

	// TrumpVoid flips false→true only.
	TrumpVoid bool

	// EstimatedHandSize counts down from the deal as the seat plays.
	EstimatedHandSize int

	// PlayPatterns counts plays by situation and card class, modelling the
	// seat's tendencies (e.g. eagerness to commit trump).
	PlayPatterns [NumSituations][NumCardClasses]int

	// PointCardsProbability is the empirical rate of point-card plays by
	// this seat; a weak prior for future point contribution. Neutral 0
	// before the seat has played.
	PointCardsProbability float64
}

// VoidIn reports whether the seat is proven void in the given suit.
func (pm *PlayerMemory) VoidIn(s engine.Suit) bool {
	return s < engine.NumSuits && pm.SuitVoids[s]
}

// VoidCount counts recorded suit voids (trump void excluded).
func (pm *PlayerMemory) VoidCount() int {
	n := 0
	for _, v := range pm.SuitVoids {
		if v {
			n++
		}
	}
	return n
}

// hasAnyVoid reports whether any suit void is recorded.
func (pm *PlayerMemory) hasAnyVoid() bool { return pm.VoidCount() > 0 }

// CardMemory is the root belief aggregate, rebuilt from the authoritative
// snapshot on every decision. Two builds from the same snapshot are
// identical: there is no hidden randomness anywhere below.
type CardMemory struct {
	Acting engine.Seat
	Trump  engine.TrumpInfo

	// CardsPerSeat is the deal size the countdown estimates started from.
	CardsPerSeat int

	// PlayedCards lists every observed card in table order.
	PlayedCards []engine.Card

	TrumpCardsPlayed int
	// PointCardsPlayed counts point-carrying cards; PointsPlayed sums their
	// values.
	PointCardsPlayed int
	PointsPlayed     int

	// SuitDistribution counts played cards per physical suit. Trump-suit
	// cards stay under their physical suit; jokers have none and are not
	// counted here.
	SuitDistribution [engine.NumSuits]int

	// TricksAnalyzed counts fully completed tricks only; the in-progress
	// trick's plays are folded into every other counter.
	TricksAnalyzed int

	Players [engine.NumSeats]PlayerMemory

	// Probabilities[i][seat] is the chance that unseen card i sits in
	// seat's hand. Rows for observed cards (played, or in the acting
	// seat's own hand) are all zero with Observed set; every other row
	// sums to 1 within floating tolerance.
	Probabilities [engine.NumCards][engine.NumSeats]float64
	Observed      [engine.NumCards]bool

	// DegenerateCards lists unseen cards whose void exclusions ruled out
	// every seat — a contradiction under valid inputs. The distribution
	// falls back to uniform and the card is flagged here for diagnostics.
	DegenerateCards []engine.Card
}

// NewCardMemory rebuilds the full belief state from the snapshot. The
// snapshot is validated first; a malformed one is reported, never coerced.
func NewCardMemory(g *engine.GameState) (*CardMemory, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil snapshot", engine.ErrInvalidState)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}

	m := &CardMemory{
		Acting:         g.Acting,
		Trump:          g.Trump,
		CardsPerSeat:   g.Rules.CardsPerSeat,
		TricksAnalyzed: len(g.Completed),
	}
	for s := engine.Seat(0); s < engine.NumSeats; s++ {
		m.Players[s] = PlayerMemory{
			Seat:              s,
			EstimatedHandSize: g.Rules.CardsPerSeat,
		}
	}

	for _, ev := range PlayEvents(g) {
		m.recordPlay(ev)
	}

	for s := range m.Players {
		pm := &m.Players[s]
		if played := len(pm.KnownCards); played > 0 {
			points := 0
			for _, kc := range pm.KnownCards {
				if kc.Card.Points() > 0 {
					points++
				}
			}
			pm.PointCardsProbability = float64(points) / float64(played)
		}
	}

	m.fillProbabilities(g)
	return m, nil
}

// recordPlay folds a single card event into every counter and inference.
func (m *CardMemory) recordPlay(ev PlayEvent) {
	c := ev.Card
	m.PlayedCards = append(m.PlayedCards, c)
	m.Observed[c.Index()] = true

	if m.Trump.IsTrump(c) {
		m.TrumpCardsPlayed++
	}
	if pts := c.Points(); pts > 0 {
		m.PointCardsPlayed++
		m.PointsPlayed += pts
	}
	if suit := c.Suit(); suit < engine.NumSuits {
		m.SuitDistribution[suit]++
	}

	pm := &m.Players[ev.Seat]
	pm.KnownCards = append(pm.KnownCards, KnownCard{Card: c, Provenance: ProvenancePlayed})
	if pm.EstimatedHandSize > 0 {
		pm.EstimatedHandSize--
	}
	pm.PlayPatterns[classifySituation(ev.Leading, ev.LeadIsTrump)][classifyCard(c, m.Trump)]++

	if ev.Leading {
		return
	}
	if ev.LeadIsTrump {
		// A non-trump card against a trump lead proves the seat holds no
		// trump at all.
		if !m.Trump.IsTrump(c) {
			pm.TrumpVoid = true
		}
		return
	}
	// Non-trump lead: any card outside the led suit group proves a void in
	// the led suit. This deliberately includes trump-rank-in-another-suit
	// and jokers: playing trump over a non-trump lead is only legal when
	// the led suit is exhausted.
	if !engine.InGroup(c, ev.LedSuit, false, m.Trump) && ev.LedSuit < engine.NumSuits {
		pm.SuitVoids[ev.LedSuit] = true
	}
}

// fillProbabilities distributes each unseen card across the seats that could
// hold it, proportional to estimated remaining hand size, with recorded
// voids zeroed out.
func (m *CardMemory) fillProbabilities(g *engine.GameState) {
	for _, c := range g.Hand {
		m.Observed[c.Index()] = true
	}

	for i := 0; i < engine.NumCards; i++ {
		if m.Observed[i] {
			continue
		}
		c := engine.CardFromIndex(i)

		var weights [engine.NumSeats]float64
		total := 0.0
		for s := engine.Seat(0); s < engine.NumSeats; s++ {
			if s == m.Acting {
				continue // own hand is fully known
			}
			pm := &m.Players[s]
			if pm.EstimatedHandSize <= 0 {
				continue
			}
			if m.seatExcluded(pm, c) {
				continue
			}
			w := float64(pm.EstimatedHandSize)
			weights[s] = w
			total += w
		}

		if total == 0 {
			// Contradiction: every seat excluded. Fall back to uniform over
			// the seats still holding cards and flag for diagnostics.
			m.DegenerateCards = append(m.DegenerateCards, c)
			active := 0
			for s := engine.Seat(0); s < engine.NumSeats; s++ {
				if s != m.Acting && m.Players[s].EstimatedHandSize > 0 {
					active++
				}
			}
			if active == 0 {
				continue // round over; nothing can hold the card
			}
			p := 1.0 / float64(active)
			for s := engine.Seat(0); s < engine.NumSeats; s++ {
				if s != m.Acting && m.Players[s].EstimatedHandSize > 0 {
					m.Probabilities[i][s] = p
				}
			}
			continue
		}

		for s := range weights {
			if weights[s] > 0 {
				m.Probabilities[i][s] = weights[s] / total
			}
		}
	}
}

// seatExcluded applies the void record to a candidate card: a trump-void
// seat cannot hold trump, and a suit-void seat cannot hold non-trump cards
// of that suit. Trump-rank cards of a voided suit are still possible — they
// are trump, not members of the physical suit group.
func (m *CardMemory) seatExcluded(pm *PlayerMemory, c engine.Card) bool {
	if m.Trump.IsTrump(c) {
		return pm.TrumpVoid
	}
	return pm.VoidIn(c.Suit())
}

// SeatProbability returns the chance the given unseen card sits with seat.
// Observed cards report 0 for every seat.
func (m *CardMemory) SeatProbability(c engine.Card, s engine.Seat) float64 {
	if !s.Valid() || int(c) >= engine.NumCards {
		return 0
	}
	return m.Probabilities[c.Index()][s]
}

// ExpectedSuitHolding estimates how many unseen cards of the given physical
// suit (trump excluded) a seat still holds.
func (m *CardMemory) ExpectedSuitHolding(s engine.Seat, suit engine.Suit) float64 {
	total := 0.0
	for i := 0; i < engine.NumCards; i++ {
		if m.Observed[i] {
			continue
		}
		c := engine.CardFromIndex(i)
		if m.Trump.IsTrump(c) || c.Suit() != suit {
			continue
		}
		total += m.Probabilities[i][s]
	}
	return total
}

// ExpectedTrumpHolding estimates how many unseen trump cards a seat holds.
func (m *CardMemory) ExpectedTrumpHolding(s engine.Seat) float64 {
	total := 0.0
	for i := 0; i < engine.NumCards; i++ {
		if m.Observed[i] {
			continue
		}
		if !m.Trump.IsTrump(engine.CardFromIndex(i)) {
			continue
		}
		total += m.Probabilities[i][s]
	}
	return total
}

// TrumpVoidProbability estimates the chance a seat holds no trump:
// certainty once proven, otherwise decreasing in the expected trump holding.
func (m *CardMemory) TrumpVoidProbability(s engine.Seat) float64 {
	if m.Players[s].TrumpVoid {
		return 1
	}
	return 1 / (1 + m.ExpectedTrumpHolding(s))
}

// uncertainty mirrors MemoryContext.UncertaintyLevel for analyzers that work
// straight off the memory.
func (m *CardMemory) uncertainty() float64 {
	total := engine.NumSeats * m.CardsPerSeat
	if total == 0 {
		return 1
	}
	return clamp01(1 - float64(len(m.PlayedCards))/float64(total))
}

// cardsRemaining counts unplayed cards across all four hands.
func (m *CardMemory) cardsRemaining() int {
	return engine.NumSeats*m.CardsPerSeat - len(m.PlayedCards)
}

// VoidProbability estimates the chance a seat cannot follow the given suit:
// certainty for proven voids, otherwise a decreasing function of the seat's
// expected holding in that suit.
func (m *CardMemory) VoidProbability(s engine.Seat, suit engine.Suit) float64 {
	if suit >= engine.NumSuits {
		return 0
	}
	if m.Players[s].VoidIn(suit) {
		return 1
	}
	return 1 / (1 + m.ExpectedSuitHolding(s, suit))
}
