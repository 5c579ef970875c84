package ai

import engine "github.com/ejfn/tractor-go/engine"

// MemoryContext condenses a CardMemory into the scalar signals the strategy
// layer consumes.
type MemoryContext struct {
	// CardsRemaining counts cards still unplayed across all four hands.
	CardsRemaining int
	// KnownCards counts cards observed on the table so far.
	KnownCards int
	// UncertaintyLevel is high when little has been observed relative to
	// what remains, in [0,1].
	UncertaintyLevel float64
	// TrumpExhaustion is the fraction of the shoe's trump already played,
	// in [0,1].
	TrumpExhaustion float64
	// OpponentHandStrength estimates each non-acting seat's hand strength
	// in [0,1]; the acting seat's own entry stays 0.
	OpponentHandStrength [engine.NumSeats]float64
}

// MemoryStrategy is the discrete recommendation distilled from the belief
// state and its context.
type MemoryStrategy struct {
	// ShouldPlayTrump is set when trump is scarce enough to commit safely,
	// or the acting seat holds a decisive share of what remains.
	ShouldPlayTrump bool
	// RiskLevel rises with confidence: more observed information and fewer
	// cards left justify bolder plays. In [0,1].
	RiskLevel float64
	// EndgameOptimal is set when few cards remain and uncertainty is low
	// enough for near-perfect planning.
	EndgameOptimal bool
	// SuitExhaustionAdvantage is set when an opponent void exists that the
	// acting hand can press.
	SuitExhaustionAdvantage bool
	// ExpectedOpponentStrength averages the two opposing seats' strength.
	ExpectedOpponentStrength float64
}

// Strategy thresholds.
const (
	trumpExhaustionSafe  = 0.7 // commit trump freely beyond this
	endgameCardsLeft     = 10
	endgameUncertainty   = 0.1
	voidStrengthPenalty  = 0.08
	strengthResolvedPart = 0.5
	strengthPointPart    = 0.3
	strengthBaseline     = 0.3
)

// NewMemoryContext derives the aggregate signals from a built memory and its
// source snapshot.
func NewMemoryContext(m *CardMemory, g *engine.GameState) MemoryContext {
	totalInPlay := engine.NumSeats * g.Rules.CardsPerSeat
	known := len(m.PlayedCards)

	ctx := MemoryContext{
		CardsRemaining: totalInPlay - known,
		KnownCards:     known,
	}
	if totalInPlay > 0 {
		ctx.UncertaintyLevel = clamp01(1 - float64(known)/float64(totalInPlay))
	}
	if total := m.Trump.TotalTrumpCards(); total > 0 {
		ctx.TrumpExhaustion = clamp01(float64(m.TrumpCardsPlayed) / float64(total))
	}

	for s := engine.Seat(0); s < engine.NumSeats; s++ {
		if s == m.Acting {
			continue
		}
		ctx.OpponentHandStrength[s] = seatStrength(&m.Players[s], g.Rules.CardsPerSeat)
	}
	return ctx
}

// seatStrength blends how resolved the hand is (fewer cards left means more
// is knowable), the seat's empirical point-play rate, and a penalty per
// recorded void — a void-laden hand has fewer ways to win tricks.
func seatStrength(pm *PlayerMemory, dealt int) float64 {
	resolved := 0.0
	if dealt > 0 {
		resolved = 1 - float64(pm.EstimatedHandSize)/float64(dealt)
	}
	voids := pm.VoidCount()
	if pm.TrumpVoid {
		voids++
	}
	s := strengthBaseline +
		strengthResolvedPart*resolved +
		strengthPointPart*pm.PointCardsProbability -
		voidStrengthPenalty*float64(voids)
	return clamp01(s)
}

// NewMemoryStrategy converts the context into a discrete stance for the
// acting seat.
func NewMemoryStrategy(m *CardMemory, ctx MemoryContext, g *engine.GameState) MemoryStrategy {
	st := MemoryStrategy{}

	ownTrump := 0
	for _, c := range g.Hand {
		if m.Trump.IsTrump(c) {
			ownTrump++
		}
	}
	outstanding := m.Trump.TotalTrumpCards() - m.TrumpCardsPlayed - ownTrump
	if outstanding < 0 {
		outstanding = 0
	}
	st.ShouldPlayTrump = ctx.TrumpExhaustion > trumpExhaustionSafe || ownTrump > outstanding

	totalInPlay := engine.NumSeats * g.Rules.CardsPerSeat
	depth := 0.0
	if totalInPlay > 0 {
		depth = 1 - float64(ctx.CardsRemaining)/float64(totalInPlay)
	}
	st.RiskLevel = clamp01(0.3 + 0.6*(1-ctx.UncertaintyLevel) + 0.2*depth)

	st.EndgameOptimal = ctx.CardsRemaining < endgameCardsLeft &&
		ctx.UncertaintyLevel < endgameUncertainty

	st.SuitExhaustionAdvantage = m.exploitableVoid(g.Hand)

	opp := 0.0
	for s := engine.Seat(0); s < engine.NumSeats; s++ {
		if s != m.Acting && !engine.SameTeam(s, m.Acting) {
			opp += ctx.OpponentHandStrength[s]
		}
	}
	st.ExpectedOpponentStrength = opp / 2
	return st
}

// exploitableVoid reports whether some opposing seat has a recorded suit
// void that the acting hand can actually press (it holds cards of that
// suit to lead).
func (m *CardMemory) exploitableVoid(hand []engine.Card) bool {
	for s := engine.Seat(0); s < engine.NumSeats; s++ {
		if s == m.Acting || engine.SameTeam(s, m.Acting) {
			continue
		}
		pm := &m.Players[s]
		if !pm.hasAnyVoid() {
			continue
		}
		for suit := engine.Suit(0); suit < engine.NumSuits; suit++ {
			if !pm.SuitVoids[suit] {
				continue
			}
			for _, c := range hand {
				if !m.Trump.IsTrump(c) && c.Suit() == suit {
					return true
				}
			}
		}
	}
	return false
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
