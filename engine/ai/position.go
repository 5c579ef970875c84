package ai

import (
	"fmt"

	engine "github.com/ejfn/tractor-go/engine"
)

// InfluenceLevel grades how hard the second seat should try to shape the
// trick's outcome.
type InfluenceLevel uint8

const (
	InfluenceLow InfluenceLevel = iota
	InfluenceModerate
	InfluenceHigh
)

func (l InfluenceLevel) String() string {
	switch l {
	case InfluenceLow:
		return "low"
	case InfluenceModerate:
		return "moderate"
	default:
		return "high"
	}
}

// ResponseStrategy is the second seat's discrete stance toward the trick.
type ResponseStrategy uint8

const (
	RespondSupport  ResponseStrategy = iota // stay low, partner behind us can take it
	RespondPressure                         // contest a trick worth taking
	RespondBlock                            // burn a strong lead's value
	RespondSetup                            // spend position to improve later tricks
)

func (r ResponseStrategy) String() string {
	switch r {
	case RespondSupport:
		return "support"
	case RespondPressure:
		return "pressure"
	case RespondBlock:
		return "block"
	default:
		return "setup"
	}
}

// SecondSeatAnalysis is the belief-driven read for the seat playing second.
type SecondSeatAnalysis struct {
	// ThirdSeatVoidProb and FourthSeatVoidProb estimate whether the two
	// seats still to play can follow the led group. Proven voids report 1.
	ThirdSeatVoidProb  float64
	FourthSeatVoidProb float64
	// TrumpExhaustionAdvantage is positive when observed trump exhaustion
	// outruns what the remaining seats are expected to hold.
	TrumpExhaustionAdvantage float64
	RecommendedInfluence     InfluenceLevel
	OptimalResponse          ResponseStrategy
}

// AnalyzeSecondSeat evaluates a trick with exactly the lead on the table,
// from the perspective of the memory's acting seat.
func AnalyzeSecondSeat(m *CardMemory, tr *engine.Trick) (SecondSeatAnalysis, error) {
	if err := checkPosition(m, tr, 1); err != nil {
		return SecondSeatAnalysis{}, err
	}
	lead := tr.LedCards()
	ledTrump := m.Trump.IsTrump(lead[0])
	ledSuit := lead[0].Suit()

	third := m.Acting.Next()
	fourth := third.Next()

	a := SecondSeatAnalysis{
		ThirdSeatVoidProb:        m.followVoidProbability(third, ledSuit, ledTrump),
		FourthSeatVoidProb:       m.followVoidProbability(fourth, ledSuit, ledTrump),
		TrumpExhaustionAdvantage: m.trumpExhaustionAdvantage(),
	}

	leadStrong := strongLead(lead, m.Trump)
	points := tr.Points()
	switch {
	case leadStrong && points >= 10:
		a.OptimalResponse = RespondBlock
		a.RecommendedInfluence = InfluenceHigh
	case leadStrong:
		a.OptimalResponse = RespondBlock
		a.RecommendedInfluence = InfluenceModerate
	case points >= 10:
		a.OptimalResponse = RespondPressure
		a.RecommendedInfluence = InfluenceHigh
	case a.TrumpExhaustionAdvantage > 0:
		a.OptimalResponse = RespondSetup
		a.RecommendedInfluence = InfluenceModerate
	default:
		// Weak lead, little at stake: the partner in fourth seat sees the
		// whole trick and is better placed to decide.
		a.OptimalResponse = RespondSupport
		a.RecommendedInfluence = InfluenceLow
	}
	return a, nil
}

// PredictedResponse grades how strong the fourth seat's eventual play is
// expected to be.
type PredictedResponse uint8

const (
	PredictWeak PredictedResponse = iota
	PredictModerate
	PredictStrong
)

func (p PredictedResponse) String() string {
	switch p {
	case PredictWeak:
		return "weak"
	case PredictModerate:
		return "moderate"
	default:
		return "strong"
	}
}

// FourthSeatPrediction is the third seat's forecast of the last player.
type FourthSeatPrediction struct {
	// LikelyVoid is set when the fourth seat probably cannot follow the
	// led group.
	LikelyVoid bool
	// TrumpAdvantage is set when the fourth seat plausibly still holds
	// trump worth fearing.
	TrumpAdvantage bool
	Predicted      PredictedResponse
}

// ThirdSeatAction is the discrete recommendation for the seat playing third.
type ThirdSeatAction uint8

const (
	ActionSupport      ThirdSeatAction = iota // partner is winning; feed points or stay cheap
	ActionTakeover                            // beat the current winner
	ActionConservative                        // neither fight nor feed
	ActionStrategic                           // positional play (e.g. cheap trump over a void trick)
)

func (a ThirdSeatAction) String() string {
	switch a {
	case ActionSupport:
		return "support"
	case ActionTakeover:
		return "takeover"
	case ActionConservative:
		return "conservative"
	default:
		return "strategic"
	}
}

// ThirdSeatAnalysis is the belief-driven read for the seat playing third.
type ThirdSeatAnalysis struct {
	FourthSeat FourthSeatPrediction
	// TakeoverOpportunity is set when the current winner is an opponent
	// the acting seat should try to beat.
	TakeoverOpportunity bool
	// RiskAssessment grows with the predicted fourth-seat threat and the
	// remaining uncertainty, in [0,1].
	RiskAssessment    float64
	RecommendedAction ThirdSeatAction
	// PreferLowTrump is set when both remaining seats are proven void in a
	// non-trump led suit and points are on the table: the cheapest trump
	// wins the trick, so spend the low one and keep point cards home.
	PreferLowTrump bool
}

const likelyVoidThreshold = 0.6

// AnalyzeThirdSeat evaluates a trick with the lead and one follow played,
// from the perspective of the memory's acting seat.
func AnalyzeThirdSeat(m *CardMemory, tr *engine.Trick) (ThirdSeatAnalysis, error) {
	if err := checkPosition(m, tr, 2); err != nil {
		return ThirdSeatAnalysis{}, err
	}
	lead := tr.LedCards()
	ledTrump := m.Trump.IsTrump(lead[0])
	ledSuit := lead[0].Suit()
	fourth := m.Acting.Next()

	voidProb := m.followVoidProbability(fourth, ledSuit, ledTrump)
	pred := FourthSeatPrediction{
		LikelyVoid: voidProb > likelyVoidThreshold,
		TrumpAdvantage: !m.Players[fourth].TrumpVoid &&
			m.trumpExhaustion() < 0.5,
	}
	switch {
	case m.Players[fourth].TrumpVoid && pred.LikelyVoid:
		pred.Predicted = PredictWeak
	case pred.LikelyVoid && !ledTrump:
		// Void in the led suit with trump in hand: expect a ruff.
		pred.Predicted = PredictStrong
	default:
		pred.Predicted = PredictModerate
	}

	winner, err := tr.Winner(m.Trump)
	if err != nil {
		return ThirdSeatAnalysis{}, err
	}
	partnerWinning := winner == m.Acting.Partner()
	points := tr.Points()
	bothBackSeatsVoid := !ledTrump && ledSuit < engine.NumSuits &&
		m.Players[m.Acting].VoidIn(ledSuit) && m.Players[fourth].VoidIn(ledSuit)

	a := ThirdSeatAnalysis{FourthSeat: pred}
	a.RiskAssessment = clamp01(0.2 + 0.4*predictionFactor(pred.Predicted) + 0.4*m.uncertainty())

	switch {
	case bothBackSeatsVoid && points > 0:
		a.RecommendedAction = ActionStrategic
		a.PreferLowTrump = true
	case partnerWinning && pred.Predicted == PredictStrong:
		// Partner's card will not survive the ruff behind us; no point
		// committing strength or points now.
		a.RecommendedAction = ActionConservative
	case partnerWinning:
		a.RecommendedAction = ActionSupport
	case pred.Predicted != PredictStrong || points >= 10:
		a.RecommendedAction = ActionTakeover
		a.TakeoverOpportunity = true
	default:
		a.RecommendedAction = ActionConservative
	}
	return a, nil
}

func predictionFactor(p PredictedResponse) float64 {
	switch p {
	case PredictWeak:
		return 0
	case PredictModerate:
		return 0.5
	default:
		return 1
	}
}

// FourthSeatDecision is the last player's discrete choice.
type FourthSeatDecision uint8

const (
	DecisionWin        FourthSeatDecision = iota // take the trick
	DecisionLose                                 // deliberately concede
	DecisionMinimize                             // concede as cheaply as possible
	DecisionContribute                           // partner is winning; load points
)

func (d FourthSeatDecision) String() string {
	switch d {
	case DecisionWin:
		return "win"
	case DecisionLose:
		return "lose"
	case DecisionMinimize:
		return "minimize"
	default:
		return "contribute"
	}
}

// PointOptimization quantifies the point upside of the chosen stance.
type PointOptimization struct {
	// MaxContribution is the most points the acting hand can legally add
	// to the trick under the chosen stance.
	MaxContribution int
}

// FourthSeatAnalysis is the read for the last seat, which sees the whole
// trick and decides with near-complete information.
type FourthSeatAnalysis struct {
	OptimalDecision FourthSeatDecision
	// ConfidenceLevel is high by construction (the trick is fully visible)
	// and rises further as the round resolves, in [0,1].
	ConfidenceLevel float64
	// FutureRoundAdvantage values winning the lead for the tricks still to
	// come; early wins are worth more than late ones.
	FutureRoundAdvantage float64
	PointOptimization    PointOptimization
}

// AnalyzeFourthSeat evaluates a trick with three plays on the table, using
// the acting seat's actual hand to enumerate its legal follows.
func AnalyzeFourthSeat(m *CardMemory, tr *engine.Trick, hand []engine.Card) (FourthSeatAnalysis, error) {
	if err := checkPosition(m, tr, 3); err != nil {
		return FourthSeatAnalysis{}, err
	}
	if len(hand) < len(tr.LedCards()) {
		return FourthSeatAnalysis{}, fmt.Errorf("%w: hand of %d cannot answer a lead of %d",
			engine.ErrInvalidState, len(hand), len(tr.LedCards()))
	}

	winner, err := tr.Winner(m.Trump)
	if err != nil {
		return FourthSeatAnalysis{}, err
	}
	partnerWinning := engine.SameTeam(winner, m.Acting)
	points := tr.Points()
	ledTrump := m.Trump.IsTrump(tr.LedCards()[0])

	var (
		maxAnyPoints     = -1
		maxWinningPoints = -1
		canWin           bool
		winNeedsTrump    = true
	)
	for _, follow := range engine.LegalFollows(hand, tr.LedCards(), m.Trump) {
		fp := 0
		for _, c := range follow {
			fp += c.Points()
		}
		if fp > maxAnyPoints {
			maxAnyPoints = fp
		}

		full := engine.Trick{Plays: append(append([]engine.Play(nil), tr.Plays...),
			engine.Play{Seat: m.Acting, Cards: follow})}
		w, werr := full.Winner(m.Trump)
		if werr != nil || w != m.Acting {
			continue
		}
		canWin = true
		if fp > maxWinningPoints {
			maxWinningPoints = fp
		}
		if ledTrump || !m.Trump.IsTrump(follow[0]) {
			winNeedsTrump = false
		}
	}

	a := FourthSeatAnalysis{
		ConfidenceLevel:      clamp01(0.85 + 0.15*(1-m.uncertainty())),
		FutureRoundAdvantage: clamp01(float64(m.cardsRemaining()) / float64(engine.NumSeats*max(m.CardsPerSeat, 1))),
	}
	switch {
	case partnerWinning:
		a.OptimalDecision = DecisionContribute
		a.PointOptimization.MaxContribution = maxAnyPoints
	case canWin && points > 0:
		a.OptimalDecision = DecisionWin
		a.PointOptimization.MaxContribution = maxWinningPoints
	case canWin && winNeedsTrump:
		// Winning a pointless trick would spend trump; let it go.
		a.OptimalDecision = DecisionLose
	case canWin:
		a.OptimalDecision = DecisionWin
		a.PointOptimization.MaxContribution = maxWinningPoints
	default:
		a.OptimalDecision = DecisionMinimize
	}
	if a.PointOptimization.MaxContribution < 0 {
		a.PointOptimization.MaxContribution = 0
	}
	return a, nil
}

// checkPosition validates the positional contract: the trick must carry
// exactly the expected number of prior plays and the memory's acting seat
// must be the one due next.
func checkPosition(m *CardMemory, tr *engine.Trick, playsBefore int) error {
	if tr == nil || len(tr.Plays) != playsBefore {
		n := 0
		if tr != nil {
			n = len(tr.Plays)
		}
		return fmt.Errorf("%w: analyzer wants %d prior plays, trick has %d",
			engine.ErrInvalidState, playsBefore, n)
	}
	for _, p := range tr.Plays {
		if len(p.Cards) == 0 {
			return fmt.Errorf("%w: empty play in trick", engine.ErrInvalidState)
		}
	}
	due := tr.Leader()
	for i := 0; i < playsBefore; i++ {
		due = due.Next()
	}
	if m.Acting != due {
		return fmt.Errorf("%w: acting seat %v is not due (trick expects %v)",
			engine.ErrInvalidState, m.Acting, due)
	}
	return nil
}

// followVoidProbability picks the right void estimate for a led group.
func (m *CardMemory) followVoidProbability(s engine.Seat, ledSuit engine.Suit, ledTrump bool) float64 {
	if ledTrump {
		return m.TrumpVoidProbability(s)
	}
	return m.VoidProbability(s, ledSuit)
}

// trumpExhaustion is the fraction of the shoe's trump already played.
func (m *CardMemory) trumpExhaustion() float64 {
	total := m.Trump.TotalTrumpCards()
	if total == 0 {
		return 0
	}
	return clamp01(float64(m.TrumpCardsPlayed) / float64(total))
}

// trumpExhaustionAdvantage compares observed trump exhaustion against the
// expected trump share of the seats still to play. Positive means trump is
// draining faster than the remaining seats can answer.
func (m *CardMemory) trumpExhaustionAdvantage() float64 {
	total := m.Trump.TotalTrumpCards()
	if total == 0 {
		return 0
	}
	expected := 0.0
	for s := engine.Seat(0); s < engine.NumSeats; s++ {
		if s != m.Acting {
			expected += m.ExpectedTrumpHolding(s)
		}
	}
	return m.trumpExhaustion() - expected/float64(total)
}

// strongLead reports whether a lead is hard to beat without trump: any trump
// lead, or a king-or-better top card.
func strongLead(lead []engine.Card, t engine.TrumpInfo) bool {
	if t.IsTrump(lead[0]) {
		return true
	}
	for _, c := range lead {
		if c.Rank() >= engine.RankKing {
			return true
		}
	}
	return false
}
