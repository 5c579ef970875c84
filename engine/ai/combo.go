package ai

import (
	"fmt"

	engine "github.com/ejfn/tractor-go/engine"
)

// Strength buckets a combo's ability to win tricks.
type Strength uint8

const (
	StrengthWeak Strength = iota
	StrengthModerate
	StrengthStrong
	StrengthCritical
)

func (s Strength) String() string {
	switch s {
	case StrengthWeak:
		return "weak"
	case StrengthModerate:
		return "moderate"
	case StrengthStrong:
		return "strong"
	default:
		return "critical"
	}
}

// PlayStyle is the caller-declared temperament for the decision.
type PlayStyle uint8

const (
	StyleConservative PlayStyle = iota
	StyleBalanced
	StyleAggressive
	StyleDesperate
)

func (p PlayStyle) String() string {
	switch p {
	case StyleConservative:
		return "conservative"
	case StyleBalanced:
		return "balanced"
	case StyleAggressive:
		return "aggressive"
	default:
		return "desperate"
	}
}

// TrickPosition is the acting seat's order within the current trick.
type TrickPosition uint8

const (
	PositionFirst TrickPosition = iota
	PositionSecond
	PositionThird
	PositionFourth
)

// PointPressure grades how urgently the acting side needs points.
type PointPressure uint8

const (
	PressureLow PointPressure = iota
	PressureMedium
	PressureHigh
)

// GameContext is the non-memory situational input to combo scoring: which
// side the acting seat is on, what it still needs, and how it wants to play.
type GameContext struct {
	// Attacking is set for the side trying to collect points off the
	// declarer.
	Attacking bool
	// PointsNeeded is how many more points the acting side wants this
	// round.
	PointsNeeded int
	Position    TrickPosition
	Pressure    PointPressure
	Style       PlayStyle
	// CardsRemaining counts unplayed cards across all hands; drives the
	// endgame scaling of conservation value.
	CardsRemaining int
}

// ComboStrength is the full scoring of one candidate combination.
type ComboStrength struct {
	Strength  Strength
	IsTrump   bool
	HasPoints bool
	// PointValue sums the card points the combo carries.
	PointValue int
	// DisruptionPotential estimates the combo's power to break an
	// opponent's sequence, in [0,1]. Trump pairs and tractors score
	// highest: they beat any non-trump shape of the same size.
	DisruptionPotential float64
	// ConservationValue is how much the combo is worth saving, in [0,1]
	// before endgame amplification. It grows super-linearly as the round
	// drains: a strong combo still in hand with few cards left is
	// progressively more precious.
	ConservationValue float64
}

// Endgame amplification starts below this many remaining cards.
const endgameScaleWindow = 20

// AnalyzeCombo scores one candidate combination under the round's trump and
// the caller's situational context. The combo normally comes from the legal
// move generator; mixed-suit fillers (legal discards that form no combo
// shape) are scored on their best card alone.
func AnalyzeCombo(cards []engine.Card, trump engine.TrumpInfo, ctx GameContext) (ComboStrength, error) {
	if len(cards) == 0 {
		return ComboStrength{}, fmt.Errorf("%w: empty combo", engine.ErrInvalidState)
	}

	cs := ComboStrength{IsTrump: trump.IsTrump(cards[0])}
	for _, c := range cards {
		cs.PointValue += c.Points()
		if !trump.IsTrump(c) {
			cs.IsTrump = false
		}
	}
	cs.HasPoints = cs.PointValue > 0

	shape := engine.ClassifyCombo(cards, trump)
	score := comboScore(cards, shape, cs.PointValue, trump)
	cs.Strength = bucketStrength(score)
	cs.DisruptionPotential = disruptionPotential(shape, cs.IsTrump)
	cs.ConservationValue = conservationValue(score, ctx)
	return cs, nil
}

// comboScore combines the combo's best unit, its shape, and the points it
// carries into one comparable value.
func comboScore(cards []engine.Card, shape engine.ComboType, points int, trump engine.TrumpInfo) float64 {
	best := 0.0
	for _, c := range cards {
		if v := unitValue(c, trump); v > best {
			best = v
		}
	}
	switch shape {
	case engine.ComboPair:
		best += 10
	case engine.ComboTractor:
		best += 10 * float64(len(cards)/2)
	}
	return best + float64(points)/2
}

// unitValue places trump cards strictly above every non-trump card.
func unitValue(c engine.Card, trump engine.TrumpInfo) float64 {
	if trump.IsTrump(c) {
		return 60 + float64(trump.TrumpStrength(c))
	}
	return 2 * float64(c.Rank())
}

func bucketStrength(score float64) Strength {
	switch {
	case score >= 85:
		return StrengthCritical
	case score >= 60:
		return StrengthStrong
	case score >= 24:
		return StrengthModerate
	default:
		return StrengthWeak
	}
}

// disruptionPotential rates the combo's ability to break an opponent's run.
// Multi-card trump shapes dominate: a trump pair or tractor beats any
// non-trump combination of the same size.
func disruptionPotential(shape engine.ComboType, isTrump bool) float64 {
	base := 0.0
	switch shape {
	case engine.ComboSingle:
		base = 0.1
	case engine.ComboPair:
		base = 0.3
	case engine.ComboTractor:
		base = 0.5
	default:
		return 0.05 // mixed filler disrupts nothing
	}
	if isTrump {
		base += 0.4
	}
	return clamp01(base)
}

// conservationValue converts the raw score into a "worth saving" measure,
// amplified super-linearly as the round drains and tempered by play style.
func conservationValue(score float64, ctx GameContext) float64 {
	v := score / 100

	cr := ctx.CardsRemaining
	if cr < 0 {
		cr = 0
	}
	if cr < endgameScaleWindow {
		d := float64(endgameScaleWindow-cr) / endgameScaleWindow
		v *= 1 + d*d*2
	}

	switch ctx.Style {
	case StyleConservative:
		v *= 1.1
	case StyleAggressive:
		v *= 0.9
	case StyleDesperate:
		v *= 0.75
	}
	// Under high point pressure an attacking side spends rather than saves.
	if ctx.Attacking && ctx.Pressure == PressureHigh {
		v *= 0.85
	}
	return clamp01(v)
}
