// Package ai implements belief tracking and strategic evaluation for the
// Tractor AI: reconstructing what opponents plausibly hold from the trick
// history, condensing that into scalar signals, and turning the signals into
// play recommendations.
//
// Every entry point is a pure function of an engine.GameState snapshot; the
// whole view is rebuilt from scratch each turn.
package ai

import engine "github.com/ejfn/tractor-go/engine"

// Situation classifies the context a card was played in. Closed enumeration:
// new situations must be handled everywhere they matter at compile time.
type Situation uint8

const (
	SituationLeadingTrump Situation = iota
	SituationLeadingNonTrump
	SituationFollowingTrump
	SituationFollowingNonTrump

	NumSituations
)

func (s Situation) String() string {
	switch s {
	case SituationLeadingTrump:
		return "leading_trump"
	case SituationLeadingNonTrump:
		return "leading_nontrump"
	case SituationFollowingTrump:
		return "following_trump"
	case SituationFollowingNonTrump:
		return "following_nontrump"
	default:
		return "unknown"
	}
}

// classifySituation derives the situation from a play's position and lead.
func classifySituation(leading, leadIsTrump bool) Situation {
	switch {
	case leading && leadIsTrump:
		return SituationLeadingTrump
	case leading:
		return SituationLeadingNonTrump
	case leadIsTrump:
		return SituationFollowingTrump
	default:
		return SituationFollowingNonTrump
	}
}

// CardClass buckets a played card for pattern tracking.
type CardClass uint8

const (
	ClassTrump CardClass = iota
	ClassPoint // non-trump point card
	ClassPlain

	NumCardClasses
)

func (c CardClass) String() string {
	switch c {
	case ClassTrump:
		return "trump"
	case ClassPoint:
		return "point"
	default:
		return "plain"
	}
}

// classifyCard buckets a card under the round's trump. Trump point cards
// count as trump: committing trump is the stronger signal.
func classifyCard(c engine.Card, trump engine.TrumpInfo) CardClass {
	switch {
	case trump.IsTrump(c):
		return ClassTrump
	case c.Points() > 0:
		return ClassPoint
	default:
		return ClassPlain
	}
}

// CardProvenance distinguishes how a known card became known. This subsystem
// only records observed plays; inferred holdings live in the probability
// table, never here.
type CardProvenance uint8

const (
	ProvenancePlayed CardProvenance = iota
	ProvenanceInferred
)

// KnownCard is a card attributed to a seat with its provenance.
type KnownCard struct {
	Card       engine.Card
	Provenance CardProvenance
}
