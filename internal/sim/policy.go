package sim

import (
	"fmt"

	engine "github.com/ejfn/tractor-go/engine"
	ai "github.com/ejfn/tractor-go/engine/ai"
)

// choosePlay selects the acting seat's cards for the current trick, routing
// through the position analyzer that matches the seat's play order.
func (r *Runner) choosePlay(m *ai.CardMemory, g *engine.GameState, tr *engine.Trick, position int) ([]engine.Card, error) {
	if position == 0 {
		return r.chooseLead(m, g)
	}

	follows := engine.LegalFollows(g.Hand, tr.LedCards(), m.Trump)
	if len(follows) == 0 {
		return nil, fmt.Errorf("no legal follow for %v against %v", g.Acting, tr.LedCards())
	}
	gctx := r.gameContext(m, g, ai.TrickPosition(position))

	switch position {
	case 1:
		a, err := ai.AnalyzeSecondSeat(m, tr)
		if err != nil {
			return nil, err
		}
		switch a.OptimalResponse {
		case ai.RespondBlock, ai.RespondPressure:
			return r.winningFollow(m, tr, g.Acting, follows, gctx)
		default:
			return r.cheapestFollow(m, follows, gctx)
		}

	case 2:
		a, err := ai.AnalyzeThirdSeat(m, tr)
		if err != nil {
			return nil, err
		}
		switch {
		case a.PreferLowTrump:
			if f, ok := r.cheapestTrumpFollow(m, follows, gctx); ok {
				return f, nil
			}
			return r.cheapestFollow(m, follows, gctx)
		case a.RecommendedAction == ai.ActionSupport:
			return richestFollow(follows), nil
		case a.RecommendedAction == ai.ActionTakeover:
			return r.winningFollow(m, tr, g.Acting, follows, gctx)
		default:
			return r.cheapestFollow(m, follows, gctx)
		}

	default:
		a, err := ai.AnalyzeFourthSeat(m, tr, g.Hand)
		if err != nil {
			return nil, err
		}
		switch a.OptimalDecision {
		case ai.DecisionContribute:
			return richestFollow(follows), nil
		case ai.DecisionWin:
			return r.winningFollow(m, tr, g.Acting, follows, gctx)
		default:
			return r.cheapestFollow(m, follows, gctx)
		}
	}
}

// chooseLead scores every single and identical pair in the hand and picks a
// lead per the memory strategy: press voids, commit trump when it is safe,
// otherwise spend the cheapest combo.
func (r *Runner) chooseLead(m *ai.CardMemory, g *engine.GameState) ([]engine.Card, error) {
	ctx := ai.NewMemoryContext(m, g)
	st := ai.NewMemoryStrategy(m, ctx, g)
	gctx := r.gameContext(m, g, ai.PositionFirst)

	candidates := leadCandidates(g.Hand)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("seat %v has no cards to lead", g.Acting)
	}

	best, bestScore := candidates[0], -1.0
	cheapest, cheapestVal := candidates[0], 2.0
	for _, cand := range candidates {
		cs, err := ai.AnalyzeCombo(cand, m.Trump, gctx)
		if err != nil {
			return nil, err
		}
		if score := comboRank(cs); score > bestScore && (cs.IsTrump || !st.ShouldPlayTrump) {
			best, bestScore = cand, score
		}
		if cs.ConservationValue < cheapestVal && !cs.HasPoints {
			cheapest, cheapestVal = cand, cs.ConservationValue
		}
	}

	switch {
	case st.ShouldPlayTrump && bestScore >= 0:
		return best, nil
	case st.EndgameOptimal:
		return best, nil
	default:
		return cheapest, nil
	}
}

// gameContext derives the combo-scoring context for the acting seat.
func (r *Runner) gameContext(m *ai.CardMemory, g *engine.GameState, pos ai.TrickPosition) ai.GameContext {
	attacking := !engine.SameTeam(g.Acting, g.Declarer)
	collected := 0
	for _, tr := range g.Completed {
		if w, err := tr.Winner(m.Trump); err == nil && !engine.SameTeam(w, g.Declarer) {
			collected += tr.Points()
		}
	}
	needed := attackingTarget - collected
	if needed < 0 {
		needed = 0
	}

	pressure := ai.PressureLow
	switch {
	case needed > 60:
		pressure = ai.PressureHigh
	case needed > 30:
		pressure = ai.PressureMedium
	}

	ctx := ai.NewMemoryContext(m, g)
	st := ai.NewMemoryStrategy(m, ctx, g)
	style := ai.StyleConservative
	switch {
	case st.RiskLevel >= 0.75:
		style = ai.StyleAggressive
	case st.RiskLevel >= 0.4:
		style = ai.StyleBalanced
	}

	return ai.GameContext{
		Attacking:      attacking,
		PointsNeeded:   needed,
		Position:       pos,
		Pressure:       pressure,
		Style:          style,
		CardsRemaining: ctx.CardsRemaining,
	}
}

// winningFollow returns the cheapest follow that takes the trick, or the
// cheapest follow overall when the trick cannot be taken.
func (r *Runner) winningFollow(m *ai.CardMemory, tr *engine.Trick, acting engine.Seat, follows [][]engine.Card, gctx ai.GameContext) ([]engine.Card, error) {
	var winners [][]engine.Card
	for _, f := range follows {
		full := engine.Trick{Plays: append(append([]engine.Play(nil), tr.Plays...),
			engine.Play{Seat: acting, Cards: f})}
		if w, err := full.Winner(m.Trump); err == nil && w == acting {
			winners = append(winners, f)
		}
	}
	if len(winners) == 0 {
		return r.cheapestFollow(m, follows, gctx)
	}
	return r.cheapestFollow(m, winners, gctx)
}

// cheapestFollow minimizes conservation value: spend what is least worth
// keeping.
func (r *Runner) cheapestFollow(m *ai.CardMemory, follows [][]engine.Card, gctx ai.GameContext) ([]engine.Card, error) {
	best, bestVal := follows[0], 2.0
	for _, f := range follows {
		cs, err := ai.AnalyzeCombo(f, m.Trump, gctx)
		if err != nil {
			return nil, err
		}
		if cs.ConservationValue < bestVal {
			best, bestVal = f, cs.ConservationValue
		}
	}
	return best, nil
}

// cheapestTrumpFollow picks the lowest all-trump follow, if one exists.
func (r *Runner) cheapestTrumpFollow(m *ai.CardMemory, follows [][]engine.Card, gctx ai.GameContext) ([]engine.Card, bool) {
	var trumps [][]engine.Card
	for _, f := range follows {
		allTrump := true
		for _, c := range f {
			if !m.Trump.IsTrump(c) {
				allTrump = false
				break
			}
		}
		if allTrump {
			trumps = append(trumps, f)
		}
	}
	if len(trumps) == 0 {
		return nil, false
	}
	f, err := r.cheapestFollow(m, trumps, gctx)
	if err != nil {
		return nil, false
	}
	return f, true
}

// richestFollow maximizes the points loaded onto the trick.
func richestFollow(follows [][]engine.Card) []engine.Card {
	best, bestPts := follows[0], -1
	for _, f := range follows {
		pts := 0
		for _, c := range f {
			pts += c.Points()
		}
		if pts > bestPts {
			best, bestPts = f, pts
		}
	}
	return best
}

// leadCandidates enumerates every single plus every identical pair.
func leadCandidates(hand []engine.Card) [][]engine.Card {
	var out [][]engine.Card
	for _, c := range hand {
		out = append(out, []engine.Card{c})
	}
	for i := 0; i < len(hand); i++ {
		for j := i + 1; j < len(hand); j++ {
			if hand[i].SameIdentity(hand[j]) {
				out = append(out, []engine.Card{hand[i], hand[j]})
			}
		}
	}
	return out
}

// comboRank orders candidates for aggressive leads: bucket first, then
// disruption, then carried points.
func comboRank(cs ai.ComboStrength) float64 {
	return float64(cs.Strength)*10 + cs.DisruptionPotential*5 + float64(cs.PointValue)/10
}
