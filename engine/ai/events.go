package ai

import engine "github.com/ejfn/tractor-go/engine"

// PlayEvent is one card of one play, flattened out of the trick history in
// chronological order with the context needed for inference.
type PlayEvent struct {
	Seat        engine.Seat
	Card        engine.Card
	LedSuit     engine.Suit // physical suit of the leading card (SuitNone for joker leads)
	LeadIsTrump bool
	Leading     bool
	TrickIndex  int // completed tricks first, then the in-progress trick
	PlaySize    int // number of cards in the play this card belongs to
}

// PlayEvents walks the completed tricks plus the in-progress trick and emits
// every played card in the order it hit the table. The caller validates the
// snapshot first; this scanner assumes structural soundness.
func PlayEvents(g *engine.GameState) []PlayEvent {
	var events []PlayEvent
	appendTrick := func(tr engine.Trick, idx int) {
		lead := tr.Plays[0].Cards[0]
		ledTrump := g.Trump.IsTrump(lead)
		ledSuit := lead.Suit()
		for pi, p := range tr.Plays {
			for _, c := range p.Cards {
				events = append(events, PlayEvent{
					Seat:        p.Seat,
					Card:        c,
					LedSuit:     ledSuit,
					LeadIsTrump: ledTrump,
					Leading:     pi == 0,
					TrickIndex:  idx,
					PlaySize:    len(p.Cards),
				})
			}
		}
	}
	for i, tr := range g.Completed {
		appendTrick(tr, i)
	}
	if g.Current != nil {
		appendTrick(*g.Current, len(g.Completed))
	}
	return events
}
