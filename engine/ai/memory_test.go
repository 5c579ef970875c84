package ai

import (
	"errors"
	"math"
	"reflect"
	"testing"

	engine "github.com/ejfn/tractor-go/engine"
)

func heartsTwoTrump() engine.TrumpInfo {
	return engine.TrumpInfo{Rank: engine.RankTwo, Suit: engine.SuitHearts}
}

func single(s engine.Seat, c engine.Card) engine.Play {
	return engine.Play{Seat: s, Cards: []engine.Card{c}}
}

func buildMemory(t *testing.T, g *engine.GameState) *CardMemory {
	t.Helper()
	m, err := NewCardMemory(g)
	if err != nil {
		t.Fatalf("NewCardMemory: %v", err)
	}
	return m
}

// TestCountersFromSingleTrick folds one mixed trick (diamond lead, trump
// ruff, off-suit discard) and checks every counter: one trump played, two
// point cards worth 15, suit distribution by physical suit.
func TestCountersFromSingleTrick(t *testing.T) {
	g := &engine.GameState{
		Trump:    heartsTwoTrump(),
		Rules:    engine.DefaultRoundRules(),
		Declarer: engine.SeatSouth,
		Acting:   engine.SeatSouth,
		Completed: []engine.Trick{{Plays: []engine.Play{
			single(engine.SeatWest, engine.NewCard(engine.SuitDiamonds, engine.RankKing, 0)),
			single(engine.SeatNorth, engine.NewCard(engine.SuitDiamonds, engine.RankAce, 0)),
			single(engine.SeatEast, engine.NewCard(engine.SuitHearts, engine.RankTwo, 0)),
			single(engine.SeatSouth, engine.NewCard(engine.SuitClubs, engine.RankFive, 0)),
		}}},
	}
	m := buildMemory(t, g)

	if m.TrumpCardsPlayed != 1 {
		t.Errorf("TrumpCardsPlayed = %d, want 1", m.TrumpCardsPlayed)
	}
	if m.PointCardsPlayed != 2 {
		t.Errorf("PointCardsPlayed = %d, want 2", m.PointCardsPlayed)
	}
	if m.PointsPlayed != 15 {
		t.Errorf("PointsPlayed = %d, want 15", m.PointsPlayed)
	}
	want := [engine.NumSuits]int{}
	want[engine.SuitDiamonds] = 2
	want[engine.SuitHearts] = 1
	want[engine.SuitClubs] = 1
	if m.SuitDistribution != want {
		t.Errorf("SuitDistribution = %v, want %v", m.SuitDistribution, want)
	}
	if m.TricksAnalyzed != 1 {
		t.Errorf("TricksAnalyzed = %d, want 1", m.TricksAnalyzed)
	}
	// Ruffing the diamond lead proves East void in diamonds.
	if !m.Players[engine.SeatEast].VoidIn(engine.SuitDiamonds) {
		t.Error("East ruffed a diamond lead but has no recorded diamond void")
	}
}

// TestSuitVoidInference verifies an off-suit follow records a void in the led
// suit for the follower.
func TestSuitVoidInference(t *testing.T) {
	g := &engine.GameState{
		Trump:    heartsTwoTrump(),
		Rules:    engine.DefaultRoundRules(),
		Declarer: engine.SeatSouth,
		Acting:   engine.SeatSouth,
		Completed: []engine.Trick{{Plays: []engine.Play{
			single(engine.SeatSouth, engine.NewCard(engine.SuitSpades, engine.RankKing, 0)),
			single(engine.SeatWest, engine.NewCard(engine.SuitClubs, engine.RankSeven, 0)),
			single(engine.SeatNorth, engine.NewCard(engine.SuitSpades, engine.RankThree, 0)),
			single(engine.SeatEast, engine.NewCard(engine.SuitSpades, engine.RankFour, 0)),
		}}},
	}
	m := buildMemory(t, g)

	if !m.Players[engine.SeatWest].VoidIn(engine.SuitSpades) {
		t.Error("West followed spades with a club but has no recorded spade void")
	}
	for _, s := range []engine.Seat{engine.SeatNorth, engine.SeatEast} {
		if m.Players[s].hasAnyVoid() {
			t.Errorf("%v followed suit but has a recorded void", s)
		}
	}
}

// TestTrumpVoidInference verifies a non-trump follow against a trump lead
// records a trump void.
func TestTrumpVoidInference(t *testing.T) {
	g := &engine.GameState{
		Trump:    heartsTwoTrump(),
		Rules:    engine.DefaultRoundRules(),
		Declarer: engine.SeatSouth,
		Acting:   engine.SeatSouth,
		Completed: []engine.Trick{{Plays: []engine.Play{
			single(engine.SeatSouth, engine.NewCard(engine.SuitHearts, engine.RankTwo, 0)),
			single(engine.SeatWest, engine.NewCard(engine.SuitHearts, engine.RankNine, 0)),
			single(engine.SeatNorth, engine.NewCard(engine.SuitClubs, engine.RankSix, 0)),
			single(engine.SeatEast, engine.NewCard(engine.SuitHearts, engine.RankTwo, 1)),
		}}},
	}
	m := buildMemory(t, g)

	if !m.Players[engine.SeatNorth].TrumpVoid {
		t.Error("North answered a trump lead with a club but TrumpVoid is false")
	}
	if m.Players[engine.SeatWest].TrumpVoid || m.Players[engine.SeatEast].TrumpVoid {
		t.Error("seats that followed trump picked up a trump void")
	}
	// A trump void never touches the physical suit voids.
	if m.Players[engine.SeatNorth].hasAnyVoid() {
		t.Error("trump void leaked into the suit void set")
	}
}

// tenTrickHistory builds a deterministic ten-trick state from consecutive
// card indices; the acting seat holds cards from the second deck's tail.
func tenTrickHistory() *engine.GameState {
	g := &engine.GameState{
		Trump:    heartsTwoTrump(),
		Rules:    engine.DefaultRoundRules(),
		Declarer: engine.SeatWest,
		Acting:   engine.SeatSouth,
	}
	idx := 0
	for t := 0; t < 10; t++ {
		var plays []engine.Play
		leader := engine.Seat(t % engine.NumSeats)
		for i := 0; i < engine.NumSeats; i++ {
			seat := engine.Seat((int(leader) + i) % engine.NumSeats)
			plays = append(plays, single(seat, engine.CardFromIndex(idx)))
			idx++
		}
		g.Completed = append(g.Completed, engine.Trick{Plays: plays})
	}
	for i := 100; i < 108; i++ {
		g.Hand = append(g.Hand, engine.CardFromIndex(i))
	}
	return g
}

// TestRebuildDeterminism verifies two independent builds from the same
// ten-trick history agree exactly: same play order, same voids, same
// probability table.
func TestRebuildDeterminism(t *testing.T) {
	a := buildMemory(t, tenTrickHistory())
	b := buildMemory(t, tenTrickHistory())

	if !reflect.DeepEqual(a.PlayedCards, b.PlayedCards) {
		t.Error("played card order differs between rebuilds")
	}
	for s := range a.Players {
		if a.Players[s].SuitVoids != b.Players[s].SuitVoids ||
			a.Players[s].TrumpVoid != b.Players[s].TrumpVoid {
			t.Errorf("seat %d void record differs between rebuilds", s)
		}
	}
	if a.Probabilities != b.Probabilities {
		t.Error("probability tables differ between rebuilds")
	}
}

// TestProbabilityConservation verifies every unobserved card's row sums to 1
// and every observed card's row is zero.
func TestProbabilityConservation(t *testing.T) {
	m := buildMemory(t, tenTrickHistory())

	for i := 0; i < engine.NumCards; i++ {
		sum := 0.0
		for s := 0; s < engine.NumSeats; s++ {
			sum += m.Probabilities[i][s]
		}
		if m.Observed[i] {
			if sum != 0 {
				t.Errorf("observed card %v carries probability mass %v", engine.CardFromIndex(i), sum)
			}
			continue
		}
		if math.Abs(sum-1) > 1e-2 {
			t.Errorf("card %v row sums to %v, want 1", engine.CardFromIndex(i), sum)
		}
		if m.Probabilities[i][m.Acting] != 0 {
			t.Errorf("card %v assigns mass to the acting seat's own column", engine.CardFromIndex(i))
		}
	}
}

// TestVoidMonotonicity verifies a void recorded after k tricks survives the
// rebuild over k+1 tricks.
func TestVoidMonotonicity(t *testing.T) {
	voidTrick := engine.Trick{Plays: []engine.Play{
		single(engine.SeatSouth, engine.NewCard(engine.SuitSpades, engine.RankKing, 0)),
		single(engine.SeatWest, engine.NewCard(engine.SuitClubs, engine.RankSeven, 0)),
		single(engine.SeatNorth, engine.NewCard(engine.SuitSpades, engine.RankThree, 0)),
		single(engine.SeatEast, engine.NewCard(engine.SuitSpades, engine.RankFour, 0)),
	}}
	laterTrick := engine.Trick{Plays: []engine.Play{
		single(engine.SeatNorth, engine.NewCard(engine.SuitDiamonds, engine.RankNine, 0)),
		single(engine.SeatEast, engine.NewCard(engine.SuitDiamonds, engine.RankTen, 0)),
		single(engine.SeatSouth, engine.NewCard(engine.SuitDiamonds, engine.RankJack, 0)),
		single(engine.SeatWest, engine.NewCard(engine.SuitDiamonds, engine.RankQueen, 0)),
	}}

	base := &engine.GameState{
		Trump:     heartsTwoTrump(),
		Rules:     engine.DefaultRoundRules(),
		Declarer:  engine.SeatSouth,
		Acting:    engine.SeatSouth,
		Completed: []engine.Trick{voidTrick},
	}
	extended := &engine.GameState{
		Trump:     heartsTwoTrump(),
		Rules:     engine.DefaultRoundRules(),
		Declarer:  engine.SeatSouth,
		Acting:    engine.SeatSouth,
		Completed: []engine.Trick{voidTrick, laterTrick},
	}

	if !buildMemory(t, base).Players[engine.SeatWest].VoidIn(engine.SuitSpades) {
		t.Fatal("base history did not record West's spade void")
	}
	m := buildMemory(t, extended)
	if !m.Players[engine.SeatWest].VoidIn(engine.SuitSpades) {
		t.Error("West's spade void vanished after folding in a later trick")
	}
	// The later trick sees West follow diamonds; no new void appears.
	if m.Players[engine.SeatWest].VoidCount() != 1 {
		t.Errorf("West void count = %d, want 1", m.Players[engine.SeatWest].VoidCount())
	}
}

// TestCountAdditivity verifies the count laws: trump plus non-trump plays
// equal total plays, and tricksAnalyzed equals the completed trick count.
func TestCountAdditivity(t *testing.T) {
	g := tenTrickHistory()
	m := buildMemory(t, g)

	nonTrump := 0
	for _, c := range m.PlayedCards {
		if !m.Trump.IsTrump(c) {
			nonTrump++
		}
	}
	if m.TrumpCardsPlayed+nonTrump != len(m.PlayedCards) {
		t.Errorf("trump %d + non-trump %d != played %d",
			m.TrumpCardsPlayed, nonTrump, len(m.PlayedCards))
	}
	if m.TricksAnalyzed != len(g.Completed) {
		t.Errorf("TricksAnalyzed = %d, want %d", m.TricksAnalyzed, len(g.Completed))
	}
	for s := range m.Players {
		want := g.Rules.CardsPerSeat - 10
		if m.Players[s].EstimatedHandSize != want {
			t.Errorf("seat %d estimated hand size = %d, want %d",
				s, m.Players[s].EstimatedHandSize, want)
		}
	}
}

// TestEmptyStateBoundary verifies a fresh round yields zeroed counters and a
// fully populated probability table over everything outside the acting hand.
func TestEmptyStateBoundary(t *testing.T) {
	g := &engine.GameState{
		Trump:    heartsTwoTrump(),
		Rules:    engine.DefaultRoundRules(),
		Declarer: engine.SeatSouth,
		Acting:   engine.SeatSouth,
		Hand: []engine.Card{
			engine.NewCard(engine.SuitSpades, engine.RankAce, 0),
			engine.NewJoker(engine.JokerBig, 0),
		},
	}
	m := buildMemory(t, g)

	if len(m.PlayedCards) != 0 || m.TrumpCardsPlayed != 0 || m.PointsPlayed != 0 {
		t.Error("fresh round has non-zero play counters")
	}
	rows := 0
	for i := 0; i < engine.NumCards; i++ {
		sum := 0.0
		for s := 0; s < engine.NumSeats; s++ {
			sum += m.Probabilities[i][s]
		}
		if m.Observed[i] {
			continue
		}
		rows++
		if math.Abs(sum-1) > 1e-2 {
			t.Errorf("card %v row sums to %v, want 1", engine.CardFromIndex(i), sum)
		}
	}
	if rows != engine.NumCards-len(g.Hand) {
		t.Errorf("populated %d rows, want %d", rows, engine.NumCards-len(g.Hand))
	}
	if len(m.DegenerateCards) != 0 {
		t.Errorf("fresh round flagged %d degenerate cards", len(m.DegenerateCards))
	}
}

// TestDegenerateFallback drives every non-acting seat void in spades and
// checks unseen spades fall back to a flagged uniform distribution instead
// of losing their probability mass.
func TestDegenerateFallback(t *testing.T) {
	g := &engine.GameState{
		Trump:    heartsTwoTrump(),
		Rules:    engine.DefaultRoundRules(),
		Declarer: engine.SeatSouth,
		Acting:   engine.SeatSouth,
		Completed: []engine.Trick{{Plays: []engine.Play{
			single(engine.SeatSouth, engine.NewCard(engine.SuitSpades, engine.RankKing, 0)),
			single(engine.SeatWest, engine.NewCard(engine.SuitClubs, engine.RankSeven, 0)),
			single(engine.SeatNorth, engine.NewCard(engine.SuitClubs, engine.RankEight, 0)),
			single(engine.SeatEast, engine.NewCard(engine.SuitDiamonds, engine.RankFour, 0)),
		}}},
	}
	m := buildMemory(t, g)

	if len(m.DegenerateCards) == 0 {
		t.Fatal("no degenerate cards flagged despite universal spade voids")
	}
	probe := engine.NewCard(engine.SuitSpades, engine.RankNine, 0)
	sum := 0.0
	for s := engine.Seat(0); s < engine.NumSeats; s++ {
		p := m.SeatProbability(probe, s)
		sum += p
		if s != m.Acting && math.Abs(p-1.0/3) > 1e-9 {
			t.Errorf("degenerate card mass for %v = %v, want uniform 1/3", s, p)
		}
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("degenerate row sums to %v, want 1", sum)
	}
}

// TestVoidProbability verifies proven voids report certainty and unproven
// ones shrink with expected holdings.
func TestVoidProbability(t *testing.T) {
	g := &engine.GameState{
		Trump:    heartsTwoTrump(),
		Rules:    engine.DefaultRoundRules(),
		Declarer: engine.SeatSouth,
		Acting:   engine.SeatSouth,
		Completed: []engine.Trick{{Plays: []engine.Play{
			single(engine.SeatSouth, engine.NewCard(engine.SuitSpades, engine.RankKing, 0)),
			single(engine.SeatWest, engine.NewCard(engine.SuitClubs, engine.RankSeven, 0)),
			single(engine.SeatNorth, engine.NewCard(engine.SuitSpades, engine.RankThree, 0)),
			single(engine.SeatEast, engine.NewCard(engine.SuitSpades, engine.RankFour, 0)),
		}}},
	}
	m := buildMemory(t, g)

	if p := m.VoidProbability(engine.SeatWest, engine.SuitSpades); p != 1 {
		t.Errorf("proven void probability = %v, want 1", p)
	}
	p := m.VoidProbability(engine.SeatNorth, engine.SuitSpades)
	if p <= 0 || p >= 0.5 {
		t.Errorf("unproven void probability = %v, want small but positive", p)
	}
}

// TestNewCardMemoryRejects verifies malformed snapshots surface the invalid
// state sentinel rather than a best-effort memory.
func TestNewCardMemoryRejects(t *testing.T) {
	if _, err := NewCardMemory(nil); !errors.Is(err, engine.ErrInvalidState) {
		t.Errorf("nil snapshot: err = %v, want ErrInvalidState", err)
	}
	g := tenTrickHistory()
	g.Acting = engine.Seat(7)
	if _, err := NewCardMemory(g); !errors.Is(err, engine.ErrInvalidState) {
		t.Errorf("bad acting seat: err = %v, want ErrInvalidState", err)
	}
}
