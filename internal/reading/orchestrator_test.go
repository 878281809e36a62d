package reading_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/randomtoy/tarotteller/internal/catalog"
	"github.com/randomtoy/tarotteller/internal/deck"
	"github.com/randomtoy/tarotteller/internal/domain"
	"github.com/randomtoy/tarotteller/internal/orientation"
	"github.com/randomtoy/tarotteller/internal/reading"
	"github.com/randomtoy/tarotteller/internal/spread"
)

// countingRNG records how often it is consulted.
type countingRNG struct{ calls int }

func (r *countingRNG) IntN(n int) int {
	r.calls++
	return 0
}

func newDeck(t *testing.T, opts ...deck.Option) *deck.Deck {
	t.Helper()
	c, err := catalog.New()
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	d, err := deck.New(c.All(), opts...)
	if err != nil {
		t.Fatalf("deck.New: %v", err)
	}
	return d
}

func newOrchestrator(opts ...orientation.Option) *reading.Orchestrator {
	return reading.New(spread.NewRegistry(), orientation.New(opts...), nil)
}

func cardIDs(r domain.Reading) []string {
	out := make([]string, r.Len())
	for i, p := range r.Placements {
		out[i] = p.Card.ID
	}
	return out
}

func orientations(r domain.Reading) []domain.Orientation {
	out := make([]domain.Orientation, r.Len())
	for i, p := range r.Placements {
		out[i] = p.Orientation
	}
	return out
}

func TestDrawSpread_ThreeCardArity(t *testing.T) {
	d := newDeck(t, deck.WithSeed(99))
	d.Reset(true)

	r, err := newOrchestrator().DrawSpread(d, spread.Named("three_card"), reading.WithOrientationSeed(21))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Len() != 3 {
		t.Fatalf("expected 3 placements, got %d", r.Len())
	}
	want := []string{"Past", "Present", "Future"}
	for i, p := range r.Placements {
		if p.Position.Title != want[i] {
			t.Errorf("placement %d: expected %s, got %s", i, want[i], p.Position.Title)
		}
		if p.Position.Index != i+1 {
			t.Errorf("placement %d: index %d", i, p.Position.Index)
		}
	}
	if r.Spread.Name != "Three Card Story" {
		t.Errorf("unexpected spread name %q", r.Spread.Name)
	}
	if d.Remaining() != 75 {
		t.Errorf("expected 75 remaining, got %d", d.Remaining())
	}
}

func TestDrawSpread_Reproducible(t *testing.T) {
	run := func() domain.Reading {
		d := newDeck(t)
		d.ResetWithSeed(42)
		r, err := newOrchestrator().DrawSpread(d, spread.Named("single_card"), reading.WithOrientationSeed(99))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return r
	}

	a, b := run(), run()
	if a.Len() != 1 || b.Len() != 1 {
		t.Fatalf("expected one placement, got %d and %d", a.Len(), b.Len())
	}
	if a.Placements[0].Card.ID != b.Placements[0].Card.ID {
		t.Errorf("card differs: %s vs %s", a.Placements[0].Card.ID, b.Placements[0].Card.ID)
	}
	if a.Placements[0].Orientation != b.Placements[0].Orientation {
		t.Errorf("orientation differs")
	}
	if a.Placements[0].Position.Title != "Message" {
		t.Errorf("unexpected position %q", a.Placements[0].Position.Title)
	}
}

func TestDrawSpread_CardSeedIndependentOfOrientationSeed(t *testing.T) {
	o := newOrchestrator()
	var cards [][]string
	var orients [][]domain.Orientation
	for _, os := range []int64{1, 2, 3, 4} {
		r, err := o.DrawSpread(newDeck(t), spread.Named("celtic_cross"),
			reading.WithCardSeed(7), reading.WithOrientationSeed(os))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cards = append(cards, cardIDs(r))
		orients = append(orients, orientations(r))
	}
	for i := 1; i < len(cards); i++ {
		if !slices.Equal(cards[0], cards[i]) {
			t.Errorf("orientation seed changed the cards: %v vs %v", cards[0], cards[i])
		}
	}
	distinct := false
	for i := 1; i < len(orients); i++ {
		if !slices.Equal(orients[0], orients[i]) {
			distinct = true
		}
	}
	if !distinct {
		t.Error("varying the orientation seed never changed orientations")
	}
}

func TestDrawSpread_OrientationSeedIndependentOfCardSeed(t *testing.T) {
	o := newOrchestrator()
	var cards [][]string
	var orients [][]domain.Orientation
	for _, cs := range []int64{10, 20, 30} {
		r, err := o.DrawSpread(newDeck(t), spread.Named("celtic_cross"),
			reading.WithCardSeed(cs), reading.WithOrientationSeed(5))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cards = append(cards, cardIDs(r))
		orients = append(orients, orientations(r))
	}
	for i := 1; i < len(orients); i++ {
		if !slices.Equal(orients[0], orients[i]) {
			t.Errorf("card seed changed orientations: %v vs %v", orients[0], orients[i])
		}
	}
	if slices.Equal(cards[0], cards[1]) && slices.Equal(cards[1], cards[2]) {
		t.Error("varying the card seed never changed the cards")
	}
}

func TestDrawSpread_NoReversed(t *testing.T) {
	o := newOrchestrator()
	for _, os := range []int64{1, 21, 99, 12345} {
		d := newDeck(t)
		d.ResetWithSeed(11)
		r, err := o.DrawSpread(d, spread.Named("celtic_cross"),
			reading.WithReversed(false), reading.WithOrientationSeed(os))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i, p := range r.Placements {
			if p.Orientation != domain.Upright {
				t.Errorf("seed %d placement %d reversed", os, i)
			}
			if p.Meaning() != p.Card.Upright {
				t.Errorf("seed %d placement %d meaning not upright", os, i)
			}
		}
	}
}

func TestDrawSpread_NoReversedRestoresAssignerMode(t *testing.T) {
	a := orientation.New()
	o := reading.New(spread.NewRegistry(), a, nil)
	if _, err := o.DrawSpread(newDeck(t), spread.Count(3), reading.WithReversed(false)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.AllowReversed() {
		t.Error("per-call option leaked into the assigner")
	}
}

func TestDrawSpread_AdHocCount(t *testing.T) {
	d := newDeck(t, deck.WithSeed(5))
	d.Reset(true)

	r, err := newOrchestrator().DrawSpread(d, spread.Count(2), reading.WithReversed(false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Len() != 2 || r.Spread.Key != spread.AdHocKey {
		t.Fatalf("unexpected reading %+v", r.Spread)
	}
	if r.Placements[0].Position.Title != "Card 1" || r.Placements[1].Position.Title != "Card 2" {
		t.Errorf("unexpected titles")
	}
}

func TestDrawSpread_UnknownSpreadConsumesNothing(t *testing.T) {
	rng := &countingRNG{}
	a := orientation.New(orientation.WithRNG(func(int64) domain.RNG { return rng }))
	o := reading.New(spread.NewRegistry(), a, nil)
	d := newDeck(t)
	before := rng.calls

	_, err := o.DrawSpread(d, spread.Named("pentagram"), reading.WithCardSeed(3))
	if !errors.Is(err, domain.ErrUnknownSpread) {
		t.Fatalf("expected ErrUnknownSpread, got %v", err)
	}
	if d.Remaining() != 78 || rng.calls != before {
		t.Errorf("failed lookup consumed state: remaining=%d rng calls=%d", d.Remaining(), rng.calls-before)
	}
}

func TestDrawSpread_InvalidCountRejectedBeforeRNG(t *testing.T) {
	deckRNG := &countingRNG{}
	d := newDeck(t, deck.WithRNG(func(int64) domain.RNG { return deckRNG }))
	o := newOrchestrator()

	for _, n := range []int{0, -3, 79} {
		_, err := o.DrawSpread(d, spread.Count(n), reading.WithCardSeed(1))
		if !errors.Is(err, domain.ErrInvalidCardCount) {
			t.Errorf("n=%d: expected ErrInvalidCardCount, got %v", n, err)
		}
	}
	if deckRNG.calls != 0 || d.Remaining() != 78 {
		t.Errorf("invalid counts consumed state: rng calls=%d remaining=%d", deckRNG.calls, d.Remaining())
	}
}

func TestDrawSpread_InsufficientCardsPropagates(t *testing.T) {
	d := newDeck(t, deck.WithSeed(1))
	d.Reset(true)
	if _, err := d.Draw(75); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := newOrchestrator().DrawSpread(d, spread.Named("celtic_cross"))
	if !errors.Is(err, domain.ErrInsufficientCards) {
		t.Fatalf("expected ErrInsufficientCards, got %v", err)
	}
	if d.Remaining() != 3 {
		t.Errorf("partial draw consumed cards: remaining=%d", d.Remaining())
	}

	r, err := newOrchestrator().DrawSpread(d, spread.Named("three_card"))
	if err != nil || r.Len() != 3 {
		t.Errorf("three remaining cards should satisfy three_card: %v", err)
	}
}

func TestDrawSpread_UniqueAcrossReadings(t *testing.T) {
	d := newDeck(t, deck.WithSeed(77))
	d.Reset(true)
	o := newOrchestrator()

	seen := make(map[string]bool)
	for _, name := range []string{"celtic_cross", "horseshoe", "relationship", "three_card", "single_card"} {
		r, err := o.DrawSpread(d, spread.Named(name))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		for _, id := range cardIDs(r) {
			if seen[id] {
				t.Errorf("card %s repeated before reset", id)
			}
			seen[id] = true
		}
	}
}
