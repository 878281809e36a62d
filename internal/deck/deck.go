// Package deck holds the mutable draw order over a fixed set of cards.
//
// A Deck is not safe for concurrent use. Hosts sharing one across goroutines
// must serialise access themselves.
package deck

import (
	"fmt"

	"github.com/randomtoy/tarotteller/internal/domain"
	"github.com/randomtoy/tarotteller/internal/random"
)

// Deck is an ordered sequence of cards with a draw cursor and its own RNG.
//
// # Determinism
//
// Two decks built from the same cards, seeded with the same value and driven
// through the same Reset/Draw calls produce identical draws.
//
// # Seeding
//
// Seed replaces the RNG used by the next shuffling Reset. It never alters the
// current order or cursor, so reseeding between draws has no effect until the
// deck is reset.
type Deck struct {
	cards  []domain.Card
	order  []int
	cursor int

	newRNG random.Factory
	rng    domain.RNG
}

// Option configures a Deck.
type Option func(*options)

type options struct {
	seed    *int64
	factory random.Factory
}

// WithSeed seeds the deck RNG instead of drawing a seed from entropy.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = &seed }
}

// WithRNG replaces the RNG constructor, mainly for scripted tests.
func WithRNG(f random.Factory) Option {
	return func(o *options) { o.factory = f }
}

// New creates a deck over cards in the given (canonical) order. The deck
// starts unshuffled; call Reset(true) or ResetWithSeed to shuffle.
func New(cards []domain.Card, opts ...Option) (*Deck, error) {
	if len(cards) == 0 {
		return nil, fmt.Errorf("new deck: %w: empty card set", domain.ErrInvalidCardCount)
	}
	seen := make(map[string]struct{}, len(cards))
	for _, c := range cards {
		if _, ok := seen[c.ID]; ok {
			return nil, fmt.Errorf("new deck: %w: %s", domain.ErrDuplicateCard, c.ID)
		}
		seen[c.ID] = struct{}{}
	}

	o := options{factory: random.DefaultFactory}
	for _, opt := range opts {
		opt(&o)
	}
	seed := random.MustSeed()
	if o.seed != nil {
		seed = *o.seed
	}

	d := &Deck{
		cards:  domain.CloneCards(cards),
		order:  make([]int, len(cards)),
		newRNG: o.factory,
		rng:    o.factory(seed),
	}
	d.restore()
	return d, nil
}

// Seed replaces the RNG used by the next shuffling reset.
func (d *Deck) Seed(seed int64) {
	d.rng = d.newRNG(seed)
}

// Reset restores every card and rewinds the cursor. With shuffle it applies
// a uniform permutation from the deck's RNG stream, otherwise it restores
// canonical order.
func (d *Deck) Reset(shuffle bool) {
	d.restore()
	if shuffle {
		d.shuffle()
	}
}

// ResetWithSeed reseeds the RNG and then resets with a shuffle.
func (d *Deck) ResetWithSeed(seed int64) {
	d.Seed(seed)
	d.Reset(true)
}

// Draw returns the next n cards and advances the cursor. It fails without
// consuming anything when n is not positive or exceeds Remaining.
func (d *Deck) Draw(n int) ([]domain.Card, error) {
	if n < 1 {
		return nil, fmt.Errorf("draw %d: %w", n, domain.ErrInvalidCardCount)
	}
	if n > d.Remaining() {
		return nil, fmt.Errorf("draw %d with %d remaining: %w", n, d.Remaining(), domain.ErrInsufficientCards)
	}

	out := make([]domain.Card, n)
	for i := range n {
		out[i] = d.cards[d.order[d.cursor+i]].Clone()
	}
	d.cursor += n
	return out, nil
}

// Remaining returns the number of undrawn cards.
func (d *Deck) Remaining() int { return len(d.order) - d.cursor }

// Drawn returns how many cards have been drawn since the last reset.
func (d *Deck) Drawn() int { return d.cursor }

// Len returns the size of the configured card set.
func (d *Deck) Len() int { return len(d.cards) }

// Cards returns the configured card set in canonical order.
func (d *Deck) Cards() []domain.Card {
	return domain.CloneCards(d.cards)
}

func (d *Deck) restore() {
	for i := range d.order {
		d.order[i] = i
	}
	d.cursor = 0
}

// shuffle is a Fisher–Yates pass over the full order.
func (d *Deck) shuffle() {
	for i := len(d.order) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.order[i], d.order[j] = d.order[j], d.order[i]
	}
}
