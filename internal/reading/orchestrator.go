// Package reading binds drawn cards and orientations to spread positions.
package reading

import (
	"fmt"
	"log/slog"

	"github.com/randomtoy/tarotteller/internal/deck"
	"github.com/randomtoy/tarotteller/internal/domain"
	"github.com/randomtoy/tarotteller/internal/orientation"
	"github.com/randomtoy/tarotteller/internal/spread"
)

// Orchestrator produces readings. It keeps no per-reading state; the deck and
// assigner it touches carry the RNG streams.
type Orchestrator struct {
	registry *spread.Registry
	assigner *orientation.Assigner
	logger   *slog.Logger
}

func New(registry *spread.Registry, assigner *orientation.Assigner, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{registry: registry, assigner: assigner, logger: logger}
}

// Option adjusts a single DrawSpread call.
type Option func(*drawOptions)

type drawOptions struct {
	allowReversed   bool
	cardSeed        *int64
	orientationSeed *int64
}

// WithReversed toggles reversed cards. Reversals are allowed by default.
func WithReversed(allow bool) Option {
	return func(o *drawOptions) { o.allowReversed = allow }
}

// WithCardSeed reshuffles the deck with seed before drawing.
func WithCardSeed(seed int64) Option {
	return func(o *drawOptions) { o.cardSeed = &seed }
}

// WithOrientationSeed fixes the orientation outcomes independently of the
// card order.
func WithOrientationSeed(seed int64) Option {
	return func(o *drawOptions) { o.orientationSeed = &seed }
}

// DrawSpread draws the cards for sel from d and returns the reading.
//
// Positions are resolved before any randomness is used, so an unknown spread
// or invalid count leaves the deck and the orientation stream untouched. The
// card seed only drives the deck shuffle and the orientation seed only drives
// orientations, so either can be held fixed while the other varies. A draw
// that cannot be satisfied returns ErrInsufficientCards and no reading.
func (o *Orchestrator) DrawSpread(d *deck.Deck, sel spread.Selector, opts ...Option) (domain.Reading, error) {
	cfg := drawOptions{allowReversed: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	s, err := o.registry.Resolve(sel, d.Len())
	if err != nil {
		return domain.Reading{}, fmt.Errorf("resolve spread %s: %w", sel, err)
	}
	count := s.Size()

	if cfg.cardSeed != nil {
		d.ResetWithSeed(*cfg.cardSeed)
	}

	cards, err := d.Draw(count)
	if err != nil {
		return domain.Reading{}, fmt.Errorf("draw %s: %w", s.Key, err)
	}

	reversed := o.orientations(count, cfg)

	placements := make([]domain.Placement, count)
	for i := range count {
		placements[i] = domain.Placement{
			Position:    s.Positions[i],
			Card:        cards[i],
			Orientation: domain.OrientationOf(reversed[i]),
		}
	}

	o.logger.Debug("reading drawn",
		"spread", s.Key,
		"count", count,
		"remaining", d.Remaining(),
		"allow_reversed", cfg.allowReversed,
	)

	return domain.Reading{Spread: s, Placements: placements}, nil
}

func (o *Orchestrator) orientations(n int, cfg drawOptions) []bool {
	prev := o.assigner.AllowReversed()
	o.assigner.SetAllowReversed(prev && cfg.allowReversed)
	defer o.assigner.SetAllowReversed(prev)
	return o.assigner.NextOrientations(n, cfg.orientationSeed)
}
