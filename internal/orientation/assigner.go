// Package orientation decides whether drawn cards land upright or reversed.
//
// Its RNG is separate from the deck's card-order RNG: reseeding one never
// changes the other's future output.
package orientation

import (
	"iter"

	"github.com/randomtoy/tarotteller/internal/domain"
	"github.com/randomtoy/tarotteller/internal/random"
)

// Assigner produces reversal flags (true = reversed). Not safe for
// concurrent use.
type Assigner struct {
	newRNG        random.Factory
	rng           domain.RNG
	allowReversed bool
}

// Option configures an Assigner.
type Option func(*options)

type options struct {
	seed          *int64
	factory       random.Factory
	allowReversed bool
}

// WithSeed seeds the assigner's own stream instead of drawing a seed from
// entropy.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = &seed }
}

// WithRNG replaces the RNG constructor, mainly for scripted tests.
func WithRNG(f random.Factory) Option {
	return func(o *options) { o.factory = f }
}

// WithoutReversed starts the assigner in no-reversed mode.
func WithoutReversed() Option {
	return func(o *options) { o.allowReversed = false }
}

// New returns an assigner whose own stream is seeded from entropy unless
// WithSeed is given. Options may appear in any order.
func New(opts ...Option) *Assigner {
	o := options{factory: random.DefaultFactory, allowReversed: true}
	for _, opt := range opts {
		opt(&o)
	}
	seed := random.MustSeed()
	if o.seed != nil {
		seed = *o.seed
	}
	return &Assigner{
		newRNG:        o.factory,
		rng:           o.factory(seed),
		allowReversed: o.allowReversed,
	}
}

// SetAllowReversed toggles no-reversed mode. Disabling reversals forces every
// outcome to false but still advances the stream.
func (a *Assigner) SetAllowReversed(allow bool) { a.allowReversed = allow }

// AllowReversed reports whether reversed outcomes are possible.
func (a *Assigner) AllowReversed() bool { return a.allowReversed }

// NextOrientations returns n reversal flags. With a seed the result depends
// only on (seed, n) and the assigner's own stream is left untouched; with a
// nil seed the assigner's stream is consumed.
func (a *Assigner) NextOrientations(n int, seed *int64) []bool {
	if n < 1 {
		return nil
	}
	rng := a.rng
	if seed != nil {
		rng = a.newRNG(*seed)
	}
	out := make([]bool, n)
	for i := range n {
		out[i] = flip(rng) && a.allowReversed
	}
	return out
}

// Stream returns an unbounded lazy sequence of reversal flags for seed,
// independent of the assigner's own stream. The no-reversed mode in effect
// when Stream is called applies to the whole sequence.
func (a *Assigner) Stream(seed int64) iter.Seq[bool] {
	allow := a.allowReversed
	factory := a.newRNG
	return func(yield func(bool) bool) {
		rng := factory(seed)
		for {
			if !yield(flip(rng) && allow) {
				return
			}
		}
	}
}

func flip(rng domain.RNG) bool { return rng.IntN(2) == 1 }
