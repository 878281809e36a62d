package domain

import "slices"

// RNG abstracts random number generation for deterministic testing.
// *math/rand/v2.Rand satisfies it.
type RNG interface {
	// IntN returns a non-negative random int in [0, n).
	IntN(n int) int
}

// Orientation represents the orientation of a drawn tarot card.
type Orientation string

const (
	Upright  Orientation = "upright"
	Reversed Orientation = "reversed"
)

// OrientationOf maps a reversal flag to an Orientation.
func OrientationOf(reversed bool) Orientation {
	if reversed {
		return Reversed
	}
	return Upright
}

// IsReversed reports whether o is Reversed.
func (o Orientation) IsReversed() bool { return o == Reversed }

// Arcana is the major/minor division of the deck.
type Arcana string

const (
	Major Arcana = "major"
	Minor Arcana = "minor"
)

// Suit identifies a minor-arcana suit. Major arcana cards have no suit.
type Suit string

const (
	Wands     Suit = "wands"
	Cups      Suit = "cups"
	Swords    Suit = "swords"
	Pentacles Suit = "pentacles"
)

// Suits lists the minor suits in catalog order.
var Suits = []Suit{Wands, Cups, Swords, Pentacles}

// Card is a single, immutable tarot card definition.
type Card struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Arcana   Arcana   `json:"arcana" yaml:"arcana"`
	Suit     Suit     `json:"suit,omitempty" yaml:"suit,omitempty"`
	Rank     string   `json:"rank,omitempty" yaml:"rank,omitempty"`
	Number   int      `json:"number" yaml:"number"`
	Keywords []string `json:"keywords" yaml:"keywords"`
	Upright  string   `json:"upright" yaml:"upright"`
	Reversed string   `json:"reversed" yaml:"reversed"`
}

// Clone returns a copy of c that shares no slices with it.
func (c Card) Clone() Card {
	c.Keywords = slices.Clone(c.Keywords)
	return c
}

// CloneCards deep-copies a card slice.
func CloneCards(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	out := make([]Card, len(cards))
	for i, c := range cards {
		out[i] = c.Clone()
	}
	return out
}

// FilterCards returns deep copies of the cards matching arcana and suit, in
// input order. Empty filters match everything; a non-positive limit means no
// limit.
func FilterCards(cards []Card, arcana Arcana, suit Suit, limit int) []Card {
	var out []Card
	for _, c := range cards {
		if arcana != "" && c.Arcana != arcana {
			continue
		}
		if suit != "" && c.Suit != suit {
			continue
		}
		out = append(out, c.Clone())
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Meaning returns the meaning text matching o.
func (c Card) Meaning(o Orientation) string {
	if o == Reversed {
		return c.Reversed
	}
	return c.Upright
}

// CardSet is a named collection of cards a deck can be built from.
type CardSet struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Cards []Card `json:"cards"`
}

// Position is one slot of a spread. Index is 1-based.
type Position struct {
	Index  int    `json:"index" yaml:"index"`
	Title  string `json:"title" yaml:"title"`
	Prompt string `json:"prompt" yaml:"prompt"`
}

// Spread is a named, fixed-length ordered list of positions.
type Spread struct {
	Key         string     `json:"key" yaml:"key"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description" yaml:"description"`
	Positions   []Position `json:"positions" yaml:"positions"`
}

// Size returns the number of positions, which is also the number of cards
// a reading of this spread draws.
func (s Spread) Size() int { return len(s.Positions) }

// Placement binds one drawn card to one spread position.
type Placement struct {
	Position    Position    `json:"position" yaml:"position"`
	Card        Card        `json:"card" yaml:"card"`
	Orientation Orientation `json:"orientation" yaml:"orientation"`
}

// Meaning returns the card meaning selected by the placement's orientation.
func (p Placement) Meaning() string { return p.Card.Meaning(p.Orientation) }

// Reading is the ordered result of one draw. Placements follow draw order.
type Reading struct {
	Spread     Spread      `json:"spread" yaml:"spread"`
	Placements []Placement `json:"placements" yaml:"placements"`
}

// Len returns the number of placements.
func (r Reading) Len() int { return len(r.Placements) }

// Cards returns the drawn cards in draw order.
func (r Reading) Cards() []Card {
	out := make([]Card, len(r.Placements))
	for i, p := range r.Placements {
		out[i] = p.Card
	}
	return out
}
