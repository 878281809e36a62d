// Package catalog defines the 78 canonical tarot cards.
//
// The major arcana are authored in data/major_arcana.json and embedded in the
// binary; the minor arcana are generated from suit × rank. A Catalog is
// read-only once built and is safe to share.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/randomtoy/tarotteller/internal/domain"
)

//go:embed data/*.json
var dataFS embed.FS

const (
	majorCount = 22
	// Size is the number of cards in the full catalog.
	Size = 78
)

// Catalog holds the full card list plus lookup indexes.
type Catalog struct {
	cards  []domain.Card
	byID   map[string]int
	byName map[string]int
}

// New builds the catalog. It is deterministic: every call returns an
// identical card list.
func New() (*Catalog, error) {
	majors, err := loadMajors()
	if err != nil {
		return nil, err
	}

	cards := make([]domain.Card, 0, Size)
	cards = append(cards, majors...)
	cards = append(cards, minorArcana()...)
	if len(cards) != Size {
		return nil, fmt.Errorf("catalog: built %d cards, want %d", len(cards), Size)
	}

	c := &Catalog{
		cards:  cards,
		byID:   make(map[string]int, len(cards)),
		byName: make(map[string]int, len(cards)),
	}
	for i, card := range cards {
		if _, dup := c.byID[card.ID]; dup {
			return nil, fmt.Errorf("catalog: %w: id %s", domain.ErrDuplicateCard, card.ID)
		}
		key := foldName(card.Name)
		if _, dup := c.byName[key]; dup {
			return nil, fmt.Errorf("catalog: %w: name %s", domain.ErrDuplicateCard, card.Name)
		}
		c.byID[card.ID] = i
		c.byName[key] = i
	}
	return c, nil
}

func loadMajors() ([]domain.Card, error) {
	raw, err := dataFS.ReadFile("data/major_arcana.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded major arcana: %w", err)
	}
	var cards []domain.Card
	if err := json.Unmarshal(raw, &cards); err != nil {
		return nil, fmt.Errorf("parse embedded major arcana: %w", err)
	}
	if len(cards) != majorCount {
		return nil, fmt.Errorf("catalog: %d major arcana, want %d", len(cards), majorCount)
	}
	for i := range cards {
		cards[i].Arcana = domain.Major
	}
	return cards, nil
}

// All returns every card in catalog order: majors 0–21, then minors by suit
// and rank. The returned cards are deep copies.
func (c *Catalog) All() []domain.Card {
	return domain.CloneCards(c.cards)
}

// Len returns the number of cards in the catalog.
func (c *Catalog) Len() int { return len(c.cards) }

// ByID returns the card with the given canonical ID.
func (c *Catalog) ByID(id string) (domain.Card, error) {
	i, ok := c.byID[strings.TrimSpace(id)]
	if !ok {
		return domain.Card{}, fmt.Errorf("%w: %q", domain.ErrCardNotFound, id)
	}
	return c.cards[i].Clone(), nil
}

// ByName looks a card up by display name, ignoring case and surrounding
// whitespace.
func (c *Catalog) ByName(name string) (domain.Card, error) {
	i, ok := c.byName[foldName(name)]
	if !ok {
		return domain.Card{}, fmt.Errorf("%w: %q", domain.ErrCardNotFound, name)
	}
	return c.cards[i].Clone(), nil
}

// Lookup tries ByID first, then ByName.
func (c *Catalog) Lookup(idOrName string) (domain.Card, error) {
	if card, err := c.ByID(idOrName); err == nil {
		return card, nil
	}
	return c.ByName(idOrName)
}

// Filter returns cards matching arcana and suit, in catalog order. Empty
// values match everything.
func (c *Catalog) Filter(arcana domain.Arcana, suit domain.Suit) []domain.Card {
	return domain.FilterCards(c.cards, arcana, suit, 0)
}

func foldName(s string) string {
	return cases.Fold().String(strings.Join(strings.Fields(s), " "))
}
