package decks

import (
	"context"
	"fmt"
	"slices"

	"github.com/randomtoy/tarotteller/internal/catalog"
	"github.com/randomtoy/tarotteller/internal/domain"
)

// DefaultID is the full 78-card set.
const DefaultID = "tarot"

type cardSetDef struct {
	name   string
	arcana domain.Arcana
	suit   domain.Suit
}

// registry maps card-set IDs to catalog filters.
var registry = map[string]cardSetDef{
	DefaultID:                {name: "Full Tarot"},
	"major_arcana":           {name: "Major Arcana", arcana: domain.Major},
	"minor_arcana":           {name: "Minor Arcana", arcana: domain.Minor},
	string(domain.Wands):     {name: "Wands", arcana: domain.Minor, suit: domain.Wands},
	string(domain.Cups):      {name: "Cups", arcana: domain.Minor, suit: domain.Cups},
	string(domain.Swords):    {name: "Swords", arcana: domain.Minor, suit: domain.Swords},
	string(domain.Pentacles): {name: "Pentacles", arcana: domain.Minor, suit: domain.Pentacles},
}

// Store serves named subsets of a catalog. It is read-only and safe to share.
type Store struct {
	sets map[string]domain.CardSet
}

func NewStore(c *catalog.Catalog) *Store {
	s := &Store{sets: make(map[string]domain.CardSet, len(registry))}
	for id, def := range registry {
		s.sets[id] = domain.CardSet{
			ID:    id,
			Name:  def.name,
			Cards: c.Filter(def.arcana, def.suit),
		}
	}
	return s
}

func (s *Store) GetCardSet(_ context.Context, id string) (domain.CardSet, error) {
	if id == "" {
		id = DefaultID
	}
	set, ok := s.sets[id]
	if !ok {
		return domain.CardSet{}, fmt.Errorf("%w: %q", domain.ErrDeckNotFound, id)
	}
	set.Cards = domain.CloneCards(set.Cards)
	return set, nil
}

// ListCardSets returns the known IDs, sorted.
func (s *Store) ListCardSets(_ context.Context) []string {
	ids := make([]string, 0, len(s.sets))
	for id := range s.sets {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
