package decks_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/randomtoy/tarotteller/internal/adapters/decks"
	"github.com/randomtoy/tarotteller/internal/catalog"
	"github.com/randomtoy/tarotteller/internal/domain"
)

func newStore(t *testing.T) *decks.Store {
	t.Helper()
	c, err := catalog.New()
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return decks.NewStore(c)
}

func TestStore_GetCardSet(t *testing.T) {
	s := newStore(t)
	tests := []struct {
		id   string
		size int
	}{
		{"", 78},
		{"tarot", 78},
		{"major_arcana", 22},
		{"minor_arcana", 56},
		{"cups", 14},
		{"pentacles", 14},
	}
	for _, tt := range tests {
		set, err := s.GetCardSet(context.Background(), tt.id)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tt.id, err)
			continue
		}
		if len(set.Cards) != tt.size {
			t.Errorf("%q: expected %d cards, got %d", tt.id, tt.size, len(set.Cards))
		}
	}
}

func TestStore_NotFound(t *testing.T) {
	_, err := newStore(t).GetCardSet(context.Background(), "lenormand")
	if !errors.Is(err, domain.ErrDeckNotFound) {
		t.Errorf("expected ErrDeckNotFound, got %v", err)
	}
}

func TestStore_ReturnsCopies(t *testing.T) {
	s := newStore(t)
	set, _ := s.GetCardSet(context.Background(), "tarot")
	want := set.Cards[0].Keywords[0]
	set.Cards[0].Name = "mutated"
	set.Cards[0].Keywords[0] = "mutated"
	again, _ := s.GetCardSet(context.Background(), "tarot")
	if again.Cards[0].Name != "The Fool" {
		t.Error("store exposed internal slice")
	}
	if again.Cards[0].Keywords[0] != want {
		t.Errorf("store shared keyword storage: got %q", again.Cards[0].Keywords[0])
	}
}

func TestStore_ListCardSets(t *testing.T) {
	ids := newStore(t).ListCardSets(context.Background())
	want := []string{"cups", "major_arcana", "minor_arcana", "pentacles", "swords", "tarot", "wands"}
	if !slices.Equal(ids, want) {
		t.Errorf("got %v, want %v", ids, want)
	}
}
