package ports

import (
	"context"

	"github.com/randomtoy/tarotteller/internal/domain"
)

// CardSetStore provides the card sets decks are built from.
type CardSetStore interface {
	GetCardSet(ctx context.Context, id string) (domain.CardSet, error)
	ListCardSets(ctx context.Context) []string
}
