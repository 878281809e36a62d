package catalog

import (
	"fmt"

	"github.com/randomtoy/tarotteller/internal/domain"
)

type suitTheme struct {
	suit    domain.Suit
	name    string
	element string
	realm   string
	keyword string
}

type rankTheme struct {
	key      string
	name     string
	upright  string
	reversed string
	keywords []string
}

var suitThemes = []suitTheme{
	{domain.Wands, "Wands", "fire", "drive, creativity, and ambition", "inspiration"},
	{domain.Cups, "Cups", "water", "emotion, intimacy, and intuition", "feeling"},
	{domain.Swords, "Swords", "air", "thought, conflict, and truth", "clarity"},
	{domain.Pentacles, "Pentacles", "earth", "work, resources, and the body", "prosperity"},
}

var rankThemes = []rankTheme{
	{"ace", "Ace", "A seed of new potential opens", "A promising start is delayed or misdirected", []string{"potential", "beginnings"}},
	{"two", "Two", "A choice between two paths asks for balance", "Indecision keeps two paths from converging", []string{"choice", "balance"}},
	{"three", "Three", "Early growth arrives through collaboration", "Growth stalls when cooperation breaks down", []string{"growth", "collaboration"}},
	{"four", "Four", "A stable pause consolidates what has been built", "Stability hardens into stagnation", []string{"stability", "rest"}},
	{"five", "Five", "Friction tests what truly matters", "Lingering conflict finally begins to ease", []string{"conflict", "challenge"}},
	{"six", "Six", "Harmony returns and generosity flows", "Old patterns block an easy exchange", []string{"harmony", "exchange"}},
	{"seven", "Seven", "Persistence and reassessment guide the next move", "Doubt and distraction thin your resolve", []string{"assessment", "perseverance"}},
	{"eight", "Eight", "Focused effort builds real movement", "Effort spins without moving forward", []string{"movement", "diligence"}},
	{"nine", "Nine", "Near-completion brings resilience and reward", "Exhaustion or worry clouds a nearly finished cycle", []string{"resilience", "fulfilment"}},
	{"ten", "Ten", "A cycle reaches its full and heavy conclusion", "The weight of a completed cycle is ready to be set down", []string{"completion", "culmination"}},
	{"page", "Page", "Curious messages invite a beginner's mind", "Immaturity or mixed signals scatter curiosity", []string{"curiosity", "messages"}},
	{"knight", "Knight", "Bold pursuit carries the energy forward", "Haste or hesitation throws the pursuit off course", []string{"action", "pursuit"}},
	{"queen", "Queen", "Nurturing mastery holds the space steadily", "Mastery turns inward and grows guarded", []string{"nurturing", "mastery"}},
	{"king", "King", "Mature authority directs the energy with purpose", "Authority slips into control or neglect", []string{"authority", "leadership"}},
}

// minorArcana generates the 56 suited cards. Every suit shares the same rank
// templates, so meanings stay phrased identically across suits.
func minorArcana() []domain.Card {
	cards := make([]domain.Card, 0, len(suitThemes)*len(rankThemes))
	for _, s := range suitThemes {
		for i, r := range rankThemes {
			keywords := make([]string, 0, len(r.keywords)+2)
			keywords = append(keywords, r.keywords...)
			keywords = append(keywords, s.keyword, s.element)

			cards = append(cards, domain.Card{
				ID:       fmt.Sprintf("minor_arcana.%s.%s", s.suit, r.key),
				Name:     fmt.Sprintf("%s of %s", r.name, s.name),
				Arcana:   domain.Minor,
				Suit:     s.suit,
				Rank:     r.key,
				Number:   i + 1,
				Keywords: keywords,
				Upright:  fmt.Sprintf("%s in matters of %s.", r.upright, s.realm),
				Reversed: fmt.Sprintf("%s in matters of %s.", r.reversed, s.realm),
			})
		}
	}
	return cards
}
