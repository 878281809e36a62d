package spread

import (
	"fmt"
	"strings"

	"github.com/randomtoy/tarotteller/internal/domain"
)

// Kind is the closed set of built-in spreads.
type Kind int

const (
	SingleCard Kind = iota + 1
	ThreeCard
	CelticCross
	Horseshoe
	Relationship
)

// Kinds lists every built-in kind in registry order.
var Kinds = []Kind{SingleCard, ThreeCard, CelticCross, Horseshoe, Relationship}

// Key returns the registry key for k.
func (k Kind) Key() string {
	switch k {
	case SingleCard:
		return "single_card"
	case ThreeCard:
		return "three_card"
	case CelticCross:
		return "celtic_cross"
	case Horseshoe:
		return "horseshoe"
	case Relationship:
		return "relationship"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (k Kind) String() string { return k.Key() }

// ParseKind maps a spread key (or accepted alias) to its Kind.
func ParseKind(name string) (Kind, error) {
	switch normalizeKey(name) {
	case "single_card", "single":
		return SingleCard, nil
	case "three_card", "three":
		return ThreeCard, nil
	case "celtic_cross", "celtic":
		return CelticCross, nil
	case "horseshoe":
		return Horseshoe, nil
	case "relationship":
		return Relationship, nil
	default:
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownSpread, name)
	}
}

func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "_", " ", "_").Replace(s)
}

// definition returns the built-in layout for k. Every Kind must have a case.
func definition(k Kind) domain.Spread {
	switch k {
	case SingleCard:
		return build(k, "Single Card Insight",
			"One card that distils the energy of the moment.",
			[2]string{"Message", "What guidance does this moment ask you to notice?"},
		)
	case ThreeCard:
		return build(k, "Three Card Story",
			"Past, present, and future woven into a short narrative arc.",
			[2]string{"Past", "What history is influencing the situation?"},
			[2]string{"Present", "Where does the situation currently stand?"},
			[2]string{"Future", "Where is the situation heading if nothing changes?"},
		)
	case CelticCross:
		return build(k, "Celtic Cross",
			"A ten-card deep dive into the forces shaping a situation.",
			[2]string{"Present", "What is at the heart of the matter?"},
			[2]string{"Challenge", "What crosses or complicates it?"},
			[2]string{"Foundation", "What lies beneath, at the root?"},
			[2]string{"Recent Past", "What is passing out of influence?"},
			[2]string{"Crown", "What is the best that can be achieved?"},
			[2]string{"Near Future", "What is about to come into play?"},
			[2]string{"Self", "How are you showing up?"},
			[2]string{"Environment", "How do others and circumstances shape it?"},
			[2]string{"Hopes and Fears", "What do you long for or dread?"},
			[2]string{"Outcome", "Where is this path leading?"},
		)
	case Horseshoe:
		return build(k, "Horseshoe",
			"Seven cards arcing from the past toward a likely outcome.",
			[2]string{"Past", "What set this in motion?"},
			[2]string{"Present", "What is happening now?"},
			[2]string{"Hidden Influences", "What is working out of sight?"},
			[2]string{"Obstacles", "What stands in the way?"},
			[2]string{"External Influences", "How are other people affecting this?"},
			[2]string{"Advice", "What approach would serve you best?"},
			[2]string{"Outcome", "What is the likely result?"},
		)
	case Relationship:
		return build(k, "Relationship Mirror",
			"Five cards reflecting both people and the bond between them.",
			[2]string{"You", "What do you bring to the connection?"},
			[2]string{"Partner", "What does the other person bring?"},
			[2]string{"Connection", "What is the nature of the bond right now?"},
			[2]string{"Challenge", "What tension needs attention?"},
			[2]string{"Potential", "What could this relationship grow into?"},
		)
	default:
		panic(fmt.Sprintf("spread: no definition for %s", k))
	}
}

func build(k Kind, name, description string, positions ...[2]string) domain.Spread {
	s := domain.Spread{
		Key:         k.Key(),
		Name:        name,
		Description: description,
		Positions:   make([]domain.Position, len(positions)),
	}
	for i, p := range positions {
		s.Positions[i] = domain.Position{Index: i + 1, Title: p[0], Prompt: p[1]}
	}
	return s
}
