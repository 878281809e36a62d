package spread

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/randomtoy/tarotteller/internal/domain"
)

// Selector picks the layout for a reading: either a named spread or an
// ad-hoc card count. The zero value selects nothing and fails to resolve.
type Selector struct {
	key   string
	count int
	isNum bool
}

// Named selects a spread by registry key.
func Named(key string) Selector { return Selector{key: key} }

// ForKind selects a built-in spread.
func ForKind(k Kind) Selector { return Selector{key: k.Key()} }

// Count selects an unlabelled draw of n cards.
func Count(n int) Selector { return Selector{count: n, isNum: true} }

// ParseSelector reads a CLI or query value: integers become counts,
// anything else a spread name. An integer too large to represent is an
// invalid count, not a name.
func ParseSelector(raw string) (Selector, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Selector{}, fmt.Errorf("%w: empty selector", domain.ErrUnknownSpread)
	}
	if !isInteger(raw) {
		return Named(raw), nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return Selector{}, fmt.Errorf("%w: %s", domain.ErrInvalidCardCount, raw)
	}
	return Count(n), nil
}

func isInteger(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsCount reports whether s is an ad-hoc count.
func (s Selector) IsCount() bool { return s.isNum }

func (s Selector) String() string {
	if s.isNum {
		return strconv.Itoa(s.count)
	}
	return s.key
}
