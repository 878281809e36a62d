// Package spread holds the table of named spread layouts.
package spread

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/randomtoy/tarotteller/internal/domain"
)

// AdHocKey is the spread key used for readings drawn by card count.
const AdHocKey = "custom"

// Registry maps spread keys to layouts. Lookups are read-only; Register is
// only meant for start-up wiring.
type Registry struct {
	spreads map[string]domain.Spread
	order   []string
}

// NewRegistry returns a registry loaded with every built-in Kind.
func NewRegistry() *Registry {
	r := &Registry{spreads: make(map[string]domain.Spread, len(Kinds))}
	for _, k := range Kinds {
		s := definition(k)
		r.spreads[s.Key] = s
		r.order = append(r.order, s.Key)
	}
	return r
}

// Register adds a custom spread. Keys must be new and every position needs a
// title.
func (r *Registry) Register(s domain.Spread) error {
	key := normalizeKey(s.Key)
	if key == "" || key == AdHocKey || len(s.Positions) == 0 {
		return fmt.Errorf("register %q: %w", s.Key, domain.ErrInvalidSpread)
	}
	if _, err := ParseKind(key); err == nil {
		return fmt.Errorf("register %q: %w", s.Key, domain.ErrDuplicateSpread)
	}
	if _, ok := r.spreads[key]; ok {
		return fmt.Errorf("register %q: %w", s.Key, domain.ErrDuplicateSpread)
	}

	positions := make([]domain.Position, len(s.Positions))
	for i, p := range s.Positions {
		if strings.TrimSpace(p.Title) == "" {
			return fmt.Errorf("register %q: position %d: %w", s.Key, i+1, domain.ErrInvalidSpread)
		}
		p.Index = i + 1
		positions[i] = p
	}
	s.Key = key
	s.Positions = positions

	r.spreads[key] = s
	r.order = append(r.order, key)
	return nil
}

// Lookup returns the spread registered under name. Built-in aliases such as
// "single" resolve to their canonical key.
func (r *Registry) Lookup(name string) (domain.Spread, error) {
	key := normalizeKey(name)
	if k, err := ParseKind(key); err == nil {
		key = k.Key()
	}
	s, ok := r.spreads[key]
	if !ok {
		return domain.Spread{}, fmt.Errorf("%w: %q", domain.ErrUnknownSpread, name)
	}
	return clone(s), nil
}

// LookupKind returns the built-in spread for k.
func (r *Registry) LookupKind(k Kind) (domain.Spread, error) {
	return r.Lookup(k.Key())
}

// Spreads returns every registered spread in registration order.
func (r *Registry) Spreads() []domain.Spread {
	out := make([]domain.Spread, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, clone(r.spreads[key]))
	}
	return out
}

// Resolve turns a selector into a concrete spread. Ad-hoc counts must lie in
// [1, maxCards].
func (r *Registry) Resolve(sel Selector, maxCards int) (domain.Spread, error) {
	if !sel.IsCount() {
		return r.Lookup(sel.key)
	}
	if sel.count < 1 || sel.count > maxCards {
		return domain.Spread{}, fmt.Errorf("%w: %d (want 1..%d)", domain.ErrInvalidCardCount, sel.count, maxCards)
	}
	return adHoc(sel.count), nil
}

func adHoc(n int) domain.Spread {
	s := domain.Spread{
		Key:         AdHocKey,
		Name:        "Custom Draw",
		Description: fmt.Sprintf("%d card(s) drawn without a fixed layout.", n),
		Positions:   make([]domain.Position, n),
	}
	for i := range n {
		s.Positions[i] = domain.Position{Index: i + 1, Title: "Card " + strconv.Itoa(i+1)}
	}
	return s
}

func clone(s domain.Spread) domain.Spread {
	s.Positions = append([]domain.Position(nil), s.Positions...)
	return s
}
