// Package render formats readings and cards for terminal output.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/randomtoy/tarotteller/internal/domain"
	"github.com/randomtoy/tarotteller/internal/ports"
	"github.com/randomtoy/tarotteller/internal/spread"
)

// Format selects an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts text, json or yaml in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, json or yaml)", s)
	}
}

// Text writes a human-readable reading: a header with the spread name and
// description, then one block per placement. Readings drawn by count have
// no named positions and are labelled "Card N".
func Text(w io.Writer, r domain.Reading) error {
	adHoc := r.Spread.Key == spread.AdHocKey
	var b strings.Builder
	b.WriteString(r.Spread.Name)
	b.WriteByte('\n')
	if r.Spread.Description != "" {
		b.WriteString(r.Spread.Description)
		b.WriteByte('\n')
	}
	for _, p := range r.Placements {
		if adHoc {
			fmt.Fprintf(&b, "\nCard %d: %s (%s)\n   %s\n", p.Position.Index, p.Card.Name, p.Orientation, p.Meaning())
			continue
		}
		fmt.Fprintf(&b, "\n%d. %s — %s (%s)\n", p.Position.Index, p.Position.Title, p.Card.Name, p.Orientation)
		if p.Position.Prompt != "" {
			fmt.Fprintf(&b, "   %s\n", p.Position.Prompt)
		}
		fmt.Fprintf(&b, "   %s\n", p.Meaning())
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Interpretation writes a narrative summary followed by per-card insights.
func Interpretation(w io.Writer, out ports.InterpretOutput) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Interpretation (%s)\n%s\n", out.Tone, out.Summary)
	for _, ci := range out.CardInsights {
		fmt.Fprintf(&b, "\n%s: %s (%s)\n   %s\n", ci.Position, ci.Card, ci.Orientation, ci.Message)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func YAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// CardList writes a header naming the deck, then one line per card: ID and
// name.
func CardList(w io.Writer, deckID string, cards []domain.Card) error {
	width := 0
	for _, c := range cards {
		width = max(width, len(c.ID))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Cards in deck %s (%d):\n", deckID, len(cards))
	for _, c := range cards {
		fmt.Fprintf(&b, "%-*s  %s\n", width, c.ID, c.Name)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// CardInfo writes the full description of one card.
func CardInfo(w io.Writer, c domain.Card) error {
	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteByte('\n')
	fmt.Fprintf(&b, "ID : %s\n", c.ID)
	fmt.Fprintf(&b, "Arcana : %s\n", title(string(c.Arcana)))
	if c.Suit != "" {
		fmt.Fprintf(&b, "Suit : %s\n", title(string(c.Suit)))
		fmt.Fprintf(&b, "Rank : %s\n", title(c.Rank))
	} else {
		fmt.Fprintf(&b, "Number : %d\n", c.Number)
	}
	fmt.Fprintf(&b, "Keywords : %s\n", strings.Join(c.Keywords, ", "))
	fmt.Fprintf(&b, "Upright : %s\n", c.Upright)
	fmt.Fprintf(&b, "Reversed : %s\n", c.Reversed)
	_, err := io.WriteString(w, b.String())
	return err
}

// Spreads writes each spread with its numbered positions.
func Spreads(w io.Writer, spreads []domain.Spread) error {
	var b strings.Builder
	for i, s := range spreads {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s (%s, %d cards)\n", s.Name, s.Key, s.Size())
		for _, p := range s.Positions {
			fmt.Fprintf(&b, "  %d. %s\n", p.Index, p.Title)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Casers carry state, so each call gets its own.
func title(s string) string { return cases.Title(language.English).String(s) }
