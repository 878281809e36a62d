package catalog_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/randomtoy/tarotteller/internal/catalog"
	"github.com/randomtoy/tarotteller/internal/domain"
)

func mustCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New()
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return c
}

func TestCatalog_FullSet(t *testing.T) {
	c := mustCatalog(t)
	cards := c.All()

	if len(cards) != 78 || c.Len() != 78 {
		t.Fatalf("expected 78 cards, got %d", len(cards))
	}

	var majors, minors int
	ids := make(map[string]bool)
	names := make(map[string]bool)
	for _, card := range cards {
		switch card.Arcana {
		case domain.Major:
			majors++
		case domain.Minor:
			minors++
		default:
			t.Errorf("%s: unexpected arcana %q", card.ID, card.Arcana)
		}
		if ids[card.ID] {
			t.Errorf("duplicate id %s", card.ID)
		}
		if names[card.Name] {
			t.Errorf("duplicate name %s", card.Name)
		}
		ids[card.ID] = true
		names[card.Name] = true
		if card.Upright == "" || card.Reversed == "" {
			t.Errorf("%s: missing meaning text", card.ID)
		}
	}
	if majors != 22 {
		t.Errorf("expected 22 major arcana, got %d", majors)
	}
	if minors != 56 {
		t.Errorf("expected 56 minor arcana, got %d", minors)
	}
}

func TestCatalog_Deterministic(t *testing.T) {
	a := mustCatalog(t).All()
	b := mustCatalog(t).All()
	if !reflect.DeepEqual(a, b) {
		t.Error("two catalogs differ")
	}
}

func TestCatalog_Order(t *testing.T) {
	cards := mustCatalog(t).All()
	if cards[0].ID != "major_arcana.00" || cards[0].Name != "The Fool" {
		t.Errorf("first card = %s (%s)", cards[0].ID, cards[0].Name)
	}
	if cards[21].Name != "The World" {
		t.Errorf("card 21 = %s", cards[21].Name)
	}
	if cards[22].ID != "minor_arcana.wands.ace" {
		t.Errorf("first minor = %s", cards[22].ID)
	}
	if cards[77].ID != "minor_arcana.pentacles.king" {
		t.Errorf("last card = %s", cards[77].ID)
	}
}

func TestCatalog_ByID(t *testing.T) {
	c := mustCatalog(t)

	card, err := c.ByID("minor_arcana.cups.queen")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if card.Name != "Queen of Cups" || card.Suit != domain.Cups {
		t.Errorf("unexpected card: %+v", card)
	}

	_, err = c.ByID("minor_arcana.coins.ace")
	if !errors.Is(err, domain.ErrCardNotFound) {
		t.Errorf("expected ErrCardNotFound, got %v", err)
	}
}

func TestCatalog_ByNameCaseInsensitive(t *testing.T) {
	c := mustCatalog(t)

	card, err := c.ByName(" the fool ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if card.Name != "The Fool" {
		t.Errorf("got %s", card.Name)
	}

	card, err = c.ByName("KNIGHT  OF   SWORDS")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if card.ID != "minor_arcana.swords.knight" {
		t.Errorf("got %s", card.ID)
	}

	if _, err := c.ByName("The Joker"); !errors.Is(err, domain.ErrCardNotFound) {
		t.Errorf("expected ErrCardNotFound, got %v", err)
	}
}

func TestCatalog_Lookup(t *testing.T) {
	c := mustCatalog(t)
	byID, err := c.Lookup("major_arcana.01")
	if err != nil || byID.Name != "The Magician" {
		t.Errorf("Lookup by id: %v %v", byID.Name, err)
	}
	byName, err := c.Lookup("the magician")
	if err != nil || byName.ID != "major_arcana.01" {
		t.Errorf("Lookup by name: %v %v", byName.ID, err)
	}
}

func TestCatalog_MinorPhrasingConsistentAcrossSuits(t *testing.T) {
	c := mustCatalog(t)

	// Stripping the suit-specific realm must leave identical rank phrasing.
	prefix := func(s string) string {
		i := strings.Index(s, " in matters of ")
		if i < 0 {
			t.Fatalf("meaning %q lacks suit realm", s)
		}
		return s[:i]
	}
	for _, rank := range []string{"ace", "five", "ten", "page", "king"} {
		var want string
		for _, suit := range domain.Suits {
			card, err := c.ByID("minor_arcana." + string(suit) + "." + rank)
			if err != nil {
				t.Fatalf("missing %s of %s: %v", rank, suit, err)
			}
			got := prefix(card.Upright) + "|" + prefix(card.Reversed)
			if want == "" {
				want = got
				continue
			}
			if got != want {
				t.Errorf("%s of %s phrased %q, want %q", rank, suit, got, want)
			}
		}
	}
}

func TestCatalog_Filter(t *testing.T) {
	c := mustCatalog(t)

	if got := len(c.Filter(domain.Major, "")); got != 22 {
		t.Errorf("major filter: %d", got)
	}
	if got := len(c.Filter(domain.Minor, "")); got != 56 {
		t.Errorf("minor filter: %d", got)
	}
	swords := c.Filter("", domain.Swords)
	if len(swords) != 14 {
		t.Fatalf("swords filter: %d", len(swords))
	}
	for _, card := range swords {
		if card.Suit != domain.Swords {
			t.Errorf("%s is not a sword", card.ID)
		}
	}
	if got := len(c.Filter("", "")); got != 78 {
		t.Errorf("empty filter: %d", got)
	}
}

func TestCatalog_AllReturnsCopy(t *testing.T) {
	c := mustCatalog(t)
	cards := c.All()
	cards[0].Name = "mutated"
	cards[0].Keywords[0] = "mutated"
	if c.All()[0].Name != "The Fool" {
		t.Error("All exposed internal slice")
	}
	fool, err := c.ByID("major_arcana.00")
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if fool.Keywords[0] == "mutated" {
		t.Error("All shared keyword storage with the catalog")
	}
}

func TestCatalog_LookupsReturnDeepCopies(t *testing.T) {
	c := mustCatalog(t)
	want := c.All()[1].Keywords[0]

	byID, _ := c.ByID("major_arcana.01")
	byID.Keywords[0] = "mutated"
	byName, _ := c.ByName("The Magician")
	if byName.Keywords[0] != want {
		t.Errorf("ByID shared keywords: got %q", byName.Keywords[0])
	}
	byName.Keywords[0] = "mutated"
	filtered := c.Filter(domain.Major, "")
	if filtered[1].Keywords[0] != want {
		t.Errorf("ByName shared keywords: got %q", filtered[1].Keywords[0])
	}
	filtered[1].Keywords[0] = "mutated"
	if got, _ := c.Lookup("major_arcana.01"); got.Keywords[0] != want {
		t.Errorf("Filter shared keywords: got %q", got.Keywords[0])
	}
}
