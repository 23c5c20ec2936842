package catalog

import (
	"testing"

	"nomadcity/internal/models"
)

func TestCitiesReturnsFullCatalog(t *testing.T) {
	cities := Cities()
	if len(cities) != 5 {
		t.Fatalf("expected 5 cities, got %d", len(cities))
	}
	seen := map[string]bool{}
	for _, c := range cities {
		seen[c.ID] = true
		if c.Name == "" || c.Description == "" || len(c.Tags) == 0 {
			t.Fatalf("incomplete catalog entry: %+v", c)
		}
	}
	for _, id := range []string{"prospera", "citydao", "zuzalu", "cabin", "kift"} {
		if !seen[id] {
			t.Fatalf("missing city %s", id)
		}
	}
}

func TestCitiesReturnsCopy(t *testing.T) {
	first := Cities()
	first[0].Name = "mutated"
	if second := Cities(); second[0].Name == "mutated" {
		t.Fatalf("Cities exposed internal slice")
	}
}

func TestLookup(t *testing.T) {
	city, ok := Lookup("zuzalu")
	if !ok || city.Name != "Zuzalu" {
		t.Fatalf("lookup zuzalu failed: %+v ok=%v", city, ok)
	}
	if city.Status != models.CityTemporary {
		t.Fatalf("unexpected status: %s", city.Status)
	}
	if _, ok := Lookup("atlantis"); ok {
		t.Fatalf("expected miss for unknown id")
	}
}

func TestLookupByNameIsCaseInsensitive(t *testing.T) {
	city, ok := LookupByName("cabin")
	if !ok || city.ID != "cabin" {
		t.Fatalf("case-insensitive lookup failed")
	}
	if _, ok := LookupByName("Atlantis"); ok {
		t.Fatalf("expected miss for unknown name")
	}
}

func TestGovernanceAndEventsCoverEveryCity(t *testing.T) {
	for _, c := range Cities() {
		if _, ok := Governance(c.ID); !ok {
			t.Fatalf("no governance snapshot for %s", c.ID)
		}
		events, ok := Events(c.ID)
		if !ok || len(events) == 0 {
			t.Fatalf("no events for %s", c.ID)
		}
	}
	if _, ok := Governance("atlantis"); ok {
		t.Fatalf("governance for unknown city")
	}
	if _, ok := Events("atlantis"); ok {
		t.Fatalf("events for unknown city")
	}
}
