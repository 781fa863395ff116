package builder

import (
	"testing"

	"github.com/thesujaljaiswal/maitripos-gateway/internal/domain/entity"
)

func TestGroupCatalog(t *testing.T) {
	items := []entity.CatalogItem{
		{ID: "1", Name: "Tea", CategoryName: "beverages"},
		{ID: "2", Name: "Coffee", CategoryName: "Beverages"},
		{ID: "3", Name: "Samosa", CategoryName: "Snacks"},
		{ID: "4", Name: "Kachori", CategoryName: "Snacks"},
		{ID: "5", Name: "Matchbox"},
	}

	groups := GroupCatalog(items)

	if len(groups) != 4 {
		t.Fatalf("expected 4 groups, got %d: %+v", len(groups), groups)
	}

	// Case-insensitive ascending category order; ties broken deterministically
	wantOrder := []string{"Beverages", "beverages", "Snacks", "Uncategorized"}
	for i, want := range wantOrder {
		if groups[i].Category != want {
			t.Errorf("group[%d] = %q, want %q", i, groups[i].Category, want)
		}
	}

	// Items within a category ascending by name
	var snacks []entity.CatalogItem
	for _, g := range groups {
		if g.Category == "Snacks" {
			snacks = g.Items
		}
	}
	if len(snacks) != 2 || snacks[0].Name != "Kachori" || snacks[1].Name != "Samosa" {
		t.Errorf("snacks order wrong: %+v", snacks)
	}
}

func TestGroupCatalogEmpty(t *testing.T) {
	if groups := GroupCatalog(nil); len(groups) != 0 {
		t.Fatalf("expected no groups, got %+v", groups)
	}
}
