package builder

import (
	"sort"
	"strings"

	"github.com/thesujaljaiswal/maitripos-gateway/internal/domain/entity"
)

// UncategorizedName is the bucket for items without a category
const UncategorizedName = "Uncategorized"

// CategoryGroup is one category's slice of the item picker
type CategoryGroup struct {
	Category string               `json:"category"`
	Items    []entity.CatalogItem `json:"items"`
}

// GroupCatalog arranges catalog items for the item picker: grouped by
// category name, categories sorted case-insensitively ascending, items
// within a category sorted by name ascending. This ordering is part of the
// picker contract, not presentation.
func GroupCatalog(items []entity.CatalogItem) []CategoryGroup {
	byCategory := make(map[string][]entity.CatalogItem)
	for _, item := range items {
		name := item.CategoryName
		if name == "" {
			name = UncategorizedName
		}
		byCategory[name] = append(byCategory[name], item)
	}

	groups := make([]CategoryGroup, 0, len(byCategory))
	for name, catItems := range byCategory {
		sort.Slice(catItems, func(i, j int) bool {
			return catItems[i].Name < catItems[j].Name
		})
		groups = append(groups, CategoryGroup{Category: name, Items: catItems})
	}

	sort.Slice(groups, func(i, j int) bool {
		a, b := strings.ToLower(groups[i].Category), strings.ToLower(groups[j].Category)
		if a == b {
			// Stable order for names differing only in case
			return groups[i].Category < groups[j].Category
		}
		return a < b
	})

	return groups
}
