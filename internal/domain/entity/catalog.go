package entity

import "encoding/json"

// Variant is a priced sub-option of a catalog item (e.g. a size). Variants
// are read-only reference data once fetched from the catalog API.
type Variant struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"-"` // Stored in paise
}

// MarshalJSON converts the paise price to a decimal amount for API responses
func (v Variant) MarshalJSON() ([]byte, error) {
	type Alias Variant
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(v),
		Price: float64(v.Price) / 100,
	})
}

// GetPriceDecimal returns the variant price as a decimal
func (v *Variant) GetPriceDecimal() float64 {
	return float64(v.Price) / 100
}

// CatalogItem is one sellable item of a store's catalog. Exactly one pricing
// mode is active: either Price is set and Variants is empty, or Variants is
// non-empty and Price is ignored.
type CatalogItem struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CategoryID   string    `json:"category_id,omitempty"`
	CategoryName string    `json:"category_name,omitempty"`
	Price        *int64    `json:"-"` // Stored in paise, nil for variant-priced items
	Variants     []Variant `json:"variants,omitempty"`
}

// HasVariants reports whether the item is variant-priced
func (ci *CatalogItem) HasVariants() bool {
	return len(ci.Variants) > 0
}

// FlatPrice returns the flat price in paise, or 0 when the item is
// variant-priced or carries no price at all
func (ci *CatalogItem) FlatPrice() int64 {
	if ci.HasVariants() || ci.Price == nil {
		return 0
	}
	return *ci.Price
}

// SetPriceFromDecimal sets the flat price from a decimal value
func (ci *CatalogItem) SetPriceFromDecimal(price float64) {
	p := int64(price * 100)
	ci.Price = &p
}

// MarshalJSON converts the paise price to a decimal amount for API responses
func (ci CatalogItem) MarshalJSON() ([]byte, error) {
	type Alias CatalogItem
	out := &struct {
		Alias
		Price *float64 `json:"price,omitempty"`
	}{Alias: Alias(ci)}
	if ci.Price != nil && !ci.HasVariants() {
		p := float64(*ci.Price) / 100
		out.Price = &p
	}
	return json.Marshal(out)
}

// Category is a catalog grouping owned by the remote API
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
