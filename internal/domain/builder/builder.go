package builder

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/thesujaljaiswal/maitripos-gateway/internal/domain/entity"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/domain/enum"
)

var (
	// ErrDuplicateItem is returned when an item is already in the cart
	ErrDuplicateItem = errors.New("item already added")
	// ErrLineOutOfRange is returned for an invalid cart line index
	ErrLineOutOfRange = errors.New("cart line index out of range")
	// ErrNoVariants is returned when selecting a variant on a flat-priced line
	ErrNoVariants = errors.New("line has no variants")
	// ErrEmptyCart is returned when submitting an order with no lines
	ErrEmptyCart = errors.New("cart is empty")
	// ErrVariantNotSelected is returned when a variant-priced line has no selection
	ErrVariantNotSelected = errors.New("variant not selected")
	// ErrNegativeAmount is returned for negative discount or tax inputs
	ErrNegativeAmount = errors.New("amount must not be negative")
)

// CartLine is one catalog item's in-progress selection state. A line with
// variants is "unready" until a variant is chosen; its unit price is forced
// to 0 while unready. Flat-priced lines are always ready.
type CartLine struct {
	ItemID            string           `json:"item_id"`
	Name              string           `json:"name"`
	HasVariants       bool             `json:"has_variants"`
	Variants          []entity.Variant `json:"variants,omitempty"`
	SelectedVariantID string           `json:"selected_variant_id,omitempty"`
	UnitPrice         int64            `json:"-"` // Stored in paise
	Quantity          int              `json:"quantity"`
}

// Ready reports whether the line can be priced and submitted
func (l *CartLine) Ready() bool {
	return !l.HasVariants || l.SelectedVariantID != ""
}

// LineTotal returns unit price times quantity, in paise
func (l *CartLine) LineTotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// MarshalJSON converts the paise unit price to a decimal for API responses
func (l CartLine) MarshalJSON() ([]byte, error) {
	type Alias CartLine
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		LineTotal float64 `json:"line_total"`
		Ready     bool    `json:"ready"`
	}{
		Alias:     Alias(l),
		UnitPrice: float64(l.UnitPrice) / 100,
		LineTotal: float64(l.LineTotal()) / 100,
		Ready:     l.Ready(),
	})
}

// Customer holds the order's customer details
type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Payment holds how the order is (to be) paid
type Payment struct {
	Method enum.PaymentMethod `json:"method"`
	Status enum.PaymentStatus `json:"status"`
}

// Totals is the pricing block derived from the current cart state. All
// amounts are in paise. It is recomputed from scratch on every call; nothing
// is cached.
type Totals struct {
	SubTotal   int64   `json:"-"`
	Discount   int64   `json:"-"`
	TaxPercent float64 `json:"tax_percent"`
	TaxAmount  int64   `json:"-"`
	Total      int64   `json:"-"`
}

// MarshalJSON converts the paise amounts to decimals for API responses
func (t Totals) MarshalJSON() ([]byte, error) {
	type Alias Totals
	return json.Marshal(&struct {
		Alias
		SubTotal  float64 `json:"sub_total"`
		Discount  float64 `json:"discount"`
		TaxAmount float64 `json:"tax_amount"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(t),
		SubTotal:  float64(t.SubTotal) / 100,
		Discount:  float64(t.Discount) / 100,
		TaxAmount: float64(t.TaxAmount) / 100,
		Total:     float64(t.Total) / 100,
	})
}

// Builder accumulates cart lines and draft fields for one in-progress order.
// It is an explicit mutable state object; derivations (Totals,
// BuildSubmission) are pure reads. Builder itself is not goroutine safe;
// callers serialize access, mirroring the one-event-at-a-time model the
// counter UI guarantees.
type Builder struct {
	lines      []CartLine
	customer   Customer
	payment    Payment
	discount   int64 // paise
	taxPercent float64
}

// New creates an empty order builder
func New() *Builder {
	return &Builder{
		payment: Payment{
			Method: enum.PaymentMethodCash,
			Status: enum.PaymentStatusPending,
		},
	}
}

// AddItem appends a cart line for the given catalog item. Adding an item
// that is already present is rejected with ErrDuplicateItem and leaves the
// cart unchanged.
func (b *Builder) AddItem(item entity.CatalogItem) error {
	for i := range b.lines {
		if b.lines[i].ItemID == item.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateItem, item.Name)
		}
	}

	variants := make([]entity.Variant, len(item.Variants))
	copy(variants, item.Variants)

	line := CartLine{
		ItemID:      item.ID,
		Name:        item.Name,
		HasVariants: len(variants) > 0,
		Variants:    variants,
		Quantity:    1,
	}
	if !line.HasVariants {
		line.UnitPrice = item.FlatPrice()
	}

	b.lines = append(b.lines, line)
	return nil
}

// SelectVariant sets the selected variant and unit price of the line at
// index. An unknown or empty variant ID clears the selection and forces the
// unit price back to 0.
func (b *Builder) SelectVariant(index int, variantID string) error {
	if index < 0 || index >= len(b.lines) {
		return ErrLineOutOfRange
	}
	line := &b.lines[index]
	if !line.HasVariants {
		return ErrNoVariants
	}

	for i := range line.Variants {
		if line.Variants[i].ID == variantID {
			line.SelectedVariantID = variantID
			line.UnitPrice = line.Variants[i].Price
			return nil
		}
	}

	line.SelectedVariantID = ""
	line.UnitPrice = 0
	return nil
}

// ChangeQuantity adjusts the quantity of the line at index by delta. The
// quantity never drops below 1; decrementing past the floor is a no-op, not
// an error.
func (b *Builder) ChangeQuantity(index int, delta int) error {
	if index < 0 || index >= len(b.lines) {
		return ErrLineOutOfRange
	}
	qty := b.lines[index].Quantity + delta
	if qty < 1 {
		qty = 1
	}
	b.lines[index].Quantity = qty
	return nil
}

// RemoveLine deletes the line at index; following lines shift down
func (b *Builder) RemoveLine(index int) error {
	if index < 0 || index >= len(b.lines) {
		return ErrLineOutOfRange
	}
	b.lines = append(b.lines[:index], b.lines[index+1:]...)
	return nil
}

// Lines returns a copy of the current cart lines
func (b *Builder) Lines() []CartLine {
	out := make([]CartLine, len(b.lines))
	copy(out, b.lines)
	return out
}

// Len returns the number of cart lines
func (b *Builder) Len() int {
	return len(b.lines)
}

// SetCustomer records the customer details on the draft
func (b *Builder) SetCustomer(c Customer) {
	b.customer = c
}

// Customer returns the draft's customer details
func (b *Builder) Customer() Customer {
	return b.customer
}

// SetPayment records the payment method and status on the draft
func (b *Builder) SetPayment(p Payment) error {
	if !p.Method.Valid() || !p.Status.Valid() {
		return errors.New("unknown payment method or status")
	}
	b.payment = p
	return nil
}

// Payment returns the draft's payment details
func (b *Builder) Payment() Payment {
	return b.payment
}

// SetDiscount sets the absolute discount in paise
func (b *Builder) SetDiscount(paise int64) error {
	if paise < 0 {
		return ErrNegativeAmount
	}
	b.discount = paise
	return nil
}

// SetTaxPercent sets the tax rate applied to the discounted subtotal
func (b *Builder) SetTaxPercent(pct float64) error {
	if pct < 0 {
		return ErrNegativeAmount
	}
	b.taxPercent = pct
	return nil
}

// Totals derives the pricing block from the current lines and inputs:
//
//	subtotal = Σ(unitPrice × quantity)
//	tax      = (subtotal − discount) × taxPercent / 100
//	total    = max(0, subtotal − discount + tax)
//
// The tax term may be negative when the discount exceeds the subtotal; only
// the final total is clamped at zero.
func (b *Builder) Totals() Totals {
	var subTotal int64
	for i := range b.lines {
		subTotal += b.lines[i].LineTotal()
	}

	taxAmount := int64(math.Round(float64(subTotal-b.discount) * b.taxPercent / 100))
	total := subTotal - b.discount + taxAmount
	if total < 0 {
		total = 0
	}

	return Totals{
		SubTotal:   subTotal,
		Discount:   b.discount,
		TaxPercent: b.taxPercent,
		TaxAmount:  taxAmount,
		Total:      total,
	}
}

// SubmissionItem is one order line of the payload handed to the remote API
type SubmissionItem struct {
	ItemID    string `json:"item_id"`
	VariantID string `json:"variant_id,omitempty"`
	Quantity  int    `json:"quantity"`
}

// Submission is the order payload produced by BuildSubmission. The builder
// never performs network I/O itself; the payload is handed to the order
// gateway.
type Submission struct {
	StoreID  string           `json:"store_id"`
	Items    []SubmissionItem `json:"items"`
	Pricing  Totals           `json:"pricing"`
	Customer Customer         `json:"customer"`
	Payment  Payment          `json:"payment"`
}

// BuildSubmission validates the cart and produces the order payload. It
// fails when the cart is empty or when any variant-priced line has no
// selected variant.
func (b *Builder) BuildSubmission(storeID string) (*Submission, error) {
	if len(b.lines) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]SubmissionItem, 0, len(b.lines))
	for i := range b.lines {
		line := &b.lines[i]
		if !line.Ready() {
			return nil, fmt.Errorf("%w: %s", ErrVariantNotSelected, line.Name)
		}
		item := SubmissionItem{
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
		}
		if line.HasVariants {
			item.VariantID = line.SelectedVariantID
		}
		items = append(items, item)
	}

	return &Submission{
		StoreID:  storeID,
		Items:    items,
		Pricing:  b.Totals(),
		Customer: b.customer,
		Payment:  b.payment,
	}, nil
}

// Reset discards all lines and draft fields after a successful submission
func (b *Builder) Reset() {
	b.lines = nil
	b.customer = Customer{}
	b.discount = 0
	b.taxPercent = 0
	b.payment = Payment{
		Method: enum.PaymentMethodCash,
		Status: enum.PaymentStatusPending,
	}
}
