package builder

import (
	"errors"
	"testing"

	"github.com/thesujaljaiswal/maitripos-gateway/internal/domain/entity"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/domain/enum"
)

func flatItem(id, name string, paise int64) entity.CatalogItem {
	return entity.CatalogItem{ID: id, Name: name, Price: &paise}
}

func coffeeItem() entity.CatalogItem {
	return entity.CatalogItem{
		ID:   "item-coffee",
		Name: "Coffee",
		Variants: []entity.Variant{
			{ID: "v-small", Name: "Small", Price: 5000},
			{ID: "v-large", Name: "Large", Price: 8000},
		},
	}
}

func TestAddItem(t *testing.T) {
	b := New()

	t.Run("flat item starts ready with flat price", func(t *testing.T) {
		if err := b.AddItem(flatItem("item-1", "Samosa", 1500)); err != nil {
			t.Fatalf("AddItem: %v", err)
		}
		lines := b.Lines()
		if len(lines) != 1 {
			t.Fatalf("expected 1 line, got %d", len(lines))
		}
		l := lines[0]
		if l.HasVariants || !l.Ready() || l.UnitPrice != 1500 || l.Quantity != 1 {
			t.Fatalf("unexpected flat line: %+v", l)
		}
	})

	t.Run("variant item starts unready at price 0", func(t *testing.T) {
		if err := b.AddItem(coffeeItem()); err != nil {
			t.Fatalf("AddItem: %v", err)
		}
		l := b.Lines()[1]
		if !l.HasVariants || l.Ready() || l.UnitPrice != 0 || l.SelectedVariantID != "" {
			t.Fatalf("unexpected variant line: %+v", l)
		}
	})

	t.Run("duplicate add rejected and cart unchanged", func(t *testing.T) {
		err := b.AddItem(flatItem("item-1", "Samosa", 1500))
		if !errors.Is(err, ErrDuplicateItem) {
			t.Fatalf("expected ErrDuplicateItem, got %v", err)
		}
		if b.Len() != 2 {
			t.Fatalf("expected 2 lines after duplicate add, got %d", b.Len())
		}
	})
}

func TestAddItemNeverDuplicatesAcrossRemoves(t *testing.T) {
	b := New()
	ids := []string{"a", "b", "c"}
	for _, id := range ids {
		if err := b.AddItem(flatItem(id, "Item "+id, 100)); err != nil {
			t.Fatalf("AddItem(%s): %v", id, err)
		}
	}
	if err := b.RemoveLine(1); err != nil {
		t.Fatalf("RemoveLine: %v", err)
	}
	if err := b.AddItem(flatItem("b", "Item b", 100)); err != nil {
		t.Fatalf("re-add after remove: %v", err)
	}

	seen := map[string]bool{}
	for _, l := range b.Lines() {
		if seen[l.ItemID] {
			t.Fatalf("duplicate item id %s in cart", l.ItemID)
		}
		seen[l.ItemID] = true
	}
}

func TestSelectVariant(t *testing.T) {
	b := New()
	if err := b.AddItem(coffeeItem()); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	t.Run("match sets price and readiness", func(t *testing.T) {
		if err := b.SelectVariant(0, "v-large"); err != nil {
			t.Fatalf("SelectVariant: %v", err)
		}
		l := b.Lines()[0]
		if l.SelectedVariantID != "v-large" || l.UnitPrice != 8000 || !l.Ready() {
			t.Fatalf("unexpected line after select: %+v", l)
		}
	})

	t.Run("unknown id clears selection", func(t *testing.T) {
		if err := b.SelectVariant(0, "v-missing"); err != nil {
			t.Fatalf("SelectVariant: %v", err)
		}
		l := b.Lines()[0]
		if l.SelectedVariantID != "" || l.UnitPrice != 0 || l.Ready() {
			t.Fatalf("expected cleared selection, got %+v", l)
		}
	})

	t.Run("empty id clears selection", func(t *testing.T) {
		if err := b.SelectVariant(0, "v-small"); err != nil {
			t.Fatalf("SelectVariant: %v", err)
		}
		if err := b.SelectVariant(0, ""); err != nil {
			t.Fatalf("SelectVariant(\"\"): %v", err)
		}
		if l := b.Lines()[0]; l.Ready() || l.UnitPrice != 0 {
			t.Fatalf("expected unready line, got %+v", l)
		}
	})

	t.Run("out of range rejected without mutation", func(t *testing.T) {
		if err := b.SelectVariant(5, "v-small"); !errors.Is(err, ErrLineOutOfRange) {
			t.Fatalf("expected ErrLineOutOfRange, got %v", err)
		}
		if err := b.SelectVariant(-1, "v-small"); !errors.Is(err, ErrLineOutOfRange) {
			t.Fatalf("expected ErrLineOutOfRange, got %v", err)
		}
	})

	t.Run("flat line rejected", func(t *testing.T) {
		if err := b.AddItem(flatItem("item-flat", "Samosa", 1500)); err != nil {
			t.Fatalf("AddItem: %v", err)
		}
		if err := b.SelectVariant(1, "v-small"); !errors.Is(err, ErrNoVariants) {
			t.Fatalf("expected ErrNoVariants, got %v", err)
		}
		if l := b.Lines()[1]; l.UnitPrice != 1500 {
			t.Fatalf("flat price mutated: %+v", l)
		}
	})
}

func TestChangeQuantity(t *testing.T) {
	b := New()
	if err := b.AddItem(flatItem("item-1", "Samosa", 1500)); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if err := b.ChangeQuantity(0, 2); err != nil {
		t.Fatalf("ChangeQuantity: %v", err)
	}
	if got := b.Lines()[0].Quantity; got != 3 {
		t.Fatalf("quantity = %d, want 3", got)
	}

	// Floor at 1, even for absurd decrements
	if err := b.ChangeQuantity(0, -1000); err != nil {
		t.Fatalf("ChangeQuantity: %v", err)
	}
	if got := b.Lines()[0].Quantity; got != 1 {
		t.Fatalf("quantity = %d, want floor 1", got)
	}

	if err := b.ChangeQuantity(0, -1); err != nil {
		t.Fatalf("decrement at floor should be a no-op, got %v", err)
	}
	if got := b.Lines()[0].Quantity; got != 1 {
		t.Fatalf("quantity = %d, want 1", got)
	}

	if err := b.ChangeQuantity(3, 1); !errors.Is(err, ErrLineOutOfRange) {
		t.Fatalf("expected ErrLineOutOfRange, got %v", err)
	}
}

func TestRemoveLineShiftsIndices(t *testing.T) {
	b := New()
	for _, id := range []string{"a", "b", "c"} {
		if err := b.AddItem(flatItem(id, "Item "+id, 100)); err != nil {
			t.Fatalf("AddItem: %v", err)
		}
	}

	if err := b.RemoveLine(0); err != nil {
		t.Fatalf("RemoveLine: %v", err)
	}
	lines := b.Lines()
	if len(lines) != 2 || lines[0].ItemID != "b" || lines[1].ItemID != "c" {
		t.Fatalf("unexpected lines after remove: %+v", lines)
	}

	if err := b.RemoveLine(2); !errors.Is(err, ErrLineOutOfRange) {
		t.Fatalf("expected ErrLineOutOfRange, got %v", err)
	}
}

func TestTotals(t *testing.T) {
	t.Run("variant with discount and tax", func(t *testing.T) {
		// Coffee, Large (₹80) selected, quantity 2, discount ₹10, tax 10%
		b := New()
		if err := b.AddItem(coffeeItem()); err != nil {
			t.Fatalf("AddItem: %v", err)
		}
		if err := b.SelectVariant(0, "v-large"); err != nil {
			t.Fatalf("SelectVariant: %v", err)
		}
		if err := b.ChangeQuantity(0, 1); err != nil {
			t.Fatalf("ChangeQuantity: %v", err)
		}
		if err := b.SetDiscount(1000); err != nil {
			t.Fatalf("SetDiscount: %v", err)
		}
		if err := b.SetTaxPercent(10); err != nil {
			t.Fatalf("SetTaxPercent: %v", err)
		}

		tt := b.Totals()
		if tt.SubTotal != 16000 {
			t.Errorf("subtotal = %d, want 16000", tt.SubTotal)
		}
		if tt.TaxAmount != 1500 {
			t.Errorf("tax = %d, want 1500", tt.TaxAmount)
		}
		if tt.Total != 16500 {
			t.Errorf("total = %d, want 16500", tt.Total)
		}
	})

	t.Run("discount above subtotal clamps total at zero", func(t *testing.T) {
		b := New()
		if err := b.AddItem(flatItem("item-1", "Samosa", 1000)); err != nil {
			t.Fatalf("AddItem: %v", err)
		}
		if err := b.SetDiscount(5000); err != nil {
			t.Fatalf("SetDiscount: %v", err)
		}
		if err := b.SetTaxPercent(10); err != nil {
			t.Fatalf("SetTaxPercent: %v", err)
		}

		tt := b.Totals()
		if tt.TaxAmount != -400 {
			t.Errorf("tax = %d, want -400 (formula applies below zero)", tt.TaxAmount)
		}
		if tt.Total != 0 {
			t.Errorf("total = %d, want clamped 0", tt.Total)
		}
	})

	t.Run("recomputed after mutations", func(t *testing.T) {
		b := New()
		if err := b.AddItem(flatItem("item-1", "Samosa", 1000)); err != nil {
			t.Fatalf("AddItem: %v", err)
		}
		first := b.Totals()
		if first.SubTotal != 1000 {
			t.Fatalf("subtotal = %d", first.SubTotal)
		}
		if err := b.RemoveLine(0); err != nil {
			t.Fatalf("RemoveLine: %v", err)
		}
		if got := b.Totals().SubTotal; got != 0 {
			t.Fatalf("stale subtotal after remove: %d", got)
		}
	})

	t.Run("negative inputs rejected", func(t *testing.T) {
		b := New()
		if err := b.SetDiscount(-1); !errors.Is(err, ErrNegativeAmount) {
			t.Fatalf("expected ErrNegativeAmount, got %v", err)
		}
		if err := b.SetTaxPercent(-0.5); !errors.Is(err, ErrNegativeAmount) {
			t.Fatalf("expected ErrNegativeAmount, got %v", err)
		}
	})
}

func TestBuildSubmission(t *testing.T) {
	t.Run("empty cart fails", func(t *testing.T) {
		if _, err := New().BuildSubmission("store-1"); !errors.Is(err, ErrEmptyCart) {
			t.Fatalf("expected ErrEmptyCart, got %v", err)
		}
	})

	t.Run("unselected variant fails", func(t *testing.T) {
		b := New()
		if err := b.AddItem(coffeeItem()); err != nil {
			t.Fatalf("AddItem: %v", err)
		}
		if _, err := b.BuildSubmission("store-1"); !errors.Is(err, ErrVariantNotSelected) {
			t.Fatalf("expected ErrVariantNotSelected, got %v", err)
		}
	})

	t.Run("payload shape", func(t *testing.T) {
		b := New()
		if err := b.AddItem(coffeeItem()); err != nil {
			t.Fatalf("AddItem: %v", err)
		}
		if err := b.SelectVariant(0, "v-large"); err != nil {
			t.Fatalf("SelectVariant: %v", err)
		}
		if err := b.AddItem(flatItem("item-2", "Samosa", 1500)); err != nil {
			t.Fatalf("AddItem: %v", err)
		}
		b.SetCustomer(Customer{Name: "Asha", Phone: "9999999999"})
		if err := b.SetPayment(Payment{Method: enum.PaymentMethodUPI, Status: enum.PaymentStatusPaid}); err != nil {
			t.Fatalf("SetPayment: %v", err)
		}

		sub, err := b.BuildSubmission("store-1")
		if err != nil {
			t.Fatalf("BuildSubmission: %v", err)
		}
		if sub.StoreID != "store-1" || len(sub.Items) != 2 {
			t.Fatalf("unexpected submission: %+v", sub)
		}
		if sub.Items[0].VariantID != "v-large" {
			t.Errorf("variant line should carry variant id, got %q", sub.Items[0].VariantID)
		}
		if sub.Items[1].VariantID != "" {
			t.Errorf("flat line must omit variant id, got %q", sub.Items[1].VariantID)
		}
		if sub.Pricing.SubTotal != 9500 {
			t.Errorf("subtotal = %d, want 9500", sub.Pricing.SubTotal)
		}
		if sub.Customer.Name != "Asha" || sub.Payment.Method != enum.PaymentMethodUPI {
			t.Errorf("customer/payment not carried: %+v", sub)
		}
	})
}

func TestReset(t *testing.T) {
	b := New()
	if err := b.AddItem(flatItem("item-1", "Samosa", 1500)); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := b.SetDiscount(100); err != nil {
		t.Fatalf("SetDiscount: %v", err)
	}
	b.SetCustomer(Customer{Name: "Asha"})

	b.Reset()

	if b.Len() != 0 {
		t.Fatalf("lines survive reset: %d", b.Len())
	}
	if tt := b.Totals(); tt.SubTotal != 0 || tt.Discount != 0 || tt.Total != 0 {
		t.Fatalf("totals survive reset: %+v", tt)
	}
	if b.Customer().Name != "" {
		t.Fatalf("customer survives reset")
	}
	// A fresh order can re-add the same item
	if err := b.AddItem(flatItem("item-1", "Samosa", 1500)); err != nil {
		t.Fatalf("re-add after reset: %v", err)
	}
}
