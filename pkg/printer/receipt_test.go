package printer

import (
	"bytes"
	"testing"

	"github.com/thesujaljaiswal/maitripos-gateway/internal/domain/builder"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/domain/entity"
)

func TestFormatOrderReceipt(t *testing.T) {
	lines := []builder.CartLine{
		{
			ItemID:    "item-samosa",
			Name:      "Samosa",
			Quantity:  2,
			UnitPrice: 2500,
		},
		{
			ItemID:            "item-coffee",
			Name:              "Coffee",
			HasVariants:       true,
			SelectedVariantID: "v-large",
			Variants: []entity.Variant{
				{ID: "v-small", Name: "Small", Price: 5000},
				{ID: "v-large", Name: "Large", Price: 8000},
			},
			UnitPrice: 8000,
			Quantity:  1,
		},
	}
	sub := &builder.Submission{
		StoreID: "store-1",
		Pricing: builder.Totals{
			SubTotal:   13000,
			Discount:   1000,
			TaxPercent: 5,
			TaxAmount:  600,
			Total:      12600,
		},
		Customer: builder.Customer{Name: "Asha"},
	}

	data := FormatOrderReceipt("Chai Point", "RCPT-AB12CD34", "remote-42", lines, sub)

	for _, want := range []string{
		"Chai Point",
		"RCPT-AB12CD34",
		"remote-42",
		"Asha",
		"2x Samosa",
		"Coffee (Large)",
		"50.00",
		"80.00",
		"130.00",
		"126.00",
	} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("receipt missing %q", want)
		}
	}
}

func TestDocumentKeyValueWidth(t *testing.T) {
	doc := NewDocument(16)
	doc.KeyValue("Total", "126.00")

	if !bytes.Contains(doc.Bytes(), []byte("Total     126.00")) {
		t.Errorf("key/value not padded to width: %q", doc.Bytes())
	}
}

func TestNewPrinterFromConfig(t *testing.T) {
	tests := []struct {
		name        string
		printerType string
		usbPath     string
		address     string
		wantErr     bool
	}{
		{name: "none", printerType: "none"},
		{name: "empty defaults to null", printerType: ""},
		{name: "usb", printerType: "usb", usbPath: "/dev/usb/lp0"},
		{name: "usb missing path", printerType: "usb", wantErr: true},
		{name: "network", printerType: "network", address: "192.168.1.50:9100"},
		{name: "network missing address", printerType: "network", wantErr: true},
		{name: "unknown", printerType: "laser", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPrinterFromConfig(tt.printerType, tt.usbPath, tt.address)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewPrinterFromConfig: %v", err)
			}
			if p == nil {
				t.Fatal("got nil printer")
			}
		})
	}
}
