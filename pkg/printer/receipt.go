package printer

import (
	"fmt"
	"time"

	"github.com/thesujaljaiswal/maitripos-gateway/internal/domain/builder"
)

const receiptWidth = 32

func formatAmount(paise int64) string {
	return fmt.Sprintf("%.2f", float64(paise)/100)
}

// FormatOrderReceipt renders a counter receipt for a submitted order as an
// ESC/POS byte stream.
func FormatOrderReceipt(storeName, receiptNo, remoteOrderID string, lines []builder.CartLine, sub *builder.Submission) []byte {
	doc := NewDocument(receiptWidth)

	doc.SetAlign(AlignCenter).
		SetBold(true).
		SetFontSize(2, 2).
		Text(storeName).
		SetFontSize(1, 1).
		SetBold(false).
		LineFeed()

	doc.SetAlign(AlignLeft)
	doc.KeyValue("Receipt", receiptNo)
	doc.KeyValue("Order", remoteOrderID)
	doc.KeyValue("Date", time.Now().Format("02 Jan 2006 15:04"))
	if sub.Customer.Name != "" {
		doc.KeyValue("Customer", sub.Customer.Name)
	}
	doc.Separator()

	for _, line := range lines {
		name := line.Name
		if line.HasVariants && line.SelectedVariantID != "" {
			for _, v := range line.Variants {
				if v.ID == line.SelectedVariantID {
					name = fmt.Sprintf("%s (%s)", line.Name, v.Name)
					break
				}
			}
		}
		doc.ItemLine(line.Quantity, name, formatAmount(line.LineTotal()))
	}

	doc.Separator()
	doc.KeyValue("Subtotal", formatAmount(sub.Pricing.SubTotal))
	if sub.Pricing.Discount != 0 {
		doc.KeyValue("Discount", "-"+formatAmount(sub.Pricing.Discount))
	}
	if sub.Pricing.TaxAmount != 0 {
		doc.KeyValue(fmt.Sprintf("Tax (%.1f%%)", sub.Pricing.TaxPercent), formatAmount(sub.Pricing.TaxAmount))
	}
	doc.SetBold(true)
	doc.KeyValue("TOTAL", formatAmount(sub.Pricing.Total))
	doc.SetBold(false)
	doc.Separator()

	doc.KeyValue("Payment", sub.Payment.Method.String())
	doc.KeyValue("Status", sub.Payment.Status.String())

	doc.LineFeed()
	doc.SetAlign(AlignCenter).Text("Thank you, visit again!")
	doc.FeedLines(3)
	doc.Cut()

	return doc.Bytes()
}
