package request

// AddItemRequest adds a catalog item to the cart
type AddItemRequest struct {
	ItemID string `json:"item_id" binding:"required"`
}

// SelectVariantRequest picks a variant for a cart line. An empty or unknown
// variant ID clears the current selection.
type SelectVariantRequest struct {
	VariantID string `json:"variant_id"`
}

// ChangeQuantityRequest adjusts a cart line quantity by a signed delta; a
// zero delta is a valid no-op
type ChangeQuantityRequest struct {
	Delta int `json:"delta"`
}

// UpdateDraftRequest updates order draft fields; nil fields are left unchanged
type UpdateDraftRequest struct {
	CustomerName  *string  `json:"customer_name"`
	CustomerPhone *string  `json:"customer_phone" binding:"omitempty,max=20"`
	PaymentMethod *string  `json:"payment_method" binding:"omitempty,oneof=cash upi card"`
	PaymentStatus *string  `json:"payment_status" binding:"omitempty,oneof=pending paid"`
	Discount      *float64 `json:"discount" binding:"omitempty,min=0"`
	TaxPercent    *float64 `json:"tax_percent" binding:"omitempty,min=0"`
}
