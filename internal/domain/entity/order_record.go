package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/thesujaljaiswal/maitripos-gateway/internal/domain/enum"
	"gorm.io/gorm"
)

// OrderRecord is the gateway's journal row for an order that the remote API
// accepted. It exists so the counter keeps an auditable trail of what was
// submitted even though the order itself lives server-side.
type OrderRecord struct {
	ID            uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	StoreID       string                `gorm:"size:64;not null;index" json:"store_id"`
	RemoteOrderID string                `gorm:"size:64;not null;uniqueIndex" json:"remote_order_id"`
	ReceiptNo     string                `gorm:"size:20;not null;index" json:"receipt_no"`
	SessionID     uuid.UUID             `gorm:"type:uuid;not null;index" json:"session_id"`
	CustomerName  string                `gorm:"size:255" json:"customer_name,omitempty"`
	CustomerPhone string                `gorm:"size:50" json:"customer_phone,omitempty"`
	PaymentMethod enum.PaymentMethod    `gorm:"default:0" json:"payment_method"`
	PaymentStatus enum.PaymentStatus    `gorm:"default:0" json:"payment_status"`
	Status        enum.SubmissionStatus `gorm:"default:0" json:"status"`
	TotalItems    int                   `gorm:"default:0" json:"total_items"`
	SubTotal      int64                 `gorm:"default:0" json:"-"` // Stored in paise, excluded from JSON
	Discount      int64                 `gorm:"default:0" json:"-"` // Stored in paise, excluded from JSON
	TaxAmount     int64                 `gorm:"default:0" json:"-"` // Stored in paise, excluded from JSON
	Total         int64                 `gorm:"default:0" json:"-"` // Stored in paise, excluded from JSON
	SubmittedAt   time.Time             `gorm:"not null" json:"submitted_at"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
	DeletedAt     gorm.DeletedAt        `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert paise to decimal for API responses
func (r OrderRecord) MarshalJSON() ([]byte, error) {
	type Alias OrderRecord
	return json.Marshal(&struct {
		Alias
		SubTotal  float64 `json:"sub_total"`
		Discount  float64 `json:"discount"`
		TaxAmount float64 `json:"tax_amount"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(r),
		SubTotal:  float64(r.SubTotal) / 100,
		Discount:  float64(r.Discount) / 100,
		TaxAmount: float64(r.TaxAmount) / 100,
		Total:     float64(r.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new record
func (r *OrderRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderRecord model
func (OrderRecord) TableName() string {
	return "order_records"
}

// GetTotalDecimal returns the total as a decimal
func (r *OrderRecord) GetTotalDecimal() float64 {
	return float64(r.Total) / 100
}
