package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateReceiptNo generates a short reference printed on counter receipts
func GenerateReceiptNo() string {
	return "RCPT-" + strings.ToUpper(uuid.New().String()[:8])
}
