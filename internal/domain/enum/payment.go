package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMethod represents how an order is paid at the counter
type PaymentMethod int

const (
	PaymentMethodCash PaymentMethod = 0
	PaymentMethodUPI  PaymentMethod = 1
	PaymentMethodCard PaymentMethod = 2
)

func (m PaymentMethod) String() string {
	return [...]string{"cash", "upi", "card"}[m]
}

// Valid reports whether m is a known payment method
func (m PaymentMethod) Valid() bool {
	return m >= PaymentMethodCash && m <= PaymentMethodCard
}

// ParsePaymentMethod parses the wire value ("cash", "upi", "card")
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch s {
	case "cash":
		return PaymentMethodCash, true
	case "upi":
		return PaymentMethodUPI, true
	case "card":
		return PaymentMethodCard, true
	}
	return PaymentMethodCash, false
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = PaymentMethod(i)
		return nil
	}
	if parsed, ok := ParsePaymentMethod(str); ok {
		*m = parsed
	}
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMethod(v)
	case int:
		*m = PaymentMethod(v)
	}
	return nil
}

// PaymentStatus represents whether an order has been paid
type PaymentStatus int

const (
	PaymentStatusPending PaymentStatus = 0
	PaymentStatusPaid    PaymentStatus = 1
)

func (s PaymentStatus) String() string {
	return [...]string{"pending", "paid"}[s]
}

// Valid reports whether s is a known payment status
func (s PaymentStatus) Valid() bool {
	return s == PaymentStatusPending || s == PaymentStatusPaid
}

// ParsePaymentStatus parses the wire value ("pending", "paid")
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch s {
	case "pending":
		return PaymentStatusPending, true
	case "paid":
		return PaymentStatusPaid, true
	}
	return PaymentStatusPending, false
}

func (s PaymentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = PaymentStatus(i)
		return nil
	}
	if parsed, ok := ParsePaymentStatus(str); ok {
		*s = parsed
	}
	return nil
}

func (s PaymentStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PaymentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = PaymentStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = PaymentStatus(v)
	case int:
		*s = PaymentStatus(v)
	}
	return nil
}
