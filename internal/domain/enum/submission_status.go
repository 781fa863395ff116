package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// SubmissionStatus tracks what happened to an order handed to the remote API
type SubmissionStatus int

const (
	SubmissionStatusAccepted SubmissionStatus = 0
	SubmissionStatusPrinted  SubmissionStatus = 1
)

func (s SubmissionStatus) String() string {
	return [...]string{"accepted", "printed"}[s]
}

func (s SubmissionStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SubmissionStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = SubmissionStatus(i)
		return nil
	}
	switch str {
	case "accepted":
		*s = SubmissionStatusAccepted
	case "printed":
		*s = SubmissionStatusPrinted
	}
	return nil
}

func (s SubmissionStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *SubmissionStatus) Scan(value interface{}) error {
	if value == nil {
		*s = SubmissionStatusAccepted
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = SubmissionStatus(v)
	case int:
		*s = SubmissionStatus(v)
	}
	return nil
}
