package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// AdjustmentType classifies an order adjustment
type AdjustmentType string

const (
	// AdjustmentTypeCashConversion offsets a voided line item with a
	// negative cash amount.
	AdjustmentTypeCashConversion AdjustmentType = "cash_conversion"
)

func (t AdjustmentType) String() string {
	return string(t)
}

func (t AdjustmentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *AdjustmentType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = AdjustmentType(str)
	return nil
}

func (t AdjustmentType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *AdjustmentType) Scan(value interface{}) error {
	if value == nil {
		*t = AdjustmentTypeCashConversion
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = AdjustmentType(v)
	case []byte:
		*t = AdjustmentType(string(v))
	}
	return nil
}
