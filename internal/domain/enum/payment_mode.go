package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PaymentMode represents how a receipt was settled
type PaymentMode int

const (
	PaymentModeCash     PaymentMode = 0
	PaymentModeCard     PaymentMode = 1
	PaymentModeTransfer PaymentMode = 2
	// PaymentModeBTC is "Bill to Company"; the receipt must carry a company name.
	PaymentModeBTC PaymentMode = 3
)

var paymentModeNames = [...]string{"Cash", "Card", "Transfer", "BTC"}

func (m PaymentMode) String() string {
	if !m.IsValid() {
		return "Cash"
	}
	return paymentModeNames[m]
}

// IsValid reports whether m is one of the declared modes
func (m PaymentMode) IsValid() bool {
	return int(m) >= 0 && int(m) < len(paymentModeNames)
}

// RequiresCompany reports whether the mode needs a company name on the receipt
func (m PaymentMode) RequiresCompany() bool {
	switch m {
	case PaymentModeBTC:
		return true
	case PaymentModeCash, PaymentModeCard, PaymentModeTransfer:
		return false
	}
	panic(fmt.Sprintf("enum: unhandled payment mode %d", int(m)))
}

// ParsePaymentMode converts a display name into a PaymentMode
func ParsePaymentMode(s string) (PaymentMode, error) {
	for i, name := range paymentModeNames {
		if name == s {
			return PaymentMode(i), nil
		}
	}
	return PaymentModeCash, fmt.Errorf("invalid payment mode %q", s)
}

func (m PaymentMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		if !PaymentMode(i).IsValid() {
			return fmt.Errorf("invalid payment mode %d", i)
		}
		*m = PaymentMode(i)
		return nil
	}
	parsed, err := ParsePaymentMode(str)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Value stores the display name; remote tables keep payment_mode as text.
func (m PaymentMode) Value() (driver.Value, error) {
	return m.String(), nil
}

func (m *PaymentMode) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentModeCash
		return nil
	}
	switch v := value.(type) {
	case string:
		parsed, err := ParsePaymentMode(v)
		if err != nil {
			return err
		}
		*m = parsed
	case []byte:
		parsed, err := ParsePaymentMode(string(v))
		if err != nil {
			return err
		}
		*m = parsed
	case int64:
		if !PaymentMode(v).IsValid() {
			return fmt.Errorf("invalid payment mode %d", v)
		}
		*m = PaymentMode(v)
	default:
		return fmt.Errorf("cannot scan %T into PaymentMode", value)
	}
	return nil
}
