package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a fixed-point monetary amount. It serializes as a bare JSON
// integer when the amount is whole and as a decimal number otherwise.
type Money struct {
	decimal.Decimal
}

// NewMoney wraps a decimal amount
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

// MoneyFromString parses a decimal string into Money
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{Decimal: d}, nil
}

// MarshalJSON renders the amount as an unquoted number
func (m Money) MarshalJSON() ([]byte, error) {
	if m.Decimal.IsInteger() {
		return []byte(m.Decimal.StringFixed(0)), nil
	}
	return []byte(m.Decimal.String()), nil
}

// UnmarshalJSON accepts both quoted and bare numeric representations
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		m.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return err
	}
	m.Decimal = d
	return nil
}
