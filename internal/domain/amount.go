package domain

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Amount is a fixed-point value stored in decimal columns. It always serializes with two
// fractional digits ("460.00"), which is what the dashboard client renders.
type Amount struct {
	decimal.Decimal
}

// NewAmount parses s; callers with fixed reference data use MustAmount instead.
func NewAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, err
	}
	return Amount{d}, nil
}

// MustAmount is NewAmount for literals.
func MustAmount(s string) Amount {
	return Amount{decimal.RequireFromString(s)}
}

// AmountOf wraps an already computed decimal.
func AmountOf(d decimal.Decimal) Amount {
	return Amount{d}
}

// String renders with two decimals.
func (a Amount) String() string {
	return a.StringFixed(2)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.StringFixed(2))
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	return a.Decimal.UnmarshalJSON(data)
}

// Scan implements sql.Scanner (numeric, text and float columns).
func (a *Amount) Scan(value interface{}) error {
	return a.Decimal.Scan(value)
}

// Value implements driver.Valuer.
func (a Amount) Value() (driver.Value, error) {
	return a.StringFixed(2), nil
}
