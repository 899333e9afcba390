package domain

import "github.com/shopspring/decimal"

// Money is a monetary value as reported by the commerce platform. The
// amount is kept as the platform's decimal string; it is never computed
// locally.
type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// Display renders the amount with two fraction digits. Falls back to the
// raw string when the platform sends something unparsable.
func (m Money) Display() string {
	d, err := decimal.NewFromString(m.Amount)
	if err != nil {
		return m.Amount
	}
	return d.StringFixed(2)
}

// IsZero reports whether the amount parses to zero.
func (m Money) IsZero() bool {
	d, err := decimal.NewFromString(m.Amount)
	if err != nil {
		return false
	}
	return d.IsZero()
}
