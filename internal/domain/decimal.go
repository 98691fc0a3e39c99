package domain

import "github.com/shopspring/decimal"

// Decimal places kept by the rating and price columns.
const (
	RatingPlaces = 1
	PricePlaces  = 2
)

// fixedDecimal renders d with exactly places decimals, so a stored 5.0 stays
// "5.0" instead of "5". An absent value is nil.
func fixedDecimal(d decimal.NullDecimal, places int32) *string {
	if !d.Valid {
		return nil
	}
	s := d.Decimal.StringFixed(places)
	return &s
}
