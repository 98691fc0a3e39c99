package dto

import (
	"github.com/ougirez/cellarium/internal/domain"
	"github.com/shopspring/decimal"
)

// BottleInput is the writable part of a bottle. consumed_at is only changed
// through the consume actions.
type BottleInput struct {
	WineID       int64               `json:"wine" validate:"required,min=1"`
	StoreID      *int64              `json:"store" validate:"omitempty,min=1"`
	PurchaseDate *domain.Date        `json:"purchase_date"`
	Price        decimal.NullDecimal `json:"price" validate:"omitempty,decimal_gte=0,decimal_lt=100000000,max_decimals=2"`
}

func BottleInputFrom(b *domain.Bottle) BottleInput {
	return BottleInput{
		WineID:       b.WineID,
		StoreID:      b.StoreID,
		PurchaseDate: b.PurchaseDate,
		Price:        b.Price,
	}
}
