package domain

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/shopspring/decimal"
)

// Bottle is one physical unit of a wine. ConsumedAt is nil while in stock.
type Bottle struct {
	ID           int64               `db:"id" json:"id"`
	WineID       int64               `db:"wine_id" json:"wine"`
	StoreID      *int64              `db:"store_id" json:"store"`
	PurchaseDate *Date               `db:"purchase_date" json:"purchase_date"`
	Price        decimal.NullDecimal `db:"price" json:"price"`
	ConsumedAt   *Date               `db:"consumed_at" json:"consumed_at"`
	CreatedAt    time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time           `db:"updated_at" json:"updated_at"`
}

// MarshalJSON renders price with its column scale.
func (b Bottle) MarshalJSON() ([]byte, error) {
	type plain Bottle
	return sonic.ConfigStd.Marshal(struct {
		plain
		Price *string `json:"price"`
	}{plain(b), fixedDecimal(b.Price, PricePlaces)})
}

func (b *Bottle) InStock() bool {
	return b.ConsumedAt == nil
}
