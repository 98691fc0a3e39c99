package domain

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/shopspring/decimal"
)

type WineType = string

const (
	WineTypeRed       WineType = "red"
	WineTypeWhite     WineType = "white"
	WineTypeRose      WineType = "rosé"
	WineTypeSparkling WineType = "sparkling"
)

type Wine struct {
	ID             int64               `json:"id"`
	Name           string              `json:"name"`
	Country        *string             `json:"country"`
	Vintage        *int                `json:"vintage"`
	GrapeVarieties *string             `json:"grape_varieties"`
	WineType       *WineType           `json:"wine_type"`
	Rating         decimal.NullDecimal `json:"rating"`
	Notes          string              `json:"notes"`
	Image          *string             `json:"image"`
	Region         *RegionRef          `json:"region"`
	BottleCount    int64               `json:"bottle_count"`
	InStockCount   int64               `json:"in_stock_count"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// MarshalJSON renders rating with its column scale.
func (w Wine) MarshalJSON() ([]byte, error) {
	type plain Wine
	return sonic.ConfigStd.Marshal(struct {
		plain
		Rating *string `json:"rating"`
	}{plain(w), fixedDecimal(w.Rating, RatingPlaces)})
}

func (w *Wine) String() string {
	if w.Vintage != nil {
		return fmt.Sprintf("%s (%d)", w.Name, *w.Vintage)
	}
	return w.Name
}
