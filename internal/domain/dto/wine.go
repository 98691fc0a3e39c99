package dto

import (
	"strings"

	"github.com/ougirez/cellarium/internal/domain"
	"github.com/shopspring/decimal"
)

// WineInput is the writable part of a wine. Region is a region id.
type WineInput struct {
	Name           string              `json:"name" validate:"required,max=200"`
	Country        *string             `json:"country" validate:"omitempty,uppercase,country_code"`
	Vintage        *int                `json:"vintage" validate:"omitempty,min=1,max=9999"`
	GrapeVarieties *string             `json:"grape_varieties" validate:"omitempty,max=255"`
	WineType       *string             `json:"wine_type" validate:"omitempty,oneof=red white rosé sparkling"`
	Rating         decimal.NullDecimal `json:"rating" validate:"omitempty,decimal_gte=0,decimal_lte=5,max_decimals=1"`
	Notes          string              `json:"notes"`
	Image          *string             `json:"image" validate:"omitempty,max=100"`
	RegionID       *int64              `json:"region" validate:"omitempty,min=1"`
}

// WineInputFrom seeds a PATCH payload with the current state of w.
func WineInputFrom(w *domain.Wine) WineInput {
	in := WineInput{
		Name:           w.Name,
		Country:        w.Country,
		Vintage:        w.Vintage,
		GrapeVarieties: w.GrapeVarieties,
		WineType:       w.WineType,
		Rating:         w.Rating,
		Notes:          w.Notes,
		Image:          w.Image,
	}
	if w.Region != nil {
		id := w.Region.ID
		in.RegionID = &id
	}
	return in
}

// Normalize drops blank optional strings so they are stored as NULL rather
// than checked against choices or padded into CHAR(2).
func (in *WineInput) Normalize() {
	in.Country = blankToNil(in.Country)
	in.GrapeVarieties = blankToNil(in.GrapeVarieties)
	in.WineType = blankToNil(in.WineType)
	in.Image = blankToNil(in.Image)
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
