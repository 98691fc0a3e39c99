package dto

import "github.com/ougirez/cellarium/internal/domain"

type RegionInput struct {
	Name    string `json:"name" validate:"required,max=200"`
	Country string `json:"country" validate:"required,uppercase,country_code"`
}

func RegionInputFrom(r *domain.Region) RegionInput {
	return RegionInput{Name: r.Name, Country: r.Country}
}
