package dto

import "github.com/ougirez/cellarium/internal/domain"

type StoreInput struct {
	Name    string  `json:"name" validate:"required,max=200"`
	Address *string `json:"address" validate:"omitempty,max=255"`
	Notes   string  `json:"notes"`
}

func StoreInputFrom(s *domain.Store) StoreInput {
	return StoreInput{Name: s.Name, Address: s.Address, Notes: s.Notes}
}
