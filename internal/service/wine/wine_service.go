package wine

import (
	"context"
	"fmt"

	"github.com/ougirez/cellarium/internal/domain"
	"github.com/ougirez/cellarium/internal/domain/dto"
	"github.com/ougirez/cellarium/internal/pkg/store"
)

type Service struct {
	store store.WineStore
}

func NewWineService(store store.WineStore) *Service {
	return &Service{store: store}
}

func (s *Service) ListWines(ctx context.Context, opts store.ListOpts) ([]*domain.Wine, error) {
	wines, err := s.store.ListWines(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("store.ListWines: %w", err)
	}

	return wines, nil
}

func (s *Service) GetWine(ctx context.Context, id int64) (*domain.Wine, error) {
	wine, err := s.store.GetWine(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("store.GetWine, id-%d: %w", id, err)
	}

	return wine, nil
}

func (s *Service) CreateWine(ctx context.Context, in dto.WineInput) (*domain.Wine, error) {
	wine, err := s.store.CreateWine(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("store.CreateWine: %w", err)
	}

	return wine, nil
}

func (s *Service) UpdateWine(ctx context.Context, id int64, in dto.WineInput) (*domain.Wine, error) {
	wine, err := s.store.UpdateWine(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("store.UpdateWine, id-%d: %w", id, err)
	}

	return wine, nil
}

// DeleteWine removes the wine together with all of its bottles.
func (s *Service) DeleteWine(ctx context.Context, id int64) error {
	if err := s.store.DeleteWine(ctx, id); err != nil {
		return fmt.Errorf("store.DeleteWine, id-%d: %w", id, err)
	}

	return nil
}
