package region

import (
	"context"
	"fmt"

	"github.com/ougirez/cellarium/internal/domain"
	"github.com/ougirez/cellarium/internal/domain/dto"
	"github.com/ougirez/cellarium/internal/pkg/store"
)

type Service struct {
	store store.RegionStore
}

func NewRegionService(store store.RegionStore) *Service {
	return &Service{store: store}
}

func (s *Service) ListRegions(ctx context.Context, opts store.ListOpts) ([]*domain.Region, error) {
	regions, err := s.store.ListRegions(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("store.ListRegions: %w", err)
	}

	return regions, nil
}

func (s *Service) GetRegion(ctx context.Context, id int64) (*domain.Region, error) {
	region, err := s.store.GetRegion(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("store.GetRegion, id-%d: %w", id, err)
	}

	return region, nil
}

func (s *Service) CreateRegion(ctx context.Context, in dto.RegionInput) (*domain.Region, error) {
	region, err := s.store.CreateRegion(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("store.CreateRegion: %w", err)
	}

	return region, nil
}

func (s *Service) UpdateRegion(ctx context.Context, id int64, in dto.RegionInput) (*domain.Region, error) {
	region, err := s.store.UpdateRegion(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("store.UpdateRegion, id-%d: %w", id, err)
	}

	return region, nil
}

// DeleteRegion removes the region; wines pointing at it keep existing with
// region set to null.
func (s *Service) DeleteRegion(ctx context.Context, id int64) error {
	if err := s.store.DeleteRegion(ctx, id); err != nil {
		return fmt.Errorf("store.DeleteRegion, id-%d: %w", id, err)
	}

	return nil
}
