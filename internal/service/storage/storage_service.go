// Package storage serves the "stores" resource: places where bottles are kept.
package storage

import (
	"context"
	"fmt"

	"github.com/ougirez/cellarium/internal/domain"
	"github.com/ougirez/cellarium/internal/domain/dto"
	"github.com/ougirez/cellarium/internal/pkg/store"
)

type Service struct {
	store store.StorageStore
}

func NewStorageService(store store.StorageStore) *Service {
	return &Service{store: store}
}

func (s *Service) ListStores(ctx context.Context, opts store.ListOpts) ([]*domain.Store, error) {
	stores, err := s.store.ListStores(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("store.ListStores: %w", err)
	}

	return stores, nil
}

func (s *Service) GetStore(ctx context.Context, id int64) (*domain.Store, error) {
	st, err := s.store.GetStore(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("store.GetStore, id-%d: %w", id, err)
	}

	return st, nil
}

func (s *Service) CreateStore(ctx context.Context, in dto.StoreInput) (*domain.Store, error) {
	st, err := s.store.CreateStore(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("store.CreateStore: %w", err)
	}

	return st, nil
}

func (s *Service) UpdateStore(ctx context.Context, id int64, in dto.StoreInput) (*domain.Store, error) {
	st, err := s.store.UpdateStore(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("store.UpdateStore, id-%d: %w", id, err)
	}

	return st, nil
}

func (s *Service) DeleteStore(ctx context.Context, id int64) error {
	if err := s.store.DeleteStore(ctx, id); err != nil {
		return fmt.Errorf("store.DeleteStore, id-%d: %w", id, err)
	}

	return nil
}
