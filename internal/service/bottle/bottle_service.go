package bottle

import (
	"context"
	"fmt"

	"github.com/ougirez/cellarium/internal/domain"
	"github.com/ougirez/cellarium/internal/domain/dto"
	"github.com/ougirez/cellarium/internal/pkg/logger"
	"github.com/ougirez/cellarium/internal/pkg/metrics"
	"github.com/ougirez/cellarium/internal/pkg/store"
)

const (
	actionConsume     = "consume"
	actionUndoConsume = "undo_consume"
)

type Service struct {
	store store.BottleStore
}

func NewBottleService(store store.BottleStore) *Service {
	return &Service{store: store}
}

func (s *Service) ListBottles(ctx context.Context, opts store.ListBottlesOpts) ([]*domain.Bottle, error) {
	bottles, err := s.store.ListBottles(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("store.ListBottles: %w", err)
	}

	return bottles, nil
}

func (s *Service) GetBottle(ctx context.Context, id int64) (*domain.Bottle, error) {
	bottle, err := s.store.GetBottle(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("store.GetBottle, id-%d: %w", id, err)
	}

	return bottle, nil
}

func (s *Service) CreateBottle(ctx context.Context, in dto.BottleInput) (*domain.Bottle, error) {
	bottle, err := s.store.CreateBottle(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("store.CreateBottle: %w", err)
	}

	return bottle, nil
}

func (s *Service) UpdateBottle(ctx context.Context, id int64, in dto.BottleInput) (*domain.Bottle, error) {
	bottle, err := s.store.UpdateBottle(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("store.UpdateBottle, id-%d: %w", id, err)
	}

	return bottle, nil
}

func (s *Service) DeleteBottle(ctx context.Context, id int64) error {
	if err := s.store.DeleteBottle(ctx, id); err != nil {
		return fmt.Errorf("store.DeleteBottle, id-%d: %w", id, err)
	}

	return nil
}

// Consume marks the bottle as drunk today. A bottle that is already consumed
// keeps its original date.
func (s *Service) Consume(ctx context.Context, id int64) (*domain.Bottle, error) {
	bottle, err := s.store.ConsumeBottle(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("store.ConsumeBottle, id-%d: %w", id, err)
	}

	metrics.RecordBottleAction(actionConsume)
	logger.Infof(ctx, "bottle %d consumed at %s", bottle.ID, bottle.ConsumedAt)
	return bottle, nil
}

// UndoConsume puts the bottle back in stock.
func (s *Service) UndoConsume(ctx context.Context, id int64) (*domain.Bottle, error) {
	bottle, err := s.store.UndoConsumeBottle(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("store.UndoConsumeBottle, id-%d: %w", id, err)
	}

	metrics.RecordBottleAction(actionUndoConsume)
	logger.Infof(ctx, "bottle %d back in stock", bottle.ID)
	return bottle, nil
}
