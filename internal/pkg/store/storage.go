package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/ougirez/cellarium/internal/domain"
	"github.com/ougirez/cellarium/internal/domain/dto"
	"github.com/ougirez/cellarium/internal/pkg/logger"
)

var (
	storesColumns = []string{"id", "name", "address", "notes", "created_at", "updated_at"}

	storesSearchColumns = []string{"name", "address"}

	storesOrdering = map[string]string{
		"id":   "id",
		"name": "name",
	}
)

func storeListQuery(opts ListOpts) sq.SelectBuilder {
	query := builder().Select(storesColumns...).From(tableStores)

	if cond := searchCond(opts.Search, storesSearchColumns...); cond != nil {
		query = query.Where(cond)
	}

	return query.OrderBy(orderBy(opts.Ordering, storesOrdering, []string{"id DESC"}, "id DESC")...)
}

func (s *store) ListStores(ctx context.Context, opts ListOpts) ([]*domain.Store, error) {
	selected := make([]*domain.Store, 0)
	if err := s.pool.Selectx(ctx, &selected, storeListQuery(opts)); err != nil {
		logger.Errorf(ctx, "ListStores: %s", err.Error())
		return nil, wrapErr(err)
	}
	return selected, nil
}

func (s *store) GetStore(ctx context.Context, id int64) (*domain.Store, error) {
	var selected domain.Store
	if err := s.pool.Getx(ctx, &selected, storeListQuery(ListOpts{}).Where(sq.Eq{"id": id})); err != nil {
		return nil, wrapErr(err)
	}
	return &selected, nil
}

func (s *store) CreateStore(ctx context.Context, in dto.StoreInput) (*domain.Store, error) {
	query := builder().Insert(tableStores).
		Columns("name", "address", "notes").
		Values(in.Name, in.Address, in.Notes).
		Suffix("RETURNING id, name, address, notes, created_at, updated_at")

	var created domain.Store
	if err := s.pool.Getx(ctx, &created, query); err != nil {
		return nil, wrapErr(err)
	}
	return &created, nil
}

func (s *store) UpdateStore(ctx context.Context, id int64, in dto.StoreInput) (*domain.Store, error) {
	query := builder().Update(tableStores).
		Set("name", in.Name).
		Set("address", in.Address).
		Set("notes", in.Notes).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING id, name, address, notes, created_at, updated_at")

	var updated domain.Store
	if err := s.pool.Getx(ctx, &updated, query); err != nil {
		return nil, wrapErr(err)
	}
	return &updated, nil
}

// DeleteStore removes a location; its bottles stay with store_id NULL.
func (s *store) DeleteStore(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, tableStores, id)
}
