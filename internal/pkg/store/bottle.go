package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/ougirez/cellarium/internal/domain"
	"github.com/ougirez/cellarium/internal/domain/dto"
	"github.com/ougirez/cellarium/internal/pkg/logger"
)

var (
	bottlesColumns = []string{
		"b.id", "b.wine_id", "b.store_id", "b.purchase_date", "b.price", "b.consumed_at",
		"b.created_at", "b.updated_at",
	}

	bottlesReturning = "RETURNING id, wine_id, store_id, purchase_date, price, consumed_at, created_at, updated_at"

	bottlesSearchColumns = []string{"w.name", "s.name"}

	bottlesOrdering = map[string]string{
		"id":            "b.id",
		"purchase_date": "b.purchase_date",
		"price":         "b.price",
		"consumed_at":   "b.consumed_at",
	}
)

func bottleListQuery(opts ListBottlesOpts) sq.SelectBuilder {
	query := builder().Select(bottlesColumns...).
		From(tableBottles + " b").
		Join(tableWines + " w ON w.id = b.wine_id").
		LeftJoin(tableStores + " s ON s.id = b.store_id")

	if opts.WineID != nil {
		query = query.Where(sq.Eq{"b.wine_id": *opts.WineID})
	}
	if opts.StoreID != nil {
		query = query.Where(sq.Eq{"b.store_id": *opts.StoreID})
	}
	if opts.Consumed != nil {
		if *opts.Consumed {
			query = query.Where(sq.NotEq{"b.consumed_at": nil})
		} else {
			query = query.Where(sq.Eq{"b.consumed_at": nil})
		}
	}
	if cond := searchCond(opts.Search, bottlesSearchColumns...); cond != nil {
		query = query.Where(cond)
	}

	return query.OrderBy(orderBy(opts.Ordering, bottlesOrdering, []string{"b.id DESC"}, "b.id DESC")...)
}

func (s *store) ListBottles(ctx context.Context, opts ListBottlesOpts) ([]*domain.Bottle, error) {
	selected := make([]*domain.Bottle, 0)
	if err := s.pool.Selectx(ctx, &selected, bottleListQuery(opts)); err != nil {
		logger.Errorf(ctx, "ListBottles: %s", err.Error())
		return nil, wrapErr(err)
	}
	return selected, nil
}

func (s *store) GetBottle(ctx context.Context, id int64) (*domain.Bottle, error) {
	var selected domain.Bottle
	if err := s.pool.Getx(ctx, &selected, bottleListQuery(ListBottlesOpts{}).Where(sq.Eq{"b.id": id})); err != nil {
		return nil, wrapErr(err)
	}
	return &selected, nil
}

func bottleValues(in dto.BottleInput) map[string]any {
	return map[string]any{
		"wine_id":       in.WineID,
		"store_id":      in.StoreID,
		"purchase_date": in.PurchaseDate,
		"price":         in.Price,
	}
}

func (s *store) CreateBottle(ctx context.Context, in dto.BottleInput) (*domain.Bottle, error) {
	query := builder().Insert(tableBottles).
		SetMap(bottleValues(in)).
		Suffix(bottlesReturning)

	var created domain.Bottle
	if err := s.pool.Getx(ctx, &created, query); err != nil {
		return nil, wrapErr(err)
	}
	return &created, nil
}

func (s *store) UpdateBottle(ctx context.Context, id int64, in dto.BottleInput) (*domain.Bottle, error) {
	query := builder().Update(tableBottles).
		SetMap(bottleValues(in)).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix(bottlesReturning)

	var updated domain.Bottle
	if err := s.pool.Getx(ctx, &updated, query); err != nil {
		return nil, wrapErr(err)
	}
	return &updated, nil
}

func (s *store) DeleteBottle(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, tableBottles, id)
}

// consumeQuery keeps an existing consumed_at, so repeating it is a no-op.
func consumeQuery(id int64) sq.UpdateBuilder {
	return builder().Update(tableBottles).
		Set("consumed_at", sq.Expr("COALESCE(consumed_at, CURRENT_DATE)")).
		Set("updated_at", sq.Expr("CASE WHEN consumed_at IS NULL THEN now() ELSE updated_at END")).
		Where(sq.Eq{"id": id}).
		Suffix(bottlesReturning)
}

func undoConsumeQuery(id int64) sq.UpdateBuilder {
	return builder().Update(tableBottles).
		Set("consumed_at", nil).
		Set("updated_at", sq.Expr("CASE WHEN consumed_at IS NULL THEN updated_at ELSE now() END")).
		Where(sq.Eq{"id": id}).
		Suffix(bottlesReturning)
}

// ConsumeBottle marks the bottle consumed today unless it already is.
func (s *store) ConsumeBottle(ctx context.Context, id int64) (*domain.Bottle, error) {
	var updated domain.Bottle
	if err := s.pool.Getx(ctx, &updated, consumeQuery(id)); err != nil {
		return nil, wrapErr(err)
	}
	return &updated, nil
}

// UndoConsumeBottle puts the bottle back in stock.
func (s *store) UndoConsumeBottle(ctx context.Context, id int64) (*domain.Bottle, error) {
	var updated domain.Bottle
	if err := s.pool.Getx(ctx, &updated, undoConsumeQuery(id)); err != nil {
		return nil, wrapErr(err)
	}
	return &updated, nil
}

