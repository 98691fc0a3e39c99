package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/ougirez/cellarium/internal/domain"
	"github.com/ougirez/cellarium/internal/domain/dto"
	"github.com/ougirez/cellarium/internal/pkg/constants"
	"github.com/ougirez/cellarium/internal/pkg/logger"
)

var (
	regionsColumns = []string{
		"r.id", "r.name", "r.country", "r.created_at", "r.updated_at",
		"COUNT(w.id) AS wine_count",
	}

	regionsSearchColumns = []string{"r.name", "r.country"}

	regionsOrdering = map[string]string{
		"id":         "r.id",
		"name":       "r.name",
		"country":    "r.country",
		"wine_count": "wine_count",
	}
)

// regionListQuery selects regions annotated with the number of wines that
// reference them.
func regionListQuery(opts ListOpts) sq.SelectBuilder {
	query := builder().Select(regionsColumns...).
		From(tableRegions + " r").
		LeftJoin(tableWines + " w ON w.region_id = r.id").
		GroupBy("r.id")

	if cond := searchCond(opts.Search, regionsSearchColumns...); cond != nil {
		query = query.Where(cond)
	}

	return query.OrderBy(orderBy(opts.Ordering, regionsOrdering, []string{"r.id DESC"}, "r.id DESC")...)
}

func (s *store) ListRegions(ctx context.Context, opts ListOpts) ([]*domain.Region, error) {
	selected := make([]*domain.Region, 0)
	if err := s.pool.Selectx(ctx, &selected, regionListQuery(opts)); err != nil {
		logger.Errorf(ctx, "ListRegions: %s", err.Error())
		return nil, wrapErr(err)
	}
	return selected, nil
}

func (s *store) GetRegion(ctx context.Context, id int64) (*domain.Region, error) {
	query := regionListQuery(ListOpts{}).Where(sq.Eq{"r.id": id})

	var selected domain.Region
	if err := s.pool.Getx(ctx, &selected, query); err != nil {
		return nil, wrapErr(err)
	}
	return &selected, nil
}

func (s *store) CreateRegion(ctx context.Context, in dto.RegionInput) (*domain.Region, error) {
	query := builder().Insert(tableRegions).
		Columns("name", "country").
		Values(in.Name, in.Country).
		Suffix("RETURNING id")

	var id int64
	if err := s.pool.Getx(ctx, &id, query); err != nil {
		return nil, wrapErr(err)
	}
	return s.GetRegion(ctx, id)
}

func (s *store) UpdateRegion(ctx context.Context, id int64, in dto.RegionInput) (*domain.Region, error) {
	query := builder().Update(tableRegions).
		Set("name", in.Name).
		Set("country", in.Country).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id})

	tag, err := s.pool.Execx(ctx, query)
	if err != nil {
		return nil, wrapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, constants.ErrDBNotFound
	}
	return s.GetRegion(ctx, id)
}

// DeleteRegion removes a region; wines keep existing with region_id NULL.
func (s *store) DeleteRegion(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, tableRegions, id)
}

// UpsertRegions inserts the missing (name, country) pairs and returns all of
// them, pre-existing ones included.
func (s *store) UpsertRegions(ctx context.Context, keys []dto.RegionKey) ([]*domain.Region, error) {
	if len(keys) == 0 {
		return []*domain.Region{}, nil
	}

	insert := builder().Insert(tableRegions).Columns("name", "country")
	match := make(sq.Or, 0, len(keys))
	for _, k := range keys {
		insert = insert.Values(k.Name, k.Country)
		match = append(match, sq.Eq{"r.name": k.Name, "r.country": k.Country})
	}
	insert = insert.Suffix("ON CONFLICT (name, country) DO NOTHING")

	if _, err := s.pool.Execx(ctx, insert); err != nil {
		logger.Errorf(ctx, "UpsertRegions insert: %s", err.Error())
		return nil, fmt.Errorf("insert regions: %w", wrapErr(err))
	}

	query := regionListQuery(ListOpts{Ordering: "name"}).Where(match)

	selected := make([]*domain.Region, 0, len(keys))
	if err := s.pool.Selectx(ctx, &selected, query); err != nil {
		return nil, fmt.Errorf("select regions: %w", wrapErr(err))
	}
	return selected, nil
}
