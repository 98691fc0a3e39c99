package store

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/ougirez/cellarium/internal/domain"
	"github.com/ougirez/cellarium/internal/domain/dto"
	"github.com/ougirez/cellarium/internal/pkg/constants"
	"github.com/ougirez/cellarium/internal/pkg/logger"
	"github.com/shopspring/decimal"
)

var (
	winesColumns = []string{
		"w.id", "w.name", "w.country", "w.vintage", "w.grape_varieties", "w.wine_type",
		"w.rating", "w.notes", "w.image", "w.created_at", "w.updated_at",
		"r.id AS region_id", "r.name AS region_name", "r.country AS region_country",
		"COUNT(b.id) AS bottle_count",
		"COUNT(b.id) FILTER (WHERE b.consumed_at IS NULL) AS in_stock_count",
	}

	winesSearchColumns = []string{"w.name", "w.country", "r.name", "w.grape_varieties", "w.wine_type"}

	winesOrdering = map[string]string{
		"id":             "w.id",
		"name":           "w.name",
		"vintage":        "w.vintage",
		"country":        "w.country",
		"rating":         "w.rating",
		"bottle_count":   "bottle_count",
		"in_stock_count": "in_stock_count",
	}
)

// wineRow is the flat shape of winesColumns.
type wineRow struct {
	ID             int64               `db:"id"`
	Name           string              `db:"name"`
	Country        *string             `db:"country"`
	Vintage        *int                `db:"vintage"`
	GrapeVarieties *string             `db:"grape_varieties"`
	WineType       *string             `db:"wine_type"`
	Rating         decimal.NullDecimal `db:"rating"`
	Notes          string              `db:"notes"`
	Image          *string             `db:"image"`
	CreatedAt      time.Time           `db:"created_at"`
	UpdatedAt      time.Time           `db:"updated_at"`
	RegionID       *int64              `db:"region_id"`
	RegionName     *string             `db:"region_name"`
	RegionCountry  *string             `db:"region_country"`
	BottleCount    int64               `db:"bottle_count"`
	InStockCount   int64               `db:"in_stock_count"`
}

func (r *wineRow) toDomain() *domain.Wine {
	w := &domain.Wine{
		ID:             r.ID,
		Name:           r.Name,
		Country:        r.Country,
		Vintage:        r.Vintage,
		GrapeVarieties: r.GrapeVarieties,
		WineType:       r.WineType,
		Rating:         r.Rating,
		Notes:          r.Notes,
		Image:          r.Image,
		BottleCount:    r.BottleCount,
		InStockCount:   r.InStockCount,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	if r.RegionID != nil {
		w.Region = &domain.RegionRef{ID: *r.RegionID}
		if r.RegionName != nil {
			w.Region.Name = *r.RegionName
		}
		if r.RegionCountry != nil {
			w.Region.Country = *r.RegionCountry
		}
	}
	return w
}

// wineListQuery selects wines with their region and the bottle counts
// aggregated over live bottle rows, so ordering by the counts happens in SQL.
func wineListQuery(opts ListOpts) sq.SelectBuilder {
	query := builder().Select(winesColumns...).
		From(tableWines + " w").
		LeftJoin(tableRegions + " r ON r.id = w.region_id").
		LeftJoin(tableBottles + " b ON b.wine_id = w.id").
		GroupBy("w.id", "r.id")

	if cond := searchCond(opts.Search, winesSearchColumns...); cond != nil {
		query = query.Where(cond)
	}

	return query.OrderBy(orderBy(opts.Ordering, winesOrdering, []string{"w.id DESC"}, "w.id DESC")...)
}

func (s *store) ListWines(ctx context.Context, opts ListOpts) ([]*domain.Wine, error) {
	var rows []*wineRow
	if err := s.pool.Selectx(ctx, &rows, wineListQuery(opts)); err != nil {
		logger.Errorf(ctx, "ListWines: %s", err.Error())
		return nil, wrapErr(err)
	}

	wines := make([]*domain.Wine, 0, len(rows))
	for _, r := range rows {
		wines = append(wines, r.toDomain())
	}
	return wines, nil
}

func (s *store) GetWine(ctx context.Context, id int64) (*domain.Wine, error) {
	var row wineRow
	if err := s.pool.Getx(ctx, &row, wineListQuery(ListOpts{}).Where(sq.Eq{"w.id": id})); err != nil {
		return nil, wrapErr(err)
	}
	return row.toDomain(), nil
}

func wineValues(in dto.WineInput) map[string]any {
	return map[string]any{
		"name":            in.Name,
		"country":         in.Country,
		"vintage":         in.Vintage,
		"grape_varieties": in.GrapeVarieties,
		"wine_type":       in.WineType,
		"rating":          in.Rating,
		"notes":           in.Notes,
		"image":           in.Image,
		"region_id":       in.RegionID,
	}
}

func (s *store) CreateWine(ctx context.Context, in dto.WineInput) (*domain.Wine, error) {
	query := builder().Insert(tableWines).
		SetMap(wineValues(in)).
		Suffix("RETURNING id")

	var id int64
	if err := s.pool.Getx(ctx, &id, query); err != nil {
		return nil, wrapErr(err)
	}
	return s.GetWine(ctx, id)
}

func (s *store) UpdateWine(ctx context.Context, id int64, in dto.WineInput) (*domain.Wine, error) {
	query := builder().Update(tableWines).
		SetMap(wineValues(in)).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id})

	tag, err := s.pool.Execx(ctx, query)
	if err != nil {
		return nil, wrapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, constants.ErrDBNotFound
	}
	return s.GetWine(ctx, id)
}

// DeleteWine removes a wine together with its bottles.
func (s *store) DeleteWine(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, tableWines, id)
}
