package store

import (
	"context"

	"github.com/ougirez/cellarium/internal/domain"
	"github.com/ougirez/cellarium/internal/domain/dto"
	"github.com/ougirez/cellarium/internal/pkg/constants"
	"github.com/ougirez/cellarium/internal/pkg/store/xpgx"
)

type Pool = xpgx.Pool

// ListOpts are the query parameters shared by every collection.
type ListOpts struct {
	Search   string
	Ordering string
}

type ListBottlesOpts struct {
	ListOpts
	WineID   *int64
	StoreID  *int64
	Consumed *bool
}

type Store interface {
	RegionStore
	WineStore
	BottleStore
	StorageStore
	UserStore
}

type RegionStore interface {
	ListRegions(ctx context.Context, opts ListOpts) ([]*domain.Region, error)
	GetRegion(ctx context.Context, id int64) (*domain.Region, error)
	CreateRegion(ctx context.Context, in dto.RegionInput) (*domain.Region, error)
	UpdateRegion(ctx context.Context, id int64, in dto.RegionInput) (*domain.Region, error)
	DeleteRegion(ctx context.Context, id int64) error
	UpsertRegions(ctx context.Context, keys []dto.RegionKey) ([]*domain.Region, error)
}

type WineStore interface {
	ListWines(ctx context.Context, opts ListOpts) ([]*domain.Wine, error)
	GetWine(ctx context.Context, id int64) (*domain.Wine, error)
	CreateWine(ctx context.Context, in dto.WineInput) (*domain.Wine, error)
	UpdateWine(ctx context.Context, id int64, in dto.WineInput) (*domain.Wine, error)
	DeleteWine(ctx context.Context, id int64) error
}

type BottleStore interface {
	ListBottles(ctx context.Context, opts ListBottlesOpts) ([]*domain.Bottle, error)
	GetBottle(ctx context.Context, id int64) (*domain.Bottle, error)
	CreateBottle(ctx context.Context, in dto.BottleInput) (*domain.Bottle, error)
	UpdateBottle(ctx context.Context, id int64, in dto.BottleInput) (*domain.Bottle, error)
	DeleteBottle(ctx context.Context, id int64) error
	ConsumeBottle(ctx context.Context, id int64) (*domain.Bottle, error)
	UndoConsumeBottle(ctx context.Context, id int64) (*domain.Bottle, error)
}

// StorageStore persists storage locations (the "stores" resource).
type StorageStore interface {
	ListStores(ctx context.Context, opts ListOpts) ([]*domain.Store, error)
	GetStore(ctx context.Context, id int64) (*domain.Store, error)
	CreateStore(ctx context.Context, in dto.StoreInput) (*domain.Store, error)
	UpdateStore(ctx context.Context, id int64, in dto.StoreInput) (*domain.Store, error)
	DeleteStore(ctx context.Context, id int64) error
}

type UserStore interface {
	CreateUser(ctx context.Context, username, passwordHash string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	SetUserPassword(ctx context.Context, id int64, passwordHash string) error
}

type store struct {
	pool Pool
}

func NewStore(pool Pool) Store {
	return &store{pool}
}

// deleteByID removes one row and reports ErrDBNotFound when nothing matched.
func (s *store) deleteByID(ctx context.Context, table string, id int64) error {
	tag, err := s.pool.Execx(ctx, builder().Delete(table).Where("id = ?", id))
	if err != nil {
		return wrapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return constants.ErrDBNotFound
	}
	return nil
}
