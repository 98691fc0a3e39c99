package controller

import (
	"context"
	"io"

	"github.com/ougirez/cellarium/internal/domain"
	"github.com/ougirez/cellarium/internal/domain/dto"
	"github.com/ougirez/cellarium/internal/pkg/store"
)

type WineService interface {
	ListWines(ctx context.Context, opts store.ListOpts) ([]*domain.Wine, error)
	GetWine(ctx context.Context, id int64) (*domain.Wine, error)
	CreateWine(ctx context.Context, in dto.WineInput) (*domain.Wine, error)
	UpdateWine(ctx context.Context, id int64, in dto.WineInput) (*domain.Wine, error)
	DeleteWine(ctx context.Context, id int64) error
}

type RegionService interface {
	ListRegions(ctx context.Context, opts store.ListOpts) ([]*domain.Region, error)
	GetRegion(ctx context.Context, id int64) (*domain.Region, error)
	CreateRegion(ctx context.Context, in dto.RegionInput) (*domain.Region, error)
	UpdateRegion(ctx context.Context, id int64, in dto.RegionInput) (*domain.Region, error)
	DeleteRegion(ctx context.Context, id int64) error
}

type RegionImportService interface {
	Import(ctx context.Context, request dto.RegionImportRequest) (*dto.RegionImportResponse, error)
}

type LabelService interface {
	Analyze(ctx context.Context, image io.Reader) (*dto.LabelAnalysis, error)
}

type BottleService interface {
	ListBottles(ctx context.Context, opts store.ListBottlesOpts) ([]*domain.Bottle, error)
	GetBottle(ctx context.Context, id int64) (*domain.Bottle, error)
	CreateBottle(ctx context.Context, in dto.BottleInput) (*domain.Bottle, error)
	UpdateBottle(ctx context.Context, id int64, in dto.BottleInput) (*domain.Bottle, error)
	DeleteBottle(ctx context.Context, id int64) error
	Consume(ctx context.Context, id int64) (*domain.Bottle, error)
	UndoConsume(ctx context.Context, id int64) (*domain.Bottle, error)
}

type StorageService interface {
	ListStores(ctx context.Context, opts store.ListOpts) ([]*domain.Store, error)
	GetStore(ctx context.Context, id int64) (*domain.Store, error)
	CreateStore(ctx context.Context, in dto.StoreInput) (*domain.Store, error)
	UpdateStore(ctx context.Context, id int64, in dto.StoreInput) (*domain.Store, error)
	DeleteStore(ctx context.Context, id int64) error
}

type AuthService interface {
	Login(ctx context.Context, request dto.TokenObtainRequest) (*domain.TokenPair, error)
	Refresh(ctx context.Context, request dto.TokenRefreshRequest) (*domain.AccessToken, error)
	Authenticate(ctx context.Context, raw string) (int64, error)
}

// Services is everything the HTTP layer needs from the domain.
type Services struct {
	Wines        WineService
	Regions      RegionService
	RegionImport RegionImportService
	Labels       LabelService
	Bottles      BottleService
	Stores       StorageService
	Auth         AuthService
}

type Controller struct {
	services Services
}

func NewController(services Services) *Controller {
	return &Controller{services: services}
}
