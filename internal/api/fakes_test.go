package api

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ougirez/cellarium/internal/domain"
	"github.com/ougirez/cellarium/internal/domain/dto"
	"github.com/ougirez/cellarium/internal/pkg/constants"
	"github.com/ougirez/cellarium/internal/pkg/store"
)

// fakeCellar is an in-memory stand-in for the domain services.
type fakeCellar struct {
	mx      sync.Mutex
	nextID  int64
	wines   map[int64]*domain.Wine
	regions map[int64]*domain.Region
	bottles map[int64]*domain.Bottle
	stores  map[int64]*domain.Store
	today   domain.Date

	lastBottleOpts store.ListBottlesOpts
	imported       []dto.RegionImportRequest
}

func newFakeCellar() *fakeCellar {
	return &fakeCellar{
		wines:   make(map[int64]*domain.Wine),
		regions: make(map[int64]*domain.Region),
		bottles: make(map[int64]*domain.Bottle),
		stores:  make(map[int64]*domain.Store),
		today:   domain.NewDate(time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC)),
	}
}

func (f *fakeCellar) id() int64 {
	f.nextID++
	return f.nextID
}

// wineView copies w with the counts the SQL query aggregates from bottles.
func (f *fakeCellar) wineView(w *domain.Wine) *domain.Wine {
	cp := *w
	cp.BottleCount, cp.InStockCount = 0, 0
	for _, b := range f.bottles {
		if b.WineID != w.ID {
			continue
		}
		cp.BottleCount++
		if b.InStock() {
			cp.InStockCount++
		}
	}
	return &cp
}

func (f *fakeCellar) regionView(r *domain.Region) *domain.Region {
	cp := *r
	cp.WineCount = 0
	for _, w := range f.wines {
		if w.Region != nil && w.Region.ID == r.ID {
			cp.WineCount++
		}
	}
	return &cp
}

func (f *fakeCellar) ListWines(_ context.Context, opts store.ListOpts) ([]*domain.Wine, error) {
	f.mx.Lock()
	defer f.mx.Unlock()

	res := make([]*domain.Wine, 0, len(f.wines))
	for _, w := range f.wines {
		if opts.Search == "" || strings.Contains(strings.ToLower(w.Name), strings.ToLower(opts.Search)) {
			res = append(res, f.wineView(w))
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID > res[j].ID })
	return res, nil
}

func (f *fakeCellar) GetWine(_ context.Context, id int64) (*domain.Wine, error) {
	f.mx.Lock()
	defer f.mx.Unlock()

	w, ok := f.wines[id]
	if !ok {
		return nil, constants.ErrDBNotFound
	}
	return f.wineView(w), nil
}

func (f *fakeCellar) applyWine(w *domain.Wine, in dto.WineInput) error {
	w.Name = in.Name
	w.Country = in.Country
	w.Vintage = in.Vintage
	w.GrapeVarieties = in.GrapeVarieties
	w.WineType = in.WineType
	w.Rating = in.Rating
	w.Notes = in.Notes
	w.Image = in.Image
	w.Region = nil
	if in.RegionID != nil {
		r, ok := f.regions[*in.RegionID]
		if !ok {
			return constants.NewFieldError("region", "invalid pk - object does not exist")
		}
		w.Region = &domain.RegionRef{ID: r.ID, Name: r.Name, Country: r.Country}
	}
	return nil
}

func (f *fakeCellar) CreateWine(_ context.Context, in dto.WineInput) (*domain.Wine, error) {
	f.mx.Lock()
	defer f.mx.Unlock()

	w := &domain.Wine{}
	if err := f.applyWine(w, in); err != nil {
		return nil, err
	}
	w.ID = f.id()
	f.wines[w.ID] = w
	return f.wineView(w), nil
}

func (f *fakeCellar) UpdateWine(_ context.Context, id int64, in dto.WineInput) (*domain.Wine, error) {
	f.mx.Lock()
	defer f.mx.Unlock()

	w, ok := f.wines[id]
	if !ok {
		return nil, constants.ErrDBNotFound
	}
	if err := f.applyWine(w, in); err != nil {
		return nil, err
	}
	return f.wineView(w), nil
}

func (f *fakeCellar) DeleteWine(_ context.Context, id int64) error {
	f.mx.Lock()
	defer f.mx.Unlock()

	if _, ok := f.wines[id]; !ok {
		return constants.ErrDBNotFound
	}
	delete(f.wines, id)
	for bid, b := range f.bottles {
		if b.WineID == id {
			delete(f.bottles, bid)
		}
	}
	return nil
}

func (f *fakeCellar) ListRegions(context.Context, store.ListOpts) ([]*domain.Region, error) {
	f.mx.Lock()
	defer f.mx.Unlock()

	res := make([]*domain.Region, 0, len(f.regions))
	for _, r := range f.regions {
		res = append(res, f.regionView(r))
	}
	return res, nil
}

func (f *fakeCellar) GetRegion(_ context.Context, id int64) (*domain.Region, error) {
	f.mx.Lock()
	defer f.mx.Unlock()

	r, ok := f.regions[id]
	if !ok {
		return nil, constants.ErrDBNotFound
	}
	return f.regionView(r), nil
}

func (f *fakeCellar) duplicateRegion(id int64, in dto.RegionInput) bool {
	for _, r := range f.regions {
		if r.ID != id && r.Name == in.Name && r.Country == in.Country {
			return true
		}
	}
	return false
}

func (f *fakeCellar) CreateRegion(_ context.Context, in dto.RegionInput) (*domain.Region, error) {
	f.mx.Lock()
	defer f.mx.Unlock()

	if f.duplicateRegion(0, in) {
		return nil, constants.ErrRegionDuplicate
	}
	r := &domain.Region{ID: f.id(), Name: in.Name, Country: in.Country}
	f.regions[r.ID] = r
	return f.regionView(r), nil
}

func (f *fakeCellar) UpdateRegion(_ context.Context, id int64, in dto.RegionInput) (*domain.Region, error) {
	f.mx.Lock()
	defer f.mx.Unlock()

	r, ok := f.regions[id]
	if !ok {
		return nil, constants.ErrDBNotFound
	}
	if f.duplicateRegion(id, in) {
		return nil, constants.ErrRegionDuplicate
	}
	r.Name, r.Country = in.Name, in.Country
	return f.regionView(r), nil
}

func (f *fakeCellar) DeleteRegion(_ context.Context, id int64) error {
	f.mx.Lock()
	defer f.mx.Unlock()

	if _, ok := f.regions[id]; !ok {
		return constants.ErrDBNotFound
	}
	delete(f.regions, id)
	for _, w := range f.wines {
		if w.Region != nil && w.Region.ID == id {
			w.Region = nil
		}
	}
	return nil
}

func (f *fakeCellar) Import(_ context.Context, request dto.RegionImportRequest) (*dto.RegionImportResponse, error) {
	f.mx.Lock()
	defer f.mx.Unlock()

	f.imported = append(f.imported, request)
	return &dto.RegionImportResponse{Regions: []*domain.Region{}}, nil
}

func (f *fakeCellar) ListBottles(_ context.Context, opts store.ListBottlesOpts) ([]*domain.Bottle, error) {
	f.mx.Lock()
	defer f.mx.Unlock()

	f.lastBottleOpts = opts
	res := make([]*domain.Bottle, 0, len(f.bottles))
	for _, b := range f.bottles {
		if opts.WineID != nil && b.WineID != *opts.WineID {
			continue
		}
		if opts.Consumed != nil && b.InStock() == *opts.Consumed {
			continue
		}
		res = append(res, b)
	}
	return res, nil
}

func (f *fakeCellar) GetBottle(_ context.Context, id int64) (*domain.Bottle, error) {
	f.mx.Lock()
	defer f.mx.Unlock()

	b, ok := f.bottles[id]
	if !ok {
		return nil, constants.ErrDBNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeCellar) CreateBottle(_ context.Context, in dto.BottleInput) (*domain.Bottle, error) {
	f.mx.Lock()
	defer f.mx.Unlock()

	if _, ok := f.wines[in.WineID]; !ok {
		return nil, constants.NewFieldError("wine", "invalid pk - object does not exist")
	}
	b := &domain.Bottle{ID: f.id(), WineID: in.WineID, StoreID: in.StoreID, PurchaseDate: in.PurchaseDate, Price: in.Price}
	f.bottles[b.ID] = b
	return b, nil
}

func (f *fakeCellar) UpdateBottle(_ context.Context, id int64, in dto.BottleInput) (*domain.Bottle, error) {
	f.mx.Lock()
	defer f.mx.Unlock()

	b, ok := f.bottles[id]
	if !ok {
		return nil, constants.ErrDBNotFound
	}
	b.WineID, b.StoreID, b.PurchaseDate, b.Price = in.WineID, in.StoreID, in.PurchaseDate, in.Price
	return b, nil
}

func (f *fakeCellar) DeleteBottle(_ context.Context, id int64) error {
	f.mx.Lock()
	defer f.mx.Unlock()

	if _, ok := f.bottles[id]; !ok {
		return constants.ErrDBNotFound
	}
	delete(f.bottles, id)
	return nil
}

func (f *fakeCellar) Consume(_ context.Context, id int64) (*domain.Bottle, error) {
	f.mx.Lock()
	defer f.mx.Unlock()

	b, ok := f.bottles[id]
	if !ok {
		return nil, constants.ErrDBNotFound
	}
	if b.ConsumedAt == nil {
		day := f.today
		b.ConsumedAt = &day
	}
	cp := *b
	return &cp, nil
}

func (f *fakeCellar) UndoConsume(_ context.Context, id int64) (*domain.Bottle, error) {
	f.mx.Lock()
	defer f.mx.Unlock()

	b, ok := f.bottles[id]
	if !ok {
		return nil, constants.ErrDBNotFound
	}
	b.ConsumedAt = nil
	cp := *b
	return &cp, nil
}

func (f *fakeCellar) ListStores(context.Context, store.ListOpts) ([]*domain.Store, error) {
	f.mx.Lock()
	defer f.mx.Unlock()

	res := make([]*domain.Store, 0, len(f.stores))
	for _, s := range f.stores {
		res = append(res, s)
	}
	return res, nil
}

func (f *fakeCellar) GetStore(_ context.Context, id int64) (*domain.Store, error) {
	f.mx.Lock()
	defer f.mx.Unlock()

	s, ok := f.stores[id]
	if !ok {
		return nil, constants.ErrDBNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeCellar) CreateStore(_ context.Context, in dto.StoreInput) (*domain.Store, error) {
	f.mx.Lock()
	defer f.mx.Unlock()

	s := &domain.Store{ID: f.id(), Name: in.Name, Address: in.Address, Notes: in.Notes}
	f.stores[s.ID] = s
	return s, nil
}

func (f *fakeCellar) UpdateStore(_ context.Context, id int64, in dto.StoreInput) (*domain.Store, error) {
	f.mx.Lock()
	defer f.mx.Unlock()

	s, ok := f.stores[id]
	if !ok {
		return nil, constants.ErrDBNotFound
	}
	s.Name, s.Address, s.Notes = in.Name, in.Address, in.Notes
	return s, nil
}

func (f *fakeCellar) DeleteStore(_ context.Context, id int64) error {
	f.mx.Lock()
	defer f.mx.Unlock()

	if _, ok := f.stores[id]; !ok {
		return constants.ErrDBNotFound
	}
	delete(f.stores, id)
	for _, b := range f.bottles {
		if b.StoreID != nil && *b.StoreID == id {
			b.StoreID = nil
		}
	}
	return nil
}

// fakeLabels records the uploaded image and answers with a fixed analysis.
type fakeLabels struct {
	image  []byte
	result *dto.LabelAnalysis
	err    error
}

func (f *fakeLabels) Analyze(_ context.Context, image io.Reader) (*dto.LabelAnalysis, error) {
	data, err := io.ReadAll(image)
	if err != nil {
		return nil, err
	}
	f.image = data
	return f.result, f.err
}

// fakeUsers backs the real auth service.
type fakeUsers struct {
	users map[string]*domain.User
}

func (f *fakeUsers) CreateUser(_ context.Context, username, hash string) (*domain.User, error) {
	u := &domain.User{ID: int64(len(f.users) + 1), Username: username, PasswordHash: hash}
	f.users[username] = u
	return u, nil
}

func (f *fakeUsers) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	if u, ok := f.users[username]; ok {
		return u, nil
	}
	return nil, constants.ErrDBNotFound
}

func (f *fakeUsers) GetUserByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, constants.ErrDBNotFound
}

func (f *fakeUsers) SetUserPassword(context.Context, int64, string) error { return nil }

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context) error { return p.err }
