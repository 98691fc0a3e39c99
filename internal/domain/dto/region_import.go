package dto

import (
	"sync"

	"github.com/ougirez/cellarium/internal/domain"
)

type RegionImportRequest struct {
	URLs []string `json:"urls" validate:"required,min=1,max=20,dive,required,http_url"`
}

// RegionImport accumulates rows parsed from several pages concurrently.
type RegionImport struct {
	seen    map[RegionKey]struct{}
	rows    []RegionKey
	skipped int
	mx      sync.Mutex
}

type RegionKey struct {
	Name    string
	Country string
}

func NewRegionImport() *RegionImport {
	return &RegionImport{seen: make(map[RegionKey]struct{})}
}

// Put records a parsed row once; duplicates across pages are dropped.
func (ri *RegionImport) Put(key RegionKey) bool {
	ri.mx.Lock()
	defer ri.mx.Unlock()

	if _, ok := ri.seen[key]; ok {
		return false
	}
	ri.seen[key] = struct{}{}
	ri.rows = append(ri.rows, key)
	return true
}

func (ri *RegionImport) Skip() {
	ri.mx.Lock()
	defer ri.mx.Unlock()

	ri.skipped++
}

func (ri *RegionImport) Rows() []RegionKey {
	ri.mx.Lock()
	defer ri.mx.Unlock()

	return append([]RegionKey(nil), ri.rows...)
}

func (ri *RegionImport) Skipped() int {
	ri.mx.Lock()
	defer ri.mx.Unlock()

	return ri.skipped
}

type RegionImportResponse struct {
	Regions []*domain.Region `json:"regions"`
	Skipped int              `json:"skipped"`
}
