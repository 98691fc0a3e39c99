package label

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/ougirez/cellarium/internal/domain"
	"github.com/ougirez/cellarium/internal/pkg/constants"
	"github.com/ougirez/cellarium/internal/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type fakeReader struct {
	reading  *Reading
	err      error
	mimeType string
}

func (f *fakeReader) ReadLabel(_ context.Context, _ []byte, mimeType string) (*Reading, error) {
	f.mimeType = mimeType
	return f.reading, f.err
}

type fakeRegions struct {
	store.RegionStore
	regions []*domain.Region
	listed  int
}

func (f *fakeRegions) ListRegions(context.Context, store.ListOpts) ([]*domain.Region, error) {
	f.listed++
	return f.regions, nil
}

func ptr[T any](v T) *T {
	return &v
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 100, similarity("bordeaux", "bordeaux"))
	assert.Equal(t, 0, similarity("", "bordeaux"))
	// LCS("napa", "napa valley") = 4, 2*4/(4+11)
	assert.Equal(t, 53, similarity("napa", "napa valley"))
	assert.Equal(t, 93, similarity("bordeau", "bordeaux"))
	assert.Equal(t, 0, similarity("abc", "xyz"))
}

func TestMatchRegion(t *testing.T) {
	regions := []*domain.Region{
		{ID: 1, Name: "Rioja", Country: "ES"},
		{ID: 2, Name: "Bordeaux", Country: "FR"},
		{ID: 3, Name: "Napa Valley", Country: "US"},
	}

	m := matchRegion(regions, ptr("Bordeau"), nil)
	require.NotNil(t, m)
	assert.EqualValues(t, 2, m.ID)
	assert.Equal(t, 0.93, m.MatchScore)

	m = matchRegion(regions, ptr("napa valey"), ptr("US"))
	require.NotNil(t, m)
	assert.EqualValues(t, 3, m.ID)
	assert.Equal(t, 1.0, m.MatchScore)

	assert.Nil(t, matchRegion(regions, ptr("Mosel"), ptr("DE")))
	assert.Nil(t, matchRegion(regions, nil, ptr("FR")))
	assert.Nil(t, matchRegion(nil, ptr("Bordeaux"), nil))
}

func TestMatchRegionPrefersSameCountry(t *testing.T) {
	regions := []*domain.Region{
		{ID: 1, Name: "Valle Central", Country: "CL"},
		{ID: 2, Name: "Valle Central", Country: "AR"},
	}

	m := matchRegion(regions, ptr("Valle Central"), ptr("AR"))
	require.NotNil(t, m)
	assert.EqualValues(t, 2, m.ID)

	m = matchRegion(regions, ptr("Valle Central"), nil)
	require.NotNil(t, m)
	assert.EqualValues(t, 1, m.ID)
}

func TestAnalyzeNormalizesReading(t *testing.T) {
	reader := &fakeReader{reading: &Reading{
		Name:              ptr(" Château Margaux "),
		Vintage:           "2015",
		WineType:          ptr("Red"),
		Country:           ptr("fr"),
		Region:            ptr("Bordeaux"),
		GrapeVarieties:    ptr("Cabernet Sauvignon, Merlot"),
		AlcoholPercentage: 13.5,
		Confidence:        map[string]any{"name": 0.9, "vintage": "high"},
		RawText:           "CHATEAU MARGAUX 2015",
	}}
	regions := &fakeRegions{regions: []*domain.Region{{ID: 7, Name: "Bordeaux", Country: "FR"}}}

	res, err := NewLabelService(reader, regions, 0).Analyze(context.Background(), bytes.NewReader(pngHeader))
	require.NoError(t, err)

	assert.Equal(t, "image/png", reader.mimeType)
	assert.True(t, res.Success)
	assert.Equal(t, "Château Margaux", *res.Data.Name)
	assert.Equal(t, 2015, *res.Data.Vintage)
	assert.Equal(t, "red", *res.Data.WineType)
	assert.Equal(t, "FR", *res.Data.Country)
	assert.Equal(t, 13.5, *res.Data.AlcoholPercentage)
	assert.Equal(t, "Bordeaux", *res.Data.SuggestedRegionName)
	require.NotNil(t, res.Data.MatchedRegion)
	assert.EqualValues(t, 7, res.Data.MatchedRegion.ID)
	assert.Equal(t, 1.0, res.Data.MatchedRegion.MatchScore)
	assert.Equal(t, map[string]float64{"name": 0.9}, res.Confidence)
	assert.Equal(t, "CHATEAU MARGAUX 2015", res.RawText)
}

func TestAnalyzeDropsInvalidFields(t *testing.T) {
	reader := &fakeReader{reading: &Reading{
		Vintage:  2015.5,
		WineType: ptr("orange"),
		Country:  ptr("France"),
	}}
	regions := &fakeRegions{}

	res, err := NewLabelService(reader, regions, 0).Analyze(context.Background(), bytes.NewReader(pngHeader))
	require.NoError(t, err)

	assert.Nil(t, res.Data.Vintage)
	assert.Nil(t, res.Data.WineType)
	assert.Nil(t, res.Data.Country)
	assert.Nil(t, res.Data.MatchedRegion)
	assert.Zero(t, regions.listed)
}

func TestAnalyzeRejectsBadImages(t *testing.T) {
	svc := NewLabelService(&fakeReader{reading: &Reading{}}, &fakeRegions{}, 16)

	_, err := svc.Analyze(context.Background(), bytes.NewReader([]byte("just some text")))
	assert.ErrorIs(t, err, constants.ErrLabelImage)

	_, err = svc.Analyze(context.Background(), bytes.NewReader(pngHeader))
	var coded *constants.CodedError
	require.ErrorAs(t, err, &coded)
	assert.Contains(t, coded.Fields(), "image")
}

func TestAnalyzeWithoutReader(t *testing.T) {
	_, err := NewLabelService(nil, &fakeRegions{}, 0).Analyze(context.Background(), bytes.NewReader(pngHeader))
	assert.ErrorIs(t, err, constants.ErrLabelNotConfigured)
}

func TestAnalyzeReaderFailure(t *testing.T) {
	svc := NewLabelService(&fakeReader{err: constants.ErrLabelRateLimited}, &fakeRegions{}, 0)
	_, err := svc.Analyze(context.Background(), bytes.NewReader(pngHeader))
	assert.ErrorIs(t, err, constants.ErrLabelRateLimited)

	svc = NewLabelService(&fakeReader{err: errors.New("boom")}, &fakeRegions{}, 0)
	_, err = svc.Analyze(context.Background(), bytes.NewReader(pngHeader))
	assert.ErrorIs(t, err, constants.ErrLabelService)
}
