package api

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ougirez/cellarium/internal/domain/dto"
	"github.com/ougirez/cellarium/internal/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) upload(field string, content []byte) *httptest.ResponseRecorder {
	e.t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if field != "" {
		part, err := mw.CreateFormFile(field, "label.jpg")
		require.NoError(e.t, err)
		_, err = part.Write(content)
		require.NoError(e.t, err)
	}
	require.NoError(e.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/wines/analyze_label", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+e.access)

	rec := httptest.NewRecorder()
	e.api.ServeHTTP(rec, req)
	return rec
}

func TestAnalyzeLabel(t *testing.T) {
	e := newTestEnv(t)
	name, region := "Opus One", "Napa Valley"
	e.labels.result = &dto.LabelAnalysis{
		Success: true,
		Data: dto.LabelData{
			Name:                &name,
			SuggestedRegionName: &region,
			MatchedRegion:       &dto.RegionMatch{ID: 3, Name: region, Country: "US", MatchScore: 0.95},
		},
		Confidence: map[string]float64{"name": 0.9},
		RawText:    "OPUS ONE NAPA VALLEY",
	}

	rec := e.upload("image", []byte{0xff, 0xd8, 0xff, 0xe0})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []byte{0xff, 0xd8, 0xff, 0xe0}, e.labels.image)

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "OPUS ONE NAPA VALLEY", body["raw_text"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Opus One", data["name"])
	assert.Nil(t, data["vintage"])
	matched := data["matched_region"].(map[string]interface{})
	assert.EqualValues(t, 3, matched["id"])
	assert.Equal(t, 0.95, matched["match_score"])
}

func TestAnalyzeLabelErrors(t *testing.T) {
	e := newTestEnv(t)

	rec := e.upload("", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []interface{}{"no file was submitted"}, fieldsOf(t, rec)["image"])

	e.labels.err = constants.ErrLabelImage
	rec = e.upload("image", []byte("plain text"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, fieldsOf(t, rec), "image")

	e.labels.err = constants.ErrLabelNotConfigured
	rec = e.upload("image", []byte{0xff, 0xd8, 0xff})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	e.labels.err = constants.ErrLabelService
	rec = e.upload("image", []byte{0xff, 0xd8, 0xff})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
