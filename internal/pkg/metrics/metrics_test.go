package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareLabelsByRoute(t *testing.T) {
	e := echo.New()
	e.Use(Middleware)
	e.GET("/things/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})
	e.GET("/missing/:id", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound)
	})

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/things/:id", "204"))
	for _, path := range []string{"/things/1", "/things/2"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusNoContent, rec.Code)
	}
	assert.Equal(t, before+2, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/things/:id", "204")))

	notFound := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/missing/:id", "404"))
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing/1", nil))
	assert.Equal(t, notFound+1, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/missing/:id", "404")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	RecordBottleAction("consume")
	RecordRegionImport(2, 1)
	RecordLabelAnalysis("matched")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `cellarium_bottles_actions_total{action="consume"}`))
	assert.True(t, strings.Contains(body, `cellarium_region_import_rows_total{outcome="skipped"}`))
	assert.True(t, strings.Contains(body, `cellarium_label_analyses_total{outcome="matched"}`))
}
