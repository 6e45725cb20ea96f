package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secintel/secintel/internal/analytics"
	"github.com/secintel/secintel/internal/adapter/repository/memory"
	"github.com/secintel/secintel/internal/entity"
	"github.com/secintel/secintel/internal/seed"
	usecase "github.com/secintel/secintel/internal/usecase/analytics"
)

func newTestServer(t *testing.T, events []entity.SecurityEvent) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore(events)
	engine := analytics.NewEngine(store, 4, logger)
	service := usecase.NewService(engine, logger)
	handler := NewAnalyticsHandler(service)

	r := chi.NewRouter()
	r.Route("/api/analytics", func(r chi.Router) {
		r.Get("/kpis", handler.GetKPIs)
		r.Get("/severity-trend", handler.GetSeverityTrend)
		r.Get("/top-attackers", handler.GetTopAttackers)
		r.Get("/threat-categories", handler.GetThreatCategories)
		r.Get("/event-types", handler.GetEventTypes)
		r.Get("/geo-distribution", handler.GetGeoDistribution)
		r.Get("/recent-events", handler.GetRecentEvents)
		r.Get("/severity-distribution", handler.GetSeverityDistribution)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func testEvents(t *testing.T) []entity.SecurityEvent {
	t.Helper()
	base := time.Now().UTC().Add(-72 * time.Hour)
	return seed.NewGenerator(1, base, 72*time.Hour).Events(2000)
}

func getJSON(t *testing.T, url string, out interface{}) int {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestGetKPIsEndpoint(t *testing.T) {
	srv := newTestServer(t, testEvents(t))

	var body struct {
		TotalEvents    uint64  `json:"total_events"`
		CriticalEvents uint64  `json:"critical_events"`
		AvgScore       float64 `json:"avg_severity_score"`
	}
	status := getJSON(t, srv.URL+"/api/analytics/kpis", &body)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, uint64(2000), body.TotalEvents)
	assert.NotZero(t, body.CriticalEvents)
	assert.Greater(t, body.AvgScore, 0.0)
}

func TestGetSeverityTrendEndpoint(t *testing.T) {
	srv := newTestServer(t, testEvents(t))

	var body struct {
		Data []analytics.TrendBucket `json:"data"`
	}
	status := getJSON(t, srv.URL+"/api/analytics/severity-trend?limit=24", &body)

	assert.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, body.Data)
	for i := 1; i < len(body.Data); i++ {
		assert.False(t, body.Data[i].Bucket.Before(body.Data[i-1].Bucket))
	}
}

func TestGetSeverityTrendRejectsBadLimit(t *testing.T) {
	srv := newTestServer(t, testEvents(t))

	assert.Equal(t, http.StatusBadRequest,
		getJSON(t, srv.URL+"/api/analytics/severity-trend?limit=abc", nil))
	assert.Equal(t, http.StatusBadRequest,
		getJSON(t, srv.URL+"/api/analytics/severity-trend?limit=100000", nil))
}

func TestGetTopAttackersEndpoint(t *testing.T) {
	srv := newTestServer(t, testEvents(t))

	var body struct {
		Data []analytics.AttackerStat `json:"data"`
	}
	status := getJSON(t, srv.URL+"/api/analytics/top-attackers?limit=5", &body)

	assert.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, body.Data)
	assert.Equal(t, 1, body.Data[0].Rank)
	for i := 1; i < len(body.Data); i++ {
		assert.LessOrEqual(t, body.Data[i].TotalEvents, body.Data[i-1].TotalEvents)
	}
}

func TestGetTopAttackersRejectsBadLimit(t *testing.T) {
	srv := newTestServer(t, testEvents(t))

	assert.Equal(t, http.StatusBadRequest,
		getJSON(t, srv.URL+"/api/analytics/top-attackers?limit=500", nil))
}

func TestBreakdownEndpoints(t *testing.T) {
	srv := newTestServer(t, testEvents(t))

	for _, path := range []string{"threat-categories", "event-types", "geo-distribution"} {
		var body struct {
			Data []analytics.CategoryStat `json:"data"`
		}
		status := getJSON(t, srv.URL+"/api/analytics/"+path, &body)

		assert.Equal(t, http.StatusOK, status, path)
		require.NotEmpty(t, body.Data, path)

		var sum float64
		for _, s := range body.Data {
			sum += s.Percentage
		}
		assert.InDelta(t, 100.0, sum, 0.5, path)
	}
}

func TestGetRecentEventsEndpoint(t *testing.T) {
	srv := newTestServer(t, testEvents(t))

	var body analytics.EventPage
	status := getJSON(t, srv.URL+"/api/analytics/recent-events?page=2&page_size=25", &body)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, body.Pagination.Page)
	assert.Equal(t, 25, body.Pagination.PageSize)
	assert.Equal(t, uint64(2000), body.Pagination.Total)
	assert.Equal(t, uint64(80), body.Pagination.TotalPages)
	assert.Len(t, body.Data, 25)
}

func TestGetRecentEventsSeverityFilter(t *testing.T) {
	srv := newTestServer(t, testEvents(t))

	var body analytics.EventPage
	status := getJSON(t, srv.URL+"/api/analytics/recent-events?severity=critical&page_size=50", &body)

	assert.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, body.Data)
	for _, e := range body.Data {
		assert.Equal(t, entity.SeverityCritical, e.Severity)
	}
	assert.Less(t, body.Pagination.Total, uint64(2000))
}

func TestGetRecentEventsRejectsBadPaging(t *testing.T) {
	srv := newTestServer(t, testEvents(t))

	assert.Equal(t, http.StatusBadRequest,
		getJSON(t, srv.URL+"/api/analytics/recent-events?page=-1", nil))
	assert.Equal(t, http.StatusBadRequest,
		getJSON(t, srv.URL+"/api/analytics/recent-events?page_size=5", nil))
	assert.Equal(t, http.StatusBadRequest,
		getJSON(t, srv.URL+"/api/analytics/recent-events?page_size=nope", nil))
}

func TestGetSeverityDistributionEndpoint(t *testing.T) {
	srv := newTestServer(t, testEvents(t))

	var body struct {
		Data []analytics.SeveritySlice `json:"data"`
	}
	status := getJSON(t, srv.URL+"/api/analytics/severity-distribution", &body)

	assert.Equal(t, http.StatusOK, status)
	require.Len(t, body.Data, 4)
	assert.Equal(t, entity.SeverityCritical, body.Data[0].Severity)
}
