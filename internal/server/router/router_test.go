package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/barstock/internal/inventory"
	"github.com/mamadbah2/barstock/internal/repository/slots"
	"github.com/mamadbah2/barstock/internal/server/handlers"
	"github.com/mamadbah2/barstock/internal/service/export"
	"github.com/mamadbah2/barstock/internal/service/reporting"
	"github.com/mamadbah2/barstock/internal/service/tracking"
)

type testServer struct {
	engine *gin.Engine
	now    time.Time
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := &testServer{now: time.Date(2026, 3, 2, 22, 0, 0, 0, time.UTC)}
	tracker := tracking.NewService(slots.NewMemory(), nil, tracking.WithClock(func() time.Time { return ts.now }))
	require.NoError(t, tracker.Load(context.Background()))

	reports := reporting.NewService(tracker, inventory.DefaultThresholds(), nil)
	exporter := export.NewService(tracker, nil, nil)
	ts.engine = New(Handlers{
		Liquor:    handlers.NewLiquorHandler(tracker.Liquor, reports, exporter, nil),
		Beer:      handlers.NewBeerHandler(tracker.Beer, reports, exporter, nil),
		Dashboard: handlers.NewDashboardHandler(reports, exporter, nil),
	}, nil)
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ts.engine.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealthz(t *testing.T) {
	ts := setupTestServer(t)
	rec := ts.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestLiquorSessionFlow(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(t, http.MethodPost, "/liquor/measure", `{"type":"tequila","bottle":"herradura","weightG":796}`)
	require.Equal(t, http.StatusOK, rec.Code)
	preview := decode[map[string]any](t, rec)
	assert.Equal(t, 50.0, preview["percentage"])
	assert.Equal(t, 12.68, preview["remainingFlOz"])
	assert.Equal(t, 8.0, preview["servings"])

	assert.Equal(t, http.StatusConflict, ts.do(t, http.MethodPost, "/liquor/session/items", `{"type":"tequila","bottle":"herradura","weightG":796}`).Code)
	assert.Equal(t, http.StatusCreated, ts.do(t, http.MethodPost, "/liquor/session/start", "").Code)
	assert.Equal(t, http.StatusConflict, ts.do(t, http.MethodPost, "/liquor/session/start", "").Code)

	assert.Equal(t, http.StatusCreated, ts.do(t, http.MethodPost, "/liquor/session/items", `{"type":"tequila","bottle":"herradura","weightG":796}`).Code)
	assert.Equal(t, http.StatusCreated, ts.do(t, http.MethodPost, "/liquor/session/items", `{"type":"tequila","bottle":"herradura","weightG":1092}`).Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodPost, "/liquor/session/items", `{"type":"tequila","bottle":"herradura","weightG":"heavy"}`).Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodPost, "/liquor/session/items", `{"type":"tequila","bottle":"herradura"}`).Code)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodPost, "/liquor/session/items", `{"type":"tequila","bottle":"missing","weightG":700}`).Code)

	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodDelete, "/liquor/session/items/9", "").Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodDelete, "/liquor/session/items/first", "").Code)

	rec = ts.do(t, http.MethodGet, "/liquor/session", "")
	require.Equal(t, http.StatusOK, rec.Code)
	draft := decode[struct {
		Items []map[string]any `json:"items"`
	}](t, rec)
	assert.Len(t, draft.Items, 2)

	ts.now = ts.now.Add(time.Hour)
	rec = ts.do(t, http.MethodPost, "/liquor/session/close", "")
	require.Equal(t, http.StatusOK, rec.Code)
	closed := decode[struct {
		Items map[string]map[string]any `json:"items"`
	}](t, rec)
	require.Contains(t, closed.Items, "tequila_Herradura")
	assert.Equal(t, 75.0, closed.Items["tequila_Herradura"]["percentage"])
	assert.Equal(t, 38.04, closed.Items["tequila_Herradura"]["remainingFlOz"])
	assert.Equal(t, 2.0, closed.Items["tequila_Herradura"]["bottles"])

	assert.Equal(t, http.StatusConflict, ts.do(t, http.MethodGet, "/liquor/session", "").Code)

	history := decode[[]map[string]any](t, ts.do(t, http.MethodGet, "/liquor/history", ""))
	assert.Len(t, history, 1)

	summary := decode[struct {
		Types []map[string]any `json:"types"`
	}](t, ts.do(t, http.MethodGet, "/liquor/summary", ""))
	require.Len(t, summary.Types, 1)
	assert.Equal(t, "tequila", summary.Types[0]["type"])
	assert.Equal(t, 24.0, summary.Types[0]["totalServings"])

	series := decode[struct {
		Points []map[string]any `json:"points"`
	}](t, ts.do(t, http.MethodGet, "/liquor/series/tequila_Herradura", ""))
	require.Len(t, series.Points, 1)
	assert.Equal(t, 38.04, series.Points[0]["quantity"])

	rec = ts.do(t, http.MethodGet, "/liquor/export.csv", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Len(t, strings.Split(strings.TrimSpace(rec.Body.String()), "\n"), 2)
}

func TestLiquorCatalog(t *testing.T) {
	ts := setupTestServer(t)

	body := `{"type":"Brandy","label":"Torres 10","volumeMl":700,"emptyWeightG":520,"fullWeightG":1190}`
	rec := ts.do(t, http.MethodPost, "/liquor/catalog", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"key":"torres_10"}`, rec.Body.String())
	assert.Equal(t, http.StatusConflict, ts.do(t, http.MethodPost, "/liquor/catalog", body).Code)

	assert.Equal(t, http.StatusUnprocessableEntity, ts.do(t, http.MethodPost, "/liquor/catalog",
		`{"type":"brandy","label":"Upside","volumeMl":700,"emptyWeightG":900,"fullWeightG":600}`).Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodPost, "/liquor/catalog", `{"type":"brandy","label":"NoWeights"}`).Code)

	catalog := decode[map[string]map[string]any](t, ts.do(t, http.MethodGet, "/liquor/catalog", ""))
	assert.Contains(t, catalog["brandy"], "torres_10")
}

func TestBeerFlow(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(t, http.MethodPost, "/beer/catalog", `{"label":"Tecate Light","category":"Lata"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"key":"tecate-light_lata"}`, rec.Body.String())
	assert.Equal(t, http.StatusConflict, ts.do(t, http.MethodPost, "/beer/catalog", `{"label":"tecate light","category":"lata"}`).Code)

	require.Equal(t, http.StatusCreated, ts.do(t, http.MethodPost, "/beer/session/start", "").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, ts.do(t, http.MethodPost, "/beer/session/close", "").Code)

	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodPost, "/beer/session/items", `{"key":"tecate-light_lata","count":0}`).Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodPost, "/beer/session/items", `{"key":"tecate-light_lata","count":"six"}`).Code)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodPost, "/beer/session/items", `{"key":"unknown_lata","count":1}`).Code)
	assert.Equal(t, http.StatusCreated, ts.do(t, http.MethodPost, "/beer/session/items", `{"key":"tecate-light_lata","count":4}`).Code)
	assert.Equal(t, http.StatusCreated, ts.do(t, http.MethodPost, "/beer/session/items", `{"key":"tecate-light_lata","count":2}`).Code)

	rec = ts.do(t, http.MethodDelete, "/beer/session/items/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2.0, decode[map[string]any](t, rec)["count"])

	rec = ts.do(t, http.MethodPost, "/beer/session/close", "")
	require.Equal(t, http.StatusOK, rec.Code)
	closed := decode[struct {
		Items map[string]any `json:"items"`
	}](t, rec)
	assert.JSONEq(t,
		`{"key":"tecate-light_lata","label":"Tecate Light","category":"Lata","count":4}`,
		string(mustJSON(t, closed.Items["tecate-light_lata"])))

	rec = ts.do(t, http.MethodGet, "/beer/export.csv", "")
	assert.Contains(t, rec.Body.String(), "tecate-light_lata,Tecate Light,Lata,4")
}

func TestDashboard(t *testing.T) {
	ts := setupTestServer(t)

	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusCreated, ts.do(t, http.MethodPost, "/beer/session/start", "").Code)
		require.Equal(t, http.StatusCreated, ts.do(t, http.MethodPost, "/beer/session/items", `{"key":"indio_media","count":3}`).Code)
		require.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, "/beer/session/close", "").Code)
		ts.now = ts.now.AddDate(0, 0, 2)
	}

	alerts := decode[struct {
		Beer []map[string]any `json:"beer"`
	}](t, ts.do(t, http.MethodGet, "/dashboard/alerts", ""))
	require.Len(t, alerts.Beer, 1)
	assert.Equal(t, "Servings", alerts.Beer[0]["reason"])
	assert.NotContains(t, alerts.Beer[0], "percentage")

	predictions := decode[struct {
		Beer []map[string]any `json:"beer"`
	}](t, ts.do(t, http.MethodGet, "/dashboard/predictions", ""))
	require.Len(t, predictions.Beer, 1)
	assert.Nil(t, predictions.Beer[0]["daysLeft"])
	assert.Equal(t, inventory.NoteNoConsumption, predictions.Beer[0]["note"])

	assert.Equal(t, http.StatusServiceUnavailable, ts.do(t, http.MethodPost, "/export/sheets", "").Code)
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	out, err := json.Marshal(v)
	require.NoError(t, err)
	return out
}
