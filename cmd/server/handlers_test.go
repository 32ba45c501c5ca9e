package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Simplici0/foamquote/internal/crm"
	"github.com/Simplici0/foamquote/internal/db"
	"github.com/Simplici0/foamquote/internal/document"
	"github.com/Simplici0/foamquote/internal/estimate"
	"github.com/Simplici0/foamquote/internal/migrations"
	"github.com/Simplici0/foamquote/internal/store"
)

const legacyDocument = `{
  "estimate": {"name": "Legacy attic", "customer": "Miller"},
  "globalInputs": {"laborHours": 10, "manualLaborRate": 35, "laborMarkup": 50},
  "areas": [
    {"id": 7, "name": "Attic", "areaSqFt": 1000, "areaType": "General",
     "foamType": "Closed", "foamThickness": 2, "materialPrice": 2470, "materialMarkup": 60}
  ]
}`

func newTestServer(t *testing.T) *server {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "server-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, migrations.Up(database))

	return &server{store: store.New(database), log: zap.NewNop()}
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error
}

func TestHealth(t *testing.T) {
	rr := do(t, newTestServer(t).routes(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestCalculate_LegacyDocumentUsesStoredSettings(t *testing.T) {
	h := newTestServer(t).routes()

	rr := do(t, h, http.MethodPut, "/api/settings", `{"salaries": 16000, "expectedMonthlyHours": 160}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = do(t, h, http.MethodPost, "/api/calculate", legacyDocument)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp calculateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Report.Areas, 1)
	assert.Greater(t, resp.Report.Estimate.CustomerCost, 0.0)
	assert.InDelta(t, 100.0, resp.Report.Overhead.OverheadPerHour, 1e-9)
	assert.InDelta(t, 1000.0, resp.Report.Estimate.JobOverhead, 1e-9)

	require.Len(t, resp.LineItems, 2)
	assert.Equal(t, 1000.0, resp.LineItems[0].Quantity)
	assert.Equal(t, 2.37, resp.LineItems[0].UnitPrice)
	assert.Equal(t, crm.LaborItemName, resp.LineItems[1].Name)
	assert.InDelta(t, 525.0, resp.LineItems[1].Total, 1e-9)
}

func TestCalculate_Errors(t *testing.T) {
	h := newTestServer(t).routes()

	rr := do(t, h, http.MethodPost, "/api/calculate", `{"areas": [`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodPost, "/api/calculate", `{"areas": "nope"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, "invalid estimate document", decodeError(t, rr))

	rr = do(t, h, http.MethodPost, "/api/calculate", `{"version": 99, "areas": []}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestChargedLaborRateEdit(t *testing.T) {
	h := newTestServer(t).routes()

	rr := do(t, h, http.MethodPost, "/api/edits/charged-labor-rate",
		`{"globalInputs": {"laborHours": 8, "manualLaborRate": 35, "laborMarkup": 10}, "chargedLaborRate": 56}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp chargedLaborRateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.InDelta(t, 60.0, resp.GlobalInputs.LaborMarkup, 1e-9)
	assert.InDelta(t, 56.0, resp.ChargedLaborRate, 1e-9)
	assert.Equal(t, 8.0, resp.GlobalInputs.LaborHours)
}

func TestChargedLaborRateEdit_BelowFloorIs422(t *testing.T) {
	h := newTestServer(t).routes()

	rr := do(t, h, http.MethodPost, "/api/edits/charged-labor-rate",
		`{"globalInputs": {"manualLaborRate": 35, "laborMarkup": 10}, "chargedLaborRate": 30}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, "Charged rate must be at least $35.00 (the Actual Labor Rate)", decodeError(t, rr))
}

func TestPricePerSqFtEdit(t *testing.T) {
	h := newTestServer(t).routes()

	area := estimate.NewArea("Walls", estimate.AreaExteriorWalls)
	area.AreaSqFt = 500
	appID := area.FoamApplications[0].ID

	body := func(price float64) string {
		raw, err := json.Marshal(pricePerSqFtRequest{Area: area, ApplicationID: appID, PricePerSqFt: price})
		require.NoError(t, err)
		return string(raw)
	}

	rr := do(t, h, http.MethodPost, "/api/edits/price-per-sqft", body(1.68))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var got estimate.Area
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.InDelta(t, 74.6881, got.FoamApplications[0].MaterialMarkup, 1e-3)
	assert.InDelta(t, 1.68, estimate.PricePerSqFt(got.FoamApplications[0]), 1e-9)

	rr = do(t, h, http.MethodPost, "/api/edits/price-per-sqft", body(0.5))
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, "Price must be at least $0.96 (derived from Material Cost per Set)", decodeError(t, rr))

	raw, err := json.Marshal(pricePerSqFtRequest{Area: area, ApplicationID: "missing", PricePerSqFt: 2})
	require.NoError(t, err)
	rr = do(t, h, http.MethodPost, "/api/edits/price-per-sqft", string(raw))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMigrateDocument(t *testing.T) {
	rr := do(t, newTestServer(t).routes(), http.MethodPost, "/api/documents/migrate", legacyDocument)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var doc document.Document
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &doc))
	assert.Equal(t, document.SchemaVersion, doc.Version)
	require.Len(t, doc.Areas, 1)
	assert.Equal(t, "7", doc.Areas[0].ID)
	require.Len(t, doc.Areas[0].FoamApplications, 1)
	app := doc.Areas[0].FoamApplications[0]
	assert.Equal(t, estimate.FoamClosed, app.FoamType)
	assert.Equal(t, estimate.FoamDefaults(estimate.FoamClosed).BoardFeetPerSet, app.BoardFeetPerSet)
}

func TestEstimateLifecycle(t *testing.T) {
	h := newTestServer(t).routes()

	rr := do(t, h, http.MethodPost, "/api/estimates", legacyDocument)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var summary store.Summary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &summary))
	require.NotEmpty(t, summary.ID)
	assert.Equal(t, "Legacy attic", summary.Name)

	rr = do(t, h, http.MethodGet, "/api/estimates?q=mill&limit=5", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var items []store.Summary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, summary.ID, items[0].ID)

	rr = do(t, h, http.MethodGet, "/api/estimates/"+summary.ID, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var detail estimateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &detail))
	assert.Equal(t, summary.ID, detail.Document.ID)
	assert.InDelta(t, summary.CustomerCost, detail.Report.Estimate.CustomerCost, 1e-9)

	rr = do(t, h, http.MethodGet, "/api/estimates/"+summary.ID+"/line-items", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var lines []crm.LineItem
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &lines))
	assert.NotEmpty(t, lines)

	rr = do(t, h, http.MethodDelete, "/api/estimates/"+summary.ID, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(t, h, http.MethodDelete, "/api/estimates/"+summary.ID, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestEstimateGet_NotFoundWithRouteContext(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/estimates/missing", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "missing")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rr := httptest.NewRecorder()
	srv.handleEstimateGet(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, store.ErrNotFound.Error(), decodeError(t, rr))
}

func TestSettingsRoundTrip(t *testing.T) {
	h := newTestServer(t).routes()

	rr := do(t, h, http.MethodGet, "/api/settings", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var got estimate.BusinessSettings
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, estimate.DefaultBusinessSettings(), got)

	rr = do(t, h, http.MethodPut, "/api/settings", `{"salaries": 7000, "rent": -5, "expectedMonthlyHours": 120, "targetNetMargin": 22}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, estimate.BusinessSettings{Salaries: 7000, ExpectedMonthlyHours: 120, TargetNetMargin: 22}, got)

	rr = do(t, h, http.MethodPut, "/api/settings", `not json`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
