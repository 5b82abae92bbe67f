package paystubhandler

import (
	"bytes"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paystub/internal/domain/export"
	"paystub/internal/domain/paystub"
	"paystub/internal/domain/statement"
	"paystub/internal/platform/metrics"
	"paystub/internal/transport/http/api"
	"paystub/internal/transport/http/middleware"
	"paystub/internal/transport/http/shared"
)

type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Error     *api.Error      `json:"error"`
	RequestID string          `json:"requestId"`
}

var fixedNow = time.Date(2025, time.June, 13, 9, 30, 0, 0, time.UTC)

func newRouter(t *testing.T, maxPages int) (http.Handler, *metrics.Collector) {
	t.Helper()
	collector := metrics.New()
	h := NewHandler(export.NewExporter(export.WithRand(rand.NewPCG(1, 1))), collector, maxPages)
	h.Now = func() time.Time { return fixedNow }

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	h.RegisterRoutes(r, nil)
	return r, collector
}

func samplePayload() shared.PayConfigPayload {
	cfg := paystub.SampleConfiguration(fixedNow)
	cfg.Deductions = []paystub.Deduction{{ID: "1", Name: "Medical Insurance", Amount: 45, IsPreTax: true}}
	return shared.PayloadFromConfiguration(cfg)
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestSample(t *testing.T) {
	h, _ := newRouter(t, 52)
	rec := do(t, h, http.MethodGet, "/paystub/sample", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decode(t, rec)
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.RequestID)

	var cfg paystub.PayConfiguration
	require.NoError(t, json.Unmarshal(env.Data, &cfg))
	assert.Equal(t, "2025-06-13", cfg.CheckDate.String())
	assert.Equal(t, paystub.PayTypeHourly, cfg.PayType)
	assert.Len(t, cfg.Deductions, 2)
}

func TestDeductionPresets(t *testing.T) {
	h, _ := newRouter(t, 52)
	rec := do(t, h, http.MethodGet, "/paystub/deduction-presets", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var presets []paystub.Deduction
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &presets))
	assert.Len(t, presets, 6)
}

func TestCompute(t *testing.T) {
	h, collector := newRouter(t, 52)
	rec := do(t, h, http.MethodPost, "/paystub/compute", map[string]any{
		"config":      samplePayload(),
		"periodsBack": 2,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var stub paystub.ComputedStatement
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &stub))
	assert.Equal(t, 1009, stub.CheckNumber)
	assert.Equal(t, "2025-05-16", stub.CheckDate.String())
	assert.InDelta(t, 1117.44, stub.Current.NetPay, 0.005)

	scrape := httptest.NewRecorder()
	collector.Handler().ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, scrape.Body.String(), `paystub_statements_computed_total{operation="compute"} 1`)
}

func TestPreview(t *testing.T) {
	h, _ := newRouter(t, 52)
	rec := do(t, h, http.MethodPost, "/paystub/preview", map[string]any{"config": samplePayload()})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var view statement.View
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &view))
	assert.Equal(t, "1011", view.CheckNumber)
	assert.Equal(t, "JESSIKA CABRERA", view.EmployeeName)
	assert.Equal(t, "06/13/2025", view.CheckDate)
	assert.Equal(t, "1,117.44", view.Totals.NetCurrent)
}

func TestComputeValidation(t *testing.T) {
	h, _ := newRouter(t, 52)
	payload := samplePayload()
	payload.PayType = "Commission"
	payload.FederalTaxRate = 140
	payload.CheckDate = "13/06/2025"
	payload.SSNLast4 = "12a4"
	payload.Deductions = append(payload.Deductions,
		shared.DeductionPayload{ID: "1", Name: "Dental", Amount: 15, IsPreTax: true},
		shared.DeductionPayload{Name: " ", Amount: 3},
	)

	rec := do(t, h, http.MethodPost, "/paystub/compute", map[string]any{"config": payload, "periodsBack": -1})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	env := decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "validation_error", env.Error.Code)

	fields := issueFields(t, env)
	for _, field := range []string{
		"config.payType",
		"config.federalTaxRate",
		"config.checkDate",
		"config.ssnLast4",
		"config.deductions[1].id",
		"config.deductions[2].name",
		"periodsBack",
	} {
		assert.Contains(t, fields, field)
	}
}

func TestComputeRejectsBlankCheckDate(t *testing.T) {
	h, _ := newRouter(t, 52)
	payload := samplePayload()
	payload.CheckDate = "   "

	rec := do(t, h, http.MethodPost, "/paystub/compute", map[string]any{"config": payload})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"config.checkDate"}, issueFields(t, decode(t, rec)))
}

func TestComputeRejectsMalformedJSON(t *testing.T) {
	h, _ := newRouter(t, 52)
	req := httptest.NewRequest(http.MethodPost, "/paystub/compute", strings.NewReader(`{"config": {"payType": "Hourly"}, "extra": true}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_payload", decode(t, rec).Error.Code)
}

func TestExport(t *testing.T) {
	h, collector := newRouter(t, 52)
	rec := do(t, h, http.MethodPost, "/paystub/export", map[string]any{"config": samplePayload(), "count": 3})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Earnings_Statement_Jessika_Cabrera.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "3", rec.Header().Get("X-Statement-Pages"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))

	scrape := httptest.NewRecorder()
	collector.Handler().ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, scrape.Body.String(), "paystub_pdf_pages_exported_total 3")
}

func TestExportCountLimits(t *testing.T) {
	h, _ := newRouter(t, 4)

	rec := do(t, h, http.MethodPost, "/paystub/export", map[string]any{"config": samplePayload(), "count": 0})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, issueFields(t, decode(t, rec)), "count")

	rec = do(t, h, http.MethodPost, "/paystub/export", map[string]any{"config": samplePayload(), "count": 5})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "validation_error", env.Error.Code)
	assert.Contains(t, issueFields(t, env), "count")
}

func issueFields(t *testing.T, env envelope) []string {
	t.Helper()
	require.NotNil(t, env.Error)
	raw, err := json.Marshal(env.Error.Details)
	require.NoError(t, err)
	var details struct {
		Fields []shared.ValidationIssue `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(raw, &details))
	out := make([]string, 0, len(details.Fields))
	for _, issue := range details.Fields {
		out = append(out, issue.Field)
	}
	return out
}
