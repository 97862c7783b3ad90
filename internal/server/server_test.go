package server

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/cloud-ru/mcp-amortization-go/internal/cache"
	"github.com/cloud-ru/mcp-amortization-go/internal/config"
	"github.com/cloud-ru/mcp-amortization-go/internal/export"
	"github.com/cloud-ru/mcp-amortization-go/internal/tools"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		MinPrincipal:    1000,
		MaxPrincipal:    10_000_000,
		MaxRate:         25,
		MinTermYears:    1,
		MaxTermYears:    50,
		MaxExtraPayment: 1_000_000,
		MaxPropertyTax:  500_000,
		MaxInsurance:    100_000,
		AllowedOrigins:  []string{"http://localhost:5173"},
	}
	registry := tools.NewRegistry(cfg, noop.NewTracerProvider().Tracer("test"),
		cache.NewMemoryCache(10, time.Minute))

	ts := httptest.NewServer(New(cfg, registry).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestListTools(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/tools")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string][]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["tools"], tools.ToolAmortizationSchedule)
	assert.Len(t, body["tools"], 4)
}

func TestCallTool(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name       string
		tool       string
		body       string
		wantStatus int
		check      func(t *testing.T, body map[string]interface{})
	}{
		{
			name:       "Ежемесячный платеж",
			tool:       tools.ToolMonthlyPayment,
			body:       `{"principal": 300000, "annual_rate_percent": 6, "term_years": 30}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]interface{}) {
				assert.InDelta(t, 1798.65, body["monthly_payment"], 0.01)
			},
		},
		{
			name:       "График погашения",
			tool:       tools.ToolAmortizationSchedule,
			body:       `{"principal": 120000, "annual_rate_percent": 0, "term_years": 10}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]interface{}) {
				schedule := body["schedule"].(map[string]interface{})
				assert.Equal(t, 120.0, schedule["periods_used"])
				assert.Len(t, schedule["periods"], 120)
			},
		},
		{
			name:       "Неизвестный инструмент",
			tool:       "loan_schedule_annuity",
			body:       `{}`,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "Некорректный JSON",
			tool:       tools.ToolMonthlyPayment,
			body:       `{"principal":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Нет параметра",
			tool:       tools.ToolMonthlyPayment,
			body:       `{"principal": 300000}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Ставка выше максимума",
			tool:       tools.ToolLoanEstimate,
			body:       `{"principal": 300000, "annual_rate_percent": 40, "term_years": 30}`,
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, body map[string]interface{}) {
				assert.Contains(t, body["error"], "annual_rate_percent")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+"/api/tools/"+tt.tool, tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

			if tt.check != nil {
				var body map[string]interface{}
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				tt.check(t, body)
			}
		})
	}
}

func TestExportCSV(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts.URL+"/api/export/csv", `{"principal": 120000, "annual_rate_percent": 0, "term_years": 10}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), export.DefaultFilename)

	records, err := csv.NewReader(resp.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 121)
	assert.Equal(t, export.Header, records[0])
	assert.Equal(t, []string{"1", "1000.00", "1000.00", "0.00", "119000.00"}, records[1])
	assert.Equal(t, "0.00", records[120][4])
}

func TestExportCSVValidation(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts.URL+"/api/export/csv", `{"principal": 100, "annual_rate_percent": 5, "term_years": 10}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCORS(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/tools/monthly_payment", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	post(t, ts.URL+"/api/tools/monthly_payment", `{"principal": 300000, "annual_rate_percent": 6, "term_years": 30}`)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
