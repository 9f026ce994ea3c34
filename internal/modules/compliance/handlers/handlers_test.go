package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlampros/sectorguard/internal/config"
	"github.com/nlampros/sectorguard/internal/modules/compliance"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	rules := config.DefaultRulesConfig()
	evaluator := compliance.NewEvaluator(rules.Thresholds, rules.Groups, rules.Table, zerolog.Nop())
	handler := NewHandler(evaluator, rules, zerolog.Nop())

	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func TestHandleCheck_ValidPortfolio(t *testing.T) {
	router := newTestRouter(t)

	body, err := json.Marshal(map[string]interface{}{
		"weights": map[string]float64{
			"Information Technology": 28,
			"Communication Services": 12,
			"Consumer Discretionary": 10,
			"Consumer Staples":       6,
			"Health Care":            10,
			"Financials":             8,
			"Industrials":            10,
			"Energy":                 5,
			"Materials":              4,
			"Real Estate":            4,
			"Utilities":              3,
		},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/compliance/check", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var response struct {
		Data compliance.Report `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))

	assert.Len(t, response.Data.Checks, 5)
	assert.Equal(t, 0, response.Data.Summary.HardViolationsCount)
	assert.NotEmpty(t, response.Data.ID)
}

func TestHandleCheck_ConcentratedPortfolio(t *testing.T) {
	router := newTestRouter(t)

	body := []byte(`{"weights": {"Energy": 100}}`)
	req := httptest.NewRequest(http.MethodPost, "/compliance/check", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Data compliance.Report `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 3, response.Data.Summary.HardViolationsCount)
}

func TestHandleCheck_BadRequests(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"weights": `},
		{"empty weights", `{"weights": {}}`},
		{"negative weight", `{"weights": {"Energy": -5, "Utilities": 105}}`},
		{"zero total", `{"weights": {"Energy": 0}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/compliance/check", bytes.NewReader([]byte(tt.body)))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
			assert.Contains(t, response, "error")
		})
	}
}

func TestHandleGetRules(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/compliance/rules", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Data struct {
			Thresholds  map[string]float64 `json:"thresholds"`
			Correlation struct {
				Threshold float64 `json:"threshold"`
				Pairs     []struct {
					A string `json:"a"`
					B string `json:"b"`
				} `json:"pairs"`
			} `json:"correlation"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))

	assert.Equal(t, 40.0, response.Data.Thresholds["single_sector_hard"])
	assert.Equal(t, 0.6, response.Data.Correlation.Threshold)
	assert.Len(t, response.Data.Correlation.Pairs, 5)
}
