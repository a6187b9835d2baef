package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/isg-atlas/pkg/models/api"
	"github.com/de-tools/isg-atlas/pkg/server/middleware"
	"github.com/de-tools/isg-atlas/pkg/services/analytics"
	"github.com/de-tools/isg-atlas/pkg/services/indicator"
	"github.com/de-tools/isg-atlas/pkg/services/risk"
	"github.com/de-tools/isg-atlas/pkg/store/sqlite"
	"github.com/de-tools/isg-atlas/pkg/store/sqlite/indicators"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unmarshalResponse[T any]() func([]byte) (interface{}, error) {
	return func(data []byte) (interface{}, error) {
		var v T
		err := json.Unmarshal(data, &v)
		return v, err
	}
}

func setupServer(t *testing.T) *httptest.Server {
	logger := zerolog.New(zerolog.NewTestWriter(t))

	db, err := sqlite.NewDB(logger.WithContext(context.Background()), sqlite.Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	store, err := indicators.NewStore(db)
	require.NoError(t, err)
	engine, err := indicator.NewEngine(store, indicator.Settings{BatchConcurrency: 2})
	require.NoError(t, err)
	svc, err := analytics.NewService(store)
	require.NoError(t, err)

	router := ConfigureRouter(Config{
		Addr:            ":8080",
		ShutdownTimeout: time.Second,
		Dependencies: Dependencies{
			Scorer:    risk.NewScorer(),
			Engine:    engine,
			Analytics: svc,
			Logger:    logger,
		},
	})
	testServer := httptest.NewServer(router)
	t.Cleanup(func() {
		testServer.Close()
		db.Close()
	})
	return testServer
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) (*http.Response, []byte) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func setTarget(t *testing.T, srv *httptest.Server, name string, year, month int, target float64) api.Indicator {
	payload, err := json.Marshal(api.SetTargetRequest{
		Name: name, Category: "safety", Unit: "%", Year: year, Month: month, Target: &target,
	})
	require.NoError(t, err)
	resp, data := do(t, srv, http.MethodPut, "/api/v1/indicators/targets", string(payload))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	var ind api.Indicator
	require.NoError(t, json.Unmarshal(data, &ind))
	return ind
}

func TestWebAPI_Endpoints(t *testing.T) {
	srv := setupServer(t)

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expected       interface{}
		parseResponse  func([]byte) (interface{}, error)
	}{
		{
			name:           "RiskScore",
			path:           "/api/v1/risk/score?severity=5&likelihood=4",
			expectedStatus: http.StatusOK,
			expected:       api.RiskScore{Severity: 5, Likelihood: 4, Score: 20, Level: "CRITICAL"},
			parseResponse:  unmarshalResponse[api.RiskScore](),
		},
		{
			name:           "RiskScore_MissingParam",
			path:           "/api/v1/risk/score?severity=5",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Targets_MissingYear",
			path:           "/api/v1/indicators/targets",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Targets_Empty",
			path:           "/api/v1/indicators/targets?year=2024",
			expectedStatus: http.StatusOK,
			expected:       []api.Indicator{},
			parseResponse:  unmarshalResponse[[]api.Indicator](),
		},
		{
			name:           "Trend_NoData",
			path:           "/api/v1/indicators/trend?category=safety&startYear=2020&endYear=2021",
			expectedStatus: http.StatusOK,
			expected: api.TrendResponse{
				Buckets: []api.PeriodBucket{},
				Trend:   api.TrendSummary{OverallTrend: "no_data", DataPoints: []api.TrendPoint{}},
			},
			parseResponse: unmarshalResponse[api.TrendResponse](),
		},
		{
			name:           "Healthz",
			path:           "/healthz",
			expectedStatus: http.StatusOK,
			expected:       map[string]string{"status": "ok"},
			parseResponse:  unmarshalResponse[map[string]string](),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := do(t, srv, http.MethodGet, tt.path, "")

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))
			if tt.parseResponse == nil {
				return
			}
			got, err := tt.parseResponse(data)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestWebAPI_IndicatorLifecycle(t *testing.T) {
	srv := setupServer(t)

	jan := setTarget(t, srv, "Kaza oranı", 2024, 1, 100)
	feb := setTarget(t, srv, "Kaza oranı", 2024, 2, 100)
	zero := setTarget(t, srv, "Kaza oranı", 2024, 3, 0)
	assert.Equal(t, "pending", jan.Status)

	// single update, actual 0 is a real value
	resp, data := do(t, srv, http.MethodPost, "/api/v1/indicators/actuals", `{"id":"`+jan.ID+`","actual":0}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	resp, _ = do(t, srv, http.MethodPost, "/api/v1/indicators/actuals", `{"id":"`+zero.ID+`","actual":3}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodPost, "/api/v1/indicators/actuals", `{"id":"nope","actual":3}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var batch bytes.Buffer
	batch.WriteString(`{"updates":[`)
	batch.WriteString(`{"id":"` + jan.ID + `","actual":90},`)
	batch.WriteString(`{"id":"missing","actual":5},`)
	batch.WriteString(`{"id":"` + feb.ID + `","actual":99}`)
	batch.WriteString(`]}`)
	resp, data = do(t, srv, http.MethodPost, "/api/v1/indicators/actuals/batch", batch.String())
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))

	var res api.BatchUpdateResponse
	require.NoError(t, json.Unmarshal(data, &res))
	assert.Equal(t, 2, res.Updated)
	require.Len(t, res.Results, 2)
	assert.Equal(t, jan.ID, res.Results[0].ID)
	assert.Equal(t, "at_risk", res.Results[0].Status)
	assert.Equal(t, feb.ID, res.Results[1].ID)
	assert.Equal(t, "on_track", res.Results[1].Status)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "missing", res.Errors[0].ID)
	assert.Equal(t, "not_found", res.Errors[0].Reason)

	resp, data = do(t, srv, http.MethodGet, "/api/v1/indicators/compare?name=Kaza%20oran%C4%B1&startYear=2024&endYear=2024&granularity=quarterly", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	var buckets []api.PeriodBucket
	require.NoError(t, json.Unmarshal(data, &buckets))
	require.Len(t, buckets, 1)
	assert.Equal(t, "2024-Q1", buckets[0].Period)
	assert.Equal(t, 3, buckets[0].ItemCount)
	assert.InDelta(t, (90.0+99.0+0.0)/3, buckets[0].AverageActual, 1e-9)

	resp, data = do(t, srv, http.MethodGet, "/api/v1/indicators/trend?name=Kaza%20oran%C4%B1&startYear=2024&endYear=2024", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	var trend api.TrendResponse
	require.NoError(t, json.Unmarshal(data, &trend))
	require.Len(t, trend.Buckets, 3)
	assert.Equal(t, "declining", trend.Trend.OverallTrend)
	assert.InDelta(t, -100.0, trend.Trend.PercentageChange, 1e-9)
}

func TestWebAPI_Metrics(t *testing.T) {
	srv := setupServer(t)

	do(t, srv, http.MethodGet, "/api/v1/risk/score?severity=2&likelihood=2", "")
	resp, data := do(t, srv, http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), "isg_risk_assessments_total")
}

func TestNewWebAPI_DefaultsShutdownTimeout(t *testing.T) {
	webAPI := NewWebAPI(Config{Addr: "127.0.0.1:0", Dependencies: Dependencies{Scorer: risk.NewScorer(), Logger: zerolog.Nop()}})
	assert.Equal(t, defaultShutdownTimeout, webAPI.shutdownTimeout)
}
