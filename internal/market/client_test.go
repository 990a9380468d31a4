package market_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"finedu/backend/internal/market"
	"finedu/backend/internal/network"
)

type staticConfig struct {
	baseURL string
	apiKey  string
}

func (c staticConfig) MarketAPIConfig(ctx context.Context) (string, string) {
	return c.baseURL, c.apiKey
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (market.Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	factory := network.NewClientFactoryForTest(server.Client())
	client := market.NewClient(
		staticConfig{baseURL: server.URL, apiKey: "test-key"},
		factory,
		market.NewRateLimiter(100),
	)
	return client, server
}

func TestClient_SendsAPIKeyHeader(t *testing.T) {
	var gotKey, gotPath, gotContentType string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("apiKey")
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"success": true, "data": {"items": []}}`))
	})

	_, err := client.SearchFunds(context.Background(), "沪深300", "", 1, 10)
	require.NoError(t, err)
	require.Equal(t, "test-key", gotKey)
	require.Equal(t, "/SearchFunds", gotPath)
	require.Equal(t, "application/json", gotContentType)
}

func TestClient_ClampsBatchCodes(t *testing.T) {
	var got struct {
		FundCodes []string `json:"fundCodes"`
	}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"success": true, "data": []}`))
	})

	codes := make([]string, 25)
	for i := range codes {
		codes[i] = "000000"
	}
	_, err := client.FundsDetail(context.Background(), codes)
	require.NoError(t, err)
	require.Len(t, got.FundCodes, market.MaxBatchCodes)
}

func TestClient_CachesResponses(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"success": true, "data": {"name": "基金"}}`))
	})

	ctx := context.Background()
	first, err := client.FundDiagnosis(ctx, "000198")
	require.NoError(t, err)
	second, err := client.FundDiagnosis(ctx, "000198")
	require.NoError(t, err)

	require.JSONEq(t, string(first), string(second))
	require.Equal(t, int32(1), calls.Load())

	// A different parameter set is a different cache key.
	_, err = client.FundDiagnosis(ctx, "110003")
	require.NoError(t, err)
	require.Equal(t, int32(2), calls.Load())
}

func TestClient_UpstreamFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.LatestQuotations(context.Background())
	require.ErrorIs(t, err, market.ErrUpstream)
}

func TestClient_SuccessFalseIsUpstreamError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "message": "invalid fund code"}`))
	})

	_, err := client.FundDiagnosis(context.Background(), "badcode")
	require.ErrorIs(t, err, market.ErrUpstream)
	require.ErrorContains(t, err, "invalid fund code")
}

func TestClient_MissingAPIKey(t *testing.T) {
	factory := network.NewClientFactoryForTest(http.DefaultClient)
	client := market.NewClient(
		staticConfig{baseURL: "http://localhost:0", apiKey: ""},
		factory,
		market.NewRateLimiter(100),
	)

	_, err := client.CurrentTime(context.Background())
	require.ErrorIs(t, err, market.ErrNotConfigured)
}
