// Package market implements the client for the upstream fund data API.
// Every tool is a POST of a JSON parameter object to {base}/{Tool} with the
// key in the apiKey header; responses share a {success, message, data}
// envelope.
package market

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"finedu/backend/internal/logger"
	"finedu/backend/internal/network"
)

var (
	// ErrUpstream covers network failures, non-2xx statuses and
	// success=false envelopes from the fund data API.
	ErrUpstream = errors.New("fund data api unavailable")
	// ErrNotConfigured means no API key is available.
	ErrNotConfigured = errors.New("fund data api key not configured")
)

// MaxBatchCodes is the upstream limit on fund codes per batch call.
const MaxBatchCodes = 20

const (
	requestTimeout = 10 * time.Second
	defaultTTL     = 5 * time.Minute
	quotationTTL   = time.Minute
)

// PortfolioFund is the {fundCode, weight} pair accepted by the portfolio
// analysis tools.
type PortfolioFund struct {
	FundCode string  `json:"fundCode"`
	Weight   float64 `json:"weight"`
}

// ConfigProvider supplies the current base URL and API key. Settings may
// override the environment at runtime.
type ConfigProvider interface {
	MarketAPIConfig(ctx context.Context) (baseURL, apiKey string)
}

// Client is the typed surface over the upstream tools.
type Client interface {
	SearchFunds(ctx context.Context, keyword, fundCategory string, pageNum, pageSize int) (json.RawMessage, error)
	GuessFundCode(ctx context.Context, name string) (json.RawMessage, error)
	FundsDetail(ctx context.Context, codes []string) (json.RawMessage, error)
	NavHistory(ctx context.Context, codes []string, dimension string, descOrder bool) (json.RawMessage, error)
	FundPerformance(ctx context.Context, codes []string) (json.RawMessage, error)
	FundsHolding(ctx context.Context, codes []string) (json.RawMessage, error)
	FundDiagnosis(ctx context.Context, code string) (json.RawMessage, error)
	AssetAllocationPlan(ctx context.Context, riskLevel string) (json.RawMessage, error)
	AnalyzePortfolioRisk(ctx context.Context, funds []PortfolioFund) (json.RawMessage, error)
	BackTest(ctx context.Context, funds []PortfolioFund, startDate, endDate string) (json.RawMessage, error)
	Correlation(ctx context.Context, codes []string) (json.RawMessage, error)
	DiagnosePortfolio(ctx context.Context, funds []PortfolioFund) (json.RawMessage, error)
	MonteCarloSimulate(ctx context.Context, funds []PortfolioFund, years, simulations int) (json.RawMessage, error)
	LatestQuotations(ctx context.Context) (json.RawMessage, error)
	SearchHotTopic(ctx context.Context, keyword string) (json.RawMessage, error)
	StrategySearch(ctx context.Context, keyword string) (json.RawMessage, error)
	StrategyDetails(ctx context.Context, strategyID string) (json.RawMessage, error)
	CurrentTime(ctx context.Context) (json.RawMessage, error)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type client struct {
	config  ConfigProvider
	factory *network.ClientFactory
	limiter *RateLimiter
	cache   *cache
	group   singleflight.Group
}

// NewClient creates a fund data client. The factory supplies proxy-aware
// HTTP clients; limiter throttles calls against the upstream quota.
func NewClient(config ConfigProvider, factory *network.ClientFactory, limiter *RateLimiter) Client {
	return &client{
		config:  config,
		factory: factory,
		limiter: limiter,
		cache:   newCache(),
	}
}

func (c *client) call(ctx context.Context, tool string, params any, ttl time.Duration) (json.RawMessage, error) {
	baseURL, apiKey := c.config.MarketAPIConfig(ctx)
	if apiKey == "" {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("marshal params: %w", err)
	}

	cacheKey := tool + ":" + string(body)
	if data, ok := c.cache.get(cacheKey); ok {
		return data, nil
	}

	// Collapse concurrent identical calls into one upstream request.
	result, err, _ := c.group.Do(cacheKey, func() (any, error) {
		if data, ok := c.cache.get(cacheKey); ok {
			return data, nil
		}
		data, err := c.post(ctx, baseURL, apiKey, tool, body)
		if err != nil {
			return nil, err
		}
		c.cache.set(cacheKey, data, ttl)
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(json.RawMessage), nil
}

func (c *client) post(ctx context.Context, baseURL, apiKey, tool string, body []byte) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/"+tool, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apiKey", apiKey)

	httpClient := c.factory.NewHTTPClient(ctx, requestTimeout)
	resp, err := httpClient.Do(req)
	if err != nil {
		logger.Warn("fund api request failed",
			"module", "market", "action", "call", "resource", tool, "result", "failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("fund api bad status",
			"module", "market", "action", "call", "resource", tool, "result", "failed", "status_code", resp.StatusCode)
		return nil, fmt.Errorf("%w: HTTP %d", ErrUpstream, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUpstream, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
	}
	if !env.Success {
		return nil, fmt.Errorf("%w: %s", ErrUpstream, env.Message)
	}
	return env.Data, nil
}

// clampCodes enforces the upstream per-call code limit.
func clampCodes(codes []string) []string {
	if len(codes) > MaxBatchCodes {
		return codes[:MaxBatchCodes]
	}
	return codes
}

func (c *client) SearchFunds(ctx context.Context, keyword, fundCategory string, pageNum, pageSize int) (json.RawMessage, error) {
	if pageNum <= 0 {
		pageNum = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	params := map[string]any{
		"keyword":  keyword,
		"pageNum":  pageNum,
		"pageSize": pageSize,
	}
	if fundCategory != "" {
		params["fundCategory"] = fundCategory
	}
	return c.call(ctx, "SearchFunds", params, defaultTTL)
}

func (c *client) GuessFundCode(ctx context.Context, name string) (json.RawMessage, error) {
	return c.call(ctx, "GuessFundCode", map[string]any{"name": name}, defaultTTL)
}

func (c *client) FundsDetail(ctx context.Context, codes []string) (json.RawMessage, error) {
	return c.call(ctx, "BatchGetFundsDetail", map[string]any{"fundCodes": clampCodes(codes)}, defaultTTL)
}

func (c *client) NavHistory(ctx context.Context, codes []string, dimension string, descOrder bool) (json.RawMessage, error) {
	if dimension == "" {
		dimension = "MONTH"
	}
	return c.call(ctx, "BatchGetFundNavHistory", map[string]any{
		"fundCodes": clampCodes(codes),
		"dimension": dimension,
		"descOrder": descOrder,
	}, defaultTTL)
}

func (c *client) FundPerformance(ctx context.Context, codes []string) (json.RawMessage, error) {
	return c.call(ctx, "GetBatchFundPerformance", map[string]any{"fundCodes": clampCodes(codes)}, defaultTTL)
}

func (c *client) FundsHolding(ctx context.Context, codes []string) (json.RawMessage, error) {
	return c.call(ctx, "BatchGetFundsHolding", map[string]any{"fundCodes": clampCodes(codes)}, defaultTTL)
}

func (c *client) FundDiagnosis(ctx context.Context, code string) (json.RawMessage, error) {
	return c.call(ctx, "GetFundDiagnosis", map[string]any{"fundCode": code}, defaultTTL)
}

func (c *client) AssetAllocationPlan(ctx context.Context, riskLevel string) (json.RawMessage, error) {
	return c.call(ctx, "GetAssetAllocationPlan", map[string]any{"riskLevel": riskLevel}, defaultTTL)
}

func (c *client) AnalyzePortfolioRisk(ctx context.Context, funds []PortfolioFund) (json.RawMessage, error) {
	return c.call(ctx, "AnalyzePortfolioRisk", map[string]any{"funds": funds}, defaultTTL)
}

func (c *client) BackTest(ctx context.Context, funds []PortfolioFund, startDate, endDate string) (json.RawMessage, error) {
	params := map[string]any{"funds": funds}
	if startDate != "" {
		params["startDate"] = startDate
	}
	if endDate != "" {
		params["endDate"] = endDate
	}
	return c.call(ctx, "GetFundsBackTest", params, defaultTTL)
}

func (c *client) Correlation(ctx context.Context, codes []string) (json.RawMessage, error) {
	return c.call(ctx, "GetFundsCorrelation", map[string]any{"fundCodes": clampCodes(codes)}, defaultTTL)
}

func (c *client) DiagnosePortfolio(ctx context.Context, funds []PortfolioFund) (json.RawMessage, error) {
	return c.call(ctx, "DiagnoseFundPortfolio", map[string]any{"funds": funds}, defaultTTL)
}

func (c *client) MonteCarloSimulate(ctx context.Context, funds []PortfolioFund, years, simulations int) (json.RawMessage, error) {
	return c.call(ctx, "MonteCarloSimulate", map[string]any{
		"funds":       funds,
		"years":       years,
		"simulations": simulations,
	}, defaultTTL)
}

func (c *client) LatestQuotations(ctx context.Context) (json.RawMessage, error) {
	// Quotations move fast, cache them for less time.
	return c.call(ctx, "GetLatestQuotations", map[string]any{}, quotationTTL)
}

func (c *client) SearchHotTopic(ctx context.Context, keyword string) (json.RawMessage, error) {
	return c.call(ctx, "SearchHotTopic", map[string]any{"keyword": keyword}, defaultTTL)
}

func (c *client) StrategySearch(ctx context.Context, keyword string) (json.RawMessage, error) {
	return c.call(ctx, "StrategySearchByKeyword", map[string]any{"keyword": keyword}, defaultTTL)
}

func (c *client) StrategyDetails(ctx context.Context, strategyID string) (json.RawMessage, error) {
	return c.call(ctx, "GetStrategyDetails", map[string]any{"strategyId": strategyID}, defaultTTL)
}

func (c *client) CurrentTime(ctx context.Context) (json.RawMessage, error) {
	return c.call(ctx, "GetCurrentTime", map[string]any{}, quotationTTL)
}
