package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"finedu/backend/internal/market"
)

type MarketHandler struct {
	client market.Client
}

func NewMarketHandler(client market.Client) *MarketHandler {
	return &MarketHandler{client: client}
}

// Request/Response types

type dataResponse struct {
	Data json.RawMessage `json:"data"`
}

type portfolioFundsRequest struct {
	Funds []market.PortfolioFund `json:"funds"`
}

type backTestRequest struct {
	Funds     []market.PortfolioFund `json:"funds"`
	StartDate string                 `json:"startDate"`
	EndDate   string                 `json:"endDate"`
}

type marketSimulateRequest struct {
	Funds       []market.PortfolioFund `json:"funds"`
	Years       int                    `json:"years"`
	Simulations int                    `json:"simulations"`
}

// RegisterRoutes registers the market data routes.
func (h *MarketHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/market/funds/search", h.SearchFunds)
	g.GET("/market/funds/guess", h.GuessFundCode)
	g.GET("/market/funds/detail", h.FundsDetail)
	g.GET("/market/funds/nav", h.NavHistory)
	g.GET("/market/funds/performance", h.FundPerformance)
	g.GET("/market/funds/holdings", h.FundsHolding)
	g.GET("/market/funds/correlation", h.Correlation)
	g.GET("/market/funds/:code/diagnosis", h.FundDiagnosis)
	g.GET("/market/allocation-plan", h.AssetAllocationPlan)
	g.POST("/market/portfolio/risk", h.AnalyzePortfolioRisk)
	g.POST("/market/portfolio/backtest", h.BackTest)
	g.POST("/market/portfolio/diagnosis", h.DiagnosePortfolio)
	g.POST("/market/portfolio/simulate", h.MonteCarloSimulate)
	g.GET("/market/quotations", h.LatestQuotations)
	g.GET("/market/hot-topics", h.SearchHotTopic)
	g.GET("/market/strategies/search", h.StrategySearch)
	g.GET("/market/strategies/:id", h.StrategyDetails)
	g.GET("/market/time", h.CurrentTime)
}

// splitCodes parses a comma-separated fund code list.
func splitCodes(raw string) []string {
	var codes []string
	for _, code := range strings.Split(raw, ",") {
		code = strings.TrimSpace(code)
		if code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}

func (h *MarketHandler) writeData(c echo.Context, data json.RawMessage, err error) error {
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dataResponse{Data: data})
}

// SearchFunds searches funds by keyword.
// @Summary Search funds
// @Description Search funds by keyword with optional category filter
// @Tags market
// @Produce json
// @Security BearerAuth
// @Param keyword query string true "Search keyword"
// @Param category query string false "Fund category"
// @Param page query int false "Page number (default 1)"
// @Param pageSize query int false "Page size (default 10)"
// @Success 200 {object} dataResponse
// @Failure 502 {object} errorResponse
// @Router /market/funds/search [get]
func (h *MarketHandler) SearchFunds(c echo.Context) error {
	keyword := c.QueryParam("keyword")
	if keyword == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "keyword is required"})
	}
	data, err := h.client.SearchFunds(c.Request().Context(), keyword, c.QueryParam("category"),
		queryInt(c, "page", 1), queryInt(c, "pageSize", 10))
	return h.writeData(c, data, err)
}

// GuessFundCode resolves a fund name to its code.
// @Summary Guess fund code
// @Description Resolve a fund name to its fund code
// @Tags market
// @Produce json
// @Security BearerAuth
// @Param name query string true "Fund name"
// @Success 200 {object} dataResponse
// @Failure 502 {object} errorResponse
// @Router /market/funds/guess [get]
func (h *MarketHandler) GuessFundCode(c echo.Context) error {
	name := c.QueryParam("name")
	if name == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "name is required"})
	}
	data, err := h.client.GuessFundCode(c.Request().Context(), name)
	return h.writeData(c, data, err)
}

// FundsDetail returns details for a batch of funds.
// @Summary Fund details
// @Description Get details for up to 20 funds
// @Tags market
// @Produce json
// @Security BearerAuth
// @Param codes query string true "Comma-separated fund codes"
// @Success 200 {object} dataResponse
// @Failure 502 {object} errorResponse
// @Router /market/funds/detail [get]
func (h *MarketHandler) FundsDetail(c echo.Context) error {
	codes := splitCodes(c.QueryParam("codes"))
	if len(codes) == 0 {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "codes is required"})
	}
	data, err := h.client.FundsDetail(c.Request().Context(), codes)
	return h.writeData(c, data, err)
}

// NavHistory returns NAV history for a batch of funds.
// @Summary NAV history
// @Description Get net asset value history for up to 20 funds
// @Tags market
// @Produce json
// @Security BearerAuth
// @Param codes query string true "Comma-separated fund codes"
// @Param dimension query string false "Time dimension (default MONTH)"
// @Param desc query bool false "Descending order"
// @Success 200 {object} dataResponse
// @Failure 502 {object} errorResponse
// @Router /market/funds/nav [get]
func (h *MarketHandler) NavHistory(c echo.Context) error {
	codes := splitCodes(c.QueryParam("codes"))
	if len(codes) == 0 {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "codes is required"})
	}
	data, err := h.client.NavHistory(c.Request().Context(), codes, c.QueryParam("dimension"), c.QueryParam("desc") == "true")
	return h.writeData(c, data, err)
}

// FundPerformance returns performance metrics for a batch of funds.
// @Summary Fund performance
// @Description Get performance metrics for up to 20 funds
// @Tags market
// @Produce json
// @Security BearerAuth
// @Param codes query string true "Comma-separated fund codes"
// @Success 200 {object} dataResponse
// @Failure 502 {object} errorResponse
// @Router /market/funds/performance [get]
func (h *MarketHandler) FundPerformance(c echo.Context) error {
	codes := splitCodes(c.QueryParam("codes"))
	if len(codes) == 0 {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "codes is required"})
	}
	data, err := h.client.FundPerformance(c.Request().Context(), codes)
	return h.writeData(c, data, err)
}

// FundsHolding returns holding structures for a batch of funds.
// @Summary Fund holdings
// @Description Get holding structures for up to 20 funds
// @Tags market
// @Produce json
// @Security BearerAuth
// @Param codes query string true "Comma-separated fund codes"
// @Success 200 {object} dataResponse
// @Failure 502 {object} errorResponse
// @Router /market/funds/holdings [get]
func (h *MarketHandler) FundsHolding(c echo.Context) error {
	codes := splitCodes(c.QueryParam("codes"))
	if len(codes) == 0 {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "codes is required"})
	}
	data, err := h.client.FundsHolding(c.Request().Context(), codes)
	return h.writeData(c, data, err)
}

// Correlation returns the correlation matrix for a batch of funds.
// @Summary Fund correlation
// @Description Get the correlation matrix for a set of funds
// @Tags market
// @Produce json
// @Security BearerAuth
// @Param codes query string true "Comma-separated fund codes"
// @Success 200 {object} dataResponse
// @Failure 502 {object} errorResponse
// @Router /market/funds/correlation [get]
func (h *MarketHandler) Correlation(c echo.Context) error {
	codes := splitCodes(c.QueryParam("codes"))
	if len(codes) < 2 {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "at least two codes are required"})
	}
	data, err := h.client.Correlation(c.Request().Context(), codes)
	return h.writeData(c, data, err)
}

// FundDiagnosis returns the diagnosis for one fund.
// @Summary Fund diagnosis
// @Description Get the diagnosis report for one fund
// @Tags market
// @Produce json
// @Security BearerAuth
// @Param code path string true "Fund code"
// @Success 200 {object} dataResponse
// @Failure 502 {object} errorResponse
// @Router /market/funds/{code}/diagnosis [get]
func (h *MarketHandler) FundDiagnosis(c echo.Context) error {
	data, err := h.client.FundDiagnosis(c.Request().Context(), c.Param("code"))
	return h.writeData(c, data, err)
}

// AssetAllocationPlan returns the upstream allocation plan for a risk level.
// @Summary Asset allocation plan
// @Description Get the upstream asset allocation plan for a risk level
// @Tags market
// @Produce json
// @Security BearerAuth
// @Param riskLevel query string true "Risk level"
// @Success 200 {object} dataResponse
// @Failure 502 {object} errorResponse
// @Router /market/allocation-plan [get]
func (h *MarketHandler) AssetAllocationPlan(c echo.Context) error {
	data, err := h.client.AssetAllocationPlan(c.Request().Context(), c.QueryParam("riskLevel"))
	return h.writeData(c, data, err)
}

// AnalyzePortfolioRisk analyzes the risk of a weighted fund set.
// @Summary Portfolio risk
// @Description Analyze the risk of a weighted fund portfolio
// @Tags market
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body portfolioFundsRequest true "Weighted funds"
// @Success 200 {object} dataResponse
// @Failure 502 {object} errorResponse
// @Router /market/portfolio/risk [post]
func (h *MarketHandler) AnalyzePortfolioRisk(c echo.Context) error {
	var req portfolioFundsRequest
	if err := c.Bind(&req); err != nil || len(req.Funds) == 0 {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "funds are required"})
	}
	data, err := h.client.AnalyzePortfolioRisk(c.Request().Context(), req.Funds)
	return h.writeData(c, data, err)
}

// BackTest runs a historical backtest of a weighted fund set.
// @Summary Portfolio backtest
// @Description Backtest a weighted fund portfolio over a date range
// @Tags market
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body backTestRequest true "Weighted funds and date range"
// @Success 200 {object} dataResponse
// @Failure 502 {object} errorResponse
// @Router /market/portfolio/backtest [post]
func (h *MarketHandler) BackTest(c echo.Context) error {
	var req backTestRequest
	if err := c.Bind(&req); err != nil || len(req.Funds) == 0 {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "funds are required"})
	}
	data, err := h.client.BackTest(c.Request().Context(), req.Funds, req.StartDate, req.EndDate)
	return h.writeData(c, data, err)
}

// DiagnosePortfolio diagnoses a weighted fund set.
// @Summary Portfolio diagnosis
// @Description Diagnose a weighted fund portfolio
// @Tags market
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body portfolioFundsRequest true "Weighted funds"
// @Success 200 {object} dataResponse
// @Failure 502 {object} errorResponse
// @Router /market/portfolio/diagnosis [post]
func (h *MarketHandler) DiagnosePortfolio(c echo.Context) error {
	var req portfolioFundsRequest
	if err := c.Bind(&req); err != nil || len(req.Funds) == 0 {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "funds are required"})
	}
	data, err := h.client.DiagnosePortfolio(c.Request().Context(), req.Funds)
	return h.writeData(c, data, err)
}

// MonteCarloSimulate runs the upstream Monte Carlo simulation.
// @Summary Upstream Monte Carlo
// @Description Run the upstream Monte Carlo simulation on a fund portfolio
// @Tags market
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body marketSimulateRequest true "Weighted funds and horizon"
// @Success 200 {object} dataResponse
// @Failure 502 {object} errorResponse
// @Router /market/portfolio/simulate [post]
func (h *MarketHandler) MonteCarloSimulate(c echo.Context) error {
	var req marketSimulateRequest
	if err := c.Bind(&req); err != nil || len(req.Funds) == 0 {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "funds are required"})
	}
	data, err := h.client.MonteCarloSimulate(c.Request().Context(), req.Funds, req.Years, req.Simulations)
	return h.writeData(c, data, err)
}

// LatestQuotations returns the latest market quotations.
// @Summary Latest quotations
// @Description Get the latest market index quotations
// @Tags market
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dataResponse
// @Failure 502 {object} errorResponse
// @Router /market/quotations [get]
func (h *MarketHandler) LatestQuotations(c echo.Context) error {
	data, err := h.client.LatestQuotations(c.Request().Context())
	return h.writeData(c, data, err)
}

// SearchHotTopic returns trending market topics, optionally filtered by
// keyword.
// @Summary Hot topics
// @Description Get trending market topics
// @Tags market
// @Produce json
// @Security BearerAuth
// @Param keyword query string false "Filter keyword"
// @Success 200 {object} dataResponse
// @Failure 502 {object} errorResponse
// @Router /market/hot-topics [get]
func (h *MarketHandler) SearchHotTopic(c echo.Context) error {
	data, err := h.client.SearchHotTopic(c.Request().Context(), c.QueryParam("keyword"))
	return h.writeData(c, data, err)
}

// StrategySearch searches investment strategies by keyword.
// @Summary Search strategies
// @Description Search investment strategies by keyword
// @Tags market
// @Produce json
// @Security BearerAuth
// @Param keyword query string true "Search keyword"
// @Success 200 {object} dataResponse
// @Failure 502 {object} errorResponse
// @Router /market/strategies/search [get]
func (h *MarketHandler) StrategySearch(c echo.Context) error {
	keyword := c.QueryParam("keyword")
	if keyword == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "keyword is required"})
	}
	data, err := h.client.StrategySearch(c.Request().Context(), keyword)
	return h.writeData(c, data, err)
}

// StrategyDetails returns one strategy's details.
// @Summary Strategy details
// @Description Get the details of one investment strategy
// @Tags market
// @Produce json
// @Security BearerAuth
// @Param id path string true "Strategy ID"
// @Success 200 {object} dataResponse
// @Failure 502 {object} errorResponse
// @Router /market/strategies/{id} [get]
func (h *MarketHandler) StrategyDetails(c echo.Context) error {
	data, err := h.client.StrategyDetails(c.Request().Context(), c.Param("id"))
	return h.writeData(c, data, err)
}

// CurrentTime returns the upstream server time.
// @Summary Current time
// @Description Get the upstream server time
// @Tags market
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dataResponse
// @Failure 502 {object} errorResponse
// @Router /market/time [get]
func (h *MarketHandler) CurrentTime(c echo.Context) error {
	data, err := h.client.CurrentTime(c.Request().Context())
	return h.writeData(c, data, err)
}
