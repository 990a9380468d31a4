package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"finedu/backend/internal/model"
	"finedu/backend/internal/service"
)

type PortfolioHandler struct {
	service service.PortfolioService
}

func NewPortfolioHandler(service service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{service: service}
}

// Request/Response types

type createPortfolioRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type holdingRequest struct {
	FundCode string   `json:"fundCode"`
	FundName *string  `json:"fundName"`
	Weight   float64  `json:"weight"`
	Amount   *float64 `json:"amount"`
}

type updateHoldingsRequest struct {
	Holdings []holdingRequest `json:"holdings"`
}

type simulateRequest struct {
	InitialAmount float64 `json:"initialAmount"`
	Years         int     `json:"years"`
	Paths         int     `json:"paths"`
	AnnualReturn  float64 `json:"annualReturn"`
	AnnualVol     float64 `json:"annualVol"`
	Seed          uint64  `json:"seed"`
}

type holdingResponse struct {
	FundCode string   `json:"fundCode"`
	FundName *string  `json:"fundName,omitempty"`
	Weight   float64  `json:"weight"`
	Amount   *float64 `json:"amount,omitempty"`
}

type portfolioResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description *string           `json:"description,omitempty"`
	Holdings    []holdingResponse `json:"holdings"`
	CreatedAt   string            `json:"createdAt"`
	UpdatedAt   string            `json:"updatedAt"`
}

type portfolioListResponse struct {
	Portfolios []portfolioResponse `json:"portfolios"`
	Total      int                 `json:"total"`
}

// RegisterRoutes registers the portfolio planning routes.
func (h *PortfolioHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/portfolios", h.List)
	g.POST("/portfolios", h.Create)
	g.GET("/portfolios/:id", h.Get)
	g.DELETE("/portfolios/:id", h.Delete)
	g.PUT("/portfolios/:id/holdings", h.UpdateHoldings)
	g.GET("/portfolios/:id/analysis", h.Analyze)
	g.GET("/allocations", h.Allocations)
	g.GET("/allocations/:riskLevel", h.Allocation)
	g.GET("/funds/recommended", h.RecommendedFunds)
	g.POST("/simulate", h.Simulate)
}

// List returns the current user's portfolios.
// @Summary List portfolios
// @Description List all portfolios of the current user
// @Tags portfolio
// @Produce json
// @Security BearerAuth
// @Success 200 {object} portfolioListResponse
// @Failure 500 {object} errorResponse
// @Router /portfolios [get]
func (h *PortfolioHandler) List(c echo.Context) error {
	portfolios, err := h.service.List(c.Request().Context(), currentUserID(c))
	if err != nil {
		return writeServiceError(c, err)
	}

	resp := portfolioListResponse{
		Portfolios: make([]portfolioResponse, 0, len(portfolios)),
		Total:      len(portfolios),
	}
	for _, p := range portfolios {
		resp.Portfolios = append(resp.Portfolios, toPortfolioResponse(p))
	}
	return c.JSON(http.StatusOK, resp)
}

// Create creates a new empty portfolio.
// @Summary Create portfolio
// @Description Create a new empty portfolio
// @Tags portfolio
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body createPortfolioRequest true "Portfolio info"
// @Success 200 {object} portfolioResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /portfolios [post]
func (h *PortfolioHandler) Create(c echo.Context) error {
	var req createPortfolioRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	portfolio, err := h.service.Create(c.Request().Context(), currentUserID(c), req.Name, req.Description)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toPortfolioResponse(portfolio))
}

// Get returns one portfolio with its holdings.
// @Summary Get portfolio
// @Description Get one portfolio with its holdings
// @Tags portfolio
// @Produce json
// @Security BearerAuth
// @Param id path string true "Portfolio ID"
// @Success 200 {object} portfolioResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /portfolios/{id} [get]
func (h *PortfolioHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid portfolio id"})
	}

	portfolio, err := h.service.Get(c.Request().Context(), currentUserID(c), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toPortfolioResponse(portfolio))
}

// Delete removes a portfolio and its holdings.
// @Summary Delete portfolio
// @Description Delete a portfolio and its holdings
// @Tags portfolio
// @Produce json
// @Security BearerAuth
// @Param id path string true "Portfolio ID"
// @Success 200 {object} messageResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /portfolios/{id} [delete]
func (h *PortfolioHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid portfolio id"})
	}

	if err := h.service.Delete(c.Request().Context(), currentUserID(c), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "portfolio deleted"})
}

// UpdateHoldings replaces the holding set of a portfolio.
// @Summary Update holdings
// @Description Replace the holding set; weights must sum to 1
// @Tags portfolio
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Portfolio ID"
// @Param request body updateHoldingsRequest true "New holdings"
// @Success 200 {object} portfolioResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /portfolios/{id}/holdings [put]
func (h *PortfolioHandler) UpdateHoldings(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid portfolio id"})
	}

	var req updateHoldingsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	inputs := make([]service.HoldingInput, 0, len(req.Holdings))
	for _, hld := range req.Holdings {
		inputs = append(inputs, service.HoldingInput{
			FundCode: hld.FundCode,
			FundName: hld.FundName,
			Weight:   hld.Weight,
			Amount:   hld.Amount,
		})
	}

	portfolio, err := h.service.UpdateHoldings(c.Request().Context(), currentUserID(c), id, inputs)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toPortfolioResponse(portfolio))
}

// Analyze runs the upstream portfolio analysis tools.
// @Summary Analyze portfolio
// @Description Run risk, correlation, backtest and diagnosis on a portfolio
// @Tags portfolio
// @Produce json
// @Security BearerAuth
// @Param id path string true "Portfolio ID"
// @Success 200 {object} service.PortfolioAnalysis
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /portfolios/{id}/analysis [get]
func (h *PortfolioHandler) Analyze(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid portfolio id"})
	}

	analysis, err := h.service.Analyze(c.Request().Context(), currentUserID(c), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, analysis)
}

// Allocations returns all asset allocation templates.
// @Summary List allocations
// @Description List the asset allocation templates for all risk levels
// @Tags portfolio
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.RiskAllocation
// @Router /allocations [get]
func (h *PortfolioHandler) Allocations(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.Allocations())
}

// Allocation returns the allocation template for one risk level.
// @Summary Get allocation
// @Description Get the asset allocation template for one risk level
// @Tags portfolio
// @Produce json
// @Security BearerAuth
// @Param riskLevel path string true "Risk level"
// @Success 200 {object} service.RiskAllocation
// @Router /allocations/{riskLevel} [get]
func (h *PortfolioHandler) Allocation(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.Allocation(c.Param("riskLevel")))
}

// RecommendedFunds returns the teaching fund shortlist for an asset class.
// @Summary Recommended funds
// @Description Get the teaching fund shortlist for one asset class
// @Tags portfolio
// @Produce json
// @Security BearerAuth
// @Param class query string true "Asset class: money, bond or equity"
// @Success 200 {array} service.RecommendedFund
// @Failure 404 {object} errorResponse
// @Router /funds/recommended [get]
func (h *PortfolioHandler) RecommendedFunds(c echo.Context) error {
	funds := h.service.RecommendedFunds(c.QueryParam("class"))
	if funds == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "unknown asset class"})
	}
	return c.JSON(http.StatusOK, funds)
}

// Simulate runs a Monte Carlo projection.
// @Summary Monte Carlo simulation
// @Description Project portfolio value with a Monte Carlo simulation
// @Tags portfolio
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body simulateRequest true "Simulation parameters"
// @Success 200 {object} service.SimulationResult
// @Failure 400 {object} errorResponse
// @Router /simulate [post]
func (h *PortfolioHandler) Simulate(c echo.Context) error {
	var req simulateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	result, err := h.service.Simulate(service.SimulationParams{
		InitialAmount: req.InitialAmount,
		Years:         req.Years,
		Paths:         req.Paths,
		AnnualReturn:  req.AnnualReturn,
		AnnualVol:     req.AnnualVol,
		Seed:          req.Seed,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func toPortfolioResponse(p model.Portfolio) portfolioResponse {
	resp := portfolioResponse{
		ID:          strconv.FormatInt(p.ID, 10),
		Name:        p.Name,
		Description: p.Description,
		Holdings:    make([]holdingResponse, 0, len(p.Holdings)),
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
	for _, hld := range p.Holdings {
		resp.Holdings = append(resp.Holdings, holdingResponse{
			FundCode: hld.FundCode,
			FundName: hld.FundName,
			Weight:   hld.Weight,
			Amount:   hld.Amount,
		})
	}
	return resp
}
