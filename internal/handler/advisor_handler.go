package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"finedu/backend/internal/service"
)

type AdvisorHandler struct {
	service service.AdvisorService
}

func NewAdvisorHandler(service service.AdvisorService) *AdvisorHandler {
	return &AdvisorHandler{service: service}
}

// Request/Response types

type reviewRequest struct {
	CaseID string `json:"caseId"`
	Answer string `json:"answer"`
}

type adviceResponse struct {
	Advice string `json:"advice"`
}

type reviewResponse struct {
	Review string `json:"review"`
}

// RegisterRoutes registers the AI advisor routes.
func (h *AdvisorHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/advisor/advice", h.Advise)
	g.POST("/advisor/review", h.Review)
}

// Advise generates personalized study advice.
// @Summary Study advice
// @Description Generate AI study advice from the user's learning record
// @Tags advisor
// @Produce json
// @Security BearerAuth
// @Success 200 {object} adviceResponse
// @Failure 409 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /advisor/advice [post]
func (h *AdvisorHandler) Advise(c echo.Context) error {
	advice, err := h.service.Advise(c.Request().Context(), currentUserID(c))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, adviceResponse{Advice: advice})
}

// Review grades one exercise answer with AI.
// @Summary Review submission
// @Description Grade an exercise answer for a teaching case with AI
// @Tags advisor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reviewRequest true "Case and answer"
// @Success 200 {object} reviewResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /advisor/review [post]
func (h *AdvisorHandler) Review(c echo.Context) error {
	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	review, err := h.service.ReviewSubmission(c.Request().Context(), req.CaseID, req.Answer)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, reviewResponse{Review: review})
}
