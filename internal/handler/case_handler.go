package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"finedu/backend/internal/model"
	"finedu/backend/internal/service"
)

type CaseHandler struct {
	service service.CaseService
}

func NewCaseHandler(service service.CaseService) *CaseHandler {
	return &CaseHandler{service: service}
}

// Request/Response types

type submitExerciseRequest struct {
	QuestionID *string `json:"questionId"`
	Answer     string  `json:"answer"`
}

type caseListResponse struct {
	Cases []service.TeachingCase `json:"cases"`
	Total int                    `json:"total"`
}

type submissionResponse struct {
	ID          string   `json:"id"`
	CaseID      string   `json:"caseId"`
	QuestionID  *string  `json:"questionId,omitempty"`
	Answer      string   `json:"answer"`
	IsCorrect   *bool    `json:"isCorrect,omitempty"`
	Score       *float64 `json:"score,omitempty"`
	SubmittedAt string   `json:"submittedAt"`
}

type submissionListResponse struct {
	Submissions []submissionResponse `json:"submissions"`
	Total       int                  `json:"total"`
}

// RegisterRoutes registers the teaching case routes.
func (h *CaseHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/cases", h.List)
	g.GET("/cases/:id", h.Get)
	g.POST("/cases/:id/submissions", h.Submit)
	g.GET("/submissions", h.ListSubmissions)
}

// List returns the teaching case library.
// @Summary List cases
// @Description List all teaching cases
// @Tags cases
// @Produce json
// @Security BearerAuth
// @Success 200 {object} caseListResponse
// @Router /cases [get]
func (h *CaseHandler) List(c echo.Context) error {
	cases := h.service.ListCases()
	return c.JSON(http.StatusOK, caseListResponse{Cases: cases, Total: len(cases)})
}

// Get returns one teaching case.
// @Summary Get case
// @Description Get one teaching case with its exercise and reference answer
// @Tags cases
// @Produce json
// @Security BearerAuth
// @Param id path string true "Case ID"
// @Success 200 {object} service.TeachingCase
// @Failure 404 {object} errorResponse
// @Router /cases/{id} [get]
func (h *CaseHandler) Get(c echo.Context) error {
	teachingCase, err := h.service.GetCase(c.Param("id"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, teachingCase)
}

// Submit records one exercise answer.
// @Summary Submit exercise
// @Description Submit an exercise answer for a teaching case
// @Tags cases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Case ID"
// @Param request body submitExerciseRequest true "Exercise answer"
// @Success 200 {object} submissionResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /cases/{id}/submissions [post]
func (h *CaseHandler) Submit(c echo.Context) error {
	var req submitExerciseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	sub, err := h.service.SubmitExercise(c.Request().Context(), currentUserID(c), c.Param("id"), req.QuestionID, req.Answer)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toSubmissionResponse(sub))
}

// ListSubmissions returns the current user's submissions.
// @Summary List submissions
// @Description List the current user's exercise submissions
// @Tags cases
// @Produce json
// @Security BearerAuth
// @Param caseId query string false "Filter by case ID"
// @Success 200 {object} submissionListResponse
// @Failure 404 {object} errorResponse
// @Router /submissions [get]
func (h *CaseHandler) ListSubmissions(c echo.Context) error {
	subs, err := h.service.ListSubmissions(c.Request().Context(), currentUserID(c), optionalQuery(c, "caseId"))
	if err != nil {
		return writeServiceError(c, err)
	}

	resp := submissionListResponse{
		Submissions: make([]submissionResponse, 0, len(subs)),
		Total:       len(subs),
	}
	for _, sub := range subs {
		resp.Submissions = append(resp.Submissions, toSubmissionResponse(sub))
	}
	return c.JSON(http.StatusOK, resp)
}

func toSubmissionResponse(sub model.ExerciseSubmission) submissionResponse {
	return submissionResponse{
		ID:          strconv.FormatInt(sub.ID, 10),
		CaseID:      sub.CaseID,
		QuestionID:  sub.QuestionID,
		Answer:      sub.Answer,
		IsCorrect:   sub.IsCorrect,
		Score:       sub.Score,
		SubmittedAt: sub.SubmittedAt.Format(time.RFC3339),
	}
}
