package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"finedu/backend/internal/model"
	"finedu/backend/internal/repository"
	"finedu/backend/internal/service"
)

type ProgressHandler struct {
	service service.ProgressService
}

func NewProgressHandler(service service.ProgressService) *ProgressHandler {
	return &ProgressHandler{service: service}
}

// Request/Response types

type updateProgressRequest struct {
	ModuleName string   `json:"moduleName"`
	LessonName string   `json:"lessonName"`
	Status     *string  `json:"status"`
	Score      *float64 `json:"score"`
}

type logActivityRequest struct {
	ActivityType string         `json:"activityType"`
	Data         map[string]any `json:"data"`
}

type progressResponse struct {
	ID          string   `json:"id"`
	ModuleName  string   `json:"moduleName"`
	LessonName  string   `json:"lessonName"`
	Status      string   `json:"status"`
	Score       *float64 `json:"score,omitempty"`
	CompletedAt *string  `json:"completedAt,omitempty"`
	UpdatedAt   string   `json:"updatedAt"`
}

type progressListResponse struct {
	Progress []progressResponse `json:"progress"`
	Total    int                `json:"total"`
}

type overviewResponse struct {
	TotalLessons   int     `json:"totalLessons"`
	Completed      int     `json:"completed"`
	InProgress     int     `json:"inProgress"`
	CompletionRate float64 `json:"completionRate"`
	AvgScore       float64 `json:"avgScore"`
	LearningDays   int     `json:"learningDays"`
}

type moduleStatsResponse struct {
	ModuleName string  `json:"moduleName"`
	Total      int     `json:"total"`
	Completed  int     `json:"completed"`
	AvgScore   float64 `json:"avgScore"`
}

type dailyActivityResponse struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type reportResponse struct {
	Report string `json:"report"`
}

type suggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// RegisterRoutes registers the learning progress routes.
func (h *ProgressHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/progress", h.List)
	g.PUT("/progress", h.Update)
	g.GET("/progress/overview", h.Overview)
	g.GET("/progress/modules", h.ModuleStats)
	g.GET("/progress/activity", h.DailyActivity)
	g.POST("/progress/activity", h.LogActivity)
	g.GET("/progress/report", h.Report)
	g.GET("/progress/suggestions", h.Suggestions)
}

// List returns all lesson progress for the current user.
// @Summary List progress
// @Description List all lesson progress records for the current user
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} progressListResponse
// @Failure 500 {object} errorResponse
// @Router /progress [get]
func (h *ProgressHandler) List(c echo.Context) error {
	list, err := h.service.List(c.Request().Context(), currentUserID(c))
	if err != nil {
		return writeServiceError(c, err)
	}

	resp := progressListResponse{
		Progress: make([]progressResponse, 0, len(list)),
		Total:    len(list),
	}
	for _, p := range list {
		resp.Progress = append(resp.Progress, toProgressResponse(p))
	}
	return c.JSON(http.StatusOK, resp)
}

// Update upserts one lesson progress record.
// @Summary Update progress
// @Description Create or update one lesson progress record
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body updateProgressRequest true "Progress update"
// @Success 200 {object} progressResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /progress [put]
func (h *ProgressHandler) Update(c echo.Context) error {
	var req updateProgressRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	progress, err := h.service.Update(c.Request().Context(), currentUserID(c), req.ModuleName, req.LessonName, req.Status, req.Score)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toProgressResponse(progress))
}

// Overview returns the headline learning numbers.
// @Summary Progress overview
// @Description Get completion rate, average score and learning days
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} overviewResponse
// @Failure 500 {object} errorResponse
// @Router /progress/overview [get]
func (h *ProgressHandler) Overview(c echo.Context) error {
	overview, err := h.service.Overview(c.Request().Context(), currentUserID(c))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, overviewResponse{
		TotalLessons:   overview.TotalLessons,
		Completed:      overview.Completed,
		InProgress:     overview.InProgress,
		CompletionRate: overview.CompletionRate,
		AvgScore:       overview.AvgScore,
		LearningDays:   overview.LearningDays,
	})
}

// ModuleStats returns per-module completion stats.
// @Summary Module statistics
// @Description Get per-module lesson counts and average scores
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {array} moduleStatsResponse
// @Failure 500 {object} errorResponse
// @Router /progress/modules [get]
func (h *ProgressHandler) ModuleStats(c echo.Context) error {
	stats, err := h.service.ModuleStats(c.Request().Context(), currentUserID(c))
	if err != nil {
		return writeServiceError(c, err)
	}
	resp := make([]moduleStatsResponse, 0, len(stats))
	for _, m := range stats {
		resp = append(resp, toModuleStatsResponse(m))
	}
	return c.JSON(http.StatusOK, resp)
}

// DailyActivity returns daily activity counts.
// @Summary Daily activity
// @Description Get daily activity counts for the last N days
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param days query int false "Number of days (default 7)"
// @Success 200 {array} dailyActivityResponse
// @Failure 500 {object} errorResponse
// @Router /progress/activity [get]
func (h *ProgressHandler) DailyActivity(c echo.Context) error {
	days := queryInt(c, "days", 7)
	stats, err := h.service.DailyActivity(c.Request().Context(), currentUserID(c), days)
	if err != nil {
		return writeServiceError(c, err)
	}
	resp := make([]dailyActivityResponse, 0, len(stats))
	for _, d := range stats {
		resp = append(resp, dailyActivityResponse{Date: d.Date, Count: d.Count})
	}
	return c.JSON(http.StatusOK, resp)
}

// LogActivity records one user activity event.
// @Summary Log activity
// @Description Record one activity event for the current user
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body logActivityRequest true "Activity event"
// @Success 200 {object} messageResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /progress/activity [post]
func (h *ProgressHandler) LogActivity(c echo.Context) error {
	var req logActivityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	var payload any
	if len(req.Data) > 0 {
		payload = req.Data
	}
	if err := h.service.LogActivity(c.Request().Context(), currentUserID(c), req.ActivityType, payload); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "activity logged"})
}

// Report renders the plain-text learning report.
// @Summary Learning report
// @Description Generate a plain-text learning report for the current user
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} reportResponse
// @Failure 500 {object} errorResponse
// @Router /progress/report [get]
func (h *ProgressHandler) Report(c echo.Context) error {
	report, err := h.service.Report(c.Request().Context(), currentUserID(c))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, reportResponse{Report: report})
}

// Suggestions returns rule-based study advice.
// @Summary Study suggestions
// @Description Get rule-based study suggestions for the current user
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} suggestionsResponse
// @Failure 500 {object} errorResponse
// @Router /progress/suggestions [get]
func (h *ProgressHandler) Suggestions(c echo.Context) error {
	suggestions, err := h.service.Suggestions(c.Request().Context(), currentUserID(c))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, suggestionsResponse{Suggestions: suggestions})
}

func toProgressResponse(p model.LearningProgress) progressResponse {
	resp := progressResponse{
		ID:         strconv.FormatInt(p.ID, 10),
		ModuleName: p.ModuleName,
		LessonName: p.LessonName,
		Status:     p.Status,
		Score:      p.Score,
		UpdatedAt:  p.UpdatedAt.Format(time.RFC3339),
	}
	if p.CompletedAt != nil {
		formatted := p.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &formatted
	}
	return resp
}

func toModuleStatsResponse(m repository.ModuleStats) moduleStatsResponse {
	return moduleStatsResponse{
		ModuleName: m.ModuleName,
		Total:      m.Total,
		Completed:  m.Completed,
		AvgScore:   m.AvgScore,
	}
}
