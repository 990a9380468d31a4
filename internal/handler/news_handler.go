package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"finedu/backend/internal/model"
	"finedu/backend/internal/service"
)

type NewsHandler struct {
	service service.NewsService
}

func NewNewsHandler(service service.NewsService) *NewsHandler {
	return &NewsHandler{service: service}
}

// Request/Response types

type newsItemResponse struct {
	ID          string  `json:"id"`
	Source      string  `json:"source"`
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Summary     *string `json:"summary,omitempty"`
	PublishedAt *string `json:"publishedAt,omitempty"`
	CreatedAt   string  `json:"createdAt"`
}

type newsListResponse struct {
	Items []newsItemResponse `json:"items"`
	Total int                `json:"total"`
}

type articleResponse struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// RegisterRoutes registers the finance news routes.
func (h *NewsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/news", h.List)
	g.GET("/news/:id", h.Get)
	g.GET("/news/:id/content", h.ReadArticle)
	g.POST("/news/refresh", h.Refresh)
}

// List returns the latest news items.
// @Summary List news
// @Description List the latest aggregated finance news
// @Tags news
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum items (default 50)"
// @Success 200 {object} newsListResponse
// @Failure 500 {object} errorResponse
// @Router /news [get]
func (h *NewsHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context(), queryInt(c, "limit", 50))
	if err != nil {
		return writeServiceError(c, err)
	}

	resp := newsListResponse{
		Items: make([]newsItemResponse, 0, len(items)),
		Total: len(items),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, toNewsItemResponse(item))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get returns one news item.
// @Summary Get news item
// @Description Get one news item by ID
// @Tags news
// @Produce json
// @Security BearerAuth
// @Param id path string true "News item ID"
// @Success 200 {object} newsItemResponse
// @Failure 404 {object} errorResponse
// @Router /news/{id} [get]
func (h *NewsHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid news id"})
	}

	item, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toNewsItemResponse(item))
}

// ReadArticle returns the readable article content for one item.
// @Summary Read article
// @Description Get sanitized readable HTML for one news item
// @Tags news
// @Produce json
// @Security BearerAuth
// @Param id path string true "News item ID"
// @Success 200 {object} articleResponse
// @Failure 404 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /news/{id}/content [get]
func (h *NewsHandler) ReadArticle(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid news id"})
	}

	item, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	content, err := h.service.ReadArticle(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, articleResponse{
		ID:      strconv.FormatInt(item.ID, 10),
		Title:   item.Title,
		Content: content,
	})
}

// Refresh fetches all configured feeds now.
// @Summary Refresh news
// @Description Fetch all configured news feeds immediately
// @Tags news
// @Produce json
// @Security BearerAuth
// @Success 200 {object} messageResponse
// @Failure 502 {object} errorResponse
// @Router /news/refresh [post]
func (h *NewsHandler) Refresh(c echo.Context) error {
	if err := h.service.RefreshAll(c.Request().Context()); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "feeds refreshed"})
}

func toNewsItemResponse(item model.NewsItem) newsItemResponse {
	resp := newsItemResponse{
		ID:        strconv.FormatInt(item.ID, 10),
		Source:    item.Source,
		Title:     item.Title,
		URL:       item.URL,
		Summary:   item.Summary,
		CreatedAt: item.CreatedAt.Format(time.RFC3339),
	}
	if item.PublishedAt != nil {
		formatted := item.PublishedAt.Format(time.RFC3339)
		resp.PublishedAt = &formatted
	}
	return resp
}
