package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"finedu/backend/internal/market"
	"finedu/backend/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalid):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "resource not found"})
	case errors.Is(err, service.ErrConflict):
		return c.JSON(http.StatusConflict, errorResponse{Error: "conflict"})
	case errors.Is(err, service.ErrAINotConfigured):
		return c.JSON(http.StatusConflict, errorResponse{Error: "AI provider is not configured"})
	case errors.Is(err, market.ErrNotConfigured):
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "market data API is not configured"})
	case errors.Is(err, market.ErrUpstream):
		return c.JSON(http.StatusBadGateway, errorResponse{Error: "market data request failed"})
	case errors.Is(err, service.ErrFeedFetch):
		return c.JSON(http.StatusBadGateway, errorResponse{Error: "feed fetch failed"})
	default:
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// Error returns a JSON error response with the given status and message
func Error(c echo.Context, status int, message string) error {
	return c.JSON(status, errorResponse{Error: message})
}
