package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"finedu/backend/internal/service"
)

type UserHandler struct {
	service service.AuthService
}

func NewUserHandler(service service.AuthService) *UserHandler {
	return &UserHandler{service: service}
}

type userListResponse struct {
	Users []*userResponse `json:"users"`
	Total int             `json:"total"`
}

// RegisterRoutes registers admin-only user management routes.
func (h *UserHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/users", h.ListUsers)
	g.GET("/users/:id", h.GetUser)
}

// ListUsers returns all registered users.
// @Summary List users
// @Description List all registered users (admin only)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} userListResponse
// @Failure 403 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to list users"})
	}

	resp := userListResponse{
		Users: make([]*userResponse, 0, len(users)),
		Total: len(users),
	}
	for _, u := range users {
		resp.Users = append(resp.Users, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, resp)
}

// GetUser returns one user by ID.
// @Summary Get user
// @Description Get one user by ID (admin only)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} userResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid user id"})
	}

	user, err := h.service.GetUser(c.Request().Context(), id)
	if err != nil {
		return h.handleUserError(c, err)
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *UserHandler) handleUserError(c echo.Context, err error) error {
	if err == service.ErrUserNotFound {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "user not found"})
	}
	c.Logger().Error(err)
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
}
