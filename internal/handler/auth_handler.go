package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"finedu/backend/internal/model"
	"finedu/backend/internal/service"
)

// authCookieName must match the one in middleware.go
const authCookieName = "finedu_auth"

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Request/Response types

type registerRequest struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Role     string  `json:"role"`
	FullName *string `json:"fullName"`
	School   *string `json:"school"`
	Grade    *string `json:"grade"`
	Major    *string `json:"major"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	Email    string  `json:"email"`
	FullName *string `json:"fullName"`
	School   *string `json:"school"`
	Grade    *string `json:"grade"`
	Major    *string `json:"major"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type authResponse struct {
	Token string        `json:"token"`
	User  *userResponse `json:"user"`
}

type userResponse struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FullName  *string `json:"fullName,omitempty"`
	School    *string `json:"school,omitempty"`
	Grade     *string `json:"grade,omitempty"`
	Major     *string `json:"major,omitempty"`
	Role      string  `json:"role"`
	IsActive  bool    `json:"isActive"`
	CreatedAt string  `json:"createdAt"`
	LastLogin *string `json:"lastLogin,omitempty"`
}

// RegisterPublicRoutes registers routes that don't require authentication.
func (h *AuthHandler) RegisterPublicRoutes(g *echo.Group) {
	g.POST("/auth/register", h.Register)
	g.POST("/auth/login", h.Login)
}

// RegisterProtectedRoutes registers routes that require authentication.
func (h *AuthHandler) RegisterProtectedRoutes(g *echo.Group) {
	g.GET("/auth/me", h.GetCurrentUser)
	g.POST("/auth/logout", h.Logout)
	g.PUT("/auth/profile", h.UpdateProfile)
	g.PUT("/auth/password", h.ChangePassword)
}

// Register creates a new user account.
// @Summary Register user
// @Description Register a new student or teacher account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body registerRequest true "Registration info"
// @Success 200 {object} authResponse
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	profile := service.Profile{
		FullName: req.FullName,
		School:   req.School,
		Grade:    req.Grade,
		Major:    req.Major,
	}
	resp, err := h.service.Register(c.Request().Context(), req.Username, req.Email, req.Password, req.Role, profile)
	if err != nil {
		return h.handleAuthError(c, err)
	}

	setAuthCookie(c, resp.Token)

	return c.JSON(http.StatusOK, authResponse{
		Token: resp.Token,
		User:  toUserResponse(resp.User),
	})
}

// Login authenticates a user.
// @Summary Login
// @Description Authenticate with username or email and get a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body loginRequest true "Login credentials"
// @Success 200 {object} authResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	resp, err := h.service.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return h.handleAuthError(c, err)
	}

	setAuthCookie(c, resp.Token)

	return c.JSON(http.StatusOK, authResponse{
		Token: resp.Token,
		User:  toUserResponse(resp.User),
	})
}

// GetCurrentUser returns the current authenticated user.
// @Summary Get current user
// @Description Get the currently authenticated user's info
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} userResponse
// @Failure 401 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /auth/me [get]
func (h *AuthHandler) GetCurrentUser(c echo.Context) error {
	user, err := h.service.GetUser(c.Request().Context(), currentUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
		}
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to get user"})
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Logout invalidates the session and clears the cookie.
// @Summary Logout
// @Description Invalidate the current session and clear the auth cookie
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} messageResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if token := extractToken(c); token != "" {
		if err := h.service.Logout(c.Request().Context(), token); err != nil {
			c.Logger().Error(err)
		}
	}
	clearAuthCookie(c)
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}

// UpdateProfile updates the current user's profile.
// @Summary Update profile
// @Description Update the current user's profile fields
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body updateProfileRequest true "Profile fields"
// @Success 200 {object} userResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	profile := service.Profile{
		FullName: req.FullName,
		School:   req.School,
		Grade:    req.Grade,
		Major:    req.Major,
	}
	user, err := h.service.UpdateProfile(c.Request().Context(), currentUserID(c), profile, req.Email)
	if err != nil {
		return h.handleAuthError(c, err)
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// ChangePassword changes the current user's password.
// @Summary Change password
// @Description Change the current user's password; all sessions are revoked
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body changePasswordRequest true "Old and new passwords"
// @Success 200 {object} messageResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /auth/password [put]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	if err := h.service.ChangePassword(c.Request().Context(), currentUserID(c), req.OldPassword, req.NewPassword); err != nil {
		return h.handleAuthError(c, err)
	}

	clearAuthCookie(c)
	return c.JSON(http.StatusOK, messageResponse{Message: "password changed"})
}

func (h *AuthHandler) handleAuthError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrUserExists):
		return c.JSON(http.StatusConflict, errorResponse{Error: "user already exists"})
	case errors.Is(err, service.ErrUserNotFound):
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "user not found"})
	case errors.Is(err, service.ErrUserInactive):
		return c.JSON(http.StatusForbidden, errorResponse{Error: "account is disabled"})
	case errors.Is(err, service.ErrInvalidPassword):
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
	case errors.Is(err, service.ErrUsernameRequired):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "username is required"})
	case errors.Is(err, service.ErrEmailRequired):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "email is required"})
	case errors.Is(err, service.ErrEmailInvalid):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "email is invalid"})
	case errors.Is(err, service.ErrPasswordRequired):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "password is required"})
	case errors.Is(err, service.ErrPasswordTooWeak):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "password must be at least 6 characters with a letter and a digit"})
	case errors.Is(err, service.ErrInvalid):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	default:
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func toUserResponse(user model.User) *userResponse {
	resp := &userResponse{
		ID:        strconv.FormatInt(user.ID, 10),
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		School:    user.School,
		Grade:     user.Grade,
		Major:     user.Major,
		Role:      user.Role,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
	if user.LastLogin != nil {
		formatted := user.LastLogin.Format(time.RFC3339)
		resp.LastLogin = &formatted
	}
	return resp
}

// extractToken reads the bearer token from the header or the auth cookie.
func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
	}
	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// setAuthCookie sets the authentication cookie for browser requests.
func setAuthCookie(c echo.Context, token string) {
	cookie := &http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Request().TLS != nil, // Secure if HTTPS
		SameSite: http.SameSiteLaxMode,
		MaxAge:   7 * 24 * 60 * 60, // 7 days (same as session TTL)
	}
	c.SetCookie(cookie)
}

// clearAuthCookie clears the authentication cookie.
func clearAuthCookie(c echo.Context) {
	cookie := &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1, // Delete cookie
	}
	c.SetCookie(cookie)
}
