package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"finedu/backend/internal/service"
)

type SettingsHandler struct {
	service service.SettingsService
}

func NewSettingsHandler(service service.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// Request/Response types

type aiSettingsResponse struct {
	Provider        string `json:"provider"`
	APIKey          string `json:"apiKey"`
	BaseURL         string `json:"baseUrl"`
	Model           string `json:"model"`
	Thinking        bool   `json:"thinking"`
	ThinkingBudget  int    `json:"thinkingBudget"`
	ReasoningEffort string `json:"reasoningEffort"`
}

type aiSettingsRequest struct {
	Provider        string `json:"provider"`
	APIKey          string `json:"apiKey"`
	BaseURL         string `json:"baseUrl"`
	Model           string `json:"model"`
	Thinking        bool   `json:"thinking"`
	ThinkingBudget  int    `json:"thinkingBudget"`
	ReasoningEffort string `json:"reasoningEffort"`
}

type aiTestRequest struct {
	Provider        string `json:"provider"`
	APIKey          string `json:"apiKey"`
	BaseURL         string `json:"baseUrl"`
	Model           string `json:"model"`
	Thinking        bool   `json:"thinking"`
	ThinkingBudget  int    `json:"thinkingBudget"`
	ReasoningEffort string `json:"reasoningEffort"`
}

type aiTestResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type marketSettingsRequest struct {
	BaseURL string `json:"baseUrl"`
	APIKey  string `json:"apiKey"`
}

type proxySettingsRequest struct {
	Enabled bool   `json:"enabled"`
	URL     string `json:"url"`
}

type proxyTestRequest struct {
	URL string `json:"url"`
}

type proxyTestResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type notificationSettingsRequest struct {
	StudyReminder bool   `json:"studyReminder"`
	ReminderTime  string `json:"reminderTime"`
}

// RegisterRoutes registers the settings routes.
func (h *SettingsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/settings/ai", h.GetAISettings)
	g.PUT("/settings/ai", h.UpdateAISettings)
	g.POST("/settings/ai/test", h.TestAI)
	g.GET("/settings/market", h.GetMarketSettings)
	g.PUT("/settings/market", h.UpdateMarketSettings)
	g.GET("/settings/proxy", h.GetProxySettings)
	g.PUT("/settings/proxy", h.UpdateProxySettings)
	g.POST("/settings/proxy/test", h.TestProxy)
	g.GET("/settings/notifications", h.GetNotificationSettings)
	g.PUT("/settings/notifications", h.UpdateNotificationSettings)
}

// GetAISettings returns the AI configuration.
// @Summary Get AI settings
// @Description Get the AI provider configuration with masked API keys
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} aiSettingsResponse
// @Failure 500 {object} errorResponse
// @Router /settings/ai [get]
func (h *SettingsHandler) GetAISettings(c echo.Context) error {
	settings, err := h.service.GetAISettings(c.Request().Context())
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to get settings"})
	}

	return c.JSON(http.StatusOK, aiSettingsResponse{
		Provider:        settings.Provider,
		APIKey:          settings.APIKey,
		BaseURL:         settings.BaseURL,
		Model:           settings.Model,
		Thinking:        settings.Thinking,
		ThinkingBudget:  settings.ThinkingBudget,
		ReasoningEffort: settings.ReasoningEffort,
	})
}

// UpdateAISettings updates the AI configuration.
// @Summary Update AI settings
// @Description Update the AI provider configuration. Empty apiKey keeps existing key.
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param settings body aiSettingsRequest true "AI settings"
// @Success 200 {object} aiSettingsResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /settings/ai [put]
func (h *SettingsHandler) UpdateAISettings(c echo.Context) error {
	var req aiSettingsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	settings := &service.AISettings{
		Provider:        req.Provider,
		APIKey:          req.APIKey,
		BaseURL:         req.BaseURL,
		Model:           req.Model,
		Thinking:        req.Thinking,
		ThinkingBudget:  req.ThinkingBudget,
		ReasoningEffort: req.ReasoningEffort,
	}

	if err := h.service.SetAISettings(c.Request().Context(), settings); err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to save settings"})
	}

	// Return updated settings (with masked keys)
	return h.GetAISettings(c)
}

// TestAI tests the AI connection.
// @Summary Test AI connection
// @Description Test the AI provider connection with a "Hello world" message
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param config body aiTestRequest true "AI test configuration"
// @Success 200 {object} aiTestResponse
// @Failure 400 {object} errorResponse
// @Router /settings/ai/test [post]
func (h *SettingsHandler) TestAI(c echo.Context) error {
	var req aiTestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	if req.Provider == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "provider is required"})
	}
	if req.Model == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "model is required"})
	}

	response, err := h.service.TestAI(c.Request().Context(), req.Provider, req.APIKey, req.BaseURL, req.Model, req.Thinking, req.ThinkingBudget, req.ReasoningEffort)
	if err != nil {
		return c.JSON(http.StatusOK, aiTestResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	return c.JSON(http.StatusOK, aiTestResponse{
		Success: true,
		Message: response,
	})
}

// GetMarketSettings returns the market API configuration.
// @Summary Get market settings
// @Description Get the market data API configuration with masked key
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.MarketSettings
// @Failure 500 {object} errorResponse
// @Router /settings/market [get]
func (h *SettingsHandler) GetMarketSettings(c echo.Context) error {
	settings, err := h.service.GetMarketSettings(c.Request().Context())
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to get settings"})
	}
	return c.JSON(http.StatusOK, settings)
}

// UpdateMarketSettings updates the market API configuration.
// @Summary Update market settings
// @Description Update the market data API endpoint. Empty apiKey keeps existing key.
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param settings body marketSettingsRequest true "Market settings"
// @Success 200 {object} service.MarketSettings
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /settings/market [put]
func (h *SettingsHandler) UpdateMarketSettings(c echo.Context) error {
	var req marketSettingsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	if err := h.service.SetMarketSettings(c.Request().Context(), &service.MarketSettings{
		BaseURL: req.BaseURL,
		APIKey:  req.APIKey,
	}); err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to save settings"})
	}
	return h.GetMarketSettings(c)
}

// GetProxySettings returns the proxy configuration.
// @Summary Get proxy settings
// @Description Get the outbound proxy configuration
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.ProxySettings
// @Failure 500 {object} errorResponse
// @Router /settings/proxy [get]
func (h *SettingsHandler) GetProxySettings(c echo.Context) error {
	settings, err := h.service.GetProxySettings(c.Request().Context())
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to get settings"})
	}
	return c.JSON(http.StatusOK, settings)
}

// UpdateProxySettings updates the proxy configuration.
// @Summary Update proxy settings
// @Description Update the outbound proxy configuration
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param settings body proxySettingsRequest true "Proxy settings"
// @Success 200 {object} service.ProxySettings
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /settings/proxy [put]
func (h *SettingsHandler) UpdateProxySettings(c echo.Context) error {
	var req proxySettingsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	if err := h.service.SetProxySettings(c.Request().Context(), &service.ProxySettings{
		Enabled: req.Enabled,
		URL:     req.URL,
	}); err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to save settings"})
	}
	return h.GetProxySettings(c)
}

// TestProxy checks a proxy configuration without saving it.
// @Summary Test proxy
// @Description Test a proxy configuration without saving it
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param config body proxyTestRequest true "Proxy URL"
// @Success 200 {object} proxyTestResponse
// @Failure 400 {object} errorResponse
// @Router /settings/proxy/test [post]
func (h *SettingsHandler) TestProxy(c echo.Context) error {
	var req proxyTestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	if req.URL == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "url is required"})
	}

	if err := h.service.TestProxy(c.Request().Context(), req.URL); err != nil {
		return c.JSON(http.StatusOK, proxyTestResponse{Success: false, Error: err.Error()})
	}
	return c.JSON(http.StatusOK, proxyTestResponse{Success: true})
}

// GetNotificationSettings returns the study reminder preferences.
// @Summary Get notification settings
// @Description Get the study reminder preferences
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.NotificationSettings
// @Failure 500 {object} errorResponse
// @Router /settings/notifications [get]
func (h *SettingsHandler) GetNotificationSettings(c echo.Context) error {
	settings, err := h.service.GetNotificationSettings(c.Request().Context())
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to get settings"})
	}
	return c.JSON(http.StatusOK, settings)
}

// UpdateNotificationSettings updates the study reminder preferences.
// @Summary Update notification settings
// @Description Update the study reminder preferences
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param settings body notificationSettingsRequest true "Notification settings"
// @Success 200 {object} service.NotificationSettings
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /settings/notifications [put]
func (h *SettingsHandler) UpdateNotificationSettings(c echo.Context) error {
	var req notificationSettingsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	if err := h.service.SetNotificationSettings(c.Request().Context(), &service.NotificationSettings{
		StudyReminder: req.StudyReminder,
		ReminderTime:  req.ReminderTime,
	}); err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to save settings"})
	}
	return h.GetNotificationSettings(c)
}
