package service

import (
	"context"
	"fmt"

	"finedu/backend/internal/network"
	"finedu/backend/internal/repository"
	"finedu/backend/internal/service/ai"
)

// AISettings holds the AI advisor configuration.
type AISettings struct {
	Provider        string `json:"provider"`
	APIKey          string `json:"apiKey"`
	BaseURL         string `json:"baseUrl"`
	Model           string `json:"model"`
	Thinking        bool   `json:"thinking"`
	ThinkingBudget  int    `json:"thinkingBudget"`
	ReasoningEffort string `json:"reasoningEffort"`
}

// MarketSettings holds the market data API configuration.
type MarketSettings struct {
	BaseURL string `json:"baseUrl"`
	APIKey  string `json:"apiKey"`
}

// ProxySettings holds the outbound proxy configuration.
type ProxySettings struct {
	Enabled bool   `json:"enabled"`
	URL     string `json:"url"`
}

// NotificationSettings holds study reminder preferences.
type NotificationSettings struct {
	StudyReminder bool   `json:"studyReminder"`
	ReminderTime  string `json:"reminderTime"`
}

// Setting keys
const (
	keyAIProvider        = "ai.provider"
	keyAIAPIKey          = "ai.api_key"
	keyAIBaseURL         = "ai.base_url"
	keyAIModel           = "ai.model"
	keyAIThinking        = "ai.thinking"
	keyAIThinkingBudget  = "ai.thinking_budget"
	keyAIReasoningEffort = "ai.reasoning_effort"

	keyMarketBaseURL = "market.base_url"
	keyMarketAPIKey  = "market.api_key"

	keyProxyEnabled = "proxy.enabled"
	keyProxyURL     = "proxy.url"

	keyNotifyStudyReminder = "notify.study_reminder"
	keyNotifyReminderTime  = "notify.reminder_time"
)

// SettingsService provides settings management. It also backs the market
// client configuration and the outbound proxy lookup.
type SettingsService interface {
	// GetAISettings returns the AI configuration with masked API keys.
	GetAISettings(ctx context.Context) (*AISettings, error)
	// SetAISettings updates the AI configuration.
	// If apiKey is empty or masked, it keeps the existing key.
	SetAISettings(ctx context.Context, settings *AISettings) error
	// AIConfig resolves the stored AI configuration with the real key.
	AIConfig(ctx context.Context) (ai.Config, error)
	// TestAI tests the AI connection with the given configuration.
	TestAI(ctx context.Context, provider, apiKey, baseURL, model string, thinking bool, thinkingBudget int, reasoningEffort string) (string, error)

	GetMarketSettings(ctx context.Context) (*MarketSettings, error)
	SetMarketSettings(ctx context.Context, settings *MarketSettings) error
	// MarketAPIConfig resolves the market API endpoint, stored settings
	// first, environment defaults second.
	MarketAPIConfig(ctx context.Context) (baseURL, apiKey string)

	GetProxySettings(ctx context.Context) (*ProxySettings, error)
	SetProxySettings(ctx context.Context, settings *ProxySettings) error
	// GetProxyURL returns the proxy URL when the proxy is enabled.
	GetProxyURL(ctx context.Context) string
	// TestProxy checks a proxy configuration without saving it.
	TestProxy(ctx context.Context, proxyURL string) error

	GetNotificationSettings(ctx context.Context) (*NotificationSettings, error)
	SetNotificationSettings(ctx context.Context, settings *NotificationSettings) error
}

type settingsService struct {
	repo          repository.SettingsRepository
	envMCPBaseURL string
	envMCPAPIKey  string
}

// NewSettingsService creates a new settings service. The env values are the
// fallback market API endpoint from process configuration.
func NewSettingsService(repo repository.SettingsRepository, envMCPBaseURL, envMCPAPIKey string) SettingsService {
	return &settingsService{
		repo:          repo,
		envMCPBaseURL: envMCPBaseURL,
		envMCPAPIKey:  envMCPAPIKey,
	}
}

// GetAISettings returns the AI configuration with masked API keys.
func (s *settingsService) GetAISettings(ctx context.Context) (*AISettings, error) {
	settings := &AISettings{
		Provider:        ai.ProviderOpenAI, // default
		ThinkingBudget:  10000,             // default budget
		ReasoningEffort: "medium",          // default effort
	}

	if val, err := s.getString(ctx, keyAIProvider); err == nil && val != "" {
		settings.Provider = val
	}
	if val, err := s.getString(ctx, keyAIAPIKey); err == nil && val != "" {
		settings.APIKey = maskAPIKey(val)
	}
	if val, err := s.getString(ctx, keyAIBaseURL); err == nil {
		settings.BaseURL = val
	}
	if val, err := s.getString(ctx, keyAIModel); err == nil {
		settings.Model = val
	}
	if val, err := s.getString(ctx, keyAIThinking); err == nil && val == "true" {
		settings.Thinking = true
	}
	if val, err := s.getInt(ctx, keyAIThinkingBudget); err == nil && val > 0 {
		settings.ThinkingBudget = val
	}
	// A stored empty string is a real override (Compatible Budget mode), so
	// only a missing row keeps the default.
	if setting, err := s.repo.Get(ctx, keyAIReasoningEffort); err == nil && setting != nil {
		settings.ReasoningEffort = setting.Value
	}

	return settings, nil
}

// SetAISettings updates the AI configuration.
func (s *settingsService) SetAISettings(ctx context.Context, settings *AISettings) error {
	if settings.Provider != "" {
		if err := s.repo.Set(ctx, keyAIProvider, settings.Provider); err != nil {
			return fmt.Errorf("set provider: %w", err)
		}
	}
	if err := s.setAPIKey(ctx, keyAIAPIKey, settings.APIKey); err != nil {
		return fmt.Errorf("set api key: %w", err)
	}
	if err := s.repo.Set(ctx, keyAIBaseURL, settings.BaseURL); err != nil {
		return fmt.Errorf("set base url: %w", err)
	}
	if err := s.repo.Set(ctx, keyAIModel, settings.Model); err != nil {
		return fmt.Errorf("set model: %w", err)
	}
	thinkingVal := "false"
	if settings.Thinking {
		thinkingVal = "true"
	}
	if err := s.repo.Set(ctx, keyAIThinking, thinkingVal); err != nil {
		return fmt.Errorf("set thinking: %w", err)
	}
	if err := s.repo.Set(ctx, keyAIThinkingBudget, fmt.Sprintf("%d", settings.ThinkingBudget)); err != nil {
		return fmt.Errorf("set thinking budget: %w", err)
	}
	if err := s.repo.Set(ctx, keyAIReasoningEffort, settings.ReasoningEffort); err != nil {
		return fmt.Errorf("set reasoning effort: %w", err)
	}
	return nil
}

// AIConfig resolves the stored AI configuration with the real key.
func (s *settingsService) AIConfig(ctx context.Context) (ai.Config, error) {
	settings, err := s.GetAISettings(ctx)
	if err != nil {
		return ai.Config{}, err
	}
	apiKey, err := s.getString(ctx, keyAIAPIKey)
	if err != nil {
		return ai.Config{}, fmt.Errorf("get stored api key: %w", err)
	}
	return ai.Config{
		Provider:        settings.Provider,
		APIKey:          apiKey,
		BaseURL:         settings.BaseURL,
		Model:           settings.Model,
		Thinking:        settings.Thinking,
		ThinkingBudget:  settings.ThinkingBudget,
		ReasoningEffort: settings.ReasoningEffort,
	}, nil
}

// TestAI tests the AI connection with the given configuration.
func (s *settingsService) TestAI(ctx context.Context, provider, apiKey, baseURL, model string, thinking bool, thinkingBudget int, reasoningEffort string) (string, error) {
	// If apiKey looks like a masked key, try to get the stored key
	if isMaskedKey(apiKey) {
		storedKey, err := s.getString(ctx, keyAIAPIKey)
		if err != nil {
			return "", fmt.Errorf("get stored api key: %w", err)
		}
		apiKey = storedKey
	}

	cfg := ai.Config{
		Provider:        provider,
		APIKey:          apiKey,
		BaseURL:         baseURL,
		Model:           model,
		Thinking:        thinking,
		ThinkingBudget:  thinkingBudget,
		ReasoningEffort: reasoningEffort,
	}

	p, err := ai.NewProvider(cfg)
	if err != nil {
		return "", err
	}

	return p.Test(ctx)
}

func (s *settingsService) GetMarketSettings(ctx context.Context) (*MarketSettings, error) {
	baseURL, apiKey := s.MarketAPIConfig(ctx)
	return &MarketSettings{
		BaseURL: baseURL,
		APIKey:  maskAPIKey(apiKey),
	}, nil
}

func (s *settingsService) SetMarketSettings(ctx context.Context, settings *MarketSettings) error {
	if err := s.repo.Set(ctx, keyMarketBaseURL, settings.BaseURL); err != nil {
		return fmt.Errorf("set market base url: %w", err)
	}
	if err := s.setAPIKey(ctx, keyMarketAPIKey, settings.APIKey); err != nil {
		return fmt.Errorf("set market api key: %w", err)
	}
	return nil
}

// MarketAPIConfig resolves the market API endpoint, stored settings first,
// environment defaults second.
func (s *settingsService) MarketAPIConfig(ctx context.Context) (string, string) {
	baseURL := s.envMCPBaseURL
	apiKey := s.envMCPAPIKey
	if val, err := s.getString(ctx, keyMarketBaseURL); err == nil && val != "" {
		baseURL = val
	}
	if val, err := s.getString(ctx, keyMarketAPIKey); err == nil && val != "" {
		apiKey = val
	}
	return baseURL, apiKey
}

func (s *settingsService) GetProxySettings(ctx context.Context) (*ProxySettings, error) {
	settings := &ProxySettings{}
	if val, err := s.getString(ctx, keyProxyEnabled); err == nil && val == "true" {
		settings.Enabled = true
	}
	if val, err := s.getString(ctx, keyProxyURL); err == nil {
		settings.URL = val
	}
	return settings, nil
}

func (s *settingsService) SetProxySettings(ctx context.Context, settings *ProxySettings) error {
	enabledVal := "false"
	if settings.Enabled {
		enabledVal = "true"
	}
	if err := s.repo.Set(ctx, keyProxyEnabled, enabledVal); err != nil {
		return fmt.Errorf("set proxy enabled: %w", err)
	}
	if err := s.repo.Set(ctx, keyProxyURL, settings.URL); err != nil {
		return fmt.Errorf("set proxy url: %w", err)
	}
	return nil
}

// GetProxyURL returns the proxy URL when the proxy is enabled.
func (s *settingsService) GetProxyURL(ctx context.Context) string {
	settings, err := s.GetProxySettings(ctx)
	if err != nil || !settings.Enabled {
		return ""
	}
	return settings.URL
}

// TestProxy checks a proxy configuration without saving it.
func (s *settingsService) TestProxy(ctx context.Context, proxyURL string) error {
	factory := network.NewClientFactory(s)
	return factory.TestProxyWithConfig(ctx, proxyURL, "https://www.baidu.com")
}

func (s *settingsService) GetNotificationSettings(ctx context.Context) (*NotificationSettings, error) {
	settings := &NotificationSettings{
		ReminderTime: "20:00", // default
	}
	if val, err := s.getString(ctx, keyNotifyStudyReminder); err == nil && val == "true" {
		settings.StudyReminder = true
	}
	if val, err := s.getString(ctx, keyNotifyReminderTime); err == nil && val != "" {
		settings.ReminderTime = val
	}
	return settings, nil
}

func (s *settingsService) SetNotificationSettings(ctx context.Context, settings *NotificationSettings) error {
	reminderVal := "false"
	if settings.StudyReminder {
		reminderVal = "true"
	}
	if err := s.repo.Set(ctx, keyNotifyStudyReminder, reminderVal); err != nil {
		return fmt.Errorf("set study reminder: %w", err)
	}
	if err := s.repo.Set(ctx, keyNotifyReminderTime, settings.ReminderTime); err != nil {
		return fmt.Errorf("set reminder time: %w", err)
	}
	return nil
}

// maskAPIKey returns a masked version of the API key for display.
func maskAPIKey(apiKey string) string {
	if apiKey == "" {
		return ""
	}
	if len(apiKey) <= 8 {
		return "***"
	}
	// Find prefix (e.g., "sk-" for OpenAI)
	prefixEnd := 0
	for i, c := range apiKey {
		if c == '-' {
			prefixEnd = i + 1
			break
		}
		if i >= 4 {
			break
		}
	}
	prefix := apiKey[:prefixEnd]
	suffix := apiKey[len(apiKey)-3:]
	return prefix + "***" + suffix
}

// isMaskedKey checks if a string looks like a masked API key.
func isMaskedKey(key string) bool {
	if len(key) == 0 || len(key) >= 20 {
		return false
	}
	for i := 0; i <= len(key)-3; i++ {
		if key[i:i+3] == "***" {
			return true
		}
	}
	return false
}

// getString gets a plain string value from settings.
func (s *settingsService) getString(ctx context.Context, key string) (string, error) {
	setting, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if setting == nil {
		return "", nil
	}
	return setting.Value, nil
}

// getInt gets an integer value from settings.
func (s *settingsService) getInt(ctx context.Context, key string) (int, error) {
	val, err := s.getString(ctx, key)
	if err != nil || val == "" {
		return 0, err
	}
	var result int
	_, err = fmt.Sscanf(val, "%d", &result)
	return result, err
}

// setAPIKey sets an API key.
// If the value is empty or looks like a masked key, it keeps the existing key.
func (s *settingsService) setAPIKey(ctx context.Context, key, value string) error {
	if value == "" || isMaskedKey(value) {
		return nil
	}
	return s.repo.Set(ctx, key, value)
}
