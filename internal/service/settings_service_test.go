package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"finedu/backend/internal/repository"
	"finedu/backend/internal/repository/testutil"
	"finedu/backend/internal/service"
)

func newSettingsService(t *testing.T) service.SettingsService {
	t.Helper()
	db := testutil.NewTestDB(t)
	return service.NewSettingsService(repository.NewSettingsRepository(db), "https://env.example.com/mcp", "env-key-12345")
}

func TestSettingsService_AIDefaults(t *testing.T) {
	svc := newSettingsService(t)

	settings, err := svc.GetAISettings(context.Background())
	require.NoError(t, err)
	require.Equal(t, "openai", settings.Provider)
	require.Equal(t, 10000, settings.ThinkingBudget)
	require.Equal(t, "medium", settings.ReasoningEffort)
	require.Empty(t, settings.APIKey)
}

func TestSettingsService_AIRoundtripMasksKey(t *testing.T) {
	svc := newSettingsService(t)
	ctx := context.Background()

	err := svc.SetAISettings(ctx, &service.AISettings{
		Provider: "anthropic",
		APIKey:   "sk-ant-secret-value-123",
		Model:    "claude-sonnet-4-5",
		Thinking: true,
	})
	require.NoError(t, err)

	settings, err := svc.GetAISettings(ctx)
	require.NoError(t, err)
	require.Equal(t, "anthropic", settings.Provider)
	require.True(t, settings.Thinking)
	require.NotEqual(t, "sk-ant-secret-value-123", settings.APIKey)
	require.Contains(t, settings.APIKey, "***")

	// The real key is still available internally
	cfg, err := svc.AIConfig(ctx)
	require.NoError(t, err)
	require.Equal(t, "sk-ant-secret-value-123", cfg.APIKey)

	// Saving the masked key back must not clobber the stored one
	settings.APIKey = "sk-***123"
	require.NoError(t, svc.SetAISettings(ctx, settings))
	cfg, err = svc.AIConfig(ctx)
	require.NoError(t, err)
	require.Equal(t, "sk-ant-secret-value-123", cfg.APIKey)
}

// A stored empty reasoning effort is a deliberate override (Compatible
// Budget mode) and must not fall back to the default.
func TestSettingsService_AIReasoningEffortEmptyOverride(t *testing.T) {
	svc := newSettingsService(t)
	ctx := context.Background()

	err := svc.SetAISettings(ctx, &service.AISettings{
		Provider:        "compatible",
		ReasoningEffort: "",
	})
	require.NoError(t, err)

	settings, err := svc.GetAISettings(ctx)
	require.NoError(t, err)
	require.Empty(t, settings.ReasoningEffort)
}

func TestSettingsService_MarketConfigFallsBackToEnv(t *testing.T) {
	svc := newSettingsService(t)
	ctx := context.Background()

	baseURL, apiKey := svc.MarketAPIConfig(ctx)
	require.Equal(t, "https://env.example.com/mcp", baseURL)
	require.Equal(t, "env-key-12345", apiKey)

	err := svc.SetMarketSettings(ctx, &service.MarketSettings{
		BaseURL: "https://override.example.com",
		APIKey:  "stored-key-67890",
	})
	require.NoError(t, err)

	baseURL, apiKey = svc.MarketAPIConfig(ctx)
	require.Equal(t, "https://override.example.com", baseURL)
	require.Equal(t, "stored-key-67890", apiKey)

	masked, err := svc.GetMarketSettings(ctx)
	require.NoError(t, err)
	require.Contains(t, masked.APIKey, "***")
}

func TestSettingsService_ProxyURL(t *testing.T) {
	svc := newSettingsService(t)
	ctx := context.Background()

	require.Empty(t, svc.GetProxyURL(ctx))

	err := svc.SetProxySettings(ctx, &service.ProxySettings{Enabled: false, URL: "socks5://127.0.0.1:1080"})
	require.NoError(t, err)
	// Disabled proxy yields no URL
	require.Empty(t, svc.GetProxyURL(ctx))

	err = svc.SetProxySettings(ctx, &service.ProxySettings{Enabled: true, URL: "socks5://127.0.0.1:1080"})
	require.NoError(t, err)
	require.Equal(t, "socks5://127.0.0.1:1080", svc.GetProxyURL(ctx))
}

func TestSettingsService_Notifications(t *testing.T) {
	svc := newSettingsService(t)
	ctx := context.Background()

	settings, err := svc.GetNotificationSettings(ctx)
	require.NoError(t, err)
	require.False(t, settings.StudyReminder)
	require.Equal(t, "20:00", settings.ReminderTime)

	err = svc.SetNotificationSettings(ctx, &service.NotificationSettings{StudyReminder: true, ReminderTime: "08:30"})
	require.NoError(t, err)

	settings, err = svc.GetNotificationSettings(ctx)
	require.NoError(t, err)
	require.True(t, settings.StudyReminder)
	require.Equal(t, "08:30", settings.ReminderTime)
}
