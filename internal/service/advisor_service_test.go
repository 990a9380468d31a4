package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"finedu/backend/internal/repository"
	"finedu/backend/internal/repository/testutil"
	"finedu/backend/internal/service"
	"finedu/backend/internal/service/ai"
)

func newAdvisorService(t *testing.T) service.AdvisorService {
	t.Helper()
	db := testutil.NewTestDB(t)
	settings := service.NewSettingsService(repository.NewSettingsRepository(db), "", "")
	progress := service.NewProgressService(
		repository.NewProgressRepository(db),
		repository.NewActivityRepository(db),
		repository.NewUserRepository(db),
	)
	cases := service.NewCaseService(repository.NewSubmissionRepository(db))
	return service.NewAdvisorService(settings, progress, cases, ai.NewRateLimiter(ai.DefaultRateLimit))
}

// Without a stored API key the advisor must fail with the configuration
// sentinel, not an upstream error.
func TestAdvisorService_NotConfigured(t *testing.T) {
	svc := newAdvisorService(t)
	ctx := context.Background()

	_, err := svc.Advise(ctx, 1)
	require.ErrorIs(t, err, service.ErrAINotConfigured)

	_, err = svc.ReviewSubmission(ctx, "1", "我的答案")
	require.ErrorIs(t, err, service.ErrAINotConfigured)
}

func TestAdvisorService_ReviewValidation(t *testing.T) {
	svc := newAdvisorService(t)
	ctx := context.Background()

	_, err := svc.ReviewSubmission(ctx, "99", "答案")
	require.ErrorIs(t, err, service.ErrNotFound)

	_, err = svc.ReviewSubmission(ctx, "1", "")
	require.ErrorIs(t, err, service.ErrInvalid)
}
