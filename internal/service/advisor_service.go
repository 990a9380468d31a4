package service

import (
	"context"
	"errors"
	"fmt"

	"finedu/backend/internal/logger"
	"finedu/backend/internal/service/ai"
)

// ErrAINotConfigured is returned when no usable AI provider is configured.
var ErrAINotConfigured = errors.New("AI provider is not configured")

// AdvisorService generates AI study advice and reviews exercise submissions.
type AdvisorService interface {
	// Advise returns personalized study advice built from the user's
	// learning record.
	Advise(ctx context.Context, userID int64) (string, error)
	// ReviewSubmission grades one exercise answer for a teaching case.
	ReviewSubmission(ctx context.Context, caseID, answer string) (string, error)
}

type advisorService struct {
	settings    SettingsService
	progress    ProgressService
	cases       CaseService
	rateLimiter *ai.RateLimiter
}

func NewAdvisorService(settings SettingsService, progress ProgressService, cases CaseService, rateLimiter *ai.RateLimiter) AdvisorService {
	return &advisorService{
		settings:    settings,
		progress:    progress,
		cases:       cases,
		rateLimiter: rateLimiter,
	}
}

// provider builds an AI provider from the stored settings.
func (s *advisorService) provider(ctx context.Context) (ai.Provider, error) {
	cfg, err := s.settings.AIConfig(ctx)
	if err != nil {
		return nil, err
	}
	p, err := ai.NewProvider(cfg)
	if err != nil {
		if errors.Is(err, ai.ErrMissingAPIKey) || errors.Is(err, ai.ErrMissingModel) || errors.Is(err, ai.ErrMissingBaseURL) {
			return nil, ErrAINotConfigured
		}
		return nil, err
	}
	return p, nil
}

func (s *advisorService) Advise(ctx context.Context, userID int64) (string, error) {
	p, err := s.provider(ctx)
	if err != nil {
		return "", err
	}

	report, err := s.progress.Report(ctx, userID)
	if err != nil {
		return "", err
	}

	if err := s.rateLimiter.Wait(ctx); err != nil {
		return "", err
	}

	advice, err := p.Complete(ctx, ai.GetAdvicePrompt(), ai.WrapInput(report))
	if err != nil {
		return "", fmt.Errorf("ai completion: %w", err)
	}

	logger.Info("study advice generated",
		"module", "advisor", "action", "advise", "resource", "advice", "result", "ok",
		"provider", p.Name())
	return advice, nil
}

func (s *advisorService) ReviewSubmission(ctx context.Context, caseID, answer string) (string, error) {
	teachingCase, err := s.cases.GetCase(caseID)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return "", ErrInvalid
	}

	p, err := s.provider(ctx)
	if err != nil {
		return "", err
	}

	if err := s.rateLimiter.Wait(ctx); err != nil {
		return "", err
	}

	review, err := p.Complete(ctx, ai.GetReviewPrompt(teachingCase.Title), ai.WrapInput(answer))
	if err != nil {
		return "", fmt.Errorf("ai completion: %w", err)
	}

	logger.Info("submission reviewed",
		"module", "advisor", "action", "review", "resource", "submission", "result", "ok",
		"provider", p.Name(), "case_id", caseID)
	return review, nil
}
