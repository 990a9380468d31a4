package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"finedu/backend/internal/model"
	"finedu/backend/internal/repository"
	"finedu/backend/internal/repository/testutil"
	"finedu/backend/internal/service"
)

func newProgressService(t *testing.T) (service.ProgressService, int64) {
	t.Helper()
	db := testutil.NewTestDB(t)
	svc := service.NewProgressService(
		repository.NewProgressRepository(db),
		repository.NewActivityRepository(db),
		repository.NewUserRepository(db),
	)
	fullName := "测试学生"
	userID := testutil.SeedUser(t, db, model.User{FullName: &fullName})
	return svc, userID
}

func TestProgressService_UpdateValidation(t *testing.T) {
	svc, userID := newProgressService(t)
	ctx := context.Background()

	status := model.StatusCompleted

	_, err := svc.Update(ctx, userID, "", "第一课", &status, nil)
	require.ErrorIs(t, err, service.ErrInvalid)

	_, err = svc.Update(ctx, userID, "基金投资入门", "  ", &status, nil)
	require.ErrorIs(t, err, service.ErrInvalid)

	bad := "finished"
	_, err = svc.Update(ctx, userID, "基金投资入门", "第一课", &bad, nil)
	require.ErrorIs(t, err, service.ErrInvalid)
}

func TestProgressService_UpdateClampsScore(t *testing.T) {
	svc, userID := newProgressService(t)
	ctx := context.Background()

	status := model.StatusCompleted
	score := 120.0
	p, err := svc.Update(ctx, userID, "基金投资入门", "第一课", &status, &score)
	require.NoError(t, err)
	require.NotNil(t, p.Score)
	require.Equal(t, 100.0, *p.Score)

	negative := -5.0
	p, err = svc.Update(ctx, userID, "基金投资入门", "第二课", &status, &negative)
	require.NoError(t, err)
	require.Equal(t, 0.0, *p.Score)
}

func TestProgressService_Overview(t *testing.T) {
	svc, userID := newProgressService(t)
	ctx := context.Background()

	completed := model.StatusCompleted
	inProgress := model.StatusInProgress
	score := 80.0

	_, err := svc.Update(ctx, userID, "m1", "l1", &completed, &score)
	require.NoError(t, err)
	_, err = svc.Update(ctx, userID, "m1", "l2", &completed, nil)
	require.NoError(t, err)
	_, err = svc.Update(ctx, userID, "m2", "l1", &inProgress, nil)
	require.NoError(t, err)
	_, err = svc.Update(ctx, userID, "m2", "l2", nil, nil)
	require.NoError(t, err)

	overview, err := svc.Overview(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 4, overview.TotalLessons)
	require.Equal(t, 2, overview.Completed)
	require.Equal(t, 1, overview.InProgress)
	require.InDelta(t, 0.5, overview.CompletionRate, 1e-9)
	require.InDelta(t, 80.0, overview.AvgScore, 1e-9)
	// Updates above logged activity for today
	require.GreaterOrEqual(t, overview.LearningDays, 1)
}

func TestProgressService_Suggestions(t *testing.T) {
	svc, userID := newProgressService(t)
	ctx := context.Background()

	// No progress at all: point to the basics
	suggestions, err := svc.Suggestions(ctx, userID)
	require.NoError(t, err)
	require.NotEmpty(t, suggestions)
	require.Contains(t, suggestions[0], "基础模块")

	completed := model.StatusCompleted
	low := 50.0
	for _, lesson := range []string{"l1", "l2", "l3", "l4", "l5", "l6"} {
		_, err := svc.Update(ctx, userID, "m1", lesson, &completed, &low)
		require.NoError(t, err)
	}

	suggestions, err = svc.Suggestions(ctx, userID)
	require.NoError(t, err)
	require.Contains(t, suggestions[0], "实战案例")

	var hasLowScoreHint bool
	for _, s := range suggestions {
		if strings.Contains(s, "平均得分偏低") {
			hasLowScoreHint = true
		}
	}
	require.True(t, hasLowScoreHint)
}

func TestProgressService_Report(t *testing.T) {
	svc, userID := newProgressService(t)
	ctx := context.Background()

	completed := model.StatusCompleted
	score := 90.0
	_, err := svc.Update(ctx, userID, "基金投资入门", "第一课", &completed, &score)
	require.NoError(t, err)

	report, err := svc.Report(ctx, userID)
	require.NoError(t, err)
	require.Contains(t, report, "学习报告 - 测试学生")
	require.Contains(t, report, "完成 1/1 课")
	require.Contains(t, report, "基金投资入门")
	require.Contains(t, report, "学习建议")
}

func TestProgressService_Report_UnknownUser(t *testing.T) {
	svc, _ := newProgressService(t)

	_, err := svc.Report(context.Background(), 999999)
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestProgressService_Activity(t *testing.T) {
	svc, userID := newProgressService(t)
	ctx := context.Background()

	err := svc.LogActivity(ctx, userID, "", nil)
	require.ErrorIs(t, err, service.ErrInvalid)

	require.NoError(t, svc.LogActivity(ctx, userID, "lesson_view", map[string]any{"lesson": "第一课"}))
	require.NoError(t, svc.LogActivity(ctx, userID, "lesson_view", nil))

	// Non-positive day windows fall back to a week
	days, err := svc.DailyActivity(ctx, userID, 0)
	require.NoError(t, err)
	require.NotEmpty(t, days)
	require.Equal(t, 2, days[0].Count)
}
