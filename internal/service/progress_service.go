package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"finedu/backend/internal/model"
	"finedu/backend/internal/repository"
)

// ProgressOverview is the headline numbers for a user's learning record.
type ProgressOverview struct {
	TotalLessons   int
	Completed      int
	InProgress     int
	CompletionRate float64
	AvgScore       float64
	LearningDays   int
}

// ProgressService tracks lesson progress and user activity.
type ProgressService interface {
	List(ctx context.Context, userID int64) ([]model.LearningProgress, error)
	// Update upserts one lesson record. Nil status/score leave the stored
	// values untouched; scores are clamped to [0, 100].
	Update(ctx context.Context, userID int64, moduleName, lessonName string, status *string, score *float64) (model.LearningProgress, error)
	Overview(ctx context.Context, userID int64) (ProgressOverview, error)
	ModuleStats(ctx context.Context, userID int64) ([]repository.ModuleStats, error)
	LogActivity(ctx context.Context, userID int64, activityType string, payload any) error
	DailyActivity(ctx context.Context, userID int64, days int) ([]repository.DailyActivity, error)
	// Report renders a plain-text learning report.
	Report(ctx context.Context, userID int64) (string, error)
	// Suggestions returns rule-based study advice lines.
	Suggestions(ctx context.Context, userID int64) ([]string, error)
}

type progressService struct {
	progress repository.ProgressRepository
	activity repository.ActivityRepository
	users    repository.UserRepository
}

func NewProgressService(progress repository.ProgressRepository, activity repository.ActivityRepository, users repository.UserRepository) ProgressService {
	return &progressService{progress: progress, activity: activity, users: users}
}

func (s *progressService) List(ctx context.Context, userID int64) ([]model.LearningProgress, error) {
	return s.progress.ListByUser(ctx, userID)
}

func (s *progressService) Update(ctx context.Context, userID int64, moduleName, lessonName string, status *string, score *float64) (model.LearningProgress, error) {
	moduleName = strings.TrimSpace(moduleName)
	lessonName = strings.TrimSpace(lessonName)
	if moduleName == "" || lessonName == "" {
		return model.LearningProgress{}, ErrInvalid
	}
	if status != nil && !model.ValidProgressStatus(*status) {
		return model.LearningProgress{}, ErrInvalid
	}
	if score != nil {
		clamped := *score
		if clamped < 0 {
			clamped = 0
		}
		if clamped > 100 {
			clamped = 100
		}
		score = &clamped
	}

	if err := s.progress.Upsert(ctx, userID, moduleName, lessonName, status, score); err != nil {
		return model.LearningProgress{}, fmt.Errorf("upsert progress: %w", err)
	}

	_ = s.LogActivity(ctx, userID, "progress_update", map[string]any{
		"module": moduleName,
		"lesson": lessonName,
	})

	return s.progress.Get(ctx, userID, moduleName, lessonName)
}

func (s *progressService) Overview(ctx context.Context, userID int64) (ProgressOverview, error) {
	list, err := s.progress.ListByUser(ctx, userID)
	if err != nil {
		return ProgressOverview{}, err
	}

	var overview ProgressOverview
	overview.TotalLessons = len(list)
	for _, p := range list {
		switch p.Status {
		case model.StatusCompleted:
			overview.Completed++
		case model.StatusInProgress:
			overview.InProgress++
		}
	}
	if overview.TotalLessons > 0 {
		overview.CompletionRate = float64(overview.Completed) / float64(overview.TotalLessons)
	}

	avg, err := s.progress.AvgScore(ctx, userID)
	if err != nil {
		return ProgressOverview{}, err
	}
	overview.AvgScore = avg

	days, err := s.activity.ActiveDays(ctx, userID, 30)
	if err != nil {
		return ProgressOverview{}, err
	}
	overview.LearningDays = days

	return overview, nil
}

func (s *progressService) ModuleStats(ctx context.Context, userID int64) ([]repository.ModuleStats, error) {
	return s.progress.ModuleStats(ctx, userID)
}

func (s *progressService) LogActivity(ctx context.Context, userID int64, activityType string, payload any) error {
	if activityType == "" {
		return ErrInvalid
	}
	var data *string
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal activity payload: %w", err)
		}
		str := string(raw)
		data = &str
	}
	return s.activity.Log(ctx, userID, activityType, data)
}

func (s *progressService) DailyActivity(ctx context.Context, userID int64, days int) ([]repository.DailyActivity, error) {
	if days <= 0 {
		days = 7
	}
	return s.activity.DailyStats(ctx, userID, days)
}

func (s *progressService) Report(ctx context.Context, userID int64) (string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}

	overview, err := s.Overview(ctx, userID)
	if err != nil {
		return "", err
	}
	stats, err := s.progress.ModuleStats(ctx, userID)
	if err != nil {
		return "", err
	}
	suggestions, err := s.Suggestions(ctx, userID)
	if err != nil {
		return "", err
	}

	displayName := user.Username
	if user.FullName != nil && *user.FullName != "" {
		displayName = *user.FullName
	}

	var b strings.Builder
	fmt.Fprintf(&b, "学习报告 - %s\n", displayName)
	fmt.Fprintf(&b, "生成时间: %s\n\n", time.Now().Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "总体进度: 完成 %d/%d 课 (%.0f%%)\n", overview.Completed, overview.TotalLessons, overview.CompletionRate*100)
	fmt.Fprintf(&b, "平均得分: %.1f\n", overview.AvgScore)
	fmt.Fprintf(&b, "近30天学习天数: %d\n\n", overview.LearningDays)

	if len(stats) > 0 {
		b.WriteString("各模块进度:\n")
		for _, m := range stats {
			fmt.Fprintf(&b, "  %s: %d/%d 完成, 平均 %.1f 分\n", m.ModuleName, m.Completed, m.Total, m.AvgScore)
		}
		b.WriteString("\n")
	}

	if len(suggestions) > 0 {
		b.WriteString("学习建议:\n")
		for _, sg := range suggestions {
			fmt.Fprintf(&b, "  - %s\n", sg)
		}
	}

	return b.String(), nil
}

func (s *progressService) Suggestions(ctx context.Context, userID int64) ([]string, error) {
	avg, err := s.progress.AvgScore(ctx, userID)
	if err != nil {
		return nil, err
	}
	completed, err := s.progress.CountByStatus(ctx, userID, model.StatusCompleted)
	if err != nil {
		return nil, err
	}
	activeDays, err := s.activity.ActiveDays(ctx, userID, 7)
	if err != nil {
		return nil, err
	}

	var suggestions []string

	switch {
	case completed == 0:
		suggestions = append(suggestions, "还没有完成任何课程, 建议从基础模块开始学习")
	case completed < 5:
		suggestions = append(suggestions, "刚刚起步, 保持节奏, 每周完成 2-3 课")
	case completed < 20:
		suggestions = append(suggestions, "进度不错, 可以开始尝试实战案例练习")
	default:
		suggestions = append(suggestions, "课程完成度很高, 建议复盘错题并挑战进阶内容")
	}

	if avg > 0 {
		switch {
		case avg < 60:
			suggestions = append(suggestions, "平均得分偏低, 建议复习已学内容后再做练习")
		case avg < 80:
			suggestions = append(suggestions, "成绩良好, 针对薄弱模块多做练习可以更上一层")
		default:
			suggestions = append(suggestions, "成绩优秀, 可以尝试组合构建等综合性练习")
		}
	}

	if activeDays < 3 {
		suggestions = append(suggestions, "最近一周学习天数较少, 建议保持每周至少 3 天的学习频率")
	}

	return suggestions, nil
}
