package model

import "time"

// Progress statuses
const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// ValidProgressStatus reports whether status is a known progress status.
func ValidProgressStatus(status string) bool {
	switch status {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// LearningProgress tracks a user's state for one lesson within a module.
type LearningProgress struct {
	ID          int64
	UserID      int64
	ModuleName  string
	LessonName  string
	Status      string
	Score       *float64
	CompletedAt *time.Time
	UpdatedAt   time.Time
}

// ActivityLog records a single user action with an optional JSON payload.
type ActivityLog struct {
	ID           int64
	UserID       int64
	ActivityType string
	ActivityData *string
	CreatedAt    time.Time
}
