package model

import "time"

// StudyNote is a free-form note attached to a module/lesson.
type StudyNote struct {
	ID          int64
	UserID      int64
	ModuleName  string
	LessonName  *string
	NoteContent string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
