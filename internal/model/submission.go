package model

import "time"

// ExerciseSubmission is an answer submitted for a teaching case exercise.
type ExerciseSubmission struct {
	ID          int64
	UserID      int64
	CaseID      string
	QuestionID  *string
	Answer      string
	IsCorrect   *bool
	Score       *float64
	SubmittedAt time.Time
}
