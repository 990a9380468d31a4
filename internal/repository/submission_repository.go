package repository

import (
	"context"
	"database/sql"
	"time"

	"finedu/backend/internal/model"
	"finedu/backend/internal/snowflake"
)

type SubmissionRepository interface {
	Create(ctx context.Context, sub model.ExerciseSubmission) (model.ExerciseSubmission, error)
	ListByUser(ctx context.Context, userID int64, caseID *string) ([]model.ExerciseSubmission, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
}

type submissionRepository struct {
	db dbtx
}

func NewSubmissionRepository(db dbtx) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(ctx context.Context, sub model.ExerciseSubmission) (model.ExerciseSubmission, error) {
	sub.ID = snowflake.NextID()
	sub.SubmittedAt = time.Now().UTC()

	var isCorrect any
	if sub.IsCorrect != nil {
		if *sub.IsCorrect {
			isCorrect = 1
		} else {
			isCorrect = 0
		}
	}

	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO exercise_submissions (id, user_id, case_id, question_id, answer, is_correct, score, submitted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.UserID, sub.CaseID, sub.QuestionID, sub.Answer, isCorrect, sub.Score, formatTime(sub.SubmittedAt),
	)
	if err != nil {
		return model.ExerciseSubmission{}, err
	}
	return sub, nil
}

func (r *submissionRepository) ListByUser(ctx context.Context, userID int64, caseID *string) ([]model.ExerciseSubmission, error) {
	query := `SELECT id, user_id, case_id, question_id, answer, is_correct, score, submitted_at
	          FROM exercise_submissions WHERE user_id = ?`
	args := []any{userID}
	if caseID != nil {
		query += ` AND case_id = ?`
		args = append(args, *caseID)
	}
	query += ` ORDER BY submitted_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []model.ExerciseSubmission
	for rows.Next() {
		var s model.ExerciseSubmission
		var questionID sql.NullString
		var isCorrect sql.NullInt64
		var score sql.NullFloat64
		var submittedAt string
		if err := rows.Scan(&s.ID, &s.UserID, &s.CaseID, &questionID, &s.Answer, &isCorrect, &score, &submittedAt); err != nil {
			return nil, err
		}
		if questionID.Valid {
			s.QuestionID = &questionID.String
		}
		if isCorrect.Valid {
			b := isCorrect.Int64 == 1
			s.IsCorrect = &b
		}
		if score.Valid {
			s.Score = &score.Float64
		}
		s.SubmittedAt, _ = parseTime(submittedAt)
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

func (r *submissionRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM exercise_submissions WHERE user_id = ?`,
		userID,
	).Scan(&count)
	return count, err
}
