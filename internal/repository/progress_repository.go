package repository

import (
	"context"
	"database/sql"
	"time"

	"finedu/backend/internal/model"
	"finedu/backend/internal/snowflake"
)

// ModuleStats is a per-module rollup of lesson progress.
type ModuleStats struct {
	ModuleName string
	Total      int
	Completed  int
	AvgScore   float64
}

type ProgressRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]model.LearningProgress, error)
	Get(ctx context.Context, userID int64, moduleName, lessonName string) (model.LearningProgress, error)
	// Upsert inserts or updates a lesson record. Nil status/score keep the
	// stored values (COALESCE on conflict).
	Upsert(ctx context.Context, userID int64, moduleName, lessonName string, status *string, score *float64) error
	ModuleStats(ctx context.Context, userID int64) ([]ModuleStats, error)
	CountByStatus(ctx context.Context, userID int64, status string) (int, error)
	AvgScore(ctx context.Context, userID int64) (float64, error)
}

type progressRepository struct {
	db dbtx
}

func NewProgressRepository(db dbtx) ProgressRepository {
	return &progressRepository{db: db}
}

const progressColumns = `id, user_id, module_name, lesson_name, status, score, completed_at, updated_at`

func (r *progressRepository) ListByUser(ctx context.Context, userID int64) ([]model.LearningProgress, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT `+progressColumns+` FROM learning_progress WHERE user_id = ? ORDER BY module_name, lesson_name`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.LearningProgress
	for rows.Next() {
		p, err := scanProgressRows(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *progressRepository) Get(ctx context.Context, userID int64, moduleName, lessonName string) (model.LearningProgress, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT `+progressColumns+` FROM learning_progress
		 WHERE user_id = ? AND module_name = ? AND lesson_name = ?`,
		userID, moduleName, lessonName,
	)

	var p model.LearningProgress
	var score sql.NullFloat64
	var completedAt sql.NullString
	var updatedAt string
	err := row.Scan(&p.ID, &p.UserID, &p.ModuleName, &p.LessonName, &p.Status, &score, &completedAt, &updatedAt)
	if err != nil {
		return model.LearningProgress{}, err
	}
	if score.Valid {
		p.Score = &score.Float64
	}
	if completedAt.Valid {
		p.CompletedAt = parseTimePtr(completedAt.String)
	}
	p.UpdatedAt, _ = parseTime(updatedAt)
	return p, nil
}

func (r *progressRepository) Upsert(ctx context.Context, userID int64, moduleName, lessonName string, status *string, score *float64) error {
	id := snowflake.NextID()
	now := formatTime(time.Now())

	insertStatus := model.StatusNotStarted
	if status != nil {
		insertStatus = *status
	}

	var completedAt any
	if status != nil && *status == model.StatusCompleted {
		completedAt = now
	}

	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO learning_progress (id, user_id, module_name, lesson_name, status, score, completed_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id, module_name, lesson_name) DO UPDATE SET
		   status = COALESCE(?, status),
		   score = COALESCE(?, score),
		   completed_at = COALESCE(?, completed_at),
		   updated_at = excluded.updated_at`,
		id, userID, moduleName, lessonName, insertStatus, score, completedAt, now,
		status, score, completedAt,
	)
	return err
}

func (r *progressRepository) ModuleStats(ctx context.Context, userID int64) ([]ModuleStats, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT module_name,
		        COUNT(*) AS total,
		        SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END) AS completed,
		        COALESCE(AVG(score), 0) AS avg_score
		 FROM learning_progress
		 WHERE user_id = ?
		 GROUP BY module_name
		 ORDER BY module_name`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []ModuleStats
	for rows.Next() {
		var s ModuleStats
		if err := rows.Scan(&s.ModuleName, &s.Total, &s.Completed, &s.AvgScore); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *progressRepository) CountByStatus(ctx context.Context, userID int64, status string) (int, error) {
	var count int
	err := r.db.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM learning_progress WHERE user_id = ? AND status = ?`,
		userID, status,
	).Scan(&count)
	return count, err
}

func (r *progressRepository) AvgScore(ctx context.Context, userID int64) (float64, error) {
	var avg sql.NullFloat64
	err := r.db.QueryRowContext(
		ctx,
		`SELECT AVG(score) FROM learning_progress WHERE user_id = ? AND score IS NOT NULL`,
		userID,
	).Scan(&avg)
	if err != nil {
		return 0, err
	}
	return avg.Float64, nil
}

func scanProgressRows(rows *sql.Rows) (model.LearningProgress, error) {
	var p model.LearningProgress
	var score sql.NullFloat64
	var completedAt sql.NullString
	var updatedAt string

	err := rows.Scan(&p.ID, &p.UserID, &p.ModuleName, &p.LessonName, &p.Status, &score, &completedAt, &updatedAt)
	if err != nil {
		return model.LearningProgress{}, err
	}
	if score.Valid {
		p.Score = &score.Float64
	}
	if completedAt.Valid {
		p.CompletedAt = parseTimePtr(completedAt.String)
	}
	p.UpdatedAt, _ = parseTime(updatedAt)
	return p, nil
}
