package repository

import (
	"context"
	"database/sql"
	"time"

	"finedu/backend/internal/model"
	"finedu/backend/internal/snowflake"
)

// DailyActivity is the number of actions recorded on one calendar day.
type DailyActivity struct {
	Date  string
	Count int
}

type ActivityRepository interface {
	Log(ctx context.Context, userID int64, activityType string, activityData *string) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]model.ActivityLog, error)
	DailyStats(ctx context.Context, userID int64, days int) ([]DailyActivity, error)
	ActiveDays(ctx context.Context, userID int64, days int) (int, error)
}

type activityRepository struct {
	db dbtx
}

func NewActivityRepository(db dbtx) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Log(ctx context.Context, userID int64, activityType string, activityData *string) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO activity_logs (id, user_id, activity_type, activity_data, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		snowflake.NextID(),
		userID,
		activityType,
		activityData,
		formatTime(time.Now()),
	)
	return err
}

func (r *activityRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]model.ActivityLog, error) {
	query := `SELECT id, user_id, activity_type, activity_data, created_at
	          FROM activity_logs WHERE user_id = ? ORDER BY created_at DESC`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []model.ActivityLog
	for rows.Next() {
		var l model.ActivityLog
		var data sql.NullString
		var createdAt string
		if err := rows.Scan(&l.ID, &l.UserID, &l.ActivityType, &data, &createdAt); err != nil {
			return nil, err
		}
		if data.Valid {
			l.ActivityData = &data.String
		}
		l.CreatedAt, _ = parseTime(createdAt)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (r *activityRepository) DailyStats(ctx context.Context, userID int64, days int) ([]DailyActivity, error) {
	cutoff := formatTime(time.Now().AddDate(0, 0, -days))
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT DATE(created_at) AS day, COUNT(*) AS count
		 FROM activity_logs
		 WHERE user_id = ? AND created_at >= ?
		 GROUP BY DATE(created_at)
		 ORDER BY day`,
		userID, cutoff,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []DailyActivity
	for rows.Next() {
		var d DailyActivity
		if err := rows.Scan(&d.Date, &d.Count); err != nil {
			return nil, err
		}
		stats = append(stats, d)
	}
	return stats, rows.Err()
}

func (r *activityRepository) ActiveDays(ctx context.Context, userID int64, days int) (int, error) {
	cutoff := formatTime(time.Now().AddDate(0, 0, -days))
	var count int
	err := r.db.QueryRowContext(
		ctx,
		`SELECT COUNT(DISTINCT DATE(created_at)) FROM activity_logs
		 WHERE user_id = ? AND created_at >= ?`,
		userID, cutoff,
	).Scan(&count)
	return count, err
}
