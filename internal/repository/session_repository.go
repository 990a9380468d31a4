package repository

import (
	"context"
	"time"

	"finedu/backend/internal/model"
)

type SessionRepository interface {
	Create(ctx context.Context, session model.Session) error
	GetByID(ctx context.Context, id string) (model.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID int64) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type sessionRepository struct {
	db dbtx
}

func NewSessionRepository(db dbtx) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session model.Session) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO sessions (id, user_id, expires_at, created_at) VALUES (?, ?, ?, ?)`,
		session.ID,
		session.UserID,
		formatTime(session.ExpiresAt),
		formatTime(session.CreatedAt),
	)
	return err
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (model.Session, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, user_id, expires_at, created_at FROM sessions WHERE id = ?`,
		id,
	)

	var s model.Session
	var expiresAt, createdAt string
	if err := row.Scan(&s.ID, &s.UserID, &expiresAt, &createdAt); err != nil {
		return model.Session{}, err
	}
	s.ExpiresAt, _ = parseTime(expiresAt)
	s.CreatedAt, _ = parseTime(createdAt)
	return s, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	return err
}

func (r *sessionRepository) DeleteByUser(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = ?`, userID)
	return err
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < ?`, formatTime(now))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
