package repository

import (
	"context"
	"database/sql"
	"time"

	"finedu/backend/internal/model"
	"finedu/backend/internal/snowflake"
)

type NoteRepository interface {
	// Save inserts a note, or updates the content when a note for the same
	// user/module/lesson already exists.
	Save(ctx context.Context, userID int64, moduleName string, lessonName *string, content string) (model.StudyNote, error)
	ListByUser(ctx context.Context, userID int64, moduleName *string) ([]model.StudyNote, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (model.StudyNote, error)
}

type noteRepository struct {
	db dbtx
}

func NewNoteRepository(db dbtx) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Save(ctx context.Context, userID int64, moduleName string, lessonName *string, content string) (model.StudyNote, error) {
	now := time.Now().UTC()

	// Match on the same user/module/lesson triple; NULL lesson matches NULL.
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id FROM study_notes
		 WHERE user_id = ? AND module_name = ? AND lesson_name IS ?`,
		userID, moduleName, lessonName,
	)
	var existingID int64
	err := row.Scan(&existingID)
	switch {
	case err == sql.ErrNoRows:
		id := snowflake.NextID()
		_, err := r.db.ExecContext(
			ctx,
			`INSERT INTO study_notes (id, user_id, module_name, lesson_name, note_content, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, userID, moduleName, lessonName, content, formatTime(now), formatTime(now),
		)
		if err != nil {
			return model.StudyNote{}, err
		}
		return model.StudyNote{
			ID: id, UserID: userID, ModuleName: moduleName, LessonName: lessonName,
			NoteContent: content, CreatedAt: now, UpdatedAt: now,
		}, nil
	case err != nil:
		return model.StudyNote{}, err
	}

	_, err = r.db.ExecContext(
		ctx,
		`UPDATE study_notes SET note_content = ?, updated_at = ? WHERE id = ?`,
		content, formatTime(now), existingID,
	)
	if err != nil {
		return model.StudyNote{}, err
	}
	return r.GetByID(ctx, existingID)
}

func (r *noteRepository) ListByUser(ctx context.Context, userID int64, moduleName *string) ([]model.StudyNote, error) {
	query := `SELECT id, user_id, module_name, lesson_name, note_content, created_at, updated_at
	          FROM study_notes WHERE user_id = ?`
	args := []any{userID}
	if moduleName != nil {
		query += ` AND module_name = ?`
		args = append(args, *moduleName)
	}
	query += ` ORDER BY updated_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []model.StudyNote
	for rows.Next() {
		var n model.StudyNote
		var lessonName sql.NullString
		var createdAt, updatedAt string
		if err := rows.Scan(&n.ID, &n.UserID, &n.ModuleName, &lessonName, &n.NoteContent, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		if lessonName.Valid {
			n.LessonName = &lessonName.String
		}
		n.CreatedAt, _ = parseTime(createdAt)
		n.UpdatedAt, _ = parseTime(updatedAt)
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *noteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM study_notes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *noteRepository) GetByID(ctx context.Context, id int64) (model.StudyNote, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, user_id, module_name, lesson_name, note_content, created_at, updated_at
		 FROM study_notes WHERE id = ?`,
		id,
	)

	var n model.StudyNote
	var lessonName sql.NullString
	var createdAt, updatedAt string
	if err := row.Scan(&n.ID, &n.UserID, &n.ModuleName, &lessonName, &n.NoteContent, &createdAt, &updatedAt); err != nil {
		return model.StudyNote{}, err
	}
	if lessonName.Valid {
		n.LessonName = &lessonName.String
	}
	n.CreatedAt, _ = parseTime(createdAt)
	n.UpdatedAt, _ = parseTime(updatedAt)
	return n, nil
}
