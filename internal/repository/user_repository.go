package repository

import (
	"context"
	"database/sql"
	"time"

	"finedu/backend/internal/model"
	"finedu/backend/internal/snowflake"
)

type UserRepository interface {
	Create(ctx context.Context, user model.User) (model.User, error)
	GetByID(ctx context.Context, id int64) (model.User, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	GetByUsernameOrEmail(ctx context.Context, login string) (model.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	List(ctx context.Context) ([]model.User, error)
	UpdateProfile(ctx context.Context, id int64, fullName, school, grade, major *string, email string) error
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}

type userRepository struct {
	db dbtx
}

func NewUserRepository(db dbtx) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, username, email, password_hash, full_name, school, grade, major, role, is_active, created_at, last_login`

func (r *userRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	user.ID = snowflake.NextID()
	user.CreatedAt = time.Now().UTC()
	if user.Role == "" {
		user.Role = model.RoleStudent
	}
	user.IsActive = true

	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO users (id, username, email, password_hash, full_name, school, grade, major, role, is_active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?)`,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.School,
		user.Grade,
		user.Major,
		user.Role,
		formatTime(user.CreatedAt),
	)
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (model.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (model.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return scanUser(row)
}

func (r *userRepository) GetByUsernameOrEmail(ctx context.Context, login string) (model.User, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ? OR email = ?`,
		login, login,
	)
	return scanUser(row)
}

func (r *userRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM users WHERE username = ? OR email = ?`,
		username, email,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		user, err := scanUserRows(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *userRepository) UpdateProfile(ctx context.Context, id int64, fullName, school, grade, major *string, email string) error {
	_, err := r.db.ExecContext(
		ctx,
		`UPDATE users SET full_name = ?, school = ?, grade = ?, major = ?, email = ? WHERE id = ?`,
		fullName, school, grade, major, email, id,
	)
	return err
}

func (r *userRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE id = ?`, hash, id)
	return err
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET last_login = ? WHERE id = ?`, formatTime(at), id)
	return err
}

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	var isActive int
	var createdAt string
	var lastLogin sql.NullString

	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.FullName, &u.School, &u.Grade, &u.Major,
		&u.Role, &isActive, &createdAt, &lastLogin,
	)
	if err != nil {
		return model.User{}, err
	}

	u.IsActive = isActive == 1
	u.CreatedAt, _ = parseTime(createdAt)
	if lastLogin.Valid {
		u.LastLogin = parseTimePtr(lastLogin.String)
	}
	return u, nil
}

func scanUserRows(rows *sql.Rows) (model.User, error) {
	var u model.User
	var isActive int
	var createdAt string
	var lastLogin sql.NullString

	err := rows.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.FullName, &u.School, &u.Grade, &u.Major,
		&u.Role, &isActive, &createdAt, &lastLogin,
	)
	if err != nil {
		return model.User{}, err
	}

	u.IsActive = isActive == 1
	u.CreatedAt, _ = parseTime(createdAt)
	if lastLogin.Valid {
		u.LastLogin = parseTimePtr(lastLogin.String)
	}
	return u, nil
}
