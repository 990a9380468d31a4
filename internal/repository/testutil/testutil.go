// Package testutil provides helpers for repository tests backed by a real
// SQLite database.
package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"finedu/backend/internal/db"
	"finedu/backend/internal/model"
	"finedu/backend/internal/snowflake"
)

var snowflakeOnce sync.Once

// NewTestDB opens a fresh migrated database in a per-test temp dir.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	snowflakeOnce.Do(func() {
		if err := snowflake.Init(1); err != nil {
			t.Fatalf("init snowflake: %v", err)
		}
	})

	conn, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// SeedUser inserts a user and returns its ID. Zero-value fields get defaults.
func SeedUser(t *testing.T, conn *sql.DB, user model.User) int64 {
	t.Helper()

	id := snowflake.NextID()
	if user.Username == "" {
		user.Username = "user" + time.Now().Format("150405.000000000")
	}
	if user.Email == "" {
		user.Email = user.Username + "@example.com"
	}
	if user.PasswordHash == "" {
		hash, err := bcrypt.GenerateFromPassword([]byte("test123a"), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("hash password: %v", err)
		}
		user.PasswordHash = string(hash)
	}
	if user.Role == "" {
		user.Role = model.RoleStudent
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := conn.ExecContext(
		context.Background(),
		`INSERT INTO users (id, username, email, password_hash, full_name, school, grade, major, role, is_active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?)`,
		id, user.Username, user.Email, user.PasswordHash,
		user.FullName, user.School, user.Grade, user.Major,
		user.Role, now,
	)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return id
}

// SeedPortfolio inserts a portfolio for the user and returns its ID.
func SeedPortfolio(t *testing.T, conn *sql.DB, userID int64, name string) int64 {
	t.Helper()

	id := snowflake.NextID()
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := conn.ExecContext(
		context.Background(),
		`INSERT INTO portfolios (id, user_id, name, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		id, userID, name, now, now,
	)
	if err != nil {
		t.Fatalf("seed portfolio: %v", err)
	}
	return id
}

// SeedProgress inserts a learning progress row and returns its ID.
func SeedProgress(t *testing.T, conn *sql.DB, userID int64, moduleName, lessonName, status string, score *float64) int64 {
	t.Helper()

	id := snowflake.NextID()
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := conn.ExecContext(
		context.Background(),
		`INSERT INTO learning_progress (id, user_id, module_name, lesson_name, status, score, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, userID, moduleName, lessonName, status, score, now,
	)
	if err != nil {
		t.Fatalf("seed progress: %v", err)
	}
	return id
}
