package db

import (
	"database/sql"
	"fmt"
)

// Base schema - uses Snowflake IDs (no AUTOINCREMENT)
const baseSchema = `
CREATE TABLE IF NOT EXISTS users (
  id INTEGER PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  full_name TEXT,
  school TEXT,
  grade TEXT,
  major TEXT,
  role TEXT NOT NULL DEFAULT 'student',
  created_at TEXT NOT NULL,
  last_login TEXT
);

CREATE TABLE IF NOT EXISTS sessions (
  id TEXT PRIMARY KEY,
  user_id INTEGER NOT NULL,
  expires_at TEXT NOT NULL,
  created_at TEXT NOT NULL,
  FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions(user_id);

CREATE TABLE IF NOT EXISTS learning_progress (
  id INTEGER PRIMARY KEY,
  user_id INTEGER NOT NULL,
  module_name TEXT NOT NULL,
  lesson_name TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'not_started',
  score REAL,
  completed_at TEXT,
  updated_at TEXT NOT NULL,
  FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
  UNIQUE(user_id, module_name, lesson_name)
);

CREATE INDEX IF NOT EXISTS idx_progress_user_id ON learning_progress(user_id);

CREATE TABLE IF NOT EXISTS exercise_submissions (
  id INTEGER PRIMARY KEY,
  user_id INTEGER NOT NULL,
  case_id TEXT NOT NULL,
  question_id TEXT,
  answer TEXT,
  is_correct INTEGER,
  score REAL,
  submitted_at TEXT NOT NULL,
  FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_submissions_user_case ON exercise_submissions(user_id, case_id);

CREATE TABLE IF NOT EXISTS portfolios (
  id INTEGER PRIMARY KEY,
  user_id INTEGER NOT NULL,
  name TEXT NOT NULL,
  description TEXT,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL,
  FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_portfolios_user_id ON portfolios(user_id);

CREATE TABLE IF NOT EXISTS holdings (
  id INTEGER PRIMARY KEY,
  portfolio_id INTEGER NOT NULL,
  fund_code TEXT NOT NULL,
  fund_name TEXT,
  weight REAL NOT NULL,
  amount REAL,
  updated_at TEXT NOT NULL,
  FOREIGN KEY (portfolio_id) REFERENCES portfolios(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_holdings_portfolio_id ON holdings(portfolio_id);

CREATE TABLE IF NOT EXISTS study_notes (
  id INTEGER PRIMARY KEY,
  user_id INTEGER NOT NULL,
  module_name TEXT NOT NULL,
  lesson_name TEXT,
  note_content TEXT,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL,
  FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_notes_user_module ON study_notes(user_id, module_name);

CREATE TABLE IF NOT EXISTS activity_logs (
  id INTEGER PRIMARY KEY,
  user_id INTEGER NOT NULL,
  activity_type TEXT NOT NULL,
  activity_data TEXT,
  created_at TEXT NOT NULL,
  FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_activity_user_created ON activity_logs(user_id, created_at);

CREATE TABLE IF NOT EXISTS news_items (
  id INTEGER PRIMARY KEY,
  source TEXT NOT NULL,
  title TEXT NOT NULL,
  url TEXT NOT NULL,
  summary TEXT,
  published_at TEXT,
  created_at TEXT NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_news_source_url ON news_items(source, url);

CREATE TABLE IF NOT EXISTS settings (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`

func Migrate(db *sql.DB) error {
	if _, err := db.Exec(baseSchema); err != nil {
		return fmt.Errorf("migrate base schema: %w", err)
	}

	// Run incremental migrations
	if err := runMigrations(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

func runMigrations(db *sql.DB) error {
	// Migration 1: Add is_active column to users if not exists
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM pragma_table_info('users') WHERE name = 'is_active'
	`).Scan(&count)
	if err != nil {
		return fmt.Errorf("check is_active column: %w", err)
	}

	if count == 0 {
		if _, err := db.Exec(`ALTER TABLE users ADD COLUMN is_active INTEGER NOT NULL DEFAULT 1`); err != nil {
			return fmt.Errorf("add is_active column: %w", err)
		}
	}

	// Migration 2: Add readable_content column to news_items for extracted article bodies
	err = db.QueryRow(`
		SELECT COUNT(*) FROM pragma_table_info('news_items') WHERE name = 'readable_content'
	`).Scan(&count)
	if err != nil {
		return fmt.Errorf("check readable_content column: %w", err)
	}

	if count == 0 {
		if _, err := db.Exec(`ALTER TABLE news_items ADD COLUMN readable_content TEXT`); err != nil {
			return fmt.Errorf("add readable_content column: %w", err)
		}
	}

	// Migration 3: Index for progress status rollups
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_progress_user_status ON learning_progress(user_id, status)`); err != nil {
		return fmt.Errorf("create idx_progress_user_status: %w", err)
	}

	// Migration 4: Index for news ordering
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_news_published_at ON news_items(published_at)`); err != nil {
		return fmt.Errorf("create idx_news_published_at: %w", err)
	}

	return nil
}
