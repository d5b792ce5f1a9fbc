// Package repository persists parse results so an administrator can review,
// re-export or re-trigger a parse later. Parsing itself never touches the
// store; each invocation is side-effect-free until the caller saves it here.
package repository

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite" // driver: sqlite
)

// Open opens the SQLite store and ensures schema exists. An empty path uses
// an on-disk default next to the working directory; ":memory:" style DSNs
// work for tests and one-shot batch runs.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	dsn := path
	if dsn == "" {
		dsn = "file:quizextract.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	if err := ensureSchema(ctx, db); err != nil {
		return nil, err
	}
	return db, nil
}

// OpenInMemory opens a throwaway store for batch runs without a -db flag.
func OpenInMemory(ctx context.Context) (*sql.DB, error) {
	return Open(ctx, "file::memory:?mode=memory&cache=shared")
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schemaSQLite)
	return err
}

const schemaSQLite = `
PRAGMA foreign_keys=ON;

CREATE TABLE IF NOT EXISTS tests (
  id TEXT PRIMARY KEY,
  source_path TEXT NOT NULL,
  mode TEXT NOT NULL,
  method TEXT NOT NULL,
  skipped_json TEXT NOT NULL DEFAULT '[]',
  created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS questions (
  id TEXT PRIMARY KEY,
  test_id TEXT NOT NULL REFERENCES tests(id) ON DELETE CASCADE,
  ord INTEGER NOT NULL,
  text TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS options (
  id TEXT PRIMARY KEY,
  question_id TEXT NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
  ord INTEGER NOT NULL,
  text TEXT NOT NULL,
  is_correct INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_questions_test ON questions(test_id, ord);
CREATE INDEX IF NOT EXISTS idx_options_question ON options(question_id, ord);
`
