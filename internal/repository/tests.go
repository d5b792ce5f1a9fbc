package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/thajiyev/quizextract/internal/common"
	"github.com/thajiyev/quizextract/internal/quiz"
)

// StoredTest is one persisted parse result.
type StoredTest struct {
	ID         uuid.UUID         `json:"id"`
	SourcePath string            `json:"source_path"`
	Mode       string            `json:"mode"`
	Method     string            `json:"method"`
	Skipped    []quiz.SkipReason `json:"skipped,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	Questions  []quiz.Question   `json:"questions,omitempty"`
}

type TestRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewTestRepository(db *sql.DB, logger *slog.Logger) *TestRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &TestRepository{db: db, logger: logger}
}

// SaveResult stores a parse result as a new test with its questions and
// options, in one transaction.
func (r *TestRepository) SaveResult(ctx context.Context, sourcePath, mode string, res quiz.ParseResult) (uuid.UUID, error) {
	skippedJSON, err := json.Marshal(res.Skipped)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal skip reasons: %w", err)
	}
	if res.Skipped == nil {
		skippedJSON = []byte("[]")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if rerr := tx.Rollback(); rerr != nil && !errors.Is(rerr, sql.ErrTxDone) {
			r.logger.Warn("repository.rollback_error", "error", rerr)
		}
	}()

	testID := uuid.New()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO tests (id, source_path, mode, method, skipped_json, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		testID.String(), sourcePath, mode, res.Method, string(skippedJSON), time.Now().Unix(),
	); err != nil {
		return uuid.Nil, fmt.Errorf("insert test: %w", err)
	}

	for _, q := range res.Questions {
		questionID := uuid.New()
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO questions (id, test_id, ord, text) VALUES (?, ?, ?, ?)`,
			questionID.String(), testID.String(), q.Order, q.Text,
		); err != nil {
			return uuid.Nil, fmt.Errorf("insert question %d: %w", q.Order, err)
		}
		for _, o := range q.Options {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO options (id, question_id, ord, text, is_correct) VALUES (?, ?, ?, ?, ?)`,
				uuid.New().String(), questionID.String(), o.Order, o.Text, boolToInt(o.IsCorrect),
			); err != nil {
				return uuid.Nil, fmt.Errorf("insert option %d.%d: %w", q.Order, o.Order, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("commit: %w", err)
	}
	r.logger.Info("repository.test_saved", "test_id", testID, "questions", len(res.Questions))
	return testID, nil
}

// GetTest loads one test with its questions and options in order.
func (r *TestRepository) GetTest(ctx context.Context, id uuid.UUID) (*StoredTest, error) {
	var t StoredTest
	var skippedJSON string
	var createdAt int64
	var rawID string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, source_path, mode, method, skipped_json, created_at FROM tests WHERE id = ?`,
		id.String(),
	).Scan(&rawID, &t.SourcePath, &t.Mode, &t.Method, &skippedJSON, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: test %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("query test: %w", err)
	}
	t.ID = id
	t.CreatedAt = time.Unix(createdAt, 0).UTC()
	if err := json.Unmarshal([]byte(skippedJSON), &t.Skipped); err != nil {
		return nil, fmt.Errorf("decode skip reasons: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, ord, text FROM questions WHERE test_id = ? ORDER BY ord`,
		id.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	type qrow struct {
		dbID string
		q    quiz.Question
	}
	var qrows []qrow
	for rows.Next() {
		var qr qrow
		if err := rows.Scan(&qr.dbID, &qr.q.Order, &qr.q.Text); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		qrows = append(qrows, qr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}

	for i := range qrows {
		opts, err := r.loadOptions(ctx, qrows[i].dbID)
		if err != nil {
			return nil, err
		}
		qrows[i].q.Options = opts
		t.Questions = append(t.Questions, qrows[i].q)
	}
	return &t, nil
}

func (r *TestRepository) loadOptions(ctx context.Context, questionID string) ([]quiz.Option, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT ord, text, is_correct FROM options WHERE question_id = ? ORDER BY ord`,
		questionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query options: %w", err)
	}
	defer rows.Close()

	var opts []quiz.Option
	for rows.Next() {
		var o quiz.Option
		var correct int
		if err := rows.Scan(&o.Order, &o.Text, &correct); err != nil {
			return nil, fmt.Errorf("scan option: %w", err)
		}
		o.IsCorrect = correct != 0
		opts = append(opts, o)
	}
	return opts, rows.Err()
}

// ListTests returns recent tests, newest first, without their questions.
func (r *TestRepository) ListTests(ctx context.Context, limit int) ([]StoredTest, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, source_path, mode, method, skipped_json, created_at FROM tests ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query tests: %w", err)
	}
	defer rows.Close()

	var out []StoredTest
	for rows.Next() {
		var t StoredTest
		var rawID, skippedJSON string
		var createdAt int64
		if err := rows.Scan(&rawID, &t.SourcePath, &t.Mode, &t.Method, &skippedJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scan test: %w", err)
		}
		t.ID, err = uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("parse test id %q: %w", rawID, err)
		}
		t.CreatedAt = time.Unix(createdAt, 0).UTC()
		if err := json.Unmarshal([]byte(skippedJSON), &t.Skipped); err != nil {
			return nil, fmt.Errorf("decode skip reasons: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
