package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/wordsim/internal/models"
)

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens or creates a SQLite database at dbPath and initializes the schema.
// Parent directories are created if they do not exist.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		model_path TEXT NOT NULL,
		vocab_size INTEGER NOT NULL,
		dimensions INTEGER NOT NULL,
		query_time_ms INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);

	CREATE TABLE IF NOT EXISTS run_results (
		run_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		word_a TEXT NOT NULL,
		word_b TEXT NOT NULL,
		kind TEXT NOT NULL,
		description TEXT,
		value REAL,
		error TEXT,
		PRIMARY KEY (run_id, position),
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);
	`
	_, err := db.Exec(schema)
	return err
}

// SaveRun inserts a run and its results in a transaction.
func (s *SQLiteStorage) SaveRun(ctx context.Context, run *models.Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, model_path, vocab_size, dimensions, query_time_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.ModelPath, run.VocabSize, run.Dimensions, run.QueryTime, run.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_results (run_id, position, word_a, word_b, kind, description, value, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, res := range run.Results {
		var value sql.NullFloat64
		var errText sql.NullString
		if res.OK() {
			value = sql.NullFloat64{Float64: res.Value, Valid: true}
		} else {
			errText = sql.NullString{String: res.Error, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx,
			run.ID, i, res.Pair.A, res.Pair.B, string(res.Pair.Kind), res.Pair.Description, value, errText,
		); err != nil {
			return fmt.Errorf("insert result %d: %w", i, err)
		}
	}
	run.ResultCount = len(run.Results)
	return tx.Commit()
}

// GetRun returns a run by ID with its results.
func (s *SQLiteStorage) GetRun(ctx context.Context, id string) (*models.Run, error) {
	var run models.Run
	err := s.db.QueryRowContext(ctx,
		`SELECT id, model_path, vocab_size, dimensions, query_time_ms, created_at
		 FROM runs WHERE id = ?`, id,
	).Scan(&run.ID, &run.ModelPath, &run.VocabSize, &run.Dimensions, &run.QueryTime, &run.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT word_a, word_b, kind, description, value, error
		 FROM run_results WHERE run_id = ? ORDER BY position`, id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			res         models.Result
			kind        string
			description sql.NullString
			value       sql.NullFloat64
			errText     sql.NullString
		)
		if err := rows.Scan(&res.Pair.A, &res.Pair.B, &kind, &description, &value, &errText); err != nil {
			return nil, err
		}
		res.Pair.Kind = models.Kind(kind)
		res.Pair.Description = description.String
		res.Value = value.Float64
		res.Error = errText.String
		run.Results = append(run.Results, &res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	run.ResultCount = len(run.Results)
	return &run, nil
}

// ListRuns returns runs with offset and limit, newest first.
func (s *SQLiteStorage) ListRuns(ctx context.Context, offset, limit int) ([]*models.Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.model_path, r.vocab_size, r.dimensions, r.query_time_ms, r.created_at,
		        (SELECT COUNT(*) FROM run_results rr WHERE rr.run_id = r.id)
		 FROM runs r ORDER BY r.created_at DESC, r.rowid DESC LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		var run models.Run
		if err := rows.Scan(&run.ID, &run.ModelPath, &run.VocabSize, &run.Dimensions, &run.QueryTime, &run.CreatedAt, &run.ResultCount); err != nil {
			return nil, err
		}
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}

// DeleteRun removes a run and its results.
func (s *SQLiteStorage) DeleteRun(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// CountRuns returns the total number of journaled runs.
func (s *SQLiteStorage) CountRuns(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
