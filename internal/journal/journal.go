// Package journal records dsdev operation outcomes so `dsdev history`
// can show what ran and when.
package journal

import (
	"database/sql"
	"fmt"
	"strings"
)

// Statuses recorded for an operation. Begin writes StatusRunning; a
// row left in that state marks an invocation that never finished.
const (
	StatusRunning = "running"
	StatusOK      = "ok"
	StatusFailed  = "failed"
	StatusAborted = "aborted"
)

// Entry is one recorded invocation of a dsdev operation.
type Entry struct {
	ID         int64
	Operation  string
	Status     string
	Detail     sql.NullString
	StartedAt  string
	FinishedAt sql.NullString
}

// Repository provides journal reads and writes over a SQLite database.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository using db.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Close closes the underlying DB connection used by the Repository.
func (r *Repository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Begin inserts a new entry for the named operation and returns its ID.
func (r *Repository) Begin(operation string) (int64, error) {
	operation = strings.TrimSpace(operation)
	if operation == "" {
		return 0, fmt.Errorf("invalid operation: name cannot be empty")
	}
	res, err := r.db.Exec(
		`INSERT INTO operations (operation, status, started_at) VALUES (?, ?, datetime('now'))`,
		operation, StatusRunning)
	if err != nil {
		return 0, fmt.Errorf("insert operation: %w", err)
	}
	return res.LastInsertId()
}

// Finish marks the entry with its final status and detail.
func (r *Repository) Finish(id int64, status, detail string) error {
	switch status {
	case StatusOK, StatusFailed, StatusAborted:
	default:
		return fmt.Errorf("invalid status %q", status)
	}
	_, err := r.db.Exec(
		`UPDATE operations SET status = ?, detail = ?, finished_at = datetime('now') WHERE id = ?`,
		status, detail, id)
	if err != nil {
		return fmt.Errorf("update operation: %w", err)
	}
	return nil
}

// List returns entries newest first, at most limit rows (all when limit <= 0).
func (r *Repository) List(limit int) ([]Entry, error) {
	q := `SELECT id, operation, status, detail, started_at, finished_at
		FROM operations ORDER BY started_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Operation, &e.Status, &e.Detail, &e.StartedAt, &e.FinishedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
