// ABOUTME: Workout CRUD operations for SQLite storage.
// ABOUTME: Implements Repository with prefix lookup and transactional batch deletes.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/sporttimer/internal/models"
)

// Fixed-width UTC timestamps keep lexical order equal to chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const workoutColumns = `id, category, duration_seconds, occurred_at, notes, created_at`

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		// Rows written by older builds used plain RFC3339.
		t, _ = time.Parse(time.RFC3339, s)
	}
	return t.In(time.Local)
}

// CreateWorkout stores a new workout in the database.
func (d *DB) CreateWorkout(ctx context.Context, w *models.Workout) error {
	if err := w.Validate(); err != nil {
		return WriteError("create workout", err)
	}
	query := `
		INSERT INTO workouts (` + workoutColumns + `)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := d.db.ExecContext(ctx, query,
		w.ID.String(),
		string(w.Category),
		w.DurationSeconds,
		formatTime(w.OccurredAt),
		w.Notes,
		formatTime(w.CreatedAt),
	)
	if err != nil {
		return WriteError("create workout", err)
	}
	return nil
}

// GetWorkout retrieves a workout by ID or ID prefix.
func (d *DB) GetWorkout(ctx context.Context, idOrPrefix string) (*models.Workout, error) {
	id, err := d.resolveWorkoutID(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + workoutColumns + ` FROM workouts WHERE id = ?`
	w, err := scanWorkout(d.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound(idOrPrefix)
	}
	if err != nil {
		return nil, ReadError("get workout", err)
	}
	return w, nil
}

// ListWorkouts retrieves workouts matching q.
// Without an explicit sort, results are most recent first.
func (d *DB) ListWorkouts(ctx context.Context, q *Query) ([]*models.Workout, error) {
	if q == nil {
		q = &Query{}
	}

	var where []string
	var args []interface{}

	if q.Category != nil {
		where = append(where, "category = ?")
		args = append(args, string(*q.Category))
	}
	if !q.From.IsZero() {
		where = append(where, "occurred_at >= ?")
		args = append(args, formatTime(q.From))
	}
	if !q.To.IsZero() {
		where = append(where, "occurred_at < ?")
		args = append(args, formatTime(q.To))
	}

	query := `SELECT ` + workoutColumns + ` FROM workouts`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	switch q.Sort {
	case SortOccurredAsc:
		query += " ORDER BY occurred_at ASC"
	case SortDurationDesc:
		query += " ORDER BY duration_seconds DESC, occurred_at DESC"
	default:
		query += " ORDER BY occurred_at DESC"
	}

	// SQLite's LOWER only folds ASCII, so text matching runs in Go and the
	// limit has to wait for it.
	textFilter := strings.TrimSpace(q.Text) != ""
	if q.Limit > 0 && !textFilter {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, ReadError("list workouts", err)
	}
	defer rows.Close()

	workouts, err := scanWorkouts(rows)
	if err != nil {
		return nil, ReadError("list workouts", err)
	}
	if textFilter {
		workouts = (&Query{Text: q.Text, Limit: q.Limit, Sort: q.Sort}).Apply(workouts)
	}
	return workouts, nil
}

// DeleteWorkout removes a workout. Deleting a missing id is a no-op.
func (d *DB) DeleteWorkout(ctx context.Context, id uuid.UUID) error {
	if _, err := d.db.ExecContext(ctx, "DELETE FROM workouts WHERE id = ?", id.String()); err != nil {
		return WriteError("delete workout", err)
	}
	return nil
}

// DeleteWorkouts removes all ids in one transaction.
func (d *DB) DeleteWorkouts(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return WriteError("delete workouts", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, "DELETE FROM workouts WHERE id = ?")
	if err != nil {
		return WriteError("delete workouts", err)
	}
	defer stmt.Close()

	for _, id := range ids {
		if _, err := stmt.ExecContext(ctx, id.String()); err != nil {
			return WriteError("delete workouts", fmt.Errorf("delete %s: %w", id, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return WriteError("delete workouts", err)
	}
	return nil
}

// DeleteAllWorkouts removes every workout matching q and reports how many.
func (d *DB) DeleteAllWorkouts(ctx context.Context, q *Query) (int, error) {
	if q == nil || (q.Category == nil && q.From.IsZero() && q.To.IsZero() && strings.TrimSpace(q.Text) == "") {
		result, err := d.db.ExecContext(ctx, "DELETE FROM workouts")
		if err != nil {
			return 0, WriteError("delete all workouts", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return 0, WriteError("delete all workouts", err)
		}
		return int(n), nil
	}

	matches, err := d.ListWorkouts(ctx, &Query{Category: q.Category, From: q.From, To: q.To, Text: q.Text})
	if err != nil {
		return 0, err
	}
	ids := make([]uuid.UUID, 0, len(matches))
	for _, w := range matches {
		ids = append(ids, w.ID)
	}
	if err := d.DeleteWorkouts(ctx, ids); err != nil {
		return 0, err
	}
	return len(ids), nil
}

// Save checkpoints the WAL so committed writes reach the main database file.
func (d *DB) Save(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, "PRAGMA wal_checkpoint(PASSIVE)"); err != nil {
		return WriteError("save", err)
	}
	return nil
}

// resolveWorkoutID finds the full ID from a prefix.
func (d *DB) resolveWorkoutID(ctx context.Context, idOrPrefix string) (string, error) {
	if IsFullID(idOrPrefix) {
		return idOrPrefix, nil
	}

	query := `SELECT id FROM workouts WHERE id LIKE ? || '%'`
	rows, err := d.db.QueryContext(ctx, query, idOrPrefix)
	if err != nil {
		return "", ReadError("resolve workout id", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", ReadError("resolve workout id", err)
		}
		matches = append(matches, id)
	}
	if err := rows.Err(); err != nil {
		return "", ReadError("resolve workout id", err)
	}

	if len(matches) == 0 {
		return "", NotFound(idOrPrefix)
	}
	if len(matches) > 1 {
		return "", Ambiguous(idOrPrefix)
	}

	return matches[0], nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanWorkout scans a single row into a Workout struct.
func scanWorkout(row rowScanner) (*models.Workout, error) {
	var w models.Workout
	var idStr, category, occurredAt string
	var createdAt sql.NullString
	var notes sql.NullString

	if err := row.Scan(&idStr, &category, &w.DurationSeconds, &occurredAt, &notes, &createdAt); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("parse id %q: %w", idStr, err)
	}
	w.ID = id
	w.Category = models.CategoryFromStored(category)
	w.OccurredAt = parseTime(occurredAt)
	if createdAt.Valid {
		w.CreatedAt = parseTime(createdAt.String)
	}
	if notes.Valid {
		w.Notes = &notes.String
	}

	return &w, nil
}

// scanWorkouts scans multiple rows into a slice of Workouts.
func scanWorkouts(rows *sql.Rows) ([]*models.Workout, error) {
	workouts := []*models.Workout{}

	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}
		workouts = append(workouts, w)
	}

	return workouts, rows.Err()
}
