// ABOUTME: Repository interface for workout record storage.
// ABOUTME: Defines the store contract and the Query predicate shared by all backends.
package storage

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/sporttimer/internal/models"
)

//go:generate mockgen -source=$GOFILE -destination=storagemock/repository.go -package=storagemock

// Repository defines the storage interface for workout records.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	CreateWorkout(ctx context.Context, w *models.Workout) error
	GetWorkout(ctx context.Context, idOrPrefix string) (*models.Workout, error)
	ListWorkouts(ctx context.Context, q *Query) ([]*models.Workout, error)
	// DeleteWorkout removes one record. A missing id is not an error.
	DeleteWorkout(ctx context.Context, id uuid.UUID) error
	// DeleteWorkouts removes every id or none of them.
	DeleteWorkouts(ctx context.Context, ids []uuid.UUID) error
	// DeleteAllWorkouts removes every record matching q (all when q is nil).
	DeleteAllWorkouts(ctx context.Context, q *Query) (int, error)
	// Save flushes pending writes to durable storage.
	Save(ctx context.Context) error

	// Export/Import
	GetAllData(ctx context.Context) (*ExportData, error)
	ImportData(ctx context.Context, data *ExportData) error

	// Lifecycle
	Close() error
}

// Sort selects the order of a listing.
type Sort int

const (
	SortOccurredDesc Sort = iota
	SortOccurredAsc
	SortDurationDesc
)

// Query is the predicate and ordering applied by ListWorkouts.
// The zero value lists everything, most recent first.
type Query struct {
	Category *models.Category
	// From and To bound OccurredAt as [From, To); zero values are open.
	From  time.Time
	To    time.Time
	Text  string
	Limit int
	Sort  Sort
}

// Matches reports whether w satisfies the predicate part of q.
func (q *Query) Matches(w *models.Workout) bool {
	if q == nil {
		return true
	}
	if q.Category != nil && w.Category != *q.Category {
		return false
	}
	if !q.From.IsZero() && w.OccurredAt.Before(q.From) {
		return false
	}
	if !q.To.IsZero() && !w.OccurredAt.Before(q.To) {
		return false
	}
	if text := strings.TrimSpace(q.Text); text != "" {
		if !strings.Contains(strings.ToLower(w.NotesText()), strings.ToLower(text)) {
			return false
		}
	}
	return true
}

// Apply filters, sorts and limits ws according to q. Backends without a
// query language use it on their full record set.
func (q *Query) Apply(ws []*models.Workout) []*models.Workout {
	out := make([]*models.Workout, 0, len(ws))
	for _, w := range ws {
		if q.Matches(w) {
			out = append(out, w)
		}
	}

	order := SortOccurredDesc
	if q != nil {
		order = q.Sort
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch order {
		case SortOccurredAsc:
			return a.OccurredAt.Before(b.OccurredAt)
		case SortDurationDesc:
			if a.DurationSeconds != b.DurationSeconds {
				return a.DurationSeconds > b.DurationSeconds
			}
			return a.OccurredAt.After(b.OccurredAt)
		default:
			return a.OccurredAt.After(b.OccurredAt)
		}
	})

	if q != nil && q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

// IsFullID reports whether s has the shape of a complete UUID string.
func IsFullID(s string) bool {
	return len(s) == 36 && strings.Count(s, "-") == 4
}
