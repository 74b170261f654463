// Package storage defines the run journal: every compare run and its results.
package storage

import (
	"context"
	"errors"

	"github.com/hyperjump/wordsim/internal/models"
)

// ErrNotFound is returned when a run ID is not in the journal.
var ErrNotFound = errors.New("run not found")

// Storage defines run journal operations.
type Storage interface {
	// SaveRun stores the run and all of its results atomically.
	SaveRun(ctx context.Context, run *models.Run) error
	// GetRun returns a run with its results in query order.
	GetRun(ctx context.Context, id string) (*models.Run, error)
	// ListRuns returns runs newest first, without results but with ResultCount set.
	ListRuns(ctx context.Context, offset, limit int) ([]*models.Run, error)
	DeleteRun(ctx context.Context, id string) error
	CountRuns(ctx context.Context) (int64, error)

	Close() error
}
