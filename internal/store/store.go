// Package store keeps classification runs available between the upload
// and the dashboard, table and export requests that read them. Runs expire
// after a TTL; nothing outlives it.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"keywordmatrix/internal/models"
)

var (
	ErrRunNotFound = errors.New("run not found")
	ErrNilRun      = errors.New("run is nil")
)

// Store saves and loads runs.
type Store interface {
	Save(ctx context.Context, run *models.Run) error
	Get(ctx context.Context, id uuid.UUID) (*models.Run, error)
	// Latest returns the most recently saved run that has not expired.
	Latest(ctx context.Context) (*models.Run, error)
	Ping(ctx context.Context) error
	Close() error
}
