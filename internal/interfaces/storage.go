package interfaces

import (
	"errors"
	"time"

	"github.com/ternarybob/apidex/internal/models"
)

// ErrSnapshotNotFound is returned when no catalog snapshot has been
// persisted yet. Callers treat it as a cold cache, never as a failure.
var ErrSnapshotNotFound = errors.New("catalog snapshot not found")

// SnapshotStorage persists the project-info map between runs. A write is
// transactional: a reader never observes a half-written snapshot.
type SnapshotStorage interface {
	// Save atomically overwrites the snapshot and records refreshedAt.
	Save(projects map[string]*models.ProjectInfo, refreshedAt time.Time) error

	// Load reads the last persisted snapshot. Returns ErrSnapshotNotFound
	// if none exists.
	Load() (*models.CatalogSnapshot, error)
}

// StorageManager aggregates the storage backends.
type StorageManager interface {
	SnapshotStorage() SnapshotStorage
	Close() error
}
