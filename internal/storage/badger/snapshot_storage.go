package badger

import (
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/ternarybob/apidex/internal/interfaces"
	"github.com/ternarybob/apidex/internal/models"
)

// SnapshotStorage implements the SnapshotStorage interface for Badger.
// The whole project map lives in a single record, so a Badger upsert
// gives the all-or-nothing write the cache contract requires.
type SnapshotStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewSnapshotStorage creates a new SnapshotStorage instance
func NewSnapshotStorage(db *BadgerDB, logger arbor.ILogger) interfaces.SnapshotStorage {
	return &SnapshotStorage{
		db:     db,
		logger: logger,
	}
}

// Save atomically overwrites the catalog snapshot.
func (s *SnapshotStorage) Save(projects map[string]*models.ProjectInfo, refreshedAt time.Time) error {
	snapshot := models.CatalogSnapshot{
		Key:         models.SnapshotKey,
		Projects:    projects,
		RefreshedAt: refreshedAt,
	}

	if err := s.db.Store().Upsert(models.SnapshotKey, &snapshot); err != nil {
		return fmt.Errorf("failed to persist catalog snapshot: %w", err)
	}

	s.logger.Debug().
		Int("projects", len(projects)).
		Str("refreshed_at", refreshedAt.Format(time.RFC3339)).
		Msg("Catalog snapshot persisted")

	return nil
}

// Load reads the last persisted snapshot.
func (s *SnapshotStorage) Load() (*models.CatalogSnapshot, error) {
	var snapshot models.CatalogSnapshot
	err := s.db.Store().Get(models.SnapshotKey, &snapshot)
	if err == badgerhold.ErrNotFound {
		return nil, interfaces.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog snapshot: %w", err)
	}

	return &snapshot, nil
}
