package badger

import (
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/apidex/internal/common"
	"github.com/ternarybob/apidex/internal/interfaces"
)

// Manager implements the StorageManager interface for Badger
type Manager struct {
	db       *BadgerDB
	snapshot interfaces.SnapshotStorage
	logger   arbor.ILogger
}

// NewManager creates a new Badger storage manager
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (interfaces.StorageManager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		db:       db,
		snapshot: NewSnapshotStorage(db, logger),
		logger:   logger,
	}

	logger.Info().Msg("Badger storage manager initialized")

	return manager, nil
}

// SnapshotStorage returns the catalog snapshot storage interface
func (m *Manager) SnapshotStorage() interfaces.SnapshotStorage {
	return m.snapshot
}

// Close closes the underlying database
func (m *Manager) Close() error {
	return m.db.Close()
}
