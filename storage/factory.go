package storage

import (
	"strings"

	"github.com/awantoch/kwanixflow/config"
	"github.com/awantoch/kwanixflow/constants"
	"github.com/awantoch/kwanixflow/utils"
)

// NewFromConfig returns the ledger selected by cfg. An empty driver means memory.
func NewFromConfig(cfg config.StorageConfig) (Storage, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", constants.StorageDriverMemory:
		return NewMemoryStorage(), nil
	case constants.StorageDriverSQLite:
		dsn := cfg.DSN
		if dsn == "" {
			dsn = config.DefaultSQLiteDSN
		}
		return NewSqliteStorage(dsn)
	case constants.StorageDriverPostgres:
		return NewPostgresStorage(cfg.DSN)
	default:
		return nil, utils.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}
