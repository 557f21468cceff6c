package config

import "github.com/awantoch/kwanixflow/constants"

// Default directories and file paths.
const (
	// DefaultConfigDir is the base directory for local artifacts.
	DefaultConfigDir = ".kwanixflow"
	// DefaultBlobDir is the default directory for archived exports.
	DefaultBlobDir = DefaultConfigDir + "/exports"
	// DefaultSQLiteDSN is the default data source name for the sqlite export ledger.
	DefaultSQLiteDSN = DefaultConfigDir + "/ledger.db"
	// DefaultConfigPath is the config file looked up when --config is not given.
	DefaultConfigPath = constants.ConfigFileName
)
