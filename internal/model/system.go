package model

// HealthStatus is the liveness report of a running instance. Ledgers is the
// number of users with a stored ledger and is omitted when the database is
// unreachable.
type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Ledgers  *int   `json:"ledgers,omitempty"`
	Error    string `json:"error,omitempty"`
}

// VersionInfo reports the running build, the applied schema and the optional
// capabilities (AI provider, sealed backups, schedules) this instance has.
type VersionInfo struct {
	AppVersion       string          `json:"app_version"`
	DbVersion        string          `json:"db_version"`
	Features         map[string]bool `json:"features"`
	MigrationNeeded  bool            `json:"migration_needed"`
	MigrationMessage *string         `json:"migration_message"`
}
