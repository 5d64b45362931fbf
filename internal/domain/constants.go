package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Supervision constants
const (
	// TickInterval is the elapsed-time clock resolution of the timeout loop.
	TickInterval = 1 * time.Second
	// KillGracePeriod is how long a graceful terminate may take before the
	// supervisor escalates to force-kill.
	KillGracePeriod = 3 * time.Second
	// OutputTailBytes caps how much captured child output is retained in
	// memory for the result block.
	OutputTailBytes = 64 * 1024
)

// History constants
const (
	// DefaultHistoryListLimit is the default number of entries history shows.
	DefaultHistoryListLimit = 20
)
