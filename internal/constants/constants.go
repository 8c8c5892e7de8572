// Package constants defines application-wide constants to avoid magic numbers
package constants

import "time"

// AppName is used for XDG directories, env var prefixes and the CLI root
const AppName = "sandboxdash"

// EnvPrefix is the prefix of every environment override
const EnvPrefix = "SANDBOXDASH_"

// Version is overridden at build time with -ldflags "-X sandboxdash/internal/constants.Version=..."
var Version = "0.1.0"

// Network and Port Constants
const (
	// DefaultServerPort is the default port for the dashboard
	DefaultServerPort = 8090

	// DefaultServerHost is the default bind address
	DefaultServerHost = "localhost"

	// DefaultVirshURL is where the virsh sandbox API usually listens
	DefaultVirshURL = "http://localhost:8080"

	// DefaultTmuxURL is where the tmux client API usually listens
	DefaultTmuxURL = "http://localhost:8081"
)

// File System Permissions
const (
	// DirPermissions is the standard directory permissions for sandboxdash directories
	DirPermissions = 0755

	// FilePermissions is the standard file permissions for sandboxdash config files
	FilePermissions = 0644
)

// HTTP Configuration
const (
	// DefaultHTTPClientTimeout is the default timeout for backend requests
	DefaultHTTPClientTimeout = 30 * time.Second

	// DefaultServerReadTimeout is the default server read timeout
	DefaultServerReadTimeout = 10 * time.Second

	// DefaultServerWriteTimeout is the default server write timeout
	DefaultServerWriteTimeout = 10 * time.Second

	// DefaultServerShutdownTimeout is the default server graceful shutdown timeout
	DefaultServerShutdownTimeout = 30 * time.Second

	// DefaultStatusProbeTimeout bounds the backend probes behind /api/status
	DefaultStatusProbeTimeout = 5 * time.Second
)

// Notifications and activity
const (
	// NotificationHistorySize is how many notifications the hub keeps for late subscribers
	NotificationHistorySize = 20

	// SubscriberBufferSize is the per-subscriber channel buffer
	SubscriberBufferSize = 16

	// DefaultActivityLimit is the number of clone requests shown on the activity page
	DefaultActivityLimit = 50

	// MaxActivityLimit caps the ?limit= query parameter
	MaxActivityLimit = 500
)

// Network Port Validation
const (
	// MinPortNumber is the minimum valid TCP port number
	MinPortNumber = 1

	// MaxPortNumber is the maximum valid TCP port number
	MaxPortNumber = 65535
)
