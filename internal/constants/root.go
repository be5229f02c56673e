package constants

import "time"

const (
	AppName            = "waypoint"
	DefaultKeyringUser = "database-connection"
	APITokenKeyringKey = "api-token"
	DefaultConfigPath  = "~/.config/waypoint/waypoint.db"
	Version            = "v0.3.1"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DefaultTaskMinutes is substituted when an estimated-time string cannot be parsed.
	DefaultTaskMinutes = 20

	// Input caps applied before a generation request is built.
	MaxGoalLen     = 200
	MaxAnswerLen   = 500
	MaxAnswerCount = 10

	// MinNotificationDelay is the shortest delay for which a completion
	// notification is still scheduled. Timers below this start silently.
	MinNotificationDelay = 5 * time.Second

	// TimerCheckInterval is how often the watch loop scans active timers
	// for the incomplete->complete transition.
	TimerCheckInterval = 1 * time.Second

	// Sync policy. These are tunable constants, not protocol requirements,
	// except that a forced sync after a high-value mutation must never be
	// collapsed into a debounce.
	SyncDebounceWindow    = 2 * time.Second
	SyncPeriodicInterval  = 2 * time.Minute
	SyncResumeThreshold   = 30 * time.Second
	ResumeGapThreshold    = 10 * time.Second
	EntitlementRetries    = 3
	EntitlementRetryDelay = 250 * time.Millisecond

	// Notification delivery via the tray companion app.
	NotifierLockfileName   = "waypoint-notifier.lock"
	TrayAppIdentifier      = "com.waypointhq.waypoint"
	TrayExecutablePrefix   = "waypoint-tray"
	NotificationDurationMs = 5000

	// Generation transport.
	GenerateTimeout    = 45 * time.Second
	GenerateMaxRetries = 3
	GenerateMinBackoff = 500 * time.Millisecond
	GenerateMaxBackoff = 8 * time.Second
	BreakerThreshold   = 3
	BreakerCooldown    = 60 * time.Second
)
