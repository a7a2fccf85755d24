package constants

import "time"

const (
	AppName           = "choreclock"
	Version           = "v1.2.0"
	DefaultConfigPath = "~/.config/choreclock/choreclock.yaml"

	// Data file names, all relative to the configured data directory
	ScheduleFileName      = "schedule.csv"
	RotationStateFileName = "rotation_state.csv"
	TaskLogFileName       = "task_log.csv"
	LockFileName          = "choreclock.lock"

	// Scheduling defaults
	DefaultTickInterval     = 1 * time.Second
	DefaultTriggerWindowSec = 20
	DefaultExpiryGraceMin   = 60

	// Participant lists in schedule rows are colon-separated ("Frank:Alice:Tom")
	ParticipantSeparator = ":"

	// Notify constants for the display shell webhook
	NotifierLockfileName   = "choreclock-display.lock"
	DisplayAppIdentifier   = "choreclock-display"
	NotificationDurationMs = 10000
)
