package constants

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// SessionState represents the current state of the TUI application
type SessionState int

// ConfirmationMsg is a message to trigger a confirmation dialog
type ConfirmationMsg struct {
	Message string
	Action  func() tea.Cmd
}

const (
	AppName            = "travelogue"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/travelogue/travelogue.db"
	Version            = "v0.3.0"

	// StateKey is the key the journey state is persisted under in every store
	StateKey = "journey"

	// Journey limits
	MinDays     = 1
	MaxDays     = 365
	DefaultDays = 79

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "travelogue-"
	BackupFileSuffix = ".db"

	// LockfileName is created next to the store while a TUI session owns it
	LockfileName = "travelogue.lock"

	// TimestampFormat is used for persisted updated_at values
	TimestampFormat = time.RFC3339
)

// Session States
const (
	StateJourney SessionState = iota
	StateDayCount
	StateConfirmRegenerate
)
