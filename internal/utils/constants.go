package utils

import "time"

// =============================================================================
// Timeout Constants
// =============================================================================

const (
	// DefaultRequestTimeout bounds a single API request, snapshot load included
	DefaultRequestTimeout = 30 * time.Second
)

// =============================================================================
// Data Folder Constants
// =============================================================================

// Export folders, one per record kind, each holding a single CSV file
const (
	FolderActivity  = "ACTIVITY"
	FolderSleep     = "SLEEP"
	FolderBody      = "BODY"
	FolderHeartRate = "HEARTRATE_AUTO"
	FolderSport     = "SPORT"
	FolderUser      = "USER"
)

// =============================================================================
// Chat Context Constants
// =============================================================================

const (
	// ChatContextEntries is how many trailing records the chat context summarizes
	ChatContextEntries = 30
)
