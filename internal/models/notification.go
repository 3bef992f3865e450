package models

import "time"

// Notification is a push notification document kept for the in-app inbox.
// Cleanup only relies on Timestamp.
type Notification struct {
	ID        string    `json:"id" bson:"_id"`
	Title     string    `json:"title,omitempty" bson:"title,omitempty"`
	Body      string    `json:"body,omitempty" bson:"body,omitempty"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// CleanupResult summarizes a single cleanup run
type CleanupResult struct {
	RunID   string    `json:"run_id"`
	Cutoff  time.Time `json:"cutoff"`
	Deleted int64     `json:"deleted"`
}

// CleanupStatus constants
const (
	CleanupStatusCompleted = "completed"
	CleanupStatusNoop      = "noop"
	CleanupStatusFailed    = "failed"
	CleanupStatusRejected  = "rejected"
)
