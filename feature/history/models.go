package history

import "time"

// Run statuses.
const (
	RunStatusSuccess = "success"
	RunStatusFailed  = "failed"
)

// Run is one recorded sync run.
type Run struct {
	// ID is the run id, a UUID assigned by the sync command.
	ID string `gorm:"primaryKey;size:36" json:"id"`
	// StartedAt is when the run began.
	StartedAt time.Time `gorm:"index" json:"started_at"`
	// FinishedAt is when the run ended, successfully or not.
	FinishedAt time.Time `json:"finished_at"`
	// DryRun marks runs that calculated a plan without applying it.
	DryRun bool `json:"dry_run"`
	// Intents is the number of operations the plan contained.
	Intents int `json:"intents"`
	// Applied, Skipped and Failed tally the operation outcomes.
	Applied int `json:"applied"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
	// Status is success or failed.
	Status string `gorm:"size:16" json:"status"`
	// Error holds the message of the failure that aborted the run.
	Error string `gorm:"type:text" json:"error,omitempty"`
}

// TableName sets the explicit table name for GORM.
func (Run) TableName() string {
	return "sync_runs"
}
