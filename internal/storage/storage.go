package storage

import (
	"time"

	"github.com/modaudit/modaudit/internal/models"
)

// Run is one stored check run: the report plus the time it was taken.
type Run struct {
	Timestamp time.Time      `json:"timestamp"`
	Report    *models.Report `json:"report"`
}

// Storage persists check runs for later comparison.
type Storage interface {
	// SaveRun stores a completed check run.
	SaveRun(run *Run) error

	// LoadRun loads the run taken at a specific timestamp.
	LoadRun(timestamp time.Time) (*Run, error)

	// LatestRun retrieves the most recent run.
	LatestRun() (*Run, error)

	// LastNRuns retrieves up to the last n runs, oldest first.
	LastNRuns(n int) ([]*Run, error)

	// ListRuns returns all stored run timestamps, oldest first.
	ListRuns() ([]time.Time, error)
}
