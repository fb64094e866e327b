// internal/domain/run/run.go
package run

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// State is the furthest step a report run reached.
type State string

const (
	StateConfigLoaded  State = "CONFIG_LOADED"
	StateFetched       State = "FETCHED"
	StateWritten       State = "WRITTEN"
	StatePublished     State = "PUBLISHED"
	StatePublishFailed State = "PUBLISH_FAILED" // Report written locally, upload failed
	StateAborted       State = "ABORTED"
)

// Terminal reports whether no further step follows s.
func (s State) Terminal() bool {
	return s == StatePublished || s == StatePublishFailed || s == StateAborted
}

// Run records one execution of the report pipeline.
// Corresponds to the 'report_runs' table.
type Run struct {
	ID          uuid.UUID
	StartedAt   time.Time
	FinishedAt  sql.NullTime
	State       State
	RecordCount int
	OutputFile  sql.NullString
	RemotePath  sql.NullString
	Error       sql.NullString
}

// New starts a run in StateConfigLoaded.
func New(startedAt time.Time) *Run {
	return &Run{
		ID:        uuid.New(),
		StartedAt: startedAt,
		State:     StateConfigLoaded,
	}
}

// Advance moves the run to the next state.
func (r *Run) Advance(s State) {
	r.State = s
}

// Finish stamps the finish time and, when err is non-nil, records it.
func (r *Run) Finish(s State, at time.Time, err error) {
	r.State = s
	r.FinishedAt = sql.NullTime{Time: at, Valid: true}
	if err != nil {
		r.Error = sql.NullString{String: err.Error(), Valid: true}
	}
}
