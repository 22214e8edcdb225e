package jobs

import (
	"time"

	"github.com/nattycheck/api/internal/domain/analysis"
)

// JobID tipe untuk Job
type JobID string

// Status enum
type Status string

const (
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusDone       Status = "done"
	StatusFailed     Status = "failed"
)

// Terminal reports whether the status is final. A terminal job is never
// mutated again.
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusFailed
}

// Aggregate Root: Job
//
// Results is non-nil exactly when Status == done. The report payload is
// stored verbatim and treated as read-only once set.
type Job struct {
	ID        JobID            `json:"jobId"`
	Status    Status           `json:"status"`
	Message   string           `json:"message"`
	Results   *analysis.Report `json:"results"`
	CreatedAt time.Time        `json:"createdAt"`
}

// Clone returns a snapshot copy of the record. The result pointer is shared:
// reports are immutable after the terminal transition.
func (j *Job) Clone() *Job {
	cp := *j
	return &cp
}
