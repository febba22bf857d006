package queue

import (
	"time"

	"github.com/google/uuid"
)

// State is the terminal outcome of a job.
type State string

const (
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
	StateTimedOut  State = "timed_out"
)

// Job is one unit of work submitted to the broker.
type Job struct {
	ID          uuid.UUID
	Name        string
	Payload     string
	SubmittedAt time.Time
}

// NewJob builds a job with a fresh identifier.
func NewJob(name, payload string) Job {
	return Job{
		ID:          uuid.New(),
		Name:        name,
		Payload:     payload,
		SubmittedAt: time.Now(),
	}
}

// Result records how a job ended.
type Result struct {
	JobID        uuid.UUID
	Name         string
	State        State
	Output       string
	ErrorMessage string
	Duration     time.Duration
	FinishedAt   time.Time
}
