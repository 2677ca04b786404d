package job

import "time"

// Job represents a single unit of work tracked by the queue.
//
// CreatedAt records when the job was first enqueued. UpdatedAt records
// the last state transition.
//
// Status represents the current lifecycle state. Attempts counts
// completed execution attempts (incremented on failure only, never on
// success). MaxRetries is the per-job cap on Attempts before the job
// moves to the Dead Letter Queue.
//
// NextRetryAt, if set, is the earliest time at which the job may be
// picked again; a job whose NextRetryAt is in the future is not
// eligible for Queue.PickNext. ErrorMessage holds the diagnostic from
// the most recent failed attempt; it is cleared on success.
//
// Job values returned by Store and Queue methods are snapshots.
// Mutating a Job directly does not change persisted state; all
// transitions must go through Queue.
type Job struct {
	Id      string `json:"id"`
	Command string `json:"command"`

	Status     Status `json:"state"`
	Attempts   uint32 `json:"attempts"`
	MaxRetries uint32 `json:"max_retries"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	NextRetryAt  *time.Time `json:"next_retry_at"`
	ErrorMessage *string    `json:"error_message"`
}

// Clone returns a deep copy of j, safe to mutate independently of the
// receiver.
func (j *Job) Clone() *Job {
	if j == nil {
		return nil
	}
	out := *j
	if j.NextRetryAt != nil {
		t := *j.NextRetryAt
		out.NextRetryAt = &t
	}
	if j.ErrorMessage != nil {
		m := *j.ErrorMessage
		out.ErrorMessage = &m
	}
	return &out
}
