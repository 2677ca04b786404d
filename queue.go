package queuectl

import (
	"time"

	"github.com/synqueue/queuectl/job"
)

// Queue implements the job state machine on top of a Store. All job
// state transitions go through Queue; callers outside this package
// change only the persisted Config through Store directly.
//
// The state machine:
//
//	Pending    -> Processing   (mark-processing)
//	Processing -> Completed    (mark-completed, terminal)
//	Processing -> Pending      (mark-failed, retries remain; backoff scheduled)
//	Processing -> Dead         (mark-failed, retries exhausted; moved to DLQ)
//	Dead       -> Pending      (requeue-from-dlq, attempts reset to 0)
type Queue struct {
	store Store
}

// NewQueue returns a Queue backed by store.
func NewQueue(store Store) *Queue {
	return &Queue{store: store}
}

// Enqueue adds j to the active set as Pending with a fresh Attempts
// count of zero. If j.MaxRetries is unset, it is filled from the
// store's configured default. It returns ErrDuplicateID if j.Id is
// already active.
func (q *Queue) Enqueue(j *job.Job) error {
	if j.MaxRetries == 0 {
		cfg, err := q.store.GetConfig()
		if err != nil {
			return err
		}
		j.MaxRetries = cfg.MaxRetries
	}
	now := time.Now().UTC()
	j.Status = job.Pending
	j.CreatedAt = now
	j.UpdatedAt = now
	j.Attempts = 0
	j.NextRetryAt = nil
	j.ErrorMessage = nil
	return q.store.Add(j)
}

// PickNext returns the first Pending job, in insertion order, whose
// NextRetryAt is unset or has elapsed. It returns (nil, nil) if no
// job is eligible. PickNext has no side effects: claiming a job for
// execution is the caller's responsibility via Store.AcquireLock.
func (q *Queue) PickNext() (*job.Job, error) {
	pending, err := q.store.ByState(job.Pending)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	for _, j := range pending {
		if j.NextRetryAt == nil || !j.NextRetryAt.After(now) {
			return j, nil
		}
	}
	return nil, nil
}

// MarkProcessing transitions j to Processing.
func (q *Queue) MarkProcessing(j *job.Job) error {
	j.Status = job.Processing
	j.UpdatedAt = time.Now().UTC()
	return q.store.Update(j)
}

// MarkCompleted transitions j to Completed, clearing ErrorMessage.
func (q *Queue) MarkCompleted(j *job.Job) error {
	j.Status = job.Completed
	j.ErrorMessage = nil
	j.UpdatedAt = time.Now().UTC()
	return q.store.Update(j)
}

// MarkFailed records a failed execution attempt. If attempts reach
// j.MaxRetries, j moves to the DLQ with Status Dead. Otherwise it is
// rescheduled as Pending with NextRetryAt advanced by the configured
// exponential backoff.
func (q *Queue) MarkFailed(j *job.Job, errMsg string) error {
	j.Attempts++
	j.ErrorMessage = &errMsg
	j.UpdatedAt = time.Now().UTC()

	if j.Attempts >= j.MaxRetries {
		j.Status = job.Dead
		return q.store.MoveToDLQ(j)
	}

	cfg, err := q.store.GetConfig()
	if err != nil {
		return err
	}
	delay := newBackoffCounter(cfg).delay(j.Attempts)
	next := j.UpdatedAt.Add(delay)
	j.NextRetryAt = &next
	j.Status = job.Pending
	return q.store.Update(j)
}

// RequeueFromDLQ moves the DLQ job identified by id back into the
// active set as Pending, resetting Attempts to zero and clearing
// NextRetryAt and ErrorMessage. It returns false if no such job is in
// the DLQ.
func (q *Queue) RequeueFromDLQ(id string) (bool, error) {
	j, err := q.store.DLQGet(id)
	if err != nil {
		return false, err
	}
	if j == nil {
		return false, nil
	}

	j.Status = job.Pending
	j.Attempts = 0
	j.NextRetryAt = nil
	j.ErrorMessage = nil
	j.UpdatedAt = time.Now().UTC()

	if err := q.store.DLQRemove(id); err != nil {
		return false, err
	}
	if err := q.store.Add(j); err != nil {
		return false, err
	}
	return true, nil
}
