package fsstore

import (
	"github.com/synqueue/queuectl"
	"github.com/synqueue/queuectl/job"
)

func (s *Store) readDLQ() ([]*job.Job, error) {
	var jobs []*job.Job
	if err := readJSON(s.dlqPath, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (s *Store) writeDLQ(jobs []*job.Job) error {
	return atomicWriteJSON(s.dlqPath, jobs)
}

// MoveToDLQ removes j from the active set and appends it to the DLQ
// with Status set to job.Dead. The DLQ append happens before the
// active removal: a crash between the two leaves a detectable,
// recoverable duplicate (dropped by Open on the next startup) rather
// than losing the job outright.
func (s *Store) MoveToDLQ(j *job.Job) error {
	return s.withStoreLock(func() error {
		dlq, err := s.readDLQ()
		if err != nil {
			return err
		}
		dead := j.Clone()
		dead.Status = job.Dead
		dlq = append(dlq, dead)
		if err := s.writeDLQ(dlq); err != nil {
			return err
		}

		jobs, err := s.readJobs()
		if err != nil {
			return err
		}
		if i := findJob(jobs, j.Id); i >= 0 {
			jobs = append(jobs[:i], jobs[i+1:]...)
			if err := s.writeJobs(jobs); err != nil {
				return err
			}
		}
		return nil
	})
}

// DLQAll returns every job currently in the DLQ, in insertion order.
func (s *Store) DLQAll() ([]*job.Job, error) {
	dlq, err := s.readDLQ()
	if err != nil {
		return nil, err
	}
	out := make([]*job.Job, len(dlq))
	for i, j := range dlq {
		out[i] = j.Clone()
	}
	return out, nil
}

// DLQGet returns the DLQ job identified by id, or (nil, nil) if
// absent.
func (s *Store) DLQGet(id string) (*job.Job, error) {
	dlq, err := s.readDLQ()
	if err != nil {
		return nil, err
	}
	if i := findJob(dlq, id); i >= 0 {
		return dlq[i].Clone(), nil
	}
	return nil, nil
}

// DLQRemove deletes the DLQ job identified by id, if present. It
// returns queuectl.ErrDLQJobNotFound if no such job exists.
func (s *Store) DLQRemove(id string) error {
	return s.withStoreLock(func() error {
		dlq, err := s.readDLQ()
		if err != nil {
			return err
		}
		i := findJob(dlq, id)
		if i < 0 {
			return queuectl.ErrDLQJobNotFound
		}
		dlq = append(dlq[:i], dlq[i+1:]...)
		return s.writeDLQ(dlq)
	})
}
