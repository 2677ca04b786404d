package fsstore

import (
	"os"
	"path/filepath"

	"github.com/synqueue/queuectl"
	"github.com/synqueue/queuectl/job"
)

// Store is a queuectl.Store backed by JSON files in a data directory.
// A Store value is safe for concurrent use by multiple goroutines and,
// because its mutations go through OS advisory file locks, by multiple
// independent processes sharing the same directory.
type Store struct {
	dir           string
	jobsPath      string
	dlqPath       string
	configPath    string
	locksDir      string
	storeLockPath string
}

// Open prepares dir as a fsstore data directory, creating locks/, empty
// jobs.json and dlq.json arrays, and a default config.json if any is
// missing, then reconciling jobs.json against dlq.json to drop any
// active-side duplicate left by a crash during a prior MoveToDLQ.
func Open(dir string) (*Store, error) {
	locksDir := filepath.Join(dir, "locks")
	if err := os.MkdirAll(locksDir, 0o755); err != nil {
		return nil, err
	}
	s := &Store{
		dir:           dir,
		jobsPath:      filepath.Join(dir, "jobs.json"),
		dlqPath:       filepath.Join(dir, "dlq.json"),
		configPath:    filepath.Join(dir, "config.json"),
		locksDir:      locksDir,
		storeLockPath: filepath.Join(locksDir, ".store.lock"),
	}
	if err := s.withStoreLock(func() error {
		for _, p := range []string{s.jobsPath, s.dlqPath} {
			if _, err := os.Stat(p); os.IsNotExist(err) {
				if err := atomicWriteJSON(p, []*job.Job{}); err != nil {
					return err
				}
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if err := s.ensureConfig(); err != nil {
		return nil, err
	}
	if err := s.reconcile(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) readJobs() ([]*job.Job, error) {
	var jobs []*job.Job
	if err := readJSON(s.jobsPath, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (s *Store) writeJobs(jobs []*job.Job) error {
	return atomicWriteJSON(s.jobsPath, jobs)
}

func findJob(jobs []*job.Job, id string) int {
	for i, j := range jobs {
		if j.Id == id {
			return i
		}
	}
	return -1
}

// Get returns the active job identified by id, or (nil, nil) if no
// such job exists.
func (s *Store) Get(id string) (*job.Job, error) {
	jobs, err := s.readJobs()
	if err != nil {
		return nil, err
	}
	if i := findJob(jobs, id); i >= 0 {
		return jobs[i].Clone(), nil
	}
	return nil, nil
}

// Add inserts a new job into the active set. It returns
// queuectl.ErrDuplicateID if id is already active.
func (s *Store) Add(j *job.Job) error {
	return s.withStoreLock(func() error {
		jobs, err := s.readJobs()
		if err != nil {
			return err
		}
		if findJob(jobs, j.Id) >= 0 {
			return queuectl.ErrDuplicateID
		}
		jobs = append(jobs, j.Clone())
		return s.writeJobs(jobs)
	})
}

// Update rewrites an existing active job. It returns
// queuectl.ErrJobNotFound if id is not active.
func (s *Store) Update(j *job.Job) error {
	return s.withStoreLock(func() error {
		jobs, err := s.readJobs()
		if err != nil {
			return err
		}
		i := findJob(jobs, j.Id)
		if i < 0 {
			return queuectl.ErrJobNotFound
		}
		jobs[i] = j.Clone()
		return s.writeJobs(jobs)
	})
}

// ByState returns active jobs with the given status, in insertion
// order.
func (s *Store) ByState(status job.Status) ([]*job.Job, error) {
	jobs, err := s.readJobs()
	if err != nil {
		return nil, err
	}
	var out []*job.Job
	for _, j := range jobs {
		if j.Status == status {
			out = append(out, j.Clone())
		}
	}
	return out, nil
}

// All returns every active job, in insertion order.
func (s *Store) All() ([]*job.Job, error) {
	jobs, err := s.readJobs()
	if err != nil {
		return nil, err
	}
	out := make([]*job.Job, len(jobs))
	for i, j := range jobs {
		out[i] = j.Clone()
	}
	return out, nil
}
