package fsstore

import (
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/synqueue/queuectl"
)

// fileLock wraps a held flock.Flock so it satisfies queuectl.Lock.
type fileLock struct {
	f *flock.Flock
}

func (l *fileLock) Unlock() error {
	return l.f.Unlock()
}

// AcquireLock attempts to take the exclusive, non-blocking advisory
// lock for job id. It returns (nil, nil) on contention: another
// worker process currently owns the job, which is an expected, routine
// outcome rather than an error.
func (s *Store) AcquireLock(id string) (queuectl.Lock, error) {
	l := flock.New(filepath.Join(s.locksDir, id+".lock"))
	ok, err := l.TryLock()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &fileLock{f: l}, nil
}

// withStoreLock runs fn while holding the store-wide write lock,
// serializing jobs.json, dlq.json and config.json mutations across
// every process sharing this data directory.
func (s *Store) withStoreLock(fn func() error) error {
	l := flock.New(s.storeLockPath)
	if err := l.Lock(); err != nil {
		return err
	}
	defer l.Unlock()
	return fn()
}
