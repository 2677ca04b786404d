package queuectl

import (
	"sync"

	"github.com/synqueue/queuectl/job"
)

// memStore is a minimal in-memory Store used by this package's own
// tests. It intentionally skips the durability and multi-process
// locking fsstore provides: those are covered by fsstore's own tests.
// It keeps jobs in maps, so ByState, All and DLQAll return them in map
// iteration order, not insertion order.
type memStore struct {
	mu      sync.Mutex
	jobs    map[string]*job.Job
	dlq     map[string]*job.Job
	cfg     Config
	locked  map[string]bool
	noLock  map[string]bool // ids for which AcquireLock always reports contention
}

func newMemStore() *memStore {
	return &memStore{
		jobs:   make(map[string]*job.Job),
		dlq:    make(map[string]*job.Job),
		cfg:    DefaultConfig(),
		locked: make(map[string]bool),
		noLock: make(map[string]bool),
	}
}

func (m *memStore) Get(id string) (*job.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if j, ok := m.jobs[id]; ok {
		return j.Clone(), nil
	}
	return nil, nil
}

func (m *memStore) Add(j *job.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[j.Id]; ok {
		return ErrDuplicateID
	}
	m.jobs[j.Id] = j.Clone()
	return nil
}

func (m *memStore) Update(j *job.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[j.Id]; !ok {
		return ErrJobNotFound
	}
	m.jobs[j.Id] = j.Clone()
	return nil
}

func (m *memStore) ByState(s job.Status) ([]*job.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*job.Job
	for _, j := range m.jobs {
		if j.Status == s {
			out = append(out, j.Clone())
		}
	}
	return out, nil
}

func (m *memStore) All() ([]*job.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*job.Job
	for _, j := range m.jobs {
		out = append(out, j.Clone())
	}
	return out, nil
}

func (m *memStore) MoveToDLQ(j *job.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	dead := j.Clone()
	dead.Status = job.Dead
	m.dlq[j.Id] = dead
	delete(m.jobs, j.Id)
	return nil
}

func (m *memStore) DLQAll() ([]*job.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*job.Job
	for _, j := range m.dlq {
		out = append(out, j.Clone())
	}
	return out, nil
}

func (m *memStore) DLQGet(id string) (*job.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if j, ok := m.dlq[id]; ok {
		return j.Clone(), nil
	}
	return nil, nil
}

func (m *memStore) DLQRemove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.dlq[id]; !ok {
		return ErrDLQJobNotFound
	}
	delete(m.dlq, id)
	return nil
}

func (m *memStore) GetConfig() (Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cfg, nil
}

func (m *memStore) SetConfig(cfg Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg = cfg
	return nil
}

func (m *memStore) Stats() (Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var st Stats
	for _, j := range m.jobs {
		switch j.Status {
		case job.Pending:
			st.Pending++
		case job.Processing:
			st.Processing++
		case job.Completed:
			st.Completed++
		case job.Failed:
			st.Failed++
		}
	}
	st.Dead = len(m.dlq)
	st.Total = len(m.jobs) + len(m.dlq)
	return st, nil
}

type memLock struct {
	m  *memStore
	id string
}

func (l *memLock) Unlock() error {
	l.m.mu.Lock()
	defer l.m.mu.Unlock()
	delete(l.m.locked, l.id)
	return nil
}

func (m *memStore) AcquireLock(id string) (Lock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.noLock[id] {
		return nil, nil
	}
	if m.locked[id] {
		return nil, nil
	}
	m.locked[id] = true
	return &memLock{m: m, id: id}, nil
}
