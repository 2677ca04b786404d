package fsstore

import (
	"github.com/synqueue/queuectl"
	"github.com/synqueue/queuectl/job"
)

func (s *Store) ensureConfig() error {
	return s.withStoreLock(func() error {
		var cfg queuectl.Config
		if err := readJSON(s.configPath, &cfg); err != nil {
			return err
		}
		if cfg == (queuectl.Config{}) {
			return atomicWriteJSON(s.configPath, queuectl.DefaultConfig())
		}
		return nil
	})
}

// GetConfig returns the current persisted configuration. If
// config.json does not yet exist, it returns queuectl.DefaultConfig.
func (s *Store) GetConfig() (queuectl.Config, error) {
	var cfg queuectl.Config
	if err := readJSON(s.configPath, &cfg); err != nil {
		return queuectl.Config{}, err
	}
	if cfg == (queuectl.Config{}) {
		return queuectl.DefaultConfig(), nil
	}
	return cfg, nil
}

// SetConfig persists cfg as the current configuration.
func (s *Store) SetConfig(cfg queuectl.Config) error {
	return s.withStoreLock(func() error {
		return atomicWriteJSON(s.configPath, cfg)
	})
}

// Stats summarizes population counts across the active set and DLQ.
func (s *Store) Stats() (queuectl.Stats, error) {
	jobs, err := s.readJobs()
	if err != nil {
		return queuectl.Stats{}, err
	}
	dlq, err := s.readDLQ()
	if err != nil {
		return queuectl.Stats{}, err
	}

	var st queuectl.Stats
	for _, j := range jobs {
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
	st.Dead = len(dlq)
	st.Total = len(jobs) + len(dlq)
	return st, nil
}
