package queuectl

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/synqueue/queuectl/job"
)

var (
	// ErrJobNotFound is returned by Store.Update and Store.Get-adjacent
	// operations when the referenced active job does not exist.
	ErrJobNotFound = errors.New("queuectl: job not found")

	// ErrDLQJobNotFound is returned when an operation references a DLQ
	// job id that does not exist.
	ErrDLQJobNotFound = errors.New("queuectl: dlq job not found")

	// ErrDuplicateID is returned by Store.Add (via Queue.Enqueue) when a
	// job id is already present in the active set.
	ErrDuplicateID = errors.New("queuectl: job id already active")
)

// Config holds the process-wide, persisted queue tunables.
type Config struct {
	MaxRetries      uint32
	BackoffBase     float64
	BackoffMaxDelay time.Duration
}

// configWire is the on-disk/wire shape of Config. BackoffMaxDelay is
// persisted as a plain integer number of seconds, not a Go
// time.Duration's nanosecond count, per the documented config.json
// format.
type configWire struct {
	MaxRetries      uint32  `json:"max_retries"`
	BackoffBase     float64 `json:"backoff_base"`
	BackoffMaxDelay int64   `json:"backoff_max_delay"`
}

// MarshalJSON implements json.Marshaler, encoding BackoffMaxDelay as
// whole seconds.
func (c Config) MarshalJSON() ([]byte, error) {
	return json.Marshal(configWire{
		MaxRetries:      c.MaxRetries,
		BackoffBase:     c.BackoffBase,
		BackoffMaxDelay: int64(c.BackoffMaxDelay / time.Second),
	})
}

// UnmarshalJSON implements json.Unmarshaler, decoding BackoffMaxDelay
// from whole seconds.
func (c *Config) UnmarshalJSON(data []byte) error {
	var raw configWire
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.MaxRetries = raw.MaxRetries
	c.BackoffBase = raw.BackoffBase
	c.BackoffMaxDelay = time.Duration(raw.BackoffMaxDelay) * time.Second
	return nil
}

// DefaultConfig returns the configuration a freshly initialized store
// starts with.
func DefaultConfig() Config {
	return Config{
		MaxRetries:      3,
		BackoffBase:     2.0,
		BackoffMaxDelay: time.Hour,
	}
}

// Stats summarizes the job population across the active set and DLQ.
type Stats struct {
	Pending    int
	Processing int
	Completed  int
	Failed     int
	Dead       int
	Total      int
}

// Lock represents ownership of a job's per-id advisory lock. Unlock
// releases it.
type Lock interface {
	Unlock() error
}

// Store is the durable, concurrency-safe representation of jobs, the
// DLQ, and config. Implementations must provide atomic whole-file
// durability and per-job mutual exclusion across independent worker
// processes; see package fsstore for the on-disk implementation.
//
// Store methods are safe to call from multiple goroutines and,
// depending on the implementation, from multiple independent
// processes sharing the same backing directory.
type Store interface {
	// Get returns the active job identified by id, or (nil, nil) if no
	// such job exists.
	Get(id string) (*job.Job, error)

	// Add inserts a new job into the active set. It returns
	// ErrDuplicateID if id is already active.
	Add(j *job.Job) error

	// Update rewrites an existing active job. It returns ErrJobNotFound
	// if id is not active.
	Update(j *job.Job) error

	// ByState returns active jobs with the given status, in insertion
	// order.
	ByState(s job.Status) ([]*job.Job, error)

	// All returns every active job, in insertion order.
	All() ([]*job.Job, error)

	// MoveToDLQ removes j from the active set and appends it to the DLQ
	// with Status set to job.Dead. The DLQ append happens before the
	// active removal so that a crash mid-operation leaves a detectable,
	// recoverable duplicate rather than losing the job.
	MoveToDLQ(j *job.Job) error

	// DLQAll returns every job currently in the DLQ, in insertion order.
	DLQAll() ([]*job.Job, error)

	// DLQGet returns the DLQ job identified by id, or (nil, nil) if
	// absent.
	DLQGet(id string) (*job.Job, error)

	// DLQRemove deletes the DLQ job identified by id. It returns
	// ErrDLQJobNotFound if no such job is in the DLQ.
	DLQRemove(id string) error

	// GetConfig returns the current persisted configuration.
	GetConfig() (Config, error)

	// SetConfig persists cfg as the current configuration.
	SetConfig(cfg Config) error

	// Stats returns current population counts across active and DLQ.
	Stats() (Stats, error)

	// AcquireLock attempts to take the exclusive, non-blocking advisory
	// lock conferring execution rights over job id. On success it
	// returns a Lock; on contention it returns (nil, nil) — not an
	// error, since lock contention is an expected, routine outcome of
	// multiple workers racing for the same job.
	AcquireLock(id string) (Lock, error)
}
