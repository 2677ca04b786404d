// Package fsstore provides a filesystem-based implementation of
// queuectl.Store.
//
// This package implements the queuectl.Store interface using plain
// JSON files and OS-level advisory file locks via
// github.com/gofrs/flock, rather than a database.
//
// # Overview
//
// The filesystem backend provides:
//
//   - durable persistence of jobs via atomic whole-file rewrites
//   - a store-wide lock serializing concurrent writers across processes
//   - per-job advisory locks conferring execution rights to a worker
//   - a dead letter queue stored as a second JSON file
//
// It is compatible with any number of independent OS processes sharing
// the same data directory, subject to the guarantees advisory file
// locks provide on the host filesystem (local filesystems only; NFS
// and similar network filesystems do not reliably honor flock).
//
// # Layout
//
// Open(dir) expects (and creates, if absent) the following layout
// under dir:
//
//	jobs.json     active jobs, as a JSON array
//	dlq.json      dead-lettered jobs, as a JSON array
//	config.json   persisted Config
//	locks/        one lock file per job id, plus .store.lock
//
// # Concurrency Model
//
// Every mutation of jobs.json, dlq.json, or config.json is performed
// while holding locks/.store.lock, read-modify-write, then released.
// Readers do not take this lock: renames are atomic, so a reader never
// observes a partially written file, only a possibly-stale one.
//
// AcquireLock is independent of the store lock: it is a non-blocking
// attempt on locks/<id>.lock, returning (nil, nil) on contention so
// callers can treat "another worker owns this job" as a routine,
// zero-cost outcome rather than an error.
//
// # Crash Recovery
//
// MoveToDLQ appends to dlq.json before removing the job from
// jobs.json, so a crash between the two leaves the job duplicated
// rather than lost. Open reconciles this on startup by dropping any
// active-side entry whose id is also present in the DLQ.
package fsstore
