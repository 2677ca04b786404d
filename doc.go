// Package queuectl implements a durable, file-backed background job
// queue with concurrent worker processes, retry with exponential
// backoff, and a dead letter queue.
//
// # Overview
//
// queuectl models a durable job queue with explicit state transitions
// over jobs that run a shell command. It separates the durable
// representation (Store) from the state machine built on top of it
// (Queue), and defines Worker as the thing that repeatedly claims and
// executes jobs.
//
// The package does not mandate a particular storage backend. The
// reference implementation, package fsstore, persists jobs as JSON
// files with OS-level advisory locks; any backend satisfying Store may
// be substituted.
//
// # State Machine
//
// Jobs follow this lifecycle:
//
//	Pending    -> Processing
//	Processing -> Completed
//	Processing -> Pending    (retry, backoff scheduled)
//	Processing -> Dead       (retries exhausted, moved to DLQ)
//	Dead       -> Pending    (requeue from DLQ, attempts reset)
//
// Completed and Dead are the only terminal states, and Dead is only
// terminal until an explicit requeue.
//
// # Retry Policy
//
// Retry behavior is controlled by Config: each failed attempt
// increments Job.Attempts. If Attempts reaches MaxRetries, the job is
// moved to the DLQ as Dead. Otherwise it is rescheduled as Pending
// with NextRetryAt set base^(attempts-1) seconds in the future,
// capped at BackoffMaxDelay.
//
// # Concurrency Model
//
// There is no in-process concurrency in the core: a Worker is a
// single poll loop corresponding to one OS process, and coordination
// between concurrently running workers happens entirely through the
// Store's per-job advisory locks. Running more workers means running
// more Worker processes, not widening an in-process pool.
//
// # Crash Recovery
//
// A worker that crashes mid-execution leaves its claimed job stuck in
// Processing with no live holder of its lock. Reclaimer (and the
// equivalent inline reclaim pass a Worker can run on its own interval)
// detects this by attempting to acquire the job's lock: success while
// the store still records the job as Processing means the job's
// worker is gone, and the job is fed back through the normal failure
// path so it is retried or dead-lettered like any other failure.
//
// # Summary
//
// queuectl provides a minimal, filesystem-native foundation for
// running background jobs across independent worker processes with
// explicit retry semantics, a dead letter queue, and recovery from
// worker crashes.
package queuectl
