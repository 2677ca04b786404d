package queuectl

import (
	"context"
	"log/slog"
	"time"

	"github.com/synqueue/queuectl/internal"
	"github.com/synqueue/queuectl/job"
)

// reclaimCore scans Processing jobs for ones whose owning worker has
// died and feeds them back through the normal failure path.
//
// Detection relies on the same per-job lock workers use for execution
// rights: a live worker takes a job's lock before MarkProcessing and
// releases it only after recording the outcome, so it holds the lock
// for as long as the job is Processing. If reconcile can acquire the
// lock of a job the store still records as Processing, the worker
// that last held it is gone.
type reclaimCore struct {
	queue *Queue
	store Store
	log   *slog.Logger
}

func (rc *reclaimCore) reconcile(context.Context) (int, error) {
	processing, err := rc.store.ByState(job.Processing)
	if err != nil {
		return 0, err
	}
	reclaimed := 0
	for _, j := range processing {
		lock, err := rc.store.AcquireLock(j.Id)
		if err != nil {
			rc.log.Error("reclaim: lock acquire failed", "id", j.Id, "err", err)
			continue
		}
		if lock == nil {
			continue // a worker is still alive and holding this job
		}
		if err := rc.queue.MarkFailed(j, "worker crashed while processing"); err != nil {
			rc.log.Error("reclaim: mark failed failed", "id", j.Id, "err", err)
		} else {
			reclaimed++
		}
		if err := lock.Unlock(); err != nil {
			rc.log.Error("reclaim: unlock failed", "id", j.Id, "err", err)
		}
	}
	return reclaimed, nil
}

// Reclaimer periodically reconciles Processing jobs abandoned by a
// worker that died mid-execution, an administrative action the
// original specification anticipated but left unimplemented. It runs
// either as a standalone background task (Start/Stop) or as a single
// pass through Reconcile, which the CLI's one-shot `reclaim` command
// uses; reclaimCore is also embedded directly in Worker so every
// running worker can reclaim on an interval.
type Reclaimer struct {
	lcBase
	core     reclaimCore
	task     internal.TimerTask
	interval time.Duration
}

// NewReclaimer returns a Reclaimer that reconciles queue and store on
// the given interval once started.
func NewReclaimer(queue *Queue, store Store, interval time.Duration, log *slog.Logger) *Reclaimer {
	return &Reclaimer{
		core:     reclaimCore{queue: queue, store: store, log: log},
		interval: interval,
	}
}

// Reconcile runs one reclaim pass immediately and returns the number
// of jobs reclaimed. It may be called whether or not the Reclaimer is
// started, for one-shot CLI use.
func (r *Reclaimer) Reconcile(ctx context.Context) (int, error) {
	return r.core.reconcile(ctx)
}

func (r *Reclaimer) tick(ctx context.Context) {
	n, err := r.core.reconcile(ctx)
	if err != nil {
		r.core.log.Error("reclaim pass failed", "err", err)
		return
	}
	if n > 0 {
		r.core.log.Info("reclaimed stuck jobs", "count", n)
	}
}

// Start begins periodic reconciliation. Start returns ErrDoubleStarted
// if already running.
func (r *Reclaimer) Start(ctx context.Context) error {
	if err := r.tryStart(); err != nil {
		return err
	}
	r.task.Start(ctx, r.tick, r.interval)
	return nil
}

// Stop halts periodic reconciliation, waiting up to timeout for the
// in-flight pass to finish.
func (r *Reclaimer) Stop(timeout time.Duration) error {
	return r.tryStop(timeout, r.task.Stop)
}
