package queuectl

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/synqueue/queuectl/internal"
	"github.com/synqueue/queuectl/job"
	"github.com/synqueue/queuectl/runner"
)

// WorkerConfig defines runtime behavior of a Worker.
//
// WorkerID is used only for log prefixes. PollInterval is how long the
// worker sleeps after finding no eligible job. RunTimeout is the hard
// wall-clock bound placed on every command execution. ReclaimInterval,
// if non-zero, also runs a reclaim pass on that interval alongside the
// poll loop, so a worker process helps recover jobs abandoned by peers
// that died mid-execution; zero disables it for this worker.
type WorkerConfig struct {
	WorkerID        int
	PollInterval    time.Duration
	RunTimeout      time.Duration
	ReclaimInterval time.Duration
}

// DefaultWorkerConfig returns the spec's defaults: a 1s poll interval
// and a fixed 300s (5 minute) run timeout.
func DefaultWorkerConfig(id int) WorkerConfig {
	return WorkerConfig{
		WorkerID:     id,
		PollInterval: time.Second,
		RunTimeout:   300 * time.Second,
	}
}

// Worker is a single poll loop that repeatedly claims and executes
// jobs against a Queue and Store. A Worker is single-threaded by
// design: coordination across workers is strictly inter-process, so
// one Worker instance stands in for one OS process and never
// dispatches more than one command at a time.
//
// Worker has a strict lifecycle: Start may only be called once; Stop
// signals the loop to exit after its current iteration (a job already
// executing is allowed to finish, or hit RunTimeout, on its own) and
// waits up to the given timeout.
type Worker struct {
	lcBase
	queue *Queue
	store Store
	run   runner.Runner
	log   *slog.Logger
	cfg   WorkerConfig

	reclaim     *reclaimCore
	reclaimTask internal.TimerTask

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewWorker constructs a Worker. The worker is not started
// automatically; call Start to begin polling.
func NewWorker(queue *Queue, store Store, run runner.Runner, cfg WorkerConfig, log *slog.Logger) *Worker {
	w := &Worker{
		queue: queue,
		store: store,
		run:   run,
		log:   log,
		cfg:   cfg,
	}
	if cfg.ReclaimInterval > 0 {
		w.reclaim = &reclaimCore{queue: queue, store: store, log: log}
	}
	return w
}

// Start begins the poll loop. It returns ErrDoubleStarted if the
// worker has already been started.
func (w *Worker) Start(ctx context.Context) error {
	if err := w.tryStart(); err != nil {
		return err
	}
	w.stopCh = make(chan struct{})
	w.wg.Add(1)
	go w.loop()
	if w.reclaim != nil {
		w.reclaimTask.Start(ctx, w.reclaimTick, w.cfg.ReclaimInterval)
	}
	w.log.Info("worker started", "worker", w.cfg.WorkerID)
	return nil
}

func (w *Worker) reclaimTick(ctx context.Context) {
	n, err := w.reclaim.reconcile(ctx)
	if err != nil {
		w.log.Error("reclaim pass failed", "worker", w.cfg.WorkerID, "err", err)
		return
	}
	if n > 0 {
		w.log.Info("reclaimed stuck jobs", "worker", w.cfg.WorkerID, "count", n)
	}
}

func (w *Worker) doStop() internal.DoneChan {
	close(w.stopCh)
	loopDone := internal.WrapWaitGroup(&w.wg)
	if w.reclaim != nil {
		return internal.Combine(loopDone, w.reclaimTask.Stop())
	}
	return loopDone
}

// Stop signals graceful shutdown and waits up to timeout for the loop
// (and, if enabled, the reclaim task) to finish. It returns
// ErrStopTimeout if shutdown does not complete in time, or
// ErrDoubleStopped if the worker is not running.
func (w *Worker) Stop(timeout time.Duration) error {
	return w.tryStop(timeout, w.doStop)
}

func (w *Worker) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.stopCh:
			w.log.Info("worker stopped", "worker", w.cfg.WorkerID)
			return
		default:
		}

		j, err := w.queue.PickNext()
		if err != nil {
			w.log.Error("pick failed", "worker", w.cfg.WorkerID, "err", err)
			w.idle()
			continue
		}
		if j == nil {
			w.idle()
			continue
		}

		lock, err := w.store.AcquireLock(j.Id)
		if err != nil {
			w.log.Error("lock acquire failed", "worker", w.cfg.WorkerID, "id", j.Id, "err", err)
			w.idle()
			continue
		}
		if lock == nil {
			// Another worker owns this job. Loop immediately: an
			// unconditional sleep here would serialize workers against
			// each other for no reason.
			continue
		}

		w.execute(j, lock)
	}
}

func (w *Worker) idle() {
	select {
	case <-time.After(w.cfg.PollInterval):
	case <-w.stopCh:
	}
}

func (w *Worker) execute(j *job.Job, lock Lock) {
	defer func() {
		if err := lock.Unlock(); err != nil {
			w.log.Error("unlock failed", "worker", w.cfg.WorkerID, "id", j.Id, "err", err)
		}
	}()

	if err := w.queue.MarkProcessing(j); err != nil {
		w.log.Error("mark processing failed", "worker", w.cfg.WorkerID, "id", j.Id, "err", err)
		return
	}
	w.log.Info("processing job", "worker", w.cfg.WorkerID, "id", j.Id, "command", j.Command)

	// Execution is deliberately decoupled from the worker's own
	// shutdown signal: a shutdown must let the current job run to
	// completion (or its own RunTimeout), never cancel it early.
	outcome, err := w.run.Run(context.Background(), j.Command, w.cfg.RunTimeout)
	switch {
	case err != nil:
		w.fail(j, err.Error())
	case outcome.TimedOut:
		w.fail(j, "Command timeout (5 minutes)")
	case outcome.ExitCode == 0:
		if err := w.queue.MarkCompleted(j); err != nil {
			w.log.Error("mark completed failed", "worker", w.cfg.WorkerID, "id", j.Id, "err", err)
			return
		}
		w.log.Info("job completed", "worker", w.cfg.WorkerID, "id", j.Id)
	default:
		msg := outcome.Stderr
		if msg == "" {
			msg = fmt.Sprintf("Exit code: %d", outcome.ExitCode)
		}
		w.fail(j, msg)
	}
}

func (w *Worker) fail(j *job.Job, msg string) {
	if err := w.queue.MarkFailed(j, msg); err != nil {
		w.log.Error("mark failed failed", "worker", w.cfg.WorkerID, "id", j.Id, "err", err)
		return
	}
	w.log.Warn("job failed", "worker", w.cfg.WorkerID, "id", j.Id, "attempts", j.Attempts, "error", msg)
}
