package queuectl

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/synqueue/queuectl/job"
	"github.com/synqueue/queuectl/runner"
)

type fakeRunner struct {
	outcome runner.Outcome
	err     error
	calls   atomic.Int32
}

func (f *fakeRunner) Run(ctx context.Context, command string, timeout time.Duration) (runner.Outcome, error) {
	f.calls.Add(1)
	return f.outcome, f.err
}

func testWorkerConfig() WorkerConfig {
	return WorkerConfig{
		WorkerID:     1,
		PollInterval: 10 * time.Millisecond,
		RunTimeout:   time.Second,
	}
}

func TestWorkerProcessesJob(t *testing.T) {
	store := newMemStore()
	q := NewQueue(store)
	run := &fakeRunner{outcome: runner.Outcome{ExitCode: 0}}
	w := NewWorker(q, store, run, testWorkerConfig(), slog.Default())

	if err := q.Enqueue(&job.Job{Id: "j1", Command: "echo hi"}); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(time.Second)
	for {
		got, _ := store.Get("j1")
		if got == nil || got.Status != job.Completed {
			select {
			case <-deadline:
				t.Fatal("job never completed")
			default:
				time.Sleep(5 * time.Millisecond)
				continue
			}
		}
		break
	}

	if err := w.Stop(time.Second); err != nil {
		t.Fatal(err)
	}
}

func TestWorkerRetriesThenDeadLetters(t *testing.T) {
	store := newMemStore()
	q := NewQueue(store)
	run := &fakeRunner{err: errors.New("boom")}
	w := NewWorker(q, store, run, testWorkerConfig(), slog.Default())

	cfg := DefaultConfig()
	cfg.MaxRetries = 2
	cfg.BackoffBase = 1.0
	_ = store.SetConfig(cfg)

	if err := q.Enqueue(&job.Job{Id: "j2", Command: "false"}); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case <-deadline:
			t.Fatal("job never reached dlq")
		default:
		}
		if dj, _ := store.DLQGet("j2"); dj != nil {
			if dj.Status != job.Dead {
				t.Fatalf("expected Dead, got %v", dj.Status)
			}
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	if err := w.Stop(time.Second); err != nil {
		t.Fatal(err)
	}
}

func TestWorkerDoubleStartStop(t *testing.T) {
	store := newMemStore()
	q := NewQueue(store)
	run := &fakeRunner{outcome: runner.Outcome{ExitCode: 0}}
	w := NewWorker(q, store, run, testWorkerConfig(), slog.Default())

	ctx := context.Background()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if err := w.Start(ctx); !errors.Is(err, ErrDoubleStarted) {
		t.Fatalf("expected ErrDoubleStarted, got %v", err)
	}
	if err := w.Stop(time.Second); err != nil {
		t.Fatal(err)
	}
	if err := w.Stop(time.Second); !errors.Is(err, ErrDoubleStopped) {
		t.Fatalf("expected ErrDoubleStopped, got %v", err)
	}
}
