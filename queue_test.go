package queuectl

import (
	"testing"
	"time"

	"github.com/synqueue/queuectl/job"
)

func TestEnqueueFillsDefaults(t *testing.T) {
	store := newMemStore()
	q := NewQueue(store)

	j := &job.Job{Id: "a", Command: "echo hi"}
	if err := q.Enqueue(j); err != nil {
		t.Fatal(err)
	}

	got, _ := store.Get("a")
	if got.Status != job.Pending {
		t.Fatalf("expected Pending, got %v", got.Status)
	}
	if got.MaxRetries != DefaultConfig().MaxRetries {
		t.Fatalf("expected default MaxRetries, got %d", got.MaxRetries)
	}
}

func TestEnqueueDuplicate(t *testing.T) {
	store := newMemStore()
	q := NewQueue(store)

	if err := q.Enqueue(&job.Job{Id: "dup", Command: "true"}); err != nil {
		t.Fatal(err)
	}
	if err := q.Enqueue(&job.Job{Id: "dup", Command: "true"}); err != ErrDuplicateID {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestPickNextSkipsFutureRetry(t *testing.T) {
	store := newMemStore()
	q := NewQueue(store)

	future := time.Now().Add(time.Hour)
	_ = store.Add(&job.Job{Id: "later", Status: job.Pending, NextRetryAt: &future})
	_ = store.Add(&job.Job{Id: "now", Status: job.Pending})

	j, err := q.PickNext()
	if err != nil {
		t.Fatal(err)
	}
	if j == nil || j.Id != "now" {
		t.Fatalf("expected to pick 'now', got %v", j)
	}
}

func TestPickNextNoneEligible(t *testing.T) {
	store := newMemStore()
	q := NewQueue(store)

	j, err := q.PickNext()
	if err != nil {
		t.Fatal(err)
	}
	if j != nil {
		t.Fatalf("expected nil, got %v", j)
	}
}

func TestMarkFailedSchedulesRetry(t *testing.T) {
	store := newMemStore()
	q := NewQueue(store)

	j := &job.Job{Id: "r", Status: job.Processing, MaxRetries: 3}
	_ = store.Add(j)

	if err := q.MarkFailed(j, "boom"); err != nil {
		t.Fatal(err)
	}
	if j.Status != job.Pending {
		t.Fatalf("expected Pending after first failure, got %v", j.Status)
	}
	if j.Attempts != 1 {
		t.Fatalf("expected Attempts=1, got %d", j.Attempts)
	}
	if j.NextRetryAt == nil || !j.NextRetryAt.After(time.Now()) {
		t.Fatal("expected NextRetryAt to be set in the future")
	}
	if j.ErrorMessage == nil || *j.ErrorMessage != "boom" {
		t.Fatalf("expected ErrorMessage 'boom', got %v", j.ErrorMessage)
	}
}

func TestMarkFailedExhaustsToDLQ(t *testing.T) {
	store := newMemStore()
	q := NewQueue(store)

	j := &job.Job{Id: "d", Status: job.Processing, MaxRetries: 1}
	_ = store.Add(j)

	if err := q.MarkFailed(j, "fatal"); err != nil {
		t.Fatal(err)
	}
	if j.Status != job.Dead {
		t.Fatalf("expected Dead, got %v", j.Status)
	}
	if _, ok := store.jobs["d"]; ok {
		t.Fatal("expected job removed from active set")
	}
	if _, ok := store.dlq["d"]; !ok {
		t.Fatal("expected job present in dlq")
	}
}

func TestMarkCompletedClearsError(t *testing.T) {
	store := newMemStore()
	q := NewQueue(store)

	msg := "previous failure"
	j := &job.Job{Id: "c", Status: job.Processing, ErrorMessage: &msg}
	_ = store.Add(j)

	if err := q.MarkCompleted(j); err != nil {
		t.Fatal(err)
	}
	if j.Status != job.Completed {
		t.Fatalf("expected Completed, got %v", j.Status)
	}
	if j.ErrorMessage != nil {
		t.Fatal("expected ErrorMessage cleared")
	}
}

func TestRequeueFromDLQ(t *testing.T) {
	store := newMemStore()
	q := NewQueue(store)

	errMsg := "fatal"
	dead := &job.Job{Id: "rq", Status: job.Dead, Attempts: 3, ErrorMessage: &errMsg}
	store.dlq["rq"] = dead

	ok, err := q.RequeueFromDLQ("rq")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected requeue to succeed")
	}

	got, _ := store.Get("rq")
	if got == nil {
		t.Fatal("expected job back in active set")
	}
	if got.Status != job.Pending || got.Attempts != 0 || got.ErrorMessage != nil {
		t.Fatalf("expected reset Pending job, got %+v", got)
	}
	if _, ok := store.dlq["rq"]; ok {
		t.Fatal("expected job removed from dlq")
	}
}

func TestRequeueFromDLQMissing(t *testing.T) {
	store := newMemStore()
	q := NewQueue(store)

	ok, err := q.RequeueFromDLQ("nope")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected false for missing dlq job")
	}
}
