package main

import (
	"context"
	"errors"
	"testing"
	"time"
)

// scriptedCheck returns the given statuses in order, repeating the last
// one, and counts how many times it was asked.
type scriptedCheck struct {
	statuses []string
	calls    int
}

func (s *scriptedCheck) check(context.Context) (*Task, error) {
	i := s.calls
	if i >= len(s.statuses) {
		i = len(s.statuses) - 1
	}
	s.calls++
	task := &Task{ID: "t1", Status: s.statuses[i]}
	if task.Status == StatusCompleted {
		task.Generated = []GeneratedAsset{{URL: "https://cdn.example/img.png"}}
	}
	return task, nil
}

// ---------------------------------------------------------------------------
// Terminal states
// ---------------------------------------------------------------------------

func TestWaitReturnsOnCompletion(t *testing.T) {
	s := &scriptedCheck{statuses: []string{StatusInProgress, StatusInProgress, StatusCompleted}}

	task, err := waitForTask(context.Background(), "t1", s.check, time.Millisecond, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Status != StatusCompleted {
		t.Fatalf("expected COMPLETED, got %s", task.Status)
	}
	if s.calls != 3 {
		t.Fatalf("expected exactly 3 status checks, got %d", s.calls)
	}
}

func TestWaitCompletedOnFirstCheck(t *testing.T) {
	s := &scriptedCheck{statuses: []string{StatusCompleted}}

	if _, err := waitForTask(context.Background(), "t1", s.check, time.Hour, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// a task that is already done must not wait a single interval
	if s.calls != 1 {
		t.Fatalf("expected 1 status check, got %d", s.calls)
	}
}

func TestWaitGenerationFailed(t *testing.T) {
	s := &scriptedCheck{statuses: []string{StatusCreated, StatusFailed}}

	_, err := waitForTask(context.Background(), "t1", s.check, time.Millisecond, 10)
	var failed *GenerationFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("expected GenerationFailedError, got %v", err)
	}
	if failed.TaskID != "t1" {
		t.Fatalf("expected task id t1, got %s", failed.TaskID)
	}
	if s.calls != 2 {
		t.Fatalf("expected 2 status checks, got %d", s.calls)
	}
}

// ---------------------------------------------------------------------------
// Budget exhaustion and early exits
// ---------------------------------------------------------------------------

func TestWaitTimeoutAfterMaxAttempts(t *testing.T) {
	s := &scriptedCheck{statuses: []string{StatusInProgress}}

	_, err := waitForTask(context.Background(), "t1", s.check, time.Millisecond, 5)
	var timeout *TimeoutError
	if !errors.As(err, &timeout) {
		t.Fatalf("expected TimeoutError, got %v", err)
	}
	if timeout.TaskID != "t1" || timeout.Attempts != 5 {
		t.Fatalf("unexpected timeout detail: %+v", timeout)
	}
	if s.calls != 5 {
		t.Fatalf("expected exactly 5 status checks, got %d", s.calls)
	}
}

func TestWaitCheckErrorStopsImmediately(t *testing.T) {
	calls := 0
	check := func(context.Context) (*Task, error) {
		calls++
		return nil, &APIError{StatusCode: 500, Body: "boom"}
	}

	_, err := waitForTask(context.Background(), "t1", check, time.Millisecond, 10)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	// transport failures are not retried by the poller
	if calls != 1 {
		t.Fatalf("expected 1 status check, got %d", calls)
	}
}

func TestWaitStopsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := &scriptedCheck{statuses: []string{StatusInProgress}}

	check := func(ctx context.Context) (*Task, error) {
		cancel() // cancel during the first check; the wait must notice
		return s.check(ctx)
	}

	_, err := waitForTask(ctx, "t1", check, time.Hour, 10)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if s.calls != 1 {
		t.Fatalf("expected 1 status check, got %d", s.calls)
	}
}
