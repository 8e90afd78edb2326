package printer

import (
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

func testQueue(t *testing.T, maxRetries int) *Queue {
	t.Helper()
	manager, err := NewManager(filepath.Join(t.TempDir(), "devices.json"), zap.NewNop())
	if err != nil {
		t.Fatalf("create manager: %v", err)
	}
	q := NewQueue(NewPool(), manager, maxRetries, zap.NewNop())
	t.Cleanup(q.Stop)
	return q
}

func waitForStatus(t *testing.T, q *Queue, jobID string, want JobStatus) *Job {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if job := q.Get(jobID); job != nil && job.Status == want {
			return job
		}
		time.Sleep(20 * time.Millisecond)
	}
	job := q.Get(jobID)
	t.Fatalf("job %s never reached %s, last state: %+v", jobID, want, job)
	return nil
}

func TestEnqueue_ReturnsDistinctIDs(t *testing.T) {
	q := testQueue(t, 3)

	a := q.Enqueue("dev-1", []byte{0x1B, '@'})
	b := q.Enqueue("dev-1", []byte{0x1B, '@'})
	if a == "" || b == "" || a == b {
		t.Errorf("job IDs must be unique and non-empty: %q, %q", a, b)
	}
}

func TestJob_UnknownDeviceFails(t *testing.T) {
	q := testQueue(t, 1)

	id := q.Enqueue("no-such-device", []byte{0x0A})
	job := waitForStatus(t, q, id, StatusFailed)

	if job.Error == "" {
		t.Error("failed job must carry its error")
	}
	if job.Retries != 1 {
		t.Errorf("retries = %d, want 1", job.Retries)
	}
}

func TestGet_ReturnsSnapshot(t *testing.T) {
	q := testQueue(t, 1)

	id := q.Enqueue("no-such-device", []byte{0x0A})
	job := q.Get(id)
	if job == nil {
		t.Fatal("job not found")
	}

	// A job for an unknown device can never complete, so seeing the
	// mutation reflected means Get leaked shared state.
	job.Status = StatusCompleted
	if fresh := q.Get(id); fresh.Status == StatusCompleted {
		t.Error("Get must return a copy, not shared state")
	}
}

func TestGet_UnknownJob(t *testing.T) {
	q := testQueue(t, 1)
	if q.Get("missing") != nil {
		t.Error("unknown job must return nil")
	}
}

func TestClearCompleted_KeepsFailures(t *testing.T) {
	q := testQueue(t, 1)

	id := q.Enqueue("no-such-device", []byte{0x0A})
	waitForStatus(t, q, id, StatusFailed)

	q.ClearCompleted()
	if q.Get(id) == nil {
		t.Error("failed jobs must survive ClearCompleted")
	}
}

func TestOnUpdate_SeesLifecycle(t *testing.T) {
	q := testQueue(t, 1)

	updates := make(chan JobStatus, 16)
	q.OnUpdate(func(j Job) {
		select {
		case updates <- j.Status:
		default:
		}
	})

	q.Enqueue("no-such-device", []byte{0x0A})

	seen := make(map[JobStatus]bool)
	deadline := time.After(5 * time.Second)
	for !seen[StatusFailed] {
		select {
		case s := <-updates:
			seen[s] = true
		case <-deadline:
			t.Fatalf("lifecycle updates incomplete: %v", seen)
		}
	}
	if !seen[StatusQueued] || !seen[StatusPrinting] {
		t.Errorf("missing intermediate states: %v", seen)
	}
}
