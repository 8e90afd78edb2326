package printer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// JobStatus is the lifecycle state of one queued print.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusPrinting  JobStatus = "printing"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
)

// Job is one rendered receipt awaiting delivery.
type Job struct {
	ID        string
	DeviceID  string
	Payload   []byte
	Retries   int
	Status    JobStatus
	Error     string
	CreatedAt time.Time
}

// Queue delivers jobs to devices in order, reconnecting and retrying on
// failure. One worker drains the queue; senders never block on the
// device.
type Queue struct {
	jobs       []*Job
	pool       *Pool
	manager    *Manager
	maxRetries int
	log        *zap.Logger
	onUpdate   func(Job)

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewQueue creates a queue and starts its worker.
func NewQueue(pool *Pool, manager *Manager, maxRetries int, log *zap.Logger) *Queue {
	ctx, cancel := context.WithCancel(context.Background())
	q := &Queue{
		pool:       pool,
		manager:    manager,
		maxRetries: maxRetries,
		log:        log,
		ctx:        ctx,
		cancel:     cancel,
	}

	q.wg.Add(1)
	go q.worker()
	return q
}

// OnUpdate registers a callback invoked with a snapshot of every job
// state change. Set it before the first Enqueue.
func (q *Queue) OnUpdate(fn func(Job)) {
	q.mu.Lock()
	q.onUpdate = fn
	q.mu.Unlock()
}

// Enqueue adds a rendered receipt for delivery and returns the job ID.
func (q *Queue) Enqueue(deviceID string, payload []byte) string {
	q.mu.Lock()
	defer q.mu.Unlock()

	job := &Job{
		ID:        uuid.New().String(),
		DeviceID:  deviceID,
		Payload:   payload,
		Status:    StatusQueued,
		CreatedAt: time.Now(),
	}
	q.jobs = append(q.jobs, job)
	q.notifyLocked(job)

	q.log.Info("job enqueued",
		zap.String("job_id", job.ID),
		zap.String("device_id", deviceID),
		zap.Int("bytes", len(payload)))
	return job.ID
}

func (q *Queue) worker() {
	defer q.wg.Done()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-q.ctx.Done():
			return
		case <-ticker.C:
			q.processNext()
		}
	}
}

func (q *Queue) processNext() {
	q.mu.Lock()
	var job *Job
	for _, j := range q.jobs {
		if j.Status == StatusQueued {
			job = j
			job.Status = StatusPrinting
			q.notifyLocked(job)
			break
		}
	}
	q.mu.Unlock()

	if job == nil {
		return
	}

	err := q.deliver(job)

	q.mu.Lock()
	defer q.mu.Unlock()

	if err != nil {
		job.Retries++
		job.Error = err.Error()
		if job.Retries >= q.maxRetries {
			job.Status = StatusFailed
			q.log.Error("job failed",
				zap.String("job_id", job.ID),
				zap.Int("retries", job.Retries),
				zap.Error(err))
		} else {
			job.Status = StatusQueued
			q.log.Warn("job delivery failed, retrying",
				zap.String("job_id", job.ID),
				zap.Int("attempt", job.Retries),
				zap.Int("max", q.maxRetries),
				zap.Error(err))
		}
	} else {
		job.Status = StatusCompleted
		job.Error = ""
		q.log.Info("job completed", zap.String("job_id", job.ID))
	}
	q.notifyLocked(job)
}

func (q *Queue) deliver(job *Job) error {
	if !q.pool.IsConnected(job.DeviceID) {
		dev := q.manager.Get(job.DeviceID)
		if dev == nil {
			return fmt.Errorf("device not found: %s", job.DeviceID)
		}
		if err := q.pool.Connect(dev); err != nil {
			return fmt.Errorf("connect device %s: %w", job.DeviceID, err)
		}
	}
	return q.pool.Send(job.DeviceID, job.Payload)
}

// Get returns a snapshot of one job, or nil if unknown.
func (q *Queue) Get(jobID string) *Job {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, job := range q.jobs {
		if job.ID == jobID {
			cp := *job
			return &cp
		}
	}
	return nil
}

// All returns snapshots of every job, oldest first.
func (q *Queue) All() []*Job {
	q.mu.Lock()
	defer q.mu.Unlock()

	jobs := make([]*Job, len(q.jobs))
	for i, job := range q.jobs {
		cp := *job
		jobs[i] = &cp
	}
	return jobs
}

// ClearCompleted drops completed jobs, keeping failures for inspection.
func (q *Queue) ClearCompleted() {
	q.mu.Lock()
	defer q.mu.Unlock()

	kept := q.jobs[:0]
	for _, job := range q.jobs {
		if job.Status != StatusCompleted {
			kept = append(kept, job)
		}
	}
	q.jobs = kept
}

// Stop halts the worker after the in-flight job finishes.
func (q *Queue) Stop() {
	q.cancel()
	q.wg.Wait()
}

func (q *Queue) notifyLocked(job *Job) {
	if q.onUpdate != nil {
		q.onUpdate(*job)
	}
}
