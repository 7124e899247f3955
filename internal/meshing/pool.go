package meshing

import (
	"context"

	"github.com/alitto/pond/v2"
)

// Job is a unit of background work run by the pool.
type Job func(ctx context.Context)

// WorkerPool runs generation and meshing jobs on a fixed number of goroutines.
// Idle workers block on the queue; nothing polls.
type WorkerPool struct {
	pool    pond.Pool
	workers int
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewWorkerPool creates a pool with the given number of workers.
func NewWorkerPool(workers int) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())
	return &WorkerPool{
		pool:    pond.NewPool(workers, pond.WithContext(ctx)),
		workers: workers,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// SubmitJob queues a job. Returns false once the pool is shutting down.
func (p *WorkerPool) SubmitJob(job Job) bool {
	if p.ctx.Err() != nil {
		return false
	}
	p.pool.Submit(func() {
		job(p.ctx)
	})
	return true
}

// Shutdown drops queued jobs and waits for running ones to return.
func (p *WorkerPool) Shutdown() {
	p.cancel()
	p.pool.StopAndWait()
}

// Workers returns the configured worker count.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// GetQueueLength returns the number of jobs waiting for a worker.
func (p *WorkerPool) GetQueueLength() int {
	return int(p.pool.WaitingTasks())
}

// GetRunning returns the number of workers currently executing a job.
func (p *WorkerPool) GetRunning() int {
	return int(p.pool.RunningWorkers())
}
