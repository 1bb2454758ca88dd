// Package parallel runs independent batch jobs, such as skeletonizing a set
// of input files, on a fixed set of worker goroutines.
package parallel

import (
	"context"
	"runtime"
	"sync"
)

// Job is one unit of batch work. Jobs must not share mutable state.
type Job func(ctx context.Context) error

// task pairs a job with its context and completion callback.
type task struct {
	ctx  context.Context
	job  Job
	done func(error)
}

// run executes the job unless its context has already been canceled.
func (t task) run() {
	if t.job == nil {
		t.done(nil)
		return
	}
	if err := t.ctx.Err(); err != nil {
		t.done(err)
		return
	}
	t.done(t.job(t.ctx))
}

// WorkerPool is a fixed set of goroutines that execute jobs.
//
// Each worker owns a queue. A worker whose queue is empty steals from the
// other queues, so a batch with one slow input does not leave the other
// workers idle.
//
// Thread safety: WorkerPool is safe for concurrent use. Run and Submit may
// overlap Close; jobs queued before Close still run.
type WorkerPool struct {
	workers int

	// queues holds per-worker task queues.
	queues []chan task

	// done signals workers to stop.
	done chan struct{}

	wg sync.WaitGroup

	// mu orders enqueueing against Close. Senders hold it shared, Close
	// holds it exclusively while flipping closed.
	mu     sync.RWMutex
	closed bool
}

// NewWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan task, workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan task, queueSize)
	}

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	own := p.queues[id]
	for {
		select {
		case <-p.done:
			p.drain(own)
			return
		case t := <-own:
			t.run()
		default:
			if t, ok := p.steal(id); ok {
				t.run()
				continue
			}
			select {
			case <-p.done:
				p.drain(own)
				return
			case t := <-own:
				t.run()
			}
		}
	}
}

// drain runs whatever is left in queue.
func (p *WorkerPool) drain(queue chan task) {
	for {
		select {
		case t := <-queue:
			t.run()
		default:
			return
		}
	}
}

// steal takes one task from another worker's queue.
func (p *WorkerPool) steal(self int) (task, bool) {
	for i := range p.workers {
		if i == self {
			continue
		}
		select {
		case t := <-p.queues[i]:
			return t, true
		default:
		}
	}
	return task{}, false
}

// Run executes jobs and waits for all of them. The returned slice holds
// the error of jobs[i] at index i. Jobs that had not started when ctx was
// canceled report ctx.Err(). If the pool is closed, every job reports
// ErrClosed.
func (p *WorkerPool) Run(ctx context.Context, jobs []Job) []error {
	results := make([]<-chan error, len(jobs))
	for i, job := range jobs {
		results[i] = p.Submit(ctx, job)
	}

	errs := make([]error, len(jobs))
	for i, ch := range results {
		errs[i] = <-ch
	}
	return errs
}

// Submit queues a single job on the shortest queue and returns a channel
// that receives its error once it has run. If the pool is closed, the
// channel receives ErrClosed.
func (p *WorkerPool) Submit(ctx context.Context, job Job) <-chan error {
	result := make(chan error, 1)
	t := task{
		ctx:  ctx,
		job:  job,
		done: func(err error) { result <- err },
	}
	if !p.enqueue(t) {
		t.done(ErrClosed)
	}
	return result
}

// enqueue puts t on the shortest queue. It reports false if the pool is
// closed. A full queue blocks until a worker makes room; workers keep
// consuming until Close, which cannot proceed while a send is pending.
func (p *WorkerPool) enqueue(t task) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}

	shortest := 0
	for i := 1; i < p.workers; i++ {
		if len(p.queues[i]) < len(p.queues[shortest]) {
			shortest = i
		}
	}
	p.queues[shortest] <- t
	return true
}

// Close stops accepting work, runs everything already queued and stops
// the workers. Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.done)
	p.mu.Unlock()

	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}
