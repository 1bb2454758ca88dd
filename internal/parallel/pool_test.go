package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// =============================================================================
// WorkerPool Creation Tests
// =============================================================================

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
	if len(pool.queues) != 4 {
		t.Errorf("len(queues) = %d, want 4", len(pool.queues))
	}
}

func TestWorkerPool_CreateDefaultWorkers(t *testing.T) {
	for _, n := range []int{0, -5} {
		pool := NewWorkerPool(n)
		if got, want := pool.Workers(), runtime.GOMAXPROCS(0); got != want {
			t.Errorf("NewWorkerPool(%d).Workers() = %d, want %d", n, got, want)
		}
		pool.Close()
	}
}

// =============================================================================
// Run Tests
// =============================================================================

func TestWorkerPool_Run(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	jobs := make([]Job, 100)
	for i := range jobs {
		jobs[i] = func(context.Context) error {
			counter.Add(1)
			return nil
		}
	}

	errs := pool.Run(context.Background(), jobs)

	if counter.Load() != 100 {
		t.Errorf("counter = %d, want 100", counter.Load())
	}
	if len(errs) != 100 {
		t.Fatalf("len(errs) = %d, want 100", len(errs))
	}
	for i, err := range errs {
		if err != nil {
			t.Errorf("errs[%d] = %v, want nil", i, err)
		}
	}
}

func TestWorkerPool_RunErrorsByIndex(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Close()

	errOdd := errors.New("odd")
	jobs := make([]Job, 10)
	for i := range jobs {
		jobs[i] = func(context.Context) error {
			if i%2 == 1 {
				return errOdd
			}
			return nil
		}
	}

	errs := pool.Run(context.Background(), jobs)

	for i, err := range errs {
		want := error(nil)
		if i%2 == 1 {
			want = errOdd
		}
		if err != want {
			t.Errorf("errs[%d] = %v, want %v", i, err, want)
		}
	}
}

func TestWorkerPool_RunEmpty(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	if errs := pool.Run(context.Background(), nil); len(errs) != 0 {
		t.Errorf("Run(nil) = %v, want empty", errs)
	}
}

func TestWorkerPool_RunNilJob(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	errs := pool.Run(context.Background(), []Job{nil})
	if errs[0] != nil {
		t.Errorf("Run([nil]) = %v, want nil error", errs[0])
	}
}

func TestWorkerPool_RunCanceled(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Int64
	jobs := make([]Job, 5)
	for i := range jobs {
		jobs[i] = func(context.Context) error {
			ran.Add(1)
			return nil
		}
	}

	errs := pool.Run(ctx, jobs)

	if ran.Load() != 0 {
		t.Errorf("%d jobs ran after cancellation, want 0", ran.Load())
	}
	for i, err := range errs {
		if !errors.Is(err, context.Canceled) {
			t.Errorf("errs[%d] = %v, want %v", i, err, context.Canceled)
		}
	}
}

func TestWorkerPool_RunPassesContext(t *testing.T) {
	pool := NewWorkerPool(1)
	defer pool.Close()

	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "batch")

	var got any
	pool.Run(ctx, []Job{func(ctx context.Context) error {
		got = ctx.Value(key{})
		return nil
	}})

	if got != "batch" {
		t.Errorf("job context value = %v, want %q", got, "batch")
	}
}

// =============================================================================
// Submit Tests
// =============================================================================

func TestWorkerPool_Submit(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	errBoom := errors.New("boom")
	ch := pool.Submit(context.Background(), func(context.Context) error {
		return errBoom
	})

	select {
	case err := <-ch:
		if !errors.Is(err, errBoom) {
			t.Errorf("Submit() result = %v, want %v", err, errBoom)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Submit() result not delivered")
	}
}

func TestWorkerPool_SubmitNil(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	if err := <-pool.Submit(context.Background(), nil); err != nil {
		t.Errorf("Submit(nil) = %v, want nil", err)
	}
}

// =============================================================================
// Close Tests
// =============================================================================

func TestWorkerPool_CloseIdempotent(t *testing.T) {
	pool := NewWorkerPool(2)

	pool.Close()
	pool.Close()

	if err := <-pool.Submit(context.Background(), nil); !errors.Is(err, ErrClosed) {
		t.Errorf("Submit() after double Close = %v, want %v", err, ErrClosed)
	}
}

func TestWorkerPool_OperationsAfterClose(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()

	var ran atomic.Bool
	job := func(context.Context) error {
		ran.Store(true)
		return nil
	}

	errs := pool.Run(context.Background(), []Job{job, job})
	for i, err := range errs {
		if !errors.Is(err, ErrClosed) {
			t.Errorf("errs[%d] = %v, want %v", i, err, ErrClosed)
		}
	}
	if err := <-pool.Submit(context.Background(), job); !errors.Is(err, ErrClosed) {
		t.Errorf("Submit() after Close = %v, want %v", err, ErrClosed)
	}
	if ran.Load() {
		t.Error("job ran on a closed pool")
	}
}

func TestWorkerPool_CloseRunsQueuedWork(t *testing.T) {
	pool := NewWorkerPool(1)

	var counter atomic.Int64
	results := make([]<-chan error, 10)
	for i := range results {
		results[i] = pool.Submit(context.Background(), func(context.Context) error {
			time.Sleep(time.Millisecond)
			counter.Add(1)
			return nil
		})
	}

	pool.Close()

	if counter.Load() != 10 {
		t.Errorf("counter = %d after Close, want 10", counter.Load())
	}
	for i, ch := range results {
		if err := <-ch; err != nil {
			t.Errorf("results[%d] = %v, want nil", i, err)
		}
	}
}

// =============================================================================
// Scheduling Tests
// =============================================================================

func TestWorkerPool_WorkStealing(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	// Pile every task onto worker 0's queue.
	var wg sync.WaitGroup
	var counter atomic.Int64
	for range 16 {
		wg.Add(1)
		pool.queues[0] <- task{
			ctx: context.Background(),
			job: func(context.Context) error {
				time.Sleep(time.Millisecond)
				counter.Add(1)
				return nil
			},
			done: func(error) { wg.Done() },
		}
	}

	wg.Wait()

	if counter.Load() != 16 {
		t.Errorf("counter = %d, want 16", counter.Load())
	}
	for i, q := range pool.queues {
		if n := len(q); n != 0 {
			t.Errorf("len(queues[%d]) = %d, want 0", i, n)
		}
	}
}

func TestWorkerPool_ConcurrentRun(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			jobs := make([]Job, 25)
			for i := range jobs {
				jobs[i] = func(context.Context) error {
					counter.Add(1)
					return nil
				}
			}
			pool.Run(context.Background(), jobs)
		}()
	}
	wg.Wait()

	if counter.Load() != 200 {
		t.Errorf("counter = %d, want 200", counter.Load())
	}
}

func TestWorkerPool_RunDuringClose(t *testing.T) {
	for range 200 {
		pool := NewWorkerPool(2)

		jobs := make([]Job, 20)
		for i := range jobs {
			jobs[i] = func(context.Context) error { return nil }
		}

		finished := make(chan []error, 1)
		go func() {
			finished <- pool.Run(context.Background(), jobs)
		}()
		pool.Close()

		select {
		case errs := <-finished:
			for i, err := range errs {
				if err != nil && !errors.Is(err, ErrClosed) {
					t.Fatalf("errs[%d] = %v, want nil or %v", i, err, ErrClosed)
				}
			}
		case <-time.After(5 * time.Second):
			t.Fatal("Run() did not return after Close")
		}
	}
}

func TestWorkerPool_NoGoroutineLeak(t *testing.T) {
	before := runtime.NumGoroutine()

	for range 10 {
		pool := NewWorkerPool(4)
		pool.Run(context.Background(), []Job{func(context.Context) error { return nil }})
		pool.Close()
	}

	time.Sleep(10 * time.Millisecond)
	if after := runtime.NumGoroutine(); after > before+2 {
		t.Errorf("goroutines: before=%d after=%d, possible leak", before, after)
	}
}

func BenchmarkWorkerPool_Run(b *testing.B) {
	pool := NewWorkerPool(0)
	defer pool.Close()

	jobs := make([]Job, 64)
	for i := range jobs {
		jobs[i] = func(context.Context) error { return nil }
	}

	b.ReportAllocs()
	for b.Loop() {
		pool.Run(context.Background(), jobs)
	}
}
