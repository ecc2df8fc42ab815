package parallel

import (
	"context"
	"sort"
	"sync"

	"github.com/nibzard/mdtick/internal/checklist"
)

// LoadFunc parses the checklist at path.
type LoadFunc func(path string) (checklist.Result, error)

// TaskResult is the outcome of one submitted load.
type TaskResult struct {
	Index int
	Entry checklist.Entry
}

// WorkerPool manages concurrent checklist loads with bounded concurrency.
type WorkerPool struct {
	maxWorkers int
	semaphore  chan struct{}
	wg         sync.WaitGroup
	mu         sync.Mutex
	results    []TaskResult
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewWorkerPool creates a pool running at most maxWorkers loads at once.
// Values below one are treated as one.
func NewWorkerPool(ctx context.Context, maxWorkers int) *WorkerPool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	return &WorkerPool{
		maxWorkers: maxWorkers,
		semaphore:  make(chan struct{}, maxWorkers),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Submit queues a load of path. It blocks until a worker slot is free or the
// pool is cancelled. Loads submitted after cancellation never run.
func (p *WorkerPool) Submit(index int, path string, fn LoadFunc) {
	if p.ctx.Err() != nil {
		return
	}
	select {
	case <-p.ctx.Done():
		return
	case p.semaphore <- struct{}{}:
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() { <-p.semaphore }()

		res, err := fn(path)
		result := TaskResult{
			Index: index,
			Entry: checklist.Entry{Path: path, Result: res, Err: err},
		}

		p.mu.Lock()
		p.results = append(p.results, result)
		p.mu.Unlock()
	}()
}

// Wait blocks until every started load finishes and returns the results
// sorted by submission index.
func (p *WorkerPool) Wait() []TaskResult {
	p.wg.Wait()
	p.cancel()

	p.mu.Lock()
	defer p.mu.Unlock()
	results := make([]TaskResult, len(p.results))
	copy(results, p.results)
	sort.Slice(results, func(i, j int) bool {
		return results[i].Index < results[j].Index
	})
	return results
}

// Cancel stops queued loads from starting.
func (p *WorkerPool) Cancel() {
	p.cancel()
}

// LoadAll loads every path with at most workers concurrent reads. The
// returned entries follow the order of paths. Paths that never ran because
// ctx was cancelled carry ctx's error.
func LoadAll(ctx context.Context, paths []string, workers int, fn LoadFunc) []checklist.Entry {
	entries := make([]checklist.Entry, len(paths))
	ran := make([]bool, len(paths))

	pool := NewWorkerPool(ctx, workers)
	for i, p := range paths {
		pool.Submit(i, p, fn)
	}
	for _, r := range pool.Wait() {
		entries[r.Index] = r.Entry
		ran[r.Index] = true
	}

	for i, p := range paths {
		if ran[i] {
			continue
		}
		err := ctx.Err()
		if err == nil {
			err = context.Canceled
		}
		entries[i] = checklist.Entry{Path: p, Err: err}
	}
	return entries
}
