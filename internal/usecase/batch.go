package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
)

// BatchResult summarizes one entity-type batch. A batch with at least one
// succeeded record is not considered failed; zero successes out of a nonzero
// total marks the batch failed without aborting later pipeline steps.
type BatchResult struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

func (r BatchResult) FailedEntirely() bool {
	return r.Total > 0 && r.Succeeded == 0
}

// taskPool is the slice of the ants pool the batch runner needs.
type taskPool interface {
	Submit(task func()) error
}

// runBatch fans per-record writes out over a bounded worker pool and drains
// it fully before returning, so the pipeline stays serial step to step.
func runBatch(ctx context.Context, workers, total int, apply func(ctx context.Context, i int) error) (BatchResult, error) {
	result := BatchResult{Total: total}
	if total == 0 {
		return result, nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > total {
		workers = total
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return result, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	return runBatchOnPool(ctx, pool, total, apply)
}

func runBatchOnPool(ctx context.Context, pool taskPool, total int, apply func(ctx context.Context, i int) error) (BatchResult, error) {
	result := BatchResult{Total: total}

	var succeeded atomic.Int32
	var wg sync.WaitGroup

	// Every exit path reports the records that did complete.
	settle := func() {
		wg.Wait()
		result.Succeeded = int(succeeded.Load())
		result.Failed = result.Total - result.Succeeded
	}

	for i := 0; i < total; i++ {
		i := i
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			if err := apply(ctx, i); err == nil {
				succeeded.Add(1)
			}
		}); err != nil {
			wg.Done()
			settle()
			return result, fmt.Errorf("submit record to worker pool: %w", err)
		}
	}

	settle()
	return result, nil
}
