package worker

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Result is the outcome of processing one input.
type Result[T any, R any] struct {
	// Index is the position of Input in the slice given to Run.
	Index int
	Input T
	Value R
	Err   error
}

// ProcessFunc is the function signature for processing a single input.
type ProcessFunc[T any, R any] func(ctx context.Context, input T) (R, error)

// HandleFunc receives results on the goroutine that called Run, in
// completion order. Returning an error stops the pool.
type HandleFunc[T any, R any] func(res Result[T, R]) error

// Pool is a generic worker pool with configurable concurrency.
type Pool[T any, R any] struct {
	workers int
	process ProcessFunc[T, R]
}

// NewPool creates a new worker pool.
func NewPool[T any, R any](workers int, fn ProcessFunc[T, R]) *Pool[T, R] {
	if workers < 1 {
		workers = 1
	}
	return &Pool[T, R]{
		workers: workers,
		process: fn,
	}
}

// Workers returns the number of goroutines Run starts.
func (p *Pool[T, R]) Workers() int {
	return p.workers
}

// Run processes inputs concurrently and hands every result to handle. Since
// handle is only ever called from the calling goroutine it may mutate state
// without locking. Run returns the first error from handle, or the error of
// parent once it is cancelled.
func (p *Pool[T, R]) Run(parent context.Context, inputs []T, handle HandleFunc[T, R]) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	inputCh := make(chan int)
	resultCh := make(chan Result[T, R])

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for idx := range inputCh {
				value, err := p.process(ctx, inputs[idx])
				if err != nil {
					log.Debug().Err(err).Int("worker", workerID).Int("index", idx).Msg("Task failed")
				}
				select {
				case resultCh <- Result[T, R]{Index: idx, Input: inputs[idx], Value: value, Err: err}:
				case <-ctx.Done():
					return
				}
			}
		}(w)
	}

	go func() {
		defer close(inputCh)
		for i := range inputs {
			select {
			case <-ctx.Done():
				return
			case inputCh <- i:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	var handleErr error
	for res := range resultCh {
		if handleErr != nil {
			continue
		}
		if err := handle(res); err != nil {
			handleErr = err
			cancel()
		}
	}

	if handleErr != nil {
		return handleErr
	}
	return parent.Err()
}
