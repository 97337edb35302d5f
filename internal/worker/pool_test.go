package worker

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_RunProcessesEveryInput(t *testing.T) {
	pool := NewPool[int, string](4, func(ctx context.Context, n int) (string, error) {
		return strconv.Itoa(n * 2), nil
	})

	inputs := make([]int, 100)
	for i := range inputs {
		inputs[i] = i
	}

	got := make([]string, len(inputs))
	seen := 0
	err := pool.Run(context.Background(), inputs, func(res Result[int, string]) error {
		require.NoError(t, res.Err)
		assert.Equal(t, inputs[res.Index], res.Input)
		got[res.Index] = res.Value
		seen++
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, len(inputs), seen)
	for i, v := range got {
		assert.Equal(t, strconv.Itoa(i*2), v)
	}
}

func TestPool_ProcessErrorsAreReported(t *testing.T) {
	errOdd := errors.New("odd")
	pool := NewPool[int, int](2, func(ctx context.Context, n int) (int, error) {
		if n%2 == 1 {
			return 0, errOdd
		}
		return n, nil
	})

	failed := 0
	err := pool.Run(context.Background(), []int{0, 1, 2, 3, 4}, func(res Result[int, int]) error {
		if res.Err != nil {
			assert.ErrorIs(t, res.Err, errOdd)
			failed++
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, failed)
}

func TestPool_HandleErrorStopsRun(t *testing.T) {
	errStop := errors.New("stop")
	pool := NewPool[int, int](3, func(ctx context.Context, n int) (int, error) {
		return n, nil
	})

	inputs := make([]int, 1000)
	handled := 0
	err := pool.Run(context.Background(), inputs, func(res Result[int, int]) error {
		handled++
		return errStop
	})

	assert.ErrorIs(t, err, errStop)
	assert.Equal(t, 1, handled)
}

func TestPool_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := NewPool[int, int](2, func(ctx context.Context, n int) (int, error) {
		return n, nil
	})
	err := pool.Run(ctx, []int{1, 2, 3}, func(res Result[int, int]) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewPool_ClampsWorkers(t *testing.T) {
	pool := NewPool[int, int](0, func(ctx context.Context, n int) (int, error) { return n, nil })
	assert.Equal(t, 1, pool.Workers())
}
