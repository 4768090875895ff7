package concurrency

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestProcessParallelPreservesOrder(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}
	results, errs := ProcessParallel(context.Background(), items, ParallelOptions{MaxWorkers: 3},
		func(ctx context.Context, i int, item int) (int, error) {
			return item * 10, nil
		})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors %v", errs)
	}
	for i, item := range items {
		if results[i] != item*10 {
			t.Fatalf("result %d out of order: got %d", i, results[i])
		}
	}
}

func TestProcessParallelCollectsErrors(t *testing.T) {
	boom := errors.New("boom")
	_, errs := ProcessParallel(context.Background(), []int{1, 2, 3}, DefaultOptions(),
		func(ctx context.Context, i int, item int) (int, error) {
			if item == 2 {
				return 0, boom
			}
			return item, nil
		})
	if len(errs) != 1 || !errors.Is(errs[0], boom) {
		t.Fatalf("expected one error, got %v", errs)
	}
}

func TestProcessParallelEmptyInput(t *testing.T) {
	results, errs := ProcessParallel(context.Background(), nil, DefaultOptions(),
		func(ctx context.Context, i int, item int) (int, error) { return 0, nil })
	if len(results) != 0 || errs != nil {
		t.Fatalf("unexpected output for empty input: %v %v", results, errs)
	}
}

func TestForEachBoundsWorkers(t *testing.T) {
	var active, peak int32
	items := make([]int, 50)
	errs := ForEach(context.Background(), items, ParallelOptions{MaxWorkers: 4},
		func(ctx context.Context, i int, item int) error {
			n := atomic.AddInt32(&active, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			atomic.AddInt32(&active, -1)
			return nil
		})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors %v", errs)
	}
	if atomic.LoadInt32(&peak) > 4 {
		t.Fatalf("worker bound exceeded: peak %d", peak)
	}
}

func TestForEachCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	errs := ForEach(ctx, []int{1, 2, 3}, ParallelOptions{MaxWorkers: 1},
		func(ctx context.Context, i int, item int) error { return nil })
	if len(errs) == 0 {
		t.Fatal("a cancelled context must surface as errors")
	}
}
