package renderer

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPoolRunsEveryTask(t *testing.T) {
	pool := NewWorkerPool(3)
	if pool.GetNumWorkers() != 3 {
		t.Fatalf("Expected 3 workers, got %d", pool.GetNumWorkers())
	}

	done := make([]atomic.Bool, 50)
	err := pool.Run(context.Background(), len(done), func(_ context.Context, index int) error {
		done[index].Store(true)
		return nil
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for i := range done {
		if !done[i].Load() {
			t.Errorf("Task %d did not run", i)
		}
	}
}

func TestWorkerPoolDefaultsToCPUCount(t *testing.T) {
	if NewWorkerPool(0).GetNumWorkers() < 1 {
		t.Error("Expected at least one worker")
	}
}

func TestWorkerPoolLimitsConcurrency(t *testing.T) {
	pool := NewWorkerPool(2)
	var running, peak atomic.Int32

	err := pool.Run(context.Background(), 20, func(_ context.Context, _ int) error {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		running.Add(-1)
		return nil
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if peak.Load() > 2 {
		t.Errorf("Expected at most 2 concurrent tasks, saw %d", peak.Load())
	}
}

func TestWorkerPoolReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	err := NewWorkerPool(4).Run(context.Background(), 10, func(_ context.Context, index int) error {
		if index == 3 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Errorf("Expected boom, got %v", err)
	}
}

func TestWorkerPoolCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Int32
	err := NewWorkerPool(4).Run(ctx, 10, func(_ context.Context, _ int) error {
		ran.Add(1)
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if ran.Load() != 0 {
		t.Errorf("Expected no tasks to run, got %d", ran.Load())
	}
}
