// Package workerpool runs independent, index-keyed tasks on a bounded ants
// goroutine pool and joins on all of them.
package workerpool

import (
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/sirupsen/logrus"
)

// Config sizes the pool.
type Config struct {
	MaxWorkers int
}

// Run executes task(i) for every i in [0, n) with at most cfg.MaxWorkers
// running at once, and waits for all of them. Tasks write their results into
// caller-owned slots keyed by i, so completion order does not matter.
//
// The first error (or recovered panic) is returned after every submitted
// task has finished; tasks not yet started when it occurs are skipped.
func Run(cfg Config, n int, task func(i int) error) error {
	if cfg.MaxWorkers < 1 {
		return fmt.Errorf("worker pool size must be at least 1, got %d", cfg.MaxWorkers)
	}
	if n == 0 {
		return nil
	}

	var (
		mu       sync.Mutex
		firstErr error
		wg       sync.WaitGroup
	)
	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}
	failed := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return firstErr != nil
	}

	pool, err := ants.NewPool(cfg.MaxWorkers, ants.WithPreAlloc(true))
	if err != nil {
		return fmt.Errorf("creating worker pool: %w", err)
	}
	defer pool.Release()

	for i := 0; i < n; i++ {
		wg.Add(1)
		idx := i
		submitErr := pool.Submit(func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					fail(fmt.Errorf("task %d panicked: %v", idx, r))
				}
			}()
			if failed() {
				return
			}
			if err := task(idx); err != nil {
				fail(err)
			}
		})
		if submitErr != nil {
			wg.Done()
			fail(fmt.Errorf("submitting task %d: %w", idx, submitErr))
			break
		}
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if firstErr != nil {
		logrus.Debugf("worker pool aborted: %v", firstErr)
	}
	return firstErr
}
