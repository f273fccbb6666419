// Copyright 2025 The quadmul Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent, reusable worker pool for
// parallel computation. Unlike per-call goroutine spawning, a Pool is
// created once and reused across many operations, eliminating allocation
// and spawn overhead.
//
// The pool supports two submission styles. ParallelFor splits an index
// range into contiguous chunks and blocks until all chunks complete.
// TrySubmit hands a single task to an idle worker without ever blocking:
// if no worker is free the caller runs the task itself. The non-blocking
// handoff is what makes the pool safe for recursive fork-join work, where
// tasks submit sub-tasks of their own: a parent can only ever wait on
// tasks a worker is actively running, so join barriers cannot form a cycle.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	var wg sync.WaitGroup
//	wg.Add(1)
//	if !pool.TrySubmit(task, &wg) {
//	    task() // every worker busy: run it here
//	    wg.Done()
//	}
//	wg.Wait()
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool that can be reused across many parallel
// operations. Workers are spawned once at creation and reused.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

// workItem represents a single task to execute.
type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a new worker pool with the specified number of workers.
// Workers are spawned immediately and persist until Close is called.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		// Unbuffered: a send succeeds only when an idle worker is
		// receiving, so "submitted" always means "running".
		workC: make(chan workItem),
	}

	for range numWorkers {
		go p.worker()
	}

	return p
}

// worker is the main loop for each persistent worker goroutine.
func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the worker pool. Close must not be called while
// submissions are in flight; work already handed to workers completes.
// Calling Close multiple times is safe. A closed pool degrades gracefully:
// TrySubmit reports false and ParallelFor runs sequentially.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// TrySubmit hands fn to an idle worker and reports whether one took it.
// It never blocks: if every worker is busy or the pool is closed it
// returns false and the caller is expected to run fn itself.
//
// The caller must call barrier.Add(1) before a successful submission; the
// worker calls barrier.Done once fn returns. On false, the barrier is
// untouched.
func (p *Pool) TrySubmit(fn func(), barrier *sync.WaitGroup) bool {
	if p.closed.Load() {
		return false
	}
	select {
	case p.workC <- workItem{fn: fn, barrier: barrier}:
		return true
	default:
		return false
	}
}

// ParallelFor executes fn for each index in [0, n) using the worker pool.
// Each worker processes a contiguous range of indices. Blocks until all
// work completes.
//
// ParallelFor must not be called from inside a pool task: its submissions
// wait for idle workers, and a worker waiting on its own pool can stall.
// Recursive work goes through TrySubmit instead.
//
// fn receives (start, end) indices where work should process [start, end).
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	if p.closed.Load() {
		// Fallback to sequential if pool is closed
		fn(0, n)
		return
	}

	// Don't use more workers than items
	workers := min(p.numWorkers, n)

	if workers == 1 {
		fn(0, n)
		return
	}

	// Chunk so that all items are covered
	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup

	for i := range workers {
		start := i * chunkSize
		end := min(start+chunkSize, n)
		if start >= n {
			break
		}

		wg.Add(1)
		p.workC <- workItem{
			fn: func() {
				fn(start, end)
			},
			barrier: &wg,
		}
	}

	wg.Wait()
}
