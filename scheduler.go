package quadmul

import (
	"sync"

	"github.com/blockwise/quadmul/vec"
	"github.com/blockwise/quadmul/workerpool"
)

// plan is one multiply's execution strategy, assembled once at the front
// door from the normalized Config: the base kernel, the pool (nil means
// sequential), and the thresholds the recursion consults. A plan is
// read-only once built, so every sub-task shares it freely.
type plan[T vec.Floats] struct {
	cfg    Config
	pool   *workerpool.Pool
	kernel kernelFunc[T]
}

// mulAdd is the strategy gate every multiply of side m passes through,
// top-level and recursive alike: small problems go straight to the base
// kernel, large ones to the Strassen recomposition when enabled, and
// everything else to the plain quadrant recursion.
func (p *plan[T]) mulAdd(a, b, c []T, m int) error {
	if m <= p.cfg.BaseThreshold {
		p.kernel(a, b, c, m)
		return nil
	}
	if p.cfg.UseStrassen && m > p.cfg.StrassenThreshold {
		return p.strassen(a, b, c, m)
	}
	return p.recurse(a, b, c, m)
}

// fanOut runs a level's independent sub-tasks: the 4 output-quadrant
// tasks of the plain recursion or the 7 product tasks of Strassen. Tasks
// read disjoint or read-only inputs and write disjoint outputs, so the
// join barrier is the only synchronization.
//
// At or below the parallel threshold, or without a pool, the tasks run
// inline: repeated exponential fan-out of tiny tasks costs more in
// distribution than it buys in parallelism. Above it, each task is
// offered to the pool with a non-blocking handoff; tasks no idle worker
// takes run here, in the submitter. The last task always runs inline, so
// a parent blocked at the barrier is only ever waiting on tasks a worker
// is actively running, and the wait graph stays a tree.
//
// There is no cancellation: once dispatched, every task runs to
// completion, and the first error is reported after the join.
func (p *plan[T]) fanOut(m int, tasks []func() error) error {
	if p.pool == nil || m <= p.cfg.ParallelThreshold {
		for _, task := range tasks {
			if err := task(); err != nil {
				return err
			}
		}
		return nil
	}

	errs := make([]error, len(tasks))
	var wg sync.WaitGroup
	for i, task := range tasks[:len(tasks)-1] {
		wg.Add(1)
		if !p.pool.TrySubmit(func() { errs[i] = task() }, &wg) {
			errs[i] = task()
			wg.Done()
		}
	}
	errs[len(tasks)-1] = tasks[len(tasks)-1]()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
