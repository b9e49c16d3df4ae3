package biz

import (
	"sync"

	"github.com/geomashup/geofeed-backend/internal/pkg/workerpool"
)

// fetchGroup joins a request's image fetches: N tasks go out, Wait returns
// once all N have completed in any order. The group is owned by one request
// and released when Wait returns, so no counter outlives its request.
type fetchGroup struct {
	pool *workerpool.Pool
	wg   sync.WaitGroup
}

func newFetchGroup(pool *workerpool.Pool) *fetchGroup {
	return &fetchGroup{pool: pool}
}

// Go schedules one task. Each task counts toward the join exactly once,
// whether it runs on the pool or, when the pool rejects it, on its own
// goroutine.
func (g *fetchGroup) Go(task func()) {
	g.wg.Add(1)
	run := func() {
		defer g.wg.Done()
		task()
	}
	if g.pool == nil || g.pool.Submit(run) != nil {
		go run()
	}
}

// Wait blocks until every scheduled task has completed.
func (g *fetchGroup) Wait() {
	g.wg.Wait()
}
