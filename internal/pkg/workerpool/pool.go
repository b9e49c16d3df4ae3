package workerpool

import (
	"errors"
	"sync/atomic"

	"github.com/geomashup/geofeed-backend/internal/pkg/logger"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

// Statistics tracks task counters
type Statistics struct {
	Submitted int64
	Completed int64
	Panicked  int64
}

// Pool is a bounded worker pool built on ants.
type Pool struct {
	pool   *ants.Pool
	logger *logger.Logger

	submitted atomic.Int64
	completed atomic.Int64
	panicked  atomic.Int64
}

// New creates a pool with the given number of workers
func New(size int, log *logger.Logger) (*Pool, error) {
	if size <= 0 {
		return nil, errors.New("workerpool size must be greater than 0")
	}
	if log == nil {
		log = logger.L()
	}

	p := &Pool{logger: log}

	antsPool, err := ants.NewPool(size,
		ants.WithPanicHandler(func(err interface{}) {
			p.panicked.Add(1)
			log.Error("worker panic recovered", zap.Any("error", err))
		}),
	)
	if err != nil {
		return nil, err
	}

	p.pool = antsPool
	return p, nil
}

// Submit schedules a task on the pool
func (p *Pool) Submit(task func()) error {
	err := p.pool.Submit(func() {
		defer p.completed.Add(1)
		task()
	})
	if err != nil {
		return err
	}
	p.submitted.Add(1)
	return nil
}

// Running returns the number of currently running workers
func (p *Pool) Running() int {
	return p.pool.Running()
}

// Free returns the number of available workers
func (p *Pool) Free() int {
	return p.pool.Free()
}

// Stats returns a snapshot of the task counters
func (p *Pool) Stats() Statistics {
	return Statistics{
		Submitted: p.submitted.Load(),
		Completed: p.completed.Load(),
		Panicked:  p.panicked.Load(),
	}
}

// Release shuts the pool down
func (p *Pool) Release() {
	p.pool.Release()
}
