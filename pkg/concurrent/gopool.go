package concurrent

import (
	"errors"
	"time"
)

var ErrScheduleTimeout = errors.New("schedule error: timed out")

// GoPool is a bounded goroutine pool for the websocket accept/read path, after
// https://sergey.kamardin.org/articles/million-websocket-and-go/. Schedule blocks
// until a worker is free; ScheduleTimeout gives up after the timeout so the accept
// loop can apply backpressure instead of spawning unbounded goroutines.
type GoPool struct {
	sem  chan struct{}
	work chan func()
}

func NewGoPool(size, queue int) *GoPool {
	return &GoPool{
		sem:  make(chan struct{}, size),
		work: make(chan func(), queue),
	}
}

// Spawn starts n resident workers.
func (p *GoPool) Spawn(n int) {
	for i := 0; i < n; i++ {
		p.sem <- struct{}{}
		go p.worker(func() {})
	}
}

func (p *GoPool) Schedule(task func()) {
	p.schedule(task, nil)
}

func (p *GoPool) ScheduleTimeout(timeout time.Duration, task func()) error {
	return p.schedule(task, time.After(timeout))
}

func (p *GoPool) schedule(task func(), timeout <-chan time.Time) error {
	select {
	case <-timeout:
		return ErrScheduleTimeout
	case p.work <- task:
		return nil
	case p.sem <- struct{}{}:
		go p.worker(task)
		return nil
	}
}

func (p *GoPool) worker(task func()) {
	defer func() { <-p.sem }()

	task()
	for task := range p.work {
		task()
	}
}

// Close stops idle workers. Pending scheduled tasks still run.
func (p *GoPool) Close() {
	close(p.work)
}
