package parallel

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// Job is one unit of work. A non-nil error counts the job as failed; the
// job is expected to have logged the reason itself.
type Job func() error

// Stats counts finished jobs.
type Stats struct {
	Processed uint64
	Failed    uint64
}

// Total returns the number of finished jobs.
func (s Stats) Total() uint64 {
	return s.Processed + s.Failed
}

// Err summarizes failures, or returns nil if every job succeeded.
func (s Stats) Err() error {
	if s.Failed > 0 {
		return fmt.Errorf("error processing %d files", s.Failed)
	}
	return nil
}

// Pool runs jobs on a fixed set of goroutines. With a single worker jobs
// run synchronously inside Do.
type Pool struct {
	wg    sync.WaitGroup
	work  chan Job
	close func()

	processed atomic.Uint64
	failed    atomic.Uint64
}

// Start creates a pool. numWorkers < 1 means one worker per CPU.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{close: func() {}}
	if numWorkers > 1 {
		pool.work = make(chan Job, numWorkers)
		for range numWorkers {
			pool.wg.Go(func() {
				for job := range pool.work {
					pool.run(job)
				}
			})
		}
		pool.close = sync.OnceFunc(func() { close(pool.work) })
	}

	return pool
}

func (p *Pool) run(job Job) {
	if err := job(); err != nil {
		p.failed.Add(1)
	} else {
		p.processed.Add(1)
	}
}

// Do schedules job. It blocks while every worker is busy and the queue is
// full. Do must not be called after Wait.
func (p *Pool) Do(job Job) {
	if p.work == nil {
		p.run(job)
		return
	}
	p.work <- job
}

// Wait stops accepting work, waits for queued jobs and returns the counts.
func (p *Pool) Wait() Stats {
	p.close()
	p.wg.Wait()
	return Stats{
		Processed: p.processed.Load(),
		Failed:    p.failed.Load(),
	}
}
