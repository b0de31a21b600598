package service

import (
	"context"

	"github.com/shaharia-lab/courier/internal/notification"
)

const (
	defaultAsyncWorkers   = 3
	defaultAsyncQueueSize = 100
)

// Future is the handle returned by the asynchronous send operations. It
// completes exactly once, with either a result or an error.
type Future struct {
	done chan struct{}
	res  *notification.Result
	err  error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// complete resolves the future. Must be called exactly once.
func (f *Future) complete(res *notification.Result, err error) {
	f.res = res
	f.err = err
	close(f.done)
}

// Done returns a channel that is closed when the result is available.
// Select on it to attach continuations without blocking.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the send finishes or ctx is canceled.
func (f *Future) Wait(ctx context.Context) (*notification.Result, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-f.done:
		return f.res, f.err
	}
}

// asyncJob is one queued send awaiting a worker.
type asyncJob struct {
	ctx     context.Context
	n       *notification.Notification
	channel notification.Channel
	infer   bool
	future  *Future
}

// startWorkers launches the goroutines that process queued async sends.
func (s *Service) startWorkers() {
	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			for job := range s.jobs {
				s.runJob(job)
			}
		}()
	}
}

// runJob executes one queued send. Cancellation only prevents work that
// has not started: once the pipeline runs, it runs to completion.
func (s *Service) runJob(job asyncJob) {
	if err := job.ctx.Err(); err != nil {
		job.future.complete(nil, err)
		return
	}
	if job.infer {
		res, err := s.SendAuto(job.ctx, job.n)
		job.future.complete(res, err)
		return
	}
	res, err := s.Send(job.ctx, job.n, job.channel)
	job.future.complete(res, err)
}

// enqueue schedules a job on the worker pool. When the queue is full the
// job runs on the caller's goroutine instead of being dropped, trading
// asynchrony for backpressure.
func (s *Service) enqueue(job asyncJob) {
	select {
	case s.jobs <- job:
	default:
		s.logger.Debug("async queue full, executing on caller goroutine")
		s.runJob(job)
	}
}

// SendAsync schedules Send on the worker pool and returns a Future that
// resolves to the same result or error. Calling SendAsync after Close is
// undefined.
func (s *Service) SendAsync(ctx context.Context, n *notification.Notification, channel notification.Channel) *Future {
	f := newFuture()
	s.enqueue(asyncJob{ctx: ctx, n: n, channel: channel, future: f})
	return f
}

// SendAutoAsync schedules SendAuto on the worker pool.
func (s *Service) SendAutoAsync(ctx context.Context, n *notification.Notification) *Future {
	f := newFuture()
	s.enqueue(asyncJob{ctx: ctx, n: n, infer: true, future: f})
	return f
}

// Close stops accepting new async work and waits for queued sends to
// finish.
func (s *Service) Close() {
	close(s.jobs)
	s.wg.Wait()
}
