// Package worker builds festival day profiles in the background.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/ewilliams-labs/lineup/internal/core/domain"
	"github.com/ewilliams-labs/lineup/internal/logging"
	"github.com/ewilliams-labs/lineup/internal/metrics"
)

// Job asks for the profiles of one festival day to be built and cached.
type Job struct {
	Festival string
	Day      string
}

// ProfileBuilder is satisfied by services.FeatureStore.
type ProfileBuilder interface {
	Profiles(ctx context.Context, festival, day string) (domain.ArtistProfiles, error)
}

// Pool manages background workers for cache warm-up jobs.
type Pool struct {
	builder    ProfileBuilder
	jobs       chan Job
	wg         sync.WaitGroup
	jobTimeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	closeOnce sync.Once
	mu        sync.RWMutex
	closed    bool
}

// NewPool creates a worker pool with the given queue size. Each job runs
// with jobTimeout when it is positive.
func NewPool(builder ProfileBuilder, queueSize int, jobTimeout time.Duration) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		builder:    builder,
		jobs:       make(chan Job, queueSize),
		jobTimeout: jobTimeout,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.processJob(job)
			}
		}()
	}
}

// Stop closes the queue, cancels running builds and waits for the workers.
func (p *Pool) Stop() {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.jobs)
		p.mu.Unlock()
		p.cancel()
	})
	p.wg.Wait()
}

// Submit queues a job without blocking. It reports false when the queue is
// full or the pool is stopped.
func (p *Pool) Submit(job Job) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}

	select {
	case p.jobs <- job:
		return true
	default:
		metrics.WarmJobsDropped.Inc()
		logging.Warn().Str("festival", job.Festival).Str("day", job.Day).Msg("worker queue full, dropping warm-up job")
		return false
	}
}

func (p *Pool) processJob(job Job) {
	ctx := p.ctx
	if p.jobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.jobTimeout)
		defer cancel()
	}
	ctx = logging.ContextWithRequestID(ctx, logging.GenerateRequestID())

	logger := logging.Ctx(ctx).With().Str("component", "worker").Str("festival", job.Festival).Str("day", job.Day).Logger()
	started := time.Now()
	profiles, err := p.builder.Profiles(ctx, job.Festival, job.Day)
	if err != nil {
		logger.Warn().Err(err).Msg("warm-up failed")
		return
	}
	logger.Info().Int("artists", len(profiles)).Dur("took", time.Since(started)).Msg("warmed festival day")
}
