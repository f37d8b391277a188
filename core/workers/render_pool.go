// ABOUTME: Worker pool rendering saved pages into reader views concurrently
// ABOUTME: Used for batch markdown export; results come back in submission order

package workers

import (
	"context"
	"io"
	"sync"
	"time"

	"reader-assist/core/domain"
	"reader-assist/core/interfaces"
)

// RenderJob is one page to render
type RenderJob struct {
	// Name identifies the page in results, usually its file path
	Name string
	// URL resolves relative links; may be empty
	URL string
	// Open returns the page HTML. The pool closes it.
	Open func() (io.ReadCloser, error)
}

// RenderResult is the outcome of one RenderJob
type RenderResult struct {
	Job  RenderJob
	View domain.ReaderView
	Err  error
}

// WorkerConfig holds configuration for the render pool
type WorkerConfig struct {
	MaxWorkers int
	QueueSize  int
}

// DefaultWorkerConfig returns the default worker configuration
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		MaxWorkers: 4,
		QueueSize:  32,
	}
}

type queuedJob struct {
	ctx    context.Context
	job    RenderJob
	result *RenderResult
	done   *sync.WaitGroup
}

// RenderPool renders pages on a fixed set of worker goroutines
type RenderPool struct {
	renderer   interfaces.ReaderService
	logger     interfaces.Logger
	jobQueue   chan *queuedJob
	maxWorkers int
	wg         sync.WaitGroup

	mu      sync.RWMutex
	running bool
}

// NewRenderPool creates a render pool; call Start before submitting
func NewRenderPool(renderer interfaces.ReaderService, logger interfaces.Logger, config WorkerConfig) *RenderPool {
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = DefaultWorkerConfig().MaxWorkers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultWorkerConfig().QueueSize
	}

	return &RenderPool{
		renderer:   renderer,
		logger:     logger,
		jobQueue:   make(chan *queuedJob, config.QueueSize),
		maxWorkers: config.MaxWorkers,
	}
}

// Start starts the worker goroutines
func (p *RenderPool) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return nil
	}

	for i := 0; i < p.maxWorkers; i++ {
		p.wg.Add(1)
		go p.run(i)
	}

	p.running = true
	return nil
}

// Stop drains queued jobs and waits for the workers to exit. A stopped
// pool cannot be restarted.
func (p *RenderPool) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return nil
	}

	close(p.jobQueue)
	p.wg.Wait()

	p.running = false
	return nil
}

// RenderAll renders every job and returns the results in job order. Jobs
// still queued when ctx ends report ctx's error.
func (p *RenderPool) RenderAll(ctx context.Context, jobs []RenderJob) ([]RenderResult, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.running {
		return nil, ErrWorkerNotRunning
	}

	results := make([]RenderResult, len(jobs))
	var done sync.WaitGroup
	for i, job := range jobs {
		results[i].Job = job
		done.Add(1)
		select {
		case p.jobQueue <- &queuedJob{ctx: ctx, job: job, result: &results[i], done: &done}:
		case <-ctx.Done():
			done.Done()
			for j := i; j < len(jobs); j++ {
				results[j] = RenderResult{Job: jobs[j], Err: ctx.Err()}
			}
			done.Wait()
			return results, ctx.Err()
		}
	}

	done.Wait()
	return results, nil
}

// run is the main loop for each worker
func (p *RenderPool) run(id int) {
	defer p.wg.Done()

	for q := range p.jobQueue {
		p.process(id, q)
	}
}

func (p *RenderPool) process(id int, q *queuedJob) {
	defer q.done.Done()

	if err := q.ctx.Err(); err != nil {
		q.result.Err = err
		return
	}

	start := time.Now()
	page, err := q.job.Open()
	if err != nil {
		q.result.Err = err
		return
	}
	defer page.Close()

	q.result.View, q.result.Err = p.renderer.Render(q.ctx, q.job.URL, page)

	fields := map[string]interface{}{
		"worker":      id,
		"page":        q.job.Name,
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if q.result.Err != nil {
		fields["error"] = q.result.Err.Error()
		p.logger.Warn("Page render failed", fields)
		return
	}
	p.logger.Debug("Page rendered", fields)
}

// Error definitions
var (
	ErrWorkerNotRunning = &WorkerError{Message: "worker pool is not running"}
)

// WorkerError represents a worker-specific error
type WorkerError struct {
	Message string
}

func (e *WorkerError) Error() string {
	return e.Message
}
