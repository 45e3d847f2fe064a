// Package worker provides background processing for saved songs.
package worker

import (
	"context"
	"log"
	"sync"

	"github.com/ninja-hatori-dev/mood-harmony/internal/core/ports"
)

// Job asks for the preview of one saved song to be analyzed.
type Job struct {
	SongID     string
	PreviewURL string
}

// Pool manages background workers for async jobs.
type Pool struct {
	repo ports.Repository
	jobs chan Job
	wg   sync.WaitGroup
}

// NewPool creates a worker pool with the given queue size.
func NewPool(repo ports.Repository, queueSize int) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pool{repo: repo, jobs: make(chan Job, queueSize)}
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

// Stop waits for workers to finish after closing the queue.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

// Submit queues a job without blocking.
func (p *Pool) Submit(job Job) {
	select {
	case p.jobs <- job:
	default:
		log.Printf("WARN worker: dropping job for song %s", job.SongID)
	}
}

func (p *Pool) processJob(job Job) {
	if job.PreviewURL == "" {
		return
	}

	seconds, err := AnalyzePreviewFunc(job.PreviewURL)
	if err != nil {
		log.Printf("WARN worker: preview analysis failed for song %s: %v", job.SongID, err)
		return
	}

	if err := p.repo.UpdateSongPreviewSeconds(context.Background(), job.SongID, seconds); err != nil {
		log.Printf("WARN worker: failed to update song %s: %v", job.SongID, err)
		return
	}
	log.Printf("worker: song %s preview runs %.1fs", job.SongID, seconds)
}
