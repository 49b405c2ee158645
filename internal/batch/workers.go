package batch

import (
	"context"
	"io/fs"
	"sync"
)

type job struct {
	idx   int
	entry fs.DirEntry
}

// runJobs fans jobs out to opts.Workers goroutines. Each worker writes only
// results[job.idx]. Jobs not started before ctx is done are marked with the
// context error.
func (r *Runner) runJobs(ctx context.Context, jobs []job, results []FileResult, opts Options) {
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	ch := make(chan job)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			r.logger.Debug("worker started", "worker_id", workerID)
			for j := range ch {
				results[j.idx] = r.analyzeFile(ctx, results[j.idx], j.entry, opts.MaxBytes)
			}
			r.logger.Debug("worker stopped", "worker_id", workerID)
		}(i + 1)
	}

	next := 0
feed:
	for ; next < len(jobs); next++ {
		select {
		case ch <- jobs[next]:
		case <-ctx.Done():
			break feed
		}
	}
	close(ch)
	wg.Wait()

	for _, j := range jobs[next:] {
		results[j.idx].Err = ctx.Err().Error()
	}
}
