package pipeline

import (
	"context"
	"image"
	"runtime"
	"sync"

	"github.com/MeKo-Tech/ergsnap/internal/detector"
)

// ParallelConfig bounds the per-request detection worker pool.
type ParallelConfig struct {
	MaxWorkers int // 0 = runtime.NumCPU()
}

// DefaultParallelConfig returns sensible defaults.
func DefaultParallelConfig() ParallelConfig {
	return ParallelConfig{MaxWorkers: runtime.NumCPU()}
}

type detectJob struct {
	index int
	image image.Image
}

type detectResult struct {
	index   int
	outcome detector.DetectionOutcome
}

// detectAll runs detection over all images, in parallel for multi-image
// requests. Detection is a pure function of its input image, so images only
// need fan-out and index-ordered fan-in. Results are returned in input order.
func (p *Pipeline) detectAll(ctx context.Context, images []image.Image) ([]detector.DetectionOutcome, error) {
	workers := p.cfg.Parallel.MaxWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(images) {
		workers = len(images)
	}

	if len(images) == 1 || workers == 1 {
		outcomes := make([]detector.DetectionOutcome, len(images))
		for i, img := range images {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			outcomes[i] = p.detector.Detect(img)
		}
		return outcomes, nil
	}

	jobs := make(chan detectJob, len(images))
	results := make(chan detectResult, len(images))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case job, ok := <-jobs:
					if !ok {
						return
					}
					outcome := p.detector.Detect(job.image)
					select {
					case results <- detectResult{index: job.index, outcome: outcome}:
					case <-ctx.Done():
						return
					}
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i, img := range images {
			select {
			case jobs <- detectJob{index: i, image: img}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	outcomes := make([]detector.DetectionOutcome, len(images))
	for r := range results {
		outcomes[r.index] = r.outcome
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return outcomes, nil
}
