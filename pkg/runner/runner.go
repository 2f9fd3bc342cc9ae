package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yigitcukuren/phpfmt/pkg/format"
)

// Run discovers files and formats them concurrently. Outcomes come
// back in path order regardless of which worker finished first, so
// output and exit codes are deterministic.
func Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(ctx, workCh, outCh, opts)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	return result, nil
}

func worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome, opts Options) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := FileOutcome{Path: path}
		fr, err := format.ProcessFile(ctx, path, opts.Config, opts.Pipeline)
		if err != nil {
			outcome.Error = err
		} else {
			outcome.Result = fr
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}
