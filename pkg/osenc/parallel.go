package osenc

import (
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/beetlebugorg/osenc/internal/log"
)

// LoadOptions controls parallel loading behavior and error handling.
type LoadOptions struct {
	// Parallel enables concurrent loading.
	// When true, files are read by multiple worker goroutines.
	Parallel bool

	// Workers specifies the number of loader goroutines.
	// If 0, defaults to runtime.NumCPU(). Only used when Parallel is true.
	Workers int

	// SkipErrors causes loading to continue when individual files fail.
	// Failed files are skipped and their errors collected. When false, the
	// first error stops loading and is returned alone.
	SkipErrors bool

	// Progress is an optional callback called after each file is processed,
	// successfully or not, with the number processed so far.
	Progress func(loaded, total int)
}

// DefaultLoadOptions returns load options with sensible defaults.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Parallel:   true,
		Workers:    runtime.NumCPU(),
		SkipErrors: true,
	}
}

// LoadEntriesParallel reads the header of every path and returns index
// entries in path order. Only header records are decoded, so this is fast
// enough to catalogue thousands of cells.
//
// Example:
//
//	entries, errs := osenc.LoadEntriesParallel(paths, parser, osenc.LoadOptions{
//	    Parallel:   true,
//	    SkipErrors: true,
//	    Progress: func(loaded, total int) {
//	        fmt.Printf("\rReading: %d/%d", loaded, total)
//	    },
//	})
func LoadEntriesParallel(paths []string, p Parser, opts LoadOptions) ([]ChartEntry, []error) {
	return loadParallel(paths, func(path string) (ChartEntry, error) {
		return LoadEntry(path, p)
	}, opts)
}

// LoadChartsParallel fully decodes every path, in path order.
func LoadChartsParallel(paths []string, p Parser, parseOpts ParseOptions, opts LoadOptions) ([]*Chart, []error) {
	return loadParallel(paths, func(path string) (*Chart, error) {
		return p.ParseWithOptions(path, parseOpts)
	}, opts)
}

// loadParallel runs load over paths with a worker pool and keeps the
// results in path order.
func loadParallel[T any](paths []string, load func(string) (T, error), opts LoadOptions) ([]T, []error) {
	if len(paths) == 0 {
		return []T{}, nil
	}

	if !opts.Parallel {
		return loadSerial(paths, load, opts)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	type loadResult struct {
		index int
		value T
		err   error
	}

	jobs := make(chan int, len(paths))
	results := make(chan loadResult, len(paths))
	done := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range jobs {
				select {
				case <-done:
					return
				default:
				}
				value, err := load(paths[index])
				results <- loadResult{index: index, value: value, err: err}
			}
		}()
	}

	for i := range paths {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	loadedValues := make(map[int]T)
	var errs []error
	loaded := 0
	stopped := false

	for result := range results {
		if stopped {
			continue
		}
		loaded++
		if opts.Progress != nil {
			opts.Progress(loaded, len(paths))
		}

		if result.err != nil {
			err := fmt.Errorf("%s: %w", paths[result.index], result.err)
			log.Warn("osenc: load failed", zap.String("path", paths[result.index]), zap.Error(result.err))
			if !opts.SkipErrors {
				// Drain the remaining results so the workers can exit.
				stopped = true
				close(done)
				errs = []error{err}
				continue
			}
			errs = append(errs, err)
			continue
		}
		loadedValues[result.index] = result.value
	}

	if stopped {
		return nil, errs
	}

	values := make([]T, 0, len(loadedValues))
	for i := range paths {
		if v, ok := loadedValues[i]; ok {
			values = append(values, v)
		}
	}
	return values, errs
}

// loadSerial loads paths one at a time (fallback when Parallel=false).
func loadSerial[T any](paths []string, load func(string) (T, error), opts LoadOptions) ([]T, []error) {
	values := make([]T, 0, len(paths))
	var errs []error

	for i, path := range paths {
		value, err := load(path)
		if opts.Progress != nil {
			opts.Progress(i+1, len(paths))
		}
		if err != nil {
			err := fmt.Errorf("%s: %w", path, err)
			log.Warn("osenc: load failed", zap.String("path", path), zap.Error(err))
			if !opts.SkipErrors {
				return nil, []error{err}
			}
			errs = append(errs, err)
			continue
		}
		values = append(values, value)
	}
	return values, errs
}
