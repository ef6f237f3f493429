package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/time/rate"
)

// dirtstatbench measures how fast the filesystem under a folder serves
// lstat calls, with an optional throttle matching dirt's
// --max-stats-per-sec flag. Run it against a scan target to pick a rate
// that leaves the storage responsive for everyone else.
func main() {
	dir := flag.String("dir", ".", "Folder to probe")
	limit := flag.Int("limit", 200000, "Max entries to sample (0 = all)")
	workers := flag.Int("workers", 8, "Concurrent lstat workers")
	recursive := flag.Bool("recursive", false, "Sample the whole tree instead of direct entries")
	maxStats := flag.Int("max-stats-per-sec", 0, "Throttle lstat calls (0 = unlimited)")
	flag.Parse()

	paths, readDirDur, err := collectPaths(*dir, *limit, *recursive)
	if err != nil {
		fmt.Fprintf(os.Stderr, "collect error: %v\n", err)
		os.Exit(1)
	}

	var limiter *rate.Limiter
	if *maxStats > 0 {
		limiter = rate.NewLimiter(rate.Limit(*maxStats), *maxStats)
	}

	var idx, statCount, errCount, totalDur int64
	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				n := int(atomic.AddInt64(&idx, 1)) - 1
				if n >= len(paths) {
					return
				}
				if limiter != nil {
					_ = limiter.Wait(context.Background())
				}
				t0 := time.Now()
				_, err := os.Lstat(paths[n])
				atomic.AddInt64(&totalDur, time.Since(t0).Microseconds())
				atomic.AddInt64(&statCount, 1)
				if err != nil {
					atomic.AddInt64(&errCount, 1)
				}
			}
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	avg := time.Duration(0)
	if statCount > 0 {
		avg = time.Duration(totalDur/statCount) * time.Microsecond
	}

	fmt.Printf("dir=%s entries=%s workers=%d recursive=%t max-stats-per-sec=%d\n",
		*dir, humanize.Comma(statCount), *workers, *recursive, *maxStats)
	fmt.Printf("collect: %v\n", readDirDur)
	fmt.Printf("lstat:   calls=%s avg=%v total=%v errors=%s\n",
		humanize.Comma(statCount), avg, elapsed, humanize.Comma(errCount))
	if elapsed.Seconds() > 0 {
		fmt.Printf("throughput: %.0f stats/sec\n", float64(statCount)/elapsed.Seconds())
	}
}

// collectPaths lists the sample set up front so listing cost never counts
// against the measured lstat loop.
func collectPaths(dir string, limit int, recursive bool) ([]string, time.Duration, error) {
	start := time.Now()
	if !recursive {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, 0, err
		}
		if limit > 0 && limit < len(entries) {
			entries = entries[:limit]
		}
		paths := make([]string, 0, len(entries))
		for _, de := range entries {
			paths = append(paths, filepath.Join(dir, de.Name()))
		}
		return paths, time.Since(start), nil
	}

	var paths []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if path == dir {
			return nil
		}
		paths = append(paths, path)
		if limit > 0 && len(paths) >= limit {
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return paths, time.Since(start), nil
}
