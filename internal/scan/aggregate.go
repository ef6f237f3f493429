package scan

import (
	"context"
	"fmt"
	"io/fs"
	"math"
	"os"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/djherbis/times"
	"golang.org/x/time/rate"

	"github.com/kirpit/dirtools3/internal/item"
	"github.com/kirpit/dirtools3/internal/pathutil"
)

// fileTimes holds one entry's stat timestamps as unix seconds. created is
// the earliest of the available timestamps, birth time included where the
// platform exposes it.
type fileTimes struct {
	created  int64
	modified int64
	accessed int64
	changed  int64
}

func readTimes(info os.FileInfo) fileTimes {
	ts := times.Get(info)
	ft := fileTimes{
		modified: ts.ModTime().Unix(),
		accessed: ts.AccessTime().Unix(),
	}
	ft.changed = ft.modified
	if ts.HasChangeTime() {
		ft.changed = ts.ChangeTime().Unix()
	}
	ft.created = ft.modified
	if ft.accessed < ft.created {
		ft.created = ft.accessed
	}
	if ft.changed < ft.created {
		ft.created = ft.changed
	}
	if ts.HasBirthTime() {
		if bt := ts.BirthTime().Unix(); bt < ft.created {
			ft.created = bt
		}
	}
	return ft
}

// itemTimes folds file timestamps across an item: created keeps the
// minimum, the rest keep the maximum.
type itemTimes struct {
	created  int64
	modified int64
	accessed int64
	changed  int64
}

func (t *itemTimes) fold(ft fileTimes) {
	if ft.created < t.created {
		t.created = ft.created
	}
	if ft.modified > t.modified {
		t.modified = ft.modified
	}
	if ft.accessed > t.accessed {
		t.accessed = ft.accessed
	}
	if ft.changed > t.changed {
		t.changed = ft.changed
	}
}

// aggregator sizes discovered entries into summaries.
type aggregator struct {
	opts    *Options
	limiter *rate.Limiter
}

func newAggregator(opts *Options) *aggregator {
	a := &aggregator{opts: opts}
	if opts.MaxStatsPerSecond > 0 {
		a.limiter = rate.NewLimiter(rate.Limit(opts.MaxStatsPerSecond), opts.MaxStatsPerSecond)
	}
	return a
}

// wait gates one stat call when a rate cap is configured.
func (a *aggregator) wait() {
	if a.limiter != nil {
		_ = a.limiter.Wait(context.Background())
	}
}

// summary assembles the final record, flooring the file count at one and
// selecting the timestamp set the options ask for.
func (a *aggregator) summary(name string, size int64, depth int, files int64, t itemTimes) item.Summary {
	if files < 1 {
		files = 1
	}
	sum := item.Summary{Name: name, Size: size, Depth: depth, NumFiles: files}
	switch a.opts.Times {
	case TimesStat:
		sum.AccessedAt = t.accessed
		sum.ModifiedAt = t.modified
		sum.ChangedAt = t.changed
		sum.CreatedAt = t.changed
	default:
		sum.CreatedAt = t.created
		sum.ModifiedAt = t.modified
	}
	return sum
}

// aggregateFile summarises a non-directory item from a single stat.
func (a *aggregator) aggregateFile(ref itemRef) (item.Summary, error) {
	a.wait()
	info, err := os.Lstat(ref.path)
	if err != nil {
		return item.Summary{}, fmt.Errorf("failed to stat %s: %w", ref.path, err)
	}
	ft := readTimes(info)
	return a.summary(ref.name, info.Size(), 0, 1, itemTimes(ft)), nil
}

// aggregateDir walks the item's subtree and folds every file into one
// summary. Any error below the item fails the aggregation; an entry
// disappearing mid-walk is an error like any other.
func (a *aggregator) aggregateDir(ref itemRef) (item.Summary, error) {
	var (
		mu    sync.Mutex
		size  int64
		files int64
		depth int
		t     = itemTimes{created: math.MaxInt64}
	)

	conf := &fastwalk.Config{
		Follow:     false,
		NumWorkers: a.opts.Workers,
	}
	err := fastwalk.Walk(conf, ref.path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to walk %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}
		a.wait()
		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", path, err)
		}
		ft := readTimes(info)
		fileDepth := pathutil.Depth(ref.path, path)

		mu.Lock()
		size += info.Size()
		files++
		if fileDepth > depth {
			depth = fileDepth
		}
		t.fold(ft)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return item.Summary{}, err
	}

	// A subtree without a single file reports the directory's own stat.
	if files == 0 {
		a.wait()
		info, err := os.Lstat(ref.path)
		if err != nil {
			return item.Summary{}, fmt.Errorf("failed to stat %s: %w", ref.path, err)
		}
		t = itemTimes(readTimes(info))
	}
	return a.summary(ref.name, size, depth, files, t), nil
}
