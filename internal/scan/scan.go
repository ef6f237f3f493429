// Package scan walks a directory tree to a configured level and keeps a
// live, sortable summary of every entry found there.
//
// A Scanner is inert until Start, which returns a Scan handle immediately.
// The handle's result accessors block until the walk finishes; a scan
// either summarises the whole level or fails as a whole.
package scan

import (
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/kirpit/dirtools3/internal/item"
	"github.com/kirpit/dirtools3/internal/logger"
	"github.com/kirpit/dirtools3/internal/sizeconv"
	"github.com/kirpit/dirtools3/internal/store"
)

// Scanner prepares a scan of one directory tree.
type Scanner struct {
	root string
	by   item.SortBy
	opts *Options
}

// New returns a scanner of root whose live order follows by. A nil opts
// means DefaultOptions.
func New(root string, by item.SortBy, opts *Options) *Scanner {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Scanner{root: root, by: by, opts: opts}
}

// Start launches the scan and returns its handle without waiting.
func (s *Scanner) Start() *Scan {
	sc := &Scan{
		by:    s.by,
		opts:  s.opts,
		store: store.New(),
		done:  make(chan struct{}),
	}

	key, descending, err := s.by.Key()
	if err != nil {
		sc.fail(err)
		return sc
	}
	sc.key, sc.descending = key, descending

	root, err := filepath.Abs(s.root)
	if err != nil {
		sc.fail(fmt.Errorf("failed to resolve root path: %w", err))
		return sc
	}
	sc.root = root

	go sc.run()
	return sc
}

// Scan is a running or finished scan. All methods are safe for concurrent
// use; the result accessors block until the scan completes.
type Scan struct {
	root  string
	by    item.SortBy
	opts  *Options
	store *store.Store

	key        item.KeyFunc
	descending bool

	summarised int64

	done chan struct{}
	err  error
	took time.Duration
}

func (sc *Scan) fail(err error) {
	sc.err = err
	close(sc.done)
}

func (sc *Scan) run() {
	start := time.Now()
	logger.Debugf("scanning initialised for %s at level %d", sc.root, sc.opts.Level)

	agg := newAggregator(sc.opts)
	err := discover(sc.root, sc.opts.Level, func(ref itemRef) error {
		var sum item.Summary
		var err error
		if ref.isDir {
			sum, err = agg.aggregateDir(ref)
		} else {
			sum, err = agg.aggregateFile(ref)
		}
		if err != nil {
			return err
		}
		sc.store.Insert(sum, sc.key, sc.descending)
		atomic.AddInt64(&sc.summarised, 1)
		return nil
	})
	if err == nil {
		// The live order is approximate; this resort is the one that counts.
		sc.store.Resort(sc.key, sc.descending)
	}

	sc.err = err
	sc.took = time.Since(start).Round(time.Millisecond)
	if err == nil {
		total, _ := sizeconv.Format(sc.store.TotalSize(), 2)
		logger.Debugf("scanning completed for %d items with %s of data; took %s",
			sc.store.Len(), total, sc.took)
	}
	close(sc.done)
}

// Root returns the absolute path the scan covers.
func (sc *Scan) Root() string { return sc.root }

// SortBy returns the criterion the scan was constructed with.
func (sc *Scan) SortBy() item.SortBy { return sc.by }

// Options returns the scan's options.
func (sc *Scan) Options() *Options { return sc.opts }

// Done returns a channel that is closed when the scan finishes.
func (sc *Scan) Done() <-chan struct{} { return sc.done }

// Progress returns the number of items summarised so far. It never blocks.
func (sc *Scan) Progress() int64 { return atomic.LoadInt64(&sc.summarised) }

// Err blocks until the scan finishes and returns its failure, if any.
func (sc *Scan) Err() error {
	<-sc.done
	return sc.err
}

// Count blocks until the scan finishes and returns the number of items. A
// failed scan counts as empty.
func (sc *Scan) Count() int {
	<-sc.done
	if sc.err != nil {
		return 0
	}
	return sc.store.Len()
}

// TotalSize blocks until the scan finishes and returns the byte total of
// all items. A failed scan totals zero.
func (sc *Scan) TotalSize() int64 {
	<-sc.done
	if sc.err != nil {
		return 0
	}
	return sc.store.TotalSize()
}

// Items blocks until the scan finishes and returns the summaries in their
// current order. A failed scan has no items.
func (sc *Scan) Items() []item.Summary {
	<-sc.done
	if sc.err != nil {
		return nil
	}
	return sc.store.Items()
}

// ExecTook blocks until the scan finishes and returns the wall time it
// took, rounded to the millisecond.
func (sc *Scan) ExecTook() time.Duration {
	<-sc.done
	return sc.took
}

// Resort reorders the items by the given criterion. It never blocks: called
// mid-scan it reorders what has arrived so far, and the completion resort
// under the construction criterion still has the last word.
func (sc *Scan) Resort(by item.SortBy) error {
	key, descending, err := by.Key()
	if err != nil {
		return err
	}
	sc.store.Resort(key, descending)
	return nil
}

// DeleteItem removes the named item from the order, then from disk. The
// totals are adjusted before the filesystem is touched.
func (sc *Scan) DeleteItem(name string) error {
	<-sc.done
	if sc.err != nil {
		return fmt.Errorf("scan failed: %w", sc.err)
	}
	sum, ok := sc.store.Take(name)
	if !ok {
		return fmt.Errorf("no such item: %s", name)
	}
	return removeItem(filepath.Join(sc.root, sum.Name))
}
