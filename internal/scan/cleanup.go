package scan

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kirpit/dirtools3/internal/item"
	"github.com/kirpit/dirtools3/internal/logger"
	"github.com/kirpit/dirtools3/internal/sizeconv"
)

// CleanupItems frees disk space by deleting items from the front of the
// order until the scanned total is at most maxTotalSize, a human-readable
// size such as "1.5 Gb". The size is parsed before anything is waited on
// or touched; the deletions themselves happen lazily as the returned
// iterator advances.
func (sc *Scan) CleanupItems(maxTotalSize string) (*CleanupIter, error) {
	limit, err := sizeconv.Parse(maxTotalSize)
	if err != nil {
		return nil, err
	}
	<-sc.done
	if sc.err != nil {
		return nil, fmt.Errorf("scan failed: %w", sc.err)
	}
	return &CleanupIter{scan: sc, limit: limit}, nil
}

// CleanupIter streams the summaries deleted by one cleanup run.
//
//	iter, err := sc.CleanupItems("10 Gb")
//	...
//	for iter.Next() {
//		fmt.Println(iter.Item().Name)
//	}
//	if err := iter.Err(); err != nil { ...
type CleanupIter struct {
	scan  *Scan
	limit int64
	cur   item.Summary
	err   error
	done  bool

	deletedLen  int
	deletedSize int64
}

// Next deletes the next item while the total still exceeds the limit and
// reports whether it did. The item leaves the totals before its path is
// removed from disk, so a deleted summary stands even if a later one
// fails.
func (it *CleanupIter) Next() bool {
	if it.done || it.err != nil {
		return false
	}
	if it.scan.store.TotalSize() <= it.limit {
		it.finish()
		return false
	}
	sum, ok := it.scan.store.PopFront()
	if !ok {
		it.finish()
		return false
	}
	if err := removeItem(filepath.Join(it.scan.root, sum.Name)); err != nil {
		it.err = err
		return false
	}
	it.cur = sum
	it.deletedLen++
	it.deletedSize += sum.Size
	return true
}

// Item returns the summary deleted by the last successful Next.
func (it *CleanupIter) Item() item.Summary { return it.cur }

// Err returns the deletion failure that stopped the run, if any.
func (it *CleanupIter) Err() error { return it.err }

func (it *CleanupIter) finish() {
	it.done = true
	size, _ := sizeconv.Format(it.deletedSize, 2)
	logger.Debugf("%d items with total of %s data has been deleted.", it.deletedLen, size)
}

// removeItem deletes one filesystem entry, recursively when it is a
// directory.
func removeItem(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("failed to remove directory %s: %w", path, err)
		}
		return nil
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}
