// Package item defines the per-item summary produced by a folder scan and
// the sort criteria that order summaries inside a store.
package item

import (
	"errors"
	"fmt"
	"strings"
)

// Summary holds the aggregated attributes of one category item: a file,
// directory or symlink sitting at the scan's target level.
//
// Name is the path relative to the scan root and is unique within a scan.
// Timestamps are Unix seconds. CreatedAt and ModifiedAt are always
// populated; AccessedAt and ChangedAt are populated only when the scan
// collects stat times, in which case CreatedAt mirrors ChangedAt so that
// creation-ordered criteria work the same in both modes.
type Summary struct {
	Name       string
	Size       int64
	Depth      int
	NumFiles   int64
	CreatedAt  int64
	ModifiedAt int64
	AccessedAt int64
	ChangedAt  int64
}

// SortBy selects the attribute and direction used to order summaries.
type SortBy int

const (
	// Oldest created items first.
	Oldest SortBy = iota + 1
	// Newest created items first.
	Newest
	// Least recently modified items first.
	Coldest
	// Most recently modified items first.
	Hottest
	// Smallest items first, file or folder.
	Smallest
	// Largest items first, file or folder.
	Largest
	// Items with the least number of files first.
	LeastFiles
	// Items with the most number of files first.
	MostFiles
	// Items with the shallowest sub folders first.
	LeastDepth
	// Items with the deepest sub folders first.
	MostDepth
)

// ErrInvalidCriterion is returned for a SortBy value or name that does not
// match any defined criterion.
var ErrInvalidCriterion = errors.New("invalid sort criterion")

var sortByNames = map[SortBy]string{
	Oldest:     "OLDEST",
	Newest:     "NEWEST",
	Coldest:    "COLDEST",
	Hottest:    "HOTTEST",
	Smallest:   "SMALLEST",
	Largest:    "LARGEST",
	LeastFiles: "LEAST_FILES",
	MostFiles:  "MOST_FILES",
	LeastDepth: "LEAST_DEPTH",
	MostDepth:  "MOST_DEPTH",
}

func (by SortBy) String() string {
	if name, ok := sortByNames[by]; ok {
		return name
	}
	return fmt.Sprintf("SortBy(%d)", int(by))
}

// ParseSortBy resolves a case-insensitive criterion name such as "newest"
// or "LEAST_FILES".
func ParseSortBy(name string) (SortBy, error) {
	want := strings.ToUpper(strings.TrimSpace(name))
	for by, s := range sortByNames {
		if s == want {
			return by, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidCriterion, name)
}

// KeyFunc extracts the sort key of a summary.
type KeyFunc func(Summary) int64

// Key resolves the criterion into its key accessor and direction.
// descending is true for the "most/newest/largest" half of the criteria.
func (by SortBy) Key() (key KeyFunc, descending bool, err error) {
	switch by {
	case Oldest:
		return func(s Summary) int64 { return s.CreatedAt }, false, nil
	case Newest:
		return func(s Summary) int64 { return s.CreatedAt }, true, nil
	case Coldest:
		return func(s Summary) int64 { return s.ModifiedAt }, false, nil
	case Hottest:
		return func(s Summary) int64 { return s.ModifiedAt }, true, nil
	case Smallest:
		return func(s Summary) int64 { return s.Size }, false, nil
	case Largest:
		return func(s Summary) int64 { return s.Size }, true, nil
	case LeastFiles:
		return func(s Summary) int64 { return s.NumFiles }, false, nil
	case MostFiles:
		return func(s Summary) int64 { return s.NumFiles }, true, nil
	case LeastDepth:
		return func(s Summary) int64 { return int64(s.Depth) }, false, nil
	case MostDepth:
		return func(s Summary) int64 { return int64(s.Depth) }, true, nil
	}
	return nil, false, fmt.Errorf("%w: %v", ErrInvalidCriterion, by)
}

// SortByValues lists every defined criterion in declaration order.
func SortByValues() []SortBy {
	return []SortBy{
		Oldest, Newest, Coldest, Hottest, Smallest, Largest,
		LeastFiles, MostFiles, LeastDepth, MostDepth,
	}
}
