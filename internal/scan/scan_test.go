package scan

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kirpit/dirtools3/internal/item"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, bytes.Repeat([]byte("x"), size), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func findItem(t *testing.T, items []item.Summary, name string) item.Summary {
	t.Helper()
	for _, sum := range items {
		if sum.Name == name {
			return sum
		}
	}
	t.Fatalf("item %q not found in %+v", name, items)
	return item.Summary{}
}

func itemNames(items []item.Summary) []string {
	names := make([]string, len(items))
	for i, sum := range items {
		names[i] = sum.Name
	}
	return names
}

func TestScanLevelZero(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "file.txt"), 100)
	writeFile(t, filepath.Join(root, "sub", "inner.txt"), 50)
	writeFile(t, filepath.Join(root, "sub", "deep", "deeper.txt"), 25)

	sc := New(root, item.Smallest, nil).Start()
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if sc.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", sc.Count())
	}
	if sc.TotalSize() != 175 {
		t.Fatalf("TotalSize() = %d, want 175", sc.TotalSize())
	}

	items := sc.Items()
	sub := findItem(t, items, "sub")
	if sub.Size != 75 || sub.NumFiles != 2 || sub.Depth != 2 {
		t.Fatalf("unexpected sub summary: %+v", sub)
	}
	file := findItem(t, items, "file.txt")
	if file.Size != 100 || file.NumFiles != 1 || file.Depth != 0 {
		t.Fatalf("unexpected file summary: %+v", file)
	}

	// Smallest first: the 75 byte folder sorts ahead of the 100 byte file.
	if items[0].Name != "sub" || items[1].Name != "file.txt" {
		t.Fatalf("unexpected order: %v", itemNames(items))
	}
}

func TestScanLevelOne(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "d1", "f1"), 10)
	writeFile(t, filepath.Join(root, "d2", "f2"), 20)
	// An entry above the target level that is not a directory is ignored.
	writeFile(t, filepath.Join(root, "stray"), 30)

	sc := New(root, item.Smallest, DefaultOptions().WithLevel(1)).Start()
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if sc.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", sc.Count())
	}
	if sc.TotalSize() != 30 {
		t.Fatalf("TotalSize() = %d, want 30", sc.TotalSize())
	}

	items := sc.Items()
	f1 := findItem(t, items, filepath.Join("d1", "f1"))
	if f1.Size != 10 || f1.Depth != 0 {
		t.Fatalf("unexpected f1 summary: %+v", f1)
	}
	findItem(t, items, filepath.Join("d2", "f2"))
}

func TestScanEmptyRoot(t *testing.T) {
	sc := New(t.TempDir(), item.Newest, nil).Start()
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if sc.Count() != 0 || sc.TotalSize() != 0 {
		t.Fatalf("Count() = %d, TotalSize() = %d, want 0, 0", sc.Count(), sc.TotalSize())
	}
	if len(sc.Items()) != 0 {
		t.Fatalf("Items() = %v, want none", sc.Items())
	}
	if sc.ExecTook() < 0 {
		t.Fatalf("ExecTook() = %v", sc.ExecTook())
	}
}

func TestScanMissingRoot(t *testing.T) {
	sc := New(filepath.Join(t.TempDir(), "absent"), item.Newest, nil).Start()
	if err := sc.Err(); err == nil {
		t.Fatal("scan of missing root succeeded")
	}
	if sc.Items() != nil {
		t.Fatalf("Items() = %v, want nil", sc.Items())
	}
	if sc.Count() != 0 || sc.TotalSize() != 0 {
		t.Fatalf("Count() = %d, TotalSize() = %d, want 0, 0", sc.Count(), sc.TotalSize())
	}
}

func TestScanInvalidCriterion(t *testing.T) {
	sc := New(t.TempDir(), item.SortBy(0), nil).Start()
	if err := sc.Err(); !errors.Is(err, item.ErrInvalidCriterion) {
		t.Fatalf("Err() = %v, want ErrInvalidCriterion", err)
	}
}

func TestScanTieOrderFollowsDiscovery(t *testing.T) {
	root := t.TempDir()
	names := []string{"v", "w", "x", "y", "z"}
	// Create in reverse so discovery order comes from the name-sorted
	// directory listing, not creation time.
	for i := len(names) - 1; i >= 0; i-- {
		writeFile(t, filepath.Join(root, names[i]), 1024)
	}

	sc := New(root, item.Smallest, nil).Start()
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	got := itemNames(sc.Items())
	for i, name := range names {
		if got[i] != name {
			t.Fatalf("Items() = %v, want %v", got, names)
		}
	}
}

func TestScanDepthChain(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "top", "d2", "d3", "leaf.txt"), 7)

	sc := New(root, item.Smallest, nil).Start()
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	top := findItem(t, sc.Items(), "top")
	if top.Depth != 3 {
		t.Fatalf("Depth = %d, want 3", top.Depth)
	}
	if top.Size != 7 || top.NumFiles != 1 {
		t.Fatalf("unexpected top summary: %+v", top)
	}
}

func TestScanEmptyFolderItem(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "hollow"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	sc := New(root, item.Smallest, nil).Start()
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	hollow := findItem(t, sc.Items(), "hollow")
	if hollow.Size != 0 || hollow.Depth != 0 {
		t.Fatalf("unexpected hollow summary: %+v", hollow)
	}
	// A folder with no files still counts as one and carries its own times.
	if hollow.NumFiles != 1 {
		t.Fatalf("NumFiles = %d, want 1", hollow.NumFiles)
	}
	if hollow.CreatedAt == 0 || hollow.ModifiedAt == 0 {
		t.Fatalf("timestamps missing: %+v", hollow)
	}
}

func TestScanCreatedModifiedAggregation(t *testing.T) {
	root := t.TempDir()
	oldTime := time.Unix(1500000000, 0)
	newTime := time.Unix(1600000000, 0)

	oldPath := filepath.Join(root, "sub", "old.txt")
	newPath := filepath.Join(root, "sub", "new.txt")
	writeFile(t, oldPath, 1)
	writeFile(t, newPath, 1)
	if err := os.Chtimes(oldPath, oldTime, oldTime); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	if err := os.Chtimes(newPath, newTime, newTime); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	sc := New(root, item.Oldest, nil).Start()
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	sub := findItem(t, sc.Items(), "sub")
	if sub.CreatedAt != oldTime.Unix() {
		t.Fatalf("CreatedAt = %d, want %d", sub.CreatedAt, oldTime.Unix())
	}
	if sub.ModifiedAt != newTime.Unix() {
		t.Fatalf("ModifiedAt = %d, want %d", sub.ModifiedAt, newTime.Unix())
	}
	if sub.AccessedAt != 0 || sub.ChangedAt != 0 {
		t.Fatalf("stat times populated without the stat variant: %+v", sub)
	}
}

func TestScanStatTimesVariant(t *testing.T) {
	root := t.TempDir()
	atime := time.Unix(1600000000, 0)
	mtime := time.Unix(1500000000, 0)

	path := filepath.Join(root, "f")
	writeFile(t, path, 1)
	if err := os.Chtimes(path, atime, mtime); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	sc := New(root, item.Newest, DefaultOptions().WithTimes(TimesStat)).Start()
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	f := findItem(t, sc.Items(), "f")
	if f.AccessedAt != atime.Unix() {
		t.Fatalf("AccessedAt = %d, want %d", f.AccessedAt, atime.Unix())
	}
	if f.ModifiedAt != mtime.Unix() {
		t.Fatalf("ModifiedAt = %d, want %d", f.ModifiedAt, mtime.Unix())
	}
	if f.ChangedAt <= mtime.Unix() {
		t.Fatalf("ChangedAt = %d, want after %d", f.ChangedAt, mtime.Unix())
	}
	if f.CreatedAt != f.ChangedAt {
		t.Fatalf("CreatedAt = %d, want %d", f.CreatedAt, f.ChangedAt)
	}
}

func TestScanSymlinkItemNotFollowed(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "real", "big.txt"), 500)
	if err := os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "link")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	sc := New(root, item.Smallest, nil).Start()
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	link := findItem(t, sc.Items(), "link")
	if link.Depth != 0 || link.NumFiles != 1 {
		t.Fatalf("link was followed: %+v", link)
	}
	if link.Size == 500 {
		t.Fatalf("link size matches target contents: %+v", link)
	}
	target := findItem(t, sc.Items(), "real")
	if target.Size != 500 || target.Depth != 1 {
		t.Fatalf("unexpected real summary: %+v", target)
	}
}

func TestScanResort(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a"), 1)
	writeFile(t, filepath.Join(root, "b"), 2)
	writeFile(t, filepath.Join(root, "c"), 3)

	sc := New(root, item.Smallest, nil).Start()
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if got := itemNames(sc.Items()); got[0] != "a" || got[2] != "c" {
		t.Fatalf("unexpected initial order: %v", got)
	}

	if err := sc.Resort(item.Largest); err != nil {
		t.Fatalf("resort: %v", err)
	}
	if got := itemNames(sc.Items()); got[0] != "c" || got[2] != "a" {
		t.Fatalf("unexpected order after resort: %v", got)
	}

	if err := sc.Resort(item.SortBy(42)); !errors.Is(err, item.ErrInvalidCriterion) {
		t.Fatalf("Resort(42) = %v, want ErrInvalidCriterion", err)
	}
}

func TestScanProgress(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a", "b", "c", "d"} {
		writeFile(t, filepath.Join(root, name), 10)
	}

	sc := New(root, item.Smallest, nil).Start()
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if sc.Progress() != int64(sc.Count()) {
		t.Fatalf("Progress() = %d, want %d", sc.Progress(), sc.Count())
	}
}

func TestScanDeleteItem(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "keep"), 10)
	writeFile(t, filepath.Join(root, "drop", "f"), 20)

	sc := New(root, item.Smallest, nil).Start()
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if err := sc.DeleteItem("drop"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Lstat(filepath.Join(root, "drop")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("drop still exists: %v", err)
	}
	if sc.Count() != 1 || sc.TotalSize() != 10 {
		t.Fatalf("Count() = %d, TotalSize() = %d, want 1, 10", sc.Count(), sc.TotalSize())
	}
	if err := sc.DeleteItem("drop"); err == nil {
		t.Fatal("deleting a removed item succeeded")
	}
}
