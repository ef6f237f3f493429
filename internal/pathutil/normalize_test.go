package pathutil

import (
	"path/filepath"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/a/b/", "/a/b"},
		{"/a/./b", "/a/b"},
		{"/a/b/../c", "/a/c"},
		{"rel/path/", filepath.Clean("rel/path")},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Fatalf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDepth(t *testing.T) {
	cases := []struct {
		root, path string
		want       int
	}{
		{"/a", "/a", 0},
		{"/a", "/a/b", 1},
		{"/a", "/a/b/c", 2},
		{"/a", "/a/b/c/d.txt", 3},
		{"/a/b", "/a", -1},
		{"/a", "/other", -1},
	}
	for _, c := range cases {
		if got := Depth(c.root, c.path); got != c.want {
			t.Fatalf("Depth(%q, %q) = %d, want %d", c.root, c.path, got, c.want)
		}
	}
}
