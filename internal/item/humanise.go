package item

import (
	"github.com/kirpit/dirtools3/internal/sizeconv"
	"github.com/kirpit/dirtools3/internal/timefmt"
)

// Humanised is a Summary rendered for display: size as a unit string and
// timestamps formatted with a strftime pattern in UTC. Unset timestamp
// fields render as empty strings.
type Humanised struct {
	Name       string
	Size       string
	Depth      int
	NumFiles   int64
	CreatedAt  string
	ModifiedAt string
	AccessedAt string
	ChangedAt  string
}

// Humanise renders s using the given strftime pattern and size precision.
func Humanise(s Summary, format string, precision int) Humanised {
	h := Humanised{
		Name:     s.Name,
		Depth:    s.Depth,
		NumFiles: s.NumFiles,
	}
	if size, err := sizeconv.Format(s.Size, precision); err == nil {
		h.Size = size
	}
	h.CreatedAt = timefmt.Unix(s.CreatedAt, format)
	h.ModifiedAt = timefmt.Unix(s.ModifiedAt, format)
	if s.AccessedAt != 0 {
		h.AccessedAt = timefmt.Unix(s.AccessedAt, format)
	}
	if s.ChangedAt != 0 {
		h.ChangedAt = timefmt.Unix(s.ChangedAt, format)
	}
	return h
}
