// Package timefmt renders Unix timestamps with strftime patterns in UTC.
package timefmt

import (
	"time"

	"github.com/ncruces/go-strftime"
)

// Default is the date/time pattern used when no custom format is given.
const Default = "%Y %b %d %H:%M"

// Unix formats ts (Unix seconds) with the given strftime pattern in UTC.
func Unix(ts int64, pattern string) string {
	return strftime.Format(pattern, time.Unix(ts, 0).UTC())
}
