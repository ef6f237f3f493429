package scan

import (
	"fmt"
	"strings"

	"github.com/kirpit/dirtools3/internal/timefmt"
)

// TimesVariant selects which timestamp set summaries carry.
type TimesVariant int

const (
	// TimesCreated reports creation and modification times, where creation
	// is the earliest timestamp the platform exposes for the entry.
	TimesCreated TimesVariant = iota

	// TimesStat reports access, modification and change times straight
	// from stat, each aggregated independently.
	TimesStat
)

var timesNames = map[TimesVariant]string{
	TimesCreated: "created",
	TimesStat:    "stat",
}

// String returns the variant's flag spelling.
func (v TimesVariant) String() string {
	if name, ok := timesNames[v]; ok {
		return name
	}
	return fmt.Sprintf("TimesVariant(%d)", int(v))
}

// ParseTimesVariant converts a flag value into a TimesVariant.
func ParseTimesVariant(s string) (TimesVariant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "created":
		return TimesCreated, nil
	case "stat":
		return TimesStat, nil
	}
	return 0, fmt.Errorf("invalid times variant %q (expected created|stat)", s)
}

// Options configures the scanning behavior.
type Options struct {
	// Level is the tree depth whose entries become items. Zero means the
	// direct children of the root.
	Level int

	// Workers is the number of concurrent stat workers sizing a
	// directory item.
	Workers int

	// TimeFormat is the strftime pattern applied when summaries are
	// humanised.
	TimeFormat string

	// Times selects the timestamp set each summary carries.
	Times TimesVariant

	// MaxStatsPerSecond throttles stat calls during aggregation.
	// Zero means unlimited.
	MaxStatsPerSecond int
}

// DefaultOptions returns sensible defaults for scanning.
func DefaultOptions() *Options {
	return &Options{
		Level:             0,
		Workers:           8,
		TimeFormat:        timefmt.Default,
		Times:             TimesCreated,
		MaxStatsPerSecond: 0,
	}
}

// WithLevel sets the item level.
func (o *Options) WithLevel(n int) *Options {
	o.Level = n
	return o
}

// WithWorkers sets the number of stat workers.
func (o *Options) WithWorkers(n int) *Options {
	o.Workers = n
	return o
}

// WithTimeFormat sets the strftime pattern for humanised timestamps.
func (o *Options) WithTimeFormat(pattern string) *Options {
	o.TimeFormat = pattern
	return o
}

// WithTimes sets the timestamp variant.
func (o *Options) WithTimes(v TimesVariant) *Options {
	o.Times = v
	return o
}

// WithMaxStatsPerSecond caps the stat rate during aggregation.
func (o *Options) WithMaxStatsPerSecond(n int) *Options {
	o.MaxStatsPerSecond = n
	return o
}
