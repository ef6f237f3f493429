package scan

import (
	"testing"

	"github.com/kirpit/dirtools3/internal/timefmt"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.Level != 0 || opts.Workers != 8 {
		t.Fatalf("unexpected defaults: %+v", opts)
	}
	if opts.TimeFormat != timefmt.Default {
		t.Fatalf("TimeFormat = %q, want %q", opts.TimeFormat, timefmt.Default)
	}
	if opts.Times != TimesCreated {
		t.Fatalf("Times = %v, want %v", opts.Times, TimesCreated)
	}
	if opts.MaxStatsPerSecond != 0 {
		t.Fatalf("MaxStatsPerSecond = %d, want 0", opts.MaxStatsPerSecond)
	}
}

func TestOptionsChaining(t *testing.T) {
	opts := DefaultOptions().
		WithLevel(2).
		WithWorkers(4).
		WithTimeFormat("%Y-%m-%d").
		WithTimes(TimesStat).
		WithMaxStatsPerSecond(500)

	if opts.Level != 2 || opts.Workers != 4 {
		t.Fatalf("unexpected options: %+v", opts)
	}
	if opts.TimeFormat != "%Y-%m-%d" || opts.Times != TimesStat || opts.MaxStatsPerSecond != 500 {
		t.Fatalf("unexpected options: %+v", opts)
	}
}

func TestParseTimesVariant(t *testing.T) {
	cases := []struct {
		in   string
		want TimesVariant
	}{
		{"created", TimesCreated},
		{"CREATED", TimesCreated},
		{"stat", TimesStat},
		{" Stat ", TimesStat},
	}
	for _, c := range cases {
		got, err := ParseTimesVariant(c.in)
		if err != nil {
			t.Fatalf("ParseTimesVariant(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseTimesVariant(%q) = %v, want %v", c.in, got, c.want)
		}
	}

	if _, err := ParseTimesVariant("bogus"); err == nil {
		t.Fatal("ParseTimesVariant(bogus) succeeded")
	}
	if TimesStat.String() != "stat" {
		t.Fatalf("String() = %q, want %q", TimesStat.String(), "stat")
	}
}
