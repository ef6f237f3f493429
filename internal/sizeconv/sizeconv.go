// Package sizeconv converts byte counts to and from human readable unit
// strings. Units are powers of 1024 with the two-letter suffixes Kb through
// Yb plus the long form "byte"; suffix matching is case-insensitive.
package sizeconv

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var symNames = [...]string{"Byte", "Kb", "Mb", "Gb", "Tb", "Pb", "Xb", "Zb", "Yb"}

const maxInt64f = float64(1 << 63)

// FormatError reports a size string or value that cannot be converted.
type FormatError struct {
	msg string
}

func (e *FormatError) Error() string { return e.msg }

func formatErrorf(format string, args ...any) *FormatError {
	return &FormatError{msg: fmt.Sprintf(format, args...)}
}

// Parse converts a human size string such as "2.4 Kb", "123 byte" or a
// plain numeric string into a byte count. Fractional values truncate
// toward zero after unit scaling. Values outside the int64 range fail.
func Parse(value string) (int64, error) {
	if len(value) >= 2 {
		if index := suffixIndex(value[len(value)-2:]); index >= 1 {
			f, err := parseFloat(value[:len(value)-2])
			if err != nil {
				return 0, formatErrorf("cannot convert to float: %s", value)
			}
			return truncate(math.Ldexp(f, index*10), value)
		}
	}
	if len(value) >= 4 && strings.EqualFold(value[len(value)-4:], "byte") {
		f, err := parseFloat(value[:len(value)-4])
		if err != nil {
			return 0, formatErrorf("cannot convert to float: %s", value)
		}
		return truncate(f, value)
	}
	f, err := parseFloat(value)
	if err != nil {
		return 0, formatErrorf("cannot convert to float: %s", value)
	}
	return truncate(f, value)
}

// Format renders a non-negative byte count with the largest unit whose
// scaled value is at least 1. The fractional part is rounded half-even to
// the given precision; whole values render without a decimal point.
func Format(value int64, precision int) (string, error) {
	if value < 0 {
		return "", formatErrorf("cannot convert negative size: %d", value)
	}
	if value < 1024 {
		return fmt.Sprintf("%d Byte", value), nil
	}
	for i := len(symNames) - 1; i >= 1; i-- {
		size := value >> uint(i*10)
		if size == 0 {
			continue
		}
		unit := int64(1) << uint(i*10)
		remaining := float64(value-size<<uint(i*10)) / float64(unit)
		f := roundEven(float64(size)+remaining, precision)
		if f == math.Trunc(f) {
			return fmt.Sprintf("%d %s", int64(f), symNames[i]), nil
		}
		return strconv.FormatFloat(f, 'f', -1, 64) + " " + symNames[i], nil
	}
	return "", formatErrorf("cannot convert size: %d", value)
}

func suffixIndex(suffix string) int {
	for i := 1; i < len(symNames); i++ {
		if strings.EqualFold(symNames[i], suffix) {
			return i
		}
	}
	return -1
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func truncate(f float64, value string) (int64, error) {
	if math.IsNaN(f) || f >= maxInt64f || f < -maxInt64f {
		return 0, formatErrorf("size out of range: %s", value)
	}
	return int64(f), nil
}

func roundEven(v float64, precision int) float64 {
	scale := math.Pow(10, float64(precision))
	return math.RoundToEven(v*scale) / scale
}
