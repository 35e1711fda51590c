// Package dates expands literal dates and date ranges into the ordered
// list of date strings a batch runs over.
package dates

import (
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/ncruces/go-strftime"
)

// DefaultFormat is the strftime layout used when none is configured.
const DefaultFormat = "%Y-%m-%d"

// ErrInvalidDateFormat is returned when a date does not match the
// configured format.
var ErrInvalidDateFormat = errors.New("invalid date format")

// Parse reads value using the strftime layout format.
func Parse(format, value string) (time.Time, error) {
	t, err := strftime.Parse(format, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q does not match %q: %v", ErrInvalidDateFormat, value, format, err)
	}
	return t, nil
}

// Format renders t using the strftime layout format.
func Format(format string, t time.Time) string {
	return strftime.Format(format, t)
}

// Generate yields start, start+step, start+2*step, ... while the value is
// not after end. Every call to the returned sequence starts over from
// start. A zero step yields start at most once.
func Generate(start, end time.Time, step Step) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		for n := 0; ; n++ {
			cur := step.AddTo(start, n)
			if cur.After(end) {
				return
			}
			if !yield(cur) || step.IsZero() {
				return
			}
		}
	}
}

// Expand returns explicit verbatim followed by every range's dates in
// listed order. All ranges are parsed before anything is generated, so a
// bad date fails the whole expansion. Duplicates are kept.
func Expand(explicit []string, ranges []Range, step Step, format string) ([]string, error) {
	if err := step.Validate(); err != nil {
		return nil, err
	}

	type bounds struct{ start, end time.Time }
	parsed := make([]bounds, 0, len(ranges))
	for _, r := range ranges {
		start, err := Parse(format, r.Start)
		if err != nil {
			return nil, fmt.Errorf("range %s: %w", r, err)
		}
		end, err := Parse(format, r.End)
		if err != nil {
			return nil, fmt.Errorf("range %s: %w", r, err)
		}
		parsed = append(parsed, bounds{start, end})
	}

	out := make([]string, 0, len(explicit))
	out = append(out, explicit...)
	for _, b := range parsed {
		for t := range Generate(b.start, b.end, step) {
			out = append(out, Format(format, t))
		}
	}
	return out, nil
}
