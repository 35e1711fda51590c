package dates

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidStep is returned when a Step cannot advance a date.
var ErrInvalidStep = errors.New("invalid date step")

// Step is a calendar increment between consecutive dates in a range.
// Years and months are applied first with the day of month clamped to
// the end of the target month, then weeks and days as calendar days,
// then the clock components as a fixed duration.
type Step struct {
	Years   int `yaml:"years,omitempty" json:"years,omitempty"`
	Months  int `yaml:"months,omitempty" json:"months,omitempty"`
	Weeks   int `yaml:"weeks,omitempty" json:"weeks,omitempty"`
	Days    int `yaml:"days,omitempty" json:"days,omitempty"`
	Hours   int `yaml:"hours,omitempty" json:"hours,omitempty"`
	Minutes int `yaml:"minutes,omitempty" json:"minutes,omitempty"`
	Seconds int `yaml:"seconds,omitempty" json:"seconds,omitempty"`
}

// DefaultStep advances one calendar day.
var DefaultStep = Step{Days: 1}

// IsZero reports whether the step has no non-zero component.
func (s Step) IsZero() bool {
	return s == Step{}
}

// Validate checks that every component is non-negative and at least one
// is positive.
func (s Step) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"years", s.Years},
		{"months", s.Months},
		{"weeks", s.Weeks},
		{"days", s.Days},
		{"hours", s.Hours},
		{"minutes", s.Minutes},
		{"seconds", s.Seconds},
	}
	for _, f := range fields {
		if f.value < 0 {
			return fmt.Errorf("%w: %s must not be negative (got %d)", ErrInvalidStep, f.name, f.value)
		}
	}
	if s.IsZero() {
		return fmt.Errorf("%w: at least one component must be positive", ErrInvalidStep)
	}
	return nil
}

// AddTo returns t advanced by n steps. The result is computed from t
// directly, so a month step anchored on the 31st returns to the 31st
// whenever the target month has one.
func (s Step) AddTo(t time.Time, n int) time.Time {
	if months := n * (s.Years*12 + s.Months); months != 0 {
		t = addMonths(t, months)
	}
	if days := n * (s.Weeks*7 + s.Days); days != 0 {
		t = t.AddDate(0, 0, days)
	}
	clock := time.Duration(s.Hours)*time.Hour +
		time.Duration(s.Minutes)*time.Minute +
		time.Duration(s.Seconds)*time.Second
	if clock != 0 {
		t = t.Add(time.Duration(n) * clock)
	}
	return t
}

// String renders the non-zero components, e.g. "1 month 2 days".
func (s Step) String() string {
	parts := []struct {
		unit  string
		value int
	}{
		{"year", s.Years},
		{"month", s.Months},
		{"week", s.Weeks},
		{"day", s.Days},
		{"hour", s.Hours},
		{"minute", s.Minutes},
		{"second", s.Seconds},
	}
	out := ""
	for _, p := range parts {
		if p.value == 0 {
			continue
		}
		if out != "" {
			out += " "
		}
		out += fmt.Sprintf("%d %s", p.value, p.unit)
		if p.value != 1 {
			out += "s"
		}
	}
	if out == "" {
		return "0 days"
	}
	return out
}

func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	target := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	if last := daysIn(target.Year(), target.Month()); d > last {
		d = last
	}
	hh, mm, ss := t.Clock()
	return time.Date(target.Year(), target.Month(), d, hh, mm, ss, t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
