package domain

import (
	"strings"
	"time"
)

// DateLayout is the canonical calendar-date format for gate fields.
const DateLayout = "2006-01-02"

// Date is a calendar date kept in its entered form. Valid values use
// DateLayout; anything else is retained verbatim but sorts before every
// valid date.
type Date string

// Time parses d. ok is false for empty or malformed values.
func (d Date) Time() (t time.Time, ok bool) {
	s := strings.TrimSpace(string(d))
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IsZero reports whether no date was entered.
func (d Date) IsZero() bool {
	return strings.TrimSpace(string(d)) == ""
}

// Valid reports whether d parses with DateLayout.
func (d Date) Valid() bool {
	_, ok := d.Time()
	return ok
}

func (d Date) String() string {
	return string(d)
}

// CompareDates orders a and b: empty < malformed < valid. Two valid dates
// compare chronologically; two malformed dates compare as strings.
func CompareDates(a, b Date) int {
	ra, rb := dateRank(a), dateRank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch ra {
	case 2:
		ta, _ := a.Time()
		tb, _ := b.Time()
		return ta.Compare(tb)
	case 1:
		return strings.Compare(strings.TrimSpace(string(a)), strings.TrimSpace(string(b)))
	default:
		return 0
	}
}

func dateRank(d Date) int {
	if d.IsZero() {
		return 0
	}
	if d.Valid() {
		return 2
	}
	return 1
}
