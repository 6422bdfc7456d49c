// Package forms turns raw query-string and form values into typed values.
// Every boolean-like field arriving as text goes through Truthy.
package forms

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-day format used by from_date/to_date.
const DateLayout = "2006-01-02"

var truthyTokens = map[string]struct{}{
	"yes":  {},
	"true": {},
	"t":    {},
	"1":    {},
}

// Truthy reports whether s is one of the recognised truthy tokens,
// case-insensitively. Everything else, including malformed input, is false.
func Truthy(s string) bool {
	_, ok := truthyTokens[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// OptionalBool is the tri-state form of Truthy: a blank value means the
// field was not supplied.
func OptionalBool(s string) *bool {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v := Truthy(s)
	return &v
}

// IDSet is a repeatable identifier filter. Active is true when at least one
// non-blank value was supplied; values that do not parse are dropped so they
// match nothing.
type IDSet struct {
	IDs    []uuid.UUID
	Active bool
}

func ParseIDs(raw []string) IDSet {
	var set IDSet
	seen := make(map[uuid.UUID]struct{}, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		set.Active = true
		id, err := uuid.Parse(r)
		if err != nil {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		set.IDs = append(set.IDs, id)
	}
	return set
}

// ParseDate reads a calendar day in UTC. present is false for a blank value;
// ok is false when a non-blank value does not parse.
func ParseDate(s string) (day time.Time, present, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false, false
	}
	day, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, true, false
	}
	return day, true, true
}

// ParsePage returns a 1-based page number, falling back to the first page.
func ParsePage(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
