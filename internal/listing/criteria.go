// Package listing composes the filtered, paginated job post listings and
// annotates each row with what the viewer has done with it.
package listing

import (
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/job-portal/internal/forms"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/models"
	"github.com/google/uuid"
)

// PageSize is the number of postings on one listing page.
const PageSize = 10

// Scope selects which postings a listing considers before any filter.
type Scope int

const (
	// ScopeOpen lists postings that have not expired.
	ScopeOpen Scope = iota
	// ScopeApplied lists open postings the viewer applied to.
	ScopeApplied
	// ScopeSaved lists open postings the viewer saved.
	ScopeSaved
)

func (s Scope) String() string {
	switch s {
	case ScopeApplied:
		return "applied"
	case ScopeSaved:
		return "saved"
	default:
		return "open"
	}
}

// Params holds the raw query values of a listing request.
type Params struct {
	Skills    []string
	Cities    []string
	Companies []string
	FromDate  string
	ToDate    string
	IsRemote  string
	Search    string
	Status    string
	Page      string
}

// DayBound is one end of an inclusive calendar-day range.
type DayBound struct {
	Day     time.Time
	Present bool
	Valid   bool
}

// Criteria is the typed form of Params for one viewer and scope.
type Criteria struct {
	Scope     Scope
	Viewer    uuid.UUID
	Skills    forms.IDSet
	Cities    forms.IDSet
	Companies forms.IDSet
	From      DayBound
	To        DayBound
	Remote    *bool
	Search    string
	// Status only applies to ScopeApplied. StatusSet is true when a value
	// was supplied, Status is empty when that value is not a known status.
	Status    models.ApplicationStatus
	StatusSet bool
	Page      int
}

// Parse never fails: malformed values become filters that match nothing.
func Parse(scope Scope, viewer uuid.UUID, p Params) Criteria {
	c := Criteria{
		Scope:     scope,
		Viewer:    viewer,
		Skills:    forms.ParseIDs(p.Skills),
		Cities:    forms.ParseIDs(p.Cities),
		Companies: forms.ParseIDs(p.Companies),
		From:      parseBound(p.FromDate),
		To:        parseBound(p.ToDate),
		Remote:    forms.OptionalBool(p.IsRemote),
		Search:    strings.TrimSpace(p.Search),
		Page:      forms.ParsePage(p.Page),
	}
	if scope == ScopeApplied {
		if raw := strings.TrimSpace(p.Status); raw != "" {
			c.StatusSet = true
			if st := models.ApplicationStatus(strings.ToLower(raw)); st.Valid() {
				c.Status = st
			}
		}
	}
	return c
}

func parseBound(s string) DayBound {
	day, present, ok := forms.ParseDate(s)
	return DayBound{Day: day, Present: present, Valid: ok}
}
