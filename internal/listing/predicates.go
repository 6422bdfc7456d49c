package listing

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Predicate is one narrowing condition on job_posts.
type Predicate struct {
	SQL  string
	Args []interface{}
}

const matchNothing = "1 = 0"

// Predicates returns the conditions for c in their fixed order: scope, date
// range, remote flag, skill/city/company sets, then free-text search.
//
// Related to-many tables are only ever reached through EXISTS or IN
// subqueries, so a posting appears at most once however many of its skills
// or cities match.
func Predicates(c Criteria, now time.Time) []Predicate {
	var preds []Predicate
	add := func(sql string, args ...interface{}) {
		preds = append(preds, Predicate{SQL: sql, Args: args})
	}

	add("job_posts.expired_at >= ?", now.UTC())

	activity := activityTableFor(c.Scope)
	if activity != "" {
		add(activity.exists(""), c.Viewer)
	}

	for _, b := range []struct {
		bound DayBound
		op    string
		day   func(time.Time) time.Time
	}{
		{c.From, ">=", func(d time.Time) time.Time { return d }},
		{c.To, "<", func(d time.Time) time.Time { return d.AddDate(0, 0, 1) }},
	} {
		if !b.bound.Present {
			continue
		}
		if !b.bound.Valid {
			add(matchNothing)
			continue
		}
		if activity == "" {
			add("job_posts.created_at "+b.op+" ?", b.day(b.bound.Day).UTC())
		} else {
			add(activity.exists("a.created_at "+b.op+" ?"), c.Viewer, b.day(b.bound.Day).UTC())
		}
	}

	if c.Scope == ScopeApplied && c.StatusSet {
		if c.Status == "" {
			add(matchNothing)
		} else {
			add(activity.exists("a.status = ?"), c.Viewer, string(c.Status))
		}
	}

	if c.Remote != nil {
		add("job_posts.can_be_remote = ?", *c.Remote)
	}

	if c.Skills.Active {
		if len(c.Skills.IDs) == 0 {
			add(matchNothing)
		} else {
			add("job_posts.id IN (SELECT jps.job_post_id FROM job_post_skills jps WHERE jps.skill_id IN ?)", c.Skills.IDs)
		}
	}
	if c.Cities.Active {
		if len(c.Cities.IDs) == 0 {
			add(matchNothing)
		} else {
			add("job_posts.id IN (SELECT jpc.job_post_id FROM job_post_cities jpc WHERE jpc.city_id IN ?)", c.Cities.IDs)
		}
	}
	if c.Companies.Active {
		if len(c.Companies.IDs) == 0 {
			add(matchNothing)
		} else {
			add("job_posts.company_id IN ?", c.Companies.IDs)
		}
	}

	if c.Search != "" {
		pattern := containsPattern(c.Search)
		add(`(LOWER(job_posts.title) LIKE ? ESCAPE '\'`+
			` OR job_posts.company_id IN (SELECT co.id FROM companies co WHERE LOWER(co.name) LIKE ? ESCAPE '\')`+
			` OR LOWER(job_posts.description) LIKE ? ESCAPE '\')`,
			pattern, pattern, pattern)
	}

	return preds
}

// Filter is a gorm scope applying Predicates.
func Filter(c Criteria, now time.Time) func(*gorm.DB) *gorm.DB {
	preds := Predicates(c, now)
	return func(db *gorm.DB) *gorm.DB {
		for _, p := range preds {
			db = db.Where(p.SQL, p.Args...)
		}
		return db
	}
}

type activityTable string

func activityTableFor(s Scope) activityTable {
	switch s {
	case ScopeApplied:
		return "job_applications"
	case ScopeSaved:
		return "saved_jobs"
	}
	return ""
}

// exists correlates the viewer's row in the activity table with the outer
// posting; extra narrows that row further.
func (t activityTable) exists(extra string) string {
	sql := "EXISTS (SELECT 1 FROM " + string(t) + " a WHERE a.job_post_id = job_posts.id AND a.applicant_id = ?"
	if extra != "" {
		sql += " AND " + extra
	}
	return sql + ")"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
