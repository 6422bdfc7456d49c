package listing_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/job-portal/internal/listing"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/models"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/testutil"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func list(t *testing.T, svc *listing.Service, scope listing.Scope, viewer uuid.UUID, p listing.Params) *listing.Page {
	t.Helper()
	page, err := svc.List(context.Background(), listing.Parse(scope, viewer, p))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	return page
}

func ids(page *listing.Page) map[uuid.UUID]int {
	out := make(map[uuid.UUID]int)
	for _, it := range page.Items {
		out[it.ID]++
	}
	return out
}

func TestOpenListingHonoursExpiry(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.Fixtures{T: t, DB: db}
	svc := listing.NewService(db)
	viewer := fx.User("a@example.com")

	acme := fx.Company("acme")
	p := fx.Post(acme, "Backend Engineer", nil)

	page := list(t, svc, listing.ScopeOpen, viewer.ID, listing.Params{})
	if page.Total != 1 || len(page.Items) != 1 || page.Items[0].ID != p.ID {
		t.Fatalf("open listing = %+v, want only %s", ids(page), p.ID)
	}

	yesterday := time.Now().UTC().Add(-24 * time.Hour)
	if err := db.Model(&models.JobPost{}).Where("id = ?", p.ID).UpdateColumn("expired_at", yesterday).Error; err != nil {
		t.Fatalf("expire post: %v", err)
	}

	page = list(t, svc, listing.ScopeOpen, viewer.ID, listing.Params{})
	if page.Total != 0 || len(page.Items) != 0 {
		t.Errorf("expired post still listed: %+v", ids(page))
	}
}

func TestSkillFilterReturnsPostOnce(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.Fixtures{T: t, DB: db}
	svc := listing.NewService(db)
	viewer := fx.User("a@example.com")

	s1, s2, s3 := fx.Skill("go"), fx.Skill("sql"), fx.Skill("rust")
	acme := fx.Company("acme")
	p := fx.Post(acme, "Backend", func(jp *models.JobPost) { jp.Skills = []models.Skill{s1, s2} })
	fx.Post(acme, "Systems", func(jp *models.JobPost) { jp.Skills = []models.Skill{s3} })

	for _, skills := range [][]string{
		{s1.ID.String()},
		{s1.ID.String(), s2.ID.String()},
	} {
		page := list(t, svc, listing.ScopeOpen, viewer.ID, listing.Params{Skills: skills})
		got := ids(page)
		if len(got) != 1 || got[p.ID] != 1 || page.Total != 1 {
			t.Errorf("skills %v: got %v (total %d), want %s exactly once", skills, got, page.Total, p.ID)
		}
	}
}

func TestFiltersHaveNoFalsePositivesOrNegatives(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.Fixtures{T: t, DB: db}
	svc := listing.NewService(db)
	viewer := fx.User("a@example.com")

	berlin, paris := fx.City("berlin"), fx.City("paris")
	goSkill := fx.Skill("go")
	acme, globex := fx.Company("acme"), fx.Company("globex")

	remoteBerlin := fx.Post(acme, "Go Developer", func(p *models.JobPost) {
		p.Cities = []models.City{berlin}
		p.Skills = []models.Skill{goSkill}
		p.CanBeRemote = true
	})
	onsiteBerlin := fx.Post(globex, "Data Analyst", func(p *models.JobPost) {
		p.Cities = []models.City{berlin, paris}
		p.CanBeRemote = false
	})
	onsiteParis := fx.Post(globex, "Designer", func(p *models.JobPost) {
		p.Cities = []models.City{paris}
		p.CanBeRemote = false
		p.Description = "Figma wizard wanted"
	})

	cases := []struct {
		name   string
		params listing.Params
		want   []uuid.UUID
	}{
		{"no filters", listing.Params{}, []uuid.UUID{remoteBerlin.ID, onsiteBerlin.ID, onsiteParis.ID}},
		{"city berlin", listing.Params{Cities: []string{berlin.ID.String()}}, []uuid.UUID{remoteBerlin.ID, onsiteBerlin.ID}},
		{"city berlin or paris", listing.Params{Cities: []string{berlin.ID.String(), paris.ID.String()}}, []uuid.UUID{remoteBerlin.ID, onsiteBerlin.ID, onsiteParis.ID}},
		{"company globex", listing.Params{Companies: []string{globex.ID.String()}}, []uuid.UUID{onsiteBerlin.ID, onsiteParis.ID}},
		{"remote true", listing.Params{IsRemote: "TRUE"}, []uuid.UUID{remoteBerlin.ID}},
		{"remote garbage means false", listing.Params{IsRemote: "maybe"}, []uuid.UUID{onsiteBerlin.ID, onsiteParis.ID}},
		{"berlin and onsite", listing.Params{Cities: []string{berlin.ID.String()}, IsRemote: "0"}, []uuid.UUID{onsiteBerlin.ID}},
		{"search title", listing.Params{Search: "go dev"}, []uuid.UUID{remoteBerlin.ID}},
		{"search company name", listing.Params{Search: "GLOBEX"}, []uuid.UUID{onsiteBerlin.ID, onsiteParis.ID}},
		{"search description", listing.Params{Search: "figma"}, []uuid.UUID{onsiteParis.ID}},
		{"skill and company disjoint", listing.Params{Skills: []string{goSkill.ID.String()}, Companies: []string{globex.ID.String()}}, nil},
		{"unknown skill id", listing.Params{Skills: []string{uuid.NewString()}}, nil},
		{"malformed city id", listing.Params{Cities: []string{"berlin"}}, nil},
	}

	for _, tc := range cases {
		page := list(t, svc, listing.ScopeOpen, viewer.ID, tc.params)
		got := ids(page)
		if len(got) != len(tc.want) || page.Total != int64(len(tc.want)) {
			t.Errorf("%s: got %d posts (total %d), want %d", tc.name, len(got), page.Total, len(tc.want))
		}
		for _, id := range tc.want {
			if got[id] != 1 {
				t.Errorf("%s: post %s appears %d times, want 1", tc.name, id, got[id])
			}
		}
	}
}

func TestDateRangeOnCreation(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.Fixtures{T: t, DB: db}
	svc := listing.NewService(db)
	viewer := fx.User("a@example.com")
	acme := fx.Company("acme")

	day := func(d, h int) time.Time { return time.Date(2024, 1, d, h, 0, 0, 0, time.UTC) }
	early := fx.Post(acme, "early", func(p *models.JobPost) { p.CreatedAt = day(9, 23) })
	onDay := fx.Post(acme, "on day", func(p *models.JobPost) { p.CreatedAt = day(10, 23) })
	late := fx.Post(acme, "late", func(p *models.JobPost) { p.CreatedAt = day(11, 0) })

	got := ids(list(t, svc, listing.ScopeOpen, viewer.ID, listing.Params{FromDate: "2024-01-10", ToDate: "2024-01-10"}))
	if len(got) != 1 || got[onDay.ID] != 1 {
		t.Errorf("single-day range = %v, want only %s", got, onDay.ID)
	}

	got = ids(list(t, svc, listing.ScopeOpen, viewer.ID, listing.Params{FromDate: "2024-01-10"}))
	if len(got) != 2 || got[early.ID] != 0 || got[late.ID] != 1 {
		t.Errorf("from-date range = %v, want on-day and late", got)
	}

	got = ids(list(t, svc, listing.ScopeOpen, viewer.ID, listing.Params{ToDate: "2024-01-09"}))
	if len(got) != 1 || got[early.ID] != 1 {
		t.Errorf("to-date range = %v, want only early", got)
	}
}

func TestPaginationNewestFirst(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.Fixtures{T: t, DB: db}
	svc := listing.NewService(db)
	viewer := fx.User("a@example.com")
	acme := fx.Company("acme")

	base := time.Now().UTC().Add(-48 * time.Hour)
	for i := 0; i < 23; i++ {
		created := base.Add(time.Duration(i) * time.Minute)
		fx.Post(acme, fmt.Sprintf("post %02d", i), func(p *models.JobPost) { p.CreatedAt = created })
	}

	first := list(t, svc, listing.ScopeOpen, viewer.ID, listing.Params{})
	if len(first.Items) != listing.PageSize || first.Total != 23 || first.TotalPages != 3 {
		t.Fatalf("first page: %d items, total %d, pages %d", len(first.Items), first.Total, first.TotalPages)
	}
	if first.Items[0].Title != "post 22" || !first.HasNext || first.HasPrevious {
		t.Errorf("first page starts with %q next=%v prev=%v", first.Items[0].Title, first.HasNext, first.HasPrevious)
	}

	seen := make(map[uuid.UUID]bool)
	for n := 1; n <= 3; n++ {
		page := list(t, svc, listing.ScopeOpen, viewer.ID, listing.Params{Page: fmt.Sprint(n)})
		for i := 1; i < len(page.Items); i++ {
			if page.Items[i].CreatedAt.After(page.Items[i-1].CreatedAt) {
				t.Errorf("page %d not ordered newest first at %d", n, i)
			}
		}
		for _, it := range page.Items {
			if seen[it.ID] {
				t.Errorf("post %s appears on more than one page", it.ID)
			}
			seen[it.ID] = true
		}
	}
	if len(seen) != 23 {
		t.Errorf("pages covered %d posts, want 23", len(seen))
	}

	last := list(t, svc, listing.ScopeOpen, viewer.ID, listing.Params{Page: "3"})
	if len(last.Items) != 3 || last.HasNext || !last.HasPrevious {
		t.Errorf("last page: %d items next=%v prev=%v", len(last.Items), last.HasNext, last.HasPrevious)
	}

	beyond := list(t, svc, listing.ScopeOpen, viewer.ID, listing.Params{Page: "9"})
	if len(beyond.Items) != 0 || beyond.Total != 23 {
		t.Errorf("beyond last page: %d items total %d", len(beyond.Items), beyond.Total)
	}

	bogus := list(t, svc, listing.ScopeOpen, viewer.ID, listing.Params{Page: "last"})
	if bogus.Number != 1 {
		t.Errorf("unparseable page resolved to %d, want 1", bogus.Number)
	}
}

func TestAppliedScopeAndAnnotations(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.Fixtures{T: t, DB: db}
	svc := listing.NewService(db)
	viewer := fx.User("a@example.com")
	other := fx.User("b@example.com")
	acme := fx.Company("acme")

	applied := fx.Post(acme, "applied", nil)
	declined := fx.Post(acme, "declined", nil)
	otherOnly := fx.Post(acme, "someone else applied", nil)
	savedOnly := fx.Post(acme, "saved", nil)

	appliedAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	mustCreate(t, db, &models.JobApplication{Base: models.Base{CreatedAt: appliedAt}, ApplicantID: viewer.ID, JobPostID: applied.ID, Status: models.StatusApplied})
	mustCreate(t, db, &models.JobApplication{Base: models.Base{CreatedAt: appliedAt.AddDate(0, 0, 3)}, ApplicantID: viewer.ID, JobPostID: declined.ID, Status: models.StatusDeclined})
	mustCreate(t, db, &models.JobApplication{ApplicantID: other.ID, JobPostID: otherOnly.ID, Status: models.StatusApplied})
	mustCreate(t, db, &models.SavedJob{ApplicantID: viewer.ID, JobPostID: savedOnly.ID})
	mustCreate(t, db, &models.SavedJob{ApplicantID: viewer.ID, JobPostID: applied.ID})

	page := list(t, svc, listing.ScopeApplied, viewer.ID, listing.Params{})
	got := ids(page)
	if len(got) != 2 || got[applied.ID] != 1 || got[declined.ID] != 1 {
		t.Fatalf("applied scope = %v, want applied+declined", got)
	}
	for _, it := range page.Items {
		if !it.IsApplied || it.AppliedOn == nil || it.AppliedStatus == nil {
			t.Errorf("post %q missing application annotations: %+v", it.Title, it)
		}
		if it.ID == declined.ID && *it.AppliedStatus != models.StatusDeclined {
			t.Errorf("declined status = %q", *it.AppliedStatus)
		}
		if it.ID == applied.ID && (!it.AppliedOn.Equal(appliedAt) || !it.IsSaved) {
			t.Errorf("applied post annotations = on %v saved %v", it.AppliedOn, it.IsSaved)
		}
	}

	got = ids(list(t, svc, listing.ScopeApplied, viewer.ID, listing.Params{Status: "declined"}))
	if len(got) != 1 || got[declined.ID] != 1 {
		t.Errorf("status filter = %v, want only declined", got)
	}

	got = ids(list(t, svc, listing.ScopeApplied, viewer.ID, listing.Params{FromDate: "2024-05-02"}))
	if len(got) != 1 || got[declined.ID] != 1 {
		t.Errorf("application date filter = %v, want only declined", got)
	}

	got = ids(list(t, svc, listing.ScopeApplied, other.ID, listing.Params{FromDate: "2024-05-02", ToDate: "2024-05-04"}))
	if len(got) != 0 {
		t.Errorf("another applicant's dates leaked into the filter: %v", got)
	}

	open := list(t, svc, listing.ScopeOpen, viewer.ID, listing.Params{})
	for _, it := range open.Items {
		wantApplied := it.ID == applied.ID || it.ID == declined.ID
		wantSaved := it.ID == savedOnly.ID || it.ID == applied.ID
		if it.IsApplied != wantApplied || it.IsSaved != wantSaved {
			t.Errorf("%q: applied=%v saved=%v, want %v/%v", it.Title, it.IsApplied, it.IsSaved, wantApplied, wantSaved)
		}
		if !wantSaved && it.SavedOn != nil {
			t.Errorf("%q has saved_on without a saved row", it.Title)
		}
	}
}

func TestSavedScope(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.Fixtures{T: t, DB: db}
	svc := listing.NewService(db)
	viewer := fx.User("a@example.com")
	acme := fx.Company("acme")

	saved := fx.Post(acme, "saved", nil)
	fx.Post(acme, "not saved", nil)
	expired := fx.Post(acme, "saved but expired", func(p *models.JobPost) {
		p.ExpiredAt = time.Now().UTC().Add(-time.Hour)
	})
	mustCreate(t, db, &models.SavedJob{ApplicantID: viewer.ID, JobPostID: saved.ID})
	mustCreate(t, db, &models.SavedJob{ApplicantID: viewer.ID, JobPostID: expired.ID})

	page := list(t, svc, listing.ScopeSaved, viewer.ID, listing.Params{})
	if len(page.Items) != 1 || page.Items[0].ID != saved.ID {
		t.Fatalf("saved scope = %v, want only %s", ids(page), saved.ID)
	}
	if it := page.Items[0]; !it.IsSaved || it.SavedOn == nil || it.IsApplied {
		t.Errorf("saved annotations = %+v", it)
	}
}

func TestDetail(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.Fixtures{T: t, DB: db}
	svc := listing.NewService(db)
	viewer := fx.User("a@example.com")
	acme := fx.Company("acme")
	goSkill := fx.Skill("go")
	p := fx.Post(acme, "Backend", func(jp *models.JobPost) { jp.Skills = []models.Skill{goSkill} })
	mustCreate(t, db, &models.SavedJob{ApplicantID: viewer.ID, JobPostID: p.ID})

	item, err := svc.Detail(context.Background(), viewer.ID, p.ID)
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}
	if item.Company.Name != "acme" || len(item.Skills) != 1 || item.Description == "" {
		t.Errorf("detail not fully loaded: %+v", item.JobPost)
	}
	if item.IsApplied || !item.IsSaved {
		t.Errorf("detail annotations applied=%v saved=%v", item.IsApplied, item.IsSaved)
	}

	if _, err := svc.Detail(context.Background(), viewer.ID, uuid.New()); !errors.Is(err, listing.ErrJobPostNotFound) {
		t.Errorf("Detail(missing) error = %v, want ErrJobPostNotFound", err)
	}
}

func mustCreate(t *testing.T, db *gorm.DB, v interface{}) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("create %T: %v", v, err)
	}
}
