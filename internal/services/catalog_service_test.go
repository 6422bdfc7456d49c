package services_test

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/job-portal/internal/cache"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/dto"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/models"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/services"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/testutil"
	"github.com/google/uuid"
)

func newCatalog(t *testing.T) (*services.CatalogService, *memStore, testutil.Fixtures) {
	db := testutil.NewDB(t)
	store := &memStore{}
	return services.NewCatalogService(db, cache.NewOptions(db, nil, time.Minute), store), store, testutil.Fixtures{T: t, DB: db}
}

func TestCatalogNamesAreUnique(t *testing.T) {
	svc, _, _ := newCatalog(t)
	ctx := context.Background()

	if _, err := svc.CreateSkill(ctx, "Go"); err != nil {
		t.Fatalf("CreateSkill: %v", err)
	}
	if _, err := svc.CreateSkill(ctx, " Go "); !errors.Is(err, models.ErrSkillExists) {
		t.Errorf("duplicate skill error = %v", err)
	}
	if _, err := svc.CreateCity(ctx, ""); !errors.Is(err, models.ErrNameRequired) {
		t.Errorf("blank city error = %v", err)
	}
	if _, err := svc.CreateCompany(ctx, &dto.CompanyRequest{Name: "acme"}, nil); err != nil {
		t.Fatalf("CreateCompany: %v", err)
	}
	if _, err := svc.CreateCompany(ctx, &dto.CompanyRequest{Name: "acme"}, nil); !errors.Is(err, models.ErrCompanyExists) {
		t.Errorf("duplicate company error = %v", err)
	}
}

func TestCreateCompanyStoresLogo(t *testing.T) {
	svc, store, _ := newCatalog(t)

	company, err := svc.CreateCompany(context.Background(), &dto.CompanyRequest{Name: "acme"}, &multipart.FileHeader{Filename: "logo.PNG"})
	if err != nil {
		t.Fatalf("CreateCompany: %v", err)
	}
	hex := strings.ReplaceAll(company.ID.String(), "-", "")
	if !strings.HasPrefix(company.LogoPath, "logo/"+hex+"/") || !strings.HasSuffix(company.LogoPath, ".png") {
		t.Errorf("logo path = %q", company.LogoPath)
	}
	if len(store.saved) != 1 || store.saved[0] != company.LogoPath {
		t.Errorf("stored %v", store.saved)
	}
}

func TestCreateJobPost(t *testing.T) {
	svc, _, fx := newCatalog(t)
	ctx := context.Background()

	acme := fx.Company("acme")
	goSkill := fx.Skill("go")
	berlin := fx.City("berlin")

	valid := func() dto.JobPostRequest {
		return dto.JobPostRequest{
			Title:         "Backend Engineer",
			CompanyID:     acme.ID.String(),
			ExpiredAt:     time.Now().Add(72 * time.Hour),
			PayrollMethod: "Monthly",
			PayRangeFrom:  3000,
			PayRangeTo:    4000,
			SkillIDs:      []string{goSkill.ID.String()},
			CityIDs:       []string{berlin.ID.String()},
		}
	}

	req := valid()
	post, err := svc.CreateJobPost(ctx, &req)
	if err != nil {
		t.Fatalf("CreateJobPost: %v", err)
	}
	if post.TotalVacancies != 1 || post.PayrollMethod != models.PayrollMonthly || post.Company.Name != "acme" {
		t.Errorf("post = vacancies %d payroll %q company %q", post.TotalVacancies, post.PayrollMethod, post.Company.Name)
	}
	if len(post.Skills) != 1 || len(post.Cities) != 1 {
		t.Errorf("post relations = %d skills, %d cities", len(post.Skills), len(post.Cities))
	}

	zero := uint(0)
	cases := []struct {
		name   string
		mutate func(*dto.JobPostRequest)
		want   error
	}{
		{"unknown company", func(r *dto.JobPostRequest) { r.CompanyID = uuid.NewString() }, services.ErrUnknownCompany},
		{"malformed company", func(r *dto.JobPostRequest) { r.CompanyID = "acme" }, services.ErrUnknownCompany},
		{"no title", func(r *dto.JobPostRequest) { r.Title = " " }, models.ErrJobPostTitleRequired},
		{"bad payroll", func(r *dto.JobPostRequest) { r.PayrollMethod = "daily" }, models.ErrInvalidPayroll},
		{"inverted range", func(r *dto.JobPostRequest) { r.PayRangeTo = 10 }, models.ErrInvalidPayRange},
		{"negative pay", func(r *dto.JobPostRequest) { r.PayRangeFrom = -1 }, models.ErrInvalidPayRange},
		{"no expiry", func(r *dto.JobPostRequest) { r.ExpiredAt = time.Time{} }, services.ErrExpiryRequired},
		{"unknown skill", func(r *dto.JobPostRequest) { r.SkillIDs = []string{uuid.NewString()} }, services.ErrUnknownCatalogOption},
		{"explicit zero vacancies", func(r *dto.JobPostRequest) { r.TotalVacancies = &zero }, nil},
	}
	for _, tc := range cases {
		r := valid()
		tc.mutate(&r)
		post, err := svc.CreateJobPost(ctx, &r)
		if !errors.Is(err, tc.want) {
			t.Errorf("%s: error = %v, want %v", tc.name, err, tc.want)
		}
		if tc.want == nil && err == nil && post.TotalVacancies != 0 {
			t.Errorf("%s: vacancies = %d", tc.name, post.TotalVacancies)
		}
	}
}

func TestSetApplicationStatus(t *testing.T) {
	svc, _, fx := newCatalog(t)
	ctx := context.Background()

	user := fx.User("ada@example.com")
	post := fx.Post(fx.Company("acme"), "Backend", nil)
	app := models.JobApplication{ApplicantID: user.ID, JobPostID: post.ID, Status: models.StatusApplied}
	if err := fx.DB.Create(&app).Error; err != nil {
		t.Fatalf("create application: %v", err)
	}

	got, err := svc.SetApplicationStatus(ctx, app.ID, "Accepted")
	if err != nil {
		t.Fatalf("SetApplicationStatus: %v", err)
	}
	if got.Status != models.StatusAccepted {
		t.Errorf("status = %q", got.Status)
	}

	var stored models.JobApplication
	fx.DB.First(&stored, "id = ?", app.ID)
	if stored.Status != models.StatusAccepted {
		t.Errorf("stored status = %q", stored.Status)
	}

	if _, err := svc.SetApplicationStatus(ctx, app.ID, "hired"); !errors.Is(err, services.ErrInvalidStatus) {
		t.Errorf("invalid status error = %v", err)
	}
	if _, err := svc.SetApplicationStatus(ctx, uuid.New(), "declined"); !errors.Is(err, services.ErrApplicationNotFound) {
		t.Errorf("missing application error = %v", err)
	}
}
