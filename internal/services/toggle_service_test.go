package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ahmetcoskunkizilkaya/job-portal/internal/models"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/services"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/testutil"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func countRows(t *testing.T, db *gorm.DB, model interface{}, applicant, post uuid.UUID) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Where("applicant_id = ? AND job_post_id = ?", applicant, post).Count(&n).Error; err != nil {
		t.Fatalf("count %T: %v", model, err)
	}
	return n
}

func TestTogglesAreIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.Fixtures{T: t, DB: db}
	svc := services.NewToggleService(db)
	ctx := context.Background()

	user := fx.User("ada@example.com")
	post := fx.Post(fx.Company("acme"), "Backend", nil)

	kinds := []struct {
		name  string
		model interface{}
		set   func(bool) error
	}{
		{"apply", &models.JobApplication{}, func(on bool) error { return svc.SetApplied(ctx, user.ID, post.ID, on) }},
		{"save", &models.SavedJob{}, func(on bool) error { return svc.SetSaved(ctx, user.ID, post.ID, on) }},
	}

	for _, k := range kinds {
		steps := []struct {
			on   bool
			want int64
		}{
			{true, 1},
			{true, 1},
			{false, 0},
			{false, 0},
			{true, 1},
		}
		for i, st := range steps {
			if err := k.set(st.on); err != nil {
				t.Fatalf("%s step %d: %v", k.name, i, err)
			}
			if got := countRows(t, db, k.model, user.ID, post.ID); got != st.want {
				t.Errorf("%s step %d (on=%v): %d rows, want %d", k.name, i, st.on, got, st.want)
			}
		}
	}

	var app models.JobApplication
	if err := db.First(&app, "applicant_id = ?", user.ID).Error; err != nil {
		t.Fatalf("load application: %v", err)
	}
	if app.Status != models.StatusApplied {
		t.Errorf("new application status = %q, want applied", app.Status)
	}
}

func TestToggleOnlyTouchesOwnRows(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.Fixtures{T: t, DB: db}
	svc := services.NewToggleService(db)
	ctx := context.Background()

	ada, bob := fx.User("ada@example.com"), fx.User("bob@example.com")
	post := fx.Post(fx.Company("acme"), "Backend", nil)

	for _, u := range []models.User{ada, bob} {
		if err := svc.SetSaved(ctx, u.ID, post.ID, true); err != nil {
			t.Fatalf("SetSaved: %v", err)
		}
	}
	if err := svc.SetSaved(ctx, ada.ID, post.ID, false); err != nil {
		t.Fatalf("SetSaved(false): %v", err)
	}
	if countRows(t, db, &models.SavedJob{}, bob.ID, post.ID) != 1 {
		t.Error("unsaving for one applicant removed another applicant's row")
	}
}

func TestToggleMissingPost(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.Fixtures{T: t, DB: db}
	svc := services.NewToggleService(db)
	ctx := context.Background()
	user := fx.User("ada@example.com")

	for _, err := range []error{
		svc.SetApplied(ctx, user.ID, uuid.New(), true),
		svc.SetSaved(ctx, user.ID, uuid.New(), true),
	} {
		if !errors.Is(err, services.ErrJobPostMissing) {
			t.Errorf("error = %v, want ErrJobPostMissing", err)
		}
	}

	for _, err := range []error{
		svc.SetApplied(ctx, user.ID, uuid.New(), false),
		svc.SetSaved(ctx, user.ID, uuid.New(), false),
	} {
		if err != nil {
			t.Errorf("removing from a missing post: %v", err)
		}
	}
}
