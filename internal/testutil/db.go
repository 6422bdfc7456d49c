// Package testutil builds throwaway databases for package tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/job-portal/internal/database"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/models"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns a migrated in-memory SQLite database private to the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := database.Open(sqlite.Open(dsn))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Logger = logger.Default.LogMode(logger.Silent)

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Fixtures creates catalog rows with sensible defaults.
type Fixtures struct {
	T  *testing.T
	DB *gorm.DB
}

func (f Fixtures) Company(name string) models.Company {
	f.T.Helper()
	c := models.Company{Name: name, Email: "jobs@" + name + ".test", MobileNumber: "5550000"}
	if err := f.DB.Create(&c).Error; err != nil {
		f.T.Fatalf("create company %q: %v", name, err)
	}
	return c
}

func (f Fixtures) Skill(name string) models.Skill {
	f.T.Helper()
	s := models.Skill{Name: name}
	if err := f.DB.Create(&s).Error; err != nil {
		f.T.Fatalf("create skill %q: %v", name, err)
	}
	return s
}

func (f Fixtures) City(name string) models.City {
	f.T.Helper()
	c := models.City{Name: name}
	if err := f.DB.Create(&c).Error; err != nil {
		f.T.Fatalf("create city %q: %v", name, err)
	}
	return c
}

func (f Fixtures) User(email string) models.User {
	f.T.Helper()
	u := models.User{Email: email, Password: "x", FirstName: "Test", CanWorkRemotely: true, DateJoined: time.Now().UTC()}
	if err := f.DB.Create(&u).Error; err != nil {
		f.T.Fatalf("create user %q: %v", email, err)
	}
	return u
}

// Post creates a job post; mutate adjusts the defaults before insert.
func (f Fixtures) Post(company models.Company, title string, mutate func(*models.JobPost)) models.JobPost {
	f.T.Helper()
	p := models.JobPost{
		Title:          title,
		Description:    title + " description",
		CompanyID:      company.ID,
		TotalVacancies: 1,
		ExpiredAt:      time.Now().UTC().Add(24 * time.Hour),
		PayrollMethod:  models.PayrollMonthly,
		PayRangeFrom:   1000,
		PayRangeTo:     2000,
		CanBeRemote:    true,
	}
	if mutate != nil {
		mutate(&p)
	}
	if err := f.DB.Omit("Company").Create(&p).Error; err != nil {
		f.T.Fatalf("create post %q: %v", title, err)
	}
	return p
}
