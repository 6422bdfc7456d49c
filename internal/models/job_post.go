package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrJobPostTitleRequired = errors.New("job post title is required")
	ErrJobPostNoCompany     = errors.New("job post must belong to a company")
	ErrInvalidPayroll       = errors.New("payroll method must be hourly, weekly, monthly or annually")
	ErrInvalidPayRange      = errors.New("pay range must be non-negative and ordered")
)

type JobPost struct {
	Base
	Title          string        `gorm:"not null;size:250" json:"title"`
	Description    string        `gorm:"type:text" json:"description,omitempty"`
	CompanyID      uuid.UUID     `gorm:"type:uuid;not null;index" json:"company_id"`
	Company        Company       `gorm:"constraint:OnDelete:CASCADE" json:"company"`
	TotalVacancies uint          `gorm:"not null" json:"total_vacancies"`
	ExpiredAt      time.Time     `gorm:"not null;index" json:"expired_at"`
	PayrollMethod  PayrollPeriod `gorm:"size:10;not null" json:"payroll_method"`
	PayRangeFrom   float64       `gorm:"type:decimal(10,2);not null" json:"pay_range_from"`
	PayRangeTo     float64       `gorm:"type:decimal(10,2);not null" json:"pay_range_to"`
	CanBeRemote    bool          `gorm:"not null" json:"can_be_remote"`

	Skills []Skill `gorm:"many2many:job_post_skills;constraint:OnDelete:CASCADE" json:"skills,omitempty"`
	Cities []City  `gorm:"many2many:job_post_cities;constraint:OnDelete:CASCADE" json:"cities,omitempty"`
}

func (j *JobPost) BeforeSave(tx *gorm.DB) error {
	j.Title = strings.TrimSpace(j.Title)
	if j.Title == "" {
		return ErrJobPostTitleRequired
	}
	if j.CompanyID == uuid.Nil {
		return ErrJobPostNoCompany
	}
	if !j.PayrollMethod.Valid() {
		return ErrInvalidPayroll
	}
	if j.PayRangeFrom < 0 || j.PayRangeTo < j.PayRangeFrom {
		return ErrInvalidPayRange
	}
	return nil
}

// Expired reports whether the post stopped accepting candidates before now.
func (j *JobPost) Expired(now time.Time) bool {
	return j.ExpiredAt.Before(now)
}
