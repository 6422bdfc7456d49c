package models

import (
	"github.com/google/uuid"
)

// JobApplication links an applicant to a job post. The unique index makes
// applying idempotent even under concurrent requests.
type JobApplication struct {
	Base
	ApplicantID uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_job_applications_applicant_post,priority:1" json:"applicant_id"`
	Applicant   User              `gorm:"foreignKey:ApplicantID;constraint:OnDelete:CASCADE" json:"-"`
	JobPostID   uuid.UUID         `gorm:"type:uuid;not null;index;uniqueIndex:idx_job_applications_applicant_post,priority:2" json:"job_post_id"`
	JobPost     JobPost           `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Status      ApplicationStatus `gorm:"size:10;not null;default:'applied'" json:"status"`
}

type SavedJob struct {
	Base
	ApplicantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_saved_jobs_applicant_post,priority:1" json:"applicant_id"`
	Applicant   User      `gorm:"foreignKey:ApplicantID;constraint:OnDelete:CASCADE" json:"-"`
	JobPostID   uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_saved_jobs_applicant_post,priority:2" json:"job_post_id"`
	JobPost     JobPost   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
