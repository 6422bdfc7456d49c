package session

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ForApplicant returns a GORM scope limiting activity rows to one applicant.
func ForApplicant(applicantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("applicant_id = ?", applicantID)
	}
}
