package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/job-portal/internal/models"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/session"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrJobPostMissing means a toggle named a post that does not exist. It is
// not a user error: the buttons only ever post ids of listed posts.
var ErrJobPostMissing = errors.New("job post does not exist")

// ToggleService records whether an applicant applied to or saved a post.
// Both toggles are idempotent: repeating "on" keeps a single row and
// repeating "off" is a no-op.
type ToggleService struct {
	db *gorm.DB
}

func NewToggleService(db *gorm.DB) *ToggleService {
	return &ToggleService{db: db}
}

func (s *ToggleService) SetApplied(ctx context.Context, applicantID, postID uuid.UUID, applying bool) error {
	return s.toggle(ctx, applicantID, postID, applying, &models.JobApplication{
		ApplicantID: applicantID,
		JobPostID:   postID,
		Status:      models.StatusApplied,
	})
}

func (s *ToggleService) SetSaved(ctx context.Context, applicantID, postID uuid.UUID, saving bool) error {
	return s.toggle(ctx, applicantID, postID, saving, &models.SavedJob{
		ApplicantID: applicantID,
		JobPostID:   postID,
	})
}

// toggle creates row when on is true, otherwise deletes every row of its
// type for the pair. Only creating requires the post to exist; removing a
// post that is already gone is a no-op.
func (s *ToggleService) toggle(ctx context.Context, applicantID, postID uuid.UUID, on bool, row interface{}) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if on {
			var n int64
			if err := tx.Model(&models.JobPost{}).Where("id = ?", postID).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("%w: %s", ErrJobPostMissing, postID)
			}
			return tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "applicant_id"}, {Name: "job_post_id"}},
				DoNothing: true,
			}).Create(row).Error
		}
		return tx.Scopes(session.ForApplicant(applicantID)).
			Where("job_post_id = ?", postID).
			Delete(row).Error
	})
}
