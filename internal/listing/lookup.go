package listing

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/job-portal/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lookup resolves the viewer's application and saved-job rows for a set of
// postings, at most one of each per posting.
type Lookup struct {
	db *gorm.DB
}

func NewLookup(db *gorm.DB) *Lookup {
	return &Lookup{db: db}
}

func (l *Lookup) Applications(ctx context.Context, viewer uuid.UUID, postIDs []uuid.UUID) (map[uuid.UUID]models.JobApplication, error) {
	out := make(map[uuid.UUID]models.JobApplication, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}
	var rows []models.JobApplication
	err := l.db.WithContext(ctx).
		Where("applicant_id = ? AND job_post_id IN ?", viewer, postIDs).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		if _, seen := out[r.JobPostID]; !seen {
			out[r.JobPostID] = r
		}
	}
	return out, nil
}

func (l *Lookup) Saved(ctx context.Context, viewer uuid.UUID, postIDs []uuid.UUID) (map[uuid.UUID]models.SavedJob, error) {
	out := make(map[uuid.UUID]models.SavedJob, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}
	var rows []models.SavedJob
	err := l.db.WithContext(ctx).
		Where("applicant_id = ? AND job_post_id IN ?", viewer, postIDs).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		if _, seen := out[r.JobPostID]; !seen {
			out[r.JobPostID] = r
		}
	}
	return out, nil
}
