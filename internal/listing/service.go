package listing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/job-portal/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrJobPostNotFound = errors.New("job post not found")

// Item is a posting annotated for the viewer.
type Item struct {
	models.JobPost
	IsApplied     bool                      `json:"is_applied"`
	IsSaved       bool                      `json:"is_saved"`
	AppliedOn     *time.Time                `json:"applied_on"`
	AppliedStatus *models.ApplicationStatus `json:"applied_status"`
	SavedOn       *time.Time                `json:"saved_on"`
}

type Page struct {
	Items       []Item `json:"job_posts"`
	Number      int    `json:"page"`
	Size        int    `json:"page_size"`
	Total       int64  `json:"total"`
	TotalPages  int    `json:"total_pages"`
	HasNext     bool   `json:"has_next"`
	HasPrevious bool   `json:"has_previous"`
}

type Service struct {
	db     *gorm.DB
	lookup *Lookup
	now    func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, lookup: NewLookup(db), now: time.Now}
}

// WithClock replaces the time source used for the expiry cut-off.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// List returns one page of postings matching c, newest first.
func (s *Service) List(ctx context.Context, c Criteria) (*Page, error) {
	now := s.now().UTC()
	filter := Filter(c, now)

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.JobPost{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count job posts: %w", err)
	}

	page := c.Page
	if page < 1 {
		page = 1
	}

	var posts []models.JobPost
	if total > int64((page-1)*PageSize) {
		err := s.db.WithContext(ctx).
			Scopes(filter).
			Omit("description").
			Preload("Company").
			Order("job_posts.created_at DESC, job_posts.id DESC").
			Limit(PageSize).
			Offset((page - 1) * PageSize).
			Find(&posts).Error
		if err != nil {
			return nil, fmt.Errorf("list job posts: %w", err)
		}
	}

	items, err := s.annotate(ctx, c.Viewer, posts)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + PageSize - 1) / PageSize)
	return &Page{
		Items:       items,
		Number:      page,
		Size:        PageSize,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}, nil
}

// Detail returns a single posting regardless of expiry.
func (s *Service) Detail(ctx context.Context, viewer, postID uuid.UUID) (*Item, error) {
	var post models.JobPost
	err := s.db.WithContext(ctx).
		Preload("Company").
		Preload("Skills").
		Preload("Cities").
		First(&post, "id = ?", postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobPostNotFound
		}
		return nil, err
	}

	items, err := s.annotate(ctx, viewer, []models.JobPost{post})
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

func (s *Service) annotate(ctx context.Context, viewer uuid.UUID, posts []models.JobPost) ([]Item, error) {
	items := make([]Item, 0, len(posts))
	if len(posts) == 0 {
		return items, nil
	}

	ids := make([]uuid.UUID, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}

	applications, err := s.lookup.Applications(ctx, viewer, ids)
	if err != nil {
		return nil, fmt.Errorf("lookup applications: %w", err)
	}
	saved, err := s.lookup.Saved(ctx, viewer, ids)
	if err != nil {
		return nil, fmt.Errorf("lookup saved jobs: %w", err)
	}

	for _, p := range posts {
		item := Item{JobPost: p}
		if a, ok := applications[p.ID]; ok {
			item.IsApplied = true
			appliedOn, status := a.CreatedAt, a.Status
			item.AppliedOn = &appliedOn
			item.AppliedStatus = &status
		}
		if sj, ok := saved[p.ID]; ok {
			item.IsSaved = true
			savedOn := sj.CreatedAt
			item.SavedOn = &savedOn
		}
		items = append(items, item)
	}
	return items, nil
}
