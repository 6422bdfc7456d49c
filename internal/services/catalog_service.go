package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/ahmetcoskunkizilkaya/job-portal/internal/cache"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/database"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/dto"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/forms"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/models"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/uploads"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrUnknownCompany       = errors.New("company does not exist")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrInvalidStatus        = errors.New("status must be applied, declined or accepted")
	ErrExpiryRequired       = errors.New("expired_at is required")
	ErrUnknownCatalogOption = errors.New("unknown skill or city id")
)

// CatalogService maintains companies, skills, cities and job posts, and lets
// companies answer applications.
type CatalogService struct {
	db      *gorm.DB
	options *cache.Options
	namer   *uploads.Namer
	store   uploads.Store
}

func NewCatalogService(db *gorm.DB, options *cache.Options, store uploads.Store) *CatalogService {
	return &CatalogService{db: db, options: options, namer: uploads.NewNamer(), store: store}
}

func (s *CatalogService) CreateCompany(ctx context.Context, req *dto.CompanyRequest, logo *multipart.FileHeader) (*models.Company, error) {
	company := models.Company{
		Base:         models.Base{ID: uuid.New()},
		Name:         req.Name,
		Email:        strings.TrimSpace(req.Email),
		MobileNumber: strings.TrimSpace(req.MobileNumber),
	}

	if logo != nil {
		rel, err := s.namer.Path(uploads.CompanyLogo, company.ID, logo.Filename)
		if err != nil {
			return nil, err
		}
		company.LogoPath = rel
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := create(tx, &company, models.ErrCompanyExists); err != nil {
			return err
		}
		if logo != nil {
			return s.store.Save(logo, company.LogoPath)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.options.Invalidate(ctx)
	return &company, nil
}

func (s *CatalogService) CreateSkill(ctx context.Context, name string) (*models.Skill, error) {
	skill := models.Skill{Name: name}
	if err := create(s.db.WithContext(ctx), &skill, models.ErrSkillExists); err != nil {
		return nil, err
	}
	s.options.Invalidate(ctx)
	return &skill, nil
}

func (s *CatalogService) CreateCity(ctx context.Context, name string) (*models.City, error) {
	city := models.City{Name: name}
	if err := create(s.db.WithContext(ctx), &city, models.ErrCityExists); err != nil {
		return nil, err
	}
	s.options.Invalidate(ctx)
	return &city, nil
}

// CreateJobPost validates the references and stores the post with its
// skills and cities. Vacancies default to one.
func (s *CatalogService) CreateJobPost(ctx context.Context, req *dto.JobPostRequest) (*models.JobPost, error) {
	companyID, err := uuid.Parse(strings.TrimSpace(req.CompanyID))
	if err != nil {
		return nil, ErrUnknownCompany
	}
	if req.ExpiredAt.IsZero() {
		return nil, ErrExpiryRequired
	}

	post := models.JobPost{
		Title:          req.Title,
		Description:    req.Description,
		CompanyID:      companyID,
		TotalVacancies: 1,
		ExpiredAt:      req.ExpiredAt.UTC(),
		PayrollMethod:  models.PayrollPeriod(strings.ToLower(strings.TrimSpace(req.PayrollMethod))),
		PayRangeFrom:   req.PayRangeFrom,
		PayRangeTo:     req.PayRangeTo,
		CanBeRemote:    req.CanBeRemote,
	}
	if req.TotalVacancies != nil {
		post.TotalVacancies = *req.TotalVacancies
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var company models.Company
		if err := tx.First(&company, "id = ?", companyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownCompany
			}
			return err
		}

		if err := findAll(tx, req.SkillIDs, &post.Skills); err != nil {
			return err
		}
		if err := findAll(tx, req.CityIDs, &post.Cities); err != nil {
			return err
		}

		if err := tx.Omit("Company").Create(&post).Error; err != nil {
			return err
		}
		post.Company = company
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// SetApplicationStatus is how a company accepts or declines an application.
func (s *CatalogService) SetApplicationStatus(ctx context.Context, applicationID uuid.UUID, status string) (*models.JobApplication, error) {
	st := models.ApplicationStatus(strings.ToLower(strings.TrimSpace(status)))
	if !st.Valid() {
		return nil, ErrInvalidStatus
	}

	var app models.JobApplication
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&app, "id = ?", applicationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrApplicationNotFound
			}
			return err
		}
		app.Status = st
		return tx.Model(&app).Update("status", st).Error
	})
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// create inserts a uniquely named catalog row. A duplicate that slips past
// the model hook is still reported as dup.
func create(tx *gorm.DB, value interface{}, dup models.ValidationError) error {
	if err := tx.Create(value).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return dup
		}
		return err
	}
	return nil
}

// findAll loads the rows named by raw, failing when any id is unknown.
func findAll[T any](tx *gorm.DB, raw []string, dst *[]T) error {
	set := forms.ParseIDs(raw)
	if !set.Active {
		return nil
	}
	if len(set.IDs) > 0 {
		if err := tx.Where("id IN ?", set.IDs).Find(dst).Error; err != nil {
			return err
		}
	}
	if len(*dst) != len(set.IDs) || len(set.IDs) == 0 {
		return ErrUnknownCatalogOption
	}
	return nil
}
