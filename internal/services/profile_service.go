package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"strings"

	"github.com/ahmetcoskunkizilkaya/job-portal/internal/database"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/dto"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/forms"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/models"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/uploads"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileFiles are the optional uploads of the profile form.
type ProfileFiles struct {
	Resume         *multipart.FileHeader
	ProfilePicture *multipart.FileHeader
}

type ProfileService struct {
	db    *gorm.DB
	namer *uploads.Namer
	store uploads.Store
}

func NewProfileService(db *gorm.DB, store uploads.Store) *ProfileService {
	return &ProfileService{db: db, namer: uploads.NewNamer(), store: store}
}

// Profile returns the user with every skill and city marked as picked or not.
func (s *ProfileService) Profile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error) {
	db := s.db.WithContext(ctx)

	var user models.User
	err := db.Preload("Skills").Preload("PreferredLocations").First(&user, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var skills []models.Skill
	if err := db.Order("name").Find(&skills).Error; err != nil {
		return nil, fmt.Errorf("load skills: %w", err)
	}
	var cities []models.City
	if err := db.Order("name").Find(&cities).Error; err != nil {
		return nil, fmt.Errorf("load cities: %w", err)
	}

	picked := make(map[uuid.UUID]bool, len(user.Skills)+len(user.PreferredLocations))
	for _, sk := range user.Skills {
		picked[sk.ID] = true
	}
	for _, c := range user.PreferredLocations {
		picked[c.ID] = true
	}

	resp := &dto.ProfileResponse{
		User:      user,
		Skills:    make([]dto.Choice, 0, len(skills)),
		Locations: make([]dto.Choice, 0, len(cities)),
	}
	for _, sk := range skills {
		resp.Skills = append(resp.Skills, dto.Choice{ID: sk.ID.String(), Name: sk.Name, IsAdded: picked[sk.ID]})
	}
	for _, c := range cities {
		resp.Locations = append(resp.Locations, dto.Choice{ID: c.ID.String(), Name: c.Name, IsAdded: picked[c.ID]})
	}
	return resp, nil
}

// Update saves the profile form. Nothing is written, neither rows nor
// files, unless every step succeeds.
func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, req *dto.ProfileUpdateRequest, files ProfileFiles) error {
	var stored, replaced []string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if req.FirstName != nil {
			user.FirstName = strings.TrimSpace(*req.FirstName)
		}
		if req.LastName != nil {
			user.LastName = strings.TrimSpace(*req.LastName)
		}
		if req.MobileNumber != nil {
			user.MobileNumber = nil
			if m := strings.TrimSpace(*req.MobileNumber); m != "" {
				user.MobileNumber = &m
			}
		}
		if req.CanWorkRemotely != nil {
			user.CanWorkRemotely = forms.Truthy(*req.CanWorkRemotely)
		}

		pending := make(map[string]*multipart.FileHeader)
		for _, f := range []struct {
			header   *multipart.FileHeader
			category uploads.Category
			field    *string
		}{
			{files.Resume, uploads.Resume, &user.ResumePath},
			{files.ProfilePicture, uploads.ProfilePicture, &user.ProfilePicturePath},
		} {
			if f.header == nil {
				continue
			}
			rel, err := s.namer.Path(f.category, user.ID, f.header.Filename)
			if err != nil {
				return err
			}
			if *f.field != "" {
				replaced = append(replaced, *f.field)
			}
			*f.field = rel
			pending[rel] = f.header
		}

		if err := tx.Omit(clause.Associations).Save(&user).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return models.ErrEmailExists
			}
			return err
		}

		if err := replaceAssociation[models.Skill](tx, &user, "Skills", req.Skills); err != nil {
			return err
		}
		if err := replaceAssociation[models.City](tx, &user, "PreferredLocations", req.Locations); err != nil {
			return err
		}

		for rel, header := range pending {
			if err := s.store.Save(header, rel); err != nil {
				return err
			}
			stored = append(stored, rel)
		}
		return nil
	})

	if err != nil {
		s.discard(stored)
		return err
	}
	s.discard(replaced)
	return nil
}

// replaceAssociation swaps the user's picks for the records named by raw.
// Unknown or malformed ids are ignored.
func replaceAssociation[T any](tx *gorm.DB, user *models.User, name string, raw []string) error {
	var records []T
	if ids := forms.ParseIDs(raw).IDs; len(ids) > 0 {
		if err := tx.Where("id IN ?", ids).Find(&records).Error; err != nil {
			return err
		}
	}
	assoc := tx.Model(user).Association(name)
	if len(records) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(records)
}

func (s *ProfileService) discard(paths []string) {
	for _, rel := range paths {
		if err := s.store.Remove(rel); err != nil {
			slog.Warn("failed to remove upload", "path", rel, "error", err)
		}
	}
}
