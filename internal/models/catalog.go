package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Company struct {
	Base
	Name         string `gorm:"not null;size:250;uniqueIndex" json:"name"`
	Email        string `gorm:"size:254" json:"email"`
	MobileNumber string `gorm:"size:10" json:"mobile_number"`
	LogoPath     string `gorm:"size:255" json:"logo"`
}

func (c *Company) BeforeSave(tx *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return ErrNameRequired
	}
	return uniqueName(tx, &Company{}, c.Name, c.ID, ErrCompanyExists)
}

type Skill struct {
	Base
	Name string `gorm:"not null;size:250;uniqueIndex" json:"name"`
}

func (s *Skill) BeforeSave(tx *gorm.DB) error {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return ErrNameRequired
	}
	return uniqueName(tx, &Skill{}, s.Name, s.ID, ErrSkillExists)
}

type City struct {
	Base
	Name string `gorm:"not null;size:250;uniqueIndex" json:"name"`
}

// TableName keeps gorm from pluralising to "citys".
func (City) TableName() string {
	return "cities"
}

func (c *City) BeforeSave(tx *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return ErrNameRequired
	}
	return uniqueName(tx, &City{}, c.Name, c.ID, ErrCityExists)
}

func uniqueName(tx *gorm.DB, model interface{}, name string, self uuid.UUID, dup ValidationError) error {
	var n int64
	if err := tx.Session(&gorm.Session{NewDB: true}).Model(model).
		Where("name = ? AND id <> ?", name, self).
		Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return dup
	}
	return nil
}

// Option is the id/name pair listing pages offer as filter choices.
type Option struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
