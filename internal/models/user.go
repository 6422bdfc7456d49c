package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type User struct {
	Base
	Email              string     `gorm:"not null;size:254;uniqueIndex" json:"email"`
	Password           string     `gorm:"not null" json:"-"`
	FirstName          string     `gorm:"size:150" json:"first_name"`
	LastName           string     `gorm:"size:150" json:"last_name"`
	MobileNumber       *string    `gorm:"size:50;index" json:"mobile_number"`
	ResumePath         string     `gorm:"size:255" json:"resume"`
	ProfilePicturePath string     `gorm:"size:255" json:"profile_picture"`
	CanWorkRemotely    bool       `gorm:"not null" json:"can_work_remotely"`
	LastLogin          *time.Time `json:"last_login"`
	DateJoined         time.Time  `json:"date_joined"`

	Skills             []Skill `gorm:"many2many:user_skills;constraint:OnDelete:CASCADE" json:"skills,omitempty"`
	PreferredLocations []City  `gorm:"many2many:user_preferred_cities;constraint:OnDelete:CASCADE" json:"preferred_locations,omitempty"`
}

// BeforeSave rejects an email or mobile number already used by another
// user, compared case-insensitively.
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Email = strings.TrimSpace(u.Email)
	if u.MobileNumber != nil {
		trimmed := strings.TrimSpace(*u.MobileNumber)
		if trimmed == "" {
			u.MobileNumber = nil
		} else {
			u.MobileNumber = &trimmed
		}
	}

	db := tx.Session(&gorm.Session{NewDB: true})

	if u.MobileNumber != nil {
		var n int64
		if err := db.Model(&User{}).
			Where("LOWER(mobile_number) = LOWER(?) AND id <> ?", *u.MobileNumber, u.ID).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrMobileExists
		}
	}

	if u.Email != "" {
		var n int64
		if err := db.Model(&User{}).
			Where("LOWER(email) = LOWER(?) AND id <> ?", u.Email, u.ID).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrEmailExists
		}
	}
	return nil
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
