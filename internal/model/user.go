package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "profilehub/internal/errors"
)

// User represents a registered user.
type User struct {
	ID                 uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Username           string    `json:"username" gorm:"uniqueIndex;size:255;not null"`
	Email              string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	City               string    `json:"city" gorm:"size:255;not null"`
	MobileNumber       string    `json:"mobileNumber" gorm:"size:32;not null"`
	PasswordHash       string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	ProfilePicturePath string    `json:"profilePicture,omitempty" gorm:"size:512"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Validate reports the first required field that is empty.
func (u *User) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"username", u.Username},
		{"email", u.Email},
		{"city", u.City},
		{"mobileNumber", u.MobileNumber},
		{"password", u.PasswordHash},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%s is required: %w", f.name, apperrors.ErrValidation)
		}
	}
	return nil
}

// Sanitized returns a copy without the password hash.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	cp := *u
	cp.PasswordHash = ""
	return &cp
}
