package models

import "time"

// Admin is a back-office user allowed to mutate content.
type Admin struct {
	BaseModel
	Name         string     `json:"name"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}
