package domain

import (
	"time"
)

type User struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Email         string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash  string    `json:"-" gorm:"not null"`
	CompanyName   string    `json:"companyName" gorm:"not null"`
	Country       string    `json:"country" gorm:"not null"`
	Region        string    `json:"region" gorm:"not null;default:EU"`
	StreetAddress string    `json:"streetAddress,omitempty"`
	City          string    `json:"city,omitempty"`
	PostalCode    string    `json:"postalCode,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Session binds an opaque token to a user for a fixed time-to-live.
// Expiry is authoritative at read time: lookups filter on ExpiresAt and
// never depend on expired rows having been swept.
type Session struct {
	Token     string    `json:"-" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"not null;index"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"not null;index"`
	CreatedAt time.Time `json:"createdAt"`
}
