package models

import (
	"time"

	"github.com/google/uuid"
)

// Store is a registered retail location. FullName is "<chain> <location>".
type Store struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Chain      string    `gorm:"size:100;not null;index" json:"chain"`
	Location   string    `gorm:"size:200;index" json:"location"`
	FullName   string    `gorm:"size:300;not null;uniqueIndex" json:"full_name"`
	Address    string    `gorm:"size:300" json:"address,omitempty"`
	PostalCode string    `gorm:"size:20" json:"postal_code,omitempty"`
	City       string    `gorm:"size:100" json:"city,omitempty"`
	Latitude   *float64  `json:"latitude,omitempty"`
	Longitude  *float64  `json:"longitude,omitempty"`
	IsActive   bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}
