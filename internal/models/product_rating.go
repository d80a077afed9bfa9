package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductRating is a 1-5 star rating, optionally scoped to a store.
type ProductRating struct {
	ID                uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductIdentifier string    `gorm:"size:200;not null;index" json:"product_identifier"`
	StoreName         *string   `gorm:"size:200;index" json:"store_name"`
	Rating            int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment           *string   `gorm:"size:500" json:"comment"`
	UserSession       *string   `gorm:"size:100" json:"user_session"`
	CreatedAt         time.Time `gorm:"index" json:"created_at"`
}
