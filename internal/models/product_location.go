package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ProductLocation records where a product is shelved in a store and carries the
// canonical price for that product+store pair.
type ProductLocation struct {
	ID                uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductIdentifier string         `gorm:"size:200;not null;index:idx_product_locations_product_store,priority:1" json:"product_identifier"`
	StoreName         string         `gorm:"size:200;not null;index:idx_product_locations_product_store,priority:2" json:"store_name"`
	Aisle             *string        `gorm:"size:100" json:"aisle,omitempty"`
	ShelfLabel        *string        `gorm:"size:100" json:"shelf_label,omitempty"`
	Status            string         `gorm:"size:50;not null;default:'suggested'" json:"status"`
	SizeAmount        *float64       `json:"size_amount"`
	SizeUnit          *string        `gorm:"size:20" json:"size_unit"`
	CurrentPrice      *float64       `json:"current_price"`
	PriceCurrency     string         `gorm:"size:10;not null;default:'EUR'" json:"price_currency"`
	PriceHistory      datatypes.JSON `gorm:"type:jsonb" json:"price_history"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

func (ProductLocation) TableName() string {
	return "product_locations"
}
