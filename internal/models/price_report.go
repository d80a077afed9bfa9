package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportStatus is the trust state of a community price report.
type ReportStatus string

const (
	StatusPending       ReportStatus = "pending"
	StatusPendingReview ReportStatus = "pending_review"
	StatusVerified      ReportStatus = "verified"
	StatusRejected      ReportStatus = "rejected"
)

// Valid reports whether s is one of the four known statuses.
func (s ReportStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPendingReview, StatusVerified, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further status transition is possible.
func (s ReportStatus) Terminal() bool {
	return s == StatusVerified || s == StatusRejected
}

// PriceReport is a single community price observation. Rows are never deleted;
// only the vote counters, status and verification timestamp change after creation.
type PriceReport struct {
	ID                uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductIdentifier string       `gorm:"size:200;not null;index:idx_price_reports_product_store,priority:1" json:"product_identifier"`
	StoreName         string       `gorm:"size:200;not null;index:idx_price_reports_product_store,priority:2" json:"store_name"`
	ReportedPrice     float64      `gorm:"not null;check:reported_price > 0" json:"reported_price"`
	SizeAmount        *float64     `json:"size_amount"`
	SizeUnit          *string      `gorm:"size:20" json:"size_unit"`
	UserSession       *string      `gorm:"size:100" json:"user_session"`
	Upvotes           int          `gorm:"not null;default:0;check:upvotes >= 0" json:"upvotes"`
	Downvotes         int          `gorm:"not null;default:0;check:downvotes >= 0" json:"downvotes"`
	Status            ReportStatus `gorm:"size:50;not null;default:'pending';index" json:"status"`
	VerifiedAt        *time.Time   `json:"verified_at"`
	PhotoURL          *string      `gorm:"size:500" json:"photo_url,omitempty"`
	ConfidenceScore   float64      `gorm:"not null;default:0.5;check:confidence_score >= 0 AND confidence_score <= 1" json:"confidence_score"`
	CreatedAt         time.Time    `gorm:"index" json:"created_at"`
}

func (PriceReport) TableName() string {
	return "price_reports"
}
