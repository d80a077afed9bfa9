package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SystemLog stores ERROR+ log records for later inspection.
type SystemLog struct {
	ID                uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Timestamp         time.Time      `gorm:"not null;index" json:"timestamp"`
	Level             string         `gorm:"size:10;not null;index" json:"level"`
	Message           string         `gorm:"type:text" json:"message"`
	TraceID           string         `gorm:"size:36;index" json:"trace_id"`
	ReportID          *string        `gorm:"size:36;index" json:"report_id"`
	ProductIdentifier string         `gorm:"size:200" json:"product_identifier"`
	StoreName         string         `gorm:"size:200" json:"store_name"`
	Action            string         `gorm:"size:100" json:"action"`
	Error             string         `gorm:"type:text" json:"error"`
	LatencyMs         int            `json:"latency_ms"`
	Extra             datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"extra"`
	CreatedAt         time.Time      `json:"created_at"`
}
