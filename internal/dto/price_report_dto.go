package dto

import (
	"github.com/google/uuid"
	"github.com/wirkaufenfair/fairprice/internal/models"
)

type CreatePriceReportRequest struct {
	ProductIdentifier string   `json:"product_identifier"`
	StoreName         string   `json:"store_name"`
	ReportedPrice     float64  `json:"reported_price"`
	SizeAmount        *float64 `json:"size_amount"`
	SizeUnit          *string  `json:"size_unit"`
	UserSession       *string  `json:"user_session"`
	PhotoURL          *string  `json:"photo_url"`
}

type ListPriceReportsQuery struct {
	ProductIdentifier string
	StoreName         string
	Status            string
	Limit             int
}

type VoteRequest struct {
	Vote string `json:"vote"`
}

type ReviewRequest struct {
	Decision string `json:"decision"`
}

type VoteResponse struct {
	ID        uuid.UUID           `json:"id"`
	Upvotes   int                 `json:"upvotes"`
	Downvotes int                 `json:"downvotes"`
	Status    models.ReportStatus `json:"status"`
}
