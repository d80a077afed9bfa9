// Package repository declares the persistence collaborators of the price
// services and provides their GORM implementation.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/wirkaufenfair/fairprice/internal/models"
)

var ErrNotFound = errors.New("record not found")

type PriceReportFilter struct {
	ProductIdentifier string
	StoreName         string
	Status            models.ReportStatus
	Limit             int
}

type RatingFilter struct {
	ProductIdentifier string
	StoreName         string
	Limit             int
}

// PriceReports is the append-only price report ledger.
type PriceReports interface {
	CreatePriceReport(ctx context.Context, r *models.PriceReport) error
	// ListPriceReports returns matching reports newest first.
	ListPriceReports(ctx context.Context, f PriceReportFilter) ([]models.PriceReport, error)
	// RecentPeerPrices returns prices of the newest non-rejected reports for
	// the exact product+store, newest first.
	RecentPeerPrices(ctx context.Context, productIdentifier, storeName string, limit int) ([]float64, error)
	// TopCommunityReport returns the non-rejected report for product+store
	// created at or after since with the most upvotes, newest on ties.
	TopCommunityReport(ctx context.Context, productIdentifier, storeName string, since time.Time) (*models.PriceReport, error)
	// ChainVerifiedReports returns verified reports for the product at any
	// store whose name starts with chain, newest first.
	ChainVerifiedReports(ctx context.Context, productIdentifier, chain string, since time.Time, limit int) ([]models.PriceReport, error)

	// LockPriceReport loads a report for update. Only meaningful inside Transaction.
	LockPriceReport(ctx context.Context, id uuid.UUID) (*models.PriceReport, error)
	// SavePriceReportState persists counters, status and verification time.
	SavePriceReportState(ctx context.Context, r *models.PriceReport) error
}

// ProductLocations owns the canonical price of each product+store.
type ProductLocations interface {
	FindProductLocation(ctx context.Context, productIdentifier, storeName string) (*models.ProductLocation, error)
	// UpdateProductLocation locks the record for product+store and applies fn
	// to it. It returns ErrNotFound when no record exists.
	UpdateProductLocation(ctx context.Context, productIdentifier, storeName string, fn func(loc *models.ProductLocation) error) error
	CreateProductLocation(ctx context.Context, loc *models.ProductLocation) error
}

// Stores is the store registry.
type Stores interface {
	// FindStore returns the active store with the given full name.
	FindStore(ctx context.Context, fullName string) (*models.Store, error)
	// CreateStore inserts a store or loads the existing one with the same full name.
	CreateStore(ctx context.Context, s *models.Store) error
}

type Ratings interface {
	CreateRating(ctx context.Context, r *models.ProductRating) error
	ListRatings(ctx context.Context, f RatingFilter) ([]models.ProductRating, error)
	// RatingCounts returns how many ratings each star value received.
	RatingCounts(ctx context.Context, productIdentifier, storeName string) (map[int]int, error)
}

// Store bundles every collaborator and runs units of work atomically.
type Store interface {
	PriceReports
	ProductLocations
	Stores
	Ratings

	// Transaction runs fn with a Store bound to one database transaction.
	// Returning an error from fn rolls everything back.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}
