package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/wirkaufenfair/fairprice/internal/models"
	"github.com/wirkaufenfair/fairprice/internal/pricing"
	"github.com/wirkaufenfair/fairprice/internal/repository"
)

// CatalogService maintains the store registry and canonical product-location
// prices outside the vote flow.
type CatalogService struct {
	store   repository.Store
	timeout time.Duration
	now     func() time.Time
}

func NewCatalogService(store repository.Store, timeout time.Duration) *CatalogService {
	return &CatalogService{store: store, timeout: timeout, now: time.Now}
}

type CanonicalPrice struct {
	ProductIdentifier string
	StoreName         string
	Price             float64
	SizeAmount        *float64
	SizeUnit          *string
}

// SetCanonicalPrice upserts the product-location record for product+store and
// appends the price to its history.
func (s *CatalogService) SetCanonicalPrice(ctx context.Context, p CanonicalPrice) (*models.ProductLocation, error) {
	product := strings.TrimSpace(p.ProductIdentifier)
	storeName := strings.TrimSpace(p.StoreName)
	if product == "" || storeName == "" {
		return nil, invalid("product_identifier and store_name are required")
	}
	if err := pricing.CheckBounds(p.Price); err != nil {
		return nil, &ValidationError{Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	now := s.now()

	var result models.ProductLocation
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		err := tx.UpdateProductLocation(ctx, product, storeName, func(loc *models.ProductLocation) error {
			if err := pricing.ApplyCanonicalPrice(loc, p.Price, p.SizeAmount, p.SizeUnit, now); err != nil {
				return err
			}
			result = *loc
			return nil
		})
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		loc := models.ProductLocation{ProductIdentifier: product, StoreName: storeName}
		if err := pricing.ApplyCanonicalPrice(&loc, p.Price, p.SizeAmount, p.SizeUnit, now); err != nil {
			return err
		}
		if err := tx.CreateProductLocation(ctx, &loc); err != nil {
			return err
		}
		result = loc
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("set canonical price: %w", err)
	}

	slog.Info("canonical price set",
		"product_identifier", product,
		"store_name", storeName,
		"price", p.Price,
	)
	return &result, nil
}

// RegisterStore adds a store to the registry. The full name is
// "<chain> <location>"; registering an existing store returns it unchanged.
func (s *CatalogService) RegisterStore(ctx context.Context, st *models.Store) (*models.Store, error) {
	st.Chain = strings.TrimSpace(st.Chain)
	st.Location = strings.TrimSpace(st.Location)
	if st.Chain == "" || st.Location == "" {
		return nil, invalid("chain and location are required")
	}
	st.FullName = st.Chain + " " + st.Location
	st.IsActive = true
	if st.CreatedAt.IsZero() {
		st.CreatedAt = s.now().UTC()
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.store.CreateStore(ctx, st); err != nil {
		return nil, fmt.Errorf("register store: %w", err)
	}
	return st, nil
}
