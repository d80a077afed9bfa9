package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wirkaufenfair/fairprice/internal/pricing"
	"github.com/wirkaufenfair/fairprice/internal/repository"
)

type BestPriceService struct {
	store   repository.Store
	timeout time.Duration
	now     func() time.Time
}

func NewBestPriceService(store repository.Store, timeout time.Duration) *BestPriceService {
	return &BestPriceService{store: store, timeout: timeout, now: time.Now}
}

// Resolve answers with the first source that has data: the canonical
// product-location price, the best community report, the chain average, or
// nothing.
func (s *BestPriceService) Resolve(ctx context.Context, productIdentifier, storeName string) (pricing.BestPrice, error) {
	product := strings.TrimSpace(productIdentifier)
	storeName = strings.TrimSpace(storeName)
	if product == "" || storeName == "" {
		return pricing.BestPrice{}, invalid("product_identifier and store_name are required")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	now := s.now()

	loc, err := s.store.FindProductLocation(ctx, product, storeName)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return pricing.BestPrice{}, fmt.Errorf("find product location: %w", err)
	}
	if res, ok := pricing.FromCanonical(loc, now); ok {
		return res, nil
	}

	since := now.Add(-pricing.ValidityWindow)
	report, err := s.store.TopCommunityReport(ctx, product, storeName, since)
	switch {
	case err == nil:
		return pricing.FromCommunity(report, now), nil
	case !errors.Is(err, repository.ErrNotFound):
		return pricing.BestPrice{}, fmt.Errorf("find community report: %w", err)
	}

	chain, err := s.chainOf(ctx, storeName)
	if err != nil {
		return pricing.BestPrice{}, err
	}
	if chain != "" {
		reports, err := s.store.ChainVerifiedReports(ctx, product, chain, since, pricing.ChainSampleSize)
		if err != nil {
			return pricing.BestPrice{}, fmt.Errorf("find chain reports: %w", err)
		}
		if res, ok := pricing.FromChain(chain, reports); ok {
			return res, nil
		}
	}

	return pricing.NoPrice(), nil
}

// chainOf prefers the registry's chain for a known active store and falls back
// to the first word of the store name.
func (s *BestPriceService) chainOf(ctx context.Context, storeName string) (string, error) {
	st, err := s.store.FindStore(ctx, storeName)
	switch {
	case err == nil && strings.TrimSpace(st.Chain) != "":
		return strings.TrimSpace(st.Chain), nil
	case err != nil && !errors.Is(err, repository.ErrNotFound):
		return "", fmt.Errorf("find store: %w", err)
	}
	return pricing.ChainOf(storeName), nil
}

