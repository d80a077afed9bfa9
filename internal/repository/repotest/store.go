// Package repotest provides an in-memory repository.Store for tests.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wirkaufenfair/fairprice/internal/models"
	"github.com/wirkaufenfair/fairprice/internal/repository"
)

// Store is an in-memory repository.Store with the same ordering and filter
// semantics as the GORM implementation. Transactions are serialized and
// rolled back by restoring a snapshot.
type Store struct {
	txMu sync.Mutex

	mu        sync.Mutex
	reports   []models.PriceReport
	locations []models.ProductLocation
	stores    []models.Store
	ratings   []models.ProductRating

	// FailCreate makes CreatePriceReport return the error.
	FailCreate error
	// FailLocationUpdate makes UpdateProductLocation return the error.
	FailLocationUpdate error
}

func New() *Store {
	return &Store{}
}

var _ repository.Store = (*Store)(nil)

func (m *Store) Transaction(ctx context.Context, fn func(tx repository.Store) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.Lock()
	reports := append([]models.PriceReport(nil), m.reports...)
	locations := append([]models.ProductLocation(nil), m.locations...)
	m.mu.Unlock()

	if err := fn(m); err != nil {
		m.mu.Lock()
		m.reports, m.locations = reports, locations
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *Store) CreatePriceReport(ctx context.Context, r *models.PriceReport) error {
	if m.FailCreate != nil {
		return m.FailCreate
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	m.reports = append(m.reports, *r)
	return nil
}

func (m *Store) sortedReports() []models.PriceReport {
	out := append([]models.PriceReport(nil), m.reports...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *Store) ListPriceReports(ctx context.Context, f repository.PriceReportFilter) ([]models.PriceReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.PriceReport
	for _, r := range m.sortedReports() {
		if f.ProductIdentifier != "" && r.ProductIdentifier != f.ProductIdentifier {
			continue
		}
		if f.StoreName != "" && r.StoreName != f.StoreName {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		out = append(out, r)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func (m *Store) RecentPeerPrices(ctx context.Context, product, store string, limit int) ([]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var prices []float64
	for _, r := range m.sortedReports() {
		if r.ProductIdentifier != product || r.StoreName != store || r.Status == models.StatusRejected {
			continue
		}
		prices = append(prices, r.ReportedPrice)
		if len(prices) == limit {
			break
		}
	}
	return prices, nil
}

func (m *Store) TopCommunityReport(ctx context.Context, product, store string, since time.Time) (*models.PriceReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var best *models.PriceReport
	for _, r := range m.sortedReports() {
		if r.ProductIdentifier != product || r.StoreName != store || r.Status == models.StatusRejected || r.CreatedAt.Before(since) {
			continue
		}
		if best == nil || r.Upvotes > best.Upvotes {
			r := r
			best = &r
		}
	}
	if best == nil {
		return nil, repository.ErrNotFound
	}
	return best, nil
}

func (m *Store) ChainVerifiedReports(ctx context.Context, product, chain string, since time.Time, limit int) ([]models.PriceReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.PriceReport
	for _, r := range m.sortedReports() {
		if r.ProductIdentifier != product || !strings.HasPrefix(r.StoreName, chain) ||
			r.Status != models.StatusVerified || r.CreatedAt.Before(since) {
			continue
		}
		out = append(out, r)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *Store) LockPriceReport(ctx context.Context, id uuid.UUID) (*models.PriceReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reports {
		if r.ID == id {
			r := r
			return &r, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *Store) SavePriceReportState(ctx context.Context, r *models.PriceReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.reports {
		if m.reports[i].ID == r.ID {
			m.reports[i].Upvotes = r.Upvotes
			m.reports[i].Downvotes = r.Downvotes
			m.reports[i].Status = r.Status
			m.reports[i].VerifiedAt = r.VerifiedAt
			return nil
		}
	}
	return repository.ErrNotFound
}

// Report returns a copy of the stored report, or the zero value.
func (m *Store) Report(id uuid.UUID) models.PriceReport {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reports {
		if r.ID == id {
			return r
		}
	}
	return models.PriceReport{}
}

func (m *Store) FindProductLocation(ctx context.Context, product, store string) (*models.ProductLocation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, loc := range m.locations {
		if loc.ProductIdentifier == product && loc.StoreName == store {
			loc := loc
			return &loc, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *Store) UpdateProductLocation(ctx context.Context, product, store string, fn func(loc *models.ProductLocation) error) error {
	if m.FailLocationUpdate != nil {
		return m.FailLocationUpdate
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.locations {
		if m.locations[i].ProductIdentifier == product && m.locations[i].StoreName == store {
			loc := m.locations[i]
			if err := fn(&loc); err != nil {
				return err
			}
			m.locations[i] = loc
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *Store) CreateProductLocation(ctx context.Context, loc *models.ProductLocation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if loc.ID == uuid.Nil {
		loc.ID = uuid.New()
	}
	m.locations = append(m.locations, *loc)
	return nil
}

func (m *Store) FindStore(ctx context.Context, fullName string) (*models.Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, st := range m.stores {
		if st.FullName == fullName && st.IsActive {
			st := st
			return &st, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *Store) CreateStore(ctx context.Context, st *models.Store) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.stores {
		if existing.FullName == st.FullName {
			*st = existing
			return nil
		}
	}
	if st.ID == uuid.Nil {
		st.ID = uuid.New()
	}
	m.stores = append(m.stores, *st)
	return nil
}

func (m *Store) CreateRating(ctx context.Context, r *models.ProductRating) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	m.ratings = append(m.ratings, *r)
	return nil
}

func (m *Store) matchingRatings(product, store string) []models.ProductRating {
	var out []models.ProductRating
	for _, r := range m.ratings {
		if r.ProductIdentifier != product {
			continue
		}
		if store != "" && (r.StoreName == nil || *r.StoreName != store) {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *Store) ListRatings(ctx context.Context, f repository.RatingFilter) ([]models.ProductRating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.matchingRatings(f.ProductIdentifier, f.StoreName)
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *Store) RatingCounts(ctx context.Context, product, store string) (map[int]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[int]int)
	for _, r := range m.matchingRatings(product, store) {
		counts[r.Rating]++
	}
	return counts, nil
}

// SeedReport inserts a report directly, bypassing validation.
func (m *Store) SeedReport(product, store string, price float64, status models.ReportStatus, upvotes int, createdAt time.Time) uuid.UUID {
	r := models.PriceReport{
		ID:                uuid.New(),
		ProductIdentifier: product,
		StoreName:         store,
		ReportedPrice:     price,
		Status:            status,
		Upvotes:           upvotes,
		CreatedAt:         createdAt,
	}
	m.mu.Lock()
	m.reports = append(m.reports, r)
	m.mu.Unlock()
	return r.ID
}

// UpdateReport applies fn to a stored report in place.
func (m *Store) UpdateReport(id uuid.UUID, fn func(r *models.PriceReport)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.reports {
		if m.reports[i].ID == id {
			fn(&m.reports[i])
		}
	}
}

// SeedLocation inserts a product-location record.
func (m *Store) SeedLocation(loc models.ProductLocation) {
	if loc.ID == uuid.Nil {
		loc.ID = uuid.New()
	}
	m.mu.Lock()
	m.locations = append(m.locations, loc)
	m.mu.Unlock()
}

// SeedStore inserts a registry entry.
func (m *Store) SeedStore(st models.Store) {
	if st.ID == uuid.Nil {
		st.ID = uuid.New()
	}
	m.mu.Lock()
	m.stores = append(m.stores, st)
	m.mu.Unlock()
}

func (m *Store) ReportCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.reports)
}

func (m *Store) Locations() []models.ProductLocation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.ProductLocation(nil), m.locations...)
}

func (m *Store) RatingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ratings)
}
