package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wirkaufenfair/fairprice/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore implements Store on top of GORM.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

// --- price reports ---

func (s *GormStore) CreatePriceReport(ctx context.Context, r *models.PriceReport) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return s.db.WithContext(ctx).Create(r).Error
}

func (s *GormStore) ListPriceReports(ctx context.Context, f PriceReportFilter) ([]models.PriceReport, error) {
	query := s.db.WithContext(ctx).Model(&models.PriceReport{})
	if f.ProductIdentifier != "" {
		query = query.Where("product_identifier = ?", f.ProductIdentifier)
	}
	if f.StoreName != "" {
		query = query.Where("store_name = ?", f.StoreName)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}

	var reports []models.PriceReport
	if err := query.Order("created_at DESC").Limit(f.Limit).Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *GormStore) RecentPeerPrices(ctx context.Context, productIdentifier, storeName string, limit int) ([]float64, error) {
	var prices []float64
	err := s.db.WithContext(ctx).Model(&models.PriceReport{}).
		Where("product_identifier = ? AND store_name = ? AND status <> ?", productIdentifier, storeName, models.StatusRejected).
		Order("created_at DESC").
		Limit(limit).
		Pluck("reported_price", &prices).Error
	return prices, err
}

func (s *GormStore) TopCommunityReport(ctx context.Context, productIdentifier, storeName string, since time.Time) (*models.PriceReport, error) {
	var r models.PriceReport
	err := s.db.WithContext(ctx).
		Where("product_identifier = ? AND store_name = ? AND status <> ? AND created_at >= ?",
			productIdentifier, storeName, models.StatusRejected, since).
		Order("upvotes DESC, created_at DESC").
		Take(&r).Error
	if err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

func (s *GormStore) ChainVerifiedReports(ctx context.Context, productIdentifier, chain string, since time.Time, limit int) ([]models.PriceReport, error) {
	var reports []models.PriceReport
	err := s.db.WithContext(ctx).
		Where("product_identifier = ? AND store_name LIKE ? ESCAPE '\\' AND status = ? AND created_at >= ?",
			productIdentifier, likePrefix(chain), models.StatusVerified, since).
		Order("created_at DESC").
		Limit(limit).
		Find(&reports).Error
	return reports, err
}

func (s *GormStore) LockPriceReport(ctx context.Context, id uuid.UUID) (*models.PriceReport, error) {
	var r models.PriceReport
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&r, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

func (s *GormStore) SavePriceReportState(ctx context.Context, r *models.PriceReport) error {
	result := s.db.WithContext(ctx).Model(r).
		Select("upvotes", "downvotes", "status", "verified_at").
		Updates(r)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- product locations ---

func (s *GormStore) FindProductLocation(ctx context.Context, productIdentifier, storeName string) (*models.ProductLocation, error) {
	var loc models.ProductLocation
	err := s.db.WithContext(ctx).
		Where("product_identifier = ? AND store_name = ?", productIdentifier, storeName).
		Order("created_at ASC").
		Take(&loc).Error
	if err != nil {
		return nil, translate(err)
	}
	return &loc, nil
}

func (s *GormStore) UpdateProductLocation(ctx context.Context, productIdentifier, storeName string, fn func(loc *models.ProductLocation) error) error {
	var loc models.ProductLocation
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_identifier = ? AND store_name = ?", productIdentifier, storeName).
		Order("created_at ASC").
		Take(&loc).Error
	if err != nil {
		return translate(err)
	}
	if err := fn(&loc); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Save(&loc).Error
}

func (s *GormStore) CreateProductLocation(ctx context.Context, loc *models.ProductLocation) error {
	if loc.ID == uuid.Nil {
		loc.ID = uuid.New()
	}
	return s.db.WithContext(ctx).Create(loc).Error
}

// --- stores ---

func (s *GormStore) FindStore(ctx context.Context, fullName string) (*models.Store, error) {
	var st models.Store
	err := s.db.WithContext(ctx).
		Where("full_name = ? AND is_active = ?", fullName, true).
		Take(&st).Error
	if err != nil {
		return nil, translate(err)
	}
	return &st, nil
}

func (s *GormStore) CreateStore(ctx context.Context, st *models.Store) error {
	if st.ID == uuid.Nil {
		st.ID = uuid.New()
	}
	db := s.db.WithContext(ctx)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "full_name"}},
		DoNothing: true,
	}).Create(st).Error
	if err != nil {
		return err
	}
	return db.Where("full_name = ?", st.FullName).Take(st).Error
}

// --- ratings ---

func (s *GormStore) CreateRating(ctx context.Context, r *models.ProductRating) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return s.db.WithContext(ctx).Create(r).Error
}

func (s *GormStore) ListRatings(ctx context.Context, f RatingFilter) ([]models.ProductRating, error) {
	query := s.db.WithContext(ctx).Model(&models.ProductRating{}).
		Where("product_identifier = ?", f.ProductIdentifier)
	if f.StoreName != "" {
		query = query.Where("store_name = ?", f.StoreName)
	}
	if f.Limit > 0 {
		query = query.Limit(f.Limit)
	}

	var ratings []models.ProductRating
	if err := query.Order("created_at DESC").Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

func (s *GormStore) RatingCounts(ctx context.Context, productIdentifier, storeName string) (map[int]int, error) {
	query := s.db.WithContext(ctx).Model(&models.ProductRating{}).
		Select("rating, COUNT(*) AS total").
		Where("product_identifier = ?", productIdentifier)
	if storeName != "" {
		query = query.Where("store_name = ?", storeName)
	}

	var rows []struct {
		Rating int
		Total  int
	}
	if err := query.Group("rating").Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[int]int, len(rows))
	for _, row := range rows {
		counts[row.Rating] = row.Total
	}
	return counts, nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePrefix(s string) string {
	return likeEscaper.Replace(s) + "%"
}
