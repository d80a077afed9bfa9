package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wirkaufenfair/fairprice/internal/dto"
	"github.com/wirkaufenfair/fairprice/internal/models"
	"github.com/wirkaufenfair/fairprice/internal/repository"
)

type RatingService struct {
	store    repository.Store
	sessions *SessionHasher
	timeout  time.Duration
	now      func() time.Time
}

func NewRatingService(store repository.Store, sessions *SessionHasher, timeout time.Duration) *RatingService {
	return &RatingService{store: store, sessions: sessions, timeout: timeout, now: time.Now}
}

func (s *RatingService) Create(ctx context.Context, req *dto.CreateRatingRequest, clientIP string) (*models.ProductRating, error) {
	product := strings.TrimSpace(req.ProductIdentifier)
	if product == "" {
		return nil, invalid("product_identifier is required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, invalid("Rating must be between 1 and 5")
	}
	if req.Comment != nil && len(*req.Comment) > 500 {
		return nil, invalid("comment must be at most 500 characters")
	}

	session := nonEmpty(req.UserSession)
	if session == nil && s.sessions != nil {
		if token := s.sessions.Token(clientIP); token != "" {
			session = &token
		}
	}

	rating := &models.ProductRating{
		ProductIdentifier: product,
		StoreName:         nonEmpty(req.StoreName),
		Rating:            req.Rating,
		Comment:           nonEmpty(req.Comment),
		UserSession:       session,
		CreatedAt:         s.now().UTC(),
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.store.CreateRating(ctx, rating); err != nil {
		return nil, fmt.Errorf("create rating: %w", err)
	}
	return rating, nil
}

func (s *RatingService) List(ctx context.Context, productIdentifier, storeName string, limit int) ([]models.ProductRating, error) {
	product := strings.TrimSpace(productIdentifier)
	if product == "" {
		return nil, invalid("product_identifier is required")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ratings, err := s.store.ListRatings(ctx, repository.RatingFilter{
		ProductIdentifier: product,
		StoreName:         strings.TrimSpace(storeName),
		Limit:             clampLimit(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	return ratings, nil
}

// Stats aggregates all ratings for a product, optionally within one store.
// An unrated product yields zeros.
func (s *RatingService) Stats(ctx context.Context, productIdentifier, storeName string) (*dto.RatingStatsResponse, error) {
	product := strings.TrimSpace(productIdentifier)
	if product == "" {
		return nil, invalid("product_identifier is required")
	}
	storeName = strings.TrimSpace(storeName)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	counts, err := s.store.RatingCounts(ctx, product, storeName)
	if err != nil {
		return nil, fmt.Errorf("count ratings: %w", err)
	}

	resp := &dto.RatingStatsResponse{
		ProductIdentifier:  product,
		StoreName:          nonEmpty(&storeName),
		RatingDistribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	sum := 0
	for stars := 1; stars <= 5; stars++ {
		n := counts[stars]
		resp.RatingDistribution[stars] = n
		resp.TotalRatings += n
		sum += stars * n
	}
	if resp.TotalRatings > 0 {
		resp.AverageRating = decimal.NewFromInt(int64(sum)).
			Div(decimal.NewFromInt(int64(resp.TotalRatings))).
			Round(2).
			InexactFloat64()
	}
	return resp, nil
}
