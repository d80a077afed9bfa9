package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wirkaufenfair/fairprice/internal/dto"
	"github.com/wirkaufenfair/fairprice/internal/models"
	"github.com/wirkaufenfair/fairprice/internal/pricing"
	"github.com/wirkaufenfair/fairprice/internal/repository"
)

type PriceReportService struct {
	store    repository.Store
	sessions *SessionHasher
	timeout  time.Duration
	now      func() time.Time
}

func NewPriceReportService(store repository.Store, sessions *SessionHasher, timeout time.Duration) *PriceReportService {
	return &PriceReportService{store: store, sessions: sessions, timeout: timeout, now: time.Now}
}

// Submit validates and records a new community price report. Prices far from
// the recent peer mean are accepted but held for review.
func (s *PriceReportService) Submit(ctx context.Context, req *dto.CreatePriceReportRequest, clientIP string) (*models.PriceReport, error) {
	product := strings.TrimSpace(req.ProductIdentifier)
	storeName := strings.TrimSpace(req.StoreName)
	if product == "" {
		return nil, invalid("product_identifier is required")
	}
	if storeName == "" {
		return nil, invalid("store_name is required")
	}
	if err := pricing.CheckBounds(req.ReportedPrice); err != nil {
		return nil, &ValidationError{Err: err}
	}
	if req.SizeAmount != nil && *req.SizeAmount <= 0 {
		return nil, invalid("size_amount must be positive")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	peers, err := s.store.RecentPeerPrices(ctx, product, storeName, pricing.PeerWindow)
	if err != nil {
		return nil, fmt.Errorf("load peer prices: %w", err)
	}
	status := pricing.InitialStatus(req.ReportedPrice, peers)
	photo := nonEmpty(req.PhotoURL)

	report := &models.PriceReport{
		ProductIdentifier: product,
		StoreName:         storeName,
		ReportedPrice:     req.ReportedPrice,
		SizeAmount:        req.SizeAmount,
		SizeUnit:          nonEmpty(req.SizeUnit),
		UserSession:       s.session(req.UserSession, clientIP),
		PhotoURL:          photo,
		Status:            status,
		ConfidenceScore:   pricing.InitialConfidence(status, photo != nil),
		CreatedAt:         s.now().UTC(),
	}
	if err := s.store.CreatePriceReport(ctx, report); err != nil {
		return nil, fmt.Errorf("create price report: %w", err)
	}

	if status == models.StatusPendingReview {
		slog.Info("price report held for review",
			"report_id", report.ID.String(),
			"product_identifier", product,
			"store_name", storeName,
			"reported_price", req.ReportedPrice,
			"peer_count", len(peers),
		)
	}
	return report, nil
}

func (s *PriceReportService) List(ctx context.Context, q dto.ListPriceReportsQuery) ([]models.PriceReport, error) {
	status := models.ReportStatus(strings.TrimSpace(q.Status))
	if status != "" && !status.Valid() {
		return nil, invalid("status must be one of pending, pending_review, verified, rejected")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reports, err := s.store.ListPriceReports(ctx, repository.PriceReportFilter{
		ProductIdentifier: strings.TrimSpace(q.ProductIdentifier),
		StoreName:         strings.TrimSpace(q.StoreName),
		Status:            status,
		Limit:             clampLimit(q.Limit),
	})
	if err != nil {
		return nil, fmt.Errorf("list price reports: %w", err)
	}
	return reports, nil
}

// Vote records one community vote and applies the resulting status change,
// all under a row lock on the report.
func (s *PriceReportService) Vote(ctx context.Context, id uuid.UUID, rawVote string) (*dto.VoteResponse, error) {
	vote, err := pricing.ParseVote(rawVote)
	if err != nil {
		return nil, &ValidationError{Err: err}
	}
	return s.transition(ctx, id, "vote_"+vote.String(), func(r *models.PriceReport, now time.Time) (pricing.Outcome, error) {
		return pricing.ApplyVote(r, vote, now)
	})
}

// Review applies an administrative verify or reject decision to a report that
// has not been finalized yet.
func (s *PriceReportService) Review(ctx context.Context, id uuid.UUID, rawDecision string) (*dto.VoteResponse, error) {
	decision, err := pricing.ParseDecision(rawDecision)
	if err != nil {
		return nil, &ValidationError{Err: err}
	}
	return s.transition(ctx, id, "review", func(r *models.PriceReport, now time.Time) (pricing.Outcome, error) {
		return pricing.ApplyReview(r, decision, now)
	})
}

type transitionFunc func(r *models.PriceReport, now time.Time) (pricing.Outcome, error)

func (s *PriceReportService) transition(ctx context.Context, id uuid.UUID, action string, apply transitionFunc) (*dto.VoteResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		report     *models.PriceReport
		outcome    pricing.Outcome
		propagated bool
	)
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		var err error
		report, err = tx.LockPriceReport(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPriceReportNotFound
		}
		if err != nil {
			return fmt.Errorf("lock price report: %w", err)
		}

		now := s.now()
		outcome, err = apply(report, now)
		if err != nil {
			return err
		}
		if err := tx.SavePriceReportState(ctx, report); err != nil {
			return fmt.Errorf("save price report: %w", err)
		}
		if outcome.Verified() {
			propagated, err = propagateCanonicalPrice(ctx, tx, report, now)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrPriceReportNotFound) && !errors.Is(err, ErrReportFinalized) {
			slog.Error("price report transition failed",
				"report_id", id.String(),
				"action", action,
				"error", err.Error(),
			)
		}
		return nil, err
	}

	if outcome.Changed() {
		slog.Info("price report "+string(outcome.To),
			"report_id", report.ID.String(),
			"product_identifier", report.ProductIdentifier,
			"store_name", report.StoreName,
			"action", action,
			"from", string(outcome.From),
			"upvotes", report.Upvotes,
			"downvotes", report.Downvotes,
			"canonical_updated", propagated,
		)
	}

	return &dto.VoteResponse{
		ID:        report.ID,
		Upvotes:   report.Upvotes,
		Downvotes: report.Downvotes,
		Status:    report.Status,
	}, nil
}

// propagateCanonicalPrice copies a verified report's price onto the
// product-location record. A missing record is not an error.
func propagateCanonicalPrice(ctx context.Context, tx repository.Store, r *models.PriceReport, now time.Time) (bool, error) {
	err := tx.UpdateProductLocation(ctx, r.ProductIdentifier, r.StoreName, func(loc *models.ProductLocation) error {
		return pricing.ApplyCanonicalPrice(loc, r.ReportedPrice, r.SizeAmount, r.SizeUnit, now)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("propagate canonical price: %w", err)
	}
	return true, nil
}

func (s *PriceReportService) session(given *string, clientIP string) *string {
	if v := nonEmpty(given); v != nil {
		return v
	}
	if s.sessions == nil {
		return nil
	}
	if token := s.sessions.Token(clientIP); token != "" {
		return &token
	}
	return nil
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
