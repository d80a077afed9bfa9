package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/wirkaufenfair/fairprice/internal/dto"
	"github.com/wirkaufenfair/fairprice/internal/models"
	"github.com/wirkaufenfair/fairprice/internal/pricing"
	"github.com/wirkaufenfair/fairprice/internal/repository/repotest"
)

var fixedNow = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func newTestPriceReportService(store *repotest.Store) *PriceReportService {
	svc := NewPriceReportService(store, NewSessionHasher("test-salt"), time.Second)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func TestSubmitBounds(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.CreatePriceReportRequest
		wantErr error
	}{
		{"zero price", dto.CreatePriceReportRequest{ProductIdentifier: "p", StoreName: "REWE A", ReportedPrice: 0}, pricing.ErrPriceNonPositive},
		{"negative price", dto.CreatePriceReportRequest{ProductIdentifier: "p", StoreName: "REWE A", ReportedPrice: -1}, pricing.ErrPriceNonPositive},
		{"below minimum", dto.CreatePriceReportRequest{ProductIdentifier: "p", StoreName: "REWE A", ReportedPrice: 0.05}, pricing.ErrPriceTooLow},
		{"above maximum", dto.CreatePriceReportRequest{ProductIdentifier: "p", StoreName: "REWE A", ReportedPrice: 600}, pricing.ErrPriceTooHigh},
		{"minimum accepted", dto.CreatePriceReportRequest{ProductIdentifier: "p", StoreName: "REWE A", ReportedPrice: 0.10}, nil},
		{"maximum accepted", dto.CreatePriceReportRequest{ProductIdentifier: "p", StoreName: "REWE A", ReportedPrice: 500}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := repotest.New()
			svc := newTestPriceReportService(store)
			report, err := svc.Submit(context.Background(), &tt.req, "10.0.0.1")
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Submit() error = %v", err)
				}
				if report.Status != models.StatusPending {
					t.Errorf("status = %q, want pending", report.Status)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Submit() error = %v, want ValidationError", err)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Submit() error = %v, want %v", err, tt.wantErr)
			}
			if store.ReportCount() != 0 {
				t.Errorf("rejected submission was stored")
			}
		})
	}
}

func TestSubmitRequiresProductAndStore(t *testing.T) {
	svc := newTestPriceReportService(repotest.New())
	for _, req := range []dto.CreatePriceReportRequest{
		{StoreName: "REWE A", ReportedPrice: 1},
		{ProductIdentifier: "p", StoreName: "  ", ReportedPrice: 1},
	} {
		_, err := svc.Submit(context.Background(), &req, "")
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("Submit(%+v) error = %v, want ValidationError", req, err)
		}
	}
}

func TestSubmitAnomalyFlagging(t *testing.T) {
	tests := []struct {
		name       string
		peerStatus models.ReportStatus
		price      float64
		want       models.ReportStatus
	}{
		{"within band", models.StatusPending, 2.9, models.StatusPending},
		{"far above mean", models.StatusPending, 4.0, models.StatusPendingReview},
		{"far below mean", models.StatusVerified, 0.5, models.StatusPendingReview},
		{"rejected peers ignored", models.StatusRejected, 100, models.StatusPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := repotest.New()
			for i := 0; i < 5; i++ {
				store.SeedReport("4001", "REWE A", 2.0, tt.peerStatus, 0, fixedNow.Add(-time.Duration(i+1)*time.Hour))
			}
			svc := newTestPriceReportService(store)

			report, err := svc.Submit(context.Background(), &dto.CreatePriceReportRequest{
				ProductIdentifier: "4001",
				StoreName:         "REWE A",
				ReportedPrice:     tt.price,
			}, "10.0.0.1")
			if err != nil {
				t.Fatalf("Submit() error = %v", err)
			}
			if report.Status != tt.want {
				t.Errorf("status = %q, want %q", report.Status, tt.want)
			}
		})
	}
}

func TestSubmitPeerWindowUsesNewestFive(t *testing.T) {
	store := repotest.New()
	// Old outliers fall outside the window of the five newest peers.
	for i := 0; i < 3; i++ {
		store.SeedReport("4001", "REWE A", 20.0, models.StatusPending, 0, fixedNow.Add(-time.Duration(100+i)*time.Hour))
	}
	for i := 0; i < 5; i++ {
		store.SeedReport("4001", "REWE A", 2.0, models.StatusPending, 0, fixedNow.Add(-time.Duration(i+1)*time.Hour))
	}
	svc := newTestPriceReportService(store)

	report, err := svc.Submit(context.Background(), &dto.CreatePriceReportRequest{
		ProductIdentifier: "4001", StoreName: "REWE A", ReportedPrice: 2.2,
	}, "")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if report.Status != models.StatusPending {
		t.Errorf("status = %q, want pending", report.Status)
	}
}

func TestSubmitRecordDefaults(t *testing.T) {
	store := repotest.New()
	svc := newTestPriceReportService(store)

	report, err := svc.Submit(context.Background(), &dto.CreatePriceReportRequest{
		ProductIdentifier: " 4001 ",
		StoreName:         "REWE A",
		ReportedPrice:     1.99,
		SizeAmount:        floatPtr(500),
		SizeUnit:          strPtr("g"),
		PhotoURL:          strPtr("https://example.org/p.jpg"),
	}, "10.0.0.1")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if report.ID == uuid.Nil {
		t.Error("ID not assigned")
	}
	if report.ProductIdentifier != "4001" {
		t.Errorf("ProductIdentifier = %q, want trimmed", report.ProductIdentifier)
	}
	if report.Upvotes != 0 || report.Downvotes != 0 {
		t.Errorf("counters = %d/%d, want 0/0", report.Upvotes, report.Downvotes)
	}
	if !report.CreatedAt.Equal(fixedNow) {
		t.Errorf("CreatedAt = %v, want %v", report.CreatedAt, fixedNow)
	}
	if report.ConfidenceScore != 0.7 {
		t.Errorf("ConfidenceScore = %v, want 0.7", report.ConfidenceScore)
	}
	if report.UserSession == nil || len(*report.UserSession) != 16 {
		t.Errorf("UserSession = %v, want derived 16-char token", report.UserSession)
	}
	if store.ReportCount() != 1 {
		t.Errorf("stored %d reports, want 1", store.ReportCount())
	}
}

func TestSubmitKeepsGivenSession(t *testing.T) {
	svc := newTestPriceReportService(repotest.New())
	report, err := svc.Submit(context.Background(), &dto.CreatePriceReportRequest{
		ProductIdentifier: "4001", StoreName: "REWE A", ReportedPrice: 1, UserSession: strPtr("abc"),
	}, "10.0.0.1")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if report.UserSession == nil || *report.UserSession != "abc" {
		t.Errorf("UserSession = %v, want abc", report.UserSession)
	}
}

func TestSubmitStoreFailure(t *testing.T) {
	store := repotest.New()
	store.FailCreate = errors.New("connection reset")
	svc := newTestPriceReportService(store)

	_, err := svc.Submit(context.Background(), &dto.CreatePriceReportRequest{
		ProductIdentifier: "4001", StoreName: "REWE A", ReportedPrice: 1,
	}, "")
	if err == nil {
		t.Fatal("Submit() error = nil, want failure")
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		t.Errorf("storage failure reported as validation error: %v", err)
	}
}

func TestList(t *testing.T) {
	store := repotest.New()
	for i := 0; i < 60; i++ {
		store.SeedReport("4001", "REWE A", 1, models.StatusPending, 0, fixedNow.Add(-time.Duration(i)*time.Minute))
	}
	store.SeedReport("4001", "EDEKA B", 1, models.StatusVerified, 0, fixedNow)
	svc := newTestPriceReportService(store)
	ctx := context.Background()

	all, err := svc.List(ctx, dto.ListPriceReportsQuery{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 50 {
		t.Errorf("default limit returned %d, want 50", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].CreatedAt.After(all[i-1].CreatedAt) {
			t.Fatalf("results not newest first at %d", i)
		}
	}

	capped, _ := svc.List(ctx, dto.ListPriceReportsQuery{Limit: 1000})
	if len(capped) != 61 {
		t.Errorf("limit 1000 returned %d, want all 61", len(capped))
	}

	verified, _ := svc.List(ctx, dto.ListPriceReportsQuery{Status: "verified"})
	if len(verified) != 1 || verified[0].StoreName != "EDEKA B" {
		t.Errorf("status filter = %+v", verified)
	}

	if _, err := svc.List(ctx, dto.ListPriceReportsQuery{Status: "approved"}); err == nil {
		t.Error("unknown status accepted")
	}
}

func TestClampLimit(t *testing.T) {
	for in, want := range map[int]int{-1: 50, 0: 50, 1: 1, 200: 200, 201: 200} {
		if got := clampLimit(in); got != want {
			t.Errorf("clampLimit(%d) = %d, want %d", in, got, want)
		}
	}
}

func vote(t *testing.T, svc *PriceReportService, id uuid.UUID, votes ...string) *dto.VoteResponse {
	t.Helper()
	var resp *dto.VoteResponse
	for _, v := range votes {
		var err error
		resp, err = svc.Vote(context.Background(), id, v)
		if err != nil {
			t.Fatalf("Vote(%q) error = %v", v, err)
		}
	}
	return resp
}

func TestVoteTransitions(t *testing.T) {
	tests := []struct {
		name  string
		start models.ReportStatus
		votes []string
		want  models.ReportStatus
		up    int
		down  int
	}{
		{"five clean upvotes verify", models.StatusPending, []string{"up", "up", "up", "up", "up"}, models.StatusVerified, 5, 0},
		{"four upvotes stay pending", models.StatusPending, []string{"up", "up", "up", "up"}, models.StatusPending, 4, 0},
		{"any downvote blocks verification", models.StatusPending, []string{"down", "up", "up", "up", "up", "up"}, models.StatusPending, 5, 1},
		{"downvote majority rejects", models.StatusPending, []string{"up", "down", "down"}, models.StatusRejected, 1, 2},
		{"tie does not reject", models.StatusPending, []string{"up", "up", "down", "down"}, models.StatusPending, 2, 2},
		{"pending review never auto verifies", models.StatusPendingReview, []string{"up", "up", "up", "up", "up", "up"}, models.StatusPendingReview, 6, 0},
		{"pending review never auto rejects", models.StatusPendingReview, []string{"down", "down", "down"}, models.StatusPendingReview, 0, 3},
		{"verified is final", models.StatusVerified, []string{"down", "down", "down"}, models.StatusVerified, 0, 3},
		{"rejected is final", models.StatusRejected, []string{"up", "up", "up", "up", "up"}, models.StatusRejected, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := repotest.New()
			id := store.SeedReport("4001", "REWE A", 1.99, tt.start, 0, fixedNow)
			svc := newTestPriceReportService(store)

			resp := vote(t, svc, id, tt.votes...)
			if resp.Status != tt.want {
				t.Errorf("status = %q, want %q", resp.Status, tt.want)
			}
			if resp.Upvotes != tt.up || resp.Downvotes != tt.down {
				t.Errorf("counters = %d/%d, want %d/%d", resp.Upvotes, resp.Downvotes, tt.up, tt.down)
			}
			stored := store.Report(id)
			if stored.Status != tt.want || stored.Upvotes != tt.up || stored.Downvotes != tt.down {
				t.Errorf("stored = %s %d/%d", stored.Status, stored.Upvotes, stored.Downvotes)
			}
		})
	}
}

func TestVotePropagatesVerifiedPrice(t *testing.T) {
	store := repotest.New()
	id := store.SeedReport("4001", "REWE A", 2.49, models.StatusPending, 4, fixedNow)
	store.UpdateReport(id, func(r *models.PriceReport) { r.SizeAmount = floatPtr(750) })
	store.SeedLocation(models.ProductLocation{
		ID:                uuid.New(),
		ProductIdentifier: "4001",
		StoreName:         "REWE A",
		CurrentPrice:      floatPtr(1.99),
		SizeUnit:          strPtr("ml"),
	})
	svc := newTestPriceReportService(store)

	resp := vote(t, svc, id, "up")
	if resp.Status != models.StatusVerified {
		t.Fatalf("status = %q, want verified", resp.Status)
	}

	stored := store.Report(id)
	if stored.VerifiedAt == nil || !stored.VerifiedAt.Equal(fixedNow) {
		t.Errorf("VerifiedAt = %v, want %v", stored.VerifiedAt, fixedNow)
	}

	loc, err := store.FindProductLocation(context.Background(), "4001", "REWE A")
	if err != nil {
		t.Fatalf("FindProductLocation() error = %v", err)
	}
	if loc.CurrentPrice == nil || *loc.CurrentPrice != 2.49 {
		t.Errorf("CurrentPrice = %v, want 2.49", loc.CurrentPrice)
	}
	if loc.SizeAmount == nil || *loc.SizeAmount != 750 {
		t.Errorf("SizeAmount = %v, want 750", loc.SizeAmount)
	}
	if loc.SizeUnit == nil || *loc.SizeUnit != "ml" {
		t.Errorf("SizeUnit = %v, want unchanged ml", loc.SizeUnit)
	}
	history := pricing.ParseHistory(loc.PriceHistory)
	if len(history) != 1 || !history[0].Date.Equal(fixedNow) {
		t.Errorf("history = %+v, want one entry at now", history)
	}

	// Further upvotes do not propagate again.
	vote(t, svc, id, "up")
	loc, _ = store.FindProductLocation(context.Background(), "4001", "REWE A")
	if n := len(pricing.ParseHistory(loc.PriceHistory)); n != 1 {
		t.Errorf("history entries = %d after extra vote, want 1", n)
	}
}

func TestVoteVerifiesWithoutProductLocation(t *testing.T) {
	store := repotest.New()
	id := store.SeedReport("4001", "REWE A", 2.49, models.StatusPending, 4, fixedNow)
	svc := newTestPriceReportService(store)

	resp := vote(t, svc, id, "up")
	if resp.Status != models.StatusVerified {
		t.Errorf("status = %q, want verified", resp.Status)
	}
	if len(store.Locations()) != 0 {
		t.Errorf("product location created by vote")
	}
}

func TestVoteRollsBackOnPropagationFailure(t *testing.T) {
	store := repotest.New()
	id := store.SeedReport("4001", "REWE A", 2.49, models.StatusPending, 4, fixedNow)
	store.FailLocationUpdate = errors.New("deadlock detected")
	svc := newTestPriceReportService(store)

	if _, err := svc.Vote(context.Background(), id, "up"); err == nil {
		t.Fatal("Vote() error = nil, want failure")
	}
	stored := store.Report(id)
	if stored.Status != models.StatusPending || stored.Upvotes != 4 {
		t.Errorf("stored = %s %d upvotes, want rollback to pending 4", stored.Status, stored.Upvotes)
	}
}

func TestVoteErrors(t *testing.T) {
	store := repotest.New()
	id := store.SeedReport("4001", "REWE A", 1, models.StatusPending, 0, fixedNow)
	svc := newTestPriceReportService(store)

	for _, bad := range []string{"", "UP", "upvote", "yes"} {
		_, err := svc.Vote(context.Background(), id, bad)
		var verr *ValidationError
		if !errors.As(err, &verr) || !errors.Is(err, pricing.ErrInvalidVote) {
			t.Errorf("Vote(%q) error = %v, want invalid vote", bad, err)
		}
	}
	if r := store.Report(id); r.Upvotes != 0 || r.Downvotes != 0 {
		t.Errorf("invalid votes changed counters: %d/%d", r.Upvotes, r.Downvotes)
	}

	if _, err := svc.Vote(context.Background(), uuid.New(), "up"); !errors.Is(err, ErrPriceReportNotFound) {
		t.Errorf("Vote(unknown) error = %v, want ErrPriceReportNotFound", err)
	}
}

func TestConcurrentVotesAreSerialized(t *testing.T) {
	store := repotest.New()
	id := store.SeedReport("4001", "REWE A", 2.49, models.StatusPending, 0, fixedNow)
	store.SeedLocation(models.ProductLocation{
		ID: uuid.New(), ProductIdentifier: "4001", StoreName: "REWE A",
	})
	svc := newTestPriceReportService(store)

	const voters = 20
	var wg sync.WaitGroup
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Vote(context.Background(), id, "up"); err != nil {
				t.Errorf("Vote() error = %v", err)
			}
		}()
	}
	wg.Wait()

	stored := store.Report(id)
	if stored.Upvotes != voters {
		t.Errorf("upvotes = %d, want %d", stored.Upvotes, voters)
	}
	if stored.Status != models.StatusVerified {
		t.Errorf("status = %q, want verified", stored.Status)
	}
	loc, _ := store.FindProductLocation(context.Background(), "4001", "REWE A")
	if n := len(pricing.ParseHistory(loc.PriceHistory)); n != 1 {
		t.Errorf("canonical price propagated %d times, want 1", n)
	}
}

func TestReview(t *testing.T) {
	tests := []struct {
		name     string
		start    models.ReportStatus
		decision string
		want     models.ReportStatus
		wantErr  error
	}{
		{"verify held report", models.StatusPendingReview, "verify", models.StatusVerified, nil},
		{"reject held report", models.StatusPendingReview, "reject", models.StatusRejected, nil},
		{"verify pending report", models.StatusPending, "verify", models.StatusVerified, nil},
		{"verified is final", models.StatusVerified, "reject", models.StatusVerified, ErrReportFinalized},
		{"rejected is final", models.StatusRejected, "verify", models.StatusRejected, ErrReportFinalized},
		{"unknown decision", models.StatusPending, "approve", models.StatusPending, pricing.ErrInvalidDecision},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := repotest.New()
			id := store.SeedReport("4001", "REWE A", 3.0, tt.start, 0, fixedNow)
			store.SeedLocation(models.ProductLocation{
				ID: uuid.New(), ProductIdentifier: "4001", StoreName: "REWE A",
			})
			svc := newTestPriceReportService(store)

			resp, err := svc.Review(context.Background(), id, tt.decision)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Review() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && resp.Status != tt.want {
				t.Errorf("status = %q, want %q", resp.Status, tt.want)
			}
			if got := store.Report(id).Status; got != tt.want {
				t.Errorf("stored status = %q, want %q", got, tt.want)
			}

			loc, _ := store.FindProductLocation(context.Background(), "4001", "REWE A")
			propagated := loc.CurrentPrice != nil
			if wantProp := tt.wantErr == nil && tt.want == models.StatusVerified; propagated != wantProp {
				t.Errorf("propagated = %v, want %v", propagated, wantProp)
			}
		})
	}
}
