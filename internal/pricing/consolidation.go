package pricing

import (
	"errors"
	"time"

	"github.com/wirkaufenfair/fairprice/internal/models"
)

const (
	// VerifyUpvotes is the upvote count at which a clean pending report is verified.
	VerifyUpvotes = 5
	// RejectDownvotes is the minimum downvote count for auto-rejection.
	RejectDownvotes = 2
)

var (
	ErrInvalidVote     = errors.New("Vote must be 'up' or 'down'")
	ErrInvalidDecision = errors.New("Decision must be 'verify' or 'reject'")
	ErrReportFinalized = errors.New("price report is already verified or rejected")
)

// Vote is a single community confirmation (Up) or objection (Down).
type Vote int

const (
	VoteUp Vote = iota + 1
	VoteDown
)

// ParseVote accepts exactly "up" or "down".
func ParseVote(s string) (Vote, error) {
	switch s {
	case "up":
		return VoteUp, nil
	case "down":
		return VoteDown, nil
	}
	return 0, ErrInvalidVote
}

func (v Vote) String() string {
	switch v {
	case VoteUp:
		return "up"
	case VoteDown:
		return "down"
	}
	return "invalid"
}

// Decision is an administrative review verdict.
type Decision int

const (
	DecisionVerify Decision = iota + 1
	DecisionReject
)

// ParseDecision accepts exactly "verify" or "reject".
func ParseDecision(s string) (Decision, error) {
	switch s {
	case "verify":
		return DecisionVerify, nil
	case "reject":
		return DecisionReject, nil
	}
	return 0, ErrInvalidDecision
}

// Outcome describes the status change caused by a vote or review.
type Outcome struct {
	From models.ReportStatus
	To   models.ReportStatus
}

func (o Outcome) Changed() bool { return o.From != o.To }

// Verified reports whether this outcome is the transition into verified, which
// is when the canonical price must be propagated.
func (o Outcome) Verified() bool { return o.Changed() && o.To == models.StatusVerified }

// ApplyVote increments the matching counter and evaluates transitions. Only
// pending reports move automatically: pending_review waits for an
// administrator, verified and rejected are final.
func ApplyVote(r *models.PriceReport, v Vote, now time.Time) (Outcome, error) {
	from := r.Status

	switch v {
	case VoteUp:
		r.Upvotes++
	case VoteDown:
		r.Downvotes++
	default:
		return Outcome{From: from, To: from}, ErrInvalidVote
	}

	if r.Status == models.StatusPending {
		switch {
		case v == VoteUp && r.Upvotes >= VerifyUpvotes && r.Downvotes == 0:
			markVerified(r, now)
		case v == VoteDown && r.Downvotes >= RejectDownvotes && r.Downvotes > r.Upvotes:
			r.Status = models.StatusRejected
		}
	}

	return Outcome{From: from, To: r.Status}, nil
}

// ApplyReview promotes or rejects a report that is still open.
func ApplyReview(r *models.PriceReport, d Decision, now time.Time) (Outcome, error) {
	from := r.Status
	if from.Terminal() {
		return Outcome{From: from, To: from}, ErrReportFinalized
	}

	switch d {
	case DecisionVerify:
		markVerified(r, now)
	case DecisionReject:
		r.Status = models.StatusRejected
	default:
		return Outcome{From: from, To: from}, ErrInvalidDecision
	}
	return Outcome{From: from, To: r.Status}, nil
}

func markVerified(r *models.PriceReport, now time.Time) {
	r.Status = models.StatusVerified
	at := now.UTC()
	r.VerifiedAt = &at
}
