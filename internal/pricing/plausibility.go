package pricing

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
	"github.com/wirkaufenfair/fairprice/internal/models"
)

const (
	MinPrice = 0.10
	MaxPrice = 500.0

	// PeerWindow is how many recent non-rejected reports the anomaly check averages.
	PeerWindow = 5
)

var (
	anomalyThreshold = decimal.RequireFromString("0.5")

	baseConfidence   = decimal.RequireFromString("0.5")
	reviewConfidence = decimal.RequireFromString("0.25")
	photoConfidence  = decimal.RequireFromString("0.2")
)

var (
	ErrPriceNonPositive = errors.New("Price must be positive")
	ErrPriceTooLow      = errors.New("Preis zu niedrig (< 0.10 €)")
	ErrPriceTooHigh     = errors.New("Preis zu hoch (> 500 €)")
)

// CheckBounds rejects prices outside [MinPrice, MaxPrice].
func CheckBounds(price float64) error {
	switch {
	case math.IsNaN(price) || price <= 0:
		return ErrPriceNonPositive
	case price < MinPrice:
		return ErrPriceTooLow
	case price > MaxPrice:
		return ErrPriceTooHigh
	}
	return nil
}

// InitialStatus classifies a new submission against recent peer prices for the
// same product+store. Peers are expected newest first; only the first
// PeerWindow are used. A deviation of more than 50% from their mean needs review.
func InitialStatus(price float64, peers []float64) models.ReportStatus {
	if len(peers) > PeerWindow {
		peers = peers[:PeerWindow]
	}
	if len(peers) == 0 {
		return models.StatusPending
	}

	mean := Mean(peers)
	if !mean.IsPositive() {
		return models.StatusPending
	}
	deviation := decimal.NewFromFloat(price).Sub(mean).Abs().Div(mean)
	if deviation.GreaterThan(anomalyThreshold) {
		return models.StatusPendingReview
	}
	return models.StatusPending
}

// InitialConfidence is the trust score assigned at creation.
func InitialConfidence(status models.ReportStatus, hasPhoto bool) float64 {
	c := baseConfidence
	if status == models.StatusPendingReview {
		c = reviewConfidence
	}
	if hasPhoto {
		c = c.Add(photoConfidence)
	}
	if c.GreaterThan(decimal.NewFromInt(1)) {
		c = decimal.NewFromInt(1)
	}
	return c.InexactFloat64()
}

// Mean is the arithmetic mean of prices; zero for an empty slice.
func Mean(prices []float64) decimal.Decimal {
	if len(prices) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, p := range prices {
		sum = sum.Add(decimal.NewFromFloat(p))
	}
	return sum.Div(decimal.NewFromInt(int64(len(prices))))
}

// RoundPrice rounds to whole cents.
func RoundPrice(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
