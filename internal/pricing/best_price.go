package pricing

import (
	"fmt"
	"strings"
	"time"

	"github.com/wirkaufenfair/fairprice/internal/models"
)

const (
	Currency = "EUR"

	// ValidityWindow bounds community and chain lookups, and marks canonical
	// prices as outdated once their latest history entry is older.
	ValidityWindow = 30 * 24 * time.Hour
	// CommunityOutdatedDays is the age after which a community price is flagged.
	CommunityOutdatedDays = 14
	// ChainSampleSize is how many verified chain reports are averaged.
	ChainSampleSize = 5
	// ChainLocationsSample caps the store names attached to a chain average.
	ChainLocationsSample = 3
)

// Source identifies where a best price came from.
type Source string

const (
	SourceDatabase     Source = "database"
	SourceCommunity    Source = "community"
	SourceChainAverage Source = "chain_average"
	SourceNone         Source = "none"
)

// BestPrice is the resolver's answer for one product+store.
type BestPrice struct {
	Source          Source   `json:"source"`
	Price           *float64 `json:"price"`
	Currency        string   `json:"currency,omitempty"`
	SizeAmount      *float64 `json:"size_amount,omitempty"`
	SizeUnit        *string  `json:"size_unit,omitempty"`
	Verified        bool     `json:"verified"`
	Outdated        *bool    `json:"outdated,omitempty"`
	AgeDays         *int     `json:"age_days,omitempty"`
	Estimated       bool     `json:"estimated,omitempty"`
	Upvotes         *int     `json:"upvotes,omitempty"`
	Downvotes       *int     `json:"downvotes,omitempty"`
	Message         string   `json:"message,omitempty"`
	LocationsSample []string `json:"locations_sample,omitempty"`
}

// ChainOf derives a chain from a store name: its first whitespace-delimited
// token ("REWE Drochtersen" -> "REWE").
func ChainOf(storeName string) string {
	fields := strings.Fields(storeName)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// AgeDays is the number of whole days between t and now.
func AgeDays(now, t time.Time) int {
	if now.Before(t) {
		return 0
	}
	return int(now.Sub(t) / (24 * time.Hour))
}

// FromCanonical builds a result from a product-location record. It reports
// false when the record carries no price.
func FromCanonical(loc *models.ProductLocation, now time.Time) (BestPrice, bool) {
	if loc == nil || loc.CurrentPrice == nil || *loc.CurrentPrice <= 0 {
		return BestPrice{}, false
	}

	currency := loc.PriceCurrency
	if currency == "" {
		currency = Currency
	}
	price := *loc.CurrentPrice
	result := BestPrice{
		Source:     SourceDatabase,
		Price:      &price,
		Currency:   currency,
		SizeAmount: loc.SizeAmount,
		SizeUnit:   loc.SizeUnit,
		Verified:   true,
	}

	if latest, ok := LatestEntry(ParseHistory(loc.PriceHistory)); ok && latest.Date.Before(now.Add(-ValidityWindow)) {
		outdated := true
		age := AgeDays(now, latest.Date)
		result.Outdated = &outdated
		result.AgeDays = &age
		result.Message = "Preis könnte veraltet sein (>30 Tage)"
	}
	return result, true
}

// FromCommunity builds a result from the winning community report.
func FromCommunity(r *models.PriceReport, now time.Time) BestPrice {
	price := r.ReportedPrice
	age := AgeDays(now, r.CreatedAt)
	outdated := age > CommunityOutdatedDays
	upvotes, downvotes := r.Upvotes, r.Downvotes
	return BestPrice{
		Source:     SourceCommunity,
		Price:      &price,
		Currency:   Currency,
		SizeAmount: r.SizeAmount,
		SizeUnit:   r.SizeUnit,
		Verified:   r.Status == models.StatusVerified,
		Outdated:   &outdated,
		AgeDays:    &age,
		Upvotes:    &upvotes,
		Downvotes:  &downvotes,
	}
}

// FromChain averages verified reports from other stores of the same chain.
// Reports are expected newest first; at most ChainSampleSize are used.
func FromChain(chain string, reports []models.PriceReport) (BestPrice, bool) {
	if len(reports) == 0 {
		return BestPrice{}, false
	}
	if len(reports) > ChainSampleSize {
		reports = reports[:ChainSampleSize]
	}

	prices := make([]float64, len(reports))
	var locations []string
	seen := make(map[string]bool)
	for i, r := range reports {
		prices[i] = r.ReportedPrice
		if !seen[r.StoreName] {
			seen[r.StoreName] = true
			locations = append(locations, r.StoreName)
		}
	}
	if len(locations) > ChainLocationsSample {
		locations = locations[:ChainLocationsSample]
	}

	price := RoundPrice(Mean(prices))
	outdated := false
	return BestPrice{
		Source:          SourceChainAverage,
		Price:           &price,
		Currency:        Currency,
		Verified:        false,
		Estimated:       true,
		Outdated:        &outdated,
		Message:         fmt.Sprintf("≈ Durchschnitt von %d %s-Filialen", len(reports), chain),
		LocationsSample: locations,
	}, true
}

// NoPrice is returned when no source has data.
func NoPrice() BestPrice {
	return BestPrice{
		Source:  SourceNone,
		Message: "Kein Preis verfügbar",
	}
}
