package pricing

import (
	"testing"

	"github.com/wirkaufenfair/fairprice/internal/models"
)

func TestApplyCanonicalPrice(t *testing.T) {
	unit := "g"
	loc := &models.ProductLocation{
		CurrentPrice: floatPtr(1.29),
		SizeAmount:   floatPtr(500),
		SizeUnit:     &unit,
	}

	if err := ApplyCanonicalPrice(loc, 1.49, nil, nil, testNow); err != nil {
		t.Fatalf("ApplyCanonicalPrice: %v", err)
	}
	if *loc.CurrentPrice != 1.49 {
		t.Errorf("price = %v, want 1.49", *loc.CurrentPrice)
	}
	if *loc.SizeAmount != 500 || *loc.SizeUnit != "g" {
		t.Errorf("absent size fields must not overwrite: %v %v", *loc.SizeAmount, *loc.SizeUnit)
	}
	if loc.PriceCurrency != "EUR" {
		t.Errorf("currency = %q", loc.PriceCurrency)
	}

	newUnit := "ml"
	if err := ApplyCanonicalPrice(loc, 0.99, floatPtr(750), &newUnit, testNow); err != nil {
		t.Fatalf("ApplyCanonicalPrice: %v", err)
	}
	if *loc.SizeAmount != 750 || *loc.SizeUnit != "ml" {
		t.Errorf("size = %v %v, want 750 ml", *loc.SizeAmount, *loc.SizeUnit)
	}

	entries := ParseHistory(loc.PriceHistory)
	if len(entries) != 2 {
		t.Fatalf("history has %d entries, want 2", len(entries))
	}
	if res, ok := FromCanonical(loc, testNow); !ok || res.Outdated != nil {
		t.Errorf("freshly propagated price should not be outdated: %+v", res)
	}
}
