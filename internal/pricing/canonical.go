package pricing

import (
	"time"

	"github.com/wirkaufenfair/fairprice/internal/models"
	"gorm.io/datatypes"
)

// ApplyCanonicalPrice overwrites a product-location's current price with a
// verified value and records it in the price history. Size fields are only
// copied when present.
func ApplyCanonicalPrice(loc *models.ProductLocation, price float64, sizeAmount *float64, sizeUnit *string, at time.Time) error {
	history, err := AppendHistory(loc.PriceHistory, at, price)
	if err != nil {
		return err
	}

	p := price
	loc.CurrentPrice = &p
	if loc.PriceCurrency == "" {
		loc.PriceCurrency = Currency
	}
	if sizeAmount != nil && *sizeAmount > 0 {
		amount := *sizeAmount
		loc.SizeAmount = &amount
	}
	if sizeUnit != nil && *sizeUnit != "" {
		unit := *sizeUnit
		loc.SizeUnit = &unit
	}
	loc.PriceHistory = datatypes.JSON(history)
	return nil
}
