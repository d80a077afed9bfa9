package pricing

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultEthicsScore applies to brands missing from the ethics table.
const DefaultEthicsScore = 0.6

var (
	ecoWeight     = decimal.RequireFromString("0.5")
	ethicsWeight  = decimal.RequireFromString("0.3")
	nutriWeight   = decimal.RequireFromString("0.1")
	presenceBonus = decimal.RequireFromString("0.08")
)

var gradeScores = map[string]decimal.Decimal{
	"A": decimal.RequireFromString("1.0"),
	"B": decimal.RequireFromString("0.8"),
	"C": decimal.RequireFromString("0.6"),
	"D": decimal.RequireFromString("0.4"),
	"E": decimal.RequireFromString("0.2"),
}

// FairnessComponents is the breakdown behind a fairness score.
type FairnessComponents struct {
	EcoScore      float64 `json:"eco_score"`
	NutriScore    float64 `json:"nutri_score"`
	EthicsScore   float64 `json:"ethics_score"`
	PresenceBonus float64 `json:"presence_bonus"`
	Total         float64 `json:"total"`
}

// GradeScore maps an A-E grade to [0.2, 1.0]. Anything else scores 0.
func GradeScore(grade string) float64 {
	return gradeValue(grade).InexactFloat64()
}

func gradeValue(grade string) decimal.Decimal {
	if v, ok := gradeScores[strings.ToUpper(strings.TrimSpace(grade))]; ok {
		return v
	}
	return decimal.Zero
}

// FairnessScore blends ecological grade, nutritional grade and ethics score
// into one ranking number rounded to 4 decimals.
func FairnessScore(ecoGrade, nutriGrade string, ethicsScore float64) float64 {
	return Fairness(ecoGrade, nutriGrade, ethicsScore).Total
}

// Fairness returns the full breakdown. Any non-empty ecological grade earns the
// presence bonus, even one that does not map to A-E.
func Fairness(ecoGrade, nutriGrade string, ethicsScore float64) FairnessComponents {
	eco := gradeValue(ecoGrade)
	nutri := gradeValue(nutriGrade)
	ethics := decimal.NewFromFloat(clampEthics(ethicsScore))

	bonus := decimal.Zero
	if strings.TrimSpace(ecoGrade) != "" {
		bonus = presenceBonus
	}

	total := eco.Mul(ecoWeight).
		Add(ethics.Mul(ethicsWeight)).
		Add(nutri.Mul(nutriWeight)).
		Add(bonus).
		Round(4)

	return FairnessComponents{
		EcoScore:      eco.InexactFloat64(),
		NutriScore:    nutri.InexactFloat64(),
		EthicsScore:   ethics.InexactFloat64(),
		PresenceBonus: bonus.InexactFloat64(),
		Total:         total.InexactFloat64(),
	}
}

func clampEthics(v float64) float64 {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return DefaultEthicsScore
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
