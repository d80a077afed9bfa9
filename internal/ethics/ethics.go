// Package ethics holds the static brand ethics table consulted by the
// fairness score. The table is read-only at runtime.
package ethics

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/wirkaufenfair/fairprice/internal/pricing"
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityMajor    Severity = "major"
	SeverityMinor    Severity = "minor"
)

type Issue struct {
	Category    string   `json:"category"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
	Source      string   `json:"source"`
	Year        int      `json:"year"`
}

// Profile is the ethics record for one brand or company. Score is in [0,1].
type Profile struct {
	Key           string   `json:"key"`
	Name          string   `json:"name"`
	ParentCompany string   `json:"parent_company,omitempty"`
	Aliases       []string `json:"-"`
	Issues        []Issue  `json:"issues"`
	Score         float64  `json:"ethics_score"`
}

// Table is an immutable brand lookup keyed by case-folded name.
type Table struct {
	ordered []*Profile
	byKey   map[string]*Profile
}

// NewTable indexes profiles by key and aliases. Earlier profiles win when a
// product name mentions several brands.
func NewTable(profiles []Profile) *Table {
	t := &Table{byKey: make(map[string]*Profile, len(profiles))}
	for i := range profiles {
		p := &profiles[i]
		t.ordered = append(t.ordered, p)
		for _, k := range append([]string{p.Key, p.Name}, p.Aliases...) {
			if k = fold(k); k != "" {
				t.byKey[k] = p
			}
		}
	}
	return t
}

// Default returns the built-in table.
func Default() *Table {
	return defaultTable
}

// Lookup finds a profile by brand or company name, ignoring case.
func (t *Table) Lookup(brand string) (*Profile, bool) {
	p, ok := t.byKey[fold(brand)]
	return p, ok
}

// Score returns the brand's ethics score, or the neutral default if unknown.
func (t *Table) Score(brand string) float64 {
	if p, ok := t.Lookup(brand); ok {
		return p.Score
	}
	return pricing.DefaultEthicsScore
}

// BrandIn returns the first known brand mentioned inside a product name.
func (t *Table) BrandIn(productName string) (string, bool) {
	name := fold(productName)
	if name == "" {
		return "", false
	}
	for _, p := range t.ordered {
		if strings.Contains(name, fold(p.Key)) {
			return p.Key, true
		}
	}
	return "", false
}

// Resolve picks the brand used for scoring: the explicit brand when given,
// otherwise one found in the product name.
func (t *Table) Resolve(brand, productName string) string {
	if b := strings.TrimSpace(brand); b != "" {
		return b
	}
	if b, ok := t.BrandIn(productName); ok {
		return b
	}
	return ""
}

// IssueSummaries renders one line per issue, e.g. "🔴 Labor: ...".
func (t *Table) IssueSummaries(brand string) []string {
	p, ok := t.Lookup(brand)
	if !ok || len(p.Issues) == 0 {
		return []string{}
	}
	out := make([]string, 0, len(p.Issues))
	for _, issue := range p.Issues {
		out = append(out, severityIcon(issue.Severity)+" "+cases.Title(language.Und).String(issue.Category)+": "+issue.Description)
	}
	return out
}

func severityIcon(s Severity) string {
	switch s {
	case SeverityCritical:
		return "🔴"
	case SeverityMajor:
		return "🟠"
	case SeverityMinor:
		return "🟡"
	}
	return "⚪"
}

// fold is not cached: a cases.Caser must not be shared between goroutines.
func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
