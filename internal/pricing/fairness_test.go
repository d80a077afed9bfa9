package pricing

import (
	"math"
	"testing"
)

func TestFairnessScore(t *testing.T) {
	tests := []struct {
		name   string
		eco    string
		nutri  string
		ethics float64
		want   float64
	}{
		{name: "eco A nutri C default ethics", eco: "A", nutri: "C", ethics: 0.6, want: 0.82},
		{name: "no grades", eco: "", nutri: "", ethics: 0.6, want: 0.18},
		{name: "lowercase grades", eco: "e", nutri: "a", ethics: 0.2, want: 0.34},
		{name: "unmapped eco grade still earns presence bonus", eco: "unknown", nutri: "", ethics: 0.6, want: 0.26},
		{name: "best case", eco: "A", nutri: "A", ethics: 1, want: 0.98},
		{name: "ethics above range is clamped", eco: "", nutri: "", ethics: 3, want: 0.3},
		{name: "NaN ethics falls back to default", eco: "", nutri: "", ethics: math.NaN(), want: 0.18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FairnessScore(tt.eco, tt.nutri, tt.ethics); got != tt.want {
				t.Errorf("FairnessScore(%q, %q, %v) = %v, want %v", tt.eco, tt.nutri, tt.ethics, got, tt.want)
			}
		})
	}
}

func TestFairnessComponents(t *testing.T) {
	c := Fairness("B", "D", 0.7)
	if c.EcoScore != 0.8 || c.NutriScore != 0.4 || c.EthicsScore != 0.7 {
		t.Fatalf("unexpected components: %+v", c)
	}
	if c.PresenceBonus != 0.08 {
		t.Errorf("PresenceBonus = %v, want 0.08", c.PresenceBonus)
	}
	// 0.4 + 0.21 + 0.04 + 0.08
	if c.Total != 0.73 {
		t.Errorf("Total = %v, want 0.73", c.Total)
	}
}

func TestGradeScore(t *testing.T) {
	want := map[string]float64{"A": 1, "B": 0.8, "C": 0.6, "D": 0.4, "E": 0.2, " c ": 0.6, "F": 0, "": 0}
	for grade, score := range want {
		if got := GradeScore(grade); got != score {
			t.Errorf("GradeScore(%q) = %v, want %v", grade, got, score)
		}
	}
}
