package calculation

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/agencysim/growth-simulator/internal/domain"
)

func tierTable() []domain.Tier {
	return []domain.Tier{
		{Threshold: decimal.Zero, Label: "critical"},
		{Threshold: decimal.NewFromInt(2), Label: "acceptable"},
		{Threshold: decimal.NewFromInt(3), Label: "good"},
		{Threshold: decimal.NewFromInt(4), Label: "great"},
	}
}

func TestClassifyPicksHighestThresholdAtOrBelow(t *testing.T) {
	tc := NewTierClassifier(tierTable())

	cases := []struct {
		value float64
		want  string
	}{
		{0, "critical"},
		{1.99, "critical"},
		{2.5, "acceptable"},
		{3.5, "good"},
		{100, "great"},
	}
	for _, c := range cases {
		got := tc.Classify(decimal.NewFromFloat(c.value))
		if got.Label != c.want {
			t.Errorf("Classify(%v) = %q, want %q", c.value, got.Label, c.want)
		}
	}
}

// Equality matches the tier whose threshold equals the value (inclusive
// lower bound).
func TestClassifyTieBreakInclusive(t *testing.T) {
	tc := NewTierClassifier(tierTable())
	if got := tc.Classify(decimal.NewFromInt(3)); got.Label != "good" {
		t.Fatalf("Classify(3) = %q, want good", got.Label)
	}
}

// A value below every threshold resolves to the lowest tier, never an error.
func TestClassifyBelowAllThresholds(t *testing.T) {
	tc := NewTierClassifier(tierTable())
	if got := tc.Classify(decimal.NewFromInt(-10)); got.Label != "critical" {
		t.Fatalf("Classify(-10) = %q, want critical", got.Label)
	}
}

// The classifier accepts the table in any storage order.
func TestClassifyDescendingInput(t *testing.T) {
	tiers := tierTable()
	for i, j := 0, len(tiers)-1; i < j; i, j = i+1, j-1 {
		tiers[i], tiers[j] = tiers[j], tiers[i]
	}
	tc := NewTierClassifier(tiers)
	if got := tc.Classify(decimal.NewFromFloat(2.5)); got.Label != "acceptable" {
		t.Fatalf("Classify(2.5) = %q, want acceptable", got.Label)
	}
}

func TestNextTier(t *testing.T) {
	tc := NewTierClassifier(tierTable())

	next := tc.NextTier(decimal.NewFromFloat(2.5))
	if next == nil || next.Label != "good" {
		t.Fatalf("NextTier(2.5) = %v, want good", next)
	}
	// Equality is not strictly greater: next tier from exactly 3 is 4.
	next = tc.NextTier(decimal.NewFromInt(3))
	if next == nil || next.Label != "great" {
		t.Fatalf("NextTier(3) = %v, want great", next)
	}
	if got := tc.NextTier(decimal.NewFromInt(4)); got != nil {
		t.Fatalf("NextTier(4) = %v, want nil at top tier", got)
	}
}

func TestClassifyEmptyTable(t *testing.T) {
	tc := NewTierClassifier(nil)
	if got := tc.Classify(decimal.NewFromInt(5)); got.Label != "" {
		t.Fatalf("expected zero tier from empty table, got %q", got.Label)
	}
	if got := tc.NextTier(decimal.NewFromInt(5)); got != nil {
		t.Fatalf("expected nil next tier from empty table, got %v", got)
	}
}
