package calculation

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/agencysim/growth-simulator/internal/domain"
)

// TierClassifier classifies a continuous value against an ordered
// (threshold, label) table. One classifier instance is reused for every
// benchmark metric so tie-break semantics stay consistent everywhere:
// thresholds are inclusive lower bounds, and a value below every threshold
// resolves to the lowest tier rather than an error.
type TierClassifier struct {
	// descending by threshold
	tiers []domain.Tier
}

// NewTierClassifier builds a classifier from a tier table in any order.
// The input slice is copied; an empty table yields a classifier whose
// Classify returns the zero Tier.
func NewTierClassifier(tiers []domain.Tier) *TierClassifier {
	sorted := make([]domain.Tier, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Threshold.GreaterThan(sorted[j].Threshold)
	})
	return &TierClassifier{tiers: sorted}
}

// Classify returns the tier with the highest threshold at or below v.
// When v is below every threshold the lowest tier is returned.
func (tc *TierClassifier) Classify(v decimal.Decimal) domain.Tier {
	if len(tc.tiers) == 0 {
		return domain.Tier{}
	}
	for _, t := range tc.tiers {
		if t.Threshold.LessThanOrEqual(v) {
			return t
		}
	}
	return tc.tiers[len(tc.tiers)-1]
}

// NextTier returns the tier with the smallest threshold strictly greater
// than v, or nil when v already sits at or above the top tier.
func (tc *TierClassifier) NextTier(v decimal.Decimal) *domain.Tier {
	var next *domain.Tier
	for i := range tc.tiers {
		if tc.tiers[i].Threshold.GreaterThan(v) {
			next = &tc.tiers[i]
		}
	}
	if next == nil {
		return nil
	}
	out := *next
	return &out
}
