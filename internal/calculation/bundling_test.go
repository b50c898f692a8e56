package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRetentionAtAnchors(t *testing.T) {
	tests := []struct {
		ppc      float64
		expected float64
	}{
		{1.0, 0.67},
		{1.5, 0.91},
		{1.8, 0.95},
	}
	for _, tt := range tests {
		got := RetentionForPPC(decimal.NewFromFloat(tt.ppc))
		assert.True(t, got.Equal(decimal.NewFromFloat(tt.expected)),
			"RetentionForPPC(%v) = %s, want %v", tt.ppc, got, tt.expected)
	}
}

// No extrapolation below the lowest anchor: flat at 0.67 for ppc <= 1.0.
func TestRetentionFlatBelowLowestAnchor(t *testing.T) {
	for _, ppc := range []float64{0, 0.5, 0.99, 1.0} {
		got := RetentionForPPC(decimal.NewFromFloat(ppc))
		if !got.Equal(decimal.NewFromFloat(0.67)) {
			t.Fatalf("RetentionForPPC(%v) = %s, want 0.67", ppc, got)
		}
	}
}

// Hard cap at 0.95 for ppc above 1.8.
func TestRetentionHardCapAboveTopAnchor(t *testing.T) {
	for _, ppc := range []float64{1.81, 2.5, 10} {
		got := RetentionForPPC(decimal.NewFromFloat(ppc))
		if !got.Equal(decimal.NewFromFloat(0.95)) {
			t.Fatalf("RetentionForPPC(%v) = %s, want 0.95", ppc, got)
		}
	}
}

func TestRetentionInterpolatesBetweenAnchors(t *testing.T) {
	// Midpoint of (1.0, 0.67) and (1.5, 0.91).
	got := RetentionForPPC(decimal.NewFromFloat(1.25))
	assert.True(t, got.Equal(decimal.NewFromFloat(0.79)), "got %s", got)
}

func TestRetentionMonotonic(t *testing.T) {
	prev := decimal.Zero
	for ppc := decimal.NewFromFloat(0.5); ppc.LessThan(decimal.NewFromFloat(2.5)); ppc = ppc.Add(decimal.NewFromFloat(0.05)) {
		got := RetentionForPPC(ppc)
		if got.LessThan(prev) {
			t.Fatalf("retention decreased at ppc=%s: %s < %s", ppc, got, prev)
		}
		prev = got
	}
}

func TestLTVMultiplier(t *testing.T) {
	tests := []struct {
		ppc      float64
		expected float64
	}{
		{0.8, 1.0},
		{1.0, 1.0},
		{1.5, 2.5},
		{1.8, 3.5},
		{2.4, 3.5},
	}
	for _, tt := range tests {
		got := LTVMultiplier(decimal.NewFromFloat(tt.ppc))
		assert.True(t, got.Equal(decimal.NewFromFloat(tt.expected)),
			"LTVMultiplier(%v) = %s, want %v", tt.ppc, got, tt.expected)
	}
}

func TestMonthlyChurnRate(t *testing.T) {
	got := MonthlyChurnRate(decimal.NewFromFloat(0.88))
	expected := decimal.NewFromFloat(0.12).Div(decimal.NewFromInt(12))
	if !got.Equal(expected) {
		t.Fatalf("MonthlyChurnRate(0.88) = %s, want %s", got, expected)
	}
}

func TestRetentionProfitMultiplierZeroDelta(t *testing.T) {
	got := RetentionProfitMultiplier(decimal.Zero, 5)
	if !got.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("multiplier with zero delta = %s, want 1", got)
	}
}

func TestRetentionProfitMultiplierCompounds(t *testing.T) {
	delta := decimal.NewFromFloat(0.05)
	// Two years: (1.05 + 1.1025) / 2 = 1.07625
	got := RetentionProfitMultiplier(delta, 2)
	expected := decimal.NewFromFloat(1.07625)
	assert.True(t, got.Equal(expected), "got %s want %s", got, expected)

	// Longer horizons compound further.
	longer := RetentionProfitMultiplier(delta, 10)
	if !longer.GreaterThan(got) {
		t.Fatalf("expected 10-year multiplier %s > 2-year %s", longer, got)
	}
}

func TestRetentionProfitMultiplierEmptyHorizon(t *testing.T) {
	got := RetentionProfitMultiplier(decimal.NewFromFloat(0.05), 0)
	if !got.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("multiplier with empty horizon = %s, want 1", got)
	}
}
