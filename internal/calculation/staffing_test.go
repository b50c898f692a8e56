package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/agencysim/growth-simulator/internal/domain"
)

func TestProductivityMultiplier(t *testing.T) {
	tests := []struct {
		name      string
		service   int
		producers int
		expected  decimal.Decimal
	}{
		{
			name:      "no service support hits the floor",
			service:   0,
			producers: 3,
			expected:  decimal.NewFromFloat(0.25),
		},
		{
			name:      "optimal ratio caps at one",
			service:   28,
			producers: 10,
			expected:  decimal.NewFromInt(1),
		},
		{
			name:      "above optimal still capped",
			service:   50,
			producers: 10,
			expected:  decimal.NewFromInt(1),
		},
		{
			name:      "half the optimal ratio scales linearly",
			service:   14,
			producers: 10,
			expected:  decimal.NewFromFloat(0.5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProductivityMultiplier(tt.service, tt.producers)
			assert.True(t, got.Equal(tt.expected), "got %s want %s", got, tt.expected)
		})
	}
}

func TestProductivityMultiplierMonotonic(t *testing.T) {
	prev := decimal.Zero
	for service := 0; service <= 30; service++ {
		got := ProductivityMultiplier(service, 10)
		if got.LessThan(prev) {
			t.Fatalf("multiplier decreased at service=%d: %s < %s", service, got, prev)
		}
		prev = got
	}
}

func TestLeadCapacityScalesWithProductivity(t *testing.T) {
	plan := domain.StaffingPlan{
		Producers:           2,
		Service:             0,
		MaxLeadsPerProducer: decimal.NewFromInt(100),
	}
	// Floor multiplier 0.25: 2 producers x 100 leads x 0.25.
	got := LeadCapacity(plan)
	if !got.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("LeadCapacity = %s, want 50", got)
	}

	plan.Service = 6 // ratio 3.0 >= 2.8, full productivity
	got = LeadCapacity(plan)
	if !got.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("LeadCapacity = %s, want 200", got)
	}
}

func TestMonthlyPayroll(t *testing.T) {
	plan := domain.StaffingPlan{
		Producers:          2,
		Service:            4,
		Admin:              1,
		ProducerAnnualComp: decimal.NewFromInt(80000),
		ServiceAnnualComp:  decimal.NewFromInt(50000),
		AdminAnnualComp:    decimal.NewFromInt(40000),
		BenefitsMultiplier: decimal.NewFromFloat(1.3),
	}
	// (160000 + 200000 + 40000) x 1.3 / 12 = 43333.33...
	expected := decimal.NewFromInt(400000).Mul(decimal.NewFromFloat(1.3)).Div(decimal.NewFromInt(12))
	got := MonthlyPayroll(plan)
	assert.True(t, got.Equal(expected), "got %s want %s", got, expected)
}

func TestRevenuePerEmployee(t *testing.T) {
	got, ok := RevenuePerEmployee(decimal.NewFromInt(900000), 6)
	if !ok || !got.Equal(decimal.NewFromInt(150000)) {
		t.Fatalf("RevenuePerEmployee = %s ok=%v, want 150000", got, ok)
	}
	if _, ok := RevenuePerEmployee(decimal.NewFromInt(900000), 0); ok {
		t.Fatalf("expected empty roster to report false")
	}
}

func TestCheckCompensationWithinTargets(t *testing.T) {
	check := CheckCompensation(
		decimal.NewFromInt(30),  // producer comp
		decimal.NewFromInt(60),  // total payroll
		decimal.NewFromInt(100), // revenue
	)
	assert.Empty(t, check.Warnings)
	assert.True(t, check.ProducerCompRatio.Equal(decimal.NewFromFloat(0.3)))
	assert.True(t, check.TotalPayrollRatio.Equal(decimal.NewFromFloat(0.6)))
}

func TestCheckCompensationViolationsAreWarnings(t *testing.T) {
	check := CheckCompensation(
		decimal.NewFromInt(40),
		decimal.NewFromInt(70),
		decimal.NewFromInt(100),
	)
	assert.Len(t, check.Warnings, 2)
}

func TestCheckCompensationZeroRevenue(t *testing.T) {
	check := CheckCompensation(decimal.NewFromInt(40), decimal.NewFromInt(70), decimal.Zero)
	assert.Len(t, check.Warnings, 1)
	assert.True(t, check.ProducerCompRatio.IsZero())
}
