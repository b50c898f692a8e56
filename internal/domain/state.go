package domain

import (
	"github.com/shopspring/decimal"
)

// Condition names a degenerate input detected during a run. Conditions are
// recorded next to the month or KPI they affect; they never abort the run.
type Condition string

const (
	// ConditionNoAcquisition: zero policies acquired, so blended CAC is
	// undefined for the month.
	ConditionNoAcquisition Condition = "no_acquisition"
	// ConditionZeroCustomers: policies-per-customer is undefined.
	ConditionZeroCustomers Condition = "zero_customers"
	// ConditionDegenerateRetention: retention at or above 1 makes LTV
	// undefined (division by zero).
	ConditionDegenerateRetention Condition = "degenerate_retention"
)

// MonthlyState is the complete simulated state for one month. Instances are
// immutable once produced; month t+1 is derived from the completed state for
// month t and the static configuration, never by mutation.
type MonthlyState struct {
	Month int `json:"month"`

	// Book evolution. Counts are decimals because acquisition and churn are
	// fractional flows; both are clamped at zero.
	Leads               decimal.Decimal `json:"leads"`
	NewPolicies         decimal.Decimal `json:"new_policies"`
	CrossSellPolicies   decimal.Decimal `json:"cross_sell_policies"`
	ChurnedPolicies     decimal.Decimal `json:"churned_policies"`
	ActivePolicies      decimal.Decimal `json:"active_policies"`
	ActiveCustomers     decimal.Decimal `json:"active_customers"`
	PoliciesPerCustomer decimal.Decimal `json:"policies_per_customer"`

	// AnnualRetention is the modeled annual retention rate applied this
	// month, derived from the previous month's policies-per-customer.
	AnnualRetention decimal.Decimal `json:"annual_retention"`

	// AcquisitionCost is the blended CAC for the month; meaningless when
	// ConditionNoAcquisition is recorded.
	AcquisitionCost decimal.Decimal `json:"acquisition_cost"`
	CapacityLimited bool            `json:"capacity_limited"`

	// Revenue breakdown.
	NewCommission     decimal.Decimal `json:"new_commission"`
	RenewalCommission decimal.Decimal `json:"renewal_commission"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`

	// Expense breakdown.
	Payroll       decimal.Decimal `json:"payroll"`
	Marketing     decimal.Decimal `json:"marketing"`
	Technology    decimal.Decimal `json:"technology"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`

	NetCashFlow decimal.Decimal `json:"net_cash_flow"`
	CashBalance decimal.Decimal `json:"cash_balance"`

	Conditions []Condition `json:"conditions,omitempty"`
	Warnings   []string    `json:"warnings,omitempty"`
}

// HasCondition reports whether the named condition was recorded this month.
func (ms *MonthlyState) HasCondition(c Condition) bool {
	for _, have := range ms.Conditions {
		if have == c {
			return true
		}
	}
	return false
}

// ProgramEvaluation is the ROI assessment of one technology program.
type ProgramEvaluation struct {
	Name          string          `json:"name"`
	AnnualCost    decimal.Decimal `json:"annual_cost"`
	AnnualBenefit decimal.Decimal `json:"annual_benefit"`
	ROIPercent    decimal.Decimal `json:"roi_percent"`
	PaybackMonths decimal.Decimal `json:"payback_months"`
	// PaybackValid is false when annual benefit is non-positive and the
	// program never pays back.
	PaybackValid bool `json:"payback_valid"`
}

// ScenarioResult is the ordered month series for one scenario plus
// convenience aggregates. Built incrementally by the engine, finalized at
// loop end, then owned by the caller.
type ScenarioResult struct {
	Name   string         `json:"name"`
	Months []MonthlyState `json:"months"`

	FinalPolicies      decimal.Decimal `json:"final_policies"`
	FinalCustomers     decimal.Decimal `json:"final_customers"`
	CumulativeRevenue  decimal.Decimal `json:"cumulative_revenue"`
	CumulativeExpenses decimal.Decimal `json:"cumulative_expenses"`
	CumulativeProfit   decimal.Decimal `json:"cumulative_profit"`

	Programs []ProgramEvaluation `json:"programs,omitempty"`
}

// FinalMonth returns the terminal state, or nil for an empty series.
func (sr *ScenarioResult) FinalMonth() *MonthlyState {
	if len(sr.Months) == 0 {
		return nil
	}
	return &sr.Months[len(sr.Months)-1]
}

// KPIResult is one classified entry of a benchmark report. When a KPI could
// not be computed, Valid is false and Condition names why; the entry is still
// present rather than silently omitted.
type KPIResult struct {
	Name              string           `json:"name"`
	Value             decimal.Decimal  `json:"value"`
	Valid             bool             `json:"valid"`
	Condition         Condition        `json:"condition,omitempty"`
	Tier              string           `json:"tier,omitempty"`
	NextTierThreshold *decimal.Decimal `json:"next_tier_threshold,omitempty"`
}

// BenchmarkReport classifies the run's KPIs against a versioned benchmark
// table set. KPIs keeps a stable order for deterministic output.
type BenchmarkReport struct {
	Scenario string      `json:"scenario"`
	DataYear int         `json:"data_year"`
	KPIs     []KPIResult `json:"kpis"`
}

// KPI looks up an entry by name; nil when absent.
func (br *BenchmarkReport) KPI(name string) *KPIResult {
	for i := range br.KPIs {
		if br.KPIs[i].Name == name {
			return &br.KPIs[i]
		}
	}
	return nil
}

// ScenarioOutcome pairs a scenario's month series with its benchmark report.
type ScenarioOutcome struct {
	Result *ScenarioResult  `json:"result"`
	Report *BenchmarkReport `json:"report"`
}

// ScenarioComparison is the cross-scenario view for a multi-scenario run.
type ScenarioComparison struct {
	Outcomes []ScenarioOutcome `json:"outcomes"`

	BestByCumulativeProfit string `json:"best_by_cumulative_profit,omitempty"`
	BestByFinalPolicies    string `json:"best_by_final_policies,omitempty"`
}
