package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Commission structure selectors. Rate tables are keyed by line of business
// and one of these; the numbers themselves are configuration, not invariants.
const (
	StructureIndependent = "independent"
	StructureCaptive     = "captive"
	StructureHybrid      = "hybrid"
)

// Configuration is the top-level input document: one or more named scenarios
// that share nothing and can be simulated independently.
type Configuration struct {
	Scenarios []SimulationConfig `yaml:"scenarios" json:"scenarios"`
}

// SimulationConfig fully describes a single scenario run. It is immutable for
// the duration of a run; the engine only reads it.
type SimulationConfig struct {
	Name          string          `yaml:"name" json:"name"`
	HorizonMonths int             `yaml:"horizon_months" json:"horizon_months"`
	StartingCash  decimal.Decimal `yaml:"starting_cash" json:"starting_cash"`

	Book       StartingBook       `yaml:"starting_book" json:"starting_book"`
	Channels   []MarketingChannel `yaml:"marketing_channels" json:"marketing_channels"`
	Staffing   StaffingPlan       `yaml:"staffing" json:"staffing"`
	Commission CommissionPlan     `yaml:"commission" json:"commission"`
	Programs   TechnologyPrograms `yaml:"technology_programs" json:"technology_programs"`

	// CrossSellFraction is the share of a month's marketing-acquired policies
	// written for existing customers rather than new ones. The source material
	// never pins this split down, so it is an explicit knob rather than an
	// inferred constant.
	CrossSellFraction decimal.Decimal `yaml:"cross_sell_fraction" json:"cross_sell_fraction"`
}

// MarketingChannel is one acquisition channel with its monthly allocation.
type MarketingChannel struct {
	Name           string          `yaml:"name" json:"name"`
	MonthlySpend   decimal.Decimal `yaml:"monthly_spend" json:"monthly_spend"`
	CostPerLead    decimal.Decimal `yaml:"cost_per_lead" json:"cost_per_lead"`
	ConversionRate decimal.Decimal `yaml:"conversion_rate" json:"conversion_rate"`
}

// ProductLine is one named slice of the starting book.
type ProductLine struct {
	Policies         int             `yaml:"policies" json:"policies"`
	AvgAnnualPremium decimal.Decimal `yaml:"avg_annual_premium" json:"avg_annual_premium"`
}

// StartingBook is the in-force book at month zero.
type StartingBook struct {
	Lines     map[string]ProductLine `yaml:"lines" json:"lines"`
	Customers int                    `yaml:"customers" json:"customers"`
}

// TotalPolicies sums policy counts across all lines.
func (b StartingBook) TotalPolicies() int {
	total := 0
	for _, line := range b.Lines {
		total += line.Policies
	}
	return total
}

// LineNames returns the book's line names in deterministic (sorted) order.
func (b StartingBook) LineNames() []string {
	names := make([]string, 0, len(b.Lines))
	for name := range b.Lines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StaffingPlan is the headcount composition and compensation for a scenario.
// Counts are fixed over the horizon.
type StaffingPlan struct {
	Producers int `yaml:"producers" json:"producers"`
	Service   int `yaml:"service" json:"service"`
	Admin     int `yaml:"admin" json:"admin"`

	ProducerAnnualComp decimal.Decimal `yaml:"producer_annual_comp" json:"producer_annual_comp"`
	ServiceAnnualComp  decimal.Decimal `yaml:"service_annual_comp" json:"service_annual_comp"`
	AdminAnnualComp    decimal.Decimal `yaml:"admin_annual_comp" json:"admin_annual_comp"`

	// BenefitsMultiplier grosses salary up to loaded cost, e.g. 1.3.
	BenefitsMultiplier decimal.Decimal `yaml:"benefits_multiplier" json:"benefits_multiplier"`

	// MaxLeadsPerProducer is the monthly lead volume one producer can work at
	// full productivity before conversion quality degrades.
	MaxLeadsPerProducer decimal.Decimal `yaml:"max_leads_per_producer" json:"max_leads_per_producer"`

	// OverloadPenalty scales down conversion on the lead volume beyond
	// capacity, in [0,1]. 1 means overflow leads convert at zero.
	OverloadPenalty decimal.Decimal `yaml:"overload_penalty" json:"overload_penalty"`
}

// Headcount is the total employee count across roles.
func (p StaffingPlan) Headcount() int {
	return p.Producers + p.Service + p.Admin
}

// RatePair holds the new-business and renewal commission rates for one
// (line, structure) cell of the rate table.
type RatePair struct {
	NewBusiness decimal.Decimal `yaml:"new" json:"new"`
	Renewal     decimal.Decimal `yaml:"renewal" json:"renewal"`
}

// CommissionRateTable maps line of business -> structure -> rates. Stamped
// with the benchmark year it was sourced from so tables can be swapped
// wholesale per run.
type CommissionRateTable struct {
	DataYear int                            `yaml:"data_year" json:"data_year"`
	Lines    map[string]map[string]RatePair `yaml:"lines" json:"lines"`
}

// CommissionPlan selects a structure and carries the rate table to use.
type CommissionPlan struct {
	Structure string              `yaml:"structure" json:"structure"`
	Rates     CommissionRateTable `yaml:"rates" json:"rates"`
}

// TechnologyPrograms toggles the modeled improvement programs. A nil program
// is disabled and contributes neither cost nor effect.
type TechnologyPrograms struct {
	ClaimsPrevention *ClaimsPreventionProgram `yaml:"claims_prevention,omitempty" json:"claims_prevention,omitempty"`
	RenewalReview    *RenewalReviewProgram    `yaml:"renewal_review,omitempty" json:"renewal_review,omitempty"`
	CrossSell        *CrossSellProgram        `yaml:"cross_sell,omitempty" json:"cross_sell,omitempty"`
}

// MonthlyCost spreads the enabled programs' annual costs over twelve months.
func (tp TechnologyPrograms) MonthlyCost() decimal.Decimal {
	annual := decimal.Zero
	if tp.ClaimsPrevention != nil {
		annual = annual.Add(tp.ClaimsPrevention.AnnualCost)
	}
	if tp.RenewalReview != nil {
		annual = annual.Add(tp.RenewalReview.AnnualCost)
	}
	if tp.CrossSell != nil {
		annual = annual.Add(tp.CrossSell.AnnualCost)
	}
	return annual.Div(decimal.NewFromInt(12))
}

// ClaimsPreventionProgram models claims-prevention automation. Benefit is
// prevented claim cost: PreventionRate x AvgClaimCost x ExpectedClaimsPerYear.
type ClaimsPreventionProgram struct {
	AnnualCost            decimal.Decimal `yaml:"annual_cost" json:"annual_cost"`
	PreventionRate        decimal.Decimal `yaml:"prevention_rate" json:"prevention_rate"`
	AvgClaimCost          decimal.Decimal `yaml:"avg_claim_cost" json:"avg_claim_cost"`
	ExpectedClaimsPerYear decimal.Decimal `yaml:"expected_claims_per_year" json:"expected_claims_per_year"`
}

// RenewalReviewProgram models proactive renewal review. Its benefit is a
// retention-rate improvement compounded over HorizonYears, not a direct
// dollar figure.
type RenewalReviewProgram struct {
	AnnualCost     decimal.Decimal `yaml:"annual_cost" json:"annual_cost"`
	RetentionDelta decimal.Decimal `yaml:"retention_delta" json:"retention_delta"`
	HorizonYears   int             `yaml:"horizon_years" json:"horizon_years"`
}

// CrossSellProgram models a structured cross-sell effort: incremental policy
// attachment on the eligible share of the existing customer base.
type CrossSellProgram struct {
	AnnualCost             decimal.Decimal `yaml:"annual_cost" json:"annual_cost"`
	IncrementalAttachRate  decimal.Decimal `yaml:"incremental_attach_rate" json:"incremental_attach_rate"`
	EligibleFraction       decimal.Decimal `yaml:"eligible_fraction" json:"eligible_fraction"`
	AvgCommissionPerPolicy decimal.Decimal `yaml:"avg_commission_per_policy" json:"avg_commission_per_policy"`
}
