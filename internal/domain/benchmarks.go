package domain

import (
	"github.com/shopspring/decimal"
)

// Canonical KPI names used in benchmark reports.
const (
	KPIRuleOf20           = "rule_of_20"
	KPIEBITDAMargin       = "ebitda_margin"
	KPILTVCACRatio        = "ltv_cac_ratio"
	KPIRevenuePerEmployee = "revenue_per_employee"
	KPIPoliciesPerCust    = "policies_per_customer"
	KPIRetentionRate      = "retention_rate"
	KPIStaffingRatio      = "staffing_ratio"
	KPIMarketingSpendPct  = "marketing_spend_pct"
	KPITechnologySpendPct = "technology_spend_pct"
)

// Tier is one (threshold, label) row of a benchmark table. A value matches
// the highest threshold at or below it; values below every threshold fall to
// the lowest tier.
type Tier struct {
	Threshold decimal.Decimal `yaml:"threshold" json:"threshold"`
	Label     string          `yaml:"label" json:"label"`
}

// BenchmarkMetadata identifies the vintage of a benchmark table set.
type BenchmarkMetadata struct {
	DataYear    int    `yaml:"data_year" json:"data_year"`
	LastUpdated string `yaml:"last_updated" json:"last_updated"`
	Description string `yaml:"description" json:"description"`
}

// BenchmarkTables is the complete, immutable set of industry tier tables a
// report is classified against. Tables are passed into the engine rather
// than read from package-level state so they can be swapped per run or per
// test and re-stamped each benchmark year.
type BenchmarkTables struct {
	Metadata BenchmarkMetadata `yaml:"metadata" json:"metadata"`

	RuleOf20            []Tier `yaml:"rule_of_20" json:"rule_of_20"`
	EBITDAMargin        []Tier `yaml:"ebitda_margin" json:"ebitda_margin"`
	LTVCAC              []Tier `yaml:"ltv_cac" json:"ltv_cac"`
	RevenuePerEmployee  []Tier `yaml:"revenue_per_employee" json:"revenue_per_employee"`
	PoliciesPerCustomer []Tier `yaml:"policies_per_customer" json:"policies_per_customer"`
	RetentionRate       []Tier `yaml:"retention_rate" json:"retention_rate"`
	StaffingRatio       []Tier `yaml:"staffing_ratio" json:"staffing_ratio"`
	MarketingSpendPct   []Tier `yaml:"marketing_spend_pct" json:"marketing_spend_pct"`
	TechnologySpendPct  []Tier `yaml:"technology_spend_pct" json:"technology_spend_pct"`
}

func tier(threshold float64, label string) Tier {
	return Tier{Threshold: decimal.NewFromFloat(threshold), Label: label}
}

// DefaultBenchmarkTables returns the compiled-in 2025 industry benchmark
// tables. Callers needing a different vintage load their own set and pass it
// to the engine.
func DefaultBenchmarkTables() *BenchmarkTables {
	return &BenchmarkTables{
		Metadata: BenchmarkMetadata{
			DataYear:    2025,
			LastUpdated: "2025-06-30",
			Description: "Independent agency performance benchmarks",
		},
		RuleOf20: []Tier{
			tier(0, "critical"),
			tier(15, "needs-improvement"),
			tier(20, "healthy"),
			tier(25, "top-performer"),
		},
		// Margin expressed as percent of revenue.
		EBITDAMargin: []Tier{
			tier(0, "below-average"),
			tier(15, "acceptable"),
			tier(25, "strong"),
			tier(35, "elite"),
		},
		LTVCAC: []Tier{
			tier(0, "critical"),
			tier(2, "acceptable"),
			tier(3, "good"),
			tier(4, "great"),
			tier(5, "possibly-under-invested"),
		},
		RevenuePerEmployee: []Tier{
			tier(0, "below-target"),
			tier(150000, "acceptable"),
			tier(200000, "good"),
			tier(300000, "excellent"),
		},
		PoliciesPerCustomer: []Tier{
			tier(0, "monoline"),
			tier(1.2, "developing"),
			tier(1.5, "bundled"),
			tier(1.8, "deeply-bundled"),
		},
		RetentionRate: []Tier{
			tier(0, "at-risk"),
			tier(0.80, "below-average"),
			tier(0.85, "average"),
			tier(0.90, "good"),
			tier(0.95, "best-in-class"),
		},
		// Service staff per producer.
		StaffingRatio: []Tier{
			tier(0, "understaffed"),
			tier(1.0, "stretched"),
			tier(2.0, "adequate"),
			tier(2.8, "optimal"),
		},
		// Spend as percent of revenue. Labels describe posture, not rank.
		MarketingSpendPct: []Tier{
			tier(0, "lean"),
			tier(5, "typical"),
			tier(10, "aggressive"),
			tier(15, "outsized"),
		},
		TechnologySpendPct: []Tier{
			tier(0, "under-invested"),
			tier(2, "typical"),
			tier(5, "leading"),
			tier(10, "aggressive"),
		},
	}
}

// DefaultCommissionRateTable returns 2025 benchmark commission rates by line
// and structure. Independent rates cluster 12-20% with new and renewal close
// together; captive rates run high on new business and near 7% on renewal.
func DefaultCommissionRateTable() CommissionRateTable {
	pair := func(newRate, renewal float64) RatePair {
		return RatePair{
			NewBusiness: decimal.NewFromFloat(newRate),
			Renewal:     decimal.NewFromFloat(renewal),
		}
	}
	return CommissionRateTable{
		DataYear: 2025,
		Lines: map[string]map[string]RatePair{
			"personal_auto": {
				StructureIndependent: pair(0.15, 0.12),
				StructureCaptive:     pair(0.25, 0.07),
				StructureHybrid:      pair(0.18, 0.10),
			},
			"homeowners": {
				StructureIndependent: pair(0.18, 0.15),
				StructureCaptive:     pair(0.30, 0.07),
				StructureHybrid:      pair(0.22, 0.12),
			},
			"commercial": {
				StructureIndependent: pair(0.20, 0.16),
				StructureCaptive:     pair(0.35, 0.08),
				StructureHybrid:      pair(0.25, 0.13),
			},
			"life": {
				StructureIndependent: pair(0.40, 0.05),
				StructureCaptive:     pair(0.40, 0.05),
				StructureHybrid:      pair(0.40, 0.05),
			},
		},
	}
}
