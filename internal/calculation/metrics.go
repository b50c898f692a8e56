package calculation

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/agencysim/growth-simulator/internal/domain"
	agencydec "github.com/agencysim/growth-simulator/pkg/decimal"
)

// Sentinel errors for degenerate metric inputs. These are conditions to be
// reported, never silent NaNs and never reasons to abort a run.
var (
	ErrDegenerateRetention = errors.New("retention at or above 1 makes LTV undefined")
	ErrZeroCustomers       = errors.New("policies-per-customer undefined with zero customers")
	ErrNoAcquisition       = errors.New("CAC undefined with zero acquisitions")
)

// EBITDA is revenue less operating expenses.
func EBITDA(revenue, expenses decimal.Decimal) decimal.Decimal {
	return revenue.Sub(expenses)
}

// EBITDAMarginPercent is EBITDA over revenue, as a percentage. ok is false
// with zero revenue.
func EBITDAMarginPercent(revenue, expenses decimal.Decimal) (decimal.Decimal, bool) {
	margin, ok := agencydec.Ratio(EBITDA(revenue, expenses), revenue)
	if !ok {
		return decimal.Zero, false
	}
	return agencydec.Percent(margin), true
}

// LTV is projected lifetime commission revenue per customer net of
// acquisition cost: avgAnnualRevenue x retention / (1 - retention) - cac.
// Returns ErrDegenerateRetention when retention >= 1.
func LTV(avgAnnualRevenue, retention, cac decimal.Decimal) (decimal.Decimal, error) {
	if retention.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return decimal.Zero, ErrDegenerateRetention
	}
	survivorValue := avgAnnualRevenue.Mul(retention).Div(decimal.NewFromInt(1).Sub(retention))
	return survivorValue.Sub(cac), nil
}

// LTVCACRatio divides lifetime value by acquisition cost. Returns
// ErrNoAcquisition when cac is zero.
func LTVCACRatio(ltv, cac decimal.Decimal) (decimal.Decimal, error) {
	ratio, ok := agencydec.Ratio(ltv, cac)
	if !ok {
		return decimal.Zero, ErrNoAcquisition
	}
	return ratio, nil
}

// RuleOf20 is the composite health score: organic growth percent plus half
// the EBITDA margin percent.
func RuleOf20(organicGrowthPercent, ebitdaPercent decimal.Decimal) decimal.Decimal {
	return organicGrowthPercent.Add(ebitdaPercent.Div(decimal.NewFromInt(2)))
}

// OrganicGrowthPercent annualizes revenue growth across the month series:
// the relative change from the first to the last month, scaled to a
// twelve-month horizon. ok is false when the series is shorter than two
// months or starts from zero revenue.
func OrganicGrowthPercent(months []domain.MonthlyState) (decimal.Decimal, bool) {
	if len(months) < 2 {
		return decimal.Zero, false
	}
	first := months[0].TotalRevenue
	last := months[len(months)-1].TotalRevenue
	growth, ok := agencydec.Ratio(last.Sub(first), first)
	if !ok {
		return decimal.Zero, false
	}
	annualized := agencydec.Annualize(growth, len(months)-1)
	return agencydec.Percent(annualized), true
}

// classifyKPI builds a classified report entry from a computed value.
func classifyKPI(name string, value decimal.Decimal, tiers []domain.Tier) domain.KPIResult {
	classifier := NewTierClassifier(tiers)
	result := domain.KPIResult{
		Name:  name,
		Value: value,
		Valid: true,
		Tier:  classifier.Classify(value).Label,
	}
	if next := classifier.NextTier(value); next != nil {
		threshold := next.Threshold
		result.NextTierThreshold = &threshold
	}
	return result
}

// invalidKPI builds a flagged entry for a KPI that could not be computed.
func invalidKPI(name string, condition domain.Condition) domain.KPIResult {
	return domain.KPIResult{Name: name, Condition: condition}
}

// BuildBenchmarkReport classifies the run's KPIs against the tier tables.
// It reads the final month for point-in-time metrics and the full series for
// growth, and flags any KPI whose inputs were degenerate instead of
// omitting it.
func BuildBenchmarkReport(result *domain.ScenarioResult, cfg *domain.SimulationConfig, tables *domain.BenchmarkTables) *domain.BenchmarkReport {
	report := &domain.BenchmarkReport{
		Scenario: result.Name,
		DataYear: tables.Metadata.DataYear,
	}
	final := result.FinalMonth()
	if final == nil {
		return report
	}

	// Rule of 20 needs both growth and margin.
	growthPct, growthOK := OrganicGrowthPercent(result.Months)
	marginPct, marginOK := EBITDAMarginPercent(result.CumulativeRevenue, result.CumulativeExpenses)
	if growthOK && marginOK {
		report.KPIs = append(report.KPIs,
			classifyKPI(domain.KPIRuleOf20, RuleOf20(growthPct, marginPct), tables.RuleOf20))
	} else {
		report.KPIs = append(report.KPIs, invalidKPI(domain.KPIRuleOf20, ""))
	}

	if marginOK {
		report.KPIs = append(report.KPIs,
			classifyKPI(domain.KPIEBITDAMargin, marginPct, tables.EBITDAMargin))
	} else {
		report.KPIs = append(report.KPIs, invalidKPI(domain.KPIEBITDAMargin, ""))
	}

	report.KPIs = append(report.KPIs, ltvCACKPI(final, tables))

	annualRevenue := agencydec.Annualize(result.CumulativeRevenue, len(result.Months))
	if perEmployee, ok := RevenuePerEmployee(annualRevenue, cfg.Staffing.Headcount()); ok {
		report.KPIs = append(report.KPIs,
			classifyKPI(domain.KPIRevenuePerEmployee, perEmployee, tables.RevenuePerEmployee))
	} else {
		report.KPIs = append(report.KPIs, invalidKPI(domain.KPIRevenuePerEmployee, ""))
	}

	if final.HasCondition(domain.ConditionZeroCustomers) {
		report.KPIs = append(report.KPIs, invalidKPI(domain.KPIPoliciesPerCust, domain.ConditionZeroCustomers))
	} else {
		report.KPIs = append(report.KPIs,
			classifyKPI(domain.KPIPoliciesPerCust, final.PoliciesPerCustomer, tables.PoliciesPerCustomer))
	}

	report.KPIs = append(report.KPIs,
		classifyKPI(domain.KPIRetentionRate, final.AnnualRetention, tables.RetentionRate),
		classifyKPI(domain.KPIStaffingRatio, ServiceRatio(cfg.Staffing), tables.StaffingRatio))

	if marketingPct, ok := agencydec.Ratio(sumMarketing(result.Months), result.CumulativeRevenue); ok {
		report.KPIs = append(report.KPIs,
			classifyKPI(domain.KPIMarketingSpendPct, agencydec.Percent(marketingPct), tables.MarketingSpendPct))
	} else {
		report.KPIs = append(report.KPIs, invalidKPI(domain.KPIMarketingSpendPct, ""))
	}
	if technologyPct, ok := agencydec.Ratio(sumTechnology(result.Months), result.CumulativeRevenue); ok {
		report.KPIs = append(report.KPIs,
			classifyKPI(domain.KPITechnologySpendPct, agencydec.Percent(technologyPct), tables.TechnologySpendPct))
	} else {
		report.KPIs = append(report.KPIs, invalidKPI(domain.KPITechnologySpendPct, ""))
	}

	return report
}

// ltvCACKPI computes the LTV:CAC entry from the terminal month, surfacing
// whichever degenerate condition blocks it.
func ltvCACKPI(final *domain.MonthlyState, tables *domain.BenchmarkTables) domain.KPIResult {
	switch {
	case final.HasCondition(domain.ConditionNoAcquisition):
		return invalidKPI(domain.KPILTVCACRatio, domain.ConditionNoAcquisition)
	case final.HasCondition(domain.ConditionZeroCustomers), final.ActiveCustomers.IsZero():
		return invalidKPI(domain.KPILTVCACRatio, domain.ConditionZeroCustomers)
	}

	avgAnnualRevenue := final.TotalRevenue.Mul(monthsPerYear).Div(final.ActiveCustomers)
	ltv, err := LTV(avgAnnualRevenue, final.AnnualRetention, final.AcquisitionCost)
	if err != nil {
		return invalidKPI(domain.KPILTVCACRatio, domain.ConditionDegenerateRetention)
	}
	ratio, err := LTVCACRatio(ltv, final.AcquisitionCost)
	if err != nil {
		return invalidKPI(domain.KPILTVCACRatio, domain.ConditionNoAcquisition)
	}
	return classifyKPI(domain.KPILTVCACRatio, ratio, tables.LTVCAC)
}

func sumMarketing(months []domain.MonthlyState) decimal.Decimal {
	total := decimal.Zero
	for i := range months {
		total = total.Add(months[i].Marketing)
	}
	return total
}

func sumTechnology(months []domain.MonthlyState) decimal.Decimal {
	total := decimal.Zero
	for i := range months {
		total = total.Add(months[i].Technology)
	}
	return total
}
