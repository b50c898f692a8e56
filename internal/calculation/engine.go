package calculation

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/agencysim/growth-simulator/internal/domain"
	agencydec "github.com/agencysim/growth-simulator/pkg/decimal"
)

// SimulationEngine drives the month-by-month projection. It owns the loop;
// every sub-model it calls is a stateless pure function of the previous
// month's state and the static configuration, so identical configuration
// always produces identical output.
type SimulationEngine struct {
	Tables *domain.BenchmarkTables
	Logger Logger
}

// NewSimulationEngine creates an engine classified against the compiled-in
// benchmark tables.
func NewSimulationEngine() *SimulationEngine {
	return NewSimulationEngineWithTables(domain.DefaultBenchmarkTables())
}

// NewSimulationEngineWithTables creates an engine using a caller-supplied
// benchmark table set.
func NewSimulationEngineWithTables(tables *domain.BenchmarkTables) *SimulationEngine {
	return &SimulationEngine{
		Tables: tables,
		Logger: NopLogger{},
	}
}

// SetLogger sets the engine logger. A nil logger restores the no-op default.
func (se *SimulationEngine) SetLogger(l Logger) {
	if l == nil {
		se.Logger = NopLogger{}
		return
	}
	se.Logger = l
}

// validateConfig is the engine-side fail-fast gate: nothing is simulated
// from a configuration with out-of-range rates or impossible counts. The
// config package performs the same checks with friendlier per-field errors
// at load time; this guards engines fed programmatically.
func validateConfig(cfg *domain.SimulationConfig) error {
	if cfg.HorizonMonths <= 0 {
		return fmt.Errorf("horizon must be at least one month, got %d", cfg.HorizonMonths)
	}
	if cfg.Staffing.Producers <= 0 {
		return fmt.Errorf("staffing requires at least one producer")
	}
	if cfg.Staffing.Service < 0 || cfg.Staffing.Admin < 0 {
		return fmt.Errorf("staffing counts cannot be negative")
	}
	if cfg.Book.Customers < 0 {
		return fmt.Errorf("starting customers cannot be negative")
	}
	if !agencydec.InUnitInterval(cfg.CrossSellFraction) {
		return fmt.Errorf("cross_sell_fraction must be between 0 and 1")
	}
	if !agencydec.InUnitInterval(cfg.Staffing.OverloadPenalty) {
		return fmt.Errorf("overload_penalty must be between 0 and 1")
	}
	for _, ch := range cfg.Channels {
		if ch.MonthlySpend.LessThan(decimal.Zero) {
			return fmt.Errorf("channel %q: spend cannot be negative", ch.Name)
		}
		if ch.CostPerLead.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("channel %q: cost per lead must be positive", ch.Name)
		}
		if !agencydec.InUnitInterval(ch.ConversionRate) {
			return fmt.Errorf("channel %q: conversion rate must be between 0 and 1", ch.Name)
		}
	}
	for name, line := range cfg.Book.Lines {
		if line.Policies < 0 {
			return fmt.Errorf("line %q: policy count cannot be negative", name)
		}
		if line.AvgAnnualPremium.LessThan(decimal.Zero) {
			return fmt.Errorf("line %q: average premium cannot be negative", name)
		}
	}
	return nil
}

// RunScenario simulates one scenario over its configured horizon and builds
// its benchmark report. Invalid configuration aborts before the loop starts;
// degenerate metrics inside the loop are recorded as named conditions on the
// affected month and the run continues so partial results stay inspectable.
func (se *SimulationEngine) RunScenario(ctx context.Context, cfg *domain.SimulationConfig) (*domain.ScenarioResult, *domain.BenchmarkReport, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	blended, err := BlendBook(cfg.Book, cfg.Commission)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	result := &domain.ScenarioResult{
		Name:   cfg.Name,
		Months: make([]domain.MonthlyState, 0, cfg.HorizonMonths),
	}

	// Static per-month figures.
	leadCapacity := LeadCapacity(cfg.Staffing)
	payroll := MonthlyPayroll(cfg.Staffing)
	producerComp := ProducerMonthlyComp(cfg.Staffing)
	technology := cfg.Programs.MonthlyCost()

	se.Logger.Debugf("scenario %q: capacity %s leads/month, payroll %s/month",
		cfg.Name, leadCapacity.StringFixed(1), payroll.StringFixed(2))

	// Seed state from the starting book.
	prevPolicies := decimal.NewFromInt(int64(cfg.Book.TotalPolicies()))
	prevCustomers := decimal.NewFromInt(int64(cfg.Book.Customers))
	cash := cfg.StartingCash

	for month := 0; month < cfg.HorizonMonths; month++ {
		state := domain.MonthlyState{Month: month}

		// Retention is driven by the predecessor state's bundling depth.
		prevPPC, ppcKnown := agencydec.Ratio(prevPolicies, prevCustomers)
		retention := RetentionForPPC(prevPPC)
		if cfg.Programs.RenewalReview != nil {
			improved := retention.Add(cfg.Programs.RenewalReview.RetentionDelta)
			retention = agencydec.Clamp(improved, decimal.Zero, MaxRetention())
		}
		state.AnnualRetention = retention

		// Marketing acquisition, throttled by staffing capacity.
		acq := ComputeAcquisition(cfg.Channels, leadCapacity, cfg.Staffing.OverloadPenalty)
		state.Leads = acq.TotalLeads
		state.CapacityLimited = acq.CapacityLimited
		state.AcquisitionCost = acq.BlendedCAC
		if acq.Condition != "" {
			state.Conditions = append(state.Conditions, acq.Condition)
		}

		// Acquired policies split between new customers and cross-sells to
		// existing ones; an active cross-sell program attaches further
		// policies on top of marketing volume.
		newCustomers := acq.TotalAcquired.Mul(decimal.NewFromInt(1).Sub(cfg.CrossSellFraction))
		marketingCrossSell := acq.TotalAcquired.Mul(cfg.CrossSellFraction)
		programAttach := decimal.Zero
		if cfg.Programs.CrossSell != nil {
			programAttach = CrossSellMonthlyAttach(*cfg.Programs.CrossSell, prevCustomers)
		}
		state.NewPolicies = acq.TotalAcquired
		state.CrossSellPolicies = marketingCrossSell.Add(programAttach)

		// Churn the prior book, clamp at zero, recompute bundling depth.
		churnRate := MonthlyChurnRate(retention)
		state.ChurnedPolicies = prevPolicies.Mul(churnRate)
		churnedCustomers := prevCustomers.Mul(churnRate)

		state.ActivePolicies = agencydec.ClampFloor(
			prevPolicies.Add(acq.TotalAcquired).Add(programAttach).Sub(state.ChurnedPolicies), decimal.Zero)
		state.ActiveCustomers = agencydec.ClampFloor(
			prevCustomers.Add(newCustomers).Sub(churnedCustomers), decimal.Zero)

		if ppc, ok := agencydec.Ratio(state.ActivePolicies, state.ActiveCustomers); ok {
			state.PoliciesPerCustomer = ppc
		} else {
			state.Conditions = append(state.Conditions, domain.ConditionZeroCustomers)
		}
		if !ppcKnown && month == 0 {
			// Starting book had no customers; flag the seed month too.
			if !state.HasCondition(domain.ConditionZeroCustomers) {
				state.Conditions = append(state.Conditions, domain.ConditionZeroCustomers)
			}
		}

		// Commission revenue on written and renewing premium. One twelfth of
		// the surviving book renews each month.
		newPremium := acq.TotalAcquired.Add(programAttach).Mul(blended.AvgAnnualPremium)
		renewalPremium := agencydec.ClampFloor(prevPolicies.Sub(state.ChurnedPolicies), decimal.Zero).
			Div(monthsPerYear).Mul(blended.AvgAnnualPremium)
		state.NewCommission = newPremium.Mul(blended.Rates.NewBusiness)
		state.RenewalCommission = renewalPremium.Mul(blended.Rates.Renewal)
		state.TotalRevenue = state.NewCommission.Add(state.RenewalCommission)

		// Expenses and cash evolution.
		state.Payroll = payroll
		state.Marketing = acq.TotalSpend
		state.Technology = technology
		state.TotalExpenses = payroll.Add(acq.TotalSpend).Add(technology)
		state.NetCashFlow = state.TotalRevenue.Sub(state.TotalExpenses)
		cash = cash.Add(state.NetCashFlow)
		state.CashBalance = cash

		check := CheckCompensation(producerComp, payroll, state.TotalRevenue)
		state.Warnings = check.Warnings

		result.Months = append(result.Months, state)
		result.CumulativeRevenue = result.CumulativeRevenue.Add(state.TotalRevenue)
		result.CumulativeExpenses = result.CumulativeExpenses.Add(state.TotalExpenses)

		prevPolicies = state.ActivePolicies
		prevCustomers = state.ActiveCustomers
	}

	result.CumulativeProfit = result.CumulativeRevenue.Sub(result.CumulativeExpenses)
	if final := result.FinalMonth(); final != nil {
		result.FinalPolicies = final.ActivePolicies
		result.FinalCustomers = final.ActiveCustomers
	}
	result.Programs = se.evaluatePrograms(cfg, result)

	report := BuildBenchmarkReport(result, cfg, se.Tables)
	return result, report, nil
}

// evaluatePrograms rates each enabled technology program against the
// realized run.
func (se *SimulationEngine) evaluatePrograms(cfg *domain.SimulationConfig, result *domain.ScenarioResult) []domain.ProgramEvaluation {
	var evals []domain.ProgramEvaluation
	if cfg.Programs.ClaimsPrevention != nil {
		evals = append(evals, EvaluateClaimsPrevention(*cfg.Programs.ClaimsPrevention))
	}
	if cfg.Programs.RenewalReview != nil {
		baseline := agencydec.Annualize(result.CumulativeProfit, len(result.Months))
		evals = append(evals, EvaluateRenewalReview(*cfg.Programs.RenewalReview, baseline))
	}
	if cfg.Programs.CrossSell != nil {
		evals = append(evals, EvaluateCrossSell(*cfg.Programs.CrossSell, result.FinalCustomers))
	}
	return evals
}

// RunScenarios simulates every scenario in the configuration and builds the
// cross-scenario comparison. Scenarios share no state; a configuration error
// in any scenario fails the whole call, matching fail-fast semantics.
func (se *SimulationEngine) RunScenarios(ctx context.Context, config *domain.Configuration) (*domain.ScenarioComparison, error) {
	comparison := &domain.ScenarioComparison{
		Outcomes: make([]domain.ScenarioOutcome, 0, len(config.Scenarios)),
	}

	var bestProfit, bestPolicies decimal.Decimal
	for i := range config.Scenarios {
		cfg := &config.Scenarios[i]
		result, report, err := se.RunScenario(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", cfg.Name, err)
		}
		comparison.Outcomes = append(comparison.Outcomes, domain.ScenarioOutcome{
			Result: result,
			Report: report,
		})
		if comparison.BestByCumulativeProfit == "" || result.CumulativeProfit.GreaterThan(bestProfit) {
			bestProfit = result.CumulativeProfit
			comparison.BestByCumulativeProfit = result.Name
		}
		if comparison.BestByFinalPolicies == "" || result.FinalPolicies.GreaterThan(bestPolicies) {
			bestPolicies = result.FinalPolicies
			comparison.BestByFinalPolicies = result.Name
		}
	}
	return comparison, nil
}
