package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/agencysim/growth-simulator/internal/domain"
	agencydec "github.com/agencysim/growth-simulator/pkg/decimal"
)

// InputParser handles parsing of scenario configuration files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads and validates a configuration from a YAML file.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// LoadBenchmarkTables loads a benchmark table set from a YAML file, for runs
// classified against a vintage other than the compiled-in one.
func (ip *InputParser) LoadBenchmarkTables(filename string) (*domain.BenchmarkTables, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var tables domain.BenchmarkTables
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := validateBenchmarkTables(&tables); err != nil {
		return nil, fmt.Errorf("benchmark table validation failed: %w", err)
	}
	return &tables, nil
}

// ValidateConfiguration validates the loaded configuration. Every check here
// is a fail-fast InvalidParameter rejection; nothing is simulated from a
// configuration that fails.
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if len(config.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}

	seen := make(map[string]bool, len(config.Scenarios))
	for i := range config.Scenarios {
		scenario := &config.Scenarios[i]
		if err := ip.validateScenario(scenario); err != nil {
			return fmt.Errorf("scenario %d (%q) validation failed: %w", i, scenario.Name, err)
		}
		if seen[scenario.Name] {
			return fmt.Errorf("duplicate scenario name %q", scenario.Name)
		}
		seen[scenario.Name] = true
	}
	return nil
}

func (ip *InputParser) validateScenario(cfg *domain.SimulationConfig) error {
	if cfg.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if cfg.HorizonMonths <= 0 || cfg.HorizonMonths > 120 {
		return fmt.Errorf("horizon_months must be between 1 and 120")
	}
	if !agencydec.InUnitInterval(cfg.CrossSellFraction) {
		return fmt.Errorf("cross_sell_fraction must be between 0 and 1")
	}

	if err := ip.validateBook(&cfg.Book); err != nil {
		return err
	}
	for i, ch := range cfg.Channels {
		if err := ip.validateChannel(&ch); err != nil {
			return fmt.Errorf("marketing channel %d (%q): %w", i, ch.Name, err)
		}
	}
	if err := ip.validateStaffing(&cfg.Staffing); err != nil {
		return err
	}
	if err := ip.validateCommission(&cfg.Commission); err != nil {
		return err
	}
	return ip.validatePrograms(&cfg.Programs)
}

func (ip *InputParser) validateBook(book *domain.StartingBook) error {
	if len(book.Lines) == 0 {
		return fmt.Errorf("starting book requires at least one product line")
	}
	if book.Customers < 0 {
		return fmt.Errorf("starting customers cannot be negative")
	}
	for name, line := range book.Lines {
		if line.Policies < 0 {
			return fmt.Errorf("line %q: policy count cannot be negative", name)
		}
		if line.AvgAnnualPremium.LessThan(decimal.Zero) {
			return fmt.Errorf("line %q: average annual premium cannot be negative", name)
		}
	}
	if book.TotalPolicies() == 0 {
		return fmt.Errorf("starting book has no policies")
	}
	return nil
}

func (ip *InputParser) validateChannel(ch *domain.MarketingChannel) error {
	if ch.Name == "" {
		return fmt.Errorf("channel name is required")
	}
	if ch.MonthlySpend.LessThan(decimal.Zero) {
		return fmt.Errorf("monthly spend cannot be negative")
	}
	if ch.CostPerLead.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("cost per lead must be positive")
	}
	if !agencydec.InUnitInterval(ch.ConversionRate) {
		return fmt.Errorf("conversion rate must be between 0 and 1")
	}
	return nil
}

func (ip *InputParser) validateStaffing(plan *domain.StaffingPlan) error {
	if plan.Producers <= 0 {
		return fmt.Errorf("staffing requires at least one producer")
	}
	if plan.Service < 0 || plan.Admin < 0 {
		return fmt.Errorf("staffing counts cannot be negative")
	}
	if plan.ProducerAnnualComp.LessThan(decimal.Zero) ||
		plan.ServiceAnnualComp.LessThan(decimal.Zero) ||
		plan.AdminAnnualComp.LessThan(decimal.Zero) {
		return fmt.Errorf("compensation cannot be negative")
	}
	if plan.BenefitsMultiplier.LessThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("benefits multiplier must be at least 1")
	}
	if plan.MaxLeadsPerProducer.LessThan(decimal.Zero) {
		return fmt.Errorf("max leads per producer cannot be negative")
	}
	if !agencydec.InUnitInterval(plan.OverloadPenalty) {
		return fmt.Errorf("overload penalty must be between 0 and 1")
	}
	return nil
}

func (ip *InputParser) validateCommission(plan *domain.CommissionPlan) error {
	switch plan.Structure {
	case domain.StructureIndependent, domain.StructureCaptive, domain.StructureHybrid:
	default:
		return fmt.Errorf("commission structure must be %q, %q, or %q",
			domain.StructureIndependent, domain.StructureCaptive, domain.StructureHybrid)
	}
	if len(plan.Rates.Lines) == 0 {
		return fmt.Errorf("commission rate table is empty")
	}
	for line, structures := range plan.Rates.Lines {
		for structure, rates := range structures {
			if !agencydec.InUnitInterval(rates.NewBusiness) || !agencydec.InUnitInterval(rates.Renewal) {
				return fmt.Errorf("rates for line %q structure %q must be between 0 and 1", line, structure)
			}
		}
	}
	return nil
}

func (ip *InputParser) validatePrograms(programs *domain.TechnologyPrograms) error {
	if p := programs.ClaimsPrevention; p != nil {
		if p.AnnualCost.LessThan(decimal.Zero) {
			return fmt.Errorf("claims_prevention: annual cost cannot be negative")
		}
		if !agencydec.InUnitInterval(p.PreventionRate) {
			return fmt.Errorf("claims_prevention: prevention rate must be between 0 and 1")
		}
		if p.AvgClaimCost.LessThan(decimal.Zero) || p.ExpectedClaimsPerYear.LessThan(decimal.Zero) {
			return fmt.Errorf("claims_prevention: claim cost and count cannot be negative")
		}
	}
	if p := programs.RenewalReview; p != nil {
		if p.AnnualCost.LessThan(decimal.Zero) {
			return fmt.Errorf("renewal_review: annual cost cannot be negative")
		}
		if !agencydec.InUnitInterval(p.RetentionDelta) {
			return fmt.Errorf("renewal_review: retention delta must be between 0 and 1")
		}
		if p.HorizonYears <= 0 {
			return fmt.Errorf("renewal_review: horizon years must be positive")
		}
	}
	if p := programs.CrossSell; p != nil {
		if p.AnnualCost.LessThan(decimal.Zero) {
			return fmt.Errorf("cross_sell: annual cost cannot be negative")
		}
		if !agencydec.InUnitInterval(p.IncrementalAttachRate) {
			return fmt.Errorf("cross_sell: incremental attach rate must be between 0 and 1")
		}
		if !agencydec.InUnitInterval(p.EligibleFraction) {
			return fmt.Errorf("cross_sell: eligible fraction must be between 0 and 1")
		}
		if p.AvgCommissionPerPolicy.LessThan(decimal.Zero) {
			return fmt.Errorf("cross_sell: average commission cannot be negative")
		}
	}
	return nil
}

func validateBenchmarkTables(tables *domain.BenchmarkTables) error {
	// Fixed order so the same broken file always reports the same table.
	named := []struct {
		name  string
		tiers []domain.Tier
	}{
		{"rule_of_20", tables.RuleOf20},
		{"ebitda_margin", tables.EBITDAMargin},
		{"ltv_cac", tables.LTVCAC},
		{"revenue_per_employee", tables.RevenuePerEmployee},
		{"policies_per_customer", tables.PoliciesPerCustomer},
		{"retention_rate", tables.RetentionRate},
		{"staffing_ratio", tables.StaffingRatio},
		{"marketing_spend_pct", tables.MarketingSpendPct},
		{"technology_spend_pct", tables.TechnologySpendPct},
	}
	for _, table := range named {
		if len(table.tiers) == 0 {
			return fmt.Errorf("table %q has no tiers", table.name)
		}
		for _, tier := range table.tiers {
			if tier.Label == "" {
				return fmt.Errorf("table %q has a tier without a label", table.name)
			}
		}
	}
	return nil
}

// CreateExampleConfiguration builds a three-scenario starter configuration
// (conservative, moderate, aggressive) around a mid-sized independent agency.
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	base := domain.SimulationConfig{
		HorizonMonths: 36,
		StartingCash:  decimal.NewFromInt(150000),
		Book: domain.StartingBook{
			Customers: 1400,
			Lines: map[string]domain.ProductLine{
				"personal_auto": {Policies: 1100, AvgAnnualPremium: decimal.NewFromInt(1600)},
				"homeowners":    {Policies: 650, AvgAnnualPremium: decimal.NewFromInt(1400)},
				"commercial":    {Policies: 180, AvgAnnualPremium: decimal.NewFromInt(4200)},
			},
		},
		Staffing: domain.StaffingPlan{
			Producers:           3,
			Service:             7,
			Admin:               2,
			ProducerAnnualComp:  decimal.NewFromInt(85000),
			ServiceAnnualComp:   decimal.NewFromInt(52000),
			AdminAnnualComp:     decimal.NewFromInt(45000),
			BenefitsMultiplier:  decimal.NewFromFloat(1.3),
			MaxLeadsPerProducer: decimal.NewFromInt(120),
			OverloadPenalty:     decimal.NewFromFloat(0.5),
		},
		Commission: domain.CommissionPlan{
			Structure: domain.StructureIndependent,
			Rates:     domain.DefaultCommissionRateTable(),
		},
		CrossSellFraction: decimal.NewFromFloat(0.2),
	}

	conservative := base
	conservative.Name = "conservative"
	conservative.Channels = []domain.MarketingChannel{
		{Name: "referrals", MonthlySpend: decimal.NewFromInt(2000), CostPerLead: decimal.NewFromInt(40), ConversionRate: decimal.NewFromFloat(0.25)},
		{Name: "digital", MonthlySpend: decimal.NewFromInt(3000), CostPerLead: decimal.NewFromInt(55), ConversionRate: decimal.NewFromFloat(0.10)},
	}

	moderate := base
	moderate.Name = "moderate"
	moderate.Channels = []domain.MarketingChannel{
		{Name: "referrals", MonthlySpend: decimal.NewFromInt(3000), CostPerLead: decimal.NewFromInt(40), ConversionRate: decimal.NewFromFloat(0.25)},
		{Name: "digital", MonthlySpend: decimal.NewFromInt(6000), CostPerLead: decimal.NewFromInt(55), ConversionRate: decimal.NewFromFloat(0.10)},
		{Name: "direct_mail", MonthlySpend: decimal.NewFromInt(2500), CostPerLead: decimal.NewFromInt(70), ConversionRate: decimal.NewFromFloat(0.08)},
	}
	moderate.Programs = domain.TechnologyPrograms{
		RenewalReview: &domain.RenewalReviewProgram{
			AnnualCost:     decimal.NewFromInt(24000),
			RetentionDelta: decimal.NewFromFloat(0.02),
			HorizonYears:   3,
		},
	}

	aggressive := base
	aggressive.Name = "aggressive"
	aggressive.Channels = []domain.MarketingChannel{
		{Name: "referrals", MonthlySpend: decimal.NewFromInt(4000), CostPerLead: decimal.NewFromInt(40), ConversionRate: decimal.NewFromFloat(0.25)},
		{Name: "digital", MonthlySpend: decimal.NewFromInt(12000), CostPerLead: decimal.NewFromInt(55), ConversionRate: decimal.NewFromFloat(0.10)},
		{Name: "direct_mail", MonthlySpend: decimal.NewFromInt(6000), CostPerLead: decimal.NewFromInt(70), ConversionRate: decimal.NewFromFloat(0.08)},
	}
	aggressive.CrossSellFraction = decimal.NewFromFloat(0.3)
	aggressive.Programs = domain.TechnologyPrograms{
		ClaimsPrevention: &domain.ClaimsPreventionProgram{
			AnnualCost:            decimal.NewFromInt(36000),
			PreventionRate:        decimal.NewFromFloat(0.40),
			AvgClaimCost:          decimal.NewFromInt(12500),
			ExpectedClaimsPerYear: decimal.NewFromInt(40),
		},
		RenewalReview: &domain.RenewalReviewProgram{
			AnnualCost:     decimal.NewFromInt(24000),
			RetentionDelta: decimal.NewFromFloat(0.03),
			HorizonYears:   3,
		},
		CrossSell: &domain.CrossSellProgram{
			AnnualCost:             decimal.NewFromInt(18000),
			IncrementalAttachRate:  decimal.NewFromFloat(0.06),
			EligibleFraction:       decimal.NewFromFloat(0.5),
			AvgCommissionPerPolicy: decimal.NewFromInt(210),
		},
	}

	return &domain.Configuration{
		Scenarios: []domain.SimulationConfig{conservative, moderate, aggressive},
	}
}
