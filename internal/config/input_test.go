package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/agencysim/growth-simulator/internal/domain"
)

const minimalScenarioYAML = `
scenarios:
  - name: steady
    horizon_months: 24
    starting_cash: "120000"
    cross_sell_fraction: "0.2"
    starting_book:
      customers: 900
      lines:
        personal_auto:
          policies: 800
          avg_annual_premium: "1600"
        homeowners:
          policies: 400
          avg_annual_premium: "1400"
    marketing_channels:
      - name: referrals
        monthly_spend: "2500"
        cost_per_lead: "40"
        conversion_rate: "0.25"
    staffing:
      producers: 2
      service: 5
      admin: 1
      producer_annual_comp: "80000"
      service_annual_comp: "50000"
      admin_annual_comp: "42000"
      benefits_multiplier: "1.3"
      max_leads_per_producer: "120"
      overload_penalty: "0.5"
    commission:
      structure: independent
      rates:
        data_year: 2025
        lines:
          personal_auto:
            independent: {new: "0.15", renewal: "0.12"}
          homeowners:
            independent: {new: "0.18", renewal: "0.14"}
`

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}

func TestLoadFromFile(t *testing.T) {
	parser := NewInputParser()
	config, err := parser.LoadFromFile(writeTempYAML(t, minimalScenarioYAML))
	require.NoError(t, err)
	require.Len(t, config.Scenarios, 1)

	scenario := config.Scenarios[0]
	assert.Equal(t, "steady", scenario.Name)
	assert.Equal(t, 24, scenario.HorizonMonths)
	assert.Equal(t, 900, scenario.Book.Customers)
	assert.Equal(t, 1200, scenario.Book.TotalPolicies())
	assert.True(t, scenario.CrossSellFraction.Equal(decimal.NewFromFloat(0.2)))
	require.Len(t, scenario.Channels, 1)
	assert.True(t, scenario.Channels[0].ConversionRate.Equal(decimal.NewFromFloat(0.25)))
	assert.Equal(t, domain.StructureIndependent, scenario.Commission.Structure)
}

func TestLoadFromFileMissing(t *testing.T) {
	parser := NewInputParser()
	_, err := parser.LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadFromFileBadYAML(t *testing.T) {
	parser := NewInputParser()
	_, err := parser.LoadFromFile(writeTempYAML(t, "scenarios: [\n"))
	if err == nil {
		t.Fatalf("expected error for malformed YAML")
	}
}

func TestValidateConfigurationRejections(t *testing.T) {
	parser := NewInputParser()

	tests := []struct {
		name    string
		mutate  func(*domain.Configuration)
		wantErr string
	}{
		{
			"no scenarios",
			func(c *domain.Configuration) { c.Scenarios = nil },
			"no scenarios",
		},
		{
			"missing name",
			func(c *domain.Configuration) { c.Scenarios[0].Name = "" },
			"name is required",
		},
		{
			"duplicate names",
			func(c *domain.Configuration) {
				for i := range c.Scenarios {
					c.Scenarios[i].Name = "same"
				}
			},
			"duplicate scenario name",
		},
		{
			"horizon too long",
			func(c *domain.Configuration) { c.Scenarios[0].HorizonMonths = 121 },
			"horizon_months",
		},
		{
			"empty book",
			func(c *domain.Configuration) { c.Scenarios[0].Book.Lines = nil },
			"at least one product line",
		},
		{
			"conversion rate above one",
			func(c *domain.Configuration) {
				c.Scenarios[0].Channels[0].ConversionRate = decimal.NewFromFloat(1.2)
			},
			"conversion rate",
		},
		{
			"zero cost per lead",
			func(c *domain.Configuration) {
				c.Scenarios[0].Channels[0].CostPerLead = decimal.Zero
			},
			"cost per lead",
		},
		{
			"no producers",
			func(c *domain.Configuration) { c.Scenarios[0].Staffing.Producers = 0 },
			"at least one producer",
		},
		{
			"benefits multiplier below one",
			func(c *domain.Configuration) {
				c.Scenarios[0].Staffing.BenefitsMultiplier = decimal.NewFromFloat(0.9)
			},
			"benefits multiplier",
		},
		{
			"unknown commission structure",
			func(c *domain.Configuration) { c.Scenarios[0].Commission.Structure = "franchise" },
			"commission structure",
		},
		{
			"commission rate above one",
			func(c *domain.Configuration) {
				c.Scenarios[0].Commission.Rates.Lines["personal_auto"][domain.StructureIndependent] = domain.RatePair{
					NewBusiness: decimal.NewFromFloat(1.5),
					Renewal:     decimal.NewFromFloat(0.12),
				}
			},
			"must be between 0 and 1",
		},
		{
			"negative program cost",
			func(c *domain.Configuration) {
				c.Scenarios[0].Programs.ClaimsPrevention = &domain.ClaimsPreventionProgram{
					AnnualCost:            decimal.NewFromInt(-1),
					PreventionRate:        decimal.NewFromFloat(0.4),
					AvgClaimCost:          decimal.NewFromInt(10000),
					ExpectedClaimsPerYear: decimal.NewFromInt(30),
				}
			},
			"annual cost",
		},
		{
			"renewal review zero horizon",
			func(c *domain.Configuration) {
				c.Scenarios[0].Programs.RenewalReview = &domain.RenewalReviewProgram{
					AnnualCost:     decimal.NewFromInt(10000),
					RetentionDelta: decimal.NewFromFloat(0.02),
					HorizonYears:   0,
				}
			},
			"horizon years",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := parser.CreateExampleConfiguration()
			tt.mutate(config)
			err := parser.ValidateConfiguration(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCreateExampleConfigurationIsValid(t *testing.T) {
	parser := NewInputParser()
	config := parser.CreateExampleConfiguration()
	require.NoError(t, parser.ValidateConfiguration(config))
	require.Len(t, config.Scenarios, 3)

	names := make([]string, 0, len(config.Scenarios))
	for _, s := range config.Scenarios {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"conservative", "moderate", "aggressive"}, names)
}

// The example configuration survives a marshal/load round trip, since it is
// what the example subcommand writes for users to edit.
func TestExampleConfigurationRoundTrip(t *testing.T) {
	parser := NewInputParser()
	data, err := yaml.Marshal(parser.CreateExampleConfiguration())
	require.NoError(t, err)

	loaded, err := parser.LoadFromFile(writeTempYAML(t, string(data)))
	require.NoError(t, err)
	require.Len(t, loaded.Scenarios, 3)
	assert.True(t, loaded.Scenarios[2].CrossSellFraction.Equal(decimal.NewFromFloat(0.3)))
	require.NotNil(t, loaded.Scenarios[2].Programs.CrossSell)
}

func TestLoadBenchmarkTables(t *testing.T) {
	parser := NewInputParser()

	data, err := yaml.Marshal(domain.DefaultBenchmarkTables())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "benchmarks.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	tables, err := parser.LoadBenchmarkTables(path)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultBenchmarkTables().Metadata.DataYear, tables.Metadata.DataYear)
	assert.NotEmpty(t, tables.RuleOf20)
}

func TestLoadBenchmarkTablesRejectsEmptyTable(t *testing.T) {
	parser := NewInputParser()

	tables := domain.DefaultBenchmarkTables()
	tables.RetentionRate = nil
	data, err := yaml.Marshal(tables)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "benchmarks.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err = parser.LoadBenchmarkTables(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no tiers")
}

// With several broken tables the reported error is stable: tables are checked
// in a fixed order, so the first one in that order is always the one named.
func TestLoadBenchmarkTablesErrorIsDeterministic(t *testing.T) {
	parser := NewInputParser()

	tables := domain.DefaultBenchmarkTables()
	tables.EBITDAMargin = nil
	tables.RetentionRate = nil
	tables.TechnologySpendPct = nil
	data, err := yaml.Marshal(tables)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "benchmarks.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	for i := 0; i < 5; i++ {
		_, err := parser.LoadBenchmarkTables(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"ebitda_margin"`)
	}
}
