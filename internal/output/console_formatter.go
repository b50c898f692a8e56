package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/agencysim/growth-simulator/internal/domain"
)

// ConsoleFormatter renders a readable run summary: per-scenario month
// milestones, the classified benchmark report, program ROI, and any
// warnings or degenerate conditions.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(comparison *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "AGENCY GROWTH SCENARIOS")
	fmt.Fprintln(&buf, "=======================")

	for _, outcome := range comparison.Outcomes {
		c.writeScenario(&buf, outcome)
	}

	if comparison.BestByCumulativeProfit != "" {
		fmt.Fprintf(&buf, "Best by cumulative profit: %s\n", comparison.BestByCumulativeProfit)
	}
	if comparison.BestByFinalPolicies != "" {
		fmt.Fprintf(&buf, "Best by final policy count: %s\n", comparison.BestByFinalPolicies)
	}
	return buf.Bytes(), nil
}

func (c ConsoleFormatter) writeScenario(buf *bytes.Buffer, outcome domain.ScenarioOutcome) {
	result := outcome.Result
	fmt.Fprintf(buf, "\nScenario: %s (%d months)\n", result.Name, len(result.Months))
	fmt.Fprintln(buf, strings.Repeat("-", 50))

	fmt.Fprintf(buf, "  %-8s %12s %12s %12s %12s\n", "Month", "Policies", "Customers", "Revenue", "Cash")
	for _, ms := range milestoneMonths(result.Months) {
		fmt.Fprintf(buf, "  %-8d %12s %12s %12s %12s\n",
			ms.Month+1,
			FormatCount(ms.ActivePolicies),
			FormatCount(ms.ActiveCustomers),
			FormatCurrency(ms.TotalRevenue),
			FormatCurrency(ms.CashBalance))
	}

	fmt.Fprintf(buf, "\n  Final policies:     %s\n", FormatCount(result.FinalPolicies))
	fmt.Fprintf(buf, "  Cumulative revenue: %s\n", FormatCurrency(result.CumulativeRevenue))
	fmt.Fprintf(buf, "  Cumulative profit:  %s\n", FormatCurrency(result.CumulativeProfit))

	if outcome.Report != nil {
		fmt.Fprintf(buf, "\n  Benchmarks (%d tables):\n", outcome.Report.DataYear)
		for _, kpi := range outcome.Report.KPIs {
			if !kpi.Valid {
				reason := string(kpi.Condition)
				if reason == "" {
					reason = "not computable"
				}
				fmt.Fprintf(buf, "    %-24s -- (%s)\n", kpi.Name, reason)
				continue
			}
			line := fmt.Sprintf("    %-24s %10s  %s", kpi.Name, kpi.Value.StringFixed(2), kpi.Tier)
			if kpi.NextTierThreshold != nil {
				line += fmt.Sprintf(" (next tier at %s)", kpi.NextTierThreshold.StringFixed(2))
			}
			fmt.Fprintln(buf, line)
		}
	}

	for _, prog := range result.Programs {
		payback := "never"
		if prog.PaybackValid {
			payback = prog.PaybackMonths.StringFixed(1) + " months"
		}
		fmt.Fprintf(buf, "  Program %-20s ROI %s, payback %s\n",
			prog.Name, FormatPercent(prog.ROIPercent), payback)
	}

	warned := collectWarnings(result.Months)
	for _, w := range warned {
		fmt.Fprintf(buf, "  Warning: %s\n", w)
	}
}

// milestoneMonths thins a long series to first, quarterly, and final months.
func milestoneMonths(months []domain.MonthlyState) []domain.MonthlyState {
	if len(months) <= 12 {
		return months
	}
	var out []domain.MonthlyState
	for i, ms := range months {
		if i == 0 || i == len(months)-1 || (i+1)%3 == 0 {
			out = append(out, ms)
		}
	}
	return out
}

// collectWarnings deduplicates warnings across the series, keeping first
// occurrence order.
func collectWarnings(months []domain.MonthlyState) []string {
	seen := make(map[string]bool)
	var out []string
	for i := range months {
		for _, w := range months[i].Warnings {
			if !seen[w] {
				seen[w] = true
				out = append(out, w)
			}
		}
	}
	return out
}
