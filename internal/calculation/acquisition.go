package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/agencysim/growth-simulator/internal/domain"
	agencydec "github.com/agencysim/growth-simulator/pkg/decimal"
)

// ChannelResult is the per-channel breakdown of one month's acquisition.
type ChannelResult struct {
	Name     string
	Leads    decimal.Decimal
	Acquired decimal.Decimal
	Spend    decimal.Decimal
}

// AcquisitionResult is the outcome of running the marketing allocation for
// one month.
type AcquisitionResult struct {
	Channels      []ChannelResult
	TotalLeads    decimal.Decimal
	TotalAcquired decimal.Decimal
	TotalSpend    decimal.Decimal

	// BlendedCAC is total spend over total acquired; meaningless when
	// Condition is ConditionNoAcquisition.
	BlendedCAC decimal.Decimal
	Condition  domain.Condition

	// CapacityLimited records that lead volume exceeded staffing capacity
	// and the overload penalty degraded conversion. This is modeled
	// behavior, not an error.
	CapacityLimited bool
}

// ComputeAcquisition converts the marketing allocation into acquired
// policies and blended CAC. leadCapacity is the staffing model's monthly
// ceiling; when total leads exceed it, conversion on the excess fraction is
// scaled down by overloadPenalty, proportionally across every channel. The
// degradation is deterministic: for excess fraction e and penalty p each
// channel converts at rate x (1 - e x p).
func ComputeAcquisition(channels []domain.MarketingChannel, leadCapacity, overloadPenalty decimal.Decimal) AcquisitionResult {
	result := AcquisitionResult{Channels: make([]ChannelResult, 0, len(channels))}

	for _, ch := range channels {
		leads := decimal.Zero
		if ch.CostPerLead.GreaterThan(decimal.Zero) {
			leads = ch.MonthlySpend.Div(ch.CostPerLead)
		}
		result.Channels = append(result.Channels, ChannelResult{
			Name:  ch.Name,
			Leads: leads,
			Spend: ch.MonthlySpend,
		})
		result.TotalLeads = result.TotalLeads.Add(leads)
		result.TotalSpend = result.TotalSpend.Add(ch.MonthlySpend)
	}

	// TotalLeads > leadCapacity implies TotalLeads > 0, so the division is
	// safe; with zero capacity every lead is excess and the scale is 1 - p.
	conversionScale := decimal.NewFromInt(1)
	if result.TotalLeads.GreaterThan(leadCapacity) {
		excessFraction := result.TotalLeads.Sub(leadCapacity).Div(result.TotalLeads)
		conversionScale = decimal.NewFromInt(1).Sub(excessFraction.Mul(overloadPenalty))
		conversionScale = agencydec.ClampFloor(conversionScale, decimal.Zero)
		result.CapacityLimited = true
	}

	for i, ch := range channels {
		acquired := result.Channels[i].Leads.Mul(ch.ConversionRate).Mul(conversionScale)
		result.Channels[i].Acquired = acquired
		result.TotalAcquired = result.TotalAcquired.Add(acquired)
	}

	cac, ok := agencydec.Ratio(result.TotalSpend, result.TotalAcquired)
	if !ok {
		result.Condition = domain.ConditionNoAcquisition
		return result
	}
	result.BlendedCAC = cac
	return result
}
