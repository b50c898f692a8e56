package calculation

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/agencysim/growth-simulator/internal/domain"
)

// ErrUnknownRate is returned when the rate table has no entry for the
// requested line of business and commission structure.
var ErrUnknownRate = errors.New("no commission rate for line/structure")

// LookupRates finds the rate pair for a (line, structure) cell.
func LookupRates(table domain.CommissionRateTable, line, structure string) (domain.RatePair, error) {
	structures, ok := table.Lines[line]
	if !ok {
		return domain.RatePair{}, fmt.Errorf("%w: line %q", ErrUnknownRate, line)
	}
	rates, ok := structures[structure]
	if !ok {
		return domain.RatePair{}, fmt.Errorf("%w: line %q structure %q", ErrUnknownRate, line, structure)
	}
	return rates, nil
}

// CommissionRevenue applies a rate pair to written and renewal premium.
func CommissionRevenue(newPremium, renewalPremium decimal.Decimal, rates domain.RatePair) decimal.Decimal {
	return newPremium.Mul(rates.NewBusiness).Add(renewalPremium.Mul(rates.Renewal))
}

// BlendedBook is the book-level commission view the engine runs on: rates
// and average premium blended across lines, weighted by the starting mix.
// New policies are assumed to be written into the same mix, so the blend is
// computed once per run.
type BlendedBook struct {
	Rates            domain.RatePair
	AvgAnnualPremium decimal.Decimal
}

// BlendBook computes mix-weighted rates and average premium for a book under
// the plan's structure. Lines are visited in sorted order so the result is
// reproducible. A book with no policies cannot be blended.
func BlendBook(book domain.StartingBook, plan domain.CommissionPlan) (BlendedBook, error) {
	total := book.TotalPolicies()
	if total <= 0 {
		return BlendedBook{}, errors.New("starting book has no policies to blend")
	}
	totalDec := decimal.NewFromInt(int64(total))

	var blended BlendedBook
	for _, name := range book.LineNames() {
		line := book.Lines[name]
		if line.Policies == 0 {
			continue
		}
		rates, err := LookupRates(plan.Rates, name, plan.Structure)
		if err != nil {
			return BlendedBook{}, err
		}
		weight := decimal.NewFromInt(int64(line.Policies)).Div(totalDec)
		blended.Rates.NewBusiness = blended.Rates.NewBusiness.Add(rates.NewBusiness.Mul(weight))
		blended.Rates.Renewal = blended.Rates.Renewal.Add(rates.Renewal.Mul(weight))
		blended.AvgAnnualPremium = blended.AvgAnnualPremium.Add(line.AvgAnnualPremium.Mul(weight))
	}
	return blended, nil
}
