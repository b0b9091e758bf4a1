// Package suggestion proposes cheaper alternatives to a priced configuration.
// Suggestions are advisory: nothing here changes a quote's committed totals.
package suggestion

import (
	"fmt"

	"github.com/shopspring/decimal"

	"warehouse-quote/core/catalog"
	"warehouse-quote/core/output"
	"warehouse-quote/core/pricing"
	"warehouse-quote/core/types"
)

// Suggest compares the chosen configuration against alternatives from the
// same table. currentPerPeriodRent is the warehouse rent for one billing
// period of the chosen configuration.
func Suggest(in types.NormalizedInputs, rate types.TieredRate, currentPerPeriodRent decimal.Decimal, table *catalog.RateTable) []types.Suggestion {
	suggestions := make([]types.Suggestion, 0, 3)

	if s, ok := areaOptimization(in, rate); ok {
		suggestions = append(suggestions, s)
	}
	if s, ok := tenureSavings(in, currentPerPeriodRent, table); ok {
		suggestions = append(suggestions, s)
	}
	if s, ok := spaceAlternative(in, currentPerPeriodRent, table); ok {
		suggestions = append(suggestions, s)
	}

	return suggestions
}

// PricingUnavailable is the single suggestion carried by an unpriced quote
func PricingUnavailable(in types.NormalizedInputs) types.Suggestion {
	return types.Suggestion{
		Type: types.SuggestionPricingTier,
		Message: fmt.Sprintf(
			"No published rate covers %s of %s space on a %s lease. Please contact us for a custom quote.",
			output.FormatArea(in.AreaRequested), in.SpaceType.Label(), in.Tenure.Label(),
		),
		CurrentCost:   decimal.Zero,
		SuggestedCost: decimal.Zero,
		Savings:       decimal.Zero,
	}
}

// PerPeriodRent is the warehouse rent for one billing period at a rate
func PerPeriodRent(rate types.TieredRate, area decimal.Decimal, unit types.PeriodUnit) decimal.Decimal {
	return rate.RatePerArea(unit).Mul(rate.ChargeableArea(area))
}

// areaOptimization nudges the tenant to use the full billed area. Billing
// already uses the chargeable-area floor, so this is not a real cost reduction.
func areaOptimization(in types.NormalizedInputs, rate types.TieredRate) (types.Suggestion, bool) {
	if !in.AreaRequested.LessThan(rate.MinChargeableArea) {
		return types.Suggestion{}, false
	}

	perArea := rate.RatePerArea(in.PeriodUnit)
	current := perArea.Mul(in.AreaRequested)
	suggested := perArea.Mul(rate.MinChargeableArea)

	return types.Suggestion{
		Type: types.SuggestionAreaOptimization,
		Message: fmt.Sprintf(
			"This band bills a minimum of %s. You can use the full %s for the same price instead of %s.",
			output.FormatArea(rate.MinChargeableArea), output.FormatArea(rate.MinChargeableArea), output.FormatArea(in.AreaRequested),
		),
		CurrentCost:   current,
		SuggestedCost: suggested,
		Savings:       suggested.Sub(current).Abs(),
	}, true
}

// tenureSavings offers the long-term rate to short leases of a year or more
func tenureSavings(in types.NormalizedInputs, current decimal.Decimal, table *catalog.RateTable) (types.Suggestion, bool) {
	if in.Tenure != types.TenureShort || in.PeriodCount < pricing.MinLongTenureMonths {
		return types.Suggestion{}, false
	}

	long, ok := pricing.Resolve(in.SpaceType, in.AreaRequested, types.TenureLong, table)
	if !ok {
		return types.Suggestion{}, false
	}

	suggested := PerPeriodRent(long, in.AreaRequested, types.PeriodMonth)
	savings := current.Sub(suggested)
	if !savings.IsPositive() {
		return types.Suggestion{}, false
	}

	return types.Suggestion{
		Type: types.SuggestionTenureSavings,
		Message: fmt.Sprintf(
			"A %s lease is eligible for the long-term rate. Switching saves %s per month (%s over %s).",
			output.FormatPeriods(in.PeriodCount, in.PeriodUnit),
			output.FormatCurrency(savings),
			output.FormatCurrency(savings.Mul(decimal.NewFromInt(int64(in.PeriodCount)))),
			output.FormatPeriods(in.PeriodCount, in.PeriodUnit),
		),
		CurrentCost:   current,
		SuggestedCost: suggested,
		Savings:       savings,
	}, true
}

// spaceAlternative offers mezzanine space when it is cheaper than ground floor
func spaceAlternative(in types.NormalizedInputs, current decimal.Decimal, table *catalog.RateTable) (types.Suggestion, bool) {
	if in.SpaceType != types.SpaceGroundFloor {
		return types.Suggestion{}, false
	}

	mezz, ok := pricing.Resolve(types.SpaceMezzanine, in.AreaRequested, in.Tenure, table)
	if !ok {
		return types.Suggestion{}, false
	}

	suggested := PerPeriodRent(mezz, in.AreaRequested, in.PeriodUnit)
	savings := current.Sub(suggested)
	if !savings.IsPositive() {
		return types.Suggestion{}, false
	}

	return types.Suggestion{
		Type: types.SuggestionSpaceAlternative,
		Message: fmt.Sprintf(
			"%s space in the %s band costs %s per %s, saving %s per %s.",
			types.SpaceMezzanine.Label(), mezz.AreaBandLabel,
			output.FormatCurrency(suggested), in.PeriodUnit,
			output.FormatCurrency(savings), in.PeriodUnit,
		),
		CurrentCost:   current,
		SuggestedCost: suggested,
		Savings:       savings,
	}, true
}
