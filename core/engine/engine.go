// Package engine composes warehouse quotes.
// Compose is a pure function of its arguments; Calculator is the thin
// orchestrator that CLI and HTTP surfaces call.
package engine

import (
	"github.com/shopspring/decimal"

	"warehouse-quote/core/pricing"
	"warehouse-quote/core/suggestion"
	"warehouse-quote/core/types"
	"warehouse-quote/internal/errors"
)

// SmallAreaThreshold is the requested area below which the minimum charge is
// billed on top of utilities setup
var SmallAreaThreshold = decimal.NewFromInt(30)

var hundred = decimal.NewFromInt(100)

// Compose derives every cost of a quote from a resolved rate.
//
// A nil rate produces a pricing-unavailable result and a requested area <= 0
// produces an all-zero result; neither is an error. Errors are a configuration
// defect in settings or a period count past pricing.MaxDuration.
//
// Compose never produces suggestions for priced quotes; see Calculator.
func Compose(
	in types.NormalizedInputs,
	rate *types.TieredRate,
	ewa types.EWASettings,
	services []types.OptionalService,
	settings types.SystemSettings,
) (types.CalculationResult, error) {
	if err := checkSettings(settings); err != nil {
		return types.CalculationResult{}, err
	}
	if limit := pricing.MaxDuration(in.Tenure); in.PeriodCount > limit {
		return types.CalculationResult{}, errors.Inputf("%d periods exceeds the %s limit of %d", in.PeriodCount, in.Tenure, limit)
	}

	if !in.AreaRequested.IsPositive() {
		return zeroResult(in, types.StatusZeroArea, types.BandNotApplicable), nil
	}
	if rate == nil {
		res := zeroResult(in, types.StatusPricingUnavailable, types.BandUnavailable)
		res.Suggestions = []types.Suggestion{suggestion.PricingUnavailable(in)}
		return res, nil
	}

	periods := decimal.NewFromInt(int64(in.PeriodCount))
	res := types.CalculationResult{
		Status:               types.StatusPriced,
		AreaBand:             rate.AreaBandLabel,
		SpaceType:            in.SpaceType,
		Tenure:               in.Tenure,
		PeriodCount:          in.PeriodCount,
		PeriodUnit:           in.PeriodUnit,
		DurationAdjusted:     in.DurationAdjusted,
		AreaRequested:        in.AreaRequested,
		MonthlyRatePerArea:   rate.MonthlyRatePerArea,
		DailyRatePerArea:     rate.DailyRatePerArea,
		UtilitiesMode:        in.UtilitiesMode,
		UtilitiesDescription: ewa.Description(in.UtilitiesMode),
		MinChargeableArea:    rate.MinChargeableArea,
		PackageStartingPrice: rate.PackageStartingPrice,
		Suggestions:          []types.Suggestion{},
	}

	// 1. chargeable area
	res.ChargeableArea = rate.ChargeableArea(in.AreaRequested)

	// 2. warehouse rent
	res.WarehouseRentPerPeriod = rate.RatePerArea(in.PeriodUnit).Mul(res.ChargeableArea)
	res.WarehouseRentTotal = res.WarehouseRentPerPeriod.Mul(periods)

	// 3. office
	res.OfficeIncluded = in.IncludeOffice
	res.OfficeCostPerPeriod, res.OfficeWaived = officePerPeriod(in, res.ChargeableArea, settings)
	res.OfficeCostTotal = res.OfficeCostPerPeriod.Mul(periods)

	// 4. utilities, once per lease
	res.UtilitiesSetupCost = ewa.SetupCost(in.UtilitiesMode)

	// 5. services are display lines only
	res.Services = serviceLines(in.SelectedServiceIDs, services)

	// 6-7. totals
	res.PerPeriodTotal = res.WarehouseRentPerPeriod.Add(res.OfficeCostPerPeriod)
	res.Subtotal = res.WarehouseRentTotal.Add(res.OfficeCostTotal).Add(res.UtilitiesSetupCost)

	// 8. minimum charge
	applyMinimumCharge(&res, settings.MinimumCharge, periods)

	// 9. discount, floor again, then VAT
	res.DiscountAmount = in.FixedDiscount.Add(res.Subtotal.Mul(in.PercentDiscount).Div(hundred))
	res.GrandTotal = res.Subtotal.Sub(res.DiscountAmount)
	if res.GrandTotal.LessThan(settings.MinimumCharge) {
		res.GrandTotal = settings.MinimumCharge
		res.MinimumChargeApplied = true
	}
	res.VATAmount = res.GrandTotal.Mul(settings.VATPercent).Div(hundred)
	res.GrandTotal = res.GrandTotal.Add(res.VATAmount)

	// 10. display breakdown; never summed back into totals
	res.Breakdown = breakdown(in.PeriodCount, res.WarehouseRentPerPeriod, res.OfficeCostPerPeriod, res.PerPeriodTotal)

	return res, nil
}

// checkSettings rejects settings that were never populated. Required keys are
// validated when settings are parsed; this catches zero-value structs.
func checkSettings(s types.SystemSettings) error {
	if !s.DaysPerMonth.IsPositive() {
		return errors.MissingSetting("days_per_month")
	}
	if s.MinimumCharge.IsNegative() {
		return errors.New(errors.TypeConfig, "minimum_charge must not be negative")
	}
	if s.OfficeMonthlyRate.IsNegative() {
		return errors.New(errors.TypeConfig, "office_monthly_rate must not be negative")
	}
	return nil
}

// officePerPeriod returns the office cost for one billing period, and whether
// it was waived for a large chargeable area
func officePerPeriod(in types.NormalizedInputs, chargeable decimal.Decimal, s types.SystemSettings) (decimal.Decimal, bool) {
	if !in.IncludeOffice {
		return decimal.Zero, false
	}
	if s.OfficeFreeAreaThreshold.IsPositive() && chargeable.GreaterThanOrEqual(s.OfficeFreeAreaThreshold) {
		return decimal.Zero, true
	}
	if in.PeriodUnit == types.PeriodDay {
		return s.OfficeMonthlyRate.Div(s.DaysPerMonth), false
	}
	return s.OfficeMonthlyRate, false
}

// applyMinimumCharge enforces the price floor. Below SmallAreaThreshold a
// recurring total under the minimum lifts the subtotal to the minimum plus
// utilities setup; any subtotal under the minimum is lifted to the minimum.
// Whenever the subtotal moves, the per-period total is re-derived from it so
// PerPeriodTotal x periods + UtilitiesSetupCost == Subtotal still holds.
func applyMinimumCharge(res *types.CalculationResult, minimum, periods decimal.Decimal) {
	floor := minimum
	recurring := res.PerPeriodTotal.Mul(periods)
	if res.AreaRequested.LessThan(SmallAreaThreshold) && recurring.LessThan(minimum) {
		floor = minimum.Add(res.UtilitiesSetupCost)
	}
	if !res.Subtotal.LessThan(floor) {
		return
	}

	res.Subtotal = floor
	res.PerPeriodTotal = floor.Sub(res.UtilitiesSetupCost).Div(periods)
	res.MinimumChargeApplied = true
}

// serviceLines resolves selected IDs in selection order. Unknown IDs are skipped.
func serviceLines(ids []string, catalog []types.OptionalService) []types.ServiceLine {
	lines := make([]types.ServiceLine, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		for _, svc := range catalog {
			if svc.ID != id {
				continue
			}
			lines = append(lines, types.ServiceLine{
				ID:          svc.ID,
				Name:        svc.Name,
				Description: svc.Description,
				PricingMode: svc.PricingMode,
				Rate:        svc.EffectiveRate(),
				Unit:        svc.Unit,
				IsFree:      svc.IsFree,
			})
			break
		}
	}
	return lines
}

// breakdown repeats the per-period lines. TopUp carries whatever the minimum
// charge added on top of rent and office.
func breakdown(count int, warehouse, office, total decimal.Decimal) []types.BreakdownEntry {
	entries := make([]types.BreakdownEntry, count)
	topUp := total.Sub(warehouse).Sub(office)
	for i := range entries {
		entries[i] = types.BreakdownEntry{
			Period:    i + 1,
			Warehouse: warehouse,
			Office:    office,
			TopUp:     topUp,
			Total:     total,
		}
	}
	return entries
}

func zeroResult(in types.NormalizedInputs, status types.QuoteStatus, band string) types.CalculationResult {
	return types.CalculationResult{
		Status:                 status,
		AreaBand:               band,
		SpaceType:              in.SpaceType,
		Tenure:                 in.Tenure,
		PeriodCount:            in.PeriodCount,
		PeriodUnit:             in.PeriodUnit,
		DurationAdjusted:       in.DurationAdjusted,
		AreaRequested:          in.AreaRequested,
		ChargeableArea:         decimal.Zero,
		MonthlyRatePerArea:     decimal.Zero,
		DailyRatePerArea:       decimal.Zero,
		WarehouseRentPerPeriod: decimal.Zero,
		WarehouseRentTotal:     decimal.Zero,
		OfficeIncluded:         in.IncludeOffice,
		OfficeCostPerPeriod:    decimal.Zero,
		OfficeCostTotal:        decimal.Zero,
		UtilitiesMode:          in.UtilitiesMode,
		UtilitiesSetupCost:     decimal.Zero,
		Services:               []types.ServiceLine{},
		PerPeriodTotal:         decimal.Zero,
		Subtotal:               decimal.Zero,
		DiscountAmount:         decimal.Zero,
		VATAmount:              decimal.Zero,
		GrandTotal:             decimal.Zero,
		Suggestions:            []types.Suggestion{},
		Breakdown:              []types.BreakdownEntry{},
		MinChargeableArea:      decimal.Zero,
	}
}
