package pricing

import "warehouse-quote/core/types"

// MinLongTenureMonths is the shortest lease billed at long-term rates
const MinLongTenureMonths = 12

// Longest accepted terms: ten years of days, a hundred years of months.
// The breakdown holds one row per period, so the term must stay bounded.
const (
	MaxDurationDays   = 3650
	MaxDurationMonths = 1200
)

// MaxDuration returns the longest accepted raw duration for a tenure
func MaxDuration(tenure types.Tenure) int {
	if tenure == types.TenureVeryShort {
		return MaxDurationDays
	}
	return MaxDurationMonths
}

// Duration is a lease term expressed in billing periods
type Duration struct {
	PeriodCount int
	PeriodUnit  types.PeriodUnit

	// Adjusted is set when the requested value was corrected
	Adjusted bool
}

// NormalizeDuration converts a tenure and raw duration into billing periods.
// Days for very short tenure, months otherwise; never fewer than one period,
// and long tenure is raised to MinLongTenureMonths. The tenure itself is never
// reclassified.
func NormalizeDuration(tenure types.Tenure, value int) Duration {
	d := Duration{PeriodCount: value, PeriodUnit: types.PeriodMonth}
	if tenure == types.TenureVeryShort {
		d.PeriodUnit = types.PeriodDay
	}

	if d.PeriodCount < 1 {
		d.PeriodCount = 1
		d.Adjusted = true
	}
	if tenure == types.TenureLong && d.PeriodCount < MinLongTenureMonths {
		d.PeriodCount = MinLongTenureMonths
		d.Adjusted = true
	}
	return d
}

// NormalizeInputs returns a new value carrying the normalized term.
// The caller's inputs are left untouched, including the service ID slice.
func NormalizeInputs(in types.CalculationInputs) types.NormalizedInputs {
	d := NormalizeDuration(in.Tenure, in.DurationValue)

	cp := in
	if in.SelectedServiceIDs != nil {
		cp.SelectedServiceIDs = append([]string(nil), in.SelectedServiceIDs...)
	}

	return types.NormalizedInputs{
		CalculationInputs: cp,
		PeriodCount:       d.PeriodCount,
		PeriodUnit:        d.PeriodUnit,
		DurationAdjusted:  d.Adjusted,
	}
}
