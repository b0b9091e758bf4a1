// Package catalog - Rate table validation
// Ensures table integrity and enforces band invariants at load time.
package catalog

import (
	"fmt"

	"warehouse-quote/core/types"
	"warehouse-quote/internal/errors"
)

// ValidationRule inspects a whole table and reports every violation it finds
type ValidationRule func(*RateTable) []error

// DefaultValidationRules returns the standard validation rules
func DefaultValidationRules() []ValidationRule {
	return []ValidationRule{
		validateEnums,
		validateBounds,
		validateNonNegativeRates,
		validateNoOverlap,
	}
}

// Validate checks a table against validation rules
func (t *RateTable) Validate(rules []ValidationRule) []error {
	var errs []error
	for _, rule := range rules {
		errs = append(errs, rule(t)...)
	}
	return errs
}

func newValidationError(errs []error) error {
	return errors.Catalog(
		fmt.Sprintf("rate table has %d validation error(s)", len(errs)),
		errors.Join(errs...),
	).WithContext("violations", len(errs))
}

func rateRef(i int, r types.TieredRate) string {
	return fmt.Sprintf("rate[%d] %s/%s %q", i, r.SpaceType, r.Tenure, r.AreaBandLabel)
}

// validateEnums rejects rows with unknown space types or tenures
func validateEnums(t *RateTable) []error {
	var errs []error
	for i, r := range t.rates {
		if !r.SpaceType.IsValid() {
			errs = append(errs, fmt.Errorf("%s: unknown space type", rateRef(i, r)))
		}
		if !r.Tenure.IsValid() {
			errs = append(errs, fmt.Errorf("%s: unknown tenure", rateRef(i, r)))
		}
	}
	return errs
}

// validateBounds ensures 0 <= area_min <= area_max and a non-negative billing floor
func validateBounds(t *RateTable) []error {
	var errs []error
	for i, r := range t.rates {
		if r.AreaMin.IsNegative() {
			errs = append(errs, fmt.Errorf("%s: area_min is negative", rateRef(i, r)))
		}
		if r.AreaMax != nil && r.AreaMax.LessThan(r.AreaMin) {
			errs = append(errs, fmt.Errorf("%s: area_max %s is below area_min %s", rateRef(i, r), r.AreaMax, r.AreaMin))
		}
		if r.MinChargeableArea.IsNegative() {
			errs = append(errs, fmt.Errorf("%s: min_chargeable_area is negative", rateRef(i, r)))
		}
	}
	return errs
}

// validateNonNegativeRates ensures per-area rates are >= 0
func validateNonNegativeRates(t *RateTable) []error {
	var errs []error
	for i, r := range t.rates {
		if r.MonthlyRatePerArea.IsNegative() || r.DailyRatePerArea.IsNegative() {
			errs = append(errs, fmt.Errorf("%s: negative rate per area", rateRef(i, r)))
		}
	}
	return errs
}

// validateNoOverlap ensures active bands of one space type and tenure are disjoint.
// Inactive rows are never selected, so they may overlap anything.
func validateNoOverlap(t *RateTable) []error {
	var errs []error
	for i := 0; i < len(t.rates); i++ {
		a := t.rates[i]
		if !a.Active {
			continue
		}
		for j := i + 1; j < len(t.rates); j++ {
			b := t.rates[j]
			if !b.Active || a.SpaceType != b.SpaceType || a.Tenure != b.Tenure {
				continue
			}
			if a.Overlaps(b) {
				errs = append(errs, fmt.Errorf("%s overlaps %s", rateRef(i, a), rateRef(j, b)))
			}
		}
	}
	return errs
}
