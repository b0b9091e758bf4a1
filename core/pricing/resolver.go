// Package pricing provides rate resolution and lease-term normalization.
// Everything here is a pure function of its arguments.
package pricing

import (
	"github.com/shopspring/decimal"

	"warehouse-quote/core/catalog"
	"warehouse-quote/core/types"
)

// MezzanineFactor is applied to ground-floor very-short-term rates when no
// mezzanine very-short-term band exists
var MezzanineFactor = decimal.RequireFromString("0.8")

// Resolve finds the single tiered rate for a space type, area and tenure.
// Returns ok=false when nothing matches; that is a pricing-unavailable
// condition for the caller, not an error.
func Resolve(space types.SpaceType, area decimal.Decimal, tenure types.Tenure, table *catalog.RateTable) (types.TieredRate, bool) {
	if rate, ok := resolveDirect(space, area, tenure, table); ok {
		return rate, true
	}

	if space == types.SpaceMezzanine && tenure == types.TenureVeryShort {
		base, ok := resolveDirect(types.SpaceGroundFloor, area, tenure, table)
		if !ok {
			return types.TieredRate{}, false
		}
		return DeriveMezzanineRate(base), true
	}

	return types.TieredRate{}, false
}

// resolveDirect returns the first active band in table order containing area
func resolveDirect(space types.SpaceType, area decimal.Decimal, tenure types.Tenure, table *catalog.RateTable) (types.TieredRate, bool) {
	var (
		found types.TieredRate
		ok    bool
	)
	table.Each(func(r types.TieredRate) bool {
		if r.Active && r.SpaceType == space && r.Tenure == tenure && r.Contains(area) {
			found, ok = r, true
			return false
		}
		return true
	})
	return found, ok
}

// DeriveMezzanineRate returns a mezzanine copy of a ground-floor rate with both
// per-area rates multiplied by MezzanineFactor. The input is not modified.
func DeriveMezzanineRate(base types.TieredRate) types.TieredRate {
	derived := base
	derived.SpaceType = types.SpaceMezzanine
	derived.MonthlyRatePerArea = base.MonthlyRatePerArea.Mul(MezzanineFactor)
	derived.DailyRatePerArea = base.DailyRatePerArea.Mul(MezzanineFactor)
	if base.AreaMax != nil {
		upper := *base.AreaMax
		derived.AreaMax = &upper
	}
	if base.PackageStartingPrice != nil {
		p := *base.PackageStartingPrice
		derived.PackageStartingPrice = &p
	}
	return derived
}
