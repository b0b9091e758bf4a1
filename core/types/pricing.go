// Package types - Pricing types
package types

import (
	"github.com/shopspring/decimal"
)

// TieredRate is one pricing band for a space type and tenure
type TieredRate struct {
	// SpaceType is the floor the band applies to
	SpaceType SpaceType `json:"space_type"`

	// AreaBandLabel is the display label (e.g. "30-100 m²")
	AreaBandLabel string `json:"area_band_label"`

	// AreaMin is the inclusive lower bound of the band
	AreaMin decimal.Decimal `json:"area_min"`

	// AreaMax is the inclusive upper bound (nil = and above)
	AreaMax *decimal.Decimal `json:"area_max,omitempty"`

	// Tenure is the contract class the band applies to
	Tenure Tenure `json:"tenure"`

	// MonthlyRatePerArea is the rate per m² per month
	MonthlyRatePerArea decimal.Decimal `json:"monthly_rate_per_area"`

	// DailyRatePerArea is the rate per m² per day
	DailyRatePerArea decimal.Decimal `json:"daily_rate_per_area"`

	// MinChargeableArea is the billing floor for the band
	MinChargeableArea decimal.Decimal `json:"min_chargeable_area"`

	// PackageStartingPrice is display-only
	PackageStartingPrice *decimal.Decimal `json:"package_starting_price,omitempty"`

	// Active rates are the only ones ever selected
	Active bool `json:"active"`
}

// Contains reports whether area falls inside [AreaMin, AreaMax]
func (r TieredRate) Contains(area decimal.Decimal) bool {
	if area.LessThan(r.AreaMin) {
		return false
	}
	return r.AreaMax == nil || area.LessThanOrEqual(*r.AreaMax)
}

// Overlaps reports whether two bands share any area value
func (r TieredRate) Overlaps(other TieredRate) bool {
	if r.AreaMax != nil && other.AreaMin.GreaterThan(*r.AreaMax) {
		return false
	}
	if other.AreaMax != nil && r.AreaMin.GreaterThan(*other.AreaMax) {
		return false
	}
	return true
}

// RatePerArea returns the rate that applies to the given billing unit
func (r TieredRate) RatePerArea(unit PeriodUnit) decimal.Decimal {
	if unit == PeriodDay {
		return r.DailyRatePerArea
	}
	return r.MonthlyRatePerArea
}

// ChargeableArea returns max(requested, MinChargeableArea)
func (r TieredRate) ChargeableArea(requested decimal.Decimal) decimal.Decimal {
	return decimal.Max(requested, r.MinChargeableArea)
}

// EWASettings configures electricity and water costs
type EWASettings struct {
	// HouseLoadDescription explains the bundled mode
	HouseLoadDescription string `json:"house_load_description"`

	// DedicatedMeterDescription explains the metered mode
	DedicatedMeterDescription string `json:"dedicated_meter_description"`

	// DepositAmount is refundable and charged once for a dedicated meter
	DepositAmount decimal.Decimal `json:"deposit_amount"`

	// InstallationFee is charged once for a dedicated meter
	InstallationFee decimal.Decimal `json:"installation_fee"`
}

// SetupCost returns the one-off cost for the mode
func (e EWASettings) SetupCost(mode UtilitiesMode) decimal.Decimal {
	if mode != UtilitiesDedicatedMeter {
		return decimal.Zero
	}
	return e.DepositAmount.Add(e.InstallationFee)
}

// Description returns the text for the mode
func (e EWASettings) Description(mode UtilitiesMode) string {
	if mode == UtilitiesDedicatedMeter {
		return e.DedicatedMeterDescription
	}
	return e.HouseLoadDescription
}

// ServicePricingMode is how an optional service is charged
type ServicePricingMode string

const (
	ServiceFixed     ServicePricingMode = "fixed"
	ServiceHourly    ServicePricingMode = "hourly"
	ServicePerEvent  ServicePricingMode = "per_event"
	ServiceOnRequest ServicePricingMode = "on_request"
)

// IsValid checks if the pricing mode is known
func (m ServicePricingMode) IsValid() bool {
	switch m {
	case ServiceFixed, ServiceHourly, ServicePerEvent, ServiceOnRequest:
		return true
	default:
		return false
	}
}

// OptionalService is an ancillary line item
type OptionalService struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	PricingMode ServicePricingMode `json:"pricing_mode"`
	Rate        decimal.Decimal    `json:"rate"`
	Unit        string             `json:"unit,omitempty"`
	IsFree      bool               `json:"is_free"`
}

// EffectiveRate is zero for free services and for quotes on request
func (s OptionalService) EffectiveRate() decimal.Decimal {
	if s.IsFree || s.PricingMode == ServiceOnRequest {
		return decimal.Zero
	}
	return s.Rate
}

// SystemSettings holds required numeric configuration.
// Values are parsed once from the stored key/value map; see config.ParseSystemSettings.
type SystemSettings struct {
	// OfficeMonthlyRate is the price of an office per month
	OfficeMonthlyRate decimal.Decimal `json:"office_monthly_rate"`

	// MinimumCharge is the global price floor
	MinimumCharge decimal.Decimal `json:"minimum_charge"`

	// DaysPerMonth converts monthly prices to daily ones
	DaysPerMonth decimal.Decimal `json:"days_per_month"`

	// OfficeFreeAreaThreshold waives office cost at or above this chargeable area (0 = never)
	OfficeFreeAreaThreshold decimal.Decimal `json:"office_free_area_threshold"`

	// VATPercent is applied to the grand total after discounts (optional, 0 = none)
	VATPercent decimal.Decimal `json:"vat_percent"`
}
