// Package types - Quote input and result types
package types

import "github.com/shopspring/decimal"

// Currency represents a currency code
type Currency string

const (
	CurrencyBHD Currency = "BHD"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// CalculationInputs is a single quote request. Treat as immutable.
type CalculationInputs struct {
	SpaceType     SpaceType       `json:"space_type"`
	AreaRequested decimal.Decimal `json:"area_requested"`
	Tenure        Tenure          `json:"tenure"`

	// DurationValue is days for VeryShort, months otherwise
	DurationValue int `json:"duration_value"`

	IncludeOffice      bool          `json:"include_office"`
	UtilitiesMode      UtilitiesMode `json:"utilities_mode"`
	SelectedServiceIDs []string      `json:"selected_service_ids,omitempty"`

	// PercentDiscount is a percentage of the subtotal (0-100)
	PercentDiscount decimal.Decimal `json:"percent_discount"`

	// FixedDiscount is an absolute amount taken off the subtotal
	FixedDiscount decimal.Decimal `json:"fixed_discount"`
}

// NormalizedInputs are inputs with the lease term resolved into billing periods
type NormalizedInputs struct {
	CalculationInputs

	PeriodCount int        `json:"period_count"`
	PeriodUnit  PeriodUnit `json:"period_unit"`

	// DurationAdjusted is set when the requested duration was corrected
	DurationAdjusted bool `json:"duration_adjusted"`
}

// QuoteStatus describes which branch produced a result
type QuoteStatus string

const (
	StatusPriced             QuoteStatus = "priced"
	StatusZeroArea           QuoteStatus = "zero_area"
	StatusPricingUnavailable QuoteStatus = "pricing_unavailable"
)

// Sentinel band labels for unpriced results
const (
	BandNotApplicable = "N/A"
	BandUnavailable   = "Pricing Not Available"
)

// SuggestionType tags a suggestion
type SuggestionType string

const (
	SuggestionAreaOptimization SuggestionType = "area_optimization"
	SuggestionTenureSavings    SuggestionType = "tenure_savings"
	SuggestionSpaceAlternative SuggestionType = "space_alternative"
	SuggestionPricingTier      SuggestionType = "pricing_tier"
)

// Suggestion is an advisory alternative. It never changes committed totals.
type Suggestion struct {
	Type          SuggestionType  `json:"type"`
	Message       string          `json:"message"`
	CurrentCost   decimal.Decimal `json:"current_cost"`
	SuggestedCost decimal.Decimal `json:"suggested_cost"`
	Savings       decimal.Decimal `json:"savings"`
}

// ServiceLine is a selected optional service as shown on a quote
type ServiceLine struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	PricingMode ServicePricingMode `json:"pricing_mode"`
	Rate        decimal.Decimal    `json:"rate"`
	Unit        string             `json:"unit,omitempty"`
	IsFree      bool               `json:"is_free"`
}

// BreakdownEntry is one billing period of a quote
type BreakdownEntry struct {
	Period    int             `json:"period"`
	Warehouse decimal.Decimal `json:"warehouse"`
	Office    decimal.Decimal `json:"office"`
	TopUp     decimal.Decimal `json:"minimum_top_up"`
	Total     decimal.Decimal `json:"total"`
}

// CalculationResult is the complete, immutable quote
type CalculationResult struct {
	Status QuoteStatus `json:"status"`

	// Band and term
	AreaBand         string     `json:"area_band"`
	SpaceType        SpaceType  `json:"space_type"`
	Tenure           Tenure     `json:"tenure"`
	PeriodCount      int        `json:"period_count"`
	PeriodUnit       PeriodUnit `json:"period_unit"`
	DurationAdjusted bool       `json:"duration_adjusted"`

	// Area and rates
	AreaRequested      decimal.Decimal `json:"area_requested"`
	ChargeableArea     decimal.Decimal `json:"chargeable_area"`
	MonthlyRatePerArea decimal.Decimal `json:"monthly_rate_per_area"`
	DailyRatePerArea   decimal.Decimal `json:"daily_rate_per_area"`

	// Warehouse rent
	WarehouseRentPerPeriod decimal.Decimal `json:"warehouse_rent_per_period"`
	WarehouseRentTotal     decimal.Decimal `json:"warehouse_rent_total"`

	// Office
	OfficeIncluded      bool            `json:"office_included"`
	OfficeWaived        bool            `json:"office_waived"`
	OfficeCostPerPeriod decimal.Decimal `json:"office_cost_per_period"`
	OfficeCostTotal     decimal.Decimal `json:"office_cost_total"`

	// Utilities
	UtilitiesMode        UtilitiesMode   `json:"utilities_mode"`
	UtilitiesDescription string          `json:"utilities_description,omitempty"`
	UtilitiesSetupCost   decimal.Decimal `json:"utilities_setup_cost"`

	// Services are informational and not part of Subtotal
	Services []ServiceLine `json:"services"`

	// Totals
	PerPeriodTotal       decimal.Decimal `json:"per_period_total"`
	Subtotal             decimal.Decimal `json:"subtotal"`
	MinimumChargeApplied bool            `json:"minimum_charge_applied"`
	DiscountAmount       decimal.Decimal `json:"discount_amount"`
	VATAmount            decimal.Decimal `json:"vat_amount"`
	GrandTotal           decimal.Decimal `json:"grand_total"`

	Suggestions []Suggestion     `json:"suggestions"`
	Breakdown   []BreakdownEntry `json:"breakdown"`

	// Band metadata
	MinChargeableArea    decimal.Decimal  `json:"min_chargeable_area"`
	PackageStartingPrice *decimal.Decimal `json:"package_starting_price,omitempty"`
}

// IsPriced reports whether the result carries a real price
func (r CalculationResult) IsPriced() bool {
	return r.Status == StatusPriced
}

// RatePerArea returns the rate used for the billing unit of the quote
func (r CalculationResult) RatePerArea() decimal.Decimal {
	if r.PeriodUnit == PeriodDay {
		return r.DailyRatePerArea
	}
	return r.MonthlyRatePerArea
}
