package output

import (
	"time"

	"warehouse-quote/core/types"
)

// ReportMeta is context that does not come from the calculation itself
type ReportMeta struct {
	// Reference identifies the quote (request ID, quote number)
	Reference string

	// GeneratedAt is when the quote was produced
	GeneratedAt time.Time

	// CatalogHash identifies the rate snapshot that priced the quote
	CatalogHash string

	// Version is the tool version
	Version string
}

// Report is the export model of a quote. Every amount is pre-formatted.
type Report struct {
	Header      ReportHeader    `json:"header" yaml:"header"`
	Property    PropertyDetails `json:"property" yaml:"property"`
	Pricing     []ReportLine    `json:"pricing" yaml:"pricing"`
	Services    []ReportLine    `json:"services,omitempty" yaml:"services,omitempty"`
	Totals      ReportTotals    `json:"totals" yaml:"totals"`
	Suggestions []string        `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
	Footer      ReportFooter    `json:"footer" yaml:"footer"`
}

// ReportHeader identifies the document
type ReportHeader struct {
	Title       string `json:"title" yaml:"title"`
	Reference   string `json:"reference,omitempty" yaml:"reference,omitempty"`
	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	Currency    string `json:"currency" yaml:"currency"`
}

// PropertyDetails describes the space being quoted
type PropertyDetails struct {
	SpaceType      string `json:"space_type" yaml:"space_type"`
	AreaRequested  string `json:"area_requested" yaml:"area_requested"`
	ChargeableArea string `json:"chargeable_area" yaml:"chargeable_area"`
	AreaBand       string `json:"area_band" yaml:"area_band"`
	Tenure         string `json:"tenure" yaml:"tenure"`
	Duration       string `json:"duration" yaml:"duration"`
	Rate           string `json:"rate,omitempty" yaml:"rate,omitempty"`
	Office         string `json:"office" yaml:"office"`
	Utilities      string `json:"utilities" yaml:"utilities"`
}

// ReportLine is a labelled amount
type ReportLine struct {
	Label  string `json:"label" yaml:"label"`
	Amount string `json:"amount" yaml:"amount"`
}

// ReportTotals holds the committed totals
type ReportTotals struct {
	PerPeriod  string `json:"per_period" yaml:"per_period"`
	Subtotal   string `json:"subtotal" yaml:"subtotal"`
	Discount   string `json:"discount" yaml:"discount"`
	VAT        string `json:"vat,omitempty" yaml:"vat,omitempty"`
	GrandTotal string `json:"grand_total" yaml:"grand_total"`
}

// ReportFooter carries notes and provenance
type ReportFooter struct {
	Notes       []string `json:"notes,omitempty" yaml:"notes,omitempty"`
	CatalogHash string   `json:"catalog_hash,omitempty" yaml:"catalog_hash,omitempty"`
	Version     string   `json:"version,omitempty" yaml:"version,omitempty"`
}

// NewReport builds the export model for a result
func NewReport(res types.CalculationResult, meta ReportMeta) *Report {
	generated := meta.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}

	r := &Report{
		Header: ReportHeader{
			Title:       "Warehouse Rental Quote",
			Reference:   meta.Reference,
			GeneratedAt: generated.UTC().Format(time.RFC3339),
			Currency:    types.CurrencyBHD.String(),
		},
		Property: PropertyDetails{
			SpaceType:      res.SpaceType.Label(),
			AreaRequested:  FormatArea(res.AreaRequested),
			ChargeableArea: FormatArea(res.ChargeableArea),
			AreaBand:       res.AreaBand,
			Tenure:         res.Tenure.Label(),
			Duration:       FormatPeriods(res.PeriodCount, res.PeriodUnit),
			Office:         officeLabel(res),
			Utilities:      utilitiesLabel(res),
		},
		Totals: ReportTotals{
			PerPeriod:  FormatCurrency(res.PerPeriodTotal),
			Subtotal:   FormatCurrency(res.Subtotal),
			Discount:   FormatCurrency(res.DiscountAmount),
			GrandTotal: FormatCurrency(res.GrandTotal),
		},
		Footer: ReportFooter{
			CatalogHash: meta.CatalogHash,
			Version:     meta.Version,
		},
	}

	if res.IsPriced() {
		r.Property.Rate = FormatRate(res.RatePerArea(), res.PeriodUnit)
		r.Pricing = []ReportLine{
			{Label: "Warehouse rent per " + res.PeriodUnit.String(), Amount: FormatCurrency(res.WarehouseRentPerPeriod)},
			{Label: "Warehouse rent total", Amount: FormatCurrency(res.WarehouseRentTotal)},
		}
		if res.OfficeIncluded {
			r.Pricing = append(r.Pricing,
				ReportLine{Label: "Office per " + res.PeriodUnit.String(), Amount: FormatCurrency(res.OfficeCostPerPeriod)},
				ReportLine{Label: "Office total", Amount: FormatCurrency(res.OfficeCostTotal)},
			)
		}
		if res.UtilitiesSetupCost.IsPositive() {
			r.Pricing = append(r.Pricing, ReportLine{Label: "EWA meter setup", Amount: FormatCurrency(res.UtilitiesSetupCost)})
		}
	}
	if !res.VATAmount.IsZero() {
		r.Totals.VAT = FormatCurrency(res.VATAmount)
	}

	for _, svc := range res.Services {
		r.Services = append(r.Services, ReportLine{Label: svc.Name, Amount: serviceAmount(svc)})
	}
	for _, s := range res.Suggestions {
		r.Suggestions = append(r.Suggestions, s.Message)
	}

	r.Footer.Notes = notes(res)
	return r
}

func officeLabel(res types.CalculationResult) string {
	switch {
	case !res.OfficeIncluded:
		return "Not included"
	case res.OfficeWaived:
		return "Included (no charge)"
	default:
		return "Included"
	}
}

func utilitiesLabel(res types.CalculationResult) string {
	label := res.UtilitiesMode.Label()
	if res.UtilitiesDescription != "" {
		label += ": " + res.UtilitiesDescription
	}
	return label
}

func serviceAmount(svc types.ServiceLine) string {
	switch {
	case svc.IsFree:
		return "Free"
	case svc.PricingMode == types.ServiceOnRequest:
		return "On request"
	case svc.Unit != "":
		return FormatCurrency(svc.Rate) + "/" + svc.Unit
	default:
		return FormatCurrency(svc.Rate)
	}
}

func notes(res types.CalculationResult) []string {
	var out []string
	if res.DurationAdjusted {
		out = append(out, "Duration adjusted to "+FormatPeriods(res.PeriodCount, res.PeriodUnit)+" for the selected tenure.")
	}
	if res.IsPriced() && res.AreaRequested.LessThan(res.MinChargeableArea) {
		out = append(out, "Billed on the band minimum of "+FormatArea(res.MinChargeableArea)+".")
	}
	if res.MinimumChargeApplied {
		out = append(out, "Minimum charge applied.")
	}
	if len(res.Services) > 0 {
		out = append(out, "Optional services are quoted separately and not included in the total.")
	}
	return out
}
