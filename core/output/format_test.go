package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"warehouse-quote/core/types"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.000 BHD"},
		{"450", "450.000 BHD"},
		{"12.3456", "12.346 BHD"},
		{"0.0004", "0.000 BHD"},
		{"1234567.8", "1234567.800 BHD"},
	}

	for _, tt := range tests {
		if got := FormatCurrency(dec(tt.in)); got != tt.want {
			t.Errorf("FormatCurrency(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatArea(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"30", "30.0 m²"},
		{"52.25", "52.3 m²"},
		{"0", "0.0 m²"},
	}

	for _, tt := range tests {
		if got := FormatArea(dec(tt.in)); got != tt.want {
			t.Errorf("FormatArea(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPeriods(t *testing.T) {
	if got := FormatPeriods(1, types.PeriodMonth); got != "1 month" {
		t.Errorf("got %q", got)
	}
	if got := FormatPeriods(12, types.PeriodMonth); got != "12 months" {
		t.Errorf("got %q", got)
	}
	if got := FormatRate(dec("0.8"), types.PeriodDay); got != "0.800 BHD/m²/day" {
		t.Errorf("got %q", got)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "TEXT": FormatText, "table": FormatText, "json": FormatJSON, "yml": FormatYAML} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("pdf"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	if got := r.Formats(); len(got) != 3 || got[0] != FormatJSON || got[1] != FormatText || got[2] != FormatYAML {
		t.Fatalf("unexpected formats: %v", got)
	}
	if err := r.Register(&TextFormatter{}); err == nil {
		t.Error("duplicate registration should fail")
	}
	if _, ok := r.Get("markdown"); ok {
		t.Error("markdown should not be registered")
	}
}

func pricedResult() types.CalculationResult {
	return types.CalculationResult{
		Status:                 types.StatusPriced,
		AreaBand:               "1-100 m²",
		SpaceType:              types.SpaceGroundFloor,
		Tenure:                 types.TenureShort,
		PeriodCount:            6,
		PeriodUnit:             types.PeriodMonth,
		AreaRequested:          dec("20"),
		ChargeableArea:         dec("30"),
		MonthlyRatePerArea:     dec("2.5"),
		DailyRatePerArea:       dec("0.1"),
		WarehouseRentPerPeriod: dec("75"),
		WarehouseRentTotal:     dec("450"),
		OfficeIncluded:         true,
		OfficeCostPerPeriod:    dec("150"),
		OfficeCostTotal:        dec("900"),
		UtilitiesMode:          types.UtilitiesHouseLoad,
		UtilitiesDescription:   "Included in rent",
		UtilitiesSetupCost:     decimal.Zero,
		PerPeriodTotal:         dec("225"),
		Subtotal:               dec("1350"),
		DiscountAmount:         dec("50"),
		GrandTotal:             dec("1300"),
		MinChargeableArea:      dec("30"),
		Services: []types.ServiceLine{
			{ID: "forklift", Name: "Forklift", PricingMode: types.ServiceHourly, Rate: dec("15"), Unit: "hour"},
			{ID: "cctv", Name: "CCTV", PricingMode: types.ServiceFixed, IsFree: true},
		},
		Suggestions: []types.Suggestion{{Type: types.SuggestionAreaOptimization, Message: "Use the full 30.0 m²."}},
	}
}

func TestNewReport(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	r := NewReport(pricedResult(), ReportMeta{Reference: "Q-1", GeneratedAt: at, CatalogHash: "abc"})

	if r.Header.GeneratedAt != "2026-03-01T10:00:00Z" || r.Header.Currency != "BHD" {
		t.Errorf("unexpected header: %+v", r.Header)
	}
	if r.Property.ChargeableArea != "30.0 m²" || r.Property.Duration != "6 months" {
		t.Errorf("unexpected property details: %+v", r.Property)
	}
	if r.Property.Rate != "2.500 BHD/m²/month" {
		t.Errorf("rate = %q", r.Property.Rate)
	}
	if len(r.Pricing) != 4 {
		t.Errorf("expected rent and office lines, got %+v", r.Pricing)
	}
	if r.Totals.GrandTotal != "1300.000 BHD" || r.Totals.VAT != "" {
		t.Errorf("unexpected totals: %+v", r.Totals)
	}
	if r.Services[0].Amount != "15.000 BHD/hour" || r.Services[1].Amount != "Free" {
		t.Errorf("unexpected services: %+v", r.Services)
	}
	if len(r.Footer.Notes) != 2 {
		t.Errorf("expected minimum-area and services notes, got %v", r.Footer.Notes)
	}
}

func TestNewReportUnpriced(t *testing.T) {
	res := types.CalculationResult{
		Status:      types.StatusPricingUnavailable,
		AreaBand:    types.BandUnavailable,
		SpaceType:   types.SpaceMezzanine,
		Tenure:      types.TenureLong,
		PeriodCount: 12,
		PeriodUnit:  types.PeriodMonth,
	}
	r := NewReport(res, ReportMeta{})

	if r.Property.Rate != "" || len(r.Pricing) != 0 {
		t.Errorf("unpriced report should carry no rate lines: %+v", r)
	}
	if r.Totals.GrandTotal != "0.000 BHD" {
		t.Errorf("grand total = %q", r.Totals.GrandTotal)
	}
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	r := NewReport(pricedResult(), ReportMeta{Reference: "Q-1"})
	if err := (&TextFormatter{}).Render(&buf, r); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"WAREHOUSE RENTAL QUOTE", "1300.000 BHD", "30.0 m²", "OPTIONAL SERVICES", "Suggestions:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// all box rows share a width
	width := -1
	for _, line := range strings.Split(out, "\n") {
		if !strings.HasPrefix(line, "│") {
			continue
		}
		n := len([]rune(line))
		if width == -1 {
			width = n
		} else if n != width {
			t.Errorf("row width %d, want %d: %q", n, width, line)
		}
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	r := NewReport(pricedResult(), ReportMeta{})
	if err := (&JSONFormatter{}).Render(&buf, r); err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	totals := decoded["totals"].(map[string]any)
	if totals["grand_total"] != "1300.000 BHD" {
		t.Errorf("grand_total = %v", totals["grand_total"])
	}
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	r := NewReport(pricedResult(), ReportMeta{Reference: "WQ-1"})
	if err := (&YAMLFormatter{}).Render(&buf, r); err != nil {
		t.Fatal(err)
	}

	var decoded Report
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if decoded.Totals.GrandTotal != "1300.000 BHD" || decoded.Header.Reference != "WQ-1" {
		t.Errorf("unexpected report: %+v", decoded)
	}
	if !strings.Contains(buf.String(), "grand_total:") {
		t.Errorf("keys should use snake_case:\n%s", buf.String())
	}
}
