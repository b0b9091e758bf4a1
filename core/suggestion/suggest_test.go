package suggestion

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"warehouse-quote/core/catalog"
	"warehouse-quote/core/pricing"
	"warehouse-quote/core/types"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func rate(space types.SpaceType, tenure types.Tenure, monthly, daily, minArea string) types.TieredRate {
	return types.TieredRate{
		SpaceType:          space,
		Tenure:             tenure,
		AreaBandLabel:      "1+",
		AreaMin:            dec("1"),
		MonthlyRatePerArea: dec(monthly),
		DailyRatePerArea:   dec(daily),
		MinChargeableArea:  dec(minArea),
		Active:             true,
	}
}

func inputs(space types.SpaceType, area string, tenure types.Tenure, duration int) types.NormalizedInputs {
	return pricing.NormalizeInputs(types.CalculationInputs{
		SpaceType:     space,
		AreaRequested: dec(area),
		Tenure:        tenure,
		DurationValue: duration,
	})
}

func byType(list []types.Suggestion, typ types.SuggestionType) []types.Suggestion {
	var out []types.Suggestion
	for _, s := range list {
		if s.Type == typ {
			out = append(out, s)
		}
	}
	return out
}

func TestTenureSavings(t *testing.T) {
	short := rate(types.SpaceGroundFloor, types.TenureShort, "2.5", "0.1", "30")

	tests := []struct {
		name     string
		longRate string
		duration int
		want     int
		savings  string
	}{
		{"cheaper long rate at twelve months", "2.0", 12, 1, "50"},
		{"cheaper long rate beyond a year", "2.0", 18, 1, "50"},
		{"equal long rate", "2.5", 12, 0, ""},
		{"dearer long rate", "3.0", 12, 0, ""},
		{"under twelve months", "2.0", 11, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := catalog.NewUncheckedRateTable([]types.TieredRate{
				short,
				rate(types.SpaceGroundFloor, types.TenureLong, tt.longRate, "0.1", "30"),
			})
			in := inputs(types.SpaceGroundFloor, "100", types.TenureShort, tt.duration)
			current := PerPeriodRent(short, in.AreaRequested, in.PeriodUnit)

			got := byType(Suggest(in, short, current, table), types.SuggestionTenureSavings)
			if len(got) != tt.want {
				t.Fatalf("expected %d tenure suggestions, got %d", tt.want, len(got))
			}
			if tt.want == 1 {
				if !got[0].Savings.Equal(dec(tt.savings)) {
					t.Errorf("savings = %s, want %s", got[0].Savings, tt.savings)
				}
				if !got[0].Savings.IsPositive() {
					t.Error("emitted suggestion must have positive savings")
				}
			}
		})
	}
}

func TestTenureSavingsOnlyForShortTenure(t *testing.T) {
	long := rate(types.SpaceGroundFloor, types.TenureLong, "1.0", "0.1", "30")
	table := catalog.NewUncheckedRateTable([]types.TieredRate{long})
	in := inputs(types.SpaceGroundFloor, "100", types.TenureLong, 24)

	got := Suggest(in, long, dec("500"), table)
	if len(byType(got, types.SuggestionTenureSavings)) != 0 {
		t.Error("long tenure must not get a tenure suggestion")
	}
}

func TestSpaceAlternative(t *testing.T) {
	gf := rate(types.SpaceGroundFloor, types.TenureShort, "2.5", "0.1", "30")

	t.Run("cheaper mezzanine", func(t *testing.T) {
		table := catalog.NewUncheckedRateTable([]types.TieredRate{
			gf,
			rate(types.SpaceMezzanine, types.TenureShort, "1.5", "0.05", "30"),
		})
		in := inputs(types.SpaceGroundFloor, "100", types.TenureShort, 6)

		got := byType(Suggest(in, gf, dec("250"), table), types.SuggestionSpaceAlternative)
		if len(got) != 1 {
			t.Fatalf("expected one space suggestion, got %d", len(got))
		}
		if !got[0].SuggestedCost.Equal(dec("150")) || !got[0].Savings.Equal(dec("100")) {
			t.Errorf("suggested=%s savings=%s, want 150 and 100", got[0].SuggestedCost, got[0].Savings)
		}
	})

	t.Run("dearer mezzanine", func(t *testing.T) {
		table := catalog.NewUncheckedRateTable([]types.TieredRate{
			gf,
			rate(types.SpaceMezzanine, types.TenureShort, "3.0", "0.2", "30"),
		})
		in := inputs(types.SpaceGroundFloor, "100", types.TenureShort, 6)

		if got := byType(Suggest(in, gf, dec("250"), table), types.SuggestionSpaceAlternative); len(got) != 0 {
			t.Errorf("expected no space suggestion, got %d", len(got))
		}
	})

	t.Run("derived very short mezzanine", func(t *testing.T) {
		vs := rate(types.SpaceGroundFloor, types.TenureVeryShort, "3.0", "1.0", "30")
		table := catalog.NewUncheckedRateTable([]types.TieredRate{vs})
		in := inputs(types.SpaceGroundFloor, "50", types.TenureVeryShort, 10)
		current := PerPeriodRent(vs, in.AreaRequested, in.PeriodUnit)

		got := byType(Suggest(in, vs, current, table), types.SuggestionSpaceAlternative)
		if len(got) != 1 {
			t.Fatalf("expected one space suggestion, got %d", len(got))
		}
		// 50 m² x 1.0/day vs 50 m² x 0.8/day
		if !got[0].Savings.Equal(dec("10")) {
			t.Errorf("savings = %s, want 10", got[0].Savings)
		}
	})

	t.Run("not offered for mezzanine", func(t *testing.T) {
		mz := rate(types.SpaceMezzanine, types.TenureShort, "1.5", "0.05", "30")
		table := catalog.NewUncheckedRateTable([]types.TieredRate{mz})
		in := inputs(types.SpaceMezzanine, "100", types.TenureShort, 6)

		if got := byType(Suggest(in, mz, dec("150"), table), types.SuggestionSpaceAlternative); len(got) != 0 {
			t.Error("mezzanine quotes must not get a space suggestion")
		}
	})
}

func TestAreaOptimization(t *testing.T) {
	r := rate(types.SpaceGroundFloor, types.TenureShort, "2.5", "0.1", "30")
	table := catalog.NewUncheckedRateTable([]types.TieredRate{r})

	in := inputs(types.SpaceGroundFloor, "20", types.TenureShort, 6)
	got := byType(Suggest(in, r, dec("75"), table), types.SuggestionAreaOptimization)
	if len(got) != 1 {
		t.Fatalf("expected one area suggestion, got %d", len(got))
	}
	// 20 m² vs 30 m² at 2.5
	if !got[0].CurrentCost.Equal(dec("50")) || !got[0].SuggestedCost.Equal(dec("75")) || !got[0].Savings.Equal(dec("25")) {
		t.Errorf("unexpected costs: %+v", got[0])
	}
	if !strings.Contains(got[0].Message, "30.0 m²") {
		t.Errorf("message should mention the billed area: %q", got[0].Message)
	}

	in = inputs(types.SpaceGroundFloor, "30", types.TenureShort, 6)
	if got := byType(Suggest(in, r, dec("75"), table), types.SuggestionAreaOptimization); len(got) != 0 {
		t.Error("no area suggestion once the minimum is reached")
	}
}

func TestPricingUnavailable(t *testing.T) {
	s := PricingUnavailable(inputs(types.SpaceMezzanine, "5000", types.TenureLong, 12))
	if s.Type != types.SuggestionPricingTier {
		t.Errorf("type = %s, want pricing_tier", s.Type)
	}
	if !strings.Contains(s.Message, "custom quote") {
		t.Errorf("message should point to a custom quote: %q", s.Message)
	}
	if !s.Savings.IsZero() {
		t.Error("pricing tier suggestion carries no savings")
	}
}
