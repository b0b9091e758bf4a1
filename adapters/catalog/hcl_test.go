package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"warehouse-quote/core/types"
	"warehouse-quote/internal/errors"
)

const validCatalog = `
rate "ground_floor" "short" {
  band                   = "1-100 m²"
  area_min               = 1
  area_max               = 100
  monthly_rate           = 2.5
  daily_rate             = "0.1"
  min_chargeable_area    = 30
  package_starting_price = 75
}

rate "ground_floor" "long" {
  band                = "1+ m²"
  area_min            = 1
  monthly_rate        = 2.0
  daily_rate          = 0.08
  min_chargeable_area = 30
  active              = false
}

ewa {
  house_load_description      = "Included"
  dedicated_meter_description = "Metered"
  deposit_amount              = 100
  installation_fee            = 50.125
}

service "forklift" {
  name         = "Forklift"
  pricing_mode = "hourly"
  rate         = 15
  unit         = "hour"
}

service "cctv" {
  name         = "CCTV"
  pricing_mode = "fixed"
  free         = true
}

settings = {
  office_monthly_rate        = 150
  minimum_charge             = 100
  days_per_month             = 30
  office_free_area_threshold = 0
}
`

func TestParseHCL(t *testing.T) {
	snap, err := ParseHCL([]byte(validCatalog), "catalog.hcl")
	if err != nil {
		t.Fatalf("ParseHCL returned error: %v", err)
	}

	if snap.Rates.Len() != 2 {
		t.Fatalf("expected 2 rates, got %d", snap.Rates.Len())
	}
	first := snap.Rates.At(0)
	if first.SpaceType != types.SpaceGroundFloor || first.Tenure != types.TenureShort || !first.Active {
		t.Errorf("unexpected first rate: %+v", first)
	}
	if !first.DailyRatePerArea.Equal(decimal.RequireFromString("0.1")) {
		t.Errorf("daily rate = %s, want exactly 0.1", first.DailyRatePerArea)
	}
	if first.AreaMax == nil || first.AreaMax.String() != "100" {
		t.Errorf("area max = %v", first.AreaMax)
	}
	if first.PackageStartingPrice == nil || first.PackageStartingPrice.String() != "75" {
		t.Errorf("package price = %v", first.PackageStartingPrice)
	}

	second := snap.Rates.At(1)
	if second.AreaMax != nil || second.Active {
		t.Errorf("open-ended inactive band expected: %+v", second)
	}

	if snap.EWA.InstallationFee.String() != "50.125" {
		t.Errorf("installation fee = %s", snap.EWA.InstallationFee)
	}
	if len(snap.Services) != 2 || !snap.Services[1].IsFree || snap.Services[0].Rate.String() != "15" {
		t.Errorf("unexpected services: %+v", snap.Services)
	}
	if snap.Settings.DaysPerMonth.String() != "30" || snap.Source != "catalog.hcl" || snap.ContentHash == "" {
		t.Errorf("unexpected snapshot metadata: %+v", snap)
	}
}

func TestParseHCLErrors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(string) string
		wantType errors.Type
	}{
		{
			name:     "syntax error",
			mutate:   func(s string) string { return s + "\nrate {" },
			wantType: errors.TypeCatalog,
		},
		{
			name:     "unknown tenure",
			mutate:   func(s string) string { return strings.Replace(s, `"ground_floor" "long"`, `"ground_floor" "weekly"`, 1) },
			wantType: errors.TypeCatalog,
		},
		{
			name: "overlapping active bands",
			mutate: func(s string) string {
				return s + `
rate "ground_floor" "short" {
  band                = "50-150 m²"
  area_min            = 50
  area_max            = 150
  monthly_rate        = 2.0
  daily_rate          = 0.1
  min_chargeable_area = 50
}
`
			},
			wantType: errors.TypeCatalog,
		},
		{
			name:     "non numeric rate",
			mutate:   func(s string) string { return strings.Replace(s, "monthly_rate           = 2.5", `monthly_rate = "cheap"`, 1) },
			wantType: errors.TypeCatalog,
		},
		{
			name:     "missing required setting",
			mutate:   func(s string) string { return strings.Replace(s, "minimum_charge             = 100\n", "", 1) },
			wantType: errors.TypeConfig,
		},
		{
			name:     "unknown service mode",
			mutate:   func(s string) string { return strings.Replace(s, `"hourly"`, `"monthly"`, 1) },
			wantType: errors.TypeCatalog,
		},
		{
			name:     "missing ewa",
			mutate:   func(s string) string { return strings.Replace(s, "ewa {", "ewa_disabled {", 1) },
			wantType: errors.TypeCatalog,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHCL([]byte(tt.mutate(validCatalog)), "catalog.hcl")
			if !errors.IsType(err, tt.wantType) {
				t.Errorf("expected %s, got %v", tt.wantType, err)
			}
		})
	}
}

func TestHCLSourceLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.hcl")
	if err := os.WriteFile(path, []byte(validCatalog), 0o644); err != nil {
		t.Fatal(err)
	}

	src := NewHCLSource(path, nil)
	first, err := src.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	// a second load re-reads the file rather than a cached parse
	updated := strings.Replace(validCatalog, "monthly_rate           = 2.5", "monthly_rate           = 2.7", 1)
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatal(err)
	}
	second, err := src.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if first.ContentHash == second.ContentHash {
		t.Error("content hash should change when the file changes")
	}
}

func TestHCLSourceMissingFile(t *testing.T) {
	_, err := NewHCLSource(filepath.Join(t.TempDir(), "none.hcl"), nil).Load(context.Background())
	if !errors.IsType(err, errors.TypeCatalog) {
		t.Errorf("expected CATALOG_ERROR, got %v", err)
	}
}

func TestShippedCatalogParses(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("..", "..", "config", "catalog.hcl"))
	if err != nil {
		t.Skipf("shipped catalog not found: %v", err)
	}
	snap, err := ParseHCL(src, "config/catalog.hcl")
	if err != nil {
		t.Fatalf("shipped catalog is invalid: %v", err)
	}
	if snap.Rates.Len() == 0 || snap.Settings.VATPercent.IsZero() {
		t.Errorf("unexpected shipped catalog: %d rates, vat %s", snap.Rates.Len(), snap.Settings.VATPercent)
	}
}
