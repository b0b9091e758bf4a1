package catalog

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"go.uber.org/zap"

	core "warehouse-quote/core/catalog"
	"warehouse-quote/core/types"
	"warehouse-quote/internal/config"
	"warehouse-quote/internal/errors"
)

// catalogFile is the top-level HCL schema:
//
//	rate "ground_floor" "short" {
//	  band                = "1-100 m²"
//	  area_min            = 1
//	  area_max            = 100
//	  monthly_rate        = 2.5
//	  daily_rate          = 0.1
//	  min_chargeable_area = 30
//	}
//	ewa { ... }
//	service "forklift" { ... }
//	settings = { minimum_charge = 100, ... }
type catalogFile struct {
	Rates    []rateBlock       `hcl:"rate,block"`
	EWA      *ewaBlock         `hcl:"ewa,block"`
	Services []serviceBlock    `hcl:"service,block"`
	Settings map[string]string `hcl:"settings,optional"`
}

type rateBlock struct {
	SpaceType            string         `hcl:"space_type,label"`
	Tenure               string         `hcl:"tenure,label"`
	Band                 string         `hcl:"band"`
	AreaMin              hcl.Expression `hcl:"area_min"`
	AreaMax              hcl.Expression `hcl:"area_max,optional"`
	MonthlyRate          hcl.Expression `hcl:"monthly_rate"`
	DailyRate            hcl.Expression `hcl:"daily_rate"`
	MinChargeableArea    hcl.Expression `hcl:"min_chargeable_area"`
	PackageStartingPrice hcl.Expression `hcl:"package_starting_price,optional"`
	Active               *bool          `hcl:"active,optional"`
}

type ewaBlock struct {
	HouseLoadDescription      string         `hcl:"house_load_description"`
	DedicatedMeterDescription string         `hcl:"dedicated_meter_description"`
	DepositAmount             hcl.Expression `hcl:"deposit_amount"`
	InstallationFee           hcl.Expression `hcl:"installation_fee"`
}

type serviceBlock struct {
	ID          string         `hcl:"id,label"`
	Name        string         `hcl:"name"`
	Description string         `hcl:"description,optional"`
	PricingMode string         `hcl:"pricing_mode"`
	Rate        hcl.Expression `hcl:"rate,optional"`
	Unit        string         `hcl:"unit,optional"`
	Free        *bool          `hcl:"free,optional"`
}

// HCLSource reads a catalog from an HCL file
type HCLSource struct {
	path   string
	logger *zap.Logger
}

// NewHCLSource creates a file-backed source
func NewHCLSource(path string, logger *zap.Logger) *HCLSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HCLSource{path: path, logger: logger.Named("catalog.hcl")}
}

// Name returns the source name
func (s *HCLSource) Name() string {
	return "hcl:" + s.path
}

// Load reads and parses the file
func (s *HCLSource) Load(ctx context.Context) (*core.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Catalog("failed to read catalog file", err).WithContext("path", s.path)
	}

	snap, err := ParseHCL(src, s.path)
	if err != nil {
		return nil, err
	}

	s.logger.Info("catalog loaded",
		zap.String("path", s.path),
		zap.Int("rates", snap.Rates.Len()),
		zap.Int("services", len(snap.Services)),
		zap.String("hash", snap.ContentHash),
	)
	return snap, nil
}

// ParseHCL decodes catalog source bytes into a validated snapshot.
// filename is used in diagnostics and as the snapshot source.
func ParseHCL(src []byte, filename string) (*core.Snapshot, error) {
	// hclparse caches by filename, so every load gets a fresh parser
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Catalog("failed to parse catalog", diags)
	}

	var raw catalogFile
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, errors.Catalog("failed to decode catalog", diags)
	}

	rates := make([]types.TieredRate, 0, len(raw.Rates))
	for i, rb := range raw.Rates {
		r, err := rb.toRate()
		if err != nil {
			return nil, errors.Catalog(fmt.Sprintf("rate #%d (%s %s)", i+1, rb.SpaceType, rb.Tenure), err)
		}
		rates = append(rates, r)
	}

	table, err := core.NewRateTable(rates)
	if err != nil {
		return nil, err
	}

	if raw.EWA == nil {
		return nil, errors.Catalog("catalog has no ewa block", nil)
	}
	ewa, err := raw.EWA.toSettings()
	if err != nil {
		return nil, errors.Catalog("ewa", err)
	}

	services := make([]types.OptionalService, 0, len(raw.Services))
	for _, sb := range raw.Services {
		svc, err := sb.toService()
		if err != nil {
			return nil, errors.Catalog(fmt.Sprintf("service %q", sb.ID), err)
		}
		services = append(services, svc)
	}

	settings, err := config.ParseSystemSettings(raw.Settings)
	if err != nil {
		return nil, err
	}

	return core.NewSnapshot(table, ewa, services, settings, filename), nil
}

func (b rateBlock) toRate() (types.TieredRate, error) {
	space, err := types.ParseSpaceType(b.SpaceType)
	if err != nil {
		return types.TieredRate{}, err
	}
	tenure, err := types.ParseTenure(b.Tenure)
	if err != nil {
		return types.TieredRate{}, err
	}

	r := types.TieredRate{
		SpaceType:     space,
		Tenure:        tenure,
		AreaBandLabel: b.Band,
		Active:        b.Active == nil || *b.Active,
	}

	required := []struct {
		name string
		expr hcl.Expression
		dst  *decimal.Decimal
	}{
		{"area_min", b.AreaMin, &r.AreaMin},
		{"monthly_rate", b.MonthlyRate, &r.MonthlyRatePerArea},
		{"daily_rate", b.DailyRate, &r.DailyRatePerArea},
		{"min_chargeable_area", b.MinChargeableArea, &r.MinChargeableArea},
	}
	for _, f := range required {
		d, err := requiredDecimal(f.name, f.expr)
		if err != nil {
			return types.TieredRate{}, err
		}
		*f.dst = d
	}

	if r.AreaMax, err = exprDecimal("area_max", b.AreaMax); err != nil {
		return types.TieredRate{}, err
	}
	if r.PackageStartingPrice, err = exprDecimal("package_starting_price", b.PackageStartingPrice); err != nil {
		return types.TieredRate{}, err
	}
	return r, nil
}

func (b ewaBlock) toSettings() (types.EWASettings, error) {
	deposit, err := requiredDecimal("deposit_amount", b.DepositAmount)
	if err != nil {
		return types.EWASettings{}, err
	}
	install, err := requiredDecimal("installation_fee", b.InstallationFee)
	if err != nil {
		return types.EWASettings{}, err
	}
	if deposit.IsNegative() || install.IsNegative() {
		return types.EWASettings{}, fmt.Errorf("ewa amounts must not be negative")
	}
	return types.EWASettings{
		HouseLoadDescription:      b.HouseLoadDescription,
		DedicatedMeterDescription: b.DedicatedMeterDescription,
		DepositAmount:             deposit,
		InstallationFee:           install,
	}, nil
}

func (b serviceBlock) toService() (types.OptionalService, error) {
	mode := types.ServicePricingMode(b.PricingMode)
	if !mode.IsValid() {
		return types.OptionalService{}, fmt.Errorf("unknown pricing mode %q", b.PricingMode)
	}

	rate, err := exprDecimal("rate", b.Rate)
	if err != nil {
		return types.OptionalService{}, err
	}
	svc := types.OptionalService{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		PricingMode: mode,
		Unit:        b.Unit,
		IsFree:      b.Free != nil && *b.Free,
	}
	if rate != nil {
		if rate.IsNegative() {
			return types.OptionalService{}, fmt.Errorf("rate must not be negative")
		}
		svc.Rate = *rate
	}
	return svc, nil
}

func requiredDecimal(name string, expr hcl.Expression) (decimal.Decimal, error) {
	d, err := exprDecimal(name, expr)
	if err != nil {
		return decimal.Zero, err
	}
	if d == nil {
		return decimal.Zero, fmt.Errorf("%s must not be null", name)
	}
	return *d, nil
}

// exprDecimal evaluates a static expression to an exact decimal. Numbers and
// numeric strings are accepted; null yields nil.
func exprDecimal(name string, expr hcl.Expression) (*decimal.Decimal, error) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%s: %w", name, diags)
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.IsWhollyKnown() {
		return nil, fmt.Errorf("%s: value is not known", name)
	}

	num, err := convert.Convert(val, cty.Number)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	d, err := decimal.NewFromString(num.AsBigFloat().Text('f', -1))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &d, nil
}
