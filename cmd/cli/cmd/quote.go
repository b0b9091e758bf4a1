package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	core "warehouse-quote/core/catalog"
	"warehouse-quote/core/determinism"
	"warehouse-quote/core/engine"
	"warehouse-quote/core/output"
	"warehouse-quote/core/types"
	"warehouse-quote/internal/config"
	"warehouse-quote/internal/errors"
	"warehouse-quote/internal/logging"
)

// quoteOptions are the raw flag values
type quoteOptions struct {
	space           string
	area            string
	tenure          string
	duration        int
	office          bool
	utilities       string
	services        []string
	discountPercent string
	discountFixed   string
	format          string
	reference       string
}

var quoteOpts quoteOptions

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price a warehouse rental",
	Long: `Price a warehouse rental against the current catalog.

Duration is in days for very_short tenure and months otherwise. Long tenure
is raised to twelve months. Areas below a band's minimum are billed at the
minimum.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := loadSnapshot(cmd.Context())
		if err != nil {
			return err
		}
		return runQuote(cmd.OutOrStdout(), quoteOpts, snap)
	},
}

func init() {
	rootCmd.AddCommand(quoteCmd)

	f := quoteCmd.Flags()
	f.StringVarP(&quoteOpts.space, "space", "s", "ground_floor", "space type (ground_floor, mezzanine)")
	f.StringVarP(&quoteOpts.area, "area", "a", "", "requested area in m² [REQUIRED]")
	f.StringVarP(&quoteOpts.tenure, "tenure", "t", "short", "tenure (very_short, short, long)")
	f.IntVarP(&quoteOpts.duration, "duration", "d", 1, "lease length: days for very_short, months otherwise")
	f.BoolVar(&quoteOpts.office, "office", false, "include an office")
	f.StringVar(&quoteOpts.utilities, "utilities", "house_load", "utilities mode (house_load, dedicated_meter)")
	f.StringSliceVar(&quoteOpts.services, "service", nil, "optional service ID (repeatable)")
	f.StringVar(&quoteOpts.discountPercent, "discount-percent", "0", "percentage discount (0-100)")
	f.StringVar(&quoteOpts.discountFixed, "discount-fixed", "0", "fixed discount in BHD")
	f.StringVarP(&quoteOpts.format, "format", "f", "", "output format (text, json, yaml); defaults to config")
	f.StringVar(&quoteOpts.reference, "reference", "", "quote reference printed in the header")

	_ = quoteCmd.MarkFlagRequired("area")
}

// runQuote parses flags, prices the quote and renders it
func runQuote(w io.Writer, opts quoteOptions, snap *core.Snapshot) error {
	in, err := opts.toInputs()
	if err != nil {
		return err
	}

	formatName := opts.format
	if formatName == "" {
		formatName = config.Get().Output.DefaultFormat
	}
	format, err := output.ParseFormat(formatName)
	if err != nil {
		return errors.Wrap(errors.TypeInput, "invalid --format", err)
	}
	formatter, ok := output.NewRegistry().Get(format)
	if !ok {
		return errors.Newf(errors.TypeInput, "no formatter for %s", format)
	}

	res, err := engine.NewCalculator(logging.Logger).Calculate(in, snap)
	if err != nil {
		return err
	}

	reference := opts.reference
	if reference == "" {
		reference = quoteReference(in, snap)
	}

	report := output.NewReport(res, output.ReportMeta{
		Reference:   reference,
		GeneratedAt: time.Now(),
		CatalogHash: snap.ContentHash,
		Version:     Version,
	})
	return formatter.Render(w, report)
}

// quoteReference derives a reference that repeats for the same inputs and catalog
func quoteReference(in types.CalculationInputs, snap *core.Snapshot) string {
	h, err := determinism.HashJSON(in)
	if err != nil {
		return ""
	}
	return determinism.NewIDGenerator("quote").Generate(h.Hex(), snap.ContentHash).Reference("WQ")
}

func (o quoteOptions) toInputs() (types.CalculationInputs, error) {
	space, err := types.ParseSpaceType(o.space)
	if err != nil {
		return types.CalculationInputs{}, errors.Wrap(errors.TypeInput, "invalid --space", err)
	}
	tenure, err := types.ParseTenure(o.tenure)
	if err != nil {
		return types.CalculationInputs{}, errors.Wrap(errors.TypeInput, "invalid --tenure", err)
	}
	utilities, err := types.ParseUtilitiesMode(o.utilities)
	if err != nil {
		return types.CalculationInputs{}, errors.Wrap(errors.TypeInput, "invalid --utilities", err)
	}

	area, err := flagDecimal("area", o.area)
	if err != nil {
		return types.CalculationInputs{}, err
	}
	pct, err := flagDecimal("discount-percent", o.discountPercent)
	if err != nil {
		return types.CalculationInputs{}, err
	}
	fixed, err := flagDecimal("discount-fixed", o.discountFixed)
	if err != nil {
		return types.CalculationInputs{}, err
	}

	return types.CalculationInputs{
		SpaceType:          space,
		AreaRequested:      area,
		Tenure:             tenure,
		DurationValue:      o.duration,
		IncludeOffice:      o.office,
		UtilitiesMode:      utilities,
		SelectedServiceIDs: o.services,
		PercentDiscount:    pct,
		FixedDiscount:      fixed,
	}, nil
}

func flagDecimal(name, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, errors.Wrap(errors.TypeInput, fmt.Sprintf("invalid --%s", name), err)
	}
	return d, nil
}
