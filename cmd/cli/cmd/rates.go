package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"warehouse-quote/adapters/catalog"
	core "warehouse-quote/core/catalog"
	"warehouse-quote/core/output"
	"warehouse-quote/core/types"
	"warehouse-quote/internal/logging"
)

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Inspect the rate catalog",
}

var (
	ratesSpace  string
	ratesTenure string
	ratesAll    bool
)

var ratesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List rate bands in match order",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := loadSnapshot(cmd.Context())
		if err != nil {
			return err
		}
		return listRates(cmd.OutOrStdout(), snap, ratesSpace, ratesTenure, ratesAll)
	},
}

var ratesValidateCmd = &cobra.Command{
	Use:   "validate [catalog.hcl]",
	Short: "Load and validate a catalog",
	Long: `Load a catalog and run every validation rule: known enums, ordered
bounds, non-negative rates, no overlapping active bands, and all required
system settings. Exits non-zero on the first failure.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			snap *core.Snapshot
			err  error
		)
		if len(args) == 1 {
			snap, err = catalog.NewHCLSource(args[0], logging.Logger).Load(contextOf(cmd))
		} else {
			snap, err = loadSnapshot(contextOf(cmd))
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "catalog OK: %d rates, %d services, hash %s\n",
			snap.Rates.Len(), len(snap.Services), snap.ContentHash)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ratesCmd)
	ratesCmd.AddCommand(ratesListCmd)
	ratesCmd.AddCommand(ratesValidateCmd)

	ratesListCmd.Flags().StringVar(&ratesSpace, "space", "", "filter by space type")
	ratesListCmd.Flags().StringVar(&ratesTenure, "tenure", "", "filter by tenure")
	ratesListCmd.Flags().BoolVar(&ratesAll, "all", false, "include inactive bands")
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// listRates prints one line per band in table order
func listRates(w io.Writer, snap *core.Snapshot, space, tenure string, all bool) error {
	var spaceFilter types.SpaceType
	if space != "" {
		parsed, err := types.ParseSpaceType(space)
		if err != nil {
			return err
		}
		spaceFilter = parsed
	}
	var tenureFilter types.Tenure
	if tenure != "" {
		parsed, err := types.ParseTenure(tenure)
		if err != nil {
			return err
		}
		tenureFilter = parsed
	}

	fmt.Fprintf(w, "%-14s %-12s %-16s %18s %18s %12s %s\n",
		"SPACE", "TENURE", "BAND", "MONTHLY/m²", "DAILY/m²", "MIN AREA", "")
	fmt.Fprintln(w, strings.Repeat("─", 96))

	rates := snap.Rates.Filter(spaceFilter, tenureFilter, all)
	for _, r := range rates {
		status := ""
		if !r.Active {
			status = "inactive"
		}
		fmt.Fprintf(w, "%-14s %-12s %-16s %18s %18s %12s %s\n",
			r.SpaceType, r.Tenure, truncate(r.AreaBandLabel, 16),
			output.FormatCurrency(r.MonthlyRatePerArea),
			output.FormatCurrency(r.DailyRatePerArea),
			output.FormatArea(r.MinChargeableArea),
			status,
		)
	}

	fmt.Fprintf(w, "\n%d band(s) from %s\n", len(rates), snap.Source)
	return nil
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
