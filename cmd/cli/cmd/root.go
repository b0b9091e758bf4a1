// Package cmd provides the CLI commands for whquote.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"warehouse-quote/adapters/catalog"
	core "warehouse-quote/core/catalog"
	"warehouse-quote/internal/config"
	"warehouse-quote/internal/logging"
)

// Version is set at build time with -ldflags "-X warehouse-quote/cmd/cli/cmd.Version=..."
var Version = "dev"

var (
	cfgFile     string
	verbose     bool
	catalogPath string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "whquote",
	Short: "Price warehouse rental quotes",
	Long: `whquote prices warehouse space rentals from a tiered rate catalog.

It resolves the rate band for a space type, area and tenure, applies the
chargeable-area floor, office, utilities, minimum charge and discounts, and
suggests cheaper alternatives.

Examples:
  whquote quote --space ground_floor --area 120 --tenure short --duration 6
  whquote quote --space mezzanine --area 50 --tenure very_short --duration 10 --format json
  whquote rates list --tenure long
  whquote rates validate ./config/catalog.hcl`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "HCL catalog file (overrides config)")

	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if catalogPath != "" {
		cfg.Catalog.Source = config.SourceHCL
		cfg.Catalog.Path = catalogPath
	}
	config.Set(cfg)

	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// loadSnapshot reads the configured catalog once
func loadSnapshot(ctx context.Context) (*core.Snapshot, error) {
	src, err := catalog.Open(config.Get().Catalog, logging.Logger)
	if err != nil {
		return nil, err
	}
	if c, ok := src.(catalog.Closer); ok {
		defer c.Close()
	}
	return src.Load(ctx)
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "whquote version %s\n", Version)
	},
}
