// =============================================================================
// SSIM Pretty Printer - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (ssim)
//   ├── lookupCmd  (ssim lookup)
//   ├── extractCmd (ssim extract)
//   ├── configCmd  (ssim config)
//   └── versionCmd (ssim version)
//
// CONFIGURATION:
//   Commands that read SSIM files call setup, which:
//   1. Loads a .env file from the working directory, if present
//   2. Loads the YAML configuration and SSIM_* environment overrides
//   3. Applies the global flags (--verbose, --no-color)
//   4. Builds the zap logger
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Nalian79/ssim-pprint/internal/config"
	"github.com/Nalian79/ssim-pprint/internal/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// verbose forces debug logging.
var verbose bool

// noColor disables coloured console output.
var noColor bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ssim",
	Short: "SSIM pretty printer - decode and report IATA SSIM schedule files",
	Long: `ssim decodes IATA Standard Schedules Information (SSIM) files and reports
the schedule of one carrier, or one of its flights, as a readable tree of
flights, itinerary variations, legs and data elements.

Key Features:
  - Fixed-width decoding of record types 2, 3 and 4
  - gzip and zip compressed inputs
  - Text, XML and XLSX reports
  - Token format lint with an error log

Example Usage:
  ssim lookup -c BA -s schedule.ssim         # Report every BA flight
  ssim lookup -c BA -f 100 -s schedule.gz    # Report BA0100 only
  ssim extract -c BA -s schedule.ssim -o ba.ssim
  ssim config > config.yaml                  # Start a configuration file`,

	SilenceUsage: true,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultConfigPath,
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)

	rootCmd.PersistentFlags().BoolVar(
		&noColor,
		"no-color",
		false,
		"Disable coloured output",
	)
}

// setup loads the configuration and builds the logger for a command run.
func setup() (*config.MainConfig, *zap.Logger, error) {
	_ = godotenv.Load(".env")

	cfg, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return nil, nil, err
	}

	if verbose {
		cfg.LogLevel = "debug"
	}
	if noColor {
		cfg.Color = false
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, nil, err
	}

	log.Debug("configuration loaded",
		zap.String("config", cfgFile),
		zap.String("output_dir", cfg.OutputDir),
		zap.Strings("report_formats", cfg.ReportFormats),
	)
	return cfg, log, nil
}
