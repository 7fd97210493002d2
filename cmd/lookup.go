// =============================================================================
// SSIM Pretty Printer - Lookup Command
// =============================================================================
//
// This file defines the 'lookup' command, which decodes an SSIM file and
// reports the schedule of one carrier, or one flight of that carrier.
//
// COMMAND USAGE:
//   ssim lookup -c <carrier> -s <file> [flags]
//
// FLAGS:
//   -c, --carrier     Carrier designator (required)
//   -f, --flight      Flight number; all flights when omitted
//   -s, --ssim        SSIM file, plain, gzip or zip (required)
//   -o, --output-dir  Overrides output_dir from the configuration
//       --format      Overrides report_formats (text, xml, xlsx)
//       --fail-fast   Abort on the first malformed line
//       --dump        Print the decoded aggregate structure (debug)
//
// PROCESSING FLOW:
//   1. Load configuration and build the logger
//   2. Run the converter pipeline (uncompress, parse, lint, aggregate)
//   3. Print the text report when enabled
//   4. Print the run summary
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Nalian79/ssim-pprint/internal/config"
	"github.com/Nalian79/ssim-pprint/internal/converter"
	"github.com/Nalian79/ssim-pprint/internal/report"
	"github.com/Nalian79/ssim-pprint/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	lookupCarrier   string
	lookupFlight    string
	lookupSSIM      string
	lookupOutputDir string
	lookupFormats   []string
	lookupFailFast  bool
	lookupDump      bool
)

// =============================================================================
// LOOKUP COMMAND DEFINITION
// =============================================================================

// lookupCmd represents the 'lookup' command.
var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Report the schedule of a carrier or flight",
	Long: `Decode an SSIM file and report every flight of a carrier, or a single
flight, as flights, itinerary variations, legs and data elements.

Text output goes to stdout. XML and XLSX reports are written to the output
directory when enabled with --format or report_formats.`,
	Example: `  ssim lookup -c BA -s schedule.ssim
  ssim lookup -c BA -f 100 -s schedule.ssim.gz --format text,xml`,

	RunE: runLookup,
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.AddCommand(lookupCmd)

	lookupCmd.Flags().StringVarP(&lookupCarrier, "carrier", "c", "", "Carrier designator (required)")
	lookupCmd.Flags().StringVarP(&lookupFlight, "flight", "f", "", "Flight number")
	lookupCmd.Flags().StringVarP(&lookupSSIM, "ssim", "s", "", "SSIM file to read (required)")
	lookupCmd.Flags().StringVarP(&lookupOutputDir, "output-dir", "o", "", "Directory for XML/XLSX reports")
	lookupCmd.Flags().StringSliceVar(&lookupFormats, "format", nil, "Report formats: text, xml, xlsx")
	lookupCmd.Flags().BoolVar(&lookupFailFast, "fail-fast", false, "Abort on the first malformed line")
	lookupCmd.Flags().BoolVar(&lookupDump, "dump", false, "Dump the decoded aggregate")

	_ = lookupCmd.MarkFlagRequired("carrier")
	_ = lookupCmd.MarkFlagRequired("ssim")
}

// =============================================================================
// LOOKUP EXECUTION
// =============================================================================

// runLookup executes the lookup pipeline for the command line request.
func runLookup(cmd *cobra.Command, args []string) error {
	if !utils.FileExists(lookupSSIM) {
		return fmt.Errorf("SSIM file not found: %s", lookupSSIM)
	}

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	if err := applyLookupFlags(cmd, cfg); err != nil {
		return err
	}

	log.Info("lookup started",
		zap.String("file", lookupSSIM),
		zap.String("carrier", lookupCarrier),
		zap.String("flight", lookupFlight),
	)

	conv := converter.New(converter.Request{
		SSIMPath: lookupSSIM,
		Carrier:  lookupCarrier,
		Flight:   lookupFlight,
	}, cfg, log)
	result := conv.Run()

	out := cmd.OutOrStdout()
	printer := report.NewPrinter(out, cfg.Color)

	if result.Aggregate != nil {
		if lookupDump {
			spew.Fdump(out, result.Aggregate)
		}
		if cfg.HasFormat(config.FormatText) {
			printer.PrintAggregate(result.Aggregate)
			fmt.Fprintln(out)
		}
	}

	printer.PrintSummary(report.Summary{
		File:        lookupSSIM,
		LinesRead:   result.Stats.LinesRead,
		Records:     result.Stats.RecordsDecoded,
		Stats:       result.Stats.Aggregate,
		LineErrors:  result.Stats.LineErrors,
		Warnings:    result.Stats.LintWarnings,
		ErrorLog:    result.ErrorLog,
		OutputFiles: result.OutputFiles,
	})

	if result.Error != nil {
		log.Error("lookup failed", zap.Error(result.Error))
		return result.Error
	}

	log.Info("lookup finished", zap.Duration("elapsed", result.Stats.ProcessingTime))
	return nil
}

// applyLookupFlags overrides configuration values with explicitly set flags.
func applyLookupFlags(cmd *cobra.Command, cfg *config.MainConfig) error {
	if lookupOutputDir != "" {
		cfg.OutputDir = lookupOutputDir
	}
	if cmd.Flags().Changed("fail-fast") {
		cfg.FailFast = lookupFailFast
	}
	if len(lookupFormats) > 0 {
		for _, format := range lookupFormats {
			switch format {
			case config.FormatText, config.FormatXML, config.FormatXLSX:
			default:
				return fmt.Errorf("unknown report format %q", format)
			}
		}
		cfg.ReportFormats = lookupFormats
	}
	return nil
}
