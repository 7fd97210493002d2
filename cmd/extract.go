// =============================================================================
// SSIM Pretty Printer - Extract Command
// =============================================================================
//
// This file defines the 'extract' command, which copies the lines of one
// carrier, or one flight, from an SSIM file without decoding them.
//
// COMMAND USAGE:
//   ssim extract -c <carrier> -s <file> [-f <flight>] [-o <file>] [--normalize]
//
// Carrier records are kept for the carrier; leg records are kept for the
// carrier and, when given, the flight. Lines of other record types are
// dropped. With --normalize each kept line is padded or cut to its record
// width.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Nalian79/ssim-pprint/internal/ssimparser"
	"github.com/Nalian79/ssim-pprint/pkg/utils"
)

var (
	extractCarrier   string
	extractFlight    string
	extractSSIM      string
	extractOutput    string
	extractNormalize bool
)

// extractCmd represents the 'extract' command.
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Copy the SSIM lines of a carrier or flight",
	Long: `Filter an SSIM file down to the carrier records and leg records of one
carrier, optionally restricted to one flight number. Output goes to stdout
unless --output is given.`,
	Example: `  ssim extract -c BA -s schedule.ssim.gz -o ba.ssim
  ssim extract -c BA -f 100 -s schedule.ssim --normalize`,

	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVarP(&extractCarrier, "carrier", "c", "", "Carrier designator (required)")
	extractCmd.Flags().StringVarP(&extractFlight, "flight", "f", "", "Flight number")
	extractCmd.Flags().StringVarP(&extractSSIM, "ssim", "s", "", "SSIM file to read (required)")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "Output file; stdout when omitted")
	extractCmd.Flags().BoolVar(&extractNormalize, "normalize", false, "Pad or cut lines to their record width")

	_ = extractCmd.MarkFlagRequired("carrier")
	_ = extractCmd.MarkFlagRequired("ssim")
}

// runExtract filters the input file into the output.
func runExtract(cmd *cobra.Command, args []string) error {
	if !utils.FileExists(extractSSIM) {
		return fmt.Errorf("SSIM file not found: %s", extractSSIM)
	}

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	path, compression, err := utils.Uncompress(extractSSIM, cfg.WorkDir)
	if err != nil {
		return fmt.Errorf("failed to uncompress input: %w", err)
	}
	if compression != utils.CompressionNone {
		log.Debug("input uncompressed",
			zap.String("compression", string(compression)),
			zap.String("path", path),
		)
	}

	in, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer in.Close()

	var out io.Writer = cmd.OutOrStdout()
	if extractOutput != "" {
		file, err := os.Create(extractOutput)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer file.Close()
		out = file
	}

	stats, err := ssimparser.Extract(in, out, ssimparser.NewFilter(extractCarrier, extractFlight), extractNormalize)
	if err != nil {
		return err
	}

	log.Info("extract finished",
		zap.String("file", extractSSIM),
		zap.String("carrier", extractCarrier),
		zap.Int("lines_read", stats.LinesRead),
		zap.Int("lines_written", stats.LinesWritten),
	)
	if extractOutput != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d of %d lines to %s\n", stats.LinesWritten, stats.LinesRead, extractOutput)
	}
	return nil
}
