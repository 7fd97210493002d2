// =============================================================================
// SSIM Pretty Printer - Main Entry Point
// =============================================================================
//
// ssim decodes IATA SSIM schedule files and reports the flights of a carrier.
//
// USAGE:
//   ssim lookup    - Report the schedule of a carrier or flight
//   ssim extract   - Copy the SSIM lines of a carrier or flight
//   ssim config    - Print or write the default configuration
//   ssim version   - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Decoding, aggregation and reporting
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/Nalian79/ssim-pprint/cmd"
)

func main() {
	cmd.Execute()
}
