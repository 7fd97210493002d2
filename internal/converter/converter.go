// =============================================================================
// SSIM Pretty Printer - Lookup Pipeline
// =============================================================================
//
// This module orchestrates a lookup for a single SSIM file, from the raw
// (possibly compressed) input to the written reports.
//
// PIPELINE:
//   1. Uncompress the input when it is gzip or zip
//   2. Parse the file, keeping the requested carrier (and flight)
//   3. Lint the decoded records (warnings only)
//   4. Build the flight aggregate
//   5. Write the XML / XLSX reports enabled in the configuration
//   6. Write the error log of line errors and lint warnings
//
// Console rendering is left to the caller, which receives the aggregate in
// the Result.
//
// =============================================================================

package converter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Nalian79/ssim-pprint/internal/config"
	"github.com/Nalian79/ssim-pprint/internal/flights"
	"github.com/Nalian79/ssim-pprint/internal/ssimparser"
	"github.com/Nalian79/ssim-pprint/internal/types"
	"github.com/Nalian79/ssim-pprint/internal/validation"
	"github.com/Nalian79/ssim-pprint/internal/xlsxwriter"
	"github.com/Nalian79/ssim-pprint/internal/xmlwriter"
	"github.com/Nalian79/ssim-pprint/pkg/utils"
)

var (
	ErrNoMatchingRecords = errors.New("no records match the requested carrier")
	ErrFlightNotFound    = errors.New("flight not found")
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Request names the file and the carrier / flight to look up.
type Request struct {
	// SSIMPath is the input file, plain, gzip or zip.
	SSIMPath string

	// Carrier restricts the parse to one carrier; empty keeps all carriers.
	Carrier string

	// Flight optionally restricts the parse to one flight number.
	Flight string
}

// Result represents the outcome of one lookup.
type Result struct {
	// RunID tags output file names and the XML root element.
	RunID string

	// FilePath is the input file; ParsedPath the file actually parsed.
	FilePath    string
	ParsedPath  string
	Compression utils.Compression

	Records   *types.Records
	Warnings  []*validation.Warning
	Aggregate *flights.Aggregate

	// OutputFiles lists the written reports; ErrorLog the error log, if any.
	OutputFiles []string
	ErrorLog    string

	Success bool
	Error   error

	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	LinesRead      int
	LinesSkipped   int
	RecordsDecoded int
	LineErrors     int
	LintWarnings   int

	Aggregate flights.Stats

	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter runs the lookup pipeline for one request.
type Converter struct {
	req    Request
	config *config.MainConfig
	log    *zap.Logger
	runID  string
}

// New creates a new Converter instance.
//
// PARAMETERS:
//   - req: The file and carrier / flight to look up.
//   - cfg: The main application configuration.
//   - log: The logger; nil means no logging.
//
// RETURNS:
//   - A new Converter instance with a fresh run ID.
func New(req Request, cfg *config.MainConfig, log *zap.Logger) *Converter {
	if log == nil {
		log = zap.NewNop()
	}
	runID := uuid.New().String()
	return &Converter{
		req:    req,
		config: cfg,
		log:    log.With(zap.String("run_id", runID)),
		runID:  runID,
	}
}

// RunID returns the identifier of this run.
func (c *Converter) RunID() string { return c.runID }

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the pipeline.
//
// RETURNS:
//   - A Result struct containing the outcome of the processing. On failure
//     Error is set and the fields filled so far are kept.
func (c *Converter) Run() (result Result) {
	startTime := time.Now()
	result = Result{
		RunID:    c.runID,
		FilePath: c.req.SSIMPath,
	}
	defer func() { result.Stats.ProcessingTime = time.Since(startTime) }()

	c.log.Info("processing file",
		zap.String("file", c.req.SSIMPath),
		zap.String("carrier", c.req.Carrier),
		zap.String("flight", c.req.Flight),
	)

	// =========================================================================
	// STEP 1: UNCOMPRESS
	// =========================================================================

	parsedPath, compression, err := utils.Uncompress(c.req.SSIMPath, c.config.WorkDir)
	if err != nil {
		result.Error = fmt.Errorf("failed to uncompress input: %w", err)
		return result
	}
	result.ParsedPath = parsedPath
	result.Compression = compression
	if compression != utils.CompressionNone {
		c.log.Info("input uncompressed",
			zap.String("compression", string(compression)),
			zap.String("path", parsedPath),
		)
	}

	// =========================================================================
	// STEP 2: PARSE
	// =========================================================================

	records, err := ssimparser.ParseFile(parsedPath, ssimparser.Options{
		Filter:   ssimparser.NewFilter(c.req.Carrier, c.req.Flight),
		FailFast: c.config.FailFast,
	})
	result.Records = records
	if records != nil {
		result.Stats.LinesRead = records.LinesRead
		result.Stats.LinesSkipped = records.LinesSkipped
		result.Stats.RecordsDecoded = records.Count()
		result.Stats.LineErrors = len(records.LineErrors)
		for _, lineErr := range records.LineErrors {
			c.log.Warn("line error", zap.Int("line", lineErr.Line), zap.Error(lineErr.Err))
		}
	}
	if err != nil {
		result.Error = fmt.Errorf("failed to parse SSIM file: %w", err)
		c.writeErrorLog(&result)
		return result
	}

	c.log.Debug("parsed file",
		zap.Int("lines_read", records.LinesRead),
		zap.Int("lines_skipped", records.LinesSkipped),
		zap.Int("carrier_records", len(records.CarrierInfo)),
		zap.Int("leg_records", len(records.LegSchedules)),
		zap.Int("data_element_records", len(records.LegDataElements)),
	)

	if records.Count() == 0 {
		result.Error = fmt.Errorf("%w: %q", ErrNoMatchingRecords, c.req.Carrier)
		c.writeErrorLog(&result)
		return result
	}

	// =========================================================================
	// STEP 3: LINT
	// =========================================================================

	result.Warnings = validation.Lint(records)
	result.Stats.LintWarnings = len(result.Warnings)
	for _, w := range result.Warnings {
		c.log.Debug("lint warning", zap.String("warning", w.Error()))
	}

	// =========================================================================
	// STEP 4: BUILD AGGREGATE
	// =========================================================================

	agg, err := flights.Build(records)
	if err != nil {
		result.Error = fmt.Errorf("failed to build flights: %w", err)
		c.writeErrorLog(&result)
		return result
	}
	result.Aggregate = agg
	result.Stats.Aggregate = agg.Stats()

	for _, code := range agg.DuplicateCarriers() {
		c.log.Warn("duplicate carrier record, last one wins", zap.String("carrier", code))
	}

	if c.req.Flight != "" {
		if _, ok := agg.Find(c.req.Carrier, c.req.Flight); !ok {
			result.Error = fmt.Errorf("%w: %s%s", ErrFlightNotFound, c.req.Carrier, c.req.Flight)
			c.writeErrorLog(&result)
			return result
		}
	}

	// =========================================================================
	// STEP 5: WRITE REPORTS
	// =========================================================================

	outputs, err := c.writeReports(agg)
	result.OutputFiles = outputs
	if err != nil {
		result.Error = fmt.Errorf("failed to write output: %w", err)
		return result
	}

	// =========================================================================
	// STEP 6: ERROR LOG
	// =========================================================================

	c.writeErrorLog(&result)

	result.Success = true
	c.log.Info("lookup complete",
		zap.Int("flights", result.Stats.Aggregate.Flights),
		zap.Int("legs", result.Stats.Aggregate.Legs),
		zap.Int("line_errors", result.Stats.LineErrors),
		zap.Int("lint_warnings", result.Stats.LintWarnings),
	)

	return result
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// writeReports writes the file reports enabled in the configuration.
func (c *Converter) writeReports(agg *flights.Aggregate) ([]string, error) {
	if !c.config.HasFormat(config.FormatXML) && !c.config.HasFormat(config.FormatXLSX) {
		return nil, nil
	}
	if err := config.PrepareDirectories(c.config); err != nil {
		return nil, err
	}

	var outputs []string

	if c.config.HasFormat(config.FormatXML) {
		options := xmlwriter.DefaultGenerateOptions()
		options.RootAttributes["runId"] = c.runID
		options.RootAttributes["source"] = filepath.Base(c.req.SSIMPath)
		if c.req.Carrier != "" {
			options.RootAttributes["carrier"] = c.req.Carrier
		}

		doc, err := xmlwriter.GenerateWithOptions(agg, options)
		if err != nil {
			return outputs, err
		}

		path := c.outputPath(".xml")
		if err := os.WriteFile(path, doc, 0644); err != nil {
			return outputs, fmt.Errorf("failed to write file: %w", err)
		}
		outputs = append(outputs, path)
		c.log.Info("wrote XML report", zap.String("path", path))
	}

	if c.config.HasFormat(config.FormatXLSX) {
		path := c.outputPath(".xlsx")
		if err := xlsxwriter.Write(agg, path); err != nil {
			return outputs, err
		}
		outputs = append(outputs, path)
		c.log.Info("wrote XLSX report", zap.String("path", path))
	}

	return outputs, nil
}

// outputPath names a report file from the configured format.
func (c *Converter) outputPath(ext string) string {
	name := utils.GenerateOutputFileName(c.config.OutputNameFormat, c.nameParams(), ext)
	return filepath.Join(c.config.OutputDir, name)
}

func (c *Converter) nameParams() map[string]string {
	carrier := c.req.Carrier
	if carrier == "" {
		carrier = "ALL"
	}
	return map[string]string{
		"carrier": carrier,
		"flight":  c.req.Flight,
		"uuid":    c.runID,
	}
}

// writeErrorLog writes line errors, lint warnings and a fatal error, if any,
// to the output directory. Failures are logged, never returned.
func (c *Converter) writeErrorLog(result *Result) {
	if !c.config.WriteErrorLog {
		return
	}

	entries := c.errorLogEntries(result)
	if len(entries) == 0 {
		return
	}
	if err := config.PrepareDirectories(c.config); err != nil {
		c.log.Warn("failed to create output directory", zap.Error(err))
		return
	}

	name := utils.GenerateOutputFileName(c.config.OutputNameFormat+"_errors", c.nameParams(), ".txt")
	path, err := utils.WriteErrorLog(entries, c.config.OutputDir, name)
	if err != nil {
		c.log.Warn("failed to write error log", zap.Error(err))
		return
	}
	result.ErrorLog = path
	c.log.Info("wrote error log", zap.String("path", path), zap.Int("entries", len(entries)))
}

func (c *Converter) errorLogEntries(result *Result) []utils.ErrorLogEntry {
	now := time.Now()
	file := filepath.Base(c.req.SSIMPath)

	var entries []utils.ErrorLogEntry
	if result.Records != nil {
		for _, lineErr := range result.Records.LineErrors {
			entries = append(entries, utils.ErrorLogEntry{
				Timestamp:    now,
				FileName:     file,
				ErrorType:    "line error",
				ErrorMessage: lineErr.Err.Error(),
				Line:         lineErr.Line,
				Record:       lineErr.Kind.String(),
			})
		}
	}
	for _, w := range result.Warnings {
		entries = append(entries, utils.ErrorLogEntry{
			Timestamp:    now,
			FileName:     file,
			ErrorType:    "lint warning",
			ErrorMessage: fmt.Sprintf("failed '%s'", w.Rule),
			Line:         -1,
			Record:       w.Record,
			FieldName:    w.Field,
			FieldValue:   w.Value,
		})
	}
	if result.Error != nil {
		entries = append(entries, utils.ErrorLogEntry{
			Timestamp:    now,
			FileName:     file,
			ErrorType:    "fatal",
			ErrorMessage: result.Error.Error(),
			Line:         fatalLine(result.Error),
		})
	}
	return entries
}

// fatalLine returns the input line of a fail-fast error, or -1.
func fatalLine(err error) int {
	var lineErr *types.LineError
	if errors.As(err, &lineErr) {
		return lineErr.Line
	}
	return -1
}
