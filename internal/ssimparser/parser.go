// =============================================================================
// SSIM Schedule Decoder - Record Stream Reader
// =============================================================================
//
// This module reads an SSIM file line by line, classifies every line, decodes
// the ones that pass the filter and sorts them into three ordered slices, one
// per record kind.
//
// ORDERING:
//   Each slice keeps file order. The flight aggregator relies on it: schedule
//   lines precede their data element lines within a leg block.
//
// ERRORS:
//   - Decode failures are collected per line (0-based line number, kind,
//     cause) and the parse continues, unless FailFast is set.
//   - Read errors from the underlying reader abort the parse.
//
// =============================================================================

package ssimparser

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/Nalian79/ssim-pprint/internal/types"
)

// maxLineBytes bounds a single physical line. Real records are 200 bytes;
// the headroom tolerates padded or garbage lines without failing the scan.
const maxLineBytes = 1024 * 1024

// Options controls a parse pass.
type Options struct {
	// Filter selects the carrier (and optionally the flight) to decode.
	Filter Filter

	// FailFast stops at the first line that fails to decode.
	FailFast bool
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// ParseFile opens an uncompressed SSIM file and parses it.
func ParseFile(filePath string, opts Options) (*types.Records, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Parse(file, opts)
}

// Parse reads every line of r and returns the decoded records.
//
// RETURNS:
//   - The records in file order, with per-line errors in LineErrors.
//   - An error when reading fails, or the first *types.LineError when
//     opts.FailFast is set.
func Parse(r io.Reader, opts Options) (*types.Records, error) {
	parser := NewStreamingParser(r, opts)
	records := &types.Records{}

	for parser.Next() {
		if lineErr := parser.LineErr(); lineErr != nil {
			records.LineErrors = append(records.LineErrors, lineErr)
			continue
		}

		records.Add(parser.Record())
	}

	records.LinesRead = parser.LinesRead()
	records.LinesSkipped = parser.LinesSkipped()

	if err := parser.Err(); err != nil {
		return records, err
	}
	return records, nil
}

// =============================================================================
// STREAMING PARSER
// =============================================================================

// StreamingParser decodes one line at a time.
//
// USAGE:
//
//	parser := NewStreamingParser(file, opts)
//	for parser.Next() {
//	    if lineErr := parser.LineErr(); lineErr != nil {
//	        // report and carry on
//	        continue
//	    }
//	    rec := parser.Record()
//	}
//	if err := parser.Err(); err != nil {
//	    return err
//	}
type StreamingParser struct {
	scanner *bufio.Scanner
	opts    Options

	current types.Record
	lineErr *types.LineError
	err     error

	// lineNumber is the 0-based index of the current line, -1 before the first.
	lineNumber   int
	linesRead    int
	linesSkipped int
}

// NewStreamingParser wraps r in a line scanner.
func NewStreamingParser(r io.Reader, opts Options) *StreamingParser {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4*LineWidth), maxLineBytes)

	return &StreamingParser{
		scanner:    scanner,
		opts:       opts,
		lineNumber: -1,
	}
}

// Next advances to the next line that passes the filter. Afterwards exactly
// one of Record and LineErr is non-nil. It returns false at the end of input,
// on a read error, or on the first line error when FailFast is set.
func (p *StreamingParser) Next() bool {
	if p.err != nil {
		return false
	}
	p.current = nil
	p.lineErr = nil

	for p.scanner.Scan() {
		p.lineNumber++
		p.linesRead++
		line := trimLineEnding(p.scanner.Text())

		if line == "" {
			return p.fail(types.KindUnknown, &types.MalformedRecordError{Kind: types.KindUnknown})
		}

		kind, ok := p.opts.Filter.Match(line)
		if !ok {
			p.linesSkipped++
			continue
		}

		rec, err := Decode(line)
		if err != nil {
			return p.fail(kind, err)
		}

		p.current = rec
		return true
	}

	if err := p.scanner.Err(); err != nil {
		p.err = fmt.Errorf("error reading line %d: %w", p.lineNumber+1, err)
	}
	return false
}

// fail records a per-line error and applies the fail-fast policy.
func (p *StreamingParser) fail(kind types.RecordKind, err error) bool {
	p.lineErr = &types.LineError{Line: p.lineNumber, Kind: kind, Err: err}
	if p.opts.FailFast {
		p.err = p.lineErr
		return false
	}
	return true
}

// Record returns the record decoded by the last call to Next.
func (p *StreamingParser) Record() types.Record {
	return p.current
}

// LineErr returns the decode failure of the current line, if any.
func (p *StreamingParser) LineErr() *types.LineError {
	return p.lineErr
}

// LineNumber returns the 0-based number of the current line.
func (p *StreamingParser) LineNumber() int {
	return p.lineNumber
}

// LinesRead returns the number of physical lines consumed so far.
func (p *StreamingParser) LinesRead() int {
	return p.linesRead
}

// LinesSkipped returns the number of lines dropped by the classifier.
func (p *StreamingParser) LinesSkipped() int {
	return p.linesSkipped
}

// Err returns the error that stopped the parser.
func (p *StreamingParser) Err() error {
	return p.err
}
