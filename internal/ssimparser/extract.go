package ssimparser

import (
	"bufio"
	"fmt"
	"io"
)

// ExtractStats counts the lines seen and written by Extract.
type ExtractStats struct {
	LinesRead    int
	LinesWritten int
}

// Extract copies the lines that pass filter from r to w without decoding
// them. With normalize set every written line is padded or cut to LineWidth.
func Extract(r io.Reader, w io.Writer, filter Filter, normalize bool) (ExtractStats, error) {
	var stats ExtractStats

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	out := bufio.NewWriter(w)

	for scanner.Scan() {
		stats.LinesRead++
		line := trimLineEnding(scanner.Text())

		kind, ok := filter.Match(line)
		if !ok {
			continue
		}
		if normalize {
			line = NewBuilder(kind).SetRaw(0, line).String()
		}

		if _, err := out.WriteString(line + "\n"); err != nil {
			return stats, fmt.Errorf("failed to write line %d: %w", stats.LinesRead-1, err)
		}
		stats.LinesWritten++
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("error reading line %d: %w", stats.LinesRead, err)
	}

	if err := out.Flush(); err != nil {
		return stats, fmt.Errorf("failed to flush output: %w", err)
	}
	return stats, nil
}
