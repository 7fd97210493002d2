// =============================================================================
// SSIM Pretty Printer - File Manager Utility
// =============================================================================
//
// This module provides file utilities for the lookup pipeline:
//   - Compression detection and decompression of SSIM inputs
//   - Output file naming
//   - Error log generation
//
// COMPRESSION:
//   SSIM files are often distributed gzip or zip compressed. The format is
//   detected from the file's magic bytes, not its extension:
//     1F 8B 08     gzip
//     50 4B 03 04  zip
//   Decompressed copies are written to the work directory; the input file is
//   never modified.
//
// =============================================================================

package utils

import (
	"archive/zip"
	"bufio"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// COMPRESSION
// =============================================================================

// Compression names the container format of an input file.
type Compression string

const (
	CompressionNone Compression = ""
	CompressionGzip Compression = "gzip"
	CompressionZip  Compression = "zip"
)

var (
	gzipMagic = []byte{0x1f, 0x8b, 0x08}
	zipMagic  = []byte{0x50, 0x4b, 0x03, 0x04}
)

var (
	// ErrEmptyArchive is returned when a zip file holds no regular file.
	ErrEmptyArchive = errors.New("archive contains no file")

	// ErrOverwritesInput is returned when the decompressed copy would
	// replace the compressed input.
	ErrOverwritesInput = errors.New("decompressed file would overwrite the input")
)

// DetectCompression sniffs the magic bytes at the start of a file.
//
// PARAMETERS:
//   - path: The file to inspect.
//
// RETURNS:
//   - The detected compression, CompressionNone for plain files.
//   - An error if the file cannot be read.
func DetectCompression(path string) (Compression, error) {
	file, err := os.Open(path)
	if err != nil {
		return CompressionNone, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	head := make([]byte, len(zipMagic))
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return CompressionNone, fmt.Errorf("failed to read file header: %w", err)
	}
	head = head[:n]

	switch {
	case bytes.HasPrefix(head, gzipMagic):
		return CompressionGzip, nil
	case bytes.HasPrefix(head, zipMagic):
		return CompressionZip, nil
	default:
		return CompressionNone, nil
	}
}

// Uncompress returns the path of a plain copy of path. Plain files are
// returned unchanged. A gzip file is written to workDir under its name minus
// ".gz"; for a zip file the first regular entry is extracted.
//
// PARAMETERS:
//   - path: The possibly compressed input file.
//   - workDir: The directory receiving the decompressed copy.
//
// RETURNS:
//   - The path of the file to parse.
//   - The compression that was removed.
//   - An error if decompression fails.
func Uncompress(path, workDir string) (string, Compression, error) {
	compression, err := DetectCompression(path)
	if err != nil {
		return "", CompressionNone, err
	}

	switch compression {
	case CompressionGzip:
		out, err := gunzipFile(path, workDir)
		return out, compression, err
	case CompressionZip:
		out, err := unzipFirst(path, workDir)
		return out, compression, err
	default:
		return path, CompressionNone, nil
	}
}

func gunzipFile(path, workDir string) (string, error) {
	in, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open gzip file: %w", err)
	}
	defer in.Close()

	reader, err := gzip.NewReader(in)
	if err != nil {
		return "", fmt.Errorf("failed to read gzip header: %w", err)
	}
	defer reader.Close()

	name := strings.TrimSuffix(filepath.Base(path), ".gz")
	if name == filepath.Base(path) {
		name += ".ssim"
	}

	return writeFile(path, filepath.Join(workDir, name), reader)
}

func unzipFirst(path, workDir string) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("failed to open zip file: %w", err)
	}
	defer archive.Close()

	for _, entry := range archive.File {
		if entry.FileInfo().IsDir() {
			continue
		}

		rc, err := entry.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open %s: %w", entry.Name, err)
		}
		defer rc.Close()

		return writeFile(path, filepath.Join(workDir, filepath.Base(entry.Name)), rc)
	}

	return "", fmt.Errorf("%s: %w", path, ErrEmptyArchive)
}

// writeFile copies src into dst through a temporary file in the same
// directory, so a failed copy leaves no partial dst behind. dst must not be
// the input file.
func writeFile(input, dst string, src io.Reader) (string, error) {
	if filepath.Clean(dst) == filepath.Clean(input) {
		return "", fmt.Errorf("%s: %w", dst, ErrOverwritesInput)
	}

	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create work directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dst)+".*")
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to decompress into %s: %w", dst, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", dst, err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", fmt.Errorf("failed to move %s into place: %w", dst, err)
	}
	return dst, nil
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName generates an output file name.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {uuid}      - A random UUID, unless params sets one
//               {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//               {date}      - Current date (YYYYMMDD)
//               {carrier}   - Carrier code
//               {flight}    - Flight number, empty for a whole carrier
//   - params: A map of placeholder values.
//   - ext: The extension to ensure, e.g. ".xml".
//
// RETURNS:
//   - The generated file name.
//
// EXAMPLE:
//   format: "{carrier}{flight}_{timestamp}_{uuid}"
//   params: {"carrier": "BA", "flight": "0100"}
//   output: "BA0100_20240115_143022_a1b2c3d4-e5f6-7890-abcd-ef1234567890.xml"
func GenerateOutputFileName(format string, params map[string]string, ext string) string {
	now := time.Now()

	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
	}
	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if ext != "" && !strings.HasSuffix(strings.ToLower(result), strings.ToLower(ext)) {
		result += ext
	}

	return result
}

// =============================================================================
// ERROR LOG GENERATION
// =============================================================================

// ErrorLogEntry represents a single error log entry.
type ErrorLogEntry struct {
	Timestamp    time.Time
	FileName     string
	ErrorType    string
	ErrorMessage string

	// Line is the 0-based input line, or -1 when the entry has none.
	Line int

	Record     string
	FieldName  string
	FieldValue string
}

// WriteErrorLog writes error entries to a log file.
//
// PARAMETERS:
//   - entries: The error entries to write.
//   - outputDir: The directory to write the log file.
//   - name: The log file name; empty means error_log_<timestamp>.txt.
//
// RETURNS:
//   - The path to the error log file, empty when there was nothing to write.
//   - An error if writing fails.
func WriteErrorLog(entries []ErrorLogEntry, outputDir, name string) (string, error) {
	if len(entries) == 0 {
		return "", nil
	}

	if name == "" {
		name = fmt.Sprintf("error_log_%s.txt", time.Now().Format("20060102_150405"))
	}
	logPath := filepath.Join(outputDir, name)

	file, err := os.Create(logPath)
	if err != nil {
		return "", fmt.Errorf("failed to create error log: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	fmt.Fprintf(writer, "SSIM Pretty Printer - Error Log\n"+
		"Generated: %s\n"+
		"Total Entries: %d\n"+
		"================================================================================\n\n",
		time.Now().Format("2006-01-02 15:04:05"),
		len(entries))

	for i, entry := range entries {
		fmt.Fprintf(writer, "Entry #%d\n"+
			"  Timestamp:  %s\n"+
			"  File:       %s\n"+
			"  Type:       %s\n"+
			"  Message:    %s\n",
			i+1,
			entry.Timestamp.Format("2006-01-02 15:04:05"),
			entry.FileName,
			entry.ErrorType,
			entry.ErrorMessage)

		if entry.Line >= 0 {
			fmt.Fprintf(writer, "  Line:       %d\n", entry.Line)
		}
		if entry.Record != "" {
			fmt.Fprintf(writer, "  Record:     %s\n", entry.Record)
		}
		if entry.FieldName != "" {
			fmt.Fprintf(writer, "  Field:      %s\n", entry.FieldName)
		}
		if entry.FieldValue != "" {
			fmt.Fprintf(writer, "  Value:      %s\n", entry.FieldValue)
		}
		writer.WriteString("\n")
	}

	writer.WriteString("================================================================================\n" +
		"End of Error Log\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush error log: %w", err)
	}

	return logPath, nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
