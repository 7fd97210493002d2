// =============================================================================
// SSIM Pretty Printer - Configuration Module
// =============================================================================
//
// This module loads the tool configuration. Values are resolved in order:
//
//   1. Built-in defaults (DefaultMainConfig)
//   2. The YAML config file, when present
//   3. Environment variables prefixed SSIM_ (a .env file is loaded by the CLI)
//
// The merged result is validated with go-playground/validator before use.
//
// CONFIGURATION FILE STRUCTURE (config.yaml):
//
//   log_level: info
//   log_file: ""
//   output_dir: ./output
//   work_dir: ./work
//   output_name_format: "{carrier}{flight}_{timestamp}_{uuid}"
//   report_formats: [text]
//   fail_fast: false
//   write_error_log: true
//   color: true
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is the config file used when --config is not given. It
// may be absent.
const DefaultConfigPath = "config.yaml"

// Report format names accepted in report_formats.
const (
	FormatText = "text"
	FormatXML  = "xml"
	FormatXLSX = "xlsx"
)

// =============================================================================
// MAIN CONFIGURATION
// =============================================================================

// MainConfig holds the tool settings.
type MainConfig struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" env:"SSIM_LOG_LEVEL" validate:"required,oneof=debug info warn warning error"`

	// LogFile, when set, receives the structured log in addition to stderr.
	LogFile string `yaml:"log_file" env:"SSIM_LOG_FILE"`

	// OutputDir is where XML / XLSX reports and error logs are written.
	OutputDir string `yaml:"output_dir" env:"SSIM_OUTPUT_DIR" validate:"required"`

	// WorkDir receives decompressed copies of gzip and zip inputs.
	WorkDir string `yaml:"work_dir" env:"SSIM_WORK_DIR" validate:"required"`

	// OutputNameFormat names report files. Supports {carrier}, {flight},
	// {timestamp} and {uuid}; the extension is appended per format.
	OutputNameFormat string `yaml:"output_name_format" env:"SSIM_OUTPUT_NAME_FORMAT" validate:"required"`

	// ReportFormats selects the reports of a lookup run.
	ReportFormats []string `yaml:"report_formats" env:"SSIM_REPORT_FORMATS" env-separator:"," validate:"required,min=1,dive,oneof=text xml xlsx"`

	// FailFast aborts a parse on the first malformed line.
	FailFast bool `yaml:"fail_fast" env:"SSIM_FAIL_FAST"`

	// WriteErrorLog writes line errors and lint warnings to the output dir.
	WriteErrorLog bool `yaml:"write_error_log" env:"SSIM_WRITE_ERROR_LOG"`

	// Color enables coloured console output.
	Color bool `yaml:"color" env:"SSIM_COLOR"`
}

// DefaultMainConfig returns the built-in settings.
func DefaultMainConfig() *MainConfig {
	return &MainConfig{
		LogLevel:         "info",
		OutputDir:        "./output",
		WorkDir:          "./work",
		OutputNameFormat: "{carrier}{flight}_{timestamp}_{uuid}",
		ReportFormats:    []string{FormatText},
		WriteErrorLog:    true,
		Color:            true,
	}
}

// HasFormat reports whether a report format is enabled.
func (c *MainConfig) HasFormat(format string) bool {
	return slices.Contains(c.ReportFormats, format)
}

// =============================================================================
// CONFIGURATION LOADING
// =============================================================================

// LoadMainConfig reads the configuration file and applies environment
// overrides.
//
// PARAMETERS:
//   - configPath: Path to a YAML file. An empty path, or a missing
//     DefaultConfigPath, means built-in defaults only.
//
// RETURNS:
//   - A pointer to the validated MainConfig.
//   - An error if the file cannot be read or parsed, or the result is invalid.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	config := DefaultMainConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		case errors.Is(err, os.ErrNotExist) && configPath == DefaultConfigPath:
		default:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	applyMainConfigDefaults(config)

	if err := validateMainConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// applyMainConfigDefaults fills settings left blank by the file or the
// environment.
func applyMainConfigDefaults(config *MainConfig) {
	defaults := DefaultMainConfig()

	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}
	if config.OutputDir == "" {
		config.OutputDir = defaults.OutputDir
	}
	if config.WorkDir == "" {
		config.WorkDir = defaults.WorkDir
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = defaults.OutputNameFormat
	}
	if len(config.ReportFormats) == 0 {
		config.ReportFormats = defaults.ReportFormats
	}
}

// validateMainConfig checks the merged settings.
func validateMainConfig(config *MainConfig) error {
	return validator.New().Struct(config)
}

// PrepareDirectories creates the output and work directories when missing.
func PrepareDirectories(config *MainConfig) error {
	for _, dir := range []string{config.OutputDir, config.WorkDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// DefaultYAML renders the built-in settings as a config file.
func DefaultYAML() ([]byte, error) {
	data, err := yaml.Marshal(DefaultMainConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}
