package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/harrison/logscan/internal/logger"
	"github.com/harrison/logscan/internal/matcher"
	"github.com/harrison/logscan/internal/scanner"
)

// Output format names returned by Options.Format
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Options represents one logscan invocation. It is populated from command-line
// flags only; logscan reads no configuration file.
type Options struct {
	// File is the path or glob selecting the files to scan
	File string

	// Pattern is a literal search string or a /regex/flags expression
	Pattern string

	// IgnoreCase enables case-insensitive matching
	IgnoreCase bool

	// JSON selects machine-readable JSON output
	JSON bool

	// YAML selects YAML output
	YAML bool

	// NoColor disables colored text output even on a terminal
	NoColor bool

	// Gzip enables transparent decompression of gzip files
	Gzip bool

	// MatchTimeout bounds regex evaluation per line (0 = no limit)
	MatchTimeout time.Duration

	// LogLevel sets the stderr logging verbosity (trace, debug, info, warn, error)
	LogLevel string
}

// DefaultOptions returns Options with default values
func DefaultOptions() *Options {
	return &Options{
		IgnoreCase:   false,
		JSON:         false,
		YAML:         false,
		NoColor:      false,
		Gzip:         true,
		MatchTimeout: matcher.DefaultTimeout,
		LogLevel:     "error",
	}
}

// Validate validates the option values
// Returns an error if any values are invalid
func (o *Options) Validate() error {
	if strings.TrimSpace(o.File) == "" {
		return fmt.Errorf("file must not be empty")
	}

	if o.JSON && o.YAML {
		return fmt.Errorf("json and yaml output are mutually exclusive")
	}

	if !logger.IsValidLevel(o.LogLevel) {
		return fmt.Errorf("invalid log_level %q, must be one of: %s", o.LogLevel, strings.Join(logger.ValidLevels, ", "))
	}

	// Timeout can be 0 (no limit) or positive, negative is invalid
	if o.MatchTimeout < 0 {
		return fmt.Errorf("match timeout must be >= 0, got %v", o.MatchTimeout)
	}

	return nil
}

// Format returns the selected output format name
func (o *Options) Format() string {
	switch {
	case o.JSON:
		return FormatJSON
	case o.YAML:
		return FormatYAML
	default:
		return FormatText
	}
}

// MatcherOptions returns the matcher build options implied by o
func (o *Options) MatcherOptions() []matcher.Option {
	return []matcher.Option{matcher.WithTimeout(o.MatchTimeout)}
}

// ScannerOptions returns the file scanner options implied by o
func (o *Options) ScannerOptions() scanner.Options {
	opts := scanner.DefaultOptions()
	opts.DetectGzip = o.Gzip
	return opts
}
