package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/harrison/logscan/internal/config"
	"github.com/harrison/logscan/internal/display"
	"github.com/harrison/logscan/internal/logger"
	"github.com/harrison/logscan/internal/matcher"
	"github.com/harrison/logscan/internal/scanner"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for logscan
func NewRootCommand() *cobra.Command {
	opts := config.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "logscan --file <path|glob> --pattern <string|/regex/flags>",
		Short: "Search log files for a literal string or regular expression",
		Long: `Logscan streams every file selected by a path or glob, counts the lines
that match a search pattern, and reports totals with up to 10 sample matches.

A pattern of the form /body/flags is a regular expression (flags: i, m, s, u,
g, d, y); anything else is matched as a literal substring. Files that cannot
be read are listed in the report and do not stop the scan.

Examples:
  # Literal search in one file
  logscan --file app.log --pattern ERROR

  # Case-insensitive regex across a tree of logs, as JSON
  logscan --file 'logs/**/*.log' --pattern '/timeout|refused/' -i --json

  # Gzip-compressed rotations are read transparently
  logscan --file 'archive/app.log.*.gz' --pattern 'user=42'`,
		Version: Version,
		Args:    cobra.NoArgs,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		// main prints the error with its own prefix
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.File, "file", opts.File, "Path to a log file or a glob (supports **)")
	flags.StringVar(&opts.Pattern, "pattern", opts.Pattern, "Search string or /regex/flags")
	flags.BoolVarP(&opts.IgnoreCase, "ignoreCase", "i", opts.IgnoreCase, "Case-insensitive search")
	flags.BoolVar(&opts.JSON, "json", opts.JSON, "Output JSON")
	flags.BoolVar(&opts.YAML, "yaml", opts.YAML, "Output YAML")
	flags.BoolVar(&opts.NoColor, "no-color", opts.NoColor, "Disable colored text output")
	flags.BoolVar(&opts.Gzip, "gzip", opts.Gzip, "Transparently decompress gzip files")
	flags.DurationVar(&opts.MatchTimeout, "match-timeout", opts.MatchTimeout, "Per-line regex evaluation limit (0 = no limit)")
	flags.StringVar(&opts.LogLevel, "log-level", opts.LogLevel, "Diagnostic log level on stderr (trace, debug, info, warn, error)")

	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("pattern")
	cmd.MarkFlagsMutuallyExclusive("json", "yaml")

	return cmd
}

// runScan builds the matcher, scans the selected files and renders the report
func runScan(cmd *cobra.Command, opts *config.Options) error {
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	m, err := matcher.Build(opts.Pattern, opts.IgnoreCase, opts.MatcherOptions()...)
	if err != nil {
		return err
	}

	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), opts.LogLevel)
	result := scanner.NewFileScanner(log, opts.ScannerOptions()).Scan(opts.File, m)

	out := cmd.OutOrStdout()
	renderOpts := display.RenderOptions{
		Format: display.Format(opts.Format()),
		Color:  !opts.NoColor && isTerminal(out),
	}
	if err := display.Render(out, result, renderOpts); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// isTerminal reports whether w is an interactive terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
