package display

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harrison/logscan/internal/models"
	"gopkg.in/yaml.v3"
)

// Format selects the report encoding
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// RenderOptions controls how a result is written
type RenderOptions struct {
	Format Format
	Color  bool // only affects FormatText
}

// Render writes result to w in the requested format.
func Render(w io.Writer, result *models.ScanResult, opts RenderOptions) error {
	if result == nil {
		result = models.NewScanResult()
	}

	switch opts.Format {
	case FormatJSON:
		return renderJSON(w, result)
	case FormatYAML:
		return renderYAML(w, result)
	case FormatText, "":
		return renderText(w, result, opts.Color)
	default:
		return fmt.Errorf("unknown output format %q", opts.Format)
	}
}

func renderJSON(w io.Writer, result *models.ScanResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	// Log lines routinely contain <, > and &; keep them readable
	enc.SetEscapeHTML(false)
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func renderYAML(w io.Writer, result *models.ScanResult) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return nil
}

// palette holds the text report colors.
type palette struct {
	enabled bool
	header  *color.Color
	label   *color.Color
	count   *color.Color
	file    *color.Color
	lineNo  *color.Color
	failure *color.Color
}

// newPalette creates the report colors. When enabled they are forced on
// regardless of color.NoColor, since the caller has already decided the
// destination supports them.
func newPalette(enabled bool) *palette {
	p := &palette{
		enabled: enabled,
		header:  color.New(color.Bold),
		label:   color.New(color.FgCyan),
		count:   color.New(color.FgGreen, color.Bold),
		file:    color.New(color.FgBlue),
		lineNo:  color.New(color.FgYellow),
		failure: color.New(color.FgRed),
	}
	if enabled {
		for _, c := range []*color.Color{p.header, p.label, p.count, p.file, p.lineNo, p.failure} {
			c.EnableColor()
		}
	}
	return p
}

func (p *palette) paint(c *color.Color, s string) string {
	if !p.enabled {
		return s
	}
	return c.Sprint(s)
}

func renderText(w io.Writer, result *models.ScanResult, useColor bool) error {
	p := newPalette(useColor)
	var b strings.Builder

	b.WriteString(p.paint(p.header, "=== Log Scan Results ==="))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", p.paint(p.label, "Total lines scanned:"), p.paint(p.count, fmt.Sprint(result.TotalLines)))
	fmt.Fprintf(&b, "%s %s\n", p.paint(p.label, "Matched lines:"), p.paint(p.count, fmt.Sprint(result.MatchedCount)))

	if result.HasSamples() {
		b.WriteString("\n")
		b.WriteString(p.paint(p.header, fmt.Sprintf("Sample matches (up to %d):", models.MaxSamples)))
		b.WriteString("\n")
		for _, s := range result.Samples {
			fmt.Fprintf(&b, "%s : %s : %s\n",
				p.paint(p.file, s.File),
				p.paint(p.lineNo, fmt.Sprintf("line %d", s.LineNo)),
				s.Text)
		}
	}

	if result.HasErrors() {
		b.WriteString("\n")
		b.WriteString(p.paint(p.failure, "Errors:"))
		b.WriteString("\n")
		for _, e := range result.Errors {
			fmt.Fprintf(&b, "%s : %s\n", p.paint(p.file, e.File), p.paint(p.failure, e.Message))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
