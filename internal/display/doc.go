// Package display renders a scan result for the user.
//
// Three formats are supported. JSON and YAML emit the complete result as one
// document with the keys totalLines, matchedCount, samples, and errors:
//
//	display.Render(os.Stdout, result, display.RenderOptions{Format: display.FormatJSON})
//
// The text format is a short report meant for a terminal:
//
//	=== Log Scan Results ===
//	Total lines scanned: 12
//	Matched lines: 5
//
//	Sample matches (up to 10):
//	/var/log/app.log : line 2 : ERROR failed to connect
//
//	Errors:
//	/var/log/missing.log : stat: no such file or directory
//
// The samples and errors sections are omitted when empty. With Color set the
// headers, counts, and errors are colored using github.com/fatih/color; the
// caller decides whether the destination is a terminal.
//
// All functions accept io.Writer interfaces for testability.
package display
