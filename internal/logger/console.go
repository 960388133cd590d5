// Package logger provides leveled diagnostic logging for logscan.
//
// Diagnostics are written to stderr so they never mix with the scan report on
// stdout. The default level is "error", which keeps a normal run silent.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/harrison/logscan/internal/models"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// ValidLevels lists the accepted log level names, most verbose first.
var ValidLevels = []string{"trace", "debug", "info", "warn", "error"}

// ConsoleLogger logs scan progress to a writer with timestamps and thread safety.
// All output is prefixed with [HH:MM:SS] timestamps.
// It supports log level filtering to control message verbosity.
// Color output is automatically enabled for terminal output (os.Stdout/os.Stderr).
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// If logLevel is empty or invalid, defaults to "error".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
// Returns true for os.Stdout and os.Stderr when they are TTYs.
func isTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}

	if w == os.Stdout || w == os.Stderr {
		// color.NoColor is false only for a TTY without NO_COLOR set
		return !color.NoColor
	}

	return false
}

// IsValidLevel reports whether level names a known log level.
func IsValidLevel(level string) bool {
	normalized := strings.ToLower(strings.TrimSpace(level))
	for _, l := range ValidLevels {
		if l == normalized {
			return true
		}
	}
	return false
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
// Returns "error" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	if IsValidLevel(level) {
		return strings.ToLower(strings.TrimSpace(level))
	}
	return "error"
}

// shouldLog checks if a message at the given level should be logged.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelError
	}
}

// LogTrace logs a trace-level message (most verbose).
// Format: "[HH:MM:SS] [TRACE] <message>"
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
// Format: "[HH:MM:SS] [DEBUG] <message>"
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
// Format: "[HH:MM:SS] [INFO] <message>"
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
// Format: "[HH:MM:SS] [WARN] <message>"
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// logWithLevel is a helper that logs a message at the specified level if filtering allows it.
func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil {
		return
	}

	if !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	var formatted string
	if cl.colorOutput {
		formatted = cl.formatWithColor(ts, level, message)
	} else {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, level, message)
	}

	cl.writer.Write([]byte(formatted))
}

// formatWithColor formats a log message with ANSI color codes.
func (cl *ConsoleLogger) formatWithColor(ts, level, message string) string {
	var coloredLevel string

	switch strings.ToUpper(level) {
	case "TRACE":
		coloredLevel = color.New(color.FgHiBlack).Sprint(level)
	case "DEBUG":
		coloredLevel = color.New(color.FgCyan).Sprint(level)
	case "INFO":
		coloredLevel = color.New(color.FgBlue).Sprint(level)
	case "WARN":
		coloredLevel = color.New(color.FgYellow).Sprint(level)
	case "ERROR":
		coloredLevel = color.New(color.FgRed).Sprint(level)
	default:
		coloredLevel = level
	}

	return fmt.Sprintf("[%s] [%s] %s\n", ts, coloredLevel, message)
}

// LogScanStart logs the start of a scan at INFO level.
// Format: "[HH:MM:SS] [INFO] Scan <id> started: <fileOrGlob> with <matcher>"
func (cl *ConsoleLogger) LogScanStart(scanID, fileOrGlob, matcher string) {
	cl.LogInfo(fmt.Sprintf("Scan %s started: %s with %s", scanID, fileOrGlob, matcher))
}

// LogFileStart logs that a file is being opened at DEBUG level.
func (cl *ConsoleLogger) LogFileStart(path string) {
	cl.LogDebug(fmt.Sprintf("Scanning %s", path))
}

// LogMatch logs one matching line at TRACE level.
// Format: "[HH:MM:SS] [TRACE] <file>:<lineNo>: <text>"
func (cl *ConsoleLogger) LogMatch(sample models.Sample) {
	// Skip formatting for every hit unless tracing is on
	if !cl.shouldLog("trace") {
		return
	}
	cl.LogTrace(fmt.Sprintf("%s:%d: %s", sample.File, sample.LineNo, sample.Text))
}

// LogFileComplete logs per-file counts at DEBUG level.
// Format: "[HH:MM:SS] [DEBUG] <path>: <lines> lines, <matched> matched (<duration>)"
func (cl *ConsoleLogger) LogFileComplete(path string, lines, matched int, duration time.Duration) {
	cl.LogDebug(fmt.Sprintf("%s: %d lines, %d matched (%s)", path, lines, matched, formatDuration(duration)))
}

// LogFileError logs a file that could not be scanned at WARN level.
// The error is also part of the scan report; this line only reaches stderr
// when the level is warn or lower.
func (cl *ConsoleLogger) LogFileError(fe models.FileError) {
	cl.LogWarn(fmt.Sprintf("%s: %s", fe.File, fe.Message))
}

// LogSummary logs the scan totals at INFO level.
// Format: "[HH:MM:SS] [INFO] Scan complete: <total> lines, <matched> matched, <errors> errors (<duration>)"
func (cl *ConsoleLogger) LogSummary(result *models.ScanResult, duration time.Duration) {
	if result == nil {
		return
	}
	cl.LogInfo(fmt.Sprintf("Scan complete: %d lines, %d matched, %d errors (%s)",
		result.TotalLines, result.MatchedCount, len(result.Errors), formatDuration(duration)))
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// formatDuration converts a time.Duration to a human-readable string.
// Examples: "250ms", "5s", "1m30s", "2h15m"
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Hour:
		hours := d / time.Hour
		remainder := d % time.Hour
		if remainder == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		minutes := remainder / time.Minute
		remainder = remainder % time.Minute
		if remainder == 0 {
			return fmt.Sprintf("%dh%dm", hours, minutes)
		}
		seconds := remainder / time.Second
		return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
	case d >= time.Minute:
		minutes := d / time.Minute
		remainder := d % time.Minute
		if remainder == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		seconds := remainder / time.Second
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	case d >= time.Second:
		return fmt.Sprintf("%ds", int64(d.Seconds()))
	default:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
}

// NoOpLogger discards all log messages.
// Useful for testing or when logging is disabled.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

// LogDebug is a no-op implementation.
func (n *NoOpLogger) LogDebug(message string) {}

// LogScanStart is a no-op implementation.
func (n *NoOpLogger) LogScanStart(scanID, fileOrGlob, matcher string) {}

// LogFileStart is a no-op implementation.
func (n *NoOpLogger) LogFileStart(path string) {}

// LogMatch is a no-op implementation.
func (n *NoOpLogger) LogMatch(sample models.Sample) {}

// LogFileComplete is a no-op implementation.
func (n *NoOpLogger) LogFileComplete(path string, lines, matched int, duration time.Duration) {}

// LogFileError is a no-op implementation.
func (n *NoOpLogger) LogFileError(fe models.FileError) {}

// LogSummary is a no-op implementation.
func (n *NoOpLogger) LogSummary(result *models.ScanResult, duration time.Duration) {}
