package logger

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/harrison/logscan/internal/models"
)

// TestNewConsoleLogger verifies the constructor creates a ConsoleLogger with the provided writer.
func TestNewConsoleLogger(t *testing.T) {
	t.Run("with valid writer", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewConsoleLogger(buf, "info")

		if logger == nil {
			t.Fatal("expected non-nil logger")
		}
		if logger.writer != buf {
			t.Error("writer not set correctly")
		}
		if logger.logLevel != "info" {
			t.Errorf("expected log level %q, got %q", "info", logger.logLevel)
		}
		if logger.colorOutput {
			t.Error("color output must be disabled for non-terminal writers")
		}
	})

	t.Run("with nil writer", func(t *testing.T) {
		logger := NewConsoleLogger(nil, "info")
		if logger == nil {
			t.Fatal("expected non-nil logger even with nil writer")
		}
		// Must not panic
		logger.LogFileError(models.FileError{File: "/a.log", Message: "dropped"})
		logger.LogSummary(models.NewScanResult(), time.Second)
	})
}

// TestLogScanStart verifies the scan start message.
func TestLogScanStart(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "info")

	logger.LogScanStart("0b7e", "./logs/*.log", "regex /err/i (flags: i)")

	output := buf.String()
	expected := "[INFO] Scan 0b7e started: ./logs/*.log with regex /err/i (flags: i)"
	if !strings.Contains(output, expected) {
		t.Errorf("expected output to contain %q, got %q", expected, output)
	}
	if !strings.HasPrefix(output, "[") {
		t.Error("expected output to start with timestamp [")
	}
	if !strings.HasSuffix(output, "\n") {
		t.Error("expected output to end with a newline")
	}
}

// TestLogFileComplete verifies per-file counts and duration formatting.
func TestLogFileComplete(t *testing.T) {
	tests := []struct {
		name         string
		lines        int
		matched      int
		duration     time.Duration
		expectedText string
	}{
		{name: "sub-second", lines: 12, matched: 5, duration: 250 * time.Millisecond, expectedText: "/var/log/app.log: 12 lines, 5 matched (250ms)"},
		{name: "seconds", lines: 1000, matched: 0, duration: 5 * time.Second, expectedText: "/var/log/app.log: 1000 lines, 0 matched (5s)"},
		{name: "minutes", lines: 1, matched: 1, duration: 90 * time.Second, expectedText: "/var/log/app.log: 1 lines, 1 matched (1m30s)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewConsoleLogger(buf, "debug")

			logger.LogFileComplete("/var/log/app.log", tt.lines, tt.matched, tt.duration)

			if !strings.Contains(buf.String(), tt.expectedText) {
				t.Errorf("expected output to contain %q, got %q", tt.expectedText, buf.String())
			}
		})
	}
}

// TestLogSummary verifies scan summary formatting.
func TestLogSummary(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "info")

	result := models.NewScanResult()
	result.AddLine("/a.log", 1, "ERROR one", true)
	result.AddLine("/a.log", 2, "ok", false)
	result.AddError("/b.log", "stat: no such file or directory")

	logger.LogSummary(result, 2*time.Second)

	expected := "Scan complete: 2 lines, 1 matched, 1 errors (2s)"
	if !strings.Contains(buf.String(), expected) {
		t.Errorf("expected output to contain %q, got %q", expected, buf.String())
	}

	buf.Reset()
	logger.LogSummary(nil, time.Second)
	if buf.Len() != 0 {
		t.Errorf("expected no output for nil result, got %q", buf.String())
	}
}

// TestFormatDuration verifies human-readable durations.
func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0ms"},
		{15 * time.Millisecond, "15ms"},
		{time.Second, "1s"},
		{59 * time.Second, "59s"},
		{time.Minute, "1m"},
		{61 * time.Second, "1m1s"},
		{time.Hour, "1h"},
		{time.Hour + 15*time.Minute, "1h15m"},
		{2*time.Hour + 15*time.Minute + 30*time.Second, "2h15m30s"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

// TestConsoleLoggerConcurrentWrites verifies that concurrent writes do not interleave lines.
func TestConsoleLoggerConcurrentWrites(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "trace")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.LogInfo("concurrent message")
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 20 {
		t.Fatalf("expected 20 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if !strings.HasSuffix(line, "[INFO] concurrent message") {
			t.Errorf("malformed line %q", line)
		}
	}
}

// TestNoOpLogger verifies NoOpLogger methods are safe to call.
func TestNoOpLogger(t *testing.T) {
	logger := NewNoOpLogger()

	logger.LogScanStart("id", "x", "y")
	logger.LogDebug("debug")
	logger.LogFileStart("/a")
	logger.LogMatch(models.Sample{File: "/a", LineNo: 1, Text: "x"})
	logger.LogFileComplete("/a", 1, 1, time.Second)
	logger.LogFileError(models.FileError{File: "/a", Message: "m"})
	logger.LogSummary(models.NewScanResult(), time.Second)
}
