// Package scanner streams log files line by line and accumulates match counts,
// samples, and per-file errors into a models.ScanResult.
//
// Files are processed strictly one after another with a single open handle at
// a time, so memory stays bounded by the longest line regardless of how many
// or how large the inputs are. A file that cannot be read is recorded in the
// result and the scan moves on; Scan itself never fails.
package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/harrison/logscan/internal/fileutil"
	"github.com/harrison/logscan/internal/logger"
	"github.com/harrison/logscan/internal/matcher"
	"github.com/harrison/logscan/internal/models"
)

// DefaultMaxLineBytes is the longest line accepted before a file is reported as failed.
const DefaultMaxLineBytes = 64 << 20

// Logger receives scan progress. logger.ConsoleLogger and logger.NoOpLogger implement it.
type Logger interface {
	LogScanStart(scanID, fileOrGlob, matcher string)
	LogDebug(message string)
	LogFileStart(path string)
	LogMatch(sample models.Sample)
	LogFileComplete(path string, lines, matched int, duration time.Duration)
	LogFileError(fe models.FileError)
	LogSummary(result *models.ScanResult, duration time.Duration)
}

// Options configures a FileScanner.
type Options struct {
	// DetectGzip decompresses files that start with the gzip magic bytes
	DetectGzip bool
	// MaxLineBytes limits a single line (0 = DefaultMaxLineBytes)
	MaxLineBytes int
}

// DefaultOptions returns the options used by the command line.
func DefaultOptions() Options {
	return Options{
		DetectGzip:   true,
		MaxLineBytes: DefaultMaxLineBytes,
	}
}

// FileScanner runs scans. It holds no state between scans.
type FileScanner struct {
	logger       Logger
	detectGzip   bool
	maxLineBytes int
}

// NewFileScanner creates a FileScanner. A nil logger discards progress messages.
func NewFileScanner(log Logger, opts Options) *FileScanner {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	maxLine := opts.MaxLineBytes
	if maxLine <= 0 {
		maxLine = DefaultMaxLineBytes
	}
	return &FileScanner{
		logger:       log,
		detectGzip:   opts.DetectGzip,
		maxLineBytes: maxLine,
	}
}

// Scan resolves fileOrGlob and scans every selected file with m, in order.
func (s *FileScanner) Scan(fileOrGlob string, m matcher.Matcher) *models.ScanResult {
	start := time.Now()
	s.logger.LogScanStart(uuid.NewString(), fileOrGlob, fmt.Sprint(m))

	resolved := fileutil.ResolveFiles(fileOrGlob)
	switch {
	case resolved.GlobErr != nil:
		s.logger.LogDebug(fmt.Sprintf("glob expansion failed (%v), treating %q as a file path", resolved.GlobErr, fileOrGlob))
	case resolved.Fallback && fileutil.HasMeta(fileOrGlob):
		s.logger.LogDebug(fmt.Sprintf("glob %q matched no files, treating it as a file path", fileOrGlob))
	case fileutil.HasMeta(fileOrGlob):
		s.logger.LogDebug(fmt.Sprintf("glob %q matched %d files", fileOrGlob, len(resolved.Files)))
	}

	result := models.NewScanResult()
	for _, file := range resolved.Files {
		s.scanFile(file, m, result)
	}

	s.logger.LogSummary(result, time.Since(start))
	return result
}

// scanFile scans one path into result. Every failure is recorded, never returned.
func (s *FileScanner) scanFile(file string, m matcher.Matcher, result *models.ScanResult) {
	absPath, err := filepath.Abs(file)
	if err != nil {
		s.recordError(result, file, describeError(err))
		return
	}

	info, err := os.Stat(absPath)
	if err != nil {
		s.recordError(result, absPath, describeError(err))
		return
	}
	if !info.Mode().IsRegular() {
		s.recordError(result, absPath, "not a regular file")
		return
	}

	f, err := os.Open(absPath)
	if err != nil {
		s.recordError(result, absPath, describeError(err))
		return
	}
	defer f.Close()

	s.logger.LogFileStart(absPath)
	start := time.Now()

	lines, matched, err := s.scanReader(absPath, f, m, result)
	if err != nil {
		// Lines counted before the failure stay in result
		s.recordError(result, absPath, describeError(err))
		return
	}

	s.logger.LogFileComplete(absPath, lines, matched, time.Since(start))
}

func (s *FileScanner) recordError(result *models.ScanResult, file, message string) {
	result.AddError(file, message)
	s.logger.LogFileError(models.FileError{File: file, Message: message})
}

// describeError drops the path from *fs.PathError since the path is reported
// alongside the message.
func describeError(err error) string {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return fmt.Sprintf("%s: %v", pe.Op, pe.Err)
	}
	return err.Error()
}
